// api/service/document_service.go
package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/dev-anuragk/assistly/api/auth"
	"github.com/dev-anuragk/assistly/api/dao"
	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/util"
)

// IDocumentService defines the interface for document operations
type IDocumentService interface {
	UploadDocument(ctx context.Context, p *auth.Principal, doc model.Document) (*model.Document, error)
	GetDocument(ctx context.Context, p *auth.Principal, docID string) (*model.Document, error)
	ListDocuments(ctx context.Context, p *auth.Principal, page, limit int) ([]*model.Document, model.Pagination, error)
	DeleteDocument(ctx context.Context, p *auth.Principal, docID string) error
}

type DocumentService struct {
	documentDAO    *dao.DocumentDAO
	validationUtil *util.ValidationUtil
}

var _ IDocumentService = &DocumentService{}

func NewDocumentService(documentDAO *dao.DocumentDAO, validationUtil *util.ValidationUtil) *DocumentService {
	return &DocumentService{documentDAO: documentDAO, validationUtil: validationUtil}
}

// UploadDocument registers a document inside the caller's organization.
func (s *DocumentService) UploadDocument(ctx context.Context, p *auth.Principal, doc model.Document) (*model.Document, error) {
	if err := auth.CheckOrganization(p); err != nil {
		return nil, err
	}

	doc.OrganizationID = p.OrganizationID
	doc.UploadedBy = p.ID
	if doc.AccessLevel == "" {
		doc.AccessLevel = model.AccessPublic
	}
	if err := s.validationUtil.ValidateDocument(doc); err != nil {
		logger.Warn("Rejected invalid document payload", zap.Error(err))
		return nil, app_errors.ErrInvalidDocumentData
	}

	docID, err := s.documentDAO.CreateDocument(ctx, doc)
	if err != nil {
		return nil, err
	}
	return s.documentDAO.GetDocument(ctx, docID)
}

// GetDocument reads one document. Foreign-organization documents and
// access-level misses are both denials, not not-found: the caller already
// knows the id exists.
func (s *DocumentService) GetDocument(ctx context.Context, p *auth.Principal, docID string) (*model.Document, error) {
	doc, err := s.documentDAO.GetDocument(ctx, docID)
	if err != nil {
		return nil, err
	}
	if !p.IsSuperAdmin() && doc.OrganizationID != p.OrganizationID {
		return nil, app_errors.ErrAccessDenied
	}
	if !doc.CanBeAccessedBy(p.ID, p.Role) {
		return nil, app_errors.ErrAccessDenied
	}
	return doc, nil
}

// ListDocuments pages through the caller's organization and keeps only the
// documents the caller's access level admits. The page metadata reflects the
// unfiltered organization total.
func (s *DocumentService) ListDocuments(ctx context.Context, p *auth.Principal, page, limit int) ([]*model.Document, model.Pagination, error) {
	if err := auth.CheckOrganization(p); err != nil {
		return nil, model.Pagination{}, err
	}

	docs, total, err := s.documentDAO.ListDocuments(ctx, p.OrganizationID, page, limit)
	if err != nil {
		return nil, model.Pagination{}, err
	}

	visible := make([]*model.Document, 0, len(docs))
	for _, doc := range docs {
		if doc.CanBeAccessedBy(p.ID, p.Role) {
			visible = append(visible, doc)
		}
	}

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}
	return visible, model.NewPagination(page, limit, total), nil
}

// DeleteDocument removes a document. Only the uploader or the organization
// administrative tier may delete.
func (s *DocumentService) DeleteDocument(ctx context.Context, p *auth.Principal, docID string) error {
	doc, err := s.documentDAO.GetDocument(ctx, docID)
	if err != nil {
		return err
	}
	if !p.IsSuperAdmin() && doc.OrganizationID != p.OrganizationID {
		return app_errors.ErrAccessDenied
	}
	if doc.UploadedBy != p.ID && !p.Role.AtLeast(model.RoleManager) {
		return app_errors.ErrAccessDenied
	}
	return s.documentDAO.DeleteDocument(ctx, docID)
}
