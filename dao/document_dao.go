// api/dao/document_dao.go
package dao

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/neo4j/neo4j-go-driver/v5/neo4j"
	"go.uber.org/zap"

	app_errors "github.com/dev-anuragk/assistly/api/errors"
	logger "github.com/dev-anuragk/assistly/api/logging"
	"github.com/dev-anuragk/assistly/api/model"
)

type DocumentDAO struct {
	Driver neo4j.Driver
}

func NewDocumentDAO(driver neo4j.Driver) *DocumentDAO {
	return &DocumentDAO{Driver: driver}
}

func documentProps(doc model.Document) map[string]interface{} {
	allowedRolesJSON, _ := json.Marshal(doc.AllowedRoles)
	allowedUsersJSON, _ := json.Marshal(doc.AllowedUsers)
	metadataJSON, _ := json.Marshal(doc.Metadata)
	return map[string]interface{}{
		"organizationID": doc.OrganizationID,
		"uploadedBy":     doc.UploadedBy,
		"fileName":       doc.FileName,
		"originalName":   doc.OriginalName,
		"filePath":       doc.FilePath,
		"fileSize":       doc.FileSize,
		"mimeType":       doc.MimeType,
		"accessLevel":    string(doc.AccessLevel),
		"allowedRoles":   string(allowedRolesJSON),
		"allowedUsers":   string(allowedUsersJSON),
		"metadata":       string(metadataJSON),
		"isProcessed":    doc.IsProcessed,
		"updatedAt":      time.Now().Format(time.RFC3339),
	}
}

func (dao *DocumentDAO) CreateDocument(ctx context.Context, doc model.Document) (string, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	if doc.ID == "" {
		doc.ID = uuid.New().String()
	}

	result, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        CREATE (d:Document {id: $id})
        SET d += $props, d.createdAt = $createdAt
        RETURN d.id as id
        `
		params := map[string]interface{}{
			"id":        doc.ID,
			"props":     documentProps(doc),
			"createdAt": time.Now().Format(time.RFC3339),
		}
		created, err := transaction.Run(query, params)
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if created.Next() {
			return created.Record().Values[0], nil
		}
		return nil, app_errors.ErrInternalServer
	})
	if err != nil {
		logger.Error("Failed to create document", zap.Error(err), zap.String("fileName", doc.FileName))
		return "", err
	}
	return fmt.Sprintf("%v", result), nil
}

func (dao *DocumentDAO) GetDocument(ctx context.Context, docID string) (*model.Document, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	query := `
    MATCH (d:Document {id: $id})
    RETURN d
    `
	result, err := session.Run(query, map[string]interface{}{"id": docID})
	if err != nil {
		logger.Error("Failed to execute get document query", zap.Error(err), zap.String("documentID", docID))
		return nil, app_errors.ErrDatabaseOperation
	}
	if result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		doc, err := mapNodeToDocument(node)
		if err != nil {
			return nil, app_errors.ErrInternalServer
		}
		return doc, nil
	}
	return nil, app_errors.ErrDocumentNotFound
}

func (dao *DocumentDAO) DeleteDocument(ctx context.Context, docID string) error {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeWrite})
	defer session.Close()

	_, err := session.WriteTransaction(func(transaction neo4j.Transaction) (interface{}, error) {
		query := `
        MATCH (d:Document {id: $id})
        DETACH DELETE d
        `
		result, err := transaction.Run(query, map[string]interface{}{"id": docID})
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		summary, err := result.Consume()
		if err != nil {
			return nil, app_errors.ErrDatabaseOperation
		}
		if summary.Counters().NodesDeleted() == 0 {
			return nil, app_errors.ErrDocumentNotFound
		}
		return nil, nil
	})
	if err != nil {
		logger.Error("Failed to delete document", zap.Error(err), zap.String("documentID", docID))
	}
	return err
}

// ListDocuments pages through one organization's documents. Access-level
// filtering happens in the service layer where the principal is known.
func (dao *DocumentDAO) ListDocuments(ctx context.Context, organizationID string, page, limit int) ([]*model.Document, int64, error) {
	session := dao.Driver.NewSession(neo4j.SessionConfig{AccessMode: neo4j.AccessModeRead})
	defer session.Close()

	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = 10
	}

	params := map[string]interface{}{
		"organizationID": organizationID,
		"skip":           (page - 1) * limit,
		"limit":          limit,
	}

	query := `
    MATCH (d:Document {organizationID: $organizationID})
    RETURN d
    ORDER BY d.createdAt DESC
    SKIP $skip LIMIT $limit
    `
	result, err := session.Run(query, params)
	if err != nil {
		logger.Error("Failed to list documents", zap.Error(err))
		return nil, 0, app_errors.ErrDatabaseOperation
	}

	var docs []*model.Document
	for result.Next() {
		node := result.Record().Values[0].(neo4j.Node)
		doc, err := mapNodeToDocument(node)
		if err != nil {
			return nil, 0, app_errors.ErrInternalServer
		}
		docs = append(docs, doc)
	}

	countResult, err := session.Run(`
    MATCH (d:Document {organizationID: $organizationID})
    RETURN count(d) as total
    `, params)
	if err != nil {
		return nil, 0, app_errors.ErrDatabaseOperation
	}
	var total int64
	if countResult.Next() {
		total = countResult.Record().Values[0].(int64)
	}

	return docs, total, nil
}

func mapNodeToDocument(node neo4j.Node) (*model.Document, error) {
	props := node.Props

	doc := &model.Document{
		ID:             stringProp(props, "id"),
		OrganizationID: stringProp(props, "organizationID"),
		UploadedBy:     stringProp(props, "uploadedBy"),
		FileName:       stringProp(props, "fileName"),
		OriginalName:   stringProp(props, "originalName"),
		FilePath:       stringProp(props, "filePath"),
		MimeType:       stringProp(props, "mimeType"),
		AccessLevel:    model.DocumentAccessLevel(stringProp(props, "accessLevel")),
	}
	if v, ok := props["fileSize"].(int64); ok {
		doc.FileSize = v
	}
	if v, ok := props["isProcessed"].(bool); ok {
		doc.IsProcessed = v
	}
	if raw := stringProp(props, "allowedRoles"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc.AllowedRoles); err != nil {
			return nil, fmt.Errorf("invalid allowedRoles: %w", err)
		}
	}
	if raw := stringProp(props, "allowedUsers"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc.AllowedUsers); err != nil {
			return nil, fmt.Errorf("invalid allowedUsers: %w", err)
		}
	}
	if raw := stringProp(props, "metadata"); raw != "" {
		if err := json.Unmarshal([]byte(raw), &doc.Metadata); err != nil {
			return nil, fmt.Errorf("invalid metadata: %w", err)
		}
	}

	var err error
	if doc.CreatedAt, err = timeProp(props, "createdAt"); err != nil {
		return nil, err
	}
	if doc.UpdatedAt, err = timeProp(props, "updatedAt"); err != nil {
		return nil, err
	}
	return doc, nil
}
