// api/controller/document_controller.go
package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	app_errors "github.com/dev-anuragk/assistly/api/errors"
	"github.com/dev-anuragk/assistly/api/model"
	"github.com/dev-anuragk/assistly/api/service"
	"github.com/dev-anuragk/assistly/api/util"
	helper_util "github.com/dev-anuragk/assistly/api/util/helper"
)

type DocumentController struct {
	documentService service.IDocumentService
}

func NewDocumentController(documentService service.IDocumentService) *DocumentController {
	return &DocumentController{documentService: documentService}
}

type uploadDocumentRequest struct {
	FileName     string                 `json:"file_name" binding:"required"`
	OriginalName string                 `json:"original_name"`
	FilePath     string                 `json:"file_path"`
	FileSize     int64                  `json:"file_size"`
	MimeType     string                 `json:"mime_type"`
	AccessLevel  string                 `json:"access_level"`
	AllowedRoles []model.Role           `json:"allowed_roles"`
	AllowedUsers []string               `json:"allowed_users"`
	Metadata     model.DocumentMetadata `json:"metadata"`
}

// UploadDocument endpoint
func (dc *DocumentController) UploadDocument(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	var req uploadDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid document data", app_errors.ErrInvalidDocumentData)
		return
	}

	doc := model.Document{
		FileName:     req.FileName,
		OriginalName: req.OriginalName,
		FilePath:     req.FilePath,
		FileSize:     req.FileSize,
		MimeType:     req.MimeType,
		AccessLevel:  model.DocumentAccessLevel(req.AccessLevel),
		AllowedRoles: req.AllowedRoles,
		AllowedUsers: req.AllowedUsers,
		Metadata:     req.Metadata,
	}

	created, err := dc.documentService.UploadDocument(c, principal, doc)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusCreated, "Document uploaded", created)
}

// GetDocument endpoint
func (dc *DocumentController) GetDocument(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	doc, err := dc.documentService.GetDocument(c, principal, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Document retrieved", doc)
}

// DownloadDocument endpoint. Same access checks as a read; the route is
// wrapped by the download audit action.
func (dc *DocumentController) DownloadDocument(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	doc, err := dc.documentService.GetDocument(c, principal, c.Param("id"))
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Document ready for download", gin.H{
		"file_name": doc.FileName,
		"file_path": doc.FilePath,
		"mime_type": doc.MimeType,
		"file_size": doc.FileSize,
	})
}

// ListDocuments endpoint
func (dc *DocumentController) ListDocuments(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	page, limit, err := helper_util.GetPaginationParams(c)
	if err != nil {
		util.RespondWithError(c, http.StatusBadRequest, "Invalid pagination parameters", err)
		return
	}

	docs, pagination, err := dc.documentService.ListDocuments(c, principal, page, limit)
	if err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithPagination(c, "Documents retrieved", docs, pagination)
}

// DeleteDocument endpoint
func (dc *DocumentController) DeleteDocument(c *gin.Context) {
	principal, ok := requirePrincipal(c)
	if !ok {
		return
	}
	if err := dc.documentService.DeleteDocument(c, principal, c.Param("id")); err != nil {
		respondWithServiceError(c, err)
		return
	}
	util.RespondWithSuccess(c, http.StatusOK, "Document deleted", nil)
}
