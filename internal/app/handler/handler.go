package handler

import (
	"context"

	"itsupport/internal/app/config"
	"itsupport/internal/app/dto"
	"itsupport/internal/app/form"
	"itsupport/internal/app/repository"

	"github.com/gin-gonic/gin"
)

// FileStorage is the object-store capability needed by the request workflow.
// Implemented by storage.MinIOClient.
type FileStorage interface {
	UploadFile(fileData []byte, originalFilename string) (string, error)
	DeleteFile(key string) error
	PublicURL(key string) string
}

// DraftStore holds in-progress form drafts. Implemented by redis.Client.
type DraftStore interface {
	SaveDraft(ctx context.Context, d *form.Draft) error
	GetDraft(ctx context.Context, id string) (*form.Draft, error)
	DeleteDraft(ctx context.Context, id string) error
}

// APIHandler carries the REST handlers and their collaborators.
type APIHandler struct {
	Repository  *repository.Repository
	Storage     FileStorage
	Drafts      DraftStore
	AuthHandler *AuthHandler
	Config      *config.Config
}

func NewAPIHandler(r *repository.Repository, storage FileStorage, drafts DraftStore, authHandler *AuthHandler, cfg *config.Config) *APIHandler {
	return &APIHandler{
		Repository:  r,
		Storage:     storage,
		Drafts:      drafts,
		AuthHandler: authHandler,
		Config:      cfg,
	}
}

func (h *APIHandler) errorResponse(c *gin.Context, statusCode int, message string) {
	c.JSON(statusCode, dto.ErrorResponse{
		Status:  "fail",
		Message: message,
	})
}

func (h *APIHandler) successResponse(c *gin.Context, statusCode int, message string, data interface{}) {
	response := dto.SuccessResponse{
		Status:  "success",
		Message: message,
	}
	if data != nil {
		response.Data = data
	}
	c.JSON(statusCode, response)
}
