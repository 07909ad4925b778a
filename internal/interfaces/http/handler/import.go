package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/stocktrack/backend/internal/application/importer"
)

// maxImportFileSize caps uploaded CSV files at 10 MiB
const maxImportFileSize = 10 << 20

// ImportHandler handles bulk inventory CSV import
type ImportHandler struct {
	BaseHandler
	importService *importer.ImportService
}

// NewImportHandler creates a new ImportHandler
func NewImportHandler(importService *importer.ImportService) *ImportHandler {
	return &ImportHandler{importService: importService}
}

// Upload handles POST /inventory/import. The CSV file is expected in the
// "file" multipart form field.
func (h *ImportHandler) Upload(c *gin.Context) {
	actor, err := getActor(c)
	if err != nil {
		h.Unauthorized(c, "Authentication required")
		return
	}

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		h.BadRequest(c, "Missing file upload")
		return
	}
	defer file.Close()

	if header.Size > maxImportFileSize {
		h.BadRequest(c, "File exceeds maximum allowed size")
		return
	}

	result, err := h.importService.Import(c.Request.Context(), actor, file)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
