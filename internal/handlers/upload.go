package handlers

import (
	"net/http"

	"github.com/enigmahq/taskboard/internal/constants"
	apierrors "github.com/enigmahq/taskboard/internal/errors"
	"github.com/enigmahq/taskboard/internal/logging"
	"github.com/enigmahq/taskboard/internal/storage"
	"github.com/gin-gonic/gin"
)

// allowedUploadTypes is the content-type allow-list for attachments.
var allowedUploadTypes = map[string]bool{
	"image/jpeg":      true,
	"image/png":       true,
	"image/webp":      true,
	"application/pdf": true,
	"application/zip": true,
}

// UploadHandler stores attachment payloads and returns their references.
type UploadHandler struct {
	store storage.FileStore
}

// NewUploadHandler creates a new UploadHandler.
func NewUploadHandler(store storage.FileStore) *UploadHandler {
	return &UploadHandler{
		store: store,
	}
}

// Upload accepts a multipart file, enforces the size ceiling and the
// content-type allow-list, and returns the stored reference.
func (h *UploadHandler) Upload(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		apierrors.BadRequest(c, "No file uploaded")
		return
	}

	if fileHeader.Size > constants.MaxUploadSize {
		apierrors.BadRequest(c, "File exceeds the 5 MB size limit")
		return
	}

	contentType := fileHeader.Header.Get("Content-Type")
	if !allowedUploadTypes[contentType] {
		apierrors.BadRequest(c, "File type is not allowed")
		return
	}

	f, err := fileHeader.Open()
	if err != nil {
		apierrors.BadRequest(c, "Failed to read uploaded file")
		return
	}
	defer f.Close()

	stored, err := h.store.Save(fileHeader.Filename, f)
	if err != nil {
		logging.Logger.WithError(err).Error("upload failed")
		apierrors.RespondWithError(c, http.StatusInternalServerError,
			apierrors.NewAPIError(apierrors.ErrCodeStorageFailure, "Upload failed"))
		return
	}

	c.JSON(http.StatusOK, stored)
}
