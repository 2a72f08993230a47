package handlers

import (
	"mime"
	"net/http"
	"os"
	"path/filepath"
	"strings"

	"siteworks/services/document"

	"github.com/gin-gonic/gin"
)

// DocumentHandler serves project file endpoints.
type DocumentHandler struct {
	Documents document.DocumentService
}

func resourceTypeForFile(filename string) string {
	contentType := mime.TypeByExtension(filepath.Ext(filename))
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	default:
		return "raw"
	}
}

// UploadDocumentHandler accepts a multipart upload for a project.
func (h *DocumentHandler) UploadDocumentHandler(c *gin.Context) {
	projectID := c.Param("id")
	fileHeader, err := c.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file not provided", "detail": err.Error()})
		return
	}

	tempFilePath := filepath.Join(os.TempDir(), filepath.Base(fileHeader.Filename))
	if err := c.SaveUploadedFile(fileHeader, tempFilePath); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to save file", "detail": err.Error()})
		return
	}
	defer os.Remove(tempFilePath)

	doc, err := h.Documents.Upload(c.Request.Context(), document.UploadRequest{
		ProjectID:     projectID,
		Name:          fileHeader.Filename,
		LocalPath:     tempFilePath,
		ResourceType:  resourceTypeForFile(fileHeader.Filename),
		SizeBytes:     fileHeader.Size,
		UploadedBy:    c.GetString("userID"),
		Private:       c.PostForm("private") == "true",
		EncryptionKey: c.PostForm("encryptionKey"),
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to upload document", "detail": err.Error()})
		return
	}
	c.JSON(http.StatusCreated, doc)
}

// GetDocumentHandler returns the metadata plus a signed download URL.
func (h *DocumentHandler) GetDocumentHandler(c *gin.Context) {
	doc, url, err := h.Documents.GetWithURL(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"document": doc, "downloadURL": url})
}

// ListDocumentsHandler returns a project's documents.
func (h *DocumentHandler) ListDocumentsHandler(c *gin.Context) {
	docs, err := h.Documents.ListByProject(c.Request.Context(), c.Param("id"))
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list documents"})
		return
	}
	c.JSON(http.StatusOK, docs)
}

// DeleteDocumentHandler removes a document and its stored binary.
func (h *DocumentHandler) DeleteDocumentHandler(c *gin.Context) {
	if err := h.Documents.Delete(c.Request.Context(), c.Param("id")); err != nil {
		c.JSON(statusForLookup(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "document deleted"})
}
