package controllers

import (
	"io"
	"mime"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"

	"reelhive/database"
)

// GetFile streams a stored upload out of GridFS.
func GetFile(c *gin.Context) {
	fileID := c.Param("file_id")

	stream, err := database.GridFSBucket.OpenDownloadStream(fileID)
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{"error": "File not found"})
		return
	}
	defer stream.Close()

	contentType := mime.TypeByExtension(filepath.Ext(stream.GetFile().Name))
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Header("Cache-Control", "public, max-age=31536000, immutable")

	if _, err := io.Copy(c.Writer, stream); err != nil {
		// headers are already out, nothing sensible to send
		return
	}
}
