package helper

import (
	"errors"
	"io"
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"

	"reelhive/database"
)

const (
	MaxProfilePictureSize = 5 << 20   // 5MB
	MaxMediaSize          = 100 << 20 // 100MB
)

var (
	imageExtensions = map[string]bool{
		".jpeg": true, ".jpg": true, ".png": true, ".gif": true, ".webp": true,
	}
	videoExtensions = map[string]bool{
		".mp4": true, ".avi": true, ".mov": true, ".wmv": true,
		".flv": true, ".webm": true, ".mkv": true,
	}
	audioExtensions = map[string]bool{
		".mp3": true, ".wav": true, ".ogg": true, ".m4a": true, ".aac": true,
	}
)

var ErrUploadNotAllowed = errors.New("file type not allowed")
var ErrUploadTooLarge = errors.New("file too large")

// MediaTypeOf classifies an upload by its MIME type.
func MediaTypeOf(file *multipart.FileHeader) string {
	contentType := file.Header.Get("Content-Type")
	switch {
	case strings.HasPrefix(contentType, "image/"):
		return "image"
	case strings.HasPrefix(contentType, "video/"):
		return "video"
	case strings.HasPrefix(contentType, "audio/"):
		return "audio"
	default:
		return ""
	}
}

func validateUpload(file *multipart.FileHeader, maxSize int64, allowed ...map[string]bool) error {
	if file.Size > maxSize {
		return ErrUploadTooLarge
	}
	ext := strings.ToLower(filepath.Ext(file.Filename))
	for _, set := range allowed {
		if set[ext] {
			return nil
		}
	}
	return ErrUploadNotAllowed
}

// ValidateImageUpload allow-lists image files (profile pictures).
func ValidateImageUpload(file *multipart.FileHeader, maxSize int64) error {
	if MediaTypeOf(file) != "image" {
		return ErrUploadNotAllowed
	}
	return validateUpload(file, maxSize, imageExtensions)
}

// ValidateVideoUpload allow-lists video files (video uploads).
func ValidateVideoUpload(file *multipart.FileHeader, maxSize int64) error {
	if MediaTypeOf(file) != "video" {
		return ErrUploadNotAllowed
	}
	return validateUpload(file, maxSize, videoExtensions)
}

// ValidateMediaUpload allow-lists story and message media: images,
// videos and voice messages.
func ValidateMediaUpload(file *multipart.FileHeader, maxSize int64) error {
	if MediaTypeOf(file) == "" {
		return ErrUploadNotAllowed
	}
	return validateUpload(file, maxSize, imageExtensions, videoExtensions, audioExtensions)
}

// UploadToGridFS streams the file into GridFS under a fresh UUID and
// returns the path it is served back from.
func UploadToGridFS(file *multipart.FileHeader) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	fileID := uuid.New().String()
	uploadStream, err := database.GridFSBucket.OpenUploadStreamWithID(fileID, file.Filename)
	if err != nil {
		return "", err
	}
	defer uploadStream.Close()

	if _, err := io.Copy(uploadStream, src); err != nil {
		return "", err
	}

	return "/uploads/" + fileID, nil
}
