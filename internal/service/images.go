package service

import (
	"mime/multipart"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

const MAX_IMAGE_SIZE_MB = 5

var allowedImageTypes = map[string]string{
	"image/jpeg": ".jpg",
	"image/png":  ".png",
	"image/gif":  ".gif",
}

// validateImage checks the upload's declared content type and size and
// returns the extension to store the file under. The client filename is
// consulted only for its extension; everything else about it is discarded.
func validateImage(fileHeader *multipart.FileHeader) (string, error) {
	defaultExt, ok := allowedImageTypes[fileHeader.Header.Get("Content-Type")]
	if !ok {
		return "", ErrFileMustBeImage
	}

	if fileHeader.Size > MAX_IMAGE_SIZE_MB*1024*1024 {
		return "", ErrFileTooLarge
	}

	ext := strings.ToLower(filepath.Ext(fileHeader.Filename))
	switch ext {
	case ".jpg", ".jpeg", ".png", ".gif":
	default:
		ext = defaultExt
	}

	return ext, nil
}

// mediaFilename generates a collision-free name so concurrent uploads never
// race on the same path.
func mediaFilename(ext string) string {
	return uuid.New().String() + ext
}
