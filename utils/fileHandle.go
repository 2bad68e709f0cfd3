package utils

import (
	"io"
	"mime/multipart"
	"os"
	"path/filepath"

	"academy/config"

	"github.com/google/uuid"
)

// SaveUploadedFile stores an uploaded file under the given bucket directory
// and returns its storage path relative to the upload root. Object names are
// uuid-based so concurrent uploads never collide.
func SaveUploadedFile(file *multipart.FileHeader, bucket string) (string, error) {
	// Open the uploaded file
	src, err := file.Open()
	if err != nil {
		return "", err
	}
	defer src.Close()

	destDir := filepath.Join(config.AppConfig.UploadDir, bucket)

	// Create destination directory if it doesn't exist
	if err := os.MkdirAll(destDir, 0755); err != nil {
		return "", err
	}

	// Create a unique filename
	ext := filepath.Ext(file.Filename)
	newFilename := uuid.NewString() + ext
	dst, err := os.Create(filepath.Join(destDir, newFilename))
	if err != nil {
		return "", err
	}
	defer dst.Close()

	// Copy the file content
	if _, err := io.Copy(dst, src); err != nil {
		return "", err
	}

	return filepath.Join(bucket, newFilename), nil
}

// RemoveFile deletes a stored file by its storage path. A missing file is
// not an error; the compensating delete may run after a partial failure.
func RemoveFile(path string) error {
	if path == "" {
		return nil
	}
	err := os.Remove(filepath.Join(config.AppConfig.UploadDir, path))
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// FileURL maps a storage path to its public URL
func FileURL(path string) string {
	if path == "" {
		return ""
	}
	return "/uploads/" + filepath.ToSlash(path)
}
