package utils

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// FileExtension returns the lower-cased extension of an uploaded file name
func FileExtension(fileName string) string {
	return strings.ToLower(filepath.Ext(fileName))
}

// SaveUploadedFile copies the uploaded file into destDir under a random name that keeps the
// original extension. It returns the stored file name.
func SaveUploadedFile(file *multipart.FileHeader, destDir string) (string, error) {
	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("failed to open uploaded file: %w", err)
	}
	defer src.Close()

	if err := os.MkdirAll(destDir, os.ModePerm); err != nil {
		return "", fmt.Errorf("failed to create upload directory: %w", err)
	}

	newFilename := uuid.NewString() + FileExtension(file.Filename)
	filePath := filepath.Join(destDir, newFilename)

	dst, err := os.Create(filePath)
	if err != nil {
		return "", fmt.Errorf("failed to create destination file: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		os.Remove(filePath)
		return "", fmt.Errorf("failed to save file: %w", err)
	}

	return newFilename, nil
}

// PublicFileURL maps a path relative to the uploads directory to its served URL
func PublicFileURL(relPath string) string {
	if relPath == "" {
		return ""
	}
	return "/uploads/" + filepath.ToSlash(relPath)
}
