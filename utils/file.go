package utils

import (
	"errors"
	"fmt"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"shophub/config"
)

var imageExts = []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}

// SaveUploadedImage writes an uploaded image under UPLOAD_DIR/subDir and
// returns the storage path relative to the upload dir.
func SaveUploadedImage(c *gin.Context, file *multipart.FileHeader, subDir string) (string, error) {
	if file.Size > config.AppConfig.MaxUploadSize {
		return "", errors.New("file too large")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	allowed := false
	for _, e := range imageExts {
		if ext == e {
			allowed = true
			break
		}
	}
	if !allowed {
		return "", errors.New("invalid file type")
	}

	uploadDir := filepath.Join(config.AppConfig.UploadDir, subDir)
	if err := os.MkdirAll(uploadDir, os.ModePerm); err != nil {
		return "", err
	}

	filename := fmt.Sprintf("%d_%s", time.Now().UnixNano(), strings.ReplaceAll(file.Filename, " ", "_"))
	fullPath := filepath.Join(uploadDir, filename)

	if err := c.SaveUploadedFile(file, fullPath); err != nil {
		return "", err
	}

	return filepath.Join(subDir, filename), nil
}

func DeleteUploadedFile(path string) {
	if path != "" && !strings.HasPrefix(path, "http") {
		os.Remove(filepath.Join(config.AppConfig.UploadDir, path))
	}
}
