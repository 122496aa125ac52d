package libs

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// Configured reports whether Cloudinary credentials are present. Without them
// product images stay on local disk.
func Configured() bool {
	if os.Getenv("CLOUDINARY_URL") != "" {
		return true
	}
	return os.Getenv("CLOUDINARY_CLOUD_NAME") != "" &&
		os.Getenv("CLOUDINARY_API_KEY") != "" &&
		os.Getenv("CLOUDINARY_API_SECRET") != ""
}

func newClient() (*cloudinary.Cloudinary, error) {
	if cldURL := os.Getenv("CLOUDINARY_URL"); cldURL != "" {
		return cloudinary.NewFromURL(cldURL)
	}

	cloudName := os.Getenv("CLOUDINARY_CLOUD_NAME")
	apiKey := os.Getenv("CLOUDINARY_API_KEY")
	apiSecret := os.Getenv("CLOUDINARY_API_SECRET")

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary environment variables not set")
	}

	return cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
}

// UploadImage pushes a local file to Cloudinary and removes the local copy.
// Returns the hosted URL.
func UploadImage(localPath, folder string) (string, error) {
	if _, err := os.Stat(localPath); os.IsNotExist(err) {
		return "", fmt.Errorf("file not found: %s", localPath)
	}

	cld, err := newClient()
	if err != nil {
		return "", fmt.Errorf("cloudinary init failed: %w", err)
	}

	resp, err := cld.Upload.Upload(context.Background(), localPath, uploader.UploadParams{
		PublicID: fmt.Sprintf("%s_%d", folder, time.Now().UnixNano()),
		Folder:   folder,
	})

	os.Remove(localPath)

	if err != nil {
		return "", err
	}
	if resp == nil || (resp.SecureURL == "" && resp.URL == "") {
		return "", fmt.Errorf("cloudinary returned no URL")
	}

	if resp.SecureURL != "" {
		return resp.SecureURL, nil
	}
	return resp.URL, nil
}
