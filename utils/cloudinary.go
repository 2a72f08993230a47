package utils

import (
	"fmt"

	"siteworks/config"

	"github.com/cloudinary/cloudinary-go/v2"
)

// NewCloudinaryClient initializes a Cloudinary client from the loaded config.
// Document uploads, signed download URLs, and deletions all go through it.
func NewCloudinaryClient() (*cloudinary.Cloudinary, error) {
	cloudName := config.AppConfig.CloudinaryCloudName
	apiKey := config.AppConfig.CloudinaryAPIKey
	apiSecret := config.AppConfig.CloudinaryAPISecret

	if cloudName == "" || apiKey == "" || apiSecret == "" {
		return nil, fmt.Errorf("cloudinary credentials not set in configuration")
	}

	cld, err := cloudinary.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, fmt.Errorf("utils.NewCloudinaryClient: failed to initialize Cloudinary: %w", err)
	}
	return cld, nil
}
