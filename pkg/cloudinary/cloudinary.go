package cloudinary

import (
	"context"
	"fmt"
	"io"
	"log"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// MaxImageSize is the largest accepted upload in bytes (5MB).
const MaxImageSize = 5 * 1024 * 1024

var allowedFormats = map[string]bool{
	"jpg":  true,
	"jpeg": true,
	"png":  true,
	"gif":  true,
	"webp": true,
}

// AllowedFormat reports whether the given file extension (without the dot)
// is an accepted image format.
func AllowedFormat(ext string) bool {
	return allowedFormats[ext]
}

// Client wraps the Cloudinary uploader
type Client struct {
	cld    *cloudinary.Cloudinary
	folder string
}

// New creates a Cloudinary client from a CLOUDINARY_URL style connection string
func New(cloudinaryURL, folder string) (*Client, error) {
	if cloudinaryURL == "" {
		return nil, fmt.Errorf("Cloudinary URL not provided")
	}
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("error initializing cloudinary: %w", err)
	}
	log.Println("Cloudinary client initialized successfully!")
	return &Client{cld: cld, folder: folder}, nil
}

// UploadImage uploads an image and returns its secure URL
func (c *Client) UploadImage(ctx context.Context, r io.Reader) (string, error) {
	if c == nil || c.cld == nil {
		return "", fmt.Errorf("cloudinary client not initialized")
	}
	resp, err := c.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		Folder:       c.folder,
		ResourceType: "image",
	})
	if err != nil {
		return "", fmt.Errorf("cloudinary upload failed: %w", err)
	}
	return resp.SecureURL, nil
}
