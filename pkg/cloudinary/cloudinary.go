package cloudinary

import (
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/cloudinary/cloudinary-go/v2/config"
)

// Resource types understood by Cloudinary.
const (
	ResourceImage = "image"
	ResourceVideo = "video"
	ResourceRaw   = "raw"
)

// Client uploads files to Cloudinary.
type Client interface {
	Upload(ctx context.Context, file io.Reader, folder, resourceType string) (UploadResult, error)
	Destroy(ctx context.Context, publicID, resourceType string) error
}

type UploadResult struct {
	URL          string
	ThumbnailURL string
	PublicID     string
	ResourceType string
}

// Optimized image params for fast frontend loading
const (
	ImageWidth = 800
	ThumbWidth = 200
)

// BuildOptimizedImageURL returns a Cloudinary URL with transformations for optimized delivery.
func BuildOptimizedImageURL(cloudName, publicID string, width int) string {
	if width <= 0 {
		width = ImageWidth
	}
	return fmt.Sprintf("https://res.cloudinary.com/%s/image/upload/q_auto,f_auto,w_%d,c_fill/%s",
		cloudName, width, publicID)
}

// Eager transformations for upload (single string per SDK)
const (
	imageEager = "q_auto,f_auto,w_800,c_fill"
	videoEager = "q_auto:low,f_auto,w_1280"
)

var eagerAsyncFalse = false

type clientImpl struct {
	cloudName string
	uploader  *uploader.API
}

func (c *clientImpl) Upload(ctx context.Context, file io.Reader, folder, resourceType string) (UploadResult, error) {
	params := uploader.UploadParams{
		Folder:       folder,
		ResourceType: resourceType,
	}
	switch resourceType {
	case ResourceImage:
		params.Eager = imageEager
		params.EagerAsync = &eagerAsyncFalse
	case ResourceVideo:
		params.Eager = videoEager
		params.EagerAsync = &eagerAsyncFalse
	default:
		params.ResourceType = ResourceRaw
	}
	result, err := c.uploader.Upload(ctx, file, params)
	if err != nil {
		return UploadResult{}, err
	}
	if result.Error.Message != "" {
		return UploadResult{}, fmt.Errorf("cloudinary: %s", result.Error.Message)
	}
	out := UploadResult{
		URL:          result.SecureURL,
		PublicID:     result.PublicID,
		ResourceType: params.ResourceType,
	}
	if len(result.Eager) > 0 {
		out.ThumbnailURL = result.Eager[0].SecureURL
	}
	if out.ThumbnailURL == "" && resourceType == ResourceImage {
		out.ThumbnailURL = BuildOptimizedImageURL(c.cloudName, result.PublicID, ThumbWidth)
	}
	return out, nil
}

func (c *clientImpl) Destroy(ctx context.Context, publicID, resourceType string) error {
	if strings.TrimSpace(publicID) == "" {
		return nil
	}
	_, err := c.uploader.Destroy(ctx, uploader.DestroyParams{PublicID: publicID, ResourceType: resourceType})
	return err
}

// NewClientFromParams builds a Client from Cloudinary cloud name, API key, and secret.
func NewClientFromParams(cloudName, apiKey, apiSecret string) (Client, error) {
	cfg, err := config.NewFromParams(cloudName, apiKey, apiSecret)
	if err != nil {
		return nil, err
	}
	up, err := uploader.NewWithConfiguration(cfg)
	if err != nil {
		return nil, err
	}
	return &clientImpl{
		cloudName: cloudName,
		uploader:  up,
	}, nil
}

// ResourceTypeFor maps a MIME content type to a Cloudinary resource type.
func ResourceTypeFor(contentType string) string {
	ct := strings.ToLower(contentType)
	switch {
	case strings.HasPrefix(ct, "image/"):
		return ResourceImage
	case strings.HasPrefix(ct, "video/"):
		return ResourceVideo
	default:
		return ResourceRaw
	}
}
