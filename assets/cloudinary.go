package assets

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/guonaihong/gout"
)

// DefaultCloudinaryBase is the production upload endpoint prefix.
const DefaultCloudinaryBase = "https://api.cloudinary.com/v1_1"

// Cloudinary uploads files with an unsigned preset, so no signing server
// is involved. The endpoint is kind-specific (image vs video).
type Cloudinary struct {
	CloudName    string
	UploadPreset string

	// BaseURL overrides the API host, for tests. Empty means production.
	BaseURL string

	Logger *slog.Logger
}

// NewCloudinary returns an uploader for the given cloud and unsigned
// preset.
func NewCloudinary(cloudName, uploadPreset string) (*Cloudinary, error) {
	if cloudName == "" || uploadPreset == "" {
		return nil, fmt.Errorf("cloudinary: cloud name and upload preset must be provided")
	}
	return &Cloudinary{CloudName: cloudName, UploadPreset: uploadPreset}, nil
}

type cloudinaryResponse struct {
	SecureURL string `json:"secure_url"`
	Error     struct {
		Message string `json:"message"`
	} `json:"error"`
}

// Upload posts the file as multipart form data and returns the secure URL.
// A non-2xx response carries a JSON error body whose message is surfaced.
func (c *Cloudinary) Upload(ctx context.Context, f File) (string, error) {
	base := c.BaseURL
	if base == "" {
		base = DefaultCloudinaryBase
	}
	url := fmt.Sprintf("%s/%s/%s/upload", base, c.CloudName, f.Kind())

	var (
		code int
		body []byte
	)
	err := gout.POST(url).
		WithContext(ctx).
		SetForm(gout.H{
			"file":          gout.FormMem(f.Data),
			"upload_preset": c.UploadPreset,
		}).
		Code(&code).
		BindBody(&body).
		Do()
	if err != nil {
		return "", fmt.Errorf("cloudinary upload: %w", err)
	}

	var resp cloudinaryResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return "", fmt.Errorf("cloudinary upload: decode response (status %d): %w", code, err)
	}
	if code < 200 || code > 299 {
		msg := resp.Error.Message
		if msg == "" {
			msg = "upload failed"
		}
		return "", fmt.Errorf("cloudinary upload: %s (status %d)", msg, code)
	}
	if resp.SecureURL == "" {
		return "", fmt.Errorf("cloudinary upload: response missing secure_url")
	}
	c.logger().Info("Asset uploaded.", "host", "cloudinary", "kind", f.Kind(), "url", resp.SecureURL)
	return resp.SecureURL, nil
}

func (c *Cloudinary) logger() *slog.Logger {
	if c.Logger != nil {
		return c.Logger
	}
	return slog.Default()
}
