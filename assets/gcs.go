package assets

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"path"
	"time"

	"cloud.google.com/go/storage"
	"github.com/google/uuid"
)

// GCS uploads media to a Cloud Storage bucket and returns the public
// object URL. For deployments that keep assets in the project bucket
// instead of a third-party host.
type GCS struct {
	client *storage.Client
	bucket string
	prefix string
	logger *slog.Logger
}

// NewGCS returns an uploader writing under gs://bucket/prefix.
func NewGCS(client *storage.Client, bucket, prefix string, logger *slog.Logger) (*GCS, error) {
	if bucket == "" {
		return nil, fmt.Errorf("gcs uploader: bucket must be provided")
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &GCS{client: client, bucket: bucket, prefix: prefix, logger: logger}, nil
}

// Upload writes the object with bounded retries and returns its public
// HTTPS URL. Object names carry a timestamp and a random component so
// re-uploads never collide.
func (g *GCS) Upload(ctx context.Context, f File) (string, error) {
	object := path.Join(g.prefix, fmt.Sprintf("%s-%s-%s",
		time.Now().UTC().Format("20060102T150405"), uuid.NewString()[:8], f.Name))

	const maxRetries = 4
	backoff := 1 * time.Second
	var lastErr error

	for i := 0; i < maxRetries; i++ {
		err := func() error {
			writeCtx, cancel := context.WithTimeout(ctx, 50*time.Second)
			defer cancel()

			w := g.client.Bucket(g.bucket).Object(object).NewWriter(writeCtx)
			w.ContentType = f.ContentType
			if _, err := io.Copy(w, bytes.NewReader(f.Data)); err != nil {
				_ = w.Close()
				return fmt.Errorf("copy to GCS failed: %w", err)
			}
			if err := w.Close(); err != nil {
				return fmt.Errorf("failed to finalize GCS write: %w", err)
			}
			return nil
		}()
		if err == nil {
			url := fmt.Sprintf("https://storage.googleapis.com/%s/%s", g.bucket, object)
			g.logger.Info("Asset uploaded.", "host", "gcs", "kind", f.Kind(), "url", url)
			return url, nil
		}

		lastErr = err
		g.logger.Warn("Upload failed, will retry.",
			"gcsObject", object,
			"attempt", i+1,
			"maxRetries", maxRetries,
			"backoff", backoff.String(),
			"error", err,
		)

		select {
		case <-time.After(backoff):
			backoff *= 2
		case <-ctx.Done():
			g.logger.Error("Context cancelled during backoff. Aborting retries.", "gcsObject", object, "error", ctx.Err())
			return "", ctx.Err()
		}
	}
	g.logger.Error("Upload failed after all retries.", "gcsObject", object, "error", lastErr)
	return "", fmt.Errorf("upload for %s failed after all retries: %w", object, lastErr)
}
