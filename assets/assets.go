// Package assets uploads catalog media to an asset host and hands back a
// durable HTTPS URL for the entity's image or video field.
package assets

import (
	"context"
	"strings"
)

// File is one binary asset handed to an Uploader.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

// Resource kinds understood by the asset hosts.
const (
	KindImage = "image"
	KindVideo = "video"
)

// Kind infers the resource kind from the file's MIME type. Anything that
// is not video uploads as an image.
func (f File) Kind() string {
	if strings.HasPrefix(f.ContentType, "video/") {
		return KindVideo
	}
	return KindImage
}

// Uploader stores a file on an asset host and returns its public URL.
type Uploader interface {
	Upload(ctx context.Context, f File) (string, error)
}
