// Package upload stores cat images in an S3-compatible backend and hands out
// presigned download URLs for serving them.
package upload

import (
	"context"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/google/uuid"
)

// Store is the image storage contract consumed by the cat service.
type Store interface {
	// Save uploads the object body under key.
	Save(ctx context.Context, key string, body io.Reader) error
	// PresignGet returns a time-limited download URL for key.
	PresignGet(ctx context.Context, key string) (string, error)
}

// RandomKey returns a date-partitioned object key with a fresh UUID,
// preserving the extension of the uploaded file name.
func RandomKey(fileName string) string {
	d := time.Now()
	return fmt.Sprintf("cats/%d/%d/%d/%v%s", d.Year(), d.Month(), d.Day(), uuid.New(), filepath.Ext(fileName))
}
