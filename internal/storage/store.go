// Package storage keeps uploaded payment screenshots outside the database.
package storage

import (
	"context"
	"errors"
	"io"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

var ErrNotFound = errors.New("object not found")

// ProofStore persists payment screenshots by key.
type ProofStore interface {
	Save(ctx context.Context, key, contentType string, body io.Reader, size int64) error
	Open(ctx context.Context, key string) (io.ReadCloser, error)
	Delete(ctx context.Context, key string) error
}

var extByType = map[string]string{
	"image/png":  ".png",
	"image/jpeg": ".jpg",
	"image/gif":  ".gif",
	"image/webp": ".webp",
	"image/heic": ".heic",
	"image/bmp":  ".bmp",
}

// NewProofKey returns payment-proofs/YYYY/MM/<uuid><ext>.
func NewProofKey(now time.Time, contentType string) string {
	ext, ok := extByType[strings.ToLower(contentType)]
	if !ok {
		ext = ".img"
	}
	return path.Join("payment-proofs", now.Format("2006"), now.Format("01"), uuid.NewString()+ext)
}
