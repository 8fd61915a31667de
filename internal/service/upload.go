package service

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/fieldscope/field-inspector/internal/logger"
	"github.com/fieldscope/field-inspector/internal/model"
)

// SimulatedUploadMarker appears in every synthetic photo URL generated when
// the object backend is absent or failing. URLs carrying it never reference
// a stored object.
const SimulatedUploadMarker = "simulated-upload"

// Upload pushes photo assets to durable object storage. Storage is
// best-effort relative to the ingestion request: every failure class
// degrades to a synthetic URL, never to an error.
type Upload struct {
	storage model.Storage // nil when no object backend is configured
	logger  *logger.Logger
}

func NewUpload(storage model.Storage, logger *logger.Logger) *Upload {
	return &Upload{
		storage: storage,
		logger:  logger,
	}
}

// Upload stores the asset and returns its publicly resolvable URL. The
// second return reports whether a real object was stored; false means the
// URL is synthetic.
func (u *Upload) Upload(ctx context.Context, asset model.Asset, ownerID string) (string, bool) {
	name := sanitizeFileName(asset.Name)

	if u.storage == nil {
		return simulatedURL(ownerID, name), false
	}

	// Timestamp plus owner keeps keys human-traceable while making
	// collisions unlikely.
	key := fmt.Sprintf("photos/%s/%d-%s", ownerID, time.Now().UnixMilli(), name)

	exists, err := u.storage.Exists(ctx, key)
	if err != nil {
		u.logger.Warn("Upload service: storage unavailable, returning simulated URL",
			"key", key,
			"error", err.Error())
		return simulatedURL(ownerID, name), false
	}
	if exists {
		// Conflict: retry exactly once with a randomized suffix. The fresh
		// key makes the overwrite-allowed retry safe.
		key = fmt.Sprintf("%s-%s", key, uuid.NewString())
	}

	err = u.storage.Upload(ctx, key, bytes.NewReader(asset.Data), int64(len(asset.Data)), asset.ContentType)
	if err != nil {
		u.logger.Warn("Upload service: upload failed, returning simulated URL",
			"key", key,
			"error", err.Error())
		return simulatedURL(ownerID, name), false
	}

	return u.storage.PublicURL(key), true
}

// DeletePhoto best-effort removes the object behind a photo URL. Simulated
// URLs reference nothing and are skipped.
func (u *Upload) DeletePhoto(ctx context.Context, photoURL, ownerID string) error {
	if u.storage == nil || IsSimulatedURL(photoURL) {
		return nil
	}

	key := path.Join("photos", ownerID, path.Base(photoURL))
	if err := u.storage.Delete(ctx, key); err != nil {
		return fmt.Errorf("failed to delete photo object: %w", err)
	}
	return nil
}

// IsSimulatedURL reports whether a photo URL is a synthetic placeholder.
func IsSimulatedURL(url string) bool {
	return strings.Contains(url, SimulatedUploadMarker)
}

func simulatedURL(ownerID, name string) string {
	return fmt.Sprintf("https://storage.unavailable/%s/photos/%s/%d-%s",
		SimulatedUploadMarker, ownerID, time.Now().UnixMilli(), name)
}

// sanitizeFileName reduces an original filename to a filesystem- and
// URL-safe token by dropping everything outside a conservative allow-list.
func sanitizeFileName(name string) string {
	var b strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == '.' || r == '-' || r == '_':
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return "file"
	}
	return b.String()
}
