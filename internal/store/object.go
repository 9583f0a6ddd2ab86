package store

import (
	"context"
	"time"
)

// MaxObjectSize is the upload ceiling enforced before any write.
const MaxObjectSize = 50 << 20 // 50 MiB

// DownloadURLExpiry bounds how long a generated download link stays valid.
const DownloadURLExpiry = time.Hour

// ObjectInfo identifies a stored binary object.
type ObjectInfo struct {
	Key string `json:"key"`
	URL string `json:"url"`
}

// ObjectStore persists binary payloads (artwork images). Delete is
// best-effort by contract: callers rely on their primary operation
// succeeding even if object cleanup lags, so failures are logged, never
// returned.
type ObjectStore interface {
	Upload(ctx context.Context, data []byte, filename, mimeType string) (ObjectInfo, error)
	Delete(ctx context.Context, key string)
	URL(ctx context.Context, key string) (string, error)
}
