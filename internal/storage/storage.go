// Package storage resolves stored media keys (product images, avatars,
// category icons) to public URLs. The application only ever stores the
// resolved URL; file content is served by the local static handler or the
// bucket's public endpoint.
package storage

import (
	"context"
	"log/slog"
	"path"
	"strings"
)

// Resolver maps a media key to a public URL.
type Resolver interface {
	// URL returns the public URL for key without checking it exists.
	URL(key string) string

	// Exists checks if a file exists at the given key.
	Exists(ctx context.Context, key string) (bool, error)
}

// Config selects and configures a Resolver.
type Config struct {
	Provider string // "local" or "s3"

	LocalPath string
	LocalURL  string

	S3Bucket    string
	S3Region    string
	S3Endpoint  string // optional, for R2/MinIO
	S3AccessKey string
	S3SecretKey string
	S3PublicURL string
}

// NewResolver creates a Resolver based on configuration.
func NewResolver(ctx context.Context, cfg Config) (Resolver, error) {
	switch cfg.Provider {
	case "local", "":
		return NewLocalStorage(cfg.LocalPath, cfg.LocalURL), nil
	case "s3":
		return NewS3Storage(ctx, S3Config{
			Bucket:    cfg.S3Bucket,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
			PublicURL: cfg.S3PublicURL,
		})
	default:
		return nil, ErrUnknownProvider(cfg.Provider)
	}
}

// CleanKey normalises a media key and rejects keys that escape the root.
func CleanKey(key string) (string, error) {
	key = strings.TrimSpace(key)
	if key == "" {
		return "", ErrKeyRequired
	}
	for _, seg := range strings.Split(key, "/") {
		if seg == ".." {
			return "", ErrInvalidKey(key)
		}
	}
	cleaned := strings.TrimPrefix(path.Clean("/"+key), "/")
	if cleaned == "" {
		return "", ErrInvalidKey(key)
	}
	return cleaned, nil
}

// Resolve validates key, confirms the file exists and returns its URL.
// A missing file is an error. A failed existence check is logged and the
// URL is returned anyway.
func Resolve(ctx context.Context, r Resolver, key string) (string, error) {
	cleaned, err := CleanKey(key)
	if err != nil {
		return "", err
	}

	exists, err := r.Exists(ctx, cleaned)
	if err != nil {
		slog.Default().Warn("storage: existence check failed, storing unverified url",
			"key", cleaned,
			"error", err,
		)
		return r.URL(cleaned), nil
	}
	if !exists {
		return "", ErrFileNotFound(cleaned)
	}

	return r.URL(cleaned), nil
}
