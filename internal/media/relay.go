// Package media moves uploaded files to the media host and removes them again.
package media

import (
	"context"
	"errors"
	"fmt"
	"mime"
	"path/filepath"
	"strings"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
	"github.com/google/uuid"
)

var ErrEmptyPath = errors.New("media: local file path is required")

// Asset is a file that now lives on the media host.
type Asset struct {
	URL string
	// Duration in seconds; zero when the file is not a video or probing is off.
	Duration float64
}

// Relay uploads local temp files to the media host and deletes hosted files by
// URL. Upload always removes the local file, whether or not it succeeded.
type Relay interface {
	Upload(ctx context.Context, localPath string) (*Asset, error)
	Delete(ctx context.Context, ref string) error
}

// New builds the relay selected by MEDIA_DRIVER.
func New(ctx context.Context, cfg *config.Config) (Relay, error) {
	switch cfg.MediaDriver {
	case "s3":
		r, err := NewS3Relay(ctx, cfg)
		if err != nil {
			return nil, err
		}
		return r, nil
	case "local", "":
		r, err := NewLocalRelay(cfg.LocalMediaDir, cfg.LocalMediaBaseURL, cfg.FFProbeEnabled)
		if err != nil {
			return nil, err
		}
		return r, nil
	default:
		return nil, fmt.Errorf("media: unknown driver %q", cfg.MediaDriver)
	}
}

func objectName(prefix, localPath string) string {
	name := uuid.NewString() + strings.ToLower(filepath.Ext(localPath))
	if prefix == "" {
		return name
	}
	return strings.Trim(prefix, "/") + "/" + name
}

var videoTypes = map[string]string{
	".mp4":  "video/mp4",
	".m4v":  "video/x-m4v",
	".mov":  "video/quicktime",
	".webm": "video/webm",
	".mkv":  "video/x-matroska",
	".avi":  "video/x-msvideo",
}

func contentType(localPath string) string {
	if ct, ok := videoTypes[strings.ToLower(filepath.Ext(localPath))]; ok {
		return ct
	}
	if ct := mime.TypeByExtension(strings.ToLower(filepath.Ext(localPath))); ct != "" {
		return ct
	}
	return "application/octet-stream"
}

func isVideo(localPath string) bool {
	return strings.HasPrefix(contentType(localPath), "video/")
}
