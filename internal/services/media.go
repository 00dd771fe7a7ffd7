package services

import (
	"context"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/media"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/metrics"
)

// upload moves a request file to the media host.
func upload(ctx context.Context, relay media.Relay, up *dto.Upload, what string) (*media.Asset, error) {
	asset, err := relay.Upload(ctx, up.Path)
	if err != nil {
		metrics.MediaUploads.WithLabelValues("failed").Inc()
		return nil, uploadError("Failed to upload "+what, err)
	}
	metrics.MediaUploads.WithLabelValues("ok").Inc()
	return asset, nil
}

// discardMedia deletes hosted files without failing the caller. Each failure
// is logged and counted.
func discardMedia(ctx context.Context, relay media.Relay, refs ...string) {
	for _, ref := range refs {
		if ref == "" {
			continue
		}
		if err := relay.Delete(ctx, ref); err != nil {
			metrics.MediaDeleteFailures.Inc()
			logging.FromContext(ctx).Error("media delete failed", "op", "media.delete", "ref", ref, "error", err)
		}
	}
}
