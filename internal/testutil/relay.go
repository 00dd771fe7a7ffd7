package testutil

import (
	"context"
	"errors"
	"path/filepath"
	"sync"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/media"
)

var ErrRelay = errors.New("relay unavailable")

// Relay is an in-memory media.Relay that records every call.
type Relay struct {
	mu         sync.Mutex
	Uploaded   []string
	Deleted    []string
	Duration   float64
	FailUpload bool
	FailDelete bool
}

var _ media.Relay = (*Relay)(nil)

func (r *Relay) Upload(ctx context.Context, localPath string) (*media.Asset, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailUpload {
		return nil, ErrRelay
	}
	url := "https://media.test/" + filepath.Base(localPath)
	r.Uploaded = append(r.Uploaded, url)
	return &media.Asset{URL: url, Duration: r.Duration}, nil
}

func (r *Relay) Delete(ctx context.Context, ref string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.FailDelete {
		return ErrRelay
	}
	r.Deleted = append(r.Deleted, ref)
	return nil
}

// DeletedRefs returns a copy of the deleted references.
func (r *Relay) DeletedRefs() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.Deleted...)
}
