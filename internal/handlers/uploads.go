package handlers

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/valyala/fasthttp"
)

// uploads saves multipart files to the temp directory and removes whatever
// the media relay did not consume.
type uploads struct {
	dir   string
	saved []string
}

func newUploads(dir string) *uploads {
	return &uploads{dir: dir}
}

// file saves the named form file. Returns nil when the request has no such
// file.
func (u *uploads) file(c *fiber.Ctx, field string) (*dto.Upload, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		if errors.Is(err, fasthttp.ErrMissingFile) || errors.Is(err, fasthttp.ErrNoMultipartForm) {
			return nil, nil
		}
		return nil, err
	}
	if err := os.MkdirAll(u.dir, 0o755); err != nil {
		return nil, err
	}

	path := filepath.Join(u.dir, uuid.NewString()+strings.ToLower(filepath.Ext(fh.Filename)))
	if err := c.SaveFile(fh, path); err != nil {
		return nil, err
	}
	u.saved = append(u.saved, path)
	return &dto.Upload{Path: path}, nil
}

// cleanup removes saved files that are still on disk.
func (u *uploads) cleanup() {
	for _, p := range u.saved {
		_ = os.Remove(p)
	}
}
