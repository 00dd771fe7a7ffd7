package media

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path"
	"path/filepath"
	"strings"
)

// LocalRelay keeps media in a directory served by the API itself.
type LocalRelay struct {
	dir     string
	baseURL string
	probe   bool
}

func NewLocalRelay(dir, baseURL string, probe bool) (*LocalRelay, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create media dir: %w", err)
	}
	return &LocalRelay{dir: dir, baseURL: strings.TrimSuffix(baseURL, "/"), probe: probe}, nil
}

func (r *LocalRelay) Upload(ctx context.Context, localPath string) (*Asset, error) {
	if localPath == "" {
		return nil, ErrEmptyPath
	}
	defer os.Remove(localPath)

	asset := &Asset{}
	if r.probe && isVideo(localPath) {
		d, err := ProbeDuration(localPath)
		if err != nil {
			slog.WarnContext(ctx, "video duration probe failed", "path", localPath, "error", err)
		}
		asset.Duration = d
	}

	name := objectName("", localPath)
	if err := copyFile(localPath, filepath.Join(r.dir, name)); err != nil {
		return nil, err
	}
	asset.URL = r.baseURL + "/" + name
	return asset, nil
}

func (r *LocalRelay) Delete(_ context.Context, ref string) error {
	name := path.Base(strings.TrimSpace(ref))
	if name == "" || name == "." || name == "/" {
		return nil
	}
	err := os.Remove(filepath.Join(r.dir, name))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("remove %s: %w", name, err)
	}
	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("open %s: %w", src, err)
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("create %s: %w", dst, err)
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return fmt.Errorf("copy to %s: %w", dst, err)
	}
	return out.Close()
}
