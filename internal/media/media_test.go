package media

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/config"
)

func TestParseProbeDuration(t *testing.T) {
	got, err := parseProbeDuration(`{"format":{"duration":"12.480000"}}`)
	if err != nil {
		t.Fatalf("parseProbeDuration: %v", err)
	}
	if got != 12.48 {
		t.Errorf("duration = %v, want 12.48", got)
	}

	got, err = parseProbeDuration(`{"format":{}}`)
	if err != nil || got != 0 {
		t.Errorf("missing duration = (%v, %v), want (0, nil)", got, err)
	}

	if _, err := parseProbeDuration(`not json`); err == nil {
		t.Error("expected error for malformed output")
	}
}

func TestLocalRelayUploadAndDelete(t *testing.T) {
	root := t.TempDir()
	relay, err := NewLocalRelay(filepath.Join(root, "media"), "/uploads/", false)
	if err != nil {
		t.Fatalf("NewLocalRelay: %v", err)
	}

	tmp := filepath.Join(root, "avatar.PNG")
	if err := os.WriteFile(tmp, []byte("png"), 0o644); err != nil {
		t.Fatal(err)
	}

	asset, err := relay.Upload(context.Background(), tmp)
	if err != nil {
		t.Fatalf("Upload: %v", err)
	}
	if !strings.HasPrefix(asset.URL, "/uploads/") || !strings.HasSuffix(asset.URL, ".png") {
		t.Errorf("URL = %q, want /uploads/<name>.png", asset.URL)
	}
	if _, err := os.Stat(tmp); !os.IsNotExist(err) {
		t.Error("temp file should be removed after upload")
	}

	stored := filepath.Join(root, "media", filepath.Base(asset.URL))
	if _, err := os.Stat(stored); err != nil {
		t.Fatalf("stored file missing: %v", err)
	}

	if err := relay.Delete(context.Background(), asset.URL); err != nil {
		t.Fatalf("Delete: %v", err)
	}
	if _, err := os.Stat(stored); !os.IsNotExist(err) {
		t.Error("stored file should be gone after delete")
	}
	if err := relay.Delete(context.Background(), asset.URL); err != nil {
		t.Errorf("second Delete should be a no-op, got %v", err)
	}
}

func TestLocalRelayUploadRequiresPath(t *testing.T) {
	relay, err := NewLocalRelay(t.TempDir(), "/uploads", false)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := relay.Upload(context.Background(), ""); err != ErrEmptyPath {
		t.Errorf("err = %v, want ErrEmptyPath", err)
	}
}

func TestS3KeyFor(t *testing.T) {
	r := &S3Relay{baseURL: "https://cdn.example.com"}
	if got := r.keyFor("https://cdn.example.com/vidtube/a.mp4"); got != "vidtube/a.mp4" {
		t.Errorf("keyFor = %q, want vidtube/a.mp4", got)
	}
	if got := r.urlFor("vidtube/a.mp4"); got != "https://cdn.example.com/vidtube/a.mp4" {
		t.Errorf("urlFor = %q", got)
	}
	if got := objectName("/vidtube/", "clip.MP4"); !strings.HasPrefix(got, "vidtube/") || !strings.HasSuffix(got, ".mp4") {
		t.Errorf("objectName = %q", got)
	}
}

func TestContentType(t *testing.T) {
	if !isVideo("/tmp/clip.MP4") {
		t.Error("clip.MP4 should be detected as video")
	}
	if isVideo("/tmp/thumb.png") {
		t.Error("thumb.png should not be detected as video")
	}
	if got := contentType("/tmp/blob"); got != "application/octet-stream" {
		t.Errorf("contentType = %q", got)
	}
}

func TestNewSelectsDriver(t *testing.T) {
	cfg := &config.Config{MediaDriver: "local", LocalMediaDir: t.TempDir(), LocalMediaBaseURL: "/uploads"}
	r, err := New(context.Background(), cfg)
	if err != nil {
		t.Fatalf("New(local): %v", err)
	}
	if _, ok := r.(*LocalRelay); !ok {
		t.Errorf("New(local) = %T, want *LocalRelay", r)
	}

	cfg.MediaDriver = "ftp"
	if _, err := New(context.Background(), cfg); err == nil {
		t.Error("New(ftp) succeeded, want error")
	}
}
