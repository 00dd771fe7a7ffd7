package logging

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/vidtube-backend/internal/testutil"
	"github.com/google/uuid"
)

func TestMultiHandlerFansOut(t *testing.T) {
	var info, errs bytes.Buffer
	h := NewMultiHandler(
		slog.NewJSONHandler(&info, &slog.HandlerOptions{Level: slog.LevelInfo}),
		slog.NewJSONHandler(&errs, &slog.HandlerOptions{Level: slog.LevelError}),
	)
	logger := slog.New(h).With("op", "test")

	logger.Info("hello")
	logger.Error("boom", "error", "bad")

	if got := bytes.Count(info.Bytes(), []byte("\n")); got != 2 {
		t.Errorf("info handler got %d records, want 2", got)
	}
	if got := bytes.Count(errs.Bytes(), []byte("\n")); got != 1 {
		t.Fatalf("error handler got %d records, want 1", got)
	}

	var rec map[string]interface{}
	if err := json.Unmarshal(errs.Bytes(), &rec); err != nil {
		t.Fatal(err)
	}
	if rec["op"] != "test" || rec["msg"] != "boom" {
		t.Errorf("record = %v", rec)
	}
	if h.Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug should be disabled on every handler")
	}
}

func TestDBHandlerPersistsErrors(t *testing.T) {
	db := testutil.NewDB(t)
	h := NewDBHandler(db, time.Hour)
	defer h.Stop()

	userID := uuid.New().String()
	logger := slog.New(h).With("request_id", "req-1")
	logger.Info("ignored")
	logger.Error("upload failed",
		"op", "media.upload",
		"user_id", userID,
		"error", "timeout",
		"bytes", 42,
	)
	h.Flush()

	var logs []models.SystemLog
	if err := db.Find(&logs).Error; err != nil {
		t.Fatal(err)
	}
	if len(logs) != 1 {
		t.Fatalf("got %d logs, want 1", len(logs))
	}
	got := logs[0]
	if got.Message != "upload failed" || got.Level != "ERROR" {
		t.Errorf("log = %+v", got)
	}
	if got.RequestID != "req-1" || got.Operation != "media.upload" || got.Error != "timeout" {
		t.Errorf("columns = %q %q %q", got.RequestID, got.Operation, got.Error)
	}
	if got.UserID == nil || *got.UserID != userID {
		t.Errorf("user id = %v, want %s", got.UserID, userID)
	}
	var extra map[string]interface{}
	if err := json.Unmarshal(got.Attrs, &extra); err != nil {
		t.Fatal(err)
	}
	if extra["bytes"] != float64(42) {
		t.Errorf("attrs = %v", extra)
	}
}

func TestPurgeBefore(t *testing.T) {
	db := testutil.NewDB(t)
	now := time.Now()
	for _, at := range []time.Time{now.Add(-48 * time.Hour), now.Add(-time.Minute)} {
		entry := models.SystemLog{ID: uuid.New(), Timestamp: at, Level: "ERROR", Message: "x"}
		if err := db.Create(&entry).Error; err != nil {
			t.Fatal(err)
		}
	}

	deleted, err := PurgeBefore(db, now.Add(-24*time.Hour))
	if err != nil {
		t.Fatal(err)
	}
	if deleted != 1 {
		t.Errorf("deleted = %d, want 1", deleted)
	}
}

func TestFromContextFallsBackToDefault(t *testing.T) {
	if FromContext(context.Background()) != slog.Default() {
		t.Error("expected the default logger")
	}
	logger := slog.New(slog.NewJSONHandler(&bytes.Buffer{}, nil))
	if FromContext(WithLogger(context.Background(), logger)) != logger {
		t.Error("expected the stored logger")
	}
}
