package service

import (
	"errors"
	"path/filepath"
	"snapbooth/config"
	"snapbooth/models"
	"snapbooth/store"
	"strings"
	"testing"
)

type recordingNotifier struct {
	events   []int64
	messages []any
}

func (n *recordingNotifier) BroadcastToEvent(eventID int64, message any) {
	n.events = append(n.events, eventID)
	n.messages = append(n.messages, message)
}

func newTestBooth(t *testing.T, tool *fakeTool) (*BoothService, *store.Store, *recordingNotifier) {
	t.Helper()
	db, err := config.InitDatabase(filepath.Join(t.TempDir(), "booth.db"))
	if err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	notifier := &recordingNotifier{}
	booth := NewBoothService(newTestService(t, tool, "linux"), st, notifier, t.TempDir())
	return booth, st, notifier
}

func TestCaptureToEvent(t *testing.T) {
	tool := &fakeTool{detect: canonListing, image: []byte("jpeg-bytes")}
	booth, st, notifier := newTestBooth(t, tool)

	eventID, err := st.CreateEvent(models.Event{Name: "Wedding", Date: "2026-06-01", Time: "18:00"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}

	got, err := booth.CaptureToEvent(eventID, 0)
	if err != nil {
		t.Fatalf("CaptureToEvent: %v", err)
	}

	if got.Photo.EventID != eventID {
		t.Errorf("photo event = %d, want %d", got.Photo.EventID, eventID)
	}
	if !strings.Contains(got.Photo.FilePath, "event_") {
		t.Errorf("photo path %q should be under the event directory", got.Photo.FilePath)
	}
	if got.Capture.CameraModel != "Canon EOS 5D Mark III" {
		t.Errorf("camera model = %q", got.Capture.CameraModel)
	}

	count, err := st.PhotoCount(eventID)
	if err != nil || count != 1 {
		t.Errorf("PhotoCount = %d, %v; want 1", count, err)
	}
	if len(notifier.events) != 1 || notifier.events[0] != eventID {
		t.Errorf("notifications = %v, want one for event %d", notifier.events, eventID)
	}
}

func TestCaptureToEventPhotoLimit(t *testing.T) {
	tool := &fakeTool{detect: canonListing, image: []byte("jpeg")}
	booth, st, notifier := newTestBooth(t, tool)

	eventID, err := st.CreateEvent(models.Event{Name: "Party", Date: "2026-06-01", Time: "20:00", MaxPhotos: 1})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := booth.CaptureToEvent(eventID, 0); err != nil {
		t.Fatalf("first capture: %v", err)
	}

	_, err = booth.CaptureToEvent(eventID, 0)
	if !errors.Is(err, ErrPhotoLimit) {
		t.Fatalf("expected photo limit error, got %v", err)
	}
	if n := tool.count("--capture-image-and-download"); n != 1 {
		t.Errorf("capture ran %d times, want 1", n)
	}
	if len(notifier.events) != 1 {
		t.Errorf("got %d notifications, want 1", len(notifier.events))
	}
}

func TestCaptureToEventUnknownEvent(t *testing.T) {
	booth, _, _ := newTestBooth(t, &fakeTool{detect: canonListing})

	if _, err := booth.CaptureToEvent(42, 0); !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected store.ErrNotFound, got %v", err)
	}
}

func TestCaptureToEventCameraErrorNotRecorded(t *testing.T) {
	tool := &fakeTool{detect: canonListing, captureExit: 1}
	booth, st, _ := newTestBooth(t, tool)

	eventID, _ := st.CreateEvent(models.Event{Name: "Gala", Date: "2026-06-01", Time: "19:00"})
	if _, err := booth.CaptureToEvent(eventID, 0); KindOf(err) != ErrCapture {
		t.Fatalf("expected capture error, got %v", err)
	}
	if n, _ := st.PhotoCount(eventID); n != 0 {
		t.Errorf("failed capture recorded %d photos", n)
	}
}

func TestCaptureToEventRemovesUnrecordedPhoto(t *testing.T) {
	db, err := config.InitDatabase(filepath.Join(t.TempDir(), "booth.db"))
	if err != nil {
		t.Fatalf("InitDatabase: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	st := store.New(db)
	eventID, err := st.CreateEvent(models.Event{Name: "Expo", Date: "2026-06-01", Time: "10:00"})
	if err != nil {
		t.Fatalf("CreateEvent: %v", err)
	}
	if _, err := db.Exec(`CREATE TRIGGER reject_photos BEFORE INSERT ON photos
		BEGIN SELECT RAISE(ABORT, 'disk full'); END`); err != nil {
		t.Fatalf("create trigger: %v", err)
	}

	photoDir := t.TempDir()
	notifier := &recordingNotifier{}
	tool := &fakeTool{detect: canonListing, image: []byte("jpeg")}
	booth := NewBoothService(newTestService(t, tool, "linux"), st, notifier, photoDir)

	if _, err := booth.CaptureToEvent(eventID, 0); err == nil || !strings.Contains(err.Error(), "disk full") {
		t.Fatalf("expected insert failure, got %v", err)
	}
	if n := tool.count("--capture-image-and-download"); n != 1 {
		t.Fatalf("capture ran %d times, want 1", n)
	}

	left, err := filepath.Glob(filepath.Join(photoDir, "event_*", "*.jpg"))
	if err != nil {
		t.Fatal(err)
	}
	if len(left) != 0 {
		t.Errorf("unrecorded photos left on disk: %v", left)
	}
	if len(notifier.events) != 0 {
		t.Errorf("got %d notifications for a failed capture", len(notifier.events))
	}
}
