package service

import (
	"fmt"
	"log"
	"os"
	"path/filepath"
	"snapbooth/models"
	"snapbooth/store"
	"time"
)

// Notifier pushes a message to the UI clients following an event
type Notifier interface {
	BroadcastToEvent(eventID int64, message any)
}

// BoothService ties camera captures to booth events
type BoothService struct {
	cameras  *CameraService
	store    *store.Store
	notifier Notifier
	photoDir string
	now      func() time.Time
}

func NewBoothService(cameras *CameraService, st *store.Store, notifier Notifier, photoDir string) *BoothService {
	return &BoothService{
		cameras:  cameras,
		store:    st,
		notifier: notifier,
		photoDir: photoDir,
		now:      time.Now,
	}
}

// CaptureToEvent shoots with the camera at cameraIndex, stores the picture
// under the event's photo directory and records it
func (b *BoothService) CaptureToEvent(eventID int64, cameraIndex int) (*models.EventCapture, error) {
	event, err := b.store.GetEvent(eventID)
	if err != nil {
		return nil, err
	}

	count, err := b.store.PhotoCount(eventID)
	if err != nil {
		return nil, err
	}
	if event.MaxPhotos > 0 && count >= event.MaxPhotos {
		return nil, fmt.Errorf("event %d has %d/%d photos: %w", eventID, count, event.MaxPhotos, ErrPhotoLimit)
	}

	path := b.photoPath(eventID)
	result, err := b.cameras.CaptureAndSave(cameraIndex, path)
	if err != nil {
		return nil, err
	}

	photoID, err := b.store.AddPhoto(models.Photo{EventID: eventID, FilePath: path})
	if err != nil {
		// Not recorded, so nothing would ever list or clean up the file
		if rmErr := os.Remove(path); rmErr != nil {
			log.Printf("Failed to remove unrecorded photo %s: %v", path, rmErr)
		}
		return nil, err
	}
	photo, err := b.store.GetPhoto(photoID)
	if err != nil {
		return nil, err
	}

	log.Printf("Event %d: photo %d saved to %s (%d/%d)", eventID, photo.ID, path, count+1, event.MaxPhotos)

	if b.notifier != nil {
		b.notifier.BroadcastToEvent(eventID, map[string]any{
			"type":         "photo_captured",
			"event_id":     eventID,
			"photo":        photo,
			"camera_model": result.CameraModel,
		})
	}

	return &models.EventCapture{Photo: *photo, Capture: *result}, nil
}

func (b *BoothService) photoPath(eventID int64) string {
	name := fmt.Sprintf("photo_%d.jpg", b.now().UnixNano())
	return filepath.Join(b.photoDir, fmt.Sprintf("event_%d", eventID), name)
}
