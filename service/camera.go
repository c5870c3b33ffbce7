package service

import (
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"snapbooth/gphoto"
	"snapbooth/models"
	"snapbooth/proc"
	"snapbooth/wpd"
	"strings"
	"sync/atomic"
	"time"
)

// CameraService finds DSLR cameras and captures images from them.
// Nothing is cached: every call re-enumerates, so an index refers to the
// camera list as it is at the time of the call.
type CameraService struct {
	gphoto   *gphoto.Client
	platform Platform
	tempDir  string
	now      func() time.Time
	seq      atomic.Uint64
}

// NewCameraService creates a camera service. An empty tempDir uses os.TempDir().
func NewCameraService(client *gphoto.Client, platform Platform, tempDir string) *CameraService {
	if tempDir == "" {
		tempDir = os.TempDir()
	}
	return &CameraService{
		gphoto:   client,
		platform: platform,
		tempDir:  tempDir,
		now:      time.Now,
	}
}

// CheckSupport reports whether DSLR capture can be offered: gphoto2 answers,
// or the platform fallback sees at least one camera.
func (s *CameraService) CheckSupport() bool {
	s.preparePath()
	if s.gphoto.Available() {
		return true
	}
	if s.platform.Fallback != nil {
		return len(s.platform.Fallback.Cameras()) > 0
	}
	return false
}

// ListCameras returns the connected cameras. gphoto2 is preferred; the
// platform fallback is only consulted when it finds nothing.
func (s *CameraService) ListCameras() ([]models.CameraInfo, error) {
	s.preparePath()

	var detectErr error
	if s.gphoto.Available() {
		cameras, err := s.gphoto.AutoDetect()
		if err != nil {
			log.Printf("gphoto2 auto-detect failed: %v", err)
			detectErr = err
		} else if len(cameras) > 0 {
			return cameras, nil
		}
	}

	if s.platform.Fallback != nil {
		if cameras := s.platform.Fallback.Cameras(); len(cameras) > 0 {
			log.Printf("Using %d camera(s) from %s device manager", len(cameras), s.platform.Name)
			return cameras, nil
		}
	}

	return nil, &Error{Kind: ErrNotFound, Message: msgNoCameras, Err: detectErr}
}

// Capture takes a picture with the camera at index and returns it base64
// encoded. The image goes through a temporary file that is removed afterwards.
func (s *CameraService) Capture(index int) (*models.CaptureResult, error) {
	camera, err := s.resolve(index)
	if err != nil {
		return nil, err
	}

	dest := s.tempPath()
	if err := s.shoot(camera, dest, true); err != nil {
		return nil, err
	}
	defer s.discard(dest)

	return readResult(camera, dest)
}

// CaptureAndSave takes a picture with the camera at index, keeps it at path
// and returns it base64 encoded.
func (s *CameraService) CaptureAndSave(index int, path string) (*models.CaptureResult, error) {
	camera, err := s.resolve(index)
	if err != nil {
		return nil, err
	}

	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, &Error{Kind: ErrIO, Message: "Failed to create photo directory", Err: err}
		}
	}

	if err := s.shoot(camera, path, false); err != nil {
		return nil, err
	}

	return readResult(camera, path)
}

// resolve re-enumerates and picks the camera at index, rejecting cameras
// that cannot be captured from
func (s *CameraService) resolve(index int) (models.CameraInfo, error) {
	cameras, err := s.ListCameras()
	if err != nil {
		return models.CameraInfo{}, err
	}

	if index < 0 || index >= len(cameras) {
		return models.CameraInfo{}, &Error{
			Kind:    ErrIndex,
			Message: fmt.Sprintf("Camera index %d not found", index),
		}
	}

	camera := cameras[index]
	if strings.HasPrefix(camera.Port, wpd.PortPrefix) {
		return models.CameraInfo{}, &Error{Kind: ErrCapabilities, Message: msgWebcamMode}
	}
	return camera, nil
}

// shoot configures the camera and captures to dest. A non-zero exit is
// accepted when the file was written anyway.
func (s *CameraService) shoot(camera models.CameraInfo, dest string, skipExisting bool) error {
	s.configure(camera.Port)

	log.Printf("Capturing from %s (%s) to %s", camera.Model, camera.Port, dest)
	res, err := s.gphoto.CaptureImageAndDownload(camera.Port, dest, skipExisting)
	if err != nil {
		return &Error{Kind: ErrExecution, Message: "Failed to capture image", Err: err}
	}

	if !res.Success() {
		if !fileExists(dest) {
			return &Error{Kind: ErrCapture, Message: "Capture failed: " + strings.TrimSpace(res.Combined())}
		}
		log.Printf("Warning: gphoto2 exited %d but image was saved: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	return nil
}

// configure asks the camera to keep images in internal memory and shoot
// JPEG. Not every model has these keys, so failures are only logged.
func (s *CameraService) configure(port string) {
	settings := [][2]string{
		{gphoto.ConfigCaptureTarget, "0"},
		{gphoto.ConfigImageFormat, "0"},
	}
	for _, kv := range settings {
		if err := s.gphoto.SetConfig(port, kv[0], kv[1]); err != nil {
			log.Printf("Ignoring camera config failure on %s: %v", port, err)
		}
	}
}

// discard removes a temporary capture file, logging failures
func (s *CameraService) discard(path string) {
	if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
		log.Printf("Failed to remove temporary capture %s: %v", path, err)
	}
}

// tempPath names a temporary capture file. The sequence number keeps two
// captures within the same second apart.
func (s *CameraService) tempPath() string {
	name := fmt.Sprintf("dslr_capture_%d_%d.jpg", s.now().Unix(), s.seq.Add(1))
	return filepath.Join(s.tempDir, name)
}

// preparePath puts the platform's tool directories on PATH
func (s *CameraService) preparePath() {
	for _, dir := range s.platform.SearchDirs {
		if err := proc.EnsureSearchPath(dir); err != nil {
			log.Printf("Failed to add %s to PATH: %v", dir, err)
		}
	}
}

func readResult(camera models.CameraInfo, path string) (*models.CaptureResult, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &Error{Kind: ErrIO, Message: "Failed to read captured image", Err: err}
	}
	return &models.CaptureResult{
		ImageData:   base64.StdEncoding.EncodeToString(data),
		CameraModel: camera.Model,
	}, nil
}

func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
