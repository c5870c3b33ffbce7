package gphoto

import (
	"fmt"
	"log"
	"os"
	"snapbooth/models"
	"snapbooth/proc"
	"strings"
)

// DefaultExecutable is the gphoto2 binary name looked up on PATH
const DefaultExecutable = "gphoto2"

// USBPortPrefix marks ports gphoto2 reaches over USB (PTP)
const USBPortPrefix = "usb:"

// Config keys set before every capture
const (
	ConfigCaptureTarget = "capturetarget"
	ConfigImageFormat   = "imageformat"
)

// Client wraps gphoto2 command execution
type Client struct {
	Path   string
	runner proc.Runner
}

// NewClient creates a gphoto2 client. An empty path uses DefaultExecutable.
func NewClient(path string, runner proc.Runner) *Client {
	if path == "" {
		path = DefaultExecutable
	}
	return &Client{
		Path:   path,
		runner: runner,
	}
}

// Available reports whether gphoto2 can be started and answers --version
func (c *Client) Available() bool {
	res, err := c.runner.Run(c.Path, "--version")
	if err != nil {
		log.Printf("gphoto2 not available: %v", err)
		return false
	}
	return res.Success()
}

// AutoDetect returns the USB cameras reported by 'gphoto2 --auto-detect'
func (c *Client) AutoDetect() ([]models.CameraInfo, error) {
	res, err := c.runner.Run(c.Path, "--auto-detect", "--debug-logfile="+os.DevNull)
	if err != nil {
		return nil, err
	}
	if !res.Success() {
		return nil, fmt.Errorf("camera detection failed (exit %d): %s",
			res.ExitCode, strings.TrimSpace(string(res.Stderr)))
	}
	return ParseAutoDetect(string(res.Stdout)), nil
}

// SetConfig sets one configuration value on the camera at port
func (c *Client) SetConfig(port, key, value string) error {
	res, err := c.runner.Run(c.Path, "--port", port, "--set-config", key+"="+value)
	if err != nil {
		return err
	}
	if !res.Success() {
		return fmt.Errorf("set-config %s=%s failed: %s", key, value, strings.TrimSpace(res.Combined()))
	}
	return nil
}

// CaptureImageAndDownload triggers the shutter and downloads the image to
// filename, overwriting any existing file. The raw result is returned since
// some camera/driver combinations exit non-zero after a successful download.
func (c *Client) CaptureImageAndDownload(port, filename string, skipExisting bool) (proc.Result, error) {
	args := []string{
		"--port", port,
		"--capture-image-and-download",
		"--filename", filename,
		"--force-overwrite",
	}
	if skipExisting {
		args = append(args, "--skip-existing")
	}
	return c.runner.Run(c.Path, args...)
}

// ParseAutoDetect parses the output of 'gphoto2 --auto-detect':
//
//	Model                          Port
//	----------------------------------------------------------
//	Canon EOS 5D Mark III          usb:001,005
//
// Only USB ports are kept. Malformed lines are skipped.
func ParseAutoDetect(output string) []models.CameraInfo {
	var cameras []models.CameraInfo
	lines := strings.Split(output, "\n")

	for i, line := range lines {
		// Skip header, separator and empty lines
		if i < 2 || strings.TrimSpace(line) == "" {
			continue
		}

		parts := strings.Fields(line)
		if len(parts) < 2 {
			continue
		}

		port := parts[len(parts)-1]
		if !strings.HasPrefix(port, USBPortPrefix) {
			continue
		}

		cameras = append(cameras, models.CameraInfo{
			Model: strings.Join(parts[:len(parts)-1], " "),
			Port:  port,
		})
	}

	return cameras
}
