package wpd

import (
	"fmt"
	"log"
	"snapbooth/models"
	"snapbooth/proc"
	"strings"
)

// PortPrefix marks cameras found only by the Windows device manager.
// Some camera/driver combinations are visible to Windows (Portable Devices)
// but expose no transport gphoto2 can use. They are listed so the UI can
// show them, but they cannot be captured from.
const PortPrefix = "wpd:"

// Shell is the executable used to run the device query
const Shell = "powershell"

// Query lists present, healthy PnP devices whose name looks like a camera,
// one "FriendlyName|InstanceId" pair per line. -like is case-insensitive.
const Query = `Get-PnpDevice -PresentOnly | ` +
	`Where-Object { ($_.FriendlyName -like '*Nikon*' -or $_.FriendlyName -like '*Canon*' -or ` +
	`$_.FriendlyName -like '*DSC*' -or $_.FriendlyName -like '*DSLR*') -and $_.Status -eq 'OK' } | ` +
	`ForEach-Object { "$($_.FriendlyName)|$($_.InstanceId)" }`

// Device is a camera as reported by the device manager
type Device struct {
	Name         string
	InstanceID   string
	Manufacturer string
}

// CameraInfo converts the device into an enumeration record
func (d Device) CameraInfo() models.CameraInfo {
	return models.CameraInfo{
		Model: fmt.Sprintf("%s (%s)", d.Name, d.Manufacturer),
		Port:  PortPrefix + d.InstanceID,
	}
}

// Lister runs the device-manager query
type Lister struct {
	runner proc.Runner
}

func NewLister(runner proc.Runner) *Lister {
	return &Lister{runner: runner}
}

// Devices returns the cameras known to the device manager.
// Any failure yields an empty list: this is a best-effort fallback.
func (l *Lister) Devices() []Device {
	res, err := l.runner.Run(Shell, "-NoProfile", "-NonInteractive", "-Command", Query)
	if err != nil {
		log.Printf("Device manager query failed: %v", err)
		return nil
	}
	if !res.Success() {
		log.Printf("Device manager query exited %d: %s", res.ExitCode, strings.TrimSpace(string(res.Stderr)))
		return nil
	}
	return Parse(string(res.Stdout))
}

// Cameras returns Devices as enumeration records
func (l *Lister) Cameras() []models.CameraInfo {
	devices := l.Devices()
	cameras := make([]models.CameraInfo, 0, len(devices))
	for _, d := range devices {
		cameras = append(cameras, d.CameraInfo())
	}
	return cameras
}

// Parse reads "FriendlyName|InstanceId" lines, splitting on the first '|'
func Parse(output string) []Device {
	var devices []Device
	for _, line := range strings.Split(output, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}

		name, id, ok := strings.Cut(line, "|")
		name, id = strings.TrimSpace(name), strings.TrimSpace(id)
		if !ok || name == "" || id == "" {
			continue
		}

		devices = append(devices, Device{
			Name:         name,
			InstanceID:   id,
			Manufacturer: Manufacturer(name),
		})
	}
	return devices
}

// Manufacturer guesses the vendor from a device name
func Manufacturer(name string) string {
	lower := strings.ToLower(name)
	switch {
	case strings.Contains(lower, "nikon"):
		return "Nikon"
	case strings.Contains(lower, "canon"):
		return "Canon"
	default:
		return "Unknown"
	}
}
