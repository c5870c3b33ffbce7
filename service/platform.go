package service

import (
	"snapbooth/models"
	"snapbooth/proc"
	"snapbooth/wpd"
)

// Fallback is a secondary camera source used when gphoto2 finds nothing.
// It never fails: problems degrade to an empty list.
type Fallback interface {
	Cameras() []models.CameraInfo
}

// Platform carries the OS specific parts of camera discovery
type Platform struct {
	Name string
	// SearchDirs are put on PATH before gphoto2 is invoked
	SearchDirs []string
	Fallback   Fallback
}

// PlatformFor selects the discovery strategy for goos (a runtime.GOOS value)
func PlatformFor(goos string, searchDirs []string, runner proc.Runner) Platform {
	if goos == "windows" {
		return Platform{
			Name:       goos,
			SearchDirs: searchDirs,
			Fallback:   wpd.NewLister(runner),
		}
	}
	return Platform{Name: goos}
}
