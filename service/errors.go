package service

import (
	"errors"
	"fmt"
)

// ErrorKind classifies camera failures so callers can react to them
type ErrorKind int

const (
	ErrExecution    ErrorKind = iota + 1 // tool or shell could not be spawned
	ErrNotFound                          // no camera detected by any source
	ErrIndex                             // camera index out of range
	ErrCapabilities                      // camera is detection-only, no tethered capture
	ErrCapture                           // capture ran but produced no file
	ErrIO                                // captured file could not be read back
)

func (k ErrorKind) String() string {
	switch k {
	case ErrExecution:
		return "execution"
	case ErrNotFound:
		return "not found"
	case ErrIndex:
		return "index"
	case ErrCapabilities:
		return "capabilities"
	case ErrCapture:
		return "capture"
	case ErrIO:
		return "io"
	default:
		return fmt.Sprintf("ErrorKind(%d)", int(k))
	}
}

// Error is a camera failure with an operator-facing message
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s\n\nError: %v", e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf returns the kind of the first *Error in err's chain, or 0
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

// ErrPhotoLimit is returned when an event already holds max_photos photos
var ErrPhotoLimit = errors.New("photo limit reached for this event")

const msgNoCameras = "No cameras detected. Please ensure:\n" +
	"1. Camera is connected via USB\n" +
	"2. Camera is powered on\n" +
	"3. Camera is in PC/PTP mode (not mass storage)"

const msgWebcamMode = "Direct DSLR capture is not available.\n\n" +
	"Your camera is detected but needs to be used in webcam mode:\n" +
	"1. Install Nikon Webcam Utility or DigiCamControl\n" +
	"2. Launch the utility software\n" +
	"3. Your camera will appear as a webcam\n" +
	"4. Use webcam mode in this app instead"
