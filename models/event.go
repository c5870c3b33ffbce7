package models

import "time"

type Event struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name" binding:"required"`
	Date          string    `json:"date" binding:"required"`
	Time          string    `json:"time" binding:"required"`
	Location      string    `json:"location,omitempty"`
	Description   string    `json:"description,omitempty"`
	MaxPhotos     int       `json:"max_photos"`
	PaperSize     string    `json:"paper_size"`
	TemplateImage string    `json:"template_image,omitempty"`
	PhotoBoxes    string    `json:"photo_boxes,omitempty"` // JSON layout of photo slots on the template
	CreatedAt     time.Time `json:"created_at"`
}

// EventUpdate carries a partial update; nil fields are left untouched
type EventUpdate struct {
	Name        *string `json:"name"`
	Date        *string `json:"date"`
	Time        *string `json:"time"`
	Location    *string `json:"location"`
	Description *string `json:"description"`
	MaxPhotos   *int    `json:"max_photos"`
}

type Photo struct {
	ID       int64     `json:"id"`
	EventID  int64     `json:"event_id"`
	FilePath string    `json:"file_path"`
	TakenAt  time.Time `json:"taken_at"`
}

type PhotoRequest struct {
	FilePath string `json:"file_path" binding:"required"`
}

type EventCaptureRequest struct {
	CameraIndex int `json:"camera_index"`
}

type EventCapture struct {
	Photo   Photo         `json:"photo"`
	Capture CaptureResult `json:"capture"`
}

// Share types
const (
	ShareEmail    = "email"
	ShareSMS      = "sms"
	ShareFacebook = "facebook"
	ShareTwitter  = "twitter"
	SharePrint    = "print"
	ShareUpload   = "upload"
)

// Share statuses
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

type Share struct {
	ID          int64     `json:"id"`
	PhotoID     int64     `json:"photo_id" binding:"required"`
	Type        string    `json:"type" binding:"required,oneof=email sms facebook twitter print upload"`
	Status      string    `json:"status,omitempty" binding:"omitempty,oneof=pending completed failed"`
	Destination string    `json:"destination,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
	EventID     int64     `json:"event_id,omitempty"` // filled when listed per event
}

type ShareStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=pending completed failed"`
}

type ShareStat struct {
	Type      string `json:"type"`
	Total     int    `json:"total"`
	Completed int    `json:"completed"`
	Pending   int    `json:"pending"`
}

// ValidShareType reports whether t is a known share channel
func ValidShareType(t string) bool {
	switch t {
	case ShareEmail, ShareSMS, ShareFacebook, ShareTwitter, SharePrint, ShareUpload:
		return true
	}
	return false
}

// ValidShareStatus reports whether s is a known share status
func ValidShareStatus(s string) bool {
	switch s {
	case StatusPending, StatusCompleted, StatusFailed:
		return true
	}
	return false
}
