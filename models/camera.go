package models

// CameraInfo is one camera found during enumeration.
// Port is an opaque locator: a gphoto2 port such as "usb:001,005", or
// "wpd:<instance id>" for cameras only the Windows device manager can see.
type CameraInfo struct {
	Model string `json:"model"`
	Port  string `json:"port"`
}

type CaptureResult struct {
	ImageData   string `json:"image_data"` // Base64 encoded JPEG
	CameraModel string `json:"camera_model"`
}

type CaptureRequest struct {
	Path string `json:"path" binding:"required"`
}
