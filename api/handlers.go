package api

import (
	"errors"
	"log"
	"net/http"
	"snapbooth/models"
	"snapbooth/service"
	"snapbooth/store"
	"strconv"

	"github.com/gin-gonic/gin"
)

// CheckSupport reports whether DSLR capture is possible on this machine
func CheckSupport(c *gin.Context, cs *service.CameraService) {
	c.JSON(http.StatusOK, models.SuccessResponse(models.SupportResponse{
		Supported: cs.CheckSupport(),
	}))
}

// ListCameras returns the connected cameras
func ListCameras(c *gin.Context, cs *service.CameraService) {
	cameras, err := cs.ListCameras()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(cameras))
}

// Capture takes a picture and returns it without keeping a copy
func Capture(c *gin.Context, cs *service.CameraService) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}

	result, err := cs.Capture(index)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(result))
}

// CaptureAndSave takes a picture and keeps it at the requested path
func CaptureAndSave(c *gin.Context, cs *service.CameraService) {
	index, ok := intParam(c, "index")
	if !ok {
		return
	}

	var req models.CaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request: path is required"))
		return
	}

	result, err := cs.CaptureAndSave(index, req.Path)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(result))
}

// statusFor maps service and store errors to HTTP status codes
func statusFor(err error) int {
	switch service.KindOf(err) {
	case service.ErrNotFound:
		return http.StatusNotFound
	case service.ErrIndex:
		return http.StatusBadRequest
	case service.ErrCapabilities:
		return http.StatusUnprocessableEntity
	case service.ErrCapture, service.ErrExecution:
		return http.StatusBadGateway
	case service.ErrIO:
		return http.StatusInternalServerError
	}

	switch {
	case errors.Is(err, store.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, store.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrPhotoLimit):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func respondError(c *gin.Context, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		log.Printf("%s %s failed: %v", c.Request.Method, c.Request.URL.Path, err)
	}
	c.JSON(status, models.ErrorResponse(err.Error()))
}

func intParam(c *gin.Context, name string) (int, bool) {
	v, err := strconv.Atoi(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid "+name))
		return 0, false
	}
	return v, true
}

func idParam(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid id"))
		return 0, false
	}
	return id, true
}
