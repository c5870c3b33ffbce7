package api

import (
	"errors"
	"io"
	"net/http"
	"snapbooth/models"
	"snapbooth/service"
	"snapbooth/store"

	"github.com/gin-gonic/gin"
)

func ListEvents(c *gin.Context, st *store.Store) {
	events, err := st.ListEvents()
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(events))
}

func CreateEvent(c *gin.Context, st *store.Store, wsHub *WebSocketHub) {
	var event models.Event
	if err := c.ShouldBindJSON(&event); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request: "+err.Error()))
		return
	}

	id, err := st.CreateEvent(event)
	if err != nil {
		respondError(c, err)
		return
	}
	created, err := st.GetEvent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	notifyEventsChanged(wsHub, "created", id)
	c.JSON(http.StatusCreated, models.SuccessResponse(created))
}

func GetEvent(c *gin.Context, st *store.Store) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	event, err := st.GetEvent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(event))
}

func UpdateEvent(c *gin.Context, st *store.Store, wsHub *WebSocketHub) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var update models.EventUpdate
	if err := c.ShouldBindJSON(&update); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request"))
		return
	}

	if err := st.UpdateEvent(id, update); err != nil {
		respondError(c, err)
		return
	}
	event, err := st.GetEvent(id)
	if err != nil {
		respondError(c, err)
		return
	}
	notifyEventsChanged(wsHub, "updated", id)
	c.JSON(http.StatusOK, models.SuccessResponse(event))
}

func DeleteEvent(c *gin.Context, st *store.Store, wsHub *WebSocketHub) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if err := st.DeleteEvent(id); err != nil {
		respondError(c, err)
		return
	}
	notifyEventsChanged(wsHub, "deleted", id)
	c.JSON(http.StatusOK, models.MessageResponse("event deleted"))
}

// notifyEventsChanged tells every connected UI to refresh its event list
func notifyEventsChanged(wsHub *WebSocketHub, action string, eventID int64) {
	wsHub.BroadcastToAll(gin.H{
		"type":     "events_changed",
		"action":   action,
		"event_id": eventID,
	})
}

func ListEventPhotos(c *gin.Context, st *store.Store) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	if _, err := st.GetEvent(id); err != nil {
		respondError(c, err)
		return
	}
	photos, err := st.EventPhotos(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(photos))
}

// AddEventPhoto records a photo taken outside the DSLR path (e.g. webcam mode)
func AddEventPhoto(c *gin.Context, st *store.Store) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.PhotoRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request: file_path is required"))
		return
	}
	if _, err := st.GetEvent(id); err != nil {
		respondError(c, err)
		return
	}

	photoID, err := st.AddPhoto(models.Photo{EventID: id, FilePath: req.FilePath})
	if err != nil {
		respondError(c, err)
		return
	}
	photo, err := st.GetPhoto(photoID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse(photo))
}

// CaptureToEvent shoots with a DSLR and files the picture under the event
func CaptureToEvent(c *gin.Context, bs *service.BoothService) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	// An empty body selects the first camera
	var req models.EventCaptureRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request"))
		return
	}

	capture, err := bs.CaptureToEvent(id, req.CameraIndex)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse(capture))
}

func ListEventShares(c *gin.Context, st *store.Store) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	shares, err := st.EventShares(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(shares))
}

func EventShareStats(c *gin.Context, st *store.Store) {
	id, ok := idParam(c)
	if !ok {
		return
	}
	stats, err := st.ShareStats(id)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.SuccessResponse(stats))
}

func CreateShare(c *gin.Context, st *store.Store) {
	var share models.Share
	if err := c.ShouldBindJSON(&share); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request: "+err.Error()))
		return
	}
	if _, err := st.GetPhoto(share.PhotoID); err != nil {
		respondError(c, err)
		return
	}

	id, err := st.CreateShare(share)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, models.SuccessResponse(gin.H{"id": id}))
}

func UpdateShareStatus(c *gin.Context, st *store.Store) {
	id, ok := idParam(c)
	if !ok {
		return
	}

	var req models.ShareStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, models.ErrorResponse("invalid request: "+err.Error()))
		return
	}

	if err := st.UpdateShareStatus(id, req.Status); err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, models.MessageResponse("share updated"))
}
