package handlers

import (
	"errors"
	"io"
	"net/http"

	gw "irrigation_gateway"
	"irrigation_gateway/internal/device"
	"irrigation_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

const (
	statusOK              = "ok"
	controllerReady       = "ready"
	controllerUnavailable = "unavailable"

	msgStartFailed     = "Failed to start zone"
	msgStopFailed      = "Failed to stop zone"
	msgSaveZoneFailed  = "Failed to save zone"
	errInvalidBodyPref = "invalid body: "
)

// statusCode maps an envelope to its HTTP status. Classification happens only here.
func statusCode(resp gw.Response) int {
	switch {
	case resp.Success:
		return http.StatusOK
	case errors.Is(resp.Cause, service.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.Is(resp.Cause, device.ErrNotInitialized):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// respond writes the envelope with its mapped status code.
func (h *Handler) respond(c *gin.Context, resp gw.Response) {
	c.JSON(statusCode(resp), resp)
}

// Centralized error logging and response for requests rejected before reaching a service.
func (h *Handler) logAndJSONError(c *gin.Context, httpCode int, userMsg, logKey string, err error, kv ...interface{}) {
	if h.log != nil && err != nil {
		fields := append([]interface{}{"err", err}, kv...)
		h.log.Infow(logKey, fields...)
	}
	c.JSON(httpCode, gw.Failed(userMsg, errInvalidBodyPref+err.Error(), err))
}

// StartZoneRequest is the start-zone payload. Numeric strings are accepted.
type StartZoneRequest struct {
	// Zone number, 1-based
	Zone any `json:"zone" swaggertype:"integer" example:"3"`
	// Run length in minutes; omitted means the zone's catalog default
	Duration any `json:"duration,omitempty" swaggertype:"integer" example:"10"`
}

// StopZoneRequest is the optional stop-zone payload. The controller always stops every zone.
type StopZoneRequest struct {
	Zone any `json:"zone,omitempty" swaggertype:"integer" example:"3"`
}

// @Summary      Health check
// @Description  Reports process liveness and whether the controller session initialized. Never contacts the controller.
// @Tags         system
// @Produce      json
// @Success      200  {object}  map[string]string
// @Router       /health [get]
func (h *Handler) health(c *gin.Context) {
	controller := controllerUnavailable
	if h.services != nil && h.services.Zones != nil && h.services.Zones.Ready() {
		controller = controllerReady
	}
	c.JSON(http.StatusOK, gin.H{
		"status":     statusOK,
		"controller": controller,
	})
}

// @Summary      Start zone
// @Description  Runs one zone for the given minutes. Retries once on device failure.
// @Tags         zones
// @Accept       json
// @Produce      json
// @Param        body  body      StartZoneRequest  true  "Zone and duration"
// @Success      200   {object}  irrigation_gateway.Response
// @Failure      400   {object}  irrigation_gateway.Response
// @Failure      500   {object}  irrigation_gateway.Response
// @Failure      503   {object}  irrigation_gateway.Response
// @Router       /api/start-zone [post]
func (h *Handler) startZone(c *gin.Context) {
	var req StartZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, msgStartFailed, "start_zone_bad_body", err)
		return
	}
	h.respond(c, h.services.Zones.RequestStart(c.Request.Context(), req.Zone, req.Duration))
}

// @Summary      Stop all zones
// @Description  Halts every zone. A zone in the body only changes the message.
// @Tags         zones
// @Accept       json
// @Produce      json
// @Param        body  body      StopZoneRequest  false  "Optional zone"
// @Success      200   {object}  irrigation_gateway.Response
// @Failure      400   {object}  irrigation_gateway.Response
// @Failure      500   {object}  irrigation_gateway.Response
// @Failure      503   {object}  irrigation_gateway.Response
// @Router       /api/stop-zone [post]
func (h *Handler) stopZone(c *gin.Context) {
	var req StopZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logAndJSONError(c, http.StatusBadRequest, msgStopFailed, "stop_zone_bad_body", err)
		return
	}
	h.respond(c, h.services.Zones.RequestStopAll(c.Request.Context(), req.Zone))
}

// @Summary      Controller info
// @Tags         zones
// @Produce      json
// @Success      200  {object}  irrigation_gateway.Response{data=models.ControllerInfo}
// @Failure      500  {object}  irrigation_gateway.Response
// @Failure      503  {object}  irrigation_gateway.Response
// @Router       /api/controller-info [get]
func (h *Handler) controllerInfo(c *gin.Context) {
	h.respond(c, h.services.Zones.RequestInfo(c.Request.Context()))
}

// @Summary      Zone status
// @Tags         zones
// @Produce      json
// @Success      200  {object}  irrigation_gateway.Response{data=models.ZoneStatus}
// @Failure      500  {object}  irrigation_gateway.Response
// @Failure      503  {object}  irrigation_gateway.Response
// @Router       /api/zone-status [get]
func (h *Handler) zoneStatus(c *gin.Context) {
	h.respond(c, h.services.Zones.RequestStatus(c.Request.Context()))
}
