package handlers

import (
	"net/http"

	"irrigation_gateway/internal/service"

	"github.com/gin-gonic/gin"
)

// SaveZoneRequest is the catalog entry payload for PUT /api/zones/:id.
type SaveZoneRequest struct {
	Name           string `json:"name" example:"Front Lawn"`
	DefaultMinutes any    `json:"defaultMinutes" swaggertype:"integer" example:"15"`
}

// @Summary      List zones
// @Description  Zone catalog: names and default run lengths
// @Tags         catalog
// @Produce      json
// @Success      200  {object}  irrigation_gateway.Response{data=[]models.Zone}
// @Failure      500  {object}  irrigation_gateway.Response
// @Router       /api/zones [get]
func (h *Handler) listZones(c *gin.Context) {
	h.respond(c, h.services.Catalog.ListZones(c.Request.Context()))
}

// @Summary      Create or replace a zone
// @Tags         catalog
// @Accept       json
// @Produce      json
// @Param        id    path      int              true  "Zone number"
// @Param        body  body      SaveZoneRequest  true  "Zone"
// @Success      200   {object}  irrigation_gateway.Response{data=models.Zone}
// @Failure      400   {object}  irrigation_gateway.Response
// @Failure      500   {object}  irrigation_gateway.Response
// @Router       /api/zones/{id} [put]
func (h *Handler) saveZone(c *gin.Context) {
	var req SaveZoneRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logAndJSONError(c, http.StatusBadRequest, msgSaveZoneFailed, "save_zone_bad_body", err)
		return
	}
	h.respond(c, h.services.Catalog.SaveZone(c.Request.Context(), c.Param("id"), service.ZoneParams{
		Name:           req.Name,
		DefaultMinutes: req.DefaultMinutes,
	}))
}
