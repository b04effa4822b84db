package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/motorpool/vehicle-registry/internal/core/ports"
)

const maxEventsLimit = 100

// EventHandler exposes the registry's audit trail.
type EventHandler struct {
	repo ports.EventRepository
}

func NewEventHandler(repo ports.EventRepository) *EventHandler {
	return &EventHandler{repo: repo}
}

// List handles GET /api/eventos: recent registry events, newest first.
//
// @Summary      List recent registry events
// @Tags         events
// @Produce      json
// @Security     BearerAuth
// @Param        limit  query     int  false  "Maximum events to return (capped at 100)"
// @Success      200    {object}  listEventsResponse
// @Failure      401    {object}  errorResponse
// @Failure      403    {object}  errorResponse
// @Router       /api/eventos [get]
func (h *EventHandler) List(c echo.Context) error {
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)
	if limit <= 0 || limit > maxEventsLimit {
		limit = maxEventsLimit
	}

	events, err := h.repo.ListRecent(c.Request().Context(), limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toEventsResponse(events))
}
