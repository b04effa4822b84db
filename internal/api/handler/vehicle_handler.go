package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/motorpool/vehicle-registry/internal/core/ports"
)

// VehicleHandler handles HTTP requests for registry operations.
type VehicleHandler struct {
	service ports.VehicleService
}

func NewVehicleHandler(service ports.VehicleService) *VehicleHandler {
	return &VehicleHandler{service: service}
}

// Create handles POST /api/vehiculos.
//
// @Summary      Register a new vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      createVehicleRequest  true  "Vehicle details"
// @Success      201   {object}  vehicleResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/vehiculos [post]
func (h *VehicleHandler) Create(c echo.Context) error {
	var req createVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, _ := c.Get("username").(string)
	v, err := h.service.Create(c.Request().Context(), toCreateInput(req, actor))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, toVehicleResponse(v))
}

// List handles GET /api/vehiculos.
//
// @Summary      List vehicles
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        offset  query     int  false  "Records to skip"
// @Param        limit   query     int  false  "Maximum records to return (capped at 100)"
// @Success      200     {object}  listVehiclesResponse
// @Failure      401     {object}  errorResponse
// @Failure      403     {object}  errorResponse
// @Router       /api/vehiculos [get]
func (h *VehicleHandler) List(c echo.Context) error {
	offset, _ := strconv.ParseInt(c.QueryParam("offset"), 10, 64)
	limit, _ := strconv.ParseInt(c.QueryParam("limit"), 10, 64)

	vehicles, total, err := h.service.List(c.Request().Context(), offset, limit)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toListResponse(vehicles, total))
}

// Get handles GET /api/vehiculos/:id.
//
// @Summary      Get a vehicle by id
// @Tags         vehicles
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      int  true  "Vehicle id"
// @Success      200  {object}  vehicleResponse
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/vehiculos/{id} [get]
func (h *VehicleHandler) Get(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	v, err := h.service.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toVehicleResponse(v))
}

// Update handles PUT /api/vehiculos/:id.
//
// @Summary      Update a vehicle
// @Tags         vehicles
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      int                   true  "Vehicle id"
// @Param        body  body      updateVehicleRequest  true  "Fields to change; omitted fields keep their value"
// @Success      200   {object}  vehicleResponse
// @Failure      401   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /api/vehiculos/{id} [put]
func (h *VehicleHandler) Update(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	var req updateVehicleRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "invalid payload")
	}

	actor, _ := c.Get("username").(string)
	v, err := h.service.Update(c.Request().Context(), id, toUpdateInput(req, actor))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, toVehicleResponse(v))
}

// Delete handles DELETE /api/vehiculos/:id.
//
// @Summary      Delete a vehicle
// @Tags         vehicles
// @Security     BearerAuth
// @Param        id  path  int  true  "Vehicle id"
// @Success      204
// @Failure      401  {object}  errorResponse
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Router       /api/vehiculos/{id} [delete]
func (h *VehicleHandler) Delete(c echo.Context) error {
	id, err := parseID(c)
	if err != nil {
		return err
	}

	actor, _ := c.Get("username").(string)
	if err := h.service.Delete(c.Request().Context(), id, actor); err != nil {
		return err
	}

	return c.NoContent(http.StatusNoContent)
}

func parseID(c echo.Context) (int64, error) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return 0, echo.NewHTTPError(http.StatusBadRequest, "invalid vehicle id")
	}
	return id, nil
}
