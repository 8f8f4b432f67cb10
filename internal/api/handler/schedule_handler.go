package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/studiodesk/schedule-system/internal/core/ports"
)

// ScheduleHandler handles HTTP requests for schedule operations.
type ScheduleHandler struct {
	service ports.ScheduleService
}

func NewScheduleHandler(service ports.ScheduleService) *ScheduleHandler {
	return &ScheduleHandler{service: service}
}

// ListByDate handles GET /v1/schedules?date=YYYY-MM-DD.
//
// @Summary      List a day's schedules grouped by type
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        date  query     string  true  "Day (YYYY-MM-DD)"
// @Success      200   {object}  dayScheduleResponse
// @Failure      400   {object}  errorResponse
// @Failure      503   {object}  errorResponse
// @Router       /v1/schedules [get]
func (h *ScheduleHandler) ListByDate(c echo.Context) error {
	day, err := h.service.ListByDate(c.Request().Context(), c.QueryParam("date"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, dayScheduleResponse{Date: day.Date, Total: day.Total, Groups: day.Groups})
}

// Search handles GET /v1/schedules/search?q=.
//
// @Summary      Search schedules by couple name or phone
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        q    query     string  false  "Case-insensitive substring"
// @Success      200  {object}  searchResponse
// @Failure      503  {object}  errorResponse
// @Router       /v1/schedules/search [get]
func (h *ScheduleHandler) Search(c echo.Context) error {
	q := c.QueryParam("q")
	results, err := h.service.Search(c.Request().Context(), q)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, searchResponse{Query: q, Total: len(results), Results: results})
}

// Get handles GET /v1/schedules/:id.
//
// @Summary      Get a schedule
// @Tags         schedules
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "Schedule id"
// @Success      200  {object}  domain.Schedule
// @Failure      404  {object}  errorResponse
// @Router       /v1/schedules/{id} [get]
func (h *ScheduleHandler) Get(c echo.Context) error {
	sch, err := h.service.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sch)
}

// Create handles POST /v1/schedules.
//
// @Summary      Create a schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      scheduleRequest  true  "Schedule"
// @Success      201   {object}  domain.Schedule
// @Failure      400   {object}  errorResponse
// @Failure      403   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/schedules [post]
func (h *ScheduleHandler) Create(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req scheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sch, err := h.service.Create(c.Request().Context(), session, toScheduleInput(req))
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderLocation, "/v1/schedules/"+sch.ID)
	return c.JSON(http.StatusCreated, sch)
}

// Update handles PUT /v1/schedules/:id.
//
// @Summary      Update a schedule
// @Description  version must be the version last read; a stale version is rejected with 409.
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string                 true  "Schedule id"
// @Param        body  body      updateScheduleRequest  true  "Schedule"
// @Success      200   {object}  domain.Schedule
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Router       /v1/schedules/{id} [put]
func (h *ScheduleHandler) Update(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req updateScheduleRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sch, err := h.service.Update(c.Request().Context(), session, c.Param("id"), req.Version, toScheduleInput(req.scheduleRequest))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, sch)
}

// Delete handles DELETE /v1/schedules/:id?version=N.
//
// @Summary      Delete a schedule (Master only)
// @Tags         schedules
// @Security     BearerAuth
// @Param        id       path   string  true  "Schedule id"
// @Param        version  query  int     true  "Version last read"
// @Success      204
// @Failure      403  {object}  errorResponse
// @Failure      404  {object}  errorResponse
// @Failure      409  {object}  errorResponse
// @Router       /v1/schedules/{id} [delete]
func (h *ScheduleHandler) Delete(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	version, err := strconv.ParseInt(c.QueryParam("version"), 10, 64)
	if err != nil || version <= 0 {
		return echo.NewHTTPError(http.StatusBadRequest, "version query parameter is required")
	}

	if err := h.service.Delete(c.Request().Context(), session, c.Param("id"), version); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// AppendMemo handles POST /v1/schedules/:id/memos.
//
// @Summary      Add a memo to a schedule
// @Tags         schedules
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path      string       true  "Schedule id"
// @Param        body  body      memoRequest  true  "Memo"
// @Success      201   {object}  domain.Schedule
// @Failure      404   {object}  errorResponse
// @Failure      409   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/schedules/{id}/memos [post]
func (h *ScheduleHandler) AppendMemo(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req memoRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	sch, err := h.service.AppendMemo(c.Request().Context(), session, c.Param("id"), req.Content)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, sch)
}
