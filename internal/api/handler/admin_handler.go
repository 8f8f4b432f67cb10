package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/studiodesk/schedule-system/internal/core/ports"
)

// AdminHandler serves the Master roster console.
type AdminHandler struct {
	service ports.AdminService
}

func NewAdminHandler(service ports.AdminService) *AdminHandler {
	return &AdminHandler{service: service}
}

// Roster handles GET /v1/admin/users.
//
// @Summary      List every user
// @Tags         admin
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  rosterResponse
// @Failure      403  {object}  errorResponse
// @Router       /v1/admin/users [get]
func (h *AdminHandler) Roster(c echo.Context) error {
	users, err := h.service.Roster(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rosterResponse{Total: len(users), Users: users})
}

// SaveRoster handles PUT /v1/admin/users.
//
// @Summary      Save role, approval and name edits
// @Description  Rewrites the users worksheet. Password hashes are never taken from the request.
// @Tags         admin
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      rosterRequest  true  "Edited rows"
// @Success      200   {object}  rosterResponse
// @Failure      403   {object}  errorResponse
// @Failure      404   {object}  errorResponse
// @Failure      422   {object}  errorResponse
// @Router       /v1/admin/users [put]
func (h *AdminHandler) SaveRoster(c echo.Context) error {
	session, err := ctxSession(c)
	if err != nil {
		return err
	}
	var req rosterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	users, err := h.service.SaveRoster(c.Request().Context(), session, toRosterEdits(req))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, rosterResponse{Total: len(users), Users: users})
}
