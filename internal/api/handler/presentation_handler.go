package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/confiteria/conference-system/internal/core/domain"
	"github.com/confiteria/conference-system/internal/core/ports"
)

// PresentationHandler handles the review side of submissions. The submit
// and edit paths live on UserHandler since talks hang off accounts.
type PresentationHandler struct {
	presentations ports.PresentationService
}

func NewPresentationHandler(presentations ports.PresentationService) *PresentationHandler {
	return &PresentationHandler{presentations: presentations}
}

type updateStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=none submitted accepted rejected"`
}

// Get handles GET /presentations/:id.
//
// @Summary      Get a presentation by ID
// @Tags         presentations
// @Produce      json
// @Param        id  path      string  true  "Presentation ID"
// @Success      200  {object}  domain.Presentation
// @Failure      404  {object}  map[string]string
// @Router       /presentations/{id} [get]
func (h *PresentationHandler) Get(c echo.Context) error {
	p, err := h.presentations.Get(c.Request().Context(), c.Param("id"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, p)
}

// UpdateStatus handles PUT /presentations/:id/status, the privileged
// review operation.
//
// @Summary      Set the review status of a presentation
// @Tags         presentations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id    path  string               true  "Presentation ID"
// @Param        body  body  updateStatusRequest  true  "New status"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /presentations/{id}/status [put]
func (h *PresentationHandler) UpdateStatus(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req updateStatusRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.presentations.UpdateStatus(c.Request().Context(), actor, c.Param("id"), domain.PresentationStatus(req.Status)); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
