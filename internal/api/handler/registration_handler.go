package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/confiteria/conference-system/internal/api/metrics"
	"github.com/confiteria/conference-system/internal/core/ports"
)

// RegistrationHandler handles HTTP requests for participation state.
type RegistrationHandler struct {
	registrations ports.RegistrationService
}

func NewRegistrationHandler(registrations ports.RegistrationService) *RegistrationHandler {
	return &RegistrationHandler{registrations: registrations}
}

type registerParticipantRequest struct {
	UserID      string `json:"user_id" validate:"required"`
	VoucherCode string `json:"voucher_code" validate:"required"`
}

// Register handles POST /participants/register.
//
// @Summary      Redeem a voucher and register a participant
// @Tags         participants
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      registerParticipantRequest  true  "Registration details"
// @Success      201   {object}  domain.ParticipationData
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      404   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /participants/register [post]
func (h *RegistrationHandler) Register(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req registerParticipantRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	participation, err := h.registrations.Register(c.Request().Context(), actor, req.UserID, req.VoucherCode)
	if err != nil {
		return err
	}

	metrics.RegistrationsTotal.Inc()
	return c.JSON(http.StatusCreated, participation)
}

// CheckIn handles POST /participants/:id/arrived.
//
// @Summary      Record a participant's arrival at the venue
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Param        id  path      string  true  "Participation ID"
// @Success      200  {object}  domain.ParticipationData
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /participants/{id}/arrived [post]
func (h *RegistrationHandler) CheckIn(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	participation, err := h.registrations.CheckIn(c.Request().Context(), actor, c.Param("id"))
	if err != nil {
		return err
	}

	metrics.CheckinsTotal.Inc()
	return c.JSON(http.StatusOK, participation)
}

// PendingTickets handles GET /participants/tickets/pending.
//
// @Summary      List users currently eligible for a ticket
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /participants/tickets/pending [get]
func (h *RegistrationHandler) PendingTickets(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.registrations.UsersToSendTickets(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}

// Present handles GET /participants/present.
//
// @Summary      List users that checked in at the venue
// @Tags         participants
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.User
// @Failure      403  {object}  map[string]string
// @Router       /participants/present [get]
func (h *RegistrationHandler) Present(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	users, err := h.registrations.PresentAtConference(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, users)
}
