package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/confiteria/conference-system/internal/core/ports"
)

// TicketDispatcher is the worker pool the handler hands dispatch jobs to.
// Satisfied by queue.Dispatcher.
type TicketDispatcher interface {
	EnqueueBatch(jobs []ports.TicketJob)
}

// TicketHandler handles HTTP requests for ticket dispatch.
type TicketHandler struct {
	tickets    ports.TicketService
	dispatcher TicketDispatcher
}

func NewTicketHandler(tickets ports.TicketService, dispatcher TicketDispatcher) *TicketHandler {
	return &TicketHandler{tickets: tickets, dispatcher: dispatcher}
}

type dispatchResponse struct {
	Enqueued int `json:"enqueued"`
}

// Dispatch handles POST /tickets/dispatch: enqueue one job per currently
// eligible participant and return immediately.
//
// @Summary      Trigger a ticket dispatch batch
// @Tags         tickets
// @Produce      json
// @Security     BearerAuth
// @Success      202  {object}  dispatchResponse
// @Failure      403  {object}  map[string]string
// @Router       /tickets/dispatch [post]
func (h *TicketHandler) Dispatch(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	jobs, err := h.tickets.PendingJobs(c.Request().Context(), actor)
	if err != nil {
		return err
	}

	h.dispatcher.EnqueueBatch(jobs)
	return c.JSON(http.StatusAccepted, dispatchResponse{Enqueued: len(jobs)})
}
