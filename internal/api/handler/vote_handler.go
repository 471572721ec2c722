package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/confiteria/conference-system/internal/api/metrics"
	"github.com/confiteria/conference-system/internal/core/ports"
)

// VoteHandler handles HTTP requests for anonymous audience voting.
type VoteHandler struct {
	voting ports.VotingService
}

func NewVoteHandler(voting ports.VotingService) *VoteHandler {
	return &VoteHandler{voting: voting}
}

type castVoteRequest struct {
	Token string `json:"token" validate:"required"`
	Rate  int    `json:"rate" validate:"min=0,max=2"`
}

type ballotResponse struct {
	Token string       `json:"token"`
	Votes []ballotVote `json:"votes"`
}

type ballotVote struct {
	ID             string `json:"id"`
	Order          int    `json:"order"`
	PresentationID string `json:"presentation_id"`
}

// IssueBallot handles POST /votes/token.
//
// @Summary      Issue an anonymous voting ballot
// @Tags         votes
// @Produce      json
// @Success      201  {object}  ballotResponse
// @Router       /votes/token [post]
func (h *VoteHandler) IssueBallot(c echo.Context) error {
	ballot, err := h.voting.IssueBallot(c.Request().Context())
	if err != nil {
		return err
	}

	votes := make([]ballotVote, 0, len(ballot.Votes))
	for _, v := range ballot.Votes {
		votes = append(votes, ballotVote{
			ID:             v.ID,
			Order:          v.Order,
			PresentationID: v.PresentationID,
		})
	}
	return c.JSON(http.StatusCreated, ballotResponse{Token: ballot.Token, Votes: votes})
}

// Cast handles POST /votes/:voteId.
//
// @Summary      Cast the rate of a single vote
// @Tags         votes
// @Accept       json
// @Produce      json
// @Param        voteId  path  string           true  "Vote ID"
// @Param        body    body  castVoteRequest  true  "Rate and ballot token"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Failure      422  {object}  map[string]string
// @Router       /votes/{voteId} [post]
func (h *VoteHandler) Cast(c echo.Context) error {
	var req castVoteRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	if err := h.voting.Cast(c.Request().Context(), c.Param("voteId"), req.Token, req.Rate); err != nil {
		return err
	}

	metrics.VotesCastTotal.WithLabelValues(strconv.Itoa(req.Rate)).Inc()
	return c.NoContent(http.StatusNoContent)
}

// Summary handles GET /votes/summary.
//
// @Summary      Aggregate cast votes per presentation
// @Tags         votes
// @Produce      json
// @Security     BearerAuth
// @Success      200  {array}   domain.RatingSummary
// @Failure      403  {object}  map[string]string
// @Router       /votes/summary [get]
func (h *VoteHandler) Summary(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	summary, err := h.voting.Summary(c.Request().Context(), actor)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, summary)
}
