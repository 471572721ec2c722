package handler

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/confiteria/conference-system/internal/api/metrics"
	"github.com/confiteria/conference-system/internal/core/ports"
)

// UserHandler handles HTTP requests for account and submission operations.
type UserHandler struct {
	users         ports.UserService
	presentations ports.PresentationService
}

func NewUserHandler(users ports.UserService, presentations ports.PresentationService) *UserHandler {
	return &UserHandler{users: users, presentations: presentations}
}

// --- Request / Response types ---

type saveUserRequest struct {
	ID       string `json:"id"`
	Origin   string `json:"origin"`
	SocialID string `json:"social_id"`
	Name     string `json:"name" validate:"required"`
	Email    string `json:"email" validate:"omitempty,email"`
	Bio      string `json:"bio"`
	Photo    string `json:"photo"`
}

type presentationRequest struct {
	ID               string   `json:"id"`
	Title            string   `json:"title" validate:"required"`
	ShortDescription string   `json:"short_description"`
	Description      string   `json:"description"`
	Language         string   `json:"language"`
	Level            string   `json:"level"`
	Status           string   `json:"status"`
	CoSpeakerID      string   `json:"co_speaker_id"`
	Tags             []string `json:"tags"`
}

// Save handles POST /users: create or update a profile.
//
// @Summary      Create or update an account
// @Tags         users
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        body  body      saveUserRequest  true  "Profile details"
// @Success      200   {object}  domain.User
// @Failure      400   {object}  map[string]string
// @Failure      403   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Router       /users [post]
func (h *UserHandler) Save(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req saveUserRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	user, err := h.users.Save(c.Request().Context(), actor, ports.SaveUserInput{
		ID:       req.ID,
		Origin:   req.Origin,
		SocialID: req.SocialID,
		Name:     req.Name,
		Email:    req.Email,
		Bio:      req.Bio,
		Photo:    req.Photo,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, user)
}

// Get handles GET /users/:userId.
//
// @Summary      Get an account by ID
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string  true  "User ID"
// @Success      200     {object}  domain.User
// @Failure      403     {object}  map[string]string
// @Failure      404     {object}  map[string]string
// @Router       /users/{userId} [get]
func (h *UserHandler) Get(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	user, err := h.users.Get(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, user)
}

// MarkVolunteer handles POST /users/:userId/volunteer/:isVolunteer.
//
// @Summary      Toggle the volunteer flag on an account
// @Tags         users
// @Produce      json
// @Security     BearerAuth
// @Param        userId       path  string  true  "User ID"
// @Param        isVolunteer  path  bool    true  "New volunteer state"
// @Success      204
// @Failure      400  {object}  map[string]string
// @Failure      403  {object}  map[string]string
// @Failure      404  {object}  map[string]string
// @Router       /users/{userId}/volunteer/{isVolunteer} [post]
func (h *UserHandler) MarkVolunteer(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	volunteer, err := strconv.ParseBool(c.Param("isVolunteer"))
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "isVolunteer must be a boolean"})
	}

	if err := h.users.MarkAsVolunteer(c.Request().Context(), actor, c.Param("userId"), volunteer); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// Speakers handles GET /users/search/speakers: the public speaker listing.
//
// @Summary      List distinct speakers of accepted presentations
// @Tags         users
// @Produce      json
// @Success      200  {array}  domain.User
// @Router       /users/search/speakers [get]
func (h *UserHandler) Speakers(c echo.Context) error {
	speakers, err := h.users.Speakers(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, speakers)
}

// AddPresentation handles POST /users/:userId/presentations.
//
// @Summary      Submit or edit a presentation for an account
// @Tags         presentations
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path      string               true  "Owning user ID"
// @Param        body    body      presentationRequest  true  "Presentation details"
// @Success      200     {object}  domain.Presentation
// @Failure      400     {object}  map[string]string
// @Failure      403     {object}  map[string]string
// @Failure      422     {object}  map[string]string
// @Router       /users/{userId}/presentations [post]
func (h *UserHandler) AddPresentation(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	var req presentationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}

	p, err := h.presentations.AddToUser(c.Request().Context(), actor, c.Param("userId"), ports.PresentationInput{
		ID:               req.ID,
		Title:            req.Title,
		ShortDescription: req.ShortDescription,
		Description:      req.Description,
		Language:         req.Language,
		Level:            req.Level,
		Status:           req.Status,
		CoSpeakerID:      req.CoSpeakerID,
		Tags:             req.Tags,
	})
	if err != nil {
		return err
	}

	metrics.PresentationsSavedTotal.WithLabelValues(string(p.Status)).Inc()
	return c.JSON(http.StatusOK, p)
}

// ListPresentations handles GET /users/:userId/presentations.
//
// @Summary      List an account's presentations
// @Tags         presentations
// @Produce      json
// @Security     BearerAuth
// @Param        userId  path     string  true  "Owning user ID"
// @Success      200     {array}  domain.Presentation
// @Failure      403     {object}  map[string]string
// @Router       /users/{userId}/presentations [get]
func (h *UserHandler) ListPresentations(c echo.Context) error {
	actor, err := ctxActor(c)
	if err != nil {
		return err
	}

	list, err := h.presentations.ListForSpeaker(c.Request().Context(), actor, c.Param("userId"))
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, list)
}
