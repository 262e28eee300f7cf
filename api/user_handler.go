package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/pagepilot-ai/backend/database"
	"github.com/pagepilot-ai/backend/errs"
	"github.com/pagepilot-ai/backend/models"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"gorm.io/gorm"
)

type userHandler struct {
	responder Responder
	logger    zerolog.Logger
	userRepo  *database.UserRepo
}

func newUserHandler(userRepo *database.UserRepo) userHandler {
	logger := log.With().Str("handlerName", "userHandler").Logger()

	return userHandler{
		responder: NewResponder(logger),
		logger:    logger,
		userRepo:  userRepo,
	}
}

// UpsertUserRequest is the sign-in payload from the auth stand-in
type UpsertUserRequest struct {
	Email       string  `json:"email"`
	Username    string  `json:"username"`
	DisplayName *string `json:"displayName"`
	PhotoURL    *string `json:"photoURL"`
}

// upsertUser creates a user record on first sign-in or refreshes its profile
// @Summary Upsert user
// @Description Creates a user if the email is unknown, otherwise refreshes profile fields
// @Tags Users
// @Accept json
// @Produce json
// @Param user body UpsertUserRequest true "User profile"
// @Success 200 {object} models.User "User record"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid user payload"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error saving user"
// @Router /users [post]
func (h userHandler) upsertUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req UpsertUserRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode user request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if req.Email == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("email"))
			return
		}

		user := models.User{
			Email:       req.Email,
			Username:    req.Username,
			DisplayName: req.DisplayName,
			PhotoURL:    req.PhotoURL,
		}
		if err := h.userRepo.Upsert(&user); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("upsert user", "user", err))
			return
		}

		// Reload so the response carries the persisted record
		saved, err := h.userRepo.FindByEmail(req.Email)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		h.responder.WriteJSON(w, saved)
	}
}

// getUser retrieves a user by ID
// @Summary Get user
// @Description Retrieves a user by its ID
// @Tags Users
// @Accept json
// @Produce json
// @Param userID path string true "User ID" format(uuid)
// @Success 200 {object} models.User "User record"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid userID"
// @Failure 404 {object} ErrorResponse "Not Found - User not found"
// @Router /user/{userID} [get]
func (h userHandler) getUser() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(chi.URLParam(r, "userID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid userID"))
			return
		}

		user, err := h.userRepo.FindByID(userID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("user not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find user", "user", err))
			return
		}

		h.responder.WriteJSON(w, user)
	}
}
