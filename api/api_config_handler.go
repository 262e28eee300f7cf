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

type apiConfigHandler struct {
	responder     Responder
	logger        zerolog.Logger
	apiConfigRepo *database.APIConfigRepo
}

func newAPIConfigHandler(apiConfigRepo *database.APIConfigRepo) apiConfigHandler {
	logger := log.With().Str("handlerName", "apiConfigHandler").Logger()

	return apiConfigHandler{
		responder:     NewResponder(logger),
		logger:        logger,
		apiConfigRepo: apiConfigRepo,
	}
}

// getAPIConfigs lists a user's provider configurations
// @Summary Get API configs
// @Description Retrieves all AI provider configurations owned by a user
// @Tags APIConfigs
// @Accept json
// @Produce json
// @Param userId query string true "User ID" format(uuid)
// @Success 200 {array} models.APIConfig "Provider configurations"
// @Failure 400 {object} ErrorResponse "Bad Request - Missing or invalid userId"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error fetching configs"
// @Router /api-configs [get]
func (h apiConfigHandler) getAPIConfigs() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		userID, err := uuid.Parse(r.URL.Query().Get("userId"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("missing or invalid userId"))
			return
		}

		configs, err := h.apiConfigRepo.FindByUser(userID)
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find api configs", "api config", err))
			return
		}

		h.responder.WriteJSON(w, configs)
	}
}

// createAPIConfig registers a provider configuration
// @Summary Create API config
// @Description Registers a new AI provider configuration for a capability
// @Tags APIConfigs
// @Accept json
// @Produce json
// @Param config body models.APIConfig true "Provider configuration"
// @Success 201 {object} models.APIConfig "Created configuration"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid configuration"
// @Failure 500 {object} ErrorResponse "Internal Server Error - Error saving config"
// @Router /api-configs [post]
func (h apiConfigHandler) createAPIConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var config models.APIConfig
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode api config request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if config.UserID == uuid.Nil {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("userId"))
			return
		}
		if config.Name == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("name"))
			return
		}
		if config.APIKey == "" {
			h.responder.WriteError(w, errs.NewMissingRequiredFieldError("apiKey"))
			return
		}
		if !models.ValidCapabilityType(config.Type) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("type", "unknown capability type"))
			return
		}

		if err := h.apiConfigRepo.Add(&config); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("create api config", "api config", err))
			return
		}

		h.responder.WriteJSONWithStatus(w, http.StatusCreated, config)
	}
}

// updateAPIConfig updates an existing provider configuration
// @Summary Update API config
// @Description Updates an existing AI provider configuration
// @Tags APIConfigs
// @Accept json
// @Produce json
// @Param configID path string true "Config ID" format(uuid)
// @Param config body models.APIConfig true "Updated configuration"
// @Success 200 {object} models.APIConfig "Updated configuration"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid configuration"
// @Failure 404 {object} ErrorResponse "Not Found - Config not found"
// @Router /api-config/{configID} [put]
func (h apiConfigHandler) updateAPIConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configID, err := uuid.Parse(chi.URLParam(r, "configID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid configID"))
			return
		}

		existing, err := h.apiConfigRepo.FindByID(configID)
		if errors.Is(err, gorm.ErrRecordNotFound) {
			h.responder.WriteError(w, errs.NewNotFoundError("api config not found"))
			return
		}
		if err != nil {
			h.responder.WriteError(w, wrapDatabaseError("find api config", "api config", err))
			return
		}

		var config models.APIConfig
		if err := json.NewDecoder(r.Body).Decode(&config); err != nil {
			h.logger.Error().Err(err).Msg("Failed to decode api config request body")
			h.responder.WriteError(w, errs.NewBadRequestError("malformed request body"))
			return
		}

		if config.Type != "" && !models.ValidCapabilityType(config.Type) {
			h.responder.WriteError(w, errs.NewInvalidFieldError("type", "unknown capability type"))
			return
		}

		// Identity fields are not updatable
		config.ID = configID
		config.UserID = existing.UserID
		config.CreatedAt = existing.CreatedAt

		if err := h.apiConfigRepo.Update(&config); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("update api config", "api config", err))
			return
		}

		h.responder.WriteJSON(w, config)
	}
}

// deleteAPIConfig removes a provider configuration
// @Summary Delete API config
// @Description Deletes an AI provider configuration by ID
// @Tags APIConfigs
// @Accept json
// @Produce json
// @Param configID path string true "Config ID" format(uuid)
// @Success 200 {object} map[string]string "Success message"
// @Failure 400 {object} ErrorResponse "Bad Request - Invalid configID"
// @Router /api-config/{configID} [delete]
func (h apiConfigHandler) deleteAPIConfig() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		configID, err := uuid.Parse(chi.URLParam(r, "configID"))
		if err != nil {
			h.responder.WriteError(w, errs.NewBadRequestError("invalid configID"))
			return
		}

		if err := h.apiConfigRepo.Delete(configID); err != nil {
			h.responder.WriteError(w, wrapDatabaseError("delete api config", "api config", err))
			return
		}

		h.responder.WriteJSON(w, map[string]string{
			"status":  "success",
			"message": "api config deleted successfully",
		})
	}
}
