package handler

import (
	"encoding/json"
	"net/http"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"
	"hospital-management-system/pkg/validator"

	"github.com/gorilla/mux"
)

type SettingsHandler struct {
	settingsUsecase usecase.SettingsUsecase
	validator       *validator.CustomValidator
}

func NewSettingsHandler(settingsUsecase usecase.SettingsUsecase, validator *validator.CustomValidator) *SettingsHandler {
	return &SettingsHandler{
		settingsUsecase: settingsUsecase,
		validator:       validator,
	}
}

// decodeSettings keeps numbers as json.Number so 3.5 is rejected for an
// integer setting instead of being truncated.
func (h *SettingsHandler) decodeSettings(w http.ResponseWriter, r *http.Request, req interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.UseNumber()
	if err := decoder.Decode(req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return false
	}

	if err := h.validator.Validate(req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return false
	}
	return true
}

func (h *SettingsHandler) GetAll(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Settings retrieved successfully", h.settingsUsecase.GetAll(r.Context()))
}

func (h *SettingsHandler) GetCategory(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.GetCategory(r.Context(), mux.Vars(r)["category"])
	if err != nil {
		writeError(w, err, "Failed to get settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings retrieved successfully", settings)
}

// Get reads one setting by its dotted key, e.g. "security.maxLoginAttempts".
func (h *SettingsHandler) Get(w http.ResponseWriter, r *http.Request) {
	setting, err := h.settingsUsecase.Get(r.Context(), mux.Vars(r)["key"])
	if err != nil {
		writeError(w, err, "Failed to get setting")
		return
	}

	response.Success(w, http.StatusOK, "Setting retrieved successfully", setting)
}

func (h *SettingsHandler) Update(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	var req dto.UpdateSettingRequest
	if !h.decodeSettings(w, r, &req) {
		return
	}

	setting, err := h.settingsUsecase.Update(r.Context(), vars["category"], vars["key"], req.Value)
	if err != nil {
		writeError(w, err, "Failed to update setting")
		return
	}

	response.Success(w, http.StatusOK, "Setting updated successfully", setting)
}

func (h *SettingsHandler) UpdateMany(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if !h.decodeSettings(w, r, &req) {
		return
	}

	settings, err := h.settingsUsecase.UpdateMany(r.Context(), req.Settings)
	if err != nil {
		writeError(w, err, "Failed to update settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings updated successfully", settings)
}

func (h *SettingsHandler) Import(w http.ResponseWriter, r *http.Request) {
	var req dto.UpdateSettingsRequest
	if !h.decodeSettings(w, r, &req) {
		return
	}

	settings, err := h.settingsUsecase.Import(r.Context(), req.Settings)
	if err != nil {
		writeError(w, err, "Failed to import settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings imported successfully", settings)
}

func (h *SettingsHandler) Export(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Settings exported successfully", h.settingsUsecase.Export(r.Context()))
}

func (h *SettingsHandler) Reset(w http.ResponseWriter, r *http.Request) {
	settings, err := h.settingsUsecase.Reset(r.Context())
	if err != nil {
		writeError(w, err, "Failed to reset settings")
		return
	}

	response.Success(w, http.StatusOK, "Settings reset to defaults", settings)
}

func (h *SettingsHandler) SystemInfo(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "System information retrieved successfully", h.settingsUsecase.SystemInfo(r.Context()))
}
