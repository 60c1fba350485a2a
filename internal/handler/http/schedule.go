package http

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/location"
	"github.com/cmlabs-hris/attendance-backend-go/internal/domain/schedule"
	"github.com/cmlabs-hris/attendance-backend-go/internal/handler/http/response"
)

// SettingsHandler serves the admin-managed office location and attendance schedule
type SettingsHandler interface {
	GetOfficeLocation(w http.ResponseWriter, r *http.Request)
	UpdateOfficeLocation(w http.ResponseWriter, r *http.Request)
	GetSchedule(w http.ResponseWriter, r *http.Request)
	UpdateSchedule(w http.ResponseWriter, r *http.Request)
}

type settingsHandlerImpl struct {
	officeLocationService location.OfficeLocationService
	scheduleService       schedule.ScheduleService
}

func NewSettingsHandler(officeLocationService location.OfficeLocationService, scheduleService schedule.ScheduleService) SettingsHandler {
	return &settingsHandlerImpl{
		officeLocationService: officeLocationService,
		scheduleService:       scheduleService,
	}
}

// GetOfficeLocation implements SettingsHandler.
func (h *settingsHandlerImpl) GetOfficeLocation(w http.ResponseWriter, r *http.Request) {
	result, err := h.officeLocationService.GetOfficeLocation(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateOfficeLocation implements SettingsHandler.
func (h *settingsHandlerImpl) UpdateOfficeLocation(w http.ResponseWriter, r *http.Request) {
	var req location.UpdateOfficeLocationRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateOfficeLocation decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.officeLocationService.UpdateOfficeLocation(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Office location updated", result)
}

// GetSchedule implements SettingsHandler.
func (h *settingsHandlerImpl) GetSchedule(w http.ResponseWriter, r *http.Request) {
	result, err := h.scheduleService.GetSchedule(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.Success(w, result)
}

// UpdateSchedule implements SettingsHandler.
func (h *settingsHandlerImpl) UpdateSchedule(w http.ResponseWriter, r *http.Request) {
	var req schedule.UpdateScheduleRequest

	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		slog.Error("UpdateSchedule decode error", "error", err)
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	result, err := h.scheduleService.UpdateSchedule(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	response.SuccessWithMessage(w, "Attendance schedule updated", result)
}
