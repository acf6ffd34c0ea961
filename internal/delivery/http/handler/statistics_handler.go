package handler

import (
	"net/http"
	"strconv"

	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"

	"github.com/gorilla/mux"
)

const defaultNewPatientDays = 30

type StatisticsHandler struct {
	statisticsUsecase usecase.StatisticsUsecase
}

func NewStatisticsHandler(statisticsUsecase usecase.StatisticsUsecase) *StatisticsHandler {
	return &StatisticsHandler{
		statisticsUsecase: statisticsUsecase,
	}
}

func (h *StatisticsHandler) ComputeStatistics(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	stats, err := h.statisticsUsecase.ComputeStatistics(r.Context(), vars["entity"], vars["field"])
	if err != nil {
		writeError(w, err, "Failed to compute statistics")
		return
	}

	response.Success(w, http.StatusOK, "Statistics retrieved successfully", stats)
}

func (h *StatisticsHandler) PatientStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statisticsUsecase.PatientStatistics(r.Context())
	if err != nil {
		writeError(w, err, "Failed to compute patient statistics")
		return
	}

	response.Success(w, http.StatusOK, "Patient statistics retrieved successfully", stats)
}

// NewPatients counts registrations over the last ?days= days (30 by default).
func (h *StatisticsHandler) NewPatients(w http.ResponseWriter, r *http.Request) {
	days := defaultNewPatientDays
	if v := r.URL.Query().Get("days"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(w, "days must be a non-negative integer")
			return
		}
		days = n
	}

	total, err := h.statisticsUsecase.NewPatientsSince(r.Context(), days)
	if err != nil {
		writeError(w, err, "Failed to count new patients")
		return
	}

	response.Success(w, http.StatusOK, "New patients counted successfully", map[string]int64{"new_patients": total})
}

func (h *StatisticsHandler) AdminDashboard(w http.ResponseWriter, r *http.Request) {
	dashboard, err := h.statisticsUsecase.AdminDashboard(r.Context())
	if err != nil {
		writeError(w, err, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *StatisticsHandler) DoctorDashboard(w http.ResponseWriter, r *http.Request) {
	doctorID, ok := middleware.GetUserIDFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Invalid token")
		return
	}

	dashboard, err := h.statisticsUsecase.DoctorDashboard(r.Context(), doctorID)
	if err != nil {
		writeError(w, err, "Failed to load dashboard")
		return
	}

	response.Success(w, http.StatusOK, "Dashboard retrieved successfully", dashboard)
}

func (h *StatisticsHandler) DatabaseStatistics(w http.ResponseWriter, r *http.Request) {
	stats, err := h.statisticsUsecase.DatabaseStatistics(r.Context())
	if err != nil {
		writeError(w, err, "Failed to compute database statistics")
		return
	}

	response.Success(w, http.StatusOK, "Database statistics retrieved successfully", stats)
}
