package handler

import (
	"net/http"
	"time"

	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"

	"github.com/gorilla/mux"
)

type ReportHandler struct {
	reportUsecase usecase.ReportUsecase
}

func NewReportHandler(reportUsecase usecase.ReportUsecase) *ReportHandler {
	return &ReportHandler{
		reportUsecase: reportUsecase,
	}
}

func (h *ReportHandler) GenerateReport(w http.ResponseWriter, r *http.Request) {
	report, err := h.reportUsecase.GenerateReport(r.Context(), mux.Vars(r)["name"])
	if err != nil {
		writeError(w, err, "Failed to generate report")
		return
	}

	response.Success(w, http.StatusOK, "Report generated successfully", report)
}

func (h *ReportHandler) SystemReportPDF(w http.ResponseWriter, r *http.Request) {
	body, err := h.reportUsecase.SystemReportPDF(r.Context())
	if err != nil {
		writeError(w, err, "Failed to generate report")
		return
	}

	filename := "system-report-" + time.Now().Format("2006-01-02") + ".pdf"
	response.Attachment(w, "application/pdf", filename, body)
}
