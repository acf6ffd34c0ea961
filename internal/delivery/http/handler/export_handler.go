package handler

import (
	"net/http"

	"hospital-management-system/internal/usecase"
	"hospital-management-system/pkg/response"

	"github.com/gorilla/mux"
)

type ExportHandler struct {
	exportUsecase usecase.ExportUsecase
}

func NewExportHandler(exportUsecase usecase.ExportUsecase) *ExportHandler {
	return &ExportHandler{
		exportUsecase: exportUsecase,
	}
}

func (h *ExportHandler) Export(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)

	file, err := h.exportUsecase.Export(r.Context(), vars["entity"], vars["format"])
	if err != nil {
		writeError(w, err, "Failed to export data")
		return
	}

	response.Attachment(w, file.ContentType, file.Filename, file.Body)
}
