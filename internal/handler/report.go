package handler

import (
	"fmt"
	"log/slog"
	"net/http"

	"github.com/fitstudio/reassess/internal/model"
	"github.com/fitstudio/reassess/internal/service"
	"github.com/fitstudio/reassess/internal/web"
)

type clientViewData struct {
	ClientName  string
	Assessments []*model.Assessment
}

type ReportHandler struct {
	reportService *service.ReportService
	views         *web.TemplateSet
}

func NewReportHandler(reportService *service.ReportService, views *web.TemplateSet) *ReportHandler {
	return &ReportHandler{
		reportService: reportService,
		views:         views,
	}
}

func (h *ReportHandler) ClientsPage(w http.ResponseWriter, r *http.Request) {
	names, err := h.reportService.Roster()
	if err != nil {
		slog.Error("failed to load roster", "error", err)
		http.Error(w, "failed to load clients", http.StatusInternalServerError)
		return
	}

	h.views.Render(w, r, "clients.html", "Clients", names)
}

// HistoryPage shows a client's assessments newest first. A client with no
// rows renders an empty view, not an error.
func (h *ReportHandler) HistoryPage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	assessments, err := h.reportService.History(name)
	if err != nil {
		slog.Error("failed to load history", "error", err, "client_name", name)
		http.Error(w, "failed to load history", http.StatusInternalServerError)
		return
	}

	h.views.Render(w, r, "history.html", "History", clientViewData{
		ClientName:  name,
		Assessments: assessments,
	})
}

// ComparisonPage shows the same data oldest first for side-by-side progress
// tracking.
func (h *ReportHandler) ComparisonPage(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	assessments, err := h.reportService.Comparison(name)
	if err != nil {
		slog.Error("failed to load comparison", "error", err, "client_name", name)
		http.Error(w, "failed to load comparison", http.StatusInternalServerError)
		return
	}

	h.views.Render(w, r, "comparison.html", "Comparison", clientViewData{
		ClientName:  name,
		Assessments: assessments,
	})
}

func (h *ReportHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	name := r.PathValue("name")

	data, err := h.reportService.ExportPDF(r.Context(), name)
	if err != nil {
		slog.Error("failed to export report", "error", err, "client_name", name)
		http.Error(w, "failed to export report", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name+"-report.pdf"))
	_, err = w.Write(data)
	if err != nil {
		slog.Error("failed to write pdf response", "error", err, "client_name", name)
	}
}
