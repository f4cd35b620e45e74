package service

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"sort"
	"strings"
	"time"

	pdfapi "github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/fitstudio/reassess/internal/model"
	"github.com/fitstudio/reassess/internal/multiselect"
	"github.com/fitstudio/reassess/internal/pdf"
	"github.com/fitstudio/reassess/internal/repository"
)

// ReportDocument renders the printable report document for one client.
// Implemented by the web template set; faked in tests.
type ReportDocument interface {
	RenderReport(w io.Writer, clientName string, assessments []*model.Assessment, generatedAt time.Time) error
}

// ReportService builds the three read views (roster, history, comparison)
// and the PDF export on top of the assessment store. All views are complete:
// no pagination, filtering, or search.
type ReportService struct {
	assessmentRepository repository.AssessmentRepository
	document             ReportDocument
	renderer             pdf.Renderer
	baseURL              string
}

func NewReportService(assessmentRepository repository.AssessmentRepository, document ReportDocument, renderer pdf.Renderer, baseURL string) *ReportService {
	return &ReportService{
		assessmentRepository: assessmentRepository,
		document:             document,
		renderer:             renderer,
		baseURL:              baseURL,
	}
}

// Roster returns every distinct client name. The store guarantees no order,
// so the roster is sorted here (case-insensitively) for stable presentation.
func (s *ReportService) Roster() ([]string, error) {
	names, err := s.assessmentRepository.DistinctClientNames()
	if err != nil {
		return nil, fmt.Errorf("failed to list client names: %w", err)
	}

	sort.Slice(names, func(i, j int) bool {
		return strings.ToLower(names[i]) < strings.ToLower(names[j])
	})

	return names, nil
}

// History returns a client's assessments newest first, with the multi-select
// field decoded on every row. A client with no rows yields an empty slice,
// not an error.
func (s *ReportService) History(clientName string) ([]*model.Assessment, error) {
	return s.byClient(clientName, repository.OrderNewestFirst)
}

// Comparison returns a client's assessments oldest first, establishing the
// timeline used for progress tracking.
func (s *ReportService) Comparison(clientName string) ([]*model.Assessment, error) {
	return s.byClient(clientName, repository.OrderOldestFirst)
}

// ExportPDF assembles the comparison row set, renders the report document,
// and hands it to the PDF renderer. An unknown client produces an empty but
// valid document.
func (s *ReportService) ExportPDF(ctx context.Context, clientName string) ([]byte, error) {
	assessments, err := s.Comparison(clientName)
	if err != nil {
		return nil, err
	}

	var doc bytes.Buffer
	err = s.document.RenderReport(&doc, clientName, assessments, time.Now())
	if err != nil {
		return nil, fmt.Errorf("failed to render report document: %w", err)
	}

	data, err := s.renderer.Render(ctx, doc.String(), s.baseURL)
	if err != nil {
		return nil, fmt.Errorf("failed to render pdf: %w", err)
	}

	// Page count is informational only; a counting failure never fails the export.
	pages, err := pdfapi.PageCount(bytes.NewReader(data), nil)
	if err != nil {
		slog.Warn("failed to count pdf pages", "error", err, "client_name", clientName)
	} else {
		slog.Info("report exported", "client_name", clientName, "assessments", len(assessments), "pages", pages)
	}

	return data, nil
}

func (s *ReportService) byClient(clientName, order string) ([]*model.Assessment, error) {
	assessments, err := s.assessmentRepository.ByClientName(clientName, order)
	if err != nil {
		return nil, fmt.Errorf("failed to list assessments: %w", err)
	}

	if assessments == nil {
		assessments = []*model.Assessment{}
	}

	// Decode failures degrade to an empty list per row; one malformed row
	// must never abort the whole view.
	for _, a := range assessments {
		a.Improvements = multiselect.Decode(a.ImprovementItems)
	}

	return assessments, nil
}
