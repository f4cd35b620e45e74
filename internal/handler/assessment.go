package handler

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/fitstudio/reassess/internal/service"
	"github.com/fitstudio/reassess/internal/validation"
	"github.com/fitstudio/reassess/internal/web"
)

// improvementOptions are the multi-select choices offered on the form.
var improvementOptions = []string{
	"Strength",
	"Endurance",
	"Flexibility",
	"Nutrition",
	"Sleep",
	"Posture",
}

type formData struct {
	Values             validation.AssessmentInput
	Errors             map[string]bool
	ErrorMessage       string
	ImprovementOptions []string
}

type AssessmentHandler struct {
	assessmentService *service.AssessmentService
	views             *web.TemplateSet
}

func NewAssessmentHandler(assessmentService *service.AssessmentService, views *web.TemplateSet) *AssessmentHandler {
	return &AssessmentHandler{
		assessmentService: assessmentService,
		views:             views,
	}
}

// Root redirects to the public form.
func (h *AssessmentHandler) Root(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, "/form", http.StatusSeeOther)
}

func (h *AssessmentHandler) FormPage(w http.ResponseWriter, r *http.Request) {
	h.views.Render(w, r, "form.html", "Reassessment form", formData{
		Errors:             map[string]bool{},
		ImprovementOptions: improvementOptions,
	})
}

// Submit accepts the public reassessment submission. The multi-select field
// arrives as repeated improvement_items values.
func (h *AssessmentHandler) Submit(w http.ResponseWriter, r *http.Request) {
	err := r.ParseForm()
	if err != nil {
		http.Error(w, "invalid form", http.StatusBadRequest)
		return
	}

	input := validation.AssessmentInput{
		ClientName:               r.FormValue("client_name"),
		AssessmentDate:           r.FormValue("assessment_date"),
		Weight:                   r.FormValue("weight"),
		Measurements:             r.FormValue("measurements"),
		MissedTrainingNotes:      r.FormValue("missed_training_notes"),
		LikesDislikesNotes:       r.FormValue("likes_dislikes_notes"),
		WaterGoalNotes:           r.FormValue("water_goal_notes"),
		DietNotes:                r.FormValue("diet_notes"),
		ImprovementItems:         r.Form["improvement_items"],
		OtherImprovements:        r.FormValue("other_improvements"),
		SpecialRequest:           r.FormValue("special_request"),
		GeneralSuggestion:        r.FormValue("general_suggestion"),
		PhotoConsentAccepted:     r.FormValue("photo_consent_accepted") == "true",
		FinalDeclarationAccepted: r.FormValue("final_declaration_accepted") == "true",
	}

	assessment, err := h.assessmentService.Create(input)

	var validationErr *validation.Error
	if errors.As(err, &validationErr) {
		// Re-show the form with the invalid fields indicated and the
		// submitted values preserved.
		fields := map[string]bool{}
		for _, f := range validationErr.Fields {
			fields[f] = true
		}
		h.views.RenderStatus(w, r, http.StatusUnprocessableEntity, "form.html", "Reassessment form", formData{
			Values:             input,
			Errors:             fields,
			ErrorMessage:       "Please fill in the highlighted fields.",
			ImprovementOptions: improvementOptions,
		})
		return
	}

	if err != nil {
		slog.Error("failed to create assessment", "error", err, "client_name", input.ClientName)
		http.Error(w, "failed to save submission", http.StatusInternalServerError)
		return
	}

	h.views.Render(w, r, "success.html", "Thank you", assessment.ClientName)
}
