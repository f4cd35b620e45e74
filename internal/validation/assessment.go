package validation

import (
	"fmt"
	"strings"
)

// Error reports which submission fields failed validation.
type Error struct {
	Fields []string
}

func (e *Error) Error() string {
	return fmt.Sprintf("missing required fields: %s", strings.Join(e.Fields, ", "))
}

// AssessmentInput carries the raw submission field values before they are
// encoded and persisted.
type AssessmentInput struct {
	ClientName               string
	AssessmentDate           string
	Weight                   string
	Measurements             string
	MissedTrainingNotes      string
	LikesDislikesNotes       string
	WaterGoalNotes           string
	DietNotes                string
	ImprovementItems         []string
	OtherImprovements        string
	SpecialRequest           string
	GeneralSuggestion        string
	PhotoConsentAccepted     bool
	FinalDeclarationAccepted bool
}

// ValidateAssessment checks that every required field is non-empty after
// trimming. The date is allowed to be empty here; the service defaults it to
// the submission day. Returns *Error listing every offending field so the
// form can be re-shown with all problems indicated at once.
func ValidateAssessment(in AssessmentInput) error {
	required := []struct {
		name  string
		value string
	}{
		{"client_name", in.ClientName},
		{"weight", in.Weight},
		{"measurements", in.Measurements},
		{"missed_training_notes", in.MissedTrainingNotes},
		{"likes_dislikes_notes", in.LikesDislikesNotes},
		{"water_goal_notes", in.WaterGoalNotes},
		{"diet_notes", in.DietNotes},
	}

	var missing []string
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			missing = append(missing, f.name)
		}
	}

	if strings.TrimSpace(in.ClientName) != "" && len(strings.TrimSpace(in.ClientName)) > 255 {
		missing = append(missing, "client_name")
	}

	if len(missing) > 0 {
		return &Error{Fields: missing}
	}

	return nil
}
