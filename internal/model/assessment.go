package model

import (
	"time"
)

// Assessment is one client's reassessment submission. Clients are identified
// purely by name equality; there is no separate client entity. Rows are
// append-only: once created they are never updated or deleted.
type Assessment struct {
	ID                       int64     `db:"id"`
	ClientName               string    `db:"client_name"`
	AssessmentDate           time.Time `db:"assessment_date"`
	Weight                   string    `db:"weight"`
	Measurements             string    `db:"measurements"`
	MissedTrainingNotes      string    `db:"missed_training_notes"`
	LikesDislikesNotes       string    `db:"likes_dislikes_notes"`
	WaterGoalNotes           string    `db:"water_goal_notes"`
	DietNotes                string    `db:"diet_notes"`
	ImprovementItems         string    `db:"improvement_items"` // JSON array text, always valid at rest
	OtherImprovements        string    `db:"other_improvements"`
	SpecialRequest           string    `db:"special_request"`
	GeneralSuggestion        string    `db:"general_suggestion"`
	PhotoConsentAccepted     bool      `db:"photo_consent_accepted"`
	FinalDeclarationAccepted bool      `db:"final_declaration_accepted"`
	CreatedAt                time.Time `db:"created_at"`

	// Computed field (not in database) - decoded ImprovementItems
	Improvements []string `db:"-"`
}
