package repository

import (
	"errors"

	"github.com/fitstudio/reassess/internal/model"
	"github.com/jmoiron/sqlx"
)

const (
	// OrderNewestFirst sorts by assessment date descending (history view).
	OrderNewestFirst = "newest"
	// OrderOldestFirst sorts by assessment date ascending (comparison view).
	OrderOldestFirst = "oldest"
)

var (
	ErrInvalidOrder = errors.New("invalid sort order")
)

// AssessmentRepository owns all persisted assessment rows. The table is
// append-only: there are deliberately no update or delete methods.
type AssessmentRepository interface {
	Create(assessment *model.Assessment) error
	DistinctClientNames() ([]string, error)
	ByClientName(name, order string) ([]*model.Assessment, error)
}

type assessmentRepository struct {
	db *sqlx.DB
}

func NewAssessmentRepository(db *sqlx.DB) AssessmentRepository {
	return &assessmentRepository{db: db}
}

func (r *assessmentRepository) Create(assessment *model.Assessment) error {
	query := `INSERT INTO assessments (
	              client_name, assessment_date, weight, measurements,
	              missed_training_notes, likes_dislikes_notes, water_goal_notes, diet_notes,
	              improvement_items, other_improvements, special_request, general_suggestion,
	              photo_consent_accepted, final_declaration_accepted, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
	          RETURNING id`

	// RETURNING works on both sqlite (3.35+) and postgres, so the assigned
	// id comes back without driver-specific LastInsertId handling.
	err := r.db.QueryRow(query,
		assessment.ClientName,
		assessment.AssessmentDate,
		assessment.Weight,
		assessment.Measurements,
		assessment.MissedTrainingNotes,
		assessment.LikesDislikesNotes,
		assessment.WaterGoalNotes,
		assessment.DietNotes,
		assessment.ImprovementItems,
		assessment.OtherImprovements,
		assessment.SpecialRequest,
		assessment.GeneralSuggestion,
		assessment.PhotoConsentAccepted,
		assessment.FinalDeclarationAccepted,
		assessment.CreatedAt,
	).Scan(&assessment.ID)

	return err
}

func (r *assessmentRepository) DistinctClientNames() ([]string, error) {
	// No ORDER BY: callers that need a stable order must sort explicitly.
	var names []string
	err := r.db.Select(&names, `SELECT DISTINCT client_name FROM assessments`)
	if err != nil {
		return nil, err
	}
	return names, nil
}

func (r *assessmentRepository) ByClientName(name, order string) ([]*model.Assessment, error) {
	// Validate and build ORDER BY clause. The id tie-break follows the date
	// direction so same-date rows keep insertion order.
	var orderBy string
	switch order {
	case OrderOldestFirst:
		orderBy = "ORDER BY assessment_date ASC, id ASC"
	case OrderNewestFirst:
		orderBy = "ORDER BY assessment_date DESC, id DESC"
	default:
		return nil, ErrInvalidOrder
	}

	var assessments []*model.Assessment
	query := `SELECT * FROM assessments WHERE client_name = $1 ` + orderBy

	err := r.db.Select(&assessments, query, name)
	if err != nil {
		return nil, err
	}

	return assessments, nil
}
