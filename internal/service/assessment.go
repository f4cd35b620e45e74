package service

import (
	"strings"
	"time"

	"github.com/fitstudio/reassess/internal/model"
	"github.com/fitstudio/reassess/internal/multiselect"
	"github.com/fitstudio/reassess/internal/repository"
	"github.com/fitstudio/reassess/internal/validation"
)

// AssessmentService handles public form submissions. Submissions are
// intentionally unauthenticated so clients can self-report without an
// account.
type AssessmentService struct {
	assessmentRepository repository.AssessmentRepository
	now                  func() time.Time
}

func NewAssessmentService(assessmentRepository repository.AssessmentRepository) *AssessmentService {
	return &AssessmentService{
		assessmentRepository: assessmentRepository,
		now:                  time.Now,
	}
}

// Create validates the submission, encodes the multi-select field, and
// appends one durable row. The assessment date defaults to the submission
// day when the form leaves it blank.
func (s *AssessmentService) Create(in validation.AssessmentInput) (*model.Assessment, error) {
	err := validation.ValidateAssessment(in)
	if err != nil {
		return nil, err
	}

	assessmentDate := s.now()
	if strings.TrimSpace(in.AssessmentDate) != "" {
		assessmentDate, err = time.Parse("2006-01-02", strings.TrimSpace(in.AssessmentDate))
		if err != nil {
			return nil, &validation.Error{Fields: []string{"assessment_date"}}
		}
	}

	assessment := &model.Assessment{
		ClientName:               strings.TrimSpace(in.ClientName),
		AssessmentDate:           assessmentDate,
		Weight:                   in.Weight,
		Measurements:             in.Measurements,
		MissedTrainingNotes:      in.MissedTrainingNotes,
		LikesDislikesNotes:       in.LikesDislikesNotes,
		WaterGoalNotes:           in.WaterGoalNotes,
		DietNotes:                in.DietNotes,
		ImprovementItems:         multiselect.Encode(in.ImprovementItems),
		OtherImprovements:        in.OtherImprovements,
		SpecialRequest:           in.SpecialRequest,
		GeneralSuggestion:        in.GeneralSuggestion,
		PhotoConsentAccepted:     in.PhotoConsentAccepted,
		FinalDeclarationAccepted: in.FinalDeclarationAccepted,
		CreatedAt:                s.now(),
	}

	err = s.assessmentRepository.Create(assessment)
	if err != nil {
		return nil, err
	}

	return assessment, nil
}
