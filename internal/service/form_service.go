package service

import (
	"context"
	"errors"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/logger"
	"kudoswall/internal/model"
	"kudoswall/internal/repository"
)

// FormService handles form business logic
type FormService struct {
	forms    repository.FormRepo
	validate *validator.Validate
	log      *zap.SugaredLogger
}

// NewFormService creates a new form service
func NewFormService(forms repository.FormRepo, validate *validator.Validate) *FormService {
	return &FormService{
		forms:    forms,
		validate: validate,
		log:      logger.GetLogger(),
	}
}

// ownedForm loads a form and checks that ownerID owns it.
func ownedForm(ctx context.Context, forms repository.FormRepo, ownerID, formID string) (*model.Form, error) {
	form, err := forms.GetByID(ctx, formID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if form == nil {
		return nil, apperrors.NotFound("Form", formID)
	}
	if form.OwnerID != ownerID {
		return nil, apperrors.Forbidden("form belongs to another owner", "")
	}
	return form, nil
}

func trimAll(in []string) []string {
	out := make([]string, len(in))
	for i, s := range in {
		out[i] = strings.TrimSpace(s)
	}
	return out
}

// Create stores a new form for ownerID.
func (s *FormService) Create(ctx context.Context, ownerID string, req *model.CreateFormRequest) (*model.Form, error) {
	req.Title = strings.TrimSpace(req.Title)
	req.Questions = trimAll(req.Questions)
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	form := &model.Form{
		OwnerID:     ownerID,
		OwnerEmail:  strings.TrimSpace(req.OwnerEmail),
		Title:       req.Title,
		Description: strings.TrimSpace(req.Description),
		Questions:   req.Questions,
		Suggestions: []string{},
	}
	if _, err := s.forms.Create(ctx, form); err != nil {
		return nil, apperrors.Internal(err)
	}

	s.log.Infow("Form created", "formId", form.ID, "ownerId", ownerID, "questions", len(form.Questions))
	return form, nil
}

// ListOwned returns the owner's forms, oldest first.
func (s *FormService) ListOwned(ctx context.Context, ownerID string) ([]*model.Form, error) {
	forms, err := s.forms.GetByOwnerID(ctx, ownerID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return forms, nil
}

func (s *FormService) GetOwned(ctx context.Context, ownerID, formID string) (*model.Form, error) {
	return ownedForm(ctx, s.forms, ownerID, formID)
}

// GetPublic returns the form as responders see it.
func (s *FormService) GetPublic(ctx context.Context, formID string) (*model.PublicForm, error) {
	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if form == nil {
		return nil, apperrors.NotFound("Form", formID)
	}
	public := form.Public()
	return &public, nil
}

// UpdateQuestions replaces the question list. Stored responses keep the
// questions they were answered against.
func (s *FormService) UpdateQuestions(ctx context.Context, ownerID, formID string, req *model.UpdateQuestionsRequest) (*model.Form, error) {
	req.Questions = trimAll(req.Questions)
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}
	form, err := ownedForm(ctx, s.forms, ownerID, formID)
	if err != nil {
		return nil, err
	}

	if err := s.forms.UpdateQuestions(ctx, formID, req.Questions); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Form", formID)
		}
		return nil, apperrors.Internal(err)
	}
	form.Questions = req.Questions
	return form, nil
}

// AddSuggestion appends to the form's improvement suggestions.
func (s *FormService) AddSuggestion(ctx context.Context, formID string, req *model.SuggestionRequest) error {
	req.Text = strings.TrimSpace(req.Text)
	if err := validateRequest(s.validate, req); err != nil {
		return err
	}
	if err := s.forms.AppendSuggestion(ctx, formID, req.Text); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return apperrors.NotFound("Form", formID)
		}
		return apperrors.Internal(err)
	}
	return nil
}
