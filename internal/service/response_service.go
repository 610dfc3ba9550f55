package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
	"kudoswall/internal/model"
	"kudoswall/internal/repository"
)

// SpamChecker decides whether a submission is spam.
type SpamChecker interface {
	IsSpam(ctx context.Context, resp *model.Response) bool
}

// ResponseService handles submissions and owner moderation
type ResponseService struct {
	forms       repository.FormRepo
	responses   repository.ResponseRepo
	spam        SpamChecker
	notifier    Notifier
	broadcaster Broadcaster
	validate    *validator.Validate
	metrics     *metrics.Metrics
	log         *zap.SugaredLogger
}

// NewResponseService creates a new response service. A nil broadcaster or
// notifier disables that side effect.
func NewResponseService(
	forms repository.FormRepo,
	responses repository.ResponseRepo,
	spam SpamChecker,
	notifier Notifier,
	broadcaster Broadcaster,
	validate *validator.Validate,
	m *metrics.Metrics,
) *ResponseService {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	if broadcaster == nil {
		broadcaster = nopBroadcaster{}
	}
	return &ResponseService{
		forms:       forms,
		responses:   responses,
		spam:        spam,
		notifier:    notifier,
		broadcaster: broadcaster,
		validate:    validate,
		metrics:     m,
		log:         logger.GetLogger(),
	}
}

// Submit stores a response against the form's current questions.
func (s *ResponseService) Submit(ctx context.Context, formID string, req *model.SubmitResponseRequest) (*model.Response, error) {
	req.ResponderName = strings.TrimSpace(req.ResponderName)
	req.ResponderEmail = strings.TrimSpace(req.ResponderEmail)
	req.ResponderRole = strings.TrimSpace(req.ResponderRole)
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}

	form, err := s.forms.GetByID(ctx, formID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if form == nil {
		return nil, apperrors.NotFound("Form", formID)
	}
	if len(req.Answers) != len(form.Questions) {
		return nil, apperrors.InvalidInput("answer count mismatch",
			fmt.Sprintf("form has %d questions, got %d answers", len(form.Questions), len(req.Answers)))
	}

	resp := &model.Response{
		FormID:         formID,
		ResponderName:  req.ResponderName,
		ResponderEmail: req.ResponderEmail,
		Questions:      append([]string(nil), form.Questions...),
		Answers:        trimAll(req.Answers),
		Rating:         req.Rating,
		ImageURL:       req.ImageURL,
		ResponderRole:  req.ResponderRole,
	}
	if s.spam != nil {
		resp.Spam = s.spam.IsSpam(ctx, resp)
	}

	if _, err := s.responses.Create(ctx, resp); err != nil {
		return nil, apperrors.Internal(err)
	}

	verdict := "ham"
	if resp.Spam {
		verdict = "spam"
	}
	s.metrics.Submissions.WithLabelValues(verdict).Inc()
	s.log.Infow("Response submitted",
		"formId", formID,
		"responseId", resp.ID,
		"responder", logger.MaskEmail(resp.ResponderEmail),
		"spam", resp.Spam,
	)

	s.broadcaster.BroadcastToForm(formID, EventResponseCreated, model.ResponseCreatedEvent{
		ResponseID:    resp.ID,
		FormID:        formID,
		ResponderName: resp.ResponderName,
		Rating:        resp.Rating,
		Spam:          resp.Spam,
		CreatedAt:     resp.CreatedAt,
	})
	if !resp.Spam && form.OwnerEmail != "" {
		s.notifier.NotifyNewResponse(ctx, form, resp)
	}
	return resp, nil
}

// GetEmbed returns the public view of a response. Spam is never embedded.
func (s *ResponseService) GetEmbed(ctx context.Context, responseID string) (*model.Response, error) {
	resp, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if resp == nil || resp.Spam {
		return nil, apperrors.NotFound("Response", responseID)
	}
	return resp, nil
}

// GetOwned returns a response of one of the owner's forms.
func (s *ResponseService) GetOwned(ctx context.Context, ownerID, responseID string) (*model.Response, error) {
	resp, err := s.responses.GetByID(ctx, responseID)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	if resp == nil {
		return nil, apperrors.NotFound("Response", responseID)
	}
	if _, err := ownedForm(ctx, s.forms, ownerID, resp.FormID); err != nil {
		return nil, err
	}
	return resp, nil
}

// ListForForm returns a form's responses, oldest first.
func (s *ResponseService) ListForForm(ctx context.Context, ownerID, formID string, includeSpam bool) ([]*model.Response, error) {
	if _, err := ownedForm(ctx, s.forms, ownerID, formID); err != nil {
		return nil, err
	}
	responses, err := s.responses.GetByFormID(ctx, formID, includeSpam)
	if err != nil {
		return nil, apperrors.Internal(err)
	}
	return responses, nil
}

// SetSpam overrides the classifier's verdict.
func (s *ResponseService) SetSpam(ctx context.Context, ownerID, responseID string, req *model.SpamUpdateRequest) (*model.Response, error) {
	if err := validateRequest(s.validate, req); err != nil {
		return nil, err
	}
	resp, err := s.GetOwned(ctx, ownerID, responseID)
	if err != nil {
		return nil, err
	}

	if err := s.responses.SetSpam(ctx, responseID, *req.Spam); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, apperrors.NotFound("Response", responseID)
		}
		return nil, apperrors.Internal(err)
	}
	resp.Spam = *req.Spam

	s.log.Infow("Spam flag updated", "responseId", responseID, "spam", resp.Spam)
	s.broadcaster.BroadcastToForm(resp.FormID, EventResponseUpdated, model.ResponseCreatedEvent{
		ResponseID:    resp.ID,
		FormID:        resp.FormID,
		ResponderName: resp.ResponderName,
		Rating:        resp.Rating,
		Spam:          resp.Spam,
		CreatedAt:     resp.CreatedAt,
	})
	return resp, nil
}
