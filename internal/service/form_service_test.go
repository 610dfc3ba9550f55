package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kudoswall/internal/apperrors"
	"kudoswall/internal/model"
)

func TestFormServiceCreate(t *testing.T) {
	f := newFixture()
	svc := NewFormService(f.store.Forms(), NewValidator())
	ctx := context.Background()

	form, err := svc.Create(ctx, "owner-1", &model.CreateFormRequest{
		Title:     "  Launch feedback ",
		Questions: []string{" How did it go? ", "Would you recommend us?"},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, form.ID)
	assert.Equal(t, "Launch feedback", form.Title)
	assert.Equal(t, []string{"How did it go?", "Would you recommend us?"}, form.Questions)
	assert.Empty(t, form.Suggestions)

	owned, err := svc.ListOwned(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, owned, 1)
	assert.Equal(t, form.ID, owned[0].ID)
}

func TestFormServiceCreateValidation(t *testing.T) {
	svc := NewFormService(newFixture().store.Forms(), NewValidator())

	tests := []struct {
		name string
		req  model.CreateFormRequest
	}{
		{name: "missing title", req: model.CreateFormRequest{Questions: []string{"Q"}}},
		{name: "no questions", req: model.CreateFormRequest{Title: "T"}},
		{name: "blank question", req: model.CreateFormRequest{Title: "T", Questions: []string{"  "}}},
		{name: "bad email", req: model.CreateFormRequest{Title: "T", Questions: []string{"Q"}, OwnerEmail: "nope"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(context.Background(), "owner-1", &tt.req)
			appErr, ok := apperrors.As(err)
			require.True(t, ok)
			assert.Equal(t, apperrors.InvalidInputError, appErr.Type)
		})
	}
}

func TestFormServiceOwnership(t *testing.T) {
	f := newFixture()
	svc := NewFormService(f.store.Forms(), NewValidator())
	form := f.form(t, "owner-1", "Launch", "Q1")
	ctx := context.Background()

	_, err := svc.GetOwned(ctx, "owner-2", form.ID)
	assert.Equal(t, apperrors.ForbiddenError, mustAppError(t, err).Type)

	_, err = svc.GetOwned(ctx, "owner-1", "missing")
	assert.Equal(t, apperrors.NotFoundError, mustAppError(t, err).Type)

	got, err := svc.GetOwned(ctx, "owner-1", form.ID)
	require.NoError(t, err)
	assert.Equal(t, "Launch", got.Title)
}

func TestFormServiceUpdateQuestions(t *testing.T) {
	f := newFixture()
	svc := NewFormService(f.store.Forms(), NewValidator())
	form := f.form(t, "owner-1", "Launch", "Old question")
	ctx := context.Background()

	updated, err := svc.UpdateQuestions(ctx, "owner-1", form.ID, &model.UpdateQuestionsRequest{Questions: []string{"New 1", "New 2"}})
	require.NoError(t, err)
	assert.Equal(t, []string{"New 1", "New 2"}, updated.Questions)

	public, err := svc.GetPublic(ctx, form.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"New 1", "New 2"}, public.Questions)

	_, err = svc.UpdateQuestions(ctx, "owner-2", form.ID, &model.UpdateQuestionsRequest{Questions: []string{"x"}})
	assert.Equal(t, apperrors.ForbiddenError, mustAppError(t, err).Type)
}

func TestFormServiceAddSuggestion(t *testing.T) {
	f := newFixture()
	svc := NewFormService(f.store.Forms(), NewValidator())
	form := f.form(t, "owner-1", "Launch", "Q1")
	ctx := context.Background()

	require.NoError(t, svc.AddSuggestion(ctx, form.ID, &model.SuggestionRequest{Text: " dark mode "}))
	require.NoError(t, svc.AddSuggestion(ctx, form.ID, &model.SuggestionRequest{Text: "export"}))

	got, err := svc.GetOwned(ctx, "owner-1", form.ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"dark mode", "export"}, got.Suggestions)

	err = svc.AddSuggestion(ctx, "missing", &model.SuggestionRequest{Text: "x"})
	assert.Equal(t, apperrors.NotFoundError, mustAppError(t, err).Type)

	err = svc.AddSuggestion(ctx, form.ID, &model.SuggestionRequest{Text: "   "})
	assert.Equal(t, apperrors.InvalidInputError, mustAppError(t, err).Type)
}

func mustAppError(t *testing.T, err error) *apperrors.AppError {
	t.Helper()
	require.Error(t, err)
	appErr, ok := apperrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	return appErr
}
