package repository

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"kudoswall/internal/model"
)

func TestMemoryFormRepo(t *testing.T) {
	ctx := context.Background()
	forms := NewMemoryStore().Forms()

	id, err := forms.Create(ctx, &model.Form{OwnerID: "owner-1", Title: "Launch", Questions: []string{"How was it?"}})
	require.NoError(t, err)
	require.NotEmpty(t, id)

	got, err := forms.GetByID(ctx, id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Launch", got.Title)
	assert.Empty(t, got.Suggestions)
	assert.False(t, got.CreatedAt.IsZero())

	missing, err := forms.GetByID(ctx, "nope")
	require.NoError(t, err)
	assert.Nil(t, missing)

	require.NoError(t, forms.AppendSuggestion(ctx, id, "dark mode"))
	require.NoError(t, forms.AppendSuggestion(ctx, id, "faster export"))
	require.NoError(t, forms.UpdateQuestions(ctx, id, []string{"Q1", "Q2"}))

	got, err = forms.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"dark mode", "faster export"}, got.Suggestions)
	assert.Equal(t, []string{"Q1", "Q2"}, got.Questions)

	assert.ErrorIs(t, forms.AppendSuggestion(ctx, "nope", "x"), ErrNotFound)
	assert.ErrorIs(t, forms.UpdateQuestions(ctx, "nope", nil), ErrNotFound)
}

func TestMemoryFormRepo_GetByOwnerID(t *testing.T) {
	ctx := context.Background()
	forms := NewMemoryStore().Forms()

	_, err := forms.Create(ctx, &model.Form{ID: "a", OwnerID: "owner-1", Title: "First"})
	require.NoError(t, err)
	_, err = forms.Create(ctx, &model.Form{ID: "b", OwnerID: "owner-2", Title: "Other"})
	require.NoError(t, err)
	_, err = forms.Create(ctx, &model.Form{ID: "c", OwnerID: "owner-1", Title: "Second"})
	require.NoError(t, err)

	owned, err := forms.GetByOwnerID(ctx, "owner-1")
	require.NoError(t, err)
	require.Len(t, owned, 2)
	assert.Equal(t, "First", owned[0].Title)
	assert.Equal(t, "Second", owned[1].Title)

	none, err := forms.GetByOwnerID(ctx, "owner-3")
	require.NoError(t, err)
	assert.NotNil(t, none)
	assert.Empty(t, none)
}

func TestMemoryResponseRepo(t *testing.T) {
	ctx := context.Background()
	responses := NewMemoryStore().Responses()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	_, err := responses.Create(ctx, &model.Response{ID: "r2", FormID: "f1", Rating: 4, CreatedAt: base.Add(time.Hour)})
	require.NoError(t, err)
	_, err = responses.Create(ctx, &model.Response{ID: "r1", FormID: "f1", Rating: 5, CreatedAt: base})
	require.NoError(t, err)
	_, err = responses.Create(ctx, &model.Response{ID: "r3", FormID: "f1", Spam: true, CreatedAt: base.Add(2 * time.Hour)})
	require.NoError(t, err)
	_, err = responses.Create(ctx, &model.Response{ID: "r4", FormID: "f2", CreatedAt: base})
	require.NoError(t, err)

	clean, err := responses.GetByFormID(ctx, "f1", false)
	require.NoError(t, err)
	require.Len(t, clean, 2)
	assert.Equal(t, "r1", clean[0].ID)
	assert.Equal(t, "r2", clean[1].ID)

	all, err := responses.GetByFormID(ctx, "f1", true)
	require.NoError(t, err)
	assert.Len(t, all, 3)

	require.NoError(t, responses.SetSpam(ctx, "r3", false))
	clean, err = responses.GetByFormID(ctx, "f1", false)
	require.NoError(t, err)
	assert.Len(t, clean, 3)

	assert.ErrorIs(t, responses.SetSpam(ctx, "missing", true), ErrNotFound)

	got, err := responses.GetByID(ctx, "missing")
	require.NoError(t, err)
	assert.Nil(t, got)
}

func TestMemoryStoreCopiesRecords(t *testing.T) {
	ctx := context.Background()
	responses := NewMemoryStore().Responses()

	resp := &model.Response{FormID: "f1", Answers: []string{"original"}}
	id, err := responses.Create(ctx, resp)
	require.NoError(t, err)

	resp.Answers[0] = "mutated"
	got, err := responses.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"original"}, got.Answers)

	got.Answers[0] = "mutated again"
	again, err := responses.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, []string{"original"}, again.Answers)
}

func TestMemoryStoreHonoursCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewMemoryStore().Forms().GetByOwnerID(ctx, "owner-1")
	assert.ErrorIs(t, err, context.Canceled)
}
