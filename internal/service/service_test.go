package service

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"kudoswall/internal/logger"
	"kudoswall/internal/metrics"
	"kudoswall/internal/model"
	"kudoswall/internal/repository"
)

func init() {
	logger.IsTest = true
}

type mockGenerator struct {
	mock.Mock
}

func (m *mockGenerator) Generate(ctx context.Context, model, prompt string) (string, error) {
	args := m.Called(ctx, model, prompt)
	return args.String(0), args.Error(1)
}

type fakeBroadcaster struct {
	mu     sync.Mutex
	events []string
}

func (b *fakeBroadcaster) BroadcastToForm(formID string, msgType string, payload interface{}) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.events = append(b.events, formID+":"+msgType)
}

type fakeNotifier struct {
	calls []string
}

func (n *fakeNotifier) NotifyNewResponse(_ context.Context, form *model.Form, resp *model.Response) {
	n.calls = append(n.calls, form.ID+":"+resp.ID)
}

type fixture struct {
	store   *repository.MemoryStore
	metrics *metrics.Metrics
}

func newFixture() *fixture {
	return &fixture{store: repository.NewMemoryStore(), metrics: metrics.NewNop()}
}

func (f *fixture) form(t *testing.T, ownerID, title string, questions ...string) *model.Form {
	t.Helper()
	form := &model.Form{OwnerID: ownerID, OwnerEmail: ownerID + "@example.com", Title: title, Questions: questions}
	_, err := f.store.Forms().Create(context.Background(), form)
	require.NoError(t, err)
	return form
}

func (f *fixture) response(t *testing.T, formID string, rating int, spam bool, answers ...string) *model.Response {
	t.Helper()
	resp := &model.Response{FormID: formID, ResponderName: "Ada", Answers: answers, Rating: rating, Spam: spam}
	_, err := f.store.Responses().Create(context.Background(), resp)
	require.NoError(t, err)
	return resp
}
