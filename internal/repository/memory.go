package repository

import (
	"context"
	"sort"
	"sync"
	"time"

	"kudoswall/internal/model"
)

// MemoryStore keeps forms and responses in process. It backs tests and
// MONGO_URI=memory runs. Records are copied on the way in and out.
type MemoryStore struct {
	mu        sync.RWMutex
	forms     map[string]*model.Form
	responses map[string]*model.Response
}

// NewMemoryStore creates an empty store
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{
		forms:     make(map[string]*model.Form),
		responses: make(map[string]*model.Response),
	}
}

// Forms returns a FormRepo view of the store
func (s *MemoryStore) Forms() FormRepo {
	return &memoryFormRepo{store: s}
}

// Responses returns a ResponseRepo view of the store
func (s *MemoryStore) Responses() ResponseRepo {
	return &memoryResponseRepo{store: s}
}

func copyForm(f *model.Form) *model.Form {
	c := *f
	c.Questions = append([]string(nil), f.Questions...)
	c.Suggestions = append([]string{}, f.Suggestions...)
	return &c
}

func copyResponse(r *model.Response) *model.Response {
	c := *r
	c.Questions = append([]string(nil), r.Questions...)
	c.Answers = append([]string(nil), r.Answers...)
	return &c
}

type memoryFormRepo struct {
	store *MemoryStore
}

func (r *memoryFormRepo) Create(ctx context.Context, form *model.Form) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if form.ID == "" {
		form.ID = newID()
	}
	now := time.Now().UTC()
	form.CreatedAt = now
	form.UpdatedAt = now
	if form.Suggestions == nil {
		form.Suggestions = []string{}
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.forms[form.ID] = copyForm(form)
	return form.ID, nil
}

func (r *memoryFormRepo) GetByID(ctx context.Context, id string) (*model.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	form, ok := r.store.forms[id]
	if !ok {
		return nil, nil
	}
	return copyForm(form), nil
}

func (r *memoryFormRepo) GetByOwnerID(ctx context.Context, ownerID string) ([]*model.Form, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	forms := []*model.Form{}
	for _, f := range r.store.forms {
		if f.OwnerID == ownerID {
			forms = append(forms, copyForm(f))
		}
	}
	sort.SliceStable(forms, func(i, j int) bool {
		if forms[i].CreatedAt.Equal(forms[j].CreatedAt) {
			return forms[i].ID < forms[j].ID
		}
		return forms[i].CreatedAt.Before(forms[j].CreatedAt)
	})
	return forms, nil
}

func (r *memoryFormRepo) UpdateQuestions(ctx context.Context, id string, questions []string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	form, ok := r.store.forms[id]
	if !ok {
		return ErrNotFound
	}
	form.Questions = append([]string(nil), questions...)
	form.UpdatedAt = time.Now().UTC()
	return nil
}

func (r *memoryFormRepo) AppendSuggestion(ctx context.Context, id, suggestion string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	form, ok := r.store.forms[id]
	if !ok {
		return ErrNotFound
	}
	form.Suggestions = append(form.Suggestions, suggestion)
	form.UpdatedAt = time.Now().UTC()
	return nil
}

type memoryResponseRepo struct {
	store *MemoryStore
}

func (r *memoryResponseRepo) Create(ctx context.Context, resp *model.Response) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	if resp.ID == "" {
		resp.ID = newID()
	}
	if resp.CreatedAt.IsZero() {
		resp.CreatedAt = time.Now().UTC()
	}

	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	r.store.responses[resp.ID] = copyResponse(resp)
	return resp.ID, nil
}

func (r *memoryResponseRepo) GetByID(ctx context.Context, id string) (*model.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	resp, ok := r.store.responses[id]
	if !ok {
		return nil, nil
	}
	return copyResponse(resp), nil
}

func (r *memoryResponseRepo) GetByFormID(ctx context.Context, formID string, includeSpam bool) ([]*model.Response, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()

	responses := []*model.Response{}
	for _, resp := range r.store.responses {
		if resp.FormID != formID || (resp.Spam && !includeSpam) {
			continue
		}
		responses = append(responses, copyResponse(resp))
	}
	sort.SliceStable(responses, func(i, j int) bool {
		if responses[i].CreatedAt.Equal(responses[j].CreatedAt) {
			return responses[i].ID < responses[j].ID
		}
		return responses[i].CreatedAt.Before(responses[j].CreatedAt)
	})
	return responses, nil
}

func (r *memoryResponseRepo) SetSpam(ctx context.Context, id string, spam bool) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	resp, ok := r.store.responses[id]
	if !ok {
		return ErrNotFound
	}
	resp.Spam = spam
	return nil
}
