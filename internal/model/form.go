package model

import "time"

// Form is a feedback form created by an owner
type Form struct {
	ID          string    `json:"id" bson:"_id"`
	OwnerID     string    `json:"ownerId" bson:"ownerId"`
	OwnerEmail  string    `json:"ownerEmail,omitempty" bson:"ownerEmail,omitempty"` // notification target
	Title       string    `json:"title" bson:"title"`
	Description string    `json:"description" bson:"description"`
	Questions   []string  `json:"questions" bson:"questions"`
	Suggestions []string  `json:"suggestions" bson:"suggestions"` // append-only
	CreatedAt   time.Time `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt" bson:"updatedAt"`
}

// PublicForm is what responders see before submitting
type PublicForm struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Questions   []string `json:"questions"`
}

// Public strips owner data from the form
func (f *Form) Public() PublicForm {
	return PublicForm{
		ID:          f.ID,
		Title:       f.Title,
		Description: f.Description,
		Questions:   f.Questions,
	}
}

// CreateFormRequest is the request body for POST /forms
type CreateFormRequest struct {
	Title       string   `json:"title" validate:"required,max=200"`
	Description string   `json:"description" validate:"max=2000"`
	Questions   []string `json:"questions" validate:"required,min=1,max=50,dive,required,max=500"`
	OwnerEmail  string   `json:"ownerEmail" validate:"omitempty,email"`
}

// UpdateQuestionsRequest replaces the question list of a form
type UpdateQuestionsRequest struct {
	Questions []string `json:"questions" validate:"required,min=1,max=50,dive,required,max=500"`
}

// SuggestionRequest appends an improvement suggestion
type SuggestionRequest struct {
	Text string `json:"text" validate:"required,max=2000"`
}
