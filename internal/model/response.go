package model

import "time"

// Response is one submission to a form. Questions is the form's question list
// at submission time and Answers is index-aligned with it.
type Response struct {
	ID             string    `json:"id" bson:"_id"`
	FormID         string    `json:"formId" bson:"formId"`
	ResponderName  string    `json:"responderName" bson:"responderName"`
	ResponderEmail string    `json:"responderEmail" bson:"responderEmail"`
	Questions      []string  `json:"questions" bson:"questions"`
	Answers        []string  `json:"answers" bson:"answers"`
	Rating         int       `json:"rating" bson:"rating"` // 0 = unrated, otherwise 1-5
	Spam           bool      `json:"spam" bson:"spam"`
	ImageURL       string    `json:"imageUrl,omitempty" bson:"imageUrl,omitempty"`
	ResponderRole  string    `json:"responderRole,omitempty" bson:"responderRole,omitempty"`
	CreatedAt      time.Time `json:"createdAt" bson:"createdAt"`
}

// EmbedPayload is the JSON the embed loader fetches for a response
type EmbedPayload struct {
	Answers       []string `json:"answers"`
	Rating        int      `json:"rating"`
	ImageURL      string   `json:"imageUrl,omitempty"`
	ResponderName string   `json:"responderName,omitempty"`
	ResponderRole string   `json:"responderRole,omitempty"`
}

// Embed returns the public subset of the response
func (r *Response) Embed() EmbedPayload {
	answers := r.Answers
	if answers == nil {
		answers = []string{}
	}
	return EmbedPayload{
		Answers:       answers,
		Rating:        r.Rating,
		ImageURL:      r.ImageURL,
		ResponderName: r.ResponderName,
		ResponderRole: r.ResponderRole,
	}
}

// SubmitResponseRequest is the request body for POST /forms/{formId}/responses
type SubmitResponseRequest struct {
	ResponderName  string   `json:"responderName" validate:"required,max=120"`
	ResponderEmail string   `json:"responderEmail" validate:"omitempty,email"`
	Answers        []string `json:"answers" validate:"required,dive,max=5000"`
	Rating         int      `json:"rating" validate:"min=0,max=5"`
	ImageURL       string   `json:"imageUrl" validate:"omitempty,url"`
	ResponderRole  string   `json:"responderRole" validate:"max=120"`
}

// SpamUpdateRequest is the request body for PATCH /responses/{id}/spam
type SpamUpdateRequest struct {
	Spam *bool `json:"spam" validate:"required"`
}

// ResponseCreatedEvent is pushed to owners watching a form
type ResponseCreatedEvent struct {
	ResponseID    string    `json:"responseId"`
	FormID        string    `json:"formId"`
	ResponderName string    `json:"responderName"`
	Rating        int       `json:"rating"`
	Spam          bool      `json:"spam"`
	CreatedAt     time.Time `json:"createdAt"`
}
