package models

import (
	"time"
)

type Comment struct {
	ID        string      `json:"id"`
	OfferID   string      `json:"offerId"`
	AuthorID  string      `json:"authorId"`
	Author    *PublicUser `json:"author,omitempty"`
	Text      string      `json:"text"`
	Rating    int         `json:"rating"`
	CreatedAt time.Time   `json:"createdAt"`
}

const MaxCommentCount = 50

type CreateCommentDto struct {
	OfferID  string `json:"offerId"`
	AuthorID string `json:"authorId"`
	Text     string `json:"text"`
	Rating   int    `json:"rating"`
}

func (d *CreateCommentDto) Validate() error {
	var errs ValidationErrors
	errs.checkID("offerId", d.OfferID)
	errs.checkID("authorId", d.AuthorID)
	errs.checkLength("text", d.Text, 5, 1024)
	errs.checkRange("rating", d.Rating, 1, 5)
	return errs.Err()
}

type UpdateCommentDto struct {
	Text   *string `json:"text,omitempty"`
	Rating *int    `json:"rating,omitempty"`
}

func (d *UpdateCommentDto) IsEmpty() bool {
	return d.Text == nil && d.Rating == nil
}

func (d *UpdateCommentDto) Validate() error {
	var errs ValidationErrors
	if d.Text != nil {
		errs.checkLength("text", *d.Text, 5, 1024)
	}
	if d.Rating != nil {
		errs.checkRange("rating", *d.Rating, 1, 5)
	}
	return errs.Err()
}
