package models

// Favorite marks that UserID favorited OfferID. At most one exists per pair.
type Favorite struct {
	UserID  string `json:"userId"`
	OfferID string `json:"offerId"`
}

type AddFavoriteOfferDto struct {
	OfferID string `json:"offerId"`
	UserID  string `json:"userId"`
}

func (d *AddFavoriteOfferDto) Validate() error {
	var errs ValidationErrors
	errs.checkID("offerId", d.OfferID)
	errs.checkID("userId", d.UserID)
	return errs.Err()
}
