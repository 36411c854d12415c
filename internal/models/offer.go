package models

import (
	"strings"
	"time"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

type City string

const (
	CityParis      City = "Paris"
	CityCologne    City = "Cologne"
	CityBrussels   City = "Brussels"
	CityAmsterdam  City = "Amsterdam"
	CityHamburg    City = "Hamburg"
	CityDusseldorf City = "Dusseldorf"
)

var knownCities = map[City]struct{}{
	CityParis: {}, CityCologne: {}, CityBrussels: {},
	CityAmsterdam: {}, CityHamburg: {}, CityDusseldorf: {},
}

var cityCaser = cases.Title(language.English)

// ParseCity normalizes user input ("paris", " PARIS ") to a known city.
func ParseCity(s string) (City, bool) {
	c := City(cityCaser.String(strings.ToLower(strings.TrimSpace(s))))
	_, ok := knownCities[c]
	return c, ok
}

type HousingType string

const (
	HousingApartment HousingType = "apartment"
	HousingHouse     HousingType = "house"
	HousingRoom      HousingType = "room"
	HousingHotel     HousingType = "hotel"
)

func (t HousingType) Valid() bool {
	switch t {
	case HousingApartment, HousingHouse, HousingRoom, HousingHotel:
		return true
	}
	return false
}

type Offer struct {
	ID            string      `json:"id"`
	Name          string      `json:"name"`
	Description   string      `json:"description"`
	City          City        `json:"city"`
	PreviewImage  string      `json:"previewImage"`
	IsPremium     bool        `json:"isPremium"`
	Type          HousingType `json:"type"`
	Rooms         int         `json:"rooms"`
	Guests        int         `json:"guests"`
	Price         int         `json:"price"`
	Latitude      float64     `json:"latitude"`
	Longitude     float64     `json:"longitude"`
	AuthorID      string      `json:"authorId"`
	Author        *PublicUser `json:"author,omitempty"`
	CommentsCount int         `json:"commentsCount"`
	CreatedAt     time.Time   `json:"createdAt"`
	UpdatedAt     *time.Time  `json:"updatedAt,omitempty"`
}

// ListedOffer is an offer as returned by the listing query. Rating is nil when
// the offer has no comments yet; it is never reported as zero in that case.
type ListedOffer struct {
	Offer
	Rating     *float64 `json:"rating"`
	IsFavorite bool     `json:"isFavorite"`
}

const (
	DefaultOfferCount   = 60
	MaxOfferCount       = 500
	DefaultPremiumCount = 3
)

type SortField string

const (
	SortByCreatedAt     SortField = "created_at"
	SortByCommentsCount SortField = "comments_count"
	SortByPrice         SortField = "price"
	SortByName          SortField = "name"
)

func (f SortField) Valid() bool {
	switch f {
	case SortByCreatedAt, SortByCommentsCount, SortByPrice, SortByName:
		return true
	}
	return false
}

type SortOrder string

const (
	SortDesc SortOrder = "desc"
	SortAsc  SortOrder = "asc"
)

// FavoriteKey selects whose favorites decide ListedOffer.IsFavorite.
type FavoriteKey string

const (
	// FavoriteOfAuthor checks whether the offer's own author favorited it.
	FavoriteOfAuthor FavoriteKey = "author"
	// FavoriteOfViewer checks whether the requesting user favorited it.
	FavoriteOfViewer FavoriteKey = "viewer"
)

type ListingQuery struct {
	Limit       int
	SortBy      SortField
	Order       SortOrder
	FavoriteKey FavoriteKey
	ViewerID    string
}

// Normalize applies defaults and rejects values the store cannot execute.
func (q ListingQuery) Normalize() (ListingQuery, error) {
	if q.Limit < 0 {
		return q, ErrInvalidLimit
	}
	if q.Limit == 0 {
		q.Limit = DefaultOfferCount
	}
	if q.Limit > MaxOfferCount {
		q.Limit = MaxOfferCount
	}
	if q.SortBy == "" {
		q.SortBy = SortByCreatedAt
	}
	if !q.SortBy.Valid() {
		return q, ErrInvalidSortField
	}
	if q.Order != SortAsc {
		q.Order = SortDesc
	}
	if q.FavoriteKey == "" {
		q.FavoriteKey = FavoriteOfAuthor
	}
	if q.FavoriteKey != FavoriteOfAuthor && q.FavoriteKey != FavoriteOfViewer {
		return q, ErrInvalidFavoriteKey
	}
	return q, nil
}
