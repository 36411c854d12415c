package models

import (
	"errors"
	"testing"
)

func TestParseCity(t *testing.T) {
	tests := []struct {
		in   string
		want City
		ok   bool
	}{
		{"Paris", CityParis, true},
		{" paris ", CityParis, true},
		{"DUSSELDORF", CityDusseldorf, true},
		{"atlantis", "", false},
		{"", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseCity(tt.in)
		if ok != tt.ok || (ok && got != tt.want) {
			t.Errorf("ParseCity(%q) = %q, %v", tt.in, got, ok)
		}
	}
}

func TestListingQueryNormalize(t *testing.T) {
	q, err := ListingQuery{}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit != DefaultOfferCount || q.SortBy != SortByCreatedAt || q.Order != SortDesc || q.FavoriteKey != FavoriteOfAuthor {
		t.Errorf("unexpected defaults: %+v", q)
	}

	q, err = ListingQuery{Limit: MaxOfferCount + 1, Order: "sideways"}.Normalize()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if q.Limit != MaxOfferCount || q.Order != SortDesc {
		t.Errorf("expected clamped limit and desc order: %+v", q)
	}

	errCases := []struct {
		q    ListingQuery
		want error
	}{
		{ListingQuery{Limit: -1}, ErrInvalidLimit},
		{ListingQuery{SortBy: "offerCount"}, ErrInvalidSortField},
		{ListingQuery{FavoriteKey: "admin"}, ErrInvalidFavoriteKey},
	}
	for _, tc := range errCases {
		if _, err := tc.q.Normalize(); !errors.Is(err, tc.want) {
			t.Errorf("%+v: expected %v, got %v", tc.q, tc.want, err)
		}
	}
}

func TestUpdateOfferDtoIsEmpty(t *testing.T) {
	var dto UpdateOfferDto
	if !dto.IsEmpty() {
		t.Fatal("expected empty dto")
	}
	premium := false
	dto.IsPremium = &premium
	if dto.IsEmpty() {
		t.Fatal("expected non-empty dto")
	}
}
