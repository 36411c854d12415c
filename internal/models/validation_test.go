package models

import (
	"errors"
	"strings"
	"testing"
)

func messages(t *testing.T, err error) []string {
	t.Helper()
	if err == nil {
		return nil
	}
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T", err)
	}
	out := make([]string, len(verrs))
	for i, fe := range verrs {
		out[i] = fe.Message
	}
	return out
}

func TestAddFavoriteOfferDtoValidate(t *testing.T) {
	valid := NewID()
	tests := []struct {
		name string
		dto  AddFavoriteOfferDto
		want []string
	}{
		{"valid", AddFavoriteOfferDto{OfferID: valid, UserID: NewID()}, nil},
		{"bad offer", AddFavoriteOfferDto{OfferID: "123", UserID: valid}, []string{"offerId.invalidFormat"}},
		{"bad user", AddFavoriteOfferDto{OfferID: valid, UserID: ""}, []string{"userId.invalidFormat"}},
		{"both bad", AddFavoriteOfferDto{}, []string{"offerId.invalidFormat", "userId.invalidFormat"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := messages(t, tt.dto.Validate())
			if strings.Join(got, ",") != strings.Join(tt.want, ",") {
				t.Errorf("expected %v, got %v", tt.want, got)
			}
		})
	}
}

func TestValidationErrorsErrIsUntypedNil(t *testing.T) {
	var errs ValidationErrors
	if err := errs.Err(); err != nil {
		t.Fatalf("expected nil error, got %v", err)
	}
}

func TestCreateOfferDtoValidate(t *testing.T) {
	dto := CreateOfferDto{
		Name:         "Sunny loft by the canal",
		Description:  "Bright loft with a view over the canal and quiet neighbours",
		City:         " amsterdam ",
		PreviewImage: "preview.jpg",
		Type:         HousingApartment,
		Rooms:        2,
		Guests:       4,
		Price:        1500,
		Latitude:     52.370216,
		Longitude:    4.895168,
		AuthorID:     NewID(),
	}
	if err := dto.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.City != string(CityAmsterdam) {
		t.Errorf("expected city to be normalized, got %q", dto.City)
	}

	dto.Rooms = 9
	dto.Price = 50
	dto.Latitude = 91
	got := strings.Join(messages(t, dto.Validate()), ",")
	for _, want := range []string{"rooms.max", "price.min", "latitude.outOfRange"} {
		if !strings.Contains(got, want) {
			t.Errorf("expected %s in %s", want, got)
		}
	}
}

func TestCreateUserDtoDefaultsType(t *testing.T) {
	dto := CreateUserDto{Email: "keks@example.com", Name: "Keks", Password: "secret1"}
	if err := dto.Validate(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if dto.Type != UserRegular {
		t.Errorf("expected regular type, got %q", dto.Type)
	}

	dto = CreateUserDto{Email: "not-an-email", Name: "", Password: "123"}
	got := strings.Join(messages(t, dto.Validate()), ",")
	want := "email.invalidFormat,name.minLength,password.minLength"
	if got != want {
		t.Errorf("expected %s, got %s", want, got)
	}
}

func TestCreateCommentDtoValidate(t *testing.T) {
	dto := CreateCommentDto{OfferID: NewID(), AuthorID: NewID(), Text: "ok", Rating: 6}
	got := strings.Join(messages(t, dto.Validate()), ",")
	if got != "text.minLength,rating.max" {
		t.Errorf("unexpected messages: %s", got)
	}
}
