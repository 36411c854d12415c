package services

import (
	"context"
	"errors"
	"testing"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

func newFavoriteFixture() (*FavoriteService, *stubFavoriteStore, *stubPublisher) {
	offers := newStubOfferStore(
		models.Offer{ID: "o1", AuthorID: "a1"},
		models.Offer{ID: "o2", AuthorID: "a2"},
	)
	favs := newStubFavoriteStore(offers)
	comments := &stubCommentStore{comments: []models.Comment{{OfferID: "o1", Rating: 3}}}
	pub := &stubPublisher{}
	svc := &FavoriteService{
		FavoriteRepo: favs,
		CommentRepo:  comments,
		Offers:       stubChecker{"o1": true, "o2": true},
		Users:        stubChecker{"u1": true},
		Events:       pub,
	}
	return svc, favs, pub
}

func TestFavoriteServiceAddTwice(t *testing.T) {
	svc, _, pub := newFavoriteFixture()
	ctx := context.Background()
	dto := models.AddFavoriteOfferDto{UserID: "u1", OfferID: "o1"}

	if err := svc.Add(ctx, dto); err != nil {
		t.Fatalf("first add: %v", err)
	}
	if err := svc.Add(ctx, dto); !errors.Is(err, models.ErrAlreadyFavorite) {
		t.Fatalf("expected ErrAlreadyFavorite, got %v", err)
	}
	if len(pub.events) != 1 {
		t.Errorf("expected a single event, got %d", len(pub.events))
	}
}

func TestFavoriteServiceAddUnknownReference(t *testing.T) {
	svc, _, _ := newFavoriteFixture()
	ctx := context.Background()

	if err := svc.Add(ctx, models.AddFavoriteOfferDto{UserID: "ghost", OfferID: "o1"}); !errors.Is(err, models.ErrReferenceNotFound) {
		t.Errorf("unknown user: got %v", err)
	}
	if err := svc.Add(ctx, models.AddFavoriteOfferDto{UserID: "u1", OfferID: "ghost"}); !errors.Is(err, models.ErrReferenceNotFound) {
		t.Errorf("unknown offer: got %v", err)
	}
}

func TestFavoriteServiceRemoveAndExists(t *testing.T) {
	svc, _, _ := newFavoriteFixture()
	ctx := context.Background()
	if err := svc.Add(ctx, models.AddFavoriteOfferDto{UserID: "u1", OfferID: "o2"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	if ok, _ := svc.Exists(ctx, "u1", "o2"); !ok {
		t.Error("expected favorite to exist")
	}
	if removed, _ := svc.Remove(ctx, "u1", "o2"); !removed {
		t.Error("expected first remove to report a record")
	}
	if removed, _ := svc.Remove(ctx, "u1", "o2"); removed {
		t.Error("expected second remove to report nothing")
	}
	if ok, _ := svc.Exists(ctx, "u1", "o2"); ok {
		t.Error("favorite still present after remove")
	}
}

func TestFavoriteServiceFindByUser(t *testing.T) {
	svc, _, _ := newFavoriteFixture()
	ctx := context.Background()
	if err := svc.Add(ctx, models.AddFavoriteOfferDto{UserID: "u1", OfferID: "o1"}); err != nil {
		t.Fatalf("add: %v", err)
	}

	listed, err := svc.FindByUser(ctx, "u1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(listed) != 1 || listed[0].ID != "o1" {
		t.Fatalf("unexpected favorites: %+v", listed)
	}
	if !listed[0].IsFavorite {
		t.Error("favorites must be flagged")
	}
	if listed[0].Rating == nil || *listed[0].Rating != 3 {
		t.Errorf("unexpected rating: %v", listed[0].Rating)
	}

	empty, err := svc.FindByUser(ctx, "nobody")
	if err != nil || len(empty) != 0 {
		t.Errorf("expected empty list, got %v, %v", empty, err)
	}
}
