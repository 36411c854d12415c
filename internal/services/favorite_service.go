package services

import (
	"context"
	"log/slog"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/events"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type FavoriteService struct {
	FavoriteRepo FavoriteStore
	CommentRepo  CommentStore
	Offers       existenceChecker
	Users        existenceChecker
	Events       events.Publisher
	Logger       *slog.Logger
}

// Add links a user to an offer. Both must exist, and a pair can only be
// added once: a repeat returns models.ErrAlreadyFavorite.
func (s *FavoriteService) Add(ctx context.Context, dto models.AddFavoriteOfferDto) error {
	for _, ref := range []struct {
		checker existenceChecker
		id      string
	}{{s.Users, dto.UserID}, {s.Offers, dto.OfferID}} {
		if ref.checker == nil {
			continue
		}
		ok, err := ref.checker.Exists(ctx, ref.id)
		if err != nil {
			return err
		}
		if !ok {
			return models.ErrReferenceNotFound
		}
	}

	if err := s.FavoriteRepo.Add(ctx, models.Favorite{UserID: dto.UserID, OfferID: dto.OfferID}); err != nil {
		return err
	}
	publish(ctx, s.Events, s.Logger, events.FavoriteAdded, events.FavoriteEvent{UserID: dto.UserID, OfferID: dto.OfferID})
	return nil
}

// Remove reports whether the pair was a favorite before the call.
func (s *FavoriteService) Remove(ctx context.Context, userID, offerID string) (bool, error) {
	return s.FavoriteRepo.Remove(ctx, userID, offerID)
}

func (s *FavoriteService) Exists(ctx context.Context, userID, offerID string) (bool, error) {
	return s.FavoriteRepo.Exists(ctx, userID, offerID)
}

// FindByUser lists the user's favorite offers with their ratings.
func (s *FavoriteService) FindByUser(ctx context.Context, userID string) ([]models.ListedOffer, error) {
	offers, err := s.FavoriteRepo.FindOffersByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return []models.ListedOffer{}, nil
	}

	ratings := map[string][]int{}
	if s.CommentRepo != nil {
		ratings, err = s.CommentRepo.RatingsByOffers(ctx, offerIDs(offers))
		if err != nil {
			return nil, err
		}
	}

	favs := make([]models.Favorite, len(offers))
	for i, o := range offers {
		favs[i] = models.Favorite{UserID: userID, OfferID: o.ID}
	}
	return buildListing(offers, ratings, favs, models.FavoriteOfViewer, userID), nil
}
