package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/events"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type OfferService struct {
	OfferRepo    OfferStore
	CommentRepo  CommentStore
	FavoriteRepo FavoriteStore
	Users        existenceChecker
	Cache        OfferCache
	Events       events.Publisher
	Logger       *slog.Logger
}

func (s *OfferService) Create(ctx context.Context, dto models.CreateOfferDto) (models.Offer, error) {
	if s.Users != nil {
		ok, err := s.Users.Exists(ctx, dto.AuthorID)
		if err != nil {
			return models.Offer{}, err
		}
		if !ok {
			return models.Offer{}, models.ErrReferenceNotFound
		}
	}

	offer, err := s.OfferRepo.Create(ctx, models.Offer{
		Name:         dto.Name,
		Description:  dto.Description,
		City:         models.City(dto.City),
		PreviewImage: dto.PreviewImage,
		IsPremium:    dto.IsPremium,
		Type:         dto.Type,
		Rooms:        dto.Rooms,
		Guests:       dto.Guests,
		Price:        dto.Price,
		Latitude:     dto.Latitude,
		Longitude:    dto.Longitude,
		AuthorID:     dto.AuthorID,
	})
	if err != nil {
		return models.Offer{}, err
	}
	loggerOr(s.Logger).Info("new offer created", "offer_id", offer.ID, "name", offer.Name)

	s.invalidate(ctx)
	publish(ctx, s.Events, s.Logger, events.OfferCreated, events.OfferEvent{
		OfferID: offer.ID, AuthorID: offer.AuthorID, City: string(offer.City),
	})
	return offer, nil
}

func (s *OfferService) FindByID(ctx context.Context, id string) (*models.Offer, error) {
	return s.OfferRepo.FindByID(ctx, id)
}

func (s *OfferService) FindByName(ctx context.Context, name string) (*models.Offer, error) {
	return s.OfferRepo.FindByName(ctx, name)
}

// Find lists offers with their average rating and favorite flag. At most
// q.Limit offers are returned, ordered by q.SortBy and q.Order.
func (s *OfferService) Find(ctx context.Context, q models.ListingQuery) ([]models.ListedOffer, error) {
	q, err := q.Normalize()
	if err != nil {
		return nil, err
	}

	offers, err := s.OfferRepo.FindPage(ctx, q)
	if err != nil {
		return nil, err
	}
	if len(offers) == 0 {
		return []models.ListedOffer{}, nil
	}

	ids := offerIDs(offers)
	ratings, err := s.CommentRepo.RatingsByOffers(ctx, ids)
	if err != nil {
		return nil, fmt.Errorf("load ratings: %w", err)
	}
	favs, err := s.FavoriteRepo.FindPairs(ctx, ids, favoriteUserIDs(offers, q.FavoriteKey, q.ViewerID))
	if err != nil {
		return nil, fmt.Errorf("load favorites: %w", err)
	}
	return buildListing(offers, ratings, favs, q.FavoriteKey, q.ViewerID), nil
}

// FindPremium returns the newest premium offers of a city. Results are served
// from the cache when one is configured; cache failures fall back to the store.
func (s *OfferService) FindPremium(ctx context.Context, city models.City, count int) ([]models.Offer, error) {
	if count < 0 {
		return nil, models.ErrInvalidLimit
	}
	if count == 0 {
		count = models.DefaultPremiumCount
	}
	if count > models.MaxOfferCount {
		count = models.MaxOfferCount
	}

	fill := false
	var version int64
	if s.Cache != nil {
		offers, v, ok, err := s.Cache.GetPremium(ctx, city, count)
		if err != nil {
			loggerOr(s.Logger).Warn("premium cache read failed", "city", city, "error", err)
		} else if ok {
			return offers, nil
		} else {
			fill, version = true, v
		}
	}

	offers, err := s.OfferRepo.FindPremium(ctx, city, count)
	if err != nil {
		return nil, err
	}
	if fill {
		if err := s.Cache.SetPremium(ctx, version, city, count, offers); err != nil {
			loggerOr(s.Logger).Warn("premium cache write failed", "city", city, "error", err)
		}
	}
	return offers, nil
}

func (s *OfferService) UpdateByID(ctx context.Context, id string, dto models.UpdateOfferDto) (*models.Offer, error) {
	offer, err := s.OfferRepo.UpdateByID(ctx, id, dto)
	if err != nil {
		return nil, err
	}
	if offer != nil {
		s.invalidate(ctx)
	}
	return offer, nil
}

// DeleteByID removes the offer only. Its comments and favorites stay behind.
func (s *OfferService) DeleteByID(ctx context.Context, id string) (*models.Offer, error) {
	offer, err := s.OfferRepo.DeleteByID(ctx, id)
	if err != nil || offer == nil {
		return offer, err
	}
	loggerOr(s.Logger).Info("offer deleted", "offer_id", offer.ID)

	s.invalidate(ctx)
	publish(ctx, s.Events, s.Logger, events.OfferDeleted, events.OfferEvent{
		OfferID: offer.ID, AuthorID: offer.AuthorID, City: string(offer.City),
	})
	return offer, nil
}

func (s *OfferService) Exists(ctx context.Context, id string) (bool, error) {
	return s.OfferRepo.Exists(ctx, id)
}

// IncCommentCount atomically adds one to the offer's comment counter and
// returns the updated offer, or nil when no offer has that id.
func (s *OfferService) IncCommentCount(ctx context.Context, id string) (*models.Offer, error) {
	offer, err := s.OfferRepo.IncCommentCount(ctx, id)
	if err != nil {
		return nil, err
	}
	if offer != nil {
		s.invalidate(ctx)
	}
	return offer, nil
}

// reconcileGrace leaves recently commented offers alone until their counter
// increment has certainly run.
const reconcileGrace = time.Minute

// ReconcileCommentCounts rewrites drifted counters from the comments table.
func (s *OfferService) ReconcileCommentCounts(ctx context.Context) (int64, error) {
	n, err := s.OfferRepo.ReconcileCommentCounts(ctx, time.Now().Add(-reconcileGrace))
	if err != nil {
		return 0, err
	}
	if n > 0 {
		s.invalidate(ctx)
	}
	return n, nil
}

func (s *OfferService) invalidate(ctx context.Context) {
	if s.Cache == nil {
		return
	}
	if err := s.Cache.Invalidate(ctx); err != nil {
		loggerOr(s.Logger).Warn("premium cache invalidation failed", "error", err)
	}
}
