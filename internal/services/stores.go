package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/events"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

// The store interfaces are satisfied by the SQL repositories; tests use stubs.

type OfferStore interface {
	Create(ctx context.Context, offer models.Offer) (models.Offer, error)
	FindByID(ctx context.Context, id string) (*models.Offer, error)
	FindByName(ctx context.Context, name string) (*models.Offer, error)
	FindPage(ctx context.Context, q models.ListingQuery) ([]models.Offer, error)
	FindPremium(ctx context.Context, city models.City, count int) ([]models.Offer, error)
	UpdateByID(ctx context.Context, id string, dto models.UpdateOfferDto) (*models.Offer, error)
	DeleteByID(ctx context.Context, id string) (*models.Offer, error)
	Exists(ctx context.Context, id string) (bool, error)
	IncCommentCount(ctx context.Context, id string) (*models.Offer, error)
	ReconcileCommentCounts(ctx context.Context, settledBefore time.Time) (int64, error)
}

type CommentStore interface {
	Create(ctx context.Context, c models.Comment) (models.Comment, error)
	FindByID(ctx context.Context, id string) (*models.Comment, error)
	FindByOfferID(ctx context.Context, offerID string, limit int) ([]models.Comment, error)
	RatingsByOffers(ctx context.Context, offerIDs []string) (map[string][]int, error)
	UpdateByID(ctx context.Context, id string, dto models.UpdateCommentDto) (*models.Comment, error)
	DeleteByID(ctx context.Context, id string) (*models.Comment, error)
	Exists(ctx context.Context, id string) (bool, error)
}

type FavoriteStore interface {
	Add(ctx context.Context, fav models.Favorite) error
	Remove(ctx context.Context, userID, offerID string) (bool, error)
	Exists(ctx context.Context, userID, offerID string) (bool, error)
	FindPairs(ctx context.Context, offerIDs, userIDs []string) ([]models.Favorite, error)
	FindOffersByUser(ctx context.Context, userID string) ([]models.Offer, error)
}

type UserStore interface {
	CreateUser(ctx context.Context, user models.User) (models.User, error)
	GetUserByID(ctx context.Context, id string) (*models.User, error)
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	UpdateUser(ctx context.Context, id string, dto models.UpdateUserDto) (*models.User, error)
	DeleteUser(ctx context.Context, id string) (*models.User, error)
	Exists(ctx context.Context, id string) (bool, error)
}

// OfferCache caches premium-offer lookups. Invalidate drops every cached entry.
// GetPremium reports the cache version it observed; SetPremium stores under
// that version so a fill started before an Invalidate is never served.
type OfferCache interface {
	GetPremium(ctx context.Context, city models.City, count int) ([]models.Offer, int64, bool, error)
	SetPremium(ctx context.Context, version int64, city models.City, count int, offers []models.Offer) error
	Invalidate(ctx context.Context) error
}

// AvatarStorage persists an uploaded image and returns its public URL.
type AvatarStorage interface {
	Upload(ctx context.Context, data []byte, name, contentType string) (string, error)
}

type existenceChecker interface {
	Exists(ctx context.Context, id string) (bool, error)
}

func loggerOr(l *slog.Logger) *slog.Logger {
	if l == nil {
		return slog.Default()
	}
	return l
}

// publish never fails the caller: events are best effort.
func publish(ctx context.Context, p events.Publisher, logger *slog.Logger, routingKey string, payload any) {
	if p == nil {
		return
	}
	if err := p.Publish(ctx, routingKey, payload); err != nil {
		loggerOr(logger).Warn("failed to publish event", "routing_key", routingKey, "error", err)
	}
}
