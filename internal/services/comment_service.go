package services

import (
	"context"
	"log/slog"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/events"
	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

// commentCounter is implemented by *OfferService.
type commentCounter interface {
	Exists(ctx context.Context, id string) (bool, error)
	IncCommentCount(ctx context.Context, id string) (*models.Offer, error)
}

type CommentService struct {
	CommentRepo CommentStore
	Offers      commentCounter
	Events      events.Publisher
	Logger      *slog.Logger
}

// Create stores the comment and bumps the offer's comment counter.
func (s *CommentService) Create(ctx context.Context, dto models.CreateCommentDto) (models.Comment, error) {
	ok, err := s.Offers.Exists(ctx, dto.OfferID)
	if err != nil {
		return models.Comment{}, err
	}
	if !ok {
		return models.Comment{}, models.ErrOfferNotFound
	}

	comment, err := s.CommentRepo.Create(ctx, models.Comment{
		OfferID:  dto.OfferID,
		AuthorID: dto.AuthorID,
		Text:     dto.Text,
		Rating:   dto.Rating,
	})
	if err != nil {
		return models.Comment{}, err
	}
	loggerOr(s.Logger).Info("new comment created", "comment_id", comment.ID, "offer_id", comment.OfferID)

	if _, err := s.Offers.IncCommentCount(ctx, comment.OfferID); err != nil {
		// The reconciler repairs the counter on its next run.
		loggerOr(s.Logger).Error("failed to increment comment count", "offer_id", comment.OfferID, "error", err)
	}

	publish(ctx, s.Events, s.Logger, events.CommentCreated, events.CommentEvent{
		CommentID: comment.ID, OfferID: comment.OfferID, AuthorID: comment.AuthorID, Rating: comment.Rating,
	})
	return comment, nil
}

func (s *CommentService) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.CommentRepo.FindByID(ctx, id)
}

// FindByOfferID returns up to models.MaxCommentCount comments, newest first.
func (s *CommentService) FindByOfferID(ctx context.Context, offerID string) ([]models.Comment, error) {
	return s.CommentRepo.FindByOfferID(ctx, offerID, models.MaxCommentCount)
}

func (s *CommentService) UpdateByID(ctx context.Context, id string, dto models.UpdateCommentDto) (*models.Comment, error) {
	return s.CommentRepo.UpdateByID(ctx, id, dto)
}

func (s *CommentService) DeleteByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.CommentRepo.DeleteByID(ctx, id)
}

func (s *CommentService) Exists(ctx context.Context, id string) (bool, error) {
	return s.CommentRepo.Exists(ctx, id)
}
