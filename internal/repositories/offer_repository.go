package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type OfferRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

const offerColumns = `o.id, o.name, o.description, o.city, o.preview_image, o.is_premium, o.type,
       o.rooms, o.guests, o.price, o.latitude, o.longitude, o.author_id, o.comments_count,
       o.created_at, o.updated_at`

type rowScanner interface {
	Scan(dest ...any) error
}

func scanOffer(row rowScanner, o *models.Offer, extra ...any) error {
	var updatedAt sql.NullTime
	dest := []any{
		&o.ID, &o.Name, &o.Description, &o.City, &o.PreviewImage, &o.IsPremium, &o.Type,
		&o.Rooms, &o.Guests, &o.Price, &o.Latitude, &o.Longitude, &o.AuthorID, &o.CommentsCount,
		&o.CreatedAt, &updatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		return err
	}
	if updatedAt.Valid {
		t := updatedAt.Time
		o.UpdatedAt = &t
	}
	return nil
}

func (r *OfferRepository) Create(ctx context.Context, offer models.Offer) (models.Offer, error) {
	offer.ID = models.NewID()
	offer.CommentsCount = 0
	offer.CreatedAt = time.Now().UTC()
	query := `
        INSERT INTO offers (id, name, description, city, preview_image, is_premium, type,
                            rooms, guests, price, latitude, longitude, author_id, comments_count, created_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `
	_, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query),
		offer.ID, offer.Name, offer.Description, string(offer.City), offer.PreviewImage, offer.IsPremium,
		string(offer.Type), offer.Rooms, offer.Guests, offer.Price, offer.Latitude, offer.Longitude,
		offer.AuthorID, offer.CommentsCount, offer.CreatedAt,
	)
	if err != nil {
		return models.Offer{}, fmt.Errorf("insert offer: %w", err)
	}
	return offer, nil
}

// FindByID returns the offer with its author populated, or nil when absent.
func (r *OfferRepository) FindByID(ctx context.Context, id string) (*models.Offer, error) {
	query := `
        SELECT ` + offerColumns + `,
               u.id, u.name, u.email, u.avatar, u.type
        FROM offers o
        LEFT JOIN users u ON u.id = o.author_id
        WHERE o.id = ?
    `
	var offer models.Offer
	var uID, uName, uEmail, uAvatar, uType sql.NullString
	err := scanOffer(r.DB.QueryRowContext(ctx, r.Dialect.rebind(query), id), &offer,
		&uID, &uName, &uEmail, &uAvatar, &uType)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select offer %s: %w", id, err)
	}
	if uID.Valid {
		offer.Author = &models.PublicUser{
			ID:     uID.String,
			Name:   uName.String,
			Email:  uEmail.String,
			Avatar: uAvatar.String,
			Type:   models.UserType(uType.String),
		}
	}
	return &offer, nil
}

func (r *OfferRepository) FindByName(ctx context.Context, name string) (*models.Offer, error) {
	query := `SELECT ` + offerColumns + ` FROM offers o WHERE o.name = ? LIMIT 1`
	var offer models.Offer
	err := scanOffer(r.DB.QueryRowContext(ctx, r.Dialect.rebind(query), name), &offer)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select offer by name: %w", err)
	}
	return &offer, nil
}

var sortColumns = map[models.SortField]string{
	models.SortByCreatedAt:     "o.created_at",
	models.SortByCommentsCount: "o.comments_count",
	models.SortByPrice:         "o.price",
	models.SortByName:          "o.name",
}

// FindPage returns at most q.Limit offers ordered by the requested key.
// q must already be normalized.
func (r *OfferRepository) FindPage(ctx context.Context, q models.ListingQuery) ([]models.Offer, error) {
	col, ok := sortColumns[q.SortBy]
	if !ok {
		return nil, models.ErrInvalidSortField
	}
	dir := "DESC"
	if q.Order == models.SortAsc {
		dir = "ASC"
	}
	query := fmt.Sprintf(`SELECT %s FROM offers o ORDER BY %s %s, o.id ASC LIMIT ?`, offerColumns, col, dir)
	return r.queryOffers(ctx, query, q.Limit)
}

// FindPremium returns premium offers of a city, newest first.
func (r *OfferRepository) FindPremium(ctx context.Context, city models.City, count int) ([]models.Offer, error) {
	query := `
        SELECT ` + offerColumns + `
        FROM offers o
        WHERE o.is_premium = ? AND o.city = ?
        ORDER BY o.created_at DESC
        LIMIT ?
    `
	return r.queryOffers(ctx, query, true, string(city), count)
}

func (r *OfferRepository) queryOffers(ctx context.Context, query string, args ...any) ([]models.Offer, error) {
	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query offers: %w", err)
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		var offer models.Offer
		if err := scanOffer(rows, &offer); err != nil {
			return nil, fmt.Errorf("scan offer: %w", err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("offers rows error: %w", err)
	}
	return offers, nil
}

// UpdateByID applies only the supplied fields and returns the stored result,
// or nil when the offer does not exist.
func (r *OfferRepository) UpdateByID(ctx context.Context, id string, dto models.UpdateOfferDto) (*models.Offer, error) {
	var a assignments
	if dto.Name != nil {
		a.set("name", *dto.Name)
	}
	if dto.Description != nil {
		a.set("description", *dto.Description)
	}
	if dto.City != nil {
		a.set("city", *dto.City)
	}
	if dto.PreviewImage != nil {
		a.set("preview_image", *dto.PreviewImage)
	}
	if dto.IsPremium != nil {
		a.set("is_premium", *dto.IsPremium)
	}
	if dto.Type != nil {
		a.set("type", string(*dto.Type))
	}
	if dto.Rooms != nil {
		a.set("rooms", *dto.Rooms)
	}
	if dto.Guests != nil {
		a.set("guests", *dto.Guests)
	}
	if dto.Price != nil {
		a.set("price", *dto.Price)
	}
	if dto.Latitude != nil {
		a.set("latitude", *dto.Latitude)
	}
	if dto.Longitude != nil {
		a.set("longitude", *dto.Longitude)
	}
	if a.empty() {
		return r.FindByID(ctx, id)
	}
	a.set("updated_at", time.Now().UTC())

	query := `UPDATE offers SET ` + a.clause() + ` WHERE id = ?`
	if _, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query), append(a.args, id)...); err != nil {
		return nil, fmt.Errorf("update offer %s: %w", id, err)
	}
	return r.FindByID(ctx, id)
}

// DeleteByID removes the offer and returns what was removed, or nil when absent.
// Comments and favorites of the offer are left untouched.
func (r *OfferRepository) DeleteByID(ctx context.Context, id string) (*models.Offer, error) {
	offer, err := r.FindByID(ctx, id)
	if err != nil || offer == nil {
		return offer, err
	}
	result, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`DELETE FROM offers WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("delete offer %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, nil
	}
	return offer, nil
}

func (r *OfferRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, r.Dialect.rebind(`SELECT COUNT(*) FROM offers WHERE id = ?`), id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count offers: %w", err)
	}
	return count > 0, nil
}

// IncCommentCount bumps the stored counter with a single atomic statement.
func (r *OfferRepository) IncCommentCount(ctx context.Context, id string) (*models.Offer, error) {
	query := `UPDATE offers SET comments_count = comments_count + 1 WHERE id = ?`
	result, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query), id)
	if err != nil {
		return nil, fmt.Errorf("increment comments count for %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, nil
	}
	return r.FindByID(ctx, id)
}

// ReconcileCommentCounts rewrites comments_count wherever it drifted from the
// number of stored comments and reports how many offers were corrected.
// Offers with a comment created after settledBefore are skipped: that
// comment's IncCommentCount may still be pending and would be counted twice.
func (r *OfferRepository) ReconcileCommentCounts(ctx context.Context, settledBefore time.Time) (int64, error) {
	query := `
        UPDATE offers
        SET comments_count = (SELECT COUNT(*) FROM comments c WHERE c.offer_id = offers.id)
        WHERE comments_count <> (SELECT COUNT(*) FROM comments c WHERE c.offer_id = offers.id)
          AND NOT EXISTS (
              SELECT 1 FROM comments r WHERE r.offer_id = offers.id AND r.created_at > ?
          )
    `
	result, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query), settledBefore.UTC())
	if err != nil {
		return 0, fmt.Errorf("reconcile comment counts: %w", err)
	}
	return result.RowsAffected()
}
