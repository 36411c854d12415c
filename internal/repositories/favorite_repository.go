package repositories

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type FavoriteRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

// Add stores the pair. The primary key on (user_id, offer_id) rejects a second
// record for the same pair with models.ErrAlreadyFavorite.
func (r *FavoriteRepository) Add(ctx context.Context, fav models.Favorite) error {
	query := `INSERT INTO offers_favorites (user_id, offer_id) VALUES (?, ?)`
	_, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query), fav.UserID, fav.OfferID)
	if err != nil {
		if isUniqueViolation(err) {
			return models.ErrAlreadyFavorite
		}
		return fmt.Errorf("insert favorite: %w", err)
	}
	return nil
}

// Remove reports whether a record existed for the pair.
func (r *FavoriteRepository) Remove(ctx context.Context, userID, offerID string) (bool, error) {
	query := `DELETE FROM offers_favorites WHERE user_id = ? AND offer_id = ?`
	result, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query), userID, offerID)
	if err != nil {
		return false, fmt.Errorf("delete favorite: %w", err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return false, err
	}
	return rowsAffected > 0, nil
}

func (r *FavoriteRepository) Exists(ctx context.Context, userID, offerID string) (bool, error) {
	query := `SELECT COUNT(*) FROM offers_favorites WHERE user_id = ? AND offer_id = ?`
	var count int
	if err := r.DB.QueryRowContext(ctx, r.Dialect.rebind(query), userID, offerID).Scan(&count); err != nil {
		return false, fmt.Errorf("count favorites: %w", err)
	}
	return count > 0, nil
}

// FindPairs returns the favorites linking any of offerIDs to any of userIDs.
func (r *FavoriteRepository) FindPairs(ctx context.Context, offerIDs, userIDs []string) ([]models.Favorite, error) {
	favs := []models.Favorite{}
	if len(offerIDs) == 0 || len(userIDs) == 0 {
		return favs, nil
	}
	query := `SELECT user_id, offer_id FROM offers_favorites
              WHERE offer_id IN (` + placeholders(len(offerIDs)) + `)
                AND user_id IN (` + placeholders(len(userIDs)) + `)`
	args := append(stringArgs(offerIDs), stringArgs(userIDs)...)
	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), args...)
	if err != nil {
		return nil, fmt.Errorf("query favorites: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var fav models.Favorite
		if err := rows.Scan(&fav.UserID, &fav.OfferID); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favs = append(favs, fav)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorites rows error: %w", err)
	}
	return favs, nil
}

// FindOffersByUser lists the offers a user favorited, newest offers first.
func (r *FavoriteRepository) FindOffersByUser(ctx context.Context, userID string) ([]models.Offer, error) {
	query := `
        SELECT ` + offerColumns + `
        FROM offers_favorites f
        JOIN offers o ON o.id = f.offer_id
        WHERE f.user_id = ?
        ORDER BY o.created_at DESC
    `
	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), userID)
	if err != nil {
		return nil, fmt.Errorf("query favorite offers: %w", err)
	}
	defer rows.Close()

	offers := []models.Offer{}
	for rows.Next() {
		var offer models.Offer
		if err := scanOffer(rows, &offer); err != nil {
			return nil, fmt.Errorf("scan favorite offer: %w", err)
		}
		offers = append(offers, offer)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("favorite offers rows error: %w", err)
	}
	return offers, nil
}
