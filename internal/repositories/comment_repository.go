package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type CommentRepository struct {
	DB      *sql.DB
	Dialect Dialect
}

const commentColumns = `c.id, c.offer_id, c.author_id, c.text, c.rating, c.created_at,
       u.id, u.name, u.email, u.avatar, u.type`

func scanComment(row rowScanner) (models.Comment, error) {
	var c models.Comment
	var uID, uName, uEmail, uAvatar, uType sql.NullString
	err := row.Scan(&c.ID, &c.OfferID, &c.AuthorID, &c.Text, &c.Rating, &c.CreatedAt,
		&uID, &uName, &uEmail, &uAvatar, &uType)
	if err != nil {
		return c, err
	}
	if uID.Valid {
		c.Author = &models.PublicUser{
			ID:     uID.String,
			Name:   uName.String,
			Email:  uEmail.String,
			Avatar: uAvatar.String,
			Type:   models.UserType(uType.String),
		}
	}
	return c, nil
}

func (r *CommentRepository) Create(ctx context.Context, c models.Comment) (models.Comment, error) {
	c.ID = models.NewID()
	c.CreatedAt = time.Now().UTC()
	query := `
        INSERT INTO comments (id, offer_id, author_id, text, rating, created_at)
        VALUES (?, ?, ?, ?, ?, ?)
    `
	_, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query),
		c.ID, c.OfferID, c.AuthorID, c.Text, c.Rating, c.CreatedAt)
	if err != nil {
		return models.Comment{}, fmt.Errorf("insert comment: %w", err)
	}
	return c, nil
}

func (r *CommentRepository) FindByID(ctx context.Context, id string) (*models.Comment, error) {
	query := `
        SELECT ` + commentColumns + `
        FROM comments c
        LEFT JOIN users u ON u.id = c.author_id
        WHERE c.id = ?
    `
	c, err := scanComment(r.DB.QueryRowContext(ctx, r.Dialect.rebind(query), id))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("select comment %s: %w", id, err)
	}
	return &c, nil
}

// FindByOfferID lists the newest comments of an offer first.
func (r *CommentRepository) FindByOfferID(ctx context.Context, offerID string, limit int) ([]models.Comment, error) {
	query := `
        SELECT ` + commentColumns + `
        FROM comments c
        LEFT JOIN users u ON u.id = c.author_id
        WHERE c.offer_id = ?
        ORDER BY c.created_at DESC
        LIMIT ?
    `
	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), offerID, limit)
	if err != nil {
		return nil, fmt.Errorf("query comments: %w", err)
	}
	defer rows.Close()

	comments := []models.Comment{}
	for rows.Next() {
		c, err := scanComment(rows)
		if err != nil {
			return nil, fmt.Errorf("scan comment: %w", err)
		}
		comments = append(comments, c)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("comments rows error: %w", err)
	}
	return comments, nil
}

// RatingsByOffers returns the comment ratings of every offer in offerIDs.
// Offers without comments are absent from the map.
func (r *CommentRepository) RatingsByOffers(ctx context.Context, offerIDs []string) (map[string][]int, error) {
	ratings := make(map[string][]int, len(offerIDs))
	if len(offerIDs) == 0 {
		return ratings, nil
	}
	query := `SELECT offer_id, rating FROM comments WHERE offer_id IN (` + placeholders(len(offerIDs)) + `)`
	rows, err := r.DB.QueryContext(ctx, r.Dialect.rebind(query), stringArgs(offerIDs)...)
	if err != nil {
		return nil, fmt.Errorf("query ratings: %w", err)
	}
	defer rows.Close()

	for rows.Next() {
		var offerID string
		var rating int
		if err := rows.Scan(&offerID, &rating); err != nil {
			return nil, fmt.Errorf("scan rating: %w", err)
		}
		ratings[offerID] = append(ratings[offerID], rating)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("ratings rows error: %w", err)
	}
	return ratings, nil
}

func (r *CommentRepository) UpdateByID(ctx context.Context, id string, dto models.UpdateCommentDto) (*models.Comment, error) {
	var a assignments
	if dto.Text != nil {
		a.set("text", *dto.Text)
	}
	if dto.Rating != nil {
		a.set("rating", *dto.Rating)
	}
	if !a.empty() {
		query := `UPDATE comments SET ` + a.clause() + ` WHERE id = ?`
		if _, err := r.DB.ExecContext(ctx, r.Dialect.rebind(query), append(a.args, id)...); err != nil {
			return nil, fmt.Errorf("update comment %s: %w", id, err)
		}
	}
	return r.FindByID(ctx, id)
}

func (r *CommentRepository) DeleteByID(ctx context.Context, id string) (*models.Comment, error) {
	c, err := r.FindByID(ctx, id)
	if err != nil || c == nil {
		return c, err
	}
	result, err := r.DB.ExecContext(ctx, r.Dialect.rebind(`DELETE FROM comments WHERE id = ?`), id)
	if err != nil {
		return nil, fmt.Errorf("delete comment %s: %w", id, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return nil, err
	}
	if rowsAffected == 0 {
		return nil, nil
	}
	return c, nil
}

func (r *CommentRepository) Exists(ctx context.Context, id string) (bool, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, r.Dialect.rebind(`SELECT COUNT(*) FROM comments WHERE id = ?`), id).Scan(&count)
	if err != nil {
		return false, fmt.Errorf("count comments: %w", err)
	}
	return count > 0, nil
}
