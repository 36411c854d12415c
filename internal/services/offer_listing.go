package services

import (
	"math"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

// averageRating is the mean of ratings rounded to one decimal, half to even.
// It returns nil for an empty set so "no ratings yet" never reads as zero.
func averageRating(ratings []int) *float64 {
	if len(ratings) == 0 {
		return nil
	}
	sum := 0
	for _, r := range ratings {
		sum += r
	}
	avg := math.RoundToEven(float64(sum)/float64(len(ratings))*10) / 10
	return &avg
}

type favoritePair struct {
	userID  string
	offerID string
}

// favoriteUserIDs returns whose favorites must be fetched for the listing.
func favoriteUserIDs(offers []models.Offer, key models.FavoriteKey, viewerID string) []string {
	if key == models.FavoriteOfViewer {
		if viewerID == "" {
			return nil
		}
		return []string{viewerID}
	}
	seen := make(map[string]struct{}, len(offers))
	ids := make([]string, 0, len(offers))
	for _, o := range offers {
		if _, ok := seen[o.AuthorID]; ok {
			continue
		}
		seen[o.AuthorID] = struct{}{}
		ids = append(ids, o.AuthorID)
	}
	return ids
}

// buildListing joins offers with their comment ratings and favorite records.
// Only the derived scalars reach the result; the joined rows do not.
func buildListing(offers []models.Offer, ratings map[string][]int, favs []models.Favorite, key models.FavoriteKey, viewerID string) []models.ListedOffer {
	pairs := make(map[favoritePair]struct{}, len(favs))
	for _, f := range favs {
		pairs[favoritePair{userID: f.UserID, offerID: f.OfferID}] = struct{}{}
	}

	listed := make([]models.ListedOffer, 0, len(offers))
	for _, o := range offers {
		userID := o.AuthorID
		if key == models.FavoriteOfViewer {
			userID = viewerID
		}
		_, isFavorite := pairs[favoritePair{userID: userID, offerID: o.ID}]
		listed = append(listed, models.ListedOffer{
			Offer:      o,
			Rating:     averageRating(ratings[o.ID]),
			IsFavorite: userID != "" && isFavorite,
		})
	}
	return listed
}

func offerIDs(offers []models.Offer) []string {
	ids := make([]string, len(offers))
	for i, o := range offers {
		ids[i] = o.ID
	}
	return ids
}
