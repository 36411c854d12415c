package handlers

import (
	"context"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type memOffers struct {
	offers map[string]models.Offer
}

func (m *memOffers) Create(_ context.Context, o models.Offer) (models.Offer, error) {
	o.ID = models.NewID()
	m.offers[o.ID] = o
	return o, nil
}

func (m *memOffers) FindByID(_ context.Context, id string) (*models.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return nil, nil
	}
	return &o, nil
}

func (m *memOffers) FindByName(context.Context, string) (*models.Offer, error) { return nil, nil }

func (m *memOffers) FindPage(_ context.Context, q models.ListingQuery) ([]models.Offer, error) {
	out := []models.Offer{}
	for _, o := range m.offers {
		if len(out) == q.Limit {
			break
		}
		out = append(out, o)
	}
	return out, nil
}

func (m *memOffers) FindPremium(_ context.Context, city models.City, count int) ([]models.Offer, error) {
	out := []models.Offer{}
	for _, o := range m.offers {
		if o.IsPremium && o.City == city && len(out) < count {
			out = append(out, o)
		}
	}
	return out, nil
}

func (m *memOffers) UpdateByID(_ context.Context, id string, dto models.UpdateOfferDto) (*models.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return nil, nil
	}
	if dto.Price != nil {
		o.Price = *dto.Price
	}
	m.offers[id] = o
	return &o, nil
}

func (m *memOffers) DeleteByID(_ context.Context, id string) (*models.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return nil, nil
	}
	delete(m.offers, id)
	return &o, nil
}

func (m *memOffers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.offers[id]
	return ok, nil
}

func (m *memOffers) IncCommentCount(_ context.Context, id string) (*models.Offer, error) {
	o, ok := m.offers[id]
	if !ok {
		return nil, nil
	}
	o.CommentsCount++
	m.offers[id] = o
	return &o, nil
}

func (m *memOffers) ReconcileCommentCounts(context.Context, time.Time) (int64, error) { return 0, nil }

type memComments struct {
	comments map[string]models.Comment
}

func (m *memComments) Create(_ context.Context, c models.Comment) (models.Comment, error) {
	c.ID = models.NewID()
	m.comments[c.ID] = c
	return c, nil
}

func (m *memComments) FindByID(_ context.Context, id string) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	return &c, nil
}

func (m *memComments) FindByOfferID(_ context.Context, offerID string, limit int) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range m.comments {
		if c.OfferID == offerID && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (m *memComments) RatingsByOffers(_ context.Context, ids []string) (map[string][]int, error) {
	out := map[string][]int{}
	for _, id := range ids {
		for _, c := range m.comments {
			if c.OfferID == id {
				out[id] = append(out[id], c.Rating)
			}
		}
	}
	return out, nil
}

func (m *memComments) UpdateByID(ctx context.Context, id string, dto models.UpdateCommentDto) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	if dto.Text != nil {
		c.Text = *dto.Text
	}
	m.comments[id] = c
	return &c, nil
}

func (m *memComments) DeleteByID(ctx context.Context, id string) (*models.Comment, error) {
	c, ok := m.comments[id]
	if !ok {
		return nil, nil
	}
	delete(m.comments, id)
	return &c, nil
}

func (m *memComments) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.comments[id]
	return ok, nil
}

type memFavorites struct {
	pairs  map[models.Favorite]bool
	offers *memOffers
}

func (m *memFavorites) Add(_ context.Context, f models.Favorite) error {
	if m.pairs[f] {
		return models.ErrAlreadyFavorite
	}
	m.pairs[f] = true
	return nil
}

func (m *memFavorites) Remove(_ context.Context, userID, offerID string) (bool, error) {
	f := models.Favorite{UserID: userID, OfferID: offerID}
	ok := m.pairs[f]
	delete(m.pairs, f)
	return ok, nil
}

func (m *memFavorites) Exists(_ context.Context, userID, offerID string) (bool, error) {
	return m.pairs[models.Favorite{UserID: userID, OfferID: offerID}], nil
}

func (m *memFavorites) FindPairs(_ context.Context, offerIDs, userIDs []string) ([]models.Favorite, error) {
	out := []models.Favorite{}
	for _, o := range offerIDs {
		for _, u := range userIDs {
			if f := (models.Favorite{UserID: u, OfferID: o}); m.pairs[f] {
				out = append(out, f)
			}
		}
	}
	return out, nil
}

func (m *memFavorites) FindOffersByUser(_ context.Context, userID string) ([]models.Offer, error) {
	out := []models.Offer{}
	for f := range m.pairs {
		if o, ok := m.offers.offers[f.OfferID]; ok && f.UserID == userID {
			out = append(out, o)
		}
	}
	return out, nil
}

type memUsers struct {
	users map[string]models.User
}

func (m *memUsers) CreateUser(_ context.Context, u models.User) (models.User, error) {
	for _, existing := range m.users {
		if existing.Email == u.Email {
			return models.User{}, models.ErrDuplicateEmail
		}
	}
	u.ID = models.NewID()
	m.users[u.ID] = u
	return u, nil
}

func (m *memUsers) GetUserByID(_ context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (m *memUsers) GetUserByEmail(_ context.Context, email string) (*models.User, error) {
	for _, u := range m.users {
		if u.Email == email {
			return &u, nil
		}
	}
	return nil, nil
}

func (m *memUsers) UpdateUser(ctx context.Context, id string, dto models.UpdateUserDto) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	if dto.Name != nil {
		u.Name = *dto.Name
	}
	m.users[id] = u
	return &u, nil
}

func (m *memUsers) DeleteUser(ctx context.Context, id string) (*models.User, error) {
	u, ok := m.users[id]
	if !ok {
		return nil, nil
	}
	delete(m.users, id)
	return &u, nil
}

func (m *memUsers) Exists(_ context.Context, id string) (bool, error) {
	_, ok := m.users[id]
	return ok, nil
}
