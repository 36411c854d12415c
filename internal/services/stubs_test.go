package services

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/DiasNurdicanov/63990-six-cities-5/internal/models"
)

type stubOfferStore struct {
	offers        map[string]*models.Offer
	incCalls      int
	pageQuery     models.ListingQuery
	premium       int
	settledBefore time.Time
	// afterPremium runs once the premium snapshot has been taken.
	afterPremium func()
}

func newStubOfferStore(offers ...models.Offer) *stubOfferStore {
	s := &stubOfferStore{offers: map[string]*models.Offer{}}
	for i := range offers {
		o := offers[i]
		s.offers[o.ID] = &o
	}
	return s
}

func (s *stubOfferStore) Create(_ context.Context, o models.Offer) (models.Offer, error) {
	o.ID = models.NewID()
	s.offers[o.ID] = &o
	return o, nil
}

func (s *stubOfferStore) FindByID(_ context.Context, id string) (*models.Offer, error) {
	if o, ok := s.offers[id]; ok {
		c := *o
		return &c, nil
	}
	return nil, nil
}

func (s *stubOfferStore) FindByName(_ context.Context, name string) (*models.Offer, error) {
	for _, o := range s.offers {
		if o.Name == name {
			c := *o
			return &c, nil
		}
	}
	return nil, nil
}

func (s *stubOfferStore) FindPage(_ context.Context, q models.ListingQuery) ([]models.Offer, error) {
	s.pageQuery = q
	out := make([]models.Offer, 0, len(s.offers))
	for _, o := range s.offers {
		out = append(out, *o)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	if len(out) > q.Limit {
		out = out[:q.Limit]
	}
	return out, nil
}

func (s *stubOfferStore) FindPremium(_ context.Context, city models.City, count int) ([]models.Offer, error) {
	s.premium++
	out := []models.Offer{}
	for _, o := range s.offers {
		if o.IsPremium && o.City == city && len(out) < count {
			out = append(out, *o)
		}
	}
	if s.afterPremium != nil {
		s.afterPremium()
	}
	return out, nil
}

func (s *stubOfferStore) UpdateByID(ctx context.Context, id string, dto models.UpdateOfferDto) (*models.Offer, error) {
	o, ok := s.offers[id]
	if !ok {
		return nil, nil
	}
	if dto.Price != nil {
		o.Price = *dto.Price
	}
	return s.FindByID(ctx, id)
}

func (s *stubOfferStore) DeleteByID(_ context.Context, id string) (*models.Offer, error) {
	o, ok := s.offers[id]
	if !ok {
		return nil, nil
	}
	delete(s.offers, id)
	return o, nil
}

func (s *stubOfferStore) Exists(_ context.Context, id string) (bool, error) {
	_, ok := s.offers[id]
	return ok, nil
}

func (s *stubOfferStore) IncCommentCount(_ context.Context, id string) (*models.Offer, error) {
	s.incCalls++
	o, ok := s.offers[id]
	if !ok {
		return nil, nil
	}
	o.CommentsCount++
	c := *o
	return &c, nil
}

func (s *stubOfferStore) ReconcileCommentCounts(_ context.Context, settledBefore time.Time) (int64, error) {
	s.settledBefore = settledBefore
	return int64(len(s.offers)), nil
}

type stubCommentStore struct {
	comments []models.Comment
}

func (s *stubCommentStore) Create(_ context.Context, c models.Comment) (models.Comment, error) {
	c.ID = models.NewID()
	s.comments = append(s.comments, c)
	return c, nil
}

func (s *stubCommentStore) FindByID(_ context.Context, id string) (*models.Comment, error) {
	for _, c := range s.comments {
		if c.ID == id {
			return &c, nil
		}
	}
	return nil, nil
}

func (s *stubCommentStore) FindByOfferID(_ context.Context, offerID string, limit int) ([]models.Comment, error) {
	out := []models.Comment{}
	for _, c := range s.comments {
		if c.OfferID == offerID && len(out) < limit {
			out = append(out, c)
		}
	}
	return out, nil
}

func (s *stubCommentStore) RatingsByOffers(_ context.Context, ids []string) (map[string][]int, error) {
	want := map[string]bool{}
	for _, id := range ids {
		want[id] = true
	}
	out := map[string][]int{}
	for _, c := range s.comments {
		if want[c.OfferID] {
			out[c.OfferID] = append(out[c.OfferID], c.Rating)
		}
	}
	return out, nil
}

func (s *stubCommentStore) UpdateByID(ctx context.Context, id string, dto models.UpdateCommentDto) (*models.Comment, error) {
	return s.FindByID(ctx, id)
}

func (s *stubCommentStore) DeleteByID(ctx context.Context, id string) (*models.Comment, error) {
	return s.FindByID(ctx, id)
}

func (s *stubCommentStore) Exists(ctx context.Context, id string) (bool, error) {
	c, err := s.FindByID(ctx, id)
	return c != nil, err
}

type stubFavoriteStore struct {
	pairs  map[models.Favorite]bool
	offers *stubOfferStore
}

func newStubFavoriteStore(offers *stubOfferStore, favs ...models.Favorite) *stubFavoriteStore {
	s := &stubFavoriteStore{pairs: map[models.Favorite]bool{}, offers: offers}
	for _, f := range favs {
		s.pairs[f] = true
	}
	return s
}

func (s *stubFavoriteStore) Add(_ context.Context, f models.Favorite) error {
	if s.pairs[f] {
		return models.ErrAlreadyFavorite
	}
	s.pairs[f] = true
	return nil
}

func (s *stubFavoriteStore) Remove(_ context.Context, userID, offerID string) (bool, error) {
	f := models.Favorite{UserID: userID, OfferID: offerID}
	existed := s.pairs[f]
	delete(s.pairs, f)
	return existed, nil
}

func (s *stubFavoriteStore) Exists(_ context.Context, userID, offerID string) (bool, error) {
	return s.pairs[models.Favorite{UserID: userID, OfferID: offerID}], nil
}

func (s *stubFavoriteStore) FindPairs(_ context.Context, offerIDs, userIDs []string) ([]models.Favorite, error) {
	out := []models.Favorite{}
	for _, o := range offerIDs {
		for _, u := range userIDs {
			f := models.Favorite{UserID: u, OfferID: o}
			if s.pairs[f] {
				out = append(out, f)
			}
		}
	}
	return out, nil
}

func (s *stubFavoriteStore) FindOffersByUser(_ context.Context, userID string) ([]models.Offer, error) {
	out := []models.Offer{}
	for f := range s.pairs {
		if o, ok := s.offers.offers[f.OfferID]; ok && f.UserID == userID {
			out = append(out, *o)
		}
	}
	return out, nil
}

type stubChecker map[string]bool

func (s stubChecker) Exists(_ context.Context, id string) (bool, error) {
	return s[id], nil
}

type stubCache struct {
	entries     map[string][]models.Offer
	version     int64
	invalidated int
	failReads   bool
}

func newStubCache() *stubCache {
	return &stubCache{entries: map[string][]models.Offer{}}
}

func cacheKey(version int64, city models.City, count int) string {
	return fmt.Sprintf("v%d:%s:%d", version, city, count)
}

func (c *stubCache) GetPremium(_ context.Context, city models.City, count int) ([]models.Offer, int64, bool, error) {
	if c.failReads {
		return nil, 0, false, errors.New("cache down")
	}
	offers, ok := c.entries[cacheKey(c.version, city, count)]
	return offers, c.version, ok, nil
}

func (c *stubCache) SetPremium(_ context.Context, version int64, city models.City, count int, offers []models.Offer) error {
	c.entries[cacheKey(version, city, count)] = offers
	return nil
}

func (c *stubCache) Invalidate(context.Context) error {
	c.invalidated++
	c.version++
	return nil
}

type recordedEvent struct {
	key     string
	payload any
}

type stubPublisher struct {
	events []recordedEvent
}

func (p *stubPublisher) Publish(_ context.Context, key string, payload any) error {
	p.events = append(p.events, recordedEvent{key, payload})
	return nil
}
