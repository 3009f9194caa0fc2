package service

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/rs/zerolog"

	"github.com/staylink/booking-api/internal/core/domain"
	"github.com/staylink/booking-api/internal/core/ports"
)

// ---------------------------------------------------------------------------
// In-memory stub repositories
// ---------------------------------------------------------------------------

var discardLogger = zerolog.Nop()

type stubUserRepo struct {
	users map[string]*domain.User
	seq   int
}

func newStubUserRepo() *stubUserRepo {
	return &stubUserRepo{users: make(map[string]*domain.User)}
}

func cloneUser(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	clone := *u
	return &clone
}

func (r *stubUserRepo) Create(_ context.Context, user *domain.User) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == user.Email {
			return nil, domain.ErrUserExists
		}
	}
	r.seq++
	copy := cloneUser(user)
	if copy.ID == "" {
		copy.ID = fmt.Sprintf("u%d", r.seq)
	}
	r.users[copy.ID] = cloneUser(copy)
	return copy, nil
}

func (r *stubUserRepo) FindByID(_ context.Context, id string) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	return cloneUser(u), nil
}

func (r *stubUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return cloneUser(u), nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (r *stubUserRepo) List(_ context.Context) ([]*domain.User, error) {
	out := make([]*domain.User, 0, len(r.users))
	for _, u := range r.users {
		out = append(out, cloneUser(u))
	}
	return out, nil
}

func (r *stubUserRepo) Update(_ context.Context, user *domain.User) (*domain.User, error) {
	if _, ok := r.users[user.ID]; !ok {
		return nil, domain.ErrUserNotFound
	}
	r.users[user.ID] = cloneUser(user)
	return cloneUser(user), nil
}

func (r *stubUserRepo) Delete(_ context.Context, id string) error {
	if _, ok := r.users[id]; !ok {
		return domain.ErrUserNotFound
	}
	delete(r.users, id)
	return nil
}

type stubPropertyRepo struct {
	mu        sync.Mutex
	items     map[string]*domain.Property
	replaced  int
	lastQuery ports.ListPropertiesFilter
}

func newStubPropertyRepo(props ...*domain.Property) *stubPropertyRepo {
	r := &stubPropertyRepo{items: make(map[string]*domain.Property)}
	for _, p := range props {
		clone := *p
		r.items[p.ID] = &clone
	}
	return r
}

func (r *stubPropertyRepo) Create(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *p
	r.items[p.ID] = &clone
	return nil
}

func (r *stubPropertyRepo) FindByID(_ context.Context, id string) (*domain.Property, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return nil, domain.ErrPropertyNotFound
	}
	clone := *p
	return &clone, nil
}

func (r *stubPropertyRepo) FindSummary(ctx context.Context, id string) (*domain.PropertySummary, error) {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s := p.Summary()
	return &s, nil
}

func (r *stubPropertyRepo) List(_ context.Context, f ports.ListPropertiesFilter) ([]*domain.Property, int64, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lastQuery = f
	var matched []*domain.Property
	for _, p := range r.items {
		if f.PropertyType != "" && string(p.PropertyType) != f.PropertyType {
			continue
		}
		clone := *p
		matched = append(matched, &clone)
	}
	sort.Slice(matched, func(i, j int) bool { return matched[i].ID < matched[j].ID })
	total := int64(len(matched))
	skip := (f.Page - 1) * f.Limit
	if skip > len(matched) {
		return []*domain.Property{}, total, nil
	}
	end := skip + f.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[skip:end], total, nil
}

func (r *stubPropertyRepo) Replace(_ context.Context, p *domain.Property) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[p.ID]; !ok {
		return domain.ErrPropertyNotFound
	}
	clone := *p
	r.items[p.ID] = &clone
	r.replaced++
	return nil
}

func (r *stubPropertyRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrPropertyNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubPropertyRepo) SetAverageRating(_ context.Context, id string, rating float64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.items[id]
	if !ok {
		return domain.ErrPropertyNotFound
	}
	p.AverageRating = rating
	return nil
}

type stubBookingRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Booking
}

func newStubBookingRepo(bookings ...*domain.Booking) *stubBookingRepo {
	r := &stubBookingRepo{items: make(map[string]*domain.Booking)}
	for _, b := range bookings {
		clone := *b
		r.items[b.ID] = &clone
	}
	return r
}

func (r *stubBookingRepo) Create(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	clone := *b
	r.items[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) FindByID(_ context.Context, id string) (*domain.Booking, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	b, ok := r.items[id]
	if !ok {
		return nil, domain.ErrBookingNotFound
	}
	clone := *b
	return &clone, nil
}

func (r *stubBookingRepo) filter(keep func(*domain.Booking) bool) []*domain.Booking {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Booking{}
	for _, b := range r.items {
		if keep(b) {
			clone := *b
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubBookingRepo) ListByUser(_ context.Context, userID string) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.UserID == userID }), nil
}

func (r *stubBookingRepo) ListByProperty(_ context.Context, propertyID string) ([]*domain.Booking, error) {
	return r.filter(func(b *domain.Booking) bool { return b.PropertyID == propertyID }), nil
}

func (r *stubBookingRepo) Replace(_ context.Context, b *domain.Booking) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[b.ID]; !ok {
		return domain.ErrBookingNotFound
	}
	clone := *b
	r.items[b.ID] = &clone
	return nil
}

func (r *stubBookingRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrBookingNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubBookingRepo) DeleteByProperty(_ context.Context, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, b := range r.items {
		if b.PropertyID == propertyID {
			delete(r.items, id)
		}
	}
	return nil
}

type stubReviewRepo struct {
	mu    sync.Mutex
	items map[string]*domain.Review
}

func newStubReviewRepo(reviews ...*domain.Review) *stubReviewRepo {
	r := &stubReviewRepo{items: make(map[string]*domain.Review)}
	for _, rv := range reviews {
		clone := *rv
		r.items[rv.ID] = &clone
	}
	return r
}

func (r *stubReviewRepo) Create(_ context.Context, rv *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.items {
		if existing.PropertyID == rv.PropertyID && existing.UserID == rv.UserID {
			return domain.ErrReviewExists
		}
	}
	clone := *rv
	r.items[rv.ID] = &clone
	return nil
}

func (r *stubReviewRepo) FindByID(_ context.Context, id string) (*domain.Review, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	rv, ok := r.items[id]
	if !ok {
		return nil, domain.ErrReviewNotFound
	}
	clone := *rv
	return &clone, nil
}

func (r *stubReviewRepo) filter(keep func(*domain.Review) bool) []*domain.Review {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []*domain.Review{}
	for _, rv := range r.items {
		if keep(rv) {
			clone := *rv
			out = append(out, &clone)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

func (r *stubReviewRepo) ListByProperty(_ context.Context, propertyID string) ([]*domain.Review, error) {
	return r.filter(func(rv *domain.Review) bool { return rv.PropertyID == propertyID }), nil
}

func (r *stubReviewRepo) ListByUser(_ context.Context, userID string) ([]*domain.Review, error) {
	return r.filter(func(rv *domain.Review) bool { return rv.UserID == userID }), nil
}

func (r *stubReviewRepo) Replace(_ context.Context, rv *domain.Review) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[rv.ID]; !ok {
		return domain.ErrReviewNotFound
	}
	clone := *rv
	r.items[rv.ID] = &clone
	return nil
}

func (r *stubReviewRepo) Delete(_ context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.items[id]; !ok {
		return domain.ErrReviewNotFound
	}
	delete(r.items, id)
	return nil
}

func (r *stubReviewRepo) DeleteByProperty(_ context.Context, propertyID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for id, rv := range r.items {
		if rv.PropertyID == propertyID {
			delete(r.items, id)
		}
	}
	return nil
}

func (r *stubReviewRepo) AverageRating(_ context.Context, propertyID string) (float64, error) {
	reviews := r.filter(func(rv *domain.Review) bool { return rv.PropertyID == propertyID })
	if len(reviews) == 0 {
		return 0, nil
	}
	sum := 0
	for _, rv := range reviews {
		sum += rv.Rating
	}
	return float64(sum) / float64(len(reviews)), nil
}

type stubScheduler struct {
	scheduled []string
}

func (s *stubScheduler) Schedule(propertyID string) {
	s.scheduled = append(s.scheduled, propertyID)
}

type stubDenylist struct {
	ids map[string]time.Duration
	err error
}

func newStubDenylist() *stubDenylist {
	return &stubDenylist{ids: make(map[string]time.Duration)}
}

func (d *stubDenylist) Add(_ context.Context, tokenID string, ttl time.Duration) error {
	if d.err != nil {
		return d.err
	}
	d.ids[tokenID] = ttl
	return nil
}

func (d *stubDenylist) Contains(_ context.Context, tokenID string) (bool, error) {
	if d.err != nil {
		return false, d.err
	}
	_, ok := d.ids[tokenID]
	return ok, nil
}

// ---------------------------------------------------------------------------
// Fixtures
// ---------------------------------------------------------------------------

var (
	hostAlice = &domain.User{ID: "alice", Name: "Alice", Role: domain.RoleHost}
	userBob   = &domain.User{ID: "bob", Name: "Bob", Role: domain.RoleUser}
	adminEve  = &domain.User{ID: "eve", Name: "Eve", Role: domain.RoleAdmin}
)

func fixtureProperty(id, ownerID string, price float64) *domain.Property {
	return &domain.Property{
		ID:            id,
		Title:         "Sea view loft",
		Description:   "Two steps from the beach",
		Address:       "1 Ocean Drive",
		Location:      domain.Location{Type: "Point", Coordinates: []float64{-80.13, 25.79}, City: "Miami"},
		PricePerNight: price,
		Bedrooms:      1,
		Bathrooms:     1,
		Guests:        2,
		PropertyType:  domain.PropertyLoft,
		Photos:        []string{"loft.jpg"},
		UserID:        ownerID,
	}
}
