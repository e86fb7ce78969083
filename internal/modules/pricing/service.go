// README: Pricing service wraps the engine with the active rate table and quote persistence.
package pricing

import (
	"context"
	"time"

	"github.com/google/uuid"
)

type Service struct {
	store *Store
	rates RateSchedule
	loc   *time.Location
	now   func() time.Time
}

// NewService returns a service pricing against rates. A nil store disables
// quote persistence. Trip start times are moved into loc before pricing so the
// night window follows local evenings whatever offset the caller sent; a nil
// loc prices start times in their own zone.
func NewService(store *Store, rates RateSchedule, loc *time.Location) *Service {
	return &Service{store: store, rates: rates, loc: loc, now: time.Now}
}

func (s *Service) Rates() RateSchedule {
	return s.rates
}

// Compare prices the trip and records the result as a quote.
func (s *Service) Compare(ctx context.Context, trip TripInput) (Quote, error) {
	trip = s.localize(trip)
	result, err := Compare(trip, s.rates)
	if err != nil {
		return Quote{}, err
	}
	q := Quote{
		ID:        uuid.NewString(),
		CreatedAt: s.now().UTC(),
		Trip:      trip,
		Result:    result,
	}
	if s.store != nil {
		if err := s.store.SaveQuote(ctx, q); err != nil {
			return Quote{}, err
		}
	}
	return q, nil
}

func (s *Service) Aggregate(ctx context.Context, trips []TripInput) (AggregateResult, error) {
	local := make([]TripInput, len(trips))
	for i, t := range trips {
		local[i] = s.localize(t)
	}
	return Aggregate(local, s.rates)
}

func (s *Service) localize(trip TripInput) TripInput {
	if s.loc != nil && !trip.Start.IsZero() {
		trip.Start = trip.Start.In(s.loc)
	}
	return trip
}

func (s *Service) GetQuote(ctx context.Context, id string) (Quote, error) {
	if s.store == nil {
		return Quote{}, ErrNotFound
	}
	if _, err := uuid.Parse(id); err != nil {
		return Quote{}, ErrNotFound
	}
	return s.store.GetQuote(ctx, id)
}
