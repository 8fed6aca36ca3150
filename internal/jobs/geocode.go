package jobs

import (
	"context"
	"fmt"

	"jobboard/pkg/domain"
	"jobboard/pkg/geocoder"
	"jobboard/pkg/logger"
	"jobboard/pkg/serrors"

	"go.uber.org/zap"
)

// Geocode resolves a posting's location into coordinates and stores them.
// Blank and remote locations clear the coordinates. Lookups go through the
// city_coords cache first; provider failures leave coordinates NULL rather
// than failing the job posting flow.
func (s service) Geocode(ctx context.Context, id domain.JobID) error {
	job, err := s.storage.JobByID(ctx, id)
	if err != nil {
		return fmt.Errorf("could not get job: %w", err)
	}
	if job == nil {
		return serrors.With(serrors.ErrNotFound, "job not found")
	}

	city, state, ok := geocoder.SplitLocation(job.Location)
	if !ok {
		if err := s.storage.SetJobCoords(ctx, id, nil, nil); err != nil {
			return fmt.Errorf("could not clear job coords: %w", err)
		}

		return nil
	}

	point, err := s.resolveCityState(ctx, city, state)
	if err != nil {
		return err
	}
	if point == nil {
		logger.Info(ctx, "location could not be geocoded",
			zap.String("city", city),
			zap.String("state", state))

		if err := s.storage.SetJobCoords(ctx, id, nil, nil); err != nil {
			return fmt.Errorf("could not clear job coords: %w", err)
		}

		return nil
	}

	if err := s.storage.SetJobCoords(ctx, id, &point.Lat, &point.Lng); err != nil {
		return fmt.Errorf("could not set job coords: %w", err)
	}

	return nil
}

// resolveCityState looks up coordinates through the cache first, then the
// provider, caching successful lookups.
func (s service) resolveCityState(ctx context.Context, city, state string) (*geocoder.Point, error) {
	cached, err := s.storage.CityCoord(ctx, city, state)
	if err != nil {
		return nil, fmt.Errorf("could not read geocode cache: %w", err)
	}
	if cached != nil {
		return &geocoder.Point{Lat: cached.Lat, Lng: cached.Lng}, nil
	}

	point, err := s.geocoder.GeocodeCityState(ctx, city, state)
	if err != nil {
		return nil, fmt.Errorf("could not geocode location: %w", err)
	}
	if point == nil {
		return nil, nil
	}

	if err := s.storage.StoreCityCoord(ctx, domain.CityCoord{
		City:  city,
		State: state,
		Lat:   point.Lat,
		Lng:   point.Lng,
	}); err != nil {
		return nil, fmt.Errorf("could not cache geocode result: %w", err)
	}

	return point, nil
}

// resolveCenter resolves a free-text search location into radius-search
// center coordinates. Failures degrade to the substring filter, so errors are
// logged and swallowed.
func (s service) resolveCenter(ctx context.Context, location string) *geocoder.Point {
	city, state, ok := geocoder.SplitLocation(location)
	if !ok {
		return nil
	}

	point, err := s.resolveCityState(ctx, city, state)
	if err != nil {
		logger.Error(ctx, "error resolving radius search center", zap.Error(err))

		return nil
	}

	return point
}
