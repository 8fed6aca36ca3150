package postgres

import (
	"context"
	"fmt"
	"strings"

	"jobboard/pkg/domain"

	"github.com/doug-martin/goqu/v9"
)

const (
	cityCoordsTable = "city_coords"
)

// CityCoord returns the cached coordinates for (city, state), compared
// case-insensitively. Returns nil on a cache miss.
func (p *PgSQL) CityCoord(ctx context.Context, city, state string) (*domain.CityCoord, error) {
	var row PgCityCoord
	found, err := p.Builder.From(cityCoordsTable).
		Where(
			goqu.Func("LOWER", goqu.I("city")).Eq(strings.ToLower(city)),
			goqu.Func("LOWER", goqu.I("state")).Eq(strings.ToLower(state)),
		).
		Executor().ScanStructContext(ctx, &row)
	if err != nil {
		return nil, fmt.Errorf("could not fetch city coords: %w", err)
	}
	if !found {
		return nil, nil
	}

	return row.ToDomain(), nil
}

// StoreCityCoord caches a geocoding result. Concurrent duplicate inserts are
// ignored.
func (p *PgSQL) StoreCityCoord(ctx context.Context, coord domain.CityCoord) error {
	if _, err := p.Builder.Insert(cityCoordsTable).
		Rows(goqu.Record{
			"city":  coord.City,
			"state": coord.State,
			"lat":   coord.Lat,
			"lng":   coord.Lng,
		}).
		OnConflict(goqu.DoNothing()).
		Executor().ExecContext(ctx); err != nil {
		return fmt.Errorf("could not store city coords into pg: %w", err)
	}

	return nil
}
