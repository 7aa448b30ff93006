package repositories

import (
	"context"
	"errors"
	"itinerary-planner-service/internal/domain"
	"testing"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var placeColumns = []string{
	"place_id", "name", "category", "lat", "lon", "visit_start", "visit_end", "spend_time_minutes", "description",
}

func ptr32(v int32) *int32 { return &v }

func TestPgPlaceRepositoryListPlaces(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT place_id, name, category, lat, lon, .* FROM places\s+ORDER BY place_id`).
		WillReturnRows(pgxmock.NewRows(placeColumns).
			AddRow(1, "Temple", "temple", 13.68, 79.35, "03:00", "23:30", ptr32(120), "Hill temple").
			AddRow(2, "Falls", "waterfall", 13.65, 79.41, "", "", nil, ""))

	places, err := NewPgPlaceRepository(mock, nil).ListPlaces(context.Background())
	require.NoError(t, err)

	require.Len(t, places, 2)
	assert.Equal(t, "Temple", places[0].Name)
	assert.Equal(t, domain.Coordinates{Lat: 13.68, Lon: 79.35}, places[0].Coordinates)
	assert.Equal(t, 120.0, places[0].VisitMinutes())
	assert.Nil(t, places[1].SpendTimeMinutes)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestPgPlaceRepositoryQueryError(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectQuery(`SELECT place_id`).WillReturnError(errors.New("connection reset"))

	_, err = NewPgPlaceRepository(mock, nil).ListPlaces(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection reset")
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestInitPgSchemaAndSeed(t *testing.T) {
	mock, err := pgxmock.NewPool(pgxmock.QueryMatcherOption(pgxmock.QueryMatcherRegexp))
	require.NoError(t, err)
	defer mock.Close()

	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS places`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	mock.ExpectExec(`CREATE TABLE IF NOT EXISTS route_cache`).WillReturnResult(pgxmock.NewResult("CREATE", 0))
	require.NoError(t, InitPgSchema(context.Background(), mock))

	spend := 45
	mock.ExpectExec(`INSERT INTO places .* ON CONFLICT \(place_id\) DO UPDATE`).
		WithArgs(7, "Museum", "museum", 13.62, 79.42, "10:00", "17:00", &spend, "").
		WillReturnResult(pgxmock.NewResult("INSERT", 1))

	err = SeedPgPlaces(context.Background(), mock, []domain.Place{{
		PlaceID: 7, Name: "Museum", Category: "museum",
		Coordinates: domain.Coordinates{Lat: 13.62, Lon: 79.42},
		VisitStart:  "10:00", VisitEnd: "17:00", SpendTimeMinutes: &spend,
	}})
	require.NoError(t, err)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedPgPlacesRejectsInvalidRows(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	err = SeedPgPlaces(context.Background(), mock, []domain.Place{{PlaceID: -1, Name: "x"}})
	assert.Error(t, err)
	require.NoError(t, mock.ExpectationsWereMet())
}
