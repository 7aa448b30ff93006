package csvsource

import (
	"context"
	"itinerary-planner-service/internal/domain"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const dataset = `Name of the Place,latitude,longitude,category,visit_start,visit_end,spend_time_minutes,description
Sri Venkateswara Temple,13.6833,79.3474,temple,03:00,23:30,120,"Hill temple, main shrine"
Kapila Theertham,13.6500,79.4170,waterfall,,,45.0,
,13.62,79.41,park,09:00,17:00,30,no name
Regional Museum,not-a-number,79.42,museum,10:00,17:00,60,
Zoo Park,13.6000,79.3600,zoo,08:30,17:30,abc,Large zoo
Deer Park,95,79.3,park,,,,
`

func TestLoad(t *testing.T) {
	places, report, err := Load(strings.NewReader(dataset))
	require.NoError(t, err)

	assert.Equal(t, 6, report.Rows)
	assert.Equal(t, 3, report.Loaded)
	assert.Equal(t, []int{4, 5, 7}, report.SkippedRows)

	require.Len(t, places, 3)

	temple := places[0]
	assert.Equal(t, 1, temple.PlaceID)
	assert.Equal(t, "Sri Venkateswara Temple", temple.Name)
	assert.Equal(t, domain.Coordinates{Lat: 13.6833, Lon: 79.3474}, temple.Coordinates)
	assert.Equal(t, "03:00", temple.VisitStart)
	assert.Equal(t, "Hill temple, main shrine", temple.Description)
	assert.Equal(t, 120.0, temple.VisitMinutes())

	falls := places[1]
	assert.Empty(t, falls.VisitStart)
	assert.Equal(t, 45.0, falls.VisitMinutes())

	zoo := places[2]
	assert.Equal(t, 5, zoo.PlaceID)
	assert.Nil(t, zoo.SpendTimeMinutes)
	assert.Equal(t, float64(domain.DefaultSpendMinutes), zoo.VisitMinutes())
}

func TestLoadExplicitIDs(t *testing.T) {
	places, _, err := Load(strings.NewReader("place_id,name,lat,lng\n42,A,1,2\nx,B,3,4\n"))
	require.NoError(t, err)

	require.Len(t, places, 2)
	assert.Equal(t, 42, places[0].PlaceID)
	assert.Equal(t, 2, places[1].PlaceID)
}

func TestLoadMissingColumn(t *testing.T) {
	_, _, err := Load(strings.NewReader("name,latitude\nA,1\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "longitude")
}

func TestLoadEmpty(t *testing.T) {
	_, _, err := Load(strings.NewReader(""))
	assert.ErrorIs(t, err, domain.ErrEmptyDataset)

	places, report, err := Load(strings.NewReader("name,latitude,longitude\n"))
	require.NoError(t, err)
	assert.Empty(t, places)
	assert.Zero(t, report.Rows)
}

func TestRepository(t *testing.T) {
	path := filepath.Join(t.TempDir(), "places.csv")
	require.NoError(t, os.WriteFile(path, []byte(dataset), 0o600))

	places, err := NewRepository(path, nil).ListPlaces(context.Background())
	require.NoError(t, err)
	assert.Len(t, places, 3)

	_, err = NewRepository(filepath.Join(t.TempDir(), "nope.csv"), nil).ListPlaces(context.Background())
	assert.ErrorIs(t, err, domain.ErrDatasetMissing)
}
