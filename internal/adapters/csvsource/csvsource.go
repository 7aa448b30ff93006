// Package csvsource reads the points-of-interest dataset from a CSV file.
package csvsource

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/platform/obs"
	"math"
	"os"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Header names are matched case-insensitively after trimming.
var columnAliases = map[string][]string{
	"id":                 {"place_id", "id"},
	"name":               {"name", "name of the place"},
	"latitude":           {"latitude", "lat"},
	"longitude":          {"longitude", "lon", "lng"},
	"category":           {"category"},
	"visit_start":        {"visit_start"},
	"visit_end":          {"visit_end"},
	"spend_time_minutes": {"spend_time_minutes"},
	"description":        {"description"},
}

var requiredColumns = []string{"name", "latitude", "longitude"}

// LoadReport describes how a dataset file was read.
// Line numbers count the header as line 1.
type LoadReport struct {
	Rows        int
	Loaded      int
	SkippedRows []int
}

func (r LoadReport) Skipped() int { return len(r.SkippedRows) }

// Load parses the dataset. Rows whose name or coordinates are missing or
// unparseable are skipped and reported; optional fields degrade to their
// defaults instead of failing the row.
func Load(r io.Reader) ([]domain.Place, LoadReport, error) {
	var report LoadReport

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.TrimLeadingSpace = true
	cr.LazyQuotes = true

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return nil, report, fmt.Errorf("load places: %w", domain.ErrEmptyDataset)
	}
	if err != nil {
		return nil, report, fmt.Errorf("load places: read header: %w", err)
	}

	cols := indexColumns(header)
	for _, c := range requiredColumns {
		if _, ok := cols[c]; !ok {
			return nil, report, fmt.Errorf("load places: missing required column %q", c)
		}
	}

	places := make([]domain.Place, 0, 64)
	line := 1
	for {
		rec, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		line++
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				report.Rows++
				report.SkippedRows = append(report.SkippedRows, line)
				continue
			}
			return nil, report, fmt.Errorf("load places: read line %d: %w", line, err)
		}
		report.Rows++

		p, ok := parseRow(rec, cols, report.Rows)
		if !ok {
			report.SkippedRows = append(report.SkippedRows, line)
			continue
		}
		places = append(places, p)
	}

	report.Loaded = len(places)
	return places, report, nil
}

// LoadFile opens path and parses it with Load. A missing file is
// domain.ErrDatasetMissing.
func LoadFile(path string) ([]domain.Place, LoadReport, error) {
	f, err := os.Open(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, LoadReport{}, fmt.Errorf("load places %q: %w", path, domain.ErrDatasetMissing)
	}
	if err != nil {
		return nil, LoadReport{}, fmt.Errorf("load places %q: %w", path, err)
	}
	defer f.Close()

	return Load(f)
}

// Repository serves the dataset straight from a CSV file, re-reading it on
// every call so edits are picked up without a restart.
type Repository struct {
	Path   string
	Logger *zap.Logger
}

func NewRepository(path string, logger *zap.Logger) *Repository {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Repository{Path: path, Logger: logger}
}

func (r *Repository) ListPlaces(ctx context.Context) (_ []domain.Place, err error) {
	defer obs.Time(ctx, r.Logger, "csv.ListPlaces")(&err)

	places, report, err := LoadFile(r.Path)
	if err != nil {
		return nil, err
	}
	if report.Skipped() > 0 {
		r.Logger.Warn("skipped invalid dataset rows",
			zap.String("path", r.Path),
			zap.Int("skipped", report.Skipped()),
			zap.Ints("lines", report.SkippedRows))
	}

	return places, nil
}

func indexColumns(header []string) map[string]int {
	pos := make(map[string]int, len(header))
	for i, h := range header {
		pos[strings.ToLower(strings.TrimSpace(strings.TrimPrefix(h, "\ufeff")))] = i
	}

	cols := make(map[string]int, len(columnAliases))
	for canonical, aliases := range columnAliases {
		for _, a := range aliases {
			if i, ok := pos[a]; ok {
				cols[canonical] = i
				break
			}
		}
	}
	return cols
}

func parseRow(rec []string, cols map[string]int, ordinal int) (domain.Place, bool) {
	field := func(name string) string {
		i, ok := cols[name]
		if !ok || i >= len(rec) {
			return ""
		}
		return strings.TrimSpace(rec[i])
	}

	name := field("name")
	if name == "" {
		return domain.Place{}, false
	}

	lat, err := strconv.ParseFloat(field("latitude"), 64)
	if err != nil {
		return domain.Place{}, false
	}
	lon, err := strconv.ParseFloat(field("longitude"), 64)
	if err != nil {
		return domain.Place{}, false
	}
	coords := domain.Coordinates{Lat: lat, Lon: lon}
	if !coords.Valid() {
		return domain.Place{}, false
	}

	id := ordinal
	if raw := field("id"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			id = v
		}
	}

	return domain.Place{
		PlaceID:          id,
		Name:             name,
		Category:         field("category"),
		Coordinates:      coords,
		VisitStart:       field("visit_start"),
		VisitEnd:         field("visit_end"),
		SpendTimeMinutes: parseSpend(field("spend_time_minutes")),
		Description:      field("description"),
	}, true
}

// Spend times may be written as floats ("45.0") by spreadsheet tools.
func parseSpend(raw string) *int {
	if raw == "" {
		return nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return nil
	}
	m := int(math.Round(v))
	return &m
}
