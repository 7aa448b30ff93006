package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"itinerary-planner-service/internal/adapters/artifacts"
	"itinerary-planner-service/internal/adapters/csvsource"
	"itinerary-planner-service/internal/domain"
	"itinerary-planner-service/internal/services"

	"github.com/spf13/cobra"
)

type planOptions struct {
	places   string
	lat, lon float64
	start    string
	end      string
	days     int
	date     string
	route    bool
	asJSON   bool
}

func newPlanCmd(app *App) *cobra.Command {
	var opts planOptions

	cmd := &cobra.Command{
		Use:   "plan",
		Short: "Build an itinerary from a CSV dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runPlan(cmd, app, opts)
		},
	}

	f := cmd.Flags()
	f.StringVar(&opts.places, "places", "data/places.csv", "Places dataset (CSV)")
	f.Float64Var(&opts.lat, "lat", 0, "Start latitude")
	f.Float64Var(&opts.lon, "lon", 0, "Start longitude")
	f.StringVar(&opts.start, "start", "", "Daily start time (HH:MM)")
	f.StringVar(&opts.end, "end", "", "Daily end time (HH:MM)")
	f.IntVar(&opts.days, "days", 1, "Number of trip days")
	f.StringVar(&opts.date, "date", "", "Trip start date, display only")
	f.BoolVar(&opts.route, "route", false, "Stitch road geometry with the routing service")
	f.BoolVar(&opts.asJSON, "json", false, "Print the itinerary document as JSON")
	_ = cmd.MarkFlagRequired("lat")
	_ = cmd.MarkFlagRequired("lon")

	return cmd
}

func runPlan(cmd *cobra.Command, app *App, opts planOptions) error {
	log := app.logger()

	planner := &services.TripPlanner{
		Places:  csvsource.NewRepository(opts.places, log),
		Builder: &services.ItineraryBuilder{Logger: log},
		Logger:  log,
	}

	if opts.route {
		if app.NewRouteProvider == nil {
			return errors.New("routing is not configured")
		}
		provider, err := app.NewRouteProvider()
		if err != nil {
			return fmt.Errorf("--route: %w", err)
		}
		strategies := services.StrategiesFor(app.Profiles, app.RoutingTimeout)
		if len(strategies) == 0 {
			strategies = services.DefaultStrategies(app.RoutingTimeout)
		}
		planner.Stitcher = &services.RouteStitcher{
			Provider:   provider,
			Strategies: strategies,
			Logger:     log,
		}
	}

	if app.ArtifactDir != "" {
		planner.Artifacts = artifacts.NewFSStore(app.ArtifactDir, log)
	}

	it, err := planner.Plan(context.Background(), domain.TripRequest{
		Start:     domain.Coordinates{Lat: opts.lat, Lon: opts.lon},
		StartTime: opts.start,
		EndTime:   opts.end,
		NumDays:   opts.days,
		TripDate:  opts.date,
	})
	if err != nil {
		if services.IsTerminal(err) {
			return errors.New(domain.UserMessage(err))
		}
		return err
	}

	out := cmd.OutOrStdout()
	if opts.asJSON {
		doc, err := services.RenderItineraryDocument(it)
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(out, string(doc))
		return err
	}

	_, err = fmt.Fprintln(out, RenderItinerary(it))
	return err
}

func newPlacesCmd(app *App) *cobra.Command {
	var path string

	cmd := &cobra.Command{
		Use:   "places",
		Short: "List the places in a CSV dataset",
		RunE: func(cmd *cobra.Command, args []string) error {
			places, report, err := csvsource.LoadFile(path)
			if err != nil {
				if services.IsTerminal(err) {
					return errors.New(domain.UserMessage(err))
				}
				return err
			}

			out := cmd.OutOrStdout()
			if report.Skipped() > 0 {
				app.logger().Sugar().Warnf("skipped %d invalid rows", report.Skipped())
			}
			enc := json.NewEncoder(out)
			enc.SetIndent("", "  ")
			return enc.Encode(struct {
				Loaded  int      `json:"loaded"`
				Skipped int      `json:"skipped"`
				Names   []string `json:"names"`
			}{report.Loaded, report.Skipped(), placeNames(places)})
		},
	}

	cmd.Flags().StringVar(&path, "places", "data/places.csv", "Places dataset (CSV)")
	return cmd
}

func placeNames(places []domain.Place) []string {
	out := make([]string, 0, len(places))
	for _, p := range places {
		out = append(out, p.Name)
	}
	return out
}
