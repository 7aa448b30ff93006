// Package cli implements the offline trip planner command line.
package cli

import (
	"itinerary-planner-service/internal/ports"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App carries the collaborators shared by every command.
type App struct {
	Logger *zap.Logger
	// NewRouteProvider builds the routing collaborator used by --route.
	// It returns an error when routing is not configured.
	NewRouteProvider func() (ports.RouteProvider, error)
	Profiles         []string
	RoutingTimeout   time.Duration
	// ArtifactDir receives per-run artifacts; empty disables them.
	ArtifactDir string
}

func NewRootCmd(app *App) *cobra.Command {
	var verbose bool

	root := &cobra.Command{
		Use:           "planner",
		Short:         "Plan day trips from a points-of-interest dataset",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if !verbose || app.Logger != nil {
				return nil
			}
			zl, err := zap.NewDevelopment()
			if err != nil {
				return err
			}
			app.Logger = zl
			return nil
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log pipeline decisions to stderr")

	root.AddCommand(
		newPlanCmd(app),
		newPlacesCmd(app),
	)

	return root
}

func (a *App) logger() *zap.Logger {
	if a.Logger == nil {
		return zap.NewNop()
	}
	return a.Logger
}
