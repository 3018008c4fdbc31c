package cli

import (
	"context"
	"time"

	"github.com/alexanderramin/studyweek/internal/service"
	"github.com/spf13/cobra"
)

// App holds references to all service interfaces used by CLI commands.
type App struct {
	Tasks     service.TaskService
	Schedule  service.ScheduleService
	Sessions  service.SessionService
	Dashboard service.DashboardService
	Reflect   service.ReflectService

	// UserID scopes every command. The --user flag overrides it.
	UserID string

	// Serve runs the HTTP API until ctx is cancelled. Nil disables "serve".
	Serve func(ctx context.Context) error

	// Now defaults to time.Now.
	Now func() time.Time
}

func (a *App) now() time.Time {
	if a.Now != nil {
		return a.Now()
	}
	return time.Now()
}

// NewRootCmd creates the top-level "studyweek" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	root := &cobra.Command{
		Use:          "studyweek",
		Short:        "Weekly study planner with focus tracking and reflections",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVarP(&app.UserID, "user", "u", app.UserID, "User ID to act as")

	root.AddCommand(
		newTaskCmd(app),
		newScheduleCmd(app),
		newSessionCmd(app),
		newProgressCmd(app),
		newDashboardCmd(app),
		newReflectCmd(app),
		newServeCmd(app),
	)

	return root
}
