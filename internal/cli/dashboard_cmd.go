package cli

import (
	"fmt"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newDashboardCmd(a *App) *cobra.Command {
	var date string

	cmd := &cobra.Command{
		Use:   "dashboard",
		Short: "Show today's blocks and progress",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			day, err := resolveDate(date, now)
			if err != nil {
				return err
			}

			resp, err := a.Dashboard.Dashboard(cmd.Context(), app.DashboardRequest{UserID: a.UserID, Date: day})
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatDashboard(resp, calendarDate(now)))
			return nil
		},
	}

	cmd.Flags().StringVar(&date, "date", "", "Day to show (YYYY-MM-DD), default today")

	return cmd
}
