package cli

import (
	"fmt"
	"time"

	"github.com/alexanderramin/studyweek/internal/cli/formatter"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/spf13/cobra"
)

func newProgressCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "progress",
		Short: "Log and review work done without the timer",
	}

	cmd.AddCommand(
		newProgressLogCmd(app),
		newProgressListCmd(app),
		newProgressRemoveCmd(app),
	)

	return cmd
}

func newProgressLogCmd(app *App) *cobra.Command {
	var taskID, note, at string
	var minutes, rating int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log manual progress on a task",
		RunE: func(cmd *cobra.Command, args []string) error {
			occurredAt, err := parseAt(at, app.now())
			if err != nil {
				return err
			}

			e := &domain.ManualEntry{
				UserID:      app.UserID,
				TaskID:      taskID,
				OccurredAt:  occurredAt,
				Minutes:     minutes,
				FocusRating: rating,
				Note:        note,
			}
			if err := app.Sessions.LogManualProgress(cmd.Context(), e); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s on task %s, focus %s (%s)\n",
				formatter.FormatMinutes(minutes), taskID, formatter.FocusStars(rating), e.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&taskID, "task", "", "Task ID")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes worked")
	cmd.Flags().IntVar(&rating, "rating", 0, "Focus rating, 1-5")
	cmd.Flags().StringVar(&note, "note", "", "Note")
	cmd.Flags().StringVar(&at, "at", "", "When it happened (RFC3339, \"YYYY-MM-DD HH:MM\" or \"HH:MM\"), default now")
	_ = cmd.MarkFlagRequired("task")
	_ = cmd.MarkFlagRequired("minutes")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func newProgressListCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a week's manual progress entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := resolveWeek(week, app.now())
			if err != nil {
				return err
			}
			entries, err := app.Sessions.ListManualEntries(cmd.Context(), app.UserID, weekStart, domain.WeekEndFor(weekStart))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(entries) == 0 {
				fmt.Fprintln(out, "No progress entries found.")
				return nil
			}

			headers := []string{"ID", "WHEN", "DURATION", "FOCUS", "TASK", "NOTE"}
			rows := make([][]string, 0, len(entries))
			for _, e := range entries {
				rows = append(rows, []string{
					formatter.TruncID(e.ID),
					when(e.OccurredAt),
					formatter.FormatMinutes(e.Minutes),
					formatter.FocusStars(e.FocusRating),
					formatter.TruncID(e.TaskID),
					formatter.Dim(formatter.Truncate(e.Note, 40)),
				})
			}

			fmt.Fprintln(out, formatter.RenderBox("Manual progress", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the week (YYYY-MM-DD), default this week")

	return cmd
}

func newProgressRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a manual progress entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.DeleteManualEntry(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed entry %s\n", args[0])
			return nil
		},
	}
}

// when renders a stored timestamp in its own zone, or a dim placeholder.
func when(t *time.Time) string {
	if t == nil || t.IsZero() {
		return formatter.Dim("unknown")
	}
	return t.Format("Mon 15:04")
}
