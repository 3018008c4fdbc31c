package cli

import (
	"fmt"

	"github.com/alexanderramin/studyweek/internal/cli/formatter"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/spf13/cobra"
)

func newSessionCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Log and review focus-timer sessions",
	}

	cmd.AddCommand(
		newSessionLogCmd(app),
		newSessionListCmd(app),
		newSessionRemoveCmd(app),
	)

	return cmd
}

func newSessionLogCmd(app *App) *cobra.Command {
	var blockID, note, at string
	var minutes, rating int

	cmd := &cobra.Command{
		Use:   "log",
		Short: "Log a completed focus session",
		RunE: func(cmd *cobra.Command, args []string) error {
			occurredAt, err := parseAt(at, app.now())
			if err != nil {
				return err
			}

			s := &domain.FocusSession{
				UserID:        app.UserID,
				BlockID:       blockID,
				OccurredAt:    occurredAt,
				ActualMinutes: minutes,
				FocusRating:   rating,
				Note:          note,
			}
			if err := app.Sessions.LogFocusSession(cmd.Context(), s); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged %s session, focus %s (%s)\n",
				formatter.FormatMinutes(minutes), formatter.FocusStars(rating), s.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&blockID, "block", "", "Schedule block the timer ran against")
	cmd.Flags().IntVar(&minutes, "minutes", 0, "Minutes actually focused")
	cmd.Flags().IntVar(&rating, "rating", 0, "Focus rating, 1-5")
	cmd.Flags().StringVar(&note, "note", "", "Session note")
	cmd.Flags().StringVar(&at, "at", "", "When it happened (RFC3339, \"YYYY-MM-DD HH:MM\" or \"HH:MM\"), default now")
	_ = cmd.MarkFlagRequired("block")
	_ = cmd.MarkFlagRequired("minutes")
	_ = cmd.MarkFlagRequired("rating")

	return cmd
}

func newSessionListCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List a week's focus sessions",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := resolveWeek(week, app.now())
			if err != nil {
				return err
			}
			sessions, err := app.Sessions.ListSessions(cmd.Context(), app.UserID, weekStart, domain.WeekEndFor(weekStart))
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(sessions) == 0 {
				fmt.Fprintln(out, "No sessions found.")
				return nil
			}

			headers := []string{"ID", "WHEN", "DURATION", "FOCUS", "BLOCK", "NOTE"}
			rows := make([][]string, 0, len(sessions))
			for _, s := range sessions {
				rows = append(rows, []string{
					formatter.TruncID(s.ID),
					when(s.OccurredAt),
					formatter.FormatMinutes(s.ActualMinutes),
					formatter.FocusStars(s.FocusRating),
					formatter.TruncID(s.BlockID),
					formatter.Dim(formatter.Truncate(s.Note, 40)),
				})
			}

			fmt.Fprintln(out, formatter.RenderBox("Sessions", formatter.RenderTable(headers, rows)))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the week (YYYY-MM-DD), default this week")

	return cmd
}

func newSessionRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a focus session",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Sessions.DeleteSession(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed session %s\n", args[0])
			return nil
		},
	}
}
