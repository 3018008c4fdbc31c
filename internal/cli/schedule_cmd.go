package cli

import (
	"fmt"

	"github.com/alexanderramin/studyweek/internal/cli/formatter"
	"github.com/alexanderramin/studyweek/internal/domain"
	"github.com/spf13/cobra"
)

func newScheduleCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "schedule",
		Short: "Plan study blocks for a week",
	}

	cmd.AddCommand(
		newScheduleAddCmd(app),
		newScheduleListCmd(app),
		newScheduleRemoveCmd(app),
	)

	return cmd
}

func newScheduleAddCmd(app *App) *cobra.Command {
	var dayFlag, week, title, taskID string
	var hour int
	var duration float64

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a study block",
		RunE: func(cmd *cobra.Command, args []string) error {
			day, err := parseDay(dayFlag)
			if err != nil {
				return err
			}
			weekStart, err := resolveWeek(week, app.now())
			if err != nil {
				return err
			}

			b := &domain.ScheduleBlock{
				UserID:        app.UserID,
				TaskID:        taskID,
				Title:         title,
				WeekStart:     weekStart,
				DayOfWeek:     day,
				StartHour:     hour,
				DurationHours: duration,
			}
			if err := app.Schedule.Add(cmd.Context(), b); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Scheduled %s on %s %s, week of %s (%s)\n",
				formatter.FormatHours(b.DurationHours), b.DayOfWeek,
				formatter.HourRange(b.StartHour, b.DurationHours),
				b.WeekStart.Format(domain.DateLayout), b.ID)
			return nil
		},
	}

	cmd.Flags().StringVar(&dayFlag, "day", "", "Day: 0 (Saturday) to 6 (Friday), or a day name")
	cmd.Flags().IntVar(&hour, "hour", 0, "Start hour, 0-23")
	cmd.Flags().Float64Var(&duration, "duration", 0, "Duration in hours, e.g. 1.5")
	cmd.Flags().StringVar(&title, "title", "", "Block title (defaults to the task title)")
	cmd.Flags().StringVar(&taskID, "task", "", "Task ID this block is for")
	cmd.Flags().StringVar(&week, "week", "", "Any date in the target week (YYYY-MM-DD), default this week")
	_ = cmd.MarkFlagRequired("day")
	_ = cmd.MarkFlagRequired("hour")
	_ = cmd.MarkFlagRequired("duration")

	return cmd
}

func newScheduleListCmd(app *App) *cobra.Command {
	var week string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "Show a week's study blocks",
		RunE: func(cmd *cobra.Command, args []string) error {
			weekStart, err := resolveWeek(week, app.now())
			if err != nil {
				return err
			}
			blocks, err := app.Schedule.ListWeek(cmd.Context(), app.UserID, weekStart)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), formatter.FormatWeekSchedule(weekStart, blocks))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the week (YYYY-MM-DD), default this week")

	return cmd
}

func newScheduleRemoveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "remove ID",
		Short: "Remove a study block",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := app.Schedule.Delete(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Removed block %s\n", args[0])
			return nil
		},
	}
}
