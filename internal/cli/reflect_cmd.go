package cli

import (
	"encoding/json"
	"fmt"
	"io"

	"github.com/alexanderramin/studyweek/internal/app"
	"github.com/alexanderramin/studyweek/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newReflectCmd(a *App) *cobra.Command {
	var week, until string
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "reflect",
		Short: "Summarize a week of planned and logged study",
		Long: `Summarize a week of planned and logged study.

If the schedule cannot be read, the last complete reflection for the same
week is shown instead when one is still cached in this process.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			now := a.now()
			weekStart, err := resolveWeek(week, now)
			if err != nil {
				return err
			}
			req := app.NewReflectRequest(a.UserID, weekStart)
			if until != "" {
				end, err := resolveDate(until, now)
				if err != nil {
					return err
				}
				req.WeekEnd = &end
			}

			out := cmd.OutOrStdout()
			resp, err := a.Reflect.Reflect(cmd.Context(), req)
			if err != nil {
				if !app.IsUpstreamUnavailable(err) {
					return err
				}
				cached, ok := a.Reflect.LastKnown(a.UserID, weekStart)
				if !ok {
					return err
				}
				if asJSON {
					return writeJSON(out, cached)
				}
				fmt.Fprintln(out, formatter.FormatStaleReflection(cached, err))
				return nil
			}

			if asJSON {
				return writeJSON(out, resp)
			}
			fmt.Fprintln(out, formatter.FormatReflection(resp))
			return nil
		},
	}

	cmd.Flags().StringVar(&week, "week", "", "Any date in the week (YYYY-MM-DD), default this week")
	cmd.Flags().StringVar(&until, "until", "", "Last day to include (YYYY-MM-DD), default the week's Friday")
	cmd.Flags().BoolVar(&asJSON, "json", false, "Print the raw reflection as JSON")

	return cmd
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
