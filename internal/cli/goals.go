package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/rustyeddy/tradejournal/goals"
	"github.com/spf13/cobra"
)

func newGoalsCmd(app *App) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "goals",
		Aliases: []string{"goal", "g"},
		Short:   "Track trading goals",
		Long: `Create goals, record progress and see which ones need attention.

Examples:
  tradejournal goals add --title "May profit" --type PROFIT --timeframe MONTHLY --target 5000 --start 2024-05-01 --end 2024-05-31
  tradejournal goals update <id> 3250
  tradejournal goals sync
  tradejournal goals alerts`,
	}

	cmd.AddCommand(
		newGoalsListCmd(app),
		newGoalsAddCmd(app),
		newGoalsUpdateCmd(app),
		newGoalsSyncCmd(app),
		newGoalsArchiveCmd(app),
		newGoalsAlertsCmd(app),
	)
	return cmd
}

func newGoalsListCmd(app *App) *cobra.Command {
	var status string

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List goals with their current metrics",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			status = strings.ToUpper(status)
			if status != goals.All && !goals.Status(status).Valid() {
				return fmt.Errorf("unknown status %q", status)
			}

			s, err := app.Store()
			if err != nil {
				return err
			}
			all, err := s.ListGoals(cmd.Context())
			if err != nil {
				return err
			}

			now := app.Now()
			for i := range all {
				all[i].Refresh(now)
			}
			list := goals.FilterByStatus(all, status)

			out := app.output(cmd)
			if out.IsJSON() {
				return out.JSON(list)
			}
			if len(list) == 0 {
				out.Println("No goals.")
				return nil
			}

			rows := make([][]string, 0, len(list))
			for _, g := range list {
				rows = append(rows, []string{
					g.ID,
					g.Title,
					string(g.Type),
					string(g.Status),
					goals.FormatValue(g.Type, g.Current) + " / " + goals.FormatValue(g.Type, g.Target),
					fmt.Sprintf("%.1f%%", g.Metrics.Progress),
					string(g.Metrics.Trend),
					strconv.Itoa(g.Metrics.DaysRemaining),
				})
			}
			return out.Table([]string{"ID", "TITLE", "TYPE", "STATUS", "CURRENT / TARGET", "PROGRESS", "TREND", "DAYS LEFT"}, rows)
		},
	}
	cmd.Flags().StringVar(&status, "status", goals.All, "ALL, ACTIVE, COMPLETED, FAILED or ARCHIVED")
	_ = cmd.RegisterFlagCompletionFunc("status", fixedCompletion([]string{
		goals.All, string(goals.Active), string(goals.Completed), string(goals.Failed), string(goals.Archived),
	}))
	return cmd
}

func newGoalsAddCmd(app *App) *cobra.Command {
	var (
		in         goals.GoalInput
		typ, frame string
		start, end string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Create a goal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := app.output(cmd)
			now := app.Now()

			in.Type = goals.Type(strings.ToUpper(typ))
			in.Timeframe = goals.Timeframe(strings.ToUpper(frame))
			in.StartDate = now
			if start != "" {
				d, err := parseDate(start)
				if err != nil {
					return err
				}
				in.StartDate = d
			}
			if end != "" {
				d, err := parseDate(end)
				if err != nil {
					return err
				}
				in.EndDate = endOfDay(end, d)
			}

			g, err := goals.NewGoal(in, now)
			if err != nil {
				return reportInvalid(out, err)
			}
			s, err := app.Store()
			if err != nil {
				return err
			}
			if err := s.SaveGoal(cmd.Context(), g); err != nil {
				return err
			}
			app.Logger.Info().Str("goal", g.ID).Str("type", string(g.Type)).Msg("goal added")

			if out.IsJSON() {
				return out.JSON(g)
			}
			out.Success("Goal %s added: %s, target %s by %s", g.ID, g.Title, goals.FormatValue(g.Type, g.Target), g.EndDate.Format(dateLayout))
			return nil
		},
	}

	cmd.Flags().StringVar(&in.Title, "title", "", "Goal title")
	cmd.Flags().StringVar(&in.Description, "description", "", "Longer description")
	cmd.Flags().StringVar(&typ, "type", string(goals.Profit), "PROFIT, WIN_RATE, RISK_REWARD, TRADE_FREQUENCY or MAX_DRAWDOWN")
	cmd.Flags().StringVar(&frame, "timeframe", string(goals.Monthly), "DAILY, WEEKLY, MONTHLY, QUARTERLY or YEARLY")
	cmd.Flags().Float64Var(&in.Target, "target", 0, "Target value in the unit of the type")
	cmd.Flags().StringVar(&start, "start", "", "Start date (default now)")
	cmd.Flags().StringVar(&end, "end", "", "End date")
	return cmd
}

func newGoalsUpdateCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "update <goal-id> <current>",
		Short: "Record a new current value for a goal",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("bad current value %q: %w", args[1], err)
			}

			s, err := app.Store()
			if err != nil {
				return err
			}
			g, err := s.GetGoal(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			out := app.output(cmd)
			if err := g.Update(current, app.Now()); err != nil {
				return reportInvalid(out, err)
			}
			if err := s.SaveGoal(cmd.Context(), g); err != nil {
				return err
			}

			if out.IsJSON() {
				return out.JSON(g)
			}
			printGoalLine(out, g)
			return nil
		},
	}
}

func newGoalsSyncCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "sync",
		Short: "Recompute goals from their linked trades",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Store()
			if err != nil {
				return err
			}
			trades, err := s.ListTrades(cmd.Context())
			if err != nil {
				return err
			}
			gs, err := s.ListGoals(cmd.Context())
			if err != nil {
				return err
			}

			changed, syncErr := goals.Sync(gs, trades, app.Config.Account.StartBalance, app.Now())
			for _, g := range gs {
				if g.Status == goals.Archived {
					continue
				}
				if err := s.SaveGoal(cmd.Context(), g); err != nil {
					return err
				}
			}
			if syncErr != nil {
				app.Logger.Warn().Err(syncErr).Msg("some goals could not be synced")
			}
			app.Logger.Info().Int("goals", len(gs)).Int("changed", len(changed)).Msg("goals synced")

			out := app.output(cmd)
			if out.IsJSON() {
				if err := out.JSON(gs); err != nil {
					return err
				}
				return syncErr
			}
			if len(changed) == 0 && syncErr == nil {
				out.Println("All goals up to date.")
				return nil
			}
			for _, id := range changed {
				g, _ := goals.Find(gs, id)
				printGoalLine(out, g)
			}
			return syncErr
		},
	}
}

func newGoalsArchiveCmd(app *App) *cobra.Command {
	return &cobra.Command{
		Use:   "archive <goal-id>",
		Short: "Archive a goal",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := app.Store()
			if err != nil {
				return err
			}
			g, err := s.GetGoal(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if err := g.Archive(app.Now()); err != nil {
				return err
			}
			if err := s.SaveGoal(cmd.Context(), g); err != nil {
				return err
			}
			app.output(cmd).Success("Goal %s archived", g.ID)
			return nil
		},
	}
}

func newGoalsAlertsCmd(app *App) *cobra.Command {
	var days int

	cmd := &cobra.Command{
		Use:   "alerts",
		Short: "Show deadline, threshold and achievement alerts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("days") {
				days = app.Config.Goals.DeadlineAlertDays
			}
			s, err := app.Store()
			if err != nil {
				return err
			}
			gs, err := s.ListGoals(cmd.Context())
			if err != nil {
				return err
			}

			alerts := goals.AlertsFor(gs, app.Now(), days)
			out := app.output(cmd)
			if out.IsJSON() {
				return out.JSON(alerts)
			}
			if len(alerts) == 0 {
				out.Println("No alerts.")
				return nil
			}
			for _, a := range alerts {
				switch a.Type {
				case goals.Deadline:
					out.Warning("%s", a.Message)
				case goals.Achievement:
					out.Success("%s", a.Message)
				default:
					out.Header("%s", a.Message)
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVar(&days, "days", goals.DefaultDeadlineDays, "Warn when this many days or fewer remain")
	return cmd
}

func printGoalLine(out *Output, g goals.Goal) {
	out.Printf("%s  %s  %s / %s  %.1f%%  %s  %s  %d days left\n",
		g.ID, g.Title,
		goals.FormatValue(g.Type, g.Current), goals.FormatValue(g.Type, g.Target),
		g.Metrics.Progress, g.Metrics.Trend, g.Status, g.Metrics.DaysRemaining)
}
