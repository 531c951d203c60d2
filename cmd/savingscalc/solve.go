package main

import (
	"fmt"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/breakeven"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func solveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "solve [input-file]",
		Short: "Search the payment, yield or duration that reaches a goal",
		Long: `Solve varies one parameter of a scenario until the goal is met.

Goals:
  match_net_balance   reach --target-net (net of tax)
  maximize_net_gain   net balance plus withdrawals minus contributions
  minimize_cost_rate  total costs over total contributions

Examples:
  savingscalc solve scenario.yaml --target payment --target-net 20000000
  savingscalc solve scenario.yaml --all --goal maximize_net_gain`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("scenario")
			targetName, _ := cmd.Flags().GetString("target")
			goalName, _ := cmd.Flags().GetString("goal")
			targetNet, _ := cmd.Flags().GetString("target-net")
			trackName, _ := cmd.Flags().GetString("track")
			maxPayment, _ := cmd.Flags().GetString("max-payment")
			all, _ := cmd.Flags().GetBool("all")
			format, _ := cmd.Flags().GetString("format")

			goal, err := breakeven.ParseGoal(goalName)
			if err != nil {
				return err
			}
			track, err := parseTrack(trackName)
			if err != nil {
				return err
			}
			constraints := breakeven.Constraints{Track: track}
			if targetNet != "" {
				v, err := decimal.NewFromString(targetNet)
				if err != nil {
					return fmt.Errorf("invalid --target-net %q: %w", targetNet, err)
				}
				constraints.TargetNetBalance = &v
			}
			if maxPayment != "" {
				v, err := decimal.NewFromString(maxPayment)
				if err != nil {
					return fmt.Errorf("invalid --max-payment %q: %w", maxPayment, err)
				}
				constraints.MaxPayment = &v
			}

			format = strings.ToLower(format)
			if format != "table" && format != "json" {
				return fmt.Errorf("unknown format %q (table, json)", format)
			}

			a, err := newApp(cmd, "solve")
			if err != nil {
				return err
			}
			defer a.close()

			_, scenario, err := loadScenario(args[0], name, nil)
			if err != nil {
				return err
			}
			solver := breakeven.NewDefaultSolver(a.service)

			if all {
				result, err := solver.OptimizeAllTargets(cmd.Context(), scenario, constraints, goal)
				if err != nil {
					return err
				}
				a.logger.Debug("multi-dimensional solve finished", zap.Int("results", len(result.Results)))
				if format == "json" {
					out, err := (&breakeven.JSONFormatter{Pretty: true}).FormatMultiDimensional(result)
					if err != nil {
						return err
					}
					fmt.Fprintln(cmd.OutOrStdout(), out)
					return nil
				}
				fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).FormatMultiDimensional(result))
				return nil
			}

			target, err := breakeven.ParseTarget(targetName)
			if err != nil {
				return err
			}
			result, err := solver.Optimize(cmd.Context(), breakeven.OptimizationRequest{
				BaseScenario: scenario,
				Target:       target,
				Goal:         goal,
				Constraints:  constraints,
			})
			if err != nil {
				return err
			}
			a.logger.Debug("solve finished",
				zap.String("target", string(target)), zap.Int("iterations", result.Iterations), zap.Bool("success", result.Success))
			if format == "json" {
				out, err := (&breakeven.JSONFormatter{Pretty: true}).Format(result)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), out)
				return nil
			}
			fmt.Fprint(cmd.OutOrStdout(), (&breakeven.TableFormatter{}).Format(result))
			return nil
		},
	}
	cmd.Flags().StringP("scenario", "s", "", "Scenario name (default: the first scenario)")
	cmd.Flags().String("target", string(breakeven.OptimizePayment), "Parameter to vary (payment, yield, duration)")
	cmd.Flags().String("goal", string(breakeven.GoalMatchNetBalance), "Goal (match_net_balance, maximize_net_gain, minimize_cost_rate)")
	cmd.Flags().String("target-net", "", "Net balance to reach for match_net_balance")
	cmd.Flags().String("track", "main", "Track whose payment is varied (main, eseti)")
	cmd.Flags().String("max-payment", "", "Upper bound for the payment search")
	cmd.Flags().Bool("all", false, "Solve every target and rank the results")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json)")
	return cmd
}
