package main

import (
	"fmt"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/output"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/product"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

func calculateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "calculate [input-file]",
		Short: "Project a savings scenario",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := newApp(cmd, "calculate")
			if err != nil {
				return err
			}
			defer a.close()

			name, _ := cmd.Flags().GetString("scenario")
			specs, _ := cmd.Flags().GetStringArray("transform")
			useSession, _ := cmd.Flags().GetBool("session")
			format, _ := cmd.Flags().GetString("format")
			outDir, _ := cmd.Flags().GetString("output")

			formatter := output.GetFormatterByName(format)
			if formatter == nil {
				return fmt.Errorf("unknown format %q (available: %s)", format, strings.Join(output.AvailableFormatterNames(), ", "))
			}

			_, scenario, err := loadScenario(args[0], name, specs)
			if err != nil {
				return err
			}

			if useSession {
				sess, closeStore, err := openSession(a.settings.Session, "")
				if err != nil {
					return err
				}
				defer closeStore()
				if err := sess.Hydrate(cmd.Context()); err != nil {
					return err
				}
				scenario = sess.Apply(scenario)
				a.logger.Debug("applied session overrides",
					zap.String("session", sess.ID()), zap.Strings("overrides", sess.Overrides().Names()))
			}

			result, err := a.service.Run(cmd.Context(), scenario)
			if err != nil {
				return err
			}

			if outDir != "" {
				path, err := output.WriteFormatted(formatter, result, outDir)
				if err != nil {
					return err
				}
				a.logger.Info("report written", zap.String("path", path), zap.String("format", formatter.Name()))
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", path)
				return nil
			}

			data, err := formatter.Format(result)
			if err != nil {
				return err
			}
			_, err = cmd.OutOrStdout().Write(data)
			return err
		},
	}
	cmd.Flags().StringP("format", "f", "console", "Output format ("+strings.Join(output.AvailableFormatterNames(), ", ")+")")
	cmd.Flags().StringP("output", "o", "", "Write the report into this directory instead of stdout")
	cmd.Flags().StringP("scenario", "s", "", "Scenario name (default: the first scenario)")
	cmd.Flags().StringArrayP("transform", "t", nil, "Transform spec applied before the run, e.g. set_yield:percent=4 (repeatable)")
	cmd.Flags().Bool("session", false, "Apply the stored session overrides")
	return cmd
}

func validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate [input-file]",
		Short: "Validate a scenario file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid: %d scenario(s): %s\n",
				args[0], len(cfg.Scenarios), strings.Join(cfg.Names(), ", "))
			return nil
		},
	}
}

func productsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "products",
		Short: "List the built-in products and their variants",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			rows := [][]string{}
			for _, d := range product.DefaultRegistry().Catalog() {
				rows = append(rows, []string{string(d.ID), d.Name, d.DefaultVariant, strings.Join(d.Variants, ", ")})
			}
			t := table.New().
				Headers("ID", "Name", "Default", "Variants").
				Rows(rows...)
			fmt.Fprintln(cmd.OutOrStdout(), t.Render())
		},
	}
}

func planCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "plan [input-file]",
		Short: "Show the yearly payment and withdrawal plan of a track",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, _ := cmd.Flags().GetString("scenario")
			trackName, _ := cmd.Flags().GetString("track")

			_, scenario, err := loadScenario(args[0], name, nil)
			if err != nil {
				return err
			}
			track, err := parseTrack(trackName)
			if err != nil {
				return err
			}
			if scenario.TrackSettingsFor(track) == nil {
				return fmt.Errorf("scenario %s has no %s track", scenario.Name, track)
			}

			in, yearly := projection.BuildInputs(scenario, track)
			rows := make([][]string, 0, yearly.Years())
			for year := 1; year <= yearly.Years(); year++ {
				rows = append(rows, []string{
					fmt.Sprintf("%d", year),
					yearly.IndexEffective[year].StringFixed(2) + "%",
					output.FormatCurrency(in.PaymentsByYear[year], scenario.Currency),
					output.FormatCurrency(in.WithdrawalsByYear[year], scenario.Currency),
				})
			}
			t := table.New().Headers("Year", "Index", "Payment", "Withdrawal").Rows(rows...)
			fmt.Fprintf(cmd.OutOrStdout(), "%s: %s track plan\n%s\n", scenario.Name, track, t.Render())
			return nil
		},
	}
	cmd.Flags().StringP("scenario", "s", "", "Scenario name (default: the first scenario)")
	cmd.Flags().String("track", string(domain.TrackMain), "Track to plan (main, eseti)")
	return cmd
}

func parseTrack(raw string) (domain.Track, error) {
	track := domain.Track(strings.ToLower(strings.TrimSpace(raw)))
	switch track {
	case domain.TrackMain, domain.TrackEseti:
		return track, nil
	}
	return "", fmt.Errorf("unknown track %q (main, eseti)", raw)
}
