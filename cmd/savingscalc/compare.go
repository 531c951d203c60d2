package main

import (
	"fmt"
	"strings"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/compare"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/transform"
	"github.com/spf13/cobra"
)

func compareCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "compare [input-file]",
		Short: "Compare a base scenario against templates or other scenarios",
		Long: `Compare runs the base scenario and one alternative per template (--with)
or per named scenario of the same file (--scenarios), and ranks them by net balance, costs and taxes.

Examples:
  savingscalc compare scenario.yaml --with yield_low,yield_high
  savingscalc compare scenario.yaml --base base --scenarios pension
  savingscalc compare --list-templates`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if list, _ := cmd.Flags().GetBool("list-templates"); list {
				fmt.Fprint(cmd.OutOrStdout(), transform.GetTemplateHelp(transform.CreateBuiltInTemplates()))
				return nil
			}
			if len(args) != 1 {
				return fmt.Errorf("compare requires an input file")
			}

			baseName, _ := cmd.Flags().GetString("base")
			with, _ := cmd.Flags().GetString("with")
			scenarios, _ := cmd.Flags().GetString("scenarios")
			format, _ := cmd.Flags().GetString("format")
			compact, _ := cmd.Flags().GetBool("compact")

			templates := transform.ParseTemplateList(with)
			alternatives := transform.ParseTemplateList(scenarios)
			if len(templates) == 0 && len(alternatives) == 0 {
				return fmt.Errorf("specify --with templates or --scenarios to compare against")
			}

			a, err := newApp(cmd, "compare")
			if err != nil {
				return err
			}
			defer a.close()

			cfg, err := config.NewInputParser().LoadFromFile(args[0])
			if err != nil {
				return err
			}

			engine := compare.NewCompareEngine(a.service)
			var set *compare.ComparisonSet
			if len(templates) > 0 {
				set, err = engine.Compare(cmd.Context(), cfg, compare.CompareOptions{
					BaseScenarioName: baseName,
					Templates:        templates,
				})
			} else {
				set, err = engine.CompareScenarios(cmd.Context(), cfg, baseName, alternatives)
			}
			if err != nil {
				return err
			}
			set.ConfigPath = args[0]

			out, err := renderComparison(set, format, compact)
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), out)
			return nil
		},
	}
	cmd.Flags().String("base", "", "Base scenario name (default: the first scenario)")
	cmd.Flags().String("with", "", "Comma-separated templates to apply to the base")
	cmd.Flags().String("scenarios", "", "Comma-separated scenarios of the file to compare against the base")
	cmd.Flags().StringP("format", "f", "table", "Output format (table, json, csv)")
	cmd.Flags().Bool("compact", false, "One-line summary instead of the full table")
	cmd.Flags().Bool("list-templates", false, "List the built-in templates and exit")
	return cmd
}

func renderComparison(set *compare.ComparisonSet, format string, compact bool) (string, error) {
	switch strings.ToLower(format) {
	case "", "table":
		tf := &compare.TableFormatter{}
		if compact {
			return tf.FormatCompact(set) + "\n", nil
		}
		return tf.Format(set), nil
	case "json":
		return (&compare.JSONFormatter{Pretty: true}).Format(set)
	case "csv":
		return (&compare.CSVFormatter{}).Format(set)
	}
	return "", fmt.Errorf("unknown format %q (table, json, csv)", format)
}
