package main

import (
	"fmt"
	"os"
	"runtime/debug"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/calculation"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/domain"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/logging"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/projection"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/transform"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

// app carries the settings, logger and projection service of one command run
type app struct {
	settings *config.Settings
	logger   *zap.Logger
	service  *projection.Service
}

func newApp(cmd *cobra.Command, op string) (*app, error) {
	path, _ := cmd.Flags().GetString("settings")
	settings, err := config.LoadSettings(path)
	if err != nil {
		return nil, err
	}

	level := settings.Log.Level
	if debugMode, _ := cmd.Flags().GetBool("debug"); debugMode {
		level = "debug"
	}
	logger, err := logging.New(level, settings.Log.Format)
	if err != nil {
		return nil, err
	}

	engine := calculation.NewEngine()
	engine.SetLogger(logging.EngineLogger(logger, op))
	return &app{settings: settings, logger: logger, service: projection.NewService(engine)}, nil
}

func (a *app) close() {
	_ = a.logger.Sync()
}

// loadScenario reads a scenario file, picks one scenario and applies the
// given transform specs on a copy.
func loadScenario(path, name string, specs []string) (*config.Configuration, *domain.Scenario, error) {
	parser := config.NewInputParser()
	cfg, err := parser.LoadFromFile(path)
	if err != nil {
		return nil, nil, err
	}
	scenario, err := cfg.Scenario(name)
	if err != nil {
		return nil, nil, err
	}
	if len(specs) == 0 {
		return cfg, scenario, nil
	}

	transforms, err := transform.NewTransformRegistry().ParseTransformSpecs(specs)
	if err != nil {
		return nil, nil, err
	}
	modified, err := transform.ApplyTransforms(scenario, transforms)
	if err != nil {
		return nil, nil, err
	}
	if err := parser.ValidateScenario(modified); err != nil {
		return nil, nil, fmt.Errorf("transformed scenario is invalid: %w", err)
	}
	return cfg, modified, nil
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print version information",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "savingscalc %s (commit %s, built %s)\n", version, commit, date)
			if bi, ok := debug.ReadBuildInfo(); ok && bi != nil {
				fmt.Fprintln(cmd.OutOrStdout(), bi.Main.Path)
			}
		},
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "savingscalc",
		Short:         "Savings policy calculator CLI",
		Long:          "Projects unit-linked savings policies year by year: payments, costs, bonuses, tax credit, surrender value and net-of-tax balance",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.PersistentFlags().String("settings", "", "Path to a settings file (log, server, session)")
	root.PersistentFlags().Bool("debug", false, "Enable debug logging of the calculation")

	root.AddCommand(
		calculateCmd(),
		validateCmd(),
		productsCmd(),
		planCmd(),
		sessionCmd(),
		serveCmd(),
		compareCmd(),
		solveCmd(),
		versionCmd(),
	)
	return root
}

func main() {
	root := newRootCmd()
	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}
