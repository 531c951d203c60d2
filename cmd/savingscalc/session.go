package main

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/config"
	"github.com/Kisszorleny/Dinamikus-Megtakar-t-s-PRO-UI-2-Allianz--sub000/internal/session"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// openSession opens the configured store. An empty path keeps the
// overrides in memory for the lifetime of the command.
func openSession(settings config.SessionSettings, id string) (*session.Session, func(), error) {
	if id == "" {
		id = settings.ID
	}
	if settings.Path == "" {
		return session.New(session.NewMemoryStore(), id), func() {}, nil
	}
	store, err := session.NewSQLiteStore(settings.Path)
	if err != nil {
		return nil, nil, err
	}
	return session.New(store, id), func() { _ = store.Close() }, nil
}

func sessionCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "session",
		Short: "Manage persisted per-year overrides",
	}
	cmd.PersistentFlags().String("id", "", "Session id (default: session.id setting)")

	set := &cobra.Command{
		Use:   "set <track> <field> <year> <value>",
		Short: "Store one per-year override",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, sess, done, err := sessionFor(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			defer done()

			track, err := parseTrack(args[0])
			if err != nil {
				return err
			}
			field, err := session.ParseField(args[1])
			if err != nil {
				return err
			}
			year, err := strconv.Atoi(args[2])
			if err != nil || year < 1 {
				return fmt.Errorf("invalid year %q", args[2])
			}
			value, err := decimal.NewFromString(args[3])
			if err != nil {
				return fmt.Errorf("invalid value %q: %w", args[3], err)
			}
			if err := sess.SetOverride(cmd.Context(), track, field, year, value); err != nil {
				return err
			}
			a.logger.Info("override stored", zap.String("session", sess.ID()),
				zap.String("track", string(track)), zap.String("field", string(field)), zap.Int("year", year))
			fmt.Fprintf(cmd.OutOrStdout(), "%s.%s[%d] = %s\n", track, field, year, value.String())
			return nil
		},
	}

	clearCmd := &cobra.Command{
		Use:   "clear <track> <field> [year]",
		Short: "Remove one override, or the whole field when no year is given",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, sess, done, err := sessionFor(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			defer done()

			track, err := parseTrack(args[0])
			if err != nil {
				return err
			}
			field, err := session.ParseField(args[1])
			if err != nil {
				return err
			}
			year := 0
			if len(args) == 3 {
				if year, err = strconv.Atoi(args[2]); err != nil || year < 1 {
					return fmt.Errorf("invalid year %q", args[2])
				}
			}
			if err := sess.ClearOverride(cmd.Context(), track, field, year); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "cleared %s.%s\n", track, field)
			return nil
		},
	}

	show := &cobra.Command{
		Use:   "show",
		Short: "List the stored overrides",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, sess, done, err := sessionFor(cmd)
			if err != nil {
				return err
			}
			defer a.close()
			defer done()

			overrides := sess.Overrides()
			if len(overrides) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "session %s has no overrides\n", sess.ID())
				return nil
			}
			rows := [][]string{}
			for _, name := range overrides.Names() {
				values := overrides[name]
				for _, year := range sortedYears(values) {
					rows = append(rows, []string{name, strconv.Itoa(year), values[year].String()})
				}
			}
			t := table.New().Headers("Override", "Year", "Value").Rows(rows...)
			fmt.Fprintf(cmd.OutOrStdout(), "session %s\n%s\n", sess.ID(), t.Render())
			return nil
		},
	}

	cmd.AddCommand(set, clearCmd, show)
	return cmd
}

func sessionFor(cmd *cobra.Command) (*app, *session.Session, func(), error) {
	a, err := newApp(cmd, "session")
	if err != nil {
		return nil, nil, nil, err
	}
	id, _ := cmd.Flags().GetString("id")
	sess, done, err := openSession(a.settings.Session, id)
	if err != nil {
		a.close()
		return nil, nil, nil, err
	}
	if err := sess.Hydrate(cmd.Context()); err != nil {
		done()
		a.close()
		return nil, nil, nil, err
	}
	return a, sess, done, nil
}

func sortedYears(values map[int]decimal.Decimal) []int {
	years := make([]int, 0, len(values))
	for y := range values {
		years = append(years, y)
	}
	sort.Ints(years)
	return years
}
