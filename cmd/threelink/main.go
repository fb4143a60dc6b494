package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/san-kum/threelink/internal/config"
	"github.com/san-kum/threelink/internal/equilibrium"
	"github.com/san-kum/threelink/internal/mechanism"
	"github.com/san-kum/threelink/internal/report"
	"github.com/san-kum/threelink/internal/sweep"
	"github.com/san-kum/threelink/internal/viz"
)

var (
	preset    string
	solver    string
	tolerance float64
	overrides map[string]string
	format    string
	strict    bool
	verbose   bool
	// sweep
	sweepFrom    float64
	sweepTo      float64
	sweepSteps   int
	sweepWorkers int
	sweepUnknown string
	plotWidth    int
	plotHeight   int
	// params
	paramsTable bool
)

// main registers the threelink commands and runs the root command, which solves
// the selected parameter set when no subcommand is given.
// It exits the process with status 1 if command execution returns an error.
func main() {
	rootCmd := &cobra.Command{
		Use:           "threelink",
		Short:         "equilibrium solver for a three-link arm",
		RunE:          runSolve,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&preset, "preset", config.DefaultPreset, "built-in parameter set")
	flags.StringVar(&solver, "solver", config.DefaultSolver, "linear solver (lu, exact)")
	flags.Float64Var(&tolerance, "tol", config.DefaultTolerance, "absolute residual tolerance")
	flags.StringToStringVar(&overrides, "set", nil, "override parameters, NAME=VALUE")
	flags.StringVar(&format, "format", config.DefaultFormat, "output format (text, json, yaml)")
	flags.BoolVar(&strict, "strict", false, "fail when any equation exceeds the tolerance")
	flags.BoolVarP(&verbose, "verbose", "v", false, "debug logging")

	solveCmd := &cobra.Command{
		Use:   "solve",
		Short: "solve the equilibrium equations",
		Args:  cobra.NoArgs,
		RunE:  runSolve,
	}

	paramsCmd := &cobra.Command{
		Use:   "params",
		Short: "print the effective parameters",
		Args:  cobra.NoArgs,
		RunE:  printParams,
	}
	paramsCmd.Flags().BoolVar(&paramsTable, "table", false, "print a table instead of yaml")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in parameter sets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			for _, name := range config.ListPresets() {
				fmt.Fprintf(w, "%s\t%s\n", name, config.GetPreset(name).Description)
			}
			return w.Flush()
		},
	}

	systemCmd := &cobra.Command{
		Use:   "system",
		Short: "print the coefficient matrix and right-hand side",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			return report.WriteSystem(os.Stdout, mechanism.Build(cfg.Params))
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep [param]",
		Short: "solve across a range of one parameter",
		Args:  cobra.ExactArgs(1),
		RunE:  runSweep,
	}
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 0, "first value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 21, "number of grid points")
	sweepCmd.Flags().IntVar(&sweepWorkers, "workers", 0, "parallel solves (0 = GOMAXPROCS)")
	sweepCmd.Flags().StringVar(&sweepUnknown, "unknown", mechanism.AlphaB.String(), "unknown to plot")
	sweepCmd.Flags().IntVar(&plotWidth, "width", 60, "plot width")
	sweepCmd.Flags().IntVar(&plotHeight, "height", 12, "plot height")

	exploreCmd := &cobra.Command{
		Use:   "explore",
		Short: "interactively vary parameters and watch the solution",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig()
			if err != nil {
				return err
			}
			p := tea.NewProgram(viz.NewExplorer(cfg.Params, cfg.Options()), tea.WithAltScreen())
			_, err = p.Run()
			return err
		},
	}

	rootCmd.AddCommand(solveCmd, paramsCmd, presetsCmd, systemCmd, sweepCmd, exploreCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "error:", err)
		os.Exit(1)
	}
}

func newLogger() *slog.Logger {
	level := slog.LevelWarn
	if verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
}

// loadConfig applies the preset, then --set overrides, on top of the defaults.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()
	if err := cfg.ApplyPreset(preset); err != nil {
		return nil, err
	}
	if err := cfg.ApplyOverrides(overrides); err != nil {
		return nil, err
	}
	cfg.Solver = solver
	cfg.Tolerance = tolerance
	cfg.Format = format
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return cfg, nil
}

func runSolve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	log := newLogger()
	log.Debug("configuration", "preset", cfg.Preset, "solver", cfg.Solver, "tolerance", cfg.Tolerance, "overrides", len(overrides))

	opts := cfg.Options()
	opts.Logger = log
	res, err := equilibrium.Solve(cfg.Params, opts)
	if err != nil {
		return err
	}

	if err := report.Write(os.Stdout, cfg.Format, res); err != nil {
		return fmt.Errorf("write report: %w", err)
	}
	if strict {
		return res.Verification.Err()
	}
	return nil
}

func printParams(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	if !paramsTable {
		out, err := config.Marshal(cfg)
		if err != nil {
			return err
		}
		_, err = os.Stdout.Write(out)
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tVALUE\tUNIT\tARM\tDESCRIPTION")
	for _, f := range mechanism.Fields() {
		v, _ := cfg.Params.Get(f.Name)
		arm := "-"
		if f.Arm > 0 {
			arm = fmt.Sprint(f.Arm)
		}
		fmt.Fprintf(w, "%s\t%g\t%s\t%s\t%s\n", f.Name, v, f.Unit, arm, f.Desc)
	}
	return w.Flush()
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	u, ok := mechanism.ParseUnknown(sweepUnknown)
	if !ok {
		return fmt.Errorf("unknown quantity: %s (available: %v)", sweepUnknown, mechanism.UnknownNames())
	}

	from, to := sweepFrom, sweepTo
	if !cmd.Flags().Changed("from") && !cmd.Flags().Changed("to") {
		// default to ±50% around the current value
		v, err := cfg.Params.Get(args[0])
		if err != nil {
			return err
		}
		from, to = v*0.5, v*1.5
		if v == 0 {
			from, to = -1, 1
		}
	}

	opts := cfg.Options()
	opts.Logger = newLogger()
	spec := sweep.Spec{
		Param:   args[0],
		From:    from,
		To:      to,
		Steps:   sweepSteps,
		Workers: sweepWorkers,
		Options: opts,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	points, err := sweep.Run(ctx, cfg.Params, spec)
	if err != nil {
		return err
	}

	if err := viz.WriteSweepTable(os.Stdout, points, spec.Param, []mechanism.Unknown{u}); err != nil {
		return err
	}
	if n := sweep.Failed(points); n > 0 {
		fmt.Printf("\n%d of %d points could not be solved\n", n, len(points))
	}

	graph, err := viz.PlotSweep(points, spec.Param, u, plotWidth, plotHeight)
	if err != nil {
		return err
	}
	fmt.Println()
	fmt.Println(strings.TrimRight(graph, "\n"))
	return nil
}
