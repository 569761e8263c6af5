package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/charmbracelet/log"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/circlesim/internal/automation"
	"github.com/san-kum/circlesim/internal/config"
	"github.com/san-kum/circlesim/internal/dynamo"
	"github.com/san-kum/circlesim/internal/export"
	"github.com/san-kum/circlesim/internal/gui"
	"github.com/san-kum/circlesim/internal/metrics"
	"github.com/san-kum/circlesim/internal/optim"
	"github.com/san-kum/circlesim/internal/physics"
	"github.com/san-kum/circlesim/internal/sim"
	"github.com/san-kum/circlesim/internal/storage"
	"github.com/san-kum/circlesim/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	logLevel   string

	// world overrides, applied only when set on the command line
	bodies       int
	seed         int64
	dt           float64
	ticks        int
	targetFPS    int
	initialSpeed float64
	twoPhase     bool
	scenarioFile string

	outFile   string
	atTick    int
	bodyIndex int

	sweepParam string
	sweepMin   float64
	sweepMax   float64
	sweepSteps int

	trials    int
	threshold float64

	grid   []string
	metric string

	logger *log.Logger
)

// main registers commands and flags and runs the root command. With no
// subcommand it opens the window.
func main() {
	rootCmd := &cobra.Command{
		Use:           "circlesim",
		Short:         "interactive circle collision sandbox",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogger()
		},
		RunE: runGUI,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".circlesim", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "default", "preset configuration")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", config.DefaultLogLevel, "debug, info, warn or error")
	addWorldFlags(rootCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "open the simulation window",
		RunE:  runGUI,
	}
	addWorldFlags(guiCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the simulation in the terminal",
		RunE:  runLive,
	}
	addWorldFlags(liveCmd)

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless and record the trajectory",
		RunE:  runHeadless,
	}
	addWorldFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot energy and overlaps of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export a run as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export a run as CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a frame as SVG",
		RunE:  snapshot,
	}
	addWorldFlags(snapshotCmd)
	snapshotCmd.Flags().IntVar(&atTick, "at", 0, "tick to render (0 = startup population)")
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "snapshot.svg", "output file")

	trailCmd := &cobra.Command{
		Use:   "trail [run_id]",
		Short: "render one body's path from a run as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  trail,
	}
	trailCmd.Flags().IntVar(&bodyIndex, "body", 0, "body id")
	trailCmd.Flags().StringVarP(&outFile, "out", "o", "trail.svg", "output file")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}
	presetsCmd.Flags().StringVarP(&outFile, "out", "o", "", "write the --preset config to this yaml file")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "measure ticks per second for several body counts",
		RunE:  bench,
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the world across a range of one parameter",
		RunE:  sweep,
	}
	addWorldFlags(sweepCmd)
	sweepCmd.Flags().StringVar(&sweepParam, "param", "damping", "parameter to sweep")
	sweepCmd.Flags().Float64Var(&sweepMin, "min", 0.95, "first value")
	sweepCmd.Flags().Float64Var(&sweepMax, "max", 1.0, "last value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 6, "number of values")

	monteCarloCmd := &cobra.Command{
		Use:   "montecarlo",
		Short: "run the world under many random seeds",
		RunE:  monteCarlo,
	}
	addWorldFlags(monteCarloCmd)
	monteCarloCmd.Flags().IntVar(&trials, "trials", 20, "number of trials")
	monteCarloCmd.Flags().Float64Var(&threshold, "threshold", 50, "speed above which a trial counts as unstable")

	tuneCmd := &cobra.Command{
		Use:   "tune",
		Short: "grid search config parameters for the lowest metric",
		RunE:  tune,
	}
	addWorldFlags(tuneCmd)
	tuneCmd.Flags().StringArrayVar(&grid, "grid", nil, "param=v1,v2,... (repeatable)")
	tuneCmd.Flags().StringVar(&metric, "metric", "energy_drift", "metric to minimise")

	rootCmd.AddCommand(guiCmd, liveCmd, runCmd, listCmd, plotCmd, exportJSONCmd, exportCSVCmd,
		snapshotCmd, trailCmd, presetsCmd, benchCmd, sweepCmd, monteCarloCmd, tuneCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		if logger != nil {
			logger.Error("command failed", "err", err)
		} else {
			fmt.Fprintln(os.Stderr, "error:", err)
		}
		stop()
		os.Exit(1)
	}
}

func addWorldFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&bodies, "bodies", config.DefaultBodies, "number of bodies")
	f.Int64Var(&seed, "seed", config.DefaultSeed, "random seed for the startup population")
	f.Float64Var(&dt, "dt", config.DefaultDt, "milliseconds per headless tick")
	f.IntVar(&ticks, "ticks", config.DefaultTicks, "headless ticks")
	f.IntVar(&targetFPS, "fps", config.DefaultTargetFPS, "target frame rate")
	f.Float64Var(&initialSpeed, "speed", 0, "upper bound of random initial speed")
	f.BoolVar(&twoPhase, "two-phase", false, "detect all overlaps before separating")
	f.StringVar(&scenarioFile, "scenario", "", "scripted pointer events (yaml)")
}

func setupLogger() error {
	level, err := log.ParseLevel(logLevel)
	if err != nil {
		return fmt.Errorf("log level %q: %w", logLevel, err)
	}
	logger = log.NewWithOptions(os.Stderr, log.Options{
		Level:           level,
		Prefix:          "circlesim",
		ReportTimestamp: true,
		TimeFormat:      time.TimeOnly,
	})
	return nil
}

// loadConfig resolves the world: the preset, or the config file when one
// is given, then any flags set on the command line.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	var err error
	if configFile != "" {
		cfg, err = config.Load(configFile)
	} else {
		cfg, err = config.GetPreset(preset)
	}
	if err != nil {
		return nil, err
	}

	f := cmd.Flags()
	if f.Changed("bodies") {
		cfg.Bodies = bodies
	}
	if f.Changed("seed") {
		cfg.Seed = seed
	}
	if f.Changed("dt") {
		cfg.Dt = dt
	}
	if f.Changed("ticks") {
		cfg.Ticks = ticks
	}
	if f.Changed("fps") {
		cfg.TargetFPS = targetFPS
	}
	if f.Changed("speed") {
		cfg.InitialSpeed = initialSpeed
	}
	if f.Changed("two-phase") {
		cfg.TwoPhase = twoPhase
	}
	if f.Changed("scenario") {
		cfg.Scenario = scenarioFile
	}

	if !cmd.Flags().Changed("log-level") && cfg.LogLevel != "" {
		if level, err := log.ParseLevel(cfg.LogLevel); err == nil {
			logger.SetLevel(level)
		}
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.Debug("config resolved", "preset", preset, "file", configFile, "bodies", cfg.Bodies,
		"seed", cfg.Seed, "two_phase", cfg.TwoPhase)
	return cfg, nil
}

func buildEngine(cmd *cobra.Command) (*sim.Engine, *config.Config, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, nil, err
	}
	engine, err := sim.Build(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return engine, cfg, nil
}

func runGUI(cmd *cobra.Command, args []string) error {
	engine, cfg, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	return gui.Run(engine, cfg, logger)
}

func runLive(cmd *cobra.Command, args []string) error {
	engine, cfg, err := buildEngine(cmd)
	if err != nil {
		return err
	}
	return viz.Run(engine, cfg, logger)
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	var sc *automation.Scenario
	if cfg.Scenario != "" {
		sc, err = automation.LoadScenario(cfg.Scenario)
		if err != nil {
			return err
		}
		logger.Info("scenario loaded", "name", sc.Name, "events", len(sc.Events))
	}

	result, runErr := automation.Run(cmd.Context(), cfg, sc, logger)
	if result == nil {
		return runErr
	}

	st := storage.New(dataDir, logger)
	if err := st.Init(); err != nil {
		return err
	}

	name := preset
	if configFile != "" {
		name = strings.TrimSuffix(filepath.Base(configFile), filepath.Ext(configFile))
	}
	meta := storage.RunMetadata{Name: name, Config: cfg, Scenario: cfg.Scenario}
	runID, err := st.Save(meta, result)
	if err != nil {
		return errors.Join(runErr, err)
	}

	fmt.Printf("run: %s\n", runID)
	fmt.Printf("ticks: %d\n\n", result.StepsTaken)
	printMetrics(os.Stdout, result.Metrics)

	return runErr
}

func printMetrics(out io.Writer, m map[string]float64) {
	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "METRIC\tVALUE")
	for _, metric := range metrics.Standard() {
		if v, ok := m[metric.Name()]; ok {
			fmt.Fprintf(w, "%s\t%.4f\n", metric.Name(), v)
		}
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTIME\tBODIES\tTICKS\tDT\tSCENARIO")

	for _, run := range runs {
		dtMs := 0.0
		if run.Config != nil {
			dtMs = run.Config.Dt
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%.2fms\t%s\n",
			run.ID,
			run.Name,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			len(run.Radii),
			run.Ticks,
			dtMs,
			run.Scenario,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir, logger)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	states, _, err := st.LoadStates(runID)
	if err != nil {
		return err
	}

	if len(states) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("bodies: %d\n", len(meta.Radii))
	fmt.Printf("samples: %d\n\n", len(states))

	energy := make([]float64, len(states))
	overlaps := make([]float64, len(states))
	for i, bodies := range states {
		energy[i] = metrics.TotalKineticEnergy(bodies)
		overlaps[i] = float64(len(physics.DetectOverlaps(bodies)) / 2)
	}

	for _, series := range []struct {
		data    []float64
		caption string
	}{
		{energy, "kinetic energy"},
		{overlaps, "overlapping pairs after resolution"},
	} {
		graph := asciigraph.Plot(series.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(series.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}

	return nil
}

func openOut() (io.Writer, func() error, error) {
	if outFile == "" {
		return os.Stdout, func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	w, closeOut, err := openOut()
	if err != nil {
		return err
	}
	if err := storage.ExportJSON(w, meta, states, times); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func exportCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	states, times, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	w, closeOut, err := openOut()
	if err != nil {
		return err
	}
	if err := storage.ExportCSV(w, states, times); err != nil {
		closeOut()
		return err
	}
	return closeOut()
}

func snapshot(cmd *cobra.Command, args []string) error {
	engine, cfg, err := buildEngine(cmd)
	if err != nil {
		return err
	}

	frame := engine.Frame()
	for i := 0; i < atTick; i++ {
		frame = engine.Tick(dynamo.Input{Dt: cfg.Dt})
	}

	svg := export.FrameToSVG(frame, cfg.Bounds())
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("snapshot written", "path", outFile, "tick", frame.Tick, "contacts", len(frame.Pairs))
	return nil
}

func trail(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir, logger)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	states, _, err := st.LoadStates(args[0])
	if err != nil {
		return err
	}

	points := make([]dynamo.Vec2, 0, len(states))
	for _, bodies := range states {
		if bodyIndex < 0 || bodyIndex >= len(bodies) {
			return fmt.Errorf("run %s has no body %d", meta.ID, bodyIndex)
		}
		points = append(points, bodies[bodyIndex].Pos)
	}

	bounds := dynamo.DefaultBounds()
	if meta.Config != nil {
		bounds = meta.Config.Bounds()
	}
	svg := export.TrajectoryToSVG(points, bounds, "#00ff88")
	if svg == "" {
		return fmt.Errorf("run %s is too short to draw", meta.ID)
	}
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	logger.Info("trail written", "path", outFile, "body", bodyIndex, "points", len(points))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	if outFile != "" {
		cfg, err := config.GetPreset(preset)
		if err != nil {
			return err
		}
		if err := config.Save(outFile, cfg); err != nil {
			return err
		}
		fmt.Printf("wrote %s preset to %s\n", preset, outFile)
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tBODIES\tRADIUS\tSPEED\tDAMPING")
	for _, name := range config.ListPresets() {
		cfg, err := config.GetPreset(name)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%.0f-%.0f\t%.2f\t%.3f\n",
			name, cfg.Bodies, cfg.MinRadius, cfg.MaxRadius, cfg.InitialSpeed, cfg.Damping)
	}
	return w.Flush()
}

func bench(cmd *cobra.Command, args []string) error {
	counts := []int{10, 20, 50, 100, 200}
	const benchTicks = 500

	fmt.Printf("benchmarking %d ticks per world\n\n", benchTicks)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "BODIES\tMODE\tTIME\tTICKS/SEC\tCONTACTS/TICK")

	for _, n := range counts {
		for _, two := range []bool{false, true} {
			cfg := config.DefaultConfig()
			cfg.Bodies = n
			cfg.InitialSpeed = 1
			cfg.TwoPhase = two
			cfg.Seed = 42

			engine, err := sim.Build(cfg, nil)
			if err != nil {
				return err
			}
			s := sim.New(engine, nil)
			contacts := metrics.NewContacts()
			s.AddMetric(contacts)

			start := time.Now()
			if _, err := s.Run(context.Background(), sim.RunConfig{Dt: cfg.Dt, Ticks: benchTicks}); err != nil {
				return err
			}
			elapsed := time.Since(start)

			mode := "interleaved"
			if two {
				mode = "two-phase"
			}
			fmt.Fprintf(w, "%d\t%s\t%v\t%.0f\t%.1f\n",
				n, mode, elapsed.Round(time.Microsecond), benchTicks/elapsed.Seconds(), contacts.Value())
		}
	}

	return w.Flush()
}

func sweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	results, err := automation.RunSweep(cmd.Context(), &automation.ParameterSweep{
		Base:      cfg,
		ParamName: sweepParam,
		ParamMin:  sweepMin,
		ParamMax:  sweepMax,
		NumSteps:  sweepSteps,
	}, logger)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tFINAL KE\tMEAN KE\tCONTACTS\tMAX SPEED\n", strings.ToUpper(sweepParam))
	for _, r := range results {
		fmt.Fprintf(w, "%.4f\t%.2f\t%.2f\t%.2f\t%.3f\n",
			r.ParamValue, r.FinalEnergy, r.MeanEnergy, r.MeanContacts, r.MaxSpeed)
	}
	return w.Flush()
}

func monteCarlo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	mcSeed := int64(0)
	if cmd.Flags().Changed("seed") {
		mcSeed = seed
	}
	results, err := automation.RunMonteCarlo(cmd.Context(), &automation.MonteCarloConfig{
		Base:           cfg,
		NumTrials:      trials,
		Seed:           mcSeed,
		SpeedThreshold: threshold,
	}, logger)
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}

	stable, unstable := automation.MonteCarloStats(results)
	fmt.Printf("trials: %d  stable: %d  unstable: %d\n", len(results), stable, unstable)
	return err
}

func tune(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if len(grid) == 0 {
		return fmt.Errorf("at least one --grid is required")
	}

	names := make([]string, 0, len(grid))
	ranges := make([][]float64, 0, len(grid))
	for _, spec := range grid {
		name, list, ok := strings.Cut(spec, "=")
		if !ok || list == "" {
			return fmt.Errorf("grid %q: want param=v1,v2,...", spec)
		}
		var values []float64
		for _, field := range strings.Split(list, ",") {
			v, err := strconv.ParseFloat(strings.TrimSpace(field), 64)
			if err != nil {
				return fmt.Errorf("grid %q: %w", spec, err)
			}
			values = append(values, v)
		}
		names = append(names, strings.TrimSpace(name))
		ranges = append(ranges, values)
	}

	best, value, err := optim.NewGridSearch(names, ranges, logger).Search(cmd.Context(), cfg, metric)
	if err != nil {
		return err
	}

	keys := make([]string, 0, len(best))
	for k := range best {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM\tVALUE")
	for _, k := range keys {
		fmt.Fprintf(w, "%s\t%g\n", k, best[k])
	}
	fmt.Fprintf(w, "%s\t%.6f\n", metric, value)
	return w.Flush()
}
