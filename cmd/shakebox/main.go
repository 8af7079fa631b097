package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/shakebox/internal/analysis"
	"github.com/san-kum/shakebox/internal/config"
	"github.com/san-kum/shakebox/internal/export"
	"github.com/san-kum/shakebox/internal/gui"
	"github.com/san-kum/shakebox/internal/material"
	"github.com/san-kum/shakebox/internal/metrics"
	"github.com/san-kum/shakebox/internal/motion"
	"github.com/san-kum/shakebox/internal/scene"
	"github.com/san-kum/shakebox/internal/shake"
	"github.com/san-kum/shakebox/internal/sim"
	"github.com/san-kum/shakebox/internal/storage"
	"github.com/san-kum/shakebox/internal/viz"
	"github.com/san-kum/shakebox/internal/world"
)

var (
	dataDir    string
	configFile string
	preset     string
	spheres    int
	dt         float64
	duration   float64
	seed       int64
	strength   float64
	threshold  float64
	tracePath  string
	numRuns    int
	slipFlag   bool
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "shakebox",
		Short: "interactive 3D physics demo: a box of bouncy spheres you can shake",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Default to the GUI when no command is given
			return runGUI(cmd, args)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".shakebox", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and record it",
		RunE:  runSimulation,
	}
	addSimFlags(runCmd)

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with the terminal visualization",
		RunE:  runLive,
	}
	addSimFlags(liveCmd)

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run with the raylib window",
		RunE:  runGUI,
	}
	addSimFlags(guiCmd)

	replayCmd := &cobra.Command{
		Use:   "replay [run_id]",
		Short: "replay a recorded run in the terminal",
		Args:  cobra.ExactArgs(1),
		RunE:  replayRun,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list recorded runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot center-of-mass height over time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the arena's bounce",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id] [file]",
		Short: "export a run's center-of-mass track to CSV",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			return st.ExportCSV(args[0], args[1])
		},
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id] [file]",
		Short: "export a run to a JSON document",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			return st.ExportJSON(args[0], args[1])
		},
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id] [file]",
		Short: "export a run's center-of-mass height plot as SVG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			heights, times, err := st.CenterHeights(args[0])
			if err != nil {
				return err
			}
			svg := export.HeightSVG(times, heights, 800, 400)
			if svg == "" {
				return fmt.Errorf("not enough data to plot")
			}
			return os.WriteFile(args[1], []byte(svg), 0644)
		},
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id] [file]",
		Short: "export a side view of a run's final frame as SVG",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			st := storage.New(dataDir)
			frames, _, err := st.LoadFrames(args[0])
			if err != nil {
				return err
			}
			if len(frames) == 0 {
				return fmt.Errorf("no frames recorded")
			}
			svg := export.SnapshotSVG(frames[len(frames)-1], scene.BuildPlanes(), scene.SphereRadius, 800, 800)
			return os.WriteFile(args[1], []byte(svg), 0644)
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-12s %d spheres, strength %.0f, threshold %.0f, %.0fs\n",
					name, p.Spheres, p.Strength, p.Threshold, p.Duration)
			}
			return nil
		},
	}

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same configuration across seeds and compare energy",
		RunE:  runSweep,
	}
	addSimFlags(sweepCmd)
	sweepCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	rootCmd.AddCommand(runCmd, liveCmd, guiCmd, replayCmd, listCmd, plotCmd, analyzeCmd, exportCSVCmd, exportJSONCmd, exportSVGCmd, snapshotCmd, presetsCmd, sweepCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addSimFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&spheres, "spheres", scene.DefaultSpheres, "number of spheres")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration (headless)")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().Float64Var(&strength, "strength", config.DefaultStrength, "shake strength")
	cmd.Flags().Float64Var(&threshold, "threshold", config.DefaultThreshold, "motion threshold")
	cmd.Flags().StringVar(&tracePath, "trace", "", "yaml motion trace to replay")
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().BoolVar(&slipFlag, "rubber-slips", false, "flip the rubber/slippery contact rule")
}

// resolveConfig merges preset, config file, and flags, flags winning.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		*cfg = *p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("spheres") {
		cfg.Spheres = spheres
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("strength") {
		cfg.Strength = strength
	}
	if cmd.Flags().Changed("threshold") {
		cfg.Threshold = threshold
	}
	if cmd.Flags().Changed("trace") {
		cfg.Trace = tracePath
	}
	if cfg.Seed == 0 || cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}

	return cfg, nil
}

// rig bundles one fully wired arena.
type rig struct {
	world    *world.World
	settings *shake.Settings
	injector *shake.Injector
	gate     *motion.Gate
	adapter  *motion.Adapter
	clock    *shake.ManualClock
}

// buildRig wires materials, scene, world, shake plumbing, and the motion
// gate. Headless rigs run on a manual clock; interactive ones on wall time.
func buildRig(cfg *config.Config, headless bool, log *zap.Logger) (*rig, error) {
	reg := material.NewRegistry()
	if err := material.Install(reg); err != nil {
		return nil, err
	}
	if slipFlag {
		reg.SetFlag(material.FlagRubberSlips, true)
	}

	w, err := world.New(reg, scene.Build(cfg.Spheres, cfg.Seed))
	if err != nil {
		return nil, err
	}

	settings := shake.NewSettings()
	settings.SetStrength(cfg.Strength)
	settings.SetThreshold(cfg.Threshold)

	var clk shake.Clock
	var manual *shake.ManualClock
	if headless {
		manual = shake.NewManualClock()
		clk = manual
	} else {
		clk = shake.WallClock()
	}

	pulse := shake.NewPulse(clk)
	injector := shake.NewInjector(settings, pulse, cfg.Seed)

	var src motion.Source
	if cfg.Trace != "" {
		src, err = motion.LoadTrace(cfg.Trace)
		if err != nil {
			return nil, err
		}
	} else if !headless {
		src = motion.NewWobbleSource(cfg.Seed)
	}

	return &rig{
		world:    w,
		settings: settings,
		injector: injector,
		gate:     motion.NewGate(src, log),
		adapter:  motion.NewAdapter(settings, pulse),
		clock:    manual,
	}, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	r, err := buildRig(cfg, true, log)
	if err != nil {
		return err
	}

	s := sim.New(r.world, r.injector)
	s.UseClock(r.clock)
	if cfg.Trace != "" {
		// a trace counts as user intent, grant without a gesture
		r.gate.Request(context.Background())
		s.UseMotion(r.gate, r.adapter)
	}
	s.AddMetric(metrics.NewKineticEnergy())
	s.AddMetric(metrics.NewPeakSpeed())
	s.AddMetric(metrics.NewShakeDuty(r.injector.Pulse()))

	log.Info("starting run",
		zap.Int("spheres", cfg.Spheres),
		zap.Float64("dt", cfg.Dt),
		zap.Float64("duration", cfg.Duration),
		zap.Int64("seed", cfg.Seed))

	start := time.Now()
	result, err := s.Run(context.Background(), sim.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Seed:     cfg.Seed,
		Triggers: cfg.Triggers,
	})
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := st.Save(cfg.Spheres, cfg.Dt, cfg.Duration, cfg.Seed, result)
	if err != nil {
		return err
	}

	log.Info("run complete",
		zap.String("run_id", runID),
		zap.Int("steps", result.StepsTaken),
		zap.Duration("elapsed", time.Since(start)))

	fmt.Printf("run id: %s\n", runID)
	fmt.Println("metrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	r, err := buildRig(cfg, false, nil)
	if err != nil {
		return err
	}

	m := viz.NewModel(r.world, r.settings, r.injector, r.gate, r.adapter, cfg.Dt)
	p := tea.NewProgram(m)
	_, err = p.Run()
	return err
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	r, err := buildRig(cfg, false, nil)
	if err != nil {
		return err
	}

	gui.Run(r.world, r.settings, r.injector, r.gate, r.adapter)
	return nil
}

func replayRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, times, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no frames to replay")
	}

	p := tea.NewProgram(viz.NewReplayModel(frames, times))
	_, err = p.Run()
	return err
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tSPHERES\tDURATION\tDT\tSEED")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Spheres,
			run.Duration,
			run.Dt,
			run.Seed,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	heights, _, err := st.CenterHeights(args[0])
	if err != nil {
		return err
	}
	if len(heights) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(heights))

	graph := asciigraph.Plot(heights,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("center-of-mass height"),
	)
	fmt.Println(graph)

	return nil
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}

	heights, _, err := st.CenterHeights(args[0])
	if err != nil {
		return err
	}
	if len(heights) < 4 {
		return fmt.Errorf("not enough data to analyze")
	}

	fmt.Printf("frequency analysis: %s\n\n", meta.ID)

	freqs, power := analysis.Spectrum(heights, meta.Dt)
	if len(power) == 0 {
		return fmt.Errorf("signal too short for a spectrum")
	}

	// the action lives in the low bins, plot the bottom quarter
	plotData := power
	if len(power) >= 16 {
		plotData = power[:len(power)/4]
	}
	graph := asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum, 0 to %.1f hz", freqs[len(plotData)-1])),
	)
	fmt.Println(graph)
	fmt.Println()

	dom := analysis.DominantFrequency(heights, meta.Dt)
	fmt.Printf("dominant frequency: %.3f hz\n", dom)
	if dom > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/dom)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	log, err := zap.NewProduction()
	if err != nil {
		return err
	}
	defer log.Sync()

	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	build := func(s int64) (*sim.Simulator, error) {
		c := *cfg
		c.Seed = s
		r, err := buildRig(&c, true, log)
		if err != nil {
			return nil, err
		}
		sm := sim.New(r.world, r.injector)
		sm.UseClock(r.clock)
		sm.AddMetric(metrics.NewKineticEnergy())
		sm.AddMetric(metrics.NewPeakSpeed())
		return sm, nil
	}

	ens := sim.NewEnsemble(build, numRuns, cfg.Seed)
	results, err := ens.Run(context.Background(), sim.Config{
		Dt:       cfg.Dt,
		Duration: cfg.Duration,
		Triggers: cfg.Triggers,
	})
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tMEAN_ENERGY\tPEAK_SPEED")
	for i, r := range results {
		fmt.Fprintf(w, "%d\t%.4f\t%.4f\n",
			cfg.Seed+int64(i), r.Metrics["kinetic_energy"], r.Metrics["peak_speed"])
	}
	return w.Flush()
}
