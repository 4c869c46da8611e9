package main

import (
	"context"
	"fmt"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/bouncelab/internal/config"
	"github.com/san-kum/bouncelab/internal/export"
	"github.com/san-kum/bouncelab/internal/metrics"
	"github.com/san-kum/bouncelab/internal/sim"
	"github.com/san-kum/bouncelab/internal/store"
	"github.com/san-kum/bouncelab/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	balls      int
	ticks      int
	dt         float64
	gravity    bool
	seed       int64
	sample     int
	exportPath string
	numRuns    int
	svgPath    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "bouncelab",
		Short: "interactive bouncing-ball physics sandbox",
		RunE:  runLive,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".bouncelab", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "preset configuration")
	rootCmd.PersistentFlags().IntVar(&balls, "balls", config.DefaultBalls, "initial ball count")
	rootCmd.PersistentFlags().BoolVar(&gravity, "gravity", false, "start with gravity on")
	rootCmd.PersistentFlags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the interactive sandbox",
		RunE:  runLive,
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a headless simulation and store the result",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "frames to simulate")
	runCmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep in frames")
	runCmd.Flags().IntVar(&sample, "sample", 60, "snapshot every N ticks")
	runCmd.Flags().StringVar(&exportPath, "export", "", "also export full run as JSON")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "run the same scene across multiple seeds",
		RunE:  runSweep,
	}
	sweepCmd.Flags().IntVar(&ticks, "ticks", config.DefaultTicks, "frames to simulate")
	sweepCmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep in frames")
	sweepCmd.Flags().IntVar(&numRuns, "runs", 8, "number of seeds")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a stored run's energy series",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().StringVar(&svgPath, "svg", "", "write the plot as SVG instead")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [output.svg]",
		Short: "simulate briefly and render the scene as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().IntVar(&ticks, "ticks", 300, "frames to simulate before the snapshot")
	snapshotCmd.Flags().Float64Var(&dt, "dt", 1.0, "timestep in frames")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list preset configurations",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := config.ListPresets()
			sort.Strings(names)
			for _, name := range names {
				fmt.Println(name)
			}
			return nil
		},
	}

	rootCmd.AddCommand(liveCmd, runCmd, sweepCmd, listCmd, plotCmd, snapshotCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig resolves the scene tuning: preset, then config file, then
// CLI flag overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("balls") {
		cfg.Scene.Balls = balls
	}
	if cmd.Flags().Changed("gravity") {
		cfg.Scene.Gravity = gravity
	}
	if cmd.Flags().Changed("seed") {
		cfg.Scene.Seed = seed
	}

	return cfg, nil
}

func newSimulation(cfg *config.Config) *sim.Simulation {
	s := sim.New(cfg.ToSim())
	s.AddMetric(metrics.NewEnergy())
	s.AddMetric(metrics.NewEnergyDrift())
	s.AddMetric(metrics.NewSpeedCap(cfg.Physics.MaxSpeedCap))
	s.AddMetric(metrics.NewOverlap())
	return s
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s := sim.New(cfg.ToSim())
	s.Populate(cfg.Scene.Balls)
	if cfg.Scene.Gravity {
		s.ToggleGravity()
	}

	p := tea.NewProgram(viz.NewModel(s), tea.WithAltScreen(), tea.WithMouseAllMotion())
	_, err = p.Run()
	return err
}

func runHeadless(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	st := store.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	s := newSimulation(cfg)
	rc := sim.RunConfig{
		Balls:       cfg.Scene.Balls,
		Ticks:       ticks,
		Dt:          dt,
		SampleEvery: sample,
		Gravity:     cfg.Scene.Gravity,
	}

	fmt.Printf("simulating %d balls for %d ticks...\n", cfg.Scene.Balls, ticks)
	start := time.Now()

	result, err := s.Run(context.Background(), rc)
	if err != nil {
		return err
	}

	presetName := preset
	if presetName == "" {
		presetName = "classic"
	}
	runID, err := st.Save(presetName, cfg.Scene.Seed, rc, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", time.Since(start))
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d  collisions: %d  wall boosts: %d\n",
		result.StepsTaken, result.Collisions, result.WallBoosts)

	fmt.Println("\nmetrics:")
	names := make([]string, 0, len(result.Metrics))
	for name := range result.Metrics {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Printf("  %s: %.6f\n", name, result.Metrics[name])
	}

	if len(result.Energies) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(downsample(result.Energies, 100),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("total kinetic energy"),
		))
	}

	if exportPath != "" {
		if err := store.ExportJSON(exportPath, presetName, cfg.Scene.Seed, rc, result); err != nil {
			return err
		}
		fmt.Printf("\nexported to %s\n", exportPath)
	}

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	rc := sim.RunConfig{
		Balls:   cfg.Scene.Balls,
		Ticks:   ticks,
		Dt:      dt,
		Gravity: cfg.Scene.Gravity,
	}

	seedStart := cfg.Scene.Seed
	if seedStart == 0 {
		seedStart = time.Now().UnixNano()
	}

	ensemble := sim.NewEnsemble(cfg.ToSim(), rc, numRuns, seedStart, func() []sim.Metric {
		return []sim.Metric{
			metrics.NewEnergy(),
			metrics.NewEnergyDrift(),
			metrics.NewOverlap(),
		}
	})

	fmt.Printf("sweeping %d seeds x %d ticks...\n", numRuns, ticks)
	start := time.Now()

	results, err := ensemble.Run(context.Background())
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n\n", time.Since(start))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "SEED\tCOLLISIONS\tBOOSTS\tENERGY\tDRIFT")
	for i, result := range results {
		fmt.Fprintf(w, "%d\t%d\t%d\t%.2f\t%.4f\n",
			seedStart+int64(i),
			result.Collisions,
			result.WallBoosts,
			result.Metrics["energy"],
			result.Metrics["energy_drift"],
		)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := store.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	sort.Slice(runs, func(i, j int) bool { return runs[i].Timestamp.Before(runs[j].Timestamp) })

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tBALLS\tTICKS\tGRAVITY\tCOLLISIONS\tDRIFT")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%v\t%d\t%.4f\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Balls,
			run.Ticks,
			run.Gravity,
			run.Collisions,
			run.EnergyDrift,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := store.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	times, energies, err := st.LoadEnergy(runID)
	if err != nil {
		return err
	}
	if len(energies) < 2 {
		return fmt.Errorf("no data to plot")
	}

	if svgPath != "" {
		svg := export.EnergyToSVG(times, energies, 800, 300)
		if err := os.WriteFile(svgPath, []byte(svg), 0644); err != nil {
			return err
		}
		fmt.Printf("wrote %s\n", svgPath)
		return nil
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("samples: %d\n\n", len(energies))
	fmt.Println(asciigraph.Plot(downsample(energies, 100),
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("total kinetic energy"),
	))
	return nil
}

func runSnapshot(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	s := sim.New(cfg.ToSim())
	rc := sim.RunConfig{
		Balls:   cfg.Scene.Balls,
		Ticks:   ticks,
		Dt:      dt,
		Gravity: cfg.Scene.Gravity,
	}
	if _, err := s.Run(context.Background(), rc); err != nil {
		return err
	}

	svg := export.SceneToSVG(s.Snapshot(), cfg.World.Width, cfg.World.Height)
	if err := os.WriteFile(args[0], []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", args[0])
	return nil
}

// downsample thins a series to at most n points so terminal plots stay
// readable.
func downsample(data []float64, n int) []float64 {
	if len(data) <= n {
		return data
	}
	out := make([]float64, 0, n)
	step := float64(len(data)) / float64(n)
	for i := 0; i < n; i++ {
		out = append(out, data[int(float64(i)*step)])
	}
	return out
}
