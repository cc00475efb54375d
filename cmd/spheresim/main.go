package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/spheresim/internal/analysis"
	"github.com/san-kum/spheresim/internal/config"
	"github.com/san-kum/spheresim/internal/engine"
	"github.com/san-kum/spheresim/internal/export"
	"github.com/san-kum/spheresim/internal/metrics"
	"github.com/san-kum/spheresim/internal/optim"
	"github.com/san-kum/spheresim/internal/storage"
	"github.com/san-kum/spheresim/internal/viz"
)

var (
	dataDir      string
	particles    int
	dimensions   int
	steps        int
	zoneWidth    float64
	topologyName string
	integrator   string
	dt           float64
	seed         int64
	stride       int
	maxSnapshots int
	configFile   string
	preset       string
	// Live view
	frameRate     int
	stepsPerFrame int
	// Sweep
	widthMin   float64
	widthMax   float64
	widthCount int
	sweepSteps int
	// Export
	outDir string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "spheresim",
		Short: "particle dynamics on the hypersphere",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".spheresim", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addEngineFlags(runCmd)
	runCmd.Flags().IntVar(&steps, "steps", config.DefaultSteps, "number of steps")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run with live terminal visualization",
		RunE:  runLive,
	}
	addEngineFlags(liveCmd)
	liveCmd.Flags().IntVar(&steps, "steps", 0, "stop after this many steps (0 = unbounded)")
	liveCmd.Flags().IntVar(&frameRate, "fps", 30, "frame rate")
	liveCmd.Flags().IntVar(&stepsPerFrame, "steps-per-frame", 10, "integration steps per frame")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the alignment series of a run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	gramCmd := &cobra.Command{
		Use:   "gram [run_id]",
		Short: "print the inner-product matrix heatmap",
		Args:  cobra.ExactArgs(1),
		RunE:  gramRun,
	}

	scatterCmd := &cobra.Command{
		Use:   "scatter [run_id]",
		Short: "print a braille scatter of the projected final positions",
		Args:  cobra.ExactArgs(1),
		RunE:  scatterRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run data as JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [run_id]",
		Short: "write SVG heatmap and scatter for a run",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSVG,
	}
	exportSVGCmd.Flags().StringVar(&outDir, "out", ".", "output directory")

	sweepCmd := &cobra.Command{
		Use:   "sweep",
		Short: "sweep zone width and report alignment",
		RunE:  runSweep,
	}
	addEngineFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&widthMin, "width-min", 0.5, "smallest zone width")
	sweepCmd.Flags().Float64Var(&widthMax, "width-max", 10.0, "largest zone width")
	sweepCmd.Flags().IntVar(&widthCount, "width-count", 10, "number of widths")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 200, "steps per sweep point")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Printf("%-10s %d particles in R^%d, %s topology, zone %.1f, %d steps\n",
					name, p.Particles, p.Dimensions, p.Topology, p.ZoneWidth, p.Steps)
			}
			return nil
		},
	}

	rootCmd.AddCommand(runCmd, liveCmd, listCmd, plotCmd, gramCmd, scatterCmd, exportCmd, exportSVGCmd, sweepCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func addEngineFlags(cmd *cobra.Command) {
	cmd.Flags().IntVar(&particles, "particles", config.DefaultParticles, "number of particles")
	cmd.Flags().IntVar(&dimensions, "dimensions", config.DefaultDimensions, "embedding dimensions")
	cmd.Flags().Float64Var(&zoneWidth, "zone-width", config.DefaultZoneWidth, "interaction zone width")
	cmd.Flags().StringVar(&topologyName, "topology", "circle", "topology (circle, line, full, grid)")
	cmd.Flags().StringVar(&integrator, "integrator", "euler", "integrator (euler, heun)")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")
	cmd.Flags().IntVar(&stride, "stride", 0, "record every n-th step (0 = every step)")
	cmd.Flags().IntVar(&maxSnapshots, "max-snapshots", 0, "cap recorded snapshots (0 = unbounded)")
}

// resolveConfig applies precedence: flags > config file > preset > defaults.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
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

	if cmd.Flags().Changed("particles") {
		cfg.Particles = particles
	}
	if cmd.Flags().Changed("dimensions") {
		cfg.Dimensions = dimensions
	}
	if cmd.Flags().Changed("steps") {
		// The sweep command binds --steps to its own variable, so read the
		// value through the command's flag set, not the shared package var.
		cfg.Steps, _ = cmd.Flags().GetInt("steps")
	}
	if cmd.Flags().Changed("zone-width") {
		cfg.ZoneWidth = zoneWidth
	}
	if cmd.Flags().Changed("topology") {
		cfg.Topology = topologyName
	}
	if cmd.Flags().Changed("integrator") {
		cfg.Integrator = integrator
	}
	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if cmd.Flags().Changed("stride") {
		cfg.RecordStride = stride
	}
	if cmd.Flags().Changed("max-snapshots") {
		cfg.MaxSnapshots = maxSnapshots
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	eng, err := engine.New(cfg.Engine())
	if err != nil {
		return err
	}

	align := metrics.NewAlignment()
	eng.AddMetric(align)
	for _, m := range metrics.Defaults()[1:] {
		eng.AddMetric(m)
	}

	// Ctrl-C returns the snapshots recorded so far instead of discarding
	// the run.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	fmt.Printf("running %d particles in R^%d, %s topology, %d steps...\n",
		cfg.Particles, cfg.Dimensions, cfg.Topology, cfg.Steps)
	start := time.Now()

	result, err := eng.Simulate(ctx, cfg.Steps)
	if err != nil {
		if result == nil || len(result.Trajectory) == 0 {
			return err
		}
		fmt.Printf("run ended early: %v\n", err)
	}

	elapsed := time.Since(start)

	gram := eng.InnerProductMatrix()
	runID, err := st.Save(cfg.Engine(), result, gram, align.Series())
	if err != nil {
		return err
	}

	fmt.Printf("completed %d steps in %v\n", result.Steps, elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("snapshots: %d\n", len(result.Trajectory))
	fmt.Println("\nmetrics:")
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

	eng, err := engine.New(cfg.Engine())
	if err != nil {
		return err
	}

	maxSteps := 0
	if cmd.Flags().Changed("steps") {
		maxSteps = steps
	}

	return viz.RunLive(eng, maxSteps, stepsPerFrame, frameRate)
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
	fmt.Fprintln(w, "ID\tTIME\tN\tDIM\tSTEPS\tZONE\tTOPOLOGY\tINTEG")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%d\t%.2f\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Particles,
			run.Dimensions,
			run.Steps,
			run.ZoneWidth,
			run.Topology,
			run.Integrator,
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	series, err := st.LoadAlignment(runID)
	if err != nil {
		return err
	}
	if len(series) < 2 {
		return fmt.Errorf("run %s has no alignment series to plot", runID)
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("particles: %d in R^%d, %s topology\n\n", meta.Particles, meta.Dimensions, meta.Topology)

	graph := asciigraph.Plot(series,
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption("alignment order parameter"),
	)
	fmt.Println(graph)

	return nil
}

func gramRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	gram, err := st.LoadGram(runID)
	if err != nil {
		return err
	}

	fmt.Print(viz.Heatmap(gram))

	min, max := analysis.Bounds(gram)
	fmt.Printf("\nmean off-diagonal: %.4f  range: [%.4f, %.4f]\n",
		analysis.MeanOffDiagonal(gram), min, max)

	if profile := analysis.RingProfile(gram); len(profile) > 0 {
		fmt.Println("\nmean inner product by ring distance:")
		for d, v := range profile {
			fmt.Printf("  %3d: %+.4f\n", d+1, v)
		}
	}

	return nil
}

func scatterRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	positions, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	if len(positions) < 2 {
		return fmt.Errorf("run %s has too few particles to project", runID)
	}

	proj, err := analysis.PCA(positions, 2)
	if err != nil {
		return err
	}

	fmt.Print(viz.Scatter(proj.Coords, 60, 20).String())
	fmt.Println("\nfinal positions, top principal components")
	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	positions, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}
	// gram.csv and alignment.csv are optional run artifacts; only their
	// absence is tolerated.
	gram, err := st.LoadGram(runID)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	alignment, err := st.LoadAlignment(runID)
	if err != nil && !os.IsNotExist(err) {
		return err
	}

	path := filepath.Join(outDir, runID+".json")
	if err := export.WriteJSON(path, *meta, positions, gram, alignment); err != nil {
		return err
	}

	fmt.Printf("exported to %s\n", path)
	return nil
}

func exportSVG(cmd *cobra.Command, args []string) error {
	runID := args[0]
	st := storage.New(dataDir)

	gram, err := st.LoadGram(runID)
	if err != nil {
		return err
	}

	heatPath := filepath.Join(outDir, runID+"_gram.svg")
	if err := os.WriteFile(heatPath, []byte(export.HeatmapSVG(gram, 6)), 0644); err != nil {
		return err
	}
	fmt.Printf("heatmap saved to %s\n", heatPath)

	positions, err := st.LoadPositions(runID)
	if err != nil {
		return err
	}

	components := 3
	if dim := len(positions[0]); dim < components {
		components = dim
	}
	if len(positions) < components {
		components = len(positions)
	}
	proj, err := analysis.PCA(positions, components)
	if err != nil {
		return err
	}

	scatterPath := filepath.Join(outDir, runID+"_scatter.svg")
	if err := os.WriteFile(scatterPath, []byte(export.ScatterSVG(proj.Coords, 640, 480)), 0644); err != nil {
		return err
	}
	fmt.Printf("scatter saved to %s (variance explained:", scatterPath)
	for _, v := range proj.ExplainedVariance {
		fmt.Printf(" %.1f%%", v*100)
	}
	fmt.Println(")")

	return nil
}

func runSweep(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	widths := optim.Range(widthMin, widthMax, widthCount)

	fmt.Printf("sweeping zone width over [%.2f, %.2f] in %d points...\n", widthMin, widthMax, widthCount)
	points, best, err := optim.SweepZoneWidth(context.Background(), cfg.Engine(), widths, sweepSteps)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ZONE WIDTH\tALIGNMENT")
	for _, p := range points {
		marker := ""
		if p == best {
			marker = "  <- best"
		}
		fmt.Fprintf(w, "%.3f\t%.6f%s\n", p.ZoneWidth, p.Alignment, marker)
	}
	return w.Flush()
}
