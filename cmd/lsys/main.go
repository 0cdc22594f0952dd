package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/spf13/cobra"
	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/config"
	"github.com/elvijs/linear-systems/internal/feedback"
	"github.com/elvijs/linear-systems/internal/linsys"
	"github.com/elvijs/linear-systems/internal/logging"
	"github.com/elvijs/linear-systems/internal/metrics"
	"github.com/elvijs/linear-systems/internal/plot"
	"github.com/elvijs/linear-systems/internal/storage"
	"github.com/elvijs/linear-systems/internal/viz"
)

var (
	dataDir    string
	configFile string
	preset     string
	outFile    string
	delta      float64
	save       bool
	points     int
	width      int
	height     int
	logFile    string
	logLevel   string

	logCloser io.Closer
)

const (
	defaultSolutionFile  = "solution.png"
	defaultStabilityFile = "stability.png"
)

// main registers the lsys commands and exits with status 1 if the command
// fails.
func main() {
	rootCmd := &cobra.Command{
		Use:           "lsys",
		Short:         "discrete-time linear and Lur'e systems",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg := logging.DefaultConfig()
			cfg.Filename = logFile
			cfg.Level = logLevel
			logger, closer, err := logging.New(cfg)
			if err != nil {
				return err
			}
			slog.SetDefault(logger)
			logCloser = closer
			return nil
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			if logCloser != nil {
				return logCloser.Close()
			}
			return nil
		},
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".lsys", "data directory")
	pf.StringVar(&configFile, "config", "", "system file (yaml)")
	pf.StringVar(&preset, "preset", "", "use a built-in system")
	pf.Float64Var(&delta, "delta", 0, "discretize a continuous-time system with this sampling interval")
	pf.StringVar(&logFile, "log-file", "", "log to a rotating file instead of stderr")
	pf.StringVar(&logLevel, "log-level", "warn", "log level (debug, info, warn, error)")
	pf.IntVar(&width, "width", viz.DefaultChartWidth, "terminal chart width")
	pf.IntVar(&height, "height", viz.DefaultChartHeight, "terminal chart height")

	describeCmd := &cobra.Command{
		Use:   "describe",
		Short: "print matrices, poles and transfer function",
		Args:  cobra.NoArgs,
		RunE:  describeSystem,
	}

	tfCmd := &cobra.Command{
		Use:   "tf",
		Short: "print the transfer function",
		Args:  cobra.NoArgs,
		RunE:  printTransferFunction,
	}

	simulateCmd := &cobra.Command{
		Use:   "simulate",
		Short: "simulate from x0 under the configured input",
		Args:  cobra.NoArgs,
		RunE:  runSimulation,
	}
	simulateCmd.Flags().BoolVar(&save, "save", false, "store the run under --data")

	discretizeCmd := &cobra.Command{
		Use:   "discretize",
		Short: "convert a continuous-time system to discrete time",
		Args:  cobra.NoArgs,
		RunE:  discretizeSystem,
	}
	discretizeCmd.Flags().StringVar(&outFile, "out", "", "write the discrete system as yaml")

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the solution to an image file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotSolution,
	}
	plotCmd.Flags().StringVar(&outFile, "out", "", "output file, .png, .svg or .pdf (default "+defaultSolutionFile+")")

	normsCmd := &cobra.Command{
		Use:   "norms [run_id]",
		Short: "plot signal norms over time",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotNorms,
	}
	normsCmd.Flags().StringVar(&outFile, "out", "", "output file; terminal chart if empty")

	stabilityCmd := &cobra.Command{
		Use:   "stability",
		Short: "plot the boundary of stabilizing feedback gains",
		Args:  cobra.NoArgs,
		RunE:  plotStability,
	}
	stabilityCmd.Flags().StringVar(&outFile, "out", "", "output file (default "+defaultStabilityFile+")")
	stabilityCmd.Flags().IntVar(&points, "points", linsys.DefaultBoundaryPoints, "unit circle samples")

	viewCmd := &cobra.Command{
		Use:   "view [run_id]",
		Short: "browse a trajectory interactively",
		Args:  cobra.MaximumNArgs(1),
		RunE:  viewTrajectory,
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of the state",
		Args:  cobra.MaximumNArgs(1),
		RunE:  analyzeTrajectory,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list built-in systems",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	showCmd := &cobra.Command{
		Use:   "show [run_id]",
		Short: "show a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  showRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSV,
	}
	exportCSVCmd.Flags().StringVar(&outFile, "out", "", "output file; stdout if empty")

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSON,
	}
	exportJSONCmd.Flags().StringVar(&outFile, "out", "", "output file; stdout if empty")

	rootCmd.AddCommand(describeCmd, tfCmd, simulateCmd, discretizeCmd, plotCmd, normsCmd,
		stabilityCmd, viewCmd, analyzeCmd, presetsCmd, listCmd, showCmd, exportCSVCmd, exportJSONCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, viz.ErrorStyle.Render("error: "+err.Error()))
		os.Exit(1)
	}
}

// loadConfig resolves the system: preset, then config file, then the
// default. --delta overrides the configured sampling interval.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	var cfg *config.Config
	switch {
	case preset != "" && configFile != "":
		return nil, fmt.Errorf("--preset and --config are mutually exclusive")
	case preset != "":
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	case configFile != "":
		var err error
		cfg, err = config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	default:
		cfg = config.DefaultConfig()
	}
	if cmd.Flags().Changed("delta") {
		cfg.Discretize = delta
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	slog.Debug("system loaded", "name", cfg.Name, "kind", cfg.Kind, "discretize", cfg.Discretize)
	return cfg, nil
}

// simulate runs the configured system and evaluates the default metrics.
func simulate(cfg *config.Config) (*linsys.Trajectory, map[string]float64, error) {
	tr, err := cfg.Simulate(feedback.NewRegistry())
	if err != nil {
		return tr, nil, fmt.Errorf("simulate %s: %w", cfg.Name, err)
	}
	vals, err := metrics.Evaluate(tr, metrics.Defaults(cfg.BoundThreshold)...)
	if err != nil {
		return tr, nil, err
	}
	if err := tr.CheckFinite(); err != nil {
		slog.Warn("trajectory left the finite floats", "system", cfg.Name, "err", err)
	}
	slog.Info("simulation finished", "system", cfg.Name, "steps", tr.Len())
	return tr, vals, nil
}

// describer returns the system as configured, linear or closed loop.
func describer(cfg *config.Config) (fmt.Stringer, error) {
	if cfg.Kind == config.KindLure {
		return cfg.Lure(feedback.NewRegistry())
	}
	return cfg.System()
}

// trajectoryFor loads a stored run when an id is given, otherwise
// simulates the configured system.
func trajectoryFor(cmd *cobra.Command, args []string) (string, fmt.Stringer, *linsys.Trajectory, error) {
	if len(args) == 1 {
		st := storage.New(dataDir)
		meta, err := st.Load(args[0])
		if err != nil {
			return "", nil, nil, fmt.Errorf("load run %s: %w", args[0], err)
		}
		tr, err := st.LoadTrajectory(args[0])
		if err != nil {
			return "", nil, nil, fmt.Errorf("load run %s: %w", args[0], err)
		}
		return meta.ID, nil, tr, nil
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", nil, nil, err
	}
	sys, err := describer(cfg)
	if err != nil {
		return "", nil, nil, err
	}
	tr, _, err := simulate(cfg)
	if err != nil {
		return "", nil, nil, err
	}
	return cfg.Name, sys, tr, nil
}

func describeSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := cfg.System()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Heading(cfg.Name))
	fmt.Fprintln(out, sys)
	if cfg.Kind == config.KindLure {
		fmt.Fprintln(out, viz.KeyValue("feedback", cfg.Nonlinearity.Name))
	}
	fmt.Fprintln(out, viz.KeyValue("order", fmt.Sprint(sys.Order())))
	fmt.Fprintln(out, viz.KeyValue("inputs", fmt.Sprint(sys.Inputs())))
	fmt.Fprintln(out, viz.KeyValue("outputs", fmt.Sprint(sys.Outputs())))
	fmt.Fprintln(out, viz.KeyValue("det(zI - A)", sys.CharacteristicPolynomial().String()))
	fmt.Fprintln(out, viz.KeyValue("poles", formatComplex(sys.Poles())))
	fmt.Fprintln(out, viz.KeyValue("stable", fmt.Sprint(sys.IsStable())))
	fmt.Fprintln(out)
	fmt.Fprintln(out, viz.Heading("G(z)"))
	fmt.Fprintln(out, sys.TransferFunction())
	return nil
}

func printTransferFunction(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := cfg.System()
	if err != nil {
		return err
	}
	renderTransferTable(cmd.OutOrStdout(), sys.TransferFunction())
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	tr, vals, err := simulate(cfg)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Heading(cfg.Name))
	renderTrajectoryTable(out, tr)
	fmt.Fprintln(out)
	fmt.Fprint(out, viz.NormChart(tr, width, height))
	fmt.Fprintln(out)
	renderMetrics(out, vals)

	if !save {
		return nil
	}
	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	meta := storage.NewMetadata(cfg.Name, cfg.Kind, tr, vals)
	meta.Delta = cfg.Discretize
	runID, err := st.Save(meta, tr)
	if err != nil {
		return fmt.Errorf("save run: %w", err)
	}
	slog.Info("run saved", "id", runID, "dir", dataDir)
	fmt.Fprintln(out, viz.KeyValue("run id", runID))
	return nil
}

func discretizeSystem(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.Discretize <= 0 {
		return fmt.Errorf("discretize: %w: set --delta or discretize in the system file", linsys.ErrInvalidDelta)
	}
	sys, err := cfg.System()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Heading(fmt.Sprintf("%s, δ = %g", cfg.Name, cfg.Discretize)))
	fmt.Fprintln(out, sys)

	if outFile == "" {
		return nil
	}
	disc := cfg.Clone()
	disc.Name = cfg.Name + "_d"
	disc.Discretize = 0
	disc.A, disc.B = rows(sys.A()), rows(sys.B())
	if err := config.Save(outFile, disc); err != nil {
		return err
	}
	fmt.Fprintln(out, viz.KeyValue("written", outFile))
	return nil
}

func plotSolution(cmd *cobra.Command, args []string) error {
	name, _, tr, err := trajectoryFor(cmd, args)
	if err != nil {
		return err
	}
	path := outPath(defaultSolutionFile)
	err = plot.Solution(tr, path)
	if err != nil && !errors.Is(err, viz.ErrTooManyDims) {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.KeyValue(name, path))
	return err
}

func plotNorms(cmd *cobra.Command, args []string) error {
	name, _, tr, err := trajectoryFor(cmd, args)
	if err != nil {
		return err
	}
	if outFile == "" {
		fmt.Fprint(cmd.OutOrStdout(), viz.NormChart(tr, width, height))
		return nil
	}
	if err := plot.Norms(tr, outFile); err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), viz.KeyValue(name, outFile))
	return nil
}

func plotStability(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sys, err := cfg.System()
	if err != nil {
		return err
	}
	path := outPath(defaultStabilityFile)
	if err := plot.StabilityBoundary(sys, points, path); err != nil {
		return err
	}
	_, anchor, err := sys.StabilityBoundary(points)
	if err != nil {
		return err
	}
	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.KeyValue("S(G) contains", formatComplex([]complex128{anchor})))
	fmt.Fprintln(out, viz.KeyValue(cfg.Name, path))
	return nil
}

func viewTrajectory(cmd *cobra.Command, args []string) error {
	name, sys, tr, err := trajectoryFor(cmd, args)
	if err != nil {
		return err
	}
	return viz.Run(name, sys, tr)
}

func analyzeTrajectory(cmd *cobra.Command, args []string) error {
	name, _, tr, err := trajectoryFor(cmd, args)
	if err != nil {
		return err
	}
	if tr.Len() < 2 {
		return fmt.Errorf("analyze %s: need at least 2 steps, got %d", name, tr.Len())
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Heading("frequency analysis: "+name))
	x0 := linsys.Component(tr.States, 0)
	fmt.Fprintln(out, viz.LineChart("power spectrum (x0)", width, height,
		viz.Series{Name: "x0", Values: metrics.PowerSpectrum(x0)}))
	fmt.Fprintln(out)
	renderSpectrumTable(out, tr)
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	renderPresetTable(cmd.OutOrStdout())
	return nil
}

func listRuns(cmd *cobra.Command, args []string) error {
	runs, err := storage.New(dataDir).List()
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Fprintln(cmd.OutOrStdout(), "no runs found")
		return nil
	}
	renderRunTable(cmd.OutOrStdout(), runs)
	return nil
}

func showRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, viz.Heading(meta.ID))
	fmt.Fprintln(out, viz.KeyValue("system", meta.System))
	fmt.Fprintln(out, viz.KeyValue("kind", meta.Kind))
	fmt.Fprintln(out, viz.KeyValue("timestamp", meta.Timestamp.Format("2006-01-02 15:04:05")))
	fmt.Fprintln(out, viz.KeyValue("steps", fmt.Sprint(meta.Steps)))
	if meta.Delta > 0 {
		fmt.Fprintln(out, viz.KeyValue("delta", fmt.Sprint(meta.Delta)))
	}
	fmt.Fprintln(out)
	renderMetrics(out, meta.Metrics)
	fmt.Fprintln(out)

	signals := []struct {
		name string
		seq  []*mat.VecDense
	}{{"x", tr.States}, {"y", tr.Outputs}, {tr.InputName, tr.Inputs}}
	cam := viz.NewCamera()
	for _, s := range signals {
		if len(s.seq) == 0 {
			continue
		}
		chart, err := viz.RenderSignal(s.name, s.seq, width, height, cam)
		if err != nil {
			fmt.Fprintln(out, viz.Subtle.Render(err.Error()))
			continue
		}
		fmt.Fprintln(out, chart)
	}
	return nil
}

func exportCSV(cmd *cobra.Command, args []string) error {
	tr, err := storage.New(dataDir).LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	w, closeFn, err := output(cmd)
	if err != nil {
		return err
	}
	if err := storage.WriteCSV(w, tr); err != nil {
		closeFn()
		return err
	}
	return closeFn()
}

func exportJSON(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	tr, err := st.LoadTrajectory(args[0])
	if err != nil {
		return err
	}
	if outFile != "" {
		return storage.ExportJSON(outFile, *meta, tr)
	}
	return storage.WriteJSON(cmd.OutOrStdout(), *meta, tr)
}

// outPath returns --out, or def when it is unset. Every command shares the
// flag variable so defaults are applied here.
func outPath(def string) string {
	if outFile == "" {
		return def
	}
	return outFile
}

// output opens --out, or returns stdout when it is unset.
func output(cmd *cobra.Command) (io.Writer, func() error, error) {
	if outFile == "" {
		return cmd.OutOrStdout(), func() error { return nil }, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, f.Close, nil
}
