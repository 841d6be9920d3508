package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gonum.org/v1/plot/vg"

	"github.com/san-kum/promplot/internal/config"
	"github.com/san-kum/promplot/internal/export"
	"github.com/san-kum/promplot/internal/pipeline"
	"github.com/san-kum/promplot/internal/render"
	"github.com/san-kum/promplot/internal/storage"
	"github.com/san-kum/promplot/internal/tui"
)

var (
	logger *zap.Logger

	verbose    bool
	archiveDir string
	// Inputs
	dataDir      string
	configFile   string
	preset       string
	demoCount    int
	workers      int
	demoPattern  string
	meanFile     string
	varianceFile string
	channels     string
	// Plot output
	outFile string
	preview bool
	archive bool
	width   float64
	height  float64
	// Export
	format    string
	withDemos bool
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, newRootCmd()); err != nil {
		stop()
		os.Exit(1)
	}
}

// newLogger builds the process logger once flags are parsed.
var newLogger = func(verbose bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(zapcore.WarnLevel)
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// run executes root and flushes the logger whether or not the command failed.
func run(ctx context.Context, root *cobra.Command) error {
	defer func() {
		if logger != nil {
			_ = logger.Sync()
		}
	}()
	return root.ExecuteContext(ctx)
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "promplot",
		Short: "plot demonstration trajectories against their mean and deviation",
		Long: `promplot loads recorded demonstrations (demo1.csv .. demoN.csv) and the
precomputed mean.csv / variance.csv tables, extracts the X, Y and Z channels
and draws each mean with a shaded mean±deviation band over the raw demonstrations.

Run without a subcommand to build the figure from the current directory.`,
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			logger, err = newLogger(verbose)
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		RunE: runPlot,
	}

	pf := rootCmd.PersistentFlags()
	pf.BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	pf.StringVar(&archiveDir, "data", ".promplot", "archive directory")
	pf.StringVarP(&dataDir, "dir", "d", ".", "directory holding the csv tables")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset file set")
	pf.IntVarP(&demoCount, "demos", "n", config.DefaultDemoCount, "number of demonstrations")
	pf.IntVar(&workers, "workers", config.DefaultWorkers, "files parsed concurrently")
	pf.StringVar(&demoPattern, "pattern", config.DefaultDemoPattern, "demonstration file pattern")
	pf.StringVar(&meanFile, "mean", config.DefaultMeanFile, "mean table")
	pf.StringVar(&varianceFile, "variance", config.DefaultDeviationFile, "deviation table")
	pf.StringVar(&channels, "channels", "x,y,z", "channels to extract")

	addPlotFlags(rootCmd)

	plotCmd := &cobra.Command{
		Use:   "plot",
		Short: "build the figure",
		Args:  cobra.NoArgs,
		RunE:  runPlot,
	}
	addPlotFlags(plotCmd)

	viewCmd := &cobra.Command{
		Use:   "view",
		Short: "browse channels in the terminal",
		Args:  cobra.NoArgs,
		RunE:  runView,
	}

	exportCmd := &cobra.Command{
		Use:   "export",
		Short: "write extracted channels as csv or json",
		Args:  cobra.NoArgs,
		RunE:  runExport,
	}
	exportCmd.Flags().StringVar(&format, "format", "csv", "csv or json")
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (default stdout)")
	exportCmd.Flags().BoolVar(&withDemos, "with-demos", false, "include demonstration curves (json only)")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list archived figures",
		Args:  cobra.NoArgs,
		RunE:  listRuns,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			for _, name := range config.ListPresets() {
				p := config.GetPreset(name)
				fmt.Fprintf(out, "  %-12s %s x%d, %s, %s\n", name, p.DemoPattern, p.DemoCount, p.MeanFile, p.DeviationFile)
			}
			return nil
		},
	}

	initCmd := &cobra.Command{
		Use:   "init-config [path]",
		Short: "write the effective configuration as yaml",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "promplot.yaml"
			if len(args) > 0 {
				path = args[0]
			}
			cfg, err := resolveConfig(cmd)
			if err != nil {
				return err
			}
			if err := config.Save(path, cfg); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", path)
			return nil
		},
	}

	rootCmd.AddCommand(plotCmd, viewCmd, exportCmd, listCmd, presetsCmd, initCmd)
	return rootCmd
}

func addPlotFlags(cmd *cobra.Command) {
	f := cmd.Flags()
	f.StringVarP(&outFile, "out", "o", "", "save figure to file (png, svg, pdf, eps)")
	f.BoolVar(&preview, "preview", false, "print a terminal preview of each channel")
	f.BoolVar(&archive, "archive", false, "archive the figure under --data")
	f.Float64Var(&width, "width", config.DefaultWidth, "figure width in inches")
	f.Float64Var(&height, "height", config.DefaultHeight, "figure height in inches")
}

// resolveConfig applies, in increasing priority: defaults, preset, config file, flags.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	flags := cmd.Flags()
	if flags.Changed("dir") || cfg.DataDir == "" {
		cfg.DataDir = dataDir
	}
	if flags.Changed("demos") {
		cfg.DemoCount = demoCount
	}
	if flags.Changed("workers") {
		cfg.Workers = workers
	}
	if flags.Changed("pattern") {
		cfg.DemoPattern = demoPattern
	}
	if flags.Changed("mean") {
		cfg.MeanFile = meanFile
	}
	if flags.Changed("variance") {
		cfg.DeviationFile = varianceFile
	}
	if flags.Changed("channels") {
		cfg.Channels = strings.Split(channels, ",")
	}
	if f := flags.Lookup("out"); f != nil && f.Changed {
		cfg.Output = outFile
	}
	if f := flags.Lookup("width"); f != nil && f.Changed {
		cfg.Width = width
	}
	if f := flags.Lookup("height"); f != nil && f.Changed {
		cfg.Height = height
	}

	return cfg, cfg.Validate()
}

func load(cmd *cobra.Command) (*config.Config, *pipeline.Pipeline, *pipeline.Result, error) {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	p, err := pipeline.New(cfg, logger)
	if err != nil {
		return nil, nil, nil, err
	}
	res, err := p.Run(cmd.Context())
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, p, res, nil
}

func runPlot(cmd *cobra.Command, args []string) error {
	cfg, p, res, err := load(cmd)
	if err != nil {
		return err
	}

	fig, err := p.Render(res)
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "demonstrations: %d\n", len(res.Demonstrations))
	fmt.Fprintf(out, "samples: %d\n", res.Statistics.Samples())
	fmt.Fprintf(out, "channels: %d\n", len(res.Series))

	w, h := vg.Length(cfg.Width)*vg.Inch, vg.Length(cfg.Height)*vg.Inch
	if cfg.Output != "" {
		if err := fig.Save(cfg.Output, w, h); err != nil {
			return fmt.Errorf("save figure: %w", err)
		}
		fmt.Fprintf(out, "figure: %s\n", cfg.Output)
	}

	if preview {
		fmt.Fprintln(out)
		fmt.Fprint(out, render.PreviewAll(res.Series, render.PreviewOptions{Width: 80, Height: 10}))
	}

	if archive {
		st := storage.New(archiveDir)
		if err := st.Init(); err != nil {
			return err
		}
		ext := "png"
		if cfg.Output != "" {
			if e := strings.TrimPrefix(filepath.Ext(cfg.Output), "."); e != "" {
				ext = strings.ToLower(e)
			}
		}
		chNames := make([]string, len(res.Series))
		for i, s := range res.Series {
			chNames[i] = s.Channel.String()
		}
		runID, err := st.Save(storage.RunMetadata{
			Preset:         preset,
			DataDir:        cfg.DataDir,
			DemoPattern:    cfg.DemoPattern,
			Demonstrations: len(res.Demonstrations),
			MeanFile:       cfg.MeanFile,
			DeviationFile:  cfg.DeviationFile,
			Samples:        res.Statistics.Samples(),
			Channels:       chNames,
		}, fig, ext, w, h)
		if err != nil {
			return fmt.Errorf("archive figure: %w", err)
		}
		fmt.Fprintf(out, "run id: %s\n", runID)
	}

	return nil
}

func runView(cmd *cobra.Command, args []string) error {
	cfg, _, res, err := load(cmd)
	if err != nil {
		return err
	}
	title := fmt.Sprintf("promplot · %s · %d demonstrations", cfg.DataDir, len(res.Demonstrations))
	return tui.Run(title, res.Series)
}

func runExport(cmd *cobra.Command, args []string) error {
	_, _, res, err := load(cmd)
	if err != nil {
		return err
	}

	var w io.Writer = cmd.OutOrStdout()
	if outFile != "" {
		f, err := os.Create(outFile)
		if err != nil {
			return err
		}
		defer f.Close()
		w = f
	}

	switch format {
	case "csv":
		return export.WriteCSV(w, res.Series)
	case "json":
		return export.WriteJSON(w, res.Series, withDemos)
	default:
		return fmt.Errorf("unknown format: %s (csv or json)", format)
	}
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(archiveDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if len(runs) == 0 {
		fmt.Fprintln(out, "no runs found")
		return nil
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tDEMOS\tSAMPLES\tMEAN\tVARIANCE\tFIGURE")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\t%s\n",
			run.ID,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Demonstrations,
			run.Samples,
			run.MeanFile,
			run.DeviationFile,
			st.FigurePath(&run),
		)
	}
	return w.Flush()
}
