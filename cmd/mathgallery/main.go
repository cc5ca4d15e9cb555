package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"sort"
	"strings"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/juju/errors"
	"github.com/juju/loggo"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/san-kum/mathgallery/internal/automation"
	"github.com/san-kum/mathgallery/internal/config"
	"github.com/san-kum/mathgallery/internal/gallery"
	"github.com/san-kum/mathgallery/internal/gui"
	"github.com/san-kum/mathgallery/internal/host"
	"github.com/san-kum/mathgallery/internal/loop"
	"github.com/san-kum/mathgallery/internal/metrics"
	"github.com/san-kum/mathgallery/internal/pattern"
	"github.com/san-kum/mathgallery/internal/render"
	"github.com/san-kum/mathgallery/internal/stream"
	"github.com/san-kum/mathgallery/internal/visual"
)

var logger = loggo.GetLogger("mathgallery")

var (
	configFile string
	logLevel   string
	fps        int
	seed       int64
	theme      string
	renderer   string
	width      int
	height     int
	frames     int
	param1     float64
	param2     float64
	preset     string
	output     string
	listen     string
	sweep      int
)

func main() {
	rootCmd := &cobra.Command{
		Use:           "mathgallery",
		Short:         "interactive gallery of mathematical patterns",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE:          runGallery,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&logLevel, "log", "", "logger levels, e.g. <root>=DEBUG")
	pf.IntVar(&fps, "fps", config.DefaultFPS, "frame rate")
	pf.Int64Var(&seed, "seed", 1, "random seed")
	pf.StringVar(&theme, "theme", "cyberpunk", "theme: "+strings.Join(gallery.ThemeNames(), ", "))

	galleryCmd := &cobra.Command{
		Use:   "gallery",
		Short: "browse patterns in the terminal",
		RunE:  runGallery,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list patterns",
		RunE:  listPatterns,
	}

	showCmd := &cobra.Command{
		Use:   "show [pattern]",
		Short: "print a pattern's description and one frame",
		Args:  cobra.ExactArgs(1),
		RunE:  showPattern,
	}
	addFrameFlags(showCmd, 30)

	renderCmd := &cobra.Command{
		Use:   "render [pattern]",
		Short: "render frames to gif, png or svg",
		Args:  cobra.ExactArgs(1),
		RunE:  renderPattern,
	}
	addFrameFlags(renderCmd, 60)
	renderCmd.Flags().StringVarP(&output, "output", "o", "", "output file (.gif, .png, .svg)")
	renderCmd.MarkFlagRequired("output")

	benchCmd := &cobra.Command{
		Use:   "bench [pattern...]",
		Short: "time update and render per pattern",
		RunE:  benchPatterns,
	}
	addFrameFlags(benchCmd, 120)
	benchCmd.Flags().IntVar(&sweep, "sweep", 0, "sweep param1 over this many values (single pattern)")

	tourCmd := &cobra.Command{
		Use:   "tour [scenario.yaml]",
		Short: "play a scripted tour",
		Args:  cobra.ExactArgs(1),
		RunE:  runTour,
	}
	tourCmd.Flags().StringVar(&renderer, "renderer", "", "braille or raster")

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "stream patterns to websocket clients",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&listen, "listen", config.DefaultListen, "listen address")

	guiCmd := &cobra.Command{
		Use:   "gui [pattern]",
		Short: "open the gallery in a window",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			opts := gui.Options{
				Container: cfg.DetailContainer,
				FPS:       cfg.FPS,
				Seed:      cfg.Seed,
				Factory:   newFactory(cfg, nil),
			}
			if len(args) > 0 {
				opts.Pattern = args[0]
			}
			gui.Run(opts)
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets [pattern]",
		Short: "list slider presets for a pattern",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for pattern: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, name := range presets {
				p := config.GetPreset(args[0], name)
				fmt.Printf("  %-12s %3.0f%% %3.0f%%\n", name, p.Param1*100, p.Param2*100)
			}
			return nil
		},
	}

	var initPath string
	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective config, or write a default one",
		RunE: func(cmd *cobra.Command, args []string) error {
			if initPath != "" {
				if err := config.Save(initPath, config.DefaultConfig()); err != nil {
					return err
				}
				fmt.Printf("wrote %s\n", initPath)
				return nil
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			return errors.Trace(yaml.NewEncoder(os.Stdout).Encode(cfg))
		},
	}
	configCmd.Flags().StringVar(&initPath, "init", "", "write the default config to this path")

	rootCmd.AddCommand(galleryCmd, listCmd, showCmd, renderCmd, benchCmd, tourCmd, serveCmd, guiCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		logger.Debugf("%s", errors.ErrorStack(err))
		os.Exit(1)
	}
}

func addFrameFlags(cmd *cobra.Command, n int) {
	cmd.Flags().IntVar(&frames, "frames", n, "frames to run")
	cmd.Flags().IntVar(&width, "width", 0, "width in dots (braille) or pixels (raster)")
	cmd.Flags().IntVar(&height, "height", 0, "height in dots (braille) or pixels (raster)")
	cmd.Flags().Float64Var(&param1, "param1", visual.DefaultParam, "first slider, 0 to 1")
	cmd.Flags().Float64Var(&param2, "param2", visual.DefaultParam, "second slider, 0 to 1")
	cmd.Flags().StringVar(&preset, "preset", "", "use a slider preset")
	cmd.Flags().StringVar(&renderer, "renderer", "", "braille or raster")
}

// loadConfig reads the config file, if any, and applies flags the user
// set explicitly. It also configures logging.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if configFile != "" {
		var err error
		if cfg, err = config.Load(configFile); err != nil {
			return nil, errors.Annotate(err, "failed to load config")
		}
	}
	flags := cmd.Flags()
	if flags.Changed("fps") {
		cfg.FPS = fps
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("log") {
		cfg.LogLevel = logLevel
	}
	if flags.Changed("renderer") {
		cfg.Renderer = renderer
	}
	if flags.Changed("width") {
		cfg.Width = width
	}
	if flags.Changed("height") {
		cfg.Height = height
	}
	if flags.Changed("listen") {
		cfg.Listen = listen
	}
	if err := cfg.Validate(); err != nil {
		return nil, errors.Trace(err)
	}
	if err := loggo.ConfigureLoggers(cfg.LogLevel); err != nil {
		return nil, errors.Trace(err)
	}
	return cfg, nil
}

// newFactory builds the pattern factory with the configured Lorenz
// integration. A nil clock means wall time.
func newFactory(cfg *config.Config, clock visual.Clock) *visual.Factory {
	opts := []visual.Option{visual.WithSeed(cfg.Seed)}
	if clock != nil {
		opts = append(opts, visual.WithClock(clock))
	}
	f := visual.NewFactory(opts...)
	f.Register("lorenz", visual.NewLorenzWith(visual.LorenzOptions{
		Integrator: cfg.Lorenz.Integrator,
		Dt:         cfg.Lorenz.Dt,
		Steps:      cfg.Lorenz.Steps,
		Sigma:      cfg.Lorenz.Sigma,
		Rho:        cfg.Lorenz.Rho,
		Beta:       cfg.Lorenz.Beta,
	}))
	return f
}

func newRenderer(kind string) func(w, h int) render.Renderer {
	if kind == "raster" {
		return func(w, h int) render.Renderer { return render.NewRaster(w, h) }
	}
	return func(w, h int) render.Renderer { return render.NewBraille(w, h) }
}

func runGallery(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	m := gallery.New(gallery.Options{Config: *cfg, Factory: newFactory(cfg, nil)})
	defer m.Close()
	_, err = tea.NewProgram(m, tea.WithAltScreen()).Run()
	return errors.Trace(err)
}

func listPatterns(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPARAM 1\tPARAM 2\tPRESETS")
	for _, d := range pattern.Default().All() {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n", d.ID, d.Name, d.ParamLabel1, d.ParamLabel2, len(config.ListPresets(d.ID)))
	}
	return w.Flush()
}

// player wires a host to a synchronous loop for headless commands.
func player(cfg *config.Config, container string, obs host.Observer) *automation.Player {
	l := loop.New(cfg.FPS)
	page := host.NewPage()
	page.Add(container, cfg.Width, cfg.Height)
	clock := &visual.FixedClock{}
	h := host.New(host.Options{
		Document:    page,
		Scheduler:   l,
		Factory:     newFactory(cfg, clock),
		NewRenderer: newRenderer(cfg.Renderer),
		Observer:    obs,
	})
	return &automation.Player{Host: h, Loop: l, Clock: clock, Container: container}
}

// frameStep builds the single scenario step the frame flags describe.
func frameStep(cmd *cobra.Command, id string) automation.Step {
	s := automation.Step{Pattern: id, Frames: frames, Preset: preset}
	p1, p2 := param1, param2
	if cmd.Flags().Changed("param1") {
		s.Param1 = &p1
	}
	if cmd.Flags().Changed("param2") {
		s.Param2 = &p2
	}
	return s
}

func showPattern(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	d, ok := pattern.Default().Get(args[0])
	if !ok {
		return errors.NotFoundf("pattern %q", args[0])
	}
	cfg.Renderer = "braille"
	p := player(cfg, cfg.DetailContainer, nil)
	var out string
	p.AfterStep = func(_ int, _ automation.StepResult, sess *host.Session) {
		if b, ok := sess.Renderer.(*render.Braille); ok {
			out = b.String()
		}
	}
	sc := &automation.Scenario{Steps: []automation.Step{frameStep(cmd, d.ID)}}
	if _, err := p.Run(context.Background(), sc); err != nil {
		return err
	}

	fmt.Printf("%s\n%s\n\n", d.Name, d.Description)
	if out != "" {
		fmt.Println(out)
	}
	for _, sec := range [][2]string{
		{"About", d.About},
		{"Mathematical significance", d.MathSignificance},
		{"In nature", d.NaturalOccurrences},
		{"Fact", d.Fact},
	} {
		if sec[1] != "" {
			fmt.Printf("%s\n  %s\n", sec[0], sec[1])
		}
	}
	fmt.Printf("\nsliders: %s, %s\n", d.ParamLabel1, d.ParamLabel2)
	return nil
}

func renderPattern(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ext := strings.ToLower(filepath.Ext(output))
	if ext == ".png" && !cmd.Flags().Changed("renderer") {
		cfg.Renderer = "raster"
	}
	if ext == ".svg" {
		cfg.Renderer = "braille"
	}
	step := frameStep(cmd, args[0])
	step.SaveAs = output
	p := player(cfg, cfg.DetailContainer, nil)
	res, err := p.Run(context.Background(), &automation.Scenario{Steps: []automation.Step{step}})
	if err != nil {
		return err
	}
	r := res[0]
	if r.Fallback {
		fmt.Fprintf(os.Stderr, "unknown pattern %q, rendered the fallback\n", args[0])
	}
	fmt.Printf("wrote %s (%d frames, %.2fms/frame)\n", r.Saved, r.Frames, r.FrameMS)
	return nil
}

func benchPatterns(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ids := args
	if len(ids) == 0 {
		ids = pattern.Default().IDs()
	}
	if sweep > 0 {
		if len(ids) != 1 {
			return errors.New("--sweep needs exactly one pattern")
		}
		return benchSweep(cfg, ids[0])
	}

	fmt.Printf("benchmarking %d patterns, %d frames, %s %dx%d\n\n", len(ids), frames, cfg.Renderer, cfg.Width, cfg.Height)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PATTERN\tNODES\tVERTICES\tMEAN\tJITTER\tON BUDGET")

	var last []float64
	for _, id := range ids {
		collector := metrics.NewCollector(cfg.FPS, frames)
		p := player(cfg, cfg.DetailContainer, collector)
		var nodes, verts int
		var values map[string]float64
		p.AfterStep = func(_ int, _ automation.StepResult, sess *host.Session) {
			nodes, verts = sess.Scene.Stats()
			values, last, _ = collector.Snapshot(sess.ContainerID)
		}
		step := automation.Step{Pattern: id, Frames: frames}
		if _, err := p.Run(context.Background(), &automation.Scenario{Steps: []automation.Step{step}}); err != nil {
			return err
		}
		fmt.Fprintf(w, "%s\t%d\t%d\t%.3fms\t%.3fms\t%.0f%%\n",
			id, nodes, verts, values["frame_ms"], values["jitter_ms"], values["on_budget"]*100)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(ids) == 1 && len(last) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(last, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption("frame time (ms)")))
	}
	return nil
}

func benchSweep(cfg *config.Config, id string) error {
	p := player(cfg, cfg.DetailContainer, nil)
	res, err := p.RunSweep(context.Background(), automation.Sweep{
		Pattern: id, Param: 1, Min: 0, Max: 1, Steps: sweep, Frames: frames,
	})
	if err != nil {
		return err
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PARAM1\tMEAN\tJITTER")
	means := make([]float64, len(res))
	for i, r := range res {
		fmt.Fprintf(w, "%.0f%%\t%.3fms\t%.3fms\n", r.Value*100, r.FrameMS, r.Jitter)
		means[i] = r.FrameMS
	}
	if err := w.Flush(); err != nil {
		return err
	}
	if len(means) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(means, asciigraph.Height(8), asciigraph.Caption("mean frame time by param1")))
	}
	return nil
}

func runTour(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	sc, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	if sc.Container != "" {
		cfg.DetailContainer = sc.Container
	}
	p := player(cfg, cfg.DetailContainer, nil)
	p.Progress = func(i, n int, s automation.Step) {
		fmt.Printf("[%d/%d] %s\n", i+1, n, s.Pattern)
	}
	if sc.Name != "" {
		fmt.Printf("tour: %s\n", sc.Name)
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	res, err := p.Run(ctx, sc)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "\nSTEP\tPATTERN\tFRAMES\tMEAN\tSAVED")
	for i, r := range res {
		name := r.Pattern
		if r.Fallback {
			name += " (fallback)"
		}
		fmt.Fprintf(w, "%d\t%s\t%d\t%.3fms\t%s\n", i+1, name, r.Frames, r.FrameMS, r.Saved)
	}
	return w.Flush()
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	l := loop.New(cfg.FPS)
	pg := host.NewPage()
	registry := pattern.Default()
	h := host.New(host.Options{
		Document:  pg,
		Scheduler: l,
		Factory:   newFactory(cfg, nil),
		Patterns:  registry,
	})
	go func() {
		if err := l.Run(ctx); err != nil && errors.Cause(err) != context.Canceled {
			logger.Errorf("event loop: %v", err)
		}
	}()

	srv := stream.New(stream.Config{
		Listen:  cfg.Listen,
		Width:   cfg.Width,
		Height:  cfg.Height,
		Seed:    cfg.Seed,
	}, h, pg, l, registry)
	fmt.Printf("serving on ws://%s/ws (patterns: %s)\n", cfg.Listen, strings.Join(sortedIDs(registry), ", "))
	return srv.Serve(ctx)
}

func sortedIDs(r *pattern.Registry) []string {
	ids := r.IDs()
	sort.Strings(ids)
	return ids
}
