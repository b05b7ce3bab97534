// Command ls-skymap shows where the planets are in the sky for an observer
// on Earth, as a terminal UI, headless text, or an HTTP API.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/config"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/timescale"
	"github.com/litescript/ls-skymap/internal/version"
)

var rootCmd = &cobra.Command{
	Use:   "ls-skymap",
	Short: "Observer-relative planet positions",
	Long: `Compute the apparent azimuth, altitude, right ascension, declination and
distance of the planets for an observer at a UTC instant.

Without a subcommand the interactive sky view starts.`,
	Version:           version.Version,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: setup,
	RunE:              runTUI,
}

// Global flags
var (
	configPath  string
	logLevel    string
	ephemSource string
	deFile      string
)

// Loaded in setup
var (
	cfg    config.Config
	logger *logging.Logger
)

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "", "Config file (default "+config.DefaultPath()+")")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&ephemSource, "ephem", "", "Ephemeris source (de, vsop87, auto)")
	rootCmd.PersistentFlags().StringVar(&deFile, "de-file", "", "JPL binary ephemeris file")
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// setup loads the config file and applies the global flags over it.
func setup(cmd *cobra.Command, args []string) error {
	var err error
	cfg, err = config.Load(configPath)
	if err != nil {
		return err
	}
	if logLevel != "" {
		cfg.LogLevel = logLevel
	}
	if ephemSource != "" {
		cfg.Ephemeris.Source = ephemSource
	}
	if deFile != "" {
		cfg.Ephemeris.DEFile = deFile
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger = logging.New(logging.ParseLevel(cfg.LogLevel))
	return nil
}

// openEngine loads the configured ephemeris. The returned func releases it.
func openEngine(opts ...engine.Option) (*engine.Engine, func(), error) {
	svc, err := ephem.Open(cfg.EphemerisOptions())
	if err != nil {
		return nil, nil, fmt.Errorf("open ephemeris: %w", err)
	}
	span := svc.Span()
	logger.Info("ephemeris %s, %s", svc.Name(), span)

	opts = append([]engine.Option{engine.WithLogger(logger)}, opts...)
	closeFn := func() {
		if err := ephem.Close(svc); err != nil {
			logger.Warn("close ephemeris: %v", err)
		}
	}
	return engine.New(svc, opts...), closeFn, nil
}

// whereWhen holds the observer and time flags shared by the query commands.
type whereWhen struct {
	preset string
	lat    float64
	lon    float64
	at     string

	cmd *cobra.Command
}

func (w *whereWhen) register(cmd *cobra.Command) {
	w.cmd = cmd
	cmd.Flags().StringVar(&w.preset, "preset", "", "Observer preset name from the config")
	cmd.Flags().Float64Var(&w.lat, "lat", 0, "Observer latitude in degrees, north positive")
	cmd.Flags().Float64Var(&w.lon, "lon", 0, "Observer longitude in degrees, east positive")
	cmd.Flags().StringVar(&w.at, "time", "", "UTC time, YYYY-MM-DD HH:MM[:SS] or RFC 3339 (default now)")
}

// observer resolves --lat/--lon, else --preset, else the first preset.
func (w *whereWhen) observer() (astro.Observer, error) {
	if w.cmd.Flags().Changed("lat") || w.cmd.Flags().Changed("lon") {
		loc := astro.Observer{LatDeg: w.lat, LonDeg: w.lon}
		return loc, engine.ValidateLocation(loc)
	}
	if w.preset != "" {
		p, ok := cfg.Preset(w.preset)
		if !ok {
			return astro.Observer{}, fmt.Errorf("unknown observer preset %q", w.preset)
		}
		return p.Observer(), nil
	}
	return cfg.Observers[0].Observer(), nil
}

// pinned reports whether --time was given.
func (w *whereWhen) pinned() bool {
	return w.at != ""
}

// instant parses --time, defaulting to now.
func (w *whereWhen) instant() (timescale.Instant, error) {
	if !w.pinned() {
		return timescale.FromTime(time.Now()), nil
	}
	return timescale.Parse(w.at)
}
