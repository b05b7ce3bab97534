package main

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/spf13/cobra"

	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/metrics"
	"github.com/litescript/ls-skymap/internal/server"
	"github.com/litescript/ls-skymap/internal/sky"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve positions over HTTP",
	Long: `
Serve the JSON API:

  GET /api/bodies
  GET /api/positions?lat=&lon=&time=
  GET /api/positions/{body}?lat=&lon=&time=[&detail=true]
  GET /metrics

Missing lat and lon default to 0 and a missing time to now.
`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var (
	serveAddr  string
	serveRate  int
	serveBurst int
)

func init() {
	rootCmd.AddCommand(serveCmd)
	serveCmd.Flags().StringVar(&serveAddr, "addr", "", "Listen address (default from config)")
	serveCmd.Flags().IntVar(&serveRate, "rate", -1, "Requests per minute per client, 0 disables (default from config)")
	serveCmd.Flags().IntVar(&serveBurst, "burst", -1, "Rate limit burst (default from config)")
}

func runServe(cmd *cobra.Command, args []string) error {
	addr := cfg.Server.Addr
	if serveAddr != "" {
		addr = serveAddr
	}
	rate, burst := cfg.Server.RatePerMinute, cfg.Server.Burst
	if serveRate >= 0 {
		rate = serveRate
	}
	if serveBurst >= 0 {
		burst = serveBurst
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))
	collector, err := metrics.NewCollector(reg)
	if err != nil {
		return err
	}

	eng, closeEng, err := openEngine(engine.WithRecorder(collector))
	if err != nil {
		return err
	}
	defer closeEng()

	srv := server.New(sky.NewObserver(eng, sky.WithLogger(logger)),
		server.WithMetrics(collector),
		server.WithRateLimit(rate, burst),
		server.WithLogger(logger),
	)
	return srv.ListenAndServe(cmd.Context(), addr)
}
