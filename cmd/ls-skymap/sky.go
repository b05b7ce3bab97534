package main

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/spf13/cobra"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/report"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/state"
	"github.com/litescript/ls-skymap/internal/store"
	"github.com/litescript/ls-skymap/internal/timescale"
)

var skyCmd = &cobra.Command{
	Use:   "sky",
	Short: "Print every planet, visible first",
	Long: `
Resolve every supported planet for one observer and instant and print them
split by the horizon. A planet that fails is reported and the rest are still
shown.

With --watch the sky is printed again at each interval, followed by the rise
and set events since the previous print. Given --time, each round advances
the sky time by the interval instead of following the clock.

Examples:
  ls-skymap sky --preset london
  ls-skymap sky --mini-sky --time 2025-06-15T21:00:00Z
  ls-skymap sky --json > sky.json
  ls-skymap sky --watch 1m --time "2025-01-01 18:00"
`,
	Args: cobra.NoArgs,
	RunE: runSky,
}

var (
	skyFlags   whereWhen
	skyJSON    bool
	skyMini    bool
	skyWatch   time.Duration
	skySave    bool
	skyWorkers int
)

func init() {
	rootCmd.AddCommand(skyCmd)
	skyFlags.register(skyCmd)
	skyCmd.Flags().BoolVar(&skyJSON, "json", false, "Export the snapshot as JSON")
	skyCmd.Flags().BoolVar(&skyMini, "mini-sky", false, "Add an ASCII polar plot")
	skyCmd.Flags().DurationVar(&skyWatch, "watch", 0, "Repeat at this interval (e.g. 30s)")
	skyCmd.Flags().BoolVar(&skySave, "save", false, "Save every resolved position to the store")
	skyCmd.Flags().IntVar(&skyWorkers, "workers", 0, "Bodies resolved in parallel (default GOMAXPROCS)")
}

func runSky(cmd *cobra.Command, args []string) error {
	loc, err := skyFlags.observer()
	if err != nil {
		return err
	}
	when, err := skyFlags.instant()
	if err != nil {
		return err
	}

	eng, closeEng, err := openEngine()
	if err != nil {
		return err
	}
	defer closeEng()

	obs := sky.NewObserver(eng, sky.WithWorkers(skyWorkers), sky.WithLogger(logger))
	mgr := state.NewManager(state.DefaultConfig())
	out := cmd.OutOrStdout()

	var st *store.Store
	if skySave {
		if st, err = store.Open(cfg.Store.Path, logger); err != nil {
			return err
		}
		defer st.Close()
	}

	ctx := cmd.Context()
	outputOnce := func(when timescale.Instant) error {
		snap, err := obs.Observe(ctx, loc, when)
		mgr.Update(&snap, err)
		if err != nil {
			return err
		}
		if err := writeSky(out, &snap); err != nil {
			return err
		}
		if st != nil {
			n, err := saveSnapshot(ctx, st, &snap, loc)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "Saved %d new record(s).\n", n)
		}
		return nil
	}

	if skyWatch <= 0 {
		return outputOnce(when)
	}

	if err := outputOnce(when); err != nil {
		logger.Error("%v", err)
	}

	ticker := time.NewTicker(skyWatch)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if skyFlags.pinned() {
				when = timescale.FromTime(when.Time().Add(skyWatch))
			} else {
				when = timescale.FromTime(time.Now())
			}
			fmt.Fprintln(out)
			if err := outputOnce(when); err != nil {
				logger.Error("%v", err)
				continue
			}
			if events := eventsAt(mgr.Snapshot().Events, when.Time()); len(events) > 0 {
				fmt.Fprintln(out)
				report.WriteEvents(out, events, len(events))
			}
		}
	}
}

// eventsAt returns the events detected by the snapshot taken at t.
func eventsAt(events []state.Event, t time.Time) []state.Event {
	var out []state.Event
	for _, e := range events {
		if e.Timestamp.Equal(t) {
			out = append(out, e)
		}
	}
	return out
}

func writeSky(out io.Writer, snap *sky.Snapshot) error {
	if skyJSON {
		return report.ExportSnapshot(snap).WriteJSON(out)
	}
	report.WriteSummaryTable(out, snap)
	if skyMini {
		fmt.Fprintln(out)
		report.WriteMiniSky(out, snap, report.DefaultMiniSkyConfig())
	}
	return nil
}

// saveSnapshot stores every resolved position and returns how many were new.
func saveSnapshot(ctx context.Context, st *store.Store, snap *sky.Snapshot, loc astro.Observer) (int, error) {
	when := timescale.FromTime(snap.Time)
	saved := 0
	for _, p := range snap.Positions {
		rec, err := store.NewRecord(p, loc, when)
		if err != nil {
			return saved, err
		}
		ok, err := st.Save(ctx, rec)
		if err != nil {
			return saved, err
		}
		if ok {
			saved++
		}
	}
	return saved, nil
}
