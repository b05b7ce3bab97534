package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-skymap/internal/logging"
	"github.com/litescript/ls-skymap/internal/sky"
	"github.com/litescript/ls-skymap/internal/state"
	"github.com/litescript/ls-skymap/internal/store"
	"github.com/litescript/ls-skymap/internal/timescale"
	"github.com/litescript/ls-skymap/internal/ui"
)

var tuiCmd = &cobra.Command{
	Use:   "tui",
	Short: "Interactive sky view (default)",
	Args:  cobra.NoArgs,
	RunE:  runTUI,
}

const (
	defaultRefresh = 10 * time.Second
	minRefresh     = 1 * time.Second
	maxRefresh     = 5 * time.Minute
)

var (
	tuiPreset  string
	tuiTime    string
	tuiRefresh time.Duration
)

func init() {
	rootCmd.AddCommand(tuiCmd)
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().StringVar(&tuiPreset, "preset", "", "Start on this observer preset")
		c.Flags().StringVar(&tuiTime, "time", "", "Start at this UTC time instead of following the clock")
		c.Flags().DurationVar(&tuiRefresh, "refresh", defaultRefresh, "Refresh interval when following the clock")
	}
}

func runTUI(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		return errors.New("the sky view needs a terminal; try 'ls-skymap sky'")
	}

	// clamp the refresh interval
	if tuiRefresh < minRefresh {
		tuiRefresh = minRefresh
	} else if tuiRefresh > maxRefresh {
		tuiRefresh = maxRefresh
	}

	var opts []ui.Option
	if tuiPreset != "" {
		if _, ok := cfg.Preset(tuiPreset); !ok {
			return fmt.Errorf("unknown observer preset %q", tuiPreset)
		}
		opts = append(opts, ui.WithPreset(tuiPreset))
	}
	if tuiTime != "" {
		when, err := timescale.Parse(tuiTime)
		if err != nil {
			return err
		}
		opts = append(opts, ui.WithTime(when.Time()))
	}

	eng, closeEng, err := openEngine()
	if err != nil {
		return err
	}
	defer closeEng()

	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		logger.Warn("saving disabled: %v", err)
	} else {
		defer st.Close()
		opts = append(opts, ui.WithStore(st))
	}

	stateCfg := state.DefaultConfig()
	stateCfg.RefreshInterval = tuiRefresh
	model := ui.New(sky.NewObserver(eng), state.NewManager(stateCfg), cfg.Observers, opts...)

	// log lines would tear the alternate screen
	logger.SetLevel(logging.LevelError)

	p := tea.NewProgram(model, tea.WithAltScreen(), tea.WithContext(cmd.Context()))
	if _, err := p.Run(); err != nil && !errors.Is(err, tea.ErrProgramKilled) {
		return fmt.Errorf("run TUI: %w", err)
	}
	return nil
}
