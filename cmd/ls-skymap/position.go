package main

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/litescript/ls-skymap/internal/ephem"
	"github.com/litescript/ls-skymap/internal/report"
	"github.com/litescript/ls-skymap/internal/store"
	"github.com/litescript/ls-skymap/internal/timescale"
)

var positionCmd = &cobra.Command{
	Use:   "position [body]",
	Short: "Show one planet's position for an observer",
	Long: `
Show the apparent position of one planet: azimuth, altitude, right ascension,
declination and distance, with solar elongation, light time and the next
rise/transit/set.

With no body on a terminal, the planet and time are prompted for.

Examples:
  ls-skymap position Mars --preset colombo --time "2025-01-01 00:00"
  ls-skymap position jupiter --lat 51.5 --lon -0.13 --json
  ls-skymap position Saturn --save
`,
	Args: cobra.MaximumNArgs(1),
	RunE: runPosition,
}

var (
	posFlags whereWhen
	posJSON  bool
	posSave  bool
)

func init() {
	rootCmd.AddCommand(positionCmd)
	posFlags.register(positionCmd)
	positionCmd.Flags().BoolVar(&posJSON, "json", false, "Print the position as JSON")
	positionCmd.Flags().BoolVar(&posSave, "save", false, "Save the position to the store")
}

func runPosition(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()

	var input string
	if len(args) == 1 {
		input = args[0]
	} else {
		if !term.IsTerminal(int(os.Stdin.Fd())) {
			return errors.New("a body is required when stdin is not a terminal")
		}
		var err error
		input, posFlags.at, err = prompt(cmd.InOrStdin(), out)
		if err != nil {
			return err
		}
	}

	when, err := posFlags.instant()
	if err != nil {
		return err
	}
	body, err := ephem.Lookup(input)
	if err != nil {
		return err
	}
	loc, err := posFlags.observer()
	if err != nil {
		return err
	}

	eng, closeEng, err := openEngine()
	if err != nil {
		return err
	}
	defer closeEng()

	if posJSON {
		pos, err := eng.BodyPosition(body.DisplayName, loc, when)
		if err != nil {
			return err
		}
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(pos); err != nil {
			return err
		}
	} else {
		d, err := eng.Describe(body.DisplayName, loc, when)
		if err != nil {
			return err
		}
		report.WriteDetail(out, d, loc, when.Time())
	}

	if !posSave {
		return nil
	}
	pos, err := eng.BodyPosition(body.DisplayName, loc, when)
	if err != nil {
		return err
	}
	return saveRecords(out, func(st *store.Store) (int, error) {
		rec, err := store.NewRecord(pos, loc, when)
		if err != nil {
			return 0, err
		}
		ok, err := st.Save(cmd.Context(), rec)
		if err != nil || !ok {
			return 0, err
		}
		return 1, nil
	})
}

// prompt asks for a planet and a time, one line each. An empty time means
// now.
func prompt(in io.Reader, out io.Writer) (body, at string, err error) {
	r := bufio.NewReader(in)
	ask := func(q string) (string, error) {
		fmt.Fprint(out, q)
		line, err := r.ReadString('\n')
		if err != nil && !(errors.Is(err, io.EOF) && line != "") {
			return "", err
		}
		return strings.TrimSpace(line), nil
	}

	if body, err = ask("Planet (" + strings.Join(ephem.ListSupported(), ", ") + "): "); err != nil {
		return "", "", err
	}
	if at, err = ask("Date and time, UTC (YYYY-MM-DD HH:MM, empty for now): "); err != nil {
		return "", "", err
	}
	if at != "" {
		if _, err := timescale.Parse(at); err != nil {
			return "", "", err
		}
	}
	return body, at, nil
}

// saveRecords opens the store, runs save and reports how many records were
// new.
func saveRecords(out io.Writer, save func(*store.Store) (int, error)) error {
	st, err := store.Open(cfg.Store.Path, logger)
	if err != nil {
		return err
	}
	defer st.Close()

	n, err := save(st)
	if err != nil {
		return err
	}
	if n == 0 {
		fmt.Fprintln(out, "Already saved.")
		return nil
	}
	fmt.Fprintf(out, "Saved %d record(s) to %s.\n", n, cfg.Store.Path)
	return nil
}
