// Package report renders sky snapshots as text tables, JSON and ASCII plots
// for the headless command modes.
package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/sky"
)

// SnapshotExport is the JSON-serializable representation of a sky snapshot.
type SnapshotExport struct {
	Time     time.Time      `json:"time"`
	Observer ObserverExport `json:"observer"`
	Source   string         `json:"source"`
	Bodies   []BodyExport   `json:"bodies"`
	Visible  []string       `json:"visible"`
	Hidden   []string       `json:"hidden"`
	Failures []sky.Failure  `json:"failures,omitempty"`
}

// ObserverExport is a JSON-friendly observer.
type ObserverExport struct {
	Name   string  `json:"name,omitempty"`
	LatDeg float64 `json:"latitude_deg"`
	LonDeg float64 `json:"longitude_deg"`
}

// BodyExport is one resolved body with formatted coordinates.
type BodyExport struct {
	Name                string  `json:"body_name"`
	AzimuthDeg          float64 `json:"azimuth_deg"`
	AltitudeDeg         float64 `json:"altitude_deg"`
	RightAscensionHours float64 `json:"right_ascension_hours"`
	DeclinationDeg      float64 `json:"declination_deg"`
	DistanceAU          float64 `json:"distance_au"`
	RA                  string  `json:"ra"`
	Dec                 string  `json:"dec"`
	LightTimeSec        float64 `json:"light_time_s"`
	Visible             bool    `json:"visible"`
}

// ExportSnapshot converts a sky snapshot to an exportable form.
func ExportSnapshot(snap *sky.Snapshot) *SnapshotExport {
	if snap == nil {
		return &SnapshotExport{}
	}
	export := &SnapshotExport{
		Time: snap.Time,
		Observer: ObserverExport{
			Name:   snap.Observer.Name,
			LatDeg: snap.Observer.LatDeg,
			LonDeg: snap.Observer.LonDeg,
		},
		Source:   snap.Source,
		Failures: snap.Failures,
		Visible:  []string{},
		Hidden:   []string{},
	}
	for _, p := range snap.Positions {
		export.Bodies = append(export.Bodies, BodyExport{
			Name:                p.BodyName,
			AzimuthDeg:          p.AzimuthDeg,
			AltitudeDeg:         p.AltitudeDeg,
			RightAscensionHours: p.RightAscensionHours,
			DeclinationDeg:      p.DeclinationDeg,
			DistanceAU:          p.DistanceAU,
			RA:                  astro.FormatRA(p.RightAscensionHours),
			Dec:                 astro.FormatDec(p.DeclinationDeg),
			LightTimeSec:        astro.LightTimeFromAU(p.DistanceAU),
			Visible:             p.Visible(),
		})
	}
	for _, p := range snap.Batch.Visible {
		export.Visible = append(export.Visible, p.BodyName)
	}
	for _, p := range snap.Batch.Hidden {
		export.Hidden = append(export.Hidden, p.BodyName)
	}
	return export
}

// WriteJSON writes the snapshot as JSON to the given writer.
func (s *SnapshotExport) WriteJSON(w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(s)
}
