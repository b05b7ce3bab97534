package store

import (
	"encoding/json"
	"fmt"
	"time"

	"gorm.io/datatypes"

	"github.com/litescript/ls-skymap/internal/astro"
	"github.com/litescript/ls-skymap/internal/engine"
	"github.com/litescript/ls-skymap/internal/timescale"
)

// DateLayout is the minute-precision UTC form used as the record date.
const DateLayout = "2006-01-02 15:04"

// Record is one saved body position. (Planet, Date) is unique.
type Record struct {
	ID             uint           `gorm:"primaryKey" json:"-"`
	Planet         string         `gorm:"not null;uniqueIndex:idx_planet_date" json:"planet"`
	Date           string         `gorm:"not null;uniqueIndex:idx_planet_date" json:"date"`
	DistanceAU     float64        `gorm:"not null" json:"distance_au"`
	RightAscension string         `gorm:"not null" json:"right_ascension"`
	Declination    string         `gorm:"not null" json:"declination"`
	Payload        datatypes.JSON `json:"payload,omitempty"`
	CreatedAt      time.Time      `gorm:"autoCreateTime" json:"created_at"`
}

// TableName keeps the table name stable across struct renames.
func (Record) TableName() string { return "planet_positions" }

// payload is the full observation stored alongside the summary columns.
type payload struct {
	Observer astro.Observer          `json:"observer"`
	Time     time.Time               `json:"time"`
	Position engine.ApparentPosition `json:"position"`
}

// NewRecord builds the record for pos observed from loc at when.
func NewRecord(pos engine.ApparentPosition, loc astro.Observer, when timescale.Instant) (Record, error) {
	raw, err := json.Marshal(payload{Observer: loc, Time: when.Time(), Position: pos})
	if err != nil {
		return Record{}, fmt.Errorf("encode payload: %w", err)
	}
	return Record{
		Planet:         pos.BodyName,
		Date:           when.Time().Format(DateLayout),
		DistanceAU:     pos.DistanceAU,
		RightAscension: astro.FormatRA(pos.RightAscensionHours),
		Declination:    astro.FormatDec(pos.DeclinationDeg),
		Payload:        datatypes.JSON(raw),
	}, nil
}
