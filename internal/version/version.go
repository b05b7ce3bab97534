// Package version provides build and version information.
package version

// Version is the current application version.
const Version = "1.0.0"

// Milestones:
// 1.0.0 - HTTP API with metrics and rate limiting, saved-position history
// 0.9.0 - Dome view, altitude sparkline, rise/transit/set in the detail panel
// 0.8.0 - Polar sky plot with star field, observer presets, time stepping
// 0.7.0 - DE binary ephemeris, VSOP87 fallback, apparent topocentric positions
// 0.6.0 - Initial release: position engine, headless summary and JSON export
