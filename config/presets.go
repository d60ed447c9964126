package config

// -----------------------------------------------------------------------------
// Embedded presets
//
// Populate embeddedPresets at build time (e.g. via code generation) or
// manually during development.
// Key: preset name passed to Load
// Val: raw JSON bytes for that preset
// -----------------------------------------------------------------------------

const presetSolenoid = `{
  "global": {
    "diagnostics": true,
    "ics": true
  },
  "channels": [
    {"channel": 0, "drive": "cdr", "hit_current": 800, "hold_current": 200, "hit_time": 1000},
    {"channel": 1, "drive": "cdr", "hit_current": 800, "hold_current": 200, "hit_time": 1000}
  ]
}`

const presetMotorFullBridge = `{
  "global": {
    "diagnostics": true,
    "ics": true
  },
  "channels": [
    {"channel": 0, "drive": "vdr", "bridge": "full", "hold_current": 512},
    {"channel": 2, "drive": "vdr", "bridge": "full", "invert": true, "hold_current": 512}
  ]
}`

var embeddedPresets = map[string][]byte{
	"solenoid":          []byte(presetSolenoid),
	"motor-full-bridge": []byte(presetMotorFullBridge),
}
