// Package config loads device presets from JSON: one global section plus
// per-channel entries. Presets are data, not commands; applying one to a
// device is the caller's job.
package config

import (
	"errors"

	"github.com/andreyvit/tinyjson"

	"max22200-go/drivers/max22200"
	"max22200-go/x/mathx"
)

// Preset is one complete device setup.
type Preset struct {
	Global   max22200.GlobalConfig
	Channels [max22200.NumChannels]max22200.ChannelConfig
}

// EmbeddedPresetLookup allows overriding how named presets are resolved.
var EmbeddedPresetLookup = func(name string) ([]byte, bool) {
	b, ok := embeddedPresets[name]
	return b, ok
}

// Load resolves a named embedded preset and parses it.
func Load(name string) (Preset, error) {
	raw, ok := EmbeddedPresetLookup(name)
	if !ok || len(raw) == 0 {
		return Preset{}, errors.New("no embedded preset: " + name)
	}
	return Parse(raw)
}

// Parse decodes a preset document. Channels absent from the document stay
// at their zero configuration. Current and timing values are clamped to
// the device's encodable ranges.
func Parse(raw []byte) (p Preset, err error) {
	defer func() {
		if recover() != nil {
			p, err = Preset{}, errors.New("malformed preset JSON")
		}
	}()

	r := tinyjson.Raw(raw)
	val := r.Value()
	r.EnsureEOF()

	m, ok := val.(map[string]any)
	if !ok {
		return Preset{}, errors.New("preset is not a JSON object")
	}

	if g, ok := m["global"].(map[string]any); ok {
		p.Global = parseGlobal(g)
	}
	chs, ok := m["channels"].([]any)
	if !ok {
		return p, nil
	}
	for _, e := range chs {
		cm, ok := e.(map[string]any)
		if !ok {
			return Preset{}, errors.New("channel entry is not an object")
		}
		idx, ok := intField(cm, "channel")
		if !ok || !mathx.Between(idx, 0, max22200.NumChannels-1) {
			return Preset{}, errors.New("channel index missing or out of range")
		}
		cc, err := parseChannel(cm)
		if err != nil {
			return Preset{}, err
		}
		p.Channels[idx] = cc
	}
	return p, nil
}

func parseGlobal(m map[string]any) max22200.GlobalConfig {
	return max22200.GlobalConfig{
		Sleep:       boolField(m, "sleep"),
		Diagnostics: boolField(m, "diagnostics"),
		ICS:         boolField(m, "ics"),
		DaisyChain:  boolField(m, "daisy_chain"),
	}
}

func parseChannel(m map[string]any) (max22200.ChannelConfig, error) {
	c := max22200.ChannelConfig{
		Enabled:  boolField(m, "enabled"),
		Parallel: boolField(m, "parallel"),
	}

	switch s, _ := m["drive"].(string); s {
	case "", "cdr":
		c.DriveMode = max22200.DriveCDR
	case "vdr":
		c.DriveMode = max22200.DriveVDR
	default:
		return c, errors.New("unknown drive mode: " + s)
	}
	switch s, _ := m["bridge"].(string); s {
	case "", "half":
		c.BridgeMode = max22200.BridgeHalf
	case "full":
		c.BridgeMode = max22200.BridgeFull
	default:
		return c, errors.New("unknown bridge mode: " + s)
	}
	if boolField(m, "invert") {
		c.Polarity = max22200.PolarityInverted
	}

	if v, ok := intField(m, "hit_current"); ok {
		c.HitCurrent = uint16(mathx.Clamp(v, 0, max22200.MaxHitCurrent))
	}
	if v, ok := intField(m, "hold_current"); ok {
		c.HoldCurrent = uint16(mathx.Clamp(v, 0, max22200.MaxHoldCurrent))
	}
	if v, ok := intField(m, "hit_time"); ok {
		c.HitTime = uint16(mathx.Clamp(v, 0, max22200.MaxHitTime))
	}
	return c, nil
}

func boolField(m map[string]any, key string) bool {
	b, _ := m[key].(bool)
	return b
}

// intField tolerates the numeric types a JSON decoder may produce.
func intField(m map[string]any, key string) (int, bool) {
	switch v := m[key].(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case uint64:
		return int(v), true
	case float64:
		return int(v), true
	}
	return 0, false
}
