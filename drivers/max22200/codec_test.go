package max22200

import "testing"

func TestChannelConfigRoundTrip(t *testing.T) {
	currents := []uint16{0, 1, 512, 800, 1023}
	times := []uint16{0, 1, 1000, 65535}

	for flags := 0; flags < 16; flags++ {
		for _, hit := range currents {
			for _, hold := range currents {
				for _, ht := range times {
					for _, en := range []bool{false, true} {
						in := ChannelConfig{
							Enabled:     en,
							DriveMode:   DriveMode(flags & 1),
							BridgeMode:  BridgeMode(flags >> 1 & 1),
							Parallel:    flags>>2&1 != 0,
							Polarity:    Polarity(flags >> 3 & 1),
							HitCurrent:  hit,
							HoldCurrent: hold,
							HitTime:     ht,
						}
						cfgWord, timeWord := encodeChannelConfig(in)
						out := decodeChannelConfig(cfgWord, timeWord, en)
						if out != in {
							t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
						}
					}
				}
			}
		}
	}
}

func TestChannelConfigFieldIsolation(t *testing.T) {
	// Adjacent fields must not bleed into each other at their extremes.
	in := ChannelConfig{HitCurrent: 1023, HoldCurrent: 0, HitTime: 0}
	cfgWord, _ := encodeChannelConfig(in)
	if got := decodeChannelConfig(cfgWord, 0, false).HoldCurrent; got != 0 {
		t.Fatalf("hold current = %d after max hit current, want 0", got)
	}

	in = ChannelConfig{HitCurrent: 0, HoldCurrent: 1023}
	cfgWord, _ = encodeChannelConfig(in)
	out := decodeChannelConfig(cfgWord, 0, false)
	if out.HitCurrent != 0 || out.DriveMode != DriveCDR || out.Polarity != PolarityNormal {
		t.Fatalf("flag/hit bleed from max hold current: %+v", out)
	}
}

func TestGlobalConfigRoundTrip(t *testing.T) {
	for bits := 0; bits < 32; bits++ {
		in := GlobalConfig{
			Reset:       bits&1 != 0,
			Sleep:       bits&2 != 0,
			Diagnostics: bits&4 != 0,
			ICS:         bits&8 != 0,
			DaisyChain:  bits&16 != 0,
		}
		if out := decodeGlobalConfig(encodeGlobalConfig(in)); out != in {
			t.Fatalf("round trip mismatch:\n in=%+v\nout=%+v", in, out)
		}
	}
}

func TestChannelFaultDecode(t *testing.T) {
	var faults [NumChannels]FaultStatus
	faults[0] = FaultOvercurrent
	faults[3] = FaultOpenLoad | FaultHitNotReached
	faults[7] = FaultPlunger

	fault, status := encodeChannelFaults(faults)

	for ch := uint8(0); ch < NumChannels; ch++ {
		if got := decodeChannelFaults(fault, status, ch); got != faults[ch] {
			t.Fatalf("ch%d: faults = %v, want %v", ch, got, faults[ch])
		}
	}
}

func TestGlobalFaultsReflectedOnEveryChannel(t *testing.T) {
	// UVLO and TSD are chip-global: every channel's bitset carries them.
	for ch := uint8(0); ch < NumChannels; ch++ {
		got := decodeChannelFaults(0, statusUVLOBit|statusTSDBit, ch)
		if !got.Has(FaultUndervoltage) || !got.Has(FaultThermal) {
			t.Fatalf("ch%d: global faults missing: %v", ch, got)
		}
		if got.Count() != 2 {
			t.Fatalf("ch%d: unexpected extra faults: %v", ch, got)
		}
	}
}

func TestChannelStatusDecode(t *testing.T) {
	v := uint32(chstEnabledBit | chstHitBit | 513<<chstCurrentShift)
	st := decodeChannelStatus(v)
	if !st.Enabled || st.Fault || !st.HitPhase || st.Current != 513 {
		t.Fatalf("decoded status = %+v", st)
	}
}

func TestHitPhaseFlags(t *testing.T) {
	status := uint32(1<<2|1<<5) << statusHitShift
	for ch := uint8(0); ch < NumChannels; ch++ {
		want := ch == 2 || ch == 5
		if got := hitPhaseActive(status, ch); got != want {
			t.Fatalf("ch%d: hit phase = %v, want %v", ch, got, want)
		}
	}
}
