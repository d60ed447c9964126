package max22200

// Pure register codec. Encoding masks every field to its documented width;
// decoding applies the inverse shift/mask. No I/O, no error state: range
// validation happens in the facade before anything is encoded.

// encodeChannelConfig packs the drive flags and currents into the CFG_CH
// word and the hit time into the HIT_TIME_CH word. The enable flag lives in
// the shared CH_ENABLE register and is encoded separately.
func encodeChannelConfig(c ChannelConfig) (cfg, hitTime uint32) {
	if c.DriveMode == DriveVDR {
		cfg |= cfgVDRBit
	}
	if c.BridgeMode == BridgeFull {
		cfg |= cfgFullBridgeBit
	}
	if c.Parallel {
		cfg |= cfgParallelBit
	}
	if c.Polarity == PolarityInverted {
		cfg |= cfgInvertBit
	}
	cfg |= uint32(c.HoldCurrent&currentMask) << cfgHoldShift
	cfg |= uint32(c.HitCurrent&currentMask) << cfgHitShift
	hitTime = uint32(c.HitTime) & hitTimeMask
	return cfg, hitTime
}

// decodeChannelConfig is the inverse of encodeChannelConfig. The enable
// flag is supplied by the caller from the CH_ENABLE register.
func decodeChannelConfig(cfg, hitTime uint32, enabled bool) ChannelConfig {
	c := ChannelConfig{Enabled: enabled}
	if cfg&cfgVDRBit != 0 {
		c.DriveMode = DriveVDR
	}
	if cfg&cfgFullBridgeBit != 0 {
		c.BridgeMode = BridgeFull
	}
	c.Parallel = cfg&cfgParallelBit != 0
	if cfg&cfgInvertBit != 0 {
		c.Polarity = PolarityInverted
	}
	c.HoldCurrent = uint16(cfg>>cfgHoldShift) & currentMask
	c.HitCurrent = uint16(cfg>>cfgHitShift) & currentMask
	c.HitTime = uint16(hitTime & hitTimeMask)
	return c
}

func encodeGlobalConfig(g GlobalConfig) uint32 {
	var v uint32
	if g.Reset {
		v |= gcResetBit
	}
	if g.Sleep {
		v |= gcSleepBit
	}
	if g.Diagnostics {
		v |= gcDiagBit
	}
	if g.ICS {
		v |= gcICSBit
	}
	if g.DaisyChain {
		v |= gcDaisyBit
	}
	return v
}

func decodeGlobalConfig(v uint32) GlobalConfig {
	return GlobalConfig{
		Reset:       v&gcResetBit != 0,
		Sleep:       v&gcSleepBit != 0,
		Diagnostics: v&gcDiagBit != 0,
		ICS:         v&gcICSBit != 0,
		DaisyChain:  v&gcDaisyBit != 0,
	}
}

// decodeChannelFaults projects the FAULT word plus the chip-global flags
// from the STATUS word onto one channel's fault bitset.
func decodeChannelFaults(fault, status uint32, ch uint8) FaultStatus {
	bit := uint32(1) << ch
	var f FaultStatus
	if fault>>faultOCPShift&0xFF&bit != 0 {
		f |= FaultOvercurrent
	}
	if fault>>faultOLFShift&0xFF&bit != 0 {
		f |= FaultOpenLoad
	}
	if fault>>faultDPMShift&0xFF&bit != 0 {
		f |= FaultPlunger
	}
	if fault>>faultHHFShift&0xFF&bit != 0 {
		f |= FaultHitNotReached
	}
	if status&statusUVLOBit != 0 {
		f |= FaultUndervoltage
	}
	if status&statusTSDBit != 0 {
		f |= FaultThermal
	}
	return f
}

// encodeChannelFaults builds the FAULT/STATUS word pair for a full set of
// per-channel bitsets. The inverse of decodeChannelFaults over all channels.
func encodeChannelFaults(faults [NumChannels]FaultStatus) (fault, status uint32) {
	for ch := uint8(0); ch < NumChannels; ch++ {
		bit := uint32(1) << ch
		f := faults[ch]
		if f.Has(FaultOvercurrent) {
			fault |= bit << faultOCPShift
		}
		if f.Has(FaultOpenLoad) {
			fault |= bit << faultOLFShift
		}
		if f.Has(FaultPlunger) {
			fault |= bit << faultDPMShift
		}
		if f.Has(FaultHitNotReached) {
			fault |= bit << faultHHFShift
		}
		if f.Has(FaultUndervoltage) {
			status |= statusUVLOBit
		}
		if f.Has(FaultThermal) {
			status |= statusTSDBit
		}
	}
	return fault, status
}

func decodeChannelStatus(v uint32) ChannelStatus {
	return ChannelStatus{
		Enabled:  v&chstEnabledBit != 0,
		Fault:    v&chstFaultBit != 0,
		HitPhase: v&chstHitBit != 0,
		Current:  uint16(v>>chstCurrentShift) & currentMask,
	}
}

// hitPhaseActive reads channel ch's hit-phase flag out of the STATUS word.
func hitPhaseActive(status uint32, ch uint8) bool {
	return status>>statusHitShift&0xFF&(1<<ch) != 0
}
