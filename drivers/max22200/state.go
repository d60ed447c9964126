package max22200

// Per-channel record. The eight records live in a fixed array on the
// Device; no per-channel allocation.
type channel struct {
	cfg    ChannelConfig
	state  ChannelState
	faults FaultStatus // last observed bitset, baseline for edge detection
}

// setState applies a phase transition. Re-observing the current state is a
// no-op: only changes count and only changes reach the handler.
func (d *Device) setState(ch uint8, next ChannelState) {
	c := &d.ch[ch]
	if c.state == next {
		return
	}
	prev := c.state
	c.state = next
	d.stats.StateChanges++
	if d.stateHandler != nil {
		d.stateHandler.OnStateChange(ch, prev, next)
	}
}

// applyEnable drives the state machine for an enable/disable command after
// the enable-bit write has been committed.
//
// A channel in Fault re-enables by replaying Fault→Disabled→Enabled: the
// fault phase is only left through an intentional re-enable, never by the
// fault clear alone.
func (d *Device) applyEnable(ch uint8, on bool) {
	if !on {
		d.setState(ch, StateDisabled)
		return
	}
	if d.ch[ch].state == StateFault {
		d.setState(ch, StateDisabled)
	}
	if d.ch[ch].state == StateDisabled {
		d.setState(ch, StateEnabled)
	}
}

// observePhase folds a freshly read hit-phase flag into the state machine.
// The device times the hit interval; the driver only reflects what it
// reports. Disabled and Fault phases are not advanced by polling.
func (d *Device) observePhase(ch uint8, hitActive bool) {
	switch d.ch[ch].state {
	case StateEnabled:
		if hitActive {
			d.setState(ch, StateHitPhase)
		}
	case StateHitPhase:
		if !hitActive {
			d.setState(ch, StateHoldPhase)
		}
	}
}
