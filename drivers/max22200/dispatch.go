package max22200

// Fault dispatch is edge-triggered: a kind is reported once on its 0→1
// transition against the channel's last observed bitset, not on every poll
// while it stays set. The baseline follows every fresh observation, so a
// kind that clears and sets again is reported again.

var faultKinds = [...]FaultStatus{
	FaultOvercurrent,
	FaultOpenLoad,
	FaultPlunger,
	FaultUndervoltage,
	FaultHitNotReached,
	FaultThermal,
}

// dispatchFaults folds one channel's freshly decoded bitset into the
// dispatcher and the state machine.
func (d *Device) dispatchFaults(ch uint8, fresh FaultStatus) {
	c := &d.ch[ch]
	newly := fresh &^ c.faults
	c.faults = fresh

	for _, k := range faultKinds {
		if newly.Has(k) {
			d.stats.FaultEvents++
			if d.faultHandler != nil {
				d.faultHandler.OnFault(ch, k)
			}
		}
	}

	// Any observed fault bit drives an operating channel into Fault. The
	// reverse transition is never automatic: clearing alone leaves the
	// channel in Fault until it is explicitly re-enabled.
	if fresh != 0 {
		switch c.state {
		case StateEnabled, StateHitPhase, StateHoldPhase:
			d.setState(ch, StateFault)
		}
	}
}

// resetBaselines clears every channel's last observed bitset so the next
// poll can re-detect recurring faults.
func (d *Device) resetBaselines() {
	for ch := range d.ch {
		d.ch[ch].faults = 0
	}
}
