package max22200

import "time"

// DriveMode selects the regulation strategy during hit/hold phases.
type DriveMode uint8

const (
	DriveCDR DriveMode = iota // current drive regulation
	DriveVDR                  // voltage drive regulation
)

// BridgeMode selects the output bridge topology.
type BridgeMode uint8

const (
	BridgeHalf BridgeMode = iota
	BridgeFull
)

// Polarity selects the output polarity.
type Polarity uint8

const (
	PolarityNormal Polarity = iota
	PolarityInverted
)

// ChannelConfig holds the per-channel drive parameters. It is replaced
// wholesale on re-configuration; the driver never partially mutates a
// caller-supplied value.
type ChannelConfig struct {
	Enabled     bool
	DriveMode   DriveMode
	BridgeMode  BridgeMode
	Parallel    bool
	Polarity    Polarity
	HitCurrent  uint16 // 0..1023
	HoldCurrent uint16 // 0..1023
	HitTime     uint16 // 0..65535 chopping periods
}

// GlobalConfig holds the chip-wide settings.
type GlobalConfig struct {
	Reset       bool
	Sleep       bool
	Diagnostics bool
	ICS         bool // integrated current sensing
	DaisyChain  bool
}

// FaultStatus is a bitset of fault kinds for one channel. Undervoltage and
// thermal shutdown are chip-global on the device and are reflected into
// every channel's bitset.
type FaultStatus uint8

const (
	FaultOvercurrent   FaultStatus = 1 << iota // OCP
	FaultOpenLoad                              // OLF
	FaultPlunger                               // DPM, plunger movement detected
	FaultUndervoltage                          // UVLO
	FaultHitNotReached                         // HHF
	FaultThermal                               // TSD
)

func (f FaultStatus) Has(flag FaultStatus) bool { return f&flag != 0 }

// Count reports the number of distinct fault kinds set.
func (f FaultStatus) Count() int {
	n := 0
	for b := FaultStatus(1); b != 0 && b <= FaultThermal; b <<= 1 {
		if f&b != 0 {
			n++
		}
	}
	return n
}

func (f FaultStatus) String() string {
	switch f {
	case 0:
		return "none"
	case FaultOvercurrent:
		return "overcurrent"
	case FaultOpenLoad:
		return "open_load"
	case FaultPlunger:
		return "plunger_movement"
	case FaultUndervoltage:
		return "undervoltage"
	case FaultHitNotReached:
		return "hit_not_reached"
	case FaultThermal:
		return "thermal_shutdown"
	}
	return "multiple"
}

// ChannelStatus is a read-side snapshot of one channel, recomputed per read.
type ChannelStatus struct {
	Enabled  bool
	Fault    bool
	Current  uint16 // ICS reading, 0..1023
	HitPhase bool
}

// ChannelState is the operational phase tracked per channel.
type ChannelState uint8

const (
	StateDisabled ChannelState = iota
	StateEnabled
	StateHitPhase
	StateHoldPhase
	StateFault
)

func (s ChannelState) String() string {
	switch s {
	case StateDisabled:
		return "disabled"
	case StateEnabled:
		return "enabled"
	case StateHitPhase:
		return "hit_phase"
	case StateHoldPhase:
		return "hold_phase"
	case StateFault:
		return "fault"
	}
	return "unknown"
}

// Statistics are monotonic driver counters. They reset only through
// ResetStatistics, never through configuration changes.
type Statistics struct {
	TotalTransfers  uint32
	FailedTransfers uint32
	FaultEvents     uint32
	StateChanges    uint32
	Uptime          time.Duration
}

// SuccessRate reports the transfer success ratio as a percentage.
func (s Statistics) SuccessRate() float64 {
	if s.TotalTransfers == 0 {
		return 100
	}
	return float64(s.TotalTransfers-s.FailedTransfers) / float64(s.TotalTransfers) * 100
}

// FaultHandler receives edge-triggered fault notifications. Invoked
// synchronously on the goroutine performing the status read.
type FaultHandler interface {
	OnFault(ch uint8, kind FaultStatus)
}

// FaultHandlerFunc adapts a closure to FaultHandler.
type FaultHandlerFunc func(ch uint8, kind FaultStatus)

func (f FaultHandlerFunc) OnFault(ch uint8, kind FaultStatus) { f(ch, kind) }

// StateHandler receives channel phase transitions. Invoked synchronously
// during the call that produced the transition.
type StateHandler interface {
	OnStateChange(ch uint8, prev, next ChannelState)
}

// StateHandlerFunc adapts a closure to StateHandler.
type StateHandlerFunc func(ch uint8, prev, next ChannelState)

func (f StateHandlerFunc) OnStateChange(ch uint8, prev, next ChannelState) { f(ch, prev, next) }
