// Package max22200 provides a driver for the MAX22200 octal
// serial-controlled solenoid and motor driver.
//
// Design notes (datasheet references):
// • SPI mode 0, MSB first; 10MHz standalone, 5MHz daisy-chained.
// • 32-bit register words behind one-byte addresses; read bit 0x80.
// • Hit/hold currents are 10-bit codes, hit time a 16-bit chop count.
// • Per-channel OCP/OLF/DPM/HHF fault flags; UVLO and TSD are chip-global.
//
// The driver is synchronous and blocking: every operation performs at most
// a handful of register transactions and returns when they complete or
// fail. It holds no lock and is not safe for concurrent use from multiple
// goroutines; callers needing that must serialize externally.
package max22200

import (
	"time"

	"max22200-go/errcode"
)

// Config carries construction-time driver options.
type Config struct {
	Diagnostics bool // enable diagnostic features at Init
	DaisyChain  bool // shared-bus framing; lowers the SPI clock limit
}

// DefaultConfig enables diagnostics on a standalone bus.
func DefaultConfig() Config {
	return Config{Diagnostics: true}
}

// Device represents one MAX22200 behind a Transport.
type Device struct {
	tr  Transport
	cfg Config

	global      GlobalConfig
	ch          [NumChannels]channel
	stats       Statistics
	startedAt   time.Time
	initialized bool

	faultHandler FaultHandler
	stateHandler StateHandler

	// Fixed frame buffers to avoid per-call heap allocations.
	w [frameLen]byte
	r [frameLen]byte
}

// New constructs a Device with the supplied transport and options.
func New(tr Transport, cfg Config) *Device {
	return &Device{tr: tr, cfg: cfg}
}

// Init brings the transport up, pushes a known-good global configuration
// and clears all channel state to disabled. Calling Init on an initialized
// device is a no-op.
func (d *Device) Init() error {
	const op = "init"
	if d.initialized {
		return nil
	}
	if err := d.tr.Init(); err != nil {
		return &errcode.E{C: errcode.InitializationError, Op: op, Err: err}
	}
	if !d.tr.Ready() {
		return &errcode.E{C: errcode.InitializationError, Op: op, Msg: "transport not ready"}
	}
	freq := uint32(MaxSPIFreqStandalone)
	if d.cfg.DaisyChain {
		freq = MaxSPIFreqDaisyChain
	}
	if err := d.tr.Configure(BusConfig{Frequency: freq, Mode: 0, MSBFirst: true}); err != nil {
		return &errcode.E{C: errcode.InitializationError, Op: op, Err: err}
	}
	// First handshake. Reading STATUS also clears the power-on UVLO latch.
	if _, err := d.readReg(op, regStatus); err != nil {
		return &errcode.E{C: errcode.InitializationError, Op: op, Err: err}
	}
	if err := d.Reset(); err != nil {
		return err
	}
	g := GlobalConfig{
		Diagnostics: d.cfg.Diagnostics,
		ICS:         true,
		DaisyChain:  d.cfg.DaisyChain,
	}
	if err := d.ConfigureGlobal(g); err != nil {
		return err
	}
	if err := d.ClearFaults(); err != nil {
		return err
	}
	d.startedAt = time.Now()
	d.initialized = true
	return nil
}

// Deinit disables all channels and puts the device to sleep.
func (d *Device) Deinit() error {
	if !d.initialized {
		return nil
	}
	if err := d.EnableAllChannels(false); err != nil {
		return err
	}
	if err := d.SetSleepMode(true); err != nil {
		return err
	}
	d.initialized = false
	return nil
}

// Reset pulses the device's reset bit and returns every channel to the
// disabled phase with an empty configuration.
func (d *Device) Reset() error {
	const op = "reset"
	if err := d.writeReg(op, regGlobalCfg, gcResetBit); err != nil {
		return err
	}
	if err := d.writeReg(op, regGlobalCfg, 0); err != nil {
		return err
	}
	d.global = GlobalConfig{}
	for ch := range d.ch {
		d.ch[ch] = channel{}
	}
	return nil
}

// Initialized reports whether Init has completed.
func (d *Device) Initialized() bool { return d.initialized }

// ---------------- Global configuration ----------------

// ConfigureGlobal writes the chip-wide settings. The in-memory copy is
// committed only after the register write succeeds.
func (d *Device) ConfigureGlobal(g GlobalConfig) error {
	if err := d.writeReg("configure_global", regGlobalCfg, encodeGlobalConfig(g)); err != nil {
		return err
	}
	d.global = g
	return nil
}

// ReadGlobalConfig reads the chip-wide settings back from the device.
func (d *Device) ReadGlobalConfig() (GlobalConfig, error) {
	v, err := d.readReg("read_global_config", regGlobalCfg)
	if err != nil {
		return GlobalConfig{}, err
	}
	return decodeGlobalConfig(v), nil
}

// SetSleepMode switches the low-power sleep state.
func (d *Device) SetSleepMode(on bool) error {
	if err := d.modifyGlobal("set_sleep_mode", gcSleepBit, on); err != nil {
		return err
	}
	d.global.Sleep = on
	return nil
}

// SetDiagnosticMode switches the diagnostic features.
func (d *Device) SetDiagnosticMode(on bool) error {
	if err := d.modifyGlobal("set_diagnostic_mode", gcDiagBit, on); err != nil {
		return err
	}
	d.global.Diagnostics = on
	return nil
}

// SetICS switches integrated current sensing.
func (d *Device) SetICS(on bool) error {
	if err := d.modifyGlobal("set_ics", gcICSBit, on); err != nil {
		return err
	}
	d.global.ICS = on
	return nil
}

// modifyGlobal is the read-modify-write path for single GLOBAL_CFG bits.
func (d *Device) modifyGlobal(op string, bit uint32, on bool) error {
	v, err := d.readReg(op, regGlobalCfg)
	if err != nil {
		return err
	}
	if on {
		v |= bit
	} else {
		v &^= bit
	}
	return d.writeReg(op, regGlobalCfg, v)
}

// ---------------- Channel configuration ----------------

// ConfigureChannel replaces channel ch's configuration wholesale. Values
// are validated before any transaction; on transport failure the in-memory
// configuration is left unchanged.
func (d *Device) ConfigureChannel(ch uint8, cfg ChannelConfig) error {
	const op = "configure_channel"
	if err := checkChannel(op, ch); err != nil {
		return err
	}
	if err := checkChannelConfig(op, cfg); err != nil {
		return err
	}
	if cfg.Enabled && d.ch[ch].faults != 0 {
		return &errcode.E{C: errcode.HardwareFault, Op: op, Msg: "channel has uncleared faults"}
	}
	cfgWord, timeWord := encodeChannelConfig(cfg)
	if err := d.writeReg(op, cfgChReg(ch), cfgWord); err != nil {
		return err
	}
	if err := d.writeReg(op, hitTimeReg(ch), timeWord); err != nil {
		return err
	}
	if err := d.writeReg(op, regChEnable, d.enableMask(ch, cfg.Enabled)); err != nil {
		return err
	}
	d.ch[ch].cfg = cfg
	d.applyEnable(ch, cfg.Enabled)
	return nil
}

// ReadChannelConfig reads channel ch's configuration back from the device.
func (d *Device) ReadChannelConfig(ch uint8) (ChannelConfig, error) {
	const op = "read_channel_config"
	if err := checkChannel(op, ch); err != nil {
		return ChannelConfig{}, err
	}
	cfgWord, err := d.readReg(op, cfgChReg(ch))
	if err != nil {
		return ChannelConfig{}, err
	}
	timeWord, err := d.readReg(op, hitTimeReg(ch))
	if err != nil {
		return ChannelConfig{}, err
	}
	enable, err := d.readReg(op, regChEnable)
	if err != nil {
		return ChannelConfig{}, err
	}
	return decodeChannelConfig(cfgWord, timeWord, enable&(1<<ch) != 0), nil
}

// ConfigureAllChannels applies one configuration per channel. The first
// failure aborts the sweep.
func (d *Device) ConfigureAllChannels(cfgs [NumChannels]ChannelConfig) error {
	for ch := uint8(0); ch < NumChannels; ch++ {
		if err := d.ConfigureChannel(ch, cfgs[ch]); err != nil {
			return err
		}
	}
	return nil
}

// ReadAllChannelConfigs reads every channel's configuration back.
func (d *Device) ReadAllChannelConfigs() ([NumChannels]ChannelConfig, error) {
	var out [NumChannels]ChannelConfig
	for ch := uint8(0); ch < NumChannels; ch++ {
		c, err := d.ReadChannelConfig(ch)
		if err != nil {
			return out, err
		}
		out[ch] = c
	}
	return out, nil
}

// ---------------- Channel control ----------------

// EnableChannel switches channel ch on or off and drives the phase
// machine. Enabling a channel with uncleared faults is refused before any
// transaction is issued.
func (d *Device) EnableChannel(ch uint8, on bool) error {
	const op = "enable_channel"
	if err := checkChannel(op, ch); err != nil {
		return err
	}
	if on && d.ch[ch].faults != 0 {
		return &errcode.E{C: errcode.HardwareFault, Op: op, Msg: "channel has uncleared faults"}
	}
	if err := d.writeReg(op, regChEnable, d.enableMask(ch, on)); err != nil {
		return err
	}
	d.ch[ch].cfg.Enabled = on
	d.applyEnable(ch, on)
	return nil
}

// EnableAllChannels switches every channel on or off with a single write.
// Channels holding uncleared faults are skipped on enable; they require an
// explicit per-channel re-enable after a fault clear.
func (d *Device) EnableAllChannels(on bool) error {
	const op = "enable_all_channels"
	var mask uint32
	if on {
		for ch := uint8(0); ch < NumChannels; ch++ {
			if d.ch[ch].faults == 0 {
				mask |= 1 << ch
			}
		}
	}
	if err := d.writeReg(op, regChEnable, mask); err != nil {
		return err
	}
	for ch := uint8(0); ch < NumChannels; ch++ {
		en := mask&(1<<ch) != 0
		d.ch[ch].cfg.Enabled = en
		d.applyEnable(ch, en)
	}
	return nil
}

// SetDriveMode selects current or voltage regulation for channel ch.
func (d *Device) SetDriveMode(ch uint8, m DriveMode) error {
	return d.updateChannelConfig("set_drive_mode", ch, func(c *ChannelConfig) {
		c.DriveMode = m
	})
}

// SetBridgeMode selects the bridge topology for channel ch.
func (d *Device) SetBridgeMode(ch uint8, m BridgeMode) error {
	return d.updateChannelConfig("set_bridge_mode", ch, func(c *ChannelConfig) {
		c.BridgeMode = m
	})
}

// SetPolarity selects the output polarity for channel ch.
func (d *Device) SetPolarity(ch uint8, p Polarity) error {
	return d.updateChannelConfig("set_polarity", ch, func(c *ChannelConfig) {
		c.Polarity = p
	})
}

// ---------------- Current and timing control ----------------

// SetHitCurrent programs the hit-phase current code for channel ch.
func (d *Device) SetHitCurrent(ch uint8, cur uint16) error {
	const op = "set_hit_current"
	if err := checkCurrent(op, cur, MaxHitCurrent, "hit current"); err != nil {
		return err
	}
	return d.updateChannelConfig(op, ch, func(c *ChannelConfig) {
		c.HitCurrent = cur
	})
}

// SetHoldCurrent programs the hold-phase current code for channel ch.
func (d *Device) SetHoldCurrent(ch uint8, cur uint16) error {
	const op = "set_hold_current"
	if err := checkCurrent(op, cur, MaxHoldCurrent, "hold current"); err != nil {
		return err
	}
	return d.updateChannelConfig(op, ch, func(c *ChannelConfig) {
		c.HoldCurrent = cur
	})
}

// SetCurrents programs both current codes for channel ch in one write.
func (d *Device) SetCurrents(ch uint8, hit, hold uint16) error {
	const op = "set_currents"
	if err := checkCurrent(op, hit, MaxHitCurrent, "hit current"); err != nil {
		return err
	}
	if err := checkCurrent(op, hold, MaxHoldCurrent, "hold current"); err != nil {
		return err
	}
	return d.updateChannelConfig(op, ch, func(c *ChannelConfig) {
		c.HitCurrent = hit
		c.HoldCurrent = hold
	})
}

// Currents reads channel ch's hit and hold current codes back from the
// device.
func (d *Device) Currents(ch uint8) (hit, hold uint16, err error) {
	const op = "currents"
	if err := checkChannel(op, ch); err != nil {
		return 0, 0, err
	}
	v, err := d.readReg(op, cfgChReg(ch))
	if err != nil {
		return 0, 0, err
	}
	c := decodeChannelConfig(v, 0, false)
	return c.HitCurrent, c.HoldCurrent, nil
}

// SetHitTime programs channel ch's hit interval in chopping periods. The
// full 16-bit range is valid.
func (d *Device) SetHitTime(ch uint8, t uint16) error {
	const op = "set_hit_time"
	if err := checkChannel(op, ch); err != nil {
		return err
	}
	if err := d.writeReg(op, hitTimeReg(ch), uint32(t)); err != nil {
		return err
	}
	d.ch[ch].cfg.HitTime = t
	return nil
}

// HitTime reads channel ch's hit interval back from the device.
func (d *Device) HitTime(ch uint8) (uint16, error) {
	const op = "hit_time"
	if err := checkChannel(op, ch); err != nil {
		return 0, err
	}
	v, err := d.readReg(op, hitTimeReg(ch))
	if err != nil {
		return 0, err
	}
	return uint16(v & hitTimeMask), nil
}

// updateChannelConfig is the common setter path: copy the owned record,
// mutate, write the encoded word, then commit. The owned record is only
// replaced after the write is confirmed.
func (d *Device) updateChannelConfig(op string, ch uint8, mutate func(*ChannelConfig)) error {
	if err := checkChannel(op, ch); err != nil {
		return err
	}
	cfg := d.ch[ch].cfg
	mutate(&cfg)
	cfgWord, _ := encodeChannelConfig(cfg)
	if err := d.writeReg(op, cfgChReg(ch), cfgWord); err != nil {
		return err
	}
	d.ch[ch].cfg = cfg
	return nil
}

// enableMask builds the CH_ENABLE word from the owned configuration table
// with channel ch overridden to on.
func (d *Device) enableMask(ch uint8, on bool) uint32 {
	var m uint32
	for i := range d.ch {
		if d.ch[i].cfg.Enabled {
			m |= 1 << i
		}
	}
	if on {
		m |= 1 << ch
	} else {
		m &^= 1 << ch
	}
	return m
}

// ---------------- Status and diagnostics ----------------

// ReadFaults reads the fault register and the chip-global flags, decodes a
// per-channel bitset and routes every channel through the edge-triggered
// dispatcher. Observing faults is a successful read: the faults are data,
// not an error.
func (d *Device) ReadFaults() ([NumChannels]FaultStatus, error) {
	const op = "read_faults"
	var out [NumChannels]FaultStatus
	fault, err := d.readReg(op, regFault)
	if err != nil {
		return out, err
	}
	status, err := d.readReg(op, regStatus)
	if err != nil {
		return out, err
	}
	for ch := uint8(0); ch < NumChannels; ch++ {
		out[ch] = decodeChannelFaults(fault, status, ch)
		d.dispatchFaults(ch, out[ch])
	}
	return out, nil
}

// ClearFaults clears the device's latched fault flags and resets the
// dispatcher baselines, so recurring faults are re-reported on the next
// poll. Channels in the fault phase stay there until re-enabled.
func (d *Device) ClearFaults() error {
	if err := d.writeReg("clear_faults", regFault, 0xFFFFFFFF); err != nil {
		return err
	}
	d.resetBaselines()
	return nil
}

// ReadChannelStatus reads channel ch's snapshot and folds the reported
// hit-phase flag into the phase machine.
func (d *Device) ReadChannelStatus(ch uint8) (ChannelStatus, error) {
	const op = "read_channel_status"
	if err := checkChannel(op, ch); err != nil {
		return ChannelStatus{}, err
	}
	v, err := d.readReg(op, chStatusReg(ch))
	if err != nil {
		return ChannelStatus{}, err
	}
	st := decodeChannelStatus(v)
	d.observePhase(ch, st.HitPhase)
	return st, nil
}

// ReadAllChannelStatuses reads every channel's snapshot.
func (d *Device) ReadAllChannelStatuses() ([NumChannels]ChannelStatus, error) {
	var out [NumChannels]ChannelStatus
	for ch := uint8(0); ch < NumChannels; ch++ {
		st, err := d.ReadChannelStatus(ch)
		if err != nil {
			return out, err
		}
		out[ch] = st
	}
	return out, nil
}

// State reports the tracked operational phase of channel ch. Unknown
// indices report disabled.
func (d *Device) State(ch uint8) ChannelState {
	if ch >= NumChannels {
		return StateDisabled
	}
	return d.ch[ch].state
}

// Statistics returns a snapshot of the driver counters.
func (d *Device) Statistics() Statistics {
	s := d.stats
	if !d.startedAt.IsZero() {
		s.Uptime = time.Since(d.startedAt)
	}
	return s
}

// ResetStatistics zeroes all counters and restarts the uptime clock.
func (d *Device) ResetStatistics() {
	d.stats = Statistics{}
	d.startedAt = time.Now()
}

// ---------------- Handlers ----------------

// OnFault registers h as the fault handler. At most one is active; the
// last registration wins and nil unregisters.
func (d *Device) OnFault(h FaultHandler) { d.faultHandler = h }

// OnStateChange registers h as the phase-transition handler. At most one
// is active; the last registration wins and nil unregisters.
func (d *Device) OnStateChange(h StateHandler) { d.stateHandler = h }
