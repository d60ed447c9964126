package max22200

import "max22200-go/errcode"

// BusConfig carries the SPI parameters the device expects.
type BusConfig struct {
	Frequency uint32 // Hz
	Mode      uint8  // SPI mode 0..3
	MSBFirst  bool
}

// Transport is the caller-supplied serial port to the device. The driver
// never assumes a call succeeded; every site checks the returned error.
// Implementations may report timeouts with errcode.Timeout, which the
// driver passes through unchanged.
type Transport interface {
	// Init brings the bus hardware up.
	Init() error
	// Tx performs a full-duplex exchange of len(w) == len(r) bytes.
	Tx(w, r []byte) error
	// SetChipSelect asserts (true) or releases (false) the device select
	// line. Polarity is the implementation's concern.
	SetChipSelect(assert bool)
	// Configure applies clock speed, SPI mode and bit order.
	Configure(cfg BusConfig) error
	// Ready reports whether the bus is initialized and usable.
	Ready() bool
}

// xfer runs one register transaction: select, exchange, deselect. The
// deselect is deferred so the select line is released exactly once per
// attempt, whatever the exchange outcome. Statistics are updated exactly
// once per attempt; retries are the caller's decision.
func (d *Device) xfer(op string) error {
	d.stats.TotalTransfers++
	d.tr.SetChipSelect(true)
	defer d.tr.SetChipSelect(false)
	if err := d.tr.Tx(d.w[:], d.r[:]); err != nil {
		d.stats.FailedTransfers++
		c := errcode.CommunicationError
		if errcode.Of(err) == errcode.Timeout {
			c = errcode.Timeout
		}
		return &errcode.E{C: c, Op: op, Err: err}
	}
	return nil
}

func (d *Device) writeReg(op string, reg uint8, v uint32) error {
	d.w[0] = reg
	d.w[1] = byte(v >> 24)
	d.w[2] = byte(v >> 16)
	d.w[3] = byte(v >> 8)
	d.w[4] = byte(v)
	return d.xfer(op)
}

func (d *Device) readReg(op string, reg uint8) (uint32, error) {
	d.w[0] = reg | readBit
	d.w[1], d.w[2], d.w[3], d.w[4] = 0, 0, 0, 0
	if err := d.xfer(op); err != nil {
		return 0, err
	}
	return uint32(d.r[1])<<24 | uint32(d.r[2])<<16 | uint32(d.r[3])<<8 | uint32(d.r[4]), nil
}
