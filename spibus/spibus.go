// Package spibus adapts concrete SPI ports to the transport the max22200
// driver expects. The TinyGo adapter in this file suits microcontroller
// targets; periph.go carries a Linux spidev adapter.
package spibus

import (
	"tinygo.org/x/drivers"

	"max22200-go/drivers/max22200"
	"max22200-go/errcode"
)

// PinOutput drives one logic output, true meaning electrically high.
type PinOutput func(high bool)

// ConfigureFunc reprograms the underlying port. TinyGo SPI ports are
// configured through the machine package, outside the drivers.SPI
// interface, so the hook is supplied by the board setup code.
type ConfigureFunc func(cfg max22200.BusConfig) error

// Bus drives the device over a TinyGo SPI port with a dedicated
// active-low select pin.
type Bus struct {
	spi       drivers.SPI
	cs        PinOutput
	configure ConfigureFunc
	ready     bool
}

var _ max22200.Transport = (*Bus)(nil)

// New wires an SPI port and a select pin into a Bus. configure may be nil
// when the port is already programmed with the right clock and mode.
func New(spi drivers.SPI, cs PinOutput, configure ConfigureFunc) *Bus {
	return &Bus{spi: spi, cs: cs, configure: configure}
}

// Init parks the select line released and marks the bus usable.
func (b *Bus) Init() error {
	if b.spi == nil || b.cs == nil {
		return &errcode.E{C: errcode.InitializationError, Op: "spibus_init", Msg: "missing port or select pin"}
	}
	b.cs(true)
	b.ready = true
	return nil
}

func (b *Bus) Ready() bool { return b.ready }

func (b *Bus) Configure(cfg max22200.BusConfig) error {
	if b.configure == nil {
		return nil
	}
	return b.configure(cfg)
}

// SetChipSelect asserts or releases the active-low select line.
func (b *Bus) SetChipSelect(assert bool) { b.cs(!assert) }

func (b *Bus) Tx(w, r []byte) error { return b.spi.Tx(w, r) }
