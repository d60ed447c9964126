//go:build linux

package spibus

import (
	"periph.io/x/conn/v3/physic"
	"periph.io/x/conn/v3/spi"

	"max22200-go/drivers/max22200"
	"max22200-go/errcode"
)

// PeriphBus drives the device through a periph.io SPI port (spidev). The
// kernel asserts the select line around each transfer, so SetChipSelect
// is a no-op here.
type PeriphBus struct {
	port spi.Port
	conn spi.Conn
}

var _ max22200.Transport = (*PeriphBus)(nil)

// NewPeriph wraps an already opened periph.io port, typically obtained
// from spireg.Open after host.Init.
func NewPeriph(port spi.Port) *PeriphBus {
	return &PeriphBus{port: port}
}

func (b *PeriphBus) Init() error {
	if b.port == nil {
		return &errcode.E{C: errcode.InitializationError, Op: "periph_init", Msg: "nil port"}
	}
	return nil
}

func (b *PeriphBus) Ready() bool { return b.port != nil }

// Configure connects the port at the requested clock, mode and bit order.
func (b *PeriphBus) Configure(cfg max22200.BusConfig) error {
	const op = "periph_configure"
	mode := spi.Mode(cfg.Mode & 0x03)
	if !cfg.MSBFirst {
		mode |= spi.LSBFirst
	}
	conn, err := b.port.Connect(physic.Frequency(cfg.Frequency)*physic.Hertz, mode, 8)
	if err != nil {
		return &errcode.E{C: errcode.InitializationError, Op: op, Err: err}
	}
	b.conn = conn
	return nil
}

func (b *PeriphBus) SetChipSelect(assert bool) {}

func (b *PeriphBus) Tx(w, r []byte) error {
	if b.conn == nil {
		return &errcode.E{C: errcode.CommunicationError, Op: "periph_tx", Msg: "port not connected"}
	}
	return b.conn.Tx(w, r)
}
