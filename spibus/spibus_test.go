package spibus

import (
	"errors"
	"testing"

	"tinygo.org/x/drivers"

	"max22200-go/drivers/max22200"
	"max22200-go/errcode"
)

var _ drivers.SPI = (*fakeSPI)(nil)

type fakeSPI struct {
	lastW []byte
	txErr error
}

func (f *fakeSPI) Tx(w, r []byte) error {
	if f.txErr != nil {
		return f.txErr
	}
	f.lastW = append(f.lastW[:0], w...)
	return nil
}

func (f *fakeSPI) Transfer(b byte) (byte, error) {
	var r [1]byte
	err := f.Tx([]byte{b}, r[:])
	return r[0], err
}

func TestInitRequiresPortAndPin(t *testing.T) {
	b := New(nil, nil, nil)
	if err := b.Init(); !errors.Is(err, errcode.InitializationError) {
		t.Fatalf("err = %v, want initialization_error", err)
	}
	if b.Ready() {
		t.Fatal("bus reported ready after failed init")
	}
}

func TestSelectLineIsActiveLow(t *testing.T) {
	var level bool
	b := New(&fakeSPI{}, func(high bool) { level = high }, nil)
	if err := b.Init(); err != nil {
		t.Fatalf("init: %v", err)
	}
	if !level {
		t.Fatal("select line not released at init")
	}
	b.SetChipSelect(true)
	if level {
		t.Fatal("assert must drive the line low")
	}
	b.SetChipSelect(false)
	if !level {
		t.Fatal("release must drive the line high")
	}
}

func TestConfigureHookReceivesBusConfig(t *testing.T) {
	var got max22200.BusConfig
	b := New(&fakeSPI{}, func(bool) {}, func(cfg max22200.BusConfig) error {
		got = cfg
		return nil
	})
	want := max22200.BusConfig{Frequency: max22200.MaxSPIFreqStandalone, Mode: 0, MSBFirst: true}
	if err := b.Configure(want); err != nil {
		t.Fatalf("configure: %v", err)
	}
	if got != want {
		t.Fatalf("hook received %+v, want %+v", got, want)
	}
}

func TestNilConfigureHookIsAccepted(t *testing.T) {
	b := New(&fakeSPI{}, func(bool) {}, nil)
	if err := b.Configure(max22200.BusConfig{Frequency: 1_000_000}); err != nil {
		t.Fatalf("configure: %v", err)
	}
}

func TestTxPassesFramesThrough(t *testing.T) {
	spi := &fakeSPI{}
	b := New(spi, func(bool) {}, nil)
	w := []byte{0x90, 0, 0, 0, 0}
	r := make([]byte, len(w))
	if err := b.Tx(w, r); err != nil {
		t.Fatalf("tx: %v", err)
	}
	if len(spi.lastW) != len(w) || spi.lastW[0] != 0x90 {
		t.Fatalf("frame not forwarded: %v", spi.lastW)
	}

	spi.txErr = errors.New("bus stuck")
	if err := b.Tx(w, r); err == nil {
		t.Fatal("port error swallowed")
	}
}
