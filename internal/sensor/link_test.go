// internal/sensor/link_test.go
package sensor

import (
	"errors"
	"testing"
)

// ---- fake register client ----

type fakeClient struct {
	readPayload []byte
	readErr     error

	lastWriteAddr  uint16
	lastWriteQty   uint16
	lastWriteBytes []byte
	writeErr       error
}

func (f *fakeClient) ReadHoldingRegisters(address, quantity uint16) ([]byte, error) {
	if f.readErr != nil {
		return nil, f.readErr
	}
	return f.readPayload, nil
}

func (f *fakeClient) WriteSingleRegister(address, value uint16) ([]byte, error) {
	f.lastWriteAddr = address
	f.lastWriteQty = 1
	f.lastWriteBytes = []byte{byte(value >> 8), byte(value)}
	return nil, f.writeErr
}

func (f *fakeClient) WriteMultipleRegisters(address, quantity uint16, value []byte) ([]byte, error) {
	f.lastWriteAddr = address
	f.lastWriteQty = quantity
	f.lastWriteBytes = value
	return nil, f.writeErr
}

// ---- tests ----

func TestReadRegistersDecodesBigEndian(t *testing.T) {
	link := &Link{client: &fakeClient{readPayload: []byte{0x41, 0x35, 0x1A, 0x86}}}

	regs, err := link.ReadRegisters(60, 2)
	if err != nil {
		t.Fatalf("ReadRegisters err = %v", err)
	}
	if len(regs) != 2 || regs[0] != 0x4135 || regs[1] != 0x1A86 {
		t.Fatalf("unexpected registers: %#v", regs)
	}
}

func TestReadRegistersWrapsTransportError(t *testing.T) {
	link := &Link{client: &fakeClient{readErr: errors.New("timeout")}}

	_, err := link.ReadRegisters(45, 2)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ReadError, got %T", err)
	}
	if re.Addr != 45 {
		t.Fatalf("ReadError addr = %d, want 45", re.Addr)
	}
}

func TestReadRegistersRejectsShortPayload(t *testing.T) {
	// 3 bytes for 2 registers: never partially returned.
	link := &Link{client: &fakeClient{readPayload: []byte{0x41, 0x35, 0x1A}}}

	regs, err := link.ReadRegisters(60, 2)
	if err == nil {
		t.Fatalf("expected error for short payload, got registers %#v", regs)
	}

	var re *ReadError
	if !errors.As(err, &re) {
		t.Fatalf("expected *ReadError, got %T", err)
	}
}

func TestWriteRegistersPacksBigEndian(t *testing.T) {
	cli := &fakeClient{}
	link := &Link{client: cli}

	if err := link.WriteRegisters(28, []uint16{0x4649, 0x4000}); err != nil {
		t.Fatalf("WriteRegisters err = %v", err)
	}

	if cli.lastWriteAddr != 28 || cli.lastWriteQty != 2 {
		t.Fatalf("write geometry addr=%d qty=%d, want addr=28 qty=2", cli.lastWriteAddr, cli.lastWriteQty)
	}
	want := []byte{0x46, 0x49, 0x40, 0x00}
	for i, b := range want {
		if cli.lastWriteBytes[i] != b {
			t.Fatalf("payload[%d] = 0x%02X, want 0x%02X", i, cli.lastWriteBytes[i], b)
		}
	}
}

func TestWriteFloatUsesPairTransaction(t *testing.T) {
	cli := &fakeClient{}
	link := &Link{client: cli}

	if err := link.WriteFloat(28, 12880); err != nil {
		t.Fatalf("WriteFloat err = %v", err)
	}
	if cli.lastWriteQty != 2 {
		t.Fatalf("float write used %d registers, want 2", cli.lastWriteQty)
	}
	// 12880 -> 0x46494000, high word first.
	want := []byte{0x46, 0x49, 0x40, 0x00}
	for i, b := range want {
		if cli.lastWriteBytes[i] != b {
			t.Fatalf("payload[%d] = 0x%02X, want 0x%02X", i, cli.lastWriteBytes[i], b)
		}
	}
}

func TestWriteRegisterWrapsTransportError(t *testing.T) {
	link := &Link{client: &fakeClient{writeErr: errors.New("nak")}}

	err := link.WriteRegister(13, 2)
	if err == nil {
		t.Fatalf("expected error, got nil")
	}

	var we *WriteError
	if !errors.As(err, &we) {
		t.Fatalf("expected *WriteError, got %T", err)
	}
	if we.Addr != 13 {
		t.Fatalf("WriteError addr = %d, want 13", we.Addr)
	}
}

func TestReadFloatCapturesHexBeforeConversion(t *testing.T) {
	link := &Link{client: &fakeClient{readPayload: []byte{0x46, 0x49, 0x40, 0x00}}}

	v, hex, err := link.ReadFloat(28)
	if err != nil {
		t.Fatalf("ReadFloat err = %v", err)
	}
	if v != 12880 {
		t.Fatalf("ReadFloat value = %v, want 12880", v)
	}
	if hex != "46494000" {
		t.Fatalf("ReadFloat hex = %q, want \"46494000\"", hex)
	}
}
