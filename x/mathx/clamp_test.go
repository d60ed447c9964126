package mathx

import "testing"

func TestClamp(t *testing.T) {
	if got := Clamp(5, 0, 10); got != 5 {
		t.Fatalf("Clamp(5,0,10) = %d", got)
	}
	if got := Clamp(-3, 0, 10); got != 0 {
		t.Fatalf("Clamp(-3,0,10) = %d", got)
	}
	if got := Clamp(uint16(2000), 0, 1023); got != 1023 {
		t.Fatalf("Clamp(2000,0,1023) = %d", got)
	}
	// Swapped bounds.
	if got := Clamp(7, 10, 0); got != 7 {
		t.Fatalf("Clamp(7,10,0) = %d", got)
	}
}

func TestBetween(t *testing.T) {
	if !Between(0, 0, 10) || !Between(10, 0, 10) {
		t.Fatal("bounds must be inclusive")
	}
	if Between(11, 0, 10) {
		t.Fatal("11 is not within [0,10]")
	}
	if !Between(5, 10, 0) {
		t.Fatal("swapped bounds must still match")
	}
}
