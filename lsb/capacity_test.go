package lsb

import (
	"errors"
	"testing"
)

func TestCapacity(t *testing.T) {
	tests := []struct {
		w, h, channels, bpc int
		want                int
	}{
		{4, 4, 3, 1, 48},
		{8, 8, 3, 1, 192},
		{8, 8, 1, 1, 64},
		{4, 4, 2, 1, 32},
		{10, 10, 3, 4, 1200},
		{0, 10, 3, 1, 0},
		{10, -1, 3, 1, 0},
	}
	for _, tt := range tests {
		if got := Capacity(tt.w, tt.h, tt.channels, tt.bpc); got != tt.want {
			t.Errorf("Capacity(%d, %d, %d, %d) = %d, expected %d",
				tt.w, tt.h, tt.channels, tt.bpc, got, tt.want)
		}
	}
}

func TestCheckCapacity(t *testing.T) {
	if err := checkCapacity(48, 48); err != nil {
		t.Errorf("exact fit should pass: %v", err)
	}
	err := checkCapacity(49, 48)
	if !errors.Is(err, ErrCapacityExceeded) {
		t.Errorf("expected ErrCapacityExceeded, got %v", err)
	}
}

func TestChannelMask(t *testing.T) {
	if AllChannels.count() != 3 || (Red | Blue).count() != 2 || Green.count() != 1 {
		t.Error("mask count is wrong")
	}
	if ChannelMask(0).normalize() != AllChannels {
		t.Error("zero mask should normalize to all channels")
	}
	m, err := ParseChannelMask("gb")
	if err != nil || m != Green|Blue {
		t.Errorf("ParseChannelMask(gb) = %v, %v", m, err)
	}
	if _, err := ParseChannelMask("rgx"); err == nil {
		t.Error("expected error for unknown channel")
	}
	if _, err := ParseChannelMask(""); err == nil {
		t.Error("expected error for empty mask")
	}
	if s := (Red | Blue).String(); s != "rb" {
		t.Errorf("String() = %q, expected rb", s)
	}
}
