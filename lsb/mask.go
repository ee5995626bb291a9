package lsb

import "fmt"

// ChannelMask selects which color channels of a pixel carry payload bits
// in the 1-bit scheme. Channels are always visited in R, G, B order.
type ChannelMask uint8

const (
	Red ChannelMask = 1 << iota
	Green
	Blue

	// AllChannels is the default mask.
	AllChannels = Red | Green | Blue
)

// ParseChannelMask converts a string such as "rgb" or "gb" into a mask.
func ParseChannelMask(s string) (ChannelMask, error) {
	var m ChannelMask
	for _, c := range s {
		switch c {
		case 'r', 'R':
			m |= Red
		case 'g', 'G':
			m |= Green
		case 'b', 'B':
			m |= Blue
		default:
			return 0, fmt.Errorf("channel mask %q: unknown channel %q", s, c)
		}
	}
	if m == 0 {
		return 0, fmt.Errorf("channel mask %q selects no channels", s)
	}
	return m, nil
}

func (m ChannelMask) String() string {
	s := ""
	if m&Red != 0 {
		s += "r"
	}
	if m&Green != 0 {
		s += "g"
	}
	if m&Blue != 0 {
		s += "b"
	}
	return s
}

// count reports how many channels of a pixel the mask selects.
func (m ChannelMask) count() int {
	n := 0
	for c := 0; c < 3; c++ {
		if m&(Red<<uint(c)) != 0 {
			n++
		}
	}
	return n
}

// normalize maps the zero value to AllChannels so that the zero Codec
// is usable as-is.
func (m ChannelMask) normalize() ChannelMask {
	if m == 0 {
		return AllChannels
	}
	return m
}
