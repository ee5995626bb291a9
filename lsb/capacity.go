package lsb

import "fmt"

// Capacity returns the number of payload bits a w×h carrier holds when
// each of channels color channels contributes bitsPerChannel low-order
// bits per pixel. The count is in bits, not bytes.
func Capacity(w, h, channels, bitsPerChannel int) int {
	if w <= 0 || h <= 0 || channels <= 0 || bitsPerChannel <= 0 {
		return 0
	}
	return w * h * channels * bitsPerChannel
}

// checkCapacity enforces the all-or-nothing rule: it runs before any
// pixel of the working copy is written, so a failed embed leaves the
// caller's carrier untouched.
func checkCapacity(payloadBits, capacity int) error {
	if payloadBits > capacity {
		return fmt.Errorf("%w: need %d bits, carrier holds %d",
			ErrCapacityExceeded, payloadBits, capacity)
	}
	return nil
}
