package lsb

// bytesToBits expands data into one element per bit, most significant
// bit of each byte first.
func bytesToBits(data []byte) []uint8 {
	bits := make([]uint8, 0, len(data)*8)
	for _, b := range data {
		for i := 7; i >= 0; i-- {
			bits = append(bits, (b>>uint(i))&1)
		}
	}
	return bits
}

// bitsToBytes regroups bits into bytes, most significant bit first.
// A trailing group of fewer than eight bits is dropped.
func bitsToBytes(bits []uint8) []byte {
	out := make([]byte, 0, len(bits)/8)
	for i := 0; i+8 <= len(bits); i += 8 {
		var b byte
		for j := 0; j < 8; j++ {
			b = b<<1 | bits[i+j]
		}
		out = append(out, b)
	}
	return out
}
