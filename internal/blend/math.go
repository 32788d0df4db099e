package blend

// div255 divides x by 255 using Alvy Ray Smith's exact shift formula:
// ((x + 1) + ((x + 1) >> 8)) >> 8. Exact for all uint16 inputs and
// considerably faster than integer division; it runs for every pixel in
// every composite pass.
func div255(x uint16) uint16 {
	t := x + 1
	return (t + (t >> 8)) >> 8
}

// mulDiv255 multiplies two bytes and divides by 255.
func mulDiv255(a, b byte) byte {
	return byte(div255(uint16(a) * uint16(b)))
}

// addClamp adds two bytes, clamping to 255.
func addClamp(a, b byte) byte {
	sum := uint16(a) + uint16(b)
	if sum > 255 {
		return 255
	}
	return byte(sum)
}
