// Package blend implements the compositing operators the annotation
// pipeline draws and flattens with.
//
// All operations work on premultiplied alpha values in the range 0-255,
// the representation used by image.RGBA.
//
// References:
//   - Porter-Duff: "Compositing Digital Images" (1984)
//   - W3C Compositing and Blending Level 1: https://www.w3.org/TR/compositing-1/
package blend

import (
	"fmt"
	"image"
)

// Mode represents a compositing operation.
type Mode uint8

const (
	// SourceOver is standard alpha compositing: S + D*(1-Sa). Used for
	// replaying box highlights over the page.
	SourceOver Mode = iota

	// Multiply darkens the destination by the source color channel-wise,
	// B(Cs, Cd) = Cs*Cd, with the usual alpha weighting. Used to
	// composite freehand ink so underlying text stays visible.
	Multiply

	// DestinationOut erases the destination where the source has
	// coverage: D*(1-Sa). Used by the freehand eraser.
	DestinationOut
)

// Func is the signature for blend operations. All values are
// premultiplied alpha, 0-255.
// Parameters:
//   - sr, sg, sb, sa: source color (red, green, blue, alpha)
//   - dr, dg, db, da: destination color (red, green, blue, alpha)
//
// Returns: resulting color (r, g, b, a) after blending.
type Func func(sr, sg, sb, sa, dr, dg, db, da byte) (r, g, b, a byte)

// Get returns the blend function for the given mode.
// Returns sourceOver for unknown modes.
func Get(mode Mode) Func {
	switch mode {
	case SourceOver:
		return sourceOver
	case Multiply:
		return multiply
	case DestinationOut:
		return destinationOut
	default:
		return sourceOver
	}
}

// Composite blends src onto dst in place using the given mode. The two
// images must have identical bounds.
func Composite(dst, src *image.RGBA, mode Mode) error {
	if dst.Bounds() != src.Bounds() {
		return fmt.Errorf("blend: bounds mismatch: dst %v, src %v", dst.Bounds(), src.Bounds())
	}
	f := Get(mode)
	b := dst.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		di := dst.PixOffset(b.Min.X, y)
		si := src.PixOffset(b.Min.X, y)
		for x := b.Min.X; x < b.Max.X; x++ {
			sr, sg, sb, sa := src.Pix[si], src.Pix[si+1], src.Pix[si+2], src.Pix[si+3]
			if sa != 0 || mode == DestinationOut {
				dr, dg, db, da := dst.Pix[di], dst.Pix[di+1], dst.Pix[di+2], dst.Pix[di+3]
				r, g, bb, a := f(sr, sg, sb, sa, dr, dg, db, da)
				dst.Pix[di], dst.Pix[di+1], dst.Pix[di+2], dst.Pix[di+3] = r, g, bb, a
			}
			di += 4
			si += 4
		}
	}
	return nil
}

// sourceOver composites source over destination: S + D*(1-Sa).
func sourceOver(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return addClamp(sr, mulDiv255(dr, invSa)),
		addClamp(sg, mulDiv255(dg, invSa)),
		addClamp(sb, mulDiv255(db, invSa)),
		addClamp(sa, mulDiv255(da, invSa))
}

// destinationOut keeps destination where source is transparent: D*(1-Sa).
func destinationOut(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	invSa := 255 - sa
	return mulDiv255(dr, invSa),
		mulDiv255(dg, invSa),
		mulDiv255(db, invSa),
		mulDiv255(da, invSa)
}

// multiply applies the separable multiply blend:
// Result = (1-Sa)*D + (1-Da)*S + Sa*Da*B(Sc, Dc) with B(Cs, Cd) = Cs*Cd
// on unmultiplied channels.
func multiply(sr, sg, sb, sa, dr, dg, db, da byte) (byte, byte, byte, byte) {
	// Fully transparent layers pass the other through untouched.
	if sa == 0 {
		return dr, dg, db, da
	}
	if da == 0 {
		return sr, sg, sb, sa
	}

	// Unpremultiply to get raw channel intensities.
	sur := byte((uint16(sr) * 255) / uint16(sa))
	sug := byte((uint16(sg) * 255) / uint16(sa))
	sub := byte((uint16(sb) * 255) / uint16(sa))
	dur := byte((uint16(dr) * 255) / uint16(da))
	dug := byte((uint16(dg) * 255) / uint16(da))
	dub := byte((uint16(db) * 255) / uint16(da))

	invSa := 255 - sa
	invDa := 255 - da
	saDa := mulDiv255(sa, da)

	outA := addClamp(sa, mulDiv255(da, invSa))

	outR := addClamp(mulDiv255(dr, invSa), mulDiv255(sr, invDa))
	outG := addClamp(mulDiv255(dg, invSa), mulDiv255(sg, invDa))
	outB := addClamp(mulDiv255(db, invSa), mulDiv255(sb, invDa))

	outR = addClamp(outR, mulDiv255(saDa, mulDiv255(sur, dur)))
	outG = addClamp(outG, mulDiv255(saDa, mulDiv255(sug, dug)))
	outB = addClamp(outB, mulDiv255(saDa, mulDiv255(sub, dub)))

	return outR, outG, outB, outA
}
