package game

// RGB is an 8-bit per channel colour.
type RGB struct {
	R, G, B uint8
}

func (c RGB) Mul(k uint8) RGB {
	return RGB{
		R: uint8((uint16(c.R) * uint16(k)) / 255),
		G: uint8((uint16(c.G) * uint16(k)) / 255),
		B: uint8((uint16(c.B) * uint16(k)) / 255),
	}
}

func (c RGB) Add(dr, dg, db int) RGB {
	return RGB{R: addU8(c.R, dr), G: addU8(c.G, dg), B: addU8(c.B, db)}
}

func addU8(v uint8, d int) uint8 {
	n := int(v) + d
	if n < 0 {
		return 0
	}
	if n > 255 {
		return 255
	}
	return uint8(n)
}

var Palette = struct {
	Road       RGB
	Shoulder   RGB
	LaneMark   RGB
	EdgeLine   RGB
	ZebraBase  RGB
	ZebraWhite RGB
	Matatu     RGB
	MatatuTrim RGB
	Windshield RGB
	BrakeLight RGB
	HeadLight  RGB
	HUD        RGB
	HUDWarn    RGB
	HUDShadow  RGB
	Smoke      RGB
	Glow       RGB
	FireHot    RGB
	FireMid    RGB
	FireCool   RGB
}{
	Road:       RGB{R: 60, G: 66, B: 79},
	Shoulder:   RGB{R: 38, G: 42, B: 50},
	LaneMark:   RGB{R: 235, G: 235, B: 225},
	EdgeLine:   RGB{R: 230, G: 196, B: 60},
	ZebraBase:  RGB{R: 255, G: 214, B: 0},
	ZebraWhite: RGB{R: 250, G: 250, B: 250},
	Matatu:     RGB{R: 250, G: 200, B: 30},
	MatatuTrim: RGB{R: 40, G: 150, B: 70},
	Windshield: RGB{R: 120, G: 170, B: 210},
	BrakeLight: RGB{R: 255, G: 40, B: 30},
	HeadLight:  RGB{R: 255, G: 240, B: 190},
	HUD:        RGB{R: 245, G: 245, B: 245},
	HUDWarn:    RGB{R: 255, G: 170, B: 40},
	HUDShadow:  RGB{R: 10, G: 10, B: 14},
	Smoke:      RGB{R: 70, G: 70, B: 75},
	Glow:       RGB{R: 255, G: 200, B: 120},
	FireHot:    RGB{R: 255, G: 240, B: 170},
	FireMid:    RGB{R: 255, G: 140, B: 40},
	FireCool:   RGB{R: 150, G: 40, B: 20},
}

// CarColors indexes other vehicles by their variant.
var CarColors = []RGB{
	{R: 200, G: 40, B: 40},
	{R: 40, G: 90, B: 200},
	{R: 150, G: 150, B: 160},
	{R: 30, G: 150, B: 110},
	{R: 120, G: 60, B: 160},
}

func carColor(variant int) RGB {
	if variant < 0 {
		variant = -variant
	}
	return CarColors[variant%len(CarColors)]
}
