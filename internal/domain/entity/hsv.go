package entity

// HSV пиксель в соглашении OpenCV: H в диапазоне 0..179, S и V в диапазоне 0..255
type HSV struct {
	H uint8
	S uint8
	V uint8
}

// Hue возвращает цветовой тон в градусах (канал H, умноженный на 2)
func (c HSV) Hue() float64 {
	return float64(c.H) * 2
}

// Saturation возвращает насыщенность
func (c HSV) Saturation() float64 {
	return float64(c.S)
}

// Value возвращает яркость
func (c HSV) Value() float64 {
	return float64(c.V)
}
