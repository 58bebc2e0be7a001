package utils

// Fixed Q16.16 定点数
type Fixed int32

const (
	FixedShift      = 16
	FixedOne  Fixed = 1 << FixedShift
)

// FixedFromInt 整数转定点
func FixedFromInt(v int) Fixed {
	return Fixed(v << FixedShift)
}

// FixedFromFloat 浮点转定点（仅用于加载配置）
func FixedFromFloat(v float64) Fixed {
	return Fixed(v * float64(FixedOne))
}

// Int 向下取整
func (f Fixed) Int() int {
	return int(f >> FixedShift)
}
