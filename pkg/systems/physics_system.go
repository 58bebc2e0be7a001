package systems

import "github.com/Ganso/Sleigh-Chase/pkg/components"

// CheckAABBCollision 检查两个轴对齐矩形是否重叠
// 仅边缘相接不算碰撞；宽或高为 0 的矩形永远不会碰撞
func CheckAABBCollision(a, b components.Rect) bool {
	if a.W <= 0 || a.H <= 0 || b.W <= 0 || b.H <= 0 {
		return false
	}
	return a.X < b.X+b.W &&
		a.X+a.W > b.X &&
		a.Y < b.Y+b.H &&
		a.Y+a.H > b.Y
}

// DistanceSquared 两点距离的平方（int32 防止溢出）
func DistanceSquared(x1, y1, x2, y2 int16) int32 {
	dx := int32(x1) - int32(x2)
	dy := int32(y1) - int32(y2)
	return dx*dx + dy*dy
}

func abs32(v int32) int32 {
	if v < 0 {
		return -v
	}
	return v
}
