package components

// Rect 轴对齐矩形（屏幕像素）
type Rect struct {
	X, Y int16
	W, H int16
}

// Inset 返回四边各向内收缩 dx/dy 后的矩形
// 收缩过度时宽高归零
func (r Rect) Inset(dx, dy int16) Rect {
	out := Rect{X: r.X + dx, Y: r.Y + dy, W: r.W - 2*dx, H: r.H - 2*dy}
	if out.W < 0 {
		out.W = 0
	}
	if out.H < 0 {
		out.H = 0
	}
	return out
}

// Center 返回矩形中心点
func (r Rect) Center() (int16, int16) {
	return r.X + r.W/2, r.Y + r.H/2
}

// Contains 判断点是否落在矩形内（左上闭、右下开）
func (r Rect) Contains(x, y int16) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

// Hitbox 描述精灵内部的碰撞区域（相对精灵左上角的偏移与尺寸）
type Hitbox struct {
	OffsetX, OffsetY int16
	Width, Height    int16
}

// At 把碰撞区域放到精灵位置 (x, y) 上
func (h Hitbox) At(x, y int16) Rect {
	return Rect{X: x + h.OffsetX, Y: y + h.OffsetY, W: h.Width, H: h.Height}
}
