package phases

import (
	"math"

	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// 雪花图层尺寸（像素），滚动坐标按此取模
const (
	snowWidth  = 384
	snowHeight = 512
)

// snowDrift 前景雪花：横向正弦摆动，纵向匀速
// 角度以 1024 为一周
type snowDrift struct {
	bg           host.Background
	angle        int32
	angleStep    int32
	verticalStep int32
	offsetY      int32
	x, y         int16
}

func newSnowDrift(ctx *game.PhaseContext, angleStep, verticalStep int32) *snowDrift {
	return &snowDrift{
		bg:           loadBackground(ctx, host.BackgroundSnow, host.PlaneA),
		angleStep:    angleStep,
		verticalStep: verticalStep,
	}
}

// Update 推进一帧
func (s *snowDrift) Update() {
	s.angle = (s.angle + s.angleStep) & 1023
	offsetX := int32(math.Round(math.Sin(float64(s.angle)*2*math.Pi/1024) * 64))
	s.offsetY += s.verticalStep

	s.x = int16(wrap(offsetX, snowWidth))
	s.y = int16(wrap(s.offsetY, snowHeight))
	if s.bg != nil {
		s.bg.ScrollTo(s.x, s.y)
	}
}

// Offset 当前滚动坐标
func (s *snowDrift) Offset() (int16, int16) {
	return s.x, s.y
}

func (s *snowDrift) Release() {
	releaseBackground(s.bg)
	s.bg = nil
}

func wrap(v, n int32) int32 {
	v %= n
	if v < 0 {
		v += n
	}
	return v
}
