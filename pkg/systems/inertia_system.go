package systems

import "github.com/Ganso/Sleigh-Chase/pkg/components"

// ApplyInertiaAxis 对单个轴应用惯性运动
//
// 有方向输入时，速度以 Accel 为步长向 dir*MaxVelocity 逼近，不会越过上限；
// 无方向输入时，每 FrictionDelay 帧（0 视为 1）按 Friction 向 0 衰减，不会越过 0。
// 最后位置加上速度，并限制在 [min, max] 内。
//
// 参数:
//   - pos: 位置（会被修改）
//   - vel: 速度（会被修改）
//   - min, max: 位置边界
//   - dir: 输入方向（-1/0/1）
//   - frame: 当前帧号（用于摩擦节拍）
//   - cfg: 惯性参数，nil 时不做任何事
func ApplyInertiaAxis(pos *int16, vel *int8, min, max int16, dir int8, frame uint16, cfg *components.InertiaConfig) {
	if pos == nil || vel == nil || cfg == nil {
		return
	}

	v := int(*vel)
	limit := int(cfg.MaxVelocity)

	if dir != 0 {
		target := limit
		if dir < 0 {
			target = -limit
		}
		accel := int(cfg.Accel)
		if v < target {
			v += accel
			if v > target {
				v = target
			}
		} else if v > target {
			v -= accel
			if v < target {
				v = target
			}
		}
	} else {
		delay := uint16(cfg.FrictionDelay)
		if delay == 0 {
			delay = 1
		}
		if frame%delay == 0 {
			friction := int(cfg.Friction)
			if v > 0 {
				v -= friction
				if v < 0 {
					v = 0
				}
			} else if v < 0 {
				v += friction
				if v > 0 {
					v = 0
				}
			}
		}
	}

	if v > limit {
		v = limit
	} else if v < -limit {
		v = -limit
	}
	*vel = int8(v)

	p := int(*pos) + v
	if p < int(min) {
		p = int(min)
	} else if p > int(max) {
		p = int(max)
	}
	*pos = int16(p)
}

// ApplyInertiaMovement 对两个轴分别应用惯性运动（不做对角线归一化）
func ApplyInertiaMovement(body *components.Body, bounds components.Rect, dx, dy int8, frame uint16, cfg *components.InertiaConfig) {
	if body == nil {
		return
	}
	ApplyInertiaAxis(&body.X, &body.VX, bounds.X, bounds.X+bounds.W, dx, frame, cfg)
	ApplyInertiaAxis(&body.Y, &body.VY, bounds.Y, bounds.Y+bounds.H, dy, frame, cfg)
}
