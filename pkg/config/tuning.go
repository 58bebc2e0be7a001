package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidTuning 配置校验失败
var ErrInvalidTuning = errors.New("invalid tuning")

// Tuning 全部阶段的可调参数
//
// 配置文件位置: data/tuning.yaml（嵌入），可用 -tuning 覆盖
type Tuning struct {
	Screen      ScreenTuning      `yaml:"screen"`
	Logo        LogoTuning        `yaml:"logo"`
	Title       TitleTuning       `yaml:"title"`
	Cutscene    CutsceneTuning    `yaml:"cutscene"`
	Pickup      PickupTuning      `yaml:"pickup"`
	Delivery    DeliveryTuning    `yaml:"delivery"`
	Bells       BellsTuning       `yaml:"bells"`
	Celebration CelebrationTuning `yaml:"celebration"`
}

// ScreenTuning 屏幕与显存预算
type ScreenTuning struct {
	Width        int16  `yaml:"width"`
	Height       int16  `yaml:"height"`
	SpriteBudget int    `yaml:"spriteBudget"`
	TileBase     uint32 `yaml:"tileBase"`
	TileLimit    uint32 `yaml:"tileLimit"`
}

// InertiaTuning 惯性参数
type InertiaTuning struct {
	Accel         int8  `yaml:"accel"`
	Friction      int8  `yaml:"friction"`
	FrictionDelay uint8 `yaml:"frictionDelay"`
	MaxVelocity   int8  `yaml:"maxVelocity"`
}

// PlayerTuning 玩家精灵与碰撞盒
// 碰撞盒位于精灵底部居中
type PlayerTuning struct {
	Width        int16 `yaml:"width"`
	Height       int16 `yaml:"height"`
	HitboxWidth  int16 `yaml:"hitboxWidth"`
	HitboxHeight int16 `yaml:"hitboxHeight"`
	StartY       int16 `yaml:"startY"`
}

// ActorTuning 对象池参数
type ActorTuning struct {
	Capacity      int   `yaml:"capacity"`
	Width         int16 `yaml:"width"`
	Height        int16 `yaml:"height"`
	HitboxInset   int16 `yaml:"hitboxInset"`
	SpawnMinAbove int16 `yaml:"spawnMinAbove"`
	SpawnMaxAbove int16 `yaml:"spawnMaxAbove"`
	// SpeedX/SpeedY 自身移动速度（像素/帧，在卷轴之外）
	SpeedX int16 `yaml:"speedX"`
	SpeedY int16 `yaml:"speedY"`
	// MoveDelay 每隔多少帧移动一次（0 视为 1）
	MoveDelay uint16 `yaml:"moveDelay"`
}

// BlinkTuning HUD 闪烁
type BlinkTuning struct {
	Frames   uint16 `yaml:"frames"`
	Interval uint16 `yaml:"interval"`
}

// LogoTuning 开场标志
type LogoTuning struct {
	SlideFrames uint16 `yaml:"slideFrames"`
	HoldFrames  uint16 `yaml:"holdFrames"`
}

// TitleTuning 标题画面
type TitleTuning struct {
	WaitFrames uint16 `yaml:"waitFrames"`
	StartY     int16  `yaml:"startY"`
	ScrollStep int16  `yaml:"scrollStep"`
}

// CutsceneTuning 过场文字
type CutsceneTuning struct {
	FramesPerLetter   uint16 `yaml:"framesPerLetter"`
	MaxLines          int    `yaml:"maxLines"`
	MaxLineLength     int    `yaml:"maxLineLength"`
	PromptBlinkFrames uint16 `yaml:"promptBlinkFrames"`
}

// PickupTuning 第一阶段：收集礼物
type PickupTuning struct {
	Target      uint16  `yaml:"target"`
	ScrollSpeed float64 `yaml:"scrollSpeed"`
	ScrollLoop  int16   `yaml:"scrollLoop"`
	// ForbiddenMarginPercent 左右两侧的禁行带宽度（屏幕宽度百分比），友方精灵在其中出现
	ForbiddenMarginPercent int           `yaml:"forbiddenMarginPercent"`
	Player                 PlayerTuning  `yaml:"player"`
	Inertia                InertiaTuning `yaml:"inertia"`
	Trees                  ActorTuning   `yaml:"trees"`
	Elves                  ActorTuning   `yaml:"elves"`
	Enemies                ActorTuning   `yaml:"enemies"`
	SpecialChargeGifts     uint16        `yaml:"specialChargeGifts"`
	HitRecoveryFrames      uint16        `yaml:"hitRecoveryFrames"`
	LossFloorOffset        uint16        `yaml:"lossFloorOffset"`
	Blink                  BlinkTuning   `yaml:"blink"`
	HUDRowSize             uint16        `yaml:"hudRowSize"`
}

// ChimneyTuning 烟囱
type ChimneyTuning struct {
	Count             int    `yaml:"count"`
	Size              int16  `yaml:"size"`
	HitboxInset       int16  `yaml:"hitboxInset"`
	MarginX           int16  `yaml:"marginX"`
	RowOffset         int16  `yaml:"rowOffset"`
	HouseHeight       int16  `yaml:"houseHeight"`
	ProhibitedPercent int    `yaml:"prohibitedPercent"`
	ResetFrames       uint16 `yaml:"resetFrames"`
	BlinkInterval     uint16 `yaml:"blinkInterval"`
	ToggleMinFrames   uint16 `yaml:"toggleMinFrames"`
	ToggleMaxFrames   uint16 `yaml:"toggleMaxFrames"`
}

// RampTuning 敌人数量阶梯
type RampTuning struct {
	Base       int      `yaml:"base"`
	Thresholds []uint16 `yaml:"thresholds"`
}

// ThrowTuning 投掷
type ThrowTuning struct {
	Radius            int16  `yaml:"radius"`
	FlightSpeed       int16  `yaml:"flightSpeed"`
	CooldownFrames    uint16 `yaml:"cooldownFrames"`
	ArcHeight         int16  `yaml:"arcHeight"`
	ProjectileSize    int16  `yaml:"projectileSize"`
	FallbackMinOffset int16  `yaml:"fallbackMinOffset"`
	FallbackMaxOffset int16  `yaml:"fallbackMaxOffset"`
	FallbackRise      int16  `yaml:"fallbackRise"`
	StealCooldown     uint16 `yaml:"stealCooldown"`
}

// DeliveryTuning 第二阶段：屋顶投递
type DeliveryTuning struct {
	Target           uint16        `yaml:"target"`
	TimeLimitSeconds uint16        `yaml:"timeLimitSeconds"`
	ScrollSpeed      float64       `yaml:"scrollSpeed"`
	ScrollLoop       int16         `yaml:"scrollLoop"`
	Player           PlayerTuning  `yaml:"player"`
	Inertia          InertiaTuning `yaml:"inertia"`
	Chimneys         ChimneyTuning `yaml:"chimneys"`
	Enemies          ActorTuning   `yaml:"enemies"`
	EnemyRamp        RampTuning    `yaml:"enemyRamp"`
	Throw            ThrowTuning   `yaml:"throw"`
	RecoveryFrames   uint16        `yaml:"recoveryFrames"`
	LossFloorOffset  uint16        `yaml:"lossFloorOffset"`
	Blink            BlinkTuning   `yaml:"blink"`
	HUDRowSize       uint16        `yaml:"hudRowSize"`
}

// BulletTuning 炮弹
type BulletTuning struct {
	Capacity       int    `yaml:"capacity"`
	Size           int16  `yaml:"size"`
	Speed          int16  `yaml:"speed"`
	CooldownFrames uint16 `yaml:"cooldownFrames"`
}

// BellsTuning 第三阶段：敲钟与拼字
type BellsTuning struct {
	Cannon          PlayerTuning  `yaml:"cannon"`
	Inertia         InertiaTuning `yaml:"inertia"`
	MinX            int16         `yaml:"minX"`
	MaxX            int16         `yaml:"maxX"`
	Bells           ActorTuning   `yaml:"bells"`
	Bombs           ActorTuning   `yaml:"bombs"`
	Letters         ActorTuning   `yaml:"letters"`
	Bullets         BulletTuning  `yaml:"bullets"`
	BellTarget      int           `yaml:"bellTarget"`
	Word            string        `yaml:"word"`
	BlinkFrames     uint16        `yaml:"blinkFrames"`
	BlinkZone       int16         `yaml:"blinkZone"`
	SpecialCooldown uint16        `yaml:"specialCooldown"`
	// HitTop/HitBottom 炮弹中心命中判定的纵向带（相对对象顶部）
	HitTop    int16 `yaml:"hitTop"`
	HitBottom int16 `yaml:"hitBottom"`
}

// CelebrationTuning 第四阶段：庆祝
type CelebrationTuning struct {
	MinMessageFrames uint16 `yaml:"minMessageFrames"`
}

// LoadTuning 从磁盘加载调参文件
//
// 参数:
//   - path: 配置文件路径（如 "data/tuning.yaml"）
//
// 返回:
//   - *Tuning: 校验通过的配置
//   - error: 读取、解析或校验失败
func LoadTuning(path string) (*Tuning, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read tuning: %w", err)
	}
	return ParseTuning(data)
}

// ParseTuning 解析并校验 YAML 内容
func ParseTuning(data []byte) (*Tuning, error) {
	var t Tuning
	if err := yaml.Unmarshal(data, &t); err != nil {
		return nil, fmt.Errorf("failed to parse tuning: %w", err)
	}
	if err := t.Validate(); err != nil {
		return nil, err
	}
	return &t, nil
}

// Validate 校验配置
// 所有错误都包装 ErrInvalidTuning
func (t *Tuning) Validate() error {
	if t.Screen.Width <= 0 || t.Screen.Height <= 0 {
		return fmt.Errorf("%w: screen size %dx%d", ErrInvalidTuning, t.Screen.Width, t.Screen.Height)
	}
	if t.Screen.TileLimit <= t.Screen.TileBase {
		return fmt.Errorf("%w: tile range [%d,%d)", ErrInvalidTuning, t.Screen.TileBase, t.Screen.TileLimit)
	}
	if t.Cutscene.FramesPerLetter == 0 {
		return fmt.Errorf("%w: cutscene.framesPerLetter must be positive", ErrInvalidTuning)
	}

	checks := []struct {
		name string
		err  error
	}{
		{"pickup.inertia", t.Pickup.Inertia.validate()},
		{"pickup.trees", t.Pickup.Trees.validate()},
		{"pickup.elves", t.Pickup.Elves.validate()},
		{"pickup.enemies", t.Pickup.Enemies.validate()},
		{"delivery.inertia", t.Delivery.Inertia.validate()},
		{"delivery.enemies", t.Delivery.Enemies.validate()},
		{"bells.inertia", t.Bells.Inertia.validate()},
		{"bells.bells", t.Bells.Bells.validate()},
		{"bells.bombs", t.Bells.Bombs.validate()},
		{"bells.letters", t.Bells.Letters.validate()},
	}
	for _, c := range checks {
		if c.err != nil {
			return fmt.Errorf("%w: %s: %v", ErrInvalidTuning, c.name, c.err)
		}
	}

	if t.Pickup.Target == 0 || t.Delivery.Target == 0 {
		return fmt.Errorf("%w: phase targets must be positive", ErrInvalidTuning)
	}
	if t.Pickup.ForbiddenMarginPercent < 0 || t.Pickup.ForbiddenMarginPercent >= 50 {
		return fmt.Errorf("%w: pickup.forbiddenMarginPercent %d outside [0,50)", ErrInvalidTuning, t.Pickup.ForbiddenMarginPercent)
	}

	c := t.Delivery.Chimneys
	if c.Count <= 0 || c.Size <= 0 {
		return fmt.Errorf("%w: delivery.chimneys count/size must be positive", ErrInvalidTuning)
	}
	if c.HouseHeight < c.Size {
		return fmt.Errorf("%w: delivery.chimneys.houseHeight %d smaller than size %d", ErrInvalidTuning, c.HouseHeight, c.Size)
	}
	if c.ProhibitedPercent < 0 || c.ProhibitedPercent > 100 {
		return fmt.Errorf("%w: delivery.chimneys.prohibitedPercent %d", ErrInvalidTuning, c.ProhibitedPercent)
	}
	if c.ResetFrames == 0 {
		return fmt.Errorf("%w: delivery.chimneys.resetFrames must be positive", ErrInvalidTuning)
	}
	if c.ToggleMaxFrames != 0 && c.ToggleMaxFrames <= c.ToggleMinFrames {
		return fmt.Errorf("%w: delivery.chimneys toggle range [%d,%d)", ErrInvalidTuning, c.ToggleMinFrames, c.ToggleMaxFrames)
	}
	if t.Delivery.Throw.FlightSpeed <= 0 || t.Delivery.Throw.Radius <= 0 {
		return fmt.Errorf("%w: delivery.throw radius/flightSpeed must be positive", ErrInvalidTuning)
	}
	if t.Delivery.Throw.FallbackMaxOffset <= t.Delivery.Throw.FallbackMinOffset {
		return fmt.Errorf("%w: delivery.throw fallback range [%d,%d)", ErrInvalidTuning,
			t.Delivery.Throw.FallbackMinOffset, t.Delivery.Throw.FallbackMaxOffset)
	}

	if t.Bells.MaxX <= t.Bells.MinX {
		return fmt.Errorf("%w: bells cannon range [%d,%d]", ErrInvalidTuning, t.Bells.MinX, t.Bells.MaxX)
	}
	if t.Bells.Bullets.Capacity <= 0 || t.Bells.Bullets.Speed <= 0 {
		return fmt.Errorf("%w: bells.bullets capacity/speed must be positive", ErrInvalidTuning)
	}
	if t.Bells.Word == "" || t.Bells.BellTarget <= 0 {
		return fmt.Errorf("%w: bells.word and bells.bellTarget are required", ErrInvalidTuning)
	}
	glyphs, err := WordGlyphs(t.Bells.Word)
	if err != nil {
		return fmt.Errorf("%w: bells.word: %v", ErrInvalidTuning, err)
	}
	if len(glyphs) > t.Bells.Letters.Capacity {
		return fmt.Errorf("%w: bells.word %q has %d distinct glyphs, letters.capacity is %d",
			ErrInvalidTuning, t.Bells.Word, len(glyphs), t.Bells.Letters.Capacity)
	}
	return nil
}

// WordGlyphs 拼字单词（转大写）中去重后的字符，按首次出现顺序排列
// 每个字符占字母池的一个槽位，只接受可打印的 ASCII 字符
func WordGlyphs(word string) ([]byte, error) {
	word = strings.ToUpper(word)
	var out []byte
	for i := 0; i < len(word); i++ {
		c := word[i]
		if c <= ' ' || c > '~' {
			return nil, fmt.Errorf("byte 0x%02x at %d is not a printable ASCII glyph", c, i)
		}
		if strings.IndexByte(string(out), c) < 0 {
			out = append(out, c)
		}
	}
	return out, nil
}

func (i InertiaTuning) validate() error {
	if i.MaxVelocity <= 0 {
		return fmt.Errorf("maxVelocity must be positive, got %d", i.MaxVelocity)
	}
	if i.Accel <= 0 || i.Friction < 0 {
		return fmt.Errorf("accel must be positive and friction non-negative (accel=%d friction=%d)", i.Accel, i.Friction)
	}
	return nil
}

func (a ActorTuning) validate() error {
	if a.Capacity <= 0 {
		return fmt.Errorf("capacity must be positive, got %d", a.Capacity)
	}
	if a.Width <= 0 || a.Height <= 0 {
		return fmt.Errorf("size must be positive, got %dx%d", a.Width, a.Height)
	}
	if 2*a.HitboxInset >= a.Width || 2*a.HitboxInset >= a.Height {
		return fmt.Errorf("hitboxInset %d leaves no hitbox", a.HitboxInset)
	}
	if a.SpawnMaxAbove <= a.SpawnMinAbove {
		return fmt.Errorf("spawn range [%d,%d) is empty", a.SpawnMinAbove, a.SpawnMaxAbove)
	}
	return nil
}
