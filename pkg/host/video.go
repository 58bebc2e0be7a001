package host

// SpriteKind 精灵种类，驱动据此选择图像
type SpriteKind string

const (
	SpriteSanta          SpriteKind = "santa"
	SpriteSleigh         SpriteKind = "sleigh"
	SpriteChimney        SpriteKind = "chimney"
	SpriteEnemy          SpriteKind = "enemy"
	SpriteFlyingEnemy    SpriteKind = "flying_enemy"
	SpriteGift           SpriteKind = "gift"
	SpriteGiftIcon       SpriteKind = "gift_icon"
	SpriteTree           SpriteKind = "tree"
	SpriteElf            SpriteKind = "elf"
	SpriteCannon         SpriteKind = "cannon"
	SpriteBullet         SpriteKind = "bullet"
	SpriteBell           SpriteKind = "bell"
	SpriteBellIcon       SpriteKind = "bell_icon"
	SpriteBomb           SpriteKind = "bomb"
	SpriteLetter         SpriteKind = "letter"
	SpriteTargetLetter   SpriteKind = "target_letter"
	SpritePrompt         SpriteKind = "prompt"
	SpriteLanguageCursor SpriteKind = "language_cursor"
	SpriteLogoText       SpriteKind = "logo_text"
	SpriteLogoLine       SpriteKind = "logo_line"
)

// 常用的精灵帧约定
const (
	FrameNormal = 0
	FrameAlt    = 1 // 黑白/禁用/冷却等第二外观
)

// LetterFrame 字母精灵的帧号：字符编码左移一位，最低位表示黑白外观
func LetterFrame(glyph byte, bw bool) int {
	f := int(glyph) << 1
	if bw {
		f |= FrameAlt
	}
	return f
}

// LetterGlyph 从帧号还原字符与外观
func LetterGlyph(frame int) (glyph byte, bw bool) {
	return byte(frame >> 1), frame&FrameAlt != 0
}

// Sprite 硬件精灵句柄
type Sprite interface {
	SetPosition(x, y int16)
	SetVisible(visible bool)
	SetFrame(frame int)
	SetDepth(depth int16)
	SetHFlip(flip bool)
	Release()
}

// BackgroundKind 背景图种类
type BackgroundKind string

const (
	BackgroundLogo     BackgroundKind = "logo"
	BackgroundTitle    BackgroundKind = "title"
	BackgroundCutscene BackgroundKind = "cutscene"
	BackgroundForest   BackgroundKind = "forest"
	BackgroundRooftops BackgroundKind = "rooftops"
	BackgroundNight    BackgroundKind = "night"
	BackgroundSnow     BackgroundKind = "snow"
	BackgroundParty    BackgroundKind = "party"
)

// Plane 背景平面：A 在前，B 在后
type Plane uint8

const (
	PlaneB Plane = iota
	PlaneA
)

// Background 已加载的背景图层
type Background interface {
	TileCount() uint32
	ScrollTo(x, y int16)
	Release()
}

// SpriteDriver 精灵与背景驱动
type SpriteDriver interface {
	NewSprite(kind SpriteKind) (Sprite, error)
	LoadBackground(kind BackgroundKind, plane Plane) (Background, error)
}

// TextLayer 文字图层，坐标以 8x8 字符格为单位
type TextLayer interface {
	DrawText(s string, col, row int)
	ClearText(col, row, n int)
	ClearAll()
}

// Host 一次运行所需的全部宿主能力
type Host struct {
	Sprites SpriteDriver
	Text    TextLayer
	Audio   AudioSink
	Input   InputSource
}
