package host

import (
	"fmt"
	"sort"
	"strings"
)

// RecordingSprite 录制宿主的精灵，只保存状态
type RecordingSprite struct {
	Kind     SpriteKind
	X, Y     int16
	Visible  bool
	Frame    int
	Depth    int16
	HFlip    bool
	Released bool
}

func (s *RecordingSprite) SetPosition(x, y int16) { s.X, s.Y = x, y }
func (s *RecordingSprite) SetVisible(v bool)      { s.Visible = v }
func (s *RecordingSprite) SetFrame(f int)         { s.Frame = f }
func (s *RecordingSprite) SetDepth(d int16)       { s.Depth = d }
func (s *RecordingSprite) SetHFlip(f bool)        { s.HFlip = f }
func (s *RecordingSprite) Release()               { s.Released = true; s.Visible = false }

// RecordingBackground 录制宿主的背景
type RecordingBackground struct {
	Kind     BackgroundKind
	Plane    Plane
	Tiles    uint32
	X, Y     int16
	Released bool
}

func (b *RecordingBackground) TileCount() uint32   { return b.Tiles }
func (b *RecordingBackground) ScrollTo(x, y int16) { b.X, b.Y = x, y }
func (b *RecordingBackground) Release()            { b.Released = true }

// RecordingDriver 无窗口的精灵驱动 + 文字层，供 -headless 模式与测试使用
type RecordingDriver struct {
	Sprites     []*RecordingSprite
	Backgrounds []*RecordingBackground
	// BackgroundTiles 每张背景占用的图块数（缺省 0）
	BackgroundTiles map[BackgroundKind]uint32
	// FailKinds 这些种类的精灵申请会失败，用于测试降级路径
	FailKinds map[SpriteKind]bool

	text map[[2]int]string
}

// NewRecordingDriver 创建录制驱动
func NewRecordingDriver() *RecordingDriver {
	return &RecordingDriver{
		BackgroundTiles: make(map[BackgroundKind]uint32),
		FailKinds:       make(map[SpriteKind]bool),
		text:            make(map[[2]int]string),
	}
}

// NewSprite 实现 SpriteDriver
func (d *RecordingDriver) NewSprite(kind SpriteKind) (Sprite, error) {
	if d.FailKinds[kind] {
		return nil, fmt.Errorf("no image for sprite kind %q", kind)
	}
	s := &RecordingSprite{Kind: kind, Visible: true}
	d.Sprites = append(d.Sprites, s)
	return s, nil
}

// LoadBackground 实现 SpriteDriver
func (d *RecordingDriver) LoadBackground(kind BackgroundKind, plane Plane) (Background, error) {
	b := &RecordingBackground{Kind: kind, Plane: plane, Tiles: d.BackgroundTiles[kind]}
	d.Backgrounds = append(d.Backgrounds, b)
	return b, nil
}

// DrawText 实现 TextLayer
func (d *RecordingDriver) DrawText(s string, col, row int) {
	d.text[[2]int{col, row}] = s
}

// ClearText 实现 TextLayer
func (d *RecordingDriver) ClearText(col, row, n int) {
	delete(d.text, [2]int{col, row})
}

// ClearAll 实现 TextLayer
func (d *RecordingDriver) ClearAll() {
	d.text = make(map[[2]int]string)
}

// TextAt 返回某个位置绘制的文字
func (d *RecordingDriver) TextAt(col, row int) string {
	return d.text[[2]int{col, row}]
}

// Text 返回按行列排序后拼接的全部文字
func (d *RecordingDriver) Text() string {
	keys := make([][2]int, 0, len(d.text))
	for k := range d.text {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool {
		if keys[i][1] != keys[j][1] {
			return keys[i][1] < keys[j][1]
		}
		return keys[i][0] < keys[j][0]
	})
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, d.text[k])
	}
	return strings.Join(parts, "\n")
}

// LiveSprites 返回未释放的某类精灵
func (d *RecordingDriver) LiveSprites(kind SpriteKind) []*RecordingSprite {
	var out []*RecordingSprite
	for _, s := range d.Sprites {
		if s.Kind == kind && !s.Released {
			out = append(out, s)
		}
	}
	return out
}

// RecordingAudio 记录播放过的音效与音乐
type RecordingAudio struct {
	SFX   []SoundID
	Music []MusicID
	// Playing 当前音乐，空串表示停止
	Playing MusicID
}

func (a *RecordingAudio) PlaySFX(id SoundID) { a.SFX = append(a.SFX, id) }

func (a *RecordingAudio) PlayMusic(id MusicID) {
	a.Music = append(a.Music, id)
	a.Playing = id
}

func (a *RecordingAudio) StopMusic() { a.Playing = "" }

// Count 返回某音效的播放次数
func (a *RecordingAudio) Count(id SoundID) int {
	n := 0
	for _, s := range a.SFX {
		if s == id {
			n++
		}
	}
	return n
}

// ScriptedInput 按帧回放预先写好的按键序列，序列结束后返回 Fallback
type ScriptedInput struct {
	Frames   []Buttons
	Fallback func(frame int) Buttons
	frame    int
}

// ReadButtons 实现 InputSource
func (s *ScriptedInput) ReadButtons() Buttons {
	i := s.frame
	s.frame++
	if i < len(s.Frames) {
		return s.Frames[i]
	}
	if s.Fallback != nil {
		return s.Fallback(i)
	}
	return 0
}

// Frame 已读取的帧数
func (s *ScriptedInput) Frame() int {
	return s.frame
}
