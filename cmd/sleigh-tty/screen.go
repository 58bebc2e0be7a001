package main

import (
	"fmt"
	"image"
	"sort"

	"github.com/gdamore/tcell/v2"

	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// cellSize 一个终端字符格对应的像素边长
const cellSize = 8

// kindStyle 精灵在终端中的字符与颜色
type kindStyle struct {
	r     rune
	color tcell.Color
}

var kindStyles = map[host.SpriteKind]kindStyle{
	host.SpriteSanta:          {'S', tcell.ColorRed},
	host.SpriteSleigh:         {'S', tcell.ColorMaroon},
	host.SpriteChimney:        {'#', tcell.ColorSaddleBrown},
	host.SpriteEnemy:          {'e', tcell.ColorGreen},
	host.SpriteFlyingEnemy:    {'E', tcell.ColorLime},
	host.SpriteGift:           {'g', tcell.ColorGold},
	host.SpriteGiftIcon:       {'g', tcell.ColorGold},
	host.SpriteTree:           {'^', tcell.ColorDarkGreen},
	host.SpriteElf:            {'@', tcell.ColorLightGreen},
	host.SpriteCannon:         {'=', tcell.ColorSlateGray},
	host.SpriteBullet:         {'*', tcell.ColorWhite},
	host.SpriteBell:           {'B', tcell.ColorYellow},
	host.SpriteBellIcon:       {'b', tcell.ColorYellow},
	host.SpriteBomb:           {'X', tcell.ColorDarkGray},
	host.SpriteLetter:         {'?', tcell.ColorRoyalBlue},
	host.SpriteTargetLetter:   {'?', tcell.ColorRoyalBlue},
	host.SpritePrompt:         {'>', tcell.ColorWhite},
	host.SpriteLanguageCursor: {'>', tcell.ColorRed},
	host.SpriteLogoText:       {'~', tcell.ColorSilver},
	host.SpriteLogoLine:       {'-', tcell.ColorRed},
}

var backgroundStyles = map[host.BackgroundKind]tcell.Color{
	host.BackgroundLogo:     tcell.ColorBlack,
	host.BackgroundTitle:    tcell.ColorNavy,
	host.BackgroundCutscene: tcell.ColorMidnightBlue,
	host.BackgroundForest:   tcell.ColorLightSteelBlue,
	host.BackgroundRooftops: tcell.ColorIndigo,
	host.BackgroundNight:    tcell.ColorMidnightBlue,
	host.BackgroundSnow:     tcell.ColorWhite,
	host.BackgroundParty:    tcell.ColorPurple,
}

// 与 ebiten 主机一致的图块声明
const (
	backgroundTiles = 640
	snowTiles       = 96
)

// termDriver 在 tcell 屏幕上实现 host.SpriteDriver 与 host.TextLayer
// 精灵覆盖的像素矩形映射到字符格，再按深度从后往前填充
type termDriver struct {
	sizes       map[host.SpriteKind]image.Point
	sprites     []*termSprite
	backgrounds []*termBackground
	text        map[[2]int]string
	seq         uint64
}

func newTermDriver(sizes map[host.SpriteKind]image.Point) *termDriver {
	return &termDriver{sizes: sizes, text: make(map[[2]int]string)}
}

func (d *termDriver) NewSprite(kind host.SpriteKind) (host.Sprite, error) {
	if _, ok := kindStyles[kind]; !ok {
		return nil, fmt.Errorf("no terminal style for sprite kind %q", kind)
	}
	d.seq++
	s := &termSprite{driver: d, kind: kind, visible: true, seq: d.seq}
	d.sprites = append(d.sprites, s)
	return s, nil
}

func (d *termDriver) LoadBackground(kind host.BackgroundKind, plane host.Plane) (host.Background, error) {
	if _, ok := backgroundStyles[kind]; !ok {
		return nil, fmt.Errorf("no terminal style for background %q", kind)
	}
	b := &termBackground{driver: d, kind: kind, plane: plane}
	d.backgrounds = append(d.backgrounds, b)
	return b, nil
}

func (d *termDriver) DrawText(s string, col, row int) {
	d.text[[2]int{col, row}] = s
}

func (d *termDriver) ClearText(col, row, n int) {
	for k := range d.text {
		if k[1] == row && k[0] >= col && k[0] < col+n {
			delete(d.text, k)
		}
	}
}

func (d *termDriver) ClearAll() {
	clear(d.text)
}

// cellRect 像素矩形覆盖的字符格范围 [x0,x1) x [y0,y1)
func cellRect(x, y int16, size image.Point) (x0, y0, x1, y1 int) {
	x0 = floorDiv(int(x), cellSize)
	y0 = floorDiv(int(y), cellSize)
	x1 = floorDiv(int(x)+size.X+cellSize-1, cellSize)
	y1 = floorDiv(int(y)+size.Y+cellSize-1, cellSize)
	return
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && a < 0 {
		q--
	}
	return q
}

// glyphFor 精灵在当前帧显示的字符与颜色
func glyphFor(kind host.SpriteKind, frame int) (rune, tcell.Color) {
	st := kindStyles[kind]
	bw := frame&host.FrameAlt != 0
	r := st.r
	if kind == host.SpriteLetter || kind == host.SpriteTargetLetter {
		var g byte
		g, bw = host.LetterGlyph(frame)
		if g != 0 {
			r = rune(g)
		}
	}
	if bw {
		return r, tcell.ColorGray
	}
	return r, st.color
}

// draw 把当前状态画到屏幕（cols x rows 个字符格）
func (d *termDriver) draw(screen tcell.Screen, cols, rows int) {
	screen.Clear()
	bgColor := tcell.ColorBlack
	snow := false
	for _, b := range d.backgrounds {
		if b.kind == host.BackgroundSnow {
			snow = true
			continue
		}
		if b.plane == host.PlaneB {
			bgColor = backgroundStyles[b.kind]
		}
	}
	base := tcell.StyleDefault.Background(bgColor)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			screen.SetContent(x, y, ' ', nil, base)
		}
	}

	for _, s := range d.drawOrder() {
		size, ok := d.sizes[s.kind]
		if !ok {
			size = image.Pt(cellSize, cellSize)
		}
		r, fg := glyphFor(s.kind, s.frame)
		style := base.Foreground(fg).Bold(true)
		x0, y0, x1, y1 := cellRect(s.x, s.y, size)
		for y := max(y0, 0); y < min(y1, rows); y++ {
			for x := max(x0, 0); x < min(x1, cols); x++ {
				screen.SetContent(x, y, r, nil, style)
			}
		}
	}

	if snow {
		d.drawSnow(screen, base, cols, rows)
	}

	textStyle := base.Foreground(tcell.ColorWhite)
	for k, s := range d.text {
		for i, r := range s {
			if x := k[0] + i; x >= 0 && x < cols && k[1] >= 0 && k[1] < rows {
				screen.SetContent(x, k[1], r, nil, textStyle)
			}
		}
	}
}

func (d *termDriver) drawSnow(screen tcell.Screen, base tcell.Style, cols, rows int) {
	var ox, oy int
	for _, b := range d.backgrounds {
		if b.kind == host.BackgroundSnow {
			ox, oy = floorDiv(int(b.x), cellSize), floorDiv(int(b.y), cellSize)
		}
	}
	style := base.Foreground(tcell.ColorWhite)
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			if (x+ox+(y+oy)*3)%11 == 0 {
				screen.SetContent(x, y, '.', nil, style)
			}
		}
	}
}

func (d *termDriver) drawOrder() []*termSprite {
	out := make([]*termSprite, 0, len(d.sprites))
	for _, s := range d.sprites {
		if s.visible {
			out = append(out, s)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].depth != out[j].depth {
			return out[i].depth > out[j].depth
		}
		return out[i].seq < out[j].seq
	})
	return out
}

type termSprite struct {
	driver  *termDriver
	kind    host.SpriteKind
	x, y    int16
	visible bool
	frame   int
	depth   int16
	hflip   bool
	seq     uint64
	freed   bool
}

func (s *termSprite) SetPosition(x, y int16) { s.x, s.y = x, y }
func (s *termSprite) SetVisible(v bool)      { s.visible = v }
func (s *termSprite) SetFrame(f int)         { s.frame = f }
func (s *termSprite) SetDepth(d int16)       { s.depth = d }
func (s *termSprite) SetHFlip(f bool)        { s.hflip = f }

func (s *termSprite) Release() {
	if s.freed {
		return
	}
	s.freed = true
	for i, live := range s.driver.sprites {
		if live == s {
			s.driver.sprites = append(s.driver.sprites[:i], s.driver.sprites[i+1:]...)
			return
		}
	}
}

type termBackground struct {
	driver *termDriver
	kind   host.BackgroundKind
	plane  host.Plane
	x, y   int16
	freed  bool
}

func (b *termBackground) TileCount() uint32 {
	if b.kind == host.BackgroundSnow {
		return snowTiles
	}
	return backgroundTiles
}

func (b *termBackground) ScrollTo(x, y int16) { b.x, b.y = x, y }

func (b *termBackground) Release() {
	if b.freed {
		return
	}
	b.freed = true
	for i, live := range b.driver.backgrounds {
		if live == b {
			b.driver.backgrounds = append(b.driver.backgrounds[:i], b.driver.backgrounds[i+1:]...)
			return
		}
	}
}
