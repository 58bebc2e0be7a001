package ebitenhost

import (
	"fmt"
	"image"
	"image/color"
	"log"
	"sort"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font/basicfont"

	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// 占位背景声明的图块数
const (
	backgroundTiles = 640
	snowTiles       = 96
)

// frameKey 占位图缓存键
type frameKey struct {
	kind  host.SpriteKind
	frame int
}

// Driver 实现 host.SpriteDriver 与 host.TextLayer
//
// 精灵按深度排序绘制（数值越小越靠前），同深度按创建顺序
type Driver struct {
	sizes       map[host.SpriteKind]image.Point
	sprites     []*sprite
	backgrounds []*background
	text        map[[2]int]string
	images      map[frameKey]*ebiten.Image
	face        text.Face
	seq         uint64
}

// NewDriver 创建驱动
//
// 参数：
//   - sizes: 精灵种类 → 像素尺寸（见 host.KindSizes），缺省种类使用 16x16
func NewDriver(sizes map[host.SpriteKind]image.Point) *Driver {
	return &Driver{
		sizes:  sizes,
		text:   make(map[[2]int]string),
		images: make(map[frameKey]*ebiten.Image),
		face:   text.NewGoXFace(basicfont.Face7x13),
	}
}

// NewSprite 实现 host.SpriteDriver
func (d *Driver) NewSprite(kind host.SpriteKind) (host.Sprite, error) {
	if _, ok := kindColors[kind]; !ok {
		return nil, fmt.Errorf("no placeholder for sprite kind %q", kind)
	}
	d.seq++
	s := &sprite{driver: d, kind: kind, visible: true, seq: d.seq}
	d.sprites = append(d.sprites, s)
	return s, nil
}

// LoadBackground 实现 host.SpriteDriver
func (d *Driver) LoadBackground(kind host.BackgroundKind, plane host.Plane) (host.Background, error) {
	if _, ok := backgroundColors[kind]; !ok {
		return nil, fmt.Errorf("no placeholder for background %q", kind)
	}
	b := &background{driver: d, kind: kind, plane: plane}
	d.backgrounds = append(d.backgrounds, b)
	return b, nil
}

// DrawText 实现 host.TextLayer
func (d *Driver) DrawText(s string, col, row int) {
	d.text[[2]int{col, row}] = s
}

// ClearText 实现 host.TextLayer：清除从 col 开始的 n 个字符格
func (d *Driver) ClearText(col, row, n int) {
	for k, s := range d.text {
		if k[1] != row {
			continue
		}
		if k[0] >= col && k[0] < col+n {
			delete(d.text, k)
			continue
		}
		// 截断从左侧伸入清除区的字符串
		if k[0] < col && k[0]+len(s) > col {
			d.text[k] = s[:col-k[0]]
		}
	}
}

// ClearAll 实现 host.TextLayer
func (d *Driver) ClearAll() {
	clear(d.text)
}

// LiveSprites 当前未释放的精灵数量
func (d *Driver) LiveSprites() int {
	return len(d.sprites)
}

// Draw 绘制一帧：后景平面、前景横幅、精灵、雪花、文字
func (d *Driver) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	d.drawBackgrounds(screen, host.PlaneB)
	d.drawBackgrounds(screen, host.PlaneA)
	for _, s := range d.drawOrder() {
		d.drawSprite(screen, s)
	}
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for _, b := range d.backgrounds {
		if b.kind == host.BackgroundSnow {
			drawSnow(screen, b.x, b.y, w, h)
		}
	}
	d.drawText(screen)
}

// drawOrder 可见精灵的绘制顺序：先画深度大的（靠后），同深度先创建的先画
func (d *Driver) drawOrder() []*sprite {
	out := make([]*sprite, 0, len(d.sprites))
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

func (d *Driver) drawSprite(screen *ebiten.Image, s *sprite) {
	img := d.frameImage(s.kind, s.frame)
	op := &ebiten.DrawImageOptions{}
	if s.hflip {
		op.GeoM.Scale(-1, 1)
		op.GeoM.Translate(float64(img.Bounds().Dx()), 0)
	}
	op.GeoM.Translate(float64(s.x), float64(s.y))
	screen.DrawImage(img, op)
}

// frameImage 生成或取出占位图
func (d *Driver) frameImage(kind host.SpriteKind, frame int) *ebiten.Image {
	key := frameKey{kind, frame}
	if img, ok := d.images[key]; ok {
		return img
	}

	size, ok := d.sizes[kind]
	if !ok || size.X <= 0 || size.Y <= 0 {
		size = image.Pt(fallbackSize, fallbackSize)
	}
	c := kindColors[kind]
	glyph, bw := byte(0), frame&host.FrameAlt != 0
	if isLetterKind(kind) {
		glyph, bw = host.LetterGlyph(frame)
	}
	if bw {
		c = grayOf(c)
	}

	img := ebiten.NewImage(size.X, size.Y)
	img.Fill(c)
	// 朝向标记：右上角小方块，翻转后可见
	vector.DrawFilledRect(img, float32(size.X-4), 0, 4, 4, color.White, false)
	if glyph != 0 {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(size.X-7)/2, float64(size.Y-13)/2)
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(img, string(rune(glyph)), d.face, op)
	}
	d.images[key] = img
	return img
}

func (d *Driver) drawBackgrounds(screen *ebiten.Image, plane host.Plane) {
	w, h := screen.Bounds().Dx(), screen.Bounds().Dy()
	for _, b := range d.backgrounds {
		if b.plane != plane {
			continue
		}
		if b.kind == host.BackgroundSnow {
			continue
		}
		colors := backgroundColors[b.kind]
		if plane == host.PlaneA {
			// 前景平面只占一条横幅，不遮挡精灵
			const bannerH = 64
			y := float32(24 - int(b.y))
			vector.DrawFilledRect(screen, 16, y, float32(w-32), bannerH, colors[0], false)
			vector.StrokeRect(screen, 16, y, float32(w-32), bannerH, 2, colors[1], false)
			continue
		}
		screen.Fill(colors[0])
		// 条纹随滚动移动
		const band = 32
		offset := int(b.y) % (band * 2)
		if offset < 0 {
			offset += band * 2
		}
		for y := offset - band*2; y < h; y += band * 2 {
			vector.DrawFilledRect(screen, 0, float32(y), float32(w), band, colors[1], false)
		}
	}
}

// drawSnow 在网格上画雪点，x/y 为图层偏移
func drawSnow(screen *ebiten.Image, ox, oy int16, w, h int) {
	const step = 24
	c := backgroundColors[host.BackgroundSnow][0]
	for gy := -step; gy < h+step; gy += step {
		for gx := -step; gx < w+step; gx += step {
			x := (gx + int(ox)%step + (gy/step%2)*step/2)
			y := gy + int(oy)%step
			vector.DrawFilledRect(screen, float32(x), float32(y), 2, 2, c, false)
		}
	}
}

func (d *Driver) drawText(screen *ebiten.Image) {
	for k, s := range d.text {
		op := &text.DrawOptions{}
		op.GeoM.Translate(float64(k[0]*charCellSize), float64(k[1]*charCellSize-glyphBaseline+charCellSize))
		op.ColorScale.ScaleWithColor(color.White)
		text.Draw(screen, s, d.face, op)
	}
}

func (d *Driver) releaseSprite(s *sprite) {
	for i, live := range d.sprites {
		if live == s {
			d.sprites = append(d.sprites[:i], d.sprites[i+1:]...)
			return
		}
	}
	log.Printf("[EbitenHost] release of unknown %s sprite ignored", s.kind)
}

func (d *Driver) releaseBackground(b *background) {
	for i, live := range d.backgrounds {
		if live == b {
			d.backgrounds = append(d.backgrounds[:i], d.backgrounds[i+1:]...)
			return
		}
	}
}

// sprite 驱动内部的精灵状态
type sprite struct {
	driver  *Driver
	kind    host.SpriteKind
	x, y    int16
	visible bool
	frame   int
	depth   int16
	hflip   bool
	seq     uint64
	freed   bool
}

func (s *sprite) SetPosition(x, y int16) { s.x, s.y = x, y }
func (s *sprite) SetVisible(v bool)      { s.visible = v }
func (s *sprite) SetFrame(f int)         { s.frame = f }
func (s *sprite) SetDepth(d int16)       { s.depth = d }
func (s *sprite) SetHFlip(f bool)        { s.hflip = f }

func (s *sprite) Release() {
	if s.freed {
		return
	}
	s.freed = true
	s.driver.releaseSprite(s)
}

// background 占位背景
type background struct {
	driver *Driver
	kind   host.BackgroundKind
	plane  host.Plane
	x, y   int16
	freed  bool
}

func (b *background) TileCount() uint32 {
	if b.kind == host.BackgroundSnow {
		return snowTiles
	}
	return backgroundTiles
}

func (b *background) ScrollTo(x, y int16) { b.x, b.y = x, y }

func (b *background) Release() {
	if b.freed {
		return
	}
	b.freed = true
	b.driver.releaseBackground(b)
}
