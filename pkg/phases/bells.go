package phases

import (
	"fmt"
	"log"
	"strings"

	"github.com/Ganso/Sleigh-Chase/pkg/components"
	"github.com/Ganso/Sleigh-Chase/pkg/config"
	"github.com/Ganso/Sleigh-Chase/pkg/game"
	"github.com/Ganso/Sleigh-Chase/pkg/host"
	"github.com/Ganso/Sleigh-Chase/pkg/systems"
)

// BellsStage 第三阶段的子状态
type BellsStage uint8

const (
	StageBells BellsStage = iota
	StageLetters
	StageCompleted
)

// 计分板布局
const (
	iconSpacingX  = 24
	iconSpacingY  = 16
	iconsPerRow   = 4
	letterSpacing = 16
	// 单词与数字之间多留的空隙
	letterGroupGap = 4
	bulletMargin   = 8
)

// BellsPhase 第三阶段：用礼花炮敲响 12 口钟，再按顺序打出祝福字母
type BellsPhase struct {
	ctx    *game.PhaseContext
	cfg    config.BellsTuning
	screen config.ScreenTuning
	frame  uint16
	stage  BellsStage

	bg   host.Background
	snow *snowDrift

	cannonX      int16
	cannonVX     int8
	inertia      components.InertiaConfig
	cannonSprite host.Sprite

	bullets        *systems.Pool[struct{}]
	bulletCooldown components.Countdown
	specialCool    components.Countdown

	bells   *systems.Pool[components.Faller]
	bombs   *systems.Pool[components.Faller]
	letters *systems.Pool[components.Faller]

	icons          []host.Sprite
	bellsCompleted int

	// glyphs 单词中出现过的字符（去重、保持顺序），对应字母池的槽位
	glyphs        []byte
	targetSprites []host.Sprite
	letterIndex   int
}

// NewBellsPhase 创建敲钟阶段
func NewBellsPhase() *BellsPhase {
	return &BellsPhase{}
}

func (p *BellsPhase) Name() string { return PhaseBells }

func (p *BellsPhase) Init(ctx *game.PhaseContext) error {
	p.ctx = ctx
	p.cfg = ctx.Tuning.Bells
	p.screen = ctx.Tuning.Screen
	p.stage = StageBells
	p.bellsCompleted = 0
	p.letterIndex = 0
	glyphs, err := config.WordGlyphs(p.cfg.Word)
	if err != nil {
		return fmt.Errorf("bells word: %w", err)
	}
	if len(glyphs) > p.cfg.Letters.Capacity {
		return fmt.Errorf("bells word %q needs %d letter slots, pool has %d",
			p.cfg.Word, len(glyphs), p.cfg.Letters.Capacity)
	}
	p.glyphs = glyphs
	w, h := p.screen.Width, p.screen.Height

	p.bg = loadBackground(ctx, host.BackgroundNight, host.PlaneB)
	p.snow = newSnowDrift(ctx, 2, -1)

	p.inertia = inertiaConfig(p.cfg.Inertia)
	p.cannonX = (w-p.cfg.Cannon.Width)/2 + p.cfg.Cannon.Width
	p.cannonVX = 0
	p.cannonSprite = acquireSprite(ctx, host.SpriteCannon, depthHUD)

	bulletSpec := systems.ActorSpec{
		Name:         "bullet",
		Role:         systems.RoleDecorative,
		Kind:         host.SpriteBullet,
		Width:        p.cfg.Bullets.Size,
		Height:       p.cfg.Bullets.Size,
		ScreenHeight: h,
		Respawn:      systems.RespawnDeactivate,
		Depth:        depthEffects,
	}
	p.bullets = systems.NewPool[struct{}](bulletSpec, p.cfg.Bullets.Capacity, ctx.RNG)
	p.bullets.AttachSprites(ctx.Sprites)

	p.bells = p.newFallers("bell", host.SpriteBell, p.cfg.Bells)
	p.bombs = p.newFallers("bomb", host.SpriteBomb, p.cfg.Bombs)
	p.letters = p.newFallers("letter", host.SpriteLetter, p.cfg.Letters)
	for i, g := range p.glyphs {
		p.letters.Slot(i).Data.Glyph = g
	}

	p.bells.AttachSprites(ctx.Sprites)
	p.bombs.AttachSprites(ctx.Sprites)
	p.bells.SpawnAll()
	p.bombs.SpawnAll()
	p.createIcons()

	ctx.Host.Audio.PlayMusic(host.MusicGameplay)
	log.Printf("[BellsPhase] init: %d bells to ring, word %q", p.cfg.BellTarget, p.cfg.Word)
	return nil
}

func (p *BellsPhase) newFallers(name string, kind host.SpriteKind, t config.ActorTuning) *systems.Pool[components.Faller] {
	spec := actorSpec(name, systems.RoleTarget, kind, t, 0, p.screen.Width-t.Width,
		p.screen.Height, systems.RespawnAbove, depthActors)
	pool := systems.NewPool[components.Faller](spec, t.Capacity, p.ctx.RNG)
	maxDelay := int(t.MoveDelay)
	if maxDelay < 1 {
		maxDelay = 1
	}
	pool.SetOnSpawn(func(s *systems.Slot[components.Faller]) {
		s.Data = components.Faller{
			Delay: uint16(pool.RNG().Range(1, maxDelay+1)),
			Glyph: s.Data.Glyph,
		}
	})
	return pool
}

// createIcons 底部的钟计分板：每行 4 个，共 BellTarget 个
func (p *BellsPhase) createIcons() {
	p.icons = make([]host.Sprite, p.cfg.BellTarget)
	rows := int16((p.cfg.BellTarget + iconsPerRow - 1) / iconsPerRow)
	startY := p.screen.Height - rows*iconSpacingY - 16
	for i := range p.icons {
		s := acquireSprite(p.ctx, host.SpriteBellIcon, depthHUD)
		if s == nil {
			continue
		}
		x := int16(i%iconsPerRow) * iconSpacingX
		y := startY + int16(i/iconsPerRow)*iconSpacingY
		s.SetFrame(host.FrameAlt)
		showSprite(s, x, y, true)
		p.icons[i] = s
	}
}

// TargetSlot 当前要击中的字母在字母池中的槽位，全部完成后返回 -1
func (p *BellsPhase) TargetSlot() int {
	word := strings.ToUpper(p.cfg.Word)
	if p.letterIndex >= len(word) {
		return -1
	}
	return strings.IndexByte(string(p.glyphs), word[p.letterIndex])
}

func (p *BellsPhase) Update() {
	p.frame++
	p.snow.Update()
	in := p.ctx.Input

	if p.stage == StageBells && p.bellsCompleted >= p.cfg.BellTarget {
		p.startLetters()
	}

	dx, _ := in.Direction()
	systems.ApplyInertiaAxis(&p.cannonX, &p.cannonVX, p.cfg.MinX, p.cfg.MaxX, dx, p.frame, &p.inertia)

	if p.stage != StageCompleted {
		if in.Held(host.ButtonA) && !p.bulletCooldown.Active() {
			p.fire()
			p.bulletCooldown.Start(p.cfg.Bullets.CooldownFrames)
		}
		if in.Held(host.ButtonB) && !p.specialCool.Active() {
			p.specialCool.Start(p.cfg.SpecialCooldown)
			p.directHit()
		}
	}

	switch p.stage {
	case StageBells:
		p.updateFallers(p.bells)
	case StageLetters:
		p.updateFallers(p.letters)
	}
	p.updateFallers(p.bombs)
	p.updateBullets()

	p.bulletCooldown.Tick()
	p.specialCool.Tick()
}

// fire 有空闲炮弹时从炮口发射
func (p *BellsPhase) fire() {
	for i := 0; i < p.bullets.Len(); i++ {
		s := p.bullets.Slot(i)
		if s.Active || s.Disabled {
			continue
		}
		x := p.cannonX + p.cfg.Cannon.Width/2 - p.cfg.Bullets.Size/2
		y := p.screen.Height - p.cfg.Cannon.Height + 20
		p.bullets.SpawnAt(i, x, y)
		p.ctx.Host.Audio.PlaySFX(host.SFXCannon)
		return
	}
}

// directHit B 键：直接命中最低的钟，或当前目标字母
func (p *BellsPhase) directHit() {
	switch p.stage {
	case StageBells:
		best, lowest := -1, -p.cfg.Bells.Height
		p.bells.Each(func(i int, s *systems.Slot[components.Faller]) {
			if !s.Data.Blink.Active() && s.Y > lowest {
				best, lowest = i, s.Y
			}
		})
		if best >= 0 {
			p.hitBell(best)
		}
	case StageLetters:
		i := p.TargetSlot()
		if s := p.letters.Slot(i); s != nil && s.Active && !s.Data.Blink.Active() {
			p.hitLetter(i)
		}
	}
}

func (p *BellsPhase) updateFallers(pool *systems.Pool[components.Faller]) {
	zone := p.screen.Height - p.cfg.BlinkZone
	height := pool.Spec().Height
	for i := 0; i < pool.Len(); i++ {
		s := pool.Slot(i)
		if !s.Active {
			continue
		}
		if !s.Data.Blink.Active() && s.Y+height >= zone {
			s.Data.Blink.Start(p.cfg.BlinkFrames)
		}
		if s.Data.Blink.Active() {
			if s.Data.Blink.Tick() {
				pool.Recycle(i)
			}
			continue
		}
		if s.Data.Delay == 0 || p.frame%s.Data.Delay == 0 {
			s.Y++
		}
	}
	pool.Update(0)
}

func (p *BellsPhase) updateBullets() {
	for i := 0; i < p.bullets.Len(); i++ {
		s := p.bullets.Slot(i)
		if !s.Active {
			continue
		}
		s.Y -= p.cfg.Bullets.Speed
		if s.Y < -bulletMargin {
			p.bullets.Deactivate(i)
			continue
		}
		half := p.cfg.Bullets.Size / 2
		if p.resolveBullet(s.X+half, s.Y+half) {
			p.bullets.Deactivate(i)
		}
	}
}

// hitAt 返回中心点 (x, y) 命中的第一个未闪烁对象
func (p *BellsPhase) hitAt(pool *systems.Pool[components.Faller], x, y int16) int {
	w := pool.Spec().Width
	for i := 0; i < pool.Len(); i++ {
		s := pool.Slot(i)
		if !s.Active || s.Data.Blink.Active() {
			continue
		}
		if x >= s.X && x < s.X+w && y >= s.Y+p.cfg.HitTop && y < s.Y+p.cfg.HitBottom {
			return i
		}
	}
	return -1
}

// resolveBullet 先判定当前目标（钟或字母），再判定炸弹
func (p *BellsPhase) resolveBullet(x, y int16) bool {
	switch p.stage {
	case StageCompleted:
		return false
	case StageBells:
		if i := p.hitAt(p.bells, x, y); i >= 0 {
			p.hitBell(i)
			return true
		}
	case StageLetters:
		if i := p.hitAt(p.letters, x, y); i >= 0 {
			p.hitLetter(i)
			return true
		}
	}
	if i := p.hitAt(p.bombs, x, y); i >= 0 {
		p.hitBomb()
		return true
	}
	return false
}

func (p *BellsPhase) hitBell(i int) {
	p.bells.Slot(i).Data.Blink.Start(p.cfg.BlinkFrames)
	if p.bellsCompleted < p.cfg.BellTarget {
		if icon := p.icons[p.bellsCompleted]; icon != nil {
			icon.SetFrame(host.FrameNormal)
		}
		p.bellsCompleted++
	}
	p.ctx.Host.Audio.PlaySFX(host.SFXBell)
}

func (p *BellsPhase) hitLetter(i int) {
	s := p.letters.Slot(i)
	if i == p.TargetSlot() {
		if t := p.targetSprite(p.letterIndex); t != nil {
			t.SetFrame(host.LetterFrame(s.Data.Glyph, false))
		}
		p.letterIndex++
		p.ctx.Host.Audio.PlaySFX(host.SFXConfettiHit)
		if p.letterIndex >= len(p.cfg.Word) {
			p.stage = StageCompleted
			log.Printf("[BellsPhase] word completed")
		}
	}
	s.Data.Gray = true
	s.Data.Blink.Start(p.cfg.BlinkFrames)
}

// hitBomb 炸弹：所有对象闪烁并清空当前进度
func (p *BellsPhase) hitBomb() {
	p.ctx.Host.Audio.PlaySFX(host.SFXBomb)
	blinkAll := func(pool *systems.Pool[components.Faller]) {
		pool.Each(func(i int, s *systems.Slot[components.Faller]) {
			s.Data.Blink.Start(p.cfg.BlinkFrames)
		})
	}
	blinkAll(p.bombs)

	switch p.stage {
	case StageBells:
		blinkAll(p.bells)
		p.bellsCompleted = 0
		for _, icon := range p.icons {
			if icon != nil {
				icon.SetFrame(host.FrameAlt)
			}
		}
	case StageLetters:
		blinkAll(p.letters)
		p.letterIndex = 0
		word := strings.ToUpper(p.cfg.Word)
		for i := range p.targetSprites {
			if t := p.targetSprites[i]; t != nil {
				t.SetFrame(host.LetterFrame(word[i], true))
			}
		}
	}
	log.Printf("[BellsPhase] bomb hit, progress reset")
}

// startLetters 计分板集满后切换到拼字阶段
func (p *BellsPhase) startLetters() {
	p.stage = StageLetters
	p.bells.Release(p.ctx.Sprites)
	for i, icon := range p.icons {
		if icon != nil {
			p.ctx.Sprites.Release(icon)
			p.icons[i] = nil
		}
	}

	p.letters.AttachSprites(p.ctx.Sprites)
	p.letters.SpawnAll()

	word := strings.ToUpper(p.cfg.Word)
	p.targetSprites = make([]host.Sprite, len(word))
	y := p.screen.Height - 4 - p.cfg.Letters.Height
	for i := 0; i < len(word); i++ {
		s := acquireSprite(p.ctx, host.SpriteTargetLetter, depthHUD)
		if s == nil {
			continue
		}
		x := int16(i) * letterSpacing
		if word[i] >= '0' && word[i] <= '9' {
			x += letterGroupGap
		}
		s.SetFrame(host.LetterFrame(word[i], true))
		showSprite(s, x, y, true)
		p.targetSprites[i] = s
	}
	p.letterIndex = 0
	log.Printf("[BellsPhase] bells completed, spelling %q", word)
}

func (p *BellsPhase) targetSprite(i int) host.Sprite {
	if i < 0 || i >= len(p.targetSprites) {
		return nil
	}
	return p.targetSprites[i]
}

func (p *BellsPhase) Render() {
	showSprite(p.cannonSprite, p.cannonX, p.screen.Height-p.cfg.Cannon.Height, true)
	p.bullets.SyncSprites()

	highlight := p.frame%4 < 2
	switch p.stage {
	case StageBells:
		p.syncFallers(p.bells, false)
		if p.bellsCompleted < len(p.icons) {
			if icon := p.icons[p.bellsCompleted]; icon != nil {
				frame := host.FrameAlt
				if highlight {
					frame = host.FrameNormal
				}
				icon.SetFrame(frame)
			}
		}
	case StageLetters:
		p.syncFallers(p.letters, true)
		word := strings.ToUpper(p.cfg.Word)
		if t := p.targetSprite(p.letterIndex); t != nil {
			t.SetFrame(host.LetterFrame(word[p.letterIndex], !highlight))
		}
	}
	p.syncFallers(p.bombs, false)
}

// syncFallers 同步位置；闪烁中的对象在偶数帧可见
func (p *BellsPhase) syncFallers(pool *systems.Pool[components.Faller], letters bool) {
	pool.SyncSprites()
	pool.Each(func(i int, s *systems.Slot[components.Faller]) {
		if s.Sprite == nil {
			return
		}
		if letters {
			s.Sprite.SetFrame(host.LetterFrame(s.Data.Glyph, s.Data.Gray))
		}
		s.Sprite.SetVisible(blinkVisible(s.Data.Blink))
	})
}

func (p *BellsPhase) IsComplete() bool {
	return p.stage == StageCompleted
}

func (p *BellsPhase) Shutdown() {
	releaseBackground(p.bg)
	p.bg = nil
	if p.snow != nil {
		p.snow.Release()
	}
}

// Stage 当前子状态
func (p *BellsPhase) Stage() BellsStage {
	return p.stage
}

// BellsRung 已敲响的钟数
func (p *BellsPhase) BellsRung() int {
	return p.bellsCompleted
}

// LetterIndex 已拼出的字母数
func (p *BellsPhase) LetterIndex() int {
	return p.letterIndex
}
