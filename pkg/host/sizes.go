package host

import (
	"image"

	"github.com/Ganso/Sleigh-Chase/pkg/config"
)

// 不随配置变化的小精灵尺寸（像素）
const (
	IconSize   = 16
	LetterSize = 16
	PromptSize = 16
	CursorSize = 8
	LogoTextW  = 200
	LogoTextH  = 24
	LogoLineW  = 158
	LogoLineH  = 4
)

// KindSizes 根据配置计算每种精灵的像素尺寸，供各驱动生成占位图
//
// 参数：
//   - t: 已校验的配置
//
// 返回：
//   - map[SpriteKind]image.Point: 精灵种类 → 宽高
func KindSizes(t *config.Tuning) map[SpriteKind]image.Point {
	p := func(w, h int16) image.Point { return image.Pt(int(w), int(h)) }
	return map[SpriteKind]image.Point{
		SpriteSleigh:         p(t.Pickup.Player.Width, t.Pickup.Player.Height),
		SpriteTree:           p(t.Pickup.Trees.Width, t.Pickup.Trees.Height),
		SpriteElf:            p(t.Pickup.Elves.Width, t.Pickup.Elves.Height),
		SpriteEnemy:          p(t.Pickup.Enemies.Width, t.Pickup.Enemies.Height),
		SpriteSanta:          p(t.Delivery.Player.Width, t.Delivery.Player.Height),
		SpriteChimney:        p(t.Delivery.Chimneys.Size, t.Delivery.Chimneys.Size),
		SpriteFlyingEnemy:    p(t.Delivery.Enemies.Width, t.Delivery.Enemies.Height),
		SpriteGift:           p(t.Delivery.Throw.ProjectileSize, t.Delivery.Throw.ProjectileSize),
		SpriteCannon:         p(t.Bells.Cannon.Width, t.Bells.Cannon.Height),
		SpriteBullet:         p(t.Bells.Bullets.Size, t.Bells.Bullets.Size),
		SpriteBell:           p(t.Bells.Bells.Width, t.Bells.Bells.Height),
		SpriteBomb:           p(t.Bells.Bombs.Width, t.Bells.Bombs.Height),
		SpriteLetter:         p(t.Bells.Letters.Width, t.Bells.Letters.Height),
		SpriteGiftIcon:       image.Pt(IconSize, IconSize),
		SpriteBellIcon:       image.Pt(IconSize, IconSize),
		SpriteTargetLetter:   image.Pt(LetterSize, LetterSize),
		SpritePrompt:         image.Pt(PromptSize, PromptSize),
		SpriteLanguageCursor: image.Pt(CursorSize, CursorSize),
		SpriteLogoText:       image.Pt(LogoTextW, LogoTextH),
		SpriteLogoLine:       image.Pt(LogoLineW, LogoLineH),
	}
}
