// Package ebitenhost 在 Ebitengine 上实现 host 接口
//
// 没有美术资源：每种精灵按 host.KindSizes 的尺寸生成纯色占位图，
// 第二帧（黑白/禁用外观）为同尺寸的灰色版本，字母精灵把字符画在方块上。
package ebitenhost

import (
	"image/color"

	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// 占位图绘制常量
const (
	fallbackSize  = 16
	charCellSize  = 8
	glyphBaseline = 11
)

// kindColors 每种精灵的占位颜色
var kindColors = map[host.SpriteKind]color.RGBA{
	host.SpriteSanta:          {200, 30, 30, 255},
	host.SpriteSleigh:         {170, 40, 40, 255},
	host.SpriteChimney:        {150, 80, 50, 255},
	host.SpriteEnemy:          {40, 150, 60, 255},
	host.SpriteFlyingEnemy:    {60, 190, 90, 255},
	host.SpriteGift:           {240, 200, 40, 255},
	host.SpriteGiftIcon:       {240, 200, 40, 255},
	host.SpriteTree:           {20, 100, 40, 255},
	host.SpriteElf:            {120, 220, 120, 255},
	host.SpriteCannon:         {90, 90, 110, 255},
	host.SpriteBullet:         {250, 250, 250, 255},
	host.SpriteBell:           {230, 180, 20, 255},
	host.SpriteBellIcon:       {230, 180, 20, 255},
	host.SpriteBomb:           {30, 30, 30, 255},
	host.SpriteLetter:         {80, 140, 230, 255},
	host.SpriteTargetLetter:   {80, 140, 230, 255},
	host.SpritePrompt:         {255, 255, 255, 255},
	host.SpriteLanguageCursor: {255, 80, 80, 255},
	host.SpriteLogoText:       {220, 220, 220, 255},
	host.SpriteLogoLine:       {200, 60, 60, 255},
}

// backgroundColors 背景主色与条纹色
var backgroundColors = map[host.BackgroundKind][2]color.RGBA{
	host.BackgroundLogo:     {{0, 0, 0, 255}, {0, 0, 0, 255}},
	host.BackgroundTitle:    {{20, 30, 80, 255}, {30, 45, 110, 255}},
	host.BackgroundCutscene: {{10, 10, 40, 255}, {20, 20, 60, 255}},
	host.BackgroundForest:   {{225, 235, 245, 255}, {200, 215, 230, 255}},
	host.BackgroundRooftops: {{40, 30, 60, 255}, {70, 40, 50, 255}},
	host.BackgroundNight:    {{5, 5, 30, 255}, {15, 15, 50, 255}},
	host.BackgroundSnow:     {{255, 255, 255, 200}, {255, 255, 255, 200}},
	host.BackgroundParty:    {{90, 20, 90, 255}, {130, 40, 120, 255}},
}

// grayOf 黑白外观
func grayOf(c color.RGBA) color.RGBA {
	y := uint8((uint16(c.R)*30 + uint16(c.G)*59 + uint16(c.B)*11) / 100)
	return color.RGBA{y, y, y, c.A}
}

// isLetterKind 帧号编码字符的精灵
func isLetterKind(kind host.SpriteKind) bool {
	return kind == host.SpriteLetter || kind == host.SpriteTargetLetter
}
