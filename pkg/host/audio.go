package host

// SoundID 音效标识
type SoundID string

const (
	SFXBell              SoundID = "bell"
	SFXBomb              SoundID = "bomb"
	SFXCannon            SoundID = "cannon"
	SFXGiftCollected     SoundID = "gift_collected"
	SFXObstacleHit       SoundID = "obstacle_hit"
	SFXElfStealing       SoundID = "elf_stealing"
	SFXGiftThrown        SoundID = "gift_thrown"
	SFXElfCrash          SoundID = "elf_crash"
	SFXHoHoHo            SoundID = "hohoho"
	SFXGiftVanish        SoundID = "gift_vanish"
	SFXFlyingElfAppears  SoundID = "flying_elf_appears"
	SFXFlyingElfStealing SoundID = "flying_elf_stealing"
	SFXGiftBurned        SoundID = "gift_burned"
	SFXNetShot           SoundID = "net_shot"
	SFXDeliverySuccess   SoundID = "delivery_success"
	SFXConfettiHit       SoundID = "confetti_hit"
	SFXMenuMove          SoundID = "menu_move"
	SFXMenuConfirm       SoundID = "menu_confirm"
)

// AllSounds 全部音效（用于预生成与导出）
var AllSounds = []SoundID{
	SFXBell, SFXBomb, SFXCannon, SFXGiftCollected, SFXObstacleHit,
	SFXElfStealing, SFXGiftThrown, SFXElfCrash, SFXHoHoHo, SFXGiftVanish,
	SFXFlyingElfAppears, SFXFlyingElfStealing, SFXGiftBurned, SFXNetShot,
	SFXDeliverySuccess, SFXConfettiHit, SFXMenuMove, SFXMenuConfirm,
}

// MusicID 背景音乐标识
type MusicID string

const (
	MusicTitle       MusicID = "title"
	MusicGameplay    MusicID = "gameplay"
	MusicCelebration MusicID = "celebration"
)

// AllMusic 全部背景音乐
var AllMusic = []MusicID{MusicTitle, MusicGameplay, MusicCelebration}

// AudioSink 音频输出：音效即发即忘，音乐由阶段控制启停
type AudioSink interface {
	PlaySFX(id SoundID)
	PlayMusic(id MusicID)
	StopMusic()
}
