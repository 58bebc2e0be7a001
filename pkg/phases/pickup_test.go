package phases

import (
	"testing"

	"github.com/Ganso/Sleigh-Chase/pkg/host"
)

// newQuietPickup 关闭卷轴，所有对象移到屏幕上方远处
func newQuietPickup(t *testing.T) (*testRig, *PickupPhase) {
	t.Helper()
	rig := newTestRig(t)
	p := NewPickupPhase()
	rig.initPhase(t, p)
	p.scroll.SetSpeed(0)
	for i := 0; i < p.trees.Len(); i++ {
		p.trees.SpawnAt(i, p.leftLimit, -500)
	}
	for i := 0; i < p.elves.Len(); i++ {
		p.elves.SpawnAt(i, 0, -500)
	}
	for i := 0; i < p.enemies.Len(); i++ {
		p.enemies.SpawnAt(i, p.leftLimit, -500)
	}
	return rig, p
}

func TestPickupInitLayout(t *testing.T) {
	rig := newTestRig(t)
	p := NewPickupPhase()
	rig.initPhase(t, p)

	w := p.screen.Width
	if p.leftLimit != w*20/100 || p.rightLimit != w-p.leftLimit {
		t.Errorf("Expected lane [%d,%d), got [%d,%d)", w*20/100, w-w*20/100, p.leftLimit, p.rightLimit)
	}
	for i := 0; i < p.elves.Len(); i++ {
		s := p.elves.Slot(i)
		inLeft := s.X >= 0 && s.X+p.cfg.Elves.Width <= p.leftLimit
		inRight := s.X >= p.rightLimit && s.X+p.cfg.Elves.Width <= w
		if !inLeft && !inRight {
			t.Errorf("Expected elf %d in a side strip, got x=%d", i, s.X)
		}
		if i%2 == 0 && !inLeft {
			t.Errorf("Expected elf %d on the left strip", i)
		}
	}
	for i := 0; i < p.trees.Len(); i++ {
		s := p.trees.Slot(i)
		if s.X < p.leftLimit || s.X >= p.rightLimit-p.cfg.Trees.Width {
			t.Errorf("Expected tree %d inside the lane, got x=%d", i, s.X)
		}
	}
	if p.enemies.ActiveCount() != p.enemies.Len() {
		t.Errorf("Expected all %d thieves active, got %d", p.enemies.Len(), p.enemies.ActiveCount())
	}
}

func TestPickupSantaStaysInLane(t *testing.T) {
	rig, p := newQuietPickup(t)
	for i := 0; i < 200; i++ {
		rig.step(p, host.ButtonLeft)
	}
	if p.santa.X != p.leftLimit {
		t.Errorf("Expected santa clamped at %d, got %d", p.leftLimit, p.santa.X)
	}
	for i := 0; i < 200; i++ {
		rig.step(p, host.ButtonRight)
	}
	if want := p.rightLimit - p.cfg.Player.Width; p.santa.X != want {
		t.Errorf("Expected santa clamped at %d, got %d", want, p.santa.X)
	}
}

func TestPickupCollectFromTree(t *testing.T) {
	rig, p := newQuietPickup(t)
	hx, hy := playerHitbox(p.santa, p.cfg.Player).Center()
	p.trees.SpawnAt(0, hx-p.cfg.Trees.Width/2, hy-p.cfg.Trees.Height/2)

	rig.step(p, 0)

	if p.Collected() != 1 {
		t.Errorf("Expected 1 gift, got %d", p.Collected())
	}
	if p.Charge() != 1 {
		t.Errorf("Expected charge 1, got %d", p.Charge())
	}
	if rig.audio.Count(host.SFXGiftCollected) != 1 {
		t.Errorf("Expected collect sound once, got %d", rig.audio.Count(host.SFXGiftCollected))
	}
	if p.trees.Slot(0).Y >= 0 {
		t.Errorf("Expected tree recycled above the screen, got y=%d", p.trees.Slot(0).Y)
	}
	if got := rig.driver.TextAt(4, 2); got != "REGALOS 1/15" {
		t.Errorf("Expected HUD %q, got %q", "REGALOS 1/15", got)
	}
}

func TestPickupThiefSteals(t *testing.T) {
	rig, p := newQuietPickup(t)
	p.objective.OnGiftSuccess()
	p.objective.OnGiftSuccess()
	hx, hy := playerHitbox(p.santa, p.cfg.Player).Center()
	p.enemies.SpawnAt(0, hx-p.cfg.Enemies.Width/2, hy-p.cfg.Enemies.Height/2)

	rig.step(p, 0)

	if p.Collected() != 1 {
		t.Errorf("Expected 1 gift left, got %d", p.Collected())
	}
	if rig.audio.Count(host.SFXElfStealing) != 1 {
		t.Errorf("Expected stealing sound, got %d", rig.audio.Count(host.SFXElfStealing))
	}
	if !p.recovery.Active() {
		t.Error("Expected recovery after a theft")
	}

	// 无敌期间再次接触不会丢礼物
	p.enemies.SpawnAt(0, hx-p.cfg.Enemies.Width/2, hy-p.cfg.Enemies.Height/2)
	rig.step(p, 0)
	if p.Collected() != 1 {
		t.Errorf("Expected no loss while recovering, got %d", p.Collected())
	}
}

func TestPickupSpecialNeedsCharge(t *testing.T) {
	rig, p := newQuietPickup(t)
	p.enemies.SpawnAt(0, p.leftLimit, 40)

	rig.step(p, host.ButtonB)
	if rig.audio.Count(host.SFXNetShot) != 0 {
		t.Fatal("Expected special to be unavailable without charge")
	}

	p.charge = p.cfg.SpecialChargeGifts
	rig.step(p, 0)
	rig.step(p, host.ButtonB)

	if rig.audio.Count(host.SFXNetShot) != 1 {
		t.Errorf("Expected net shot sound, got %d", rig.audio.Count(host.SFXNetShot))
	}
	if p.Charge() != 0 {
		t.Errorf("Expected charge reset, got %d", p.Charge())
	}
	if p.enemies.Slot(0).Y >= 0 {
		t.Errorf("Expected thief sent above the screen, got y=%d", p.enemies.Slot(0).Y)
	}
}

func TestPickupCompletesAtTarget(t *testing.T) {
	rig, p := newQuietPickup(t)
	for i := uint16(0); i < p.cfg.Target; i++ {
		p.objective.OnGiftSuccess()
	}
	rig.step(p, 0)
	if !p.IsComplete() {
		t.Errorf("Expected pickup complete at %d gifts", p.cfg.Target)
	}
}
