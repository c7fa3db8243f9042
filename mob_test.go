package main

import "testing"

func TestNewMobKinds(t *testing.T) {
	tests := []struct {
		mobID  string
		kind   MobKind
		floats bool
	}{
		{"cloud", MobCloud, true},
		{"fireball", MobFireball, true},
		{"mushroom", MobMushroom, false},
		{"weird", MobGeneric, false},
	}
	for _, tt := range tests {
		m := NewMob(tt.mobID)
		if m.Kind() != tt.kind {
			t.Errorf("%s: kind = %v, want %v", tt.mobID, m.Kind(), tt.kind)
		}
		if m.floats() != tt.floats {
			t.Errorf("%s: floats = %v, want %v", tt.mobID, m.floats(), tt.floats)
		}
	}
}

func TestCloudDriftTurnsAtBounds(t *testing.T) {
	m := NewMob("cloud")
	m.body = &Body{Box: Box{X: 0, Y: 50, W: CloudSize, H: CloudSize / 2}, Floats: true}
	m.Tempo = -CloudTempo

	m.Step(1.0/TickRate, 640)
	if m.Tempo != CloudTempo {
		t.Error("cloud at the left bound should turn right")
	}
	if m.body.VX != CloudTempo {
		t.Errorf("cloud VX = %.1f, want %.1f", m.body.VX, CloudTempo)
	}

	m.body.X = 640 - CloudSize
	m.Step(1.0/TickRate, 640)
	if m.Tempo != -CloudTempo {
		t.Error("cloud at the right bound should turn left")
	}
}

func TestFireballDropsStraightDown(t *testing.T) {
	m := NewMob("fireball")
	m.body = &Body{Box: Box{X: 100, Y: 50}, Floats: true}
	m.body.VX = 33 // stray velocity must be overridden

	m.Step(1.0/TickRate, 640)
	if m.body.VX != 0 {
		t.Errorf("fireball VX = %.1f, want 0", m.body.VX)
	}
	if m.body.VY != FireballSpeed {
		t.Errorf("fireball VY = %.1f, want %.1f", m.body.VY, FireballSpeed)
	}
}

func TestMushroomPatrols(t *testing.T) {
	m := NewMob("mushroom")
	m.body = &Body{Box: Box{X: 100, Y: 50}}

	m.Step(1.0/TickRate, 640)
	if m.body.VX != MushroomTempo {
		t.Errorf("mushroom VX = %.1f, want %.1f", m.body.VX, MushroomTempo)
	}

	m.ReverseTempo()
	m.Step(1.0/TickRate, 640)
	if m.body.VX != -MushroomTempo {
		t.Errorf("after reverse VX = %.1f, want %.1f", m.body.VX, -MushroomTempo)
	}
}

func TestRemovedMobDoesNotStep(t *testing.T) {
	m := NewMob("mushroom")
	m.body = &Body{Box: Box{X: 100, Y: 50}}
	m.removed = true

	m.Step(1.0/TickRate, 640)
	if m.body.VX != 0 {
		t.Error("a removed mob must not move")
	}
}

func TestMushroomWeight(t *testing.T) {
	if NewMob("mushroom").weight() != MushroomWeight {
		t.Error("mushroom should be heavy")
	}
	if NewMob("cloud").weight() == MushroomWeight {
		t.Error("clouds are not mushroom-weight")
	}
}
