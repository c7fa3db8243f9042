package main

import "testing"

func TestPlayerHealthClamping(t *testing.T) {
	p := NewPlayer("hero", 5)

	p.ChangeHealth(-3)
	if p.HP != 2 {
		t.Errorf("HP = %d, want 2", p.HP)
	}
	p.ChangeHealth(-10)
	if p.HP != 0 {
		t.Errorf("HP should clamp at 0, got %d", p.HP)
	}
	if !p.IsDead() {
		t.Error("player with 0 HP is dead")
	}
	p.ChangeHealth(100)
	if p.HP != p.MaxHP {
		t.Errorf("HP should clamp at MaxHP, got %d", p.HP)
	}
}

func TestPlayerFullHeal(t *testing.T) {
	p := NewPlayer("hero", 5)
	p.HP = 1
	p.FullHeal()
	if p.HP != 5 {
		t.Errorf("HP = %d, want 5", p.HP)
	}
}

func TestPlayerJumpOnlyWhenGrounded(t *testing.T) {
	p := NewPlayer("hero", 5)
	p.body = &Body{Box: Box{X: 0, Y: 0, W: PlayerWidth, H: PlayerHeight}}

	p.Jumping = false
	p.Jump()
	if p.body.VY != -BlockSize*JumpSize {
		t.Errorf("jump VY = %.1f, want %.1f", p.body.VY, -BlockSize*JumpSize)
	}

	// Airborne: a second jump does nothing
	p.Jumping = true
	p.body.VY = 0
	p.Jump()
	if p.body.VY != 0 {
		t.Error("airborne jump must be ignored")
	}
}

func TestPlayerJumpWithoutBody(t *testing.T) {
	p := NewPlayer("hero", 5)
	// Must not panic before the player is placed in a world
	p.Jump()
	p.Bounce(100)
}

func TestPlayerBounceAlwaysApplies(t *testing.T) {
	p := NewPlayer("hero", 5)
	p.body = &Body{}
	p.Jumping = true

	// A stomp bounce works even mid-air, unlike a jump
	p.Bounce(MobStompBounce)
	if p.body.VY != -MobStompBounce {
		t.Errorf("bounce VY = %.1f, want %.1f", p.body.VY, -MobStompBounce)
	}
	if !p.Jumping {
		t.Error("bounce leaves the player airborne")
	}
}

func TestPlayerToState(t *testing.T) {
	p := NewPlayer("hero", 5)
	p.body = &Body{Box: Box{X: 10.24, Y: 20.56, W: PlayerWidth, H: PlayerHeight}}
	p.Score = 7

	st := p.ToState()
	if st.ID != p.ThingID() || st.Name != "hero" {
		t.Error("identity fields wrong")
	}
	if st.X != 10.2 || st.Y != 20.6 {
		t.Errorf("positions should round to one decimal, got (%v,%v)", st.X, st.Y)
	}
	if st.Score != 7 || st.HP != 5 || st.MaxHP != 5 {
		t.Error("stat fields wrong")
	}
}
