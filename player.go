package main

const (
	PlayerWidth  = BlockSize
	PlayerHeight = BlockSize * 2
	JumpSize     = 10  // jump impulse in block heights
	MoveSpeed    = BlockSize * 5
	Knockback    = 100.0 // horizontal repel on a side mob hit
	MobStompBounce = BlockSize * 7
)

// Player is the controlled character. One player exists per world; all of
// its transient flags (invincibility, tunnel arming, jump lock) live here
// so concurrent game sessions never share state.
type Player struct {
	id        string
	Name      string // character skin tag
	body      *Body
	HP        int
	MaxHP     int
	Score     int
	Jumping   bool // true while airborne; cleared only by landing on a top face
	Invincible bool
	OnTunnel  bool // armed by top-face tunnel contact, consumed by duck
	invTimer  TimerHandle
	removed   bool
}

// NewPlayer creates a player with full health
func NewPlayer(name string, maxHP int) *Player {
	return &Player{
		id:    GenerateID(4),
		Name:  name,
		MaxHP: maxHP,
		HP:    maxHP,
	}
}

func (p *Player) ThingID() string    { return p.id }
func (p *Player) Category() Category { return CategoryPlayer }
func (p *Player) Body() *Body        { return p.body }
func (p *Player) Removed() bool      { return p.removed }

// ChangeHealth adjusts HP by delta, clamped to [0, MaxHP]
func (p *Player) ChangeHealth(delta int) {
	p.HP += delta
	if p.HP < 0 {
		p.HP = 0
	}
	if p.HP > p.MaxHP {
		p.HP = p.MaxHP
	}
}

// FullHeal restores HP to MaxHP
func (p *Player) FullHeal() { p.HP = p.MaxHP }

// ChangeScore adjusts the score by delta
func (p *Player) ChangeScore(delta int) { p.Score += delta }

// IsDead reports whether HP has reached zero
func (p *Player) IsDead() bool { return p.HP <= 0 }

// Jump applies the upward jump impulse unless the player is airborne
func (p *Player) Jump() {
	if p.Jumping || p.body == nil {
		return
	}
	p.body.VY = -BlockSize * JumpSize
}

// Bounce applies an upward impulse and re-locks the jump state, used when
// stomping a mob and by bounce blocks.
func (p *Player) Bounce(impulse float64) {
	if p.body == nil {
		return
	}
	p.body.VY = -impulse
	p.Jumping = true
}

// ToState converts to protocol state
func (p *Player) ToState() PlayerState {
	return PlayerState{
		ID:         p.id,
		Name:       p.Name,
		X:          round1(p.body.X),
		Y:          round1(p.body.Y),
		VX:         round1(p.body.VX),
		VY:         round1(p.body.VY),
		HP:         p.HP,
		MaxHP:      p.MaxHP,
		Score:      p.Score,
		Invincible: p.Invincible,
	}
}
