package main

// MobKind discriminates mob behavior
type MobKind uint8

const (
	MobGeneric MobKind = iota
	MobCloud
	MobFireball
	MobMushroom
)

const (
	CloudTempo     = BlockSize * 2 // px/s drift
	CloudSize      = BlockSize * 2
	FireballSpeed  = BlockSize * 15 // px/s straight down
	FireballSize   = BlockSize
	MushroomTempo  = 15.0
	MushroomSize   = 20.0
	MushroomWeight = 300.0
	SideHitDamage  = 1
)

// Mob is a hostile entity. Tempo is the signed horizontal speed; flipping
// its sign reverses the mob.
type Mob struct {
	id      string
	kind    MobKind
	mobID   string // identifier string: "cloud", "fireball", "mushroom"
	Tempo   float64
	removed bool
	body    *Body
}

// NewMob builds a mob from its identifier string
func NewMob(mobID string) *Mob {
	m := &Mob{
		id:    GenerateID(4),
		mobID: mobID,
	}
	switch mobID {
	case "cloud":
		m.kind = MobCloud
		m.Tempo = CloudTempo
	case "fireball":
		m.kind = MobFireball
	case "mushroom":
		m.kind = MobMushroom
		m.Tempo = MushroomTempo
	}
	return m
}

func (m *Mob) ThingID() string    { return m.id }
func (m *Mob) Category() Category { return CategoryMob }
func (m *Mob) Body() *Body        { return m.body }
func (m *Mob) Removed() bool      { return m.removed }

// Kind returns the behavior tag
func (m *Mob) Kind() MobKind { return m.kind }

// MobID returns the identifier string the mob was built from
func (m *Mob) MobID() string { return m.mobID }

// ReverseTempo flips the mob's facing/direction
func (m *Mob) ReverseTempo() { m.Tempo = -m.Tempo }

// size returns the mob's pixel dimensions
func (m *Mob) size() (float64, float64) {
	switch m.kind {
	case MobCloud:
		return CloudSize, CloudSize / 2
	case MobFireball:
		return FireballSize / 2, FireballSize
	case MobMushroom:
		return MushroomSize, MushroomSize
	}
	return BlockSize, BlockSize
}

// weight returns the mass used when resolving dynamic-dynamic contacts
func (m *Mob) weight() float64 {
	if m.kind == MobMushroom {
		return MushroomWeight
	}
	return 100
}

// floats reports whether gravity is skipped for this mob
func (m *Mob) floats() bool {
	return m.kind == MobCloud || m.kind == MobFireball
}

// Step drives the mob's movement for one tick. Clouds drift horizontally
// and turn at the level bounds, fireballs drop straight down, mushrooms
// patrol at their tempo under gravity.
func (m *Mob) Step(dt, worldWidth float64) {
	if m.removed || m.body == nil {
		return
	}
	switch m.kind {
	case MobCloud:
		if m.body.X <= 0 && m.Tempo < 0 {
			m.ReverseTempo()
		} else if m.body.Right() >= worldWidth && m.Tempo > 0 {
			m.ReverseTempo()
		}
		m.body.VX = m.Tempo
	case MobFireball:
		m.body.VX = 0
		m.body.VY = FireballSpeed
	case MobMushroom:
		m.body.VX = m.Tempo
	}
}

// ToState converts to protocol state
func (m *Mob) ToState() MobState {
	return MobState{
		ID:    m.id,
		Mob:   m.mobID,
		X:     round1(m.body.X),
		Y:     round1(m.body.Y),
		W:     round1(m.body.W),
		H:     round1(m.body.H),
		Tempo: round1(m.Tempo),
	}
}
