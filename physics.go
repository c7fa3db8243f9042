package main

const (
	BlockSize        = 16.0
	TerminalVelocity = BlockSize * 25 // px/s fall speed cap
)

// Body is one rigid body in the space. Static bodies never move and never
// collide with each other; dynamic bodies integrate gravity unless Floats
// is set (clouds).
type Body struct {
	Box
	VX, VY float64
	Static bool
	Floats bool
	Weight float64
	owner  Thing
}

// Owner returns the entity bound to this body
func (b *Body) Owner() Thing { return b.owner }

type contactKey struct{ a, b string }

func makeContactKey(a, b Thing) contactKey {
	ia, ib := a.ThingID(), b.ThingID()
	if ia > ib {
		ia, ib = ib, ia
	}
	return contactKey{ia, ib}
}

// contact is a tracked overlapping pair. accepted records the begin-event
// verdict so resting contacts keep resolving without re-invoking handlers.
type contact struct {
	a, b       Thing
	aBox, bBox Box
	accepted   bool
	seen       bool // touched during the current step
}

// Space steps the rigid bodies and feeds begin/separate contacts to a
// Dispatcher. One Space exists per World and dies with it.
type Space struct {
	gravity  float64 // px/s^2, positive is down
	width    float64
	height   float64
	bodies   map[*Body]struct{}
	grid     *SpatialGrid
	contacts map[contactKey]*contact
	queryBuf []*Body
}

// NewSpace creates a space bounded to a w-by-h pixel world
func NewSpace(gravity, w, h float64) *Space {
	return &Space{
		gravity:  gravity,
		width:    w,
		height:   h,
		bodies:   make(map[*Body]struct{}),
		grid:     NewSpatialGrid(w, h),
		contacts: make(map[contactKey]*contact),
	}
}

// AddBody registers a body with the space
func (s *Space) AddBody(b *Body) {
	s.bodies[b] = struct{}{}
}

// RemoveBody detaches a body. Idempotent; contacts referencing it are
// dropped without a separate event, so a removed entity never emits again.
func (s *Space) RemoveBody(b *Body) {
	delete(s.bodies, b)
}

// BodyCount returns the number of registered bodies
func (s *Space) BodyCount() int { return len(s.bodies) }

// Step integrates dt seconds, then dispatches all begin events for the
// tick, resolves accepted penetrations, and finally dispatches separate
// events. Mutations queued by handlers flush when the pass ends.
func (s *Space) Step(dt float64, d *Dispatcher) {
	s.integrate(dt)

	d.BeginPass()

	var begins []*CollisionEvent
	s.grid.Clear()
	for b := range s.bodies {
		s.grid.Insert(b)
	}
	for _, c := range s.contacts {
		c.seen = false
	}

	for b := range s.bodies {
		if b.Static || b.owner.Removed() {
			continue
		}
		s.queryBuf = s.queryBuf[:0]
		s.queryBuf = s.grid.QueryBuf(b.Box, s.queryBuf)
		for _, other := range s.queryBuf {
			if other == b || other.owner.Removed() {
				continue
			}
			// Dynamic pairs would be visited twice; keep the pass
			// deterministic by letting the lower ID drive.
			if !other.Static && b.owner.ThingID() > other.owner.ThingID() {
				continue
			}
			if !BoxesOverlap(b.Box, other.Box) {
				continue
			}
			key := makeContactKey(b.owner, other.owner)
			c, known := s.contacts[key]
			if known && c.seen {
				continue // duplicate from a body spanning cells
			}
			if !known {
				c = &contact{a: b.owner, b: other.owner}
				s.contacts[key] = c
			}
			c.aBox, c.bBox = c.a.Body().Box, c.b.Body().Box
			c.seen = true
			if !known {
				begins = append(begins, &CollisionEvent{
					A: c.a, B: c.b,
					ABox: c.aBox, BBox: c.bBox,
					RelVX: c.a.Body().VX - c.b.Body().VX,
					RelVY: c.a.Body().VY - c.b.Body().VY,
				})
			}
		}
	}

	// All begin events first, then penetration resolution for accepted
	// contacts, then separate events, then the mutation flush.
	for _, ev := range begins {
		key := makeContactKey(ev.A, ev.B)
		c := s.contacts[key]
		c.accepted = d.Begin(ev)
	}
	for _, c := range s.contacts {
		if c.seen && c.accepted && !c.a.Removed() && !c.b.Removed() {
			s.resolve(c)
		}
	}
	for key, c := range s.contacts {
		if c.seen {
			continue
		}
		delete(s.contacts, key)
		if c.a.Removed() || c.b.Removed() {
			continue
		}
		d.Separate(&CollisionEvent{
			A: c.a, B: c.b,
			ABox: c.aBox, BBox: c.bBox,
		})
	}

	d.EndPass()
}

func (s *Space) integrate(dt float64) {
	for b := range s.bodies {
		if b.Static {
			continue
		}
		if !b.Floats {
			b.VY += s.gravity * dt
			if b.VY > TerminalVelocity {
				b.VY = TerminalVelocity
			}
		}
		b.X += b.VX * dt
		b.Y += b.VY * dt

		// Keep bodies inside the horizontal level bounds
		if b.X < 0 {
			b.X = 0
			if b.VX < 0 {
				b.VX = 0
			}
		} else if b.Right() > s.width {
			b.X = s.width - b.W
			if b.VX > 0 {
				b.VX = 0
			}
		}
	}
}

// resolve pushes the movable side of an accepted contact out of the other
// along the smaller-overlap axis and kills the velocity component driving
// the penetration.
func (s *Space) resolve(c *contact) {
	ba, bb := c.a.Body(), c.b.Body()
	if !BoxesOverlap(ba.Box, bb.Box) {
		return
	}
	ref, mover := ba, bb
	if bb.Static {
		ref, mover = bb, ba
	} else if !ba.Static && ba.Weight < bb.Weight {
		ref, mover = bb, ba
	}
	switch HitFace(ref.Box, mover.Box) {
	case FaceTop:
		mover.Y = ref.Y - mover.H
		if mover.VY > 0 {
			mover.VY = 0
		}
	case FaceBottom:
		mover.Y = ref.Bottom()
		if mover.VY < 0 {
			mover.VY = 0
		}
	case FaceLeft:
		mover.X = ref.X - mover.W
		if mover.VX > 0 {
			mover.VX = 0
		}
	case FaceRight:
		mover.X = ref.Right()
		if mover.VX < 0 {
			mover.VX = 0
		}
	}
}
