package main

// World owns one level's live entities and their physics bodies. It is
// shared mutable state with a single-writer discipline: mutation happens
// only from collision handlers and fired timers, on the game tick
// goroutine. A World is discarded whole on level transition; the Game's
// epoch counter tells stale timers their world is gone.
type World struct {
	space      *Space
	dispatcher *Dispatcher
	player     *Player
	blocks     map[string]*Block
	mobs       map[string]*Mob
	items      map[string]*Item
	pixelW     float64
	pixelH     float64
}

// NewWorld creates an empty world of the given pixel size
func NewWorld(gravity, pixelW, pixelH float64) *World {
	return &World{
		space:      NewSpace(gravity, pixelW, pixelH),
		dispatcher: NewDispatcher(),
		blocks:     make(map[string]*Block),
		mobs:       make(map[string]*Mob),
		items:      make(map[string]*Item),
		pixelW:     pixelW,
		pixelH:     pixelH,
	}
}

// PixelSize returns the world bounds in pixels
func (w *World) PixelSize() (float64, float64) { return w.pixelW, w.pixelH }

// Dispatcher returns the collision handler table bound to this world
func (w *World) Dispatcher() *Dispatcher { return w.dispatcher }

// Player returns the player entity, nil before AddPlayer
func (w *World) Player() *Player { return w.player }

// AddPlayer binds the player to this world at the given position
func (w *World) AddPlayer(p *Player, x, y, mass float64) {
	p.body = &Body{
		Box:    Box{X: x, Y: y, W: PlayerWidth, H: PlayerHeight},
		Weight: mass,
		owner:  p,
	}
	p.removed = false
	w.player = p
	w.space.AddBody(p.body)
}

// AddBlock places a block at the given position. Safe to call from inside
// a handler or timer: insertion is deferred until the dispatch pass ends.
func (w *World) AddBlock(b *Block, x, y float64) {
	bw, bh := b.size()
	b.body = &Body{
		Box:    Box{X: x, Y: y, W: bw, H: bh},
		Static: true,
		owner:  b,
	}
	b.removed = false
	w.dispatcher.Defer(func() {
		w.blocks[b.id] = b
		w.space.AddBody(b.body)
	})
}

// AddMob places a mob at the given position
func (w *World) AddMob(m *Mob, x, y float64) {
	mw, mh := m.size()
	m.body = &Body{
		Box:    Box{X: x, Y: y, W: mw, H: mh},
		Floats: m.floats(),
		Weight: m.weight(),
		owner:  m,
	}
	m.removed = false
	w.dispatcher.Defer(func() {
		w.mobs[m.id] = m
		w.space.AddBody(m.body)
	})
}

// AddItem places an item at the given position
func (w *World) AddItem(it *Item, x, y float64) {
	it.body = &Body{
		Box:    Box{X: x, Y: y, W: ItemSize, H: ItemSize},
		Floats: true,
		owner:  it,
	}
	it.removed = false
	w.dispatcher.Defer(func() {
		w.items[it.id] = it
		w.space.AddBody(it.body)
	})
}

// RemoveBlock detaches a block from the world and the physics space.
// Removal is idempotent; the removed flag is raised immediately so the
// block receives no further events even before the deferred detach runs.
func (w *World) RemoveBlock(b *Block) {
	if b == nil || b.removed {
		return
	}
	b.removed = true
	w.dispatcher.Defer(func() {
		delete(w.blocks, b.id)
		w.space.RemoveBody(b.body)
	})
}

// RemoveMob detaches a mob, idempotently
func (w *World) RemoveMob(m *Mob) {
	if m == nil || m.removed {
		return
	}
	m.removed = true
	w.dispatcher.Defer(func() {
		delete(w.mobs, m.id)
		w.space.RemoveBody(m.body)
	})
}

// RemoveItem detaches an item, idempotently
func (w *World) RemoveItem(it *Item) {
	if it == nil || it.removed {
		return
	}
	it.removed = true
	w.dispatcher.Defer(func() {
		delete(w.items, it.id)
		w.space.RemoveBody(it.body)
	})
}

// BlockCount returns the number of live blocks
func (w *World) BlockCount() int { return len(w.blocks) }

// MobCount returns the number of live mobs
func (w *World) MobCount() int { return len(w.mobs) }

// ItemCount returns the number of live items
func (w *World) ItemCount() int { return len(w.items) }

// ThingsInRange returns every live thing whose body center lies within
// radius r of (x, y). The live body set is scanned directly rather than
// the broad-phase grid: the grid only reflects the last physics step, and
// range queries must see bodies added since.
func (w *World) ThingsInRange(x, y, r float64) []Thing {
	var out []Thing
	for b := range w.space.bodies {
		t := b.owner
		if t == nil || t.Removed() {
			continue
		}
		if Distance(x, y, b.CenterX(), b.CenterY()) <= r {
			out = append(out, t)
		}
	}
	return out
}

// Step runs one physics tick: mob steering, integration, and the
// begin/separate dispatch pass.
func (w *World) Step(dt float64) {
	for _, m := range w.mobs {
		m.Step(dt, w.pixelW)
	}
	w.space.Step(dt, w.dispatcher)
}
