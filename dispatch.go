package main

// Category is the semantic tag used to route collisions.
type Category uint8

const (
	CategoryPlayer Category = iota
	CategoryBlock
	CategoryMob
	CategoryItem
)

func (c Category) String() string {
	switch c {
	case CategoryPlayer:
		return "player"
	case CategoryBlock:
		return "block"
	case CategoryMob:
		return "mob"
	case CategoryItem:
		return "item"
	}
	return "unknown"
}

// Thing is any entity bound to a physics body.
type Thing interface {
	ThingID() string
	Category() Category
	Body() *Body
	Removed() bool
}

// CollisionEvent carries one contact reported by the physics step. ABox and
// BBox are snapshots of the bounding boxes at contact time so handlers can
// resolve the hit direction even after the bodies were pushed apart.
type CollisionEvent struct {
	A, B         Thing
	ABox, BBox   Box
	RelVX, RelVY float64
}

// FaceOf returns the face of ref that the other participant struck,
// using the contact-time boxes. ref must be one of the two participants.
func (ev *CollisionEvent) FaceOf(ref Thing) Face {
	if ref == ev.A {
		return HitFace(ev.ABox, ev.BBox)
	}
	if ref == ev.B {
		return HitFace(ev.BBox, ev.ABox)
	}
	return FaceNone
}

// BeginHandler decides a new contact. The return value is the accept/reject
// verdict for the physical response only; side effects stand either way.
type BeginHandler func(a, b Thing, ev *CollisionEvent) bool

// SeparateHandler is invoked when a previously overlapping pair comes apart.
type SeparateHandler func(a, b Thing, ev *CollisionEvent)

type pairKey struct{ lo, hi Category }

func makePairKey(a, b Category) pairKey {
	if a > b {
		a, b = b, a
	}
	return pairKey{a, b}
}

type pairHandler struct {
	first, second Category // registration order
	onBegin       BeginHandler
	onSeparate    SeparateHandler
}

// Dispatcher routes begin/separate contacts to per-category-pair handlers
// and queues world mutations requested while a pass is in flight.
type Dispatcher struct {
	handlers map[pairKey]*pairHandler
	deferred []func()
	inPass   bool
}

// NewDispatcher creates an empty handler table
func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[pairKey]*pairHandler)}
}

// Register installs handlers for the unordered pair (a, b). Handlers are
// always invoked with arguments in registration order, regardless of the
// order the physics step reports the two bodies in. Registering the same
// pair twice replaces the previous handlers.
func (d *Dispatcher) Register(a, b Category, onBegin BeginHandler, onSeparate SeparateHandler) {
	d.handlers[makePairKey(a, b)] = &pairHandler{
		first:    a,
		second:   b,
		onBegin:  onBegin,
		onSeparate: onSeparate,
	}
}

// ordered returns the event participants in registration order.
func (ph *pairHandler) ordered(ev *CollisionEvent) (Thing, Thing) {
	if ev.A.Category() == ph.first {
		return ev.A, ev.B
	}
	return ev.B, ev.A
}

// Begin dispatches a new contact and returns the accept/reject verdict.
// Pairs with no registered handler are accepted. Contacts involving an
// entity already flagged removed are rejected without invoking the handler,
// so nothing dangling sees a second event inside the same step.
func (d *Dispatcher) Begin(ev *CollisionEvent) bool {
	if ev.A.Removed() || ev.B.Removed() {
		return false
	}
	ph, ok := d.handlers[makePairKey(ev.A.Category(), ev.B.Category())]
	if !ok || ph.onBegin == nil {
		return true
	}
	first, second := ph.ordered(ev)
	return ph.onBegin(first, second, ev)
}

// Separate dispatches a contact loss. Pairs without a separate handler,
// and pairs where either side has been removed, are ignored.
func (d *Dispatcher) Separate(ev *CollisionEvent) {
	if ev.A.Removed() || ev.B.Removed() {
		return
	}
	ph, ok := d.handlers[makePairKey(ev.A.Category(), ev.B.Category())]
	if !ok || ph.onSeparate == nil {
		return
	}
	first, second := ph.ordered(ev)
	ph.onSeparate(first, second, ev)
}

// Defer runs fn now, or queues it until the current dispatch pass finishes
// when one is in flight. Add/remove requests from handlers go through here
// so the entity maps are never mutated under an in-flight iteration.
func (d *Dispatcher) Defer(fn func()) {
	if d.inPass {
		d.deferred = append(d.deferred, fn)
		return
	}
	fn()
}

// BeginPass marks the start of a dispatch pass
func (d *Dispatcher) BeginPass() { d.inPass = true }

// EndPass flushes all mutations queued during the pass, in request order.
// Flushed mutations may queue further work (a drop spawning inside a
// remove), which is flushed in the same call.
func (d *Dispatcher) EndPass() {
	d.inPass = false
	for len(d.deferred) > 0 {
		queue := d.deferred
		d.deferred = nil
		for _, fn := range queue {
			fn()
		}
	}
}
