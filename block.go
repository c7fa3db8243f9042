package main

import "math/rand"

// BlockKind discriminates block behavior. Kinds are data tags dispatched in
// the collision handlers rather than subclasses.
type BlockKind uint8

const (
	BlockPlain BlockKind = iota
	BlockBounce
	BlockMystery
	BlockSwitch
	BlockSwitchPressed
	BlockFlag
	BlockTunnel
)

// Cell sizes in block units for the goal blocks
var goalSizes = map[BlockKind][2]float64{
	BlockFlag:   {0.2, 9},
	BlockTunnel: {2, 2},
}

// Block is a fixed-position world tile.
type Block struct {
	id      string
	kind    BlockKind
	tileID  string // identifier string: "brick", "flag", ...
	removed bool
	body    *Body

	// mystery payload
	Drop     ItemKind
	DropMin  int
	DropMax  int
	consumed bool

	// switch payload
	pressed bool
	armed   bool
}

// NewBlock builds a block from its identifier string. This is the factory
// the world builder and the switch-revert timer both go through. Unknown
// identifiers produce a plain block tagged with the identifier.
func NewBlock(tileID string) *Block {
	b := &Block{
		id:     GenerateID(4),
		tileID: tileID,
		kind:   BlockPlain,
	}
	switch tileID {
	case "bounce_block":
		b.kind = BlockBounce
	case "mystery_empty":
		b.kind = BlockMystery
		b.consumed = true // nothing to drop
	case "mystery_coin":
		b.kind = BlockMystery
		b.Drop = ItemCoin
		b.DropMin, b.DropMax = 3, 6
	case "switch":
		b.kind = BlockSwitch
		b.armed = true
	case "switch_pressed":
		b.kind = BlockSwitchPressed
	case "flag":
		b.kind = BlockFlag
	case "tunnel":
		b.kind = BlockTunnel
	}
	return b
}

func (b *Block) ThingID() string    { return b.id }
func (b *Block) Category() Category { return CategoryBlock }
func (b *Block) Body() *Body        { return b.body }
func (b *Block) Removed() bool      { return b.removed }

// Kind returns the behavior tag
func (b *Block) Kind() BlockKind { return b.kind }

// TileID returns the identifier string the block was built from
func (b *Block) TileID() string { return b.tileID }

// Brittle reports whether the block can be destroyed by fireballs and
// cleared by switch presses. Only plain bricks are.
func (b *Block) Brittle() bool { return b.tileID == "brick" }

// Pressed reports whether a switch block is currently pressed
func (b *Block) Pressed() bool { return b.pressed }

// Armed reports whether a switch may trigger its area-clear effect
func (b *Block) Armed() bool { return b.armed }

// press marks a switch pressed and disarms it against re-trigger until
// the revert timer restores it.
func (b *Block) press() {
	b.pressed = true
	b.armed = false
}

// reset restores a reverted switch to its unpressed, armed state
func (b *Block) reset() {
	b.pressed = false
	b.armed = true
}

// size returns the block's pixel dimensions
func (b *Block) size() (float64, float64) {
	if s, ok := goalSizes[b.kind]; ok {
		return s[0] * BlockSize, s[1] * BlockSize
	}
	return BlockSize, BlockSize
}

// OnHit runs the block-specific side effect of a player contact. For a
// mystery block struck from below this spawns the configured drop exactly
// once; the consumed guard makes a second trigger impossible.
func (b *Block) OnHit(ev *CollisionEvent, w *World, p *Player) {
	if b.kind != BlockMystery || b.consumed {
		return
	}
	if ev.FaceOf(b) != FaceBottom {
		return
	}
	b.consumed = true
	count := b.DropMin
	if b.DropMax > b.DropMin {
		count = b.DropMin + rand.Intn(b.DropMax-b.DropMin+1)
	}
	for i := 0; i < count; i++ {
		item := NewItem(b.Drop)
		x := b.body.X + float64(i%3)*BlockSize/2
		y := b.body.Y - BlockSize - float64(i/3)*BlockSize/2
		w.AddItem(item, x, y)
	}
}

// Consumed reports whether a mystery block has already dropped
func (b *Block) Consumed() bool { return b.consumed }

// ToState converts to protocol state
func (b *Block) ToState() BlockState {
	w, h := b.body.W, b.body.H
	return BlockState{
		ID:       b.id,
		Tile:     b.tileID,
		X:        round1(b.body.X),
		Y:        round1(b.body.Y),
		W:        round1(w),
		H:        round1(h),
		Consumed: b.consumed,
	}
}
