package main

// ItemKind discriminates collectible items
type ItemKind uint8

const (
	ItemGeneric ItemKind = iota
	ItemCoin
	ItemStar
)

const (
	CoinValue = 1
	StarValue = 10
	ItemSize  = BlockSize
)

// Item is a dropped collectible. Collection is one-shot: the collected
// guard makes a double pickup impossible even if a second event slips in.
type Item struct {
	id        string
	kind      ItemKind
	itemID    string // identifier string: "coin", "star"
	Value     int
	collected bool
	removed   bool
	body      *Body
}

// NewItem builds an item of the given kind
func NewItem(kind ItemKind) *Item {
	it := &Item{
		id:   GenerateID(4),
		kind: kind,
	}
	switch kind {
	case ItemCoin:
		it.itemID = "coin"
		it.Value = CoinValue
	case ItemStar:
		it.itemID = "star"
		it.Value = StarValue
	default:
		it.itemID = "item"
	}
	return it
}

// NewItemFromID builds an item from its identifier string
func NewItemFromID(itemID string) *Item {
	switch itemID {
	case "coin":
		return NewItem(ItemCoin)
	case "star":
		return NewItem(ItemStar)
	}
	it := NewItem(ItemGeneric)
	it.itemID = itemID
	return it
}

func (it *Item) ThingID() string    { return it.id }
func (it *Item) Category() Category { return CategoryItem }
func (it *Item) Body() *Body        { return it.body }
func (it *Item) Removed() bool      { return it.removed }

// Kind returns the behavior tag
func (it *Item) Kind() ItemKind { return it.kind }

// ItemID returns the identifier string
func (it *Item) ItemID() string { return it.itemID }

// Collect credits the item's value to the player once. Returns false if
// the item was already collected.
func (it *Item) Collect(p *Player) bool {
	if it.collected {
		return false
	}
	it.collected = true
	p.ChangeScore(it.Value)
	return true
}

// ToState converts to protocol state
func (it *Item) ToState() ItemState {
	return ItemState{
		ID:   it.id,
		Item: it.itemID,
		X:    round1(it.body.X),
		Y:    round1(it.body.Y),
	}
}
