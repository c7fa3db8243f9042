package main

import "testing"

func TestNewBlockKinds(t *testing.T) {
	tests := []struct {
		tileID string
		kind   BlockKind
	}{
		{"brick", BlockPlain},
		{"brick_base", BlockPlain},
		{"cube", BlockPlain},
		{"bounce_block", BlockBounce},
		{"mystery_empty", BlockMystery},
		{"mystery_coin", BlockMystery},
		{"switch", BlockSwitch},
		{"switch_pressed", BlockSwitchPressed},
		{"flag", BlockFlag},
		{"tunnel", BlockTunnel},
	}
	for _, tt := range tests {
		if b := NewBlock(tt.tileID); b.Kind() != tt.kind {
			t.Errorf("%s: kind = %v, want %v", tt.tileID, b.Kind(), tt.kind)
		}
	}
}

func TestOnlyBricksAreBrittle(t *testing.T) {
	if !NewBlock("brick").Brittle() {
		t.Error("bricks are brittle")
	}
	for _, id := range []string{"brick_base", "cube", "switch", "bounce_block"} {
		if NewBlock(id).Brittle() {
			t.Errorf("%s must not be brittle", id)
		}
	}
}

func TestMysteryCoinPayload(t *testing.T) {
	b := NewBlock("mystery_coin")
	if b.Drop != ItemCoin || b.DropMin != 3 || b.DropMax != 6 {
		t.Errorf("payload = (%v, %d, %d), want (coin, 3, 6)", b.Drop, b.DropMin, b.DropMax)
	}
	if b.Consumed() {
		t.Error("a coin block starts unconsumed")
	}
	if !NewBlock("mystery_empty").Consumed() {
		t.Error("an empty mystery block starts consumed")
	}
}

func TestSwitchPressAndReset(t *testing.T) {
	b := NewBlock("switch")
	if !b.Armed() || b.Pressed() {
		t.Fatal("a fresh switch is armed and unpressed")
	}
	b.press()
	if b.Armed() || !b.Pressed() {
		t.Error("pressing disarms the switch")
	}
	b.reset()
	if !b.Armed() || b.Pressed() {
		t.Error("reset re-arms the switch")
	}
}

func TestBlockSizes(t *testing.T) {
	w, h := NewBlock("brick").size()
	if w != BlockSize || h != BlockSize {
		t.Errorf("brick size = %vx%v", w, h)
	}
	w, h = NewBlock("flag").size()
	if w != 0.2*BlockSize || h != 9*BlockSize {
		t.Errorf("flag size = %vx%v, want pole dimensions", w, h)
	}
	w, h = NewBlock("tunnel").size()
	if w != 2*BlockSize || h != 2*BlockSize {
		t.Errorf("tunnel size = %vx%v, want 2x2 cells", w, h)
	}
}

func TestItemFactories(t *testing.T) {
	coin := NewItem(ItemCoin)
	if coin.Value != CoinValue || coin.ItemID() != "coin" {
		t.Error("coin payload wrong")
	}
	star := NewItemFromID("star")
	if star.Kind() != ItemStar || star.Value != StarValue {
		t.Error("star payload wrong")
	}
	odd := NewItemFromID("gem")
	if odd.Kind() != ItemGeneric || odd.ItemID() != "gem" {
		t.Error("unknown items become tagged generics")
	}
}

func TestItemCollectIsOneShot(t *testing.T) {
	p := NewPlayer("hero", 5)
	coin := NewItem(ItemCoin)

	if !coin.Collect(p) {
		t.Fatal("first collect succeeds")
	}
	if coin.Collect(p) {
		t.Fatal("second collect must fail")
	}
	if p.Score != CoinValue {
		t.Errorf("score = %d, want %d", p.Score, CoinValue)
	}
}
