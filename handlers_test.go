package main

import "testing"

// eventWithFace builds a collision event where a strikes the given face of
// b, using the entities' real body sizes for the contact boxes.
func eventWithFace(a, b Thing, face Face) *CollisionEvent {
	bb := b.Body().Box
	aw, ah := a.Body().W, a.Body().H
	var ab Box
	switch face {
	case FaceTop:
		ab = Box{X: bb.CenterX() - aw/2, Y: bb.Y - ah + 4, W: aw, H: ah}
	case FaceBottom:
		ab = Box{X: bb.CenterX() - aw/2, Y: bb.Bottom() - 4, W: aw, H: ah}
	case FaceLeft:
		ab = Box{X: bb.X - aw + 4, Y: bb.CenterY() - ah/2, W: aw, H: ah}
	case FaceRight:
		ab = Box{X: bb.Right() - 4, Y: bb.CenterY() - ah/2, W: aw, H: ah}
	}
	return &CollisionEvent{A: a, B: b, ABox: ab, BBox: bb}
}

// addMob places a mob into the game's world and returns it
func addMob(g *Game, mobID string, x, y float64) *Mob {
	m := NewMob(mobID)
	g.world.AddMob(m, x, y)
	return m
}

func addBlock(g *Game, tileID string, x, y float64) *Block {
	b := NewBlock(tileID)
	g.world.AddBlock(b, x, y)
	return b
}

func addItem(g *Game, kind ItemKind, x, y float64) *Item {
	it := NewItem(kind)
	g.world.AddItem(it, x, y)
	return it
}

// ---------- player vs mob ----------

func TestMushroomSideHitDamagesAndKnocksBack(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	m := addMob(g, "mushroom", 100, 100)
	ev := eventWithFace(p, m, FaceRight)
	g.onPlayerCollideMob(p, m, ev)

	if p.HP != g.cfg.Health-SideHitDamage {
		t.Errorf("HP = %d, want %d", p.HP, g.cfg.Health-SideHitDamage)
	}
	if p.Body().VX != Knockback {
		t.Errorf("right-face hit should knock right, VX = %.1f", p.Body().VX)
	}
	if m.Removed() {
		t.Error("a side hit must not kill the mushroom")
	}

	m2 := addMob(g, "mushroom", 200, 100)
	g.onPlayerCollideMob(p, m2, eventWithFace(p, m2, FaceLeft))
	if p.HP != g.cfg.Health-2*SideHitDamage {
		t.Errorf("HP = %d after second hit, want %d", p.HP, g.cfg.Health-2*SideHitDamage)
	}
	if p.Body().VX != -Knockback {
		t.Errorf("left-face hit should knock left, VX = %.1f", p.Body().VX)
	}
}

func TestMushroomStomp(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	m := addMob(g, "mushroom", 100, 100)
	g.onPlayerCollideMob(p, m, eventWithFace(p, m, FaceTop))

	if !m.Removed() {
		t.Error("stomp should kill the mushroom")
	}
	if p.HP != g.cfg.Health {
		t.Error("stomp must not cost health")
	}
	if p.Body().VY != -MobStompBounce {
		t.Errorf("stomp bounce VY = %.1f, want %.1f", p.Body().VY, -MobStompBounce)
	}
	if !p.Jumping {
		t.Error("stomp bounce should re-lock the jump state")
	}
}

func TestInvinciblePlayerDestroysMobs(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player
	g.setInvincible()

	m := addMob(g, "mushroom", 100, 100)
	g.onPlayerCollideMob(p, m, eventWithFace(p, m, FaceRight))

	if !m.Removed() {
		t.Error("invincible contact should destroy the mob")
	}
	if p.HP != g.cfg.Health {
		t.Error("invincible player must take no damage")
	}
	if p.Body().VX != 0 {
		t.Error("invincible player must take no knockback")
	}
}

func TestFireballBurnsAndVanishes(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	f := addMob(g, "fireball", 100, 100)
	g.onPlayerCollideMob(p, f, eventWithFace(p, f, FaceTop))

	if p.HP != g.cfg.Health-SideHitDamage {
		t.Errorf("fireball should burn one health, HP = %d", p.HP)
	}
	if !f.Removed() {
		t.Error("fireball should vanish on contact")
	}
}

func TestCloudContactIsHarmless(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	c := addMob(g, "cloud", 100, 100)
	g.onPlayerCollideMob(p, c, eventWithFace(p, c, FaceBottom))

	if p.HP != g.cfg.Health || c.Removed() {
		t.Error("cloud contact should have no effect")
	}
}

// ---------- player vs item ----------

func TestCoinPickup(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	coin := addItem(g, ItemCoin, 100, 100)
	ev := eventWithFace(p, coin, FaceTop)

	if g.onPlayerCollideItem(p, coin, ev) {
		t.Error("item contacts are never physical")
	}
	if p.Score != CoinValue {
		t.Errorf("score = %d, want %d", p.Score, CoinValue)
	}
	if !coin.Removed() {
		t.Error("collected coin should be removed")
	}

	// A stray second event cannot double-credit
	g.onPlayerCollideItem(p, coin, ev)
	if p.Score != CoinValue {
		t.Errorf("double pickup credited, score = %d", p.Score)
	}
}

func TestStarPickupGrantsInvincibility(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	star := addItem(g, ItemStar, 100, 100)
	g.onPlayerCollideItem(p, star, eventWithFace(p, star, FaceTop))

	if p.Score != StarValue {
		t.Errorf("score = %d, want %d", p.Score, StarValue)
	}
	if !p.Invincible {
		t.Fatal("star should grant invincibility")
	}
	g.scheduler.Tick(InvincibilityTime.Seconds() + 0.01)
	if p.Invincible {
		t.Error("invincibility should expire")
	}
}

// ---------- player vs block ----------

func TestBlockLandingClearsJumpAndSeparateRelocks(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player
	p.Jumping = true

	b := addBlock(g, "brick", 100, 100)
	ev := eventWithFace(p, b, FaceTop)
	if !g.onPlayerCollideBlock(p, b, ev) {
		t.Error("a plain block contact is physical")
	}
	if p.Jumping {
		t.Error("landing should clear the jump lock")
	}

	g.onPlayerSeparateBlock(p, b, ev)
	if !p.Jumping {
		t.Error("leaving the block should re-lock the jump")
	}
}

func TestBlockSideHitKeepsJumpLocked(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player
	p.Jumping = true

	b := addBlock(g, "brick", 100, 100)
	g.onPlayerCollideBlock(p, b, eventWithFace(p, b, FaceLeft))
	if !p.Jumping {
		t.Error("a side hit is not a landing")
	}
}

func TestBounceBlock(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	b := addBlock(g, "bounce_block", 100, 100)
	g.onPlayerCollideBlock(p, b, eventWithFace(p, b, FaceTop))

	if p.Body().VY != -BlockSize*JumpSize {
		t.Errorf("bounce VY = %.1f, want %.1f", p.Body().VY, -BlockSize*JumpSize)
	}
	if !p.Jumping {
		t.Error("bounce should re-lock the jump state")
	}

	// A side hit does not bounce
	p.Body().VY = 0
	g.onPlayerCollideBlock(p, b, eventWithFace(p, b, FaceRight))
	if p.Body().VY != 0 {
		t.Error("side hit on a bounce block must not bounce")
	}
}

func TestTunnelArmsOnTopContact(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	b := addBlock(g, "tunnel", 100, 100)
	ev := eventWithFace(p, b, FaceTop)
	g.onPlayerCollideBlock(p, b, ev)
	if !p.OnTunnel {
		t.Error("top contact should arm the tunnel")
	}

	g.onPlayerSeparateBlock(p, b, ev)
	if p.OnTunnel {
		t.Error("stepping off the tunnel should disarm it")
	}

	// Side contact does not arm
	g.onPlayerCollideBlock(p, b, eventWithFace(p, b, FaceLeft))
	if p.OnTunnel {
		t.Error("side contact must not arm the tunnel")
	}
}

func TestFlagSetsGoalAndHealsOnTop(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player
	p.HP = 1

	flag := addBlock(g, "flag", 100, 40)
	g.onPlayerCollideBlock(p, flag, eventWithFace(p, flag, FaceLeft))
	if g.pendingGoal != GoalFlag {
		t.Error("any flag contact reaches the goal")
	}
	if p.HP != 1 {
		t.Error("a side contact must not heal")
	}

	g.pendingGoal = ""
	// The flag pole is thinner than a block, so a top contact has to be
	// shallower than the pole width to read as vertical.
	fb := flag.Body().Box
	topEv := &CollisionEvent{
		A: p, B: flag,
		ABox: Box{X: fb.CenterX() - PlayerWidth/2, Y: fb.Y - PlayerHeight + 2, W: PlayerWidth, H: PlayerHeight},
		BBox: fb,
	}
	g.onPlayerCollideBlock(p, flag, topEv)
	if g.pendingGoal != GoalFlag {
		t.Error("top contact reaches the goal")
	}
	if p.HP != p.MaxHP {
		t.Error("landing on the flag top should fully heal")
	}
}

func TestMysteryBlockDropsOnceFromBelow(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	b := addBlock(g, "mystery_coin", 100, 100)
	before := g.world.ItemCount()

	// Side hit: nothing happens
	g.onPlayerCollideBlock(p, b, eventWithFace(p, b, FaceLeft))
	if g.world.ItemCount() != before {
		t.Fatal("a side hit must not trigger the drop")
	}

	// Head bump from below: drop fires
	g.onPlayerCollideBlock(p, b, eventWithFace(p, b, FaceBottom))
	dropped := g.world.ItemCount() - before
	if dropped < 3 || dropped > 6 {
		t.Errorf("drop count = %d, want 3..6", dropped)
	}
	if !b.Consumed() {
		t.Error("the block should be consumed")
	}

	// Second bump: nothing more
	g.onPlayerCollideBlock(p, b, eventWithFace(p, b, FaceBottom))
	if g.world.ItemCount()-before != dropped {
		t.Error("a consumed mystery block must not drop again")
	}
}

func TestMysteryEmptyNeverDrops(t *testing.T) {
	g := newTestGame(t, nil)
	p := g.player

	b := addBlock(g, "mystery_empty", 100, 100)
	g.onPlayerCollideBlock(p, b, eventWithFace(p, b, FaceBottom))
	if g.world.ItemCount() != 0 {
		t.Error("an empty mystery block has nothing to drop")
	}
}

// ---------- switches ----------

// switchLevel puts a switch on the floor with brittle bricks around it
const switchLevel = "          \n  # S #   \n%%%%%%%%%%\n"

func newSwitchGame(t *testing.T) (*Game, *Block) {
	t.Helper()
	g := newTestGame(t, map[string]string{
		"level1.txt": switchLevel,
		"level2.txt": testFloorLevel,
	})
	for _, b := range g.world.blocks {
		if b.Kind() == BlockSwitch {
			return g, b
		}
	}
	t.Fatal("no switch in the level")
	return nil, nil
}

func countBlocks(g *Game, kind BlockKind) int {
	n := 0
	for _, b := range g.world.blocks {
		if b.Kind() == kind {
			n++
		}
	}
	return n
}

func countBrittle(g *Game) int {
	n := 0
	for _, b := range g.world.blocks {
		if b.Brittle() {
			n++
		}
	}
	return n
}

func TestSwitchPressClearsBricksAndReverts(t *testing.T) {
	g, sw := newSwitchGame(t)
	p := g.player

	bricksBefore := countBrittle(g)
	if bricksBefore != 2 {
		t.Fatalf("level should start with 2 bricks, got %d", bricksBefore)
	}

	g.onPlayerCollideBlock(p, sw, eventWithFace(p, sw, FaceTop))

	if countBrittle(g) != 0 {
		t.Error("press should clear every brittle block in radius")
	}
	if countBlocks(g, BlockSwitchPressed) != 1 {
		t.Error("press should swap in the pressed placeholder")
	}
	if countBlocks(g, BlockSwitch) != 0 {
		t.Error("the armed switch should be swapped out")
	}

	// Revert restores everything
	g.scheduler.Tick(SwitchRevertTime.Seconds() + 0.01)

	if countBrittle(g) != bricksBefore {
		t.Errorf("revert should restore the bricks, got %d", countBrittle(g))
	}
	if countBlocks(g, BlockSwitchPressed) != 0 {
		t.Error("the pressed placeholder should be gone")
	}
	if countBlocks(g, BlockSwitch) != 1 {
		t.Error("the switch should be back")
	}
	for _, b := range g.world.blocks {
		if b.Kind() == BlockSwitch && !b.Armed() {
			t.Error("the restored switch should be re-armed")
		}
	}
}

func TestSwitchPressedPlaceholderIsIntangible(t *testing.T) {
	g, sw := newSwitchGame(t)
	p := g.player

	g.onPlayerCollideBlock(p, sw, eventWithFace(p, sw, FaceTop))

	var pressed *Block
	for _, b := range g.world.blocks {
		if b.Kind() == BlockSwitchPressed {
			pressed = b
		}
	}
	if pressed == nil {
		t.Fatal("no pressed placeholder")
	}
	if g.onPlayerCollideBlock(p, pressed, eventWithFace(p, pressed, FaceTop)) {
		t.Error("the pressed placeholder must not collide physically")
	}

	mob := addMob(g, "mushroom", 200, 100)
	if g.onMobCollideBlock(mob, pressed, eventWithFace(mob, pressed, FaceLeft)) {
		t.Error("pressed placeholder must be intangible to mobs too")
	}
}

func TestSwitchRevertIsEpochGuarded(t *testing.T) {
	g, sw := newSwitchGame(t)
	p := g.player

	g.onPlayerCollideBlock(p, sw, eventWithFace(p, sw, FaceTop))

	// Leave the level before the revert fires
	g.pendingGoal = GoalFlag
	g.update()
	if g.CurrentLevel() != "level2.txt" {
		t.Fatal("transition did not happen")
	}
	blocksBefore := g.world.BlockCount()

	// The stale revert must be a no-op against the new world
	g.scheduler.Tick(SwitchRevertTime.Seconds() + 1)

	if g.world.BlockCount() != blocksBefore {
		t.Errorf("stale revert mutated the new world: %d -> %d blocks",
			blocksBefore, g.world.BlockCount())
	}
	if countBlocks(g, BlockSwitch) != 0 || countBrittle(g) != 0 {
		t.Error("nothing from the old level should appear in the new one")
	}
}

// ---------- mob vs block, mob vs mob ----------

func TestFireballDestroysBrittleBlock(t *testing.T) {
	g := newTestGame(t, nil)

	f := addMob(g, "fireball", 100, 80)
	brick := addBlock(g, "brick", 100, 100)
	g.onMobCollideBlock(f, brick, eventWithFace(f, brick, FaceTop))

	if !brick.Removed() {
		t.Error("brittle block should be destroyed")
	}
	if !f.Removed() {
		t.Error("fireball should be consumed")
	}
}

func TestFireballSparesSolidBlock(t *testing.T) {
	g := newTestGame(t, nil)

	f := addMob(g, "fireball", 100, 80)
	base := addBlock(g, "brick_base", 100, 100)
	g.onMobCollideBlock(f, base, eventWithFace(f, base, FaceTop))

	if base.Removed() {
		t.Error("only brittle blocks burn")
	}
	if !f.Removed() {
		t.Error("the fireball is still consumed")
	}
}

func TestMushroomTurnsAtWalls(t *testing.T) {
	g := newTestGame(t, nil)

	m := addMob(g, "mushroom", 100, 100)
	tempo := m.Tempo
	wall := addBlock(g, "cube", 120, 100)

	g.onMobCollideBlock(m, wall, eventWithFace(m, wall, FaceLeft))
	if m.Tempo != -tempo {
		t.Error("side hit should reverse the patrol direction")
	}

	// Landing on a block does not turn the mob
	g.onMobCollideBlock(m, wall, eventWithFace(m, wall, FaceTop))
	if m.Tempo != -tempo {
		t.Error("top contact must not reverse")
	}
}

func TestMobPairings(t *testing.T) {
	g := newTestGame(t, nil)

	// Fireball hits a mushroom: both die
	f := addMob(g, "fireball", 100, 100)
	m := addMob(g, "mushroom", 100, 110)
	if g.onMobCollideMob(f, m, eventWithFace(f, m, FaceTop)) {
		t.Error("mobs never collide physically")
	}
	if !f.Removed() || !m.Removed() {
		t.Error("a fireball contact destroys both mobs")
	}

	// Two mushrooms reverse each other
	m1 := addMob(g, "mushroom", 200, 100)
	m2 := addMob(g, "mushroom", 216, 100)
	t1, t2 := m1.Tempo, m2.Tempo
	g.onMobCollideMob(m1, m2, eventWithFace(m1, m2, FaceLeft))
	if m1.Tempo != -t1 || m2.Tempo != -t2 {
		t.Error("meeting mushrooms should reverse each other")
	}
}

func TestMobIgnoresItems(t *testing.T) {
	g := newTestGame(t, nil)

	m := addMob(g, "mushroom", 100, 100)
	coin := addItem(g, ItemCoin, 100, 100)
	if g.onMobCollideItem(m, coin, eventWithFace(m, coin, FaceLeft)) {
		t.Error("mob-item contact is never physical")
	}
	if coin.Removed() {
		t.Error("mobs must not collect items")
	}
}
