package main

// Collision handlers: one per category pair, registered against each new
// world. The boolean verdict controls only the physical response; side
// effects (score, health, removals, timers) stand either way. A handler
// that cannot identify its participants degrades to reject rather than
// guessing.

func (g *Game) registerCollisionHandlers(w *World) {
	d := w.Dispatcher()
	d.Register(CategoryPlayer, CategoryItem, g.onPlayerCollideItem, nil)
	d.Register(CategoryPlayer, CategoryBlock, g.onPlayerCollideBlock, g.onPlayerSeparateBlock)
	d.Register(CategoryPlayer, CategoryMob, g.onPlayerCollideMob, nil)
	d.Register(CategoryMob, CategoryBlock, g.onMobCollideBlock, nil)
	d.Register(CategoryMob, CategoryMob, g.onMobCollideMob, nil)
	d.Register(CategoryMob, CategoryItem, g.onMobCollideItem, nil)
}

// onPlayerCollideItem collects the item into the player's score. A star
// additionally grants timed invincibility. Items never collide physically.
func (g *Game) onPlayerCollideItem(a, b Thing, ev *CollisionEvent) bool {
	p, ok := a.(*Player)
	item, ok2 := b.(*Item)
	if !ok || !ok2 {
		return false
	}
	if item.Collect(p) {
		if item.Kind() == ItemStar {
			g.setInvincible()
		}
		g.world.RemoveItem(item)
	}
	return false
}

// onPlayerCollideBlock resolves block contacts by the struck face: a top
// hit is a landing and clears the jump lock, then the block's own side
// effect and kind-specific behavior run.
func (g *Game) onPlayerCollideBlock(a, b Thing, ev *CollisionEvent) bool {
	p, ok := a.(*Player)
	block, ok2 := b.(*Block)
	if !ok || !ok2 {
		return false
	}
	face := ev.FaceOf(block)
	if face == FaceTop {
		p.Jumping = false
	}

	block.OnHit(ev, g.world, p)

	switch block.Kind() {
	case BlockBounce:
		if face == FaceTop {
			p.Bounce(BlockSize * JumpSize)
		}
	case BlockTunnel:
		if face == FaceTop {
			p.OnTunnel = true
		}
	case BlockFlag:
		if face == FaceTop {
			p.FullHeal()
		}
		g.pendingGoal = GoalFlag
	case BlockSwitchPressed:
		return false
	case BlockSwitch:
		if block.Pressed() {
			return false
		}
		if block.Armed() && face == FaceTop {
			g.pressSwitch(block)
		}
	}
	return true
}

// onPlayerSeparateBlock re-locks the jump state when the player leaves any
// block, and disarms the tunnel when stepping off one.
func (g *Game) onPlayerSeparateBlock(a, b Thing, ev *CollisionEvent) {
	p, ok := a.(*Player)
	block, ok2 := b.(*Block)
	if !ok || !ok2 {
		return
	}
	p.Jumping = true
	if block.Kind() == BlockTunnel {
		p.OnTunnel = false
	}
}

// onPlayerCollideMob applies mob damage rules. An invincible player
// destroys the mob outright. A mushroom costs health and knocks the
// player back on a side hit, and dies to a stomp, which also bounces the
// player and re-locks the jump state. Everything else delegates to the
// mob's generic on-hit.
func (g *Game) onPlayerCollideMob(a, b Thing, ev *CollisionEvent) bool {
	p, ok := a.(*Player)
	mob, ok2 := b.(*Mob)
	if !ok || !ok2 {
		return false
	}
	if p.Invincible {
		g.world.RemoveMob(mob)
		return true
	}
	if mob.Kind() == MobMushroom {
		switch ev.FaceOf(mob) {
		case FaceLeft:
			p.ChangeHealth(-SideHitDamage)
			p.Body().VX = -Knockback
		case FaceRight:
			p.ChangeHealth(-SideHitDamage)
			p.Body().VX = Knockback
		case FaceTop:
			p.Bounce(MobStompBounce)
			g.world.RemoveMob(mob)
		}
	} else {
		mob.OnHit(g.world, p)
	}
	return true
}

// OnHit is the generic mob side effect for mobs without a special case in
// the player handler. Fireballs burn a health point and vanish; clouds
// and generic mobs are harmless contacts.
func (m *Mob) OnHit(w *World, p *Player) {
	if m.kind == MobFireball {
		p.ChangeHealth(-SideHitDamage)
		w.RemoveMob(m)
	}
}

// onMobCollideBlock: pressed switches are intangible to mobs. A fireball
// removes itself and takes a brittle block with it. A patrolling mushroom
// turns around on a side hit.
func (g *Game) onMobCollideBlock(a, b Thing, ev *CollisionEvent) bool {
	mob, ok := a.(*Mob)
	block, ok2 := b.(*Block)
	if !ok || !ok2 {
		return false
	}
	if block.Kind() == BlockSwitchPressed {
		return false
	}
	switch mob.Kind() {
	case MobFireball:
		if block.Brittle() {
			g.world.RemoveBlock(block)
		}
		g.world.RemoveMob(mob)
	case MobMushroom:
		if ev.FaceOf(block).Side() {
			mob.ReverseTempo()
		}
	}
	return true
}

// onMobCollideMob: a fireball destroys both participants; two mushrooms
// reverse each other. Mobs never collide physically with each other.
func (g *Game) onMobCollideMob(a, b Thing, ev *CollisionEvent) bool {
	m1, ok := a.(*Mob)
	m2, ok2 := b.(*Mob)
	if !ok || !ok2 {
		return false
	}
	if m1.Kind() == MobFireball || m2.Kind() == MobFireball {
		g.world.RemoveMob(m1)
		g.world.RemoveMob(m2)
	} else if m1.Kind() == MobMushroom && m2.Kind() == MobMushroom {
		m1.ReverseTempo()
		m2.ReverseTempo()
	}
	return false
}

// onMobCollideItem: mobs ignore dropped items entirely
func (g *Game) onMobCollideItem(a, b Thing, ev *CollisionEvent) bool {
	return false
}
