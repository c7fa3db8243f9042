package main

import (
	"log"
	"sync"
	"time"

	"github.com/vmihailenco/msgpack/v5"
)

const (
	TickRate       = 60 // physics ticks per second
	BroadcastRate  = 30 // state broadcasts per second
	TickDuration   = time.Second / TickRate
	BroadcastEvery = TickRate / BroadcastRate

	InvincibilityTime = 10 * time.Second
	SwitchRevertTime  = time.Second
	SwitchClearRadius = BlockSize * 10

	GoalFlag   = "goal"
	GoalTunnel = "tunnel"

	// Next-level marker that ends the game instead of loading a world
	EndLevelMarker = "END"
)

// GamePhase is the session lifecycle
type GamePhase int

const (
	PhasePlaying GamePhase = iota
	PhaseDead              // awaiting the restart-or-quit answer
	PhaseOver              // completed or quit; session winds down
)

// Broadcaster interface for sending messages to clients
type Broadcaster interface {
	SendJSON(msg interface{})
	SendBinary(data []byte)
}

// Game holds the state for one game session: a single controlled player
// traversing the configured level sequence, plus any number of watching
// clients. All world mutation happens on the tick goroutine under mu.
type Game struct {
	mu        sync.Mutex
	cfg       *GameConfig
	levels    *LevelStore
	events    *EventLog // may be nil
	sessionID string

	world        *World
	player       *Player
	scheduler    *Scheduler
	epoch        uint64 // bumped on every world reset
	currentLevel string
	phase        GamePhase
	completed    bool

	held       InputMsg // held movement state
	jumpQueued bool
	duckQueued bool
	// Goal contact observed during the current step; the world swap is
	// applied only after the physics pass has fully unwound.
	pendingGoal string

	clients      map[string]Broadcaster
	controlledBy string // client ID driving the input; empty until claimed
	scoreFn      func(level string, score int)
	tick    uint64
	running bool
	stop    chan struct{}
}

// NewGame creates a session game and loads the configured start level
func NewGame(cfg *GameConfig, levels *LevelStore, events *EventLog, sessionID string) (*Game, error) {
	g := &Game{
		cfg:       cfg,
		levels:    levels,
		events:    events,
		sessionID: sessionID,
		scheduler: NewScheduler(),
		clients:   make(map[string]Broadcaster),
		stop:      make(chan struct{}),
	}
	g.player = NewPlayer(cfg.Character, cfg.Health)
	if err := g.resetWorld(cfg.StartLevel); err != nil {
		return nil, err
	}
	return g, nil
}

// Run starts the game loop
func (g *Game) Run() {
	g.mu.Lock()
	g.running = true
	g.mu.Unlock()

	ticker := time.NewTicker(TickDuration)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			g.update()
		case <-g.stop:
			return
		}
	}
}

// Stop terminates the game loop
func (g *Game) Stop() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.running {
		g.running = false
		close(g.stop)
	}
}

// Player returns the controlled player
func (g *Game) Player() *Player { return g.player }

// CurrentLevel returns the active level name
func (g *Game) CurrentLevel() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.currentLevel
}

// Phase returns the session lifecycle phase
func (g *Game) Phase() GamePhase {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.phase
}

// SetClient associates a broadcaster with a client ID
func (g *Game) SetClient(id string, client Broadcaster) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.clients[id] = client
}

// RemoveClient detaches a client
func (g *Game) RemoveClient(id string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	delete(g.clients, id)
}

// ClientCount returns the number of attached clients
func (g *Game) ClientCount() int {
	g.mu.Lock()
	defer g.mu.Unlock()
	return len(g.clients)
}

// ClaimControl makes clientID the driving client if no one else holds
// control. Returns whether the claim succeeded.
func (g *Game) ClaimControl(clientID string) bool {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.controlledBy != "" && g.controlledBy != clientID {
		return false
	}
	g.controlledBy = clientID
	return true
}

// ReleaseControl frees the input claim held by clientID
func (g *Game) ReleaseControl(clientID string) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.controlledBy == clientID {
		g.controlledBy = ""
	}
}

// SetScoreFunc installs a callback fired with the level name and score
// whenever a level is completed. Used to record high scores.
func (g *Game) SetScoreFunc(fn func(level string, score int)) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.scoreFn = fn
}

// HandleInput stores movement intents for the next tick. Left/Right are
// held state; Jump and Duck latch until consumed by a tick. Only the
// controlling client is heard; watchers are ignored.
func (g *Game) HandleInput(clientID string, in InputMsg) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if clientID != g.controlledBy {
		return
	}
	g.held = in
	if in.Jump {
		g.jumpQueued = true
	}
	if in.Duck {
		g.duckQueued = true
	}
}

// HandleDeathChoice answers the restart-or-quit prompt
func (g *Game) HandleDeathChoice(clientID string, restart bool) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.phase != PhaseDead || clientID != g.controlledBy {
		return
	}
	if !restart {
		g.phase = PhaseOver
		g.broadcastMsg(Envelope{T: MsgGameOver, Data: GameOverMsg{Completed: false, Score: g.player.Score}})
		return
	}
	// Restart the current level with full health and zero score
	g.player.FullHeal()
	g.player.Score = 0
	if err := g.resetWorld(g.currentLevel); err != nil {
		log.Printf("restart %s: %v", g.currentLevel, err)
		g.phase = PhaseOver
		return
	}
	g.phase = PhasePlaying
}

// update runs one game tick: input, physics + collision dispatch, timers,
// deferred level transition, death check, broadcast.
func (g *Game) update() {
	g.mu.Lock()
	defer g.mu.Unlock()

	dt := 1.0 / float64(TickRate)
	g.tick++

	if g.phase == PhasePlaying {
		g.applyInput()
		g.world.Step(dt)
		g.scheduler.Tick(dt)

		if goal := g.pendingGoal; goal != "" {
			g.pendingGoal = ""
			g.advanceLevel(goal)
		}
		if g.phase == PhasePlaying && g.player.IsDead() {
			g.phase = PhaseDead
			if g.events != nil {
				g.events.Track(EvtPlayerDeath, g.sessionID, g.currentLevel, g.player.Score)
			}
			g.broadcastMsg(Envelope{T: MsgDead, Data: DeadMsg{Level: g.currentLevel, Score: g.player.Score}})
		}
	}

	if g.tick%BroadcastEvery == 0 {
		g.broadcastState()
	}
}

// applyInput turns the stored intents into player velocity and actions
func (g *Game) applyInput() {
	p := g.player
	speed := min(MoveSpeed, g.cfg.MaxVelocity)
	vx := 0.0
	if g.held.Left {
		vx -= speed
	}
	if g.held.Right {
		vx += speed
	}
	p.Body().VX = vx

	if g.jumpQueued {
		g.jumpQueued = false
		p.Jump()
	}
	if g.duckQueued {
		g.duckQueued = false
		if p.OnTunnel {
			p.OnTunnel = false
			g.advanceLevel(GoalTunnel)
		}
	}
}

// setInvincible raises the invincibility flag and schedules its expiry.
// A repeat pickup restarts the countdown instead of stacking a second
// expiry, so the flag clears exactly once.
func (g *Game) setInvincible() {
	p := g.player
	if p.invTimer != 0 {
		g.scheduler.Cancel(p.invTimer)
	}
	p.Invincible = true
	p.invTimer = g.scheduler.Schedule(InvincibilityTime, func() {
		p.Invincible = false
		p.invTimer = 0
	})
}

// scheduleWorldAction schedules fn guarded by the current world epoch: if
// the world has been replaced before the deadline, the fired action is a
// no-op instead of mutating a level the player is no longer in.
func (g *Game) scheduleWorldAction(delay time.Duration, fn func()) TimerHandle {
	epoch := g.epoch
	return g.scheduler.Schedule(delay, func() {
		if g.epoch != epoch {
			return
		}
		fn()
	})
}

// pressSwitch runs the one-shot switch effect: clear every brittle block
// within the radius, swap in the pressed placeholder, and schedule the
// revert that puts everything back and re-arms the switch.
func (g *Game) pressSwitch(sw *Block) {
	world := g.world
	x, y := sw.Body().X, sw.Body().Y
	cx, cy := sw.Body().CenterX(), sw.Body().CenterY()

	var positions [][2]float64
	for _, t := range world.ThingsInRange(cx, cy, SwitchClearRadius) {
		b, ok := t.(*Block)
		if !ok || !b.Brittle() {
			continue
		}
		positions = append(positions, [2]float64{b.Body().X, b.Body().Y})
		world.RemoveBlock(b)
	}

	sw.press()
	world.RemoveBlock(sw)
	pressed := NewBlock("switch_pressed")
	world.AddBlock(pressed, x, y)

	g.scheduleWorldAction(SwitchRevertTime, func() {
		for _, pos := range positions {
			world.AddBlock(NewBlock("brick"), pos[0], pos[1])
		}
		world.RemoveBlock(pressed)
		sw.reset()
		world.AddBlock(sw, x, y)
	})
}

// advanceLevel routes a reached goal through the config's next-level table
func (g *Game) advanceLevel(goal string) {
	next, ok := g.cfg.NextLevel(g.currentLevel, goal)
	if !ok {
		log.Printf("level %s has no successor for goal %q", g.currentLevel, goal)
		return
	}
	if g.events != nil {
		g.events.Track(EvtLevelComplete, g.sessionID, g.currentLevel, g.player.Score)
	}
	if g.scoreFn != nil {
		g.scoreFn(g.currentLevel, g.player.Score)
	}
	if err := g.resetWorld(next); err != nil {
		log.Printf("load level %s: %v", next, err)
		g.broadcastMsg(Envelope{T: MsgError, Data: ErrorMsg{Msg: "failed to load level " + next}})
	}
}

// resetWorld discards the current world and builds the named level. The
// player keeps its current health and score and respawns at the
// configured coordinates. Handlers are registered against the new world's
// own dispatcher, so nothing stays bound to the discarded one. The epoch
// bump invalidates every pending world-scoped timer.
func (g *Game) resetWorld(level string) error {
	if level == EndLevelMarker {
		g.phase = PhaseOver
		g.completed = true
		if g.events != nil {
			g.events.Track(EvtGameComplete, g.sessionID, g.currentLevel, g.player.Score)
		}
		g.broadcastMsg(Envelope{T: MsgGameOver, Data: GameOverMsg{Completed: true, Score: g.player.Score}})
		return nil
	}

	w, err := g.levels.BuildWorld(level, g.cfg.Gravity)
	if err != nil {
		return err
	}
	g.epoch++
	g.world = w
	g.currentLevel = level
	w.AddPlayer(g.player, g.cfg.SpawnX, g.cfg.SpawnY, g.cfg.Mass)
	g.player.Jumping = true // airborne until the first landing
	g.player.OnTunnel = false
	g.registerCollisionHandlers(w)
	g.broadcastMsg(Envelope{T: MsgLevel, Data: LevelMsg{Level: level}})
	return nil
}

// snapshotFrame builds the world frame under the game lock
func (g *Game) snapshotFrame() WorldFrame {
	w, h := g.world.PixelSize()
	frame := WorldFrame{
		Tick:   g.tick,
		Level:  g.currentLevel,
		Width:  w,
		Height: h,
		Player: g.player.ToState(),
		Blocks: make([]BlockState, 0, len(g.world.blocks)),
		Mobs:   make([]MobState, 0, len(g.world.mobs)),
		Items:  make([]ItemState, 0, len(g.world.items)),
	}
	for _, b := range g.world.blocks {
		frame.Blocks = append(frame.Blocks, b.ToState())
	}
	for _, m := range g.world.mobs {
		frame.Mobs = append(frame.Mobs, m.ToState())
	}
	for _, it := range g.world.items {
		frame.Items = append(frame.Items, it.ToState())
	}
	return frame
}

// broadcastState sends the msgpack world frame to all clients
func (g *Game) broadcastState() {
	frame := g.snapshotFrame()
	data, err := msgpack.Marshal(frame)
	if err != nil {
		log.Printf("msgpack marshal: %v", err)
		return
	}
	for _, client := range g.clients {
		client.SendBinary(data)
	}
}

// broadcastMsg sends a control message to all clients in the session
func (g *Game) broadcastMsg(msg Envelope) {
	for _, client := range g.clients {
		client.SendJSON(msg)
	}
}
