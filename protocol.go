package main

import "encoding/json"

// Client -> Server message types
const (
	MsgJoin   = "join"
	MsgCreate = "create" // create session
	MsgList   = "list"   // list sessions
	MsgInput  = "input"
	MsgChoice = "choice" // restart-or-quit answer after death
	MsgAuth   = "auth"   // token login
	MsgLogin  = "login"
	MsgSignup = "signup"
	MsgScores = "scores" // high score query
)

// Server -> Client message types
const (
	MsgState    = "state" // msgpack binary world frame
	MsgWelcome  = "welcome"
	MsgCreated  = "created"
	MsgSessions = "sessions"
	MsgJoined   = "joined"
	MsgLevel    = "level" // level changed
	MsgDead     = "dead"  // restart-or-quit prompt
	MsgGameOver = "game_over"
	MsgAuthOK   = "auth_ok"
	MsgScoreList = "score_list"
	MsgError    = "error"
)

// Envelope wraps all outgoing control messages with a type field
type Envelope struct {
	T    string      `json:"t"`
	Data interface{} `json:"d,omitempty"`
}

// InEnvelope is used for incoming messages — json.RawMessage avoids double-unmarshal
type InEnvelope struct {
	T string          `json:"t"`
	D json.RawMessage `json:"d,omitempty"`
}

// InputMsg carries the player's movement intents. Left/Right are held
// state; Jump and Duck are one-shot presses.
type InputMsg struct {
	Left  bool `json:"l"`
	Right bool `json:"r"`
	Jump  bool `json:"j"`
	Duck  bool `json:"d"`
}

// JoinMsg is sent when a player wants to join a session
type JoinMsg struct {
	Name      string `json:"name"`
	SessionID string `json:"sid"`
}

// CreateMsg is sent when a player wants to create a session
type CreateMsg struct {
	Name        string `json:"name"`
	SessionName string `json:"sname"`
}

// ChoiceMsg answers the death prompt
type ChoiceMsg struct {
	Restart bool `json:"restart"`
}

// PlayerState is broadcast in each world frame
type PlayerState struct {
	ID         string  `json:"id" msgpack:"id"`
	Name       string  `json:"n" msgpack:"n"`
	X          float64 `json:"x" msgpack:"x"`
	Y          float64 `json:"y" msgpack:"y"`
	VX         float64 `json:"vx" msgpack:"vx"`
	VY         float64 `json:"vy" msgpack:"vy"`
	HP         int     `json:"hp" msgpack:"hp"`
	MaxHP      int     `json:"mhp" msgpack:"mhp"`
	Score      int     `json:"sc" msgpack:"sc"`
	Invincible bool    `json:"inv" msgpack:"inv"`
}

// BlockState is broadcast per block
type BlockState struct {
	ID       string  `json:"id" msgpack:"id"`
	Tile     string  `json:"t" msgpack:"t"`
	X        float64 `json:"x" msgpack:"x"`
	Y        float64 `json:"y" msgpack:"y"`
	W        float64 `json:"w" msgpack:"w"`
	H        float64 `json:"h" msgpack:"h"`
	Consumed bool    `json:"c,omitempty" msgpack:"c"`
}

// MobState is broadcast per mob
type MobState struct {
	ID    string  `json:"id" msgpack:"id"`
	Mob   string  `json:"m" msgpack:"m"`
	X     float64 `json:"x" msgpack:"x"`
	Y     float64 `json:"y" msgpack:"y"`
	W     float64 `json:"w" msgpack:"w"`
	H     float64 `json:"h" msgpack:"h"`
	Tempo float64 `json:"tp" msgpack:"tp"`
}

// ItemState is broadcast per item
type ItemState struct {
	ID   string  `json:"id" msgpack:"id"`
	Item string  `json:"i" msgpack:"i"`
	X    float64 `json:"x" msgpack:"x"`
	Y    float64 `json:"y" msgpack:"y"`
}

// WorldFrame is the full state broadcast, msgpack-encoded on the wire
type WorldFrame struct {
	Tick   uint64       `json:"tick" msgpack:"tick"`
	Level  string       `json:"lvl" msgpack:"lvl"`
	Width  float64      `json:"w" msgpack:"w"`
	Height float64      `json:"h" msgpack:"h"`
	Player PlayerState  `json:"p" msgpack:"p"`
	Blocks []BlockState `json:"b" msgpack:"b"`
	Mobs   []MobState   `json:"m" msgpack:"m"`
	Items  []ItemState  `json:"i" msgpack:"i"`
}

// WelcomeMsg is sent to a player when they join
type WelcomeMsg struct {
	PlayerID string `json:"pid"`
	Level    string `json:"lvl"`
}

// LevelMsg announces a level change
type LevelMsg struct {
	Level string `json:"lvl"`
}

// DeadMsg prompts the restart-or-quit decision
type DeadMsg struct {
	Level string `json:"lvl"`
	Score int    `json:"sc"`
}

// GameOverMsg ends the session, either by completing the terminal level
// or by quitting from the death prompt.
type GameOverMsg struct {
	Completed bool `json:"done"`
	Score     int  `json:"sc"`
}

// SessionInfo is used in the session list
type SessionInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Level   string `json:"lvl"`
	Players int    `json:"players"`
}

// ErrorMsg sends an error to the client
type ErrorMsg struct {
	Msg string `json:"msg"`
}

// LoginMsg carries account credentials
type LoginMsg struct {
	Username string `json:"u"`
	Password string `json:"p"`
}

// AuthMsg carries a previously issued token
type AuthMsg struct {
	Token string `json:"tok"`
}

// AuthOKMsg confirms authentication
type AuthOKMsg struct {
	Token    string `json:"tok"`
	Username string `json:"u"`
	PlayerID int64  `json:"pid"`
}

// ScoresMsg queries the high score table for a level
type ScoresMsg struct {
	Level string `json:"lvl"`
}

// ScoreEntry is one high score row
type ScoreEntry struct {
	Username string `json:"u"`
	Level    string `json:"lvl"`
	Score    int    `json:"sc"`
}

// ScoreListMsg returns high scores
type ScoreListMsg struct {
	Level  string       `json:"lvl"`
	Scores []ScoreEntry `json:"scores"`
}
