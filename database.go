package main

import (
	"database/sql"
	"time"

	_ "modernc.org/sqlite"
)

// DB wraps the SQLite database connection
type DB struct {
	conn *sql.DB
}

// PlayerRow represents an account record
type PlayerRow struct {
	ID        int64
	Username  string
	PassHash  string
	CreatedAt time.Time
}

// OpenDB opens (or creates) the SQLite database
func OpenDB(path string) (*DB, error) {
	conn, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}

	// WAL for concurrent readers while the event writer is busy
	if _, err := conn.Exec("PRAGMA journal_mode=WAL"); err != nil {
		conn.Close()
		return nil, err
	}
	if _, err := conn.Exec("PRAGMA foreign_keys=ON"); err != nil {
		conn.Close()
		return nil, err
	}

	db := &DB{conn: conn}
	if err := db.migrate(); err != nil {
		conn.Close()
		return nil, err
	}
	return db, nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.conn.Close()
}

func (db *DB) migrate() error {
	schema := []string{
		`CREATE TABLE IF NOT EXISTS players (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			username TEXT UNIQUE NOT NULL,
			pass_hash TEXT NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
		`CREATE TABLE IF NOT EXISTS highscores (
			player_id INTEGER NOT NULL REFERENCES players(id),
			level TEXT NOT NULL,
			score INTEGER NOT NULL,
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			PRIMARY KEY (player_id, level)
		)`,
		`CREATE TABLE IF NOT EXISTS settings (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS events (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			type TEXT NOT NULL,
			session_id TEXT,
			level TEXT,
			score INTEGER,
			created_at TIMESTAMP NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_highscores_level ON highscores(level, score DESC)`,
	}
	for _, stmt := range schema {
		if _, err := db.conn.Exec(stmt); err != nil {
			return err
		}
	}
	return nil
}

// CreatePlayer inserts a new account and returns its ID
func (db *DB) CreatePlayer(username, passHash string) (int64, error) {
	res, err := db.conn.Exec(
		"INSERT INTO players (username, pass_hash) VALUES (?, ?)",
		username, passHash)
	if err != nil {
		return 0, err
	}
	return res.LastInsertId()
}

// GetPlayerByUsername returns an account, or nil if none exists
func (db *DB) GetPlayerByUsername(username string) (*PlayerRow, error) {
	row := db.conn.QueryRow(
		"SELECT id, username, pass_hash, created_at FROM players WHERE username = ?",
		username)
	var p PlayerRow
	err := row.Scan(&p.ID, &p.Username, &p.PassHash, &p.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

// UsernameExists checks whether a username is taken
func (db *DB) UsernameExists(username string) (bool, error) {
	var n int
	err := db.conn.QueryRow(
		"SELECT COUNT(*) FROM players WHERE username = ?", username).Scan(&n)
	return n > 0, err
}

// GetSetting returns a settings value, or "" if unset
func (db *DB) GetSetting(key string) string {
	var value string
	err := db.conn.QueryRow(
		"SELECT value FROM settings WHERE key = ?", key).Scan(&value)
	if err != nil {
		return ""
	}
	return value
}

// SetSetting stores a settings value
func (db *DB) SetSetting(key, value string) error {
	_, err := db.conn.Exec(
		"INSERT INTO settings (key, value) VALUES (?, ?) ON CONFLICT(key) DO UPDATE SET value = excluded.value",
		key, value)
	return err
}

// SubmitScore records a score for a player on a level, keeping only the
// player's best per level.
func (db *DB) SubmitScore(playerID int64, level string, score int) error {
	_, err := db.conn.Exec(`
		INSERT INTO highscores (player_id, level, score)
		VALUES (?, ?, ?)
		ON CONFLICT(player_id, level) DO UPDATE SET
			score = excluded.score,
			created_at = CURRENT_TIMESTAMP
		WHERE excluded.score > highscores.score`,
		playerID, level, score)
	return err
}

// TopScores returns the best scores for a level, highest first
func (db *DB) TopScores(level string, limit int) ([]ScoreEntry, error) {
	rows, err := db.conn.Query(`
		SELECT p.username, h.level, h.score
		FROM highscores h JOIN players p ON p.id = h.player_id
		WHERE h.level = ?
		ORDER BY h.score DESC, h.created_at ASC
		LIMIT ?`, level, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []ScoreEntry
	for rows.Next() {
		var e ScoreEntry
		if err := rows.Scan(&e.Username, &e.Level, &e.Score); err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

// InsertEvents writes a batch of play events in one transaction
func (db *DB) InsertEvents(batch []PlayEvent) error {
	tx, err := db.conn.Begin()
	if err != nil {
		return err
	}
	stmt, err := tx.Prepare(
		"INSERT INTO events (type, session_id, level, score, created_at) VALUES (?, ?, ?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return err
	}
	defer stmt.Close()
	for _, evt := range batch {
		if _, err := stmt.Exec(evt.Type, evt.SessionID, evt.Level, evt.Score, evt.Timestamp); err != nil {
			tx.Rollback()
			return err
		}
	}
	return tx.Commit()
}
