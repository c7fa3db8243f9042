package main

import (
	"log"
	"sync"
	"time"
)

// Event types for the play-event log
const (
	EvtSessionStart  = "session_start"
	EvtSessionEnd    = "session_end"
	EvtLevelComplete = "level_complete"
	EvtPlayerDeath   = "player_death"
	EvtGameComplete  = "game_complete"
)

// PlayEvent is a single trackable event
type PlayEvent struct {
	Type      string
	SessionID string
	Level     string
	Score     int
	Timestamp time.Time
}

// EventLog persists play events with batched background writes so the
// game loop never blocks on the database.
type EventLog struct {
	db     *DB
	events chan PlayEvent
	stop   chan struct{}
	wg     sync.WaitGroup
}

// NewEventLog creates and starts the background writer
func NewEventLog(db *DB) *EventLog {
	el := &EventLog{
		db:     db,
		events: make(chan PlayEvent, 1024),
		stop:   make(chan struct{}),
	}
	el.wg.Add(1)
	go el.writer()
	return el
}

// Track enqueues an event for async persistence (non-blocking)
func (el *EventLog) Track(evtType, sessionID, level string, score int) {
	select {
	case el.events <- PlayEvent{
		Type:      evtType,
		SessionID: sessionID,
		Level:     level,
		Score:     score,
		Timestamp: time.Now().UTC(),
	}:
	default:
		// Channel full — drop the event rather than blocking the game loop
	}
}

// Close flushes pending events and stops the writer
func (el *EventLog) Close() {
	close(el.stop)
	el.wg.Wait()
}

func (el *EventLog) writer() {
	defer el.wg.Done()

	flush := time.NewTicker(2 * time.Second)
	defer flush.Stop()

	var batch []PlayEvent
	writeBatch := func() {
		if len(batch) == 0 {
			return
		}
		if err := el.db.InsertEvents(batch); err != nil {
			log.Printf("event log write: %v", err)
		}
		batch = batch[:0]
	}

	for {
		select {
		case evt := <-el.events:
			batch = append(batch, evt)
			if len(batch) >= 64 {
				writeBatch()
			}
		case <-flush.C:
			writeBatch()
		case <-el.stop:
			// Drain whatever is queued before exiting
			for {
				select {
				case evt := <-el.events:
					batch = append(batch, evt)
				default:
					writeBatch()
					return
				}
			}
		}
	}
}
