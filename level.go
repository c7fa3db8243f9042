package main

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Tile symbol tables for the level grid format
var (
	blockTiles = map[rune]string{
		'#': "brick",
		'%': "brick_base",
		'?': "mystery_empty",
		'$': "mystery_coin",
		'^': "cube",
		'b': "bounce_block",
		'I': "flag",
		'=': "tunnel",
		'S': "switch",
	}
	itemTiles = map[rune]string{
		'C': "coin",
		'*': "star",
	}
	mobTiles = map[rune]string{
		'&': "cloud",
		'@': "mushroom",
	}
)

// LevelStore builds worlds from level grid files in a directory.
type LevelStore struct {
	dir string
}

// NewLevelStore creates a store rooted at dir
func NewLevelStore(dir string) *LevelStore {
	return &LevelStore{dir: dir}
}

// readGrid loads a level file into trimmed rows
func (ls *LevelStore) readGrid(name string) ([]string, error) {
	// Level names come from config/user input; keep them inside the dir.
	if strings.ContainsAny(name, "/\\") || name == ".." {
		return nil, fmt.Errorf("invalid level name %q", name)
	}
	f, err := os.Open(filepath.Join(ls.dir, name))
	if err != nil {
		return nil, fmt.Errorf("open level %q: %w", name, err)
	}
	defer f.Close()

	var rows []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\n"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read level %q: %w", name, err)
	}
	if len(rows) == 0 {
		return nil, fmt.Errorf("level %q is empty", name)
	}
	return rows, nil
}

// BuildWorld parses a level grid and populates a fresh world with its
// blocks, items and mobs. The player is added by the caller afterwards.
func (ls *LevelStore) BuildWorld(name string, gravity float64) (*World, error) {
	rows, err := ls.readGrid(name)
	if err != nil {
		return nil, err
	}

	cols := 0
	for _, row := range rows {
		if len(row) > cols {
			cols = len(row)
		}
	}
	w := NewWorld(gravity, float64(cols)*BlockSize, float64(len(rows))*BlockSize)

	for row, line := range rows {
		for col, sym := range line {
			if sym == ' ' {
				continue
			}
			x := float64(col) * BlockSize
			// Entities taller than one cell anchor at the cell floor
			cellBottom := float64(row+1) * BlockSize

			if tile, ok := blockTiles[sym]; ok {
				b := NewBlock(tile)
				_, h := b.size()
				w.AddBlock(b, x, cellBottom-h)
				continue
			}
			if item, ok := itemTiles[sym]; ok {
				w.AddItem(NewItemFromID(item), x, cellBottom-ItemSize)
				continue
			}
			if mob, ok := mobTiles[sym]; ok {
				m := NewMob(mob)
				_, h := m.size()
				w.AddMob(m, x, cellBottom-h)
				continue
			}
			// Unknown symbols become inert plain blocks so a typo in a
			// level file is visible instead of silently swallowed.
			w.AddBlock(NewBlock(string(sym)), x, cellBottom-BlockSize)
		}
	}
	return w, nil
}
