package main

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
)

// GameConfig is the parsed game configuration: world physics, player
// starting attributes, and the per-level goal routing table.
type GameConfig struct {
	Gravity     float64
	StartLevel  string
	Character   string
	SpawnX      float64
	SpawnY      float64
	Mass        float64
	Health      int
	MaxVelocity float64

	// Levels maps level name -> goal kind ("goal", "tunnel") -> next level
	Levels map[string]map[string]string
}

// NextLevel looks up the successor of level for the given goal kind
func (c *GameConfig) NextLevel(level, goal string) (string, bool) {
	m, ok := c.Levels[level]
	if !ok {
		return "", false
	}
	next, ok := m[goal]
	return next, ok
}

// LoadConfig reads and parses a config file. Any malformed or missing
// data is a hard error; the caller treats it as fatal.
func LoadConfig(path string) (*GameConfig, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()
	return ParseConfig(f)
}

// ParseConfig parses the sectioned config format:
//
//	==World==
//	gravity : 300
//	start : level1.txt
//	==Player==
//	character : mario
//	...
//	==level1.txt==
//	goal : level2.txt
//	tunnel : bonus.txt
func ParseConfig(r io.Reader) (*GameConfig, error) {
	cfg := &GameConfig{Levels: make(map[string]map[string]string)}

	sections := make(map[string]map[string]string)
	var order []string
	var current string

	sc := bufio.NewScanner(r)
	lineNo := 0
	for sc.Scan() {
		lineNo++
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		if strings.HasPrefix(line, "==") && strings.HasSuffix(line, "==") {
			current = strings.Trim(line, "= ")
			if current == "" {
				return nil, fmt.Errorf("config line %d: empty section name", lineNo)
			}
			if _, ok := sections[current]; !ok {
				sections[current] = make(map[string]string)
				order = append(order, current)
			}
			continue
		}
		if current == "" {
			return nil, fmt.Errorf("config line %d: data before any section", lineNo)
		}
		key, value, ok := strings.Cut(line, ":")
		if !ok {
			return nil, fmt.Errorf("config line %d: expected 'key : value'", lineNo)
		}
		sections[current][strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	world, ok := sections["World"]
	if !ok {
		return nil, fmt.Errorf("config: missing ==World== section")
	}
	player, ok := sections["Player"]
	if !ok {
		return nil, fmt.Errorf("config: missing ==Player== section")
	}

	var err error
	if cfg.Gravity, err = requireFloat(world, "gravity", "World"); err != nil {
		return nil, err
	}
	if cfg.StartLevel, ok = world["start"]; !ok || cfg.StartLevel == "" {
		return nil, fmt.Errorf("config: World section missing 'start'")
	}
	if cfg.Character, ok = player["character"]; !ok || cfg.Character == "" {
		return nil, fmt.Errorf("config: Player section missing 'character'")
	}
	if cfg.SpawnX, err = requireFloat(player, "x", "Player"); err != nil {
		return nil, err
	}
	if cfg.SpawnY, err = requireFloat(player, "y", "Player"); err != nil {
		return nil, err
	}
	if cfg.Mass, err = requireFloat(player, "mass", "Player"); err != nil {
		return nil, err
	}
	health, err := requireFloat(player, "health", "Player")
	if err != nil {
		return nil, err
	}
	if health < 1 {
		return nil, fmt.Errorf("config: Player health must be positive")
	}
	cfg.Health = int(health)
	if cfg.MaxVelocity, err = requireFloat(player, "max_velocity", "Player"); err != nil {
		return nil, err
	}

	for _, name := range order {
		if name == "World" || name == "Player" {
			continue
		}
		cfg.Levels[name] = sections[name]
	}
	return cfg, nil
}

func requireFloat(section map[string]string, key, name string) (float64, error) {
	raw, ok := section[key]
	if !ok {
		return 0, fmt.Errorf("config: %s section missing '%s'", name, key)
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return 0, fmt.Errorf("config: %s.%s: %q is not a number", name, key, raw)
	}
	return v, nil
}
