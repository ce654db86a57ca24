package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/mitchelldurbincs/bridgefront/internal/game/core"
	"github.com/mitchelldurbincs/bridgefront/internal/game/rules"
	"github.com/mitchelldurbincs/bridgefront/internal/selection"
)

// pick is one simulated click fed into a session
type pick struct {
	kind  string
	value string
	split rules.MoveSplit
}

func (p pick) apply(s *selection.Session) selection.State {
	switch p.kind {
	case "hex":
		return s.PickHex(core.HexKey(p.value))
	case "edge":
		return s.PickEdge(core.EdgeKey(p.value))
	case "player":
		return s.PickPlayer(p.value)
	default:
		return s.SetStackSplit(p.split)
	}
}

// parsePicks reads "hex:0,0;edge:0,0|1,0;player:p2;split:forces=1,champions=false"
func parsePicks(raw string) ([]pick, error) {
	var out []pick
	for _, item := range strings.Split(raw, ";") {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		kind, value, ok := strings.Cut(item, ":")
		if !ok || value == "" {
			return nil, fmt.Errorf("pick %q: want kind:value", item)
		}

		p := pick{kind: kind, value: value}
		switch kind {
		case "hex":
			if _, err := core.ParseHexKey(core.HexKey(value)); err != nil {
				return nil, fmt.Errorf("pick %q: %w", item, err)
			}
		case "edge":
			edge, err := core.ParseEdgeKey(value)
			if err != nil {
				return nil, fmt.Errorf("pick %q: %w", item, err)
			}
			p.value = string(edge)
		case "player":
		case "split":
			split, err := parseSplit(value)
			if err != nil {
				return nil, fmt.Errorf("pick %q: %w", item, err)
			}
			p.split = split
		default:
			return nil, fmt.Errorf("pick %q: unknown kind %q", item, kind)
		}
		out = append(out, p)
	}
	return out, nil
}

func parseSplit(raw string) (rules.MoveSplit, error) {
	var split rules.MoveSplit
	for _, field := range strings.Split(raw, ",") {
		key, value, ok := strings.Cut(field, "=")
		if !ok {
			return split, fmt.Errorf("split field %q: want key=value", field)
		}
		switch key {
		case "forces":
			n, err := strconv.Atoi(value)
			if err != nil || n < 0 {
				return split, fmt.Errorf("split forces %q: want a non-negative integer", value)
			}
			split.ForceCount = &n
		case "champions":
			b, err := strconv.ParseBool(value)
			if err != nil {
				return split, fmt.Errorf("split champions %q: %w", value, err)
			}
			split.IncludeChampions = &b
		default:
			return split, fmt.Errorf("unknown split field %q", key)
		}
	}
	return split, nil
}
