package game

import (
	"fmt"
	"sort"
)

// PatternKind selects how a pattern is detected, completed and valued.
type PatternKind int

const (
	PatternCastleAndRoad PatternKind = iota
	PatternFields
	PatternMonastery
)

func (k PatternKind) String() string {
	switch k {
	case PatternCastleAndRoad:
		return "CASTLE_AND_ROAD"
	case PatternFields:
		return "FIELDS"
	case PatternMonastery:
		return "MONASTERY"
	}
	return fmt.Sprintf("PatternKind(%d)", int(k))
}

// Pattern is a connected feature spanning one or more tiles.
type Pattern struct {
	kind    PatternKind
	terrain TerrainType

	spots   []*Spot
	spotSet map[*Spot]bool

	meeples []*Meeple
	players map[*Player]int

	castles   int // completed castles bordering a field
	complete  bool
	disbursed bool
}

func newPattern(kind PatternKind, terrain TerrainType) *Pattern {
	return &Pattern{
		kind:    kind,
		terrain: terrain,
		spotSet: make(map[*Spot]bool),
		players: make(map[*Player]int),
	}
}

func (p *Pattern) add(spot *Spot) {
	if p.spotSet[spot] {
		return
	}
	p.spotSet[spot] = true
	p.spots = append(p.spots, spot)
}

func (p *Pattern) addMeeple(m *Meeple) {
	for _, existing := range p.meeples {
		if existing == m {
			return
		}
	}
	p.meeples = append(p.meeples, m)
	p.players[m.owner]++
}

func (p *Pattern) Kind() PatternKind { return p.kind }

func (p *Pattern) Terrain() TerrainType { return p.terrain }

// Spots returns the spots of the pattern in discovery order.
func (p *Pattern) Spots() []*Spot {
	return append([]*Spot(nil), p.spots...)
}

// Size is the number of distinct tiles in the pattern.
func (p *Pattern) Size() int { return len(p.spots) }

func (p *Pattern) Contains(spot *Spot) bool { return p.spotSet[spot] }

func (p *Pattern) Meeples() []*Meeple {
	return append([]*Meeple(nil), p.meeples...)
}

// MeepleCount is how many meeples player has on the pattern.
func (p *Pattern) MeepleCount(player *Player) int { return p.players[player] }

func (p *Pattern) IsOccupied() bool { return len(p.meeples) > 0 }

func (p *Pattern) IsOccupiedBy(player *Player) bool { return p.players[player] > 0 }

func (p *Pattern) IsComplete() bool { return p.complete }

func (p *Pattern) IsDisbursed() bool { return p.disbursed }

// AdjacentCastles is the number of completed castles bordering a field.
func (p *Pattern) AdjacentCastles() int { return p.castles }

func (p *Pattern) emblems() int {
	n := 0
	for _, spot := range p.spots {
		if spot.tile.HasEmblem() {
			n++
		}
	}
	return n
}

// Value is the number of points the pattern is worth right now.
func (p *Pattern) Value() int {
	switch p.kind {
	case PatternCastleAndRoad:
		if p.terrain == TerrainCastle {
			return (p.Size() + p.emblems()) * 2
		}
		return p.Size()
	case PatternMonastery:
		return p.Size()
	case PatternFields:
		return p.castles * 3
	}
	return 0
}

// DominantPlayers returns the players with the most meeples on the pattern,
// ordered by player index.
func (p *Pattern) DominantPlayers() []*Player {
	most := 0
	for _, n := range p.players {
		most = max(most, n)
	}
	var out []*Player
	for player, n := range p.players {
		if n == most && n > 0 {
			out = append(out, player)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].index < out[j].index })
	return out
}

// Disburse pays a complete, occupied pattern out exactly once: every dominant
// player gets the value divided by their number, rounded up, and all meeples
// go back to their owners. It returns the players that scored.
func (p *Pattern) Disburse() []*Player {
	if p.disbursed || !p.complete || !p.IsOccupied() {
		return nil
	}
	winners := p.DominantPlayers()
	share := (p.Value() + len(winners) - 1) / len(winners)
	for _, player := range winners {
		player.AddScore(share, p.terrain)
	}
	for _, m := range p.meeples {
		if m.tile != nil {
			m.tile.RemoveMeeple()
		}
	}
	p.disbursed = true
	return winners
}

// ForceDisburse completes an unfinished pattern and pays it out. It is used
// once the round is over; already complete patterns are left alone.
func (p *Pattern) ForceDisburse() []*Player {
	if p.complete {
		return nil
	}
	p.complete = true
	return p.Disburse()
}

func (p *Pattern) String() string {
	return fmt.Sprintf("%s[%s size=%d meeples=%d complete=%t]", p.kind, p.terrain, p.Size(), len(p.meeples), p.complete)
}
