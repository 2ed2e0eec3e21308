package game

type visit struct {
	spot *Spot
	pos  Direction
}

// pass is one detection run. It remembers which tile positions already
// belong to a pattern so every feature is found once.
type pass struct {
	grid        *Grid
	visited     map[visit]*Pattern
	monasteries map[*Spot]bool
}

func (g *Grid) newPass() *pass {
	return &pass{
		grid:        g,
		visited:     make(map[visit]*Pattern),
		monasteries: make(map[*Spot]bool),
	}
}

// PatternsAt returns every pattern touching the tile on spot, including the
// monasteries on the spot and around it.
func (g *Grid) PatternsAt(spot *Spot) []*Pattern {
	if spot == nil || spot.IsFree() {
		return nil
	}
	p := g.newPass()
	out := p.features(spot)
	for _, s := range append([]*Spot{spot}, g.Neighbors(spot, false)...) {
		if pat := p.monastery(s); pat != nil {
			out = append(out, pat)
		}
	}
	return out
}

// AllPatterns returns every pattern on the grid once.
func (g *Grid) AllPatterns() []*Pattern {
	p := g.newPass()
	var out []*Pattern
	for _, spot := range g.Occupied() {
		out = append(out, p.features(spot)...)
		if pat := p.monastery(spot); pat != nil {
			out = append(out, pat)
		}
	}
	return out
}

// PatternFrom returns the pattern running through position pos of the tile
// on spot, or nil if that position carries no feature.
func (g *Grid) PatternFrom(spot *Spot, pos Direction) *Pattern {
	if spot == nil || spot.IsFree() {
		return nil
	}
	p := g.newPass()
	switch terrain := spot.tile.TerrainAt(pos); terrain {
	case TerrainCastle, TerrainRoad:
		return p.castleOrRoad(spot, pos, terrain)
	case TerrainFields:
		return p.fields(spot, pos)
	case TerrainMonastery:
		return p.monastery(spot)
	}
	return nil
}

// features finds the castle, road and field patterns starting on spot that
// this pass has not seen yet.
func (p *pass) features(spot *Spot) []*Pattern {
	var out []*Pattern
	for _, pos := range TilePositions() {
		terrain := spot.tile.TerrainAt(pos)
		if (terrain == TerrainCastle || terrain == TerrainRoad) && !p.touched(spot, pos) {
			out = append(out, p.castleOrRoad(spot, pos, terrain))
		}
	}
	for _, pos := range TilePositions() {
		if spot.tile.TerrainAt(pos) == TerrainFields && !p.touched(spot, pos) {
			out = append(out, p.fields(spot, pos))
		}
	}
	return out
}

// touched reports whether pos, or a position connected to it, was visited.
func (p *pass) touched(spot *Spot, pos Direction) bool {
	return p.owner(spot, pos) != nil
}

func (p *pass) owner(spot *Spot, pos Direction) *Pattern {
	for _, other := range TilePositions() {
		if !spot.tile.Connects(pos, other) {
			continue
		}
		if pat := p.visited[visit{spot, other}]; pat != nil {
			return pat
		}
	}
	return nil
}

func (p *pass) castleOrRoad(spot *Spot, start Direction, terrain TerrainType) *Pattern {
	pat := newPattern(PatternCastleAndRoad, terrain)
	pat.add(spot)
	p.visited[visit{spot, start}] = pat
	pat.complete = p.extend(pat, spot, start, true)
	p.collectMeeples(pat)
	return pat
}

// extend follows the feature across every edge of spot connected to from.
// It reports false when the feature runs into an empty neighbour.
func (p *pass) extend(pat *Pattern, spot *Spot, from Direction, first bool) bool {
	closed := true
	for _, dir := range DirectNeighbors() {
		if !spot.tile.Connects(from, dir) {
			continue
		}
		key := visit{spot, dir}
		if p.visited[key] != nil && !(first && dir == from) {
			continue
		}
		p.visited[key] = pat
		nb := p.grid.Neighbor(spot, dir)
		if nb == nil {
			closed = false
			continue
		}
		opposite := dir.Opposite()
		if nb.tile.TerrainAt(opposite) != pat.terrain {
			closed = false
			continue
		}
		if p.visited[visit{nb, opposite}] != nil {
			continue
		}
		p.visited[visit{nb, opposite}] = pat
		pat.add(nb)
		if !p.extend(pat, nb, opposite, false) {
			closed = false
		}
	}
	return closed
}

// fieldStep is the way from a field position into a neighbouring tile.
type fieldStep struct {
	dir Direction // towards the neighbour
	pos Direction // position on the neighbour
}

var fieldSteps = map[Direction][]fieldStep{
	Top:         {{Top, Bottom}},
	Right:       {{Right, Left}},
	Bottom:      {{Bottom, Top}},
	Left:        {{Left, Right}},
	TopRight:    {{Top, BottomRight}, {Right, TopLeft}},
	BottomRight: {{Bottom, TopRight}, {Right, BottomLeft}},
	BottomLeft:  {{Bottom, TopLeft}, {Left, BottomRight}},
	TopLeft:     {{Top, BottomLeft}, {Left, TopRight}},
}

func (p *pass) fields(spot *Spot, start Direction) *Pattern {
	pat := newPattern(PatternFields, TerrainFields)
	pat.add(spot)
	counted := make(map[visit]bool)
	p.extendFields(pat, spot, start, counted)
	p.collectMeeples(pat)
	return pat
}

func (p *pass) extendFields(pat *Pattern, spot *Spot, from Direction, counted map[visit]bool) {
	var reached []Direction
	for _, pos := range TilePositions() {
		key := visit{spot, pos}
		if !spot.tile.Connects(from, pos) || p.visited[key] != nil {
			continue
		}
		p.visited[key] = pat
		reached = append(reached, pos)
	}
	for _, pos := range reached {
		p.countCastles(pat, spot, pos, counted)
	}
	for _, pos := range reached {
		for _, step := range fieldSteps[pos] {
			// a castle edge walls the fields off from each other
			if spot.tile.TerrainAt(step.dir) == TerrainCastle {
				continue
			}
			nb := p.grid.Neighbor(spot, step.dir)
			if nb == nil || nb.tile.TerrainAt(step.pos) != TerrainFields || p.visited[visit{nb, step.pos}] != nil {
				continue
			}
			pat.add(nb)
			p.extendFields(pat, nb, step.pos, counted)
		}
	}
}

// countCastles adds every completed castle bordering the field position pos
// that the field has not counted yet.
func (p *pass) countCastles(pat *Pattern, spot *Spot, pos Direction, counted map[visit]bool) {
	var candidates []Direction
	if pos == Middle {
		candidates = DirectNeighbors()
	} else {
		candidates = []Direction{pos.Next(-1), pos.Next(1), Middle}
	}
	for _, c := range candidates {
		if spot.tile.TerrainAt(c) != TerrainCastle || isCounted(counted, spot, c) {
			continue
		}
		scratch := p.grid.newPass()
		castle := scratch.castleOrRoad(spot, c, TerrainCastle)
		for key := range scratch.visited {
			counted[key] = true
		}
		if castle.complete {
			pat.castles++
		}
	}
}

func isCounted(counted map[visit]bool, spot *Spot, pos Direction) bool {
	for _, other := range TilePositions() {
		if spot.tile.Connects(pos, other) && counted[visit{spot, other}] {
			return true
		}
	}
	return false
}

// monastery builds the pattern of the monastery on spot, once per pass.
func (p *pass) monastery(spot *Spot) *Pattern {
	if spot.IsFree() || !spot.tile.IsMonastery() || p.monasteries[spot] {
		return nil
	}
	p.monasteries[spot] = true
	pat := newPattern(PatternMonastery, TerrainMonastery)
	pat.add(spot)
	neighbors := p.grid.Neighbors(spot, false)
	for _, nb := range neighbors {
		pat.add(nb)
	}
	pat.complete = len(neighbors) == len(Neighbors())
	if m := spot.tile.meeple; m != nil && m.position == Middle {
		pat.addMeeple(m)
	}
	return pat
}

// collectMeeples adds the meeples standing on positions of the pattern.
func (p *pass) collectMeeples(pat *Pattern) {
	for _, spot := range pat.spots {
		m := spot.tile.meeple
		if m == nil || spot.tile.TerrainAt(m.position) != pat.terrain {
			continue
		}
		if p.owner(spot, m.position) == pat {
			pat.addMeeple(m)
		}
	}
}
