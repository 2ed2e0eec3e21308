package game

// Player holds a fixed set of meeples and the points scored per terrain.
type Player struct {
	index   int
	name    string
	meeples []*Meeple
	scores  map[TerrainType]int
}

func NewPlayer(index int, name string, meeples int) *Player {
	p := &Player{
		index:  index,
		name:   name,
		scores: make(map[TerrainType]int),
	}
	for i := 0; i < meeples; i++ {
		p.meeples = append(p.meeples, &Meeple{owner: p, position: Middle})
	}
	return p
}

func (p *Player) Index() int { return p.index }

func (p *Player) Name() string { return p.name }

// Score is the sum over all terrain categories.
func (p *Player) Score() int {
	total := 0
	for _, s := range p.scores {
		total += s
	}
	return total
}

func (p *Player) ScoreFor(terrain TerrainType) int {
	return p.scores[terrain]
}

func (p *Player) AddScore(points int, terrain TerrainType) {
	p.scores[terrain] += points
}

func (p *Player) FreeMeeples() int {
	n := 0
	for _, m := range p.meeples {
		if !m.IsPlaced() {
			n++
		}
	}
	return n
}

func (p *Player) HasFreeMeeples() bool {
	return p.FreeMeeples() > 0
}

// MeepleCount is the total number of meeples the player owns.
func (p *Player) MeepleCount() int {
	return len(p.meeples)
}

func (p *Player) takeMeeple() *Meeple {
	for _, m := range p.meeples {
		if !m.IsPlaced() {
			return m
		}
	}
	return nil
}

func (p *Player) String() string {
	return p.name
}
