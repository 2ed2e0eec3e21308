package main

import (
	"fmt"
	"io"
	"strings"
	"sync"

	"carcassonne/internal/game"
	"carcassonne/internal/room"
)

var terrainGlyphs = map[game.TerrainType]byte{
	game.TerrainOther:     '+',
	game.TerrainCastle:    'C',
	game.TerrainRoad:      '=',
	game.TerrainFields:    '.',
	game.TerrainMonastery: 'M',
	game.TerrainWall:      '#',
}

// cell maps the nine tile positions onto a 3x3 block of characters.
var cell = [3][3]game.Direction{
	{game.TopLeft, game.Top, game.TopRight},
	{game.Left, game.Middle, game.Right},
	{game.BottomLeft, game.Bottom, game.BottomRight},
}

// textRenderer draws the round on a terminal. It is called with the
// controller lock held, so it only reads what the callbacks hand it.
type textRenderer struct {
	mu     sync.Mutex
	out    io.Writer
	tiles  []*game.Tile
	scores map[int]string
}

func newTextRenderer(out io.Writer) *textRenderer {
	return &textRenderer{out: out, scores: map[int]string{}}
}

var _ room.Listener = (*textRenderer)(nil)

func (r *textRenderer) OnTilePlaced(tile *game.Tile) {
	r.mu.Lock()
	r.tiles = append(r.tiles, tile)
	r.mu.Unlock()
}

func (r *textRenderer) OnMeeplePlaced(m *game.Meeple) {
	r.printf("%s placed a meeple on %s\n", m.Owner().Name(), m.Position())
}

func (r *textRenderer) OnMeepleRemoved(tile *game.Tile, pos game.Direction) {
	r.printf("meeple returned from %s of %s\n", pos, tile.Type())
}

func (r *textRenderer) OnScoreChanged(p *game.Player) {
	r.mu.Lock()
	r.scores[p.Index()] = fmt.Sprintf("%s: %d points, %d meeples", p.Name(), p.Score(), p.FreeMeeples())
	r.mu.Unlock()
}

func (r *textRenderer) OnStackSizeChanged(size int) {
	r.printf("%d tiles left\n", size)
}

func (r *textRenderer) OnHighlightPlaceable(spots []*game.Spot) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawBoard(spots)
	for i := 0; i < len(r.scores); i++ {
		fmt.Fprintln(r.out, r.scores[i])
	}
}

func (r *textRenderer) OnStateChanged(s room.State) {
	switch s {
	case room.StateIdle:
		r.mu.Lock()
		r.tiles = nil
		r.scores = map[int]string{}
		r.mu.Unlock()
	case room.StatePlacing:
		r.printf("Your turn: rotate (r/l), place (p X Y) or skip (s)\n")
	case room.StateManning:
		r.printf("Place a meeple (m DIRECTION) or skip (s)\n")
	case room.StateWaiting:
		r.printf("Waiting for the other players...\n")
	}
}

func (r *textRenderer) OnGameOver(winners []*game.Player) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.drawBoard(nil)
	for i := 0; i < len(r.scores); i++ {
		fmt.Fprintln(r.out, r.scores[i])
	}
	names := make([]string, len(winners))
	for i, w := range winners {
		names[i] = w.Name()
	}
	fmt.Fprintf(r.out, "\nGame over! Winner: %s\n", strings.Join(names, ", "))
}

func (r *textRenderer) OnWelcome(subscriberID string, subscribers int) {
	r.printf("%s joined, %d in the room\n", subscriberID, subscribers)
}

func (r *textRenderer) printf(format string, args ...any) {
	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintf(r.out, format, args...)
}

// drawBoard prints every placed tile as a 3x3 block and marks the free
// spots in highlight with a question mark.
func (r *textRenderer) drawBoard(highlight []*game.Spot) {
	type pos struct{ x, y int }
	placed := map[pos]*game.Tile{}
	marked := map[pos]bool{}
	minX, minY, maxX, maxY := 1<<30, 1<<30, -1, -1
	grow := func(x, y int) {
		minX, minY = min(minX, x), min(minY, y)
		maxX, maxY = max(maxX, x), max(maxY, y)
	}
	for _, t := range r.tiles {
		if spot := t.Spot(); spot != nil {
			placed[pos{spot.X(), spot.Y()}] = t
			grow(spot.X(), spot.Y())
		}
	}
	for _, s := range highlight {
		marked[pos{s.X(), s.Y()}] = true
		grow(s.X(), s.Y())
	}
	if maxX < 0 {
		return
	}

	var header strings.Builder
	header.WriteString("\n    ")
	for x := minX; x <= maxX; x++ {
		fmt.Fprintf(&header, "%-4d", x)
	}
	fmt.Fprintln(r.out, strings.TrimRight(header.String(), " "))
	for y := minY; y <= maxY; y++ {
		for row := 0; row < 3; row++ {
			var line strings.Builder
			if row == 1 {
				fmt.Fprintf(&line, "%3d ", y)
			} else {
				line.WriteString("    ")
			}
			for x := minX; x <= maxX; x++ {
				line.WriteString(block(placed[pos{x, y}], marked[pos{x, y}], row))
				line.WriteByte(' ')
			}
			fmt.Fprintln(r.out, strings.TrimRight(line.String(), " "))
		}
	}
}

func block(t *game.Tile, marked bool, row int) string {
	if t == nil {
		if marked && row == 1 {
			return " ? "
		}
		return "   "
	}
	var b [3]byte
	for col, d := range cell[row] {
		b[col] = terrainGlyphs[t.TerrainAt(d)]
		if m := t.Meeple(); m != nil && m.Position() == d {
			b[col] = byte('1' + m.Owner().Index())
		}
	}
	return string(b[:])
}
