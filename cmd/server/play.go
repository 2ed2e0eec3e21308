package main

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"carcassonne/internal/client"
	"carcassonne/internal/config"
	"carcassonne/internal/game"
	"carcassonne/internal/room"
)

var (
	serverURL string
	roomCode  string
	players   int
	names     []string
	noShuffle bool
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Play a round in the terminal",
	Long: `Play a round in the terminal. Without --server every seat is played
at this keyboard; with --server you take one seat of a networked room and
anyone in the room can type "start" once everybody joined.`,
	RunE: runPlay,
}

func init() {
	playCmd.Flags().StringVar(&serverURL, "server", "", "server URL, e.g. http://localhost:44214 (hot-seat when empty)")
	playCmd.Flags().StringVar(&roomCode, "room", "LOBBY", "room code to join")
	playCmd.Flags().IntVar(&players, "players", 2, "number of hot-seat players")
	playCmd.Flags().StringSliceVar(&names, "names", nil, "player names in seat order")
	playCmd.Flags().BoolVar(&noShuffle, "no-shuffle", false, "draw tiles in a fixed order")
}

func runPlay(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	cfg := config.Load()
	settings := config.NewSettings(cfg.Game)
	for i, name := range names {
		settings.SetPlayerName(i, name)
	}
	if noShuffle {
		settings.SetShuffle(false)
	}
	out := cmd.OutOrStdout()
	renderer := newTextRenderer(out)
	lines := readLines(cmd.InOrStdin())

	if serverURL == "" {
		controller, err := room.NewController(&room.Config{
			Settings: settings,
			Game:     cfg.Game,
			Listener: renderer,
		})
		if err != nil {
			return err
		}
		if err := controller.NewRound(ctx, players); err != nil {
			return err
		}
		describeTile(out, controller)
		return playLoop(ctx, controller, lines, nil, out)
	}

	cfg.Client.ServerURL = serverURL
	session, err := client.NewSession(&client.SessionConfig{
		Client:   cfg.Client,
		Game:     cfg.Game,
		Room:     roomCode,
		Settings: settings,
		Listener: renderer,
	})
	if err != nil {
		return err
	}
	id, err := session.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to join room %s: %w", roomCode, err)
	}
	fmt.Fprintf(out, "Joined room %s as %s. Type \"start\" once everybody is in.\n", roomCode, id)

	done := make(chan error, 1)
	go func() { done <- session.Run(ctx) }()
	return playLoop(ctx, session.Controller(), lines, done, out)
}

func readLines(in io.Reader) <-chan string {
	lines := make(chan string)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(in)
		for scanner.Scan() {
			lines <- scanner.Text()
		}
	}()
	return lines
}

// playLoop executes typed commands until the round is over, the input ends
// or the session fails.
func playLoop(ctx context.Context, c *room.Controller, lines <-chan string, done <-chan error, out io.Writer) error {
	for {
		if c.State() == room.StateGameOver && done == nil {
			return nil
		}
		fmt.Fprint(out, "> ")
		select {
		case <-ctx.Done():
			return nil
		case err := <-done:
			if err != nil {
				return fmt.Errorf("connection to the room failed: %w", err)
			}
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			quit, err := execute(ctx, c, strings.Fields(line), out)
			if err != nil {
				fmt.Fprintln(out, "Not possible:", err)
			}
			if quit {
				return nil
			}
		}
	}
}

func execute(ctx context.Context, c *room.Controller, parts []string, out io.Writer) (bool, error) {
	if len(parts) == 0 {
		return false, nil
	}
	switch parts[0] {
	case "q", "quit":
		return true, nil
	case "start":
		return false, c.NewRound(ctx, players)
	case "t", "tile":
		describeTile(out, c)
	case "r", "l":
		steps := 1
		if parts[0] == "l" {
			steps = -1
		}
		if err := c.RotateTile(steps); err != nil {
			return false, err
		}
		describeTile(out, c)
	case "p", "place":
		if len(parts) != 3 {
			return false, fmt.Errorf("usage: p X Y")
		}
		x, errX := strconv.Atoi(parts[1])
		y, errY := strconv.Atoi(parts[2])
		if errX != nil || errY != nil {
			return false, fmt.Errorf("coordinates must be numbers")
		}
		return false, c.PlaceTile(ctx, x, y)
	case "m", "meeple":
		if len(parts) != 2 {
			return false, fmt.Errorf("usage: m DIRECTION, one of %v", game.TilePositions())
		}
		pos, err := game.ParseDirection(parts[1])
		if err != nil {
			return false, err
		}
		return false, c.PlaceMeeple(ctx, pos)
	case "s", "skip":
		if err := c.Skip(ctx); err != nil {
			return false, err
		}
		describeTile(out, c)
	default:
		fmt.Fprintln(out, "Commands: start, t, r, l, p X Y, m DIRECTION, s, q")
	}
	return false, nil
}

// describeTile shows the tile in hand of a local turn.
func describeTile(out io.Writer, c *room.Controller) {
	if c.State() != room.StatePlacing {
		return
	}
	round := c.Round()
	if round == nil {
		return
	}
	tile := round.CurrentTile()
	fmt.Fprintf(out, "%s, tile in hand: %s (rotation %d)\n", round.ActivePlayer().Name(), tile.Type(), tile.Rotation())
	for row := 0; row < 3; row++ {
		fmt.Fprintln(out, "    "+block(tile, false, row))
	}
}
