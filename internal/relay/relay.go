// Package relay processes the requests of one server. A fixed pool of
// workers handles requests in parallel while a single sequencer publishes
// their broadcasts strictly in the order the requests were accepted.
package relay

import (
	"context"
	"log/slog"
	"slices"
	"sync"
	"time"

	"carcassonne/internal/config"
	"carcassonne/internal/errors"
	"carcassonne/internal/game"
	"carcassonne/internal/shared"
	"carcassonne/internal/store"
)

// Publisher delivers a broadcast to every subscriber of a room.
type Publisher interface {
	Publish(ctx context.Context, room string, msg shared.Broadcast) error
}

// Request is one accepted client request. Payload is the decoded request
// body: shared.GameStart, shared.TilePlaced, shared.MeeplePlaced or
// shared.PlacingSkipped; nil for a welcome.
type Request struct {
	Room       string
	Originator string
	Action     string
	Payload    any
}

type Config struct {
	Store     store.Store
	Publisher Publisher
	Game      config.Game
	Workers   int
	QueueSize int
	// Seeder provides the shuffle seed of new rounds.
	Seeder func() int64
}

func (c *Config) Validate() error {
	if c == nil {
		return errors.InvalidArgument("config is required")
	}
	if c.Store == nil {
		return errors.InvalidArgument("store is required")
	}
	if c.Publisher == nil {
		return errors.InvalidArgument("publisher is required")
	}
	if c.Workers < 1 || c.QueueSize < 1 {
		return errors.InvalidArgumentf("workers (%d) and queue size (%d) must be positive", c.Workers, c.QueueSize)
	}
	return nil
}

type outcome struct {
	resp shared.Response
	err  error
}

type job struct {
	seq  uint64
	req  Request
	done chan outcome
}

type result struct {
	job        *job
	broadcasts []shared.Broadcast
	outcome    outcome
}

type Relay struct {
	store     store.Store
	publisher Publisher
	game      config.Game
	workers   int
	seeder    func() int64

	mu      sync.Mutex
	nextSeq uint64
	jobs    chan *job
	results chan *result

	startOnce sync.Once
	stopped   chan struct{}
}

func New(cfg *Config) (*Relay, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid relay config")
	}
	seeder := cfg.Seeder
	if seeder == nil {
		seeder = func() int64 { return time.Now().UnixNano() }
	}
	return &Relay{
		store:     cfg.Store,
		publisher: cfg.Publisher,
		game:      cfg.Game,
		workers:   cfg.Workers,
		seeder:    seeder,
		jobs:      make(chan *job, cfg.QueueSize),
		results:   make(chan *result, cfg.Workers),
		stopped:   make(chan struct{}),
	}, nil
}

// Start launches the workers and the sequencer. They stop with ctx.
func (r *Relay) Start(ctx context.Context) {
	r.startOnce.Do(func() {
		for i := 0; i < r.workers; i++ {
			go r.work(ctx)
		}
		go r.sequence(ctx)
		go func() {
			<-ctx.Done()
			close(r.stopped)
		}()
		slog.Info("Relay started", "workers", r.workers, "queue_size", cap(r.jobs))
	})
}

// Submit queues req and waits until its broadcasts went out. A full queue
// rejects the request right away.
func (r *Relay) Submit(ctx context.Context, req Request) (shared.Response, error) {
	j := &job{req: req, done: make(chan outcome, 1)}

	r.mu.Lock()
	j.seq = r.nextSeq
	select {
	case r.jobs <- j:
		r.nextSeq++
	default:
		r.mu.Unlock()
		slog.Warn("Request rejected, queue full", "room", req.Room, "action", req.Action)
		return shared.Failure("server busy"), errors.ResourceExhausted("request queue is full")
	}
	r.mu.Unlock()

	select {
	case out := <-j.done:
		return out.resp, out.err
	case <-ctx.Done():
		return shared.Failure("request canceled"), errors.WrapWithCode(ctx.Err(), errors.CodeCanceled, "request canceled")
	case <-r.stopped:
		return shared.Failure("server shutting down"), errors.Unavailable("relay stopped")
	}
}

func (r *Relay) work(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		case j := <-r.jobs:
			res := r.process(ctx, j)
			select {
			case r.results <- res:
			case <-ctx.Done():
				return
			}
		}
	}
}

// sequence publishes results by sequence number, holding back those that
// finished before an earlier request.
func (r *Relay) sequence(ctx context.Context) {
	pending := make(map[uint64]*result)
	var next uint64
	for {
		select {
		case <-ctx.Done():
			return
		case res := <-r.results:
			pending[res.job.seq] = res
			for {
				ready, ok := pending[next]
				if !ok {
					break
				}
				delete(pending, next)
				r.publish(ctx, ready)
				next++
			}
		}
	}
}

func (r *Relay) publish(ctx context.Context, res *result) {
	for _, b := range res.broadcasts {
		if err := r.publisher.Publish(ctx, res.job.req.Room, b); err != nil {
			slog.Error("Failed to publish broadcast",
				"room", res.job.req.Room,
				"action", b.Action,
				"error", err)
		}
	}
	res.job.done <- res.outcome
}

func (r *Relay) process(ctx context.Context, j *job) *result {
	res := &result{job: j}
	broadcasts, resp, err := r.handle(ctx, j.req)
	if err != nil {
		slog.Warn("Request failed",
			"room", j.req.Room,
			"action", j.req.Action,
			"originator", j.req.Originator,
			"error", err)
		res.outcome = outcome{resp: shared.Failure(errors.GetMessage(err)), err: err}
		return res
	}
	res.broadcasts = broadcasts
	res.outcome = outcome{resp: resp}
	return res
}

func (r *Relay) handle(ctx context.Context, req Request) ([]shared.Broadcast, shared.Response, error) {
	switch req.Action {
	case shared.ActionWelcome:
		return r.welcome(ctx, req)
	case shared.ActionGameStart:
		return r.gameStart(ctx, req)
	case shared.ActionTilePlaced, shared.ActionMeeplePlaced, shared.ActionPlacingSkipped:
		return r.forward(ctx, req)
	}
	return nil, shared.Response{}, errors.InvalidArgumentf("unknown action %q", req.Action)
}

func (r *Relay) welcome(ctx context.Context, req Request) ([]shared.Broadcast, shared.Response, error) {
	n, err := r.store.AddSubscriber(ctx, req.Room, req.Originator)
	if err != nil {
		return nil, shared.Response{}, err
	}
	b, err := shared.NewBroadcast(shared.ActionWelcome, req.Originator, shared.Welcome{SubscriberID: req.Originator, Subscribers: n})
	if err != nil {
		return nil, shared.Response{}, errors.Wrap(err, "failed to encode welcome")
	}
	slog.Info("Subscriber joined", "room", req.Room, "subscriber", req.Originator, "subscribers", n)
	return []shared.Broadcast{b}, shared.OK(), nil
}

// gameStart seats every subscriber of the room in join order and seeds a round.
func (r *Relay) gameStart(ctx context.Context, req Request) ([]shared.Broadcast, shared.Response, error) {
	subscribers, err := r.store.Subscribers(ctx, req.Room)
	if err != nil {
		return nil, shared.Response{}, err
	}
	if n := len(subscribers); n < config.MinPlayers || n > config.MaxPlayers {
		return nil, shared.Response{}, errors.Newf(errors.CodeFailedPrecondition,
			"a round needs %d to %d subscribers, room %s has %d", config.MinPlayers, config.MaxPlayers, req.Room, n)
	}
	shuffle := r.game.Shuffle
	if start, ok := req.Payload.(shared.GameStart); ok && start.Shuffle != nil {
		shuffle = *start.Shuffle
	}
	seed := game.NewSeed(r.game.BoardWidth, r.game.BoardHeight, len(subscribers), shuffle, r.seeder())
	seats := make(map[string]int, len(subscribers))
	for i, id := range subscribers {
		seats[id] = i
	}
	b, err := shared.NewBroadcast(shared.ActionGameStart, req.Originator, shared.GameStarted{Seed: seed, Seats: seats})
	if err != nil {
		return nil, shared.Response{}, errors.Wrap(err, "failed to encode game start")
	}
	slog.Info("Round seeded", "room", req.Room, "players", len(subscribers), "tiles", len(seed.Stack))

	resp := shared.OK()
	resp.BoardWidth = r.game.BoardWidth
	resp.BoardHeight = r.game.BoardHeight
	return []shared.Broadcast{b}, resp, nil
}

// forward relays a turn action of a registered subscriber unchanged.
func (r *Relay) forward(ctx context.Context, req Request) ([]shared.Broadcast, shared.Response, error) {
	subscribers, err := r.store.Subscribers(ctx, req.Room)
	if err != nil {
		return nil, shared.Response{}, err
	}
	if !slices.Contains(subscribers, req.Originator) {
		return nil, shared.Response{}, errors.NotFoundf("subscriber %q is not in room %s", req.Originator, req.Room)
	}
	b, err := shared.NewBroadcast(req.Action, req.Originator, req.Payload)
	if err != nil {
		return nil, shared.Response{}, errors.Wrap(err, "failed to encode broadcast")
	}
	return []shared.Broadcast{b}, shared.OK(), nil
}
