package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/exp/rand"
)

type Option func(mcts *MCTS)

// Segment is one move played since the last search, with the hash of the
// board it produced.
type Segment struct {
	Move game.Move
	Hash game.StateHash
}

// MCTS runs whole simulations on a single tree, one at a time, and keeps the
// tree between searches so statistics of the played branch carry over.
type MCTS struct {
	duration time.Duration
	episodes int
	rng      game.Rand
	root     *Node
	metrics  metrics.Collector
}

// WithDuration bounds a search by wall-clock time, checked between
// simulations.
func WithDuration(duration time.Duration) Option {
	return func(m *MCTS) {
		if duration > 0 {
			m.duration = duration
		}
	}
}

func WithEpisodes(episodes int) Option {
	return func(m *MCTS) {
		if episodes > 0 {
			m.episodes = episodes
		}
	}
}

func WithRand(rng game.Rand) Option {
	return func(m *MCTS) {
		if rng != nil {
			m.rng = rng
		}
	}
}

func WithSeed(seed uint64) Option {
	return func(m *MCTS) {
		m.rng = rand.New(rand.NewSource(seed))
	}
}

func WithMetrics() Option {
	return func(m *MCTS) {
		m.metrics = metrics.NewCollector()
	}
}

func NewMCTS(options ...Option) *MCTS {
	m := &MCTS{ // Default values
		rng:     rand.New(rand.NewSource(uint64(time.Now().UnixNano()))),
		metrics: metrics.NewDummyCollector(),
	}
	for _, option := range options {
		option(m)
	}
	if m.episodes <= 0 && m.duration <= 0 {
		panic("Must specify search episodes or duration")
	}
	return m
}

// Simulate searches board with player to move and returns the visit count of
// every expanded root move. lineage lists the moves played since the previous
// search; when they lead from the previous root to board the tree is reused.
func (m *MCTS) Simulate(board game.Board, player game.Player, lineage []Segment) (map[game.Move]int, metrics.SearchMetric) {
	m.findRoot(lineage, board, player)

	m.metrics.Start()
	m.search()
	metric := m.metrics.Complete(m.root.Visits())

	return m.root.Policy(), metric
}

// Root is the node of the last searched position, nil before any search.
func (m *MCTS) Root() *Node {
	return m.root
}

// search runs episodes until a limit is hit. Limits only apply once the root
// has a child to pick, so a tiny budget still yields a move.
func (m *MCTS) search() {
	var deadline time.Time
	if m.duration > 0 {
		deadline = time.Now().Add(m.duration)
	}

	for i := 0; ; i++ {
		if m.expanded() {
			if m.episodes > 0 && i >= m.episodes {
				return
			}
			if !deadline.IsZero() && !time.Now().Before(deadline) {
				return
			}
		}
		m.root.simulate(m.rng, m.metrics)
		m.metrics.AddEpisode()
	}
}

// expanded reports whether the root has a child, or is terminal and never will.
func (m *MCTS) expanded() bool {
	return m.root.Terminal() || len(m.root.children) > 0
}

func (m *MCTS) findRoot(path []Segment, board game.Board, player game.Player) {
	root := traverse(m.root, path)
	if root == nil || root.player != player || root.board.Hash() != board.Hash() {
		m.root = NewNode(board, player)
		m.metrics.SetTreeReset(true)
	} else {
		m.root = root
		m.metrics.SetTreeReset(false)
	}
}

func traverse(root *Node, path []Segment) *Node {
	if root == nil {
		return nil
	}

	node := root
	for _, segment := range path {
		child, err := node.CommitMove(segment.Move)
		if err != nil {
			log.Warn().Err(err).Msg("cannot follow played move in the search tree")
			return nil
		}
		if hash := child.board.Hash(); hash != segment.Hash {
			log.Warn().Msgf("node's state hash %d does not match segment's state hash %d", hash, segment.Hash)
			return nil
		}
		node = child
	}
	return node
}
