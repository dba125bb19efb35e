package searcher

import (
	"connect4/game"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
)

// scriptedRand replays picks in order, cycling, reduced modulo n.
type scriptedRand struct {
	picks []int
	calls int
}

func (s *scriptedRand) Intn(n int) int {
	pick := s.picks[s.calls%len(s.picks)]
	s.calls++
	return pick % n
}

// play applies alternating moves starting with Player A.
func play(t *testing.T, moves ...game.Move) game.Board {
	t.Helper()
	b := game.NewBoard()
	player := game.PlayerA
	for _, m := range moves {
		_, err := b.Apply(player, m)
		require.NoError(t, err)
		player = player.Opponent()
	}
	return b
}

// checkAccounting walks the tree and verifies visit and reward bounds.
func checkAccounting(t *testing.T, n *Node) {
	t.Helper()
	require.GreaterOrEqual(t, n.rewards, 0.0, "Rewards should not be negative")
	require.LessOrEqual(t, n.rewards, float64(n.visits), "Rewards should not exceed visits")

	sum := 0
	for _, child := range n.children {
		sum += child.visits
		checkAccounting(t, child)
	}
	if len(n.children) > 0 {
		require.Equal(t, n.visits-1, sum, "Children should absorb every visit but the first")
	}
	require.LessOrEqual(t, len(n.children), len(n.moves), "At most one child per legal move")
}

func TestNodeSimulate(t *testing.T) {
	t.Run("rolling out an unvisited leaf", func(t *testing.T) {
		root := NewNode(game.NewBoard(), game.PlayerA)
		rng := &scriptedRand{picks: []int{0}}

		got := root.Simulate(rng)

		// Lowest-column playout: Player A completes the bottom row
		require.Equal(t, game.PlayerAWins, got, "Should return the rollout result")
		require.Equal(t, 1, root.Visits(), "Root should absorb the simulation")
		require.Empty(t, root.Children(), "First visit should not expand")
		require.Equal(t, Loss, root.rewards, "Win by the player to move is a loss for the player who moved in")
	})

	t.Run("expanding only the first child on the second simulation", func(t *testing.T) {
		root := NewNode(game.NewBoard(), game.PlayerA)
		rng := rand.New(rand.NewSource(3))

		root.Simulate(rng)
		root.Simulate(rng)

		children := root.Children()
		require.Len(t, children, 1, "Second simulation should create exactly one child")
		require.Equal(t, 2, root.Visits(), "Root should count both simulations")
		require.Equal(t, 1, children[0].Visits(), "First child should be visited once")
		move, ok := children[0].Move()
		require.True(t, ok, "Child should record its move")
		require.Equal(t, game.Move(0), move, "First child should be the lowest column")
		require.Equal(t, game.PlayerB, children[0].Player(), "Turn should pass to the opponent")
	})

	t.Run("visiting every child once before revisiting any", func(t *testing.T) {
		root := NewNode(game.NewBoard(), game.PlayerA)
		rng := rand.New(rand.NewSource(5))

		for i := 0; i < 1+game.Cols; i++ {
			root.Simulate(rng)
		}

		children := root.Children()
		require.Len(t, children, game.Cols, "Every legal move should be expanded")
		for i, child := range children {
			move, _ := child.Move()
			require.Equal(t, game.Move(i), move, "Children should follow legal move order")
			require.Equal(t, 1, child.Visits(), "Each child should be visited exactly once")
		}
	})

	t.Run("returning the known outcome of a terminal node", func(t *testing.T) {
		board := play(t, 0, 1, 0, 1, 0, 1, 0)
		node := NewNode(board, game.PlayerB)
		rng := &scriptedRand{picks: []int{0}}

		for i := 0; i < 3; i++ {
			got := node.Simulate(rng)
			require.Equal(t, game.PlayerAWins, got, "Should return the terminal result")
		}

		require.Zero(t, rng.calls, "Terminal node should not consult randomness")
		require.Empty(t, node.Children(), "Terminal node should never expand")
		require.True(t, node.Terminal(), "Node should be terminal")
		require.Equal(t, 3.0, node.rewards, "Win of the player who moved in should be credited")
		require.Equal(t, 1.0, node.WinRate(), "Win rate should be 1")
	})

	t.Run("keeping visit accounting consistent", func(t *testing.T) {
		root := NewNode(game.NewBoard(), game.PlayerA)
		rng := rand.New(rand.NewSource(11))
		const episodes = 2000

		for i := 0; i < episodes; i++ {
			root.Simulate(rng)
		}

		require.Equal(t, episodes, root.Visits(), "Root should count every simulation")
		checkAccounting(t, root)
	})
}

func TestNodeBackup(t *testing.T) {
	t.Run("crediting the player who moved into the node", func(t *testing.T) {
		node := &Node{player: game.PlayerB}

		node.backup(game.PlayerAWins)
		node.backup(game.PlayerBWins)
		node.backup(game.Draw)

		require.Equal(t, 3, node.visits, "Every result should add a visit")
		require.Equal(t, Win, node.rewards, "Only the win of Player A should count")
	})
}

func TestNodePickChild(t *testing.T) {
	t.Run("selecting the max UCT child", func(t *testing.T) {
		maxChild := &Node{rewards: 2, visits: 2}
		node := &Node{
			moves:    []game.Move{0, 1},
			children: []*Node{{rewards: 1, visits: 2}, maxChild},
			visits:   5,
		}

		require.Same(t, maxChild, node.selectOrExpand(), "Node should select child with max policy value")
	})

	t.Run("keeping the first child on ties", func(t *testing.T) {
		first := &Node{rewards: 1, visits: 2}
		node := &Node{
			moves:    []game.Move{0, 1},
			children: []*Node{first, {rewards: 1, visits: 2}},
			visits:   5,
		}

		require.Equal(t, 0, node.pickChild(), "Ties should keep the first enumerated child")
	})

	t.Run("preferring unvisited children", func(t *testing.T) {
		node := &Node{
			moves:    []game.Move{0, 1, 2},
			children: []*Node{{rewards: 9, visits: 9}, {visits: 0}, {visits: 0}},
			visits:   10,
		}

		require.Equal(t, 1, node.pickChild(), "First unvisited child should win")
	})

	t.Run("expanding before selecting", func(t *testing.T) {
		root := NewNode(game.NewBoard(), game.PlayerA)
		root.visits = 1

		child := root.selectOrExpand()

		require.Len(t, root.children, 1, "Node should add a new child")
		move, _ := child.Move()
		require.Equal(t, game.Move(0), move, "Node should expand the next legal move")
		owner, ok := child.Board().CellAt(game.Coordinate{Row: 0, Col: 0})
		require.True(t, ok, "Child board should hold the new stone")
		require.Equal(t, game.PlayerA, owner, "Stone should belong to the parent's mover")
		_, ok = root.Board().CellAt(game.Coordinate{Row: 0, Col: 0})
		require.False(t, ok, "Parent board should not change")
	})

	t.Run("panicking without visits", func(t *testing.T) {
		node := &Node{children: []*Node{{}}}

		require.Panics(t, func() { node.pickChild() }, "Children without parent visits break an invariant")
	})
}

func TestNodeBestMove(t *testing.T) {
	t.Run("choosing the most visited child", func(t *testing.T) {
		node := &Node{children: []*Node{
			{move: 0, visits: 3, rewards: 3},
			{move: 1, visits: 7, rewards: 1},
			{move: 2, visits: 5, rewards: 5},
		}}

		require.Equal(t, game.Move(1), node.BestMove(), "Robust child should win over best win rate")
	})

	t.Run("keeping the lowest column on ties", func(t *testing.T) {
		node := &Node{children: []*Node{{move: 2, visits: 4}, {move: 5, visits: 4}}}

		require.Equal(t, game.Move(2), node.BestMove(), "Ties should keep the first child")
	})

	t.Run("panicking before expansion", func(t *testing.T) {
		node := NewNode(game.NewBoard(), game.PlayerA)

		require.Panics(t, func() { node.BestMove() }, "Best move needs children")
	})

	t.Run("finding an immediate win", func(t *testing.T) {
		// Player A holds columns 0-2 of the bottom row
		board := play(t, 0, 6, 1, 6, 2, 5)
		root := NewNode(board, game.PlayerA)
		rng := rand.New(rand.NewSource(17))

		for i := 0; i < 3000; i++ {
			root.Simulate(rng)
		}

		require.Equal(t, game.Move(3), root.BestMove(), "Search should complete the row")
	})
}

func TestNodeCommitMove(t *testing.T) {
	t.Run("keeping the statistics of an expanded child", func(t *testing.T) {
		root := NewNode(game.NewBoard(), game.PlayerA)
		rng := rand.New(rand.NewSource(23))
		for i := 0; i < 200; i++ {
			root.Simulate(rng)
		}
		expected := root.Children()[3]

		got, err := root.CommitMove(3)

		require.NoError(t, err)
		require.Same(t, expected, got, "Should return the existing subtree")
		require.Equal(t, expected.Visits(), got.Visits(), "Statistics should be preserved")
		require.Empty(t, root.Children(), "Siblings should be dropped")
	})

	t.Run("creating a fresh node for an unexpanded move", func(t *testing.T) {
		root := NewNode(game.NewBoard(), game.PlayerA)

		got, err := root.CommitMove(4)

		require.NoError(t, err)
		require.Zero(t, got.Visits(), "Fresh node should have no visits")
		require.Equal(t, game.PlayerB, got.Player(), "Turn should pass to the opponent")
		owner, ok := got.Board().CellAt(game.Coordinate{Row: 0, Col: 4})
		require.True(t, ok, "Fresh node should hold the committed stone")
		require.Equal(t, game.PlayerA, owner, "Stone should belong to the mover")
	})

	t.Run("rejecting illegal moves", func(t *testing.T) {
		root := NewNode(play(t, 0, 0, 0, 0, 0, 0), game.PlayerA)

		_, err := root.CommitMove(0)
		require.ErrorIs(t, err, game.ErrInvalidMove, "Full column should be rejected")
		_, err = root.CommitMove(game.Cols)
		require.ErrorIs(t, err, game.ErrInvalidMove, "Out of range column should be rejected")
	})

	t.Run("rejecting moves on a terminal node", func(t *testing.T) {
		root := NewNode(play(t, 0, 1, 0, 1, 0, 1, 0), game.PlayerB)

		_, err := root.CommitMove(2)

		require.ErrorIs(t, err, game.ErrGameOver, "Terminal node has no moves")
	})
}

func TestNodeString(t *testing.T) {
	t.Run("listing child statistics", func(t *testing.T) {
		root := NewNode(game.NewBoard(), game.PlayerA)
		rng := rand.New(rand.NewSource(29))
		root.Simulate(rng)
		root.Simulate(rng)

		got := root.String()

		require.Contains(t, got, "Player A to move, visits=2", "Should describe the root")
		require.Contains(t, got, "column 0: visits=1", "Should list the expanded child")
	})
}
