package searcher

import (
	"connect4/experiments/metrics"
	"connect4/game"
	"fmt"
	"math"
	"slices"
	"strings"
)

const noMove game.Move = -1

// Node is a position in the search tree. It owns its children; nothing
// points back up. Children are materialized in legal-move order, one per
// expansion step, so a node only holds children that were visited at least
// once or are about to be.
type Node struct {
	board    game.Board
	player   game.Player // Player to move
	move     game.Move   // Move from the parent, noMove at the root
	moves    []game.Move // Legal moves, none when terminal
	children []*Node
	rewards  float64
	visits   int
}

// NewNode returns a root node for player to move on board.
func NewNode(board game.Board, player game.Player) *Node {
	if player == game.None {
		panic("root node needs a player to move")
	}
	return newNode(board, player, noMove)
}

func newNode(board game.Board, player game.Player, move game.Move) *Node {
	var moves []game.Move
	if !board.State().Terminal() {
		moves = board.LegalMoves()
	}

	return &Node{
		board:    board,
		player:   player,
		move:     move,
		moves:    moves,
		children: make([]*Node, 0, len(moves)),
	}
}

// Simulate runs one selection, expansion, rollout and backup pass from this
// node and returns the game result it propagated.
func (n *Node) Simulate(rng game.Rand) game.Result {
	return n.simulate(rng, metrics.NewDummyCollector())
}

func (n *Node) simulate(rng game.Rand, collector metrics.Collector) game.Result {
	var result game.Result

	switch {
	case n.board.State().Terminal(): // Known outcome
		result = n.board.State()
		collector.AddTerminal()
	case n.visits == 0: // Unexpanded leaf
		result = n.board.Rollout(n.player, rng)
		collector.AddRollout()
	default:
		result = n.selectOrExpand().simulate(rng, collector)
	}

	n.backup(result)
	return result
}

// selectOrExpand adds the next unexplored child, or picks the child with the
// maximum UCT score once every move has been expanded.
func (n *Node) selectOrExpand() *Node {
	if len(n.moves) > len(n.children) { // Expandable node
		return n.addChild()
	}

	// Fully expanded node
	return n.children[n.pickChild()]
}

func (n *Node) addChild() *Node {
	move := n.moves[len(n.children)]
	child := n.play(move)
	n.children = append(n.children, child)
	return child
}

// play returns a fresh child for move on a copy of the board.
func (n *Node) play(move game.Move) *Node {
	board := n.board
	if _, err := board.Apply(n.player, move); err != nil {
		panic(fmt.Sprintf("legal move %d could not be applied: %v", move, err))
	}
	return newNode(board, n.player.Opponent(), move)
}

func (n *Node) pickChild() int {
	if n.visits == 0 {
		panic("node has children but no visits")
	}

	policy := newUCT(CSquared, float64(n.visits))

	// Ties keep the first child
	maxIndex := -1
	maxScore := math.Inf(-1)
	for i, child := range n.children {
		score := policy.evaluate(child.rewards, float64(child.visits))
		if score > maxScore {
			maxScore = score
			maxIndex = i
		}
	}
	return maxIndex
}

func (n *Node) backup(result game.Result) {
	n.rewards += n.reward(result)
	n.visits++
}

// reward credits a win to the player who moved into this node, which is the
// opponent of the player to move here. Draws and losses earn nothing.
func (n *Node) reward(result game.Result) float64 {
	if winner, ok := result.Winner(); ok && winner != n.player {
		return Win
	}
	return Loss
}

// BestMove returns the move of the most visited child. Ties keep the lowest
// column. Panics when the node has not been expanded.
func (n *Node) BestMove() game.Move {
	if len(n.children) == 0 {
		panic("node has no children")
	}

	best := n.children[0]
	for _, child := range n.children[1:] {
		if child.visits > best.visits {
			best = child
		}
	}
	return best.move
}

// CommitMove descends into the subtree of move, keeping its statistics, and
// drops every sibling. A legal move that was never expanded starts a fresh
// node. The receiver must not be used afterwards.
func (n *Node) CommitMove(move game.Move) (*Node, error) {
	if n.board.State().Terminal() {
		return nil, fmt.Errorf("%w: cannot commit column %d", game.ErrGameOver, move)
	}
	if !slices.Contains(n.moves, move) {
		return nil, fmt.Errorf("%w: column %d is not legal", game.ErrInvalidMove, move)
	}

	children := n.children
	n.children = nil
	for _, child := range children {
		if child.move == move {
			return child, nil
		}
	}
	return n.play(move), nil
}

func (n *Node) Board() game.Board {
	return n.board
}

func (n *Node) Player() game.Player {
	return n.player
}

// Move returns the move that produced this node, false at the root.
func (n *Node) Move() (game.Move, bool) {
	return n.move, n.move != noMove
}

func (n *Node) Terminal() bool {
	return n.board.State().Terminal()
}

func (n *Node) Visits() int {
	return n.visits
}

// WinRate is the fraction of simulations through this node won by the player
// who moved into it. Zero before the first visit.
func (n *Node) WinRate() float64 {
	if n.visits == 0 {
		return 0
	}
	return n.rewards / float64(n.visits)
}

func (n *Node) Children() []*Node {
	return slices.Clone(n.children)
}

// Policy maps every expanded move to its visit count.
func (n *Node) Policy() map[game.Move]int {
	policy := make(map[game.Move]int, len(n.children))
	for _, child := range n.children {
		policy[child.move] = child.visits
	}
	return policy
}

func (n *Node) String() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s to move, visits=%d\n", n.player, n.visits)
	for _, child := range n.children {
		score := math.Inf(1)
		if n.visits > 0 {
			score = newUCT(CSquared, float64(n.visits)).evaluate(child.rewards, float64(child.visits))
		}
		fmt.Fprintf(&sb, "column %d: visits=%d winRate=%.3f uct=%.3f\n", child.move, child.visits, child.WinRate(), score)
	}
	return sb.String()
}
