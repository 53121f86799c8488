// Package dag wires node.Node values and the precedence/channel edges
// between them into a runnable job graph, and implements the engine's
// execution loop: cycle detection, conditional-node block partitioning,
// cooperative one-goroutine-per-node scheduling, and panic confinement.
package dag

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/dagrs-dev/dagrs/channel"
	"github.com/dagrs-dev/dagrs/content"
	"github.com/dagrs-dev/dagrs/dlog"
	"github.com/dagrs-dev/dagrs/env"
	"github.com/dagrs-dev/dagrs/id"
	"github.com/dagrs-dev/dagrs/node"
)

// defaultCapacity is the bounded channel capacity Graph uses when wiring
// edges, matching the channel package's own default.
const defaultCapacity = 32

// Graph is a mutable-then-runnable collection of nodes and the edges
// between them. Build it with New, AddNode and AddEdge, then Start it.
// A Graph starts active; Start consumes that activeness, and Reset
// restores it for another run with fresh per-node state.
type Graph struct {
	mu sync.Mutex

	nodes   map[id.NodeID]node.Node
	order   []id.NodeID
	succ    map[id.NodeID][]id.NodeID
	inDeg   map[id.NodeID]int
	preds   map[id.NodeID][]id.NodeID
	edges   map[id.NodeID]*channel.ProducerEdges
	states  map[id.NodeID]*node.ExecState
	active  bool

	env    *env.EnvVar
	logger dlog.Logger
}

// New returns an empty, active Graph ready to accept nodes and edges.
func New() *Graph {
	return &Graph{
		nodes:  make(map[id.NodeID]node.Node),
		succ:   make(map[id.NodeID][]id.NodeID),
		inDeg:  make(map[id.NodeID]int),
		preds:  make(map[id.NodeID][]id.NodeID),
		edges:  make(map[id.NodeID]*channel.ProducerEdges),
		states: make(map[id.NodeID]*node.ExecState),
		active: true,
		env:    env.New(),
		logger: dlog.Default(),
	}
}

// SetEnv replaces the EnvVar the graph hands to every node's Run. It must
// be called before Start.
func (g *Graph) SetEnv(e *env.EnvVar) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.env = e
}

// Env returns the EnvVar the graph will hand to nodes.
func (g *Graph) Env() *env.EnvVar {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.env
}

// SetLogger replaces the graph's logger. It must be called before Start.
func (g *Graph) SetLogger(l dlog.Logger) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if l != nil {
		g.logger = l
	}
}

// AddNode registers n with the graph. It is an error to register the
// same id twice.
func (g *Graph) AddNode(n node.Node) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	nid := n.ID()
	if _, exists := g.nodes[nid]; exists {
		return fmt.Errorf("dag: node %d already registered", nid)
	}
	g.nodes[nid] = n
	g.order = append(g.order, nid)
	g.edges[nid] = &channel.ProducerEdges{}
	g.states[nid] = node.NewExecState()
	return nil
}

// AddEdge wires a precedence-and-channel edge from one node to another.
// The first consumer registered for a given producer gets a dedicated
// FIFO; a second (or later) consumer forces the atomic FIFO-to-broadcast
// upgrade described in the channel package, and AddEdge re-points the
// earlier consumer's endpoints accordingly.
func (g *Graph) AddEdge(from, to id.NodeID) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if from == to {
		return ErrSelfLoop
	}
	fromNode, ok := g.nodes[from]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, from)
	}
	toNode, ok := g.nodes[to]
	if !ok {
		return fmt.Errorf("%w: %d", ErrNodeNotFound, to)
	}

	pe := g.edges[from]
	sender, receiver, upgrade := pe.AddConsumer(to, defaultCapacity)
	fromNode.OutChannels().Register(to, sender)
	toNode.InChannels().Register(from, receiver)
	if upgrade != nil {
		fromNode.OutChannels().Register(upgrade.Peer, upgrade.NewSender)
		if prevNode, ok := g.nodes[upgrade.Peer]; ok {
			prevNode.InChannels().Register(from, upgrade.NewReceiver)
		}
	}

	g.succ[from] = append(g.succ[from], to)
	g.preds[to] = append(g.preds[to], from)
	g.inDeg[to]++
	return nil
}

// Reset clears every node's prior-run ExecState and restores the graph
// to active, so it can Start again. Registered nodes and edges are kept;
// since a run closes each node's out-channels, every edge is wired again
// with fresh channels.
func (g *Graph) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	for nid := range g.states {
		g.states[nid] = node.NewExecState()
	}
	for _, from := range g.order {
		pe := &channel.ProducerEdges{}
		g.edges[from] = pe
		fromNode := g.nodes[from]
		for _, to := range g.succ[from] {
			sender, receiver, upgrade := pe.AddConsumer(to, defaultCapacity)
			fromNode.OutChannels().Register(to, sender)
			g.nodes[to].InChannels().Register(from, receiver)
			if upgrade != nil {
				fromNode.OutChannels().Register(upgrade.Peer, upgrade.NewSender)
				g.nodes[upgrade.Peer].InChannels().Register(from, upgrade.NewReceiver)
			}
		}
	}
	g.active = true
}

// Outputs returns a snapshot of every node's recorded Output, keyed by
// id, for nodes that have completed (pending nodes — e.g. those in a
// block aborted by a conditional short-circuit — are omitted).
func (g *Graph) Outputs() map[id.NodeID]node.Output {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make(map[id.NodeID]node.Output, len(g.states))
	for nid, st := range g.states {
		if o, ok := st.Output(); ok {
			out[nid] = o
		}
	}
	return out
}

// Results extracts and type-checks every completed node's success
// payload as T, skipping nodes that failed, are still pending, or whose
// payload is not a T.
func Results[T any](g *Graph) map[id.NodeID]T {
	out := make(map[id.NodeID]T)
	for nid, o := range g.Outputs() {
		if !o.IsSuccess() {
			continue
		}
		if v, ok := content.Get[T](o.Payload()); ok {
			out[nid] = v
		}
	}
	return out
}

// validate runs Kahn's algorithm over the registered nodes and edges,
// partitioning the topological order into blocks at every conditional
// node boundary (a new block opens immediately after a conditional node
// is popped). A graph with no conditional nodes at all yields exactly
// one block. It returns ErrGraphLoopDetected if not every node can be
// ordered.
func (g *Graph) validate() ([][]id.NodeID, error) {
	inDeg := make(map[id.NodeID]int, len(g.inDeg))
	for nid, n := range g.inDeg {
		inDeg[nid] = n
	}

	var queue []id.NodeID
	for _, nid := range g.order {
		if inDeg[nid] == 0 {
			queue = append(queue, nid)
		}
	}
	sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })

	var blocks [][]id.NodeID
	var current []id.NodeID
	visited := 0

	for len(queue) > 0 {
		sort.Slice(queue, func(i, j int) bool { return queue[i] < queue[j] })
		popped := queue[0]
		queue = queue[1:]
		visited++
		current = append(current, popped)

		for _, s := range g.succ[popped] {
			inDeg[s]--
			if inDeg[s] == 0 {
				queue = append(queue, s)
			}
		}

		if g.nodes[popped].IsConditional() {
			blocks = append(blocks, current)
			current = nil
		}
	}
	if len(current) > 0 {
		blocks = append(blocks, current)
	}
	if visited < len(g.nodes) {
		return nil, ErrGraphLoopDetected
	}
	return blocks, nil
}

// Start runs every registered node to completion, one goroutine per
// node, in topological blocks separated at conditional-node boundaries.
// Within a block every node launches concurrently; a node waits for all
// of its direct predecessors to complete (via ExecState's completion
// signal) before its Action runs, which also guarantees any message the
// predecessor sent on a shared channel is already enqueued. If any
// conditional node in a block resolves false, no further block is
// launched — its nodes' ExecStates remain Pending. Start returns nil, a
// single error, or *MultipleErrors if more than one node failed.
func (g *Graph) Start(ctx context.Context) error {
	return g.run(ctx, 0)
}

// StartWithPool behaves like Start but caps the number of node tasks
// running their Action concurrently to size. size <= 0 fails fast with
// ErrRuntimeCreationFailed rather than deadlocking a zero-capacity pool.
func (g *Graph) StartWithPool(ctx context.Context, size int) error {
	if size <= 0 {
		return ErrRuntimeCreationFailed
	}
	return g.run(ctx, size)
}

func (g *Graph) run(ctx context.Context, poolSize int) error {
	g.mu.Lock()
	if !g.active {
		g.mu.Unlock()
		return ErrGraphNotActive
	}
	blocks, err := g.validate()
	if err != nil {
		g.active = false
		g.mu.Unlock()
		return err
	}
	g.active = false
	logger := g.logger
	e := g.env
	g.mu.Unlock()

	e.Freeze()

	var sem chan struct{}
	if poolSize > 0 {
		sem = make(chan struct{}, poolSize)
	}

	var conditionOK atomic.Bool
	conditionOK.Store(true)

	var errsMu sync.Mutex
	var errs []error

	for _, block := range blocks {
		if !conditionOK.Load() {
			logger.Info("dag: aborting remaining blocks, conditional node returned false")
			break
		}

		var wg sync.WaitGroup
		for _, nid := range block {
			wg.Add(1)
			go func(nid id.NodeID) {
				defer wg.Done()
				g.runNode(ctx, nid, sem, &conditionOK, logger, &errsMu, &errs)
			}(nid)
		}
		wg.Wait()
	}

	return combineErrors(errs)
}

func (g *Graph) runNode(ctx context.Context, nid id.NodeID, sem chan struct{}, conditionOK *atomic.Bool, logger dlog.Logger, errsMu *sync.Mutex, errs *[]error) {
	g.mu.Lock()
	n := g.nodes[nid]
	preds := g.preds[nid]
	st := g.states[nid]
	e := g.env
	g.mu.Unlock()

	for _, p := range preds {
		g.states[p].WaitForCompletion(ctx.Done())
	}
	if ctx.Err() != nil {
		return
	}

	if sem != nil {
		select {
		case sem <- struct{}{}:
			defer func() { <-sem }()
		case <-ctx.Done():
			return
		}
	}

	var out node.Output
	panicVal, panicked := func() (v any, panicked bool) {
		defer func() {
			if r := recover(); r != nil {
				v, panicked = r, true
			}
		}()
		out = n.Run(ctx, e)
		return nil, false
	}()

	n.OutChannels().CloseAll()

	if panicked {
		out = node.Err(node.Panicked, content.New(fmt.Sprint(panicVal)))
		st.SetOutput(out)
		logger.Error("node %q (%d) panicked: %v", n.Name(), nid, panicVal)
		errsMu.Lock()
		*errs = append(*errs, &PanicOccurredError{Node: nid, Name: n.Name(), Value: panicVal})
		errsMu.Unlock()
		return
	}

	st.SetOutput(out)

	if !out.IsSuccess() {
		logger.Error("node %q (%d) failed", n.Name(), nid)
		errsMu.Lock()
		*errs = append(*errs, &ExecutionFailedError{Node: nid, Name: n.Name()})
		errsMu.Unlock()
		return
	}

	if out.IsCondition() && !out.Condition() {
		conditionOK.Store(false)
	}
}
