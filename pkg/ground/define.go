package ground

import "github.com/mitchellh/hashstructure/v2"

// defineKey identifies one tabled call: the DefineNode being invoked and a
// snapshot of the call arguments at the moment the key was taken (a
// snapshot, not a live reference, since sibling conjunction branches can
// still write into the calling context afterwards).
type defineKey struct {
	Node DBNodeID
	Args []string
}

func newDefineKey(node DBNodeID, args []Term) defineKey {
	rendered := make([]string, len(args))
	for i, a := range args {
		if a == nil {
			rendered[i] = ""
		} else {
			rendered[i] = a.String()
		}
	}
	return defineKey{Node: node, Args: rendered}
}

func (k defineKey) hash() uint64 {
	h, err := hashstructure.Hash(k, hashstructure.FormatV2, nil)
	if err != nil {
		return 0
	}
	return h
}

// defineTable is the engine-wide tabling store: one entry per distinct
// (define node, call-argument snapshot) pair seen so far, retained for the
// lifetime of a single Ground call (tabling requires every answer stay
// available for the rest of resolution; an eviction policy would silently
// break invariant 3 in SPEC_FULL.md §8).
type defineTable struct {
	buckets map[uint64][]*defineEntry
}

type defineEntry struct {
	key  defineKey
	proc *defineProcess
}

func newDefineTable() *defineTable {
	return &defineTable{buckets: make(map[uint64][]*defineEntry)}
}

func (t *defineTable) find(key defineKey) *defineProcess {
	for _, e := range t.buckets[key.hash()] {
		if keysEqual(e.key, key) {
			return e.proc
		}
	}
	return nil
}

func (t *defineTable) insert(key defineKey, proc *defineProcess) {
	h := key.hash()
	t.buckets[h] = append(t.buckets[h], &defineEntry{key: key, proc: proc})
}

func keysEqual(a, b defineKey) bool {
	if a.Node != b.Node || len(a.Args) != len(b.Args) {
		return false
	}
	for i := range a.Args {
		if a.Args[i] != b.Args[i] {
			return false
		}
	}
	return true
}

// resultRecord is one tabled answer: the result argument tuple and the
// ground node standing for its disjunction of proofs so far.
type resultRecord struct {
	args []Term
	node NodeID
}

// defineProcess is the tabling entry for one (DefineNode, call args) pair —
// ProcessDefine in the original engine this module grounds on. Its
// parentDefine pointer is fixed at creation to the calling context's own
// define field (the nearest enclosing tabled call at that moment), which is
// what the ancestor walk in evalDefine/newCycleChild follows to detect a
// recursive call back into the same tabled predicate (SPEC_FULL.md §4.6).
type defineProcess struct {
	engine       *Engine
	dbNode       DBNodeID
	node         *DefineNode
	args         []Term
	parentDefine *defineProcess

	listeners []Listener

	resultsList  []resultRecord
	resultIndex  map[string]int
	buffer       map[string][]NodeID
	bufferArgs   map[string][]Term
	bufferOrder  []string
	cyclic       bool
	isComplete   bool
	cycleChildren []*cycleChildProcess
}

func newDefineProcess(e *Engine, dbNode DBNodeID, node *DefineNode, args []Term, parent *defineProcess) *defineProcess {
	return &defineProcess{
		engine:       e,
		dbNode:       dbNode,
		node:         node,
		args:         args,
		parentDefine: parent,
		resultIndex:  make(map[string]int),
		buffer:       make(map[string][]NodeID),
		bufferArgs:   make(map[string][]Term),
	}
}

// hasAncestor reports whether anc appears in d's own parentDefine chain,
// starting at d itself (mirrors the original's ancestor walk, which begins
// with self and only then climbs .parent).
func (d *defineProcess) hasAncestor(anc *defineProcess) bool {
	for cur := d; cur != nil; cur = cur.parentDefine {
		if cur == anc {
			return true
		}
	}
	return false
}

// addListener attaches l, immediately replaying every result already known
// (in discovery order) and, if this Define has already completed, notifying
// l of that too.
func (d *defineProcess) addListener(l Listener) {
	d.listeners = append(d.listeners, l)
	for _, r := range d.resultsList {
		l.Result(r.args, r.node)
	}
	if d.isComplete {
		l.Complete()
	}
}

func (d *defineProcess) addCycleChild(c *cycleChildProcess) {
	d.cycleChildren = append(d.cycleChildren, c)
}

// setCyclic marks this Define cyclic, flushing its buffer eagerly the first
// time (a false-to-true transition only; re-marking is a no-op).
func (d *defineProcess) setCyclic() {
	if d.cyclic {
		return
	}
	d.cyclic = true
	d.engine.cfg.Logger.OnCycleDetected(d.node.Functor, d.node.Arity)
	d.flushBuffer(true)
}

// execute starts evaluating every matching clause/fact/choice, fanned into
// a counting join that reports to d itself, then force-completes every
// cycle-child relay discovered while doing so (SPEC_FULL.md §4.6, and the
// Open Question decision recorded in DESIGN.md: deferring this to d.Complete
// would deadlock, since the very clause branch that created a cycle relay
// cannot itself complete until the relay does).
func (d *defineProcess) execute() {
	children := d.node.FindMatching(d.args, d.engine.db)
	or := newProcessOr(len(children), d)
	for _, child := range children {
		ctx := ContextFromArgs(d.args, d)
		d.engine.eval(child, ctx, or)
	}
	for _, c := range d.cycleChildren {
		c.Complete()
	}
}

// Result implements Listener for the counting join in execute(): it
// dispatches to the buffered or unbuffered path depending on whether a
// cycle has been detected yet.
func (d *defineProcess) Result(args []Term, node NodeID) {
	if d.cyclic {
		d.resultUnbuffered(args, node)
	} else {
		d.resultBuffered(args, node)
	}
}

func (d *defineProcess) resultBuffered(args []Term, node NodeID) {
	key := canonicalKey(args)
	if _, ok := d.buffer[key]; !ok {
		d.bufferOrder = append(d.bufferOrder, key)
		d.bufferArgs[key] = args
	}
	d.buffer[key] = append(d.buffer[key], node)
}

func (d *defineProcess) resultUnbuffered(args []Term, node NodeID) {
	key := canonicalKey(args)
	if idx, ok := d.resultIndex[key]; ok {
		// A result already flushed as TrueID (AddOr absorbed a TRUE proof
		// instead of allocating a mutable or) absorbs any further disjunct.
		if existing := d.resultsList[idx].node; existing != TrueID {
			d.engine.gf.AddDisjunct(existing, node)
		}
		return
	}
	resultNode := d.engine.gf.AddOr([]NodeID{node}, false)
	d.resultIndex[key] = len(d.resultsList)
	d.resultsList = append(d.resultsList, resultRecord{args: args, node: resultNode})
	d.notifyResult(args, resultNode)
}

// Complete implements Listener for the counting join in execute(): the
// define's own fan-out has finished, so the buffer (if any results are
// still sitting in it — the non-cyclic path) is flushed read-only and every
// listener is notified complete, exactly once.
func (d *defineProcess) Complete() {
	d.flushBuffer(false)
	if d.isComplete {
		return
	}
	d.isComplete = true
	for _, l := range d.listeners {
		l.Complete()
	}
}

// flushBuffer promotes every buffered result bucket to a real result, in
// first-seen order. A single-node bucket is promoted as-is unless cycle
// forces every bucket through a mutable or node (so later cyclic
// AddDisjunct calls have somewhere to append); readonly is the negation of
// cycle, matching the original's exact flag computation.
func (d *defineProcess) flushBuffer(cycle bool) {
	for _, key := range d.bufferOrder {
		nodes := d.buffer[key]
		args := d.bufferArgs[key]
		var node NodeID
		if len(nodes) > 1 || cycle {
			node = d.engine.gf.AddOr(nodes, !cycle)
		} else {
			node = nodes[0]
		}
		d.resultIndex[key] = len(d.resultsList)
		d.resultsList = append(d.resultsList, resultRecord{args: args, node: node})
		d.notifyResult(args, node)
	}
	d.buffer = make(map[string][]NodeID)
	d.bufferArgs = make(map[string][]Term)
	d.bufferOrder = nil
}

func (d *defineProcess) notifyResult(args []Term, node NodeID) {
	for _, l := range d.listeners {
		l.Result(args, node)
	}
}

// cycleChildProcess is ProcessDefineCycle: a relay, registered as a listener
// on the cycle's target Define, that marks every Define between the calling
// context and the target cyclic, and forwards the target's results (past
// and future) to the original caller.
type cycleChildProcess struct {
	listener   Listener
	isComplete bool
}

// newCycleChild marks every Define from callerDefine up to (not including)
// target cyclic, marks target cyclic too, registers itself as both a
// cycle-child (for forced completion from target.execute) and an ordinary
// listener (for past/future result replay) on target, and returns the
// relay.
func newCycleChild(target *defineProcess, callerDefine *defineProcess, listener Listener) *cycleChildProcess {
	for cur := callerDefine; cur != target; cur = cur.parentDefine {
		cur.setCyclic()
	}
	target.setCyclic()
	c := &cycleChildProcess{listener: listener}
	target.addCycleChild(c)
	target.addListener(c)
	return c
}

func (c *cycleChildProcess) Result(args []Term, node NodeID) {
	c.listener.Result(args, node)
}

func (c *cycleChildProcess) Complete() {
	if c.isComplete {
		return
	}
	c.isComplete = true
	c.listener.Complete()
}

// evalDefine resolves a tabled call: an existing table entry is either
// joined directly (an unrelated concurrent call to the same tabled goal) or
// related to via a cycle relay (a recursive call back into an ancestor's
// own tabled invocation); a fresh entry starts a new Define and executes it
// (SPEC_FULL.md §4.6).
func (e *Engine) evalDefine(id DBNodeID, n *DefineNode, ctx *Context, parent Listener) {
	key := newDefineKey(id, snapshotArgs(ctx.Args()))
	if existing := e.defines.find(key); existing != nil {
		callerDefine := ctx.Define()
		if callerDefine != nil && callerDefine.hasAncestor(existing) {
			newCycleChild(existing, callerDefine, parent)
		} else {
			existing.addListener(parent)
		}
		return
	}
	d := newDefineProcess(e, id, n, snapshotArgs(ctx.Args()), ctx.Define())
	e.defines.insert(key, d)
	d.addListener(parent)
	d.execute()
}
