package ground

import (
	"github.com/mitchellh/hashstructure/v2"
)

// NodeID addresses a node in a GroundFormula. FalseID and TrueID are
// reserved sentinels that always exist; every other id is allocated by an
// Add* call, in strictly increasing order, and a node is never referenced
// as a child before its own allocation (SPEC_FULL.md §8, invariant 2).
type NodeID int

const (
	// FalseID is the deterministic-false sentinel. It also stands in for
	// "no proof exists" when naming a query with no solutions
	// (SPEC_FULL.md §4.2, §8 scenario 5).
	FalseID NodeID = 0
	// TrueID is the deterministic-true sentinel.
	TrueID NodeID = 1
)

// NodeKind distinguishes the kinds of node a GroundFormula holds: the const
// kind of the two sentinels, and the atom, and, or and not kinds.
type NodeKind int

const (
	KindConst NodeKind = iota // the FalseID/TrueID sentinels only
	KindAtom
	KindAnd
	KindOr
	KindNot
)

func (k NodeKind) String() string {
	switch k {
	case KindConst:
		return "const"
	case KindAtom:
		return "atom"
	case KindAnd:
		return "and"
	case KindOr:
		return "or"
	case KindNot:
		return "not"
	default:
		return "unknown"
	}
}

// GNode is one node of the ground DAG.
type GNode struct {
	Kind NodeKind

	// Atom fields.
	Key         interface{}
	Probability float64
	Group       interface{}

	// And/Or/Not fields. Not nodes store their single child at index 0.
	Children []NodeID

	// ReadOnly is meaningful only for Or nodes: a read-only Or is
	// structurally shared and frozen at construction; a mutable
	// (ReadOnly == false) Or can still grow via AddDisjunct and is never
	// looked up by content.
	ReadOnly bool
}

// NameEntry records one query-term naming (GroundFormula.AddName).
type NameEntry struct {
	Term  Term
	Node  NodeID
	Label string
}

// GroundFormula is the shared propositional DAG the engine builds up over
// the course of one Ground() call: atoms for probabilistic facts and
// annotated-disjunction choices, and/or/not nodes combining them, plus the
// set of named query results.
type GroundFormula struct {
	nodes []GNode

	atomCache map[uint64]NodeID
	andCache  map[uint64]NodeID
	orCache   map[uint64]NodeID

	names []NameEntry
}

// NewGroundFormula returns an empty formula with only the FalseID/TrueID
// sentinels allocated.
func NewGroundFormula() *GroundFormula {
	gf := &GroundFormula{
		nodes:     []GNode{{Kind: KindConst}, {Kind: KindConst}},
		atomCache: make(map[uint64]NodeID),
		andCache:  make(map[uint64]NodeID),
		orCache:   make(map[uint64]NodeID),
	}
	return gf
}

// Node returns the node stored at id. It panics on an out-of-range id,
// since that always indicates an internal bookkeeping bug rather than
// caller-reachable bad input.
func (g *GroundFormula) Node(id NodeID) GNode {
	return g.nodes[id]
}

// Len returns the number of allocated nodes, including the two sentinels.
func (g *GroundFormula) Len() int { return len(g.nodes) }

func (g *GroundFormula) alloc(n GNode) NodeID {
	id := NodeID(len(g.nodes))
	g.nodes = append(g.nodes, n)
	return id
}

func hashOf(v interface{}) uint64 {
	h, err := hashstructure.Hash(v, hashstructure.FormatV2, nil)
	if err != nil {
		// hashstructure only errors on unsupported types (channels,
		// funcs); atom keys and node-id slices never contain either, so
		// this is unreachable in practice. Fall back to a constant bucket
		// rather than panicking on a diagnostics path.
		return 0
	}
	return h
}

// AddAtom allocates an atom node for key/probability/group, or returns the
// id of an existing atom already registered under an equal key (mirroring
// database fact/choice identity: the same fact called twice tables to one
// node via Define long before AddAtom would see a duplicate key, but the
// cache makes that guarantee explicit rather than incidental). A
// deterministic probability (exactly 1 or exactly 0) never allocates an
// atom at all: it collapses straight to the TrueID/FalseID sentinels, so a
// certain fact behaves exactly like the boolean constant it is everywhere
// downstream (SPEC_FULL.md §3, §4.2).
func (g *GroundFormula) AddAtom(key interface{}, probability float64, group interface{}) NodeID {
	if probability == 1.0 {
		return TrueID
	}
	if probability == 0.0 {
		return FalseID
	}
	h := hashOf(key)
	if id, ok := g.atomCache[h]; ok {
		return id
	}
	id := g.alloc(GNode{Kind: KindAtom, Key: key, Probability: probability, Group: group})
	g.atomCache[h] = id
	return id
}

// AddAnd builds a conjunction node over children, applying absorption: a
// FALSE child collapses the whole node to FALSE, TRUE children are dropped,
// an empty or all-TRUE child list collapses to TRUE, and a single remaining
// child is returned as-is. Otherwise the node is identified by the sorted
// multiset of its children: two AddAnd calls with the same children, in any
// order, share one node.
func (g *GroundFormula) AddAnd(children []NodeID) NodeID {
	kept := make([]NodeID, 0, len(children))
	for _, c := range children {
		if c == FalseID {
			return FalseID
		}
		if c == TrueID {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return TrueID
	}
	if len(kept) == 1 {
		return kept[0]
	}
	sorted := sortedIDs(kept)
	h := hashOf(sorted)
	if id, ok := g.andCache[h]; ok {
		return id
	}
	id := g.alloc(GNode{Kind: KindAnd, Children: kept, ReadOnly: true})
	g.andCache[h] = id
	return id
}

// AddOr builds a disjunction node over children, applying the symmetric
// absorption rules of AddAnd (TRUE absorbs, FALSE is dropped, empty
// collapses to FALSE). When readonly is true the result is structurally
// shared like AddAnd; when readonly is false a fresh mutable node is always
// allocated (never looked up by content), since its child set can grow
// later via AddDisjunct.
func (g *GroundFormula) AddOr(children []NodeID, readonly bool) NodeID {
	kept := make([]NodeID, 0, len(children))
	for _, c := range children {
		if c == TrueID {
			return TrueID
		}
		if c == FalseID {
			continue
		}
		kept = append(kept, c)
	}
	if len(kept) == 0 {
		return FalseID
	}
	if readonly {
		if len(kept) == 1 {
			return kept[0]
		}
		sorted := sortedIDs(kept)
		h := hashOf(sorted)
		if id, ok := g.orCache[h]; ok {
			return id
		}
		id := g.alloc(GNode{Kind: KindOr, Children: kept, ReadOnly: true})
		g.orCache[h] = id
		return id
	}
	return g.alloc(GNode{Kind: KindOr, Children: kept, ReadOnly: false})
}

// AddDisjunct appends a new child to an existing mutable Or node in place.
// It is an internal-invariant violation (not a caller-facing error) to call
// this on a read-only node or a non-Or node, since only define.go ever
// constructs mutable Or nodes and only it ever appends to them.
func (g *GroundFormula) AddDisjunct(id NodeID, child NodeID) {
	n := &g.nodes[id]
	if n.Kind != KindOr || n.ReadOnly {
		panic("ground: AddDisjunct on a non-mutable-or node")
	}
	if child == TrueID {
		// A mutable or that gains a TRUE disjunct is still read as TRUE by
		// anything that later inspects it structurally; recording it keeps
		// the node's Children list an honest history rather than silently
		// reinterpreting the node as the TrueID sentinel (a mutable node
		// must keep its own identity for the listeners already holding its
		// NodeID).
		n.Children = append(n.Children, child)
		return
	}
	if child == FalseID {
		return
	}
	n.Children = append(n.Children, child)
}

// AddNot builds a negation node over child, mapping the TRUE/FALSE
// sentinels onto each other and otherwise allocating a fresh (uncached) not
// node. Double negation is not collapsed.
func (g *GroundFormula) AddNot(child NodeID) NodeID {
	switch child {
	case TrueID:
		return FalseID
	case FalseID:
		return TrueID
	default:
		return g.alloc(GNode{Kind: KindNot, Children: []NodeID{child}})
	}
}

// AddName records that term resolves to node, under label. Engine.Ground
// calls this with FalseID when a query term has no proof at all.
func (g *GroundFormula) AddName(term Term, node NodeID, label string) {
	g.names = append(g.names, NameEntry{Term: term, Node: node, Label: label})
}

// Names returns every recorded query-term naming, in the order AddName was
// called.
func (g *GroundFormula) Names() []NameEntry {
	return append([]NameEntry(nil), g.names...)
}
