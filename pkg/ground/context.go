package ground

// Context is a fixed-length vector of optional Terms, addressed by the Var
// indices a compiled clause template uses. A nil slot means that variable
// is still unbound. Every Context also carries a back-pointer to the
// nearest enclosing tabled-predicate invocation (define), used by the
// ancestor walk in define.go to detect a recursive call back into the same
// tabled predicate.
type Context struct {
	slots  []Term
	define *defineProcess
}

// NewContext allocates a fresh Context of the given size, all slots unbound,
// with the given ancestor define back-pointer.
func NewContext(size int, define *defineProcess) *Context {
	return &Context{slots: make([]Term, size), define: define}
}

// ContextFromArgs builds a Context whose slots are initialized from args
// (copied, so later writes never alias the caller's slice), with the given
// ancestor define back-pointer. This is how evalCall, Define.execute, and the
// conjunction, disjunction, negation and clause-return steps turn an argument
// list into the context a database node is evaluated against.
func ContextFromArgs(args []Term, define *defineProcess) *Context {
	slots := append([]Term(nil), args...)
	return &Context{slots: slots, define: define}
}

// Get returns the current value of slot i, or nil if still unbound.
func (c *Context) Get(i int) Term { return c.slots[i] }

// Set binds slot i.
func (c *Context) Set(i int, t Term) { c.slots[i] = t }

// Len returns the number of slots.
func (c *Context) Len() int { return len(c.slots) }

// Args returns the slot values as a slice. Callers must treat it as
// read-only; the engine never mutates a Context's slots through a slice
// obtained this way once the context has been handed to a listener.
func (c *Context) Args() []Term { return c.slots }

// Define returns the nearest enclosing tabled-predicate invocation, or nil
// if this context was not created inside one.
func (c *Context) Define() *defineProcess { return c.define }

// snapshotArgs copies a context's current slot values, used when taking a
// tabling key: the key must be stable even though the context it was read
// from may still be written to afterwards by sibling conjunction branches.
func snapshotArgs(args []Term) []Term {
	return append([]Term(nil), args...)
}
