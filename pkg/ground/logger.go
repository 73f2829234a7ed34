package ground

import hclog "github.com/hashicorp/go-hclog"

// EngineLogger is the engine-scoped collaborator that observes predicate
// entry/exit and cycle detection. It plays the role the original engine's
// global EngineLogger/SimpleEngineLogger singleton played, deliberately
// rescoped to one instance per Engine rather than a package-level global —
// the teacher's own slg_engine.go flags exactly this global-singleton shape
// (GlobalEngine/SetGlobalEngine) as a pattern worth avoiding, for the same
// reason: a global makes it impossible to run two engines with independent
// logging in the same process. The interactive step/trace debugger the
// original engine builds on top of this hook point remains out of scope;
// only the no-op-by-default observation hook is carried forward.
type EngineLogger interface {
	OnEnterCall(query Term)
	OnExitCall(query Term)
	OnCycleDetected(functor string, arity int)
}

type nullLogger struct{}

func (nullLogger) OnEnterCall(Term)            {}
func (nullLogger) OnExitCall(Term)             {}
func (nullLogger) OnCycleDetected(string, int) {}

// NewNullLogger returns the no-op EngineLogger used by DefaultConfig.
func NewNullLogger() EngineLogger { return nullLogger{} }

// hclogAdapter backs EngineLogger with an hclog.Logger, for callers who
// want predicate-entry/exit/cycle events folded into their own structured
// log stream rather than silently discarded.
type hclogAdapter struct {
	log hclog.Logger
}

// NewHCLogAdapter wraps an hclog.Logger as an EngineLogger. A nil logger
// argument gets hclog's own default logger.
func NewHCLogAdapter(log hclog.Logger) EngineLogger {
	if log == nil {
		log = hclog.Default()
	}
	return &hclogAdapter{log: log}
}

func (a *hclogAdapter) OnEnterCall(query Term) {
	a.log.Trace("enter call", "query", query.String())
}

func (a *hclogAdapter) OnExitCall(query Term) {
	a.log.Trace("exit call", "query", query.String())
}

func (a *hclogAdapter) OnCycleDetected(functor string, arity int) {
	a.log.Debug("cycle detected", "functor", functor, "arity", arity)
}
