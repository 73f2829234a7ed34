// Command groundlogic demonstrates the grounding engine end to end: a small
// probabilistic-facts database, an annotated disjunction, and a tabled
// recursive predicate, grounded in one pass and printed as named formula
// entries.
package main

import (
	"context"
	"fmt"

	hclog "github.com/hashicorp/go-hclog"

	"github.com/gitrdm/groundlogic/pkg/ground"
)

func main() {
	ctx := context.Background()

	fmt.Println("=== Grounding Engine Demo ===")
	fmt.Println()

	db := ground.NewMemoryDatabase()

	// Probabilistic facts: a small weighted graph.
	db.AddFact("edge", 0.9, ground.NewConstant("a"), ground.NewConstant("b"))
	db.AddFact("edge", 0.6, ground.NewConstant("b"), ground.NewConstant("c"))
	db.AddFact("edge", 0.3, ground.NewConstant("a"), ground.NewConstant("c"))

	// path(X, Y) :- edge(X, Y).
	// path(X, Y) :- edge(X, Z), path(Z, Y).
	db.AddClause("path", []ground.Term{ground.Var(0), ground.Var(1)},
		db.AddCall("edge", ground.Var(0), ground.Var(1)), 2)
	db.AddClause("path", []ground.Term{ground.Var(0), ground.Var(1)},
		db.AddConj(
			db.AddCall("edge", ground.Var(0), ground.Var(2)),
			db.AddCall("path", ground.Var(2), ground.Var(1)),
		), 3)

	// An annotated disjunction over a weather/1 outcome.
	db.AddChoiceGroup("weather", 1, "weather_group", []ground.Term{
		ground.NewConstant(0.7),
		ground.NewConstant(0.2),
		ground.NewConstant(0.1),
	})

	logger := ground.NewHCLogAdapter(hclog.New(&hclog.LoggerOptions{
		Name:  "groundlogic",
		Level: hclog.Warn,
	}))
	engine := ground.NewEngine(db, ground.Config{MaxDepth: 10_000, Logger: logger})

	queries := []ground.Term{
		ground.NewCompound("edge", ground.NewConstant("a"), ground.NewConstant("b")),
		ground.NewCompound("path", ground.NewConstant("a"), ground.NewConstant("c")),
	}
	labels := []string{"edge(a,b)", "path(a,c)"}

	formula, err := engine.Ground(ctx, queries, labels)
	if err != nil {
		fmt.Printf("grounding failed: %v\n", err)
		return
	}

	fmt.Printf("ground program has %d nodes\n\n", formula.Len())
	for _, name := range formula.Names() {
		fmt.Printf("%-12s -> node %d (%s)\n", name.Label, name.Node, formula.Node(name.Node).Kind)
	}
}
