package lbengine

import (
	"context"

	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
)

// HandlerPlan describes how a handler's guard evaluates against the current
// flags.
type HandlerPlan struct {
	Handler lbreactive.Handler
	Result  lbreactive.GuardResult
}

// Plan describes which handlers would run if an invocation started now.
type Plan struct {
	Flags    lbflag.Set
	Handlers []HandlerPlan
}

// Plan evaluates every handler's guard against the persisted flags and the
// current external facts without running anything.
//
// Only the first pass is described. Handlers that would become eligible
// after earlier handlers succeed are reported as not eligible.
func (c Controller) Plan(ctx context.Context) (Plan, error) {
	if err := c.table.Validate(); err != nil {
		return Plan{}, err
	}

	state, err := c.load(ctx)
	if err != nil {
		return Plan{}, err
	}

	plan := Plan{Flags: state.flags}
	for _, handler := range c.table {
		plan.Handlers = append(plan.Handlers, HandlerPlan{
			Handler: handler,
			Result:  handler.Guard.Evaluate(state.flags),
		})
	}
	return plan, nil
}
