package lbengine

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/leafbridge/leafbridge-hello/lbflag"
	"github.com/leafbridge/leafbridge-hello/lbhelloevent"
	"github.com/leafbridge/leafbridge-hello/lbreactive"
)

// Body performs the work of a handler. It returns an error if any of its
// actions failed, in which case none of the handler's flags are set.
type Body func(ctx context.Context, h *HandlerEngine) error

// BodyMap maps handler IDs to the bodies that implement them.
type BodyMap map[lbreactive.HandlerID]Body

// Controller evaluates a table of guarded handlers against persisted flag
// state. It is responsible for a single invocation at a time; invocations
// must not overlap.
type Controller struct {
	table  lbreactive.Table
	bodies BodyMap
	opts   Options
}

// NewController returns a controller for the given handler table and
// bodies.
func NewController(table lbreactive.Table, bodies BodyMap, opts Options) Controller {
	opts.Tools = opts.Tools.withDefaults()
	return Controller{
		table:  table,
		bodies: bodies,
		opts:   opts,
	}
}

// NewHelloController returns a controller for the hello application.
func NewHelloController(opts Options) Controller {
	return NewController(lbreactive.HelloTable(), HelloBodies(), opts)
}

// Validate returns an error if the controller is not able to run.
func (c Controller) Validate() error {
	if err := c.table.Validate(); err != nil {
		return err
	}
	for _, h := range c.table {
		if c.bodies[h.ID] == nil {
			return fmt.Errorf("the \"%s\" handler has no implementation", h.ID)
		}
	}
	if err := c.opts.Behavior.OnError.Validate(); err != nil {
		return err
	}
	if c.opts.Store == nil {
		return errors.New("the controller has no flag store")
	}
	if c.opts.Runner == nil {
		return errors.New("the controller has no command runner")
	}
	if c.opts.Renderer == nil {
		return errors.New("the controller has no template renderer")
	}
	return nil
}

// Run performs one invocation.
//
// Work handlers are evaluated in declaration order against a snapshot of the
// flags taken at the start of each pass. A handler that succeeds sets its
// flags, which are saved before the next handler runs. A handler that fails
// sets nothing, and the next invocation retries it. Reporter handlers are
// evaluated last, against the flags the invocation leaves behind.
func (c Controller) Run(ctx context.Context) (Summary, error) {
	if err := c.Validate(); err != nil {
		return Summary{}, err
	}

	state, err := c.load(ctx)
	if err != nil {
		return Summary{}, err
	}

	c.opts.Events.Record(lbhelloevent.InvocationStarted{
		Invocation: state.invocation,
		Flags:      state.flags.Sorted(),
	})

	started := time.Now()
	passes, err := c.invoke(ctx, state)
	stopped := time.Now()

	c.opts.Events.Record(lbhelloevent.InvocationStopped{
		Invocation: state.invocation,
		Passes:     passes,
		Ran:        state.ran,
		Flags:      state.flags.Sorted(),
		Started:    started,
		Stopped:    stopped,
		Err:        err,
	})

	return Summary{
		Invocation: state.invocation,
		Passes:     passes,
		Ran:        state.ran,
		Flags:      state.flags,
	}, err
}

// load prepares the state for an invocation by loading persisted flags and
// evaluating external facts.
func (c Controller) load(ctx context.Context) (*engineState, error) {
	if c.opts.Store == nil {
		return nil, errors.New("the controller has no flag store")
	}

	flags, err := c.opts.Store.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to load flag state: %w", err)
	}

	state := &engineState{
		invocation: uuid.NewString(),
		flags:      flags,
	}

	if c.opts.Database != nil {
		endpoint, available, err := c.opts.Database.Endpoint(ctx)
		if err != nil {
			c.opts.Events.Record(lbhelloevent.FactEvaluated{
				Invocation: state.invocation,
				Flag:       lbflag.DatabaseAvailable,
				Err:        err,
			})
			return nil, fmt.Errorf("failed to determine whether the database is available: %w", err)
		}
		var detail string
		if available {
			state.flags.Add(lbflag.DatabaseAvailable)
			state.endpoint = endpoint
			detail = endpoint.Address()
		}
		c.opts.Events.Record(lbhelloevent.FactEvaluated{
			Invocation: state.invocation,
			Flag:       lbflag.DatabaseAvailable,
			Present:    available,
			Detail:     detail,
		})
	}

	return state, nil
}

// invoke runs evaluation passes until no work handler fires, a handler
// fails, or the pass limit is reached. It returns the number of passes.
func (c Controller) invoke(ctx context.Context, state *engineState) (passes int, err error) {
	var errs []error
	for pass := 1; pass <= c.opts.passes(); pass++ {
		passes = pass
		fired, passErrs, stop := c.pass(ctx, state, pass)
		errs = append(errs, passErrs...)
		if stop {
			return passes, errors.Join(errs...)
		}
		if fired == 0 || len(passErrs) > 0 {
			break
		}
	}

	// Reporters see the flags this invocation leaves behind.
	for _, handler := range c.table.Reporters() {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		result := handler.Guard.Evaluate(state.flags)
		if !result.Holds() {
			c.opts.Events.Record(lbhelloevent.HandlerSkipped{
				Invocation: state.invocation,
				Handler:    handler.ID,
				Result:     result,
			})
			continue
		}
		if err := c.runHandler(ctx, state, handler); err != nil {
			errs = append(errs, err)
		}
	}

	return passes, errors.Join(errs...)
}

// pass evaluates every work handler once against a snapshot of the flags.
// It returns the number of handlers that succeeded, any handler errors, and
// whether the invocation must stop.
func (c Controller) pass(ctx context.Context, state *engineState, pass int) (fired int, errs []error, stop bool) {
	snapshot := state.flags.Clone()

	c.opts.Events.Record(lbhelloevent.PassStarted{
		Invocation: state.invocation,
		Pass:       pass,
		Snapshot:   snapshot.Sorted(),
	})

	behavior := lbreactive.OverlayBehavior(lbreactive.Behavior{OnError: lbreactive.OnErrorStop}, c.opts.Behavior)

	for _, handler := range c.table.Work() {
		// Check for context cancellation.
		if err := ctx.Err(); err != nil {
			return fired, append(errs, err), true
		}

		result := handler.Guard.Evaluate(snapshot)
		if !result.Holds() {
			c.opts.Events.Record(lbhelloevent.HandlerSkipped{
				Invocation: state.invocation,
				Handler:    handler.ID,
				Result:     result,
			})
			continue
		}

		if err := c.runHandler(ctx, state, handler); err != nil {
			errs = append(errs, err)
			if behavior.OnError != lbreactive.OnErrorContinue || ctx.Err() != nil {
				return fired, errs, true
			}
			continue
		}
		fired++
	}

	return fired, errs, false
}

// runHandler runs a handler and, if it succeeds, sets and saves its flags.
func (c Controller) runHandler(ctx context.Context, state *engineState, handler lbreactive.Handler) error {
	he := HandlerEngine{
		invocation: state.invocation,
		handler:    handler,
		endpoint:   state.endpoint,
		opts:       c.opts,
	}

	err := he.invoke(ctx, c.bodies[handler.ID], func() error {
		if len(handler.Sets) == 0 {
			return nil
		}
		next := state.flags.Clone()
		next.Add(handler.Sets...)
		if err := c.opts.Store.Save(ctx, next); err != nil {
			return fmt.Errorf("failed to save flags %s: %w", handler.Sets, err)
		}
		state.flags = next
		c.opts.Events.Record(lbhelloevent.FlagsSaved{
			Invocation: state.invocation,
			Handler:    handler.ID,
			Flags:      next.Sorted(),
		})
		return nil
	})

	state.ran = append(state.ran, handler.ID)

	if err != nil {
		return lbreactive.HandlerError{ID: handler.ID, Label: handler.Label, Err: err}
	}
	return nil
}
