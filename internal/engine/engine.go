package engine

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/roach88/tarql/internal/query"
	"github.com/roach88/tarql/internal/rdf"
	"github.com/roach88/tarql/internal/tabular"
)

// RowSource produces rows until io.EOF. Implemented by tabular.Reader.
type RowSource interface {
	Next() (tabular.Row, error)
}

// Binder converts a row into a query-variable binding.
// Implemented by tabular.BindingBuilder.
type Binder interface {
	Bind(row tabular.Row) map[string]rdf.Term
}

// Evaluator evaluates the fixed query against one row's binding.
// Implemented by query.Query; the engine treats evaluation as opaque.
type Evaluator interface {
	Evaluate(binding query.Binding) ([]rdf.Triple, error)
}

// Engine runs the row loop: bind, evaluate, accumulate, flush.
//
// INVARIANTS:
//   - Each row is fully processed before the next is read.
//   - The pending set never exceeds window + one row's evaluation result.
//   - A non-empty pending set is always flushed before Run returns nil.
type Engine struct {
	rows    RowSource
	binder  Binder
	eval    Evaluator
	emitter *Emitter
	window  int
	pending *pendingSet
}

// Option configures engine parameters.
type Option func(*Engine)

// WithDedupWindow sets the dedup window size. Zero (the default) flushes
// after every row that produced at least one pending triple. A positive
// window W flushes only once the pending set's size exceeds W; a set of
// exactly W triples keeps accumulating.
func WithDedupWindow(window int) Option {
	return func(e *Engine) {
		e.window = window
	}
}

// New creates an engine. The emitter owns the triple store and the output
// sink; the engine owns the pending set.
func New(rows RowSource, binder Binder, eval Evaluator, emitter *Emitter, opts ...Option) *Engine {
	e := &Engine{
		rows:    rows,
		binder:  binder,
		eval:    eval,
		emitter: emitter,
		pending: newPendingSet(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Run processes the row stream to exhaustion. Parse failures from the row
// source and evaluation failures abort the run; there is no row-level
// recovery. Cancellation is honored between rows, never mid-row.
func (e *Engine) Run(ctx context.Context) error {
	rowCount := 0
	flushCount := 0
	for {
		if err := ctx.Err(); err != nil {
			return err
		}
		row, err := e.rows.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return fmt.Errorf("reading input: %w", err)
		}
		rowCount++

		triples, err := e.eval.Evaluate(e.binder.Bind(row))
		if err != nil {
			return fmt.Errorf("evaluating query: %w", err)
		}
		e.pending.extend(triples)

		if e.pending.len() == 0 {
			continue
		}
		if e.window == 0 || e.pending.len() > e.window {
			if err := e.flush(); err != nil {
				return err
			}
			flushCount++
		}
	}

	// Terminal flush: a partially filled window must not be dropped.
	if e.pending.len() > 0 {
		if err := e.flush(); err != nil {
			return err
		}
		flushCount++
	}

	slog.Debug("conversion complete", "rows", rowCount, "flushes", flushCount)
	return nil
}

func (e *Engine) flush() error {
	triples := e.pending.drain()
	slog.Debug("flushing triples", "count", len(triples))
	return e.emitter.Emit(triples)
}
