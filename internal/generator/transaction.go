package generator

import (
	"context"
	"errors"
	"fmt"
)

// Transaction runs a set of operations, reverting the completed ones when
// a later one fails.
type Transaction struct {
	operations []Operation
	done       []Operation
	committed  bool
}

// Add stages an operation. It runs on Commit.
func (t *Transaction) Add(op Operation) {
	t.operations = append(t.operations, op)
}

// Commit executes every staged operation in order.
func (t *Transaction) Commit(ctx context.Context) error {
	if t.committed {
		return fmt.Errorf("transaction already committed")
	}

	for _, op := range t.operations {
		if err := ctx.Err(); err != nil {
			return errors.Join(err, t.revert())
		}
		if err := op.Execute(ctx); err != nil {
			return errors.Join(err, t.revert())
		}
		t.done = append(t.done, op)
	}

	t.committed = true
	return nil
}

func (t *Transaction) revert() error {
	var errs []error
	for i := len(t.done) - 1; i >= 0; i-- {
		if r, ok := t.done[i].(Reverter); ok {
			if err := r.Revert(); err != nil {
				errs = append(errs, fmt.Errorf("reverting %s: %w", t.done[i].Description(), err))
			}
		}
	}
	t.done = nil
	return errors.Join(errs...)
}
