package repokit

import (
	"context"
	"errors"
	"reflect"
	"testing"

	"vindex/internal/platform/store"
)

// recordingQueryer counts calls and records the last statement
type recordingQueryer struct {
	execCalls int
	queryCall int
	rowCalls  int

	lastSQL  string
	lastArgs []any
}

func (f *recordingQueryer) note(sql string, args []any) {
	f.lastSQL = sql
	f.lastArgs = append([]any(nil), args...)
}

func (f *recordingQueryer) Exec(ctx context.Context, sql string, args ...any) (store.CommandTag, error) {
	f.execCalls++
	f.note(sql, args)
	var zero store.CommandTag
	return zero, nil
}

func (f *recordingQueryer) Query(ctx context.Context, sql string, args ...any) (store.Rows, error) {
	f.queryCall++
	f.note(sql, args)
	var zero store.Rows
	return zero, nil
}

func (f *recordingQueryer) QueryRow(ctx context.Context, sql string, args ...any) store.Row {
	f.rowCalls++
	f.note(sql, args)
	var zero store.Row
	return zero
}

// recordingRunner is a TxRunner whose Tx hands out the embedded Queryer
type recordingRunner struct {
	recordingQueryer
	q       *recordingQueryer
	txCalls int
}

func (f *recordingRunner) Tx(ctx context.Context, fn func(q Queryer) error) error {
	f.txCalls++
	return fn(f.q)
}

func TestWithBeginHooks_RunInOrderBeforeFn(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := &recordingQueryer{}
	inner := &recordingRunner{q: q}

	var seq []string
	mkHook := func(name string) BeginHook {
		return func(ctx context.Context, gotQ Queryer) error {
			if gotQ != q {
				t.Fatalf("hook received a different Queryer instance")
			}
			seq = append(seq, name)
			return nil
		}
	}

	runner := WithBeginHooks(inner, mkHook("timeout"), mkHook("role"))

	err := runner.Tx(ctx, func(gotQ Queryer) error {
		if gotQ != q {
			t.Fatalf("fn received a different Queryer instance")
		}
		seq = append(seq, "fn")
		return nil
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if want := []string{"timeout", "role", "fn"}; !reflect.DeepEqual(seq, want) {
		t.Fatalf("sequence mismatch want=%v got=%v", want, seq)
	}
	if inner.txCalls != 1 {
		t.Fatalf("inner Tx should be called once")
	}
}

func TestWithBeginHooks_HookErrorShortCircuits(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	q := &recordingQueryer{}
	inner := &recordingRunner{q: q}

	hookErr := errors.New("set_config failed")
	var fnRan bool

	first := func(ctx context.Context, gotQ Queryer) error { return hookErr }
	second := func(ctx context.Context, gotQ Queryer) error {
		t.Fatalf("second hook should not run when first fails")
		return nil
	}

	r := WithBeginHooks(inner, first, second)
	err := r.Tx(ctx, func(q Queryer) error { fnRan = true; return nil })

	if !errors.Is(err, hookErr) {
		t.Fatalf("expected hook error to propagate, got %v", err)
	}
	if fnRan {
		t.Fatalf("fn should not run when a hook fails")
	}
}

func TestWithBeginHooks_DelegatesOutsideTx(t *testing.T) {
	t.Parallel()

	ctx := context.Background()
	inner := &recordingRunner{q: &recordingQueryer{}}
	r := WithBeginHooks(inner) // delegation needs no hooks

	const upsert = "insert into vin_cache (vin, payload) values ($1, $2)"
	if _, err := r.Exec(ctx, upsert, "1HGCM82633A004352", []byte("{}")); err != nil {
		t.Fatalf("Exec returned error: %v", err)
	}
	if inner.execCalls != 1 || inner.lastSQL != upsert {
		t.Fatalf("Exec did not delegate correctly")
	}
	if !reflect.DeepEqual(inner.lastArgs, []any{"1HGCM82633A004352", []byte("{}")}) {
		t.Fatalf("Exec args not recorded: %#v", inner.lastArgs)
	}

	const sel = "select payload from vin_cache where vin=$1"
	if _, err := r.Query(ctx, sel, "5YJ3E1EA7KF317000"); err != nil {
		t.Fatalf("Query returned error: %v", err)
	}
	if inner.queryCall != 1 || inner.lastSQL != sel {
		t.Fatalf("Query did not delegate correctly")
	}

	const count = "select count(*) from vin_cache"
	_ = r.QueryRow(ctx, count)
	if inner.rowCalls != 1 || inner.lastSQL != count {
		t.Fatalf("QueryRow did not delegate correctly")
	}
}
