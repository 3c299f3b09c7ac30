package bridge

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"go.uber.org/goleak"

	"github.com/asynclet/go-asynclet/poll"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

type chanWaker struct{ ch chan struct{} }

func newChanWaker() *chanWaker { return &chanWaker{ch: make(chan struct{}, 1)} }

func (w *chanWaker) Wake() {
	select {
	case w.ch <- struct{}{}:
	default:
	}
}

func TestGoResolves(t *testing.T) {
	t.Parallel()
	task := Go(context.Background(), func(context.Context) (int, error) {
		return 7, nil
	})
	res, err := poll.Block[Result[int]](context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected driver error: %v", err)
	}
	if res.Err != nil || res.Value != 7 {
		t.Fatalf("task result: %+v", res)
	}
}

func TestGoPropagatesError(t *testing.T) {
	t.Parallel()
	boom := errors.New("boom")
	task := Go(context.Background(), func(context.Context) (int, error) {
		return 0, boom
	})
	res, err := poll.Block[Result[int]](context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected driver error: %v", err)
	}
	if !errors.Is(res.Err, boom) {
		t.Fatalf("task error: %v, want boom", res.Err)
	}
}

func TestCancelResolvesWithContextError(t *testing.T) {
	t.Parallel()
	task := Go(context.Background(), func(tctx context.Context) (int, error) {
		<-tctx.Done()
		return 0, tctx.Err()
	})
	task.Cancel()
	res, err := poll.Block[Result[int]](context.Background(), task)
	if err != nil {
		t.Fatalf("unexpected driver error: %v", err)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("task error: %v, want context.Canceled", res.Err)
	}
}

func TestPollArmsWaker(t *testing.T) {
	t.Parallel()
	gate := make(chan struct{})
	task := Go(context.Background(), func(context.Context) (int, error) {
		<-gate
		return 1, nil
	})
	w := newChanWaker()
	cx := poll.NewContext(context.Background(), w)
	if _, ok := task.Poll(cx); ok {
		t.Fatal("task resolved before its work finished")
	}

	close(gate)
	select {
	case <-w.ch:
	case <-time.After(time.Second):
		t.Fatal("completion did not wake the armed waker")
	}
	res, ok := task.Poll(cx)
	if !ok || res.Value != 1 {
		t.Fatalf("task state after wake: (%+v, %v)", res, ok)
	}
}

func TestPoolBoundsConcurrency(t *testing.T) {
	t.Parallel()
	p := NewPool(1)
	var running atomic.Int32
	var violated atomic.Bool
	fn := func(context.Context) (int, error) {
		if running.Add(1) > 1 {
			violated.Store(true)
		}
		defer running.Add(-1)
		time.Sleep(20 * time.Millisecond)
		return 0, nil
	}
	t1 := Run(p, context.Background(), fn)
	t2 := Run(p, context.Background(), fn)
	if _, err := poll.Block[Result[int]](context.Background(), t1); err != nil {
		t.Fatalf("unexpected driver error: %v", err)
	}
	if _, err := poll.Block[Result[int]](context.Background(), t2); err != nil {
		t.Fatalf("unexpected driver error: %v", err)
	}
	if violated.Load() {
		t.Fatal("pool admitted two functions at once")
	}
}

func TestRunCancelledWhileQueued(t *testing.T) {
	t.Parallel()
	p := NewPool(1)
	gate := make(chan struct{})
	started := make(chan struct{})
	t1 := Run(p, context.Background(), func(context.Context) (int, error) {
		close(started)
		<-gate
		return 1, nil
	})
	<-started

	t2 := Run(p, context.Background(), func(context.Context) (int, error) {
		return 2, nil
	})
	t2.Cancel()
	res, err := poll.Block[Result[int]](context.Background(), t2)
	if err != nil {
		t.Fatalf("unexpected driver error: %v", err)
	}
	if !errors.Is(res.Err, context.Canceled) {
		t.Fatalf("queued task error: %v, want context.Canceled", res.Err)
	}

	close(gate)
	if res, _ := poll.Block[Result[int]](context.Background(), t1); res.Value != 1 {
		t.Fatalf("running task result: %+v", res)
	}
}
