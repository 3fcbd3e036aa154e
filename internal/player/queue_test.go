package player

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestQueueFIFOOrder(t *testing.T) {
	q := NewQueue()
	q.Enqueue(Track{Title: "A"})
	q.Enqueue(Track{Title: "B"})
	q.Enqueue(Track{Title: "C"})

	ctx := context.Background()
	for _, want := range []string{"A", "B", "C"} {
		got, err := q.DequeueWait(ctx)
		if err != nil {
			t.Fatalf("DequeueWait: %v", err)
		}
		if got.Title != want {
			t.Errorf("got %q, want %q", got.Title, want)
		}
	}
	if !q.Empty() {
		t.Error("queue should be empty after draining")
	}
}

func TestQueueDequeueWaitBlocksUntilEnqueue(t *testing.T) {
	q := NewQueue()

	got := make(chan Track, 1)
	go func() {
		tr, err := q.DequeueWait(context.Background())
		if err != nil {
			t.Errorf("DequeueWait: %v", err)
		}
		got <- tr
	}()

	select {
	case tr := <-got:
		t.Fatalf("DequeueWait returned %q before anything was queued", tr.Title)
	case <-time.After(50 * time.Millisecond):
	}

	q.Enqueue(Track{Title: "late arrival"})

	select {
	case tr := <-got:
		if tr.Title != "late arrival" {
			t.Errorf("got %q, want %q", tr.Title, "late arrival")
		}
	case <-time.After(time.Second):
		t.Fatal("DequeueWait did not wake after Enqueue")
	}
}

func TestQueueCloseWakesWaiter(t *testing.T) {
	q := NewQueue()

	errCh := make(chan error, 1)
	go func() {
		_, err := q.DequeueWait(context.Background())
		errCh <- err
	}()

	time.Sleep(20 * time.Millisecond)
	q.Close()

	select {
	case err := <-errCh:
		if !errors.Is(err, ErrQueueClosed) {
			t.Errorf("got %v, want ErrQueueClosed", err)
		}
	case <-time.After(time.Second):
		t.Fatal("Close did not wake the waiter")
	}

	// Closed queue stays closed and discards further tracks.
	q.Close()
	q.Enqueue(Track{Title: "ghost"})
	if _, err := q.DequeueWait(context.Background()); !errors.Is(err, ErrQueueClosed) {
		t.Errorf("got %v, want ErrQueueClosed after close", err)
	}
}

func TestQueueDequeueWaitContextCancel(t *testing.T) {
	q := NewQueue()
	ctx, cancel := context.WithCancel(context.Background())

	errCh := make(chan error, 1)
	go func() {
		_, err := q.DequeueWait(ctx)
		errCh <- err
	}()

	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("got %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("cancel did not wake the waiter")
	}
}

func TestQueueRender(t *testing.T) {
	q := NewQueue()
	for _, title := range []string{"first", "second", "third"} {
		q.Enqueue(Track{Title: title})
	}

	lines, more := q.Render(10)
	if more != 0 {
		t.Errorf("more = %d, want 0", more)
	}
	want := []string{"1. first", "2. second", "3. third"}
	if len(lines) != len(want) {
		t.Fatalf("got %d lines, want %d", len(lines), len(want))
	}
	for i := range want {
		if lines[i] != want[i] {
			t.Errorf("line %d = %q, want %q", i, lines[i], want[i])
		}
	}

	lines, more = q.Render(2)
	if len(lines) != 2 || more != 1 {
		t.Errorf("Render(2) = %d lines, more=%d; want 2 lines, more=1", len(lines), more)
	}
}
