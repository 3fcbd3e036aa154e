package player

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestRegistryGetOrCreateSharesSession(t *testing.T) {
	r := NewRegistry()

	var opens int32
	open := func() (*Session, error) {
		atomic.AddInt32(&opens, 1)
		return NewSession("guild-1", "channel-1", newFakeBackend(), nil), nil
	}

	const callers = 8
	sessions := make([]*Session, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			s, _, err := r.GetOrCreate("guild-1", open)
			if err != nil {
				t.Errorf("GetOrCreate: %v", err)
				return
			}
			sessions[i] = s
		}(i)
	}
	wg.Wait()

	if opens != 1 {
		t.Errorf("open ran %d times, want 1", opens)
	}
	for i := 1; i < callers; i++ {
		if sessions[i] != sessions[0] {
			t.Fatalf("caller %d got a different session", i)
		}
	}
}

func TestRegistryGuildsCreateIndependently(t *testing.T) {
	r := NewRegistry()

	entered := make(chan struct{})
	release := make(chan struct{})
	go func() {
		r.GetOrCreate("slow-guild", func() (*Session, error) {
			close(entered)
			<-release
			return NewSession("slow-guild", "channel-1", newFakeBackend(), nil), nil
		})
	}()
	<-entered

	// A stalled open for one guild must not block creation for another.
	done := make(chan struct{})
	go func() {
		defer close(done)
		_, created, err := r.GetOrCreate("other-guild", func() (*Session, error) {
			return NewSession("other-guild", "channel-2", newFakeBackend(), nil), nil
		})
		if err != nil || !created {
			t.Errorf("GetOrCreate(other-guild) = created=%v, err=%v", created, err)
		}
	}()

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("other guild's creation waited on the slow guild")
	}

	close(release)
	if _, ok := r.Get("other-guild"); !ok {
		t.Error("other guild's session missing")
	}
}

func TestRegistryGetOrCreateOpenError(t *testing.T) {
	r := NewRegistry()

	wantErr := errors.New("voice join failed")
	if _, _, err := r.GetOrCreate("guild-1", func() (*Session, error) {
		return nil, wantErr
	}); !errors.Is(err, wantErr) {
		t.Errorf("got %v, want %v", err, wantErr)
	}

	// A failed open must not leave a phantom entry behind.
	if _, ok := r.Get("guild-1"); ok {
		t.Error("failed open left a session in the registry")
	}
}

func TestRegistryRemove(t *testing.T) {
	r := NewRegistry()

	s, created, err := r.GetOrCreate("guild-1", func() (*Session, error) {
		return NewSession("guild-1", "channel-1", newFakeBackend(), nil), nil
	})
	if err != nil || !created || s == nil {
		t.Fatalf("GetOrCreate = %v, %v, %v", s, created, err)
	}

	r.Remove("guild-1")
	r.Remove("guild-1") // idempotent

	if _, ok := r.Get("guild-1"); ok {
		t.Error("session still present after Remove")
	}
}
