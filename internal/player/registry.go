package player

import "sync"

// Registry holds every live session keyed by guild ID. Creation goes
// through GetOrCreate so concurrent callers for the same guild never end
// up with two voice connections, while guilds stay independent of each
// other.
type Registry struct {
	mu       sync.Mutex
	sessions map[string]*Session
	opening  map[string]*openCall
}

// openCall tracks an in-flight session creation so concurrent callers for
// the same guild share its outcome instead of opening a second one.
type openCall struct {
	done chan struct{}
	sess *Session
	err  error
}

func NewRegistry() *Registry {
	return &Registry{
		sessions: make(map[string]*Session),
		opening:  make(map[string]*openCall),
	}
}

// GetOrCreate returns the guild's live session, creating one through open
// when none exists. The registry lock is not held across open, so a slow
// voice join in one guild never stalls session creation in another; a
// second caller for the same guild blocks until the first open settles and
// then shares its result.
func (r *Registry) GetOrCreate(guildID string, open func() (*Session, error)) (*Session, bool, error) {
	r.mu.Lock()
	if s, ok := r.sessions[guildID]; ok {
		r.mu.Unlock()
		return s, false, nil
	}
	if call, ok := r.opening[guildID]; ok {
		r.mu.Unlock()
		<-call.done
		return call.sess, false, call.err
	}
	call := &openCall{done: make(chan struct{})}
	r.opening[guildID] = call
	r.mu.Unlock()

	call.sess, call.err = open()

	r.mu.Lock()
	delete(r.opening, guildID)
	if call.err == nil {
		r.sessions[guildID] = call.sess
	}
	r.mu.Unlock()
	close(call.done)

	return call.sess, call.err == nil, call.err
}

// Get returns the guild's session, or false when there is no active one.
func (r *Registry) Get(guildID string) (*Session, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[guildID]
	return s, ok
}

// Remove drops the guild's session from the registry. Idempotent.
func (r *Registry) Remove(guildID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, guildID)
}
