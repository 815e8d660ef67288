package quest

import "sync"

// Tracker maps user IDs to their current step index. State is transient: a
// restart abandons all in-progress quests, which is acceptable because the
// persistent claim check still bars re-claiming.
type Tracker struct {
	mu       sync.Mutex
	progress map[string]int
}

func NewTracker() *Tracker {
	return &Tracker{progress: make(map[string]int)}
}

// Active reports whether userID has a session in progress.
func (t *Tracker) Active(userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	_, ok := t.progress[userID]
	return ok
}

// Begin registers userID at step 0. It returns false if a session already
// exists: a duplicate concurrent start is rejected rather than resetting the
// user's progress.
func (t *Tracker) Begin(userID string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	if _, ok := t.progress[userID]; ok {
		return false
	}
	t.progress[userID] = 0
	return true
}

// Step returns the user's current step index.
func (t *Tracker) Step(userID string) (int, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	step, ok := t.progress[userID]
	return step, ok
}

// AdvanceFrom moves the session from step from to from+1. It returns false
// when the session is gone or no longer at from, so a duplicate delivery
// that raced another advancement cannot move the session twice.
func (t *Tracker) AdvanceFrom(userID string, from int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	step, ok := t.progress[userID]
	if !ok || step != from {
		return false
	}
	t.progress[userID] = from + 1
	return true
}

// EndFrom removes the session only if it is still at step from. The same
// conditional guard as AdvanceFrom, for the completing transition.
func (t *Tracker) EndFrom(userID string, from int) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	step, ok := t.progress[userID]
	if !ok || step != from {
		return false
	}
	delete(t.progress, userID)
	return true
}

// End removes the session, on completion or abandonment. Ending an unknown
// session is a no-op.
func (t *Tracker) End(userID string) {
	t.mu.Lock()
	defer t.mu.Unlock()
	delete(t.progress, userID)
}

// Len returns the number of active sessions.
func (t *Tracker) Len() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.progress)
}
