package sequencer

import "math"

// LessonState is the per-lesson finite state derived from the completed
// prefix of the flattened order.
type LessonState string

const (
	StateLocked    LessonState = "LOCKED"
	StateUnlocked  LessonState = "UNLOCKED"
	StateCompleted LessonState = "COMPLETED"
)

// ProgressGate answers accessibility, navigation and progress questions for
// one user over one course order. Build it fresh from store state on every
// request; a single completion toggle can flip the state of every later
// lesson, so cached gates go stale immediately.
type ProgressGate struct {
	order     []uint
	index     map[uint]int
	completed map[uint]struct{}
}

// NewProgressGate builds a gate over a flattened order and a completed set.
func NewProgressGate(order []uint, completed map[uint]struct{}) *ProgressGate {
	index := make(map[uint]int, len(order))
	for i, id := range order {
		index[id] = i
	}
	if completed == nil {
		completed = map[uint]struct{}{}
	}
	return &ProgressGate{order: order, index: index, completed: completed}
}

// Order returns the flattened lesson order the gate was built from.
func (g *ProgressGate) Order() []uint {
	return g.order
}

// IsCompleted reports whether the lesson itself carries a completion record.
func (g *ProgressGate) IsCompleted(lessonID uint) bool {
	_, ok := g.completed[lessonID]
	return ok
}

// IsAccessible reports whether a lesson may be opened: the first lesson
// always, any other lesson only when every earlier lesson in the order is
// complete. Returns ErrNotFound for ids outside the order.
func (g *ProgressGate) IsAccessible(lessonID uint) (bool, error) {
	i, ok := g.index[lessonID]
	if !ok {
		return false, ErrNotFound
	}
	if i <= 0 {
		return true, nil
	}
	for j := 0; j < i; j++ {
		if _, done := g.completed[g.order[j]]; !done {
			return false, nil
		}
	}
	return true, nil
}

// CanAdvance reports whether the "Next" affordance is allowed from the given
// lesson: the lesson must be complete, a next lesson must exist, and the
// next lesson must itself be accessible. The last check is implied by the
// first but re-evaluated to tolerate a completion set mutated between fetch
// and check.
func (g *ProgressGate) CanAdvance(lessonID uint) (bool, error) {
	i, ok := g.index[lessonID]
	if !ok {
		return false, ErrNotFound
	}
	if !g.IsCompleted(lessonID) {
		return false, nil
	}
	if i+1 >= len(g.order) {
		return false, nil
	}
	return g.IsAccessible(g.order[i+1])
}

// Advance returns the id of the next lesson when forward navigation is
// permitted, ErrAdvanceBlocked otherwise. Reaching past the last lesson is
// also blocked.
func (g *ProgressGate) Advance(lessonID uint) (uint, error) {
	ok, err := g.CanAdvance(lessonID)
	if err != nil {
		return 0, err
	}
	if !ok {
		return 0, ErrAdvanceBlocked
	}
	return g.order[g.index[lessonID]+1], nil
}

// Previous returns the id of the prior lesson. Backward navigation is never
// gated; the second return is false at the start of the course.
func (g *ProgressGate) Previous(lessonID uint) (uint, bool, error) {
	i, ok := g.index[lessonID]
	if !ok {
		return 0, false, ErrNotFound
	}
	if i == 0 {
		return 0, false, nil
	}
	return g.order[i-1], true, nil
}

// Next returns the id of the following lesson regardless of gating; the
// second return is false at the end of the course. Use Advance for the
// gated form.
func (g *ProgressGate) Next(lessonID uint) (uint, bool, error) {
	i, ok := g.index[lessonID]
	if !ok {
		return 0, false, ErrNotFound
	}
	if i+1 >= len(g.order) {
		return 0, false, nil
	}
	return g.order[i+1], true, nil
}

// State derives the Locked/Unlocked/Completed state for a lesson.
func (g *ProgressGate) State(lessonID uint) (LessonState, error) {
	if g.IsCompleted(lessonID) {
		return StateCompleted, nil
	}
	accessible, err := g.IsAccessible(lessonID)
	if err != nil {
		return StateLocked, err
	}
	if accessible {
		return StateUnlocked, nil
	}
	return StateLocked, nil
}

// CompletedCount counts completions that belong to the order; stale
// completion rows for removed lessons do not inflate progress.
func (g *ProgressGate) CompletedCount() int {
	count := 0
	for _, id := range g.order {
		if _, done := g.completed[id]; done {
			count++
		}
	}
	return count
}

// Progress is the course completion percentage, rounded to the nearest
// integer. An empty order reports zero.
func (g *ProgressGate) Progress() int {
	if len(g.order) == 0 {
		return 0
	}
	return int(math.Round(float64(g.CompletedCount()) / float64(len(g.order)) * 100))
}
