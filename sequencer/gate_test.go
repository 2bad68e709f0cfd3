package sequencer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func completedSet(ids ...uint) map[uint]struct{} {
	set := make(map[uint]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set
}

func TestFirstLessonAlwaysAccessible(t *testing.T) {
	gate := NewProgressGate([]uint{1, 2, 3}, nil)

	accessible, err := gate.IsAccessible(1)
	require.NoError(t, err)
	assert.True(t, accessible)
}

func TestLaterLessonsLockedUntilPrefixComplete(t *testing.T) {
	order := []uint{1, 2, 3, 4}

	gate := NewProgressGate(order, completedSet(1))
	accessible, err := gate.IsAccessible(2)
	require.NoError(t, err)
	assert.True(t, accessible)

	accessible, err = gate.IsAccessible(3)
	require.NoError(t, err)
	assert.False(t, accessible)

	// Completing lesson 2 unlocks lesson 3
	gate = NewProgressGate(order, completedSet(1, 2))
	accessible, err = gate.IsAccessible(3)
	require.NoError(t, err)
	assert.True(t, accessible)
}

func TestUncompletionRelocksForwardLessons(t *testing.T) {
	order := []uint{1, 2, 3, 4}

	// 1, 2 and 3 complete, then 2 is revoked. Lesson 3 stays complete on
	// record but both 3 and 4 lock again: accessibility depends on the full
	// completed prefix, not the lesson's own record.
	gate := NewProgressGate(order, completedSet(1, 3))

	accessible, err := gate.IsAccessible(3)
	require.NoError(t, err)
	assert.False(t, accessible)

	accessible, err = gate.IsAccessible(4)
	require.NoError(t, err)
	assert.False(t, accessible)
}

func TestIsAccessibleUnknownLesson(t *testing.T) {
	gate := NewProgressGate([]uint{1, 2}, nil)

	_, err := gate.IsAccessible(42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCanAdvanceRequiresCurrentComplete(t *testing.T) {
	order := []uint{1, 2, 3}

	gate := NewProgressGate(order, nil)
	ok, err := gate.CanAdvance(1)
	require.NoError(t, err)
	assert.False(t, ok)

	gate = NewProgressGate(order, completedSet(1))
	ok, err = gate.CanAdvance(1)
	require.NoError(t, err)
	assert.True(t, ok)
}

func TestCanAdvanceAtEndOfCourse(t *testing.T) {
	gate := NewProgressGate([]uint{1, 2}, completedSet(1, 2))

	ok, err := gate.CanAdvance(2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestAdvanceBlockedSurfacesDomainError(t *testing.T) {
	gate := NewProgressGate([]uint{1, 2}, nil)

	_, err := gate.Advance(1)
	assert.ErrorIs(t, err, ErrAdvanceBlocked)

	gate = NewProgressGate([]uint{1, 2}, completedSet(1))
	next, err := gate.Advance(1)
	require.NoError(t, err)
	assert.Equal(t, uint(2), next)
}

func TestPreviousIsNeverGated(t *testing.T) {
	gate := NewProgressGate([]uint{1, 2, 3}, nil)

	prev, ok, err := gate.Previous(3)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(2), prev)

	_, ok, err = gate.Previous(1)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNextIgnoresGating(t *testing.T) {
	gate := NewProgressGate([]uint{1, 2}, nil)

	next, ok, err := gate.Next(1)
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, uint(2), next)

	_, ok, err = gate.Next(2)
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLessonStates(t *testing.T) {
	gate := NewProgressGate([]uint{1, 2, 3}, completedSet(1))

	state, err := gate.State(1)
	require.NoError(t, err)
	assert.Equal(t, StateCompleted, state)

	state, err = gate.State(2)
	require.NoError(t, err)
	assert.Equal(t, StateUnlocked, state)

	state, err = gate.State(3)
	require.NoError(t, err)
	assert.Equal(t, StateLocked, state)
}

func TestProgressRounding(t *testing.T) {
	order := make([]uint, 12)
	for i := range order {
		order[i] = uint(i + 1)
	}

	// 3 of 12 -> 25%
	gate := NewProgressGate(order, completedSet(1, 2, 3))
	assert.Equal(t, 25, gate.Progress())

	// 1 of 3 -> 33% (rounded, not truncated)
	gate = NewProgressGate([]uint{1, 2, 3}, completedSet(1))
	assert.Equal(t, 33, gate.Progress())

	// 2 of 3 -> 67%
	gate = NewProgressGate([]uint{1, 2, 3}, completedSet(1, 2))
	assert.Equal(t, 67, gate.Progress())
}

func TestProgressIgnoresStaleCompletions(t *testing.T) {
	// Completion rows for lessons no longer in the order don't count
	gate := NewProgressGate([]uint{1, 2}, completedSet(1, 99))

	assert.Equal(t, 1, gate.CompletedCount())
	assert.Equal(t, 50, gate.Progress())
}

func TestProgressEmptyOrder(t *testing.T) {
	gate := NewProgressGate(nil, completedSet(1))
	assert.Equal(t, 0, gate.Progress())
}
