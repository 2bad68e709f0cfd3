// Package sequencer computes the global lesson order of a course and the
// derived per-user gating state over it. It is pure: callers fetch sections,
// lessons and completion rows, and rebuild the gate on every request.
package sequencer

import (
	"errors"
	"sort"

	academy "academy/models/academy"
)

var (
	// ErrNotFound means a lesson id is absent from the current order,
	// usually stale client state; callers should re-fetch, not crash.
	ErrNotFound = errors.New("lesson not found in course order")

	// ErrAdvanceBlocked means forward navigation was attempted before the
	// current lesson was completed.
	ErrAdvanceBlocked = errors.New("complete the current lesson before moving to the next one")

	// ErrAssignmentRequired means a terminal lesson cannot be completed
	// until the section's assignment has a submission.
	ErrAssignmentRequired = errors.New("submit the assignment before marking this lesson as complete")
)

// Flatten produces the deterministic global lesson order for a course:
// sections ascending by SectionOrder, lessons within each section ascending
// by LessonOrder. Ties keep input order. Lessons referencing an unknown
// section are dropped.
func Flatten(sections []academy.CourseSection, lessons []academy.Lesson) []uint {
	sorted := make([]academy.CourseSection, len(sections))
	copy(sorted, sections)
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].SectionOrder < sorted[j].SectionOrder
	})

	bySection := make(map[uint][]academy.Lesson, len(sorted))
	for _, lesson := range lessons {
		bySection[lesson.SectionID] = append(bySection[lesson.SectionID], lesson)
	}

	order := make([]uint, 0, len(lessons))
	for _, section := range sorted {
		sectionLessons := bySection[section.ID]
		sort.SliceStable(sectionLessons, func(i, j int) bool {
			return sectionLessons[i].LessonOrder < sectionLessons[j].LessonOrder
		})
		for _, lesson := range sectionLessons {
			order = append(order, lesson.ID)
		}
	}

	return order
}
