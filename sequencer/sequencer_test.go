package sequencer

import (
	"testing"

	academy "academy/models/academy"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func section(id uint, order int) academy.CourseSection {
	return academy.CourseSection{Model: gorm.Model{ID: id}, SectionOrder: order}
}

func lesson(id, sectionID uint, order int) academy.Lesson {
	return academy.Lesson{Model: gorm.Model{ID: id}, SectionID: sectionID, LessonOrder: order}
}

func TestFlattenSectionThenLessonOrder(t *testing.T) {
	sections := []academy.CourseSection{
		section(20, 2),
		section(10, 1),
	}
	lessons := []academy.Lesson{
		lesson(3, 20, 1),
		lesson(1, 10, 1),
		lesson(4, 20, 2),
		lesson(2, 10, 2),
	}

	order := Flatten(sections, lessons)
	assert.Equal(t, []uint{1, 2, 3, 4}, order)
}

func TestFlattenOrderGapsAndTies(t *testing.T) {
	// Order values with gaps and duplicates; ties keep input order
	sections := []academy.CourseSection{
		section(1, 5),
		section(2, 5),
		section(3, 100),
	}
	lessons := []academy.Lesson{
		lesson(11, 1, 7),
		lesson(12, 1, 7),
		lesson(13, 1, 3),
		lesson(21, 2, 1),
		lesson(31, 3, 9),
	}

	order := Flatten(sections, lessons)
	assert.Equal(t, []uint{13, 11, 12, 21, 31}, order)
}

func TestFlattenIsDeterministic(t *testing.T) {
	sections := []academy.CourseSection{section(1, 1), section(2, 1), section(3, 2)}
	lessons := []academy.Lesson{
		lesson(5, 3, 1), lesson(4, 2, 2), lesson(3, 2, 1), lesson(2, 1, 2), lesson(1, 1, 1),
	}

	first := Flatten(sections, lessons)
	for i := 0; i < 10; i++ {
		assert.Equal(t, first, Flatten(sections, lessons))
	}
}

func TestFlattenDropsLessonsOfUnknownSections(t *testing.T) {
	sections := []academy.CourseSection{section(1, 1)}
	lessons := []academy.Lesson{lesson(1, 1, 1), lesson(99, 42, 1)}

	assert.Equal(t, []uint{1}, Flatten(sections, lessons))
}

func TestFlattenEmpty(t *testing.T) {
	assert.Empty(t, Flatten(nil, nil))

	// Sections without lessons still produce an empty order
	assert.Empty(t, Flatten([]academy.CourseSection{section(1, 1)}, nil))
}

func TestFlattenDoesNotMutateInputs(t *testing.T) {
	sections := []academy.CourseSection{section(2, 2), section(1, 1)}
	lessons := []academy.Lesson{lesson(9, 2, 2), lesson(8, 2, 1)}

	Flatten(sections, lessons)

	require.Equal(t, uint(2), sections[0].ID)
	require.Equal(t, uint(9), lessons[0].ID)
}
