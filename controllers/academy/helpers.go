package controllers

import (
	"academy/database"
	academyModels "academy/models/academy"
	"academy/sequencer"
)

// loadPublishedStructure fetches the published sections and lessons of a
// course in storage order. The sequencer re-sorts, so fetch order is not
// load-bearing.
func loadPublishedStructure(courseID uint) ([]academyModels.CourseSection, []academyModels.Lesson, error) {
	db := database.Database.Db

	var sections []academyModels.CourseSection
	if err := db.Where("course_id = ? AND is_deleted = ? AND is_published = ?", courseID, false, true).
		Order("section_order asc").Find(&sections).Error; err != nil {
		return nil, nil, err
	}

	if len(sections) == 0 {
		return sections, nil, nil
	}

	sectionIDs := make([]uint, len(sections))
	for i, section := range sections {
		sectionIDs[i] = section.ID
	}

	var lessons []academyModels.Lesson
	if err := db.Where("section_id IN ? AND is_deleted = ? AND is_published = ?", sectionIDs, false, true).
		Order("lesson_order asc").Find(&lessons).Error; err != nil {
		return nil, nil, err
	}

	return sections, lessons, nil
}

// loadPublishedAssignments fetches the published assignments of the given sections
func loadPublishedAssignments(sectionIDs []uint) ([]academyModels.Assignment, error) {
	var assignments []academyModels.Assignment
	if len(sectionIDs) == 0 {
		return assignments, nil
	}
	err := database.Database.Db.
		Where("section_id IN ? AND is_deleted = ? AND is_published = ?", sectionIDs, false, true).
		Order("assignment_order asc").Find(&assignments).Error
	return assignments, err
}

// loadCompletedSet fetches the user's completion rows for the given lessons
// as a set keyed by lesson id
func loadCompletedSet(userID uint, lessonIDs []uint) (map[uint]struct{}, error) {
	completed := make(map[uint]struct{})
	if len(lessonIDs) == 0 {
		return completed, nil
	}

	var rows []academyModels.LessonProgress
	if err := database.Database.Db.
		Where("user_id = ? AND lesson_id IN ?", userID, lessonIDs).Find(&rows).Error; err != nil {
		return nil, err
	}

	for _, row := range rows {
		completed[row.LessonID] = struct{}{}
	}
	return completed, nil
}

// buildGate assembles the per-request progress gate for a user and course.
// Always rebuilt from confirmed store state; a completion toggle changes the
// accessibility of every later lesson, so nothing here is cached.
func buildGate(userID, courseID uint) (*sequencer.ProgressGate, []academyModels.CourseSection, []academyModels.Lesson, error) {
	sections, lessons, err := loadPublishedStructure(courseID)
	if err != nil {
		return nil, nil, nil, err
	}

	order := sequencer.Flatten(sections, lessons)

	completed, err := loadCompletedSet(userID, order)
	if err != nil {
		return nil, nil, nil, err
	}

	return sequencer.NewProgressGate(order, completed), sections, lessons, nil
}

// activeEnrollment returns the user's enrollment when it grants course
// access (free or confirmed paid)
func activeEnrollment(userID, courseID uint) (*academyModels.CourseEnrollment, bool) {
	var enrollment academyModels.CourseEnrollment
	err := database.Database.Db.
		Where("user_id = ? AND course_id = ? AND is_deleted = ?", userID, courseID, false).
		First(&enrollment).Error
	if err != nil {
		return nil, false
	}
	if enrollment.PaymentStatus == academyModels.PaymentPending {
		return &enrollment, false
	}
	return &enrollment, true
}

// sectionAssignment resolves the assignment gating a section's terminal
// lesson: an authored row wins, otherwise the virtual row if one has been
// synthesized. The bool reports whether any row exists.
func sectionAssignment(sectionID uint) (*academyModels.Assignment, bool) {
	var assignment academyModels.Assignment
	err := database.Database.Db.
		Where("section_id = ? AND is_deleted = ? AND is_virtual = ?", sectionID, false, false).
		Order("assignment_order asc").First(&assignment).Error
	if err == nil {
		return &assignment, true
	}

	err = database.Database.Db.
		Where("section_id = ? AND is_deleted = ? AND is_virtual = ?", sectionID, false, true).
		First(&assignment).Error
	if err == nil {
		return &assignment, true
	}
	return nil, false
}

// courseAssignment loads an assignment and confirms its section belongs to
// the course named in the URL. The bool is false when either lookup misses.
func courseAssignment(assignmentID, courseID uint) (*academyModels.Assignment, bool) {
	var assignment academyModels.Assignment
	err := database.Database.Db.
		Where("id = ? AND is_deleted = ?", assignmentID, false).
		First(&assignment).Error
	if err != nil {
		return nil, false
	}

	var section academyModels.CourseSection
	err = database.Database.Db.
		Where("id = ? AND course_id = ? AND is_deleted = ?", assignment.SectionID, courseID, false).
		First(&section).Error
	if err != nil {
		return nil, false
	}
	return &assignment, true
}
