package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpdateCourseColumnsWritesOnlyGivenColumns(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)

	updated, err := UpdateCourseColumns(db, crs, map[string]interface{}{
		"title": "Renamed",
		"price": 49.0,
	})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
	assert.Equal(t, 49.0, updated.Price)
	assert.Equal(t, courseModels.StatusDraft, updated.Status)
	assert.Equal(t, crs.Version, updated.Version)

	// An empty map is a no-op, not an error.
	same, err := UpdateCourseColumns(db, updated, map[string]interface{}{})
	require.NoError(t, err)
	assert.Equal(t, updated.ID, same.ID)
}

func TestUpdateCourseColumnsStaleReadCannotRevertTransition(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	admin := createUser(t, db, models.RoleAdmin)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)

	// The handler read the course, then an admin published it.
	stale := *crs
	_, err := ApplyTransition(db, courseModels.Actor{ID: admin.ID, Role: admin.Role}, crs.ID, courseModels.EventPublish, "")
	require.NoError(t, err)

	// The stale visibility write must fail instead of silently undoing
	// the publish.
	_, err = UpdateCourseColumns(db, &stale, map[string]interface{}{
		"is_public": false,
	})
	require.ErrorIs(t, err, courseModels.ErrConflict)

	var fresh courseModels.Course
	require.NoError(t, db.First(&fresh, crs.ID).Error)
	assert.Equal(t, courseModels.StatusPublished, fresh.Status)
	assert.Equal(t, 1, fresh.Version)
	assert.True(t, fresh.IsPublic)

	// Re-read after the transition and the same edit goes through, still
	// without touching the status.
	fresh2, err := UpdateCourseColumns(db, &fresh, map[string]interface{}{
		"is_public": false,
	})
	require.NoError(t, err)
	assert.False(t, fresh2.IsPublic)
	assert.Equal(t, courseModels.StatusPublished, fresh2.Status)
}

func TestUpdateModuleInfoLeavesOrderIndexAlone(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)

	var mods []*courseModels.Module
	for _, title := range []string{"A", "B"} {
		mod, err := CreateModule(db, crs.ID, title, "")
		require.NoError(t, err)
		mods = append(mods, mod)
	}

	// The engine moves B up between the edit's read and write.
	_, err := MoveModule(db, crs.ID, mods[1].ID, MoveUp)
	require.NoError(t, err)

	updated, err := UpdateModuleInfo(db, crs.ID, mods[1].ID, "B renamed", "now first")
	require.NoError(t, err)
	assert.Equal(t, "B renamed", updated.Title)
	assert.Equal(t, 0, updated.OrderIndex)

	assert.Equal(t, []string{"B renamed", "A"}, moduleOrder(t, db, crs.ID))

	_, err = UpdateModuleInfo(db, crs.ID, mods[1].ID+99, "x", "")
	require.ErrorIs(t, err, courseModels.ErrNotFound)
}
