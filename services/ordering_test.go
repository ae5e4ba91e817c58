package services

import (
	"testing"

	"lms/models"
	courseModels "lms/models/course"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// moduleOrder returns the live modules' titles in order index order and
// checks the indices form a contiguous 0..n-1 run.
func moduleOrder(t *testing.T, db *gorm.DB, courseID uint) []string {
	t.Helper()

	var modules []courseModels.Module
	require.NoError(t, db.Where("course_id = ? AND is_deleted = ?", courseID, false).
		Order("order_index asc").Find(&modules).Error)

	titles := make([]string, len(modules))
	for i, m := range modules {
		require.Equal(t, i, m.OrderIndex, "order indices must be contiguous")
		titles[i] = m.Title
	}
	return titles
}

func TestCreateModuleAppendsAtEnd(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)

	for _, title := range []string{"A", "B", "C"} {
		mod, err := CreateModule(db, crs.ID, title, "")
		require.NoError(t, err)
		assert.Equal(t, title, mod.Title)
	}

	assert.Equal(t, []string{"A", "B", "C"}, moduleOrder(t, db, crs.ID))

	_, err := CreateModule(db, crs.ID+99, "ghost", "")
	require.ErrorIs(t, err, courseModels.ErrNotFound)
}

func TestDeleteModuleCompactsIndices(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)

	var mods []*courseModels.Module
	for _, title := range []string{"A", "B", "C", "D"} {
		mod, err := CreateModule(db, crs.ID, title, "")
		require.NoError(t, err)
		mods = append(mods, mod)
	}

	// Removing B from the middle shifts C and D down.
	_, err := DeleteModule(db, crs.ID, mods[1].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "C", "D"}, moduleOrder(t, db, crs.ID))

	// Removing the head too.
	_, err = DeleteModule(db, crs.ID, mods[0].ID)
	require.NoError(t, err)
	assert.Equal(t, []string{"C", "D"}, moduleOrder(t, db, crs.ID))

	// A second delete of the same module is a not found.
	_, err = DeleteModule(db, crs.ID, mods[1].ID)
	require.ErrorIs(t, err, courseModels.ErrNotFound)
}

func TestDeleteModuleReturnsFileURLs(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)
	mod, err := CreateModule(db, crs.ID, "A", "")
	require.NoError(t, err)

	_, err = CreateMaterial(db, mod.ID, MaterialInput{Title: "slides", Type: courseModels.MaterialPDF, FileURL: "https://files/slides.pdf"})
	require.NoError(t, err)
	_, err = CreateMaterial(db, mod.ID, MaterialInput{Title: "notes", Type: courseModels.MaterialDocument, Content: "inline text"})
	require.NoError(t, err)
	_, err = CreateMaterial(db, mod.ID, MaterialInput{Title: "site", Type: courseModels.MaterialLink, FileURL: "https://example.com"})
	require.NoError(t, err)

	urls, err := DeleteModule(db, crs.ID, mod.ID)
	require.NoError(t, err)
	// Only the stored file comes back: LINK targets are not ours to delete
	// and inline content has no file.
	assert.Equal(t, []string{"https://files/slides.pdf"}, urls)

	var liveMaterials int64
	require.NoError(t, db.Model(&courseModels.Material{}).
		Where("module_id = ? AND is_deleted = ?", mod.ID, false).Count(&liveMaterials).Error)
	assert.Zero(t, liveMaterials)
}

func TestMoveModuleSwapsNeighbors(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)

	var mods []*courseModels.Module
	for _, title := range []string{"A", "B", "C"} {
		mod, err := CreateModule(db, crs.ID, title, "")
		require.NoError(t, err)
		mods = append(mods, mod)
	}

	moved, err := MoveModule(db, crs.ID, mods[2].ID, MoveUp)
	require.NoError(t, err)
	assert.Equal(t, 1, moved.OrderIndex)
	assert.Equal(t, []string{"A", "C", "B"}, moduleOrder(t, db, crs.ID))

	moved, err = MoveModule(db, crs.ID, mods[2].ID, MoveUp)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.OrderIndex)
	assert.Equal(t, []string{"C", "A", "B"}, moduleOrder(t, db, crs.ID))
}

func TestMoveModuleBoundariesAreNoOps(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)

	var mods []*courseModels.Module
	for _, title := range []string{"A", "B"} {
		mod, err := CreateModule(db, crs.ID, title, "")
		require.NoError(t, err)
		mods = append(mods, mod)
	}

	// First up and last down change nothing and do not error.
	_, err := MoveModule(db, crs.ID, mods[0].ID, MoveUp)
	require.NoError(t, err)
	_, err = MoveModule(db, crs.ID, mods[1].ID, MoveDown)
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, moduleOrder(t, db, crs.ID))

	_, err = MoveModule(db, crs.ID, mods[0].ID+99, MoveUp)
	require.ErrorIs(t, err, courseModels.ErrNotFound)
}

func TestCreateMaterialValidation(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)
	mod, err := CreateModule(db, crs.ID, "A", "")
	require.NoError(t, err)

	_, err = CreateMaterial(db, mod.ID, MaterialInput{Title: "x", Type: "BOGUS"})
	require.ErrorIs(t, err, courseModels.ErrInvalidType)

	_, err = CreateMaterial(db, mod.ID, MaterialInput{Title: "x", Type: courseModels.MaterialLink})
	require.ErrorIs(t, err, courseModels.ErrLinkURLRequired)

	_, err = CreateMaterial(db, mod.ID, MaterialInput{Title: "x", Type: courseModels.MaterialVideo})
	require.ErrorIs(t, err, courseModels.ErrPayloadRequired)

	mat, err := CreateMaterial(db, mod.ID, MaterialInput{Title: "x", Type: courseModels.MaterialVideo, FileURL: "https://files/x.mp4"})
	require.NoError(t, err)
	assert.Equal(t, 0, mat.OrderIndex)
}

func TestMaterialDeleteAndMove(t *testing.T) {
	db := newTestDB(t)
	tutor := createUser(t, db, models.RoleTutor)
	crs := createCourse(t, db, tutor.ID, courseModels.StatusDraft)
	mod, err := CreateModule(db, crs.ID, "A", "")
	require.NoError(t, err)

	var mats []*courseModels.Material
	for _, title := range []string{"one", "two", "three"} {
		mat, err := CreateMaterial(db, mod.ID, MaterialInput{
			Title: title, Type: courseModels.MaterialPDF, FileURL: "https://files/" + title + ".pdf",
		})
		require.NoError(t, err)
		mats = append(mats, mat)
	}

	url, err := DeleteMaterial(db, mats[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "https://files/one.pdf", url)

	// Remaining two shifted down to 0 and 1.
	var remaining []courseModels.Material
	require.NoError(t, db.Where("module_id = ? AND is_deleted = ?", mod.ID, false).
		Order("order_index asc").Find(&remaining).Error)
	require.Len(t, remaining, 2)
	assert.Equal(t, "two", remaining[0].Title)
	assert.Equal(t, 0, remaining[0].OrderIndex)
	assert.Equal(t, "three", remaining[1].Title)
	assert.Equal(t, 1, remaining[1].OrderIndex)

	moved, err := MoveMaterial(db, mod.ID, remaining[1].ID, MoveUp)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.OrderIndex)

	// Boundary no-op.
	moved, err = MoveMaterial(db, mod.ID, moved.ID, MoveUp)
	require.NoError(t, err)
	assert.Equal(t, 0, moved.OrderIndex)
}
