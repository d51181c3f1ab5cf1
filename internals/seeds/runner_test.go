package seeds

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"danceflow_backend/internals/features/studio/classes/model"
	userModel "danceflow_backend/internals/features/users/user/model"
	"danceflow_backend/internals/testutil"
)

func TestRunAllSeedsIsRepeatable(t *testing.T) {
	db := testutil.OpenDB(t, &model.ClassModel{}, &userModel.UserModel{})

	require.NoError(t, RunAllSeeds(db, Options{StudioID: "studio-1"}))
	require.NoError(t, RunAllSeeds(db, Options{StudioID: "studio-1"}))

	var classes []model.ClassModel
	require.NoError(t, db.Order("class_id").Find(&classes).Error)
	assert.Len(t, classes, 8)

	var ballet model.ClassModel
	require.NoError(t, db.Where("class_id = ?", "intro-ballet").Take(&ballet).Error)
	assert.Equal(t, 15, ballet.ClassCapacity)
	assert.Equal(t, int64(5000), ballet.ClassPriceCents)
	assert.Equal(t, model.StyleBallet, ballet.ClassStyle)
	assert.Equal(t, model.LevelBeginner, ballet.ClassLevel)
	require.NotNil(t, ballet.ClassTeacherID)
	assert.Equal(t, "teacher-demo", *ballet.ClassTeacherID)
	assert.Equal(t, 0, ballet.ClassEnrolled)

	var n int64
	require.NoError(t, db.Model(&userModel.UserModel{}).Count(&n).Error)
	assert.Equal(t, int64(3), n)
}
