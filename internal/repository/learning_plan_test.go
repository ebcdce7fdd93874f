package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"skillshare/internal/models"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn: db,
	}), &gorm.Config{})
	require.NoError(t, err)

	return gormDB, mock
}

func TestLearningPlanRepository_Save_Insert(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLearningPlanRepository(db)
	ctx := context.Background()

	plan := &models.LearningPlan{
		Title:   "Learn Go",
		Subject: "Programming",
		UserID:  "user-1",
	}

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO "learning_plans"`)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Save(ctx, plan)
	assert.NoError(t, err)
	assert.NotEmpty(t, plan.ID, "save assigns an id to a new plan")
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLearningPlanRepository_GetByID(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLearningPlanRepository(db)
	ctx := context.Background()

	topicsJSON := `[{"id":"t-1","title":"Basics","status":"COMPLETED","completed":true},` +
		`{"id":"t-2","title":"Concurrency","status":"IN_PROGRESS","completed":false}]`

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "learning_plans" WHERE id = $1 ORDER BY "learning_plans"."id" LIMIT $2`)).
		WithArgs("plan-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id", "followers", "topics"}).
			AddRow("plan-1", "Learn Go", "user-1", 3, topicsJSON))

	plan, err := repo.GetByID(ctx, "plan-1")
	assert.NoError(t, err)
	assert.Equal(t, "Learn Go", plan.Title)
	assert.Equal(t, 3, plan.FollowerCount())
	assert.Len(t, plan.Topics, 2)
	assert.Equal(t, 50, plan.CompletionPercentage())
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLearningPlanRepository_GetByID_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLearningPlanRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "learning_plans" WHERE id = $1 ORDER BY "learning_plans"."id" LIMIT $2`)).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	plan, err := repo.GetByID(ctx, "missing")
	assert.Nil(t, plan)

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLearningPlanRepository_ListByOwner(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLearningPlanRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "learning_plans" WHERE user_id = $1 ORDER BY created_at DESC`)).
		WithArgs("user-1").
		WillReturnRows(sqlmock.NewRows([]string{"id", "title", "user_id"}).
			AddRow("plan-1", "Learn Go", "user-1").
			AddRow("plan-2", "Learn SQL", "user-1"))

	plans, err := repo.ListByOwner(ctx, "user-1")
	assert.NoError(t, err)
	assert.Len(t, plans, 2)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLearningPlanRepository_Delete(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLearningPlanRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "learning_plans" WHERE id = $1 ORDER BY "learning_plans"."id" LIMIT $2`)).
		WithArgs("plan-1", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id", "user_id"}).AddRow("plan-1", "user-1"))

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM "learning_plans" WHERE id = $1`)).
		WithArgs("plan-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	err := repo.Delete(ctx, "plan-1")
	assert.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestLearningPlanRepository_Delete_NotFound(t *testing.T) {
	db, mock := setupMockDB(t)
	repo := NewLearningPlanRepository(db)
	ctx := context.Background()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT * FROM "learning_plans" WHERE id = $1 ORDER BY "learning_plans"."id" LIMIT $2`)).
		WithArgs("missing", 1).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err := repo.Delete(ctx, "missing")

	var appErr *models.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, "NOT_FOUND", appErr.Code)
	assert.NoError(t, mock.ExpectationsWereMet())
}
