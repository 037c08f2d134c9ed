package applicationstore

import (
	"context"
	"recruit-backend/models"
	dbmodels "recruit-backend/models/db"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func newMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	gormDB, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		SkipDefaultTransaction: true,
		Logger:                 logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	return gormDB, mock
}

func TestGetForUpdate(t *testing.T) {
	ctx := context.Background()

	t.Run("row lock check", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "applications" WHERE candidate_id = \$1 AND job_id = \$2 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id", "candidate_id", "job_id", "status"}).
				AddRow(3, 20, 10, models.ApplicationStatusWithdrawn))

		rec, err := NewInstance(gormDB).GetForUpdate(ctx, 20, 10)
		require.NoError(t, err)
		require.NotNil(t, rec)
		require.Equal(t, int64(3), rec.ID)
		require.Equal(t, models.ApplicationStatusWithdrawn, rec.Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no row check", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectQuery(`SELECT \* FROM "applications" WHERE candidate_id = \$1 AND job_id = \$2 .*FOR UPDATE`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}))

		rec, err := NewInstance(gormDB).GetForUpdate(ctx, 20, 10)
		require.NoError(t, err)
		require.Nil(t, rec)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestCreate(t *testing.T) {
	ctx := context.Background()

	t.Run("insert check", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectQuery(`INSERT INTO "applications"`).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

		rec := &dbmodels.Application{CandidateID: 20, JobID: 10, Status: models.ApplicationStatusApplied, AppliedAt: time.Now()}
		require.NoError(t, NewInstance(gormDB).Create(ctx, rec))
		require.Equal(t, int64(11), rec.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("unique violation check", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectQuery(`INSERT INTO "applications"`).
			WillReturnError(errors.New(`ERROR: duplicate key value violates unique constraint "idx_application_pair" (SQLSTATE 23505)`))

		rec := &dbmodels.Application{CandidateID: 20, JobID: 10, Status: models.ApplicationStatusApplied}
		err := NewInstance(gormDB).Create(ctx, rec)
		require.True(t, errors.Is(err, ErrDuplicate))
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWithTx(t *testing.T) {
	ctx := context.Background()

	t.Run("commit check", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "applications" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewInstance(gormDB).WithTx(ctx, func(tx Provider) error {
			return tx.SetStatus(ctx, 3, models.ApplicationStatusReviewed)
		})
		require.NoError(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rollback check", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "applications" SET`).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(`DELETE FROM "answer_records"`).
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err := NewInstance(gormDB).WithTx(ctx, func(tx Provider) error {
			if err := tx.Reactivate(ctx, 3, ReactivateData{AppliedAt: time.Now()}); err != nil {
				return err
			}
			return tx.DeleteAnswers(ctx, 3)
		})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("missing row check", func(t *testing.T) {
		gormDB, mock := newMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(`UPDATE "applications" SET`).
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectRollback()

		err := NewInstance(gormDB).WithTx(ctx, func(tx Provider) error {
			return tx.SetStatus(ctx, 99, models.ApplicationStatusReviewed)
		})
		require.Error(t, err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}
