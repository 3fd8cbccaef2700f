package releasecatalog

import (
	"context"
	"database/sql/driver"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-sql-driver/mysql"
	"github.com/immune-gmbh/fwrelease/pkg/types"
	"github.com/stretchr/testify/require"
)

func newSQLMock(t *testing.T) (*SQL, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	c := NewSQLFromDB(db, "sqlmock")
	c.InsertRetryDelay = 0
	return c, mock
}

func anyArgs(n int) []driver.Value {
	args := make([]driver.Value, n)
	for idx := range args {
		args[idx] = sqlmock.AnyArg()
	}
	return args
}

const recordColumnsCount = 12

func TestSQLShouldPublish(t *testing.T) {
	c, mock := newSQLMock(t)
	query := regexp.QuoteMeta("SELECT COUNT(*) FROM `release_record` WHERE `tag` = ?")

	mock.ExpectQuery(query).WithArgs("v1.0.0_my-board").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(0)))
	mock.ExpectQuery(query).WithArgs("v1.0.0_my-board").
		WillReturnRows(sqlmock.NewRows([]string{"COUNT(*)"}).AddRow(int64(1)))

	shouldPublish, err := c.ShouldPublish(context.Background(), "v1.0.0_my-board")
	require.NoError(t, err)
	require.True(t, shouldPublish)

	shouldPublish, err = c.ShouldPublish(context.Background(), "v1.0.0_my-board")
	require.NoError(t, err)
	require.False(t, shouldPublish)

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestSQLRecordAndPersist(t *testing.T) {
	ctx := context.Background()
	tag := types.Tag("v1.0.0_my-board")
	insert := regexp.QuoteMeta("INSERT INTO `release_record` (`chip_id`,`flash_size`,`board`,`application_name`,")

	t.Run("ok", func(t *testing.T) {
		c, mock := newSQLMock(t)
		mock.ExpectExec(insert).WithArgs(anyArgs(recordColumnsCount)...).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, c.RecordAndPersist(ctx, tag, testRecord(tag)))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate", func(t *testing.T) {
		c, mock := newSQLMock(t)
		mock.ExpectExec(insert).WithArgs(anyArgs(recordColumnsCount)...).
			WillReturnError(&mysql.MySQLError{Number: 1062, Message: "Duplicate entry"})

		err := c.RecordAndPersist(ctx, tag, testRecord(tag))
		require.True(t, errors.As(err, &ErrAlreadyExists{}), err)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("lock_wait_timeout", func(t *testing.T) {
		c, mock := newSQLMock(t)
		c.insertTriesLimit = 2
		mock.ExpectExec(insert).WithArgs(anyArgs(recordColumnsCount)...).
			WillReturnError(&mysql.MySQLError{Number: 1205, Message: "Lock wait timeout exceeded"})
		mock.ExpectExec(insert).WithArgs(anyArgs(recordColumnsCount)...).
			WillReturnResult(sqlmock.NewResult(1, 1))

		require.NoError(t, c.RecordAndPersist(ctx, tag, testRecord(tag)))
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("tag_mismatch", func(t *testing.T) {
		c, mock := newSQLMock(t)
		err := c.RecordAndPersist(ctx, tag, testRecord("v1.0.0_other-board"))
		require.True(t, errors.As(err, &ErrUnableToInsert{}), err)
		require.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSQLGet(t *testing.T) {
	c, mock := newSQLMock(t)
	tag := types.Tag("v1.0.0_my-board")
	expected := testRecord(tag)
	query := "SELECT (.+) FROM `release_record` WHERE `tag` = \\?"

	mock.ExpectQuery(query).WithArgs(string(tag)).WillReturnRows(
		sqlmock.NewRows([]string{
			"chip_id", "flash_size", "board",
			"application_name", "application_version", "application_compile_time",
			"application_idf_version", "application_elf_sha256",
			"firmware_size", "tag", "url", "artifact_id",
		}).AddRow(
			expected.ChipID, int64(expected.FlashSize), expected.Board,
			expected.Application.Name, expected.Application.Version, expected.Application.CompileTime,
			expected.Application.IDFVersion, expected.Application.ELFSHA256,
			int64(expected.FirmwareSize), string(expected.Tag), expected.URL, expected.ArtifactID[:],
		),
	)
	mock.ExpectQuery(query).WithArgs("v0.0.0_none").WillReturnRows(sqlmock.NewRows([]string{"tag"}))

	record, err := c.Get(context.Background(), tag)
	require.NoError(t, err)
	require.Equal(t, expected, *record)

	_, err = c.Get(context.Background(), "v0.0.0_none")
	require.True(t, errors.As(err, &ErrNotFound{}), err)

	require.NoError(t, mock.ExpectationsWereMet())
}
