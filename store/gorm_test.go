package store

import (
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/bako110/Sonaby/models"
	driver "github.com/go-sql-driver/mysql"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func TestTranslateErr(t *testing.T) {
	assert.NoError(t, translateErr(nil))
	assert.ErrorIs(t, translateErr(gorm.ErrRecordNotFound), ErrNotFound)
	assert.ErrorIs(t, translateErr(&driver.MySQLError{Number: 1062}), ErrDuplicate)

	other := &driver.MySQLError{Number: 1205}
	assert.Equal(t, other, translateErr(other))
}

func newMockStore(t *testing.T) (*GormStore, sqlmock.Sqlmock) {
	t.Helper()
	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	db, err := gorm.Open(mysql.New(mysql.Config{
		Conn:                      sqlDB,
		SkipInitializeWithVersion: true,
	}), &gorm.Config{Logger: logger.Default.LogMode(logger.Silent)})
	require.NoError(t, err)

	return NewGormStore(db), mock
}

func TestHasActiveVisitQuery(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `visits` WHERE visitor_id = \\? AND end_at IS NULL").
		WithArgs(7).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(1))

	active, err := s.Visits().HasActiveVisit(7)
	require.NoError(t, err)
	assert.True(t, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestHasActiveAlertQuery(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectQuery("SELECT count\\(\\*\\) FROM `sos_alerts` WHERE checkpoint_id = \\? AND is_active = \\?").
		WithArgs(5, true).
		WillReturnRows(sqlmock.NewRows([]string{"count(*)"}).AddRow(0))

	active, err := s.SOSAlerts().HasActiveAlert(5)
	require.NoError(t, err)
	assert.False(t, active)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCreateTranslatesDuplicateKey(t *testing.T) {
	s, mock := newMockStore(t)

	mock.ExpectBegin()
	mock.ExpectExec("INSERT INTO `non_desirables`").
		WillReturnError(&driver.MySQLError{Number: 1062})
	mock.ExpectRollback()

	err := s.NonDesirables().Create(&models.NonDesirable{VisitorID: 1, Reason: "theft"})
	assert.ErrorIs(t, err, ErrDuplicate)
	assert.NoError(t, mock.ExpectationsWereMet())
}
