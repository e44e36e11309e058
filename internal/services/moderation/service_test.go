package moderation

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/chambapp/backend_chamba/internal/db"
	"github.com/chambapp/backend_chamba/internal/models"
)

func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	gdb, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{TranslateError: true})
	require.NoError(t, err)
	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, db.Migrate(gdb))
	return gdb
}

func seedUser(t *testing.T, gdb *gorm.DB, email string, createdAt time.Time, shape func(*models.User)) *models.User {
	t.Helper()
	u := models.User{
		Name:         "Usuario",
		Surname:      "Prueba",
		Email:        email,
		PasswordHash: "x",
		Active:       true,
		CreatedAt:    createdAt,
	}
	if shape != nil {
		shape(&u)
	}
	require.NoError(t, gdb.Create(&u).Error)
	return &u
}

func TestListUsers(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	base := time.Date(2026, 1, 10, 12, 0, 0, 0, time.UTC)

	admin := seedUser(t, gdb, "admin@mail.com", base, func(u *models.User) {
		u.IsAdmin = true
	})
	client := seedUser(t, gdb, "cliente@mail.com", base.Add(time.Hour), nil)
	require.NoError(t, gdb.Create(&models.ClientProfile{
		UserID: client.ID, Street: "Calle 1", Neighborhood: "Centro",
		ExteriorNumber: "1", PostalCode: "06000", City: "CDMX",
	}).Error)
	worker := seedUser(t, gdb, "trabajador@mail.com", base.Add(2*time.Hour), nil)
	require.NoError(t, gdb.Create(&models.WorkerProfile{
		UserID: worker.ID, Bio: "Electricista", YearsExperience: 5, HourlyRate: 200,
	}).Error)

	rows, err := svc.ListUsers()
	require.NoError(t, err)
	require.Len(t, rows, 3)

	// most recent registration first
	assert.Equal(t, "trabajador@mail.com", rows[0].Email)
	assert.Equal(t, models.RoleWorker, rows[0].Role)
	assert.False(t, rows[0].WorkerValidated)

	assert.Equal(t, "cliente@mail.com", rows[1].Email)
	assert.Equal(t, models.RoleClient, rows[1].Role)

	assert.Equal(t, "admin@mail.com", rows[2].Email)
	assert.Equal(t, models.RoleAdmin, rows[2].Role)
	assert.Equal(t, admin.ID, rows[2].ID)
}

func TestApplyValidate(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	worker := seedUser(t, gdb, "trabajador@mail.com", time.Now(), nil)
	require.NoError(t, gdb.Create(&models.WorkerProfile{UserID: worker.ID}).Error)

	require.NoError(t, svc.Apply(worker.ID, ActionValidate, 0))

	var profile models.WorkerProfile
	require.NoError(t, gdb.Where("user_id = ?", worker.ID).First(&profile).Error)
	assert.True(t, profile.Validated)

	// validating a user without a worker profile is a no-op
	client := seedUser(t, gdb, "cliente@mail.com", time.Now(), nil)
	assert.NoError(t, svc.Apply(client.ID, ActionValidate, 0))
}

func TestApplyBlockAndUnblock(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	user := seedUser(t, gdb, "ana@mail.com", time.Now(), nil)

	require.NoError(t, svc.Apply(user.ID, ActionBlock, 5))

	var blocked models.User
	require.NoError(t, gdb.First(&blocked, "id = ?", user.ID).Error)
	require.NotNil(t, blocked.BlockedUntil)
	expected := time.Now().AddDate(0, 0, 5)
	assert.WithinDuration(t, expected, *blocked.BlockedUntil, time.Minute)

	require.NoError(t, svc.Apply(user.ID, ActionUnblock, 0))
	// read into a fresh struct: gorm leaves a reused destination's pointer
	// fields untouched when the column is NULL
	var unblocked models.User
	require.NoError(t, gdb.First(&unblocked, "id = ?", user.ID).Error)
	assert.Nil(t, unblocked.BlockedUntil)
}

func TestApplyBlockDefaultsToPermanent(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	user := seedUser(t, gdb, "ana@mail.com", time.Now(), nil)

	require.NoError(t, svc.Apply(user.ID, ActionBlock, 0))

	var blocked models.User
	require.NoError(t, gdb.First(&blocked, "id = ?", user.ID).Error)
	require.NotNil(t, blocked.BlockedUntil)
	assert.True(t, blocked.BlockedUntil.After(time.Now().AddDate(99, 0, 0)))
}

func TestApplyDeleteCascades(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	worker := seedUser(t, gdb, "trabajador@mail.com", time.Now(), nil)
	require.NoError(t, gdb.Create(&models.WorkerProfile{UserID: worker.ID}).Error)
	require.NoError(t, gdb.Create(&models.WorkerCategory{UserID: worker.ID, CategoryID: 1}).Error)
	require.NoError(t, gdb.Create(&models.WorkerCategory{UserID: worker.ID, CategoryID: 2}).Error)

	require.NoError(t, svc.Apply(worker.ID, ActionDelete, 0))

	var users, profiles, cats int64
	require.NoError(t, gdb.Model(&models.User{}).Count(&users).Error)
	require.NoError(t, gdb.Model(&models.WorkerProfile{}).Count(&profiles).Error)
	require.NoError(t, gdb.Model(&models.WorkerCategory{}).Count(&cats).Error)
	assert.Zero(t, users)
	assert.Zero(t, profiles)
	assert.Zero(t, cats)
}

func TestApplyUnknownActionFails(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)
	user := seedUser(t, gdb, "ana@mail.com", time.Now(), nil)

	err := svc.Apply(user.ID, "congelar", 0)
	assert.ErrorIs(t, err, ErrInvalidAction)
}

func TestApplyUnknownUser(t *testing.T) {
	gdb := openTestDB(t)
	svc := NewService(gdb)

	err := svc.Apply(uuid.New(), ActionBlock, 5)
	assert.ErrorIs(t, err, ErrUserNotFound)

	err = svc.Apply(uuid.New(), ActionDelete, 0)
	assert.ErrorIs(t, err, ErrUserNotFound)
}
