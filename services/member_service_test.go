package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"cemaat.app/models"
	"cemaat.app/pkg/queryparams"

	"github.com/glebarez/sqlite"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupMemberDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := filepath.Join(t.TempDir(), "members.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(&models.Member{}))
	return db
}

func TestCreateMemberValidation(t *testing.T) {
	db := setupMemberDB(t)
	svc := NewMemberServiceWithDB(db)
	ctx := context.Background()

	_, err := svc.CreateMember(ctx, testOrgID, testUserID, models.Member{FirstName: "Ali"})
	assert.ErrorIs(t, err, ErrMemberNameRequired)

	birth := time.Date(2000, 5, 1, 0, 0, 0, 0, time.UTC)
	joined := time.Date(1990, 1, 1, 0, 0, 0, 0, time.UTC)
	_, err = svc.CreateMember(ctx, testOrgID, testUserID, models.Member{
		FirstName: "Ali", LastName: "Demir", BirthDate: &birth, JoinedAt: &joined,
	})
	assert.ErrorIs(t, err, ErrMemberInvalidInput)

	member, err := svc.CreateMember(ctx, testOrgID, testUserID, models.Member{
		FirstName: "Ali", LastName: "Demir", IsActive: true,
	})
	require.NoError(t, err)
	assert.NotZero(t, member.ID)
	assert.Equal(t, testOrgID, member.OrganizationID)
	assert.Equal(t, "Ali Demir", member.FullName())
}

func TestMemberLifecycle(t *testing.T) {
	db := setupMemberDB(t)
	svc := NewMemberServiceWithDB(db)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, testOrgID, testUserID, models.Member{
		FirstName: "Fatma", LastName: "Kaya", Email: "fatma@example.com", IsActive: true,
	})
	require.NoError(t, err)

	changes := *created
	changes.Phone = "05551234567"
	require.NoError(t, svc.UpdateMember(ctx, testOrgID, testUserID, created.ID, changes))

	fetched, err := svc.GetMemberByID(ctx, testOrgID, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "05551234567", fetched.Phone)

	require.NoError(t, svc.DeleteMember(ctx, testOrgID, testUserID, created.ID))
	_, err = svc.GetMemberByID(ctx, testOrgID, created.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestCreateMemberPersistsInactiveFlag(t *testing.T) {
	db := setupMemberDB(t)
	svc := NewMemberServiceWithDB(db)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, testOrgID, testUserID, models.Member{
		FirstName: "Pasif", LastName: "Üye", IsActive: false,
	})
	require.NoError(t, err)

	fetched, err := svc.GetMemberByID(ctx, testOrgID, created.ID)
	require.NoError(t, err)
	assert.False(t, fetched.IsActive, "pasif kayıt pasif olarak saklanır")
}

func TestMemberOrganizationScope(t *testing.T) {
	db := setupMemberDB(t)
	svc := NewMemberServiceWithDB(db)
	ctx := context.Background()

	created, err := svc.CreateMember(ctx, testOrgID, testUserID, models.Member{
		FirstName: "Zeynep", LastName: "Arslan", IsActive: true,
	})
	require.NoError(t, err)

	// Başka organizasyonun kimliğiyle kayıt görünmez.
	_, err = svc.GetMemberByID(ctx, testOrgID+1, created.ID)
	assert.ErrorIs(t, err, ErrMemberNotFound)
}

func TestGetMembersPaginated(t *testing.T) {
	db := setupMemberDB(t)
	svc := NewMemberServiceWithDB(db)
	ctx := context.Background()

	for _, name := range []string{"Ahmet", "Mehmet", "Ayşe"} {
		_, err := svc.CreateMember(ctx, testOrgID, testUserID, models.Member{
			FirstName: name, LastName: "Test", IsActive: true,
		})
		require.NoError(t, err)
	}

	params := queryparams.DefaultListParams("last_name")
	params.PerPage = 2
	result, err := svc.GetMembersPaginated(ctx, testOrgID, params)
	require.NoError(t, err)

	members, ok := result.Data.([]models.Member)
	require.True(t, ok)
	assert.Len(t, members, 2)
	assert.EqualValues(t, 3, result.Meta.TotalItems)
	assert.Equal(t, 2, result.Meta.TotalPages)
}
