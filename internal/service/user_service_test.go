package service

import (
	"testing"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/pawmemo/pawmemo-backend/pkg/bcrypt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newUserServiceFixture(t *testing.T) (*UserService, *fakeUserStore, *fakeMemorialStore, *fakePhotoStore, *models.User) {
	t.Helper()
	users := newFakeUserStore()
	memorials := newFakeMemorialStore()
	photos := newFakePhotoStore()

	hashed, err := bcrypt.HashPassword("secret123")
	require.NoError(t, err)
	user := &models.User{Email: "owner@example.com", Password: hashed, TierLevel: 0, IsActive: true}
	require.NoError(t, users.Create(user))

	svc := NewUserService(users, newFakeTierStore(), memorials, photos, zap.NewNop())
	return svc, users, memorials, photos, user
}

func TestGetDashboard(t *testing.T) {
	svc, _, memorials, photos, user := newUserServiceFixture(t)

	require.NoError(t, memorials.Create(&models.Memorial{ID: "m1", UserID: user.ID, URL: "s1"}))
	for i := 0; i < 3; i++ {
		require.NoError(t, photos.Create(&models.Photos{MemorialID: "m1", UserID: user.ID}))
	}

	dashboard, err := svc.GetDashboard(user.ID)
	require.NoError(t, err)
	assert.Equal(t, "Free", dashboard.Tier.Name)
	assert.Equal(t, 1, dashboard.MemorialCount)
	assert.Equal(t, 3, dashboard.PhotoCount)
	assert.Equal(t, 1, dashboard.MaxMemorials)
	assert.Equal(t, 6, dashboard.MaxPhotos)
}

func TestChangePassword(t *testing.T) {
	svc, users, _, _, user := newUserServiceFixture(t)

	err := svc.ChangePassword(user.ID, models.ChangePasswordRequest{
		CurrentPassword: "secret123",
		NewPassword:     "newpass456",
	})
	require.NoError(t, err)

	updated, err := users.GetByID(user.ID)
	require.NoError(t, err)
	assert.NoError(t, bcrypt.ComparePassword(updated.Password, "newpass456"))
}

func TestChangePasswordWrongCurrent(t *testing.T) {
	svc, _, _, _, user := newUserServiceFixture(t)

	err := svc.ChangePassword(user.ID, models.ChangePasswordRequest{
		CurrentPassword: "wrong",
		NewPassword:     "newpass456",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestGetProfileUnknownUser(t *testing.T) {
	svc, _, _, _, _ := newUserServiceFixture(t)

	_, err := svc.GetProfile(999)
	assert.ErrorIs(t, err, ErrNotFound)
}
