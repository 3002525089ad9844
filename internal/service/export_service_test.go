package service

import (
	"archive/zip"
	"bytes"
	"testing"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type exportFixture struct {
	svc       *ExportService
	users     *fakeUserStore
	memorials *fakeMemorialStore
	user      *models.User
	memorial  *models.Memorial
}

func newExportFixture(t *testing.T, tierLevel int) *exportFixture {
	t.Helper()
	t.Setenv("JWT_SECRET", "test-secret")

	users := newFakeUserStore()
	user := &models.User{Email: "owner@example.com", TierLevel: tierLevel, IsActive: true, EmailVerified: true}
	require.NoError(t, users.Create(user))

	memorials := newFakeMemorialStore()
	memorial := &models.Memorial{
		ID:       "m1",
		UserID:   user.ID,
		PetName:  "Rex",
		Species:  "dog",
		URL:      "rex-slug",
		AILetter: "Dear family, thank you for everything.",
	}
	require.NoError(t, memorials.Create(memorial))

	photos := newFakePhotoStore()
	entitlements := NewEntitlementService(users, newFakeTierStore(), memorials, photos)

	return &exportFixture{
		svc:       NewExportService(memorials, photos, entitlements, newFakeStorage(), zap.NewNop()),
		users:     users,
		memorials: memorials,
		user:      user,
		memorial:  memorial,
	}
}

func TestRequestExportGated(t *testing.T) {
	f := newExportFixture(t, 0)

	token, decision, err := f.svc.RequestExport(f.user.ID, f.memorial.ID)
	require.NoError(t, err)
	assert.Empty(t, token)
	assert.Equal(t, models.ReasonUpgradeRequired, decision.Reason)
}

func TestExportRoundTrip(t *testing.T) {
	f := newExportFixture(t, 1)

	require.NoError(t, f.memorials.SaveMessage(&models.GuestMessage{
		MemorialID:  f.memorial.ID,
		VisitorName: "Neighbor",
		Message:     "Best dog on the street.",
	}))

	token, decision, err := f.svc.RequestExport(f.user.ID, f.memorial.ID)
	require.NoError(t, err)
	require.True(t, decision.Allowed)
	require.NotEmpty(t, token)

	archive, filename, err := f.svc.Download(token)
	require.NoError(t, err)
	assert.Contains(t, filename, "Rex")
	assert.Contains(t, filename, ".zip")

	reader, err := zip.NewReader(bytes.NewReader(archive), int64(len(archive)))
	require.NoError(t, err)

	names := make(map[string]bool)
	for _, file := range reader.File {
		names[file.Name] = true
	}
	assert.True(t, names["memorial.json"])
	assert.True(t, names["guestbook.json"])
	assert.True(t, names["letter.txt"])
}

func TestExportOwnershipEnforced(t *testing.T) {
	f := newExportFixture(t, 1)

	other := &models.User{Email: "other@example.com", TierLevel: 1, IsActive: true, EmailVerified: true}
	require.NoError(t, f.users.Create(other))

	_, _, err := f.svc.RequestExport(other.ID, f.memorial.ID)
	assert.ErrorIs(t, err, ErrUnauthorized)
}

func TestDownloadInvalidToken(t *testing.T) {
	f := newExportFixture(t, 1)

	_, _, err := f.svc.Download("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}
