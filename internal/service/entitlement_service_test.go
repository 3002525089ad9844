package service

import (
	"fmt"
	"testing"

	"github.com/pawmemo/pawmemo-backend/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type entitlementFixture struct {
	svc       *EntitlementService
	users     *fakeUserStore
	memorials *fakeMemorialStore
	photos    *fakePhotoStore
}

func newEntitlementFixture(t *testing.T) *entitlementFixture {
	t.Helper()
	users := newFakeUserStore()
	memorials := newFakeMemorialStore()
	photos := newFakePhotoStore()
	return &entitlementFixture{
		svc:       NewEntitlementService(users, newFakeTierStore(), memorials, photos),
		users:     users,
		memorials: memorials,
		photos:    photos,
	}
}

func (f *entitlementFixture) addUser(t *testing.T, tierLevel int, verified bool) *models.User {
	t.Helper()
	user := &models.User{
		Email:         fmt.Sprintf("user%d@example.com", f.users.nextID),
		TierLevel:     tierLevel,
		IsActive:      true,
		EmailVerified: verified,
	}
	require.NoError(t, f.users.Create(user))
	return user
}

func (f *entitlementFixture) addMemorial(t *testing.T, userID uint, id string) *models.Memorial {
	t.Helper()
	memorial := &models.Memorial{ID: id, UserID: userID, PetName: "Rex", Species: "dog", URL: "slug-" + id}
	require.NoError(t, f.memorials.Create(memorial))
	return memorial
}

func TestCanCreateMemorialFreeTier(t *testing.T) {
	f := newEntitlementFixture(t)
	user := f.addUser(t, 0, false)

	// 0/1 used: allowed. Unverified email is fine for memorial creation.
	decision, err := f.svc.CanCreateMemorial(user.ID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	f.addMemorial(t, user.ID, "m1")

	// 1/1 used: denied with counts.
	decision, err = f.svc.CanCreateMemorial(user.ID)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, models.ReasonLimitReached, decision.Reason)
	assert.Equal(t, 1, decision.CurrentCount)
	assert.Equal(t, 1, decision.MaxAllowed)
}

func TestCanCreateMemorialUnlimited(t *testing.T) {
	f := newEntitlementFixture(t)
	user := f.addUser(t, 1, true)

	for i := 0; i < 25; i++ {
		f.addMemorial(t, user.ID, fmt.Sprintf("m%d", i))
	}

	decision, err := f.svc.CanCreateMemorial(user.ID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestCanCreateMemorialUnknownUser(t *testing.T) {
	f := newEntitlementFixture(t)

	decision, err := f.svc.CanCreateMemorial(999)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, models.ReasonNotLoggedIn, decision.Reason)
}

func TestCanCreateMemorialInactiveUser(t *testing.T) {
	f := newEntitlementFixture(t)
	user := f.addUser(t, 0, true)
	user.IsActive = false
	require.NoError(t, f.users.Update(user))

	decision, err := f.svc.CanCreateMemorial(user.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReasonNotLoggedIn, decision.Reason)
}

func TestCanCreateMemorialTierConfigError(t *testing.T) {
	f := newEntitlementFixture(t)
	user := f.addUser(t, 9, true)

	decision, err := f.svc.CanCreateMemorial(user.ID)
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, models.ReasonTierConfigError, decision.Reason)
}

func TestCanUploadPhotoAtLimit(t *testing.T) {
	f := newEntitlementFixture(t)
	user := f.addUser(t, 0, true)
	f.addMemorial(t, user.ID, "m1")

	for i := 0; i < 6; i++ {
		require.NoError(t, f.photos.Create(&models.Photos{MemorialID: "m1", UserID: user.ID}))
	}

	decision, err := f.svc.CanUploadPhoto(user.ID, "m1")
	require.NoError(t, err)
	assert.False(t, decision.Allowed)
	assert.Equal(t, models.ReasonLimitReached, decision.Reason)
	assert.Equal(t, 6, decision.CurrentCount)
	assert.Equal(t, 6, decision.MaxAllowed)
}

func TestCanUploadPhotoUnderLimit(t *testing.T) {
	f := newEntitlementFixture(t)
	user := f.addUser(t, 0, true)
	f.addMemorial(t, user.ID, "m1")

	for i := 0; i < 5; i++ {
		require.NoError(t, f.photos.Create(&models.Photos{MemorialID: "m1", UserID: user.ID}))
	}

	decision, err := f.svc.CanUploadPhoto(user.ID, "m1")
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestCanUploadPhotoRequiresVerifiedEmail(t *testing.T) {
	f := newEntitlementFixture(t)
	user := f.addUser(t, 0, false)
	f.addMemorial(t, user.ID, "m1")

	decision, err := f.svc.CanUploadPhoto(user.ID, "m1")
	require.NoError(t, err)
	assert.Equal(t, models.ReasonEmailNotVerified, decision.Reason)
}

func TestCanUploadPhotoNotOwner(t *testing.T) {
	f := newEntitlementFixture(t)
	owner := f.addUser(t, 0, true)
	other := f.addUser(t, 1, true)
	f.addMemorial(t, owner.ID, "m1")

	decision, err := f.svc.CanUploadPhoto(other.ID, "m1")
	require.NoError(t, err)
	assert.Equal(t, models.ReasonNotOwner, decision.Reason)

	// Unknown memorial reads the same as someone else's.
	decision, err = f.svc.CanUploadPhoto(other.ID, "missing")
	require.NoError(t, err)
	assert.Equal(t, models.ReasonNotOwner, decision.Reason)
}

func TestFeatureGates(t *testing.T) {
	f := newEntitlementFixture(t)
	free := f.addUser(t, 0, true)
	premium := f.addUser(t, 1, true)
	forever := f.addUser(t, 2, true)

	decision, err := f.svc.CanUseAI(free.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReasonUpgradeRequired, decision.Reason)

	decision, err = f.svc.CanUseAI(premium.ID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = f.svc.CanExport(free.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReasonUpgradeRequired, decision.Reason)

	decision, err = f.svc.CanExport(premium.ID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)

	decision, err = f.svc.CanUseCustomDomain(premium.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReasonUpgradeRequired, decision.Reason)

	decision, err = f.svc.CanUseCustomDomain(forever.ID)
	require.NoError(t, err)
	assert.True(t, decision.Allowed)
}

func TestAIGateRequiresVerifiedEmail(t *testing.T) {
	f := newEntitlementFixture(t)
	premium := f.addUser(t, 1, false)

	decision, err := f.svc.CanUseAI(premium.ID)
	require.NoError(t, err)
	assert.Equal(t, models.ReasonEmailNotVerified, decision.Reason)
}

func TestDecisionIsSideEffectFree(t *testing.T) {
	f := newEntitlementFixture(t)
	user := f.addUser(t, 0, true)
	f.addMemorial(t, user.ID, "m1")

	first, err := f.svc.CanCreateMemorial(user.ID)
	require.NoError(t, err)
	second, err := f.svc.CanCreateMemorial(user.ID)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestLimitFromMax(t *testing.T) {
	unlimited := models.LimitFromMax(models.UnlimitedSentinel)
	assert.True(t, unlimited.Allows(0))
	assert.True(t, unlimited.Allows(1_000_000))

	one := models.LimitFromMax(1)
	assert.True(t, one.Allows(0))
	assert.False(t, one.Allows(1))

	zero := models.LimitFromMax(0)
	assert.False(t, zero.Allows(0))
}
