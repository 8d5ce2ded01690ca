package prefs

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
)

func newStore(t *testing.T) (*Store, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })
	return NewStore(rdb), mr
}

func ptr[T any](v T) *T { return &v }

func TestGetCreatesDefaultsUnderNamespacedKey(t *testing.T) {
	s, mr := newStore(t)
	p, err := s.Get(context.Background(), "Priya@example.com")
	require.NoError(t, err)

	assert.Equal(t, "Priya", p.Profile.Name)
	assert.Equal(t, "light", p.Settings.Theme)
	assert.True(t, p.Settings.Notifications)
	assert.True(t, mr.Exists("scanpay-storage:priya@example.com"))
}

func TestProfileSurvivesNewStore(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	_, err := s.UpdateProfile(ctx, "a@b.c", models.ProfilePatch{Name: ptr("Asha"), Phone: ptr("+91 98765 43210")})
	require.NoError(t, err)

	again := &Store{rdb: s.rdb, now: s.now}
	p, err := again.Get(ctx, "a@b.c")
	require.NoError(t, err)
	assert.Equal(t, "Asha", p.Profile.Name)
	assert.Equal(t, "+91 98765 43210", p.Profile.Phone)
}

func TestUpdateProfileValidates(t *testing.T) {
	s, _ := newStore(t)
	_, err := s.UpdateProfile(context.Background(), "a@b.c", models.ProfilePatch{Email: ptr("nope")})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
	_, err = s.UpdateProfile(context.Background(), "a@b.c", models.ProfilePatch{Name: ptr("  ")})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestUpdateSettingsThemes(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	got, err := s.UpdateSettings(ctx, "a@b.c", models.SettingsPatch{Theme: ptr("dark"), SMSNotifications: ptr(true)})
	require.NoError(t, err)
	assert.Equal(t, "dark", got.Theme)
	assert.True(t, got.SMSNotifications)

	_, err = s.UpdateSettings(ctx, "a@b.c", models.SettingsPatch{Theme: ptr("neon")})
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestToggleSettingBooleansOnly(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()

	got, err := s.ToggleSetting(ctx, "a@b.c", "emailNotifications")
	require.NoError(t, err)
	assert.False(t, got.EmailNotifications)

	got, err = s.ToggleSetting(ctx, "a@b.c", "emailNotifications")
	require.NoError(t, err)
	assert.True(t, got.EmailNotifications)

	_, err = s.ToggleSetting(ctx, "a@b.c", "theme")
	assert.Equal(t, apperr.KindInvalidInput, apperr.KindOf(err))
}

func TestRecordOrder(t *testing.T) {
	s, _ := newStore(t)
	ctx := context.Background()
	_, err := s.RecordOrder(ctx, "a@b.c", 20)
	require.NoError(t, err)
	p, err := s.RecordOrder(ctx, "a@b.c", 0)
	require.NoError(t, err)
	assert.Equal(t, 2, p.TotalOrders)
	assert.Equal(t, 20, p.TotalSavings)
}
