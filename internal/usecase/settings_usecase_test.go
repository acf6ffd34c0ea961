package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/repository/memory"
	"hospital-management-system/internal/service"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeSettingsStore keeps settings in a map the way the redis hash would.
type fakeSettingsStore struct {
	values map[string]interface{}
	err    error
}

func newFakeSettingsStore(values map[string]interface{}) *fakeSettingsStore {
	if values == nil {
		values = map[string]interface{}{}
	}
	return &fakeSettingsStore{values: values}
}

func (s *fakeSettingsStore) Load(context.Context) (map[string]interface{}, error) {
	if s.err != nil {
		return nil, s.err
	}
	out := make(map[string]interface{}, len(s.values))
	for k, v := range s.values {
		out[k] = v
	}
	return out, nil
}

func (s *fakeSettingsStore) Save(_ context.Context, values map[string]interface{}) error {
	if s.err != nil {
		return s.err
	}
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

func (s *fakeSettingsStore) Replace(_ context.Context, values map[string]interface{}) error {
	if s.err != nil {
		return s.err
	}
	s.values = make(map[string]interface{}, len(values))
	for k, v := range values {
		s.values[k] = v
	}
	return nil
}

type settingsFixture struct {
	usecase   SettingsUsecase
	store     *fakeSettingsStore
	auditLogs *memory.AuditLogRepository
}

func newSettingsFixture(t *testing.T, stored map[string]interface{}) *settingsFixture {
	t.Helper()
	log := quietLogger()
	store := newFakeSettingsStore(stored)
	auditRepo := memory.NewAuditLogRepository()
	uc := NewSettingsUsecase(newTestDB(t), log, store, service.NewAuditService(log, auditRepo), "test")
	return &settingsFixture{usecase: uc, store: store, auditLogs: auditRepo}
}

func TestSettings_Defaults(t *testing.T) {
	f := newSettingsFixture(t, nil)
	ctx := context.Background()

	all := f.usecase.GetAll(ctx)
	assert.Len(t, all, 7)
	assert.Equal(t, "City General Hospital", all["general"]["name"])
	assert.Equal(t, 5, all["security"]["maxLoginAttempts"])
	assert.Equal(t, false, all["security"]["twoFactorAuth"])
	assert.Equal(t, true, all["notifications"]["email.enabled"])

	assert.Len(t, f.usecase.Export(ctx), len(defaultSettings))
	assert.Equal(t, 5, f.usecase.MaxLoginAttempts())
}

func TestSettings_GetCategoryAcceptsPrefix(t *testing.T) {
	f := newSettingsFixture(t, nil)

	general, err := f.usecase.GetCategory(context.Background(), "general")
	require.NoError(t, err)
	hospital, err := f.usecase.GetCategory(context.Background(), "hospital")
	require.NoError(t, err)
	assert.Equal(t, general, hospital)
	assert.Len(t, general, 5)

	_, err = f.usecase.GetCategory(context.Background(), "billing")
	assert.ErrorIs(t, err, ErrSettingCategory)
	assert.ErrorIs(t, err, ErrInvalidEnumValue)
}

func TestSettings_UpdateCoercesToDefaultType(t *testing.T) {
	f := newSettingsFixture(t, nil)
	ctx := context.Background()

	res, err := f.usecase.Update(ctx, "security", "maxLoginAttempts", json.Number("3"))
	require.NoError(t, err)
	assert.Equal(t, "security.maxLoginAttempts", res.Key)
	assert.Equal(t, 3, res.Value)
	assert.Equal(t, 3, f.usecase.MaxLoginAttempts())
	assert.Equal(t, 3, f.store.values["security.maxLoginAttempts"])

	res, err = f.usecase.Update(ctx, "security", "twoFactorAuth", "true")
	require.NoError(t, err)
	assert.Equal(t, true, res.Value)

	res, err = f.usecase.Update(ctx, "security", "requireSpecialChars", false)
	require.NoError(t, err)
	assert.Equal(t, false, res.Value)

	setting, err := f.usecase.Get(ctx, "security.requireSpecialChars")
	require.NoError(t, err)
	assert.Equal(t, false, setting.Value)

	logs, err := f.auditLogs.FindAll(nil)
	require.NoError(t, err)
	require.Len(t, logs, 3)
	assert.Equal(t, entity.AuditActionSettingsUpdate, logs[0].Action)
}

func TestSettings_UpdateRejections(t *testing.T) {
	f := newSettingsFixture(t, nil)
	ctx := context.Background()

	_, err := f.usecase.Update(ctx, "security", "maxLoginAttempts", "many")
	assert.ErrorIs(t, err, ErrSettingTypeMismatch)

	_, err = f.usecase.Update(ctx, "security", "maxLoginAttempts", true)
	assert.ErrorIs(t, err, ErrSettingTypeMismatch)

	_, err = f.usecase.Update(ctx, "security", "twoFactorAuth", "maybe")
	assert.ErrorIs(t, err, ErrSettingTypeMismatch)

	_, err = f.usecase.Update(ctx, "security", "favouriteColour", "blue")
	assert.ErrorIs(t, err, ErrSettingNotFound)

	_, err = f.usecase.Update(ctx, "security", "sessionTimeout", nil)
	assert.ErrorIs(t, err, ErrSettingValueMissing)

	_, err = f.usecase.Update(ctx, "billing", "currency", "EUR")
	assert.ErrorIs(t, err, ErrSettingCategory)

	assert.Equal(t, 5, f.usecase.MaxLoginAttempts())
	assert.Empty(t, f.store.values)
}

func TestSettings_UpdateManyIsAllOrNothing(t *testing.T) {
	f := newSettingsFixture(t, nil)
	ctx := context.Background()

	_, err := f.usecase.UpdateMany(ctx, map[string]interface{}{
		"system.currency":         "EUR",
		"security.sessionTimeout": "soon",
	})
	assert.ErrorIs(t, err, ErrSettingTypeMismatch)

	currency, err := f.usecase.Get(ctx, "system.currency")
	require.NoError(t, err)
	assert.Equal(t, "USD", currency.Value)

	updated, err := f.usecase.UpdateMany(ctx, map[string]interface{}{
		"system.currency":         "EUR",
		"security.sessionTimeout": float64(45),
	})
	require.NoError(t, err)
	assert.Equal(t, map[string]interface{}{"system.currency": "EUR", "security.sessionTimeout": 45}, updated)
}

func TestSettings_StoreFailureKeepsMemory(t *testing.T) {
	f := newSettingsFixture(t, nil)
	f.store.err = errors.New("redis down")

	_, err := f.usecase.Update(context.Background(), "system", "currency", "EUR")
	assert.ErrorIs(t, err, ErrStoreUnavailable)

	currency, err := f.usecase.Get(context.Background(), "system.currency")
	require.NoError(t, err)
	assert.Equal(t, "USD", currency.Value)
}

func TestSettings_LoadSkipsInvalidValues(t *testing.T) {
	f := newSettingsFixture(t, map[string]interface{}{
		"security.maxLoginAttempts": json.Number("7"),
		"security.sessionTimeout":   "forever",
		"legacy.key":                "x",
	})

	require.NoError(t, f.usecase.Load(context.Background()))

	assert.Equal(t, 7, f.usecase.MaxLoginAttempts())
	timeout, err := f.usecase.Get(context.Background(), "security.sessionTimeout")
	require.NoError(t, err)
	assert.Equal(t, 30, timeout.Value)
	_, err = f.usecase.Get(context.Background(), "legacy.key")
	assert.ErrorIs(t, err, ErrSettingNotFound)
}

func TestSettings_Reset(t *testing.T) {
	f := newSettingsFixture(t, nil)
	ctx := context.Background()

	_, err := f.usecase.Import(ctx, map[string]interface{}{"backup.frequency": "weekly", "backup.retentionDays": 90})
	require.NoError(t, err)

	values, err := f.usecase.Reset(ctx)
	require.NoError(t, err)
	assert.Equal(t, "daily", values["backup.frequency"])
	assert.Equal(t, 30, values["backup.retentionDays"])
	assert.Len(t, f.store.values, len(defaultSettings))

	logs, err := f.auditLogs.FindAll(nil)
	require.NoError(t, err)
	require.Len(t, logs, 2)
	assert.Equal(t, entity.AuditActionSettingsReset, logs[0].Action)
}

func TestSettings_WithoutStore(t *testing.T) {
	uc := NewSettingsUsecase(nil, quietLogger(), nil, nil, "test")
	ctx := context.Background()

	require.NoError(t, uc.Load(ctx))
	_, err := uc.Update(ctx, "general", "name", "St. Elsewhere")
	require.NoError(t, err)

	name, err := uc.Get(ctx, "hospital.name")
	require.NoError(t, err)
	assert.Equal(t, "St. Elsewhere", name.Value)
}

func TestSystemInfo(t *testing.T) {
	f := newSettingsFixture(t, nil)
	uc := f.usecase.(*settingsUsecase)
	uc.startedAt = time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	uc.now = func() time.Time { return time.Date(2024, 1, 3, 5, 0, 0, 0, time.UTC) }

	info := f.usecase.SystemInfo(context.Background())
	assert.Equal(t, ApplicationName, info.ApplicationName)
	assert.Equal(t, ApplicationVersion, info.Version)
	assert.Equal(t, "test", info.Environment)
	assert.Equal(t, "2 days, 5 hours", info.Uptime)
	assert.NotEmpty(t, info.GoVersion)
}

func TestFormatMemory(t *testing.T) {
	assert.Equal(t, "512 B", formatMemory(512))
	assert.Equal(t, "1.5 KB", formatMemory(1536))
	assert.Equal(t, "2.0 MB", formatMemory(2*1024*1024))
	assert.Equal(t, "3.0 GB", formatMemory(3*1024*1024*1024))
}

func TestFormatUptime(t *testing.T) {
	assert.Equal(t, "0 minutes", formatUptime(30*time.Second))
	assert.Equal(t, "1 hours, 5 minutes", formatUptime(65*time.Minute))
}
