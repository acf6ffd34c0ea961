package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"runtime"
	"strings"
	"sync"
	"time"

	"hospital-management-system/internal/delivery/dto"
	"hospital-management-system/internal/delivery/http/middleware"
	"hospital-management-system/internal/domain/entity"
	"hospital-management-system/internal/service"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cast"
	"gorm.io/gorm"
)

const (
	ApplicationName    = "Hospital Management System"
	ApplicationVersion = "1.0.0"

	SettingMaxLoginAttempts = "security.maxLoginAttempts"
)

var (
	ErrSettingNotFound     = fmt.Errorf("%w: setting not found", ErrNotFound)
	ErrSettingCategory     = fmt.Errorf("%w: unknown settings category", ErrInvalidEnumValue)
	ErrSettingTypeMismatch = fmt.Errorf("%w: setting value has the wrong type", ErrValidationConflict)
	ErrSettingValueMissing = fmt.Errorf("%w: setting value is required", ErrInvalidInput)
)

type settingDefault struct {
	key   string
	value interface{}
}

var defaultSettings = []settingDefault{
	{"hospital.name", "City General Hospital"},
	{"hospital.address", "123 Medical Center Drive, Healthcare City"},
	{"hospital.phone", "+1-555-HOSPITAL"},
	{"hospital.email", "info@citygeneralhospital.com"},
	{"hospital.website", "www.citygeneralhospital.com"},

	{"system.timezone", "America/New_York"},
	{"system.dateFormat", "MM/dd/yyyy"},
	{"system.timeFormat", "12-hour"},
	{"system.language", "English"},
	{"system.currency", "USD"},

	{"security.sessionTimeout", 30},
	{"security.passwordMinLength", 8},
	{"security.requireSpecialChars", true},
	{"security.maxLoginAttempts", 5},
	{"security.twoFactorAuth", false},

	{"notifications.email.enabled", true},
	{"notifications.sms.enabled", false},
	{"notifications.appointment.reminder", true},
	{"notifications.system.alerts", true},

	{"backup.autoBackup", true},
	{"backup.frequency", "daily"},
	{"backup.retentionDays", 30},
	{"backup.location", "./backups/"},

	{"performance.cacheEnabled", true},
	{"performance.maxConcurrentUsers", 100},
	{"performance.sessionCleanupInterval", 60},

	{"integration.apiEnabled", true},
	{"integration.webhooksEnabled", false},
	{"integration.externalSystems", "none"},
}

// settingCategories maps the category names shown to clients to the key
// prefix they group. "general" holds the hospital.* keys.
var settingCategories = map[string]string{
	"general":       "hospital",
	"system":        "system",
	"security":      "security",
	"notifications": "notifications",
	"backup":        "backup",
	"performance":   "performance",
	"integration":   "integration",
}

type SettingsUsecase interface {
	// Load merges persisted settings over the defaults. Unknown or
	// ill-typed persisted values are skipped.
	Load(ctx context.Context) error
	GetAll(ctx context.Context) map[string]map[string]interface{}
	GetCategory(ctx context.Context, category string) (map[string]interface{}, error)
	Get(ctx context.Context, key string) (*dto.SettingResponse, error)
	Update(ctx context.Context, category, key string, value interface{}) (*dto.SettingResponse, error)
	// UpdateMany applies every value or none of them.
	UpdateMany(ctx context.Context, values map[string]interface{}) (map[string]interface{}, error)
	Import(ctx context.Context, values map[string]interface{}) (map[string]interface{}, error)
	Export(ctx context.Context) map[string]interface{}
	Reset(ctx context.Context) (map[string]interface{}, error)
	SystemInfo(ctx context.Context) *dto.SystemInfoResponse
	// MaxLoginAttempts is the failed-login budget before sign-in is refused.
	MaxLoginAttempts() int
}

type settingsUsecase struct {
	db           *gorm.DB
	log          *logrus.Logger
	store        service.SettingsStore
	auditService service.AuditService
	environment  string
	startedAt    time.Time
	now          func() time.Time

	mu     sync.RWMutex
	values map[string]interface{}
}

// NewSettingsUsecase starts from the defaults. store may be nil, in which case
// settings live only in memory.
func NewSettingsUsecase(
	db *gorm.DB,
	log *logrus.Logger,
	store service.SettingsStore,
	auditService service.AuditService,
	environment string,
) SettingsUsecase {
	return &settingsUsecase{
		db:           db,
		log:          log,
		store:        store,
		auditService: auditService,
		environment:  environment,
		startedAt:    time.Now(),
		now:          time.Now,
		values:       defaultSettingValues(),
	}
}

func defaultSettingValues() map[string]interface{} {
	values := make(map[string]interface{}, len(defaultSettings))
	for _, d := range defaultSettings {
		values[d.key] = d.value
	}
	return values
}

func defaultFor(key string) (interface{}, bool) {
	for _, d := range defaultSettings {
		if d.key == key {
			return d.value, true
		}
	}
	return nil, false
}

// coerceSetting converts raw to the type of the key's default value.
func coerceSetting(key string, raw interface{}) (interface{}, error) {
	def, ok := defaultFor(key)
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSettingNotFound, key)
	}
	if raw == nil {
		return nil, fmt.Errorf("%w: %s", ErrSettingValueMissing, key)
	}
	if n, ok := raw.(json.Number); ok {
		raw = n.String()
	}

	var (
		value interface{}
		err   error
	)
	switch def.(type) {
	case int:
		if _, isBool := raw.(bool); isBool {
			return nil, fmt.Errorf("%w: %s expects a number", ErrSettingTypeMismatch, key)
		}
		value, err = cast.ToIntE(raw)
	case bool:
		value, err = cast.ToBoolE(raw)
	default:
		value, err = cast.ToStringE(raw)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: %s expects a %T", ErrSettingTypeMismatch, key, def)
	}
	return value, nil
}

func (u *settingsUsecase) Load(ctx context.Context) error {
	if u.store == nil {
		return nil
	}

	stored, err := u.store.Load(ctx)
	if err != nil {
		u.log.Warnf("Failed to load settings: %+v", err)
		return storeError(err)
	}

	u.mu.Lock()
	defer u.mu.Unlock()
	for key, raw := range stored {
		value, err := coerceSetting(key, raw)
		if err != nil {
			u.log.Warnf("Skipping stored setting %s: %v", key, err)
			continue
		}
		u.values[key] = value
	}
	return nil
}

func (u *settingsUsecase) GetAll(ctx context.Context) map[string]map[string]interface{} {
	u.mu.RLock()
	defer u.mu.RUnlock()

	all := make(map[string]map[string]interface{}, len(settingCategories))
	for category, prefix := range settingCategories {
		all[category] = u.categoryLocked(prefix)
	}
	return all
}

func (u *settingsUsecase) categoryLocked(prefix string) map[string]interface{} {
	values := make(map[string]interface{})
	for key, value := range u.values {
		if rest, ok := strings.CutPrefix(key, prefix+"."); ok {
			values[rest] = value
		}
	}
	return values
}

func (u *settingsUsecase) GetCategory(ctx context.Context, category string) (map[string]interface{}, error) {
	prefix, err := settingPrefix(category)
	if err != nil {
		return nil, err
	}

	u.mu.RLock()
	defer u.mu.RUnlock()
	return u.categoryLocked(prefix), nil
}

// settingPrefix accepts either a category name or a key prefix.
func settingPrefix(category string) (string, error) {
	category = strings.TrimSpace(category)
	if prefix, ok := settingCategories[category]; ok {
		return prefix, nil
	}
	for _, prefix := range settingCategories {
		if prefix == category {
			return prefix, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrSettingCategory, category)
}

func (u *settingsUsecase) Get(ctx context.Context, key string) (*dto.SettingResponse, error) {
	u.mu.RLock()
	defer u.mu.RUnlock()

	value, ok := u.values[key]
	if !ok {
		return nil, ErrSettingNotFound
	}
	return &dto.SettingResponse{Key: key, Value: value}, nil
}

func (u *settingsUsecase) Update(ctx context.Context, category, key string, value interface{}) (*dto.SettingResponse, error) {
	prefix, err := settingPrefix(category)
	if err != nil {
		return nil, err
	}

	fullKey := prefix + "." + key
	updated, err := u.apply(ctx, map[string]interface{}{fullKey: value}, "update")
	if err != nil {
		return nil, err
	}
	return &dto.SettingResponse{Key: fullKey, Value: updated[fullKey]}, nil
}

func (u *settingsUsecase) UpdateMany(ctx context.Context, values map[string]interface{}) (map[string]interface{}, error) {
	return u.apply(ctx, values, "update")
}

func (u *settingsUsecase) Import(ctx context.Context, values map[string]interface{}) (map[string]interface{}, error) {
	return u.apply(ctx, values, "import")
}

// apply validates every value, persists the batch and only then swaps it
// into memory.
func (u *settingsUsecase) apply(ctx context.Context, values map[string]interface{}, source string) (map[string]interface{}, error) {
	coerced := make(map[string]interface{}, len(values))
	for key, raw := range values {
		value, err := coerceSetting(key, raw)
		if err != nil {
			return nil, err
		}
		coerced[key] = value
	}

	u.mu.Lock()
	defer u.mu.Unlock()

	old := make(map[string]interface{}, len(coerced))
	for key := range coerced {
		old[key] = u.values[key]
	}

	if u.store != nil {
		if err := u.store.Save(ctx, coerced); err != nil {
			u.log.Warnf("Failed to save settings: %+v", err)
			return nil, storeError(err)
		}
	}

	for key, value := range coerced {
		u.values[key] = value
	}

	u.audit(ctx, entity.AuditActionSettingsUpdate, entity.JSON{
		"source":    source,
		"old_value": old,
		"new_value": coerced,
	})

	return coerced, nil
}

func (u *settingsUsecase) Export(ctx context.Context) map[string]interface{} {
	u.mu.RLock()
	defer u.mu.RUnlock()

	out := make(map[string]interface{}, len(u.values))
	for key, value := range u.values {
		out[key] = value
	}
	return out
}

func (u *settingsUsecase) Reset(ctx context.Context) (map[string]interface{}, error) {
	defaults := defaultSettingValues()

	u.mu.Lock()
	defer u.mu.Unlock()

	if u.store != nil {
		if err := u.store.Replace(ctx, defaults); err != nil {
			u.log.Warnf("Failed to reset settings: %+v", err)
			return nil, storeError(err)
		}
	}
	u.values = defaults

	u.audit(ctx, entity.AuditActionSettingsReset, nil)

	out := make(map[string]interface{}, len(defaults))
	for key, value := range defaults {
		out[key] = value
	}
	return out, nil
}

func (u *settingsUsecase) audit(ctx context.Context, action string, details entity.JSON) {
	if u.auditService == nil || u.db == nil {
		return
	}
	actorID, _ := middleware.GetUserIDFromContext(ctx)
	if err := u.auditService.LogEvent(ctx, u.db, &actorID, action, details); err != nil {
		u.log.Warnf("Failed to create audit log: %+v", err)
	}
}

func (u *settingsUsecase) MaxLoginAttempts() int {
	u.mu.RLock()
	defer u.mu.RUnlock()

	attempts, err := cast.ToIntE(u.values[SettingMaxLoginAttempts])
	if err != nil || attempts <= 0 {
		return 5
	}
	return attempts
}

func (u *settingsUsecase) SystemInfo(ctx context.Context) *dto.SystemInfoResponse {
	var mem runtime.MemStats
	runtime.ReadMemStats(&mem)

	usage := 0.0
	if mem.Sys > 0 {
		usage = float64(mem.HeapInuse) * 100 / float64(mem.Sys)
	}

	return &dto.SystemInfoResponse{
		GoVersion:          runtime.Version(),
		OS:                 runtime.GOOS,
		Arch:               runtime.GOARCH,
		NumCPU:             runtime.NumCPU(),
		NumGoroutine:       runtime.NumGoroutine(),
		ServerTime:         u.now(),
		Uptime:             formatUptime(u.now().Sub(u.startedAt)),
		AllocatedMemory:    formatMemory(mem.Alloc),
		SystemMemory:       formatMemory(mem.Sys),
		HeapInUse:          formatMemory(mem.HeapInuse),
		MemoryUsagePercent: roundPercent(usage),
		ApplicationName:    ApplicationName,
		Version:            ApplicationVersion,
		Environment:        u.environment,
	}
}

func formatMemory(bytes uint64) string {
	const unit = 1024
	switch {
	case bytes < unit:
		return fmt.Sprintf("%d B", bytes)
	case bytes < unit*unit:
		return fmt.Sprintf("%.1f KB", float64(bytes)/unit)
	case bytes < unit*unit*unit:
		return fmt.Sprintf("%.1f MB", float64(bytes)/(unit*unit))
	default:
		return fmt.Sprintf("%.1f GB", float64(bytes)/(unit*unit*unit))
	}
}

func formatUptime(d time.Duration) string {
	minutes := int64(d / time.Minute)
	hours := minutes / 60
	days := hours / 24

	switch {
	case days > 0:
		return fmt.Sprintf("%d days, %d hours", days, hours%24)
	case hours > 0:
		return fmt.Sprintf("%d hours, %d minutes", hours, minutes%60)
	default:
		return fmt.Sprintf("%d minutes", minutes)
	}
}
