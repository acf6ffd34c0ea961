package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const (
	// SettingsHashKey is the redis hash holding one field per dotted setting key.
	SettingsHashKey = "settings:system"

	redisSettingsTimeout = 5 * time.Second
)

// SettingsStore persists system settings outside the process so they survive restarts.
type SettingsStore interface {
	Load(ctx context.Context) (map[string]interface{}, error)
	Save(ctx context.Context, values map[string]interface{}) error
	Replace(ctx context.Context, values map[string]interface{}) error
}

type redisSettingsStore struct {
	client *redis.Client
	key    string
}

func NewRedisSettingsStore(client *redis.Client) SettingsStore {
	return &redisSettingsStore{client: client, key: SettingsHashKey}
}

// Load returns every stored setting. Values are JSON-decoded, so numbers come
// back as json.Number.
func (s *redisSettingsStore) Load(ctx context.Context) (map[string]interface{}, error) {
	ctx, cancel := context.WithTimeout(ctx, redisSettingsTimeout)
	defer cancel()

	raw, err := s.client.HGetAll(ctx, s.key).Result()
	if err != nil {
		return nil, fmt.Errorf("load settings: %w", err)
	}

	values := make(map[string]interface{}, len(raw))
	for field, encoded := range raw {
		var v interface{}
		dec := json.NewDecoder(strings.NewReader(encoded))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			return nil, fmt.Errorf("decode setting %s: %w", field, err)
		}
		values[field] = v
	}
	return values, nil
}

// Save merges values into the stored settings.
func (s *redisSettingsStore) Save(ctx context.Context, values map[string]interface{}) error {
	if len(values) == 0 {
		return nil
	}
	fields, err := encodeSettings(values)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, redisSettingsTimeout)
	defer cancel()

	if err := s.client.HSet(ctx, s.key, fields).Err(); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}
	return nil
}

// Replace drops everything stored and writes values in one MULTI/EXEC.
func (s *redisSettingsStore) Replace(ctx context.Context, values map[string]interface{}) error {
	fields, err := encodeSettings(values)
	if err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(ctx, redisSettingsTimeout)
	defer cancel()

	_, err = s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Del(ctx, s.key)
		if len(fields) > 0 {
			pipe.HSet(ctx, s.key, fields)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("replace settings: %w", err)
	}
	return nil
}

func encodeSettings(values map[string]interface{}) (map[string]interface{}, error) {
	fields := make(map[string]interface{}, len(values))
	for key, v := range values {
		encoded, err := json.Marshal(v)
		if err != nil {
			return nil, fmt.Errorf("encode setting %s: %w", key, err)
		}
		fields[key] = string(encoded)
	}
	return fields, nil
}
