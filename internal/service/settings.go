package service

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gamestore-zarzis/backend/internal/domain"
	"github.com/gamestore-zarzis/backend/internal/repository"

	"github.com/hashicorp/golang-lru/v2/expirable"
)

// DefaultSMSEnabled is used whenever the sms toggle cannot be read.
const DefaultSMSEnabled = true

type settingsService struct {
	repo         repository.StoreSettings
	queryTimeout time.Duration
}

func newSettingsService(repo repository.StoreSettings, queryTimeout time.Duration) *settingsService {
	return &settingsService{
		repo:         repo,
		queryTimeout: queryTimeout,
	}
}

func (s *settingsService) SMSEnabled(ctx context.Context) (bool, error) {
	const op = "settingsService.SMSEnabled"

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	raw, err := s.repo.Get(ctx, domain.SettingSMSEnabled)
	if err != nil {
		return DefaultSMSEnabled, fmt.Errorf("%s: %w", op, err)
	}

	enabled, err := parseBoolSetting(raw)
	if err != nil {
		return DefaultSMSEnabled, fmt.Errorf("%s: %w", op, err)
	}

	return enabled, nil
}

func (s *settingsService) SetSMSEnabled(ctx context.Context, enabled bool) error {
	const op = "settingsService.SetSMSEnabled"

	ctx, cancel := withTimeout(ctx, s.queryTimeout)
	defer cancel()

	if err := s.repo.Set(ctx, domain.SettingSMSEnabled, []byte(strconv.FormatBool(enabled))); err != nil {
		return fmt.Errorf("%s: %w: %w", op, ErrStorage, err)
	}

	return nil
}

// parseBoolSetting accepts a JSON boolean or a JSON string holding one.
func parseBoolSetting(raw []byte) (bool, error) {
	raw = bytes.TrimSpace(raw)

	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b, nil
	}

	var str string
	if err := json.Unmarshal(raw, &str); err == nil {
		if v, err := strconv.ParseBool(strings.TrimSpace(str)); err == nil {
			return v, nil
		}
	}

	return false, fmt.Errorf("%w: %q", ErrInvalidSettingValue, raw)
}

const settingsCacheSize = 16

// WrapSettingsCache keeps successful reads for ttl. A zero ttl returns s unchanged.
func WrapSettingsCache(s Settings, ttl time.Duration) Settings {
	if s == nil || ttl <= 0 {
		return s
	}
	return &cachedSettings{
		next:  s,
		cache: expirable.NewLRU[string, bool](settingsCacheSize, nil, ttl),
	}
}

type cachedSettings struct {
	next  Settings
	cache *expirable.LRU[string, bool]
}

func (c *cachedSettings) SMSEnabled(ctx context.Context) (bool, error) {
	if cached, ok := c.cache.Get(domain.SettingSMSEnabled); ok {
		return cached, nil
	}

	enabled, err := c.next.SMSEnabled(ctx)
	if err != nil {
		return enabled, err
	}

	c.cache.Add(domain.SettingSMSEnabled, enabled)
	return enabled, nil
}

func (c *cachedSettings) SetSMSEnabled(ctx context.Context, enabled bool) error {
	if err := c.next.SetSMSEnabled(ctx, enabled); err != nil {
		return err
	}

	c.cache.Add(domain.SettingSMSEnabled, enabled)
	return nil
}
