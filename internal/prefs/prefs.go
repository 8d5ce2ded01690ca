package prefs

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"scanpay_back_end/internal/apperr"
	"scanpay_back_end/internal/models"
)

const keyPrefix = "scanpay-storage:"

var themes = map[string]bool{"light": true, "dark": true, "auto": true}

func storageKey(owner string) string {
	return keyPrefix + strings.ToLower(strings.TrimSpace(owner))
}

// Store keeps the customer's profile and settings in one Redis key so they outlive the session.
type Store struct {
	rdb *redis.Client
	now func() time.Time
}

func NewStore(rdb *redis.Client) *Store {
	return &Store{rdb: rdb, now: time.Now}
}

// Defaults is what a customer sees before ever editing anything.
func Defaults(email string, now time.Time) models.Preferences {
	name, _, _ := strings.Cut(email, "@")
	if name == "" {
		name = "Guest"
	}
	return models.Preferences{
		Profile: models.UserProfile{
			Name:       name,
			Email:      email,
			Membership: "Gold",
			JoinedDate: now.UTC().Format(time.RFC3339),
		},
		Settings: models.Settings{
			Notifications:      true,
			EmailNotifications: true,
			Theme:              "light",
			Language:           "English",
		},
	}
}

// Get loads the stored preferences, creating the defaults on first access.
func (s *Store) Get(ctx context.Context, owner string) (models.Preferences, error) {
	data, err := s.rdb.Get(ctx, storageKey(owner)).Bytes()
	if errors.Is(err, redis.Nil) {
		p := Defaults(owner, s.now())
		return p, s.save(ctx, owner, p)
	}
	if err != nil {
		return models.Preferences{}, err
	}
	var p models.Preferences
	if err := json.Unmarshal(data, &p); err != nil {
		return models.Preferences{}, fmt.Errorf("decode preferences of %s: %w", owner, err)
	}
	return p, nil
}

func (s *Store) UpdateProfile(ctx context.Context, owner string, patch models.ProfilePatch) (models.UserProfile, error) {
	p, err := s.Get(ctx, owner)
	if err != nil {
		return models.UserProfile{}, err
	}
	if patch.Name != nil {
		name := strings.TrimSpace(*patch.Name)
		if name == "" {
			return models.UserProfile{}, apperr.New(apperr.KindInvalidInput, "Name cannot be empty")
		}
		p.Profile.Name = name
	}
	if patch.Email != nil {
		email := strings.TrimSpace(*patch.Email)
		if !strings.Contains(email, "@") {
			return models.UserProfile{}, apperr.New(apperr.KindInvalidInput, "Invalid email address")
		}
		p.Profile.Email = email
	}
	if patch.Phone != nil {
		p.Profile.Phone = strings.TrimSpace(*patch.Phone)
	}
	return p.Profile, s.save(ctx, owner, p)
}

func (s *Store) UpdateSettings(ctx context.Context, owner string, patch models.SettingsPatch) (models.Settings, error) {
	p, err := s.Get(ctx, owner)
	if err != nil {
		return models.Settings{}, err
	}
	if patch.Theme != nil && !themes[*patch.Theme] {
		return models.Settings{}, apperr.Newf(apperr.KindInvalidInput, "Unknown theme %q", *patch.Theme)
	}
	if patch.Notifications != nil {
		p.Settings.Notifications = *patch.Notifications
	}
	if patch.EmailNotifications != nil {
		p.Settings.EmailNotifications = *patch.EmailNotifications
	}
	if patch.SMSNotifications != nil {
		p.Settings.SMSNotifications = *patch.SMSNotifications
	}
	if patch.Theme != nil {
		p.Settings.Theme = *patch.Theme
	}
	if patch.Language != nil {
		p.Settings.Language = *patch.Language
	}
	return p.Settings, s.save(ctx, owner, p)
}

// ToggleSetting flips a boolean setting. Non-boolean keys are rejected.
func (s *Store) ToggleSetting(ctx context.Context, owner, key string) (models.Settings, error) {
	p, err := s.Get(ctx, owner)
	if err != nil {
		return models.Settings{}, err
	}
	switch key {
	case "notifications":
		p.Settings.Notifications = !p.Settings.Notifications
	case "emailNotifications":
		p.Settings.EmailNotifications = !p.Settings.EmailNotifications
	case "smsNotifications":
		p.Settings.SMSNotifications = !p.Settings.SMSNotifications
	default:
		return models.Settings{}, apperr.Newf(apperr.KindInvalidInput, "Setting %q cannot be toggled", key)
	}
	return p.Settings, s.save(ctx, owner, p)
}

// RecordOrder bumps the order counter and the accumulated savings.
func (s *Store) RecordOrder(ctx context.Context, owner string, savings int) (models.UserProfile, error) {
	p, err := s.Get(ctx, owner)
	if err != nil {
		return models.UserProfile{}, err
	}
	p.Profile.TotalOrders++
	if savings > 0 {
		p.Profile.TotalSavings += savings
	}
	return p.Profile, s.save(ctx, owner, p)
}

func (s *Store) save(ctx context.Context, owner string, p models.Preferences) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	return s.rdb.Set(ctx, storageKey(owner), data, 0).Err()
}
