package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrSettingsNotFound = errors.New("settings not found")

// Settings holds the service's persisted runtime configuration.
type Settings struct {
	Host         string
	Port         int
	DiscoveryURL string
	MQTTBroker   string
	CreatedAt    time.Time
}

// Address returns the API server listen address (host:port).
func (s *Settings) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

// LoadSettings returns the service settings row.
func (db *DB) LoadSettings(ctx context.Context) (*Settings, error) {
	s := &Settings{}
	var createdAt string
	err := db.QueryRowContext(ctx, `
		SELECT host, port, discovery_url, mqtt_broker, created_at
		FROM settings WHERE id = 1
	`).Scan(&s.Host, &s.Port, &s.DiscoveryURL, &s.MQTTBroker, &createdAt)
	if err == sql.ErrNoRows {
		return nil, ErrSettingsNotFound
	}
	if err != nil {
		return nil, err
	}
	s.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	return s, nil
}

// SaveSettings replaces the service settings row.
func (db *DB) SaveSettings(ctx context.Context, s *Settings) error {
	_, err := db.ExecContext(ctx, `
		UPDATE settings SET host = ?, port = ?, discovery_url = ?, mqtt_broker = ?
		WHERE id = 1
	`, s.Host, s.Port, s.DiscoveryURL, s.MQTTBroker)
	if err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}
	return nil
}

// Bootstrap initializes the database with default data if it's empty.
// This is called after migrations and handles first-run setup.
func (db *DB) Bootstrap(ctx context.Context) error {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&count)
	if err != nil {
		return fmt.Errorf("failed to check settings: %w", err)
	}

	if count > 0 {
		return nil // Already bootstrapped
	}

	_, err = db.ExecContext(ctx, `
		INSERT INTO settings (id, host, port) VALUES (1, '0.0.0.0', 8080)
	`)
	if err != nil {
		return fmt.Errorf("failed to create default settings: %w", err)
	}

	return nil
}

// NeedsBootstrap returns true if the database needs initial setup.
func (db *DB) NeedsBootstrap(ctx context.Context) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM settings`).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}
