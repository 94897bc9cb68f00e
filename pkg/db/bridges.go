package db

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"
)

var ErrBridgeNotFound = errors.New("bridge not found")

// Source classifies how a bridge record entered the system. The addon
// source outranks announcement-triggered flows when duplicates collide.
const (
	SourceUser     = "user"
	SourceAnnounce = "announce"
	SourceAddon    = "addon"
)

// Options are the per-bridge behavior toggles.
type Options struct {
	AllowVirtualSensors bool `json:"allow_virtual_sensors"`
	AllowGroups         bool `json:"allow_groups"`
	AllowNewDevices     bool `json:"allow_new_devices"`
}

// DefaultOptions returns the option values applied to new records.
func DefaultOptions() Options {
	return Options{
		AllowVirtualSensors: true,
		AllowGroups:         true,
		AllowNewDevices:     true,
	}
}

// Bridge is a registered gateway bridge. ID is the canonical bridge id and
// the unique key; at most one record exists per id.
type Bridge struct {
	ID        string
	Host      string
	Port      int
	APIKey    string
	Source    string
	Options   Options
	CreatedAt time.Time
	UpdatedAt time.Time
}

// BridgeStore provides bridge record CRUD operations.
type BridgeStore interface {
	Get(ctx context.Context, id string) (*Bridge, error)
	List(ctx context.Context) ([]*Bridge, error)
	Create(ctx context.Context, b *Bridge) error
	UpdateConnection(ctx context.Context, id, host string, port int, apiKey string) error
	UpdateOptions(ctx context.Context, id string, opts Options) error
	Delete(ctx context.Context, id string) error
}

// Bridges returns a BridgeStore for this database.
func (db *DB) Bridges() BridgeStore {
	return &bridgeStore{db: db}
}

type bridgeStore struct {
	db *DB
}

const bridgeColumns = `id, host, port, api_key, source,
	allow_virtual_sensors, allow_groups, allow_new_devices,
	created_at, updated_at`

func scanBridge(row interface{ Scan(...any) error }) (*Bridge, error) {
	b := &Bridge{}
	var createdAt, updatedAt string
	err := row.Scan(
		&b.ID, &b.Host, &b.Port, &b.APIKey, &b.Source,
		&b.Options.AllowVirtualSensors, &b.Options.AllowGroups, &b.Options.AllowNewDevices,
		&createdAt, &updatedAt,
	)
	if err != nil {
		return nil, err
	}
	b.CreatedAt, _ = time.Parse(time.DateTime, createdAt)
	b.UpdatedAt, _ = time.Parse(time.DateTime, updatedAt)
	return b, nil
}

func (s *bridgeStore) Get(ctx context.Context, id string) (*Bridge, error) {
	row := s.db.QueryRowContext(ctx, `
		SELECT `+bridgeColumns+` FROM bridges WHERE id = ?
	`, id)
	b, err := scanBridge(row)
	if err == sql.ErrNoRows {
		return nil, ErrBridgeNotFound
	}
	if err != nil {
		return nil, err
	}
	return b, nil
}

func (s *bridgeStore) List(ctx context.Context) ([]*Bridge, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT `+bridgeColumns+` FROM bridges ORDER BY id
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var bridges []*Bridge
	for rows.Next() {
		b, err := scanBridge(rows)
		if err != nil {
			return nil, err
		}
		bridges = append(bridges, b)
	}
	return bridges, rows.Err()
}

func (s *bridgeStore) Create(ctx context.Context, b *Bridge) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bridges (id, host, port, api_key, source,
			allow_virtual_sensors, allow_groups, allow_new_devices)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?)
	`, b.ID, b.Host, b.Port, b.APIKey, b.Source,
		b.Options.AllowVirtualSensors, b.Options.AllowGroups, b.Options.AllowNewDevices)
	if err != nil {
		return fmt.Errorf("failed to create bridge: %w", err)
	}
	return nil
}

// UpdateConnection refreshes the connection parameters of an existing
// record. An empty apiKey leaves the stored credential untouched.
func (s *bridgeStore) UpdateConnection(ctx context.Context, id, host string, port int, apiKey string) error {
	var res sql.Result
	var err error
	if apiKey == "" {
		res, err = s.db.ExecContext(ctx, `
			UPDATE bridges SET host = ?, port = ?, updated_at = datetime('now')
			WHERE id = ?
		`, host, port, id)
	} else {
		res, err = s.db.ExecContext(ctx, `
			UPDATE bridges SET host = ?, port = ?, api_key = ?, updated_at = datetime('now')
			WHERE id = ?
		`, host, port, apiKey, id)
	}
	if err != nil {
		return fmt.Errorf("failed to update bridge: %w", err)
	}
	return requireRow(res)
}

func (s *bridgeStore) UpdateOptions(ctx context.Context, id string, opts Options) error {
	res, err := s.db.ExecContext(ctx, `
		UPDATE bridges SET allow_virtual_sensors = ?, allow_groups = ?,
			allow_new_devices = ?, updated_at = datetime('now')
		WHERE id = ?
	`, opts.AllowVirtualSensors, opts.AllowGroups, opts.AllowNewDevices, id)
	if err != nil {
		return fmt.Errorf("failed to update bridge options: %w", err)
	}
	return requireRow(res)
}

func (s *bridgeStore) Delete(ctx context.Context, id string) error {
	res, err := s.db.ExecContext(ctx, `DELETE FROM bridges WHERE id = ?`, id)
	if err != nil {
		return fmt.Errorf("failed to delete bridge: %w", err)
	}
	return requireRow(res)
}

func requireRow(res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return ErrBridgeNotFound
	}
	return nil
}
