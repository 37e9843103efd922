package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Sentinel errors for save operations.
var (
	ErrSaveNotFound = errors.New("save not found")
	ErrInvalidName  = errors.New("invalid save name")
)

// SaveInfo describes a stored save without its snapshot.
type SaveInfo struct {
	ID        string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
	Solved    bool
	MoveCount int
	Elapsed   time.Duration
}

// SaveRepository provides CRUD operations for named saves. Saving an existing name replaces it
// and keeps its id.
type SaveRepository struct {
	db     *DB
	logger *zap.Logger
	now    func() time.Time
}

// SaveRepositoryOption is a functional option for configuring a SaveRepository.
type SaveRepositoryOption func(*SaveRepository)

// WithLogger sets the repository logger.
func WithLogger(logger *zap.Logger) SaveRepositoryOption {
	return func(r *SaveRepository) {
		if logger != nil {
			r.logger = logger
		}
	}
}

// WithClock replaces time.Now for timestamps.
func WithClock(now func() time.Time) SaveRepositoryOption {
	return func(r *SaveRepository) {
		r.now = now
	}
}

// NewSaveRepository creates a save repository on db.
func NewSaveRepository(db *DB, options ...SaveRepositoryOption) *SaveRepository {
	r := &SaveRepository{db: db, logger: zap.NewNop(), now: time.Now}
	for _, opt := range options {
		opt(r)
	}
	return r
}

func normalizeName(name string) (string, error) {
	n := strings.TrimSpace(name)
	if n == "" {
		return "", fmt.Errorf("%w: empty name", ErrInvalidName)
	}
	if len(n) > 128 {
		return "", fmt.Errorf("%w: %q is longer than 128 bytes", ErrInvalidName, n[:16]+"...")
	}
	return n, nil
}

func formatTime(t time.Time) string {
	return t.UTC().Format(time.RFC3339Nano)
}

func parseTime(s string) (time.Time, error) {
	return time.Parse(time.RFC3339Nano, s)
}

// Save stores snap under name, replacing any save with that name.
//
// Returns:
//   - SaveInfo: the stored save
//   - error: ErrInvalidName or a database error
func (r *SaveRepository) Save(ctx context.Context, name string, snap Snapshot) (SaveInfo, error) {
	name, err := normalizeName(name)
	if err != nil {
		return SaveInfo{}, err
	}
	blob, err := EncodeSnapshot(snap)
	if err != nil {
		return SaveInfo{}, fmt.Errorf("failed to encode snapshot: %w", err)
	}

	now := r.now().UTC()
	info := SaveInfo{
		Name:      name,
		CreatedAt: now,
		UpdatedAt: now,
		Solved:    snap.State.IsSolved(),
		MoveCount: len(snap.History),
		Elapsed:   snap.Elapsed,
	}

	err = r.db.Transaction(ctx, func(tx *sql.Tx) error {
		var id, created string
		err := tx.QueryRowContext(ctx, "SELECT save_id, created_at FROM saves WHERE name = ?", name).Scan(&id, &created)
		switch {
		case errors.Is(err, sql.ErrNoRows):
			info.ID = uuid.New().String()
			_, err = tx.ExecContext(ctx, `
				INSERT INTO saves (save_id, name, snapshot, created_at, updated_at, solved, move_count, elapsed_ms)
				VALUES (?, ?, ?, ?, ?, ?, ?, ?)
			`, info.ID, name, blob, formatTime(now), formatTime(now), info.Solved, info.MoveCount, info.Elapsed.Milliseconds())
			return err
		case err != nil:
			return err
		}

		info.ID = id
		if info.CreatedAt, err = parseTime(created); err != nil {
			return fmt.Errorf("failed to parse created_at: %w", err)
		}
		_, err = tx.ExecContext(ctx, `
			UPDATE saves
			SET snapshot = ?, updated_at = ?, solved = ?, move_count = ?, elapsed_ms = ?
			WHERE save_id = ?
		`, blob, formatTime(now), info.Solved, info.MoveCount, info.Elapsed.Milliseconds(), id)
		return err
	})
	if err != nil {
		return SaveInfo{}, fmt.Errorf("failed to save %q: %w", name, err)
	}

	r.logger.Info("game saved", zap.String("name", name), zap.String("id", info.ID), zap.Int("moves", info.MoveCount))
	return info, nil
}

// Load returns the snapshot stored under name.
//
// Returns:
//   - Snapshot: the saved game
//   - error: ErrSaveNotFound, ErrCorruptSave or a database error
func (r *SaveRepository) Load(ctx context.Context, name string) (Snapshot, error) {
	name, err := normalizeName(name)
	if err != nil {
		return Snapshot{}, err
	}

	var blob []byte
	err = r.db.QueryRowContext(ctx, "SELECT snapshot FROM saves WHERE name = ?", name).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return Snapshot{}, fmt.Errorf("%w: %q", ErrSaveNotFound, name)
	}
	if err != nil {
		return Snapshot{}, fmt.Errorf("failed to load %q: %w", name, err)
	}

	snap, err := DecodeSnapshot(blob)
	if err != nil {
		return Snapshot{}, fmt.Errorf("save %q: %w", name, err)
	}
	return snap, nil
}

// List returns every save, most recently updated first.
func (r *SaveRepository) List(ctx context.Context) ([]SaveInfo, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT save_id, name, created_at, updated_at, solved, move_count, elapsed_ms
		FROM saves
		ORDER BY updated_at DESC, name ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list saves: %w", err)
	}
	defer rows.Close()

	var saves []SaveInfo
	for rows.Next() {
		var (
			info             SaveInfo
			created, updated string
			elapsedMs        int64
		)
		if err := rows.Scan(&info.ID, &info.Name, &created, &updated, &info.Solved, &info.MoveCount, &elapsedMs); err != nil {
			return nil, fmt.Errorf("failed to scan save: %w", err)
		}
		if info.CreatedAt, err = parseTime(created); err != nil {
			return nil, fmt.Errorf("failed to parse created_at: %w", err)
		}
		if info.UpdatedAt, err = parseTime(updated); err != nil {
			return nil, fmt.Errorf("failed to parse updated_at: %w", err)
		}
		info.Elapsed = time.Duration(elapsedMs) * time.Millisecond
		saves = append(saves, info)
	}
	return saves, rows.Err()
}

// Delete removes the save stored under name.
//
// Returns:
//   - error: ErrSaveNotFound when no save has that name
func (r *SaveRepository) Delete(ctx context.Context, name string) error {
	name, err := normalizeName(name)
	if err != nil {
		return err
	}
	res, err := r.db.ExecContext(ctx, "DELETE FROM saves WHERE name = ?", name)
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to delete %q: %w", name, err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %q", ErrSaveNotFound, name)
	}
	r.logger.Info("save deleted", zap.String("name", name))
	return nil
}
