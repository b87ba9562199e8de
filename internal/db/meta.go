package db

import (
	"context"
	"time"
)

const metaSnapshotAt = "snapshot_at"

func GetMeta(ctx context.Context, key string) (string, error) {
	var val string
	err := db.QueryRowContext(ctx, `SELECT value FROM meta WHERE key = ?`, key).Scan(&val)
	if err != nil {
		return "", err
	}
	return val, nil
}

func SetMeta(ctx context.Context, key, value string) error {
	_, err := db.ExecContext(ctx, `
		INSERT INTO meta (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at`,
		key, value, time.Now().Unix())
	return err
}
