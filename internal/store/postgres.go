package store

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"nudgeup/pkg/utils"
)

// PartitionRecord is one key-value row. A single table holds every
// partition; (owner_id, kind, key) is the record identity.
type PartitionRecord struct {
	OwnerID string `gorm:"primaryKey;column:owner_id"`
	Kind    string `gorm:"primaryKey"`
	Key     string `gorm:"primaryKey"`
	Value   []byte `gorm:"type:jsonb"`
}

func (PartitionRecord) TableName() string {
	return "partition_records"
}

type PostgresStore struct {
	db *gorm.DB
}

func NewPostgresStore(db *gorm.DB) (*PostgresStore, error) {
	if err := db.AutoMigrate(&PartitionRecord{}); err != nil {
		return nil, err
	}
	return &PostgresStore{db: db}, nil
}

func (s *PostgresStore) Get(ctx context.Context, ownerID, kind, key string) ([]byte, error) {
	var rec PartitionRecord
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND key = ?", ownerID, kind, key).
		First(&rec).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return rec.Value, nil
}

func (s *PostgresStore) Set(ctx context.Context, ownerID, kind, key string, value []byte) error {
	rec := PartitionRecord{OwnerID: ownerID, Kind: kind, Key: key, Value: value}
	err := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "owner_id"}, {Name: "kind"}, {Name: "key"}},
			DoUpdates: clause.AssignmentColumns([]string{"value"}),
		}).
		Create(&rec).Error
	if err != nil {
		if isQuotaError(err) {
			return utils.ErrStorageFull
		}
		return err
	}
	return nil
}

// disk_full and configuration_limit_exceeded; the write is rejected
// whole, nothing partial lands.
func isQuotaError(err error) bool {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return false
	}
	return pgErr.Code == "53100" || pgErr.Code == "53400"
}

func (s *PostgresStore) Delete(ctx context.Context, ownerID, kind, key string) error {
	return s.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ? AND key = ?", ownerID, kind, key).
		Delete(&PartitionRecord{}).Error
}

func (s *PostgresStore) ListKeys(ctx context.Context, ownerID, kind, prefix string) ([]string, error) {
	var keys []string
	q := s.db.WithContext(ctx).Model(&PartitionRecord{}).
		Where("owner_id = ? AND kind = ?", ownerID, kind)
	if prefix != "" {
		q = q.Where("key LIKE ?", escapeLike(prefix)+"%")
	}
	if err := q.Pluck("key", &keys).Error; err != nil {
		return nil, err
	}
	return keys, nil
}

func (s *PostgresStore) ListPartitions(ctx context.Context) ([]string, error) {
	var owners []string
	err := s.db.WithContext(ctx).Model(&PartitionRecord{}).
		Distinct("owner_id").
		Where("owner_id <> ?", SharedPartition).
		Pluck("owner_id", &owners).Error
	if err != nil {
		return nil, err
	}
	return owners, nil
}

func (s *PostgresStore) ReadPartition(ctx context.Context, ownerID, kind string) (map[string][]byte, error) {
	var recs []PartitionRecord
	err := s.db.WithContext(ctx).
		Where("owner_id = ? AND kind = ?", ownerID, kind).
		Find(&recs).Error
	if err != nil {
		return nil, err
	}
	out := make(map[string][]byte, len(recs))
	for _, rec := range recs {
		out[rec.Key] = rec.Value
	}
	return out, nil
}

func escapeLike(s string) string {
	out := make([]byte, 0, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '%', '_', '\\':
			out = append(out, '\\')
		}
		out = append(out, s[i])
	}
	return string(out)
}
