package history

import (
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Store persists compression records in a local sqlite database
type Store struct {
	db *gorm.DB
}

// Open creates a new store instance, migrating the schema as needed.
// gorm's default logger writes to stdout, which is reserved for the output
// envelope, so logging is discarded here.
func Open(dbPath string) (*Store, error) {
	db, err := gorm.Open(sqlite.Open(dbPath), &gorm.Config{Logger: logger.Discard})
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, err
	}

	return &Store{db: db}, nil
}

// Add appends one compression run
func (s *Store) Add(record *Record) error {
	return s.db.Create(record).Error
}

// Recent returns up to limit records, newest first
func (s *Store) Recent(limit int) ([]Record, error) {
	var records []Record
	err := s.db.Order("created_at desc, id desc").Limit(limit).Find(&records).Error
	return records, err
}

// Totals sums saved bytes and run count across all records
func (s *Store) Totals() (runs int64, saved int64, err error) {
	if err := s.db.Model(&Record{}).Count(&runs).Error; err != nil {
		return 0, 0, err
	}
	var result struct {
		Saved int64
	}
	err = s.db.Model(&Record{}).
		Select("coalesce(sum(original_size - compressed_size), 0) as saved").
		Scan(&result).Error
	return runs, result.Saved, err
}
