package storage

import (
	"context"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	"gorm.io/gorm/logger"
	"zombiezen.com/go/log"
)

type dbRecord struct {
	Key   string `gorm:"primaryKey;column:key"`
	Value []byte `gorm:"column:value"`
}

func (dbRecord) TableName() string {
	return "records"
}

type DatabaseStore struct {
	Store
	db *gorm.DB
}

// NewDatabaseStore opens a gorm-backed store. When databaseURL is
// provided PostgreSQL is used, otherwise the SQLite file at sqlitePath.
func NewDatabaseStore(databaseURL, sqlitePath string) (*DatabaseStore, error) {
	var (
		db  *gorm.DB
		err error
	)

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	if databaseURL != "" {
		db, err = gorm.Open(postgres.Open(databaseURL), gormConfig)
	} else {
		db, err = gorm.Open(sqlite.Open(sqlitePath), gormConfig)
	}
	if err != nil {
		return nil, err
	}

	if err := db.AutoMigrate(&dbRecord{}); err != nil {
		return nil, err
	}

	log.Infof(context.Background(), "storage: using %s backend", db.Dialector.Name())
	return &DatabaseStore{db: db}, nil
}

func (s *DatabaseStore) Get(key string) ([]byte, error) {
	records := make([]dbRecord, 0)
	if result := s.db.Where("key = ?", key).Limit(1).Find(&records); result.Error != nil {
		return nil, result.Error
	} else if len(records) == 0 {
		return nil, ErrKeyNotFound
	} else {
		return records[0].Value, nil
	}
}

func (s *DatabaseStore) Put(key string, value []byte) error {
	record := dbRecord{Key: key, Value: value}
	return s.db.Clauses(clause.OnConflict{
		UpdateAll: true,
	}).Create(&record).Error
}

func (s *DatabaseStore) Delete(key string) error {
	return s.db.Delete(&dbRecord{}, "key = ?", key).Error
}

func (s *DatabaseStore) Healthy() bool {
	if sqlDB, err := s.db.DB(); err != nil {
		return false
	} else {
		return sqlDB.Ping() == nil
	}
}
