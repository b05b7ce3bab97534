// Package store persists saved body positions in SQLite.
package store

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
	gormlogger "gorm.io/gorm/logger"

	"github.com/litescript/ls-skymap/internal/logging"
)

// Store is a SQLite-backed record store. It is safe for concurrent use.
type Store struct {
	db  *gorm.DB
	log *logging.Logger
}

// Open opens (creating if needed) the database at path and migrates the
// schema.
func Open(path string, log *logging.Logger) (*Store, error) {
	if log == nil {
		log = logging.Discard()
	}
	log = log.With("store")
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: &gormLogger{log: log, slow: 200 * time.Millisecond},
	})
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	// SQLite allows one writer; a single connection avoids SQLITE_BUSY
	sqlDB.SetMaxOpenConns(1)
	if err := db.AutoMigrate(&Record{}); err != nil {
		return nil, fmt.Errorf("migrate %s: %w", path, err)
	}
	return &Store{db: db, log: log}, nil
}

// Save inserts rec unless a record for the same planet and date exists.
// It reports whether a row was written.
func (s *Store) Save(ctx context.Context, rec Record) (bool, error) {
	var existing Record
	err := s.db.WithContext(ctx).
		Where("planet = ? AND date = ?", rec.Planet, rec.Date).
		Take(&existing).Error
	switch {
	case err == nil:
		s.log.Info("%s at %s already saved", rec.Planet, rec.Date)
		return false, nil
	case !errors.Is(err, gorm.ErrRecordNotFound):
		return false, fmt.Errorf("lookup %s at %s: %w", rec.Planet, rec.Date, err)
	}

	// a concurrent writer can still win between the lookup and the insert
	res := s.db.WithContext(ctx).
		Clauses(clause.OnConflict{Columns: []clause.Column{{Name: "planet"}, {Name: "date"}}, DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		return false, fmt.Errorf("save %s at %s: %w", rec.Planet, rec.Date, res.Error)
	}
	if res.RowsAffected == 0 {
		return false, nil
	}
	s.log.Info("saved %s at %s", rec.Planet, rec.Date)
	return true, nil
}

// History returns saved records, newest date first. An empty planet
// matches all bodies; limit <= 0 means no limit.
func (s *Store) History(ctx context.Context, planet string, limit int) ([]Record, error) {
	q := s.db.WithContext(ctx).Order("date DESC, planet ASC")
	if planet != "" {
		q = q.Where("planet = ?", planet)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}
	var out []Record
	if err := q.Find(&out).Error; err != nil {
		return nil, fmt.Errorf("history: %w", err)
	}
	return out, nil
}

// Close closes the underlying database.
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// gormLogger routes gorm's logging through the application logger.
type gormLogger struct {
	log  *logging.Logger
	slow time.Duration
}

func (g *gormLogger) LogMode(gormlogger.LogLevel) gormlogger.Interface { return g }

func (g *gormLogger) Info(_ context.Context, msg string, args ...interface{}) {
	g.log.Debug(msg, args...)
}

func (g *gormLogger) Warn(_ context.Context, msg string, args ...interface{}) {
	g.log.Warn(msg, args...)
}

func (g *gormLogger) Error(_ context.Context, msg string, args ...interface{}) {
	g.log.Error(msg, args...)
}

func (g *gormLogger) Trace(_ context.Context, begin time.Time, fc func() (string, int64), err error) {
	elapsed := time.Since(begin)
	switch {
	case err != nil && !errors.Is(err, gorm.ErrRecordNotFound):
		sql, rows := fc()
		g.log.Error("%v [%s, %d rows] %s", err, elapsed, rows, sql)
	case elapsed > g.slow:
		sql, rows := fc()
		g.log.Warn("slow query [%s, %d rows] %s", elapsed, rows, sql)
	case g.log.Enabled(logging.LevelDebug):
		sql, rows := fc()
		g.log.Debug("[%s, %d rows] %s", elapsed, rows, sql)
	}
}
