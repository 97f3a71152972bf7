// Package audit provides a best-effort, optional secondary record of dump
// events. It is never the system of record — the append-only JSON dump on
// disk (see the persistence package) is authoritative per spec §6.4. When
// no DATABASE_URL is configured the sink is a no-op so the server runs
// fully in-memory-plus-files, matching the spec's non-goals (no
// migration/versioning of persisted dumps, no cluster replication).
package audit

import (
	"time"

	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/bellapacxx/tombola-server/utils/logger"
)

// DumpEvent is one row recording that a game was flushed to disk.
type DumpEvent struct {
	ID             uint `gorm:"primaryKey"`
	GameID         string
	PublishedScore int
	DumpedAt       time.Time
	FilePath       string
}

// Sink records dump events. Failures must never block the caller: the
// authoritative artifact is the JSON file already written to disk.
type Sink interface {
	RecordDump(event DumpEvent)
}

// noopSink is used when no DATABASE_URL is configured.
type noopSink struct{}

func (noopSink) RecordDump(DumpEvent) {}

// gormSink persists DumpEvents to Postgres via gorm.
type gormSink struct {
	db *gorm.DB
}

func (s *gormSink) RecordDump(event DumpEvent) {
	if err := s.db.Create(&event).Error; err != nil {
		logger.Errorf("audit: failed to record dump for game %s: %v", event.GameID, err)
	}
}

// NewSink connects to databaseURL and returns a gormSink; if databaseURL is
// empty it returns a noopSink. Connection failures are logged and degrade
// to a noopSink rather than blocking server startup, since the audit trail
// is explicitly best-effort.
func NewSink(databaseURL string) Sink {
	if databaseURL == "" {
		return noopSink{}
	}

	db, err := gorm.Open(postgres.Open(databaseURL), &gorm.Config{})
	if err != nil {
		logger.Errorf("audit: failed to connect to %s, disabling audit sink: %v", "database", err)
		return noopSink{}
	}

	if err := db.AutoMigrate(&DumpEvent{}); err != nil {
		logger.Errorf("audit: migration failed, disabling audit sink: %v", err)
		return noopSink{}
	}

	logger.Info("audit: dump events will be recorded to Postgres")
	return &gormSink{db: db}
}
