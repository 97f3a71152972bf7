// Package persistence writes the append-only JSON game dumps that spec
// §6.4 mandates as the system of record (the optional Postgres audit sink
// in package audit is secondary and best-effort).
package persistence

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/bellapacxx/tombola-server/game"
	"github.com/bellapacxx/tombola-server/models"
	"github.com/bellapacxx/tombola-server/utils/apperr"
)

// DumpDir is the append-only directory dumps are written to.
const DumpDir = "data/games"

type clientTypeRegistryDoc struct {
	ClientTypes map[string]models.ClientType `json:"client_types"`
}

// DumpDoc mirrors the persisted dump layout exactly (spec §6.4): field
// names and nesting are part of the on-disk contract, not incidental.
type DumpDoc struct {
	ID                 string                `json:"id"`
	CreatedAt          models.Stamp          `json:"created_at"`
	GameEndedAt        *models.Stamp         `json:"game_ended_at"`
	Board              *models.Board         `json:"board"`
	Pouch              *models.Pouch         `json:"pouch"`
	ScoreCard          *models.ScoreCard     `json:"scorecard"`
	RegisteredClients  []string              `json:"registered_clients"`
	ClientTypeRegistry clientTypeRegistryDoc `json:"client_type_registry"`
	CardManager        *models.CardRegistry  `json:"card_manager"`
}

func buildDumpDoc(s game.Snapshot) DumpDoc {
	var endedAt *models.Stamp
	if s.EndedAt != nil {
		stamp := models.NewStamp(*s.EndedAt)
		endedAt = &stamp
	}
	return DumpDoc{
		ID:                 s.ID,
		CreatedAt:          models.NewStamp(s.CreatedAt),
		GameEndedAt:        endedAt,
		Board:              s.Board,
		Pouch:              s.Pouch,
		ScoreCard:          s.ScoreCard,
		RegisteredClients:  s.RegisteredIDs,
		ClientTypeRegistry: clientTypeRegistryDoc{ClientTypes: s.ClientTypes},
		CardManager:        s.Cards,
	}
}

// DumpGame writes snapshot to a new, uniquely-named file under DumpDir and
// returns the path written. Filenames never collide: a timestamp suffix is
// appended if the base name is already taken (spec §6.4: "append-only").
func DumpGame(s game.Snapshot) (string, error) {
	if err := os.MkdirAll(DumpDir, 0o755); err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to create dump directory", err)
	}

	doc := buildDumpDoc(s)
	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to encode game dump", err)
	}

	path := filepath.Join(DumpDir, s.ID+".json")
	if _, err := os.Stat(path); err == nil {
		path = filepath.Join(DumpDir, fmt.Sprintf("%s_%d.json", s.ID, time.Now().UnixNano()))
	}

	if err := os.WriteFile(path, payload, 0o644); err != nil {
		return "", apperr.Wrap(apperr.Internal, "failed to write game dump", err)
	}
	return path, nil
}

// LoadDump reads a dump file back, for tests and operator tooling. The
// server itself never reads its own dumps at runtime; they are a one-way
// durability artifact per spec §6.4.
func LoadDump(path string) (*DumpDoc, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to read dump file", err)
	}
	var doc DumpDoc
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, apperr.Wrap(apperr.Internal, "failed to parse dump file", err)
	}
	return &doc, nil
}
