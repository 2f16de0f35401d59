package metrics

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/parquet-go/parquet-go"
	"github.com/parquet-go/parquet-go/compress/zstd"
)

// OutcomeRow is one finished game, flattened for columnar storage.
type OutcomeRow struct {
	Game           int32 `parquet:"game"`
	Agent1         int32 `parquet:"agent1"`
	Agent2         int32 `parquet:"agent2"`
	StartingPlayer int32 `parquet:"starting_player"`
	Winner         int32 `parquet:"winner"` // Seat player ID, -1 for a draw
	WinnerAgent    int32 `parquet:"winner_agent"`
	TotalMoves     int32 `parquet:"total_moves"`
	StartUnixNano  int64 `parquet:"start_unix_nano"`
	DurationNanos  int64 `parquet:"duration_nanos"`
}

func OutcomeRows(records []GameRecord) []OutcomeRow {
	rows := make([]OutcomeRow, len(records))
	for i, r := range records {
		rows[i] = OutcomeRow{
			Game:           int32(r.ID),
			Agent1:         int32(r.Agent1),
			Agent2:         int32(r.Agent2),
			StartingPlayer: int32(r.StartingPlayer),
			Winner:         int32(r.Winner),
			WinnerAgent:    int32(r.WinnerAgent),
			TotalMoves:     int32(r.TotalMoves),
			StartUnixNano:  r.StartTime.UnixNano(),
			DurationNanos:  int64(r.Duration),
		}
	}
	return rows
}

// WriteOutcomesParquet writes records to outPath through a temp file, so
// readers never observe a partial file.
func WriteOutcomesParquet(outPath string, records []GameRecord) error {
	if err := os.MkdirAll(filepath.Dir(outPath), 0o755); err != nil {
		return fmt.Errorf("create output dir: %w", err)
	}

	tmpPath := outPath + ".tmp"
	_ = os.Remove(tmpPath)

	if err := parquet.WriteFile(tmpPath, OutcomeRows(records),
		parquet.Compression(&zstd.Codec{Level: zstd.SpeedBetterCompression}),
		parquet.KeyValueMetadata("schema", "game_outcome_v1"),
	); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("write parquet: %w", err)
	}

	if err := os.Rename(tmpPath, outPath); err != nil {
		_ = os.Remove(tmpPath)
		return fmt.Errorf("rename parquet: %w", err)
	}
	return nil
}

func ReadOutcomesParquet(path string) ([]OutcomeRow, error) {
	rows, err := parquet.ReadFile[OutcomeRow](path)
	if err != nil {
		return nil, fmt.Errorf("read parquet: %w", err)
	}
	return rows, nil
}
