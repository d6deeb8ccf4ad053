package dataset

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/poiesic/foodsearch/core"
)

// Decode parses a dataset document: a non-empty JSON array of records.
// Records without an id get core.GeneratedRecordID; absent aliases become an
// empty list. Any structural or validation failure wraps
// core.ErrDatasetFormat and no records are returned.
func Decode(data []byte) ([]core.FoodRecord, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, fmt.Errorf("%w: document is not an array of records: %w", core.ErrDatasetFormat, err)
	}
	if len(items) == 0 {
		return nil, fmt.Errorf("%w: document contains no records", core.ErrDatasetFormat)
	}

	records := make([]core.FoodRecord, 0, len(items))
	for i, item := range items {
		var rec core.FoodRecord
		if err := json.Unmarshal(item, &rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", core.ErrDatasetFormat, i, err)
		}
		if err := core.ValidateFoodRecord(&rec); err != nil {
			return nil, fmt.Errorf("%w: record %d: %w", core.ErrDatasetFormat, i, err)
		}
		if rec.ID == "" {
			rec.ID = core.GeneratedRecordID(rec.Name)
		}
		if rec.Aliases == nil {
			rec.Aliases = []string{}
		}
		records = append(records, rec)
	}
	return records, nil
}

// Encode writes records as an indented JSON array, the format Decode reads.
func Encode(w io.Writer, records []core.FoodRecord) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	enc.SetEscapeHTML(false)
	if records == nil {
		records = []core.FoodRecord{}
	}
	return enc.Encode(records)
}

// Digest returns the hex SHA-256 of a raw document.
func Digest(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// Describe builds the audit metadata for a loaded document.
func Describe(source string, data []byte, items int, loadedAt time.Time) core.Meta {
	return core.Meta{
		Source:    source,
		Items:     items,
		Bytes:     len(data),
		Hash:      Digest(data),
		Timestamp: loadedAt.UTC(),
	}
}
