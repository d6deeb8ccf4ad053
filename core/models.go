package core

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-crypt/x/blake2b"
)

// ID is a content-derived identifier.
type ID uint64

// IDFromContent generates a deterministic ID from text content using BLAKE2b hashing.
// This ensures that identical content produces identical IDs.
func IDFromContent(text string) ID {
	h, _ := blake2b.New(8, nil) // 8 bytes = 64 bits
	h.Write([]byte(text))
	sum := h.Sum(nil)
	return ID(binary.LittleEndian.Uint64(sum))
}

// GeneratedRecordID returns the stable identifier assigned to records that
// arrive without one.
func GeneratedRecordID(name string) string {
	return fmt.Sprintf("gen:%016x", uint64(IDFromContent(name)))
}

// Per100 holds macro-nutrient values per 100 grams.
// A nil field means the value was not measured; it is never the same as zero.
type Per100 struct {
	Kcal    *float64 `json:"kcal"`
	Protein *float64 `json:"protein"`
	Carbs   *float64 `json:"carbs"`
	Fat     *float64 `json:"fat"`
	Fiber   *float64 `json:"fiber"`
}

// Fields returns the five nutrient values in their canonical order.
func (p Per100) Fields() [5]*float64 {
	return [5]*float64{p.Kcal, p.Protein, p.Carbs, p.Fat, p.Fiber}
}

// Complete reports whether every nutrient value is known.
func (p Per100) Complete() bool {
	for _, v := range p.Fields() {
		if v == nil {
			return false
		}
	}
	return true
}

// Signature serializes the profile in canonical field order with "null" for
// unknown values, so equal profiles always produce equal signatures.
func (p Per100) Signature() string {
	var b strings.Builder
	for i, v := range p.Fields() {
		if i > 0 {
			b.WriteByte(',')
		}
		if v == nil {
			b.WriteString("null")
			continue
		}
		b.WriteString(strconv.FormatFloat(*v, 'g', -1, 64))
	}
	return b.String()
}

// Value returns a pointer to v, for building profiles in code.
func Value(v float64) *float64 {
	return &v
}

// FoodRecord is a single catalog entry.
type FoodRecord struct {
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Aliases  []string `json:"aliases"`
	Category string   `json:"category,omitempty"`
	Per100   Per100   `json:"per100"`
	Source   string   `json:"source,omitempty"`
	// Rank is the catalog's ordering weight. Zero means unset.
	Rank int `json:"rank,omitempty"`
}

// Clone returns a copy that shares no slices with r.
func (r FoodRecord) Clone() FoodRecord {
	out := r
	out.Aliases = append([]string(nil), r.Aliases...)
	if out.Aliases == nil {
		out.Aliases = []string{}
	}
	return out
}

// Meta describes the dataset currently held by an engine.
type Meta struct {
	Source    string
	Items     int
	Bytes     int
	Hash      string    // hex SHA-256 of the raw document
	Timestamp time.Time // when the dataset was loaded
}

// Checkpoint records the outcome of the last completed consolidation build.
type Checkpoint struct {
	Name      string
	Items     int
	Digest    string
	UpdatedAt time.Time
}
