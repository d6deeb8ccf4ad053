package storage

import (
	"testing"
	"time"

	"github.com/poiesic/foodsearch/core"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMarshalUnmarshalFoodRecord(t *testing.T) {
	tests := []struct {
		name   string
		record *core.FoodRecord
	}{
		{
			name: "complete profile",
			record: &core.FoodRecord{
				ID:       "bda:1109",
				Name:     "Pasta di semola",
				Aliases:  []string{"spaghetti", "Pasta di semola di grano duro, cruda"},
				Category: "Cereali e derivati",
				Per100: core.Per100{
					Kcal: core.Value(353), Protein: core.Value(10.9), Carbs: core.Value(79.1),
					Fat: core.Value(1.4), Fiber: core.Value(2.7),
				},
				Source: "BDA (bda.ieo.it)",
				Rank:   1000,
			},
		},
		{
			name: "unknown values stay unknown",
			record: &core.FoodRecord{
				ID:      "bda:7",
				Name:    "Petto di pollo",
				Aliases: []string{},
				Per100:  core.Per100{Kcal: core.Value(100)},
			},
		},
		{
			name: "zero is not unknown",
			record: &core.FoodRecord{
				ID:      "bda:8",
				Name:    "Acqua minerale",
				Aliases: []string{},
				Per100:  core.Per100{Kcal: core.Value(0), Protein: core.Value(0), Fat: core.Value(0)},
			},
		},
		{
			name: "accented text",
			record: &core.FoodRecord{
				ID:      "gen:00ff",
				Name:    "Tè verde, infuso",
				Aliases: []string{"Però", "caffè"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := MarshalFoodRecord(tt.record)
			require.NotEmpty(t, data)

			decoded, err := UnmarshalFoodRecord(data)
			require.NoError(t, err)
			assert.Equal(t, tt.record, decoded)
			assert.Equal(t, tt.record.Per100.Signature(), decoded.Per100.Signature())
		})
	}
}

func TestUnmarshalFoodRecord_Invalid(t *testing.T) {
	full := MarshalFoodRecord(&core.FoodRecord{
		ID:      "bda:1",
		Name:    "Pane",
		Aliases: []string{"pane comune"},
		Per100:  core.Per100{Kcal: core.Value(270)},
	})

	tests := []struct {
		name string
		data []byte
	}{
		{"empty data", []byte{}},
		{"truncated", full[:len(full)/2]},
		{"missing last field", full[:len(full)-1]},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := UnmarshalFoodRecord(tt.data)
			assert.ErrorIs(t, err, ErrSerializationFailed)
		})
	}
}

func TestMarshalUnmarshalCheckpoint(t *testing.T) {
	now := time.Now().UTC().Truncate(time.Microsecond)
	checkpoint := &core.Checkpoint{
		Name:      "consolidate",
		Items:     1109,
		Digest:    "e3b0c44298fc1c149afbf4c8996fb92427ae41e4649b934ca495991b7852b855",
		UpdatedAt: now,
	}

	data := MarshalCheckpoint(checkpoint)
	decoded, err := UnmarshalCheckpoint(data)
	require.NoError(t, err)
	assert.Equal(t, checkpoint.Name, decoded.Name)
	assert.Equal(t, checkpoint.Items, decoded.Items)
	assert.Equal(t, checkpoint.Digest, decoded.Digest)
	assert.True(t, checkpoint.UpdatedAt.Equal(decoded.UpdatedAt))

	_, err = UnmarshalCheckpoint(data[:3])
	assert.ErrorIs(t, err, ErrSerializationFailed)
}
