// Copyright 2025 Poiesic Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package storage

import (
	"fmt"

	"github.com/poiesic/foodsearch/core"
)

// MarshalFoodRecord serializes a FoodRecord to bytes.
func MarshalFoodRecord(record *core.FoodRecord) []byte {
	buf := make([]byte, FoodRecordMUS.Size(*record))
	FoodRecordMUS.Marshal(*record, buf)
	return buf
}

// UnmarshalFoodRecord deserializes a FoodRecord from bytes.
func UnmarshalFoodRecord(data []byte) (*core.FoodRecord, error) {
	record, _, err := FoodRecordMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: food record: %w", ErrSerializationFailed, err)
	}
	return &record, nil
}

// MarshalCheckpoint serializes a Checkpoint to bytes.
func MarshalCheckpoint(checkpoint *core.Checkpoint) []byte {
	buf := make([]byte, CheckpointMUS.Size(*checkpoint))
	CheckpointMUS.Marshal(*checkpoint, buf)
	return buf
}

// UnmarshalCheckpoint deserializes a Checkpoint from bytes.
func UnmarshalCheckpoint(data []byte) (*core.Checkpoint, error) {
	checkpoint, _, err := CheckpointMUS.Unmarshal(data)
	if err != nil {
		return nil, fmt.Errorf("%w: checkpoint: %w", ErrSerializationFailed, err)
	}
	return &checkpoint, nil
}
