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

package core

import (
	"fmt"
	"math"
	"strings"
)

var nutrientNames = [5]string{"kcal", "protein", "carbs", "fat", "fiber"}

// ValidateFoodRecord validates a FoodRecord according to domain rules.
//
// Validation rules:
//   - Name must not be blank
//   - Every known nutrient value must be finite and >= 0
//
// NOT validated:
//   - ID (records without one get a generated ID at load time)
//   - Aliases, Category, Source (free-form)
func ValidateFoodRecord(record *FoodRecord) error {
	if record == nil {
		return fmt.Errorf("%w: record is nil", ErrInvalidFoodRecord)
	}

	if strings.TrimSpace(record.Name) == "" {
		return fmt.Errorf("%w: %w", ErrInvalidFoodRecord, ErrEmptyName)
	}

	if err := ValidatePer100(record.Per100); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidFoodRecord, err)
	}

	return nil
}

// ValidatePer100 checks that every known value is a finite non-negative number.
func ValidatePer100(p Per100) error {
	for i, v := range p.Fields() {
		if v == nil {
			continue
		}
		if math.IsNaN(*v) || math.IsInf(*v, 0) || *v < 0 {
			return fmt.Errorf("%w: %s=%v", ErrInvalidNutrient, nutrientNames[i], *v)
		}
	}
	return nil
}
