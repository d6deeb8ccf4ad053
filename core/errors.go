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

import "errors"

// Domain errors
var (
	// ErrInvalidFoodRecord indicates a FoodRecord failed validation.
	ErrInvalidFoodRecord = errors.New("invalid food record")

	// ErrEmptyName indicates the Name field is empty.
	ErrEmptyName = errors.New("name cannot be empty")

	// ErrInvalidNutrient indicates a nutrient value is negative or not finite.
	ErrInvalidNutrient = errors.New("nutrient value must be finite and non-negative")

	// ErrDatasetFormat indicates the dataset parsed but is not a non-empty list of records.
	ErrDatasetFormat = errors.New("invalid dataset format")

	// ErrDatasetUnavailable indicates the dataset source could not be read.
	ErrDatasetUnavailable = errors.New("dataset unavailable")

	// ErrNotLoaded indicates an operation that needs a dataset ran before Load.
	ErrNotLoaded = errors.New("dataset not loaded: call Load first")
)
