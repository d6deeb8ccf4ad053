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

// Package search provides token-level fuzzy matching and ranking over a food
// catalog.
//
// TokenMatchScore grades a pair of normalized tokens as exact, prefix,
// substring or edit-distance matches. A Strategy combines those grades across
// a query and a candidate's tokens, rejecting any candidate that leaves a
// query token unmatched:
//   - ContainmentStrategy sums discrete scores (2 exact, 1 containment)
//   - FuzzyStrategy averages graded scores over stopword-free tokens
//
// A Searcher evaluates every entry of an immutable Index and orders matches
// by score, then by Italian collation of the display name.
package search
