package consolidate

import (
	"log/slog"
	"strings"

	"github.com/poiesic/foodsearch/core"
	"github.com/poiesic/foodsearch/textnorm"
)

// PresenceCheck looks for a kind of entry in a consolidated dataset.
type PresenceCheck struct {
	Name string
	// Match receives the normalized record name.
	Match func(name string) bool
	// Required checks log a warning when nothing matches.
	Required bool
}

// CheckResult is the outcome of one PresenceCheck.
type CheckResult struct {
	Name     string
	Present  bool
	Required bool
}

// Summary describes a consolidated dataset. It is informational only.
type Summary struct {
	Total      int
	Complete   int
	Incomplete int
	Checks     []CheckResult
}

// DefaultChecks looks for pasta (required) and for a whole-egg entry, that is
// an egg that is not egg white.
func DefaultChecks() []PresenceCheck {
	return []PresenceCheck{
		{
			Name:     "pasta",
			Match:    func(name string) bool { return strings.Contains(name, "pasta") },
			Required: true,
		},
		{
			Name: "whole egg",
			Match: func(name string) bool {
				return strings.Contains(name, "uovo") && !strings.Contains(name, "albume")
			},
		},
	}
}

// Summarize counts complete and incomplete nutrient profiles and runs the
// given presence checks, or DefaultChecks when none are given.
func Summarize(records []core.FoodRecord, checks ...PresenceCheck) Summary {
	if len(checks) == 0 {
		checks = DefaultChecks()
	}

	s := Summary{Total: len(records)}
	names := make([]string, len(records))
	for i, rec := range records {
		if rec.Per100.Complete() {
			s.Complete++
		}
		names[i] = textnorm.Normalize(rec.Name)
	}
	s.Incomplete = s.Total - s.Complete

	for _, check := range checks {
		result := CheckResult{Name: check.Name, Required: check.Required}
		for _, name := range names {
			if check.Match(name) {
				result.Present = true
				break
			}
		}
		s.Checks = append(s.Checks, result)
	}
	return s
}

// Log writes the summary to logger.
func (s Summary) Log(logger *slog.Logger) {
	if logger == nil {
		logger = slog.Default()
	}
	logger.Info("consolidation summary",
		"total", s.Total,
		"complete", s.Complete,
		"incomplete", s.Incomplete)
	for _, c := range s.Checks {
		logger.Info("presence check", "entry", c.Name, "present", c.Present)
		if c.Required && !c.Present {
			logger.Warn("required catalog entry missing", "entry", c.Name)
		}
	}
}
