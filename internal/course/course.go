// Package course holds the per-offering configuration: which graded items
// exist, the quiz maximums, the category weights and the grade scale. Making
// these explicit values (instead of constants or column-name patterns) lets
// each offering run with its own setup and keeps the engine testable in
// isolation.
package course

import (
	"encoding/json"
	"fmt"
	"os"
	"sort"

	"github.com/gradeflow/gradeflow/internal/scoring"
)

type Config struct {
	Name     string             `json:"name"`
	Homework []string           `json:"homework"` // item names; max points come from "<name> - Max Points" columns
	Exams    []string           `json:"exams"`    // exam names; max points come from "<name> - Max Points" columns
	QuizMax  map[string]float64 `json:"quiz_max"` // quiz name -> fixed maximum (not present in quiz files)
	Weights  scoring.WeightSet  `json:"weights"`
	Scale    scoring.GradeScale `json:"scale"`
}

// Default returns the standard offering: ten homeworks, three exams, five
// quizzes with fixed maximums.
func Default() Config {
	hw := make([]string, 10)
	for i := range hw {
		hw[i] = fmt.Sprintf("Homework %d", i+1)
	}
	return Config{
		Name:     "default",
		Homework: hw,
		Exams:    []string{"Exam 1", "Exam 2", "Exam 3"},
		QuizMax: map[string]float64{
			"Quiz 1": 11,
			"Quiz 2": 15,
			"Quiz 3": 17,
			"Quiz 4": 14,
			"Quiz 5": 12,
		},
		Weights: scoring.DefaultWeights(),
		Scale:   scoring.DefaultScale(),
	}
}

// Load reads a course config from a JSON file. An empty path yields the
// default offering.
func Load(path string) (Config, error) {
	if path == "" {
		return Default(), nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("course config: %w", err)
	}
	var c Config
	if err := json.Unmarshal(b, &c); err != nil {
		return Config{}, fmt.Errorf("course config %s: %w", path, err)
	}
	if err := c.Validate(); err != nil {
		return Config{}, fmt.Errorf("course config %s: %w", path, err)
	}
	return c, nil
}

// Validate checks the parts the engine depends on: weights summing to one, a
// total grade scale, one weight per exam, and non-empty categories.
func (c Config) Validate() error {
	if err := c.Weights.Validate(); err != nil {
		return err
	}
	if err := c.Scale.Validate(); err != nil {
		return err
	}
	if len(c.Weights.Exams) != len(c.Exams) {
		return fmt.Errorf("%d exams but %d exam weights", len(c.Exams), len(c.Weights.Exams))
	}
	if len(c.Homework) == 0 {
		return fmt.Errorf("no homework items declared")
	}
	if len(c.QuizMax) == 0 {
		return fmt.Errorf("no quizzes declared")
	}
	for name, max := range c.QuizMax {
		if max <= 0 {
			return fmt.Errorf("%s: max points must be positive", name)
		}
	}
	return nil
}

// Quizzes returns the declared quiz names in stable order.
func (c Config) Quizzes() []string {
	names := make([]string, 0, len(c.QuizMax))
	for n := range c.QuizMax {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
