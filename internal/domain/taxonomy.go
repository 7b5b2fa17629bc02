package domain

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// Built-in priority keys
const (
	PriorityHigh   = "high"
	PriorityLow    = "low"
	PriorityMedium = "medium"
)

const fallbackPriorityColor = "#6b7280"

var (
	hexColorPattern = regexp.MustCompile(`^#(?:[0-9a-fA-F]{3}|[0-9a-fA-F]{6})$`)
	whitespaceRun   = regexp.MustCompile(`\s+`)
)

// Category is a user-defined label for comments
type Category struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// Priority is a user-defined priority level
type Priority struct {
	Color string `json:"color"`
	ID    string `json:"id"`
	Key   string `json:"key"`
	Name  string `json:"name"`
}

// PriorityKey derives the stored key of a priority from its display name
func PriorityKey(name string) string {
	return whitespaceRun.ReplaceAllString(strings.ToLower(strings.TrimSpace(name)), "_")
}

// IsBuiltinPriority reports whether key is low, medium or high
func IsBuiltinPriority(key string) bool {
	return key == PriorityLow || key == PriorityMedium || key == PriorityHigh
}

// PriorityRank orders priorities for sorting: high, medium, low, then everything else.
func PriorityRank(key string) int {
	switch key {
	case PriorityHigh:
		return 0
	case PriorityMedium:
		return 1
	case PriorityLow:
		return 2
	default:
		return 3
	}
}

// LessPriority compares two priority keys by rank, falling back to the key name
func LessPriority(a, b string) bool {
	ra, rb := PriorityRank(a), PriorityRank(b)
	if ra != rb {
		return ra < rb
	}
	return a < b
}

// DefaultPriorities is the vocabulary used until priorities are saved
func DefaultPriorities() []Priority {
	return []Priority{
		{ID: "low", Name: "Low", Key: PriorityLow, Color: "#10b981"},
		{ID: "medium", Name: "Medium", Key: PriorityMedium, Color: "#f59e0b"},
		{ID: "high", Name: "High", Key: PriorityHigh, Color: "#ef4444"},
	}
}

// PriorityColor finds the color configured for key
func PriorityColor(priorities []Priority, key string) string {
	for _, p := range priorities {
		if p.Key == key {
			return p.Color
		}
	}
	for _, p := range DefaultPriorities() {
		if p.Key == key {
			return p.Color
		}
	}
	return fallbackPriorityColor
}

// NormalizePriorities trims names, recomputes keys and fills missing ids,
// then validates the collection as a whole.
func NormalizePriorities(in []Priority) ([]Priority, error) {
	out := make([]Priority, len(in))
	seen := make(map[string]bool, len(in))
	for i, p := range in {
		p.Name = strings.TrimSpace(p.Name)
		if p.Name == "" {
			return nil, NewValidationError("priorities", fmt.Sprintf("priority #%d has no name", i+1))
		}
		lower := strings.ToLower(p.Name)
		if seen[lower] {
			return nil, NewValidationError("priorities", fmt.Sprintf("duplicate priority %q", p.Name))
		}
		seen[lower] = true
		if !hexColorPattern.MatchString(p.Color) {
			return nil, NewValidationError("priorities", fmt.Sprintf("priority %q has invalid color %q", p.Name, p.Color))
		}
		p.Key = PriorityKey(p.Name)
		if p.ID == "" {
			p.ID = p.Key
		}
		out[i] = p
	}
	return out, nil
}

// NormalizeCategories trims names, fills missing ids and rejects duplicates
func NormalizeCategories(in []Category) ([]Category, error) {
	out := make([]Category, len(in))
	seen := make(map[string]bool, len(in))
	for i, c := range in {
		c.Name = strings.TrimSpace(c.Name)
		if c.Name == "" {
			return nil, NewValidationError("categories", fmt.Sprintf("category #%d has no name", i+1))
		}
		lower := strings.ToLower(c.Name)
		if seen[lower] {
			return nil, NewValidationError("categories", fmt.Sprintf("duplicate category %q", c.Name))
		}
		seen[lower] = true
		if c.ID == "" {
			c.ID = PriorityKey(c.Name)
		}
		out[i] = c
	}
	return out, nil
}

// FindCategory looks a category up by name, ignoring case
func FindCategory(categories []Category, name string) (Category, bool) {
	for _, c := range categories {
		if strings.EqualFold(c.Name, strings.TrimSpace(name)) {
			return c, true
		}
	}
	return Category{}, false
}

// HasPriority reports whether key is built in or configured
func HasPriority(priorities []Priority, key string) bool {
	if IsBuiltinPriority(key) {
		return true
	}
	for _, p := range priorities {
		if p.Key == key {
			return true
		}
	}
	return false
}

// SortByPriority orders comments by priority rank, newest first within a rank
func SortByPriority(comments []Comment) {
	sort.SliceStable(comments, func(i, j int) bool {
		a, b := comments[i], comments[j]
		if a.Priority != b.Priority {
			return LessPriority(a.Priority, b.Priority)
		}
		if !a.CreatedAt.Equal(b.CreatedAt) {
			return a.CreatedAt.After(b.CreatedAt)
		}
		return a.ID > b.ID
	})
}
