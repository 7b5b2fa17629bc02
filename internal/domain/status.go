package domain

// Status is the triage state of a comment
type Status string

const (
	StatusOpen       Status = "open"
	StatusInProgress Status = "in_progress"
	StatusResolved   Status = "resolved"
)

// StatusDefinition describes how a status is presented
type StatusDefinition struct {
	Color string
	Key   Status
	Title string
}

var statusDefinitions = []StatusDefinition{
	{Key: StatusOpen, Title: "Open", Color: "#f59e0b"},
	{Key: StatusInProgress, Title: "In Progress", Color: "#3b82f6"},
	{Key: StatusResolved, Title: "Resolved", Color: "#10b981"},
}

// Statuses returns the workflow states in board order
func Statuses() []Status {
	out := make([]Status, len(statusDefinitions))
	for i, d := range statusDefinitions {
		out[i] = d.Key
	}
	return out
}

// StatusDefinitions returns the display definitions in board order
func StatusDefinitions() []StatusDefinition {
	out := make([]StatusDefinition, len(statusDefinitions))
	copy(out, statusDefinitions)
	return out
}

// Valid reports whether s is one of the workflow states
func (s Status) Valid() bool {
	for _, d := range statusDefinitions {
		if d.Key == s {
			return true
		}
	}
	return false
}

// Title returns the human label for s, or s itself when unknown
func (s Status) Title() string {
	for _, d := range statusDefinitions {
		if d.Key == s {
			return d.Title
		}
	}
	return string(s)
}

// Color returns the hex color for s
func (s Status) Color() string {
	for _, d := range statusDefinitions {
		if d.Key == s {
			return d.Color
		}
	}
	return "#6b7280"
}

// ParseStatus validates a raw status value
func ParseStatus(raw string) (Status, error) {
	s := Status(raw)
	if !s.Valid() {
		return "", NewValidationError("status", "must be one of open, in_progress, resolved")
	}
	return s, nil
}

// Transition moves a comment from one state to another. Every pair of
// states is connected, including resolved back to open.
func Transition(from, to Status) (Status, error) {
	if !to.Valid() {
		return from, NewValidationError("status", "must be one of open, in_progress, resolved")
	}
	return to, nil
}
