package workflow

import (
	"strings"

	"github.com/google/uuid"
)

// NewNodeID generates a durable node identifier.
func NewNodeID() string {
	return uuid.NewString()
}

// IsDurableID reports whether id is a backend-assigned identifier rather
// than a canvas-local placeholder like "node-3". Placeholder ids are
// rewritten during serialization.
func IsDurableID(id string) bool {
	return len(id) > 10 && strings.Contains(id, "-")
}
