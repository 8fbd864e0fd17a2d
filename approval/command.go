package approval

import (
	"fmt"
	"strconv"
	"strings"
)

// Usage is shown to the operator when the approve command is malformed.
const Usage = "Usage: approve <user_id> <limit>\nExample: approve 123456789 5"

// ParseGrantCommand parses the text of an "approve <user_id> <limit>"
// command. The leading command word is accepted with or without a slash
// prefix.
func ParseGrantCommand(text string) (userID string, limit int, err error) {
	parts := strings.Fields(strings.TrimSpace(text))
	if len(parts) != 3 {
		return "", 0, fmt.Errorf("expected 3 arguments, got %d", len(parts))
	}

	command := strings.TrimPrefix(parts[0], "/")
	if command != "approve" {
		return "", 0, fmt.Errorf("not an approve command: %q", parts[0])
	}

	userID = parts[1]
	limit, err = strconv.Atoi(parts[2])
	if err != nil {
		return "", 0, fmt.Errorf("limit must be an integer: %q", parts[2])
	}
	if limit < 0 {
		return "", 0, fmt.Errorf("limit must be non-negative: %d", limit)
	}
	return userID, limit, nil
}
