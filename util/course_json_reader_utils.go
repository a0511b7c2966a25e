package util

import (
	"encoding/json"
	"fmt"
	"os"

	"course-server/db"
)

// ReadCoursesSeedFromJSON loads raw course documents grouped by program from a
// file shaped like {"CSCI": [{...}, {...}], "AIST": [...]}.
func ReadCoursesSeedFromJSON(filePath string) (map[string][]db.Document, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %q: %w", filePath, err)
	}
	var seed map[string][]db.Document
	if err := json.Unmarshal(data, &seed); err != nil {
		return nil, fmt.Errorf("failed to unmarshal course seed: %w", err)
	}
	return seed, nil
}
