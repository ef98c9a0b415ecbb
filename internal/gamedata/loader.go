package gamedata

import (
	"encoding/json"
	"fmt"
)

// Load reads one of the embedded JSON data files into the given type. The
// creature definitions ship inside the binary, so a read failure means a bad
// filename, not a missing file on disk.
func Load[T any](filename string) (T, error) {
	var result T

	content, err := dataFS.ReadFile(filename)
	if err != nil {
		return result, fmt.Errorf("read embedded data %s: %w", filename, err)
	}

	if err := json.Unmarshal(content, &result); err != nil {
		return result, fmt.Errorf("parse %s: %w", filename, err)
	}

	return result, nil
}
