package config

import (
	"bufio"
	"bytes"
	"fmt"
	"strings"
)

// parseKeyValue reads "key = value" lines as if they sat under a single implicit section.
// Keys are lower-cased, "=" or ":" separate key from value, "#" and ";" start
// comment lines, and an indented line continues the previous value.
func parseKeyValue(data []byte) (map[string]string, error) {
	values := make(map[string]string)
	lastKey := ""

	scanner := bufio.NewScanner(bytes.NewReader(data))
	for lineNo := 1; scanner.Scan(); lineNo++ {
		line := strings.TrimRight(scanner.Text(), "\r")
		trimmed := strings.TrimSpace(line)

		if trimmed == "" {
			lastKey = ""
			continue
		}
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, ";") {
			continue
		}

		if lastKey != "" && (line[0] == ' ' || line[0] == '\t') {
			values[lastKey] += "\n" + trimmed
			continue
		}

		if strings.HasPrefix(trimmed, "[") {
			return nil, fmt.Errorf("line %d: section headers are not supported", lineNo)
		}

		idx := strings.IndexAny(trimmed, "=:")
		if idx < 0 {
			return nil, fmt.Errorf("line %d: expected key = value", lineNo)
		}

		key := strings.ToLower(strings.TrimSpace(trimmed[:idx]))
		if key == "" {
			return nil, fmt.Errorf("line %d: empty key", lineNo)
		}
		if _, dup := values[key]; dup {
			return nil, fmt.Errorf("line %d: duplicate key %q", lineNo, key)
		}

		values[key] = strings.TrimSpace(trimmed[idx+1:])
		lastKey = key
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}
	return values, nil
}
