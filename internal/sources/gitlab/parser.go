// internal/sources/gitlab/parser.go
package gitlab

import (
	"encoding/json"

	"userenum/internal/platform/errors"
)

// parseExists interpreta el cuerpo de /users/<name>/exists.
// Solo un booleano true en el campo "exists" cuenta como existencia;
// "true" como string, 1 u otros valores no. Devuelve error cuando el cuerpo
// no es un objeto JSON.
func parseExists(body []byte) (bool, error) {
	var payload map[string]json.RawMessage
	if err := json.Unmarshal(body, &payload); err != nil {
		return false, errors.Mark(err, errors.ErrInvalidResponse)
	}

	raw, ok := payload["exists"]
	if !ok {
		return false, nil
	}

	var exists bool
	if err := json.Unmarshal(raw, &exists); err != nil {
		return false, nil
	}
	return exists, nil
}
