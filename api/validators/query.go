package validators

import (
	"net/http"
	"strconv"
	"strings"

	pkgerrors "github.com/davidrenteria/shopvista-backend/pkg/errors"
)

// QueryString returns a trimmed query parameter, or the default when absent.
func QueryString(r *http.Request, key, defaultVal string) string {
	raw := strings.TrimSpace(r.URL.Query().Get(key))
	if raw == "" {
		return defaultVal
	}
	return raw
}

// PathInt parses a positive integer path segment value.
func PathInt(raw, field string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil || value <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "path parameter must be a positive integer").WithDetails(map[string]any{"field": field})
	}
	return value, nil
}
