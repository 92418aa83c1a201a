package req

import (
	"fmt"
	"net/http"
	"strings"

	"gradescope_proxy/internal/apperr"
)

// Query возвращает обязательный query-параметр
func Query(r *http.Request, name string) (string, error) {
	value := strings.TrimSpace(r.URL.Query().Get(name))
	if value == "" {
		return "", apperr.New(apperr.KindInvalidRequest, fmt.Sprintf("query parameter %q is required", name))
	}
	return value, nil
}

// Queries возвращает несколько обязательных параметров в порядке names.
func Queries(r *http.Request, names ...string) ([]string, error) {
	values := make([]string, len(names))
	for i, name := range names {
		v, err := Query(r, name)
		if err != nil {
			return nil, err
		}
		values[i] = v
	}
	return values, nil
}
