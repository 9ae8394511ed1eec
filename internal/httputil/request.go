package httputil

import (
	"encoding/json"
	"fmt"
	"net/http"
	"regexp"
	"strconv"

	"go.mongodb.org/mongo-driver/bson"

	"mediquip/internal/repository/mongodb"
)

// ParseJSON decodes JSON from the request body into dest, capping the
// body size.
func ParseJSON(w http.ResponseWriter, r *http.Request, dest interface{}) error {
	r.Body = http.MaxBytesReader(w, r.Body, 1<<20)

	if err := json.NewDecoder(r.Body).Decode(dest); err != nil {
		return fmt.Errorf("invalid JSON: %w", err)
	}
	return nil
}

// ParsePage reads the page window from the query string. Out-of-range
// values fall back to defaults downstream.
func ParsePage(r *http.Request) mongodb.PageRequest {
	q := r.URL.Query()
	page, _ := strconv.Atoi(q.Get("page"))
	perPage, _ := strconv.Atoi(q.Get("perPage"))
	return mongodb.PageRequest{
		Page:    page,
		PerPage: perPage,
		Sort:    q.Get("sort"),
	}
}

var filterKey = regexp.MustCompile(`^[a-zA-Z][a-zA-Z0-9]*$`)

// reserved query parameters that never become filters
var reservedParams = map[string]bool{
	"page":    true,
	"perPage": true,
	"sort":    true,
}

// ParseFilters turns the remaining query parameters into equality
// filter conditions. Keys are restricted to plain identifiers so query
// operators cannot be injected through parameter names.
func ParseFilters(r *http.Request) bson.M {
	query := bson.M{}
	for key, values := range r.URL.Query() {
		if reservedParams[key] || len(values) == 0 || !filterKey.MatchString(key) {
			continue
		}
		query[key] = values[0]
	}
	return query
}
