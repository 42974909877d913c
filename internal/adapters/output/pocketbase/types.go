package pocketbase

import (
	"fmt"
	"sort"
	"strings"
)

// albumListResponse is a page of the album collection
type albumListResponse struct {
	Page       int           `json:"page"`
	PerPage    int           `json:"perPage"`
	TotalItems int           `json:"totalItems"`
	TotalPages int           `json:"totalPages"`
	Items      []albumRecord `json:"items"`
}

type albumRecord struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// recordResponse is the created record returned by a create call
type recordResponse struct {
	ID             string `json:"id"`
	CollectionName string `json:"collectionName"`
}

// apiErrorResponse is the PocketBase error envelope
type apiErrorResponse struct {
	Code    int                      `json:"code"`
	Message string                   `json:"message"`
	Data    map[string]fieldAPIError `json:"data"`
}

type fieldAPIError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (e *apiErrorResponse) Error() string {
	if len(e.Data) == 0 {
		return e.Message
	}
	fields := make([]string, 0, len(e.Data))
	for name, fieldErr := range e.Data {
		fields = append(fields, fmt.Sprintf("%s: %s", name, fieldErr.Message))
	}
	sort.Strings(fields)
	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(fields, ", "))
}
