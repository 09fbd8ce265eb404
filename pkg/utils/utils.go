package utils

import (
	"fmt"
	"os"
)

// GetDefaultQueryAndHeaders returns the query and headers that should be
// supplied with each request made to the reporter backend
func GetDefaultQueryAndHeaders() (query map[string]interface{}, headers map[string]string) {
	query = map[string]interface{}{
		"repoID": os.Getenv("REPO_ID"),
		"runID":  os.Getenv("RUN_ID"),
		"orgID":  os.Getenv("ORG_ID"),
	}
	headers = map[string]string{
		"Authorization": fmt.Sprintf("Bearer %s", os.Getenv("TOKEN")),
	}
	return query, headers
}

// Float64Ptr returns a pointer to the given float64, for optional policy fields.
func Float64Ptr(v float64) *float64 {
	return &v
}
