package docs

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/swaggo/swag"
)

func TestSwaggerDocument(t *testing.T) {
	raw, err := swag.ReadDoc(SwaggerInfo.InstanceName())
	require.NoError(t, err)

	var doc struct {
		Swagger  string                            `json:"swagger"`
		BasePath string                            `json:"basePath"`
		Paths    map[string]map[string]interface{} `json:"paths"`
	}
	require.NoError(t, json.Unmarshal([]byte(raw), &doc))

	assert.Equal(t, "2.0", doc.Swagger)
	assert.Equal(t, "/api/v1", doc.BasePath)

	want := map[string][]string{
		"/auth/register":     {"post"},
		"/auth/login":        {"post"},
		"/profile":           {"get"},
		"/categories":        {"get", "post"},
		"/categories/{id}":   {"get", "put", "patch", "delete"},
		"/transactions":      {"get", "post"},
		"/transactions/{id}": {"get", "put", "patch", "delete"},
		"/analytics":         {"get"},
		"/export/csv":        {"get"},
		"/export/xlsx":       {"get"},
	}
	for path, methods := range want {
		ops, ok := doc.Paths[path]
		require.True(t, ok, "missing path %s", path)
		for _, method := range methods {
			assert.Contains(t, ops, method, "missing %s %s", method, path)
		}
	}
}
