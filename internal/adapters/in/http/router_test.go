package http_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	httpin "tracking/internal/adapters/in/http"
	"tracking/internal/adapters/in/http/apidocs"

	"github.com/getkin/kin-openapi/openapi2"
	"github.com/getkin/kin-openapi/openapi2conv"
	"github.com/getkin/kin-openapi/openapi3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func loadAPIDocument(t *testing.T) *openapi3.T {
	t.Helper()

	var v2 openapi2.T
	require.NoError(t, json.Unmarshal([]byte(apidocs.SwaggerInfo.ReadDoc()), &v2))

	converted, err := openapi2conv.ToV3(&v2)
	require.NoError(t, err)

	raw, err := json.Marshal(converted)
	require.NoError(t, err)

	doc, err := openapi3.NewLoader().LoadFromData(raw)
	require.NoError(t, err)
	require.NoError(t, doc.Validate(t.Context()))

	return doc
}

func TestAPIDocument_DescribesEveryRoute(t *testing.T) {
	doc := loadAPIDocument(t)
	router := httpin.NewRouter(httpin.NewServer(nil), httpin.NewTokenVerifier("secret"))

	described := 0
	for _, route := range router.Routes() {
		path, found := strings.CutPrefix(route.Path, apidocs.SwaggerInfo.BasePath)
		if !found {
			continue
		}

		segments := strings.Split(path, "/")
		for i, segment := range segments {
			if name, isParam := strings.CutPrefix(segment, ":"); isParam {
				segments[i] = "{" + name + "}"
			}
		}
		path = strings.Join(segments, "/")

		item := doc.Paths.Value(path)
		require.NotNil(t, item, "route %s %s is not documented", route.Method, route.Path)
		assert.NotNil(t, item.GetOperation(route.Method), "method %s %s is not documented", route.Method, route.Path)
		described++
	}

	assert.Equal(t, 7, described)
}

func TestSwaggerDocumentIsServed(t *testing.T) {
	router := httpin.NewRouter(httpin.NewServer(nil), httpin.NewTokenVerifier("secret"))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/swagger/doc.json", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Shipment Tracking API")
}
