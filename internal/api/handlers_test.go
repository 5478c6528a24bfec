package api_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ChipDepot/Bran/internal/api"
	"github.com/ChipDepot/Bran/internal/register"
	"github.com/ChipDepot/Bran/internal/types"
)

func newRouter() http.Handler {
	reg := register.New()
	return api.New(reg, logr.Discard()).Router()
}

func doJSON(t *testing.T, h http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func leafApplication(status types.Status) types.Application {
	return types.Application{
		Name:   "greenhouse",
		Status: status,
		Locations: types.Location{
			Locations: map[string]types.Location{
				"roomA": {
					DataRequirements: map[string]types.DataRequirement{
						"temp": {Count: 2, Status: types.StatusUninitialized},
					},
				},
			},
		},
	}
}

// TestRegisterThenRead covers S1: registering an application makes it
// visible via GET, and a duplicate registration is rejected with 400.
func TestRegisterThenRead(t *testing.T) {
	h := newRouter()
	app := leafApplication(types.StatusUninitialized)

	rec := doJSON(t, h, http.MethodPost, "/apps/greenhouse", app)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodGet, "/apps/greenhouse", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var got types.Application
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &got))
	assert.Equal(t, "greenhouse", got.Name)
	assert.Equal(t, types.StatusUninitialized, got.Status)

	rec = doJSON(t, h, http.MethodPost, "/apps/greenhouse", app)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestGetApplication_NotFound(t *testing.T) {
	h := newRouter()
	rec := doJSON(t, h, http.MethodGet, "/apps/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestUpdateObjective_NotRegisteredIs404(t *testing.T) {
	h := newRouter()
	rec := doJSON(t, h, http.MethodPut, "/apps/nope", leafApplication(types.StatusCoherent))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

// TestDirectiveRoundTrip covers S2: an addition directive upserted against
// an unregistered location is rejected, registering the application and
// then posting against its declared location succeeds and becomes visible
// via GET /directives/{app}.
func TestDirectiveRoundTrip(t *testing.T) {
	h := newRouter()

	order := types.AdditionOrder{
		EnvVars: map[string]string{"key=": "topic/raw"},
		Args:    []string{"location=roomA", "topic=temp"},
	}

	rec := doJSON(t, h, http.MethodPost, "/directives/addition/greenhouse/roomA", order)
	assert.Equal(t, http.StatusNotFound, rec.Code, "application not registered yet")

	rec = doJSON(t, h, http.MethodPost, "/apps/greenhouse", leafApplication(types.StatusUninitialized))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, h, http.MethodPost, "/directives/addition/greenhouse/missingRoom", order)
	assert.Equal(t, http.StatusNotFound, rec.Code, "location not declared on the application")

	rec = doJSON(t, h, http.MethodPost, "/directives/addition/greenhouse/roomA", order)
	require.Equal(t, http.StatusOK, rec.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "created", resp["msg"])

	rec = doJSON(t, h, http.MethodPost, "/directives/addition/greenhouse/roomA", order)
	require.Equal(t, http.StatusOK, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "updated", resp["msg"])

	rec = doJSON(t, h, http.MethodGet, "/directives/greenhouse", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	var directives map[string]types.Directives
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &directives))
	require.Contains(t, directives, "roomA")
	require.NotNil(t, directives["roomA"].Addition)
	assert.Equal(t, []string{"location=roomA", "topic=temp"}, directives["roomA"].Addition.Args)
	assert.Nil(t, directives["roomA"].Reconfig)
	assert.Nil(t, directives["roomA"].Restart)
}

func TestGetDirectives_NotFound(t *testing.T) {
	h := newRouter()
	rec := doJSON(t, h, http.MethodGet, "/directives/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestRegisterObjective_InvalidBody(t *testing.T) {
	h := newRouter()
	req := httptest.NewRequest(http.MethodPost, "/apps/greenhouse", bytes.NewReader([]byte("not json")))
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
