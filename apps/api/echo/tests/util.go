package tests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/masomo/apps/api/echo"
	"github.com/trezcool/masomo/core"
	"github.com/trezcool/masomo/core/catalog"
	"github.com/trezcool/masomo/core/coursework"
	"github.com/trezcool/masomo/core/school"
	"github.com/trezcool/masomo/core/user"
	"github.com/trezcool/masomo/storage/inmem"
	"github.com/trezcool/masomo/tests"
)

type services struct {
	user       *user.Service
	school     *school.Service
	coursework *coursework.Service
	logger     *testutil.Logger
}

func setup(t *testing.T) (Server, services) {
	t.Helper()

	// set up DB & services
	db := inmemdb.Open()
	svcs := services{
		user:   user.NewService(inmemdb.NewUserRepository(db)),
		school: school.NewService(inmemdb.NewSchoolRepository(db)),
		logger: new(testutil.Logger),
	}
	svcs.coursework = coursework.NewService(inmemdb.NewCourseworkRepository(db), svcs.school)

	cat, err := catalog.New()
	require.NoError(t, err)

	// set up server
	app, err := NewServer(
		&Options{
			TestMode:       true,
			DisableReqLogs: true,
			Catalog:        cat,
			UserSvc:        svcs.user,
			SchoolSvc:      svcs.school,
			CourseworkSvc:  svcs.coursework,
			Logger:         svcs.logger,
			Registry:       prometheus.NewRegistry(),
		},
	)
	require.NoError(t, err)
	return app, svcs
}

type httpErr struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Details []core.FieldError `json:"details,omitempty"`
}

func validationErr(details ...core.FieldError) httpErr {
	return httpErr{Error: "Validation failed", Details: details}
}

type httpData struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data"`
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
	extra    interface{}
}

func newRequest(method, path string, data ...[]byte) (*http.Request, *httptest.ResponseRecorder) {
	var body bytes.Buffer
	if len(data) > 0 {
		body.Write(data[0])
	}
	req := httptest.NewRequest(method, path, &body)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	return req, rec
}

func serve(app Server, tt httpTest) *httptest.ResponseRecorder {
	method := tt.method
	if method == "" {
		method = http.MethodGet
	}
	req, rec := newRequest(method, tt.path, tt.body)
	app.ServeHTTP(rec, req)
	return rec
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

// marshallData wraps obj in the success envelope.
func marshallData(t *testing.T, obj interface{}) []byte {
	return marshallObj(t, httpData{Success: true, Data: obj})
}

func jsonBytesEqual(b1, b2 []byte) (bool, error) {
	var j1, j2 interface{}
	if err := json.Unmarshal(b1, &j1); err != nil {
		return false, err
	}
	if err := json.Unmarshal(b2, &j2); err != nil {
		return false, err
	}
	return reflect.DeepEqual(j1, j2), nil
}

func checkCodeAndData(t *testing.T, tt httpTest, rec *httptest.ResponseRecorder) {
	assert.Equal(t, tt.wantCode, rec.Code, "code")
	if tt.wantData == nil {
		return
	}
	ok, err := jsonBytesEqual(rec.Body.Bytes(), tt.wantData)
	if err != nil {
		t.Errorf("jsonBytesEqual() failed to compare; err %v", err)
	}
	if !ok {
		t.Errorf("failed! data = %v; wantData %v", rec.Body.String(), string(tt.wantData))
	}
}

// decodeData unmarshals the data of a success envelope into v.
func decodeData(t *testing.T, rec *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &httpData{Data: v}))
}
