package echoapi_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	. "github.com/trezcool/placement/apps/api/echo"
	"github.com/trezcool/placement/core/directory"
	"github.com/trezcool/placement/tests"
)

const (
	adminEmail = "admin@example.com"
	adminPwd   = "admin123"
	studentPwd = "student123"
)

var (
	errNotLoggedIn = ErrorResponse{
		Error:  "not logged in",
		Notice: Notice{Title: "Error", Description: "not logged in", Variant: VariantDestructive},
	}
	errForbidden = ErrorResponse{
		Error:  "permission denied",
		Notice: Notice{Title: "Error", Description: "permission denied", Variant: VariantDestructive},
	}
	errNotFound = ErrorResponse{
		Error:  "not found",
		Notice: Notice{Title: "Error", Description: "not found", Variant: VariantDestructive},
	}
)

func setup(t *testing.T, slot ...directory.SessionSlot) (*Server, *testutil.Env) {
	env := testutil.NewEnv(t, slot...)
	validate, translator := directory.NewValidator()
	srv := NewServer(ServerDeps{
		Conf:           env.Conf,
		Logger:         env.Logger,
		Directory:      env.Svc,
		Validate:       validate,
		Translator:     translator,
		DisableReqLogs: true,
	})
	return srv, env
}

type httpTest struct {
	name     string
	method   string
	path     string
	body     []byte
	wantCode int
	wantData []byte
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

func do(srv *Server, method, path string, data ...[]byte) *httptest.ResponseRecorder {
	req, rec := newRequest(method, path, data...)
	srv.ServeHTTP(rec, req)
	return rec
}

// login opens the session through the API.
func login(t *testing.T, srv *Server, email, pwd string, role directory.Role) {
	body := marshallObj(t, LoginRequest{Email: email, Password: pwd, Role: role})
	if rec := do(srv, http.MethodPost, "/v1/auth/login", body); rec.Code != http.StatusOK {
		t.Fatalf("login() failed: %d %s", rec.Code, rec.Body.String())
	}
}

func loginAdmin(t *testing.T, srv *Server) {
	login(t, srv, adminEmail, adminPwd, directory.RoleAdmin)
}

func marshallObj(t *testing.T, obj interface{}) []byte {
	data, err := json.Marshal(obj)
	if err != nil {
		t.Fatalf("marshallObj() failed: %v", err)
	}
	return data
}

func notice(title, description string) *Notice {
	return &Notice{Title: title, Description: description, Variant: VariantDefault}
}

func destructive(title, description string) Notice {
	return Notice{Title: title, Description: description, Variant: VariantDestructive}
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
	if rec.Code != tt.wantCode {
		t.Errorf("failed! code = %v; wantCode %v", rec.Code, tt.wantCode)
	}
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

func runHTTPTests(t *testing.T, srv *Server, tests []httpTest) {
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			method := tt.method
			if method == "" {
				method = http.MethodGet
			}
			rec := do(srv, method, tt.path, tt.body)
			checkCodeAndData(t, tt, rec)
		})
	}
}
