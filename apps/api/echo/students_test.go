package echoapi_test

import (
	"encoding/json"
	"net/http"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	. "github.com/trezcool/placement/apps/api/echo"
	"github.com/trezcool/placement/core/directory"
)

func Test_studentApi_permissions(t *testing.T) {
	srv, _ := setup(t)

	paths := []struct{ method, path string }{
		{http.MethodGet, "/v1/students"},
		{http.MethodPost, "/v1/students"},
		{http.MethodGet, "/v1/students/s1"},
		{http.MethodPatch, "/v1/students/s1"},
		{http.MethodDelete, "/v1/students/s1"},
		{http.MethodPost, "/v1/students/s3/approve"},
		{http.MethodPost, "/v1/students/s3/reject"},
		{http.MethodPost, "/v1/students/s1/placed"},
		{http.MethodPost, "/v1/messages"},
		{http.MethodGet, "/v1/analytics"},
	}

	var tests []httpTest
	for _, p := range paths {
		tests = append(tests, httpTest{
			name: "not logged in: " + p.method + " " + p.path, method: p.method, path: p.path,
			wantCode: http.StatusUnauthorized, wantData: marshallObj(t, errNotLoggedIn),
		})
	}
	runHTTPTests(t, srv, tests)

	login(t, srv, "john@example.com", studentPwd, directory.RoleStudent)
	tests = tests[:0]
	for _, p := range paths {
		tests = append(tests, httpTest{
			name: "student: " + p.method + " " + p.path, method: p.method, path: p.path,
			wantCode: http.StatusForbidden, wantData: marshallObj(t, errForbidden),
		})
	}
	runHTTPTests(t, srv, tests)
}

func Test_studentApi_query(t *testing.T) {
	srv, env := setup(t)
	loginAdmin(t, srv)

	all, err := env.Svc.Students()
	require.NoError(t, err)
	byID := make(map[string]directory.Student, len(all))
	for _, s := range all {
		byID[s.ID] = s
	}
	list := func(ids ...string) []byte {
		students := make([]directory.Student, 0, len(ids))
		for _, id := range ids {
			students = append(students, byID[id])
		}
		return marshallObj(t, Response{Data: students})
	}
	path := func(v url.Values) string { return "/v1/students?" + v.Encode() }

	tests := []httpTest{
		{name: "all", path: "/v1/students", wantCode: http.StatusOK, wantData: list("s1", "s2", "s3", "s4", "s5")},
		{name: "search", path: path(url.Values{"search": {" JOHN "}}), wantCode: http.StatusOK, wantData: list("s1", "s3")},
		{name: "search (unknown)", path: path(url.Values{"search": {"lol"}}), wantCode: http.StatusOK, wantData: list()},
		{name: "pending", path: path(url.Values{"is_approved": {"false"}}), wantCode: http.StatusOK, wantData: list("s3")},
		{name: "placed", path: path(url.Values{"is_placed": {"true"}}), wantCode: http.StatusOK, wantData: list("s2", "s4")},
		{
			name: "departments", path: path(url.Values{"department": {"CSE", "CIVIL"}}),
			wantCode: http.StatusOK, wantData: list("s1", "s2", "s5"),
		},
		{
			name: "arrear in batch", path: path(url.Values{"has_arrear": {"true"}, "batch": {"2020-2024"}}),
			wantCode: http.StatusOK, wantData: list("s2", "s5"),
		},
		{name: "bad bool", path: path(url.Values{"is_placed": {"lol"}}), wantCode: http.StatusOK, wantData: list()},
		{name: "ordering: asc", path: path(url.Values{"ordering": {"name"}}), wantCode: http.StatusOK, wantData: list("s4", "s2", "s1", "s5", "s3")},
		{name: "ordering: desc", path: path(url.Values{"ordering": {"-name"}}), wantCode: http.StatusOK, wantData: list("s3", "s5", "s1", "s2", "s4")},
		{
			name: "ordering: ties keep roster order", path: path(url.Values{"ordering": {"-department"}}),
			wantCode: http.StatusOK, wantData: list("s4", "s3", "s1", "s2", "s5"),
		},
		{
			name: "ordering: many fields", path: path(url.Values{"ordering": {"-is_placed, name"}}),
			wantCode: http.StatusOK, wantData: list("s4", "s2", "s1", "s5", "s3"),
		},
		{
			name: "ordering with filter", path: path(url.Values{"ordering": {"-id"}, "department": {"CSE", "CIVIL"}}),
			wantCode: http.StatusOK, wantData: list("s5", "s2", "s1"),
		},
		{
			name: "ordering: unknown field", path: path(url.Values{"ordering": {"name,grade"}}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, ErrorResponse{
				Error:  map[string]string{"ordering": "grade: unknown ordering field"},
				Notice: destructive("Error", "Please correct the highlighted fields."),
			}),
		},
	}
	runHTTPTests(t, srv, tests)
}

func Test_studentApi_detail(t *testing.T) {
	srv, env := setup(t)
	loginAdmin(t, srv)

	john, err := env.Svc.Student("s1")
	require.NoError(t, err)

	runHTTPTests(t, srv, []httpTest{
		{name: "found", path: "/v1/students/s1", wantCode: http.StatusOK, wantData: marshallObj(t, Response{Data: john})},
		{name: "not found", path: "/v1/students/s404", wantCode: http.StatusNotFound, wantData: marshallObj(t, errNotFound)},
		{name: "approve: not found", method: http.MethodPost, path: "/v1/students/s404/approve", wantCode: http.StatusNotFound},
		{name: "delete: not found", method: http.MethodDelete, path: "/v1/students/s404", wantCode: http.StatusNotFound},
	})
}

func Test_studentApi_lifecycle(t *testing.T) {
	srv, env := setup(t)
	loginAdmin(t, srv)

	robert, err := env.Svc.Student("s3")
	require.NoError(t, err)
	approved := robert
	approved.IsApproved = true
	placed := approved
	placed.IsPlaced = true

	runHTTPTests(t, srv, []httpTest{
		{
			name: "approve", method: http.MethodPost, path: "/v1/students/s3/approve", wantCode: http.StatusOK,
			wantData: marshallObj(t, Response{
				Notice: notice("Student Approved", "The student has been approved and can now log in."),
				Data:   approved,
			}),
		},
		{
			name: "mark as placed", method: http.MethodPost, path: "/v1/students/s3/placed", wantCode: http.StatusOK,
			wantData: marshallObj(t, Response{
				Notice: notice("Student Marked as Placed", "The student has been marked as placed."),
				Data:   placed,
			}),
		},
		{
			name: "mark as placed again", method: http.MethodPost, path: "/v1/students/s3/placed", wantCode: http.StatusOK,
			wantData: marshallObj(t, Response{
				Notice: notice("Student Marked as Placed", "The student has been marked as placed."),
				Data:   placed,
			}),
		},
	})

	sent := env.MailSvc.SentMessages()
	require.Len(t, sent, 1)
	assert.Equal(t, "robert@example.com", sent[0].To[0].Address)

	runHTTPTests(t, srv, []httpTest{
		{
			name: "reject", method: http.MethodPost, path: "/v1/students/s3/reject", wantCode: http.StatusOK,
			wantData: marshallObj(t, Response{Notice: notice("Student Rejected", "The student registration has been rejected.")}),
		},
		{name: "rejected", path: "/v1/students/s3", wantCode: http.StatusNotFound, wantData: marshallObj(t, errNotFound)},
		{
			name: "remove", method: http.MethodDelete, path: "/v1/students/s1", wantCode: http.StatusOK,
			wantData: marshallObj(t, Response{Notice: notice("Student Removed", "The student has been removed from the system.")}),
		},
	})

	students, err := env.Svc.Students()
	require.NoError(t, err)
	assert.Len(t, students, 3)
}

func Test_studentApi_create(t *testing.T) {
	srv, env := setup(t)
	loginAdmin(t, srv)

	body := []byte(`{"name": " Added Student ", "email": "added@example.com", "department": "ECE", "is_placed": true, "password": "x"}`)
	rec := do(srv, http.MethodPost, "/v1/students", body)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	var res struct {
		Notice Notice            `json:"notice"`
		Data   directory.Student `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, *notice("Student Added", "Added Student has been added successfully."), res.Notice)
	assert.Equal(t, "s6", res.Data.ID)
	assert.Equal(t, "Added Student", res.Data.Name)
	assert.Equal(t, directory.RoleStudent, res.Data.Role)
	assert.True(t, res.Data.IsApproved)
	assert.True(t, res.Data.IsPlaced)
	assert.Empty(t, res.Data.PhoneNumber)

	s, err := env.Svc.Student("s6")
	require.NoError(t, err)
	assert.Equal(t, res.Data, s)
}

func Test_studentApi_update(t *testing.T) {
	srv, env := setup(t)
	loginAdmin(t, srv)

	jane, err := env.Svc.Student("s2")
	require.NoError(t, err)
	updated := jane
	updated.Name = "Jane Doe"
	updated.Semester = "7"
	updated.HasArrear = false

	runHTTPTests(t, srv, []httpTest{
		{
			name: "nothing to update", method: http.MethodPatch, path: "/v1/students/s2", body: []byte(`{}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, ErrorResponse{Error: "nothing to update", Notice: destructive("Error", "nothing to update")}),
		},
		{
			name: "bad email", method: http.MethodPatch, path: "/v1/students/s2", body: []byte(`{"email": "lol"}`),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, ErrorResponse{
				Error:  map[string]string{"email": "email must be a valid email address"},
				Notice: destructive("Error", "Please correct the highlighted fields."),
			}),
		},
		{
			name: "approval cannot be changed", method: http.MethodPatch, path: "/v1/students/s2",
			body:     []byte(`{"name": "Jane Doe", "semester": "7", "has_arrear": false, "is_approved": false, "is_placed": false}`),
			wantCode: http.StatusOK,
			wantData: marshallObj(t, Response{
				Notice: notice("Student Updated", "Student information has been updated."),
				Data:   updated,
			}),
		},
	})
}

func Test_messageApi_send(t *testing.T) {
	srv, env := setup(t)
	loginAdmin(t, srv)

	runHTTPTests(t, srv, []httpTest{
		{
			name: "no recipients", method: http.MethodPost, path: "/v1/messages",
			body:     marshallObj(t, MessageRequest{Message: "Hello"}),
			wantCode: http.StatusBadRequest,
		},
		{
			name: "blank message", method: http.MethodPost, path: "/v1/messages",
			body:     marshallObj(t, MessageRequest{IDs: []string{"s1"}, Message: "   "}),
			wantCode: http.StatusBadRequest,
			wantData: marshallObj(t, ErrorResponse{
				Error:  map[string]string{"message": "this field cannot be blank"},
				Notice: destructive("Error", "Please correct the highlighted fields."),
			}),
		},
		{
			name: "bad link", method: http.MethodPost, path: "/v1/messages",
			body:     marshallObj(t, MessageRequest{IDs: []string{"s1"}, Message: "Hello", Link: "lol"}),
			wantCode: http.StatusBadRequest,
		},
	})
	assert.Empty(t, env.MailSvc.SentMessages())

	body := marshallObj(t, MessageRequest{IDs: []string{"s1", "s2", "s404"}, Message: "Drive on Monday", Link: "https://example.com/drive"})
	rec := do(srv, http.MethodPost, "/v1/messages", body)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var res struct {
		Notice Notice             `json:"notice"`
		Data   directory.Dispatch `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, *notice("Messages Sent", "Message sent to 3 student(s)."), res.Notice)
	assert.NotEmpty(t, res.Data.ID)
	assert.Equal(t, 3, res.Data.Requested)
	assert.Equal(t, 2, res.Data.Mailed)
	assert.Len(t, env.MailSvc.SentMessages(), 2)
}

func Test_analyticsApi(t *testing.T) {
	srv, _ := setup(t)
	loginAdmin(t, srv)

	rec := do(srv, http.MethodGet, "/v1/analytics")
	require.Equal(t, http.StatusOK, rec.Code)

	var res struct {
		Data directory.PlacementStats `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Equal(t, 4, res.Data.Total)
	assert.Equal(t, 2, res.Data.Placed)
	assert.Equal(t, 1, res.Data.Pending)
	assert.Equal(t, 50, res.Data.Rate)
}
