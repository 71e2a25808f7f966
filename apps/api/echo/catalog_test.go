package echoapi

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mnogodumalon/kurs96/core/catalog"
)

func TestHome(t *testing.T) {
	srv, _ := newDummyServer(t)

	resp := do(srv, http.MethodGet, "/", "")
	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "Welcome")
}

func TestUnknownRoute(t *testing.T) {
	srv, _ := newDummyServer(t)

	resp := do(srv, http.MethodGet, "/v1/nope", "")
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestCreateLecturer(t *testing.T) {
	srv, _ := newDummyServer(t)

	tests := []httpTest{
		{
			name:     "valid",
			method:   http.MethodPost,
			path:     "/v1/lecturers",
			body:     `{"name": "Dr. Anna Weber", "email": "anna.weber@example.com"}`,
			wantCode: http.StatusCreated,
			extraAssertions: func(t *testing.T, resp *httptest.ResponseRecorder) {
				var lecturer catalog.Lecturer
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &lecturer))
				assert.NotEmpty(t, lecturer.ID)
				assert.Equal(t, "Dr. Anna Weber", lecturer.Name)
			},
		},
		{
			name:     "missing name",
			method:   http.MethodPost,
			path:     "/v1/lecturers",
			body:     `{"email": "anna.weber@example.com"}`,
			wantCode: http.StatusBadRequest,
			extraAssertions: func(t *testing.T, resp *httptest.ResponseRecorder) {
				var fldErrs map[string]string
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fldErrs))
				assert.Equal(t, "this field is required", fldErrs["name"])
			},
		},
		{
			name:     "bad email",
			method:   http.MethodPost,
			path:     "/v1/lecturers",
			body:     `{"name": "Dr. Anna Weber", "email": "nope"}`,
			wantCode: http.StatusBadRequest,
			extraAssertions: func(t *testing.T, resp *httptest.ResponseRecorder) {
				var fldErrs map[string]string
				require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fldErrs))
				assert.Contains(t, fldErrs, "email")
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) { tt.run(t, srv) })
	}
}

func TestQueryLecturers(t *testing.T) {
	srv, svc := newDummyServer(t)
	ctx := context.Background()

	_, err := svc.CreateLecturer(ctx, catalog.NewLecturer{Name: "Dr. Anna Weber", Specialty: "Informatik"})
	require.NoError(t, err)
	_, err = svc.CreateLecturer(ctx, catalog.NewLecturer{Name: "Prof. Jonas Keller", Specialty: "Mathematik"})
	require.NoError(t, err)

	resp := do(srv, http.MethodGet, "/v1/lecturers", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var lecturers []catalog.Lecturer
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &lecturers))
	assert.Len(t, lecturers, 2)

	resp = do(srv, http.MethodGet, "/v1/lecturers?search=informatik", "")
	require.Equal(t, http.StatusOK, resp.Code)
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &lecturers))
	require.Len(t, lecturers, 1)
	assert.Equal(t, "Dr. Anna Weber", lecturers[0].Name)
}

func TestUpdateLecturer(t *testing.T) {
	srv, svc := newDummyServer(t)

	lecturer, err := svc.CreateLecturer(context.Background(), catalog.NewLecturer{Name: "Dr. Anna Weber"})
	require.NoError(t, err)

	resp := do(srv, http.MethodPut, "/v1/lecturers/"+lecturer.ID, `{"name": "Dr. Anna Weber-Schmidt"}`)
	assert.Equal(t, http.StatusNoContent, resp.Code)

	lecturers, err := svc.QueryLecturers(context.Background(), "")
	require.NoError(t, err)
	require.Len(t, lecturers, 1)
	assert.Equal(t, "Dr. Anna Weber-Schmidt", lecturers[0].Name)

	resp = do(srv, http.MethodPut, "/v1/lecturers/nope", `{"name": "X"}`)
	assert.Equal(t, http.StatusNotFound, resp.Code)
}

func TestDeleteLecturer(t *testing.T) {
	srv, svc := newDummyServer(t)

	lecturer, err := svc.CreateLecturer(context.Background(), catalog.NewLecturer{Name: "Dr. Anna Weber"})
	require.NoError(t, err)

	resp := do(srv, http.MethodDelete, "/v1/lecturers/"+lecturer.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.Code)

	// deleting an already-deleted record is not a failure
	resp = do(srv, http.MethodDelete, "/v1/lecturers/"+lecturer.ID, "")
	assert.Equal(t, http.StatusNoContent, resp.Code)
}

func TestCreateCourse(t *testing.T) {
	srv, svc := newDummyServer(t)
	ctx := context.Background()

	lecturer, err := svc.CreateLecturer(ctx, catalog.NewLecturer{Name: "Dr. Anna Weber"})
	require.NoError(t, err)
	room, err := svc.CreateRoom(ctx, catalog.NewRoom{Name: "Raum 101"})
	require.NoError(t, err)

	body := `{
		"title": "Go für Einsteiger",
		"start_date": "2026-09-07",
		"end_date": "2026-10-05",
		"price": 199.5,
		"lecturer_id": "` + lecturer.ID + `",
		"room_id": "` + room.ID + `"
	}`
	resp := do(srv, http.MethodPost, "/v1/courses", body)
	require.Equal(t, http.StatusCreated, resp.Code)

	var course catalog.Course
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &course))
	assert.Equal(t, lecturer.ID, course.LecturerID.String)
	assert.Equal(t, room.ID, course.RoomID.String)

	// the list view resolves display labels
	resp = do(srv, http.MethodGet, "/v1/courses", "")
	require.Equal(t, http.StatusOK, resp.Code)
	var courses []catalog.Course
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &courses))
	require.Len(t, courses, 1)
	assert.Equal(t, "Dr. Anna Weber", courses[0].LecturerName.String)
	assert.Equal(t, "Raum 101", courses[0].RoomName.String)
}

func TestCreateCourseValidation(t *testing.T) {
	srv, _ := newDummyServer(t)

	resp := do(srv, http.MethodPost, "/v1/courses", `{"title": "X", "start_date": "soon"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var fldErrs map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fldErrs))
	assert.Equal(t, "must be a date of the form YYYY-MM-DD", fldErrs["start_date"])
}

func TestCreateEnrollmentValidation(t *testing.T) {
	srv, _ := newDummyServer(t)

	resp := do(srv, http.MethodPost, "/v1/enrollments", `{"participant_id": "p1", "enrollment_date": "2026-08-31"}`)
	require.Equal(t, http.StatusBadRequest, resp.Code)

	var fldErrs map[string]string
	require.NoError(t, json.Unmarshal(resp.Body.Bytes(), &fldErrs))
	assert.Contains(t, fldErrs, "course_id")
}

func TestBackendUnavailable(t *testing.T) {
	srv, _ := newTestServer(t, failingStore{})

	resp := do(srv, http.MethodGet, "/v1/lecturers", "")
	assert.Equal(t, http.StatusBadGateway, resp.Code)
	assert.Contains(t, resp.Body.String(), "course backend unavailable")
}

func TestTrailingSlashRemoved(t *testing.T) {
	srv, _ := newDummyServer(t)

	resp := do(srv, http.MethodGet, "/v1/lecturers/", "")
	assert.Equal(t, http.StatusOK, resp.Code)
}

func TestRequestIDHeader(t *testing.T) {
	srv, _ := newDummyServer(t)

	resp := do(srv, http.MethodGet, "/", "")
	assert.NotEmpty(t, resp.Header().Get("X-Request-ID"))
}
