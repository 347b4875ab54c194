package handlers

import (
	"encoding/json"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateCourse(t *testing.T) {
	env := newTestEnv(t)
	instructorID, cookie := env.registerAndLogin(t, "teach@example.com", "secret123", "instructor")

	w := env.do(t, http.MethodPost, "/api/courses", gin.H{
		"name":        "Intro to Go",
		"description": "Concurrency from scratch",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	body := decodeBody(t, w)
	assert.NotEmpty(t, body["id"])
	assert.Equal(t, "Intro to Go", body["name"])
	assert.Equal(t, "Concurrency from scratch", body["description"])

	// creation defaults are visible on the public detail route
	w = env.do(t, http.MethodGet, "/api/courses/"+body["id"].(string), nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	course := decodeBody(t, w)
	assert.Equal(t, instructorID, course["instructorId"])
	assert.Equal(t, true, course["isFree"])
	assert.Equal(t, "Beginner", course["level"])
	assert.Equal(t, float64(0), course["price"])
}

func TestCreateCourse_Paid(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.registerAndLogin(t, "teach@example.com", "secret123", "instructor")

	w := env.do(t, http.MethodPost, "/api/courses", gin.H{
		"name":   "Advanced Python",
		"price":  99.99,
		"isFree": false,
		"level":  "Advanced",
	}, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	id := decodeBody(t, w)["id"].(string)

	w = env.do(t, http.MethodGet, "/api/courses/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	course := decodeBody(t, w)
	assert.Equal(t, 99.99, course["price"])
	assert.Equal(t, false, course["isFree"])
	assert.Equal(t, "Advanced", course["level"])
}

func TestCreateCourse_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/courses", gin.H{"name": "Anonymous Course"}, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
}

func TestCreateCourse_Validation(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.registerAndLogin(t, "teach@example.com", "secret123", "instructor")

	tests := []struct {
		name    string
		payload gin.H
		wantErr string
	}{
		{
			name:    "missing name",
			payload: gin.H{"description": "no name"},
			wantErr: "name is required",
		},
		{
			name:    "negative price",
			payload: gin.H{"name": "Bad Price", "price": -5},
			wantErr: "price must be greater than or equal to 0",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/courses", tt.payload, cookie)
			require.Equal(t, http.StatusBadRequest, w.Code, w.Body.String())
			assert.Equal(t, tt.wantErr, decodeBody(t, w)["error"])
		})
	}
}

func TestGetCourse_NotFound(t *testing.T) {
	env := newTestEnv(t)

	// unknown uuid and a malformed id both read as absent
	for _, id := range []string{"4b4fbcc4-17e1-4139-b2f1-90ae1d1aa7a5", "nonexistent"} {
		w := env.do(t, http.MethodGet, "/api/courses/"+id, nil, "")
		require.Equal(t, http.StatusNotFound, w.Code, "id %q: %s", id, w.Body.String())
		assert.Equal(t, "Course not found", decodeBody(t, w)["error"])
	}
}

func TestListCourses(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.registerAndLogin(t, "teach@example.com", "secret123", "instructor")

	for _, name := range []string{"One", "Two"} {
		w := env.do(t, http.MethodPost, "/api/courses", gin.H{"name": name}, cookie)
		require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	}

	w := env.do(t, http.MethodGet, "/api/courses", nil, "")
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var listed []map[string]any
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &listed))
	assert.Len(t, listed, 2)
}

func TestEnroll(t *testing.T) {
	env := newTestEnv(t)
	_, instructorCookie := env.registerAndLogin(t, "teach@example.com", "secret123", "instructor")
	_, studentCookie := env.registerAndLogin(t, "kid@example.com", "secret123", "student")

	w := env.do(t, http.MethodPost, "/api/courses", gin.H{"name": "Algebra"}, instructorCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	courseID := decodeBody(t, w)["id"].(string)

	w = env.do(t, http.MethodPost, "/api/enroll/"+courseID, nil, studentCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "Enrolled successfully", decodeBody(t, w)["message"])

	// enrolling twice is allowed and records a second row
	w = env.do(t, http.MethodPost, "/api/enroll/"+courseID, nil, studentCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/dashboard", nil, studentCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	dash := decodeBody(t, w)
	courses := dash["courses"].([]any)
	assert.Len(t, courses, 2)
}

func TestEnroll_UnknownCourse(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.registerAndLogin(t, "kid@example.com", "secret123", "student")

	for _, id := range []string{"4b4fbcc4-17e1-4139-b2f1-90ae1d1aa7a5", "nonexistent"} {
		w := env.do(t, http.MethodPost, "/api/enroll/"+id, nil, cookie)
		require.Equal(t, http.StatusNotFound, w.Code, "id %q: %s", id, w.Body.String())
		assert.Equal(t, "Course not found", decodeBody(t, w)["error"])
	}
}

func TestEnroll_RequiresSession(t *testing.T) {
	env := newTestEnv(t)

	w := env.do(t, http.MethodPost, "/api/enroll/some-course", nil, "")
	require.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Equal(t, "Unauthorized", decodeBody(t, w)["error"])
}

func TestDashboard_Student(t *testing.T) {
	env := newTestEnv(t)
	_, instructorCookie := env.registerAndLogin(t, "teach@example.com", "secret123", "instructor")
	studentID, studentCookie := env.registerAndLogin(t, "kid@example.com", "secret123", "student")

	w := env.do(t, http.MethodPost, "/api/courses", gin.H{"name": "Biology"}, instructorCookie)
	require.Equal(t, http.StatusOK, w.Code)
	courseID := decodeBody(t, w)["id"].(string)

	// a course the student never enrolled in
	w = env.do(t, http.MethodPost, "/api/courses", gin.H{"name": "Chemistry"}, instructorCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodPost, "/api/enroll/"+courseID, nil, studentCookie)
	require.Equal(t, http.StatusOK, w.Code)

	w = env.do(t, http.MethodGet, "/api/dashboard", nil, studentCookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	dash := decodeBody(t, w)
	user := dash["user"].(map[string]any)
	assert.Equal(t, studentID, user["id"])
	assert.Equal(t, "student", user["userType"])

	courses := dash["courses"].([]any)
	require.Len(t, courses, 1)
	assert.Equal(t, "Biology", courses[0].(map[string]any)["name"])
}

func TestDashboard_Instructor(t *testing.T) {
	env := newTestEnv(t)
	instructorID, cookie := env.registerAndLogin(t, "teach@example.com", "secret123", "instructor")

	for _, name := range []string{"Physics", "Astronomy"} {
		w := env.do(t, http.MethodPost, "/api/courses", gin.H{"name": name}, cookie)
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := env.do(t, http.MethodGet, "/api/dashboard", nil, cookie)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	dash := decodeBody(t, w)
	user := dash["user"].(map[string]any)
	assert.Equal(t, instructorID, user["id"])

	courses := dash["courses"].([]any)
	assert.Len(t, courses, 2)
}

func TestUploadImage_RequiresFile(t *testing.T) {
	env := newTestEnv(t)
	_, cookie := env.registerAndLogin(t, "teach@example.com", "secret123", "instructor")

	w := env.do(t, http.MethodPost, "/api/courses", gin.H{"name": "Geometry"}, cookie)
	require.Equal(t, http.StatusOK, w.Code)
	courseID := decodeBody(t, w)["id"].(string)

	w = env.do(t, http.MethodPost, "/api/courses/"+courseID+"/image", nil, cookie)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Equal(t, "Image file is required", decodeBody(t, w)["error"])
}
