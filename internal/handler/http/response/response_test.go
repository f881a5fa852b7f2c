package response

import (
	"encoding/json"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, rec *httptest.ResponseRecorder) Envelope {
	t.Helper()
	var env Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return env
}

func TestSuccessEnvelope(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	Success(rec, map[string]string{"id": "branch-1"})

	assert.Equal(t, 200, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Nil(t, env.Error)
}

func TestCreatedEnvelope(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	Created(rec, "Attendance record created", nil)

	assert.Equal(t, 201, rec.Code)
	env := decode(t, rec)
	assert.True(t, env.Success)
	assert.Equal(t, "Attendance record created", env.Message)
}

func TestSuccessWithMetaCarriesPagination(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	SuccessWithMeta(rec, []string{}, &Meta{Page: 2, Limit: 50, TotalItems: 120, TotalPages: 3})

	env := decode(t, rec)
	require.NotNil(t, env.Meta)
	assert.Equal(t, 2, env.Meta.Page)
	assert.Equal(t, int64(120), env.Meta.TotalItems)
	assert.Equal(t, 3, env.Meta.TotalPages)
}

func TestErrorEnvelopes(t *testing.T) {
	t.Parallel()
	cases := []struct {
		name   string
		write  func(rec *httptest.ResponseRecorder)
		status int
		code   string
	}{
		{"not found", func(r *httptest.ResponseRecorder) { NotFound(r, "Payroll batch not found") }, 404, "NOT_FOUND"},
		{"conflict", func(r *httptest.ResponseRecorder) { Conflict(r, "Duplicate attendance record") }, 409, "CONFLICT"},
		{"unauthorized", func(r *httptest.ResponseRecorder) { Unauthorized(r, "Invalid token") }, 401, "UNAUTHORIZED"},
		{"forbidden", func(r *httptest.ResponseRecorder) { Forbidden(r, "Admin privilege required") }, 403, "FORBIDDEN"},
		{"internal", func(r *httptest.ResponseRecorder) { InternalServerError(r, "An unexpected error occurred") }, 500, "INTERNAL_SERVER_ERROR"},
	}

	for _, c := range cases {
		c := c
		t.Run(c.name, func(t *testing.T) {
			t.Parallel()
			rec := httptest.NewRecorder()
			c.write(rec)

			assert.Equal(t, c.status, rec.Code)
			env := decode(t, rec)
			assert.False(t, env.Success)
			require.NotNil(t, env.Error)
			assert.Equal(t, c.code, env.Error.Code)
		})
	}
}

func TestValidationErrorIncludesFieldDetails(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	ValidationError(rec, map[string]string{"employee_key": "is required"})

	assert.Equal(t, 422, rec.Code)
	env := decode(t, rec)
	require.NotNil(t, env.Error)
	assert.Equal(t, "VALIDATION_ERROR", env.Error.Code)
	assert.Equal(t, "is required", env.Error.Details["employee_key"])
}

func TestUnencodablePayloadFallsBack(t *testing.T) {
	t.Parallel()
	rec := httptest.NewRecorder()

	Success(rec, make(chan int))

	assert.Equal(t, 500, rec.Code)
	env := decode(t, rec)
	assert.False(t, env.Success)
	require.NotNil(t, env.Error)
	assert.Equal(t, "ENCODING_ERROR", env.Error.Code)
}
