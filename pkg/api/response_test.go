package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	apperrors "org-registry/pkg/errors"
)

func newContext() (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	return e.NewContext(req, rec), rec
}

func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]json.RawMessage {
	t.Helper()
	var out map[string]json.RawMessage
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestSuccessList_EmptyKeepsBody(t *testing.T) {
	for name, list := range map[string][]string{
		"nil":   nil,
		"empty": {},
	} {
		t.Run(name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, SuccessList(c, "ok", list))

			assert.Equal(t, http.StatusOK, rec.Code)
			body, ok := decode(t, rec)["body"]
			require.True(t, ok, "ключ body отсутствует: %s", rec.Body.String())
			assert.JSONEq(t, `[]`, string(body))
		})
	}
}

func TestSuccessList_Items(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, SuccessList(c, "ok", []int{1, 2}))
	assert.JSONEq(t, `{"status":true,"message":"ok","body":[1,2]}`, rec.Body.String())
}

func TestSuccessOne(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, SuccessOne(c, http.StatusCreated, "создано", map[string]int{"id": 7}))

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"status":true,"message":"создано","body":{"id":7}}`, rec.Body.String())
}

func TestErrorResponse_StatusMapping(t *testing.T) {
	cases := []struct {
		name string
		err  error
		code int
	}{
		{name: "not found", err: apperrors.ErrNotFound, code: http.StatusNotFound},
		{name: "conflict", err: apperrors.ErrConflict, code: http.StatusConflict},
		{name: "bad request", err: apperrors.NewBadRequestError("плохо"), code: http.StatusBadRequest},
		{name: "unknown", err: assert.AnError, code: http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, rec := newContext()
			require.NoError(t, ErrorResponse(c, tc.err, zap.NewNop()))

			assert.Equal(t, tc.code, rec.Code)
			out := decode(t, rec)
			assert.JSONEq(t, `false`, string(out["status"]))
			assert.JSONEq(t, `null`, string(out["body"]))
		})
	}
}
