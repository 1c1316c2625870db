package handlers

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"service-driver/internal/apperr"
	testlog "service-driver/internal/testutil"
)

func TestIDFromURL(t *testing.T) {
	t.Parallel()

	cases := []struct {
		raw     string
		want    int64
		wantErr string
	}{
		{raw: "42", want: 42},
		{raw: "-3", want: -3},
		{raw: "1a", wantErr: "Failed to convert 'id' with value: '1a'"},
		{raw: "", wantErr: "Failed to convert 'id' with value: ''"},
		{raw: "99999999999999999999", wantErr: "Failed to convert 'id' with value: '99999999999999999999'"},
		{raw: "2147483647", want: 2147483647},
		{raw: "3000000000", wantErr: "Failed to convert 'id' with value: '3000000000'"},
	}

	for _, tc := range cases {
		t.Run(tc.raw, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/driver/x", nil)
			rc := chi.NewRouteContext()
			rc.URLParams.Add("id", tc.raw)
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rc))

			got, err := idFromURL(req, "id")
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				require.ErrorIs(t, err, apperr.ErrInvalid)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestIDsFromQuery(t *testing.T) {
	t.Parallel()

	cases := []struct {
		name    string
		query   string
		want    []int64
		wantErr string
	}{
		{name: "absent", query: "", want: []int64{}},
		{name: "repeated", query: "id=3&id=1&id=3", want: []int64{3, 1, 3}},
		{name: "comma separated", query: "id=1,2&id=5", want: []int64{1, 2, 5}},
		{name: "blank values skipped", query: "id=&id=4&id=%20", want: []int64{4}},
		{name: "malformed", query: "id=1&id=x", wantErr: "Failed to convert 'id' with value: 'x'"},
		{name: "malformed inside list", query: "id=1,x", wantErr: "Failed to convert 'id' with value: '1,x'"},
		{name: "out of int32 range", query: "id=3000000000", wantErr: "Failed to convert 'id' with value: '3000000000'"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			req := httptest.NewRequest(http.MethodGet, "/api/driver?"+tc.query, nil)
			got, err := idsFromQuery(req, "id")
			if tc.wantErr != "" {
				require.EqualError(t, err, tc.wantErr)
				return
			}
			require.NoError(t, err)
			require.Equal(t, tc.want, got)
		})
	}
}

func TestJoinIDs(t *testing.T) {
	t.Parallel()

	require.Equal(t, "", joinIDs(nil))
	require.Equal(t, "999", joinIDs([]int64{999}))
	require.Equal(t, "5,2,5", joinIDs([]int64{5, 2, 5}))
}

func TestWriteAppError_InternalIsLogged(t *testing.T) {
	t.Parallel()

	rec := testlog.New()
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/api/driver/all", nil)

	writeAppError(rec.Logger(), rr, req, errors.New("db down"))

	require.Equal(t, http.StatusInternalServerError, rr.Code)
	require.JSONEq(t, `{"message":"internal error"}`, rr.Body.String())

	entries := rec.Entries()
	require.NotEmpty(t, entries)
	require.Equal(t, "error", entries[0].Level)
	require.Equal(t, "request failed", entries[0].Msg)
}

func TestWriteAppError_WrappedConflict(t *testing.T) {
	t.Parallel()

	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/driver", nil)

	err := errors.Join(errors.New("save"), apperr.NewConflict("Email already exists"))
	writeAppError(testlog.New().Logger(), rr, req, err)

	require.Equal(t, http.StatusConflict, rr.Code)
	require.JSONEq(t, `{"message":"Email already exists"}`, rr.Body.String())
}
