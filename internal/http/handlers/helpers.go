package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"service-driver/internal/apperr"
	"service-driver/internal/logx"
)

func reqID(ctx context.Context) string {
	if id := middleware.GetReqID(ctx); id != "" {
		return id
	}
	return "-"
}

func writeJSON(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		logger.Error("json encode error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

func writeText(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, body string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	if _, err := io.WriteString(w, body); err != nil {
		logger.Error("write body error",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
	}
}

type messageResponse struct {
	Message string `json:"message"`
}

type detailResponse struct {
	Detail string `json:"detail"`
}

func logHTTPError(logger logx.Logger, r *http.Request, status int, msg string) {
	fields := []logx.Field{
		logx.String("req_id", reqID(r.Context())),
		logx.Int("status", status),
		logx.String("msg", msg),
	}
	if status >= http.StatusInternalServerError {
		logger.Error("http error", fields...)
		return
	}
	logger.Info("http error", fields...)
}

func writeError(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, msg string) {
	logHTTPError(logger, r, status, msg)
	writeJSON(logger, w, r, status, messageResponse{Message: msg})
}

func writeDetail(logger logx.Logger, w http.ResponseWriter, r *http.Request, status int, detail string) {
	logHTTPError(logger, r, status, detail)
	writeJSON(logger, w, r, status, detailResponse{Detail: detail})
}

// writeAppError maps service and parsing errors to responses.
func writeAppError(logger logx.Logger, w http.ResponseWriter, r *http.Request, err error) {
	var (
		fieldErrs apperr.FieldErrors
		conflict  *apperr.ConflictError
		notFound  *apperr.NotFoundError
		malformed *apperr.MalformedError
	)
	switch {
	case errors.As(err, &fieldErrs):
		logHTTPError(logger, r, http.StatusBadRequest, fieldErrs.Error())
		writeJSON(logger, w, r, http.StatusBadRequest, map[string]string(fieldErrs))
	case errors.As(err, &malformed):
		writeDetail(logger, w, r, http.StatusBadRequest, malformed.Error())
	case errors.As(err, &conflict):
		writeError(logger, w, r, http.StatusConflict, conflict.Message)
	case errors.As(err, &notFound):
		writeError(logger, w, r, http.StatusNotFound, notFound.Message)
	default:
		logger.Error("request failed",
			logx.String("req_id", reqID(r.Context())),
			logx.Err(err),
		)
		writeError(logger, w, r, http.StatusInternalServerError, "internal error")
	}
}

const (
	bodyLimit = 1 << 20
)

func decodeJSON[T any](logger logx.Logger, w http.ResponseWriter, r *http.Request, dst *T) bool {
	r.Body = http.MaxBytesReader(w, r.Body, bodyLimit)
	dec := json.NewDecoder(r.Body)

	if err := dec.Decode(dst); err != nil {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json")
		return false
	}
	if err := dec.Decode(new(struct{})); err != io.EOF {
		writeError(logger, w, r, http.StatusBadRequest, "invalid json: trailing data")
		return false
	}
	return true
}

// idBits keeps client ids in the 32-bit range the public API has always accepted;
// anything wider is malformed rather than a lookup miss.
const idBits = 32

func parseID(s string) (int64, error) {
	return strconv.ParseInt(s, 10, idBits)
}

func idFromURL(r *http.Request, name string) (int64, error) {
	raw := chi.URLParam(r, name)
	id, err := parseID(raw)
	if err != nil {
		return 0, &apperr.MalformedError{Param: name, Value: raw}
	}
	return id, nil
}

// idsFromQuery collects every value of a repeated query parameter.
// Values may be comma separated; blank entries are skipped.
func idsFromQuery(r *http.Request, name string) ([]int64, error) {
	values := r.URL.Query()[name]
	ids := make([]int64, 0, len(values))
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			part = strings.TrimSpace(part)
			if part == "" {
				continue
			}
			id, err := parseID(part)
			if err != nil {
				return nil, &apperr.MalformedError{Param: name, Value: v}
			}
			ids = append(ids, id)
		}
	}
	return ids, nil
}

func joinIDs(ids []int64) string {
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}
