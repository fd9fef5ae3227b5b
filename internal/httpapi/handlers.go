package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
)

// maxBodySize limits values, members and batch payloads.
const maxBodySize = 1 << 20

// Cache is the facade surface the gateway exposes.
// *shardcache.Facade implements it.
type Cache interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string) bool
	SetEx(ctx context.Context, key, value string, ttl time.Duration) bool
	SetNX(ctx context.Context, key, value string, ttl time.Duration) bool
	Delete(ctx context.Context, key string) bool
	Expire(ctx context.Context, key string, ttl time.Duration) bool
	HGet(ctx context.Context, key, field string) (string, bool)
	HSet(ctx context.Context, key, field, value string) (int64, bool)
	HSetExpire(ctx context.Context, key, field, value string, ttl time.Duration) (int64, bool)
	HKeys(ctx context.Context, key string) []string
	RPush(ctx context.Context, key, value string) bool
	LPop(ctx context.Context, key string) (string, bool)
	LRange(ctx context.Context, key string, start, stop int64) []string
	LTrim(ctx context.Context, key string, start, stop int64) bool
	SAdd(ctx context.Context, key, member string, ttl time.Duration) bool
	Incr(ctx context.Context, key string) int64
	IncrBy(ctx context.Context, key string, n int64) int64
	IncrExpire(ctx context.Context, key string, ttl time.Duration) int64
	BatchInsert(ctx context.Context, entries map[string]string, ttl time.Duration) bool
}

var (
	errInvalidTTL   = errors.New("ttl must be a positive duration, e.g. 30s or 5m")
	errInvalidIndex = errors.New("start and stop must be integers")
	errInvalidBy    = errors.New("by must be a positive integer")
	errTTLWithBy    = errors.New("ttl can only be combined with by=1")
	errInvalidBody  = errors.New("invalid request body")
	errBodyTooLarge = errors.New("request body too large")
	errUnavailable  = errors.New("cache unavailable")
)

type batchRequest struct {
	Entries map[string]string `json:"entries"`
	TTL     string            `json:"ttl"`
}

func (s *Server) getValue(w http.ResponseWriter, r *http.Request) {
	v, ok := s.cache.Get(r.Context(), chi.URLParam(r, "key"))
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	writeText(w, v)
}

func (s *Server) putValue(w http.ResponseWriter, r *http.Request) {
	ttl, err := parseTTL(r.URL.Query().Get("ttl"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	nx, err := parseBool(r.URL.Query().Get("nx"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "nx must be a boolean")
		return
	}
	value, ok := readBody(w, r)
	if !ok {
		return
	}

	ctx, key := r.Context(), chi.URLParam(r, "key")
	switch {
	case nx:
		if !s.cache.SetNX(ctx, key, value, ttl) {
			writeError(w, http.StatusConflict, "key already exists")
			return
		}
	case ttl > 0:
		if !s.cache.SetEx(ctx, key, value, ttl) {
			writeError(w, http.StatusServiceUnavailable, errUnavailable.Error())
			return
		}
	default:
		if !s.cache.Set(ctx, key, value) {
			writeError(w, http.StatusServiceUnavailable, errUnavailable.Error())
			return
		}
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) deleteValue(w http.ResponseWriter, r *http.Request) {
	if !s.cache.Delete(r.Context(), chi.URLParam(r, "key")) {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) expireValue(w http.ResponseWriter, r *http.Request) {
	ttl, err := parseTTL(r.URL.Query().Get("ttl"))
	if err != nil || ttl == 0 {
		writeError(w, http.StatusBadRequest, errInvalidTTL.Error())
		return
	}
	if !s.cache.Expire(r.Context(), chi.URLParam(r, "key"), ttl) {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// incrCounter only accepts positive increments: -1 is the failure sentinel.
func (s *Server) incrCounter(w http.ResponseWriter, r *http.Request) {
	ttl, err := parseTTL(r.URL.Query().Get("ttl"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	by := int64(1)
	if raw := r.URL.Query().Get("by"); raw != "" {
		by, err = strconv.ParseInt(raw, 10, 64)
		if err != nil || by <= 0 {
			writeError(w, http.StatusBadRequest, errInvalidBy.Error())
			return
		}
	}
	if ttl > 0 && by != 1 {
		writeError(w, http.StatusBadRequest, errTTLWithBy.Error())
		return
	}

	ctx, key := r.Context(), chi.URLParam(r, "key")
	var v int64
	switch {
	case ttl > 0:
		v = s.cache.IncrExpire(ctx, key, ttl)
	case by == 1:
		v = s.cache.Incr(ctx, key)
	default:
		v = s.cache.IncrBy(ctx, key, by)
	}
	if v == -1 {
		writeError(w, http.StatusServiceUnavailable, errUnavailable.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"value": v})
}

func (s *Server) hashKeys(w http.ResponseWriter, r *http.Request) {
	keys := s.cache.HKeys(r.Context(), chi.URLParam(r, "key"))
	if len(keys) == 0 {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	writeJSON(w, http.StatusOK, keys)
}

func (s *Server) hashGet(w http.ResponseWriter, r *http.Request) {
	v, ok := s.cache.HGet(r.Context(), chi.URLParam(r, "key"), chi.URLParam(r, "field"))
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	writeText(w, v)
}

func (s *Server) hashSet(w http.ResponseWriter, r *http.Request) {
	ttl, err := parseTTL(r.URL.Query().Get("ttl"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	value, ok := readBody(w, r)
	if !ok {
		return
	}

	ctx, key, field := r.Context(), chi.URLParam(r, "key"), chi.URLParam(r, "field")
	var added int64
	if ttl > 0 {
		added, ok = s.cache.HSetExpire(ctx, key, field, value, ttl)
	} else {
		added, ok = s.cache.HSet(ctx, key, field, value)
	}
	if !ok {
		writeError(w, http.StatusServiceUnavailable, errUnavailable.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]int64{"added": added})
}

func (s *Server) listPush(w http.ResponseWriter, r *http.Request) {
	value, ok := readBody(w, r)
	if !ok {
		return
	}
	if !s.cache.RPush(r.Context(), chi.URLParam(r, "key"), value) {
		writeError(w, http.StatusServiceUnavailable, errUnavailable.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) listPop(w http.ResponseWriter, r *http.Request) {
	v, ok := s.cache.LPop(r.Context(), chi.URLParam(r, "key"))
	if !ok {
		writeError(w, http.StatusNotFound, http.StatusText(http.StatusNotFound))
		return
	}
	writeText(w, v)
}

func (s *Server) listRange(w http.ResponseWriter, r *http.Request) {
	start, stop, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	items := s.cache.LRange(r.Context(), chi.URLParam(r, "key"), start, stop)
	if items == nil {
		writeError(w, http.StatusServiceUnavailable, errUnavailable.Error())
		return
	}
	writeJSON(w, http.StatusOK, items)
}

func (s *Server) listTrim(w http.ResponseWriter, r *http.Request) {
	start, stop, err := parseRange(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.cache.LTrim(r.Context(), chi.URLParam(r, "key"), start, stop) {
		writeError(w, http.StatusServiceUnavailable, errUnavailable.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// setAdd cannot tell a failed call from an existing member; both report
// added=false.
func (s *Server) setAdd(w http.ResponseWriter, r *http.Request) {
	ttl, err := parseTTL(r.URL.Query().Get("ttl"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	member, ok := readBody(w, r)
	if !ok {
		return
	}
	added := s.cache.SAdd(r.Context(), chi.URLParam(r, "key"), member, ttl)
	writeJSON(w, http.StatusOK, map[string]bool{"added": added})
}

func (s *Server) batchInsert(w http.ResponseWriter, r *http.Request) {
	var req batchRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodySize))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errInvalidBody.Error())
		return
	}
	ttl, err := parseTTL(req.TTL)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !s.cache.BatchInsert(r.Context(), req.Entries, ttl) {
		writeError(w, http.StatusServiceUnavailable, errUnavailable.Error())
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// parseTTL parses a Go duration. Empty means no expiry.
func parseTTL(raw string) (time.Duration, error) {
	if raw == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d <= 0 {
		return 0, errInvalidTTL
	}
	return d, nil
}

func parseBool(raw string) (bool, error) {
	if raw == "" {
		return false, nil
	}
	return strconv.ParseBool(raw)
}

// parseRange reads start and stop, defaulting to the whole list.
func parseRange(r *http.Request) (int64, int64, error) {
	q := r.URL.Query()
	start, stop := int64(0), int64(-1)

	var err error
	if raw := q.Get("start"); raw != "" {
		if start, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return 0, 0, errInvalidIndex
		}
	}
	if raw := q.Get("stop"); raw != "" {
		if stop, err = strconv.ParseInt(raw, 10, 64); err != nil {
			return 0, 0, errInvalidIndex
		}
	}
	return start, stop, nil
}

// readBody returns the raw request body. On failure it writes the error
// response and reports false.
func readBody(w http.ResponseWriter, r *http.Request) (string, bool) {
	b, err := io.ReadAll(http.MaxBytesReader(w, r.Body, maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			writeError(w, http.StatusRequestEntityTooLarge, errBodyTooLarge.Error())
			return "", false
		}
		writeError(w, http.StatusBadRequest, errInvalidBody.Error())
		return "", false
	}
	return string(b), true
}

func writeText(w http.ResponseWriter, v string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = io.WriteString(w, v)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
