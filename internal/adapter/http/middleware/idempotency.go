package middleware

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"

	"github.com/iho/bankcore/internal/usecase"
)

const (
	// IdempotencyKeyHeader is the header name for idempotency keys.
	IdempotencyKeyHeader = "Idempotency-Key"
	// IdempotencyReplayHeader marks a response served from the store.
	IdempotencyReplayHeader = "X-Idempotency-Replay"

	processingMarker = "processing"

	// storeTimeout bounds the writes made after the handler returns, which
	// run detached from the request context.
	storeTimeout = 5 * time.Second
)

// cachedResponse is what gets stored for a completed request.
type cachedResponse struct {
	Status int             `json:"status"`
	Body   json.RawMessage `json:"body,omitempty"`
}

// IdempotencyMiddleware replays the response of a POST seen before with the
// same Idempotency-Key.
type IdempotencyMiddleware struct {
	store   usecase.IdempotencyStore
	ttl     time.Duration
	replays prometheus.Counter
}

// NewIdempotencyMiddleware creates a new IdempotencyMiddleware.
func NewIdempotencyMiddleware(store usecase.IdempotencyStore, ttl time.Duration) *IdempotencyMiddleware {
	if ttl <= 0 {
		ttl = usecase.IdempotencyKeyTTL
	}
	return &IdempotencyMiddleware{store: store, ttl: ttl}
}

// WithReplayCounter counts replayed responses.
func (m *IdempotencyMiddleware) WithReplayCounter(c prometheus.Counter) *IdempotencyMiddleware {
	m.replays = c
	return m
}

// Wrap wraps an http.Handler with idempotency checking.
func (m *IdempotencyMiddleware) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost {
			next.ServeHTTP(w, r)
			return
		}

		header := r.Header.Get(IdempotencyKeyHeader)
		if header == "" {
			next.ServeHTTP(w, r)
			return
		}

		ctx := r.Context()
		logger := zerolog.Ctx(ctx)
		key := r.URL.Path + ":" + header

		exists, cached, err := m.store.CheckAndSet(ctx, key, nil, m.ttl)
		if err != nil {
			logger.Error().Err(err).Str("idempotency_key", header).Msg("idempotency check failed")
			writeJSONError(w, http.StatusInternalServerError, "idempotency check failed")
			return
		}

		if exists {
			m.replay(w, cached)
			return
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			body:           &bytes.Buffer{},
			statusCode:     http.StatusOK,
		}

		// A panicking handler must not leave the key stuck in the processing
		// state. Recovery is mounted outside this middleware and writes the 500.
		defer func() {
			if p := recover(); p != nil {
				m.release(ctx, key, header)
				panic(p)
			}
		}()

		next.ServeHTTP(recorder, r)

		// Only successful responses are kept; anything else may be retried.
		if recorder.statusCode < 200 || recorder.statusCode >= 300 {
			m.release(ctx, key, header)
			return
		}

		resp := cachedResponse{Status: recorder.statusCode}
		if recorder.body.Len() > 0 {
			resp.Body = recorder.body.Bytes()
		}

		payload, err := json.Marshal(resp)
		if err == nil {
			storeCtx, cancel := detachedContext(ctx)
			err = m.store.Update(storeCtx, key, payload, m.ttl)
			cancel()
		}
		if err != nil {
			logger.Warn().Err(err).Str("idempotency_key", header).Msg("failed to store idempotent response")
		}
	})
}

func (m *IdempotencyMiddleware) release(ctx context.Context, key, header string) {
	storeCtx, cancel := detachedContext(ctx)
	defer cancel()

	if err := m.store.Delete(storeCtx, key); err != nil {
		zerolog.Ctx(ctx).Warn().Err(err).Str("idempotency_key", header).Msg("failed to release idempotency key")
	}
}

// detachedContext keeps the request's values but survives a client
// disconnect, so the outcome of a finished handler is always recorded.
func detachedContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), storeTimeout)
}

func (m *IdempotencyMiddleware) replay(w http.ResponseWriter, cached []byte) {
	if len(cached) == 0 || string(cached) == processingMarker {
		writeJSONError(w, http.StatusConflict, "a request with this idempotency key is in progress")
		return
	}

	var resp cachedResponse
	if err := json.Unmarshal(cached, &resp); err != nil {
		writeJSONError(w, http.StatusConflict, "idempotency key was used for an unreadable response")
		return
	}

	if m.replays != nil {
		m.replays.Inc()
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set(IdempotencyReplayHeader, "true")
	w.WriteHeader(resp.Status)
	if len(resp.Body) > 0 {
		_, _ = w.Write(resp.Body)
	}
}

type responseRecorder struct {
	http.ResponseWriter
	statusCode int
	body       *bytes.Buffer
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	r.body.Write(b)
	return r.ResponseWriter.Write(b)
}

func (r *responseRecorder) WriteHeader(statusCode int) {
	r.statusCode = statusCode
	r.ResponseWriter.WriteHeader(statusCode)
}
