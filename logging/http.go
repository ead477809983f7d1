package logging

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

const maxRecordedBody = 10 * 1024

type requestIDKey struct{}

// RequestIDFromContext returns the ID assigned by HTTPLogger, if any.
func RequestIDFromContext(ctx context.Context) string {
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// HTTPLogger logs HTTP requests and responses.
type HTTPLogger struct {
	logger       *Logger
	maxBodySize  int
	maskedFields []string
}

// NewHTTPLogger creates a new HTTP logger. Values of maskedFields are
// replaced in logged form and JSON request bodies.
func NewHTTPLogger(logger *Logger, maxBodySize int, maskedFields ...string) *HTTPLogger {
	if maxBodySize == 0 {
		maxBodySize = 10 * 1024 // 10KB default
	}
	return &HTTPLogger{
		logger:       logger,
		maxBodySize:  maxBodySize,
		maskedFields: maskedFields,
	}
}

// responseRecorder captures the response for logging.
type responseRecorder struct {
	http.ResponseWriter
	status      int
	size        int
	body        *bytes.Buffer
	wroteHeader bool
}

func (r *responseRecorder) WriteHeader(status int) {
	if !r.wroteHeader {
		r.status = status
		r.wroteHeader = true
		r.ResponseWriter.WriteHeader(status)
	}
}

func (r *responseRecorder) Write(b []byte) (int, error) {
	if !r.wroteHeader {
		r.WriteHeader(http.StatusOK)
	}
	n, err := r.ResponseWriter.Write(b)
	r.size += n
	if r.body != nil && r.body.Len() < maxRecordedBody {
		r.body.Write(b[:min(len(b), maxRecordedBody-r.body.Len())])
	}
	return n, err
}

func (r *responseRecorder) Hijack() (net.Conn, *bufio.ReadWriter, error) {
	if hijacker, ok := r.ResponseWriter.(http.Hijacker); ok {
		return hijacker.Hijack()
	}
	return nil, nil, fmt.Errorf("responseRecorder does not support hijacking")
}

func (r *responseRecorder) Flush() {
	if flusher, ok := r.ResponseWriter.(http.Flusher); ok {
		flusher.Flush()
	}
}

// Middleware returns an HTTP middleware that logs requests and responses.
func (h *HTTPLogger) Middleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		requestID := uuid.New().String()
		r = r.WithContext(context.WithValue(r.Context(), requestIDKey{}, requestID))

		// Buffer small request bodies so they can be logged and still read by handlers.
		var requestBody string
		if r.Body != nil && r.ContentLength > 0 && r.ContentLength < int64(h.maxBodySize) {
			bodyBytes, err := io.ReadAll(io.LimitReader(r.Body, int64(h.maxBodySize)))
			if err == nil {
				requestBody = h.maskBody(bodyBytes, r.Header.Get("Content-Type"))
				r.Body = io.NopCloser(bytes.NewBuffer(bodyBytes))
			}
		}

		recorder := &responseRecorder{
			ResponseWriter: w,
			status:         http.StatusOK,
			body:           &bytes.Buffer{},
		}
		recorder.Header().Set("X-Request-ID", requestID)

		next.ServeHTTP(recorder, r)

		duration := time.Since(start).Milliseconds()

		fields := map[string]any{
			"method":         r.Method,
			"path":           r.URL.Path,
			"query":          r.URL.RawQuery,
			"status":         recorder.status,
			"size":           recorder.size,
			"remote_addr":    r.RemoteAddr,
			"user_agent":     r.UserAgent(),
			"referer":        r.Referer(),
			"content_type":   r.Header.Get("Content-Type"),
			"content_length": r.ContentLength,
		}

		if requestBody != "" {
			fields["request_body"] = truncate(requestBody, 1000)
		}

		contentType := recorder.Header().Get("Content-Type")
		if recorder.body.Len() > 0 && strings.HasPrefix(contentType, "application/json") {
			fields["response_body"] = truncate(h.maskBody(recorder.body.Bytes(), contentType), 1000)
		}

		headers := make(map[string]string)
		for name, values := range r.Header {
			if !isSensitiveHeader(name) {
				headers[name] = strings.Join(values, ", ")
			}
		}
		if len(headers) > 0 {
			fields["request_headers"] = headers
		}

		level := INFO
		if recorder.status >= 400 {
			level = WARN
		}
		if recorder.status >= 500 {
			level = ERROR
		}
		if !h.logger.Enabled(level) {
			return
		}

		h.logger.write(Entry{
			Timestamp: time.Now().UTC(),
			Level:     level.String(),
			Category:  "http",
			Message:   fmt.Sprintf("%s %s %d", r.Method, r.URL.Path, recorder.status),
			Fields:    fields,
			RequestID: requestID,
			Duration:  &duration,
		})
	})
}

// maskBody replaces the configured fields in url-encoded and JSON bodies.
// Other content types are logged as-is.
func (h *HTTPLogger) maskBody(body []byte, contentType string) string {
	if len(h.maskedFields) == 0 {
		return string(body)
	}
	switch {
	case strings.HasPrefix(contentType, "application/x-www-form-urlencoded"):
		values, err := url.ParseQuery(string(body))
		if err != nil {
			return "[unparseable form body]"
		}
		for _, field := range h.maskedFields {
			if _, ok := values[field]; ok {
				values.Set(field, "***")
			}
		}
		return values.Encode()
	case strings.HasPrefix(contentType, "application/json"):
		var decoded any
		if err := json.Unmarshal(body, &decoded); err != nil {
			return "[unparseable json body]"
		}
		encoded, err := json.Marshal(h.maskJSON(decoded))
		if err != nil {
			return ""
		}
		return string(encoded)
	default:
		return string(body)
	}
}

// maskJSON masks matching keys at any depth.
func (h *HTTPLogger) maskJSON(v any) any {
	switch node := v.(type) {
	case map[string]any:
		for key, value := range node {
			if h.masked(key) {
				node[key] = "***"
				continue
			}
			node[key] = h.maskJSON(value)
		}
		return node
	case []any:
		for i, value := range node {
			node[i] = h.maskJSON(value)
		}
		return node
	default:
		return v
	}
}

func (h *HTTPLogger) masked(field string) bool {
	for _, f := range h.maskedFields {
		if f == field {
			return true
		}
	}
	return false
}

func isSensitiveHeader(name string) bool {
	lower := strings.ToLower(name)
	return strings.Contains(lower, "auth") ||
		strings.Contains(lower, "token") ||
		strings.Contains(lower, "cookie") ||
		strings.Contains(lower, "key") ||
		strings.Contains(lower, "secret")
}

func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "... [truncated]"
}
