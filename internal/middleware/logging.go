package middleware

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5/middleware"
)

// logCtxKey はコンテキストにロガーを格納するためのキーです。
type logCtxKey struct{}

// sensitiveHeaders はログ出力時に値をマスキングするヘッダー名のリストです (小文字で定義)。
var sensitiveHeaders = map[string]bool{
	"authorization": true,
	"cookie":        true,
	"set-cookie":    true,
	"x-api-key":     true,
}

// maxLoggedBodyBytes は Debug ログに出すリクエスト/レスポンスボディの上限
const maxLoggedBodyBytes = 4 << 10

// LoggingMiddleware はリクエストごとのロガー (req_id 付き) をコンテキストに入れ、
// 開始と完了をログに出します。Debug レベルではヘッダーとボディも出力します。
func LoggingMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			startTime := time.Now()

			requestLogger := logger.With("req_id", middleware.GetReqID(r.Context()))
			r = r.WithContext(WithLogger(r.Context(), requestLogger))

			requestLogger.Info("Request started",
				"method", r.Method,
				"path", r.URL.Path,
				"remote_addr", r.RemoteAddr,
			)

			debug := logger.Enabled(r.Context(), slog.LevelDebug)
			var reqBody []byte
			var reqTruncated bool
			if debug && r.Body != nil {
				// 先頭だけ読み、読んだ分を戻して残りはそのまま後段に流す
				head, _ := io.ReadAll(io.LimitReader(r.Body, maxLoggedBodyBytes+1))
				r.Body = struct {
					io.Reader
					io.Closer
				}{io.MultiReader(bytes.NewReader(head), r.Body), r.Body}
				reqBody = head[:min(len(head), maxLoggedBodyBytes)]
				reqTruncated = len(head) > maxLoggedBodyBytes
			}

			ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
			respBody := &cappedBuffer{limit: maxLoggedBodyBytes}
			if debug {
				ww.Tee(respBody)
			}

			next.ServeHTTP(ww, r)

			status := ww.Status()
			if status == 0 {
				status = http.StatusOK
			}
			level := slog.LevelInfo
			switch {
			case status >= 500:
				level = slog.LevelError
			case status >= 400:
				level = slog.LevelWarn
			}

			requestLogger.Log(r.Context(), level, "Request completed",
				"status", status,
				"latency_ms", float64(time.Since(startTime).Nanoseconds())/1e6,
				"bytes_out", ww.BytesWritten(),
			)

			if debug {
				requestLogger.Debug("Request detail",
					"headers", formatHeaders(r.Header),
					"body", string(reqBody),
					"body_truncated", reqTruncated,
				)
				requestLogger.Debug("Response detail",
					"status", status,
					"headers", formatHeaders(ww.Header()),
					"body", respBody.String(),
					"body_truncated", respBody.truncated,
				)
			}
		})
	}
}

// cappedBuffer は limit バイトまでだけ保持する io.Writer。超えた分は捨てるが書き込みは成功扱い。
type cappedBuffer struct {
	buf       bytes.Buffer
	limit     int
	truncated bool
}

func (b *cappedBuffer) Write(p []byte) (int, error) {
	if room := b.limit - b.buf.Len(); room < len(p) {
		b.truncated = true
		b.buf.Write(p[:max(room, 0)])
		return len(p), nil
	}
	return b.buf.Write(p)
}

func (b *cappedBuffer) String() string {
	return b.buf.String()
}

// WithLogger は logger を格納したコンテキストを返します (ジョブやテストから使う)。
func WithLogger(ctx context.Context, logger *slog.Logger) context.Context {
	return context.WithValue(ctx, logCtxKey{}, logger)
}

// GetLogger はコンテキストから slog.Logger を取得します。なければ slog.Default()。
func GetLogger(ctx context.Context) *slog.Logger {
	if ctx == nil {
		return slog.Default()
	}
	if logger, ok := ctx.Value(logCtxKey{}).(*slog.Logger); ok {
		return logger
	}
	return slog.Default()
}

// formatHeaders はヘッダー情報をログ出力用に整形・マスキングします。
func formatHeaders(headers http.Header) map[string]string {
	result := make(map[string]string, len(headers))
	for key, values := range headers {
		if sensitiveHeaders[strings.ToLower(key)] {
			result[key] = "[SENSITIVE]"
		} else {
			result[key] = strings.Join(values, ", ")
		}
	}
	return result
}
