package middleware_test

import (
	"bytes"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"

	"github.com/frahmantamala/skill-exchange/internal/transport/middleware"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("LoggingMiddleware", func() {
	var (
		buf     *bytes.Buffer
		slogger *slog.Logger
	)

	BeforeEach(func() {
		buf = &bytes.Buffer{}
		slogger = slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	})

	It("should mask sensitive JSON fields and keep the body readable downstream", func() {
		var seen string
		handler := middleware.LoggingMiddleware(slogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			b, _ := io.ReadAll(r.Body)
			seen = string(b)
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			_, _ = w.Write([]byte(`{"access_token":"abc","user_id":1}`))
		}))

		req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(`{"email":"a@b.co","password":"hunter22"}`))
		req.Header.Set("Content-Type", "application/json")
		req.Header.Set("Authorization", "Bearer xyz")
		handler.ServeHTTP(httptest.NewRecorder(), req)

		Expect(seen).To(Equal(`{"email":"a@b.co","password":"hunter22"}`))
		Expect(buf.String()).NotTo(ContainSubstring("hunter22"))
		Expect(buf.String()).NotTo(ContainSubstring("abc"))
		Expect(buf.String()).NotTo(ContainSubstring("Bearer xyz"))
		Expect(buf.String()).To(ContainSubstring("[FILTERED]"))
	})

	It("should not capture binary response bodies", func() {
		handler := middleware.LoggingMiddleware(slogger)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "video/mp4")
			_, _ = w.Write([]byte("raw-video-bytes"))
		}))

		w := httptest.NewRecorder()
		handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/skills/1/stream", nil))

		Expect(w.Body.String()).To(Equal("raw-video-bytes"))
		Expect(buf.String()).NotTo(ContainSubstring("raw-video-bytes"))
		Expect(buf.String()).To(ContainSubstring("response_size=15"))
	})
})
