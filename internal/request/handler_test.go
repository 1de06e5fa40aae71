package request_test

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	"github.com/frahmantamala/skill-exchange/internal/request"
	requestPostgres "github.com/frahmantamala/skill-exchange/internal/request/postgres"
	skillPostgres "github.com/frahmantamala/skill-exchange/internal/skill/postgres"
	"github.com/frahmantamala/skill-exchange/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Request Handler Integration", func() {
	var (
		w      *world
		router *chi.Mux
	)

	do := func(method, path string, userID int64, body interface{}) *httptest.ResponseRecorder {
		var payload bytes.Buffer
		if body != nil {
			Expect(json.NewEncoder(&payload).Encode(body)).To(Succeed())
		}
		req := httptest.NewRequest(method, path, &payload)
		req.Header.Set("Content-Type", "application/json")
		if userID > 0 {
			req = req.WithContext(internal.ContextWithUserID(req.Context(), userID))
		}
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	decode := func(rec *httptest.ResponseRecorder) request.Request {
		var out request.Request
		Expect(json.Unmarshal(rec.Body.Bytes(), &out)).To(Succeed())
		return out
	}

	errorCode := func(rec *httptest.ResponseRecorder) string {
		var body struct {
			Error struct {
				Code    string `json:"code"`
				Details struct {
					Errors []struct {
						Code string `json:"code"`
					} `json:"errors"`
				} `json:"details"`
			} `json:"error"`
		}
		Expect(json.Unmarshal(rec.Body.Bytes(), &body)).To(Succeed())
		if len(body.Error.Details.Errors) > 0 {
			return body.Error.Details.Errors[0].Code
		}
		return body.Error.Code
	}

	BeforeEach(func() {
		w = newWorld()
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		svc := request.NewService(
			requestPostgres.NewRequestRepository(w.db),
			skillPostgres.NewSkillRepository(w.db),
			nil,
			slogger,
			request.Config{QueryTimeout: time.Second},
		)
		handler := request.NewHandler(transport.NewBaseHandler(slogger), svc)

		router = chi.NewRouter()
		router.Post("/requests", handler.CreateRequest)
		router.Get("/requests", handler.GetRequests)
		router.Get("/requests/{id}", handler.GetRequest)
		router.Patch("/requests/{id}/accept", handler.AcceptRequest)
		router.Patch("/requests/{id}/decline", handler.DeclineRequest)
	})

	It("should walk a request from creation to acceptance", func() {
		rec := do(http.MethodPost, "/requests", w.bob.ID, map[string]int64{"skill_id": w.guitar.ID})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		created := decode(rec)
		Expect(created.Status).To(Equal(request.StatusPending))
		Expect(created.ToID).To(Equal(w.alice.ID))

		path := "/requests/" + strconv.FormatInt(created.ID, 10)

		rec = do(http.MethodGet, "/requests?type=incoming", w.alice.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		var listed request.RequestsResponse
		Expect(json.Unmarshal(rec.Body.Bytes(), &listed)).To(Succeed())
		Expect(listed.Requests).To(HaveLen(1))
		Expect(listed.Requests[0].ID).To(Equal(created.ID))
		Expect(listed.Limit).To(Equal(transport.DefaultPageLimit))

		rec = do(http.MethodPatch, path+"/accept", w.bob.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusForbidden))
		Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeNotRequestTarget)))

		rec = do(http.MethodPatch, path+"/accept", w.alice.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decode(rec).Status).To(Equal(request.StatusAccepted))
		Expect(w.permissionCount(w.bob.ID, w.guitar.ID)).To(Equal(int64(1)))

		rec = do(http.MethodGet, path, w.bob.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decode(rec).Status).To(Equal(request.StatusAccepted))
	})

	It("should decline a request", func() {
		rec := do(http.MethodPost, "/requests", w.carol.ID, map[string]int64{"skill_id": w.guitar.ID})
		Expect(rec.Code).To(Equal(http.StatusCreated))
		created := decode(rec)

		rec = do(http.MethodPatch, "/requests/"+strconv.FormatInt(created.ID, 10)+"/decline", w.alice.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusOK))
		Expect(decode(rec).Status).To(Equal(request.StatusDeclined))
		Expect(w.permissionCount(w.carol.ID, w.guitar.ID)).To(BeZero())
	})

	It("should report a duplicate pending request as a conflict", func() {
		Expect(do(http.MethodPost, "/requests", w.bob.ID, map[string]int64{"skill_id": w.guitar.ID}).Code).To(Equal(http.StatusCreated))

		rec := do(http.MethodPost, "/requests", w.bob.ID, map[string]int64{"skill_id": w.guitar.ID})
		Expect(rec.Code).To(Equal(http.StatusConflict))
		Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeDuplicateRequest)))
	})

	It("should report a self request as an invalid operation", func() {
		rec := do(http.MethodPost, "/requests", w.alice.ID, map[string]int64{"skill_id": w.guitar.ID})
		Expect(rec.Code).To(Equal(http.StatusUnprocessableEntity))
		Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeSelfRequest)))
	})

	It("should reject malformed input", func() {
		rec := do(http.MethodPost, "/requests", w.bob.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))

		rec = do(http.MethodGet, "/requests?type=sideways", w.bob.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeInvalidDirection)))

		rec = do(http.MethodPatch, "/requests/abc/accept", w.alice.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusBadRequest))
		Expect(errorCode(rec)).To(Equal(string(internal.ErrCodeInvalidID)))
	})

	It("should return 404 for an unknown request", func() {
		rec := do(http.MethodGet, "/requests/9999", w.alice.ID, nil)
		Expect(rec.Code).To(Equal(http.StatusNotFound))
	})

	It("should require authentication", func() {
		rec := do(http.MethodGet, "/requests", 0, nil)
		Expect(rec.Code).To(Equal(http.StatusUnauthorized))
	})
})
