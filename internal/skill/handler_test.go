package skill_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	userDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/user"
	"github.com/frahmantamala/skill-exchange/internal/media"
	"github.com/frahmantamala/skill-exchange/internal/skill"
	skillPostgres "github.com/frahmantamala/skill-exchange/internal/skill/postgres"
	"github.com/frahmantamala/skill-exchange/internal/transport"
	"github.com/go-chi/chi"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func multipartBody(fields map[string]string, filename string, video []byte) (*bytes.Buffer, string) {
	body := &bytes.Buffer{}
	mw := multipart.NewWriter(body)
	for k, v := range fields {
		Expect(mw.WriteField(k, v)).To(Succeed())
	}
	if filename != "" {
		part, err := mw.CreateFormFile("video", filename)
		Expect(err).NotTo(HaveOccurred())
		_, err = part.Write(video)
		Expect(err).NotTo(HaveOccurred())
	}
	Expect(mw.Close()).To(Succeed())
	return body, mw.FormDataContentType()
}

var _ = Describe("Skill Handler Integration", func() {
	var (
		db      *gorm.DB
		fs      afero.Fs
		store   *media.LocalStore
		router  *chi.Mux
		alice   *userDatamodel.User
		bob     *userDatamodel.User
		maxSize int64
	)

	upload := func(userID int64, fields map[string]string, filename string, video []byte) *httptest.ResponseRecorder {
		body, contentType := multipartBody(fields, filename, video)
		req := httptest.NewRequest(http.MethodPost, "/skills", body)
		req.Header.Set("Content-Type", contentType)
		req = req.WithContext(internal.ContextWithUserID(req.Context(), userID))
		w := httptest.NewRecorder()
		router.ServeHTTP(w, req)
		return w
	}

	BeforeEach(func() {
		var err error
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &skillDatamodel.Skill{})).To(Succeed())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		alice = &userDatamodel.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Profession: "Guitarist"}
		bob = &userDatamodel.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"}
		Expect(db.Create(alice).Error).To(Succeed())
		Expect(db.Create(bob).Error).To(Succeed())

		fs = afero.NewMemMapFs()
		store = media.NewLocalStoreFs(fs)
		maxSize = 1024

		service := skill.NewService(skillPostgres.NewSkillRepository(db), store, slogger, time.Second)
		handler := skill.NewHandler(&transport.BaseHandler{Logger: slogger}, service, maxSize)

		router = chi.NewRouter()
		router.Post("/skills", handler.CreateSkill)
		router.Get("/skills", handler.GetSkills)
		router.Get("/skills/{id}", handler.GetSkill)
	})

	Describe("POST /skills", func() {
		It("should store the video and return the listing", func() {
			w := upload(alice.ID, map[string]string{"title": "Guitar Lessons for Beginners", "description": "Chords"}, "lesson.mp4", []byte("video"))

			Expect(w.Code).To(Equal(http.StatusCreated))

			var listing skill.Listing
			Expect(json.NewDecoder(w.Body).Decode(&listing)).To(Succeed())
			Expect(listing.Title).To(Equal("Guitar Lessons for Beginners"))
			Expect(listing.UserID).To(Equal(alice.ID))
			Expect(listing.Owner.Name).To(Equal("Alice"))
			Expect(listing.StreamURL).To(Equal(skill.StreamPath(listing.ID)))

			var row skillDatamodel.Skill
			Expect(db.First(&row, listing.ID).Error).To(Succeed())
			obj, err := store.Open(context.Background(), row.Video)
			Expect(err).NotTo(HaveOccurred())
			defer obj.Body.Close()
			data, _ := io.ReadAll(obj.Body)
			Expect(string(data)).To(Equal("video"))
		})

		It("should not expose the media reference", func() {
			w := upload(alice.ID, map[string]string{"title": "Juggling"}, "j.mp4", []byte("v"))
			Expect(w.Code).To(Equal(http.StatusCreated))
			Expect(w.Body.String()).NotTo(ContainSubstring(".mp4"))
		})

		It("should require a video", func() {
			w := upload(alice.ID, map[string]string{"title": "Juggling"}, "", nil)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeMissingVideo)))
		})

		It("should require a title", func() {
			w := upload(alice.ID, map[string]string{"title": "   "}, "a.mp4", []byte("v"))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring(`"field":"title"`))

			var count int64
			db.Model(&skillDatamodel.Skill{}).Count(&count)
			Expect(count).To(BeZero())
		})

		It("should reject uploads over the size limit", func() {
			w := upload(alice.ID, map[string]string{"title": "Big"}, "big.mp4", bytes.Repeat([]byte("x"), int(maxSize)*2))

			Expect(w.Code).To(Equal(http.StatusBadRequest))
			Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeUploadTooLarge)))
		})

		It("should reject a non-multipart body", func() {
			req := httptest.NewRequest(http.MethodPost, "/skills", strings.NewReader(`{"title":"x"}`))
			req.Header.Set("Content-Type", "application/json")
			req = req.WithContext(internal.ContextWithUserID(req.Context(), alice.ID))
			w := httptest.NewRecorder()
			router.ServeHTTP(w, req)

			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})

	Describe("GET /skills", func() {
		It("should list every skill newest first with its owner", func() {
			base := time.Now().Add(-time.Hour)
			rows := []*skillDatamodel.Skill{
				{Title: "Old", Video: "a.mp4", UserID: alice.ID, CreatedAt: base},
				{Title: "New", Video: "b.mp4", UserID: bob.ID, CreatedAt: base.Add(time.Minute)},
			}
			for _, row := range rows {
				Expect(db.Create(row).Error).To(Succeed())
			}

			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/skills", nil))
			Expect(w.Code).To(Equal(http.StatusOK))

			var response skill.SkillsResponse
			Expect(json.NewDecoder(w.Body).Decode(&response)).To(Succeed())
			Expect(response.Skills).To(HaveLen(2))
			Expect(response.Skills[0].Title).To(Equal("New"))
			Expect(response.Skills[0].Owner.Name).To(Equal("Bob"))
			Expect(response.Skills[1].Owner.Profession).To(Equal("Guitarist"))
		})

		It("should return an empty array, not null", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/skills", nil))
			Expect(w.Body.String()).To(ContainSubstring(`"skills":[]`))
		})
	})

	Describe("GET /skills/{id}", func() {
		It("should return 404 for an unknown skill", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/skills/99", nil))
			Expect(w.Code).To(Equal(http.StatusNotFound))
			Expect(w.Body.String()).To(ContainSubstring(string(internal.ErrCodeSkillNotFound)))
		})

		It("should return 400 for a malformed id", func() {
			w := httptest.NewRecorder()
			router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/skills/abc", nil))
			Expect(w.Code).To(Equal(http.StatusBadRequest))
		})
	})
})
