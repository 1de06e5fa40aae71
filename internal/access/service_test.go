package access_test

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	"github.com/frahmantamala/skill-exchange/internal/access"
	accessPostgres "github.com/frahmantamala/skill-exchange/internal/access/postgres"
	permissionDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/permission"
	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	userDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/user"
	"github.com/frahmantamala/skill-exchange/internal/media"
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

type streamOnlyOpener struct {
	data string
}

func (o streamOnlyOpener) Open(context.Context, string) (*media.Object, error) {
	return &media.Object{
		Body:        io.NopCloser(strings.NewReader(o.data)),
		Size:        int64(len(o.data)),
		ContentType: "video/mp4",
		ModTime:     time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
	}, nil
}

var _ = Describe("Stream Gate", func() {
	var (
		ctx     context.Context
		db      *gorm.DB
		store   *media.LocalStore
		slogger *slog.Logger
		service *access.Service
		router  *chi.Mux
		alice   *userDatamodel.User
		bob     *userDatamodel.User
		guitar  *skillDatamodel.Skill
	)

	grant := func(userID, skillID int64) {
		Expect(db.Create(&permissionDatamodel.Permission{UserID: userID, SkillID: skillID}).Error).To(Succeed())
	}

	get := func(path string, userID int64) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, path, nil)
		req = req.WithContext(internal.ContextWithUserID(req.Context(), userID))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)
		return rec
	}

	mount := func(svc *access.Service) {
		handler := access.NewHandler(transport.NewBaseHandler(slogger), svc)
		router = chi.NewRouter()
		router.Get("/skills/authorized", handler.GetAuthorizedSkills)
		router.Get("/skills/{id}/stream", handler.StreamSkill)
	}

	BeforeEach(func() {
		var err error
		ctx = context.Background()
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))

		db, err = gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
			Logger: logger.Default.LogMode(logger.Silent),
		})
		Expect(err).NotTo(HaveOccurred())
		Expect(db.AutoMigrate(&userDatamodel.User{}, &skillDatamodel.Skill{}, &permissionDatamodel.Permission{})).To(Succeed())
		sqlDB, err := db.DB()
		Expect(err).NotTo(HaveOccurred())
		sqlDB.SetMaxOpenConns(1)

		alice = &userDatamodel.User{Name: "Alice", Email: "alice@example.com", PasswordHash: "x", Profession: "Guitarist"}
		bob = &userDatamodel.User{Name: "Bob", Email: "bob@example.com", PasswordHash: "x"}
		Expect(db.Create(alice).Error).To(Succeed())
		Expect(db.Create(bob).Error).To(Succeed())

		store = media.NewLocalStoreFs(afero.NewMemMapFs())
		ref, err := store.Save(ctx, "lesson.mp4", strings.NewReader("guitar-video"))
		Expect(err).NotTo(HaveOccurred())

		guitar = &skillDatamodel.Skill{Title: "Guitar Lessons for Beginners", Video: ref, UserID: alice.ID}
		Expect(db.Create(guitar).Error).To(Succeed())

		service = access.NewService(
			skillPostgres.NewSkillRepository(db),
			accessPostgres.NewAccessRepository(db),
			store,
			slogger,
			time.Second,
		)
		mount(service)
	})

	Describe("Authorize", func() {
		It("should always let the owner through", func() {
			sk, err := service.Authorize(ctx, alice.ID, guitar.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(sk.ID).To(Equal(guitar.ID))
		})

		It("should forbid a viewer without permission", func() {
			_, err := service.Authorize(ctx, bob.ID, guitar.ID)
			Expect(err).To(MatchError(internal.ErrMediaAccessDenied))
		})

		It("should let a viewer through once permission is granted", func() {
			grant(bob.ID, guitar.ID)

			_, err := service.Authorize(ctx, bob.ID, guitar.ID)
			Expect(err).NotTo(HaveOccurred())
		})

		It("should report a missing skill before checking permission", func() {
			_, err := service.Authorize(ctx, bob.ID, 9999)
			Expect(err).To(MatchError(internal.ErrSkillNotFound))
		})
	})

	Describe("Open", func() {
		It("should return the stored video", func() {
			obj, err := service.Open(ctx, alice.ID, guitar.ID)
			Expect(err).NotTo(HaveOccurred())
			defer obj.Body.Close()

			data, err := io.ReadAll(obj.Body)
			Expect(err).NotTo(HaveOccurred())
			Expect(string(data)).To(Equal("guitar-video"))
			Expect(obj.ContentType).To(Equal("video/mp4"))
		})

		It("should report a missing video as NotFound", func() {
			Expect(store.Delete(ctx, guitar.Video)).To(Succeed())

			_, err := service.Open(ctx, alice.ID, guitar.ID)
			Expect(err).To(MatchError(internal.ErrMediaNotFound))
		})

		It("should not open anything for a forbidden viewer", func() {
			_, err := service.Open(ctx, bob.ID, guitar.ID)
			Expect(err).To(MatchError(internal.ErrMediaAccessDenied))
		})
	})

	Describe("GET /skills/{id}/stream", func() {
		path := func(id int64) string {
			return "/skills/" + strconv.FormatInt(id, 10) + "/stream"
		}

		It("should stream the video to an authorized viewer", func() {
			grant(bob.ID, guitar.ID)

			rec := get(path(guitar.ID), bob.ID)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Header().Get("Content-Type")).To(Equal("video/mp4"))
			Expect(rec.Body.String()).To(Equal("guitar-video"))
		})

		It("should return 403 without permission", func() {
			rec := get(path(guitar.ID), bob.ID)
			Expect(rec.Code).To(Equal(http.StatusForbidden))
			Expect(rec.Body.String()).To(ContainSubstring(string(internal.ErrCodeMediaAccessDenied)))
		})

		It("should return 404 for an unknown skill", func() {
			rec := get(path(9999), bob.ID)
			Expect(rec.Code).To(Equal(http.StatusNotFound))
		})

		It("should copy bodies that cannot seek", func() {
			mount(access.NewService(
				skillPostgres.NewSkillRepository(db),
				accessPostgres.NewAccessRepository(db),
				streamOnlyOpener{data: "remote-video"},
				slogger,
				time.Second,
			))

			rec := get(path(guitar.ID), alice.ID)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(Equal("remote-video"))
			Expect(rec.Header().Get("Content-Length")).To(Equal("12"))
			Expect(rec.Header().Get("Last-Modified")).To(Equal("Tue, 02 Jan 2024 03:04:05 GMT"))
		})
	})

	Describe("GET /skills/authorized", func() {
		It("should list only skills the viewer was granted", func() {
			other := &skillDatamodel.Skill{Title: "Juggling", Video: "x.mp4", UserID: alice.ID}
			Expect(db.Create(other).Error).To(Succeed())
			grant(bob.ID, guitar.ID)

			rec := get("/skills/authorized", bob.ID)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(ContainSubstring("Guitar Lessons for Beginners"))
			Expect(rec.Body.String()).To(ContainSubstring(`"name":"Alice"`))
			Expect(rec.Body.String()).NotTo(ContainSubstring("Juggling"))
		})

		It("should return an empty list when nothing was granted", func() {
			rec := get("/skills/authorized", bob.ID)
			Expect(rec.Code).To(Equal(http.StatusOK))
			Expect(rec.Body.String()).To(MatchJSON(`{"skills":[]}`))
		})
	})
})
