package skill_test

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/frahmantamala/skill-exchange/internal"
	skillDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/skill"
	"github.com/frahmantamala/skill-exchange/internal/skill"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type failingRepository struct{}

func (failingRepository) Create(context.Context, *skillDatamodel.Skill) error {
	return errors.New("disk full")
}

func (failingRepository) GetListing(context.Context, int64) (*skillDatamodel.Listing, error) {
	return nil, nil
}

func (failingRepository) ListListings(context.Context) ([]skillDatamodel.Listing, error) {
	return nil, errors.New("disk full")
}

type recordingMedia struct {
	saved   []string
	deleted []string
}

func (m *recordingMedia) Save(_ context.Context, filename string, r io.Reader) (string, error) {
	_, _ = io.Copy(io.Discard, r)
	ref := "ref-" + filename
	m.saved = append(m.saved, ref)
	return ref, nil
}

func (m *recordingMedia) Delete(_ context.Context, ref string) error {
	m.deleted = append(m.deleted, ref)
	return nil
}

var _ = Describe("Skill Service", func() {
	var (
		mediaStore *recordingMedia
		service    *skill.Service
	)

	BeforeEach(func() {
		slogger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		mediaStore = &recordingMedia{}
		service = skill.NewService(failingRepository{}, mediaStore, slogger, 0)
	})

	It("should remove the stored video when the row cannot be written", func() {
		_, err := service.Create(context.Background(), 1, skill.CreateSkillDTO{Title: "Knitting"}, "k.mp4", strings.NewReader("v"))

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.StatusCode).To(Equal(500))
		Expect(mediaStore.saved).To(Equal([]string{"ref-k.mp4"}))
		Expect(mediaStore.deleted).To(Equal([]string{"ref-k.mp4"}))
	})

	It("should not touch the media store when validation fails", func() {
		_, err := service.Create(context.Background(), 1, skill.CreateSkillDTO{Title: strings.Repeat("a", 201)}, "k.mp4", strings.NewReader("v"))

		Expect(internal.HasCode(err, internal.ErrCodeValidationFailed)).To(BeTrue())
		Expect(mediaStore.saved).To(BeEmpty())
	})

	It("should hide store failures behind an internal error", func() {
		_, err := service.List(context.Background())

		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue())
		Expect(appErr.Type).To(Equal(internal.ErrorTypeInternal))
	})
})
