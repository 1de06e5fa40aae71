package request_test

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/frahmantamala/skill-exchange/internal"
	requestDatamodel "github.com/frahmantamala/skill-exchange/internal/core/datamodel/request"
	"github.com/frahmantamala/skill-exchange/internal/core/events"
	"github.com/frahmantamala/skill-exchange/internal/request"
	requestPostgres "github.com/frahmantamala/skill-exchange/internal/request/postgres"
	skillPostgres "github.com/frahmantamala/skill-exchange/internal/skill/postgres"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Request Service", func() {
	var (
		ctx       context.Context
		w         *world
		publisher *recordingPublisher
		service   *request.Service
		slogger   *slog.Logger
	)

	newService := func(strict bool) *request.Service {
		return request.NewService(
			requestPostgres.NewRequestRepository(w.db),
			skillPostgres.NewSkillRepository(w.db),
			publisher,
			slogger,
			request.Config{StrictTransitions: strict, QueryTimeout: time.Second},
		)
	}

	expectKind := func(err error, status int, code internal.ErrorCode) {
		appErr, ok := internal.IsAppError(err)
		Expect(ok).To(BeTrue(), "expected an AppError, got %v", err)
		Expect(appErr.StatusCode).To(Equal(status))
		Expect(appErr.Code).To(Equal(code))
	}

	BeforeEach(func() {
		ctx = context.Background()
		slogger = slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		w = newWorld()
		publisher = &recordingPublisher{}
		service = newService(false)
	})

	Describe("Create", func() {
		It("should file a pending request addressed to the skill owner", func() {
			req, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})

			Expect(err).NotTo(HaveOccurred())
			Expect(req.Status).To(Equal(request.StatusPending))
			Expect(req.FromID).To(Equal(w.bob.ID))
			Expect(req.ToID).To(Equal(w.alice.ID))
			Expect(req.SkillID).To(Equal(w.guitar.ID))
			Expect(publisher.types()).To(Equal([]string{events.EventTypeRequestCreated}))
		})

		It("should refuse a request for the caller's own skill", func() {
			_, err := service.Create(ctx, w.alice.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			expectKind(err, 422, internal.ErrCodeSelfRequest)
		})

		It("should return NotFound for an unknown skill", func() {
			_, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: 9999})
			expectKind(err, 404, internal.ErrCodeSkillNotFound)
		})

		It("should require a skill id", func() {
			_, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{})
			expectKind(err, 400, internal.ErrCodeValidationFailed)
		})

		It("should reject a second pending request for the same skill", func() {
			_, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			expectKind(err, 409, internal.ErrCodeDuplicateRequest)
		})

		It("should let another user request the same skill", func() {
			_, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Create(ctx, w.carol.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should allow a new request once the previous one is resolved", func() {
			first, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Decline(ctx, first.ID, w.alice.ID)
			Expect(err).NotTo(HaveOccurred())

			second, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())
			Expect(second.ID).NotTo(Equal(first.ID))
		})

		It("should back the pending rule with a unique index", func() {
			repo := requestPostgres.NewRequestRepository(w.db)
			row := func() *requestDatamodel.Request {
				return &requestDatamodel.Request{FromID: w.bob.ID, ToID: w.alice.ID, SkillID: w.guitar.ID, Status: request.StatusPending}
			}

			Expect(repo.Create(ctx, row())).To(Succeed())
			Expect(repo.Create(ctx, row())).To(MatchError(internal.ErrDuplicatePendingRequest))
		})
	})

	Describe("Accept", func() {
		var pending *request.Request

		BeforeEach(func() {
			var err error
			pending, err = service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())
		})

		It("should mark the request accepted and grant permission", func() {
			accepted, err := service.Accept(ctx, pending.ID, w.alice.ID)

			Expect(err).NotTo(HaveOccurred())
			Expect(accepted.Status).To(Equal(request.StatusAccepted))
			Expect(w.permissionCount(w.bob.ID, w.guitar.ID)).To(Equal(int64(1)))
			Expect(publisher.types()).To(Equal([]string{events.EventTypeRequestCreated, events.EventTypeRequestAccepted}))
		})

		It("should leave exactly one permission however often it is accepted", func() {
			for i := 0; i < 3; i++ {
				_, err := service.Accept(ctx, pending.ID, w.alice.ID)
				Expect(err).NotTo(HaveOccurred())
			}
			Expect(w.permissionCount(w.bob.ID, w.guitar.ID)).To(Equal(int64(1)))
		})

		It("should only let the skill owner accept", func() {
			_, err := service.Accept(ctx, pending.ID, w.bob.ID)
			expectKind(err, 403, internal.ErrCodeNotRequestTarget)

			_, err = service.Accept(ctx, pending.ID, w.carol.ID)
			expectKind(err, 403, internal.ErrCodeNotRequestTarget)

			Expect(w.permissionCount(w.bob.ID, w.guitar.ID)).To(BeZero())
		})

		It("should return NotFound for an unknown request", func() {
			_, err := service.Accept(ctx, 9999, w.alice.ID)
			expectKind(err, 404, internal.ErrCodeRequestNotFound)
		})

		It("should allow accepting a declined request by default", func() {
			_, err := service.Decline(ctx, pending.ID, w.alice.ID)
			Expect(err).NotTo(HaveOccurred())

			accepted, err := service.Accept(ctx, pending.ID, w.alice.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(accepted.Status).To(Equal(request.StatusAccepted))
			Expect(w.permissionCount(w.bob.ID, w.guitar.ID)).To(Equal(int64(1)))
		})

		Context("with strict transitions", func() {
			BeforeEach(func() {
				service = newService(true)
			})

			It("should refuse to resolve a request twice", func() {
				_, err := service.Accept(ctx, pending.ID, w.alice.ID)
				Expect(err).NotTo(HaveOccurred())

				_, err = service.Accept(ctx, pending.ID, w.alice.ID)
				expectKind(err, 422, internal.ErrCodeRequestResolved)

				_, err = service.Decline(ctx, pending.ID, w.alice.ID)
				expectKind(err, 422, internal.ErrCodeRequestResolved)
			})
		})
	})

	Describe("Decline", func() {
		It("should mark the request declined without granting anything", func() {
			pending, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())

			declined, err := service.Decline(ctx, pending.ID, w.alice.ID)
			Expect(err).NotTo(HaveOccurred())
			Expect(declined.Status).To(Equal(request.StatusDeclined))
			Expect(w.permissionCount(w.bob.ID, w.guitar.ID)).To(BeZero())
		})

		It("should only let the skill owner decline", func() {
			pending, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())

			_, err = service.Decline(ctx, pending.ID, w.carol.ID)
			expectKind(err, 403, internal.ErrCodeNotRequestTarget)
		})
	})

	Describe("Get", func() {
		It("should show a request to both parties only", func() {
			pending, err := service.Create(ctx, w.bob.ID, request.CreateRequestDTO{SkillID: w.guitar.ID})
			Expect(err).NotTo(HaveOccurred())

			for _, id := range []int64{w.alice.ID, w.bob.ID} {
				got, err := service.Get(ctx, pending.ID, id)
				Expect(err).NotTo(HaveOccurred())
				Expect(got.ID).To(Equal(pending.ID))
			}

			_, err = service.Get(ctx, pending.ID, w.carol.ID)
			expectKind(err, 403, internal.ErrCodeNotRequestParty)
		})
	})

	Describe("List", func() {
		BeforeEach(func() {
			base := time.Now().Add(-time.Hour)
			rows := []*requestDatamodel.Request{
				{FromID: w.bob.ID, ToID: w.alice.ID, SkillID: w.guitar.ID, Status: request.StatusDeclined, CreatedAt: base},
				{FromID: w.carol.ID, ToID: w.alice.ID, SkillID: w.guitar.ID, Status: request.StatusPending, CreatedAt: base.Add(time.Minute)},
				{FromID: w.alice.ID, ToID: w.bob.ID, SkillID: 77, Status: request.StatusPending, CreatedAt: base.Add(2 * time.Minute)},
				{FromID: w.carol.ID, ToID: w.bob.ID, SkillID: 78, Status: request.StatusPending, CreatedAt: base.Add(3 * time.Minute)},
			}
			for _, row := range rows {
				Expect(w.db.Create(row).Error).To(Succeed())
			}
		})

		list := func(userID int64, direction request.Direction) []int64 {
			reqs, err := service.List(ctx, request.ListFilter{UserID: userID, Direction: direction, Limit: 20})
			Expect(err).NotTo(HaveOccurred())
			ids := make([]int64, len(reqs))
			for i, r := range reqs {
				ids[i] = r.FromID
			}
			return ids
		}

		It("should list incoming requests newest first", func() {
			Expect(list(w.alice.ID, request.DirectionIncoming)).To(Equal([]int64{w.carol.ID, w.bob.ID}))
		})

		It("should list outgoing requests", func() {
			Expect(list(w.alice.ID, request.DirectionOutgoing)).To(Equal([]int64{w.alice.ID}))
		})

		It("should list both directions by default", func() {
			Expect(list(w.alice.ID, request.DirectionAll)).To(Equal([]int64{w.alice.ID, w.carol.ID, w.bob.ID}))
		})

		It("should page through results", func() {
			reqs, err := service.List(ctx, request.ListFilter{UserID: w.alice.ID, Direction: request.DirectionAll, Limit: 1, Offset: 1})
			Expect(err).NotTo(HaveOccurred())
			Expect(reqs).To(HaveLen(1))
			Expect(reqs[0].FromID).To(Equal(w.carol.ID))
		})
	})
})

var _ = Describe("ParseDirection", func() {
	DescribeTable("accepted values",
		func(raw string, expected request.Direction) {
			d, err := request.ParseDirection(raw)
			Expect(err).NotTo(HaveOccurred())
			Expect(d).To(Equal(expected))
		},
		Entry("empty", "", request.DirectionAll),
		Entry("all", "all", request.DirectionAll),
		Entry("incoming", "incoming", request.DirectionIncoming),
		Entry("outgoing upper case", "OUTGOING", request.DirectionOutgoing),
	)

	It("should reject anything else", func() {
		_, err := request.ParseDirection("sideways")
		Expect(internal.HasCode(err, internal.ErrCodeValidationFailed)).To(BeTrue())
	})
})
