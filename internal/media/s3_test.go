package media_test

import (
	"context"
	"errors"
	"io"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/frahmantamala/skill-exchange/internal/media"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

type fakeS3 struct {
	objects map[string]string
	headErr error
}

func (f *fakeS3) Upload(_ context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	data, err := io.ReadAll(input.Body)
	if err != nil {
		return nil, err
	}
	f.objects[aws.ToString(input.Key)] = string(data)
	return &manager.UploadOutput{Key: input.Key}, nil
}

func (f *fakeS3) GetObject(_ context.Context, params *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	data, ok := f.objects[aws.ToString(params.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("missing")}
	}
	return &s3.GetObjectOutput{
		Body:          io.NopCloser(strings.NewReader(data)),
		ContentLength: aws.Int64(int64(len(data))),
		LastModified:  aws.Time(time.Unix(1700000000, 0)),
	}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	delete(f.objects, aws.ToString(params.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func (f *fakeS3) HeadBucket(context.Context, *s3.HeadBucketInput, ...func(*s3.Options)) (*s3.HeadBucketOutput, error) {
	return &s3.HeadBucketOutput{}, f.headErr
}

var _ = Describe("S3Store", func() {
	var (
		ctx   context.Context
		fake  *fakeS3
		store *media.S3Store
	)

	BeforeEach(func() {
		ctx = context.Background()
		fake = &fakeS3{objects: map[string]string{}}
		store = media.NewS3StoreWithClient(fake, fake, "videos")
	})

	It("should upload and stream back an object", func() {
		ref, err := store.Save(ctx, "intro.mp4", strings.NewReader("payload"))
		Expect(err).NotTo(HaveOccurred())
		Expect(fake.objects).To(HaveKeyWithValue(ref, "payload"))

		obj, err := store.Open(ctx, ref)
		Expect(err).NotTo(HaveOccurred())
		defer obj.Body.Close()

		Expect(obj.Size).To(Equal(int64(7)))
		Expect(obj.ContentType).To(Equal("video/mp4"))
		Expect(obj.ModTime.Unix()).To(Equal(int64(1700000000)))
	})

	It("should map NoSuchKey to ErrNotFound", func() {
		_, err := store.Open(ctx, "gone.mp4")
		Expect(err).To(MatchError(media.ErrNotFound))
	})

	It("should surface bucket failures from Ping", func() {
		fake.headErr = errors.New("access denied")
		Expect(store.Ping(ctx)).To(MatchError("access denied"))
	})
})
