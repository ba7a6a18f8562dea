package minio

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/GoArmGo/MovieLibrary/internal/logger"
	"github.com/aws/aws-sdk-go-v2/feature/s3/manager"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeUploader struct {
	input *s3.PutObjectInput
	body  string
	err   error
}

func (f *fakeUploader) Upload(ctx context.Context, input *s3.PutObjectInput, _ ...func(*manager.Uploader)) (*manager.UploadOutput, error) {
	f.input = input
	data, _ := io.ReadAll(input.Body)
	f.body = string(data)
	if f.err != nil {
		return nil, f.err
	}
	return &manager.UploadOutput{}, nil
}

type fakeDeleter struct {
	key string
}

func (f *fakeDeleter) DeleteObject(ctx context.Context, params *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	f.key = *params.Key
	return &s3.DeleteObjectOutput{}, nil
}

func TestUploadFileReturnsPublicURL(t *testing.T) {
	up := &fakeUploader{}
	c := &Client{uploader: up, bucketName: "posters", publicURL: "http://cdn.local", logger: logger.Discard()}

	url, err := c.UploadFile(context.Background(), "movies/7/poster.png", strings.NewReader("png-bytes"), "image/png")
	require.NoError(t, err)

	assert.Equal(t, "http://cdn.local/posters/movies/7/poster.png", url)
	assert.Equal(t, "posters", *up.input.Bucket)
	assert.Equal(t, "image/png", *up.input.ContentType)
	assert.Equal(t, "png-bytes", up.body)
}

func TestUploadFileWrapsError(t *testing.T) {
	failure := errors.New("no such bucket")
	c := &Client{uploader: &fakeUploader{err: failure}, bucketName: "posters", logger: logger.Discard()}

	_, err := c.UploadFile(context.Background(), "k", strings.NewReader("x"), "image/jpeg")
	assert.ErrorIs(t, err, failure)
}

func TestDeleteFile(t *testing.T) {
	del := &fakeDeleter{}
	c := &Client{s3Client: del, bucketName: "posters", logger: logger.Discard()}

	require.NoError(t, c.DeleteFile(context.Background(), "movies/7/poster.png"))
	assert.Equal(t, "movies/7/poster.png", del.key)
}

func TestEndpointURL(t *testing.T) {
	assert.Equal(t, "http://minio:9000", endpointURL("minio:9000", false))
	assert.Equal(t, "https://minio:9000", endpointURL("minio:9000", true))
	assert.Equal(t, "https://s3.example", endpointURL("https://s3.example", false))
}
