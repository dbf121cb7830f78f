package storage

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeS3 struct {
	objects      map[string][]byte
	contentTypes map[string]string
	err          error
}

func newFakeS3() *fakeS3 {
	return &fakeS3{objects: map[string][]byte{}, contentTypes: map[string]string{}}
}

func (f *fakeS3) PutObject(_ context.Context, in *s3.PutObjectInput, _ ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, _ := io.ReadAll(in.Body)
	f.objects[aws.ToString(in.Key)] = data
	f.contentTypes[aws.ToString(in.Key)] = aws.ToString(in.ContentType)
	return &s3.PutObjectOutput{}, nil
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[aws.ToString(in.Key)]
	if !ok {
		return nil, &s3types.NoSuchKey{Message: aws.String("The specified key does not exist.")}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewReader(data))}, nil
}

func (f *fakeS3) DeleteObject(_ context.Context, in *s3.DeleteObjectInput, _ ...func(*s3.Options)) (*s3.DeleteObjectOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	delete(f.objects, aws.ToString(in.Key))
	return &s3.DeleteObjectOutput{}, nil
}

func TestS3StoreRoundTrip(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	store := NewS3StoreWithClient(client, "bucket", zap.NewNop())

	ref, err := store.Put(ctx, pngBytes, "dish.png")
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(ref, s3KeyPrefix))
	assert.Equal(t, "image/png", client.contentTypes[ref])

	data, err := store.Get(ctx, ref)
	require.NoError(t, err)
	assert.Equal(t, pngBytes, data)

	require.NoError(t, store.Delete(ctx, ref))
	_, err = store.Get(ctx, ref)
	assert.ErrorIs(t, err, ErrNotExist)
	assert.ErrorIs(t, err, ErrUnavailable)
}

func TestS3StoreBackendErrorsAreUnavailable(t *testing.T) {
	ctx := context.Background()
	client := newFakeS3()
	client.err = errors.New("timeout")
	store := NewS3StoreWithClient(client, "bucket", zap.NewNop())

	_, err := store.Put(ctx, pngBytes, "dish.png")
	assert.ErrorIs(t, err, ErrUnavailable)
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, ErrUnavailable)
	assert.NotErrorIs(t, err, ErrNotExist)
	assert.ErrorIs(t, store.Delete(ctx, "k"), ErrUnavailable)
}

func TestS3StoreEmptyObjectIsNotExist(t *testing.T) {
	client := newFakeS3()
	client.objects["recipe-images/empty.png"] = nil
	store := NewS3StoreWithClient(client, "bucket", zap.NewNop())

	_, err := store.Get(context.Background(), "recipe-images/empty.png")
	assert.ErrorIs(t, err, ErrNotExist)
}
