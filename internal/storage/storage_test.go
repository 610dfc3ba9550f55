package storage

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockPutObject struct {
	mock.Mock
}

func (m *mockPutObject) PutObject(ctx context.Context, params *s3.PutObjectInput, optFns ...func(*s3.Options)) (*s3.PutObjectOutput, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*s3.PutObjectOutput), args.Error(1)
}

func TestS3StoragePut(t *testing.T) {
	client := new(mockPutObject)
	store := newS3Storage(client, "uploads", "https://cdn.example.com/")

	client.On("PutObject", mock.Anything, mock.MatchedBy(func(in *s3.PutObjectInput) bool {
		return *in.Bucket == "uploads" &&
			*in.Key == "responses/a.png" &&
			*in.ContentType == "image/png" &&
			*in.ContentLength == 4
	})).Return(&s3.PutObjectOutput{}, nil)

	url, err := store.Put(context.Background(), "responses/a.png", strings.NewReader("data"), 4, "image/png")
	require.NoError(t, err)
	assert.Equal(t, "https://cdn.example.com/responses/a.png", url)
	client.AssertExpectations(t)
}

func TestS3StoragePutError(t *testing.T) {
	client := new(mockPutObject)
	store := newS3Storage(client, "uploads", "https://cdn.example.com")
	client.On("PutObject", mock.Anything, mock.Anything).Return(nil, errors.New("access denied"))

	_, err := store.Put(context.Background(), "responses/a.png", strings.NewReader("x"), 1, "image/png")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "access denied")
}

func TestS3StorageRejectsTraversal(t *testing.T) {
	client := new(mockPutObject)
	store := newS3Storage(client, "uploads", "https://cdn.example.com")

	for _, key := range []string{"../secret", "responses/../../x", "/abs", ""} {
		_, err := store.Put(context.Background(), key, io.LimitReader(strings.NewReader(""), 0), 0, "image/png")
		assert.Error(t, err, key)
	}
	client.AssertNotCalled(t, "PutObject", mock.Anything, mock.Anything)
}

var (
	pngHeader  = []byte("\x89PNG\r\n\x1a\n\x00\x00\x00\rIHDR\x00\x00\x00\x01\x00\x00\x00\x01\x08\x06\x00\x00\x00")
	jpegHeader = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 'J', 'F', 'I', 'F', 0x00}
	gifHeader  = []byte("GIF89a\x01\x00\x01\x00\x00\x00\x00")
)

func TestDetectImage(t *testing.T) {
	tests := []struct {
		name     string
		head     []byte
		wantType string
		wantExt  string
	}{
		{name: "png", head: pngHeader, wantType: "image/png", wantExt: ".png"},
		{name: "jpeg", head: jpegHeader, wantType: "image/jpeg", wantExt: ".jpg"},
		{name: "gif", head: gifHeader, wantType: "image/gif", wantExt: ".gif"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			contentType, ext, err := DetectImage(tt.head)
			require.NoError(t, err)
			assert.Equal(t, tt.wantType, contentType)
			assert.Equal(t, tt.wantExt, ext)
		})
	}
}

func TestDetectImageRejectsOtherContent(t *testing.T) {
	for _, head := range [][]byte{
		[]byte("<html><script>alert(1)</script></html>"),
		[]byte("%PDF-1.7\n"),
		{},
	} {
		_, _, err := DetectImage(head)
		assert.ErrorIs(t, err, ErrUnsupportedImage)
	}
}
