package resmgr_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrymomot/fluent/pkg/resmgr"
)

type fakeS3 struct {
	objects map[string]string
	err     error
	keys    []string
}

func (f *fakeS3) GetObject(_ context.Context, in *s3.GetObjectInput, _ ...func(*s3.Options)) (*s3.GetObjectOutput, error) {
	f.keys = append(f.keys, *in.Key)
	if f.err != nil {
		return nil, f.err
	}
	data, ok := f.objects[*in.Key]
	if !ok {
		return nil, &types.NoSuchKey{}
	}
	return &s3.GetObjectOutput{Body: io.NopCloser(bytes.NewBufferString(data))}, nil
}

func TestNewS3Source_Validation(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		cfg  resmgr.S3Config
	}{
		{name: "missing bucket", cfg: resmgr.S3Config{AccessKey: "a", SecretKey: "s"}},
		{name: "missing access key", cfg: resmgr.S3Config{Bucket: "b", SecretKey: "s"}},
		{name: "missing secret key", cfg: resmgr.S3Config{Bucket: "b", AccessKey: "a"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			_, err := resmgr.NewS3Source(tt.cfg)
			require.ErrorIs(t, err, resmgr.ErrInvalidConfig)
		})
	}

	t.Run("valid", func(t *testing.T) {
		t.Parallel()
		src, err := resmgr.NewS3Source(resmgr.S3Config{
			Bucket:    "locales",
			AccessKey: "a",
			SecretKey: "s",
			Endpoint:  "http://localhost:9000",
			PathStyle: true,
		})
		require.NoError(t, err)
		require.NotNil(t, src)
	})

	t.Run("nil client", func(t *testing.T) {
		t.Parallel()
		_, err := resmgr.NewS3SourceWithClient(nil, resmgr.S3Config{Bucket: "b"})
		require.ErrorIs(t, err, resmgr.ErrInvalidConfig)
	})
}

func TestS3Source_Fetch(t *testing.T) {
	t.Parallel()

	ctx := context.Background()

	t.Run("prefixed key", func(t *testing.T) {
		t.Parallel()

		client := &fakeS3{objects: map[string]string{"locales/en/main": "- id: a\n  value: b\n"}}
		src, err := resmgr.NewS3SourceWithClient(client, resmgr.S3Config{Bucket: "b", Prefix: "locales"})
		require.NoError(t, err)

		data, err := src.Fetch(ctx, "en/main")
		require.NoError(t, err)
		assert.Contains(t, string(data), "id: a")
		assert.Equal(t, []string{"locales/en/main"}, client.keys)
	})

	t.Run("error mapping", func(t *testing.T) {
		t.Parallel()

		tests := []struct {
			name string
			err  error
			want error
		}{
			{name: "typed not found", err: &types.NoSuchKey{}, want: resmgr.ErrNotFound},
			{name: "api not found", err: &smithy.GenericAPIError{Code: "NotFound"}, want: resmgr.ErrNotFound},
			{name: "access denied", err: &smithy.GenericAPIError{Code: "AccessDenied"}, want: resmgr.ErrAccessDenied},
			{name: "other", err: errors.New("network down"), want: resmgr.ErrFetchFailed},
		}

		for _, tt := range tests {
			t.Run(tt.name, func(t *testing.T) {
				t.Parallel()

				src, err := resmgr.NewS3SourceWithClient(&fakeS3{err: tt.err}, resmgr.S3Config{Bucket: "b"})
				require.NoError(t, err)

				_, err = src.Fetch(ctx, "en/main")
				require.ErrorIs(t, err, tt.want)
			})
		}
	})

	t.Run("size limit", func(t *testing.T) {
		t.Parallel()

		client := &fakeS3{objects: map[string]string{"big": strings.Repeat("x", 11)}}
		src, err := resmgr.NewS3SourceWithClient(client, resmgr.S3Config{Bucket: "b", MaxObjectSize: 10})
		require.NoError(t, err)

		_, err = src.Fetch(ctx, "big")
		require.ErrorIs(t, err, resmgr.ErrFetchFailed)
	})
}

func TestLoadS3Config(t *testing.T) {
	t.Setenv("FLUENT_S3_BUCKET", "locales")
	t.Setenv("FLUENT_S3_PREFIX", "app")
	t.Setenv("FLUENT_S3_ACCESS_KEY", "key")
	t.Setenv("FLUENT_S3_SECRET_KEY", "secret")
	t.Setenv("FLUENT_S3_PATH_STYLE", "true")
	t.Setenv("FLUENT_S3_REGION", "eu-central-1")

	cfg, err := resmgr.LoadS3Config()
	require.NoError(t, err)
	assert.Equal(t, "locales", cfg.Bucket)
	assert.Equal(t, "app", cfg.Prefix)
	assert.Equal(t, "eu-central-1", cfg.Region)
	assert.True(t, cfg.PathStyle)

	t.Setenv("FLUENT_S3_MAX_OBJECT_SIZE", "big")
	_, err = resmgr.LoadS3Config()
	require.ErrorIs(t, err, resmgr.ErrInvalidConfig)
}
