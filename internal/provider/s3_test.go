// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package provider

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	s3types "github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MKhiriev/go-vault-sync/internal/logger"
)

func newTestS3Provider() *s3Provider {
	return &s3Provider{
		cfg: S3Config{Bucket: "vault", Prefix: "agent/"},
		log: logger.Nop(),
		retryer: NewRetryer(RetryConfig{
			MaxAttempts:    3,
			InitialBackoff: time.Millisecond,
			MaxBackoff:     time.Millisecond,
		}),
	}
}

// fakePager fails the first `failures` fetches, then serves its pages.
type fakePager struct {
	pages    []*s3.ListObjectsV2Output
	failures int
	err      error
	calls    int
}

func (f *fakePager) HasMorePages() bool { return len(f.pages) > 0 }

func (f *fakePager) NextPage(context.Context, ...func(*s3.Options)) (*s3.ListObjectsV2Output, error) {
	f.calls++
	if f.failures > 0 {
		f.failures--
		return nil, errors.New("read tcp: connection reset by peer")
	}
	if f.err != nil {
		return nil, f.err
	}
	page := f.pages[0]
	f.pages = f.pages[1:]
	return page, nil
}

func TestCollectKeysRetriesTransientPageFailure(t *testing.T) {
	p := newTestS3Provider()
	pager := &fakePager{
		failures: 2,
		pages: []*s3.ListObjectsV2Output{{
			Contents: []s3types.Object{
				{Key: aws.String("agent/items/a")},
				{Key: aws.String("agent/items/b")},
			},
		}},
	}

	keys, err := p.collectKeys(context.Background(), pager)
	require.NoError(t, err)
	assert.Equal(t, []string{"items/a", "items/b"}, keys)
	assert.Equal(t, 3, pager.calls, "transient page failures must be retried")
}

func TestCollectKeysStopsOnAuthError(t *testing.T) {
	p := newTestS3Provider()
	pager := &fakePager{
		err:   errors.New("api error AccessDenied: forbidden"),
		pages: []*s3.ListObjectsV2Output{{}},
	}

	_, err := p.collectKeys(context.Background(), pager)
	require.ErrorIs(t, err, ErrAuthExpired)
	assert.Equal(t, 1, pager.calls, "terminal errors must not be retried")
}

func TestClassifyS3Error(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want error
	}{
		{"no such key", errors.New("NoSuchKey: the key does not exist"), ErrNotFound},
		{"expired token", errors.New("ExpiredToken: refresh required"), ErrAuthExpired},
		{"slow down", errors.New("SlowDown: reduce request rate"), ErrRateLimited},
		{"anything else", errors.New("i/o timeout"), ErrNetworkTransient},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.ErrorIs(t, classifyS3Error("op", tc.err), tc.want)
		})
	}
}
