package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of archive.Client
type Client struct {
	mock.Mock
}

func (m *Client) EnsureBucket(ctx context.Context, bucket string) error {
	args := m.Called(ctx, bucket)
	return args.Error(0)
}

func (m *Client) Put(ctx context.Context, bucket, objectName string, payload []byte) error {
	args := m.Called(ctx, bucket, objectName, payload)
	return args.Error(0)
}
