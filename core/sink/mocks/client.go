package mocks

import (
	"context"

	"booking-bridge/core/sink"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of sink.Client
type Client struct {
	mock.Mock
}

func (m *Client) List(ctx context.Context, table string, filter map[string]string) ([]sink.Record, error) {
	args := m.Called(ctx, table, filter)
	if items, ok := args.Get(0).([]sink.Record); ok {
		return items, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Create(ctx context.Context, table string, fields sink.Record) (sink.Record, error) {
	args := m.Called(ctx, table, fields)
	if rec, ok := args.Get(0).(sink.Record); ok {
		return rec, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) Update(ctx context.Context, table string, fields sink.Record) error {
	args := m.Called(ctx, table, fields)
	return args.Error(0)
}
