package mocks

import (
	"context"

	"booking-bridge/core/source"

	"github.com/stretchr/testify/mock"
)

// Client is a mock implementation of source.Client
type Client struct {
	mock.Mock
}

func (m *Client) GetReservation(ctx context.Context, id string) (*source.Reservation, error) {
	args := m.Called(ctx, id)
	if r, ok := args.Get(0).(*source.Reservation); ok {
		return r, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetListing(ctx context.Context, id string) (*source.Listing, error) {
	args := m.Called(ctx, id)
	if l, ok := args.Get(0).(*source.Listing); ok {
		return l, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetCondominium(ctx context.Context, id string) (*source.Condominium, error) {
	args := m.Called(ctx, id)
	if c, ok := args.Get(0).(*source.Condominium); ok {
		return c, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) GetGuest(ctx context.Context, id string) (*source.Guest, error) {
	args := m.Called(ctx, id)
	if g, ok := args.Get(0).(*source.Guest); ok {
		return g, args.Error(1)
	}
	return nil, args.Error(1)
}

func (m *Client) SearchReservations(ctx context.Context, q source.SearchQuery) ([]source.Reservation, error) {
	args := m.Called(ctx, q)
	if rs, ok := args.Get(0).([]source.Reservation); ok {
		return rs, args.Error(1)
	}
	return nil, args.Error(1)
}
