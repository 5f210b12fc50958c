package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"staybook/pkg/model"
)

const headerUserEmail = "X-User-Email"

type BookingClient struct {
	httpClient *HttpClient
}

func NewBookingClient(baseURL string) *BookingClient {
	return &BookingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

// Create submits a booking. userEmail is sent as the requester header when
// non-empty.
func (c *BookingClient) Create(ctx context.Context, req *model.BookingRequest, userEmail string) (*Response, error) {
	var headers map[string]string
	if userEmail != "" {
		headers = map[string]string{headerUserEmail: userEmail}
	}
	return c.httpClient.POST(ctx, "/api/v1/bookings", req, headers)
}

func (c *BookingClient) CreateRaw(ctx context.Context, rawBody []byte) (*Response, error) {
	return c.httpClient.POSTRaw(ctx, "/api/v1/bookings", rawBody)
}

func (c *BookingClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/bookings/id/"+url.PathEscape(id), nil)
}

func (c *BookingClient) ListByListing(ctx context.Context, listingID string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/listings/id/"+url.PathEscape(listingID)+"/bookings", nil)
}

func (c *BookingClient) DecodeBooking(resp *Response) (*model.Booking, error) {
	var wrapper struct {
		Data json.RawMessage `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking wrapper: %s: %w", resp, err)
	}

	var booking model.Booking
	if err := json.Unmarshal(wrapper.Data, &booking); err != nil {
		return nil, fmt.Errorf("could not decode booking json: %s: %w", resp, err)
	}

	return &booking, nil
}

func (c *BookingClient) DecodeBookings(resp *Response) ([]*model.Booking, error) {
	var wrapper struct {
		Data []*model.Booking `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode booking list: %s: %w", resp, err)
	}

	return wrapper.Data, nil
}
