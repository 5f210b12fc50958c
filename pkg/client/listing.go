package client

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"staybook/pkg/model"
)

type ListingClient struct {
	httpClient *HttpClient
}

func NewListingClient(baseURL string) *ListingClient {
	return &ListingClient{
		httpClient: NewHttpClient(baseURL),
	}
}

func (c *ListingClient) GetAll(ctx context.Context) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/listings", nil)
}

func (c *ListingClient) GetByID(ctx context.Context, id string) (*Response, error) {
	return c.httpClient.GET(ctx, "/api/v1/listings/id/"+url.PathEscape(id), nil)
}

// DecodeListings returns the listings and the user-facing error the server
// attached when it could not reach the data store.
func (c *ListingClient) DecodeListings(resp *Response) ([]*model.Listing, string, error) {
	var wrapper struct {
		Data  []*model.Listing `json:"data"`
		Error string           `json:"error"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, "", fmt.Errorf("could not decode listing list: %s: %w", resp, err)
	}

	return wrapper.Data, wrapper.Error, nil
}

func (c *ListingClient) DecodeListing(resp *Response) (*model.Listing, error) {
	var wrapper struct {
		Data *model.Listing `json:"data"`
	}

	if err := json.Unmarshal(resp.Body, &wrapper); err != nil {
		return nil, fmt.Errorf("could not decode listing: %s: %w", resp, err)
	}

	return wrapper.Data, nil
}
