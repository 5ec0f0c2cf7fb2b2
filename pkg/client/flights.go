package client

import (
	"context"
	"fmt"
	"net/http"

	"aerovoyage/pkg/model"
)

// FlightsClient is the bookings service's view of the flights service. Only
// catalog reads are needed. The quoted price may already carry the demand
// markup, in which case original_price holds the canonical base.
type FlightsClient struct {
	http *HttpClient
}

func NewFlightsClient(baseURL string) *FlightsClient {
	return &FlightsClient{http: NewHttpClient(baseURL)}
}

type flightEnvelope struct {
	Data model.Flight `json:"data"`
}

func (c *FlightsClient) GetFlight(ctx context.Context, flightID string) (*model.Flight, error) {
	resp, err := c.http.GET(ctx, "/api/v1/flights/id/"+flightID)
	if err != nil {
		return nil, fmt.Errorf("flights service request failed: %w", err)
	}

	switch resp.StatusCode {
	case http.StatusOK:
	case http.StatusNotFound:
		return nil, ErrFlightNotFound
	default:
		return nil, fmt.Errorf("flights service returned status %d", resp.StatusCode)
	}

	var envelope flightEnvelope
	if err := resp.DecodeJSON(&envelope); err != nil {
		return nil, fmt.Errorf("failed to decode flight response: %w", err)
	}
	return &envelope.Data, nil
}
