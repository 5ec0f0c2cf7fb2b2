package flights

import (
	"fmt"
	"net/http"
	"testing"

	"aerovoyage/pkg/model"
	"aerovoyage/test/integration/testutil"
)

type flightEnvelope struct {
	Data model.Flight `json:"data"`
}

type flightPage struct {
	Data       []model.Flight `json:"data"`
	TotalCount int64          `json:"total_count"`
	Limit      int            `json:"limit"`
	Offset     int64          `json:"offset"`
}

func TestCreate_ValidFlight(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	// Arrange
	flight := testutil.ValidFlight()

	// Act
	resp := client.POST(t, "/api/v1/flights", flight)

	// Assert
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created flightEnvelope
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}

	if created.Data.ID == "" {
		t.Error("expected ID to be set")
	}
	if created.Data.FlightNumber != flight.FlightNumber {
		t.Errorf("expected flight_number %q, got %q", flight.FlightNumber, created.Data.FlightNumber)
	}
	if created.Data.SeatsAvailable != flight.SeatsTotal {
		t.Errorf("expected seats_available to default to seats_total %d, got %d", flight.SeatsTotal, created.Data.SeatsAvailable)
	}

	count := mongo.CountDocuments(t, testutil.FlightsCollection)
	if count != 1 {
		t.Errorf("expected 1 document in DB, got %d", count)
	}
}

func TestCreate_EmptyFlight(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.POST(t, "/api/v1/flights", testutil.EmptyFlight())

	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
	testutil.AssertContains(t, resp, "validation")

	count := mongo.CountDocuments(t, testutil.FlightsCollection)
	if count != 0 {
		t.Errorf("expected 0 documents in DB, got %d", count)
	}
}

func TestSearch_ByRoute(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	// Arrange: two flights on the route, one elsewhere
	for _, flight := range []model.Flight{
		testutil.NewFlightBuilder().WithFlightNumber("AV100").Build(),
		testutil.NewFlightBuilder().WithFlightNumber("AV200").Build(),
		testutil.NewFlightBuilder().WithFlightNumber("AV300").WithRoute("SFO", "SEA").Build(),
	} {
		createFlight(t, client, flight)
	}

	// Act
	resp := client.GET(t, "/api/v1/flights/search?origin=JFK&destination=LAX")

	// Assert
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var page flightPage
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("expected 2 matching flights, got %d", page.TotalCount)
	}
	for _, flight := range page.Data {
		if flight.Origin != "JFK" || flight.Destination != "LAX" {
			t.Errorf("unexpected route in results: %s-%s", flight.Origin, flight.Destination)
		}
	}
}

func TestSearch_SameOriginAndDestination(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.GET(t, "/api/v1/flights/search?origin=JFK&destination=JFK")

	testutil.AssertStatusCode(t, resp, http.StatusBadRequest)
}

func TestGetByID_NotFound(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	resp := client.GET(t, "/api/v1/flights/id/68b000000000000000000099")

	testutil.AssertStatusCode(t, resp, http.StatusNotFound)
}

// Repeated searches in one minute count as a single demand signal, so the
// quoted price must stay at base no matter how many times a client polls.
func TestSearch_RepeatedPollingDoesNotEscalate(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	created := createFlight(t, client, testutil.NewFlightBuilder().WithPrice(100).Build())

	for i := 0; i < 10; i++ {
		resp := client.GET(t, "/api/v1/flights/search?origin=JFK&destination=LAX")
		testutil.AssertStatusCode(t, resp, http.StatusOK)
	}

	resp := client.GET(t, fmt.Sprintf("/api/v1/flights/id/%s", created.ID))
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var quoted flightEnvelope
	if err := resp.DecodeJSON(&quoted); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if quoted.Data.Price != 100 {
		t.Errorf("expected base price 100 after same-minute polling, got %d", quoted.Data.Price)
	}
	if quoted.Data.PriceIncreased {
		t.Error("expected price_increased to be false")
	}
}

func createFlight(t *testing.T, client *testutil.Client, flight model.Flight) model.Flight {
	t.Helper()

	resp := client.POST(t, "/api/v1/flights", flight)
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created flightEnvelope
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to unmarshal created flight: %v", err)
	}
	return created.Data
}
