package bookings

import (
	"context"
	"fmt"
	"net/http"
	"testing"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"aerovoyage/pkg/model"
	"aerovoyage/test/integration/testutil"
)

type bookingEnvelope struct {
	Data model.Booking `json:"data"`
}

type walletEnvelope struct {
	Data model.Wallet `json:"data"`
}

// seedFlight inserts a flight document directly, the bookings service reads
// the catalog through the flights API which shares this database.
func seedFlight(t *testing.T, mongo *testutil.MongoHelper) string {
	t.Helper()

	flight := testutil.ValidFlight()
	flight.CreatedAt = time.Now().UTC()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	result, err := mongo.GetCollection(testutil.FlightsCollection).InsertOne(ctx, flight)
	if err != nil {
		t.Fatalf("failed to seed flight: %v", err)
	}
	return result.InsertedID.(primitive.ObjectID).Hex()
}

func topUp(t *testing.T, client *testutil.Client, userID string, amount int64) {
	t.Helper()

	resp := client.POST(t, fmt.Sprintf("/api/v1/wallets/%s/topup", userID), model.WalletTopUp{Amount: amount})
	testutil.AssertStatusCode(t, resp, http.StatusOK)
}

func TestBooking_Lifecycle(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	flightID := seedFlight(t, mongo)
	topUp(t, client, "user-1", 500)

	// Book
	resp := client.POST(t, "/api/v1/bookings", testutil.ValidBooking(flightID))
	testutil.AssertStatusCode(t, resp, http.StatusCreated)

	var created bookingEnvelope
	if err := resp.DecodeJSON(&created); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if created.Data.Reference == "" {
		t.Error("expected booking reference to be set")
	}
	if created.Data.Status != model.BookingConfirmed {
		t.Errorf("expected status %q, got %q", model.BookingConfirmed, created.Data.Status)
	}
	if created.Data.PricePaid == 0 {
		t.Error("expected price_paid to be set")
	}

	// The charge left the wallet
	resp = client.GET(t, "/api/v1/wallets/user-1")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var wallet walletEnvelope
	if err := resp.DecodeJSON(&wallet); err != nil {
		t.Fatalf("failed to unmarshal wallet: %v", err)
	}
	charged := created.Data.PricePaid * int64(created.Data.Seats)
	if wallet.Data.Balance != 500-charged {
		t.Errorf("expected balance %d after booking, got %d", 500-charged, wallet.Data.Balance)
	}

	// Cancel refunds the full charge
	resp = client.POST(t, fmt.Sprintf("/api/v1/bookings/id/%s/cancel", created.Data.ID), nil)
	testutil.AssertStatusCode(t, resp, http.StatusNoContent)

	resp = client.GET(t, "/api/v1/wallets/user-1")
	testutil.AssertStatusCode(t, resp, http.StatusOK)
	if err := resp.DecodeJSON(&wallet); err != nil {
		t.Fatalf("failed to unmarshal wallet: %v", err)
	}
	if wallet.Data.Balance != 500 {
		t.Errorf("expected balance restored to 500 after cancel, got %d", wallet.Data.Balance)
	}

	// Second cancel must not refund again
	resp = client.POST(t, fmt.Sprintf("/api/v1/bookings/id/%s/cancel", created.Data.ID), nil)
	testutil.AssertStatusCode(t, resp, http.StatusConflict)
}

func TestBooking_InsufficientFunds(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	flightID := seedFlight(t, mongo)
	topUp(t, client, "poor-user", 10)

	booking := testutil.NewBookingBuilder(flightID).WithUser("poor-user").Build()
	resp := client.POST(t, "/api/v1/bookings", booking)

	testutil.AssertStatusCode(t, resp, http.StatusConflict)

	count := mongo.CountDocuments(t, testutil.BookingsCollection)
	if count != 0 {
		t.Errorf("expected no bookings after failed charge, got %d", count)
	}
}

func TestBooking_PassengerSeatMismatch(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	flightID := seedFlight(t, mongo)
	topUp(t, client, "user-1", 500)

	booking := testutil.ValidBooking(flightID)
	booking.Seats = 2

	resp := client.POST(t, "/api/v1/bookings", booking)
	testutil.AssertStatusCode(t, resp, http.StatusUnprocessableEntity)
}

func TestBooking_UserHistory(t *testing.T) {
	env := testutil.NewTestEnv()
	mongo, client := env.Setup(t)
	defer env.Cleanup(t, mongo)

	flightID := seedFlight(t, mongo)
	topUp(t, client, "user-1", 1000)

	for i := 0; i < 2; i++ {
		resp := client.POST(t, "/api/v1/bookings", testutil.ValidBooking(flightID))
		testutil.AssertStatusCode(t, resp, http.StatusCreated)
	}

	resp := client.GET(t, "/api/v1/bookings?user_id=user-1")
	testutil.AssertStatusCode(t, resp, http.StatusOK)

	var page struct {
		Data       []model.Booking `json:"data"`
		TotalCount int64           `json:"total_count"`
	}
	if err := resp.DecodeJSON(&page); err != nil {
		t.Fatalf("failed to unmarshal response: %v", err)
	}
	if page.TotalCount != 2 {
		t.Errorf("expected 2 bookings in history, got %d", page.TotalCount)
	}
}
