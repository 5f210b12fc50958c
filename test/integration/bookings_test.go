//go:build integration

package integration

import (
	"context"
	"net/http"
	"os"
	"sync"
	"testing"
	"time"

	"staybook/pkg/client"
	"staybook/pkg/model"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var (
	bookings *client.BookingClient
	listings *client.ListingClient
)

func TestMain(m *testing.M) {
	serverURL := os.Getenv("TEST_SERVER_URL")
	if serverURL == "" {
		serverURL = "http://localhost:8080"
	}

	if err := client.NewHttpClient(serverURL).WaitForHealthy(context.Background(), 30*time.Second); err != nil {
		panic(err)
	}

	bookings = client.NewBookingClient(serverURL)
	listings = client.NewListingClient(serverURL)
	os.Exit(m.Run())
}

// futureRange returns a range starting offset days from a year ahead, so
// runs never collide with "today".
func futureRange(offset, nights int) (model.Date, model.Date) {
	start := model.DateOf(time.Now().AddDate(1, 0, offset))
	return start, start.AddDays(nights)
}

func submit(t *testing.T, listingID string, start, end model.Date) *client.Response {
	t.Helper()
	resp, err := bookings.Create(context.Background(), &model.BookingRequest{
		ListingID: listingID,
		StartDate: start,
		EndDate:   end,
	}, "integration@example.com")
	if err != nil {
		t.Fatalf("Create() error: %v", err)
	}
	return resp
}

func TestListings(t *testing.T) {
	resp, err := listings.GetAll(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("GET listings: %s", resp)
	}
	data, userErr, err := listings.DecodeListings(resp)
	if err != nil {
		t.Fatal(err)
	}
	if data == nil {
		t.Error("listings data must be an array")
	}
	if userErr != "" {
		t.Logf("listings degraded: %s", userErr)
	}
}

func TestBookingOverlap(t *testing.T) {
	listingID := primitive.NewObjectID().Hex()
	start, end := futureRange(0, 9)

	first := submit(t, listingID, start, end)
	if first.StatusCode != http.StatusCreated {
		t.Fatalf("first booking: %s", first)
	}
	created, err := bookings.DecodeBooking(first)
	if err != nil || created.ID == "" {
		t.Fatalf("created booking = %+v, %v", created, err)
	}

	tests := []struct {
		name       string
		start, end model.Date
		wantStatus int
	}{
		{"inside existing", start.AddDays(4), start.AddDays(6), http.StatusConflict},
		{"touches last day", end, end.AddDays(5), http.StatusConflict},
		{"contains existing", start.AddDays(-2), end.AddDays(2), http.StatusConflict},
		{"day after", end.AddDays(1), end.AddDays(5), http.StatusCreated},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp := submit(t, listingID, tt.start, tt.end)
			if resp.StatusCode != tt.wantStatus {
				t.Fatalf("status = %s, want %d", resp, tt.wantStatus)
			}
		})
	}

	resp, err := bookings.ListByListing(context.Background(), listingID)
	if err != nil {
		t.Fatal(err)
	}
	stored, err := bookings.DecodeBookings(resp)
	if err != nil {
		t.Fatal(err)
	}
	if len(stored) != 2 {
		t.Errorf("stored bookings = %d, want 2", len(stored))
	}
}

func TestBookingValidation(t *testing.T) {
	listingID := primitive.NewObjectID().Hex()
	start, _ := futureRange(0, 0)

	resp := submit(t, listingID, start, start)
	if resp.StatusCode != http.StatusUnprocessableEntity {
		t.Fatalf("end == start: %s", resp)
	}

	raw, err := bookings.CreateRaw(context.Background(), []byte(`{"listing_id":"`+listingID+`","start_date":"bad","end_date":"2030-01-01"}`))
	if err != nil {
		t.Fatal(err)
	}
	if raw.StatusCode != http.StatusBadRequest {
		t.Errorf("bad date: %s", raw)
	}
}

// Without the booking lock two concurrent submissions may both be
// accepted; with it exactly one wins. Either way at least one succeeds.
func TestConcurrentSubmissions(t *testing.T) {
	listingID := primitive.NewObjectID().Hex()
	start, end := futureRange(30, 3)

	var wg sync.WaitGroup
	statuses := make([]int, 5)
	for i := range statuses {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			resp, err := bookings.Create(context.Background(), &model.BookingRequest{
				ListingID: listingID,
				StartDate: start,
				EndDate:   end,
			}, "")
			if err != nil {
				t.Errorf("submission %d: %v", i, err)
				return
			}
			statuses[i] = resp.StatusCode
		}(i)
	}
	wg.Wait()

	created := 0
	for _, s := range statuses {
		if s == http.StatusCreated {
			created++
		}
	}
	if created == 0 {
		t.Fatalf("no submission succeeded: %v", statuses)
	}
	if os.Getenv("BOOKING_LOCK_ENABLED") == "true" && created != 1 {
		t.Errorf("with the lock enabled exactly one submission may win, got %d", created)
	}
}
