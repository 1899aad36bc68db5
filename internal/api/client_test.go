package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"tablenest/internal/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// newTestServer returns a client pointed at a server that records the
// request body for the given path and replies with the given response.
func newTestServer(t *testing.T, path string, response string) (*Client, *map[string]any) {
	t.Helper()
	var captured map[string]any

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, path, r.URL.Path)
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NoError(t, json.NewDecoder(r.Body).Decode(&captured))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(response))
	}))
	t.Cleanup(srv.Close)

	return NewClient(srv.URL), &captured
}

func TestFetchOrderQueue(t *testing.T) {
	client, captured := newTestServer(t, "/getOrderQueue", `{
		"orders": [
			{"foodOrderID": 5, "tableID": 2, "confirmed": false, "orderItems": [{"name": "Ramen", "quantity": 2}]},
			{"foodOrderID": 7, "tableID": 4, "confirmed": true, "orderItems": []}
		]
	}`)

	creds := model.Credentials{UserID: 10, AuthToken: "tok"}
	orders, err := client.FetchOrderQueue(context.Background(), creds, 3)
	require.NoError(t, err)

	assert.Equal(t, float64(10), (*captured)["userID"])
	assert.Equal(t, "tok", (*captured)["authToken"])
	assert.Equal(t, float64(3), (*captured)["lastStoredFoodOrderID"])

	require.Len(t, orders, 2)
	assert.Equal(t, int64(5), orders[0].FoodOrderID)
	assert.Equal(t, int64(2), orders[0].TableID)
	require.NotNil(t, orders[0].Confirmed)
	assert.False(t, *orders[0].Confirmed)
	require.Len(t, orders[0].Items, 1)
	assert.Equal(t, "Ramen", orders[0].Items[0].Name)
	assert.Equal(t, 2, orders[0].Items[0].Quantity)
	require.NotNil(t, orders[1].Confirmed)
	assert.True(t, *orders[1].Confirmed)
}

func TestFetchOrderQueueBackendError(t *testing.T) {
	client, _ := newTestServer(t, "/getOrderQueue", `{"error": "invalid auth token"}`)

	_, err := client.FetchOrderQueue(context.Background(), model.Credentials{UserID: 1, AuthToken: "x"}, 0)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "invalid auth token", apiErr.Message)
}

func TestSubmitOrderDecisionWireFields(t *testing.T) {
	tests := []struct {
		decision      Decision
		wantConfirmed any
		wantFulfilled any
	}{
		{DecisionConfirm, true, nil},
		{DecisionReject, false, nil},
		{DecisionFulfil, nil, true},
	}

	for _, tt := range tests {
		t.Run(tt.decision.String(), func(t *testing.T) {
			client, captured := newTestServer(t, "/orderConfirmation", `{}`)

			err := client.SubmitOrderDecision(context.Background(), model.Credentials{UserID: 9, AuthToken: "t"}, 42, tt.decision)
			require.NoError(t, err)

			assert.Equal(t, float64(42), (*captured)["foodOrderID"])
			assert.Equal(t, tt.wantConfirmed, (*captured)["confirmed"])
			assert.Equal(t, tt.wantFulfilled, (*captured)["fulfilled"])
			// Unused by this flow, but the backend requires the field.
			assert.Contains(t, *captured, "paid")
			assert.Nil(t, (*captured)["paid"])
		})
	}
}

func TestPlaceOrder(t *testing.T) {
	client, captured := newTestServer(t, "/placeOrder", `{"foodOrderID": 88}`)

	id, err := client.PlaceOrder(context.Background(), model.Credentials{UserID: 3, AuthToken: "t"}, 7, 2,
		[]model.OrderSelection{{MenuItemID: 11, Quantity: 2}}, "no onions")
	require.NoError(t, err)
	assert.Equal(t, int64(88), id)

	assert.Equal(t, float64(7), (*captured)["restaurantID"])
	assert.Equal(t, float64(2), (*captured)["tableID"])
	assert.Equal(t, "no onions", (*captured)["customisation"])
	items, ok := (*captured)["menuItems"].([]any)
	require.True(t, ok)
	require.Len(t, items, 1)
}

func TestRestaurantDetails(t *testing.T) {
	client, _ := newTestServer(t, "/restaurantDetails", `{
		"details": {
			"name": "Nonna's",
			"description": "Neapolitan pizza",
			"category": "Italian",
			"openingPeriods": [{"day": 0, "openingTime": "11:00", "closingTime": "22:00"}]
		}
	}`)

	details, err := client.RestaurantDetails(context.Background(), 14)
	require.NoError(t, err)

	assert.Equal(t, int64(14), details.RestaurantID)
	assert.Equal(t, "Nonna's", details.Name)
	assert.Equal(t, "Italian", details.Category)
	require.Len(t, details.OpeningPeriods, 1)
	assert.Equal(t, "22:00", details.OpeningPeriods[0].ClosingTime)
}

func TestBeginVerificationSignInSendsNullName(t *testing.T) {
	client, captured := newTestServer(t, "/beginVerification", `{"userID": 512}`)

	userID, err := client.BeginVerification(context.Background(), "amy@example.com", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(512), userID)

	assert.Equal(t, "amy@example.com", (*captured)["email"])
	assert.Contains(t, *captured, "name")
	assert.Nil(t, (*captured)["name"])
}

func TestVerifyCode(t *testing.T) {
	client, captured := newTestServer(t, "/getAuthToken", `{"authToken": "secret-token"}`)

	token, err := client.VerifyCode(context.Background(), 512, "493021")
	require.NoError(t, err)

	assert.Equal(t, "secret-token", token)
	assert.Equal(t, float64(512), (*captured)["userID"])
	assert.Equal(t, "493021", (*captured)["code"])
}

func TestNonOKStatusIsTransportError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	client := NewClient(srv.URL)
	_, err := client.OrderETA(context.Background(), 1)

	require.Error(t, err)
	var apiErr *APIError
	assert.NotErrorAs(t, err, &apiErr)
}

func TestReservationAvailability(t *testing.T) {
	client, captured := newTestServer(t, "/reservationAvailability", `{"results": ["18:00", "18:30", "20:00"]}`)

	times, err := client.ReservationAvailability(context.Background(), 5, "2026-09-01", 4)
	require.NoError(t, err)

	assert.Equal(t, []string{"18:00", "18:30", "20:00"}, times)
	assert.Equal(t, "2026-09-01", (*captured)["date"])
	assert.Equal(t, float64(4), (*captured)["persons"])
}

func TestSaveMenuItemNewVersusEdit(t *testing.T) {
	client, captured := newTestServer(t, "/addMenuItem", `{}`)
	creds := model.Credentials{UserID: 2, AuthToken: "t"}

	input := model.MenuItemInput{
		RestaurantID: 9,
		Name:         "Tiramisu",
		Price:        6.5,
		Calories:     420,
		MenuSection:  "Desserts",
	}
	require.NoError(t, client.SaveMenuItem(context.Background(), creds, input))
	assert.Nil(t, (*captured)["changeExistingID"])

	existing := int64(31)
	input.ChangeExistingID = &existing
	require.NoError(t, client.SaveMenuItem(context.Background(), creds, input))
	assert.Equal(t, float64(31), (*captured)["changeExistingID"])
}
