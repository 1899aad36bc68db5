package api

import (
	"context"

	"tablenest/internal/model"
)

// ReservationAvailability returns the free reservation times for a
// restaurant on a date, for the given party size.
func (c *Client) ReservationAvailability(ctx context.Context, restaurantID int64, date string, persons int) ([]string, error) {
	req := struct {
		RestaurantID int64  `json:"restaurantID"`
		Date         string `json:"date"`
		Persons      int    `json:"persons"`
	}{restaurantID, date, persons}

	var resp struct {
		responseError
		Results []string `json:"results"`
	}
	if err := c.post(ctx, "/reservationAvailability", req, &resp); err != nil {
		return nil, err
	}
	return resp.Results, nil
}

// MakeReservation books a table.
func (c *Client) MakeReservation(ctx context.Context, creds model.Credentials, restaurantID int64, date, timeSlot string, persons int) error {
	req := struct {
		RestaurantID int64  `json:"restaurantID"`
		Date         string `json:"date"`
		Time         string `json:"time"`
		Persons      int    `json:"persons"`
		UserID       int64  `json:"userID"`
		AuthToken    string `json:"authToken"`
	}{restaurantID, date, timeSlot, persons, creds.UserID, creds.AuthToken}

	var resp responseError
	return c.post(ctx, "/makeReservation", req, &resp)
}

// Reservations returns the reservations for the operator's restaurant.
func (c *Client) Reservations(ctx context.Context, creds model.Credentials) ([]model.Reservation, error) {
	req := struct {
		UserID    int64  `json:"userID"`
		AuthToken string `json:"authToken"`
	}{creds.UserID, creds.AuthToken}

	var resp struct {
		responseError
		Reservations []struct {
			ReservationID int64  `json:"reservationID"`
			TableID       int64  `json:"tableID"`
			Datetime      string `json:"datetime"`
			Persons       int    `json:"persons"`
			UserName      string `json:"userName"`
			UserEmail     string `json:"userEmail"`
		} `json:"reservations"`
	}
	if err := c.post(ctx, "/getReservations", req, &resp); err != nil {
		return nil, err
	}

	out := make([]model.Reservation, 0, len(resp.Reservations))
	for _, r := range resp.Reservations {
		out = append(out, model.Reservation{
			ReservationID: r.ReservationID,
			TableID:       r.TableID,
			Datetime:      r.Datetime,
			Persons:       r.Persons,
			UserName:      r.UserName,
			UserEmail:     r.UserEmail,
		})
	}
	return out, nil
}

// CancelReservation cancels one reservation.
func (c *Client) CancelReservation(ctx context.Context, creds model.Credentials, reservationID int64) error {
	req := struct {
		UserID        int64  `json:"userID"`
		AuthToken     string `json:"authToken"`
		ReservationID int64  `json:"reservationID"`
	}{creds.UserID, creds.AuthToken, reservationID}

	var resp responseError
	return c.post(ctx, "/cancelReservation", req, &resp)
}
