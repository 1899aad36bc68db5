package api

import (
	"context"

	"tablenest/internal/model"
)

// Decision is an operator's verdict on a queued order.
type Decision int

const (
	DecisionConfirm Decision = iota
	DecisionReject
	DecisionFulfil
)

func (d Decision) String() string {
	switch d {
	case DecisionConfirm:
		return "confirm"
	case DecisionReject:
		return "reject"
	case DecisionFulfil:
		return "fulfil"
	default:
		return "unknown"
	}
}

type wireOrderItem struct {
	Name     string  `json:"name"`
	Quantity int     `json:"quantity"`
	Price    float64 `json:"price"`
}

type wireOrder struct {
	FoodOrderID int64           `json:"foodOrderID"`
	TableID     int64           `json:"tableID"`
	Confirmed   *bool           `json:"confirmed"`
	Fulfilled   bool            `json:"fulfilled"`
	Paid        bool            `json:"paid"`
	OrderItems  []wireOrderItem `json:"orderItems"`
}

func (w wireOrder) toModel() model.Order {
	items := make([]model.OrderItem, 0, len(w.OrderItems))
	for _, it := range w.OrderItems {
		items = append(items, model.OrderItem{Name: it.Name, Quantity: it.Quantity, Price: it.Price})
	}
	return model.Order{
		FoodOrderID: w.FoodOrderID,
		TableID:     w.TableID,
		Confirmed:   w.Confirmed,
		Fulfilled:   w.Fulfilled,
		Paid:        w.Paid,
		Items:       items,
	}
}

// FetchOrderQueue returns every order with an identifier greater than
// lastSeen, in ascending identifier order.
func (c *Client) FetchOrderQueue(ctx context.Context, creds model.Credentials, lastSeen int64) ([]model.Order, error) {
	req := struct {
		UserID    int64  `json:"userID"`
		AuthToken string `json:"authToken"`
		LastSeen  int64  `json:"lastStoredFoodOrderID"`
	}{creds.UserID, creds.AuthToken, lastSeen}

	var resp struct {
		responseError
		Orders []wireOrder `json:"orders"`
	}
	if err := c.post(ctx, "/getOrderQueue", req, &resp); err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		orders = append(orders, o.toModel())
	}
	return orders, nil
}

// SubmitOrderDecision records the operator's verdict on one order.
// Repeating a decision the backend has already applied succeeds; the
// endpoint is idempotent.
func (c *Client) SubmitOrderDecision(ctx context.Context, creds model.Credentials, foodOrderID int64, decision Decision) error {
	req := struct {
		UserID      int64  `json:"userID"`
		AuthToken   string `json:"authToken"`
		FoodOrderID int64  `json:"foodOrderID"`
		Confirmed   *bool  `json:"confirmed"`
		Fulfilled   *bool  `json:"fulfilled"`
		Paid        *bool  `json:"paid"`
	}{UserID: creds.UserID, AuthToken: creds.AuthToken, FoodOrderID: foodOrderID}

	yes, no := true, false
	switch decision {
	case DecisionConfirm:
		req.Confirmed = &yes
	case DecisionReject:
		req.Confirmed = &no
	case DecisionFulfil:
		req.Fulfilled = &yes
	}

	var resp responseError
	return c.post(ctx, "/orderConfirmation", req, &resp)
}

// PlaceOrder submits a food order for a table and returns the assigned
// order identifier.
func (c *Client) PlaceOrder(ctx context.Context, creds model.Credentials, restaurantID, tableID int64, items []model.OrderSelection, customisation string) (int64, error) {
	type wireSelection struct {
		MenuItemID int64 `json:"menuItemID"`
		Quantity   int   `json:"quantity"`
	}
	selections := make([]wireSelection, 0, len(items))
	for _, it := range items {
		selections = append(selections, wireSelection{MenuItemID: it.MenuItemID, Quantity: it.Quantity})
	}

	req := struct {
		UserID        int64           `json:"userID"`
		AuthToken     string          `json:"authToken"`
		RestaurantID  int64           `json:"restaurantID"`
		TableID       int64           `json:"tableID"`
		MenuItems     []wireSelection `json:"menuItems"`
		Customisation string          `json:"customisation"`
	}{creds.UserID, creds.AuthToken, restaurantID, tableID, selections, customisation}

	var resp struct {
		responseError
		FoodOrderID int64 `json:"foodOrderID"`
	}
	if err := c.post(ctx, "/placeOrder", req, &resp); err != nil {
		return 0, err
	}
	return resp.FoodOrderID, nil
}

// OrderETA returns the backend's estimated time of arrival for an order.
func (c *Client) OrderETA(ctx context.Context, foodOrderID int64) (string, error) {
	req := struct {
		FoodOrderID int64 `json:"foodOrderID"`
	}{foodOrderID}

	var resp struct {
		responseError
		ETA string `json:"eta"`
	}
	if err := c.post(ctx, "/getOrderEta", req, &resp); err != nil {
		return "", err
	}
	return resp.ETA, nil
}

// TableBill returns the unpaid orders for one table.
func (c *Client) TableBill(ctx context.Context, tableID int64) ([]model.Order, error) {
	req := struct {
		TableID int64 `json:"tableID"`
	}{tableID}

	var resp struct {
		responseError
		Orders []wireOrder `json:"orders"`
	}
	if err := c.post(ctx, "/getTableBill", req, &resp); err != nil {
		return nil, err
	}

	orders := make([]model.Order, 0, len(resp.Orders))
	for _, o := range resp.Orders {
		orders = append(orders, o.toModel())
	}
	return orders, nil
}
