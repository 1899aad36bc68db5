package api

import (
	"context"

	"tablenest/internal/model"
)

// OperatorRestaurantID resolves the restaurant owned by a professional
// account. Non-professional accounts get a backend error.
func (c *Client) OperatorRestaurantID(ctx context.Context, userID int64) (int64, error) {
	req := struct {
		UserID int64 `json:"userID"`
	}{userID}

	var resp struct {
		responseError
		RestaurantID int64 `json:"restaurantID"`
	}
	if err := c.post(ctx, "/getRestaurantID", req, &resp); err != nil {
		return 0, err
	}
	return resp.RestaurantID, nil
}

// Tables returns the tables of the operator's restaurant.
func (c *Client) Tables(ctx context.Context, creds model.Credentials) ([]model.Table, error) {
	req := struct {
		UserID    int64  `json:"userID"`
		AuthToken string `json:"authToken"`
	}{creds.UserID, creds.AuthToken}

	var resp struct {
		responseError
		Tables []struct {
			TableID     int64 `json:"tableID"`
			TableNumber int   `json:"tableNumber"`
			Capacity    int   `json:"capacity"`
		} `json:"tables"`
	}
	if err := c.post(ctx, "/retrieveTables", req, &resp); err != nil {
		return nil, err
	}

	tables := make([]model.Table, 0, len(resp.Tables))
	for _, t := range resp.Tables {
		tables = append(tables, model.Table{TableID: t.TableID, TableNumber: t.TableNumber, Capacity: t.Capacity})
	}
	return tables, nil
}

// CreateTable adds a table to the operator's restaurant.
func (c *Client) CreateTable(ctx context.Context, creds model.Credentials, tableNumber, capacity int) error {
	req := struct {
		UserID      int64  `json:"userID"`
		AuthToken   string `json:"authToken"`
		TableNumber int    `json:"tableNumber"`
		Capacity    int    `json:"capacity"`
	}{creds.UserID, creds.AuthToken, tableNumber, capacity}

	var resp responseError
	return c.post(ctx, "/createTable", req, &resp)
}

// EditTable updates a table's number and capacity.
func (c *Client) EditTable(ctx context.Context, creds model.Credentials, tableID int64, tableNumber, capacity int) error {
	req := struct {
		UserID      int64  `json:"userID"`
		AuthToken   string `json:"authToken"`
		TableID     int64  `json:"tableID"`
		TableNumber int    `json:"tableNumber"`
		Capacity    int    `json:"capacity"`
	}{creds.UserID, creds.AuthToken, tableID, tableNumber, capacity}

	var resp responseError
	return c.post(ctx, "/editTable", req, &resp)
}

// DeleteTable removes a table.
func (c *Client) DeleteTable(ctx context.Context, creds model.Credentials, tableID int64) error {
	req := struct {
		UserID    int64  `json:"userID"`
		AuthToken string `json:"authToken"`
		TableID   int64  `json:"tableID"`
	}{creds.UserID, creds.AuthToken, tableID}

	var resp responseError
	return c.post(ctx, "/deleteTable", req, &resp)
}

// SaveMenuItem creates a menu item, or replaces an existing one when
// input.ChangeExistingID is set.
func (c *Client) SaveMenuItem(ctx context.Context, creds model.Credentials, input model.MenuItemInput) error {
	req := struct {
		UserID           int64   `json:"userID"`
		AuthToken        string  `json:"authToken"`
		RestaurantID     int64   `json:"restaurantID"`
		Name             string  `json:"name"`
		Description      string  `json:"description"`
		Price            float64 `json:"price"`
		Calories         int     `json:"calories"`
		MenuSection      string  `json:"menuSection"`
		ChangeExistingID *int64  `json:"changeExistingID"`
	}{
		creds.UserID, creds.AuthToken, input.RestaurantID,
		input.Name, input.Description, input.Price, input.Calories,
		input.MenuSection, input.ChangeExistingID,
	}

	var resp responseError
	return c.post(ctx, "/addMenuItem", req, &resp)
}

// DeleteMenuItem removes a menu item.
func (c *Client) DeleteMenuItem(ctx context.Context, creds model.Credentials, menuItemID int64) error {
	req := struct {
		UserID     int64  `json:"userID"`
		AuthToken  string `json:"authToken"`
		MenuItemID int64  `json:"menuItemID"`
	}{creds.UserID, creds.AuthToken, menuItemID}

	var resp responseError
	return c.post(ctx, "/deleteMenuItem", req, &resp)
}

// SetOpeningPeriods replaces the restaurant's opening hours.
func (c *Client) SetOpeningPeriods(ctx context.Context, creds model.Credentials, periods []model.OpeningPeriod) error {
	wire := make([]wireOpeningPeriod, 0, len(periods))
	for _, p := range periods {
		wire = append(wire, wireOpeningPeriod{Day: p.Day, OpeningTime: p.OpeningTime, ClosingTime: p.ClosingTime})
	}

	req := struct {
		UserID         int64               `json:"userID"`
		AuthToken      string              `json:"authToken"`
		OpeningPeriods []wireOpeningPeriod `json:"openingPeriods"`
	}{creds.UserID, creds.AuthToken, wire}

	var resp responseError
	return c.post(ctx, "/setOpeningPeriods", req, &resp)
}

// UpdateRestaurant updates the restaurant's public profile.
func (c *Client) UpdateRestaurant(ctx context.Context, creds model.Credentials, name, description, category string) error {
	req := struct {
		UserID      int64  `json:"userID"`
		AuthToken   string `json:"authToken"`
		Name        string `json:"name"`
		Description string `json:"description"`
		Category    string `json:"category"`
	}{creds.UserID, creds.AuthToken, name, description, category}

	var resp responseError
	return c.post(ctx, "/updateRestaurant", req, &resp)
}
