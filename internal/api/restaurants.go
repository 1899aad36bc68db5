package api

import (
	"context"

	"tablenest/internal/model"
)

type wireOpeningPeriod struct {
	Day         int    `json:"day"`
	OpeningTime string `json:"openingTime"`
	ClosingTime string `json:"closingTime"`
}

type wireDetails struct {
	Name           string              `json:"name"`
	Description    string              `json:"description"`
	Category       string              `json:"category"`
	OpeningPeriods []wireOpeningPeriod `json:"openingPeriods"`
}

func (w wireDetails) toModel(restaurantID int64) model.RestaurantDetails {
	periods := make([]model.OpeningPeriod, 0, len(w.OpeningPeriods))
	for _, p := range w.OpeningPeriods {
		periods = append(periods, model.OpeningPeriod{Day: p.Day, OpeningTime: p.OpeningTime, ClosingTime: p.ClosingTime})
	}
	return model.RestaurantDetails{
		RestaurantID:   restaurantID,
		Name:           w.Name,
		Description:    w.Description,
		Category:       w.Category,
		OpeningPeriods: periods,
	}
}

// RestaurantDetails returns the public profile of one restaurant.
func (c *Client) RestaurantDetails(ctx context.Context, restaurantID int64) (model.RestaurantDetails, error) {
	req := struct {
		RestaurantID int64 `json:"restaurantID"`
	}{restaurantID}

	var resp struct {
		responseError
		Details wireDetails `json:"details"`
	}
	if err := c.post(ctx, "/restaurantDetails", req, &resp); err != nil {
		return model.RestaurantDetails{}, err
	}
	return resp.Details.toModel(restaurantID), nil
}

// NearbyRestaurants returns the identifiers of restaurants near the
// given coordinates. With random set (and nil coordinates) the backend
// picks an arbitrary selection instead.
func (c *Client) NearbyRestaurants(ctx context.Context, latitude, longitude *float64, random bool) ([]int64, error) {
	req := struct {
		Latitude  *float64 `json:"latitude"`
		Longitude *float64 `json:"longitude"`
		Random    bool     `json:"random"`
	}{latitude, longitude, random}

	var resp struct {
		responseError
		Restaurants []int64 `json:"restaurants"`
	}
	if err := c.post(ctx, "/nearbyRestaurants", req, &resp); err != nil {
		return nil, err
	}
	return resp.Restaurants, nil
}

// SearchRestaurants returns the identifiers of restaurants matching a
// search term.
func (c *Client) SearchRestaurants(ctx context.Context, searchTerm string) ([]int64, error) {
	req := struct {
		SearchTerm string `json:"searchTerm"`
	}{searchTerm}

	var resp struct {
		responseError
		Restaurants []struct {
			RestaurantID int64 `json:"restaurantID"`
		} `json:"restaurants"`
	}
	if err := c.post(ctx, "/restaurantSearch", req, &resp); err != nil {
		return nil, err
	}

	ids := make([]int64, 0, len(resp.Restaurants))
	for _, r := range resp.Restaurants {
		ids = append(ids, r.RestaurantID)
	}
	return ids, nil
}

// Menu returns a restaurant's menu.
func (c *Client) Menu(ctx context.Context, restaurantID int64) ([]model.MenuItem, error) {
	req := struct {
		RestaurantID int64 `json:"restaurantID"`
	}{restaurantID}

	var resp struct {
		responseError
		Menu []struct {
			MenuItemID  int64   `json:"menuItemID"`
			Name        string  `json:"name"`
			Description string  `json:"description"`
			Price       float64 `json:"price"`
			Calories    int     `json:"calories"`
			MenuSection string  `json:"menuSection"`
		} `json:"menu"`
	}
	if err := c.post(ctx, "/getMenu", req, &resp); err != nil {
		return nil, err
	}

	menu := make([]model.MenuItem, 0, len(resp.Menu))
	for _, it := range resp.Menu {
		menu = append(menu, model.MenuItem{
			MenuItemID:  it.MenuItemID,
			Name:        it.Name,
			Description: it.Description,
			Price:       it.Price,
			Calories:    it.Calories,
			MenuSection: it.MenuSection,
		})
	}
	return menu, nil
}

// Reviews returns the customer reviews for a restaurant.
func (c *Client) Reviews(ctx context.Context, restaurantID int64) ([]model.Review, error) {
	req := struct {
		RestaurantID int64 `json:"restaurantID"`
	}{restaurantID}

	var resp struct {
		responseError
		Reviews []struct {
			Title  string `json:"title"`
			Body   string `json:"body"`
			Rating int    `json:"rating"`
		} `json:"reviews"`
	}
	if err := c.post(ctx, "/getReviews", req, &resp); err != nil {
		return nil, err
	}

	reviews := make([]model.Review, 0, len(resp.Reviews))
	for _, r := range resp.Reviews {
		reviews = append(reviews, model.Review{Title: r.Title, Body: r.Body, Rating: r.Rating})
	}
	return reviews, nil
}

// SubmitReview posts a review of a restaurant.
func (c *Client) SubmitReview(ctx context.Context, creds model.Credentials, restaurantID int64, review model.Review) error {
	req := struct {
		UserID       int64  `json:"userID"`
		AuthToken    string `json:"authToken"`
		RestaurantID int64  `json:"restaurantID"`
		Title        string `json:"title"`
		Body         string `json:"body"`
		Rating       int    `json:"rating"`
	}{creds.UserID, creds.AuthToken, restaurantID, review.Title, review.Body, review.Rating}

	var resp responseError
	return c.post(ctx, "/makeReview", req, &resp)
}
