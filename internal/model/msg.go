package model

import "tablenest/internal/nav"

// Bubble Tea message types

// ErrorMsg represents an error message.
type ErrorMsg struct {
	Err error
}

// NavigateMsg asks the root model to push a view onto the history and
// make it current.
type NavigateMsg struct {
	View nav.View
}

// NavigateBackMsg asks the root model to return to the previous view.
type NavigateBackMsg struct{}

// NearbyLoadedMsg is sent when the home screen's restaurant list is loaded.
type NearbyLoadedMsg struct {
	Restaurants []RestaurantDetails
}

// SearchResultsMsg is sent when a restaurant search completes.
type SearchResultsMsg struct {
	Restaurants []RestaurantDetails
}

// PreviewLoadedMsg is sent when a restaurant's details, menu and reviews
// have been loaded for the preview screen.
type PreviewLoadedMsg struct {
	Details RestaurantDetails
	Menu    []MenuItem
	Reviews []Review
}

// VerificationStartedMsg is sent when the backend has accepted a sign-in
// or sign-up request and emailed a verification code. Email is carried
// along so the session can record it once the code is verified.
type VerificationStartedMsg struct {
	UserID int64
	Email  string
}

// SignedInMsg is sent when code verification succeeds and a session is
// established.
type SignedInMsg struct {
	Creds Credentials
	Email string
}

// SignedOutMsg is sent when the stored session has been cleared.
type SignedOutMsg struct{}

// AccountLoadedMsg is sent when the account details are loaded.
type AccountLoadedMsg struct {
	Account Account
}

// EmailChangedMsg is sent when a change-of-email request succeeds.
type EmailChangedMsg struct {
	NewEmail string
}

// ReviewSavedMsg is sent when a review is successfully submitted.
type ReviewSavedMsg struct {
	RestaurantID int64
}

// MenuLoadedMsg is sent when a restaurant menu is loaded for ordering or
// for the operator's menu editor.
type MenuLoadedMsg struct {
	Menu []MenuItem
}

// OrderPlacedMsg is sent when a food order has been accepted by the backend.
type OrderPlacedMsg struct {
	FoodOrderID int64
}

// AvailabilityLoadedMsg is sent when reservation slots are loaded.
type AvailabilityLoadedMsg struct {
	Times []string
}

// ReservationPlacedMsg is sent when a reservation is confirmed.
type ReservationPlacedMsg struct{}

// ReservationsLoadedMsg is sent when the operator's reservation list is
// loaded.
type ReservationsLoadedMsg struct {
	Reservations []Reservation
}

// ReservationCancelledMsg is sent when a reservation has been cancelled.
type ReservationCancelledMsg struct {
	ReservationID int64
}

// OperatorRestaurantMsg is sent when the control panel has resolved the
// operator's restaurant.
type OperatorRestaurantMsg struct {
	RestaurantID int64
}

// TablesLoadedMsg is sent when the operator's table list is loaded.
type TablesLoadedMsg struct {
	Tables []Table
}

// TableSavedMsg is sent when a table is created or edited.
type TableSavedMsg struct{}

// TableDeletedMsg is sent when a table is deleted.
type TableDeletedMsg struct {
	TableID int64
}

// MenuItemSavedMsg is sent when a menu item is created or edited.
type MenuItemSavedMsg struct{}

// MenuItemDeletedMsg is sent when a menu item is deleted.
type MenuItemDeletedMsg struct {
	MenuItemID int64
}

// OpeningPeriodsSavedMsg is sent when opening hours are saved.
type OpeningPeriodsSavedMsg struct{}

// RestaurantUpdatedMsg is sent when the restaurant profile is updated.
type RestaurantUpdatedMsg struct{}
