package model

// Credentials identifies a signed-in user for authenticated backend
// calls. Components that need to authenticate receive this value
// explicitly; nothing reads it from ambient state.
type Credentials struct {
	UserID    int64
	AuthToken string
}

// Valid reports whether the credentials can be sent to the backend.
func (c Credentials) Valid() bool {
	return c.UserID != 0 && c.AuthToken != ""
}

// RestaurantDetails holds the public profile of a restaurant.
type RestaurantDetails struct {
	RestaurantID   int64
	Name           string
	Description    string
	Category       string
	OpeningPeriods []OpeningPeriod
}

// OpeningPeriod is one day's opening hours.
type OpeningPeriod struct {
	Day         int // 0 = Monday
	OpeningTime string
	ClosingTime string
}

// MenuItem is one entry on a restaurant's menu.
type MenuItem struct {
	MenuItemID  int64
	Name        string
	Description string
	Price       float64
	Calories    int
	MenuSection string
}

// OrderItem is one line of a placed order as the backend reports it.
type OrderItem struct {
	Name     string
	Quantity int
	Price    float64
}

// OrderSelection is one line of an order being composed locally, before
// it is submitted.
type OrderSelection struct {
	MenuItemID int64
	Quantity   int
}

// Order is one placed food order. Confirmed is tri-state: nil while the
// operator has not yet decided, then true (accepted) or false (rejected).
// The backend assigns FoodOrderID monotonically.
type Order struct {
	FoodOrderID int64
	TableID     int64
	Confirmed   *bool
	Fulfilled   bool
	Paid        bool
	Items       []OrderItem
}

// Review is one customer review of a restaurant.
type Review struct {
	Title  string
	Body   string
	Rating int // out of 5
}

// Reservation is one table reservation.
type Reservation struct {
	ReservationID int64
	TableID       int64
	Datetime      string // ISO 8601
	Persons       int
	UserName      string
	UserEmail     string
}

// Table is one physical table at a restaurant.
type Table struct {
	TableID     int64
	TableNumber int
	Capacity    int
}

// Account holds the signed-in user's profile. Professional accounts own
// a restaurant and can open the control panel.
type Account struct {
	Name         string
	Email        string
	Professional bool
}

// MenuItemInput is the payload for creating or editing a menu item.
// ChangeExistingID is nil for a new item.
type MenuItemInput struct {
	RestaurantID     int64
	Name             string
	Description      string
	Price            float64
	Calories         int
	MenuSection      string
	ChangeExistingID *int64
}
