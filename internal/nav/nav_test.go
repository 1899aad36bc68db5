package nav

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStackStartsAtHome(t *testing.T) {
	s := NewStack()

	assert.Equal(t, View{Name: Home}, s.Current())
	assert.Equal(t, 1, s.Depth())
}

func TestPushMakesViewCurrent(t *testing.T) {
	s := NewStack()

	s.Push(ToParam(RestaurantPreview, "12"))
	s.Push(To(SignIn))

	assert.Equal(t, To(SignIn), s.Current())
	assert.Equal(t, 3, s.Depth())
}

func TestBackReturnsToPreviousView(t *testing.T) {
	s := NewStack()
	views := []View{
		ToParam(RestaurantPreview, "12"),
		ToParam(PlaceFoodOrder, "12"),
		ToParam(OrderStatus, "44"),
	}
	for _, v := range views {
		s.Push(v)
	}

	// Exactly len(views) calls to Back walk all the way home, in reverse order.
	for i := len(views) - 2; i >= 0; i-- {
		assert.Equal(t, views[i], s.Back())
	}
	assert.Equal(t, To(Home), s.Back())
	assert.Equal(t, To(Home), s.Current())
}

func TestBackAtInitialEntryIsNoOp(t *testing.T) {
	s := NewStack()

	got := s.Back()

	assert.Equal(t, To(Home), got)
	assert.Equal(t, 1, s.Depth())

	// Repeated calls stay put.
	s.Back()
	s.Back()
	assert.Equal(t, To(Home), s.Current())
	assert.Equal(t, 1, s.Depth())
}

func TestParseRoundTrip(t *testing.T) {
	tests := []struct {
		encoded string
		want    View
	}{
		{"home", To(Home)},
		{"viewRestaurantDetails:7", ToParam(RestaurantPreview, "7")},
		{"verifyCode:1042", ToParam(VerifyCode, "1042")},
		{"orderQueue", To(OrderQueue)},
	}

	for _, tt := range tests {
		got := Parse(tt.encoded)
		require.Equal(t, tt.want, got, "parse %q", tt.encoded)
		assert.Equal(t, tt.encoded, got.String())
	}
}

func TestParseUnknownNameIsNotRejected(t *testing.T) {
	v := Parse("somethingNew:42")

	assert.Equal(t, Name("somethingNew"), v.Name)
	assert.Equal(t, "42", v.Param)
}
