package ui

import (
	"path/filepath"
	"testing"

	"tablenest/internal/api"
	"tablenest/internal/model"
	"tablenest/internal/nav"
	"tablenest/internal/session"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keyMsg(s string) tea.KeyMsg {
	return tea.KeyMsg(tea.Key{Type: tea.KeyRunes, Runes: []rune(s)})
}

func newTestApp(t *testing.T, signedIn bool) Model {
	t.Helper()
	store, err := session.Open(filepath.Join(t.TempDir(), "session.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	var creds model.Credentials
	var email string
	if signedIn {
		creds = model.Credentials{UserID: 7, AuthToken: "tok"}
		email = "amy@example.com"
	}
	return New(api.NewClient("http://127.0.0.1:0"), store, creds, email, signedIn)
}

func apply(t *testing.T, m Model, msg tea.Msg) Model {
	t.Helper()
	next, _ := m.Update(msg)
	out, ok := next.(Model)
	require.True(t, ok)
	return out
}

func TestAppStartsAtHome(t *testing.T) {
	m := newTestApp(t, false)

	assert.Equal(t, nav.To(nav.Home), m.history.Current())
	assert.IsType(t, &homeScreen{}, m.active)
}

func TestNavigatePushesView(t *testing.T) {
	m := newTestApp(t, false)

	m = apply(t, m, model.NavigateMsg{View: nav.ToParam(nav.RestaurantPreview, "12")})

	assert.Equal(t, 2, m.history.Depth())
	assert.Equal(t, nav.RestaurantPreview, m.history.Current().Name)
	assert.IsType(t, &previewScreen{}, m.active)
}

func TestBackReturnsToPreviousView(t *testing.T) {
	m := newTestApp(t, false)
	m = apply(t, m, model.NavigateMsg{View: nav.ToParam(nav.RestaurantPreview, "12")})

	m = apply(t, m, model.NavigateBackMsg{})

	assert.Equal(t, 1, m.history.Depth())
	assert.IsType(t, &homeScreen{}, m.active)
}

func TestBackAtHomeIsNoOp(t *testing.T) {
	m := newTestApp(t, false)
	before := m.active

	m = apply(t, m, model.NavigateBackMsg{})

	assert.Equal(t, 1, m.history.Depth())
	assert.Same(t, before, m.active)
}

func TestAuthRequiredViewRedirectsToSignIn(t *testing.T) {
	m := newTestApp(t, false)

	m = apply(t, m, model.NavigateMsg{View: nav.To(nav.OrderQueue)})

	assert.Equal(t, nav.To(nav.SignIn), m.history.Current())
	assert.IsType(t, &signInScreen{}, m.active)
}

func TestAuthRequiredViewOpensWhenSignedIn(t *testing.T) {
	m := newTestApp(t, true)

	m = apply(t, m, model.NavigateMsg{View: nav.To(nav.OrderQueue)})

	assert.Equal(t, nav.To(nav.OrderQueue), m.history.Current())
	assert.IsType(t, &orderQueueScreen{}, m.active)
}

func TestUnknownViewFallsBackToHome(t *testing.T) {
	m := newTestApp(t, false)

	m = apply(t, m, model.NavigateMsg{View: nav.Parse("somethingNew:42")})

	assert.IsType(t, &homeScreen{}, m.active)
}

func TestBadParamFallsBackToHome(t *testing.T) {
	m := newTestApp(t, false)

	m = apply(t, m, model.NavigateMsg{View: nav.ToParam(nav.RestaurantPreview, "banana")})

	assert.IsType(t, &homeScreen{}, m.active)
}

func TestVerificationStartedOpensVerifyScreen(t *testing.T) {
	m := newTestApp(t, false)
	m = apply(t, m, model.NavigateMsg{View: nav.To(nav.SignIn)})

	m = apply(t, m, model.VerificationStartedMsg{UserID: 31, Email: "amy@example.com"})

	assert.Equal(t, nav.ToParam(nav.VerifyCode, "31"), m.history.Current())
	verify, ok := m.active.(*verifyScreen)
	require.True(t, ok)
	assert.Equal(t, "amy@example.com", verify.email)
	assert.Equal(t, int64(31), verify.userID)
}

func TestSignedInStoresSessionAndOpensAccount(t *testing.T) {
	m := newTestApp(t, false)
	creds := model.Credentials{UserID: 31, AuthToken: "token-xyz"}

	next, cmd := m.Update(model.SignedInMsg{Creds: creds, Email: "amy@example.com"})
	m = next.(Model)

	assert.True(t, m.signedIn)
	assert.Equal(t, creds, m.creds)
	assert.Equal(t, nav.To(nav.AccountDetails), m.history.Current())
	require.NotNil(t, cmd)

	// Drain the batch so the session write actually runs.
	drainCmd(cmd)
	got, email, ok, err := m.store.Load()
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, creds, got)
	assert.Equal(t, "amy@example.com", email)
}

func TestSignedOutClearsSession(t *testing.T) {
	m := newTestApp(t, true)
	require.NoError(t, m.store.Save(m.creds, m.email))

	next, cmd := m.Update(model.SignedOutMsg{})
	m = next.(Model)

	assert.False(t, m.signedIn)
	assert.Equal(t, model.Credentials{}, m.creds)
	assert.Equal(t, nav.To(nav.Home), m.history.Current())

	drainCmd(cmd)
	_, _, ok, err := m.store.Load()
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOrderPlacedOpensStatusScreen(t *testing.T) {
	m := newTestApp(t, true)

	m = apply(t, m, model.OrderPlacedMsg{FoodOrderID: 88})

	assert.Equal(t, nav.ToParam(nav.OrderStatus, "88"), m.history.Current())
	status, ok := m.active.(*orderStatusScreen)
	require.True(t, ok)
	assert.Equal(t, int64(88), status.orderID)
}

func TestRebuildingQueueScreenBumpsGeneration(t *testing.T) {
	m := newTestApp(t, true)
	m = apply(t, m, model.NavigateMsg{View: nav.To(nav.OrderQueue)})
	first := m.active.(*orderQueueScreen)

	m = apply(t, m, model.NavigateBackMsg{})
	m = apply(t, m, model.NavigateMsg{View: nav.To(nav.OrderQueue)})
	second := m.active.(*orderQueueScreen)

	// A leftover timer from the first visit must not drive the second
	// one.
	assert.NotEqual(t, first.gen, second.gen)
	cmd := second.update(queueTickMsg{gen: first.gen})
	assert.Nil(t, cmd)
}

// drainCmd runs a command tree synchronously, discarding the messages.
func drainCmd(cmd tea.Cmd) {
	if cmd == nil {
		return
	}
	if batch, ok := cmd().(tea.BatchMsg); ok {
		for _, c := range batch {
			drainCmd(c)
		}
	}
}
