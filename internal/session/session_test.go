package session_test

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MrJamesThe3rd/tally/internal/session"
)

func TestSession_Defaults(t *testing.T) {
	s := session.New()

	state := s.Current()
	assert.Nil(t, state.User)
	assert.Equal(t, "€", state.CurrencySymbol)
}

func TestSession_NotifiesOnChange(t *testing.T) {
	s := session.New()

	var got []session.State

	unsubscribe := s.Subscribe(func(state session.State) {
		got = append(got, state)
	})
	defer unsubscribe()

	userID := uuid.New()
	s.SetUser(&session.User{ID: userID, Email: "alice@example.com"})
	s.SetCurrencySymbol("$")

	require.Len(t, got, 2)
	require.NotNil(t, got[0].User)
	assert.Equal(t, userID, got[0].User.ID)
	assert.Equal(t, "€", got[0].CurrencySymbol)
	assert.Equal(t, "$", got[1].CurrencySymbol)

	s.SetUser(nil)
	require.Len(t, got, 3)
	assert.Nil(t, got[2].User)
	assert.Equal(t, "$", got[2].CurrencySymbol, "sign-out keeps the preference")
}

func TestSession_EmptySymbolResetsDefault(t *testing.T) {
	s := session.New()

	s.SetCurrencySymbol("$")
	s.SetCurrencySymbol("")

	assert.Equal(t, "€", s.Current().CurrencySymbol)
}

func TestSession_UnsubscribeIdempotent(t *testing.T) {
	s := session.New()

	calls := 0
	unsubscribe := s.Subscribe(func(session.State) { calls++ })

	other := 0
	otherUnsub := s.Subscribe(func(session.State) { other++ })
	defer otherUnsub()

	s.SetCurrencySymbol("$")

	unsubscribe()
	unsubscribe() // second call is a no-op

	s.SetCurrencySymbol("£")

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, other, "remaining listener still notified")
}

func TestSession_ListenerMayUnsubscribeItself(t *testing.T) {
	s := session.New()

	calls := 0

	var unsubscribe func()

	unsubscribe = s.Subscribe(func(session.State) {
		calls++
		unsubscribe()
	})

	s.SetCurrencySymbol("$")
	s.SetCurrencySymbol("£")

	assert.Equal(t, 1, calls)
}
