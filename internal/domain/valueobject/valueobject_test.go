package valueobject

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRequestStatus_Transitions(t *testing.T) {
	for _, s := range []RequestStatus{RequestStatusReceived, RequestStatusOfferMade, RequestStatusOpen} {
		assert.True(t, s.AcceptsOffers(), s)
		assert.True(t, s.CanTransitionTo(RequestStatusOfferAccepted), s)
	}
	for _, s := range []RequestStatus{RequestStatusOfferAccepted, RequestStatusCompleted, RequestStatusCancelled} {
		assert.False(t, s.AcceptsOffers(), s)
		assert.False(t, s.CanTransitionTo(RequestStatusOfferAccepted), s)
	}
	assert.True(t, RequestStatusOfferAccepted.CanTransitionTo(RequestStatusCompleted))
	assert.True(t, RequestStatusOfferAccepted.HasAssignedArtisan())
	assert.False(t, RequestStatusReceived.HasAssignedArtisan())
}

func TestParseStatuses(t *testing.T) {
	s, err := NewRequestStatus("Offer Accepted")
	require.NoError(t, err)
	assert.Equal(t, RequestStatusOfferAccepted, s)

	_, err = NewRequestStatus("offer accepted")
	assert.Error(t, err)

	o, err := NewOfferStatus("Pending")
	require.NoError(t, err)
	assert.Equal(t, OfferStatusPending, o)

	_, err = NewOfferStatus("Withdrawn")
	assert.Error(t, err)
}

func TestMoney(t *testing.T) {
	m, err := NewMoney(12.346)
	require.NoError(t, err)
	assert.Equal(t, "12.35", m.String())

	_, err = NewMoney(-1)
	assert.Error(t, err)
	_, err = NewMoney(math.NaN())
	assert.Error(t, err)
	_, err = NewMoney(MaxAmount + 1)
	assert.Error(t, err)

	none, err := NewOptionalMoney(nil)
	require.NoError(t, err)
	assert.Nil(t, none)

	cheap, _ := NewMoney(10)
	dear, _ := NewMoney(20)
	assert.True(t, cheap.Less(dear))
	assert.False(t, dear.Less(cheap))
}
