package ads

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type PremiumMock struct{ mock.Mock }

func (m *PremiumMock) IsPremium(ctx context.Context, clientID string) (bool, error) {
	args := m.Called(ctx, clientID)
	return args.Bool(0), args.Error(1)
}

func TestSlots_FreeClient(t *testing.T) {
	premium := new(PremiumMock)
	premium.On("IsPremium", mock.Anything, "free-client").Return(false, nil)

	p, err := NewService("ca-pub-1", premium).Slots(context.Background(), "emi", "free-client")
	require.NoError(t, err)
	assert.False(t, p.AdFree)
	require.Len(t, p.Slots, 4)
	assert.Equal(t, SlotHeader, p.Slots[0].Slot)
	assert.Equal(t, "ca-pub-1", p.Slots[0].ClientID)
	assert.Equal(t, "vertical", p.Slots[1].Format)
}

func TestSlots_PremiumClient(t *testing.T) {
	premium := new(PremiumMock)
	premium.On("IsPremium", mock.Anything, "paid").Return(true, nil)

	p, err := NewService("ca-pub-1", premium).Slots(context.Background(), "sip", "paid")
	require.NoError(t, err)
	assert.True(t, p.AdFree)
	assert.Empty(t, p.Slots)
}

func TestSlots_NoAdAccount(t *testing.T) {
	premium := new(PremiumMock)
	premium.On("IsPremium", mock.Anything, mock.Anything).Return(false, nil)

	p, err := NewService("", premium).Slots(context.Background(), "fd", "c")
	require.NoError(t, err)
	assert.False(t, p.AdFree)
	assert.NotNil(t, p.Slots)
	assert.Empty(t, p.Slots)
}

func TestSlots_Error(t *testing.T) {
	premium := new(PremiumMock)
	premium.On("IsPremium", mock.Anything, mock.Anything).Return(false, errors.New("redis down"))

	_, err := NewService("ca-pub-1", premium).Slots(context.Background(), "fd", "c")
	assert.Error(t, err)
}
