package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMovementType_Deltas(t *testing.T) {
	cases := []struct {
		name     string
		mType    MovementType
		quantity int64
		wantQty  int64
		wantRes  int64
	}{
		{"purchase adds quantity", MovementPurchase, 10, 10, 0},
		{"return adds quantity", MovementReturn, 3, 3, 0},
		{"transfer in adds quantity", MovementTransferIn, 5, 5, 0},
		{"consumption releases reservation and stock", MovementConsumption, 4, -4, -4},
		{"transfer out subtracts quantity", MovementTransferOut, 5, -5, 0},
		{"adjustment keeps sign positive", MovementAdjustment, 7, 7, 0},
		{"adjustment keeps sign negative", MovementAdjustment, -7, -7, 0},
		{"reserved only moves reservation", MovementReserved, 2, 0, 2},
		{"unreserved only moves reservation", MovementUnreserved, 2, 0, -2},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			qty, res, err := tc.mType.Deltas(tc.quantity)
			assert.NoError(t, err)
			assert.Equal(t, tc.wantQty, qty)
			assert.Equal(t, tc.wantRes, res)
		})
	}
}

func TestMovementType_Deltas_Unknown(t *testing.T) {
	_, _, err := MovementType("SOMETHING").Deltas(1)
	assert.Error(t, err)
}

func TestMovementType_IsValid(t *testing.T) {
	assert.True(t, MovementPurchase.IsValid())
	assert.True(t, MovementUnreserved.IsValid())
	assert.False(t, MovementType("").IsValid())
	assert.False(t, MovementType("purchase").IsValid())
}

func TestWarehouseStock_Available(t *testing.T) {
	s := WarehouseStock{Quantity: 10, Reserved: 3}
	assert.Equal(t, int64(7), s.Available())

	empty := WarehouseStock{}
	assert.Equal(t, int64(0), empty.Available())
}
