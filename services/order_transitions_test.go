package services

import (
	"testing"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/stretchr/testify/assert"
)

var capacities = []entity.Capacity{
	entity.CapacityCustomer, entity.CapacityRestaurant, entity.CapacityDriver, entity.CapacityAdmin,
}

func TestAllowedNext(t *testing.T) {
	tests := []struct {
		capacity entity.Capacity
		from     entity.OrderStatus
		want     []entity.OrderStatus
	}{
		{entity.CapacityRestaurant, entity.StatusPending, []entity.OrderStatus{entity.StatusAccepted, entity.StatusCancelled}},
		{entity.CapacityRestaurant, entity.StatusAccepted, []entity.OrderStatus{entity.StatusPreparing, entity.StatusCancelled}},
		{entity.CapacityRestaurant, entity.StatusPreparing, []entity.OrderStatus{entity.StatusReady, entity.StatusCancelled}},
		{entity.CapacityRestaurant, entity.StatusReady, nil},
		{entity.CapacityDriver, entity.StatusReady, []entity.OrderStatus{entity.StatusOnTheWay}},
		{entity.CapacityDriver, entity.StatusOnTheWay, []entity.OrderStatus{entity.StatusDelivered}},
		{entity.CapacityDriver, entity.StatusPending, nil},
		{entity.CapacityCustomer, entity.StatusPending, []entity.OrderStatus{entity.StatusCancelled}},
		{entity.CapacityCustomer, entity.StatusAccepted, nil},
		{entity.CapacityAdmin, entity.StatusOnTheWay, []entity.OrderStatus{
			entity.StatusPending, entity.StatusAccepted, entity.StatusPreparing, entity.StatusReady,
			entity.StatusDelivered, entity.StatusCancelled,
		}},
	}
	for _, tt := range tests {
		t.Run(string(tt.capacity)+"/"+string(tt.from), func(t *testing.T) {
			assert.Equal(t, tt.want, AllowedNext(tt.capacity, tt.from))
		})
	}
}

func TestTerminalStatesRejectEverything(t *testing.T) {
	for _, from := range []entity.OrderStatus{entity.StatusDelivered, entity.StatusCancelled, entity.StatusRefunded} {
		for _, c := range capacities {
			for _, to := range entity.OrderStatuses {
				err := CheckTransition(c, from, to)
				assert.True(t, apperr.Is(err, apperr.InvalidTransition), "%s %s->%s", c, from, to)
			}
		}
	}
}

func TestCustomerCannotCancelOnTheWay(t *testing.T) {
	err := CheckTransition(entity.CapacityCustomer, entity.StatusOnTheWay, entity.StatusCancelled)
	assert.True(t, apperr.Is(err, apperr.InvalidTransition))
}

func TestRefundedOnlyThroughReconciliation(t *testing.T) {
	for _, c := range capacities {
		assert.False(t, CanTransition(c, entity.StatusDelivered, entity.StatusRefunded))
		assert.False(t, CanTransition(c, entity.StatusPending, entity.StatusRefunded))
	}
}

func TestUnknownTargetRejected(t *testing.T) {
	assert.False(t, CanTransition(entity.CapacityAdmin, entity.StatusPending, "SHIPPED"))
}
