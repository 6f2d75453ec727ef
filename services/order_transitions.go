// services/order_transitions.go
package services

import (
	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
)

// allowed next states per capacity. Admin is handled separately: any
// status except the current one and REFUNDED.
var transitions = map[entity.Capacity]map[entity.OrderStatus][]entity.OrderStatus{
	entity.CapacityRestaurant: {
		entity.StatusPending:   {entity.StatusAccepted, entity.StatusCancelled},
		entity.StatusAccepted:  {entity.StatusPreparing, entity.StatusCancelled},
		entity.StatusPreparing: {entity.StatusReady, entity.StatusCancelled},
	},
	entity.CapacityDriver: {
		entity.StatusReady:    {entity.StatusOnTheWay},
		entity.StatusOnTheWay: {entity.StatusDelivered},
	},
	entity.CapacityCustomer: {
		entity.StatusPending: {entity.StatusCancelled},
	},
}

func CanTransition(capacity entity.Capacity, from, to entity.OrderStatus) bool {
	if from.IsTerminal() || !to.Valid() {
		return false
	}
	if capacity == entity.CapacityAdmin {
		return to != from && to != entity.StatusRefunded
	}
	for _, next := range transitions[capacity][from] {
		if next == to {
			return true
		}
	}
	return false
}

// AllowedNext lists the statuses capacity may move an order in from to.
func AllowedNext(capacity entity.Capacity, from entity.OrderStatus) []entity.OrderStatus {
	var out []entity.OrderStatus
	for _, s := range entity.OrderStatuses {
		if CanTransition(capacity, from, s) {
			out = append(out, s)
		}
	}
	return out
}

func CheckTransition(capacity entity.Capacity, from, to entity.OrderStatus) error {
	if CanTransition(capacity, from, to) {
		return nil
	}
	if from.IsTerminal() {
		return apperr.Newf(apperr.InvalidTransition, "order is %s and can no longer change", from)
	}
	if to == entity.StatusRefunded {
		return apperr.New(apperr.InvalidTransition, "REFUNDED is set through payment reconciliation")
	}
	return apperr.Newf(apperr.InvalidTransition, "%s cannot move order from %s to %s", capacityLabel(capacity), from, to)
}

func capacityLabel(c entity.Capacity) string {
	switch c {
	case entity.CapacityRestaurant:
		return "restaurant"
	case entity.CapacityDriver:
		return "driver"
	case entity.CapacityCustomer:
		return "customer"
	case entity.CapacityAdmin:
		return "admin"
	}
	return "actor"
}
