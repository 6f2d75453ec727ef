package services

import (
	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/repository"

	"gorm.io/gorm"
)

// Actor is the authenticated caller.
type Actor struct {
	ID   uint
	Role entity.Role
}

type Action string

const (
	ActionRead         Action = "read"
	ActionCancel       Action = "cancel"
	ActionUpdateStatus Action = "update_status"
	ActionClaim        Action = "claim"
	ActionDeliver      Action = "deliver"
	ActionReconcile    Action = "reconcile"
)

// AccessGate decides in which capacity an actor may act on an order.
// Precedence: admin, restaurant staff, customer, driver.
type AccessGate struct {
	Restaurants *repository.RestaurantRepository
}

func NewAccessGate(rests *repository.RestaurantRepository) *AccessGate {
	return &AccessGate{Restaurants: rests}
}

// Authorize returns the capacity granted for action or a FORBIDDEN error
// saying why. Order state is not checked here; that is the state machine's job.
func (g *AccessGate) Authorize(tx *gorm.DB, actor Actor, o *entity.Order, action Action) (entity.Capacity, error) {
	if actor.ID == 0 {
		return "", apperr.New(apperr.Unauthenticated, "authentication required")
	}

	if actor.Role.IsAppAdmin() {
		if action == ActionClaim {
			return "", apperr.New(apperr.Forbidden, "only drivers can claim orders")
		}
		return entity.CapacityAdmin, nil
	}

	switch action {
	case ActionReconcile:
		return "", apperr.New(apperr.Forbidden, "payment reconciliation is restricted to app admins")

	case ActionClaim:
		if actor.Role != entity.RoleDriver {
			return "", apperr.New(apperr.Forbidden, "only drivers can claim orders")
		}
		return entity.CapacityDriver, nil

	case ActionDeliver:
		if actor.Role == entity.RoleDriver && assignedTo(o, actor.ID) {
			return entity.CapacityDriver, nil
		}
		return "", apperr.New(apperr.Forbidden, "order is not assigned to you")
	}

	// read, cancel, update_status
	staff, err := g.isStaff(tx, o.RestaurantID, actor.ID)
	if err != nil {
		return "", err
	}
	if staff {
		return entity.CapacityRestaurant, nil
	}
	if action == ActionUpdateStatus {
		return "", apperr.New(apperr.Forbidden, "not staff of this restaurant")
	}

	if o.UserID == actor.ID {
		return entity.CapacityCustomer, nil
	}

	if action == ActionRead && actor.Role == entity.RoleDriver {
		if assignedTo(o, actor.ID) || (o.DriverID == nil && o.Status == entity.StatusReady) {
			return entity.CapacityDriver, nil
		}
	}
	return "", apperr.New(apperr.Forbidden, "you do not have access to this order")
}

func (g *AccessGate) isStaff(tx *gorm.DB, restID, userID uint) (bool, error) {
	owner, err := g.Restaurants.IsOwnedBy(tx, restID, userID)
	if err != nil || owner {
		return owner, err
	}
	return g.Restaurants.IsActiveEmployee(tx, restID, userID)
}

func assignedTo(o *entity.Order, driverID uint) bool {
	return o.DriverID != nil && *o.DriverID == driverID
}
