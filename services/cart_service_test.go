package services

import (
	"context"
	"sync"
	"testing"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCartAddAndMerge(t *testing.T) {
	e := newEnv(t)
	s := e.shop(t)
	ctx := context.Background()
	second := e.dish(t, s.rest.ID, "100.50")

	snap, err := e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 1, Notes: "no onion"})
	require.NoError(t, err)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, s.rest.ID, snap.RestaurantID)
	assert.Equal(t, s.rest.Name, snap.RestaurantName)

	// same dish again: quantity grows, notes replaced
	snap, err = e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 2, Notes: "extra spicy"})
	require.NoError(t, err)
	require.Len(t, snap.Lines, 1)
	assert.Equal(t, 3, snap.Lines[0].Quantity)
	assert.Equal(t, "extra spicy", snap.Lines[0].Notes)

	// no notes given: previous notes kept
	snap, err = e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, "extra spicy", snap.Lines[0].Notes)

	snap, err = e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: second.ID, RestaurantID: s.rest.ID, Quantity: 2})
	require.NoError(t, err)
	require.Len(t, snap.Lines, 2)
	assertMoney(t, "2001.00", snap.Subtotal) // 4*450 + 2*100.50
	assert.Equal(t, 6, snap.ItemCount)
}

func TestCartCrossRestaurantConflictLeavesCartUntouched(t *testing.T) {
	e := newEnv(t)
	s := e.shop(t)
	ctx := context.Background()
	otherRest := e.restaurant(t, s.owner.ID, "0", "0")
	otherDish := e.dish(t, otherRest.ID, "10")

	_, err := e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 2})
	require.NoError(t, err)
	before, err := e.carts.Get(ctx, s.customer.ID)
	require.NoError(t, err)

	_, err = e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: otherDish.ID, RestaurantID: otherRest.ID, Quantity: 1})
	require.Error(t, err)
	assert.Equal(t, apperr.Conflict, apperr.KindOf(err))

	var ae *apperr.Error
	require.ErrorAs(t, err, &ae)
	existing, ok := ae.Details["existingRestaurant"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, s.rest.ID, existing["id"])
	assert.Equal(t, s.rest.Name, existing["name"])

	after, err := e.carts.Get(ctx, s.customer.ID)
	require.NoError(t, err)
	require.Len(t, after.Lines, len(before.Lines))
	assert.Equal(t, before.RestaurantID, after.RestaurantID)
	assert.Equal(t, 2, after.Lines[0].Quantity)

	// clear then add from the other restaurant works
	require.NoError(t, e.carts.Clear(ctx, s.customer.ID))
	snap, err := e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: otherDish.ID, RestaurantID: otherRest.ID, Quantity: 1})
	require.NoError(t, err)
	assert.Equal(t, otherRest.ID, snap.RestaurantID)
}

func TestCartAddValidation(t *testing.T) {
	e := newEnv(t)
	s := e.shop(t)
	ctx := context.Background()
	otherRest := e.restaurant(t, s.owner.ID, "0", "0")
	unavailable := e.dish(t, s.rest.ID, "5")
	require.NoError(t, e.db.Model(unavailable).Update("is_available", false).Error)

	tests := []struct {
		name string
		in   AddToCartIn
		kind apperr.Kind
	}{
		{"zero quantity", AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 0}, apperr.Validation},
		{"unknown dish", AddToCartIn{DishID: 9999, RestaurantID: s.rest.ID, Quantity: 1}, apperr.NotFound},
		{"dish of another restaurant", AddToCartIn{DishID: s.dish.ID, RestaurantID: otherRest.ID, Quantity: 1}, apperr.Validation},
		{"unavailable dish", AddToCartIn{DishID: unavailable.ID, RestaurantID: s.rest.ID, Quantity: 1}, apperr.Validation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in := tt.in
			_, err := e.carts.Add(ctx, s.customer.ID, &in)
			assert.Equal(t, tt.kind, apperr.KindOf(err))
		})
	}

	snap, err := e.carts.Get(ctx, s.customer.ID)
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)
}

func TestCartUpdateQuantity(t *testing.T) {
	e := newEnv(t)
	s := e.shop(t)
	ctx := context.Background()

	snap, err := e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 1})
	require.NoError(t, err)
	lineID := snap.Lines[0].ID

	snap, err = e.carts.UpdateQuantity(ctx, s.customer.ID, lineID, 5)
	require.NoError(t, err)
	assert.Equal(t, 5, snap.Lines[0].Quantity)

	// someone else's line
	other := e.user(t, entity.RoleUser)
	_, err = e.carts.UpdateQuantity(ctx, other.ID, lineID, 2)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	snap, err = e.carts.UpdateQuantity(ctx, s.customer.ID, lineID, 0)
	require.NoError(t, err)
	assert.Empty(t, snap.Lines)
	assert.Zero(t, snap.RestaurantID)

	_, err = e.carts.RemoveItem(ctx, s.customer.ID, lineID)
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))

	// the removed dish can be added again
	_, err = e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 1})
	assert.NoError(t, err)
}

func TestCartWritesRequireUserRow(t *testing.T) {
	e := newEnv(t)
	s := e.shop(t)
	ctx := context.Background()

	_, err := e.carts.Add(ctx, 9999, &AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 1})
	assert.Equal(t, apperr.NotFound, apperr.KindOf(err))
	assert.Equal(t, apperr.NotFound, apperr.KindOf(e.carts.Clear(ctx, 9999)))

	var count int64
	require.NoError(t, e.db.Model(&entity.CartItem{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCartConcurrentAddsKeepOneRestaurant(t *testing.T) {
	e := newEnv(t)
	s := e.shop(t)
	ctx := context.Background()
	other := e.restaurant(t, s.owner.ID, "0", "0")
	roll := e.dish(t, other.ID, "10")

	inputs := []*AddToCartIn{
		{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 1},
		{DishID: roll.ID, RestaurantID: other.ID, Quantity: 1},
	}
	errs := make([]error, len(inputs))
	var wg sync.WaitGroup
	for i, in := range inputs {
		wg.Add(1)
		go func(i int, in *AddToCartIn) {
			defer wg.Done()
			_, errs[i] = e.carts.Add(ctx, s.customer.ID, in)
		}(i, in)
	}
	wg.Wait()

	conflicts := 0
	for _, err := range errs {
		if err != nil {
			assert.Equal(t, apperr.Conflict, apperr.KindOf(err))
			conflicts++
		}
	}
	assert.Equal(t, 1, conflicts)

	var rests int64
	require.NoError(t, e.db.Model(&entity.CartItem{}).Where("user_id = ?", s.customer.ID).
		Distinct("restaurant_id").Count(&rests).Error)
	assert.Equal(t, int64(1), rests)
}
