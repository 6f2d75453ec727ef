package services

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/cache"
	"github.com/bennblr/food-app/pkg/events"
	"github.com/bennblr/food-app/pkg/testdb"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var testNow = time.Date(2026, 3, 14, 12, 0, 0, 0, time.UTC)

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func assertMoney(t *testing.T, want string, got decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.Equal(t, dec(want).StringFixed(2), got.StringFixed(2), msgAndArgs...)
}

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.OrderEvent
}

func (p *recordingPublisher) Publish(_ context.Context, e events.OrderEvent) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

func (p *recordingPublisher) types() []string {
	p.mu.Lock()
	defer p.mu.Unlock()
	out := make([]string, len(p.events))
	for i, e := range p.events {
		out[i] = e.Type
	}
	return out
}

type env struct {
	db      *gorm.DB
	repos   Repos
	orders  *OrderService
	carts   *CartService
	drivers *DriverService
	pub     *recordingPublisher
	mr      *miniredis.Miniredis
	seq     int
}

func newEnv(t *testing.T) *env {
	t.Helper()
	db := testdb.New(t)
	repos := NewRepos(db)

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	feed := cache.NewRedisCache(client, time.Minute)

	pub := &recordingPublisher{}
	log := zap.NewNop()

	orders := NewOrderService(db, repos, pub, feed, log, 3)
	orders.Now = func() time.Time { return testNow }

	return &env{
		db:      db,
		repos:   repos,
		orders:  orders,
		carts:   NewCartService(db, repos),
		drivers: NewDriverService(db, repos, feed, log),
		pub:     pub,
		mr:      mr,
	}
}

func (e *env) next() int { e.seq++; return e.seq }

func (e *env) user(t *testing.T, role entity.Role) Actor {
	t.Helper()
	n := e.next()
	u := &entity.User{Email: fmt.Sprintf("user%d@test.local", n), Name: fmt.Sprintf("User %d", n), Role: role}
	require.NoError(t, e.db.Create(u).Error)
	return Actor{ID: u.ID, Role: role}
}

func (e *env) restaurant(t *testing.T, ownerID uint, fee, minOrder string) *entity.Restaurant {
	t.Helper()
	r := &entity.Restaurant{
		Name:           fmt.Sprintf("Restaurant %d", e.next()),
		OwnerID:        ownerID,
		DeliveryFee:    dec(fee),
		MinOrderAmount: dec(minOrder),
		IsActive:       true,
	}
	require.NoError(t, e.db.Create(r).Error)
	return r
}

func (e *env) employee(t *testing.T, restID, userID uint, active bool) {
	t.Helper()
	require.NoError(t, e.db.Create(&entity.RestaurantEmployee{RestaurantID: restID, UserID: userID, IsActive: active}).Error)
}

func (e *env) dish(t *testing.T, restID uint, price string) *entity.Dish {
	t.Helper()
	d := &entity.Dish{
		Name:         fmt.Sprintf("Dish %d", e.next()),
		Price:        dec(price),
		RestaurantID: restID,
		IsAvailable:  true,
	}
	require.NoError(t, e.db.Create(d).Error)
	return d
}

func (e *env) address(t *testing.T, userID uint) *entity.Address {
	t.Helper()
	a := &entity.Address{UserID: userID, City: "Minsk", Street: "Lenina", Building: "1"}
	require.NoError(t, e.db.Create(a).Error)
	return a
}

func (e *env) promo(t *testing.T, typ entity.DiscountType, value string, maxUses *int, used int) *entity.PromotionCode {
	t.Helper()
	p := &entity.Promotion{
		Name:          "promo",
		DiscountType:  typ,
		DiscountValue: dec(value),
		StartDate:     testNow.Add(-24 * time.Hour),
		EndDate:       testNow.Add(24 * time.Hour),
		IsActive:      true,
	}
	require.NoError(t, e.db.Create(p).Error)
	pc := &entity.PromotionCode{
		Code:        fmt.Sprintf("CODE%d", e.next()),
		MaxUses:     maxUses,
		UsedCount:   used,
		IsActive:    true,
		PromotionID: p.ID,
	}
	require.NoError(t, e.db.Create(pc).Error)
	return pc
}

// shop is one restaurant with an owner and a customer ready to order.
type shop struct {
	owner    Actor
	customer Actor
	rest     *entity.Restaurant
	dish     *entity.Dish
	addr     *entity.Address
}

func (e *env) shop(t *testing.T) shop {
	t.Helper()
	owner := e.user(t, entity.RoleRestaurantOwner)
	customer := e.user(t, entity.RoleUser)
	rest := e.restaurant(t, owner.ID, "150", "0")
	return shop{
		owner:    owner,
		customer: customer,
		rest:     rest,
		dish:     e.dish(t, rest.ID, "450"),
		addr:     e.address(t, customer.ID),
	}
}

// placeOrder checks out one dish for the shop's customer.
func (e *env) placeOrder(t *testing.T, s shop) *entity.Order {
	t.Helper()
	ctx := context.Background()
	_, err := e.carts.Add(ctx, s.customer.ID, &AddToCartIn{DishID: s.dish.ID, RestaurantID: s.rest.ID, Quantity: 1})
	require.NoError(t, err)
	o, err := e.orders.CreateOrder(ctx, s.customer.ID, &CheckoutIn{AddressID: s.addr.ID, PaymentMethod: entity.PaymentCash})
	require.NoError(t, err)
	return o
}

// setStatus bypasses the state machine to put an order into a test state.
func (e *env) setStatus(t *testing.T, orderID uint, status entity.OrderStatus, driverID *uint) {
	t.Helper()
	require.NoError(t, e.db.Model(&entity.Order{}).Where("id = ?", orderID).
		Updates(map[string]any{"status": status, "driver_id": driverID}).Error)
}

func (e *env) reload(t *testing.T, orderID uint) *entity.Order {
	t.Helper()
	var o entity.Order
	require.NoError(t, e.db.First(&o, orderID).Error)
	return &o
}

func ptr[T any](v T) *T { return &v }
