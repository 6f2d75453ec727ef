package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"
	"github.com/bennblr/food-app/pkg/cache"
	"github.com/bennblr/food-app/pkg/events"
	"github.com/bennblr/food-app/repository"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

const publishTimeout = 3 * time.Second

// errNumberTaken triggers another checkout attempt with a fresh number.
var errNumberTaken = errors.New("order number already taken")

type OrderService struct {
	DB    *gorm.DB
	Repos Repos
	Gate  *AccessGate

	Events events.Publisher
	Feed   cache.Cache
	Log    *zap.Logger

	NumberAttempts int
	Now            func() time.Time
	NewNumber      func(time.Time) string
}

func NewOrderService(db *gorm.DB, repos Repos, pub events.Publisher, feed cache.Cache, log *zap.Logger, numberAttempts int) *OrderService {
	if numberAttempts < 1 {
		numberAttempts = 1
	}
	return &OrderService{
		DB:             db,
		Repos:          repos,
		Gate:           NewAccessGate(repos.Restaurants),
		Events:         pub,
		Feed:           feed,
		Log:            log,
		NumberAttempts: numberAttempts,
		Now:            time.Now,
		NewNumber:      NewOrderNumber,
	}
}

// NewOrderNumber returns ORD-YYYYMMDD-XXXXXX with a random hex suffix.
func NewOrderNumber(now time.Time) string {
	suffix := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", "")[:6])
	return fmt.Sprintf("ORD-%s-%s", now.Format("20060102"), suffix)
}

// ----- DTOs from Controller -----
type CheckoutIn struct {
	AddressID     uint                 `json:"addressId" binding:"required"`
	PaymentMethod entity.PaymentMethod `json:"paymentMethod" binding:"required,paymentmethod"`
	Notes         string               `json:"notes" binding:"max=1000"`
	PromotionCode string               `json:"promotionCode" binding:"max=50"`
}

type OrderListOut struct {
	Items []entity.Order `json:"items"`
	Total int64          `json:"total"`
	Page  int            `json:"page"`
	Limit int            `json:"limit"`
}

// ----- Create -----

// CreateOrder turns the user's cart into an order. The order, its items,
// the promotion redemption, the first status row and the cart clearing
// commit together or not at all.
func (s *OrderService) CreateOrder(ctx context.Context, userID uint, in *CheckoutIn) (*entity.Order, error) {
	if !in.PaymentMethod.Valid() {
		return nil, apperr.ValidationFields("invalid payment method", map[string]string{
			"paymentMethod": "must be one of CASH, CARD_ONLINE, CARD_COURIER",
		})
	}

	for attempt := 1; attempt <= s.NumberAttempts; attempt++ {
		order, err := s.createOnce(ctx, userID, in)
		if err == nil {
			s.Log.Info("order created",
				zap.Uint("order_id", order.ID),
				zap.String("order_number", order.OrderNumber),
				zap.Uint("user_id", userID),
				zap.String("final_amount", order.FinalAmount.StringFixed(2)))
			s.afterCommit(ctx, events.TypeOrderCreated, order, "", Actor{ID: userID}, entity.CapacityCustomer)
			return order, nil
		}
		if !errors.Is(err, errNumberTaken) {
			return nil, err
		}
		s.Log.Warn("order number collision, retrying", zap.Int("attempt", attempt))
	}
	return nil, apperr.New(apperr.Conflict, "could not allocate a unique order number, please retry")
}

func (s *OrderService) createOnce(ctx context.Context, userID uint, in *CheckoutIn) (*entity.Order, error) {
	now := s.Now()
	var out *entity.Order

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		// same lock as CartService writes
		if err := s.Repos.Users.LockForUpdate(tx, userID); err != nil {
			return notFound(err, "user not found")
		}
		lines, err := s.Repos.Carts.ListByUser(tx, userID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return apperr.New(apperr.EmptyCart, "cart is empty")
		}
		restID := lines[0].RestaurantID

		if _, err := s.Repos.Addresses.FindForUser(tx, in.AddressID, userID); err != nil {
			return notFound(err, "address not found")
		}
		rest, err := s.Repos.Restaurants.FindByID(tx, restID)
		if err != nil {
			return notFound(err, "restaurant not found")
		}

		// ราคา ณ ตอน checkout (snapshot ลง order item)
		priced := make([]PriceLine, 0, len(lines))
		items := make([]entity.OrderItem, 0, len(lines))
		for _, l := range lines {
			d := l.Dish
			if d.ID == 0 || d.RestaurantID != restID {
				return apperr.ValidationFields("a dish in the cart no longer exists", map[string]string{
					"cart": fmt.Sprintf("dish %d was removed from the menu", l.DishID),
				})
			}
			if !d.IsAvailable {
				return apperr.ValidationFields("a dish in the cart is unavailable", map[string]string{
					"cart": fmt.Sprintf("%s is not available", d.Name),
				})
			}
			priced = append(priced, PriceLine{UnitPrice: d.Price, Quantity: l.Quantity})
			items = append(items, entity.OrderItem{
				DishID:     d.ID,
				DishName:   d.Name,
				DishPrice:  d.Price,
				Quantity:   l.Quantity,
				Notes:      l.Notes,
				TotalPrice: d.Price.Mul(decimal.NewFromInt(int64(l.Quantity))),
			})
		}

		code, err := s.lookupCode(tx, in.PromotionCode)
		if err != nil {
			return err
		}
		amounts := ComputeOrderAmounts(priced, rest, code, now)
		if err := CheckMinimumOrder(amounts.Subtotal, rest); err != nil {
			return err
		}

		var promoID *uint
		if amounts.PromotionApplied {
			n, err := s.Repos.Promotions.IncrementUsage(tx, code.ID)
			if err != nil {
				return err
			}
			if n == 1 {
				promoID = &code.ID
			} else {
				// last use went to a concurrent checkout
				s.Log.Info("promotion code exhausted at checkout", zap.String("code", code.Code))
				amounts = ComputeOrderAmounts(priced, rest, nil, now)
			}
		}

		number := s.NewNumber(now)
		taken, err := s.Repos.Orders.NumberExists(tx, number)
		if err != nil {
			return err
		}
		if taken {
			return errNumberTaken
		}

		order := &entity.Order{
			OrderNumber:     number,
			UserID:          userID,
			RestaurantID:    restID,
			AddressID:       in.AddressID,
			Status:          entity.StatusPending,
			PaymentMethod:   in.PaymentMethod,
			PaymentStatus:   entity.PaymentPending,
			SubtotalAmount:  amounts.Subtotal,
			DeliveryFee:     amounts.DeliveryFee,
			DiscountAmount:  amounts.Discount,
			FinalAmount:     amounts.Final,
			Notes:           strings.TrimSpace(in.Notes),
			PromotionCodeID: promoID,
			Items:           items,
		}
		if err := s.Repos.Orders.CreateOrder(tx, order); err != nil {
			if errors.Is(err, gorm.ErrDuplicatedKey) {
				return errNumberTaken
			}
			return err
		}

		if err := s.Repos.Orders.AddStatusChange(tx, &entity.OrderStatusChange{
			OrderID:  order.ID,
			ToStatus: entity.StatusPending,
			ActorID:  userID,
			Capacity: entity.CapacityCustomer,
		}); err != nil {
			return err
		}

		// ลบเฉพาะ line ที่สั่งไปแล้ว
		ordered := make([]uint, len(lines))
		for i, l := range lines {
			ordered[i] = l.ID
		}
		n, err := s.Repos.Carts.DeleteItems(tx, userID, ordered)
		if err != nil {
			return err
		}
		if n != int64(len(ordered)) {
			return apperr.New(apperr.Conflict, "cart changed during checkout, please retry")
		}
		out = order
		return nil
	})
	return out, err
}

// unknown codes price as if no code was given
func (s *OrderService) lookupCode(tx *gorm.DB, code string) (*entity.PromotionCode, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, nil
	}
	pc, err := s.Repos.Promotions.FindCode(tx, code)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return pc, err
}

// ----- Read -----

func (s *OrderService) Get(ctx context.Context, actor Actor, orderID uint) (*entity.Order, error) {
	db := s.DB.WithContext(ctx)
	o, err := s.Repos.Orders.GetOrder(db, orderID)
	if err != nil {
		return nil, notFound(err, "order not found")
	}
	if _, err := s.Gate.Authorize(db, actor, o, ActionRead); err != nil {
		return nil, err
	}
	return o, nil
}

func (s *OrderService) History(ctx context.Context, actor Actor, orderID uint) ([]entity.OrderStatusChange, error) {
	if _, err := s.Get(ctx, actor, orderID); err != nil {
		return nil, err
	}
	return s.Repos.Orders.ListStatusChanges(s.DB.WithContext(ctx), orderID)
}

func (s *OrderService) ListForUser(ctx context.Context, userID uint, status entity.OrderStatus, page, limit int) (*OrderListOut, error) {
	return s.list(ctx, repository.OrderFilter{UserID: userID, Status: status, Page: page, Limit: limit})
}

// ListForStaff lists orders of every restaurant the actor owns or works at.
func (s *OrderService) ListForStaff(ctx context.Context, actor Actor, status entity.OrderStatus, page, limit int) (*OrderListOut, error) {
	ids, err := s.Repos.Restaurants.StaffRestaurantIDs(s.DB.WithContext(ctx), actor.ID)
	if err != nil {
		return nil, err
	}
	f := repository.OrderFilter{RestaurantIDs: ids, Status: status, Page: page, Limit: limit}
	if len(ids) == 0 {
		// ไม่ได้เป็น staff ร้านไหน → รายการว่าง
		if status != "" && !status.Valid() {
			return nil, apperr.ValidationFields("invalid status filter", map[string]string{"status": "unknown order status"})
		}
		f.Normalize()
		return &OrderListOut{Items: []entity.Order{}, Page: f.Page, Limit: f.Limit}, nil
	}
	return s.list(ctx, f)
}

// ListAll is the admin view; driverID filters by assigned driver.
func (s *OrderService) ListAll(ctx context.Context, status entity.OrderStatus, driverID *uint, page, limit int) (*OrderListOut, error) {
	return s.list(ctx, repository.OrderFilter{Status: status, DriverID: driverID, Page: page, Limit: limit})
}

func (s *OrderService) list(ctx context.Context, f repository.OrderFilter) (*OrderListOut, error) {
	if f.Status != "" && !f.Status.Valid() {
		return nil, apperr.ValidationFields("invalid status filter", map[string]string{"status": "unknown order status"})
	}
	f.Normalize()
	items, total, err := s.Repos.Orders.ListOrders(s.DB.WithContext(ctx), f)
	if err != nil {
		return nil, err
	}
	if items == nil {
		items = []entity.Order{}
	}
	return &OrderListOut{Items: items, Total: total, Page: f.Page, Limit: f.Limit}, nil
}

// ----- after commit -----

// afterCommit publishes the event and drops the driver feed when the order
// entered or left READY. Failures are logged; the order is already saved.
func (s *OrderService) afterCommit(ctx context.Context, typ string, o *entity.Order, from entity.OrderStatus, actor Actor, capacity entity.Capacity) {
	ctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()

	if from == entity.StatusReady || o.Status == entity.StatusReady {
		if err := s.Feed.Delete(ctx, cache.KeyAvailableOrders); err != nil {
			s.Log.Warn("invalidate driver feed failed", zap.Error(err))
		}
	}

	e := events.NewOrderEvent(typ, o)
	e.From = from
	e.ActorID = actor.ID
	e.Capacity = capacity
	if err := s.Events.Publish(ctx, e); err != nil {
		s.Log.Warn("publish order event failed",
			zap.String("type", typ),
			zap.Uint("order_id", o.ID),
			zap.Error(err))
	}
}
