package services

import (
	"context"
	"strings"

	"github.com/bennblr/food-app/entity"
	"github.com/bennblr/food-app/pkg/apperr"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type CartService struct {
	DB    *gorm.DB
	Repos Repos
}

func NewCartService(db *gorm.DB, repos Repos) *CartService {
	return &CartService{DB: db, Repos: repos}
}

type AddToCartIn struct {
	DishID       uint   `json:"dishId" binding:"required"`
	RestaurantID uint   `json:"restaurantId" binding:"required"`
	Quantity     int    `json:"quantity" binding:"min=1"`
	Notes        string `json:"notes" binding:"max=500"`
}

type CartLine struct {
	ID        uint            `json:"id"`
	DishID    uint            `json:"dishId"`
	DishName  string          `json:"dishName"`
	UnitPrice decimal.Decimal `json:"unitPrice"`
	Quantity  int             `json:"quantity"`
	Notes     string          `json:"notes,omitempty"`
	LineTotal decimal.Decimal `json:"lineTotal"`
}

// CartSnapshot is the cart as the client sees it. Subtotal uses live dish
// prices and is informational; checkout prices again.
type CartSnapshot struct {
	RestaurantID   uint            `json:"restaurantId,omitempty"`
	RestaurantName string          `json:"restaurantName,omitempty"`
	Lines          []CartLine      `json:"lines"`
	Subtotal       decimal.Decimal `json:"subtotal"`
	ItemCount      int             `json:"itemCount"`
}

func (s *CartService) Get(ctx context.Context, userID uint) (*CartSnapshot, error) {
	return s.snapshot(s.DB.WithContext(ctx), userID)
}

func (s *CartService) snapshot(tx *gorm.DB, userID uint) (*CartSnapshot, error) {
	items, err := s.Repos.Carts.ListByUser(tx, userID)
	if err != nil {
		return nil, err
	}

	snap := &CartSnapshot{Lines: make([]CartLine, 0, len(items)), Subtotal: decimal.Zero}
	if len(items) == 0 {
		return snap, nil
	}

	snap.RestaurantID = items[0].RestaurantID
	if rest, err := s.Repos.Restaurants.FindByID(tx, snap.RestaurantID); err == nil {
		snap.RestaurantName = rest.Name
	}
	for _, it := range items {
		total := it.Dish.Price.Mul(decimal.NewFromInt(int64(it.Quantity)))
		snap.Lines = append(snap.Lines, CartLine{
			ID:        it.ID,
			DishID:    it.DishID,
			DishName:  it.Dish.Name,
			UnitPrice: it.Dish.Price,
			Quantity:  it.Quantity,
			Notes:     it.Notes,
			LineTotal: total,
		})
		snap.Subtotal = snap.Subtotal.Add(total)
		snap.ItemCount += it.Quantity
	}
	return snap, nil
}

// Add puts a dish into the cart. A cart holding another restaurant's dishes
// is left untouched and CONFLICT names that restaurant.
func (s *CartService) Add(ctx context.Context, userID uint, in *AddToCartIn) (*CartSnapshot, error) {
	if in.Quantity < 1 {
		return nil, apperr.ValidationFields("invalid quantity", map[string]string{"quantity": "must be >= 1"})
	}

	var snap *CartSnapshot
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockCart(tx, userID); err != nil {
			return err
		}
		dish, err := s.Repos.Dishes.FindByID(tx, in.DishID)
		if err != nil {
			return notFound(err, "dish not found")
		}
		if dish.RestaurantID != in.RestaurantID {
			return apperr.ValidationFields("dish does not belong to this restaurant", map[string]string{"dishId": "not on this restaurant's menu"})
		}
		if !dish.IsAvailable {
			return apperr.ValidationFields("dish is not available", map[string]string{"dishId": "not available"})
		}

		// ถ้าตะกร้ามีของร้านอื่นอยู่ → ไม่ให้ข้ามร้าน
		current, err := s.Repos.Carts.CurrentRestaurantID(tx, userID)
		if err != nil {
			return err
		}
		if current != 0 && current != in.RestaurantID {
			existing := map[string]any{"id": current}
			if rest, err := s.Repos.Restaurants.FindByID(tx, current); err == nil {
				existing["name"] = rest.Name
			}
			return apperr.New(apperr.Conflict, "cart has another restaurant").
				WithDetail("existingRestaurant", existing)
		}

		line := &entity.CartItem{
			UserID:       userID,
			DishID:       dish.ID,
			RestaurantID: dish.RestaurantID,
			Quantity:     in.Quantity,
			Notes:        strings.TrimSpace(in.Notes),
		}
		if err := s.Repos.Carts.UpsertItem(tx, line); err != nil {
			return err
		}
		snap, err = s.snapshot(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

// UpdateQuantity sets a line's quantity; qty <= 0 removes the line.
func (s *CartService) UpdateQuantity(ctx context.Context, userID, lineID uint, qty int) (*CartSnapshot, error) {
	var snap *CartSnapshot
	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockCart(tx, userID); err != nil {
			return err
		}
		n, err := s.Repos.Carts.UpdateQty(tx, userID, lineID, qty)
		if err != nil {
			return err
		}
		if n == 0 {
			return apperr.New(apperr.NotFound, "cart item not found")
		}
		snap, err = s.snapshot(tx, userID)
		return err
	})
	if err != nil {
		return nil, err
	}
	return snap, nil
}

func (s *CartService) RemoveItem(ctx context.Context, userID, lineID uint) (*CartSnapshot, error) {
	return s.UpdateQuantity(ctx, userID, lineID, 0)
}

func (s *CartService) Clear(ctx context.Context, userID uint) error {
	return s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := s.lockCart(tx, userID); err != nil {
			return err
		}
		return s.Repos.Carts.ClearCart(tx, userID)
	})
}

// lockCart serializes cart writes and checkout of one user on the user row.
func (s *CartService) lockCart(tx *gorm.DB, userID uint) error {
	return notFound(s.Repos.Users.LockForUpdate(tx, userID), "user not found")
}
