package services

import (
	"errors"
	"time"

	"backend/entity"
	"backend/repository"

	"gorm.io/gorm"
)

var (
	ErrOrderNotFound        = errors.New("order not found")
	ErrDishNotFound         = errors.New("dish not found")
	ErrEmptyOrder           = errors.New("order items are required")
	ErrInvalidQuantity      = errors.New("quantity must be positive")
	ErrInvalidPaymentMethod = errors.New("invalid payment method")
	ErrInvalidStatus        = errors.New("invalid order status")
	ErrStatusTransition     = errors.New("status transition not allowed")
	ErrStatusConflict       = errors.New("order status changed concurrently")
	ErrPaymentNotOnline     = errors.New("payment capture requires an online order")
	ErrOrderNotPending      = errors.New("order is not pending")
)

// forward-only status machine; Cancelled is reachable until preparation
// starts, Delivered only from InProgress
var orderTransitions = map[string][]string{
	entity.OrderStatusPending:    {entity.OrderStatusConfirmed, entity.OrderStatusCancelled},
	entity.OrderStatusConfirmed:  {entity.OrderStatusInProgress, entity.OrderStatusCancelled},
	entity.OrderStatusInProgress: {entity.OrderStatusDelivered},
}

func transitionAllowed(from, to string) bool {
	for _, next := range orderTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

type OrderService struct {
	DB     *gorm.DB
	Repo   *repository.OrderRepository
	Dishes *repository.DishRepository
	Users  *repository.UserRepository
}

func NewOrderService(db *gorm.DB, repo *repository.OrderRepository, dishes *repository.DishRepository, users *repository.UserRepository) *OrderService {
	return &OrderService{DB: db, Repo: repo, Dishes: dishes, Users: users}
}

// ----- Create -----

type OrderItemIn struct {
	DishID   uint `json:"dishId" binding:"required"`
	Quantity int  `json:"quantity" binding:"required,min=1"`
}

type CreateOrderReq struct {
	PaymentMethod string        `json:"paymentMethod" binding:"required,oneof=Cash Online"`
	Items         []OrderItemIn `json:"items" binding:"required,min=1"`
}

type CreateOrderRes struct {
	ID          uint   `json:"id"`
	TotalAmount int64  `json:"totalAmount"`
	Status      string `json:"status"`
}

// Create prices every line from the dish's current price and persists the
// order with its items in one transaction. Prices are copied, not
// referenced: later menu edits never touch a placed order.
func (s *OrderService) Create(userID uint, req *CreateOrderReq) (*CreateOrderRes, error) {
	if len(req.Items) == 0 {
		return nil, ErrEmptyOrder
	}
	if req.PaymentMethod != entity.PaymentMethodCash && req.PaymentMethod != entity.PaymentMethodOnline {
		return nil, ErrInvalidPaymentMethod
	}

	var total int64
	rows := make([]entity.OrderItem, 0, len(req.Items))
	for _, it := range req.Items {
		if it.Quantity <= 0 {
			return nil, ErrInvalidQuantity
		}
		dish, err := s.Dishes.GetBasics(it.DishID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, ErrDishNotFound
			}
			return nil, err
		}
		subtotal := dish.Price * int64(it.Quantity)
		total += subtotal
		rows = append(rows, entity.OrderItem{
			Quantity:  it.Quantity,
			UnitPrice: dish.Price,
			Subtotal:  subtotal,
			DishID:    dish.ID,
		})
	}

	var out CreateOrderRes
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		order := entity.Order{
			OrderDate:     time.Now(),
			TotalAmount:   total,
			Status:        entity.OrderStatusPending,
			PaymentMethod: req.PaymentMethod,
			UserID:        userID,
		}
		if err := s.Repo.CreateOrder(tx, &order); err != nil {
			return err
		}
		for i := range rows {
			rows[i].OrderID = order.ID
			if err := s.Repo.CreateOrderItem(tx, &rows[i]); err != nil {
				return err
			}
		}
		out = CreateOrderRes{ID: order.ID, TotalAmount: order.TotalAmount, Status: order.Status}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &out, nil
}

// ----- Status machine -----

// UpdateStatus moves the order along the forward-only chain. The write is
// guarded on the expected current status, and the delivery reward is
// credited inside the same transaction, so a raced double update can never
// double-credit.
func (s *OrderService) UpdateStatus(orderID uint, to string) error {
	if _, known := map[string]bool{
		entity.OrderStatusPending:    true,
		entity.OrderStatusConfirmed:  true,
		entity.OrderStatusInProgress: true,
		entity.OrderStatusDelivered:  true,
		entity.OrderStatusCancelled:  true,
	}[to]; !known {
		return ErrInvalidStatus
	}

	order, err := s.Repo.GetOrder(s.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if !transitionAllowed(order.Status, to) {
		return ErrStatusTransition
	}

	return s.DB.Transaction(func(tx *gorm.DB) error {
		affected, err := s.Repo.UpdateStatusGuard(tx, orderID, order.Status, to)
		if err != nil {
			return err
		}
		if affected == 0 {
			return ErrStatusConflict
		}
		if to == entity.OrderStatusDelivered {
			if pts := DeliveryPoints(order.TotalAmount); pts > 0 {
				if _, err := s.Users.AddPoints(tx, order.UserID, pts); err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// ----- Payment -----

// ProcessPayment captures card details for an Online order and confirms it.
// There is no gateway integration; the capture itself is the demo payment.
func (s *OrderService) ProcessPayment(orderID uint, number, holder, expiry, cvv string) error {
	order, err := s.Repo.GetOrder(s.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrOrderNotFound
		}
		return err
	}
	if order.PaymentMethod != entity.PaymentMethodOnline {
		return ErrPaymentNotOnline
	}

	affected, err := s.Repo.SavePaymentCard(s.DB, orderID, number, holder, expiry, cvv)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrOrderNotPending
	}
	return nil
}

// ----- Reads -----

type OrderDetail struct {
	Order entity.Order       `json:"order"`
	Items []entity.OrderItem `json:"items"`
}

func (s *OrderService) Get(orderID uint) (*entity.Order, error) {
	order, err := s.Repo.GetOrder(s.DB, orderID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, err
	}
	return order, nil
}

func (s *OrderService) Detail(orderID uint) (*OrderDetail, error) {
	order, err := s.Get(orderID)
	if err != nil {
		return nil, err
	}
	items, err := s.Repo.GetOrderItems(order.ID)
	if err != nil {
		return nil, err
	}
	return &OrderDetail{Order: *order, Items: items}, nil
}

func (s *OrderService) ListForUser(userID uint, limit int) ([]repository.OrderSummary, error) {
	return s.Repo.ListForUser(userID, limit)
}

func (s *OrderService) ListForDate(date time.Time) ([]entity.Order, error) {
	start := entity.DateOnly(date)
	end := start.AddDate(0, 0, 1).Add(-time.Nanosecond)
	return s.Repo.ListByDateRange(start, end)
}
