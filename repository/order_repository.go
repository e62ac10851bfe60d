package repository

import (
	"time"

	"backend/entity"

	"gorm.io/gorm"
)

type OrderRepository struct {
	DB *gorm.DB
}

func NewOrderRepository(db *gorm.DB) *OrderRepository {
	return &OrderRepository{DB: db}
}

func (r *OrderRepository) CreateOrder(tx *gorm.DB, o *entity.Order) error {
	return tx.Create(o).Error
}

func (r *OrderRepository) CreateOrderItem(tx *gorm.DB, oi *entity.OrderItem) error {
	return tx.Create(oi).Error
}

func (r *OrderRepository) GetOrder(tx *gorm.DB, id uint) (*entity.Order, error) {
	var o entity.Order
	if err := tx.First(&o, id).Error; err != nil {
		return nil, err
	}
	return &o, nil
}

func (r *OrderRepository) GetOrderItems(orderID uint) ([]entity.OrderItem, error) {
	var items []entity.OrderItem
	err := r.DB.Model(&entity.OrderItem{}).
		Select("id, quantity, unit_price, subtotal, dish_id, order_id").
		Where("order_id = ?", orderID).
		Find(&items).Error
	return items, err
}

type OrderSummary struct {
	ID             uint      `json:"id"`
	OrderDate      time.Time `json:"orderDate"`
	TotalAmount    int64     `json:"totalAmount"`
	DiscountAmount int64     `json:"discountAmount"`
	Status         string    `json:"status"`
	PaymentMethod  string    `json:"paymentMethod"`
}

func (r *OrderRepository) ListForUser(userID uint, limit int) ([]OrderSummary, error) {
	if limit <= 0 {
		limit = 50
	}
	var out []OrderSummary
	err := r.DB.Model(&entity.Order{}).
		Select("id, order_date, total_amount, discount_amount, status, payment_method").
		Where("user_id = ?", userID).
		Order("id DESC").Limit(limit).
		Scan(&out).Error
	return out, err
}

func (r *OrderRepository) ListByDateRange(start, end time.Time) ([]entity.Order, error) {
	var rows []entity.Order
	err := r.DB.Where("order_date >= ? AND order_date <= ?", start, end).
		Order("order_date DESC").
		Find(&rows).Error
	return rows, err
}

// UpdateStatusGuard moves the order from one status to another only when it
// still holds the expected current status.
func (r *OrderRepository) UpdateStatusGuard(tx *gorm.DB, orderID uint, from, to string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, from).
		Update("status", to)
	return res.RowsAffected, res.Error
}

// MarkCouponApplied stores the discount and flips the applied flag, guarded
// so a coupon can hit an order at most once.
func (r *OrderRepository) MarkCouponApplied(tx *gorm.DB, orderID uint, discount int64) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND is_coupon_applied = ?", orderID, false).
		Updates(map[string]any{
			"is_coupon_applied": true,
			"discount_amount":   discount,
		})
	return res.RowsAffected, res.Error
}

// SavePaymentCard captures card details and confirms the order, guarded on
// the order still being Pending.
func (r *OrderRepository) SavePaymentCard(tx *gorm.DB, orderID uint, number, holder, expiry, cvv string) (int64, error) {
	res := tx.Model(&entity.Order{}).
		Where("id = ? AND status = ?", orderID, entity.OrderStatusPending).
		Updates(map[string]any{
			"payment_card_number":      number,
			"payment_card_holder_name": holder,
			"payment_card_expiry_date": expiry,
			"payment_card_cvv":         cvv,
			"status":                   entity.OrderStatusConfirmed,
		})
	return res.RowsAffected, res.Error
}
