package services

import (
	"testing"

	"backend/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateOrderPricesFromCatalog(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	user := createUser(t, db, 0)
	pizza := createDish(t, db, "Pizza", 1400)
	soup := createDish(t, db, "Soup", 800)

	out, err := svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodCash,
		Items: []OrderItemIn{
			{DishID: pizza.ID, Quantity: 2},
			{DishID: soup.ID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 3600, out.TotalAmount)
	assert.Equal(t, entity.OrderStatusPending, out.Status)

	detail, err := svc.Detail(out.ID)
	require.NoError(t, err)
	require.Len(t, detail.Items, 2)

	// later menu edits never touch the placed order
	require.NoError(t, db.Model(pizza).Update("price", 9900).Error)
	detail, err = svc.Detail(out.ID)
	require.NoError(t, err)
	assert.EqualValues(t, 3600, detail.Order.TotalAmount)
	for _, it := range detail.Items {
		if it.DishID == pizza.ID {
			assert.EqualValues(t, 1400, it.UnitPrice)
		}
	}
}

func TestCreateOrderValidation(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	user := createUser(t, db, 0)
	dish := createDish(t, db, "Pizza", 1400)

	_, err := svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         nil,
	})
	assert.ErrorIs(t, err, ErrEmptyOrder)

	_, err = svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: "Cheque",
		Items:         []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrInvalidPaymentMethod)

	_, err = svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []OrderItemIn{{DishID: dish.ID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, ErrInvalidQuantity)

	_, err = svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []OrderItemIn{{DishID: 9999, Quantity: 1}},
	})
	assert.ErrorIs(t, err, ErrDishNotFound)
}

func TestOrderStatusMachine(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	user := createUser(t, db, 0)
	dish := createDish(t, db, "Pizza", 1400)

	out, err := svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	// Pending cannot jump straight to Delivered
	assert.ErrorIs(t, svc.UpdateStatus(out.ID, entity.OrderStatusDelivered), ErrStatusTransition)

	require.NoError(t, svc.UpdateStatus(out.ID, entity.OrderStatusConfirmed))
	require.NoError(t, svc.UpdateStatus(out.ID, entity.OrderStatusInProgress))

	// in progress is past the point of cancellation
	assert.ErrorIs(t, svc.UpdateStatus(out.ID, entity.OrderStatusCancelled), ErrStatusTransition)

	require.NoError(t, svc.UpdateStatus(out.ID, entity.OrderStatusDelivered))

	// delivered is terminal
	assert.ErrorIs(t, svc.UpdateStatus(out.ID, entity.OrderStatusConfirmed), ErrStatusTransition)

	assert.ErrorIs(t, svc.UpdateStatus(out.ID, "Teleported"), ErrInvalidStatus)
	assert.ErrorIs(t, svc.UpdateStatus(9999, entity.OrderStatusConfirmed), ErrOrderNotFound)
}

func TestDeliveryCreditsPoints(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	user := createUser(t, db, 0)
	dish := createDish(t, db, "Steak", 3400)

	out, err := svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []OrderItemIn{{DishID: dish.ID, Quantity: 2}}, // $68.00
	})
	require.NoError(t, err)

	require.NoError(t, svc.UpdateStatus(out.ID, entity.OrderStatusConfirmed))
	require.NoError(t, svc.UpdateStatus(out.ID, entity.OrderStatusInProgress))
	require.NoError(t, svc.UpdateStatus(out.ID, entity.OrderStatusDelivered))

	// one point per whole $10
	assert.Equal(t, 6, userPoints(t, db, user.ID))
}

func TestDeliveryPointsSchedule(t *testing.T) {
	assert.Equal(t, 0, DeliveryPoints(0))
	assert.Equal(t, 0, DeliveryPoints(999))
	assert.Equal(t, 1, DeliveryPoints(1000))
	assert.Equal(t, 6, DeliveryPoints(6800))
	assert.Equal(t, 20, DeliveryPoints(20000))
}

func TestProcessPayment(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	user := createUser(t, db, 0)
	dish := createDish(t, db, "Pizza", 1400)

	online, err := svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodOnline,
		Items:         []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	require.NoError(t, svc.ProcessPayment(online.ID, "4111111111111111", "Test User", "12/28", "123"))

	got, err := svc.Get(online.ID)
	require.NoError(t, err)
	assert.Equal(t, entity.OrderStatusConfirmed, got.Status, "payment capture confirms the order")

	// a second capture finds the order no longer pending
	err = svc.ProcessPayment(online.ID, "4111111111111111", "Test User", "12/28", "123")
	assert.ErrorIs(t, err, ErrOrderNotPending)

	cash, err := svc.Create(user.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)
	err = svc.ProcessPayment(cash.ID, "4111111111111111", "Test User", "12/28", "123")
	assert.ErrorIs(t, err, ErrPaymentNotOnline)
}

func TestListForUser(t *testing.T) {
	db := setupTestDB(t)
	svc := newOrderService(t, db)
	user := createUser(t, db, 0)
	other := createUser(t, db, 0)
	dish := createDish(t, db, "Pizza", 1400)

	for i := 0; i < 3; i++ {
		_, err := svc.Create(user.ID, &CreateOrderReq{
			PaymentMethod: entity.PaymentMethodCash,
			Items:         []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
		})
		require.NoError(t, err)
	}
	_, err := svc.Create(other.ID, &CreateOrderReq{
		PaymentMethod: entity.PaymentMethodCash,
		Items:         []OrderItemIn{{DishID: dish.ID, Quantity: 1}},
	})
	require.NoError(t, err)

	mine, err := svc.ListForUser(user.ID, 50)
	require.NoError(t, err)
	assert.Len(t, mine, 3)

	limited, err := svc.ListForUser(user.ID, 2)
	require.NoError(t, err)
	assert.Len(t, limited, 2)
}
