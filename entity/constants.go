package entity

const (
	OrderStatusPending    = "Pending"
	OrderStatusConfirmed  = "Confirmed"
	OrderStatusInProgress = "InProgress"
	OrderStatusDelivered  = "Delivered"
	OrderStatusCancelled  = "Cancelled"
)

const (
	PaymentMethodCash   = "Cash"
	PaymentMethodOnline = "Online"
)

const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
