package services

// Loyalty reward schedule. The asymmetries (10 vs 15 for coupon use, a flat
// 5 on confirmation) are product decisions; keep them here, not inline.
const (
	// PointsReservationConfirmed is credited once when a reservation
	// transitions to confirmed, never on re-confirmation.
	PointsReservationConfirmed = 5

	// PointsCouponOnReservation is credited after a coupon is applied to a
	// reservation.
	PointsCouponOnReservation = 10

	// PointsCouponOnOrder is credited after a coupon is applied to an order.
	PointsCouponOnOrder = 15

	// CentsPerDeliveryPoint: one point per whole $10 of a delivered order.
	CentsPerDeliveryPoint = 1000
)

// DeliveryPoints computes the reward for a delivered order total.
func DeliveryPoints(totalCents int64) int {
	if totalCents <= 0 {
		return 0
	}
	return int(totalCents / CentsPerDeliveryPoint)
}
