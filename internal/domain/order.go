package domain

// OrderID is the human-facing order identifier, "T" plus a strictly
// increasing sequence number that survives restarts.
type OrderID string

type Region string

const (
	RegionLocal  Region = "LOCAL"
	RegionRemote Region = "REMOTE"
)

const (
	OrderStatusNotifiedManager = "NOTIFIED_MANAGER"
	OrderStatusPaymentIssued   = "PAYMENT_ISSUED"
)

const (
	DeliveryPochta = "Почта России"
	DeliveryCDEK   = "СДЭК"
)

// DeliverySurcharge returns the flat delivery fee for a method, in rubles.
// Unknown methods (including self-pickup) cost nothing.
func DeliverySurcharge(method string) int64 {
	switch method {
	case DeliveryPochta:
		return 500
	case DeliveryCDEK:
		return 600
	}
	return 0
}

// Order is assembled at submission time from the session's cart and a fresh
// order number. It lives only as long as the notification it triggers.
type Order struct {
	ID             OrderID
	UserID         int64
	Lines          []CartLine
	Contact        ContactProfile
	DeliveryMethod string
	TotalAmount    int64
	Region         Region
}
