package order

type Status string

const (
	StatusPendingPayment  Status = "pending_payment"
	StatusPendingShipment Status = "pending_shipment"
	StatusPendingReceipt  Status = "pending_receipt"
	StatusCompleted       Status = "completed"
	StatusCanceled        Status = "canceled"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPendingPayment, StatusPendingShipment, StatusPendingReceipt, StatusCompleted, StatusCanceled:
		return true
	default:
		return false
	}
}

func (s Status) IsTerminal() bool {
	return s == StatusCompleted || s == StatusCanceled
}

// IsPaid and IsDelivered are views over the status; there are no separate flags.
func (s Status) IsPaid() bool {
	switch s {
	case StatusPendingShipment, StatusPendingReceipt, StatusCompleted:
		return true
	default:
		return false
	}
}

func (s Status) IsDelivered() bool {
	return s == StatusPendingReceipt || s == StatusCompleted
}

type PaymentMethod string

const (
	PaymentWeChatPay      PaymentMethod = "wechat_pay"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

func (m PaymentMethod) String() string {
	return string(m)
}

func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentWeChatPay, PaymentCashOnDelivery:
		return true
	default:
		return false
	}
}

type Action string

const (
	ActionPay     Action = "pay"
	ActionDeliver Action = "deliver"
	ActionReceive Action = "confirm_receipt"
	ActionCancel  Action = "cancel"
	ActionArchive Action = "archive"
)
