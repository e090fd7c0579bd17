package models

// CheckoutRequest запрос на оформление тарифа.
type CheckoutRequest struct {
	Plan PlanID `json:"plan" validate:"required,oneof=basic standard premium ultimate"`
}

// Checkout данные для виджета оплаты Razorpay.
type Checkout struct {
	KeyID       string `json:"key_id"`
	OrderID     string `json:"order_id"`
	Amount      int64  `json:"amount"`
	Currency    string `json:"currency"`
	Name        string `json:"name"`
	Description string `json:"description"`
	Plan        PlanID `json:"plan"`
}

// ConfirmRequest результат оплаты, который виджет передаёт обратно.
type ConfirmRequest struct {
	Plan      PlanID `json:"plan" validate:"required,oneof=basic standard premium ultimate"`
	OrderID   string `json:"razorpay_order_id" validate:"required"`
	PaymentID string `json:"razorpay_payment_id" validate:"required"`
	Signature string `json:"razorpay_signature" validate:"required"`
}

// LoginRequest вход администратора.
type LoginRequest struct {
	Password string `json:"password" validate:"required"`
}

// LoginResponse выданный токен администратора.
type LoginResponse struct {
	Token     string `json:"token"`
	ExpiresIn int64  `json:"expires_in"`
}
