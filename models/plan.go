package models

// Plan is one subscription plan offered to shippers.
type Plan struct {
	ID          int      `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Price       float64  `json:"price"`
	DurationDay int      `json:"duration_days,omitempty"`
	SortOrder   int      `json:"sort_order"`
	Features    []string `json:"features,omitempty"`
}

// PlanCustomer is the customer prefill block for the payment gateway.
type PlanCustomer struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Contact string `json:"contact"`
}

// SubscribeResult is what the subscribe endpoint hands back. Free plans carry
// no gateway fields; paid plans carry the Razorpay checkout parameters.
type SubscribeResult struct {
	SubscriptionID         int           `json:"subscription_id,omitempty"`
	PlanName               string        `json:"plan_name,omitempty"`
	RazorpayKey            string        `json:"razorpay_key,omitempty"`
	RazorpaySubscriptionID string        `json:"razorpay_subscription_id,omitempty"`
	AmountInPaise          int64         `json:"amount_in_paise,omitempty"`
	Customer               *PlanCustomer `json:"customer,omitempty"`
}

// RequiresPayment reports whether the gateway checkout must run.
func (r *SubscribeResult) RequiresPayment() bool {
	return r.RazorpayKey != "" && r.RazorpaySubscriptionID != ""
}

// PaymentVerification forwards gateway callback values for settlement checks.
type PaymentVerification struct {
	RazorpayPaymentID      string `json:"razorpay_payment_id"`
	RazorpaySubscriptionID string `json:"razorpay_subscription_id"`
	RazorpaySignature      string `json:"razorpay_signature"`
	SubscriptionID         int    `json:"subscription_id"`
}

// Subscription is one shipper subscription record.
type Subscription struct {
	ID       int    `json:"id"`
	PlanID   int    `json:"plan_id"`
	PlanName string `json:"plan_name,omitempty"`
	Status   string `json:"status"`
	StartsAt string `json:"starts_at,omitempty"`
	EndsAt   string `json:"ends_at,omitempty"`
}

// SubscriptionStatus is the subscriptions listing with the active one, when
// any, pulled out.
type SubscriptionStatus struct {
	ActiveSubscription *Subscription  `json:"active_subscription"`
	Subscriptions      []Subscription `json:"subscriptions,omitempty"`
}
