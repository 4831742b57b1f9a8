package ports

import "context"

// ImageResult is a single candidate illustration for a menu item.
type ImageResult struct {
	ID       string `json:"id"`
	ThumbURL string `json:"thumbUrl"`
	FullURL  string `json:"fullUrl"`
}

// ImageSearcher queries a third-party photo API by search term. Failures
// degrade to "no images found" at the call site; they are never fatal.
type ImageSearcher interface {
	Search(ctx context.Context, term string, limit int) ([]ImageResult, error)
}

// OrderEmailItem is one line of the confirmation email.
type OrderEmailItem struct {
	Name     string
	Price    float64
	ImageURL string
}

// OrderEmail is the summary mailed to the customer after submission.
type OrderEmail struct {
	Email        string
	CustomerName string
	Phone        string
	Items        []OrderEmailItem
	Total        float64
}

// EmailSender delivers the order confirmation. Fire-and-forget: a failure is
// logged by the caller, never blocks or reverses the order.
type EmailSender interface {
	SendOrderConfirmation(ctx context.Context, email OrderEmail) error
}

// CardDetails carries the simulated payment form fields.
type CardDetails struct {
	Number string `json:"number"`
	Expiry string `json:"expiry"` // MM/YY
	CVV    string `json:"cvv"`
}

// PaymentProcessor runs the simulated card-payment step. Format checks only;
// no Luhn, no settlement. Returns a confirmation ID that gates submission.
type PaymentProcessor interface {
	Charge(ctx context.Context, card CardDetails, amount float64) (string, error)
}
