package share

import (
	"fmt"
	"net/url"
	"strconv"
	"strings"

	"github.com/mmynk/dinesplit/internal/models"
	"github.com/mmynk/dinesplit/internal/money"
)

// DefaultPaymentBaseURL is used when no payment endpoint is configured.
const DefaultPaymentBaseURL = "https://payment.example.com/pay"

// FormatBreakdown renders the per-diner totals as a message suitable for a
// chat app:
//
//	💰 Bistro Central Bill Split
//
//	Alice: $35.00
//	  (Subtotal: $27.50 + Tax: $2.34 + Tip: $4.95)
//
//	Tax: 8.5% | Tip: 18%
func FormatBreakdown(bill models.Bill, totals []models.DinerTotal) string {
	var b strings.Builder
	fmt.Fprintf(&b, "💰 %s Bill Split\n\n", bill.Name)
	for _, t := range totals {
		fmt.Fprintf(&b, "%s: %s\n", t.Name, money.Format(t.RoundedTotal))
		fmt.Fprintf(&b, "  (Subtotal: %s + Tax: %s + Tip: %s)\n\n",
			money.Format(t.Subtotal), money.Format(t.TaxAmount), money.Format(t.TipAmount))
	}
	fmt.Fprintf(&b, "Tax: %s%% | Tip: %s%%", percent(bill.TaxRate), percent(bill.TipRate))
	return b.String()
}

// PaymentLink builds the URL a diner opens to pay amount to recipient.
func PaymentLink(baseURL, recipient string, amount float64) (string, error) {
	if baseURL == "" {
		baseURL = DefaultPaymentBaseURL
	}
	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("invalid payment base url: %w", err)
	}
	q := u.Query()
	q.Set("amount", money.Plain(amount))
	q.Set("recipient", recipient)
	u.RawQuery = q.Encode()
	return u.String(), nil
}

// percent renders a rate fraction as a percentage without trailing zeros.
func percent(rate float64) string {
	return strconv.FormatFloat(money.Round2(rate*100), 'f', -1, 64)
}
