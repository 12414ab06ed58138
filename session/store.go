// Package session holds the storefront cart, which lives entirely in
// server-side session state until checkout succeeds. State is keyed by a
// session id (cookie) and the website id: cart_<id> for the lines,
// cart_meta_<id> for fulfillment details and checkout guards.
package session

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CookieName = "ho_session"

	keyCart = "sess:%s:cart_%d"
	keyMeta = "sess:%s:cart_meta_%d"
)

// TTLCart bounds how long an abandoned cart survives.
var TTLCart = 48 * time.Hour

type CartLine struct {
	ProductID uint            `json:"product_id"`
	Name      string          `json:"name"`
	UnitPrice decimal.Decimal `json:"unit_price"`
	Quantity  int             `json:"quantity"`
	OptionIDs []uint          `json:"option_ids,omitempty"`
	Options   string          `json:"options,omitempty"` // readable snapshot of chosen options
}

// CartMeta carries everything checkout needs besides the lines.
type CartMeta struct {
	OrderMethod string `json:"order_method"`
	BranchID    uint   `json:"branch_id"`
	GuestName   string `json:"guest_name"`
	GuestPhone  string `json:"guest_phone"`
	Address     string `json:"address"`
	PickupTime  string `json:"pickup_time"`
	TableNumber string `json:"table_number"`
	Notes       string `json:"notes"`

	// CheckoutSession is the pending gateway session id, set when an online
	// checkout starts. LastOrderID guards against materializing the same
	// session's order twice on the success path.
	CheckoutSession string `json:"checkout_session"`
	LastOrderID     uint   `json:"last_order_id"`
}

type Store interface {
	Cart(ctx context.Context, sid string, websiteID uint) ([]CartLine, error)
	SaveCart(ctx context.Context, sid string, websiteID uint, lines []CartLine) error
	ClearCart(ctx context.Context, sid string, websiteID uint) error
	Meta(ctx context.Context, sid string, websiteID uint) (CartMeta, error)
	SaveMeta(ctx context.Context, sid string, websiteID uint, meta CartMeta) error
}

func cartKey(sid string, websiteID uint) string { return fmt.Sprintf(keyCart, sid, websiteID) }
func metaKey(sid string, websiteID uint) string { return fmt.Sprintf(keyMeta, sid, websiteID) }

// Total sums the cart lines in riyals.
func Total(lines []CartLine) decimal.Decimal {
	total := decimal.Zero
	for _, l := range lines {
		total = total.Add(l.UnitPrice.Mul(decimal.NewFromInt(int64(l.Quantity))))
	}
	return total
}

// SID returns the caller's session id, minting a cookie on first contact.
func SID(c *gin.Context) string {
	if sid, err := c.Cookie(CookieName); err == nil && sid != "" {
		return sid
	}
	sid := uuid.NewString()
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(CookieName, sid, int(TTLCart.Seconds()), "/", "", false, true)
	return sid
}
