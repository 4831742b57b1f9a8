package domain

import "time"

// OrderMenuItem links an order to one selected menu item. OrderID is 0 on
// submission; the backend assigns the real ID.
type OrderMenuItem struct {
	OrderID    int64 `json:"orderId"`
	MenuItemID int64 `json:"menuItemId"`
}

// Order is the backend-owned record of a submitted order. The client never
// assigns ID; it is echoed back by the backend.
type Order struct {
	ID             int64           `json:"id,omitempty"`
	CustomerName   string          `json:"customerName"`
	Phone          string          `json:"phone"`
	Email          string          `json:"email"`
	OrderDate      string          `json:"orderDate"`
	OrderMenuItems []OrderMenuItem `json:"orderMenuItems"`
}

// OrderDraft is an in-progress, unsubmitted order under construction.
// Selected item IDs form a set: order-insignificant, duplicates collapsed.
type OrderDraft struct {
	ID                  string  `json:"id"`
	CustomerName        string  `json:"customerName"`
	Email               string  `json:"email"`
	Phone               string  `json:"phone"`
	OrderDate           string  `json:"orderDate"`
	SelectedMenuItemIDs []int64 `json:"selectedMenuItemIds"`
	// RequireEmail is set when the draft was created by an authenticated
	// principal: the email is pre-filled from the token and must stay set.
	RequireEmail   bool      `json:"requireEmail"`
	PaymentConfirm string    `json:"paymentConfirm,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

// ToggleItem adds id to the selection, or removes it if already selected.
// Toggling the same id twice restores the original selection.
func (d *OrderDraft) ToggleItem(id int64) {
	for i, existing := range d.SelectedMenuItemIDs {
		if existing == id {
			d.SelectedMenuItemIDs = append(d.SelectedMenuItemIDs[:i], d.SelectedMenuItemIDs[i+1:]...)
			return
		}
	}
	d.SelectedMenuItemIDs = append(d.SelectedMenuItemIDs, id)
}

func (d *OrderDraft) HasItem(id int64) bool {
	for _, existing := range d.SelectedMenuItemIDs {
		if existing == id {
			return true
		}
	}
	return false
}

// Total sums the price of every selected id found in catalog. Ids missing
// from the catalog contribute 0 rather than failing: a selection may go stale
// between fetch and submit and the aggregation stays tolerant.
func (d *OrderDraft) Total(catalog []MenuItem) float64 {
	prices := make(map[int64]float64, len(catalog))
	for _, item := range catalog {
		prices[item.ID] = item.Price
	}
	var total float64
	for _, id := range d.SelectedMenuItemIDs {
		total += prices[id]
	}
	return total
}

// Paid reports whether the simulated payment step has confirmed this draft.
func (d *OrderDraft) Paid() bool {
	return d.PaymentConfirm != ""
}
