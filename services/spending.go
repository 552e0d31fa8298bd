package services

import (
	"strings"
	"time"
)

// CatalogItem is a purchasable product with its internet and local prices.
type CatalogItem struct {
	ID               string    `json:"id"`
	Name             string    `json:"name"`
	Description      string    `json:"description,omitempty"`
	UnitPrice        int64     `json:"unit_price"`
	Category         string    `json:"category"`
	Link             string    `json:"link,omitempty"`
	LocalPrice       *int64    `json:"local_price,omitempty"`
	LocalDescription string    `json:"local_description,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Created          time.Time `json:"created"`
	Updated          time.Time `json:"updated"`
}

// Expense is a purchase of some quantity of a catalog item for a room.
type Expense struct {
	ID       string    `json:"id"`
	ItemID   string    `json:"item"`
	Quantity int64     `json:"quantity"`
	Room     string    `json:"room"`
	Floor    int       `json:"floor"`
	Date     string    `json:"date"`
	Paid     bool      `json:"paid"`
	PaidBy   *string   `json:"paid_by"`
	Notes    string    `json:"notes,omitempty"`
	Created  time.Time `json:"created"`
	Updated  time.Time `json:"updated"`
}

// Catalog indexes items by id for amount lookups.
type Catalog map[string]CatalogItem

// NewCatalog builds a Catalog from a list of items.
func NewCatalog(items []CatalogItem) Catalog {
	c := make(Catalog, len(items))
	for _, it := range items {
		c[it.ID] = it
	}
	return c
}

// ExpenseAmount returns unit price x quantity, or zero when the referenced
// item is not in the catalog.
func (c Catalog) ExpenseAmount(e Expense) int64 {
	it, ok := c[e.ItemID]
	if !ok {
		return 0
	}
	return it.UnitPrice * e.Quantity
}

// ExpenseFilter narrows a list of expenses. Zero values match everything.
type ExpenseFilter struct {
	Room     string
	Floor    *int
	Category string
}

// Match reports whether an expense passes the filter.
func (f ExpenseFilter) Match(e Expense, c Catalog) bool {
	if f.Room != "" && e.Room != f.Room {
		return false
	}
	if f.Floor != nil && e.Floor != *f.Floor {
		return false
	}
	if f.Category != "" {
		it, ok := c[e.ItemID]
		if !ok || it.Category != f.Category {
			return false
		}
	}
	return true
}

// Apply returns the expenses matching the filter, preserving order.
func (f ExpenseFilter) Apply(expenses []Expense, c Catalog) []Expense {
	out := make([]Expense, 0, len(expenses))
	for _, e := range expenses {
		if f.Match(e, c) {
			out = append(out, e)
		}
	}
	return out
}

// SpendingTotals summarises monetary amounts over a set of expenses.
type SpendingTotals struct {
	Total      int64            `json:"total"`
	Paid       int64            `json:"paid"`
	Pending    int64            `json:"pending"`
	Units      int64            `json:"units"`
	ByFloor    map[int]int64    `json:"by_floor"`
	ByRoom     map[string]int64 `json:"by_room"`
	ByCategory map[string]int64 `json:"by_category"`
	ByPayer    map[string]int64 `json:"by_payer"`
}

// Spending computes totals for the given expenses against the catalog.
func Spending(expenses []Expense, c Catalog) SpendingTotals {
	t := SpendingTotals{
		ByFloor:    make(map[int]int64),
		ByRoom:     make(map[string]int64),
		ByCategory: make(map[string]int64),
		ByPayer:    make(map[string]int64),
	}
	for _, e := range expenses {
		amount := c.ExpenseAmount(e)
		t.Total += amount
		t.Units += e.Quantity
		t.ByFloor[e.Floor] += amount
		t.ByRoom[e.Room] += amount
		if it, ok := c[e.ItemID]; ok {
			t.ByCategory[it.Category] += amount
		}
		if e.Paid {
			t.Paid += amount
			if e.PaidBy != nil && *e.PaidBy != "" {
				t.ByPayer[*e.PaidBy] += amount
			}
		} else {
			t.Pending += amount
		}
	}
	return t
}

// Contributor is a household member funding the build.
type Contributor struct {
	ID           string `json:"id" mapstructure:"id"`
	Name         string `json:"name" mapstructure:"name"`
	Contribution int64  `json:"contribution" mapstructure:"contribution"`
}

// BudgetSummary compares the pooled contributions against spending.
type BudgetSummary struct {
	Budget      int64   `json:"budget"`
	Spent       int64   `json:"spent"`
	Paid        int64   `json:"paid"`
	Remaining   int64   `json:"remaining"`
	UsedPercent float64 `json:"used_percent"`
}

// Budget builds the budget summary for a set of contributors.
func Budget(contributors []Contributor, s SpendingTotals) BudgetSummary {
	var b BudgetSummary
	for _, c := range contributors {
		b.Budget += c.Contribution
	}
	b.Spent = s.Total
	b.Paid = s.Paid
	b.Remaining = b.Budget - b.Spent
	if b.Budget != 0 {
		b.UsedPercent = float64(b.Spent) / float64(b.Budget) * 100
	}
	return b
}

// ItemUsage counts how many expenses reference each item.
func ItemUsage(expenses []Expense) map[string]int {
	usage := make(map[string]int)
	for _, e := range expenses {
		usage[e.ItemID]++
	}
	return usage
}

// SearchItems returns the items whose name, description or category label
// contain the query, case-insensitively. An empty query returns every item.
func SearchItems(items []CatalogItem, query string) []CatalogItem {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return items
	}
	out := make([]CatalogItem, 0, len(items))
	for _, it := range items {
		if strings.Contains(strings.ToLower(it.Name), q) ||
			strings.Contains(strings.ToLower(it.Description), q) ||
			strings.Contains(strings.ToLower(CategoryName(it.Category)), q) {
			out = append(out, it)
		}
	}
	return out
}
