package domain

// Category labels transactions of a single type. Unique per (owner, name, type).
type Category struct {
	CategoryID string          `json:"id"`
	UserID     string          `json:"userId"`
	Name       string          `json:"name"`
	Type       TransactionType `json:"type"`
	Color      *string         `json:"color,omitempty"`
	Icon       *string         `json:"icon,omitempty"`
	AuditFields
}

// CategorySummary is the display metadata embedded in transaction reads.
type CategorySummary struct {
	Name  string  `json:"name"`
	Color *string `json:"color,omitempty"`
	Icon  *string `json:"icon,omitempty"`
}
