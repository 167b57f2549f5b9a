package models

// Category mirrors a row of the categories table.
type Category struct {
	CategoryID string  `db:"id"`
	UserID     string  `db:"user_id"`
	Name       string  `db:"name"`
	Type       string  `db:"type"`
	Color      *string `db:"color"` // Nullable
	Icon       *string `db:"icon"`  // Nullable
	AuditFields
}
