package models

// ScopedTable pairs a tenant-scoped table name with its model prototype.
// The list is the closed set of tables subject to isolation rules; DDL and
// backfill tooling never accept a table name outside it.
type ScopedTable struct {
	Name  string
	Model any
}

// ScopedTables enumerates every table carrying a tenant_id column, in the
// order the backfill migrator processes them.
var ScopedTables = []ScopedTable{
	{"users", &UserModel{}},
	{"paintings", &PaintingModel{}},
	{"carts", &CartModel{}},
	{"cart_items", &CartItemModel{}},
	{"orders", &OrderModel{}},
	{"order_items", &OrderItemModel{}},
	{"exhibitions", &ExhibitionModel{}},
	{"custom_requests", &CustomRequestModel{}},
	{"notifications", &NotificationModel{}},
	{"favorites", &FavoriteModel{}},
	{"settings", &SettingModel{}},
	{"stripe_events", &StripeEventModel{}},
	{"saas_sites", &SaasSiteModel{}},
}

// IsScopedTable reports whether name belongs to the closed scoped-table set.
func IsScopedTable(name string) bool {
	for _, t := range ScopedTables {
		if t.Name == name {
			return true
		}
	}
	return false
}

// AllModels returns the model prototypes for every table, tenants included.
// Used by AutoMigrate in development and tests.
func AllModels() []any {
	out := []any{&TenantModel{}}
	for _, t := range ScopedTables {
		out = append(out, t.Model)
	}
	return out
}
