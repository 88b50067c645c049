package persistence

import "strings"

// Sort parameters arrive from query strings and end up interpolated into
// ORDER BY clauses, so both the direction and the column name are forced
// through whitelists before any repository uses them.

// ValidateSortOrder normalizes the direction to ASC or DESC, defaulting
// to DESC for anything unrecognized.
func ValidateSortOrder(orderDir string) string {
	if strings.EqualFold(strings.TrimSpace(orderDir), "asc") {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField returns sortField when it is whitelisted, otherwise
// defaultField.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	if trimmed := strings.TrimSpace(sortField); allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// sortable builds a whitelist from the audit columns every table carries
// plus the entity's own sortable columns.
func sortable(columns ...string) map[string]bool {
	fields := map[string]bool{
		"id":         true,
		"created_at": true,
		"updated_at": true,
	}
	for _, c := range columns {
		fields[c] = true
	}
	return fields
}

var (
	// CommonSortFields covers only the shared audit columns.
	CommonSortFields = sortable()

	StoreSortFields   = sortable("name")
	BrandSortFields   = sortable("name", "handle")
	ProductSortFields = sortable("title", "handle", "status")
	UserSortFields    = sortable("email", "first_name", "last_name")
)
