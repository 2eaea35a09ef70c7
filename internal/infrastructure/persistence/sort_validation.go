package persistence

import (
	"strings"
)

// ValidateSortOrder validates and normalizes the sort order to ASC or DESC.
// Returns "DESC" as the default if the input is invalid or empty.
func ValidateSortOrder(orderDir string) string {
	normalized := strings.ToUpper(strings.TrimSpace(orderDir))
	if normalized == "ASC" {
		return "ASC"
	}
	return "DESC"
}

// ValidateSortField validates the sort field against a whitelist of allowed fields.
// Returns the defaultField if the input is invalid, empty, or not in the whitelist.
func ValidateSortField(sortField string, allowedFields map[string]bool, defaultField string) string {
	trimmed := strings.TrimSpace(sortField)
	if trimmed == "" {
		return defaultField
	}
	if allowedFields[trimmed] {
		return trimmed
	}
	return defaultField
}

// BuildingSortFields contains allowed sort fields for buildings
var BuildingSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"address":    true,
}

// RoomSortFields contains allowed sort fields for rooms
var RoomSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"building_id": true,
	"name":        true,
	"price":       true,
	"status":      true,
	"area":        true,
}

// TenantSortFields contains allowed sort fields for tenants
var TenantSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"full_name":  true,
	"phone":      true,
	"email":      true,
}

// ContractSortFields contains allowed sort fields for contracts
var ContractSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"room_id":    true,
	"tenant_id":  true,
	"start_date": true,
	"end_date":   true,
	"price":      true,
	"is_active":  true,
}

// ServiceSortFields contains allowed sort fields for utility services
var ServiceSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"name":       true,
	"type":       true,
	"unit_price": true,
	"is_enabled": true,
}

// ReadingSortFields contains allowed sort fields for meter readings
var ReadingSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"updated_at": true,
	"room_id":    true,
	"service_id": true,
	"month":      true,
	"new_index":  true,
	"is_billed":  true,
}

// InvoiceSortFields contains allowed sort fields for invoices
var InvoiceSortFields = map[string]bool{
	"id":          true,
	"created_at":  true,
	"updated_at":  true,
	"code":        true,
	"contract_id": true,
	"room_id":     true,
	"tenant_id":   true,
	"month":       true,
	"total":       true,
	"paid_amount": true,
	"status":      true,
	"due_date":    true,
	"issued_at":   true,
}

// TransactionSortFields contains allowed sort fields for payment transactions
var TransactionSortFields = map[string]bool{
	"id":         true,
	"created_at": true,
	"invoice_id": true,
	"amount":     true,
	"method":     true,
	"source":     true,
	"paid_at":    true,
}

// UserSortFields contains allowed sort fields for users
var UserSortFields = map[string]bool{
	"id":            true,
	"created_at":    true,
	"updated_at":    true,
	"email":         true,
	"full_name":     true,
	"role":          true,
	"is_active":     true,
	"last_login_at": true,
}
