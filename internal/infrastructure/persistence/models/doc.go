// Package models contains GORM-specific persistence models that map to database tables.
// These models are separate from domain entities to keep the domain layer free
// from ORM concerns.
//
// Each model carries the GORM tags and table name, plus ToDomain / FromDomain
// mappers used by the repositories in the parent package.
//
// Structure:
// - base.go: TenantAggregateModel shared by every tenant-owned table
// - sale.go: sales header with its jsonb basket payload, and sale_items
// - payment.go: payments received against sales
// - inventory_item.go: stock-keeping units
// - financial_movement.go: append-only ledger entries
package models
