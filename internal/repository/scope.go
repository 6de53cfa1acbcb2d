package repository

import (
	"fmt"
	"strings"

	"crm-backend/internal/database/models"

	"gorm.io/gorm"
)

// ScopeConfig describes how one resource table relates to profiles and
// teams so the tenant/role filter can be built generically.
type ScopeConfig struct {
	Table          string // resource table, e.g. "accounts"
	ResourceColumn string // FK column inside the join tables, e.g. "account_id"
	AssignedTable  string // m2m join table to profiles, empty when the resource has none
	TeamTable      string // m2m join table to teams, empty when the resource has none
}

// Scope configurations for every tenant-scoped resource. List queries
// must go through Scoped with one of these; ad hoc org filters in
// repositories are a bug.
var (
	AccountScope     = ScopeConfig{Table: "accounts", ResourceColumn: "account_id", AssignedTable: "account_assigned_profiles", TeamTable: "account_teams"}
	ContactScope     = ScopeConfig{Table: "contacts", ResourceColumn: "contact_id", AssignedTable: "contact_assigned_profiles", TeamTable: "contact_teams"}
	TaskScope        = ScopeConfig{Table: "tasks", ResourceColumn: "task_id", AssignedTable: "task_assigned_profiles", TeamTable: "task_teams"}
	InvoiceScope     = ScopeConfig{Table: "invoices", ResourceColumn: "invoice_id", AssignedTable: "invoice_assigned_profiles", TeamTable: "invoice_teams"}
	DocumentScope    = ScopeConfig{Table: "documents", ResourceColumn: "document_id", AssignedTable: "document_shared_profiles", TeamTable: "document_teams"}
	APISettingsScope = ScopeConfig{Table: "api_settings", ResourceColumn: "api_settings_id", AssignedTable: "api_settings_assigned_profiles"}
	EmailScope       = ScopeConfig{Table: "emails", ResourceColumn: "email_id"}
)

// Scoped narrows a query to the rows the acting profile may see.
//
// The organization filter always applies. Non-admin profiles are
// additionally restricted to rows they created, rows they are directly
// assigned to, and rows assigned to one of their teams. Caller-supplied
// filters (name, city, status, ...) must be chained AFTER this call so
// they can never widen the visible set or leak row existence through
// counts and error messages.
func Scoped(db *gorm.DB, cfg ScopeConfig, p *models.Profile) *gorm.DB {
	q := db.Where(cfg.Table+".organization_id = ?", p.OrganizationID)
	if p.IsAdmin() || p.User.IsSuperuser {
		return q
	}

	conds := []string{cfg.Table + ".created_by_id = ?"}
	args := []interface{}{p.ID}

	if cfg.AssignedTable != "" {
		conds = append(conds, fmt.Sprintf("%s.id IN (SELECT %s FROM %s WHERE profile_id = ?)",
			cfg.Table, cfg.ResourceColumn, cfg.AssignedTable))
		args = append(args, p.ID)
	}

	if cfg.TeamTable != "" {
		conds = append(conds, fmt.Sprintf(
			"%s.id IN (SELECT rt.%s FROM %s rt JOIN team_profiles tp ON tp.team_id = rt.team_id WHERE tp.profile_id = ?)",
			cfg.Table, cfg.ResourceColumn, cfg.TeamTable))
		args = append(args, p.ID)
	}

	return q.Where("("+strings.Join(conds, " OR ")+")", args...)
}
