package models

// TenantScope is a row of tenant_scopes.
type TenantScope struct {
	JoinCode    string `db:"join_code"`
	OwnerID     string `db:"owner_id"`
	SubGroupKey string `db:"sub_group_key"`
	Name        string `db:"name"`
	IsActive    bool   `db:"is_active"`
	AuditFields
}
