package domain

// TenantScope is the isolation boundary for ledger entries, policies,
// enrollments and claims. One owner may run several sub-groups, so every
// query filters on both fields, never on OwnerID alone.
type TenantScope struct {
	OwnerID     string `json:"ownerID"`
	SubGroupKey string `json:"subGroupKey"`
}

// IsZero reports whether the scope was never resolved.
func (s TenantScope) IsZero() bool {
	return s.OwnerID == "" || s.SubGroupKey == ""
}

func (s TenantScope) String() string {
	return s.OwnerID + "/" + s.SubGroupKey
}

// IsOwner reports whether actorID runs this scope.
func (s TenantScope) IsOwner(actorID string) bool {
	return actorID != "" && s.OwnerID == actorID
}

// Scope is a registered sub-group reachable through its join code.
type Scope struct {
	JoinCode string `json:"joinCode"`
	Name     string `json:"name"`
	TenantScope
	IsActive bool `json:"isActive"`
	AuditFields
}
