package mapping

import (
	"github.com/SscSPs/claims_ledger/internal/core/domain"
	"github.com/SscSPs/claims_ledger/internal/models"
)

// ToModelScope converts a domain Scope to a model TenantScope
func ToModelScope(d domain.Scope) models.TenantScope {
	return models.TenantScope{
		JoinCode:    d.JoinCode,
		OwnerID:     d.OwnerID,
		SubGroupKey: d.SubGroupKey,
		Name:        d.Name,
		IsActive:    d.IsActive,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainScope converts a model TenantScope to a domain Scope
func ToDomainScope(m models.TenantScope) domain.Scope {
	return domain.Scope{
		JoinCode:    m.JoinCode,
		Name:        m.Name,
		TenantScope: domain.TenantScope{OwnerID: m.OwnerID, SubGroupKey: m.SubGroupKey},
		IsActive:    m.IsActive,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
