package mapping

import (
	"github.com/qaidhq/qaid_ledger/internal/core/domain"
	"github.com/qaidhq/qaid_ledger/internal/models"
)

// ToModelPartner converts a domain Partner to a model Partner
func ToModelPartner(d domain.Partner) models.Partner {
	return models.Partner{
		PartnerID:   d.PartnerID,
		Name:        d.Name,
		Kind:        string(d.Kind),
		Phone:       d.Phone,
		Email:       d.Email,
		IsActive:    d.IsActive,
		Balance:     d.Balance,
		AuditFields: ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPartner converts a model Partner to a domain Partner
func ToDomainPartner(m models.Partner) domain.Partner {
	return domain.Partner{
		PartnerID:   m.PartnerID,
		Name:        m.Name,
		Kind:        domain.PartnerKind(m.Kind),
		Phone:       m.Phone,
		Email:       m.Email,
		IsActive:    m.IsActive,
		Balance:     m.Balance,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}

// ToModelPartnerTransaction converts a domain PartnerTransaction to its model
func ToModelPartnerTransaction(d domain.PartnerTransaction) models.PartnerTransaction {
	return models.PartnerTransaction{
		TransactionID:     d.TransactionID,
		TransactionNumber: d.TransactionNumber,
		Date:              d.Date,
		PartnerID:         d.PartnerID,
		TransactionType:   string(d.TransactionType),
		Direction:         string(d.Direction),
		Amount:            d.Amount,
		ReferenceType:     string(d.ReferenceType),
		ReferenceID:       d.ReferenceID,
		Description:       d.Description,
		BalanceAfter:      d.BalanceAfter,
		AuditFields:       ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPartnerTransaction converts a model PartnerTransaction to its domain form
func ToDomainPartnerTransaction(m models.PartnerTransaction) domain.PartnerTransaction {
	return domain.PartnerTransaction{
		TransactionID:     m.TransactionID,
		TransactionNumber: m.TransactionNumber,
		Date:              m.Date,
		PartnerID:         m.PartnerID,
		TransactionType:   domain.PartnerTransactionType(m.TransactionType),
		Direction:         domain.Direction(m.Direction),
		Amount:            m.Amount,
		ReferenceType:     domain.ReferenceType(m.ReferenceType),
		ReferenceID:       m.ReferenceID,
		Description:       m.Description,
		BalanceAfter:      m.BalanceAfter,
		AuditFields:       ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainPartnerTransactionSlice converts model partner transactions to domain form
func ToDomainPartnerTransactionSlice(ms []models.PartnerTransaction) []domain.PartnerTransaction {
	ds := make([]domain.PartnerTransaction, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainPartnerTransaction(m)
	}
	return ds
}
