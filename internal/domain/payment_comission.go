package domain

import "math"

// PaymentComission is the percentage we charge on a job's payment.
type PaymentComission struct {
	Percentage int `json:"percentage"`
}

// PaymentTier groups active jobs by how well they pay.
type PaymentTier string

const (
	PaymentTierGreat   PaymentTier = "great_payed"
	PaymentTierNoGreat PaymentTier = "no_great_payed"
)

// GreatPaymentThreshold separates well paid jobs from the rest.
const GreatPaymentThreshold = 50

// CommissionTier applies Percentage to amounts strictly greater than
// ExclusiveLowerBound.
type CommissionTier struct {
	ExclusiveLowerBound int
	Percentage          int
}

// CommissionTable is evaluated top-down; the first matching tier wins.
type CommissionTable []CommissionTier

var DefaultCommissionTable = CommissionTable{
	{ExclusiveLowerBound: GreatPaymentThreshold, Percentage: 20},
	{ExclusiveLowerBound: math.MinInt, Percentage: 10},
}

// RateFor returns the commission for amount. An empty table yields 0%.
func (t CommissionTable) RateFor(amount int) PaymentComission {
	for _, tier := range t {
		if amount > tier.ExclusiveLowerBound {
			return PaymentComission{Percentage: tier.Percentage}
		}
	}
	if len(t) > 0 {
		return PaymentComission{Percentage: t[len(t)-1].Percentage}
	}
	return PaymentComission{}
}
