package service

import (
	"strings"

	"github.com/shopspring/decimal"

	"dormku_backend/internals/configs"
)

// Policy for a current reading that has no previous reading to diff
// against. The source data sometimes starts mid-history, so "zero" keeps
// the record with zero usage; "error" rejects the write so the gap is
// fixed at entry time.
type MissingPreviousPolicy string

const (
	MissingPreviousZero  MissingPreviousPolicy = "zero"
	MissingPreviousError MissingPreviousPolicy = "error"
)

func CurrentMissingPreviousPolicy() MissingPreviousPolicy {
	v := strings.ToLower(configs.GetEnv("UTILITY_MISSING_PREVIOUS_POLICY", string(MissingPreviousZero)))
	if v == string(MissingPreviousError) {
		return MissingPreviousError
	}
	return MissingPreviousZero
}

// DeriveUsage computes metered usage from a previous/current pair.
// Usage never goes negative: a rolled-over or corrected meter clamps to 0.
// ok=false means there was no previous reading and the policy is "error".
func DeriveUsage(previous *decimal.Decimal, current decimal.Decimal, policy MissingPreviousPolicy) (usage decimal.Decimal, ok bool) {
	if previous == nil {
		if policy == MissingPreviousError {
			return decimal.Zero, false
		}
		return decimal.Zero, true
	}
	u := current.Sub(*previous)
	if u.IsNegative() {
		return decimal.Zero, true
	}
	return u, true
}

// DeriveCost is usage × rate.
func DeriveCost(usage, rate decimal.Decimal) decimal.Decimal {
	return usage.Mul(rate)
}
