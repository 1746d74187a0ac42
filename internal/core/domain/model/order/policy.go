package order

import (
	"storefront/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

// RewardPolicy is the store's configuration for what a delivered order earns.
type RewardPolicy struct {
	// CashbackEnabled switches wallet cashback on delivery on or off.
	CashbackEnabled bool
	// CashbackPercent of the order total credited to the wallet.
	CashbackPercent decimal.Decimal
	// PointsPerUnit loyalty points per currency unit of the order total, floored.
	PointsPerUnit decimal.Decimal
}

func (p RewardPolicy) cashbackFor(total kernel.Money) kernel.Money {
	if !p.CashbackEnabled || !p.CashbackPercent.IsPositive() {
		return kernel.ZeroMoney()
	}
	return total.Percent(p.CashbackPercent)
}

func (p RewardPolicy) pointsFor(total kernel.Money) int64 {
	if !p.PointsPerUnit.IsPositive() || !total.IsPositive() {
		return 0
	}
	return total.Decimal().Mul(p.PointsPerUnit).Floor().IntPart()
}
