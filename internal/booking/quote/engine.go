// Package quote implements the rental price calculation. It is pure and
// side-effect free: the same inputs always produce the same breakdown, and
// the engine is re-run in full on every configuration change.
//
// All money is integer cents. Tier discounts are basis points off the daily
// rate. The only float arithmetic is the discount multiplication, rounded to
// whole cents per component so that the component sum equals the total
// exactly.
package quote

import (
	"math"
	"time"

	"github.com/google/uuid"
)

// MileageOption is the customer's mileage choice.
type MileageOption string

const (
	// MileageIncluded keeps the rate plan's included km allowance.
	MileageIncluded MileageOption = "INCLUDED"
	// MileageUnlimited requests unlimited km, surcharged when the rate plan
	// does not already include it.
	MileageUnlimited MileageOption = "UNLIMITED"
)

// Extra price types.
const (
	PriceTypePerDay  = "PER_DAY"
	PriceTypeOneTime = "ONE_TIME"
)

// UnlimitedKmSurchargePerDayCents is the flat daily surcharge for choosing
// unlimited mileage on a rate plan that meters kilometers.
const UnlimitedKmSurchargePerDayCents int64 = 1500

// RateModel is the pricing terms of one rentable vehicle. Exactly one rate
// model is considered at quote time; callers pick the active plan with the
// lowest daily price.
type RateModel struct {
	DailyPriceCents   int64
	WeeklyPriceCents  *int64
	MonthlyPriceCents *int64
	Discount3DaysBps  *int
	Discount7DaysBps  *int
	Discount30DaysBps *int
	KmIncluded        int
	ExtraKmPriceCents int64
	UnlimitedKm       bool
	DepositCents      int64
}

// Extra is one bookable extra option from the catalog.
type Extra struct {
	ID          uuid.UUID
	Name        string
	PriceType   string
	PriceCents  int64
	MaxQuantity int
}

// InsurancePlan is one optional insurance upgrade from the catalog.
type InsurancePlan struct {
	ID               uuid.UUID
	Name             string
	PricePerDayCents int64
	FranchiseCents   int64
}

// ExtraSelection pairs an extra id with a chosen quantity. Order is the
// customer's selection order and is preserved in the breakdown.
type ExtraSelection struct {
	ID       uuid.UUID
	Quantity int
}

// Config is one immutable rental configuration. A zero pickup or return time
// means "not chosen yet".
type Config struct {
	PickupAt        time.Time
	ReturnAt        time.Time
	Mileage         MileageOption
	Extras          []ExtraSelection
	InsurancePlanID *uuid.UUID
}

// LineItem is one priced extra in the breakdown.
type LineItem struct {
	Name       string `json:"name"`
	TotalCents int64  `json:"totalCents"`
}

// Breakdown is the computed price decomposition for one configuration.
// It is recomputed wholesale on every change and snapshotted verbatim into a
// lead at submission time.
type Breakdown struct {
	RentalDays              int        `json:"rentalDays"`
	EffectiveDailyRateCents int64      `json:"effectiveDailyRateCents"`
	BasePriceCents          int64      `json:"basePriceCents"`
	MileageSurchargeCents   int64      `json:"mileageSurchargeCents"`
	ExtrasItems             []LineItem `json:"extrasItems"`
	ExtrasTotalCents        int64      `json:"extrasTotalCents"`
	InsuranceTotalCents     int64      `json:"insuranceTotalCents"`
	InsurancePlanName       string     `json:"insurancePlanName,omitempty"`
	TotalCents              int64      `json:"totalCents"`
	DepositDueCents         int64      `json:"depositDueCents"`
}

// RentalDays converts a pickup/return pair to billable days: any started
// 24h window bills as a full day, with a minimum of one day.
func RentalDays(pickupAt, returnAt time.Time) int {
	diff := returnAt.Sub(pickupAt)
	days := int(math.Ceil(diff.Hours() / 24))
	if days < 1 {
		days = 1
	}
	return days
}

// Compute derives the price breakdown for a configuration against a rate
// model and the extras/insurance catalogs. It returns nil when no quote
// exists yet: missing dates, return not after pickup, or no rate model.
// Unknown extra or insurance ids are skipped, not errors.
func Compute(cfg Config, rate *RateModel, extras []Extra, plans []InsurancePlan) *Breakdown {
	if rate == nil || cfg.PickupAt.IsZero() || cfg.ReturnAt.IsZero() {
		return nil
	}
	if !cfg.ReturnAt.After(cfg.PickupAt) {
		return nil
	}

	days := RentalDays(cfg.PickupAt, cfg.ReturnAt)

	// Tier discount: highest qualifying tier wins, tiers never stack.
	dailyRate := float64(rate.DailyPriceCents)
	switch {
	case days >= 30 && rate.Discount30DaysBps != nil:
		dailyRate *= 1 - float64(*rate.Discount30DaysBps)/10000
	case days >= 7 && rate.Discount7DaysBps != nil:
		dailyRate *= 1 - float64(*rate.Discount7DaysBps)/10000
	case days >= 3 && rate.Discount3DaysBps != nil:
		dailyRate *= 1 - float64(*rate.Discount3DaysBps)/10000
	}

	// Weekly/monthly block rates replace the per-day base only when strictly
	// cheaper. Monthly is checked first and the two never combine.
	basePrice := dailyRate * float64(days)
	if days >= 30 && rate.MonthlyPriceCents != nil {
		months := days / 30
		remainder := days - months*30
		candidate := float64(months)*float64(*rate.MonthlyPriceCents) + float64(remainder)*dailyRate
		if candidate < basePrice {
			basePrice = candidate
		}
	} else if days >= 7 && rate.WeeklyPriceCents != nil {
		weeks := days / 7
		remainder := days - weeks*7
		candidate := float64(weeks)*float64(*rate.WeeklyPriceCents) + float64(remainder)*dailyRate
		if candidate < basePrice {
			basePrice = candidate
		}
	}

	var mileageSurcharge int64
	if cfg.Mileage == MileageUnlimited && !rate.UnlimitedKm {
		mileageSurcharge = UnlimitedKmSurchargePerDayCents * int64(days)
	}

	extrasItems, extrasTotal := priceExtras(cfg.Extras, extras, days)

	var insuranceTotal int64
	var insuranceName string
	if cfg.InsurancePlanID != nil {
		if plan := findPlan(plans, *cfg.InsurancePlanID); plan != nil {
			insuranceTotal = plan.PricePerDayCents * int64(days)
			insuranceName = plan.Name
		}
	}

	basePriceCents := roundCents(basePrice)
	total := basePriceCents + mileageSurcharge + extrasTotal + insuranceTotal

	return &Breakdown{
		RentalDays:              days,
		EffectiveDailyRateCents: roundCents(dailyRate),
		BasePriceCents:          basePriceCents,
		MileageSurchargeCents:   mileageSurcharge,
		ExtrasItems:             extrasItems,
		ExtrasTotalCents:        extrasTotal,
		InsuranceTotalCents:     insuranceTotal,
		InsurancePlanName:       insuranceName,
		TotalCents:              total,
		DepositDueCents:         rate.DepositCents,
	}
}

// priceExtras totals the selected extras in selection order. Unknown ids and
// non-positive quantities are skipped silently.
func priceExtras(selected []ExtraSelection, catalog []Extra, days int) ([]LineItem, int64) {
	items := make([]LineItem, 0, len(selected))
	var total int64

	for _, sel := range selected {
		if sel.Quantity <= 0 {
			continue
		}
		extra := findExtra(catalog, sel.ID)
		if extra == nil {
			continue
		}

		qty := sel.Quantity
		if extra.MaxQuantity >= 1 && qty > extra.MaxQuantity {
			qty = extra.MaxQuantity
		}

		var lineTotal int64
		if extra.PriceType == PriceTypePerDay {
			lineTotal = extra.PriceCents * int64(days) * int64(qty)
		} else {
			lineTotal = extra.PriceCents * int64(qty)
		}

		items = append(items, LineItem{Name: extra.Name, TotalCents: lineTotal})
		total += lineTotal
	}

	return items, total
}

func findExtra(catalog []Extra, id uuid.UUID) *Extra {
	for i := range catalog {
		if catalog[i].ID == id {
			return &catalog[i]
		}
	}
	return nil
}

func findPlan(plans []InsurancePlan, id uuid.UUID) *InsurancePlan {
	for i := range plans {
		if plans[i].ID == id {
			return &plans[i]
		}
	}
	return nil
}

func roundCents(v float64) int64 {
	return int64(math.Round(v))
}
