package quote

import (
	"reflect"
	"testing"
	"time"

	"github.com/google/uuid"
)

func intPtr(v int) *int       { return &v }
func centsPtr(v int64) *int64 { return &v }

func baseConfig(days int) Config {
	pickup := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)
	return Config{
		PickupAt: pickup,
		ReturnAt: pickup.AddDate(0, 0, days),
		Mileage:  MileageIncluded,
	}
}

func TestComputeReturnsNilWithoutDatesOrRate(t *testing.T) {
	rate := &RateModel{DailyPriceCents: 10000}

	if got := Compute(Config{}, rate, nil, nil); got != nil {
		t.Fatalf("expected nil breakdown without dates, got %+v", got)
	}

	cfg := baseConfig(3)
	if got := Compute(cfg, nil, nil, nil); got != nil {
		t.Fatalf("expected nil breakdown without rate model, got %+v", got)
	}

	inverted := cfg
	inverted.ReturnAt = inverted.PickupAt.Add(-time.Hour)
	if got := Compute(inverted, rate, nil, nil); got != nil {
		t.Fatalf("expected nil breakdown for inverted dates, got %+v", got)
	}

	same := cfg
	same.ReturnAt = same.PickupAt
	if got := Compute(same, rate, nil, nil); got != nil {
		t.Fatalf("expected nil breakdown when return equals pickup, got %+v", got)
	}
}

func TestRentalDaysBillsPartialDayAsFullDay(t *testing.T) {
	pickup := time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC)

	if days := RentalDays(pickup, pickup.Add(3*time.Hour)); days != 1 {
		t.Fatalf("3-hour rental: expected 1 day, got %d", days)
	}
	if days := RentalDays(pickup, pickup.Add(24*time.Hour)); days != 1 {
		t.Fatalf("exactly 24h: expected 1 day, got %d", days)
	}
	if days := RentalDays(pickup, pickup.Add(25*time.Hour)); days != 2 {
		t.Fatalf("25h rental: expected 2 days, got %d", days)
	}
}

func TestNoDiscountBelowThreeDays(t *testing.T) {
	rate := &RateModel{
		DailyPriceCents:  12000,
		Discount3DaysBps: intPtr(500),
		Discount7DaysBps: intPtr(1000),
	}

	for days := 1; days < 3; days++ {
		b := Compute(baseConfig(days), rate, nil, nil)
		if b == nil {
			t.Fatalf("expected breakdown for %d days", days)
		}
		if b.EffectiveDailyRateCents != rate.DailyPriceCents {
			t.Fatalf("%d days: expected undiscounted rate %d, got %d", days, rate.DailyPriceCents, b.EffectiveDailyRateCents)
		}
	}
}

func TestThreeDayTierAppliesAndHigherTiersDoNot(t *testing.T) {
	rate := &RateModel{
		DailyPriceCents:   10000,
		Discount3DaysBps:  intPtr(500),
		Discount7DaysBps:  intPtr(1000),
		Discount30DaysBps: intPtr(2000),
	}

	for days := 3; days < 7; days++ {
		b := Compute(baseConfig(days), rate, nil, nil)
		if b.EffectiveDailyRateCents != 9500 {
			t.Fatalf("%d days: expected 9500 (5%% off), got %d", days, b.EffectiveDailyRateCents)
		}
	}
}

func TestHighestTierWinsExclusively(t *testing.T) {
	rate := &RateModel{
		DailyPriceCents:   10000,
		Discount3DaysBps:  intPtr(500),
		Discount7DaysBps:  intPtr(1000),
		Discount30DaysBps: intPtr(2000),
	}

	b := Compute(baseConfig(30), rate, nil, nil)
	if b.EffectiveDailyRateCents != 8000 {
		t.Fatalf("30 days: expected 8000 (20%% off only), got %d", b.EffectiveDailyRateCents)
	}
}

func TestEffectiveRateMonotonicAcrossTierBoundaries(t *testing.T) {
	rate := &RateModel{
		DailyPriceCents:   10000,
		Discount3DaysBps:  intPtr(500),
		Discount7DaysBps:  intPtr(1000),
		Discount30DaysBps: intPtr(2000),
	}

	prev := int64(1 << 62)
	for days := 1; days <= 35; days++ {
		b := Compute(baseConfig(days), rate, nil, nil)
		if b.EffectiveDailyRateCents > prev {
			t.Fatalf("day %d: effective rate %d rose above previous %d", days, b.EffectiveDailyRateCents, prev)
		}
		prev = b.EffectiveDailyRateCents
	}
}

func TestWeeklyOverrideWinsWhenCheaper(t *testing.T) {
	// Scenario B from the rate card: daily 100, weekly 600, 10% 7-day
	// discount. Tier-discounted candidate is 90x7=630; weekly 600 wins.
	rate := &RateModel{
		DailyPriceCents:  10000,
		WeeklyPriceCents: centsPtr(60000),
		Discount7DaysBps: intPtr(1000),
	}

	b := Compute(baseConfig(7), rate, nil, nil)
	if b.BasePriceCents != 60000 {
		t.Fatalf("expected weekly override base 60000, got %d", b.BasePriceCents)
	}
	if b.EffectiveDailyRateCents != 9000 {
		t.Fatalf("expected effective rate 9000, got %d", b.EffectiveDailyRateCents)
	}
}

func TestWeeklyOverrideIgnoredWhenNotCheaper(t *testing.T) {
	rate := &RateModel{
		DailyPriceCents:  10000,
		WeeklyPriceCents: centsPtr(75000),
	}

	b := Compute(baseConfig(7), rate, nil, nil)
	if b.BasePriceCents != 70000 {
		t.Fatalf("expected pure per-day base 70000, got %d", b.BasePriceCents)
	}
}

func TestBlockOverrideNeverRaisesBasePrice(t *testing.T) {
	weekly := []int64{40000, 60000, 65000, 69999, 70000, 70001, 90000}
	for _, w := range weekly {
		rate := &RateModel{DailyPriceCents: 10000, WeeklyPriceCents: centsPtr(w)}
		withBlock := Compute(baseConfig(7), rate, nil, nil)
		withoutBlock := Compute(baseConfig(7), &RateModel{DailyPriceCents: 10000}, nil, nil)
		if withBlock.BasePriceCents > withoutBlock.BasePriceCents {
			t.Fatalf("weekly %d: block override raised base from %d to %d", w, withoutBlock.BasePriceCents, withBlock.BasePriceCents)
		}
	}
}

func TestMonthlyOverrideCombinesMonthsAndRemainderDays(t *testing.T) {
	rate := &RateModel{
		DailyPriceCents:   10000,
		MonthlyPriceCents: centsPtr(200000),
	}

	// 35 days: 1 month at 2000 + 5 remainder days at 100 = 2500 < 3500.
	b := Compute(baseConfig(35), rate, nil, nil)
	if b.BasePriceCents != 250000 {
		t.Fatalf("expected 250000, got %d", b.BasePriceCents)
	}
}

func TestMonthlyCheckedBeforeWeeklyAndNeverCombined(t *testing.T) {
	rate := &RateModel{
		DailyPriceCents:   10000,
		WeeklyPriceCents:  centsPtr(10000), // absurdly cheap, must not be used at 30+ days
		MonthlyPriceCents: centsPtr(350000),
	}

	// Monthly candidate (3500) is not cheaper than 30x100=3000, and the
	// weekly branch must not be consulted once the monthly tier matched.
	b := Compute(baseConfig(30), rate, nil, nil)
	if b.BasePriceCents != 300000 {
		t.Fatalf("expected per-day base 300000, got %d", b.BasePriceCents)
	}
}

func TestUnlimitedMileageSurcharge(t *testing.T) {
	rate := &RateModel{DailyPriceCents: 10000}

	cfg := baseConfig(4)
	cfg.Mileage = MileageUnlimited
	b := Compute(cfg, rate, nil, nil)
	if b.MileageSurchargeCents != 1500*4 {
		t.Fatalf("expected surcharge 6000, got %d", b.MileageSurchargeCents)
	}

	// Rate already unlimited: no surcharge regardless of the choice.
	rate.UnlimitedKm = true
	b = Compute(cfg, rate, nil, nil)
	if b.MileageSurchargeCents != 0 {
		t.Fatalf("expected no surcharge on unlimited rate, got %d", b.MileageSurchargeCents)
	}
}

func TestIncludedMileageNeverSurcharged(t *testing.T) {
	for _, unlimited := range []bool{true, false} {
		rate := &RateModel{DailyPriceCents: 10000, UnlimitedKm: unlimited}
		b := Compute(baseConfig(2), rate, nil, nil)
		if b.MileageSurchargeCents != 0 {
			t.Fatalf("unlimitedKm=%v: expected 0 surcharge for included option, got %d", unlimited, b.MileageSurchargeCents)
		}
	}
}

func TestExtrasPerDayAndOneTime(t *testing.T) {
	perDay := Extra{ID: uuid.New(), Name: "Child seat", PriceType: PriceTypePerDay, PriceCents: 1000, MaxQuantity: 2}
	oneTime := Extra{ID: uuid.New(), Name: "Snow chains", PriceType: PriceTypeOneTime, PriceCents: 2500, MaxQuantity: 1}
	catalog := []Extra{perDay, oneTime}

	cfg := baseConfig(4)
	cfg.Extras = []ExtraSelection{
		{ID: perDay.ID, Quantity: 1},
		{ID: oneTime.ID, Quantity: 1},
	}

	b := Compute(cfg, &RateModel{DailyPriceCents: 10000}, catalog, nil)
	if b.ExtrasTotalCents != 6500 {
		t.Fatalf("expected extras total 6500, got %d", b.ExtrasTotalCents)
	}

	want := []LineItem{
		{Name: "Child seat", TotalCents: 4000},
		{Name: "Snow chains", TotalCents: 2500},
	}
	if !reflect.DeepEqual(b.ExtrasItems, want) {
		t.Fatalf("expected extras items %+v, got %+v", want, b.ExtrasItems)
	}
}

func TestUnknownExtraAndInsuranceIDsAreSkipped(t *testing.T) {
	unknownExtra := uuid.New()
	unknownPlan := uuid.New()

	cfg := baseConfig(3)
	cfg.Extras = []ExtraSelection{{ID: unknownExtra, Quantity: 1}}
	cfg.InsurancePlanID = &unknownPlan

	b := Compute(cfg, &RateModel{DailyPriceCents: 10000}, nil, nil)
	if b.ExtrasTotalCents != 0 || len(b.ExtrasItems) != 0 {
		t.Fatalf("expected unknown extra to be ignored, got %+v", b.ExtrasItems)
	}
	if b.InsuranceTotalCents != 0 || b.InsurancePlanName != "" {
		t.Fatalf("expected unknown insurance plan to be ignored, got %d %q", b.InsuranceTotalCents, b.InsurancePlanName)
	}
}

func TestZeroQuantityExtraIsUnselected(t *testing.T) {
	extra := Extra{ID: uuid.New(), Name: "GPS", PriceType: PriceTypePerDay, PriceCents: 800, MaxQuantity: 1}

	cfg := baseConfig(3)
	cfg.Extras = []ExtraSelection{{ID: extra.ID, Quantity: 0}}

	b := Compute(cfg, &RateModel{DailyPriceCents: 10000}, []Extra{extra}, nil)
	if b.ExtrasTotalCents != 0 || len(b.ExtrasItems) != 0 {
		t.Fatalf("expected zero-quantity extra to be skipped, got %+v", b.ExtrasItems)
	}
}

func TestInsurancePricedPerDay(t *testing.T) {
	plan := InsurancePlan{ID: uuid.New(), Name: "Premium", PricePerDayCents: 2500, FranchiseCents: 50000}

	cfg := baseConfig(5)
	cfg.InsurancePlanID = &plan.ID

	b := Compute(cfg, &RateModel{DailyPriceCents: 10000}, nil, []InsurancePlan{plan})
	if b.InsuranceTotalCents != 12500 {
		t.Fatalf("expected insurance total 12500, got %d", b.InsuranceTotalCents)
	}
	if b.InsurancePlanName != "Premium" {
		t.Fatalf("expected plan name Premium, got %q", b.InsurancePlanName)
	}
}

func TestTotalIsExactComponentSumAndDepositExcluded(t *testing.T) {
	extra := Extra{ID: uuid.New(), Name: "GPS", PriceType: PriceTypePerDay, PriceCents: 800, MaxQuantity: 1}
	plan := InsurancePlan{ID: uuid.New(), Name: "Full Cover", PricePerDayCents: 4500}

	cfg := baseConfig(8)
	cfg.Mileage = MileageUnlimited
	cfg.Extras = []ExtraSelection{{ID: extra.ID, Quantity: 1}}
	cfg.InsurancePlanID = &plan.ID

	rate := &RateModel{
		DailyPriceCents:  13000,
		Discount7DaysBps: intPtr(1000),
		DepositCents:     200000,
	}

	b := Compute(cfg, rate, []Extra{extra}, []InsurancePlan{plan})
	sum := b.BasePriceCents + b.MileageSurchargeCents + b.ExtrasTotalCents + b.InsuranceTotalCents
	if b.TotalCents != sum {
		t.Fatalf("total %d != component sum %d", b.TotalCents, sum)
	}
	if b.DepositDueCents != 200000 {
		t.Fatalf("expected deposit 200000, got %d", b.DepositDueCents)
	}
}

func TestComputeIsDeterministic(t *testing.T) {
	extra := Extra{ID: uuid.New(), Name: "Roof box", PriceType: PriceTypePerDay, PriceCents: 1500, MaxQuantity: 1}
	plan := InsurancePlan{ID: uuid.New(), Name: "Premium", PricePerDayCents: 2500}

	cfg := baseConfig(9)
	cfg.Mileage = MileageUnlimited
	cfg.Extras = []ExtraSelection{{ID: extra.ID, Quantity: 1}}
	cfg.InsurancePlanID = &plan.ID

	rate := &RateModel{DailyPriceCents: 11100, Discount7DaysBps: intPtr(750), WeeklyPriceCents: centsPtr(66600)}

	first := Compute(cfg, rate, []Extra{extra}, []InsurancePlan{plan})
	second := Compute(cfg, rate, []Extra{extra}, []InsurancePlan{plan})
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("expected identical breakdowns, got %+v vs %+v", first, second)
	}
}

func TestScenarioThreeDayDiscount(t *testing.T) {
	// daily 120.00, 5% 3-day discount, 2025-06-01T09:00 -> 2025-06-04T09:00.
	rate := &RateModel{DailyPriceCents: 12000, Discount3DaysBps: intPtr(500)}

	cfg := Config{
		PickupAt: time.Date(2025, 6, 1, 9, 0, 0, 0, time.UTC),
		ReturnAt: time.Date(2025, 6, 4, 9, 0, 0, 0, time.UTC),
		Mileage:  MileageIncluded,
	}

	b := Compute(cfg, rate, nil, nil)
	if b.RentalDays != 3 {
		t.Fatalf("expected 3 rental days, got %d", b.RentalDays)
	}
	if b.EffectiveDailyRateCents != 11400 {
		t.Fatalf("expected effective rate 11400, got %d", b.EffectiveDailyRateCents)
	}
	if b.BasePriceCents != 34200 {
		t.Fatalf("expected base 34200, got %d", b.BasePriceCents)
	}
	if b.TotalCents != 34200 {
		t.Fatalf("expected total 34200 with no surcharges, got %d", b.TotalCents)
	}
}

func TestFractionalDiscountDoesNotDrift(t *testing.T) {
	// 7.5% off 99.99 over 29 days exercises the float path: per-component
	// rounding happens once, so the total still equals the component sum.
	rate := &RateModel{DailyPriceCents: 9999, Discount7DaysBps: intPtr(750)}

	b := Compute(baseConfig(29), rate, nil, nil)
	sum := b.BasePriceCents + b.MileageSurchargeCents + b.ExtrasTotalCents + b.InsuranceTotalCents
	if b.TotalCents != sum {
		t.Fatalf("total %d != component sum %d", b.TotalCents, sum)
	}
}
