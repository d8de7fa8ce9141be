package service

import (
	"fmt"
	"strings"
	"time"

	"rentcar-backend/internal/booking/quote"
	"rentcar-backend/platform/money"
)

var categoryLabels = map[string]string{
	"CITY":        "City Car",
	"SEDAN":       "Berlina",
	"SUV":         "SUV",
	"LUXURY":      "Luxury",
	"VAN":         "Van",
	"SPORTS":      "Sportiva",
	"CONVERTIBLE": "Cabrio",
	"WAGON":       "Station Wagon",
}

func categoryLabel(category string) string {
	if label, ok := categoryLabels[category]; ok {
		return label
	}
	return category
}

func carLabel(car CarSummary) string {
	label := car.Brand + " " + car.Model
	if car.Trim != nil && *car.Trim != "" {
		label += " " + *car.Trim
	}
	return label
}

type inquiry struct {
	Car            CarSummary
	PickupAt       time.Time
	ReturnAt       time.Time
	PickupLocation string
	ReturnLocation string
	Breakdown      *quote.Breakdown
	CustomerName   string
	CustomerPhone  string
	CustomerEmail  *string
	Notes          *string
}

// composeInquiryMessage renders the text the customer sends to the business
// over WhatsApp. Bold markers are WhatsApp formatting.
func composeInquiryMessage(in inquiry) string {
	var b strings.Builder
	bd := in.Breakdown

	b.WriteString("🚗 *RICHIESTA NOLEGGIO*\n\n")
	fmt.Fprintf(&b, "*Auto:* %s (%d)\n", carLabel(in.Car), in.Car.Year)
	fmt.Fprintf(&b, "*ID:* %s\n", in.Car.Slug)
	fmt.Fprintf(&b, "*Categoria:* %s\n\n", categoryLabel(in.Car.Category))

	fmt.Fprintf(&b, "📅 *Ritiro:* %s ore %s\n", in.PickupAt.Format("02.01.2006"), in.PickupAt.Format("15:04"))
	fmt.Fprintf(&b, "📅 *Riconsegna:* %s ore %s\n", in.ReturnAt.Format("02.01.2006"), in.ReturnAt.Format("15:04"))
	fmt.Fprintf(&b, "📍 *Sede ritiro:* %s\n", orDefault(in.PickupLocation, "Da definire"))
	fmt.Fprintf(&b, "📍 *Sede riconsegna:* %s\n\n", orDefault(in.ReturnLocation, "Come ritiro"))

	b.WriteString("💰 *Preventivo:*\n")
	fmt.Fprintf(&b, "Prezzo base (%d giorni): %s\n", bd.RentalDays, money.FormatCHF(bd.BasePriceCents))
	if bd.MileageSurchargeCents > 0 {
		fmt.Fprintf(&b, "Km illimitati: %s\n", money.FormatCHF(bd.MileageSurchargeCents))
	}
	for _, item := range bd.ExtrasItems {
		fmt.Fprintf(&b, "%s: %s\n", item.Name, money.FormatCHF(item.TotalCents))
	}
	if bd.InsurancePlanName != "" {
		fmt.Fprintf(&b, "Assicurazione (%s): %s\n", bd.InsurancePlanName, money.FormatCHF(bd.InsuranceTotalCents))
	}
	fmt.Fprintf(&b, "*TOTALE: %s*\n", money.FormatCHF(bd.TotalCents))
	fmt.Fprintf(&b, "Deposito cauzionale: %s\n\n", money.FormatCHF(bd.DepositDueCents))

	b.WriteString("👤 *Cliente:*\n")
	fmt.Fprintf(&b, "Nome: %s\n", in.CustomerName)
	fmt.Fprintf(&b, "Tel: %s", in.CustomerPhone)
	if in.CustomerEmail != nil && *in.CustomerEmail != "" {
		fmt.Fprintf(&b, "\nEmail: %s", *in.CustomerEmail)
	}
	if in.Notes != nil && *in.Notes != "" {
		fmt.Fprintf(&b, "\nNote: %s", *in.Notes)
	}

	return b.String()
}

func orDefault(value, fallback string) string {
	if value == "" {
		return fallback
	}
	return value
}
