package planner

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// Summary renders the draft as the plain-text trip summary users download.
func Summary(d TripDraft) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s TRIP SUMMARY\n\n", strings.ToUpper(d.Destination))

	fmt.Fprintf(&b, "Transportation: %s\n", rupees(d.Transport.Cost))
	if d.Transport.Option != nil {
		fmt.Fprintf(&b, "- %s (%s, %d seats)\n", d.Transport.Option.Name, d.Transport.Mode, d.Transport.Seats)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Accommodation: %s\n", rupees(d.Accommodation.Cost))
	if d.Accommodation.Hotel != nil {
		fmt.Fprintf(&b, "- %s, %d nights\n", d.Accommodation.Hotel.Name, d.Accommodation.Nights)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Attractions: %s\n", rupees(d.Attractions.Cost))
	if n := len(d.Attractions.Places); n > 0 {
		fmt.Fprintf(&b, "- %d places selected over %d days\n", n, d.Attractions.Days)
		for _, p := range d.Attractions.Places {
			fmt.Fprintf(&b, "  * %s\n", p.Name)
		}
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Food: %s\n", rupees(d.Food.Cost))
	if d.Food.Plan != "" {
		fmt.Fprintf(&b, "- %s plan\n", d.Food.Plan)
	}
	b.WriteString("\n")

	fmt.Fprintf(&b, "Shopping: %s\n\n", rupees(d.Shopping.Budget))
	fmt.Fprintf(&b, "TOTAL COST: %s\n", rupees(d.TotalCost))

	return b.String()
}

// SummaryFilename is the download name for a destination's summary.
func SummaryFilename(destination string) string {
	if destination == "" {
		destination = "trip"
	}
	return destination + "-trip-summary.txt"
}

func rupees(v decimal.Decimal) string {
	return "₹" + groupThousands(v.StringFixed(0))
}

func groupThousands(s string) string {
	sign := ""
	if strings.HasPrefix(s, "-") {
		sign, s = "-", s[1:]
	}
	if len(s) <= 3 {
		return sign + s
	}
	var b strings.Builder
	head := len(s) % 3
	if head > 0 {
		b.WriteString(s[:head])
	}
	for i := head; i < len(s); i += 3 {
		if b.Len() > 0 {
			b.WriteByte(',')
		}
		b.WriteString(s[i : i+3])
	}
	return sign + b.String()
}
