package ota

import (
	"fmt"
	"math"
	"regexp"
	"strconv"
	"strings"
	"time"
)

// Suppliers encode trip duration in several shapes depending on backend
// version. Each strategy reads one shape; the first hit wins.
type nightsStrategy func(*Node) (int, bool)

var nightsChain = []nightsStrategy{
	nightsFromAttr,
	nightsFromElement,
	nightsFromDuration,
	nightsFromLengthOfStay,
	nightsFromDates,
}

// ResolveNights walks the duration strategies over an activity subtree and
// returns the stay length in nights. ok is false when no shape matched.
func ResolveNights(n *Node) (int, bool) {
	if n == nil {
		return 0, false
	}
	for _, strategy := range nightsChain {
		if v, ok := strategy(n); ok {
			return v, true
		}
	}
	return 0, false
}

// NightsLabel renders the resolved duration for display, or "" when the
// supplier gave no usable duration at all.
func NightsLabel(n *Node) string {
	v, ok := ResolveNights(n)
	if !ok {
		return ""
	}
	return nightsText(v)
}

func nightsText(v int) string {
	if v == 1 {
		return "1 notte"
	}
	return fmt.Sprintf("%d notti", v)
}

func nightsFromAttr(n *Node) (int, bool) {
	if v, ok := parseInt(n.Attr("Nights")); ok {
		return v, true
	}
	var found int
	ok := false
	n.Walk(func(child *Node) bool {
		if v, hit := parseInt(child.Attr("Nights")); hit {
			found, ok = v, true
			return false
		}
		return true
	})
	return found, ok
}

func nightsFromElement(n *Node) (int, bool) {
	for _, el := range n.FindAll("Nights") {
		if v, ok := parseInt(el.TextContent()); ok {
			return v, true
		}
	}
	return 0, false
}

// Duration-like elements resolve through their unit: day units lose one,
// night units pass through. A Nights attribute counts as-is and a Days
// attribute as days; a bare number with no unit only counts when the
// text itself says nights.
func nightsFromDuration(n *Node) (int, bool) {
	var el *Node
	n.Walk(func(c *Node) bool {
		if !strings.Contains(strings.ToLower(c.Local()), "duration") {
			return true
		}
		if c.Attr("Nights", "Value", "Duration", "Days") == "" && strings.TrimSpace(c.TextContent()) == "" {
			return true
		}
		el = c
		return false
	})
	if el == nil {
		return 0, false
	}

	if v, ok := parseInt(el.Attr("Nights")); ok {
		return v, true
	}
	if v, ok := parseInt(el.Attr("Days")); ok {
		return daysToNights(v), true
	}
	raw := el.Attr("Value", "Duration")
	if raw == "" {
		raw = el.TextContent()
	}
	if v, ok := leadingInt(raw); ok {
		unit := strings.ToLower(el.Attr("Unit", "Units", "TimeUnit", "UnitOfMeasure"))
		switch {
		case strings.Contains(unit, "night") || strings.Contains(unit, "not"):
			return v, true
		case strings.Contains(unit, "day") || strings.Contains(unit, "giorn"):
			return daysToNights(v), true
		}
	}
	return nightsFromText(raw)
}

func nightsFromLengthOfStay(n *Node) (int, bool) {
	for _, el := range n.FindAll("LengthOfStay") {
		if v, ok := parseInt(el.Attr("Nights", "Duration")); ok {
			return v, true
		}
		if v, ok := parseInt(el.Attr("Days")); ok {
			return daysToNights(v), true
		}
		raw := el.TextContent()
		if raw == "" {
			raw = el.Attr("Time", "Quantity", "Value")
		}
		v, ok := parseInt(raw)
		if !ok {
			continue
		}
		unit := strings.ToLower(el.Attr("TimeUnit", "Unit", "UnitOfMeasure"))
		if strings.HasPrefix(unit, "day") {
			v--
		}
		if v >= 0 {
			return v, true
		}
	}
	return 0, false
}

func daysToNights(days int) int {
	if days <= 0 {
		return 0
	}
	return days - 1
}

var nightsTextRE = regexp.MustCompile(`(?i)(\d+)\s*(night|nott)`)

// nightsFromText reads free-form duration text like "7 notti".
func nightsFromText(s string) (int, bool) {
	m := nightsTextRE.FindStringSubmatch(s)
	if m == nil {
		return 0, false
	}
	return parseInt(m[1])
}

var leadingIntRE = regexp.MustCompile(`\d+`)

func leadingInt(s string) (int, bool) {
	return parseInt(leadingIntRE.FindString(s))
}

func nightsFromDates(n *Node) (int, bool) {
	start, end := n.Attr("Start"), n.Attr("End")
	if start == "" || end == "" {
		n.Walk(func(c *Node) bool {
			if c.Attr("Start") != "" && c.Attr("End") != "" {
				start, end = c.Attr("Start"), c.Attr("End")
				return false
			}
			return true
		})
	}
	if start == "" || end == "" {
		return 0, false
	}
	from, err1 := time.Parse(dateLayout, trimDate(start))
	to, err2 := time.Parse(dateLayout, trimDate(end))
	if err1 != nil || err2 != nil {
		return 0, false
	}
	nights := int(to.Sub(from).Hours() / 24)
	if nights < 0 {
		return 0, false
	}
	return nights, true
}

func trimDate(s string) string {
	if len(s) > 10 {
		return s[:10]
	}
	return s
}

func parseInt(s string) (int, bool) {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return 0, false
	}
	return v, true
}

// Prices live in different containers depending on backend version. The
// chain prefers the rate total, then the price total, then any total, then
// raw amounts tucked into TPA_Extensions.
type priceStrategy func(*Node) (string, string, bool)

var priceChain = []priceStrategy{
	totalUnderContainer("ActivityRate"),
	totalUnderContainer("ActivityPrice"),
	anyTotal,
	extensionAmount,
}

// ResolvePrice reads the offer price and currency out of an activity
// subtree. Both come back empty when no container carried an amount.
func ResolvePrice(n *Node) (amount, currency string) {
	if n == nil {
		return "", ""
	}
	for _, strategy := range priceChain {
		if a, c, ok := strategy(n); ok {
			return a, c
		}
	}
	return "", ""
}

func totalUnderContainer(name string) priceStrategy {
	return func(n *Node) (string, string, bool) {
		for _, container := range n.FindAll(name) {
			if total := container.Find("Total"); total != nil {
				if a := total.Attr("AmountAfterTax", "AmountBeforeTax"); a != "" {
					return a, total.Attr("CurrencyCode"), true
				}
			}
		}
		return "", "", false
	}
}

func anyTotal(n *Node) (string, string, bool) {
	for _, total := range n.FindAll("Total") {
		if a := total.Attr("AmountAfterTax", "AmountBeforeTax"); a != "" {
			return a, total.Attr("CurrencyCode"), true
		}
	}
	return "", "", false
}

func extensionAmount(n *Node) (string, string, bool) {
	names := []string{"Total", "TotalPrice", "GrossAmount", "Amount"}
	for _, ext := range n.FindAll("TPA_Extensions") {
		for _, name := range names {
			for _, el := range ext.FindAll(name) {
				if text := el.TextContent(); text != "" {
					return text, el.Attr("CurrencyCode"), true
				}
			}
		}
	}
	return "", "", false
}

// ParseAmount turns a supplier amount string into a comparable float.
// Both "2,048.00" and "2.048,00" are accepted. Unparseable amounts sort
// last, so +Inf is returned rather than an error.
func ParseAmount(s string) float64 {
	s = strings.TrimSpace(s)
	if s == "" {
		return math.Inf(1)
	}
	if v, err := strconv.ParseFloat(s, 64); err == nil {
		return v
	}
	if v, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", ""), 64); err == nil {
		return v
	}
	// European format: dot groups thousands, comma marks decimals.
	swapped := strings.ReplaceAll(strings.ReplaceAll(s, ".", ""), ",", ".")
	if v, err := strconv.ParseFloat(swapped, 64); err == nil {
		return v
	}
	return math.Inf(1)
}
