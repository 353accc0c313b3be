package matcher

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

var (
	poundAmountPattern = regexp.MustCompile(`£\s*(\d+(?:\.\d+)?)`)
	penceAmountPattern = regexp.MustCompile(`\b(\d+(?:\.\d+)?)\s*p\b`)
	unitPricePattern   = regexp.MustCompile(`(?i)£?\s*(\d+(?:\.\d+)?)\s*(p)?\s*(?:per|/)\s*(100\s*ml|100\s*g|kg|ml|l|g|each|pc)\b`)
)

// compileRetailerPatterns builds the price probes for one retailer, in
// match-priority order: pounds after the name, pounds before the name,
// then the pence variants. window bounds how far a price may sit from
// the retailer name on the page.
func compileRetailerPatterns(retailer string, window int) []*regexp.Regexp {
	name := regexp.QuoteMeta(retailer)
	w := strconv.Itoa(window)
	return []*regexp.Regexp{
		regexp.MustCompile(`(?i)` + name + `[^£]{0,` + w + `}£\s*(\d+(?:\.\d+)?)`),
		regexp.MustCompile(`(?i)£\s*(\d+(?:\.\d+)?)[^£]{0,` + w + `}` + name),
		regexp.MustCompile(`(?i)` + name + `\D{0,` + w + `}?\b(\d+(?:\.\d+)?)\s*p\b`),
		regexp.MustCompile(`(?i)\b(\d+(?:\.\d+)?)\s*p\b\D{0,` + w + `}?` + name),
	}
}

// ExtractRetailerPrice finds retailer's price in scraped page text.
// Pence-suffixed amounts are converted to pounds.
func (m *Matcher) ExtractRetailerPrice(pageText, retailer string) (float64, bool) {
	patterns, ok := m.retailerPatterns[retailer]
	if !ok {
		patterns = compileRetailerPatterns(retailer, m.cfg.PriceWindow)
	}
	for i, p := range patterns {
		match := p.FindStringSubmatch(pageText)
		if match == nil {
			continue
		}
		value, err := strconv.ParseFloat(match[1], 64)
		if err != nil {
			continue
		}
		if i >= 2 { // pence patterns
			value /= 100
		}
		if value > 0 {
			return value, true
		}
	}
	return 0, false
}

// ExtractRetailerPrices probes the configured retailers in priority order
// and stops at the first hit, unless ScanAllRetailers asks for a full
// sweep. Prices are reported in GBP.
func (m *Matcher) ExtractRetailerPrices(pageText string) map[string]RetailerPrice {
	prices := make(map[string]RetailerPrice)
	for _, retailer := range m.cfg.Retailers {
		value, ok := m.ExtractRetailerPrice(pageText, retailer)
		if !ok {
			continue
		}
		prices[retailer] = RetailerPrice{
			Retailer: retailer,
			Price:    value,
			Currency: "GBP",
		}
		if !m.cfg.ScanAllRetailers {
			break
		}
	}
	return prices
}

// ParsePrice reads a standalone price string: "£1.40", "85p" or a bare
// decimal. Returns nil when no price is present.
func ParsePrice(text string) *float64 {
	if match := poundAmountPattern.FindStringSubmatch(text); match != nil {
		if v, err := strconv.ParseFloat(match[1], 64); err == nil && v > 0 {
			return &v
		}
	}
	if match := penceAmountPattern.FindStringSubmatch(text); match != nil {
		if v, err := strconv.ParseFloat(match[1], 64); err == nil && v > 0 {
			v /= 100
			return &v
		}
	}
	trimmed := strings.TrimSpace(text)
	if v, err := strconv.ParseFloat(trimmed, 64); err == nil && v > 0 {
		return &v
	}
	return nil
}

// ParseUnitPrice reads per-unit price text such as "£0.34/100g",
// "17.5p per 100g" or "£3.37/kg" and normalizes it to pounds per 100g
// (or 100ml), the same basis ValidatePrice computes from price/weight.
// Per-item prices ("each", "pc") have no weight basis and return nil,
// as does text with no unit price at all.
func ParseUnitPrice(text string) *float64 {
	match := unitPricePattern.FindStringSubmatch(text)
	if match == nil {
		return nil
	}
	v, err := strconv.ParseFloat(match[1], 64)
	if err != nil || v <= 0 {
		return nil
	}
	if strings.EqualFold(match[2], "p") {
		v /= 100
	}
	basis := strings.ReplaceAll(strings.ToLower(match[3]), " ", "")
	switch basis {
	case "100g", "100ml":
	case "kg", "l":
		v /= 10
	case "g", "ml":
		v *= 100
	default: // each, pc
		return nil
	}
	return &v
}

// ValidatePrice sanity-checks a matched price against the product name.
// Issues are advisory: a flagged match is kept, never discarded.
func (m *Matcher) ValidatePrice(name string, price, unitPrice, weight *float64) []string {
	var issues []string

	if price == nil {
		issues = append(issues, "no price found")
	} else {
		lower := strings.ToLower(name)
		for _, band := range m.cfg.PriceBands {
			if !strings.Contains(lower, band.Category) {
				continue
			}
			if *price < band.Min || *price > band.Max {
				issues = append(issues, fmt.Sprintf(
					"price £%.2f outside expected range £%.2f-£%.2f for %s",
					*price, band.Min, band.Max, band.Category))
			}
			break
		}
	}

	// Cross-check the advertised unit price against price/weight; both
	// sides are on the per-100g (or per-100ml) basis.
	if price != nil && unitPrice != nil && weight != nil && *weight > 0 {
		calculated := *price / *weight * 100
		if *unitPrice > 0 {
			ratio := calculated / *unitPrice
			if ratio > 1.5 || ratio < 0.5 {
				issues = append(issues, fmt.Sprintf(
					"unit price £%.2f doesn't match calculated £%.2f", *unitPrice, calculated))
			}
		}
	}

	if weight != nil && *weight > 5000 {
		issues = append(issues, fmt.Sprintf("unusually large weight/volume: %.0f", *weight))
	}

	return issues
}
