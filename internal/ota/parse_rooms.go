package ota

import "strings"

// RoomOption is one bookable room/board combination of a package, as read
// from an availability call filtered to a single TourActivityCode.
type RoomOption struct {
	RoomCode      string `json:"room_code"`
	RoomName      string `json:"room_name"`
	RatePlanCode  string `json:"rate_plan_code"`
	RatePlanShort string `json:"rate_plan_short"`
	RatePlanName  string `json:"rate_plan_name"`
	MealPlanCodes string `json:"meal_plan_codes"`
	PricingType   string `json:"pricing_type"`
	BookingCode   string `json:"booking_code"`
	Price         string `json:"total_price"`
	Currency      string `json:"currency"`
}

// ParseRoomOptions extracts the package name and every room/rate option
// of an availability response. Deduplication and ordering are left to the
// caller, which knows the comparison rules.
func ParseRoomOptions(raw []byte) (productName string, options []RoomOption, err error) {
	root, err := DecodeNode(raw)
	if err != nil {
		return "", nil, err
	}

	var activities []*Node
	root.FindEach([]string{"Activities", "Activity"}, func(n *Node) {
		activities = append(activities, n)
	})

	for _, act := range activities {
		if productName == "" {
			if bpi := act.Find("BasicPropertyInfo"); bpi != nil {
				productName = bpi.Attr("TourActivityName")
			}
		}

		services := map[string]string{}
		act.FindEach([]string{"ActivityTypes", "ActivityType"}, func(at *Node) {
			code := at.Attr("ActivityTypeCode")
			if t := at.Find("ActivityDescription", "Text"); t != nil && code != "" && t.TextContent() != "" {
				services[code] = t.TextContent()
			}
		})

		plans := ratePlanMap(act)

		act.FindEach([]string{"ActivityRates", "ActivityRate"}, func(ar *Node) {
			opt := RoomOption{
				RoomCode:    ar.Attr("ActivityTypeCode"),
				BookingCode: ar.Attr("BookingCode"),
			}
			opt.RoomName = services[opt.RoomCode]
			opt.Price, opt.Currency = ratePrice(ar)

			if rate := ar.Find("Rates", "Rate"); rate != nil {
				opt.PricingType = rate.Attr("PricingType")
			}

			// Rate plan codes arrive as "SS-FB" or "DBLR|SS-FB"; the plan
			// table may be keyed either way.
			full := ar.Attr("RatePlanCode")
			short := full
			if idx := strings.LastIndex(full, "|"); idx >= 0 {
				short = full[idx+1:]
			}
			opt.RatePlanCode = full
			opt.RatePlanShort = short
			if plan, ok := plans[full]; ok {
				opt.RatePlanName, opt.MealPlanCodes = plan.Name, plan.Meals
			} else if plan, ok := plans[short]; ok {
				opt.RatePlanName, opt.MealPlanCodes = plan.Name, plan.Meals
			}

			options = append(options, opt)
		})
	}
	return productName, options, nil
}

func ratePlanMap(act *Node) map[string]RatePlanInfo {
	plans := map[string]RatePlanInfo{}
	act.FindEach([]string{"RatePlans", "RatePlan"}, func(rp *Node) {
		code := strings.TrimSpace(rp.Attr("RatePlanCode"))
		if code == "" {
			return
		}
		info := RatePlanInfo{Code: code, Name: rp.Attr("RatePlanName")}
		if mi := rp.Find("MealsIncluded"); mi != nil {
			info.Meals = mi.Attr("MealPlanCodes", "MealPlanCode", "MealPlanIndicator")
		}
		plans[code] = info
	})
	return plans
}

// ratePrice reads the rate total, falling back to the base rate amount
// some backends use instead.
func ratePrice(ar *Node) (string, string) {
	if tot := ar.Find("Total"); tot != nil {
		if a := tot.Attr("AmountAfterTax", "AmountBeforeTax"); a != "" {
			return a, tot.Attr("CurrencyCode")
		}
	}
	if base := ar.Find("Rates", "Rate", "Base"); base != nil {
		if a := base.Attr("AmountAfterTax", "AmountBeforeTax"); a != "" {
			return a, base.Attr("CurrencyCode")
		}
	}
	return "", ""
}
