package ota

// ParseProducts extracts the catalog entries of a product response.
func ParseProducts(raw []byte) ([]ProductRecord, error) {
	root, err := DecodeNode(raw)
	if err != nil {
		return nil, err
	}
	var out []ProductRecord
	root.FindEach([]string{"TourActivityProducts", "TourActivityProduct"}, func(n *Node) {
		out = append(out, ProductRecord{
			Code:            n.Attr("TourActivityCode"),
			Name:            n.Attr("TourActivityName"),
			CityCode:        n.Attr("TourActivityCityCode"),
			AreaID:          n.Attr("AreaID"),
			CountryISO:      n.Attr("CountryISOCode"),
			CountryName:     n.Attr("CountryName"),
			ProductType:     n.Attr("ProductType"),
			ProductTypeCode: n.Attr("ProductTypeCode"),
			ProductTypeName: n.Attr("ProductTypeName"),
			CategoryCode:    n.Attr("CategoryCode"),
			CategoryDetail:  n.Attr("CategoryCodeDetail"),
		})
	})
	return out, nil
}

// DetailFromProduct builds a minimal descriptive detail out of a bare
// catalog record, for products whose descriptive call returns nothing.
func DetailFromProduct(p ProductRecord) DescriptiveDetail {
	d := DescriptiveDetail{
		Code:         p.Code,
		Name:         p.Name,
		City:         p.CityCode,
		Descriptions: []string{},
		Categories:   []string{},
		Types:        []string{},
		PickupNotes:  []string{},
		ImageURLs:    []string{},
		Included:     []string{},
		Excluded:     []string{},
	}
	if p.CategoryCode != "" {
		d.Categories = append(d.Categories, p.CategoryCode)
	}
	if t := firstNonEmpty(p.ProductTypeName, p.ProductType); t != "" {
		d.Types = append(d.Types, t)
	}
	d.Country = joinNonEmpty(p.CountryISO, p.CountryName)
	return d
}

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	default:
		return a + " " + b
	}
}
