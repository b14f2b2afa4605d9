package ota

import (
	"fmt"
	"html"
	"strings"
)

// Container names vary across supplier backend versions; the first one
// present wins.
var detailContainers = []string{
	"TourActivityDescriptiveContent",
	"ActivityDescriptiveContent",
	"TourActivityDescriptiveInfo",
	"ActivityDescriptiveInfo",
	"TourActivityInfo",
}

var includeKeys = []string{
	"Included", "Includes", "Inclusions", "IncludedServices",
	"IncludedInRate", "QuotaComprende",
}

var excludeKeys = []string{
	"Excluded", "Exclusions", "NotIncluded", "ExcludedServices",
	"QuotaNonComprende", "NotInRate",
}

// ParseDescriptiveDetail normalizes a descriptive-info response. Supplier
// errors and a missing content container both come back as errors; the
// caller decides whether to fall back to cached catalog data.
func ParseDescriptiveDetail(raw []byte) (*DescriptiveDetail, error) {
	root, err := DecodeNode(raw)
	if err != nil {
		return nil, fmt.Errorf("descriptive response: %w", err)
	}
	if msgs := collectErrors(root); len(msgs) > 0 {
		return nil, fmt.Errorf("descriptive response: %s", strings.Join(msgs, "; "))
	}

	var content *Node
	for _, name := range detailContainers {
		if found := root.FindAll(name); len(found) > 0 {
			content = found[0]
			break
		}
	}
	if content == nil {
		return nil, fmt.Errorf("descriptive response: no content container")
	}

	ctx := content
	if inner := content.Find("TourActivityInfo"); inner != nil {
		ctx = inner
	}

	d := DescriptiveDetail{
		Name:         firstNonEmpty(content.Attr("TourActivityName"), ctx.Attr("Name")),
		City:         firstNonEmpty(content.Attr("TourActivityCityCode"), ctx.Attr("CityCode")),
		Descriptions: []string{},
		Categories:   []string{},
		Types:        []string{},
		PickupNotes:  []string{},
		ImageURLs:    []string{},
		Included:     []string{},
		Excluded:     []string{},
	}
	d.Country = firstNonEmpty(
		joinNonEmpty(content.Attr("CountryISOCode"), content.Attr("CountryName")),
		joinNonEmpty(ctx.Attr("CountryISOCode"), ctx.Attr("CountryName")),
	)

	// Prefer structured TextItem descriptions; fall back to any leaf
	// Description element.
	ctx.FindEach([]string{"TextItem", "Description"}, func(n *Node) {
		if text := n.TextContent(); text != "" {
			d.Descriptions = append(d.Descriptions, html.UnescapeString(text))
		}
	})
	if len(d.Descriptions) == 0 {
		for _, n := range ctx.FindAll("Description") {
			if len(n.Children) > 0 {
				continue
			}
			if text := n.TextContent(); text != "" {
				d.Descriptions = append(d.Descriptions, html.UnescapeString(text))
			}
		}
	}

	for _, scope := range []string{"ImageItems", "Image"} {
		content.FindEach([]string{scope, "URL"}, func(n *Node) {
			if url := n.TextContent(); url != "" {
				d.ImageURLs = append(d.ImageURLs, url)
			}
		})
	}

	for _, c := range ctx.FindAll("TourActivityCategory") {
		if code := c.Attr("Code", "CodeDetail", "Name"); code != "" {
			d.Categories = append(d.Categories, code)
		}
	}
	if t := firstNonEmpty(
		content.Attr("ProductTypeName"), content.Attr("ProductType"),
		ctx.Attr("ProductTypeName"), ctx.Attr("ProductType"),
	); t != "" {
		d.Types = append(d.Types, t)
	}

	d.Included, d.Excluded = gatherInclusions(ctx)

	for _, scope := range []*Node{ctx, content, root} {
		if v, ok := ResolveNights(scope); ok {
			d.Duration = nightsText(v)
			break
		}
	}

	d.Descriptions = dedupe(d.Descriptions)
	d.Categories = dedupe(d.Categories)
	d.Types = dedupe(d.Types)
	d.ImageURLs = dedupe(d.ImageURLs)
	return &d, nil
}

// gatherInclusions collects what the package price covers and what it
// does not, from whichever element names this backend uses.
func gatherInclusions(scope *Node) (included, excluded []string) {
	included, excluded = []string{}, []string{}
	scope.Walk(func(n *Node) bool {
		name := n.Local()
		if containsName(includeKeys, name) {
			included = append(included, collectTexts(n)...)
		} else if containsName(excludeKeys, name) {
			excluded = append(excluded, collectTexts(n)...)
		}
		return true
	})
	return dedupe(included), dedupe(excluded)
}

func collectTexts(n *Node) []string {
	var out []string
	for _, t := range n.FindAll("Text") {
		if s := t.TextContent(); s != "" {
			out = append(out, s)
		}
	}
	if len(out) == 0 {
		if s := n.TextContent(); s != "" {
			out = append(out, s)
		}
	}
	return dedupe(out)
}

func containsName(names []string, name string) bool {
	for _, n := range names {
		if n == name {
			return true
		}
	}
	return false
}

// collectErrors flattens an Errors block into "CODE text" strings.
func collectErrors(root *Node) []string {
	var out []string
	for _, errsBlock := range root.FindAll("Errors") {
		for i := range errsBlock.Children {
			e := &errsBlock.Children[i]
			code := e.Attr("Code")
			text := firstNonEmpty(e.Attr("ShortText"), e.TextContent())
			if msg := strings.TrimSpace(code + " " + text); msg != "" {
				out = append(out, msg)
			}
		}
	}
	return out
}
