package ota

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const prefixedDoc = `<?xml version="1.0"?>
<ns1:OTAX_TourActivityAvailRS xmlns:ns1="http://www.opentravel.org/OTA/2003/05">
  <ns1:Activities>
    <ns1:Activity MarketCode="ITALY">
      <ns1:TimeSpan Start="2025-06-01" End="2025-06-08"/>
      <ns1:ActivityRates>
        <ns1:ActivityRate BookingCode="BC1">
          <ns1:Total AmountAfterTax="450.00" CurrencyCode="EUR"/>
        </ns1:ActivityRate>
      </ns1:ActivityRates>
    </ns1:Activity>
  </ns1:Activities>
</ns1:OTAX_TourActivityAvailRS>`

func TestDecodeNode_PrefixedNamespaces(t *testing.T) {
	root, err := DecodeNode([]byte(prefixedDoc))
	require.NoError(t, err)
	assert.Equal(t, "OTAX_TourActivityAvailRS", root.Local())

	// lookups go by local name, whatever prefix the supplier used
	act := root.Find("Activities", "Activity")
	require.NotNil(t, act)
	assert.Equal(t, "ITALY", act.Attr("MarketCode"))

	tot := act.Find("ActivityRates", "ActivityRate", "Total")
	require.NotNil(t, tot)
	assert.Equal(t, "450.00", tot.Attr("AmountAfterTax"))
	assert.Equal(t, "450.00", tot.Attr("AmountBeforeTax", "AmountAfterTax"))
	assert.Equal(t, "", tot.Attr("Missing"))
}

func TestDecodeNode_Malformed(t *testing.T) {
	_, err := DecodeNode([]byte("<unclosed"))
	assert.Error(t, err)
	_, err = DecodeNode(nil)
	assert.Error(t, err)
}

func TestFindAllOrderAndWalkStop(t *testing.T) {
	doc := `<Root><A id="1"/><B><A id="2"/></B><A id="3"/></Root>`
	root, err := DecodeNode([]byte(doc))
	require.NoError(t, err)

	var ids []string
	for _, n := range root.FindAll("A") {
		ids = append(ids, n.Attr("id"))
	}
	assert.Equal(t, []string{"1", "2", "3"}, ids)

	visited := 0
	root.Walk(func(n *Node) bool {
		visited++
		return n.Attr("id") != "2"
	})
	assert.Less(t, visited, 5)
}

func TestDedupe(t *testing.T) {
	got := dedupe([]string{" a ", "b", "a", "", "b", "c"})
	assert.Equal(t, []string{"a", "b", "c"}, got)
}
