package extract

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep-checkin-go/internal/models"
)

func TestParseItemLine(t *testing.T) {
	item, ok := parseItemLine("On Running Cloud X 3 Hunter Black 11.5 60.98101 - B0BNC66RPR 1")
	require.True(t, ok)
	assert.Equal(t, "On Running Cloud X 3 Hunter Black 11.5 60.98101", item.ItemName)
	assert.Equal(t, "B0BNC66RPR", item.ASIN)
	assert.Equal(t, 1, item.Quantity)
}

func TestParseItemLineQuantity(t *testing.T) {
	item, ok := parseItemLine("Nike Air Zoom - B0BNC66RPR 12 extra")
	require.True(t, ok)
	assert.Equal(t, 12, item.Quantity)
}

func TestParseItemLineEntities(t *testing.T) {
	item, ok := parseItemLine("Levi&#39;s 501 &amp; Co &quot;Classic&quot; - B0BNC66RPR 2")
	require.True(t, ok)
	assert.Equal(t, "Levi's 501 & Co \"Classic\"", item.ItemName)
	assert.Equal(t, 2, item.Quantity)
}

func TestParseItemLineNoASIN(t *testing.T) {
	_, ok := parseItemLine("Just a sentence without any product code in it")
	assert.False(t, ok)
}

func TestParseItemLineEmptyName(t *testing.T) {
	_, ok := parseItemLine("- B0BNC66RPR 1")
	assert.False(t, ok)
}

func TestItemParserTableRows(t *testing.T) {
	p := NewItemParser()

	html := `<html><body>
<table>
<tr><td>Item</td><td>Amount</td></tr>
<tr><td>On Running Cloud X 3 Hunter Black 11.5 60.98101 - B0BNC66RPR</td><td>1</td></tr>
<tr><td>Hoka Clifton 9 White 10 - B09XKVZ8TN</td><td>3</td></tr>
</table>
</body></html>`

	items := p.Parse(html, "")
	require.Len(t, items, 2)
	assert.Equal(t, models.LineItem{ItemName: "On Running Cloud X 3 Hunter Black 11.5 60.98101", ASIN: "B0BNC66RPR", Quantity: 1}, items[0])
	assert.Equal(t, models.LineItem{ItemName: "Hoka Clifton 9 White 10", ASIN: "B09XKVZ8TN", Quantity: 3}, items[1])
}

func TestItemParserLineScanFallback(t *testing.T) {
	p := NewItemParser()

	body := `Your shipment was processed.
On Running Cloud X 3 Hunter Black 11.5 60.98101 - B0BNC66RPR 1
Hoka Clifton 9 White 10 - B09XKVZ8TN 2
Thanks for shipping with us.`

	items := p.Parse("", body)
	require.Len(t, items, 2)
	assert.Equal(t, "B0BNC66RPR", items[0].ASIN)
	assert.Equal(t, 2, items[1].Quantity)
}

func TestItemParserSkipsHeaderLines(t *testing.T) {
	p := NewItemParser()

	body := "Item name and amount - B0BNC66RPR 1\nHoka Clifton 9 White 10 - B09XKVZ8TN 2\n"
	items := p.Parse("", body)
	require.Len(t, items, 1)
	assert.Equal(t, "B09XKVZ8TN", items[0].ASIN)
}

func TestItemParserNoItems(t *testing.T) {
	p := NewItemParser()

	assert.Empty(t, p.Parse("", "nothing that looks like a product line"))
	assert.Empty(t, p.Parse("<table><tr><td>item</td></tr></table>", ""))
}
