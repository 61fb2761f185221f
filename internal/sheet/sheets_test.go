package sheet

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"prep-checkin-go/internal/models"
)

func TestRowValuesKeepsOrderNumbersAsText(t *testing.T) {
	record := models.CheckinRecord{
		Timestamp:          "6/12/2025, 3:04:05 PM",
		OrderNumber:        "00123456",
		ItemName:           "On Running Cloud X 3",
		ASIN:               "B0BNC66RPR",
		Quantity:           2,
		CorrectOrderNumber: "00123456",
	}

	values := rowValues(record)
	require.Len(t, values, len(HeaderColumns))

	order, ok := values[1].(string)
	require.True(t, ok, "order number cell must be a string")
	assert.Equal(t, "00123456", order)

	correct, ok := values[5].(string)
	require.True(t, ok, "correct order number cell must be a string")
	assert.Equal(t, "00123456", correct)

	quantity, ok := values[4].(int)
	require.True(t, ok, "quantity cell must be numeric")
	assert.Equal(t, 2, quantity)
}
