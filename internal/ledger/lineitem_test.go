package ledger

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestTotal_SumsQuantityTimesPrice(t *testing.T) {
	items := []LineItem{
		ParseLineItem("Flour", "3", "100"),
		ParseLineItem("Sugar", "1", "50"),
	}

	assert.True(t, Total(items).Equal(decimal.RequireFromString("350")))
}

func TestTotal_EmptySequenceIsZero(t *testing.T) {
	assert.True(t, Total(nil).IsZero())
}

func TestTotal_DecimalPricesStayExact(t *testing.T) {
	items := []LineItem{
		ParseLineItem("Oil", "3", "0.10"),
		ParseLineItem("Salt", "7", "0.10"),
	}

	// 0.1*3 + 0.1*7 must be exactly 1, not 0.9999999999.
	assert.True(t, Total(items).Equal(decimal.NewFromInt(1)))
}

func TestParseLineItem_NonNumericFieldsContributeZero(t *testing.T) {
	items := []LineItem{
		ParseLineItem("Rice", "2", "80"),
		ParseLineItem("Ghost", "abc", "80"),
		ParseLineItem("Blank", "2", ""),
	}

	assert.True(t, Total(items).Equal(decimal.RequireFromString("160")))
}

func TestParseLineItem_TrimsNameAndFields(t *testing.T) {
	li := ParseLineItem("  Rice  ", " 2 ", " 80 ")

	assert.Equal(t, "Rice", li.Name)
	assert.True(t, li.Amount().Equal(decimal.RequireFromString("160")))
}
