package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	billModel "dormku_backend/internals/features/finance/bills/model"
	utilityModel "dormku_backend/internals/features/rentals/utilities/model"
)

func d(s string) decimal.Decimal {
	v, _ := decimal.NewFromString(s)
	return v
}

func itemByType(t *testing.T, items []billModel.BillItemModel, typ billModel.BillItemType) billModel.BillItemModel {
	t.Helper()
	for _, it := range items {
		if it.BillItemType == typ {
			return it
		}
	}
	t.Fatalf("no item of type %s", typ)
	return billModel.BillItemModel{}
}

func TestComposeItems_RentPlusUtility(t *testing.T) {
	util := &utilityModel.RoomUtilityModel{
		RoomUtilityWaterUsage:       d("10"),
		RoomUtilityWaterRate:        d("15"),
		RoomUtilityElectricityUsage: d("50"),
		RoomUtilityElectricityRate:  d("8"),
	}

	items := ComposeItems(nil, d("3000"), util)
	require.Len(t, items, 3)

	rent := itemByType(t, items, billModel.BillItemTypeRent)
	assert.True(t, rent.BillItemAmount.Equal(d("3000")))

	water := itemByType(t, items, billModel.BillItemTypeWater)
	assert.True(t, water.BillItemAmount.Equal(d("150")))

	elec := itemByType(t, items, billModel.BillItemTypeElectricity)
	assert.True(t, elec.BillItemAmount.Equal(d("400")))

	assert.True(t, SumItemAmounts(items).Equal(d("3550")))
}

func TestComposeItems_RentOnlyWithoutUtility(t *testing.T) {
	items := ComposeItems(nil, d("4500"), nil)
	require.Len(t, items, 1)
	assert.Equal(t, billModel.BillItemTypeRent, items[0].BillItemType)
	assert.True(t, items[0].BillItemAmount.Equal(d("4500")))
}

func TestComposeItems_ExplicitLinesAreNotDuplicated(t *testing.T) {
	util := &utilityModel.RoomUtilityModel{
		RoomUtilityWaterUsage:       d("10"),
		RoomUtilityWaterRate:        d("15"),
		RoomUtilityElectricityUsage: d("50"),
		RoomUtilityElectricityRate:  d("8"),
	}
	given := []NewBillItemInput{
		{Type: billModel.BillItemTypeRent, Description: "Discounted rent", Quantity: d("1"), UnitPrice: d("2500")},
		{Type: billModel.BillItemTypeWater, Description: "Flat water fee", Quantity: d("1"), UnitPrice: d("100")},
	}

	items := ComposeItems(given, d("3000"), util)
	// explicit rent + explicit water + auto electricity
	require.Len(t, items, 3)
	assert.True(t, itemByType(t, items, billModel.BillItemTypeRent).BillItemAmount.Equal(d("2500")))
	assert.True(t, itemByType(t, items, billModel.BillItemTypeWater).BillItemAmount.Equal(d("100")))
	assert.True(t, itemByType(t, items, billModel.BillItemTypeElectricity).BillItemAmount.Equal(d("400")))
}

func TestComposeItems_AmountIsAlwaysQuantityTimesUnitPrice(t *testing.T) {
	given := []NewBillItemInput{
		{Type: billModel.BillItemTypeOther, Description: "Cleaning", Quantity: d("2"), UnitPrice: d("250.50")},
	}
	items := ComposeItems(given, d("0"), nil)
	other := itemByType(t, items, billModel.BillItemTypeOther)
	assert.True(t, other.BillItemAmount.Equal(d("501.00")))
}

func TestComposeItems_ZeroQuantityDefaultsToOne(t *testing.T) {
	given := []NewBillItemInput{
		{Type: billModel.BillItemTypeOther, Description: "Parking", UnitPrice: d("300")},
	}
	items := ComposeItems(given, d("0"), nil)
	other := itemByType(t, items, billModel.BillItemTypeOther)
	assert.True(t, other.BillItemQuantity.Equal(d("1")))
	assert.True(t, other.BillItemAmount.Equal(d("300")))
}

func TestSumItemAmounts_Empty(t *testing.T) {
	assert.True(t, SumItemAmounts(nil).IsZero())
}
