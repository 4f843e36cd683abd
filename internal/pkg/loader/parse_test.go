package loader

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dcervantes/powerpick/internal/domain"
)

func TestNormalizeTDUName(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Oncor Electric Delivery", "ONCOR"},
		{"ONCOR", "ONCOR"},
		{"CenterPoint Energy Houston Electric LLC", "CENTERPOINT"},
		{"AEP Texas Central Company", "AEP_CENTRAL"},
		{"Texas-New Mexico Power Company", "TNMP"},
		{"Sharyland Utilities", "SHARYLAND UTILITIES"},
		{"", "UNKNOWN"},
		{"  oncor electric delivery  ", "ONCOR"},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, NormalizeTDUName(tt.in), tt.in)
	}
}

const sampleCSV = "[idKey],[RepCompany],[Product],[TduCompanyName],[kwh500],[kwh1000],[kwh2000],[TermValue],[RateType],[Renewable],[PrePaid],[TimeOfUse],[Language],[CancelFee],[SpecialTerms]\n" +
	"10001,Gexa Energy,Saver 12,Oncor Electric Delivery,0.142,0.121,0.118,12,Fixed,100,FALSE,FALSE,English,150,Some terms\n" +
	"10002,Reliant,Truly Free Nights,CenterPoint Energy,0.160,0.145,0.139,12,Fixed,20,FALSE,TRUE,English,,\n" +
	"10003,Bad Row,,Oncor,0.1,0.0,0.1,12,Fixed,0,FALSE,FALSE,English,,\n"

func TestParseCSVPlans(t *testing.T) {
	plans, err := ParseCSVPlans(sampleCSV)
	require.NoError(t, err)
	require.Len(t, plans, 2, "the row without a 1000 kWh price is dropped")

	p := plans[0]
	assert.Equal(t, "10001", p.ID)
	assert.Equal(t, "Gexa Energy", p.Provider)
	assert.Equal(t, "Saver 12", p.Name)
	assert.Equal(t, "ONCOR", p.TDUArea)
	assert.Equal(t, domain.RateTypeFixed, p.RateType)
	assert.Equal(t, 12, p.TermMonths)
	assert.Equal(t, 100, p.RenewablePct)
	assert.InDelta(t, 14.2, p.PriceKWh500, 1e-9, "dollar prices convert to cents")
	assert.InDelta(t, 12.1, p.PriceKWh1000, 1e-9)
	require.NotNil(t, p.EarlyTerminationFee)
	assert.Equal(t, 150.0, *p.EarlyTerminationFee)
	require.NotNil(t, p.SpecialTerms)
	assert.Equal(t, "Some terms", *p.SpecialTerms)

	tou := plans[1]
	assert.True(t, tou.IsTOU)
	assert.Equal(t, "CENTERPOINT", tou.TDUArea)
	assert.Nil(t, tou.EarlyTerminationFee)
}

func TestParseCSVPlans_BOMAndCRLF(t *testing.T) {
	csvWithBOM := "\uFEFF[idKey],[RepCompany],[Product],[TduCompanyName],[kwh1000]\r\n" +
		"1,Rep,Plan,Oncor,0.12\r\n"

	plans, err := ParseCSVPlans(csvWithBOM)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.InDelta(t, 12.0, plans[0].PriceKWh1000, 1e-9)
}

func TestParseCSVPlans_PricingDetailsFee(t *testing.T) {
	csvText := "[idKey],[RepCompany],[Product],[TduCompanyName],[kwh1000],[Pricing Details]\n" +
		`1,Rep,Plan,Oncor,0.12,"Base charge applies. Cancellation Fee: $175.00 if cancelled early."` + "\n"

	plans, err := ParseCSVPlans(csvText)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	require.NotNil(t, plans[0].EarlyTerminationFee)
	assert.Equal(t, 175.0, *plans[0].EarlyTerminationFee)
}

func TestParseCSVPlans_BackfillsPrices(t *testing.T) {
	csvText := "[idKey],[RepCompany],[Product],[TduCompanyName],[kwh1000]\n" +
		"1,Rep,Plan,Oncor,0.12\n"

	plans, err := ParseCSVPlans(csvText)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, plans[0].PriceKWh1000, plans[0].PriceKWh500)
	assert.Equal(t, plans[0].PriceKWh1000, plans[0].PriceKWh2000)
}

func TestParseCSVPlans_NoRows(t *testing.T) {
	_, err := ParseCSVPlans("[idKey],[RepCompany]\n")
	assert.Error(t, err)
}

func TestParseJSONPlans(t *testing.T) {
	payload := []byte(`{
		"last_updated": "2025-08-01",
		"plans": [
			{
				"plan_id": "1", "plan_name": "Saver 12", "rep_name": "Gexa Energy",
				"tdu_area": "Oncor Electric Delivery", "rate_type": "FIXED",
				"term_months": 12, "price_kwh_500": 14.2, "price_kwh_1000": 12.1,
				"price_kwh_2000": 11.8, "renewable_pct": 100
			},
			{
				"plan_id": "2", "plan_name": "Broken", "rep_name": "X",
				"tdu_area": "Oncor", "rate_type": "FIXED", "price_kwh_1000": 0
			}
		]
	}`)

	plans, err := ParseJSONPlans(payload)
	require.NoError(t, err)
	require.Len(t, plans, 1)
	assert.Equal(t, "ONCOR", plans[0].TDUArea)
	assert.Equal(t, "English", plans[0].Language)
}

func TestParseJSONPlans_BareArray(t *testing.T) {
	payload := []byte(`[
		{"plan_id": "1", "plan_name": "Saver 12", "rep_name": "Gexa",
		 "tdu_area": "Oncor", "rate_type": "FIXED", "price_kwh_1000": 12.1}
	]`)

	plans, err := ParseJSONPlans(payload)
	require.NoError(t, err)
	assert.Len(t, plans, 1)
}

func TestParsePriceFormats(t *testing.T) {
	assert.InDelta(t, 16.0, parsePrice("0.1600"), 1e-9)
	assert.InDelta(t, 16.0, parsePrice("16.0"), 1e-9)
	assert.InDelta(t, 12.5, parsePrice("12.5¢"), 1e-9)
	assert.Equal(t, 0.0, parsePrice(""))
	assert.Equal(t, 0.0, parsePrice("n/a"))
}

func TestSanitizeURL(t *testing.T) {
	assert.Equal(t, "https://example.com/efl", sanitizeURL("https://example.com/efl"))
	assert.Equal(t, "https://cdn.example.com/efl", sanitizeURL("//cdn.example.com/efl"))
	assert.Equal(t, "https://www.powertochoose.org/en-us/Plan/1", sanitizeURL("/en-us/Plan/1"))
	assert.Equal(t, "", sanitizeURL("  "))
}
