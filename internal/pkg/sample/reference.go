package sample

import "github.com/dcervantes/powerpick/internal/domain"

// TDUs returns a built-in copy of the regulated delivery tariffs so the
// server can run without a data directory. Rates follow the March and
// September PUCT filing cycle and will drift from the live tariffs.
func TDUs() *domain.TDURatesData {
	return &domain.TDURatesData{
		LastUpdated: "2025-03-01",
		NextUpdate:  "2025-09-01",
		TDUs: []*domain.TDURate{
			{
				Code:              "ONCOR",
				Name:              "Oncor Electric Delivery",
				MonthlyBaseCharge: 4.23,
				PerKWhRate:        5.1,
				EffectiveDate:     "2025-03-01",
				ZipCodes: []domain.ZipRange{
					{Min: 75000, Max: 76999},
					{Min: 79000, Max: 79399},
				},
			},
			{
				Code:              "CENTERPOINT",
				Name:              "CenterPoint Energy",
				MonthlyBaseCharge: 4.39,
				PerKWhRate:        4.9,
				EffectiveDate:     "2025-03-01",
				ZipCodes: []domain.ZipRange{
					{Min: 77000, Max: 77499},
				},
			},
			{
				Code:              "AEP_CENTRAL",
				Name:              "AEP Texas Central",
				MonthlyBaseCharge: 4.79,
				PerKWhRate:        5.5,
				EffectiveDate:     "2025-03-01",
				ZipCodes: []domain.ZipRange{
					{Min: 78330, Max: 78599},
				},
			},
			{
				Code:              "AEP_NORTH",
				Name:              "AEP Texas North",
				MonthlyBaseCharge: 4.79,
				PerKWhRate:        5.3,
				EffectiveDate:     "2025-03-01",
				ZipCodes: []domain.ZipRange{
					{Min: 79500, Max: 79699},
				},
			},
			{
				Code:              "TNMP",
				Name:              "Texas-New Mexico Power",
				MonthlyBaseCharge: 7.85,
				PerKWhRate:        5.8,
				EffectiveDate:     "2025-03-01",
				ZipCodes: []domain.ZipRange{
					{Min: 77500, Max: 77599},
					{Min: 79700, Max: 79999},
				},
			},
			{
				Code:              "LPL",
				Name:              "Lubbock Power and Light",
				MonthlyBaseCharge: 5.25,
				PerKWhRate:        5.0,
				EffectiveDate:     "2025-03-01",
				ZipCodes: []domain.ZipRange{
					{Min: 79400, Max: 79499},
				},
			},
		},
	}
}

// Taxes returns built-in local sales tax tables for the major deregulated
// metros plus prefix ranges for everything else.
func Taxes() *domain.LocalTaxesData {
	oncor := "ONCOR"
	centerpoint := "CENTERPOINT"
	return &domain.LocalTaxesData{
		DefaultLocalRate: 0.0825,
		MajorCities: map[string]*domain.CityTax{
			"dallas": {
				Rate:        0.0825,
				TDU:         &oncor,
				Deregulated: true,
				ZipCodes:    []string{"75201", "75202", "75203", "75204", "75205"},
			},
			"houston": {
				Rate:        0.0825,
				TDU:         &centerpoint,
				Deregulated: true,
				ZipCodes:    []string{"77001", "77002", "77003", "77004", "77005"},
			},
			"fort_worth": {
				Rate:        0.0825,
				TDU:         &oncor,
				Deregulated: true,
				ZipCodes:    []string{"76101", "76102", "76103", "76104"},
			},
		},
		ZipCodeRanges: map[string]*domain.RangeTax{
			"750xx": {Rate: 0.0825, Region: "Dallas metro", TDU: &oncor},
			"770xx": {Rate: 0.0825, Region: "Houston metro", TDU: &centerpoint},
		},
	}
}
