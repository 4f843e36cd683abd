package loader

import (
	"sort"
	"strconv"
	"strings"

	"github.com/dcervantes/powerpick/internal/domain"
	"github.com/dcervantes/powerpick/internal/pkg/constants"
)

// ResolveTDU finds the delivery tariff for a service-area code.
func ResolveTDU(rates *domain.TDURatesData, area string) (*domain.TDURate, error) {
	if rates == nil {
		return nil, constants.ErrMissingTDURate
	}
	code := NormalizeTDUName(area)
	for _, tdu := range rates.TDUs {
		if tdu.Code == code {
			return tdu, nil
		}
	}
	return nil, constants.ErrUnknownTDUArea
}

// ResolveTDUByZip finds the tariff whose ZIP ranges contain the given code.
func ResolveTDUByZip(rates *domain.TDURatesData, zip string) (*domain.TDURate, error) {
	if rates == nil {
		return nil, constants.ErrMissingTDURate
	}
	z, err := strconv.Atoi(strings.TrimSpace(zip))
	if err != nil {
		return nil, constants.ErrUnknownZipCode
	}
	for _, tdu := range rates.TDUs {
		for _, r := range tdu.ZipCodes {
			if z >= r.Min && z <= r.Max {
				return tdu, nil
			}
		}
	}
	return nil, constants.ErrUnknownTDUArea
}

// ResolveTax looks a ZIP code up in the city tables first, then the
// "750xx"-style range table, then falls back to the statewide default rate.
func ResolveTax(taxes *domain.LocalTaxesData, zip string) domain.TaxInfo {
	if taxes == nil {
		return domain.TaxInfo{Deregulated: true}
	}
	zip = strings.TrimSpace(zip)

	// cities are checked in sorted order so an overlapping ZIP always
	// resolves the same way
	for _, city := range sortedKeys(taxes.MajorCities) {
		ct := taxes.MajorCities[city]
		for _, z := range ct.ZipCodes {
			if z == zip {
				return domain.TaxInfo{
					Rate:        ct.Rate,
					Region:      city,
					TDU:         ct.TDU,
					Deregulated: ct.Deregulated,
					Note:        ct.Note,
				}
			}
		}
	}

	if len(zip) == 5 {
		prefix := zip[:3] + "xx"
		if rt, ok := taxes.ZipCodeRanges[prefix]; ok {
			return domain.TaxInfo{
				Rate:        rt.Rate,
				Region:      rt.Region,
				TDU:         rt.TDU,
				Deregulated: true,
				Note:        rt.Note,
			}
		}
	}

	return domain.TaxInfo{Rate: taxes.DefaultLocalRate, Region: "default", Deregulated: true}
}

func sortedKeys(m map[string]*domain.CityTax) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
