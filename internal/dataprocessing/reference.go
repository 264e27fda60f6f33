package dataprocessing

import (
	"globalalpha/internal/validation"
	"globalalpha/pkg/contracts/domain"
)

// ReferenceData holds the shared chart of accounts and currency table
type ReferenceData struct {
	Mapping    *domain.Table
	Currencies *domain.Table
}

// LoadReferenceData reads the account mapping and currency sheets of the
// mapping workbook. A missing workbook or sheet is a NOT_FOUND error.
func LoadReferenceData(filePath, mappingSheet, currencySheet string) (*ReferenceData, error) {
	f, err := openWorkbook(filePath)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	mapping, err := readSheet(f, filePath, mappingSheet)
	if err != nil {
		return nil, err
	}
	if err := validation.RequireColumns(mappingSheet, mapping.Columns,
		domain.ColumnEntityName, domain.ColumnLocalAccountCode); err != nil {
		return nil, err
	}

	currencies, err := readSheet(f, filePath, currencySheet)
	if err != nil {
		return nil, err
	}
	if err := validation.RequireColumns(currencySheet, currencies.Columns,
		domain.ColumnCountry, domain.ColumnFXRateToUSD); err != nil {
		return nil, err
	}

	return &ReferenceData{Mapping: mapping, Currencies: currencies}, nil
}
