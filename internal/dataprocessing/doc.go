// Package dataprocessing turns subsidiary trial-balance extracts into the
// consolidated master fact table.
//
// # Architecture
//
//  1. Parser: reads workbook sheets and CSV files into domain.Table values
//  2. Loader: normalizes extract headers, splits packed single-column rows
//     and tags each row with its entity, loading extracts in parallel
//  3. Consolidator: stacks the extracts, joins them to the account mapping
//     and the currency table and computes Amount_USD
//
// # Usage
//
//	ref, err := dataprocessing.LoadReferenceData(path, "Account_Mapping", "Currency_Master")
//	if err != nil {
//	    return err
//	}
//	loaded, err := dataprocessing.NewExtractLoader(4, logger, metrics).LoadAll(ctx, extracts)
//	if err != nil {
//	    return err
//	}
//	fact, stats, err := dataprocessing.NewConsolidator(cfg.CountryMap(), logger).
//	    Consolidate(ctx, loaded, ref)
//
// # Nulls
//
// Cells are strings and the empty string is null. Null join keys never
// match, unmatched joins leave null cells and a non-numeric Local_Amount
// yields a null Amount_USD. A missing or non-numeric FX rate counts as 1.0.
//
// # Error Handling
//
// Errors are apperrors values: NOT_FOUND for missing files or sheets,
// PARSING for unreadable workbooks and malformed packed rows, and
// VALIDATION for missing required columns.
package dataprocessing
