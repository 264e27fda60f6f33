package dataprocessing

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "globalalpha/internal/errors"
	"globalalpha/internal/files"
)

func TestNormalizeHeader(t *testing.T) {
	tests := map[string]string{
		"Account Code":   "ACCOUNTCODE",
		"account_code":   "ACCOUNTCODE",
		"  Local Amount": "LOCALAMOUNT",
		"Local_Amount ":  "LOCALAMOUNT",
		"Cost Centre_ID": "COSTCENTREID",
		"":               "",
	}
	for in, want := range tests {
		assert.Equal(t, want, NormalizeHeader(in), "input %q", in)
	}
}

func TestLoadExtract_Columns(t *testing.T) {
	path := writeExtract(t, t.TempDir(), "Raw_OmniRetail.csv.xlsx",
		row("account_code", " Local Amount", "Cost Centre"),
		row("rev01", 1000, "CC1"),
		row("AST01", "n/a", nil),
	)

	table, err := LoadExtract(path, "Omni-Retail")
	require.NoError(t, err)

	assert.Equal(t, []string{"Account_Code", "Local_Amount", "COSTCENTRE", "Entity"}, table.Columns)
	assert.Equal(t, [][]string{
		{"rev01", "1000", "CC1", "Omni-Retail"},
		{"AST01", "n/a", "", "Omni-Retail"},
	}, table.Rows)
}

func TestLoadExtract_PackedColumn(t *testing.T) {
	tests := []struct {
		name     string
		rows     [][]interface{}
		wantCols []string
		wantRows [][]string
		wantErr  bool
	}{
		{
			name: "split into header comma count plus one columns",
			rows: [][]interface{}{
				row("Account Code,Local Amount,Region"),
				row("REV01,1000,EU"),
				row("AST01,2000,US"),
			},
			wantCols: []string{"Account_Code", "Local_Amount", "REGION", "Entity"},
			wantRows: [][]string{
				{"REV01", "1000", "EU", "BioGrowth"},
				{"AST01", "2000", "US", "BioGrowth"},
			},
		},
		{
			name: "cells keep the text after the comma",
			rows: [][]interface{}{
				row("Account Code, Local Amount"),
				row("REV01, 1000"),
			},
			wantCols: []string{"Account_Code", "Local_Amount", "Entity"},
			wantRows: [][]string{{"REV01", " 1000", "BioGrowth"}},
		},
		{
			name: "short rows are padded with nulls",
			rows: [][]interface{}{
				row("Account_Code,Local_Amount,Region"),
				row("REV01,1000"),
			},
			wantCols: []string{"Account_Code", "Local_Amount", "REGION", "Entity"},
			wantRows: [][]string{{"REV01", "1000", "", "BioGrowth"}},
		},
		{
			name: "empty fields stay null",
			rows: [][]interface{}{
				row("Account_Code,Local_Amount"),
				row("REV01,"),
			},
			wantCols: []string{"Account_Code", "Local_Amount", "Entity"},
			wantRows: [][]string{{"REV01", "", "BioGrowth"}},
		},
		{
			name: "more fields than header is rejected",
			rows: [][]interface{}{
				row("Account_Code,Local_Amount"),
				row("REV01,1000,extra"),
			},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeExtract(t, t.TempDir(), "Raw_BioGrowth.csv.xlsx", tt.rows...)

			table, err := LoadExtract(path, "BioGrowth")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantCols, table.Columns)
			assert.Equal(t, tt.wantRows, table.Rows)
		})
	}
}

func TestExtractLoader_LoadAll(t *testing.T) {
	dir := t.TempDir()
	names := []string{"A", "B", "C", "D", "E"}
	var extracts []files.EntityExtract
	for i, name := range names {
		ex := files.EntityExtract{Entity: name, Path: filepath.Join(dir, name+".xlsx")}
		// B is absent
		if name != "B" {
			writeExtract(t, dir, name+".xlsx",
				row("Account Code", "Local Amount"),
				row("REV01", (i+1)*100),
			)
			ex.Exists = true
		}
		extracts = append(extracts, ex)
	}

	loader := NewExtractLoader(2, nil, nil)
	loaded, err := loader.LoadAll(context.Background(), extracts)
	require.NoError(t, err)

	require.Len(t, loaded, 4)
	var got []string
	for _, l := range loaded {
		got = append(got, l.Entity)
		assert.Equal(t, l.Entity, l.Table.Value(0, "Entity"))
	}
	assert.Equal(t, []string{"A", "C", "D", "E"}, got)
	assert.Equal(t, "300", loaded[1].Table.Value(0, "Local_Amount"))
}

func TestExtractLoader_LoadAllFailure(t *testing.T) {
	dir := t.TempDir()
	good := writeExtract(t, dir, "good.xlsx", row("Account Code"), row("REV01"))
	bad := writeExtract(t, dir, "bad.xlsx", row("a,b"), row("1,2,3"))

	loader := NewExtractLoader(0, nil, nil)
	_, err := loader.LoadAll(context.Background(), []files.EntityExtract{
		{Entity: "Good", Path: good, Exists: true},
		{Entity: "Bad", Path: bad, Exists: true},
	})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "load Bad")
	assert.True(t, apperrors.IsType(err, apperrors.ErrTypeParsing))
}

func TestExtractLoader_Cancelled(t *testing.T) {
	dir := t.TempDir()
	path := writeExtract(t, dir, "a.xlsx", row("Account Code"), row("REV01"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := NewExtractLoader(1, nil, nil).LoadAll(ctx, []files.EntityExtract{{Entity: "A", Path: path, Exists: true}})
	assert.ErrorIs(t, err, context.Canceled)
}
