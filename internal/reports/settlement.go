package reports

import (
	"fmt"

	investmentsdomain "livestock-invest-go/internal/domain/investments"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

const (
	SettlementSheet = "Settlement"
	ContentTypeXLSX = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var settlementHeader = []interface{}{
	"Investor ID",
	"Investor",
	"Investment ID",
	"Amount",
	"Share Ratio",
	"Final Value",
	"Profit",
	"ROI %",
}

// SettlementWorkbook renders a settlement report as a single-sheet workbook:
// cycle summary, one row per payout and a totals row. names maps investor id
// to display name; missing names are left blank.
func SettlementWorkbook(report *investmentsdomain.SettlementReport, names map[string]string) (*excelize.File, error) {
	f := excelize.NewFile()
	if err := f.SetSheetName("Sheet1", SettlementSheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("rename sheet: %w", err)
	}

	if err := fillSettlement(f, report, names); err != nil {
		_ = f.Close()
		return nil, err
	}
	return f, nil
}

func fillSettlement(f *excelize.File, report *investmentsdomain.SettlementReport, names map[string]string) error {
	cycle := report.Cycle
	salePrice := decimal.Zero
	if cycle.FinalSalePrice.Valid {
		salePrice = cycle.FinalSalePrice.Decimal
	}

	summary := [][]interface{}{
		{"Cycle", cycle.ID},
		{"Animal Type", cycle.AnimalType},
		{"Funding Goal", money(cycle.FundingGoal)},
		{"Current Funding", money(cycle.CurrentFunding)},
		{"Final Sale Price", money(salePrice)},
		{"Unfunded Share", money(report.UnfundedShare)},
	}

	row := 1
	for _, values := range summary {
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}
	row++

	headerRow := row
	if err := setRow(f, headerRow, settlementHeader); err != nil {
		return err
	}
	row++

	for _, payout := range report.Payouts {
		values := []interface{}{
			payout.InvestorID,
			names[payout.InvestorID],
			payout.InvestmentID,
			money(payout.Amount),
			payout.ShareRatio.InexactFloat64(),
			money(payout.FinalValue),
			money(payout.Profit),
			payout.ROI.InexactFloat64(),
		}
		if err := setRow(f, row, values); err != nil {
			return err
		}
		row++
	}

	totals := []interface{}{
		"Total",
		fmt.Sprintf("%d investors", report.InvestorsCount),
		"",
		money(report.TotalInvested),
		"",
		money(report.TotalValue),
		money(report.TotalProfit),
		"",
	}
	if err := setRow(f, row, totals); err != nil {
		return err
	}

	bold, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("create style: %w", err)
	}
	for _, r := range []int{headerRow, row} {
		start, _ := excelize.CoordinatesToCellName(1, r)
		end, _ := excelize.CoordinatesToCellName(len(settlementHeader), r)
		if err := f.SetCellStyle(SettlementSheet, start, end, bold); err != nil {
			return fmt.Errorf("set style: %w", err)
		}
	}

	if err := f.SetColWidth(SettlementSheet, "A", "C", 38); err != nil {
		return fmt.Errorf("set column width: %w", err)
	}
	return f.SetColWidth(SettlementSheet, "D", "H", 16)
}

func setRow(f *excelize.File, row int, values []interface{}) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	if err := f.SetSheetRow(SettlementSheet, cell, &values); err != nil {
		return fmt.Errorf("write row %d: %w", row, err)
	}
	return nil
}

func money(value decimal.Decimal) float64 {
	return value.Round(2).InexactFloat64()
}
