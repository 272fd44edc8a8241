package reports

import (
	"bytes"
	"testing"

	cyclesdomain "livestock-invest-go/internal/domain/cycles"
	investmentsdomain "livestock-invest-go/internal/domain/investments"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
)

func TestSettlementWorkbook(t *testing.T) {
	cycle := cyclesdomain.Cycle{
		ID:             "c-1",
		AnimalType:     "عجول فريزيان",
		Status:         cyclesdomain.StatusCompleted,
		FundingGoal:    decimal.NewFromInt(30000),
		CurrentFunding: decimal.NewFromInt(30000),
		FinalSalePrice: decimal.NewNullDecimal(decimal.NewFromInt(45000)),
	}
	report, err := investmentsdomain.Settle(cycle, []investmentsdomain.Investment{
		{ID: "i-1", InvestorID: "u-1", Amount: decimal.NewFromInt(30000)},
	})
	if err != nil {
		t.Fatalf("settle: %v", err)
	}

	f, err := SettlementWorkbook(report, map[string]string{"u-1": "سارة إبراهيم"})
	if err != nil {
		t.Fatalf("expected no error, got %v", err)
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		t.Fatalf("write workbook: %v", err)
	}
	_ = f.Close()

	reopened, err := excelize.OpenReader(&buf)
	if err != nil {
		t.Fatalf("reopen workbook: %v", err)
	}
	defer reopened.Close()

	rows, err := reopened.GetRows(SettlementSheet)
	if err != nil {
		t.Fatalf("read rows: %v", err)
	}
	// 6 summary rows, a blank row, header, one payout, totals.
	if len(rows) != 10 {
		t.Fatalf("expected 10 rows, got %d: %v", len(rows), rows)
	}
	if rows[7][0] != "Investor ID" {
		t.Fatalf("expected header row, got %v", rows[7])
	}
	payout := rows[8]
	if payout[1] != "سارة إبراهيم" || payout[3] != "30000" || payout[5] != "45000" || payout[6] != "15000" || payout[7] != "50" {
		t.Fatalf("unexpected payout row %v", payout)
	}
	if rows[9][0] != "Total" || rows[9][6] != "15000" {
		t.Fatalf("unexpected totals row %v", rows[9])
	}
}
