package corebank

import (
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

const statementDateFmt = "2006-01-02 15:04"

// renderStatement writes a one-account PDF statement. txns are expected
// newest first, as ListTransactions returns them.
func renderStatement(w io.Writer, acct *Account, txns []Transaction, generated time.Time) error {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(fmt.Sprintf("Statement %s", acct.AcctID), false)
	pdf.AddPage()

	pdf.SetFont("Helvetica", "B", 14)
	pdf.CellFormat(0, 10, "Account statement", "", 1, "L", false, 0, "")

	pdf.SetFont("Helvetica", "", 10)
	for _, line := range []string{
		fmt.Sprintf("Account: %s (%s, %s)", acct.AcctID, acct.Type, acct.Status),
		fmt.Sprintf("Customer: %d", acct.CustomerID),
		fmt.Sprintf("Balance: %s", acct.Balance.StringFixed(2)),
		fmt.Sprintf("Generated: %s UTC", generated.UTC().Format(statementDateFmt)),
	} {
		pdf.CellFormat(0, 6, line, "", 1, "L", false, 0, "")
	}
	pdf.Ln(4)

	widths := []float64{38, 26, 30, 96}
	pdf.SetFont("Helvetica", "B", 10)
	for i, h := range []string{"Date", "Kind", "Amount", "Description"} {
		pdf.CellFormat(widths[i], 7, h, "1", 0, "C", false, 0, "")
	}
	pdf.Ln(-1)

	pdf.SetFont("Helvetica", "", 9)
	for _, t := range txns {
		amount := t.Kind.Signed(t.Amount).StringFixed(2)
		pdf.CellFormat(widths[0], 6, t.CreatedAt.UTC().Format(statementDateFmt), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[1], 6, string(t.Kind), "1", 0, "L", false, 0, "")
		pdf.CellFormat(widths[2], 6, amount, "1", 0, "R", false, 0, "")
		pdf.CellFormat(widths[3], 6, truncate(t.Description, 60), "1", 1, "L", false, 0, "")
	}
	if len(txns) == 0 {
		pdf.CellFormat(0, 6, "No transactions.", "", 1, "L", false, 0, "")
	}

	return pdf.Output(w)
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
