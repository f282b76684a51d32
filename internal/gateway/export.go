package gateway

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"io"

	"github.com/jung-kurt/gofpdf"
	"github.com/xuri/excelize/v2"

	"tpp-demo/internal/domain"
)

var transactionHeader = []string{"id", "date", "bank", "account", "reference", "direction", "amount", "currency"}

func transactionRow(tx domain.Transaction) []string {
	return []string{
		tx.ID,
		tx.Date.String(),
		tx.Bank,
		tx.Account,
		tx.Reference,
		string(tx.Direction),
		tx.Amount.StringFixed(2),
		tx.Currency,
	}
}

// WriteTransactionsCSV writes transactions as CSV with a header row.
func WriteTransactionsCSV(w io.Writer, transactions []domain.Transaction) error {
	writer := csv.NewWriter(w)
	if err := writer.Write(transactionHeader); err != nil {
		return fmt.Errorf("failed to write header: %w", err)
	}
	for _, tx := range transactions {
		if err := writer.Write(transactionRow(tx)); err != nil {
			return fmt.Errorf("failed to write transaction %s: %w", tx.ID, err)
		}
	}
	writer.Flush()
	return writer.Error()
}

// BuildTransactionsXLSX renders transactions into a single-sheet workbook.
func BuildTransactionsXLSX(transactions []domain.Transaction) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := "transactions"
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return nil, err
	}

	for col, title := range transactionHeader {
		cell, _ := excelize.CoordinatesToCellName(col+1, 1)
		_ = f.SetCellValue(sheet, cell, title)
	}
	for i, tx := range transactions {
		row := i + 2
		_ = f.SetCellValue(sheet, fmt.Sprintf("A%d", row), tx.ID)
		_ = f.SetCellValue(sheet, fmt.Sprintf("B%d", row), tx.Date.String())
		_ = f.SetCellValue(sheet, fmt.Sprintf("C%d", row), tx.Bank)
		_ = f.SetCellValue(sheet, fmt.Sprintf("D%d", row), tx.Account)
		_ = f.SetCellValue(sheet, fmt.Sprintf("E%d", row), tx.Reference)
		_ = f.SetCellValue(sheet, fmt.Sprintf("F%d", row), string(tx.Direction))
		_ = f.SetCellValue(sheet, fmt.Sprintf("G%d", row), tx.Amount.InexactFloat64())
		_ = f.SetCellValue(sheet, fmt.Sprintf("H%d", row), tx.Currency)
	}

	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// BuildStatementPDF renders a one-account statement.
func BuildStatementPDF(bank *domain.Bank, account *domain.Account, generatedOn string) ([]byte, error) {
	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetFont("Arial", "", 12)
	pdf.AddPage()

	pdf.Cell(0, 8, "Account Statement")
	pdf.Ln(10)
	pdf.SetFont("Arial", "", 10)
	pdf.Cell(0, 6, fmt.Sprintf("Bank: %s", bank.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Account: %s (%s)", account.ID, account.Name))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Balance (%s): %s", bank.Currency, account.Balance.StringFixed(2)))
	pdf.Ln(5)
	pdf.Cell(0, 6, fmt.Sprintf("Generated: %s", generatedOn))
	pdf.Ln(8)

	pdf.SetFont("Arial", "B", 10)
	pdf.CellFormat(30, 6, "ID", "1", 0, "C", false, 0, "")
	pdf.CellFormat(28, 6, "Date", "1", 0, "C", false, 0, "")
	pdf.CellFormat(70, 6, "Reference", "1", 0, "C", false, 0, "")
	pdf.CellFormat(20, 6, "Type", "1", 0, "C", false, 0, "")
	pdf.CellFormat(35, 6, "Amount", "1", 0, "C", false, 0, "")
	pdf.Ln(-1)
	pdf.SetFont("Arial", "", 10)
	for _, tx := range account.Transactions {
		pdf.CellFormat(30, 6, tx.ID, "1", 0, "L", false, 0, "")
		pdf.CellFormat(28, 6, tx.Date.String(), "1", 0, "C", false, 0, "")
		pdf.CellFormat(70, 6, tx.Reference, "1", 0, "L", false, 0, "")
		pdf.CellFormat(20, 6, string(tx.Direction), "1", 0, "C", false, 0, "")
		pdf.CellFormat(35, 6, fmt.Sprintf("%s %s", tx.Amount.StringFixed(2), tx.Currency), "1", 0, "R", false, 0, "")
		pdf.Ln(-1)
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
