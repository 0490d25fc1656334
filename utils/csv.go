// utils/csv.go
package utils

import (
	"fmt"
	"strconv"
	"strings"

	"parfumnotebook-backend/models"
)

// ItemsTotal is the exported grand total: sum of quantity*price over all rows.
// Note the on-screen form total sums price only; the two are intentionally
// kept separate (observed behavior, flagged to the owner).
func ItemsTotal(items []models.ReportItem) float64 {
	var total float64
	for _, it := range items {
		total += it.Quantity * it.Price
	}
	return total
}

// FormatAmount renders a stored decimal the way the export has always shown
// them: no exponent, no trailing zeros
func FormatAmount(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// BuildReportCSV serializes a full report aggregate into the spreadsheet
// export. Comma-delimited, UTF-8 without BOM, text cells double-quoted,
// numeric cells bare. The item table deliberately has no per-row sum column;
// the grand total goes on its own line under the price column.
func BuildReportCSV(report models.DailyReport, items []models.ReportItem, tasks []models.Task, testers []models.TesterWriteOffItem) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Дата,%s\nВідділ,%s\nПродавець,%s\n\n", report.Date, report.Department, report.Seller)

	b.WriteString("№,Обʼєм,Бутилка,Колір,Кількість,Ціна,Примітка\n")
	for _, it := range items {
		fmt.Fprintf(&b, "%d,\"%s\",\"%s\",\"%s\",%s,%s,\"%s\"\n",
			it.PositionNo, it.Volume, it.Bottle, it.Color,
			FormatAmount(it.Quantity), FormatAmount(it.Price), it.Remark)
	}

	// total under the price column, five empty cells in
	fmt.Fprintf(&b, "Загальна сума,,,,,%.2f\n", ItemsTotal(items))

	b.WriteString("\nЗадачі\n")
	for _, t := range tasks {
		label := "Не виконано"
		if t.Done {
			label = "Виконано"
		}
		fmt.Fprintf(&b, "\"%s\",%s\n", t.Text, label)
	}

	b.WriteString("\nТестери\n")
	for _, t := range testers {
		fmt.Fprintf(&b, "\"%s\",%s\n", t.Text, FormatAmount(t.Quantity))
	}

	fmt.Fprintf(&b, "\nЗалишок попереднього дня,%s\nБезготівка,%s\nЗалишок,%s\nКаса,%s\nТермінал,%s",
		FormatAmount(report.PrevDayBalance), FormatAmount(report.Cashless),
		FormatAmount(report.Remaining), FormatAmount(report.SafeCashless),
		FormatAmount(report.SafeTerminal))

	return b.String()
}
