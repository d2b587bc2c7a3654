package qbo

import (
	"sort"
)

// ProfitAndLossSummary is the flat shape the dashboard consumes: one value
// per top-level summary label, plus the report's declared period.
type ProfitAndLossSummary struct {
	Start  string            `json:"start,omitempty"`
	End    string            `json:"end,omitempty"`
	Totals map[string]string `json:"revenue_expense"`
}

// NormalizeInvoices orders invoices by creation time, most recent first.
// Invoices with identical timestamps keep the provider's relative order.
func NormalizeInvoices(invoices []Invoice) []Invoice {
	ordered := make([]Invoice, len(invoices))
	copy(ordered, invoices)

	sort.SliceStable(ordered, func(i, j int) bool {
		return ordered[i].MetaData.CreateTime.After(ordered[j].MetaData.CreateTime)
	})
	return ordered
}

// NormalizeProfitAndLoss flattens a report tree into a label -> value map.
// Only rows carrying a Summary are read; nested detail rows are skipped.
// A summary without a label is dropped, a summary without a value is kept
// with an empty value so the consumer can render "not available".
func NormalizeProfitAndLoss(report *Report) ProfitAndLossSummary {
	summary := ProfitAndLossSummary{
		Totals: make(map[string]string),
	}
	if report == nil {
		return summary
	}

	summary.Start = report.Header.StartPeriod
	summary.End = report.Header.EndPeriod

	for _, row := range report.Rows.Row {
		if row.Summary == nil || len(row.Summary.ColData) == 0 {
			continue
		}
		label := row.Summary.ColData[0].Value
		if label == "" {
			continue
		}
		var value string
		if len(row.Summary.ColData) > 1 {
			value = row.Summary.ColData[1].Value
		}
		summary.Totals[label] = value
	}
	return summary
}
