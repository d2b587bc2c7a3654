package qbo

import (
	"encoding/json"
	"time"
)

// Ref is the QuickBooks {value, name} entity reference.
type Ref struct {
	Value string `json:"value,omitempty"`
	Name  string `json:"name,omitempty"`
}

// Address is a QuickBooks physical address.
type Address struct {
	Line1                  string `json:"Line1,omitempty"`
	City                   string `json:"City,omitempty"`
	CountrySubDivisionCode string `json:"CountrySubDivisionCode,omitempty"`
	PostalCode             string `json:"PostalCode,omitempty"`
}

// CompanyInfo is the company profile returned for a realm.
type CompanyInfo struct {
	CompanyName          string   `json:"CompanyName,omitempty"`
	LegalName            string   `json:"LegalName,omitempty"`
	Country              string   `json:"Country,omitempty"`
	CompanyAddr          *Address `json:"CompanyAddr,omitempty"`
	FiscalYearStartMonth string   `json:"FiscalYearStartMonth,omitempty"`
	Email                *struct {
		Address string `json:"Address,omitempty"`
	} `json:"Email,omitempty"`
}

type companyInfoResponse struct {
	CompanyInfo CompanyInfo `json:"CompanyInfo"`
}

// MetaData carries entity audit timestamps.
type MetaData struct {
	CreateTime      time.Time `json:"CreateTime,omitempty"`
	LastUpdatedTime time.Time `json:"LastUpdatedTime,omitempty"`
}

// Invoice is the subset of a QuickBooks invoice the dashboard renders.
type Invoice struct {
	ID          string      `json:"Id,omitempty"`
	DocNumber   string      `json:"DocNumber,omitempty"`
	TxnDate     string      `json:"TxnDate,omitempty"`
	DueDate     string      `json:"DueDate,omitempty"`
	TotalAmt    json.Number `json:"TotalAmt,omitempty"`
	Balance     json.Number `json:"Balance,omitempty"`
	CustomerRef Ref         `json:"CustomerRef,omitempty"`
	MetaData    MetaData    `json:"MetaData,omitempty"`
}

type invoiceQueryResponse struct {
	QueryResponse struct {
		Invoice []Invoice `json:"Invoice"`
	} `json:"QueryResponse"`
}

// Report is a QuickBooks report tree. Only top-level rows carrying a
// Summary are of interest to the normalizer; nested rows are detail.
type Report struct {
	Header ReportHeader `json:"Header,omitempty"`
	Rows   ReportRows   `json:"Rows,omitempty"`
}

type ReportHeader struct {
	StartPeriod string `json:"StartPeriod,omitempty"`
	EndPeriod   string `json:"EndPeriod,omitempty"`
	ReportName  string `json:"ReportName,omitempty"`
}

type ReportRows struct {
	Row []ReportRow `json:"Row,omitempty"`
}

type ReportRow struct {
	Summary *ReportSummary `json:"Summary,omitempty"`
	Rows    *ReportRows    `json:"Rows,omitempty"`
}

type ReportSummary struct {
	ColData []ColData `json:"ColData,omitempty"`
}

type ColData struct {
	Value string `json:"value,omitempty"`
}
