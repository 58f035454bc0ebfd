package domain

import "encoding/xml"

// InvoiceRegisters is the root of the target payable document.
type InvoiceRegisters struct {
	XMLName  xml.Name `xml:"InvoiceRegisters"`
	Invoices Invoices `xml:"Invoices"`
}

// Invoices wraps the single payable produced per annotation.
type Invoices struct {
	Payable Payable `xml:"Payable"`
}

// Payable is the invoice header plus its detail lines. Every header element is
// always serialized, empty when the source value is empty.
type Payable struct {
	InvoiceNumber string   `xml:"InvoiceNumber"`
	InvoiceDate   string   `xml:"InvoiceDate"`
	DueDate       string   `xml:"DueDate"`
	TotalAmount   string   `xml:"TotalAmount"`
	Notes         string   `xml:"Notes"`
	Iban          string   `xml:"Iban"`
	Amount        string   `xml:"Amount"`
	Currency      string   `xml:"Currency"`
	Vendor        string   `xml:"Vendor"`
	VendorAddress string   `xml:"VendorAddress"`
	Details       Details  `xml:"Details"`
}

// Details holds the invoice lines; the element is emitted even when empty.
type Details struct {
	Detail []Detail `xml:"Detail"`
}

// Detail is one invoice line.
type Detail struct {
	Amount    string `xml:"Amount"`
	AccountID string `xml:"AccountId"`
	Quantity  string `xml:"Quantity"`
	Notes     string `xml:"Notes"`
}

// ExportInput identifies the annotation to export.
type ExportInput struct {
	AnnotationID string
	QueueID      string
	RequestID    string
}

// ExportResult summarizes a completed export.
type ExportResult struct {
	AnnotationID  string   `json:"annotation_id"`
	QueueID       string   `json:"queue_id"`
	InvoiceNumber string   `json:"invoice_number"`
	Details       int      `json:"details"`
	SinkStatus    int      `json:"sink_status"`
	ArchiveKeys   []string `json:"archive_keys,omitempty"`
}
