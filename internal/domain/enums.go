package domain

// Stage is a step of the export pipeline. A request moves through the stages
// in order; a failure is reported against the last stage reached.
type Stage string

const (
	StageUnauthenticated Stage = "unauthenticated"
	StageAuthenticated   Stage = "authenticated"
	StageFetched         Stage = "fetched"
	StageMapped          Stage = "mapped"
	StageForwarded       Stage = "forwarded"
	StageDone            Stage = "done"
)

// ExportFormat is a document export format understood by the upstream API.
type ExportFormat string

const (
	ExportFormatXML  ExportFormat = "xml"
	ExportFormatJSON ExportFormat = "json"
	ExportFormatCSV  ExportFormat = "csv"
	ExportFormatXLSX ExportFormat = "xlsx"
)

// Source schema keys read by the mapper.
const (
	KeyInvoiceID       = "invoice_id"
	KeyDocumentID      = "document_id"
	KeyDateIssue       = "date_issue"
	KeyDateDue         = "date_due"
	KeyAmountTotal     = "amount_total"
	KeyAmountTotalBase = "amount_total_base"
	KeyIBAN            = "iban"
	KeyCurrency        = "currency"
	KeySenderName      = "sender_name"
	KeySenderAddress   = "sender_address"
	KeyLineItem        = "line_item"
	KeyItemAmount      = "item_amount"
	KeyItemQuantity    = "item_quantity"
	KeyItemDescription = "item_description"
)

// InvoiceNumberKeys lists the schema keys tried, in order, for the invoice number.
var InvoiceNumberKeys = []string{KeyInvoiceID, KeyDocumentID}
