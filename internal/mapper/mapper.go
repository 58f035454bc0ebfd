// Package mapper converts Rossum annotation exports into the InvoiceRegisters
// payable schema.
package mapper

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strconv"
	"strings"

	"exportbridge/internal/domain"
)

// Declaration precedes every converted document.
const Declaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

const midnightSuffix = "T00:00:00"

// Convert maps a Rossum export document to a serialized InvoiceRegisters
// document. Any missing required field fails the whole conversion with an
// error wrapping domain.ErrSchemaMismatch.
func Convert(doc []byte) ([]byte, error) {
	reg, err := Map(doc)
	if err != nil {
		return nil, err
	}
	return Marshal(reg)
}

// Map builds the target document from a Rossum export without serializing it.
func Map(doc []byte) (*domain.InvoiceRegisters, error) {
	root, err := parseTree(doc)
	if err != nil {
		return nil, mismatch("%v", err)
	}

	annotation := root.find("annotation", "")
	if annotation == nil {
		return nil, mismatch("annotation element not found")
	}
	content := annotation.child("content")
	if content == nil {
		return nil, mismatch("annotation has no content")
	}

	r := reader{content: content}

	payable := domain.Payable{
		InvoiceNumber: r.firstOf(domain.InvoiceNumberKeys...),
		InvoiceDate:   r.date(domain.KeyDateIssue),
		DueDate:       r.date(domain.KeyDateDue),
		TotalAmount:   r.value(domain.KeyAmountTotal),
		Iban:          r.value(domain.KeyIBAN),
		Amount:        r.value(domain.KeyAmountTotalBase),
		Currency:      strings.ToUpper(r.required(domain.KeyCurrency)),
		Vendor:        r.value(domain.KeySenderName),
		VendorAddress: r.value(domain.KeySenderAddress),
	}

	for i, item := range content.findAll("tuple", domain.KeyLineItem) {
		ir := reader{content: item}
		detail := domain.Detail{
			Amount:   ir.value(domain.KeyItemAmount),
			Quantity: ir.value(domain.KeyItemQuantity),
			Notes:    ir.optional(domain.KeyItemDescription),
		}
		if detail.Notes == "" {
			detail.Notes = "Line item " + strconv.Itoa(i+1)
		}
		if ir.err != nil {
			return nil, fmt.Errorf("line item %d: %w", i+1, ir.err)
		}
		payable.Details.Detail = append(payable.Details.Detail, detail)
	}

	if r.err != nil {
		return nil, r.err
	}

	return &domain.InvoiceRegisters{Invoices: domain.Invoices{Payable: payable}}, nil
}

// Marshal serializes the target document with the XML declaration.
func Marshal(reg *domain.InvoiceRegisters) ([]byte, error) {
	body, err := xml.Marshal(reg)
	if err != nil {
		return nil, fmt.Errorf("marshaling invoice registers: %w", err)
	}
	var buf bytes.Buffer
	buf.Grow(len(Declaration) + len(body))
	buf.WriteString(Declaration)
	buf.Write(body)
	return buf.Bytes(), nil
}

// reader looks up datapoints by schema key within one scope and records the
// first lookup failure.
type reader struct {
	content *element
	err     error
}

func (r *reader) lookup(key string) (*element, bool) {
	dp := r.content.find("datapoint", key)
	return dp, dp != nil
}

// value returns the datapoint text; the datapoint must exist but may be empty.
func (r *reader) value(key string) string {
	dp, ok := r.lookup(key)
	if !ok {
		r.fail(mismatch("datapoint %q not found", key))
		return ""
	}
	return dp.text.String()
}

// required is value plus a non-empty check, for fields that get normalized.
func (r *reader) required(key string) string {
	v := r.value(key)
	if v == "" {
		r.fail(mismatch("datapoint %q is empty", key))
	}
	return v
}

// optional returns the datapoint text, or "" when it does not exist.
func (r *reader) optional(key string) string {
	if dp, ok := r.lookup(key); ok {
		return dp.text.String()
	}
	return ""
}

// firstOf returns the value of the first key whose datapoint exists.
func (r *reader) firstOf(keys ...string) string {
	for _, key := range keys {
		if dp, ok := r.lookup(key); ok {
			return dp.text.String()
		}
	}
	r.fail(mismatch("none of datapoints %q found", keys))
	return ""
}

func (r *reader) date(key string) string {
	v := r.required(key)
	if v == "" {
		return ""
	}
	return v + midnightSuffix
}

func (r *reader) fail(err error) {
	if r.err == nil {
		r.err = err
	}
}

func mismatch(format string, args ...any) error {
	return fmt.Errorf("%w: %s", domain.ErrSchemaMismatch, fmt.Sprintf(format, args...))
}
