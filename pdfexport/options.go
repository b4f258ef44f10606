package pdfexport

import (
	"legaldocpdf/pdfgen"
	"legaldocpdf/rules"
)

// Options configures a single Export call.
type Options struct {
	DocumentType rules.DocumentType
	Config       rules.Config

	Title   string
	Author  string
	Subject string

	Paper pdfgen.PaperSize

	PageNumbers pdfgen.PageNumberOptions

	HeaderMetadata rules.HeaderMetadata

	// Watermark, if non-empty, is stamped on every page of the generated
	// PDF via pdfcpu after gofpdf writes the body.
	Watermark string

	Reporter Reporter
	Metrics  *Metrics
}

func (o Options) reporter() Reporter {
	if o.Reporter != nil {
		return o.Reporter
	}
	return NullReporter{}
}

// PDFExportResult summarizes one completed export.
type PDFExportResult struct {
	PageCount   int
	HasOverflow bool
	Bytes       []byte
}
