package pdfexport

import (
	"bytes"
	"fmt"

	pdfcpuapi "github.com/vsenko/pdfcpu/pkg/api"
	"github.com/vsenko/pdfcpu/pkg/pdfcpu"
	pdfcpumodel "github.com/vsenko/pdfcpu/pkg/pdfcpu/model"
	pdfcputypes "github.com/vsenko/pdfcpu/pkg/pdfcpu/types"
)

// validatePDF round-trips pdfBytes through pdfcpu's context reader and
// validator, the way the teacher's Builder.Write validates the
// document it just produced with gofpdf before handing it to the
// caller.
func validatePDF(pdfBytes []byte) error {
	ctx, err := pdfcpuapi.ReadContext(bytes.NewReader(pdfBytes), pdfcpumodel.NewDefaultConfiguration())
	if err != nil {
		return fmt.Errorf("read pdf context: %w", err)
	}
	if err := pdfcpuapi.ValidateContext(ctx); err != nil {
		return fmt.Errorf("validate pdf context: %w", err)
	}
	return nil
}

// applyWatermark stamps text across every page of pdfBytes using
// pdfcpu's text watermarking, the non-document-overlay sibling of the
// teacher's embedded-PDF-as-watermark technique in Builder.Write.
func applyWatermark(pdfBytes []byte, text string) ([]byte, error) {
	conf := pdfcpumodel.NewDefaultConfiguration()

	ctx, err := pdfcpuapi.ReadContext(bytes.NewReader(pdfBytes), conf)
	if err != nil {
		return nil, fmt.Errorf("read pdf context: %w", err)
	}

	desc := "scale:0.8 rel, rot:45, opacity:0.3"
	wm, err := pdfcpu.ParseTextWatermarkDetails(text, desc, false, pdfcputypes.POINTS)
	if err != nil {
		return nil, fmt.Errorf("parse watermark details: %w", err)
	}

	if err := ctx.EnsurePageCount(); err != nil {
		return nil, fmt.Errorf("ensure page count: %w", err)
	}

	pages, err := pdfcpuapi.PagesForPageSelection(ctx.PageCount, nil, true, true)
	if err != nil {
		return nil, fmt.Errorf("resolve page selection: %w", err)
	}

	if err := pdfcpu.AddWatermarks(ctx, pages, wm); err != nil {
		return nil, fmt.Errorf("add watermarks: %w", err)
	}

	if err := pdfcpuapi.ValidateContext(ctx); err != nil {
		return nil, fmt.Errorf("validate watermarked context: %w", err)
	}

	var out bytes.Buffer
	if err := pdfcpuapi.WriteContext(ctx, &out); err != nil {
		return nil, fmt.Errorf("write watermarked pdf: %w", err)
	}

	return out.Bytes(), nil
}
