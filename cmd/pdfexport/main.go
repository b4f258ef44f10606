// Command pdfexport renders a legal document's markdown-like source
// text into a formatted PDF file.
package main

import (
	"errors"
	"flag"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"legaldocpdf/pdfexport"
	"legaldocpdf/rules"
	"legaldocpdf/sink"
)

var (
	// AppVersion holds application version.
	// It is set on build with -ldflags "-X main.AppVersion=1.0.0"
	AppVersion string
)

var (
	inputFlag        = flag.String("input", "", "path to the source document text file")
	outputFlag       = flag.String("output", "", "path to write the generated PDF to")
	docTypeFlag      = flag.String("doc-type", "", "document type (e.g. nda-ip-specific); unknown/empty uses default rules")
	titleFlag        = flag.String("title", "", "PDF document title metadata")
	authorFlag       = flag.String("author", "", "PDF document author metadata")
	watermarkFlag    = flag.String("watermark", "", "text to stamp across every page, disabled if empty")
	pageNumbersFlag  = flag.Bool("page-numbers", true, "stamp page numbers in the document footer")
	prometheusPort   = flag.String("prometheus-port", "", "port to expose prometheus metrics on, disabled if empty")
	versionFlag      = flag.Bool("version", false, "Show version")
)

func main() {
	if AppVersion == "" {
		AppVersion = "undefined"
	}

	flag.Parse()

	if *versionFlag {
		fmt.Printf("Version: %s\n", AppVersion)
		return
	}

	if *inputFlag == "" || *outputFlag == "" {
		fmt.Fprintln(os.Stderr, "both -input and -output are required")
		os.Exit(2)
	}

	var metrics *pdfexport.Metrics
	var promServer *http.Server
	if *prometheusPort != "" {
		reg := prometheus.NewRegistry()
		metrics = pdfexport.NewMetrics(reg)

		mux := http.NewServeMux()
		mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
		promServer = &http.Server{
			Addr:              fmt.Sprintf(":%v", *prometheusPort),
			Handler:           mux,
			ReadHeaderTimeout: 1 * time.Second,
			ReadTimeout:       1 * time.Second,
			WriteTimeout:      2 * time.Second,
			IdleTimeout:       120 * time.Second,
		}
		go func() {
			if err := promServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				panic(err)
			}
		}()
	}

	if err := run(metrics); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}

	if promServer != nil {
		_ = promServer.Close()
	}
}

func run(metrics *pdfexport.Metrics) error {
	text, err := os.ReadFile(*inputFlag)
	if err != nil {
		return fmt.Errorf("read input: %w", err)
	}

	dest, err := sink.NewFileSink(*outputFlag)
	if err != nil {
		return fmt.Errorf("open output: %w", err)
	}

	opts := pdfexport.Options{
		DocumentType: rules.DocumentType(*docTypeFlag),
		Title:        *titleFlag,
		Author:       *authorFlag,
		Watermark:    *watermarkFlag,
		Reporter:     pdfexport.ConsoleReporter{},
		Metrics:      metrics,
	}
	opts.PageNumbers.Enabled = *pageNumbersFlag
	opts.PageNumbers.Position = "CM"

	result, err := pdfexport.Export(string(text), opts, dest)
	if err != nil {
		return fmt.Errorf("export: %w", err)
	}

	fmt.Printf("wrote %d page(s) to %s\n", result.PageCount, *outputFlag)
	return nil
}
