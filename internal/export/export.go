// Package export renders reports as JSON, CSV or Parquet artifacts and stores
// them, together with printable QR images, in a blob store.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strconv"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/writer"

	"restaurantcore/internal/blob"
	"restaurantcore/internal/qrcode"
	"restaurantcore/pkg/domain"
)

// Format names an artifact encoding.
type Format string

// Supported formats.
const (
	FormatJSON    Format = "json"
	FormatCSV     Format = "csv"
	FormatParquet Format = "parquet"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatCSV, FormatParquet:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported export format %q", s)
	}
}

func (f Format) contentType() string {
	switch f {
	case FormatJSON:
		return "application/json"
	case FormatCSV:
		return "text/csv"
	default:
		return "application/vnd.apache.parquet"
	}
}

// Exporter writes artifacts under Prefix in Store.
type Exporter struct {
	store  blob.Store
	prefix string
	now    func() time.Time
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithPrefix places every artifact under prefix.
func WithPrefix(prefix string) Option {
	return func(e *Exporter) { e.prefix = prefix }
}

// WithClock overrides the timestamp used in artifact keys.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) { e.now = now }
}

// New returns an exporter writing to store.
func New(store blob.Store, opts ...Option) *Exporter {
	e := &Exporter{store: store, prefix: "exports", now: func() time.Time { return time.Now().UTC() }}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func (e *Exporter) key(kind, name string, ext string) string {
	stamp := e.now().UTC().Format("20060102T150405Z")
	return path.Join(e.prefix, kind, fmt.Sprintf("%s-%s.%s", name, stamp, ext))
}

func (e *Exporter) put(ctx context.Context, key string, payload []byte, contentType string, rows int) (blob.Info, error) {
	info, err := e.store.Put(ctx, key, bytes.NewReader(payload), blob.PutOptions{
		ContentType: contentType,
		Metadata:    map[string]string{"rows": strconv.Itoa(rows)},
		Overwrite:   true,
	})
	if err != nil {
		return blob.Info{}, fmt.Errorf("store %s: %w", key, err)
	}
	return info, nil
}

// FinancialReports writes one row per report.
func (e *Exporter) FinancialReports(ctx context.Context, reports []domain.FinancialReport, format Format) (blob.Info, error) {
	rows := make([]financialRow, 0, len(reports))
	for _, r := range reports {
		rows = append(rows, newFinancialRow(r))
	}
	name := "reports"
	if len(reports) == 1 {
		name = fmt.Sprintf("%s-%s", reports[0].Period, reports[0].StartDate.UTC().Format("2006-01-02"))
	}
	payload, err := encode(format, reports, financialHeader, rows, new(financialRow))
	if err != nil {
		return blob.Info{}, err
	}
	return e.put(ctx, e.key("financial", name, string(format)), payload, format.contentType(), len(rows))
}

// LocationReport writes one row per ranked location.
func (e *Exporter) LocationReport(ctx context.Context, report domain.MultiLocationReport, format Format) (blob.Info, error) {
	rows := make([]locationRow, 0, len(report.Locations))
	for _, l := range report.Locations {
		rows = append(rows, newLocationRow(report, l))
	}
	name := fmt.Sprintf("%s-%s", report.Period, report.StartDate.UTC().Format("2006-01-02"))
	payload, err := encode(format, report, locationHeader, rows, new(locationRow))
	if err != nil {
		return blob.Info{}, err
	}
	return e.put(ctx, e.key("locations", name, string(format)), payload, format.contentType(), len(rows))
}

// QRCode renders code as a PNG and stores it under qr/<id>.png, replacing
// any earlier rendering.
func (e *Exporter) QRCode(ctx context.Context, code domain.QRCode, size int) (blob.Info, error) {
	img, err := qrcode.PNG(code, size)
	if err != nil {
		return blob.Info{}, err
	}
	return e.put(ctx, path.Join(e.prefix, "qr", code.ID+".png"), img, "image/png", 1)
}

type csvRow interface {
	record() []string
}

// encode renders doc as JSON, or rows as CSV or Parquet. proto carries the
// Parquet schema.
func encode[R csvRow](format Format, doc any, header []string, rows []R, proto any) ([]byte, error) {
	switch format {
	case FormatJSON:
		payload, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshal json: %w", err)
		}
		return payload, nil
	case FormatCSV:
		buf := &bytes.Buffer{}
		w := csv.NewWriter(buf)
		if err := w.Write(header); err != nil {
			return nil, err
		}
		for _, row := range rows {
			if err := w.Write(row.record()); err != nil {
				return nil, err
			}
		}
		w.Flush()
		if err := w.Error(); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatParquet:
		return writeParquet(rows, proto)
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
}

// writeParquet encodes rows through a temporary local file.
func writeParquet[R any](rows []R, proto any) ([]byte, error) {
	dir, err := os.MkdirTemp("", "restaurantcore-export-*")
	if err != nil {
		return nil, err
	}
	defer func() { _ = os.RemoveAll(dir) }()
	filePath := filepath.Join(dir, "data.parquet")

	fw, err := local.NewLocalFileWriter(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to create local file writer: %w", err)
	}
	pw, err := writer.NewParquetWriter(fw, proto, 4)
	if err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("failed to create ParquetWriter: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	for _, row := range rows {
		if err := pw.Write(row); err != nil {
			_ = fw.Close()
			return nil, fmt.Errorf("write parquet row: %w", err)
		}
	}
	if err := pw.WriteStop(); err != nil {
		_ = fw.Close()
		return nil, fmt.Errorf("finish parquet file: %w", err)
	}
	if err := fw.Close(); err != nil {
		return nil, err
	}
	return os.ReadFile(filePath)
}
