package export

import (
	"context"
	"encoding/csv"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/xitongsys/parquet-go-source/local"
	"github.com/xitongsys/parquet-go/reader"

	"restaurantcore/internal/blob"
	memorystore "restaurantcore/internal/infra/blob/memory"
	"restaurantcore/pkg/domain"
)

var exportNow = time.Date(2024, 6, 2, 8, 30, 0, 0, time.UTC)

func newTestExporter(t *testing.T) (*Exporter, blob.Store) {
	t.Helper()
	store := memorystore.New()
	return New(store, WithClock(func() time.Time { return exportNow })), store
}

func sampleReport() domain.FinancialReport {
	r := domain.FinancialReport{
		Period:        domain.PeriodDaily,
		StartDate:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		EndDate:       time.Date(2024, 6, 2, 0, 0, 0, 0, time.UTC),
		Revenue:       12.5,
		NetRevenue:    12.5,
		TotalExpenses: 5,
		NetProfit:     7.5,
		ProfitMargin:  60,
		OrderCount:    1,
		GeneratedAt:   exportNow,
	}
	r.ID = "rep-1"
	return r
}

func readBlob(t *testing.T, store blob.Store, key string) []byte {
	t.Helper()
	_, rc, err := store.Get(context.Background(), key)
	if err != nil {
		t.Fatalf("get %s: %v", key, err)
	}
	defer rc.Close()
	data, err := io.ReadAll(rc)
	if err != nil {
		t.Fatalf("read %s: %v", key, err)
	}
	return data
}

func TestParseFormat(t *testing.T) {
	for _, s := range []string{"json", "csv", "parquet"} {
		if f, err := ParseFormat(s); err != nil || string(f) != s {
			t.Fatalf("parse %s: %v %s", s, err, f)
		}
	}
	if _, err := ParseFormat("xlsx"); err == nil {
		t.Fatalf("expected error for unknown format")
	}
}

func TestFinancialReportsJSON(t *testing.T) {
	exp, store := newTestExporter(t)
	info, err := exp.FinancialReports(context.Background(), []domain.FinancialReport{sampleReport()}, FormatJSON)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if info.Key != "exports/financial/daily-2024-06-01-20240602T083000Z.json" {
		t.Fatalf("unexpected key %s", info.Key)
	}
	if info.ContentType != "application/json" || info.Metadata["rows"] != "1" {
		t.Fatalf("unexpected info %+v", info)
	}
	var decoded []domain.FinancialReport
	if err := json.Unmarshal(readBlob(t, store, info.Key), &decoded); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(decoded) != 1 || decoded[0].NetProfit != 7.5 || decoded[0].ID != "rep-1" {
		t.Fatalf("unexpected payload %+v", decoded)
	}
}

func TestFinancialReportsCSV(t *testing.T) {
	exp, store := newTestExporter(t)
	second := sampleReport()
	second.ID = "rep-2"
	second.Revenue = 40
	info, err := exp.FinancialReports(context.Background(), []domain.FinancialReport{sampleReport(), second}, FormatCSV)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if !strings.HasPrefix(info.Key, "exports/financial/reports-") {
		t.Fatalf("unexpected key %s", info.Key)
	}
	records, err := csv.NewReader(strings.NewReader(string(readBlob(t, store, info.Key)))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 || records[0][0] != "id" || records[0][4] != "revenue" {
		t.Fatalf("unexpected header %v", records)
	}
	if records[1][0] != "rep-1" || records[1][2] != "2024-06-01T00:00:00Z" || records[1][4] != "12.50" {
		t.Fatalf("unexpected first row %v", records[1])
	}
	if records[2][4] != "40.00" {
		t.Fatalf("unexpected second row %v", records[2])
	}
}

func TestFinancialReportsParquet(t *testing.T) {
	exp, store := newTestExporter(t)
	info, err := exp.FinancialReports(context.Background(), []domain.FinancialReport{sampleReport()}, FormatParquet)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	data := readBlob(t, store, info.Key)
	if string(data[:4]) != "PAR1" {
		t.Fatalf("missing parquet magic")
	}

	path := filepath.Join(t.TempDir(), "report.parquet")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("write: %v", err)
	}
	fr, err := local.NewLocalFileReader(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	defer fr.Close()
	pr, err := reader.NewParquetReader(fr, new(financialRow), 1)
	if err != nil {
		t.Fatalf("reader: %v", err)
	}
	defer pr.ReadStop()
	if pr.GetNumRows() != 1 {
		t.Fatalf("expected 1 row, got %d", pr.GetNumRows())
	}
	rows := make([]financialRow, 1)
	if err := pr.Read(&rows); err != nil {
		t.Fatalf("read rows: %v", err)
	}
	if rows[0].ID != "rep-1" || rows[0].NetProfit != 7.5 || rows[0].OrderCount != 1 {
		t.Fatalf("unexpected row %+v", rows[0])
	}
}

func TestLocationReportCSV(t *testing.T) {
	exp, store := newTestExporter(t)
	report := domain.MultiLocationReport{
		Period:    domain.PeriodWeekly,
		StartDate: time.Date(2024, 5, 27, 0, 0, 0, 0, time.UTC),
		Locations: []domain.LocationPerformance{
			{LocationID: "loc-2", Name: "Harbor", Rank: 1, Revenue: 37.5, OrderCount: 2},
			{LocationID: "loc-1", Name: "Downtown", Rank: 2, Revenue: 12.5, OrderCount: 1},
		},
	}
	info, err := exp.LocationReport(context.Background(), report, FormatCSV)
	if err != nil {
		t.Fatalf("export: %v", err)
	}
	if info.Key != "exports/locations/weekly-2024-05-27-20240602T083000Z.csv" {
		t.Fatalf("unexpected key %s", info.Key)
	}
	records, err := csv.NewReader(strings.NewReader(string(readBlob(t, store, info.Key)))).ReadAll()
	if err != nil {
		t.Fatalf("parse csv: %v", err)
	}
	if len(records) != 3 || records[1][0] != "1" || records[1][2] != "Harbor" || records[1][3] != "37.50" {
		t.Fatalf("unexpected rows %v", records)
	}
}

func TestExportOverwritesSameKey(t *testing.T) {
	exp, _ := newTestExporter(t)
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		if _, err := exp.FinancialReports(ctx, []domain.FinancialReport{sampleReport()}, FormatJSON); err != nil {
			t.Fatalf("export %d: %v", i, err)
		}
	}
	if _, err := exp.FinancialReports(ctx, nil, Format("xml")); err == nil {
		t.Fatalf("expected unsupported format error")
	}
}

func TestQRCodeStoresPNG(t *testing.T) {
	exp, store := newTestExporter(t)
	code := domain.QRCode{Label: "Table 1", Kind: domain.QRMenu, URL: "https://example.test/menu", Active: true}
	code.ID = "qr-1"
	info, err := exp.QRCode(context.Background(), code, 0)
	if err != nil {
		t.Fatalf("qr: %v", err)
	}
	if info.Key != "exports/qr/qr-1.png" || info.ContentType != "image/png" {
		t.Fatalf("unexpected info %+v", info)
	}
	if data := readBlob(t, store, info.Key); string(data[1:4]) != "PNG" {
		t.Fatalf("expected png payload")
	}
	if _, err := exp.QRCode(context.Background(), code, 10); err == nil {
		t.Fatalf("expected size error")
	}
}
