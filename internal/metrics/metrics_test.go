package metrics

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"
)

func scrape(t *testing.T, m *Metrics) string {
	t.Helper()
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusOK {
		t.Fatalf("scrape status = %d", rec.Code)
	}
	body, err := io.ReadAll(rec.Body)
	if err != nil {
		t.Fatalf("read body: %v", err)
	}
	return string(body)
}

func TestObserveParseExposesCounters(t *testing.T) {
	m := New()
	m.ObserveParse(Parse{
		Source:         "submit",
		Lines:          4,
		Blocks:         2,
		Duration:       3 * time.Millisecond,
		BlockLanguages: [][]string{{"english"}, {"english", "farsi"}},
	})
	m.ObserveRequest("/", http.StatusOK)
	m.ContractError("submit")
	m.ArchiveFailure()

	body := scrape(t, m)
	for _, want := range []string{
		`scriptparse_lines_parsed_total{source="submit"} 4`,
		`scriptparse_blocks_emitted_total{source="submit"} 2`,
		`scriptparse_language_blocks_total{language="english"} 2`,
		`scriptparse_language_blocks_total{language="farsi"} 1`,
		`scriptparse_http_requests_total{code="200",route="/"} 1`,
		`scriptparse_contract_errors_total{source="submit"} 1`,
		`scriptparse_archive_errors_total 1`,
		`scriptparse_parse_duration_seconds_count{source="submit"} 1`,
	} {
		if !strings.Contains(body, want) {
			t.Fatalf("expected %q in scrape output", want)
		}
	}
}

func TestNilMetricsIsNoop(t *testing.T) {
	var m *Metrics
	m.ObserveParse(Parse{Source: "submit"})
	m.ObserveRequest("/", 200)
	m.ContractError("submit")
	m.ArchiveFailure()
	if m.Registry() != nil {
		t.Fatal("nil metrics should have no registry")
	}
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 from nil metrics handler, got %d", rec.Code)
	}
}

func TestIndependentRegistries(t *testing.T) {
	a, b := New(), New()
	a.ContractError("fixture")
	if strings.Contains(scrape(t, b), `scriptparse_contract_errors_total{source="fixture"}`) {
		t.Fatal("registries should not share collectors")
	}
}
