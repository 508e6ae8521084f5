package metrics

import (
	"fmt"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

func TestHTTPMetricsExportsCountersAndHistogram(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewHTTPMetrics(reg)
	metrics.ObserveRequest("POST", "/v1/sales-orders", 201, 250*time.Millisecond)

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "http_requests_total", "route", "/v1/sales-orders"); err != nil {
		t.Fatalf("fetch requests: %v", err)
	} else if got != 1 {
		t.Fatalf("expected requests=1, got %f", got)
	}

	if got, err := fetchHistogramSum(mfs, "http_request_duration_seconds", "route", "/v1/sales-orders"); err != nil {
		t.Fatalf("fetch duration: %v", err)
	} else if got <= 0 {
		t.Fatalf("expected duration sum > 0, got %f", got)
	}
}

func TestOrderMetricsExportsCounters(t *testing.T) {
	reg := prometheus.NewRegistry()
	metrics := NewOrderMetrics(reg)
	metrics.IncSubmitted("sales")
	metrics.IncTotalMismatch("sales")
	metrics.IncMovement("purchase_receipt")

	mfs, err := reg.Gather()
	if err != nil {
		t.Fatalf("gather metrics: %v", err)
	}

	if got, err := fetchCounterValue(mfs, "orders_submitted_total", "kind", "sales"); err != nil {
		t.Fatalf("fetch submitted: %v", err)
	} else if got != 1 {
		t.Fatalf("expected submitted=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "order_total_mismatch_total", "kind", "sales"); err != nil {
		t.Fatalf("fetch mismatch: %v", err)
	} else if got != 1 {
		t.Fatalf("expected mismatch=1, got %f", got)
	}

	if got, err := fetchCounterValue(mfs, "inventory_movements_total", "reference", "purchase_receipt"); err != nil {
		t.Fatalf("fetch movements: %v", err)
	} else if got != 1 {
		t.Fatalf("expected movements=1, got %f", got)
	}
}

func TestNilRegistererIsSafe(t *testing.T) {
	httpMetrics := NewHTTPMetrics(nil)
	httpMetrics.ObserveRequest("GET", "/healthz", 200, time.Millisecond)

	orderMetrics := NewOrderMetrics(nil)
	orderMetrics.IncSubmitted("purchase")
}

func fetchCounterValue(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetCounter().GetValue(), nil
		}
	}
	return 0, fmt.Errorf("metric %q missing label %s=%s", name, label, value)
}

func fetchHistogramSum(mfs []*dto.MetricFamily, name, label, value string) (float64, error) {
	mf := findMetricFamily(mfs, name)
	if mf == nil {
		return 0, fmt.Errorf("metric %q not found", name)
	}
	for _, metric := range mf.GetMetric() {
		if matchesLabel(metric.GetLabel(), label, value) {
			return metric.GetHistogram().GetSampleSum(), nil
		}
	}
	return 0, fmt.Errorf("histogram %q missing label %s=%s", name, label, value)
}

func findMetricFamily(mfs []*dto.MetricFamily, name string) *dto.MetricFamily {
	for _, mf := range mfs {
		if mf.GetName() == name {
			return mf
		}
	}
	return nil
}

func matchesLabel(labels []*dto.LabelPair, name, value string) bool {
	for _, label := range labels {
		if label.GetName() == name && label.GetValue() == value {
			return true
		}
	}
	return false
}
