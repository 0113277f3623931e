package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	dto "github.com/prometheus/client_model/go"
)

func TestHttpStatusRecorder_CapturesFirstStatus(t *testing.T) {
	w := httptest.NewRecorder()
	rec := &HttpStatusRecorder{ResponseWriter: w, Status: http.StatusOK}

	rec.WriteHeader(http.StatusNotFound)
	rec.WriteHeader(http.StatusInternalServerError)

	if rec.Status != http.StatusNotFound {
		t.Errorf("Status = %d, want 404", rec.Status)
	}
	if w.Code != http.StatusNotFound {
		t.Errorf("underlying code = %d, want 404", w.Code)
	}
}

func TestIncrementIndexWrites(t *testing.T) {
	read := func() float64 {
		m := &dto.Metric{}
		if err := indexWrites.WithLabelValues("inserted").Write(m); err != nil {
			t.Fatalf("read counter: %v", err)
		}
		return m.GetCounter().GetValue()
	}
	before := read()
	IncrementIndexWrites("inserted")
	after := read()
	if after-before != 1 {
		t.Errorf("counter moved by %v, want 1", after-before)
	}
}
