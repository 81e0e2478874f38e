package mockapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/tidwall/gjson"
)

func TestSampleEndpoint_EchoesItems(t *testing.T) {
	srv := httptest.NewServer(New("api"))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/sample", "application/json",
		strings.NewReader(`{"items":[{"id":1},{"id":2}]}`))
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}

	buf := make([]byte, 1024)
	n, _ := resp.Body.Read(buf)
	body := buf[:n]
	if got := gjson.GetBytes(body, "resultData.#").Int(); got != 2 {
		t.Fatalf("expected 2 echoed items, got %d (%s)", got, body)
	}
}

func TestSampleEndpoint_EmptyBodyYieldsEmptyEnvelope(t *testing.T) {
	srv := httptest.NewServer(New("api"))
	defer srv.Close()

	resp, err := http.Post(srv.URL+"/api/sample", "application/json", nil)
	if err != nil {
		t.Fatalf("post failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()

	buf := make([]byte, 256)
	n, _ := resp.Body.Read(buf)
	body := buf[:n]
	res := gjson.GetBytes(body, "resultData")
	if !res.Exists() || len(res.Array()) != 0 {
		t.Fatalf("expected empty resultData, got %s", body)
	}
}

func TestHealthz(t *testing.T) {
	srv := httptest.NewServer(New("api"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/healthz")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	_ = resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("unexpected status: %d", resp.StatusCode)
	}
}

func TestSamplePage_ServesHTML(t *testing.T) {
	srv := httptest.NewServer(New("api"))
	defer srv.Close()

	resp, err := http.Get(srv.URL + "/api/page")
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	defer func() { _ = resp.Body.Close() }()
	if ct := resp.Header.Get("Content-Type"); !strings.HasPrefix(ct, "text/html") {
		t.Fatalf("unexpected content type: %q", ct)
	}
}
