package executor

import (
	"context"
	"encoding/json"
	"strings"

	"github.com/go-resty/resty/v2"
	"github.com/mhyeon/stepsuite/internal/auth"
	"github.com/mhyeon/stepsuite/internal/common"
)

// Pair is a single name/value entry of a header or query record.
type Pair struct {
	Name  string `yaml:"name" mapstructure:"name"`
	Value string `yaml:"value" mapstructure:"value"`
}

// Values is one ordered record of pairs. Records are merged in sequence
// order; using pair slices instead of Go maps keeps the input order that
// the query-string contract depends on.
type Values []Pair

// Request carries everything a single call needs. It replaces the staged
// shared-store slots the executor used to read: callers hand over auth,
// header records, query string and body explicitly, so two in-flight
// requests can no longer corrupt each other.
type Request struct {
	Auth    auth.HeaderSet
	Headers []Values
	// Query is a pre-flattened query string (see BuildQueryString). It is
	// appended to the URL verbatim, without URL-encoding.
	Query string
	// Body is attached on POST only. nil sends an empty body.
	Body any
}

// BuildQueryString flattens header-style records into a single
// "k=v&k=v" string in input order, trimming the trailing separator.
// No URL-encoding is applied; keys and values travel exactly as given.
// Callers relying on pre-encoded values must encode them themselves.
func BuildQueryString(records []Values) string {
	var b strings.Builder
	for _, rec := range records {
		for _, p := range rec {
			b.WriteString(p.Name)
			b.WriteByte('=')
			b.WriteString(p.Value)
			b.WriteByte('&')
		}
	}
	s := b.String()
	return strings.TrimSuffix(s, "&")
}

// MergeHeaders shallow-copies base and applies every record in order,
// later keys overwriting earlier ones. A record key colliding with an
// auth header clobbers it; the merge does not protect the token.
func MergeHeaders(base map[string]string, records []Values) map[string]string {
	merged := make(map[string]string, len(base))
	for k, v := range base {
		merged[k] = v
	}
	for _, rec := range records {
		for _, p := range rec {
			if p.Name == "" {
				continue
			}
			merged[p.Name] = p.Value
		}
	}
	return merged
}

// Executor issues single GET or POST calls through an injected resty
// client. It performs no retry and no status interpretation: the raw
// response, or the transport error, goes back to the caller verbatim.
type Executor struct {
	client *resty.Client
	logger *common.Logger
}

// New creates an executor around the given client.
func New(client *resty.Client) *Executor {
	return &Executor{
		client: client,
		logger: common.GetLogger().WithComponent("executor"),
	}
}

// Get issues a single GET call with the merged headers. req.Body is ignored.
func (e *Executor) Get(ctx context.Context, url string, req Request) (*resty.Response, error) {
	return e.execute(ctx, url, req, false)
}

// Post issues a single POST call with the merged headers and req.Body
// attached. A nil body sends an empty body, not an error.
func (e *Executor) Post(ctx context.Context, url string, req Request) (*resty.Response, error) {
	return e.execute(ctx, url, req, true)
}

func (e *Executor) execute(ctx context.Context, url string, req Request, withBody bool) (*resty.Response, error) {
	headers := MergeHeaders(req.Auth.Headers(), req.Headers)
	if q := strings.TrimSpace(req.Query); q != "" {
		url = url + "?" + q
	}

	r := e.client.R().SetContext(ctx).SetHeaders(headers)
	method := "GET"
	if withBody {
		method = "POST"
		if req.Body != nil {
			setBody(r, req.Body)
		}
	}

	e.logger.WithRequest(method, url).Info("about to call")
	if withBody {
		return r.Post(url)
	}
	return r.Get(url)
}

// setBody attaches the body, marking JSON-shaped strings so resty does not
// re-encode them and plain values so resty marshals them as JSON.
func setBody(r *resty.Request, body any) {
	if s, ok := body.(string); ok {
		if isJSON(s) {
			r.SetHeader("Content-Type", "application/json")
			r.SetBody([]byte(s))
			return
		}
		r.SetBody(s)
		return
	}
	r.SetHeader("Content-Type", "application/json")
	r.SetBody(body)
}

func isJSON(s string) bool {
	t := strings.TrimSpace(s)
	if t == "" {
		return false
	}
	if (strings.HasPrefix(t, "{") && strings.HasSuffix(t, "}")) || (strings.HasPrefix(t, "[") && strings.HasSuffix(t, "]")) {
		var js json.RawMessage
		return json.Unmarshal([]byte(t), &js) == nil
	}
	return false
}
