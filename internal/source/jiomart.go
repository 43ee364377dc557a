package source

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/donaldgifford/pricewatch/internal/metrics"
	domain "github.com/donaldgifford/pricewatch/pkg/types"
)

const (
	defaultTimeout   = 30 * time.Second
	defaultUserAgent = "pricewatch/1.0"

	availableStatus = "A"
	failureStatus   = "failure"
)

// Cookie names the catalog uses to select a delivery region.
const (
	CookieCity        = "nms_mgo_city"
	CookieStateCode   = "nms_mgo_state_code"
	CookiePincode     = "nms_mgo_pincode"
	CookieNewCustomer = "new_customer"
)

// Client talks to the JioMart catalog endpoints. It implements both
// PriceSource and RegionResolver.
type Client struct {
	http     *resty.Client
	baseURL  string
	pinURL   string
	priceURL string
	timeout  time.Duration
	limiter  *RateLimiter
	log      *slog.Logger
	nowFunc  func() time.Time
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithTimeout sets the hard deadline applied to each call. Default 30s.
func WithTimeout(d time.Duration) ClientOption {
	return func(c *Client) {
		c.timeout = d
	}
}

// WithRetries enables up to n retries of transient failures with
// exponential backoff starting at wait. The default is no retries.
func WithRetries(n int, wait time.Duration) ClientOption {
	return func(c *Client) {
		c.http.SetRetryCount(n).
			SetRetryWaitTime(wait).
			SetRetryMaxWaitTime(8 * wait)
	}
}

// WithRateLimiter paces every outbound request, retries included.
func WithRateLimiter(rl *RateLimiter) ClientOption {
	return func(c *Client) {
		c.limiter = rl
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) ClientOption {
	return func(c *Client) {
		c.http.SetHeader("User-Agent", ua)
	}
}

// WithEndpoints overrides the region and product endpoint prefixes. The
// item id or pincode is appended to each.
func WithEndpoints(pinURL, priceURL string) ClientOption {
	return func(c *Client) {
		c.pinURL = pinURL
		c.priceURL = priceURL
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) ClientOption {
	return func(c *Client) {
		c.log = l
	}
}

// NewClient creates a catalog client rooted at baseURL.
func NewClient(baseURL string, opts ...ClientOption) *Client {
	baseURL = strings.TrimRight(baseURL, "/")
	c := &Client{
		http: resty.New().SetHeaders(map[string]string{
			"User-Agent": defaultUserAgent,
			"Accept":     "application/json",
		}),
		baseURL:  baseURL,
		pinURL:   baseURL + "/mst/rest/v1/5/pin/",
		priceURL: baseURL + "/catalog/productdetails/get/",
		timeout:  defaultTimeout,
		log:      slog.Default(),
		nowFunc:  time.Now,
	}
	for _, opt := range opts {
		opt(c)
	}

	c.http.AddRetryCondition(isRetryable)
	if c.limiter != nil {
		c.http.OnBeforeRequest(func(_ *resty.Client, r *resty.Request) error {
			return c.limiter.Wait(r.Context())
		})
	}

	return c
}

// isRetryable limits retries to transport errors, throttling and 5xx.
func isRetryable(r *resty.Response, err error) bool {
	if err != nil {
		return !errors.Is(err, context.Canceled)
	}
	code := r.StatusCode()
	return code == http.StatusTooManyRequests || code >= http.StatusInternalServerError
}

type pinResponse struct {
	Result *struct {
		City      string `json:"city"`
		StateCode string `json:"state_code"`
	} `json:"result"`
}

// Resolve looks up the city and state for a pincode and builds the
// region-selecting cookies.
func (c *Client) Resolve(ctx context.Context, region string) (domain.RegionContext, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fail := func(kind, err error) (domain.RegionContext, error) {
		return domain.RegionContext{}, &FetchError{Op: "resolve", Region: region, Kind: kind, Err: err}
	}

	resp, err := c.get(ctx, "resolve", c.pinURL+region, map[string]string{
		"Origin":  c.baseURL,
		"Referer": c.baseURL + "/",
	})
	if err != nil {
		return fail(ErrTransient, err)
	}
	if kind := classifyStatus(resp.StatusCode()); kind != nil {
		return fail(kind, fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	var body pinResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return fail(ErrMalformed, err)
	}
	if body.Result == nil {
		return fail(ErrUnavailable, errors.New("pincode not serviceable"))
	}

	return domain.RegionContext{
		Region:    region,
		City:      body.Result.City,
		StateCode: body.Result.StateCode,
		Cookies: map[string]string{
			CookieCity:        body.Result.City,
			CookieStateCode:   body.Result.StateCode,
			CookiePincode:     region,
			CookieNewCustomer: "false",
		},
	}, nil
}

type productResponse struct {
	Status string       `json:"status"`
	Data   *productData `json:"data"`
}

type productData struct {
	ImageURL           string   `json:"image_url"`
	MRP                *float64 `json:"mrp"`
	SellingPrice       *float64 `json:"selling_price"`
	DiscountPct        float64  `json:"discount_pct"`
	Discount           float64  `json:"discount"`
	MaxQtyInOrder      int      `json:"max_qty_in_order"`
	AvailabilityStatus string   `json:"availability_status"`
	GTMDetails         *struct {
		Name     string `json:"name"`
		Brand    string `json:"brand"`
		Category string `json:"category"`
	} `json:"gtm_details"`
}

// Fetch returns the current snapshot of one item in the context's region.
func (c *Client) Fetch(
	ctx context.Context,
	req FetchRequest,
	rc domain.RegionContext,
) (*domain.Snapshot, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	fail := func(kind, err error) (*domain.Snapshot, error) {
		return nil, &FetchError{
			Op:     "fetch",
			ItemID: req.Key.ItemID,
			Region: req.Key.Region,
			Kind:   kind,
			Err:    err,
		}
	}

	resp, err := c.get(ctx, "fetch", c.priceURL+req.Key.ItemID, map[string]string{
		"Pin":              req.Key.Region,
		"Referer":          req.SourceURL,
		"Cookie":           cookieHeader(rc.Cookies),
		"X-Requested-With": "XMLHttpRequest",
	})
	if err != nil {
		return fail(ErrTransient, err)
	}
	if kind := classifyStatus(resp.StatusCode()); kind != nil {
		return fail(kind, fmt.Errorf("unexpected status %d", resp.StatusCode()))
	}

	var body productResponse
	if err := json.Unmarshal(resp.Body(), &body); err != nil {
		return fail(ErrMalformed, err)
	}
	if body.Status == failureStatus {
		return fail(ErrUnavailable, errors.New("source reported failure"))
	}
	d := body.Data
	if d == nil {
		return fail(ErrUnavailable, errors.New("response has no data"))
	}
	if d.GTMDetails == nil || d.SellingPrice == nil {
		return fail(ErrMalformed, errors.New("missing product details or selling price"))
	}

	mrp := *d.SellingPrice
	if d.MRP != nil {
		mrp = *d.MRP
	}

	now := c.nowFunc().UTC()
	snap := &domain.Snapshot{
		Item: domain.Item{
			ItemID:           req.Key.ItemID,
			Region:           req.Key.Region,
			Name:             d.GTMDetails.Name,
			Brand:            d.GTMDetails.Brand,
			Category:         d.GTMDetails.Category,
			SourceURL:        req.SourceURL,
			MRPPrice:         mrp,
			SellingPrice:     *d.SellingPrice,
			DiscountPercent:  d.DiscountPct,
			DiscountPrice:    d.Discount,
			MaxOrderQuantity: d.MaxQtyInOrder,
			IsAvailable:      d.AvailabilityStatus == availableStatus,
			UpdatedAt:        now,
		},
		FetchedAt: now,
	}
	if d.ImageURL != "" {
		snap.ImageURL = c.baseURL + d.ImageURL
	}

	return snap, nil
}

func (c *Client) get(
	ctx context.Context,
	op string,
	url string,
	headers map[string]string,
) (*resty.Response, error) {
	start := time.Now()
	metrics.SourceRequestsTotal.WithLabelValues(op).Inc()

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeaders(headers).
		Get(url)

	metrics.SourceRequestDuration.WithLabelValues(op).Observe(time.Since(start).Seconds())
	if err != nil {
		c.log.Debug("source request failed", "op", op, "url", url, "error", err)
		return nil, err
	}
	return resp, nil
}

// classifyStatus maps an HTTP status to a failure kind, or nil for 2xx.
func classifyStatus(code int) error {
	switch {
	case code >= 200 && code < 300:
		return nil
	case code == http.StatusNotFound || code == http.StatusGone:
		return ErrUnavailable
	case code == http.StatusRequestTimeout || code == http.StatusTooManyRequests || code >= 500:
		return ErrTransient
	default:
		return ErrMalformed
	}
}

func cookieHeader(cookies map[string]string) string {
	// Stable order keeps requests reproducible in tests and logs.
	keys := []string{CookieCity, CookieStateCode, CookiePincode, CookieNewCustomer}
	parts := make([]string, 0, len(cookies))
	for _, k := range keys {
		if v, ok := cookies[k]; ok {
			parts = append(parts, k+"="+v)
		}
	}
	for k, v := range cookies {
		switch k {
		case CookieCity, CookieStateCode, CookiePincode, CookieNewCustomer:
			continue
		}
		parts = append(parts, k+"="+v)
	}
	return strings.Join(parts, "; ")
}
