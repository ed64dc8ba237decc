package notifier

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	sonic "github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/valyala/bytebufferpool"
	"github.com/valyala/fasthttp"

	"github.com/pedalnorte/championship-api/internal/domain/registration"
	"github.com/pedalnorte/championship-api/internal/domain/rut"
	"github.com/pedalnorte/championship-api/internal/platform/logging"
	"github.com/pedalnorte/championship-api/internal/platform/resilience"
)

var errWebhookTransient = crerr.New("webhook transient failure")

type WebhookNotifierConfig struct {
	URL            string
	Token          string
	Timeout        time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// WebhookNotifier posts new registration requests to an operator-facing
// webhook, typically a chat integration watched by the reviewers.
type WebhookNotifier struct {
	client         *fasthttp.Client
	url            string
	token          string
	timeout        time.Duration
	logger         *logging.Logger
	breaker        *resilience.CircuitBreaker
	circuitEnabled bool
}

func NewWebhookNotifier(cfg WebhookNotifierConfig, logger *logging.Logger) *WebhookNotifier {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logging.Default()
	}
	breakerCfg := resilience.NormalizeCircuitBreakerConfig(cfg.CircuitBreaker)

	return &WebhookNotifier{
		client: &fasthttp.Client{
			ReadTimeout:  timeout,
			WriteTimeout: timeout,
		},
		url:            strings.TrimSpace(cfg.URL),
		token:          strings.TrimSpace(cfg.Token),
		timeout:        timeout,
		logger:         logger,
		breaker:        resilience.NewCircuitBreaker(breakerCfg.FailureThreshold, breakerCfg.OpenTimeout, breakerCfg.HalfOpenMaxReq),
		circuitEnabled: breakerCfg.Enabled,
	}
}

type registrationPayload struct {
	RequestID  string `json:"requestId"`
	NationalID string `json:"nationalId"`
	FullName   string `json:"fullName"`
	Category   string `json:"category"`
	Club       string `json:"club,omitempty"`
	City       string `json:"city,omitempty"`
	Email      string `json:"email"`
	CreatedAt  string `json:"createdAt"`
}

func (n *WebhookNotifier) NotifyNewRegistration(ctx context.Context, item registration.Request) error {
	if n.url == "" {
		return nil
	}
	if n.circuitEnabled {
		if err := n.breaker.Allow(); err != nil {
			n.logger.WarnContext(ctx, "webhook circuit breaker rejected request", "state", n.breaker.State())
			return fmt.Errorf("webhook is temporarily unavailable: %w", err)
		}
	}

	body, err := sonic.Marshal(registrationPayload{
		RequestID:  item.ID,
		NationalID: rut.Format(item.NationalID),
		FullName:   item.FullName,
		Category:   item.Category,
		Club:       item.Club,
		City:       item.City,
		Email:      item.Email,
		CreatedAt:  item.CreatedAt.Format(time.RFC3339),
	})
	if err != nil {
		return crerr.Wrap(err, "marshal registration payload")
	}

	preview := buildCurlPreview(n.url, string(body), n.token != "")
	n.logger.DebugContext(ctx, "webhook notification request", "request_id", item.ID, "curl_preview", preview)

	req := fasthttp.AcquireRequest()
	resp := fasthttp.AcquireResponse()
	defer fasthttp.ReleaseRequest(req)
	defer fasthttp.ReleaseResponse(resp)

	req.SetRequestURI(n.url)
	req.Header.SetMethod(fasthttp.MethodPost)
	req.Header.SetContentType("application/json")
	if n.token != "" {
		req.Header.Set("Authorization", "Bearer "+n.token)
	}
	req.SetBody(body)

	if err := n.client.DoTimeout(req, resp, n.timeout); err != nil {
		callErr := fmt.Errorf("%w: post registration webhook url=%s: %v", errWebhookTransient, n.url, err)
		n.recordCircuitResult(callErr)
		return callErr
	}

	status := resp.StatusCode()
	if status/100 != 2 {
		raw := truncateForLog(string(resp.Body()), 2048)
		if isRetryableStatus(status) {
			callErr := fmt.Errorf("%w: post registration webhook status=%d url=%s body=%s", errWebhookTransient, status, n.url, raw)
			n.recordCircuitResult(callErr)
			return callErr
		}
		callErr := fmt.Errorf("post registration webhook status=%d url=%s body=%s", status, n.url, raw)
		n.recordCircuitResult(callErr)
		return callErr
	}

	n.recordCircuitResult(nil)
	return nil
}

func (n *WebhookNotifier) recordCircuitResult(err error) {
	if !n.circuitEnabled || n.breaker == nil {
		return
	}
	if err == nil {
		n.breaker.RecordSuccess()
		return
	}
	if stderrors.Is(err, errWebhookTransient) {
		n.breaker.RecordFailure()
		return
	}
	n.breaker.RecordSuccess()
}

func isRetryableStatus(statusCode int) bool {
	return statusCode == http.StatusRequestTimeout ||
		statusCode == http.StatusTooManyRequests ||
		statusCode >= http.StatusInternalServerError
}

func buildCurlPreview(url, body string, withToken bool) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	appendPart := func(part string) {
		if buf.Len() > 0 {
			_ = buf.WriteByte(' ')
		}
		_, _ = buf.WriteString(part)
	}

	appendPart("curl")
	appendPart("-X")
	appendPart("POST")
	appendPart(shellQuote(url))
	if withToken {
		appendPart("-H")
		appendPart(shellQuote("Authorization: Bearer ***"))
	}
	appendPart("-H")
	appendPart(shellQuote("Content-Type: application/json"))
	appendPart("-d")
	appendPart(shellQuote(truncateForLog(body, 4096)))

	return buf.String()
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", "'\"'\"'") + "'"
}

func truncateForLog(value string, max int) string {
	if max <= 0 || len(value) <= max {
		return value
	}
	return value[:max] + "...(truncated)"
}
