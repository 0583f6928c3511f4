package intake

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/pkg/errors"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/models"
)

// HTTPService talks to a claims desk that serves the /intake/claims endpoints
type HTTPService struct {
	baseURL string
	client  *http.Client
}

func NewHTTPService(baseURL string, timeout time.Duration) *HTTPService {
	return &HTTPService{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

func (h *HTTPService) SubmitClaim(ctx context.Context, claim models.Claim) (string, error) {
	body, err := json.Marshal(NewIntakeClaimInput(claim))
	if err != nil {
		return "", errors.Wrap(err, "encode intake claim")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, h.baseURL+"/intake/claims", bytes.NewReader(body))
	if err != nil {
		return "", errors.Wrap(err, "create intake request")
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Accept", "application/json")

	var received api.IntakeClaim
	if err := h.do(req, &received); err != nil {
		return "", err
	}
	return received.Reference, nil
}

func (h *HTTPService) ClaimStatus(ctx context.Context, reference string) (api.ClaimStatus, error) {
	u := h.baseURL + "/intake/claims/" + url.PathEscape(reference)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return "", errors.Wrap(err, "create intake request")
	}
	req.Header.Set("Accept", "application/json")

	var c api.IntakeClaim
	if err := h.do(req, &c); err != nil {
		return "", err
	}
	return c.Status, nil
}

func (h *HTTPService) do(req *http.Request, v any) error {
	resp, err := h.client.Do(req)
	if err != nil {
		return errors.Wrapf(err, "intake %s %s", req.Method, req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrClaimNotFound
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("intake %s %s returned %d: %s", req.Method, req.URL.Path, resp.StatusCode,
			strings.TrimSpace(string(msg)))
	}

	if err := json.NewDecoder(resp.Body).Decode(v); err != nil {
		return errors.Wrap(err, "decode intake response")
	}
	return nil
}
