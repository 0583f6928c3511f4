// Package analysis is the client of the AI service that describes accident photos, transcribes voice reports
// and judges which damages the policy covers.
package analysis

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"
	"time"

	pkgerrors "github.com/pkg/errors"

	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/log"
)

const (
	pathProcessImage            = "/process_image"
	pathAnalyzeReport           = "/analyze_report"
	pathAnalyzeVehicleCondition = "/analyze_vehicle_condition"

	NoImageAnalysis = "The image could not be analyzed."
	NoTranscription = "The audio could not be transcribed."
)

// Upload is a file to send to the AI service
type Upload struct {
	FileName string
	Content  io.Reader
}

type Client struct {
	baseURL string
	client  *http.Client
}

func NewClient(baseURL string, timeout time.Duration) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: timeout},
	}
}

// NewClientFromEnv uses the analysis URL and timeout of the environment
func NewClientFromEnv() *Client {
	return NewClient(domain.Env.AnalysisURL, time.Duration(domain.Env.AnalysisTimeoutSeconds)*time.Second)
}

// ProcessImage returns the service's description of an accident photo
func (c *Client) ProcessImage(ctx context.Context, image Upload) (string, error) {
	raw, err := c.postFile(ctx, pathProcessImage, image)
	if err != nil {
		return "", err
	}
	var resp struct {
		ImageAnalysis string `json:"image_analysis"`
	}
	decodeLoosely(pathProcessImage, raw, &resp)
	return strings.TrimSpace(resp.ImageAnalysis), nil
}

// AnalyzeReport returns the transcription of a spoken accident report
func (c *Client) AnalyzeReport(ctx context.Context, audio Upload) (string, error) {
	raw, err := c.postFile(ctx, pathAnalyzeReport, audio)
	if err != nil {
		return "", err
	}
	var resp struct {
		Message string `json:"message"`
	}
	decodeLoosely(pathAnalyzeReport, raw, &resp)
	return strings.TrimSpace(resp.Message), nil
}

// AnalyzeVehicleCondition asks which of the described damages are covered. A malformed answer, JSON or not, yields
// an empty list.
func (c *Client) AnalyzeVehicleCondition(ctx context.Context, description string) ([]api.CoverageItem, error) {
	body, err := json.Marshal(map[string]string{"description": description})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+pathAnalyzeVehicleCondition,
		bytes.NewReader(body))
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create analysis request")
	}
	req.Header.Set("Content-Type", "application/json")

	raw, err := c.do(req)
	if err != nil {
		return nil, err
	}
	return ParseCoverageAnalysis(raw), nil
}

// Analyze runs whichever of image and audio analysis have an upload, then the coverage analysis of the
// combined text. At least one upload is required.
func (c *Client) Analyze(ctx context.Context, image, audio *Upload) (api.AnalysisReport, error) {
	var report api.AnalysisReport
	if image == nil && audio == nil {
		return report, errors.New("a photo or an audio report is required")
	}

	var parts []string
	if image != nil {
		text, err := c.ProcessImage(ctx, *image)
		if err != nil {
			return report, err
		}
		if text == "" {
			text = NoImageAnalysis
		}
		report.ImageAnalysis = text
		parts = append(parts, text)
	}
	if audio != nil {
		text, err := c.AnalyzeReport(ctx, *audio)
		if err != nil {
			return report, err
		}
		if text == "" {
			text = NoTranscription
		}
		report.Transcription = text
		parts = append(parts, text)
	}
	report.CombinedDescription = strings.Join(parts, "\n\n")

	coverage, err := c.AnalyzeVehicleCondition(ctx, report.CombinedDescription)
	if err != nil {
		return report, err
	}
	report.Coverage = coverage
	report.Covered, report.NotCovered = SplitCoverage(coverage)
	return report, nil
}

func (c *Client) postFile(ctx context.Context, path string, upload Upload) ([]byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", upload.FileName)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create multipart file")
	}
	if _, err := io.Copy(part, upload.Content); err != nil {
		return nil, pkgerrors.Wrapf(err, "copy %s", upload.FileName)
	}
	if err := w.Close(); err != nil {
		return nil, pkgerrors.Wrap(err, "close multipart body")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, &buf)
	if err != nil {
		return nil, pkgerrors.Wrap(err, "create analysis request")
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	return c.do(req)
}

// do sends the request and returns the raw body of a 2xx response. The body is not interpreted here.
func (c *Client) do(req *http.Request) ([]byte, error) {
	resp, err := c.client.Do(req)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "analysis %s", req.URL.Path)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		msg, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("analysis %s returned %d: %s", req.URL.Path, resp.StatusCode,
			strings.TrimSpace(string(msg)))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, pkgerrors.Wrapf(err, "read analysis %s response", req.URL.Path)
	}
	return body, nil
}

// decodeLoosely fills v from a JSON body. An unreadable body is logged and leaves v empty.
func decodeLoosely(path string, raw []byte, v any) {
	if err := json.Unmarshal(raw, v); err != nil {
		log.WithFields(log.Fields{"path": path, "response": truncate(string(raw), 200)}).
			Warningf("%s: unreadable analysis response, %s", api.ErrorCollaboratorData, err)
	}
}

// coverageItem accepts the loose shapes the service produces for is_covered
type coverageItem struct {
	Item        string          `json:"item"`
	IsCovered   json.RawMessage `json:"is_covered"`
	Explanation string          `json:"explanation"`
}

// ParseCoverageAnalysis extracts coverage items from the vehicle condition response. The list may be nested under
// one or two "coverage_analysis" keys and may arrive as a JSON encoded string. Anything unreadable gives an empty
// list.
func ParseCoverageAnalysis(raw json.RawMessage) []api.CoverageItem {
	items, ok := findCoverageList(raw, 0)
	if !ok {
		log.WithFields(log.Fields{"response": truncate(string(raw), 200)}).
			Warningf("%s: unreadable coverage analysis", api.ErrorCollaboratorData)
		return []api.CoverageItem{}
	}

	list := make([]api.CoverageItem, 0, len(items))
	for _, it := range items {
		if strings.TrimSpace(it.Item) == "" {
			continue
		}
		list = append(list, api.CoverageItem{
			Item:        it.Item,
			IsCovered:   parseLooseBool(it.IsCovered),
			Explanation: it.Explanation,
		})
	}
	return list
}

func findCoverageList(raw json.RawMessage, depth int) ([]coverageItem, bool) {
	if depth > 3 || len(raw) == 0 {
		return nil, false
	}

	var items []coverageItem
	if err := json.Unmarshal(raw, &items); err == nil {
		return items, true
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return findCoverageList(json.RawMessage(s), depth+1)
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err == nil {
		if inner, ok := obj["coverage_analysis"]; ok {
			return findCoverageList(inner, depth+1)
		}
	}
	return nil, false
}

func parseLooseBool(raw json.RawMessage) bool {
	var b bool
	if err := json.Unmarshal(raw, &b); err == nil {
		return b
	}
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		switch strings.ToLower(strings.TrimSpace(s)) {
		case "true", "yes", "si", "sí", "covered":
			return true
		}
	}
	return false
}

// SplitCoverage separates covered items from the rest, keeping their order
func SplitCoverage(items []api.CoverageItem) (covered, notCovered []api.CoverageItem) {
	covered = []api.CoverageItem{}
	notCovered = []api.CoverageItem{}
	for _, it := range items {
		if it.IsCovered {
			covered = append(covered, it)
		} else {
			notCovered = append(notCovered, it)
		}
	}
	return covered, notCovered
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}
