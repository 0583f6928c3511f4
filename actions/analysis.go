package actions

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gobuffalo/buffalo"

	"github.com/silinternational/cover-agri/analysis"
	"github.com/silinternational/cover-agri/api"
	"github.com/silinternational/cover-agri/domain"
	"github.com/silinternational/cover-agri/models"
)

const (
	imageFieldName = "image"
	audioFieldName = "audio"
)

// Analyzer describes accident photos and voice reports and judges their coverage
type Analyzer interface {
	Analyze(ctx context.Context, image, audio *analysis.Upload) (api.AnalysisReport, error)
}

func getAnalyzer(c buffalo.Context) (Analyzer, error) {
	a, ok := c.Value(domain.ContextKeyAnalyzer).(Analyzer)
	if !ok || a == nil {
		return nil, api.NewAppError(errors.New("analyzer not found in context"), api.ErrorAnalysisRequest,
			api.CategoryInternal)
	}
	return a, nil
}

// optionalUpload returns the named multipart file, or nil if the request has none
func optionalUpload(c buffalo.Context, field string) (*analysis.Upload, error) {
	f, err := c.File(field)
	if errors.Is(err, http.ErrMissingFile) {
		return nil, nil
	}
	if err != nil {
		err = fmt.Errorf("error getting uploaded %s file from context ... %w", field, err)
		return nil, api.NewAppError(err, api.ErrorReceivingFile, api.CategoryUser)
	}
	if !f.Valid() {
		return nil, nil
	}

	if f.Size > int64(domain.MaxFileSize) {
		err := fmt.Errorf("file upload size (%v) greater than max (%v)", f.Size, domain.MaxFileSize)
		return nil, api.NewAppError(err, api.ErrorStoreFileTooLarge, api.CategoryUser)
	}

	return &analysis.Upload{FileName: f.Filename, Content: f}, nil
}

// swagger:operation POST /draft/analysis Draft DraftAnalysis
//
// DraftAnalysis
//
// send an accident photo and/or a voice report for analysis; the combined text is appended to the draft
// description
//
// ---
// consumes:
// - multipart/form-data
// parameters:
// - name: image
//   in: formData
//   type: file
//   required: false
//   description: accident photo
// - name: audio
//   in: formData
//   type: file
//   required: false
//   description: spoken accident report
// responses:
//   '200':
//     description: the analysis, including the updated draft
//     schema:
//       "$ref": "#/definitions/AnalysisReport"
//   '502':
//     description: the analysis service failed
func draftAnalysis(c buffalo.Context) error {
	store, err := getClaimStore(c)
	if err != nil {
		return reportError(c, err)
	}
	analyzer, err := getAnalyzer(c)
	if err != nil {
		return reportError(c, err)
	}

	if _, ok := store.DraftClaim(); !ok {
		return reportError(c, draftMutationError(store))
	}

	image, err := optionalUpload(c, imageFieldName)
	if err != nil {
		return reportError(c, err)
	}
	audio, err := optionalUpload(c, audioFieldName)
	if err != nil {
		return reportError(c, err)
	}
	if image == nil && audio == nil {
		err := errors.New("an image or an audio file is required")
		return reportError(c, api.NewAppError(err, api.ErrorReceivingFile, api.CategoryUser))
	}

	report, err := analyzer.Analyze(c, image, audio)
	if err != nil {
		return reportError(c, api.NewAppError(err, api.ErrorAnalysisRequest, api.CategoryRemote))
	}

	if strings.TrimSpace(report.CombinedDescription) != "" &&
		!store.AppendToDraftDescription(c, report.CombinedDescription) {
		return reportError(c, draftMutationError(store))
	}

	if draft, ok := store.DraftClaim(); ok {
		converted := models.ConvertClaim(draft, time.Now())
		report.Claim = &converted
	}
	return renderOk(c, report)
}
