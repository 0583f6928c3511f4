package api

// CoverageItem is one line of the coverage analysis returned by the AI service
type CoverageItem struct {
	Item        string `json:"item"`
	IsCovered   bool   `json:"is_covered"`
	Explanation string `json:"explanation"`
}

// AnalysisReport combines the results of image analysis, audio transcription and coverage analysis
//
// swagger:model
type AnalysisReport struct {
	ImageAnalysis string `json:"image_analysis,omitempty"`
	Transcription string `json:"transcription,omitempty"`

	// image analysis and transcription joined by a blank line
	CombinedDescription string `json:"combined_description"`

	Coverage   []CoverageItem `json:"coverage"`
	Covered    []CoverageItem `json:"covered"`
	NotCovered []CoverageItem `json:"not_covered"`

	Claim *Claim `json:"claim,omitempty"`
}
