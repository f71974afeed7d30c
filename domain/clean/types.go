package clean

// Issue classifies the data problem a suggestion addresses
type Issue string

const (
	IssueMissing   Issue = "missing"
	IssueOutlier   Issue = "outlier"
	IssueDuplicate Issue = "duplicate"
	// IssueInconsistent is part of the taxonomy for forward extension;
	// no generator rule currently produces it.
	IssueInconsistent Issue = "inconsistent"
)

// MultipleColumns marks suggestions that target the whole dataset
// rather than a single column, such as duplicate row removal.
const MultipleColumns = "Multiple"

// Suggestion is a proposed cleaning action tied to a detected issue.
// Suggestions are value objects: which ones to apply is the caller's
// choice and is never stored on the suggestion itself.
type Suggestion struct {
	Column         string `json:"column"`
	Issue          Issue  `json:"issue"`
	Description    string `json:"description"`
	Recommendation string `json:"recommendation"`
	AutoFix        bool   `json:"auto_fix"`
}

// DatasetWide reports whether the suggestion targets the whole dataset
func (s Suggestion) DatasetWide() bool {
	return s.Column == MultipleColumns
}
