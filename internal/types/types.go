package types

import "time"

// PostResult is the acknowledgement returned by a publisher.
type PostResult struct {
	ID     string `json:"id"`
	Text   string `json:"text"`
	DryRun bool   `json:"dry_run,omitempty"`
}

// Stage is a step of a run. Runs move forward through the stages in order.
type Stage int

const (
	StageComputeProgress Stage = iota
	StageRenderBar
	StageGenerateSentence
	StageComposeMessage
	StagePublish
	StageDone
	StageFailed
)

func (s Stage) String() string {
	switch s {
	case StageComputeProgress:
		return "compute_progress"
	case StageRenderBar:
		return "render_bar"
	case StageGenerateSentence:
		return "generate_sentence"
	case StageComposeMessage:
		return "compose_message"
	case StagePublish:
		return "publish"
	case StageDone:
		return "done"
	case StageFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// RunResult collects everything a run produced, including partial output of failed runs.
type RunResult struct {
	Date             time.Time    `json:"date"`
	Progress         YearProgress `json:"progress"`
	Bar              string       `json:"bar"`
	Sentence         string       `json:"sentence"`
	SentenceFallback bool         `json:"sentence_fallback"`
	Message          string       `json:"message"`
	Post             PostResult   `json:"post"`
	Stage            Stage        `json:"stage"`
}
