package job

import (
	"time"

	"github.com/avdeyev/vidpull/internal/media"
)

// Status is the lifecycle state of a download job.
type Status string

const (
	StatusPending  Status = "pending"
	StatusRunning  Status = "running"
	StatusDone     Status = "done"
	StatusFailed   Status = "failed"
	StatusCanceled Status = "canceled"
)

// Finished reports whether the job reached a terminal state.
func (s Status) Finished() bool {
	return s == StatusDone || s == StatusFailed || s == StatusCanceled
}

// Progress is the last parsed progress snapshot of a running job.
type Progress struct {
	Percent   float64 `json:"percent"`
	TotalSize string  `json:"totalSize,omitempty"`
	Speed     string  `json:"speed,omitempty"`
	ETA       string  `json:"eta,omitempty"`
}

// Job is one server-side download. Values handed out by the manager are
// snapshots; only the manager mutates the live record.
type Job struct {
	ID        string               `json:"id"`
	URL       string               `json:"url"`
	Title     string               `json:"title"`
	Kind      media.OutputKind     `json:"-"`
	Option    media.DownloadOption `json:"-"`
	Label     string               `json:"label"`
	Status    Status               `json:"status"`
	Progress  Progress             `json:"progress"`
	Error     string               `json:"error,omitempty"`
	FilePath  string               `json:"-"`
	FileName  string               `json:"fileName,omitempty"`
	FileSize  int64                `json:"fileSize,omitempty"`
	CreatedAt time.Time            `json:"createdAt"`
}
