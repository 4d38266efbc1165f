package entity

import (
	"io"

	"github.com/joseph-ayodele/contracts-extractor/constants"
)

// Source opens the raw bytes of an uploaded or discovered document.
// Each call returns a fresh reader.
type Source interface {
	Open() (io.ReadCloser, error)
}

// Job is one file's extraction task. The concrete type is the lifecycle phase:
// PendingJob, ProcessingJob, CompletedJob or FailedJob. Only the first two carry
// the document Source; terminal jobs hold serializable data only.
type Job interface {
	FileName() string
	Status() constants.JobStatus
	View(index int) JobView
	job()
}

// PendingJob has been accepted and awaits processing.
type PendingJob struct {
	Name   string
	Source Source
}

// ProcessingJob is currently with the extraction service.
type ProcessingJob struct {
	Name   string
	Source Source
}

// CompletedJob finished with a record.
type CompletedJob struct {
	Name string
	Data ContractFields
}

// FailedJob finished with a human-readable error message.
type FailedJob struct {
	Name    string
	Message string
}

func (j PendingJob) FileName() string    { return j.Name }
func (j ProcessingJob) FileName() string { return j.Name }
func (j CompletedJob) FileName() string  { return j.Name }
func (j FailedJob) FileName() string     { return j.Name }

func (PendingJob) Status() constants.JobStatus    { return constants.JobStatusPending }
func (ProcessingJob) Status() constants.JobStatus { return constants.JobStatusProcessing }
func (CompletedJob) Status() constants.JobStatus  { return constants.JobStatusSuccess }
func (FailedJob) Status() constants.JobStatus     { return constants.JobStatusError }

func (PendingJob) job()    {}
func (ProcessingJob) job() {}
func (CompletedJob) job()  {}
func (FailedJob) job()     {}

func (j PendingJob) View(index int) JobView {
	return JobView{Index: index, FileName: j.Name, Status: j.Status()}
}

func (j ProcessingJob) View(index int) JobView {
	return JobView{Index: index, FileName: j.Name, Status: j.Status()}
}

func (j CompletedJob) View(index int) JobView {
	data := j.Data
	return JobView{Index: index, FileName: j.Name, Status: j.Status(), Data: &data}
}

func (j FailedJob) View(index int) JobView {
	return JobView{Index: index, FileName: j.Name, Status: j.Status(), Error: j.Message}
}

// JobView is the read model handed to presentation layers.
type JobView struct {
	Index    int                 `json:"index"`
	FileName string              `json:"fileName"`
	Status   constants.JobStatus `json:"status"`
	Data     *ContractFields     `json:"data,omitempty"`
	Error    string              `json:"error,omitempty"`
}
