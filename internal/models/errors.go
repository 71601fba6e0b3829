package models

import "fmt"

// Stage identifies the pipeline step a run failed in
type Stage int

const (
	StageConfig Stage = iota
	StageConnect
	StageLogin
	StageSelect
	StageStatus
	StageSearch
	StageFetch
	StageRestore
)

var stageNames = map[Stage]string{
	StageConfig:  "config",
	StageConnect: "connect",
	StageLogin:   "login",
	StageSelect:  "select",
	StageStatus:  "status",
	StageSearch:  "search",
	StageFetch:   "fetch",
	StageRestore: "restore",
}

func (s Stage) String() string {
	if name, ok := stageNames[s]; ok {
		return name
	}
	return fmt.Sprintf("stage(%d)", int(s))
}

// RunError is the single fatal failure of a run. Error() is the sentence printed after ERR.
type RunError struct {
	Stage   Stage
	Message string
	Err     error
}

func (e *RunError) Error() string {
	if e.Err == nil {
		return e.Message + "."
	}
	return fmt.Sprintf("%s: %v.", e.Message, e.Err)
}

func (e *RunError) Unwrap() error {
	return e.Err
}

// Fail builds a RunError for the given stage
func Fail(stage Stage, message string, err error) *RunError {
	return &RunError{Stage: stage, Message: message, Err: err}
}
