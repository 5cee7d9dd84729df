package ui

import (
	"streampick/internal/pipeline"
	"streampick/internal/progress"
)

type sessionReadyMsg struct {
	Session *pipeline.Session
	Err     error
}

type progressMsg struct {
	U progress.Update
}

type resolveDoneMsg struct {
	R progress.Result
}
