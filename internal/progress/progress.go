package progress

// Stage identifies a high-level step in a resolution flow.
type Stage string

const (
	StageFetching   Stage = "fetching"
	StageRanking    Stage = "ranking"
	StageValidating Stage = "validating"
	StageReady      Stage = "ready"
	StageError      Stage = "error"
)

// Update conveys stage changes for a session. Stages are explicit events;
// consumers must never infer the current phase from message text.
type Update struct {
	SessionID string
	Stage     Stage
	Formats   int    // formats involved in the stage; 0 when not applicable
	Message   string // short human-friendly status line
}

// Result is emitted once per session when resolution completes or fails.
type Result struct {
	SessionID  string
	Candidates int   // ranked selectable candidates on success
	Err        error // nil on success
}

// Reporter is implemented by UI or any observer interested in progress events.
type Reporter interface {
	Update(u Update)
	Result(r Result)
}
