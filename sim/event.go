package sim

// EventType discriminates progress events.
type EventType string

const (
	EventPhase    EventType = "phase"
	EventResult   EventType = "result"
	EventComplete EventType = "complete"
	EventError    EventType = "error"
	EventInfo     EventType = "info"
)

// Event is one progress notification from a ranking run. Exactly the field
// matching Type is set.
type Event struct {
	Type    EventType     `json:"type"`
	Phase   string        `json:"phase,omitempty"`
	Result  *SkillResult  `json:"result,omitempty"`
	Results []SkillResult `json:"results,omitempty"`
	Error   string        `json:"error,omitempty"`
	Info    string        `json:"info,omitempty"`
}

// EventSink receives events. The Scheduler never calls it concurrently.
type EventSink func(Event)

// discardEvents is used when the caller passes a nil sink.
func discardEvents(Event) {}

func phaseEvent(name string) Event {
	return Event{Type: EventPhase, Phase: name}
}

func resultEvent(r SkillResult) Event {
	return Event{Type: EventResult, Result: &r}
}

func completeEvent(results []SkillResult) Event {
	return Event{Type: EventComplete, Results: results}
}

func errorEvent(err error) Event {
	return Event{Type: EventError, Error: err.Error()}
}

func infoEvent(info string) Event {
	return Event{Type: EventInfo, Info: info}
}
