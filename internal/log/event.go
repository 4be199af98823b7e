package log

// EventType enumerates all observable match events.
type EventType int

const (
	EventMatchStart EventType = iota
	EventNewTurn
	EventElixirChange
	EventCardPlayed
	EventCycle // hand slot refilled from the deck
	EventTowerDestroyed
	EventHint
	EventMovesGenerated
	EventRecommend
	EventAnalyze
)

func (e EventType) String() string {
	switch e {
	case EventMatchStart:
		return "MatchStart"
	case EventNewTurn:
		return "NewTurn"
	case EventElixirChange:
		return "ElixirChange"
	case EventCardPlayed:
		return "CardPlayed"
	case EventCycle:
		return "Cycle"
	case EventTowerDestroyed:
		return "TowerDestroyed"
	case EventHint:
		return "Hint"
	case EventMovesGenerated:
		return "MovesGenerated"
	case EventRecommend:
		return "Recommend"
	case EventAnalyze:
		return "Analyze"
	default:
		return "Unknown"
	}
}

// GameEvent represents a single observable event in a match.
type GameEvent struct {
	Seq     int       // monotonic sequence number
	Turn    int       // which turn (1-based)
	Player  string    // acting player name
	Type    EventType // event type
	Card    string    // card name (if applicable)
	Details string    // human-readable detail string
}
