package log

import (
	"fmt"
	"io"
	"strings"
	"sync"
)

// EventLogger is the interface for logging match events.
type EventLogger interface {
	Log(event GameEvent)
	Events() []GameEvent
}

// --- MemoryLogger: stores events in memory for test assertions ---

type MemoryLogger struct {
	mu     sync.Mutex
	events []GameEvent
	seq    int
}

func NewMemoryLogger() *MemoryLogger {
	return &MemoryLogger{}
}

func (l *MemoryLogger) Log(event GameEvent) {
	l.record(event)
}

func (l *MemoryLogger) record(event GameEvent) GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.seq++
	event.Seq = l.seq
	l.events = append(l.events, event)
	return event
}

func (l *MemoryLogger) Events() []GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]GameEvent, len(l.events))
	copy(out, l.events)
	return out
}

// EventsOfType returns all events matching the given type.
func (l *MemoryLogger) EventsOfType(t EventType) []GameEvent {
	var result []GameEvent
	for _, e := range l.Events() {
		if e.Type == t {
			result = append(result, e)
		}
	}
	return result
}

// LastEvent returns the most recent event, or a zero event if none.
func (l *MemoryLogger) LastEvent() GameEvent {
	l.mu.Lock()
	defer l.mu.Unlock()
	if len(l.events) == 0 {
		return GameEvent{}
	}
	return l.events[len(l.events)-1]
}

// --- TextLogger: writes human-readable lines to an io.Writer ---

type TextLogger struct {
	MemoryLogger
	w io.Writer
}

func NewTextLogger(w io.Writer) *TextLogger {
	return &TextLogger{w: w}
}

func (l *TextLogger) Log(event GameEvent) {
	e := l.MemoryLogger.record(event)
	fmt.Fprintln(l.w, FormatEvent(e))
}

// --- Formatting ---

// FormatEvent formats a single event as a human-readable line.
func FormatEvent(e GameEvent) string {
	kind := e.Type.String()
	// Pad type to 15 chars for alignment
	for len(kind) < 15 {
		kind += " "
	}
	return fmt.Sprintf("T%-2d %s| %s", e.Turn, kind, e.Details)
}

// FormatAll formats all events as a multi-line string.
func FormatAll(events []GameEvent) string {
	var sb strings.Builder
	for _, e := range events {
		sb.WriteString(FormatEvent(e))
		sb.WriteByte('\n')
	}
	return sb.String()
}

// --- Helper constructors for common events ---

func NewMatchStartEvent(player string, side string, hand []string) GameEvent {
	return GameEvent{
		Turn:    1,
		Player:  player,
		Type:    EventMatchStart,
		Details: fmt.Sprintf("%s joins on the %s side with [%s]", player, side, strings.Join(hand, ", ")),
	}
}

func NewTurnEvent(turn int, player string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventNewTurn,
		Details: fmt.Sprintf("=== Turn %d (%s) ===", turn, player),
	}
}

func NewElixirChangeEvent(turn int, player string, oldElixir, newElixir float64, reason string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventElixirChange,
		Details: fmt.Sprintf("%s elixir: %.1f → %.1f (%s)", player, oldElixir, newElixir, reason),
	}
}

func NewCardPlayedEvent(turn int, player string, cardName string, cost int, where string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCardPlayed,
		Card:    cardName,
		Details: fmt.Sprintf("%s plays %s (%d elixir) at %s", player, cardName, cost, where),
	}
}

func NewCycleEvent(turn int, player string, cardName string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventCycle,
		Card:    cardName,
		Details: fmt.Sprintf("%s cycles %s into hand", player, cardName),
	}
}

func NewTowerDestroyedEvent(turn int, side string, tower string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Type:    EventTowerDestroyed,
		Details: fmt.Sprintf("%s %s tower destroyed", side, tower),
	}
}

func NewHintEvent(turn int, player string, cards []string) GameEvent {
	details := "opponent hints cleared"
	if len(cards) > 0 {
		details = fmt.Sprintf("opponent known to hold %s", strings.Join(cards, ", "))
	}
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventHint,
		Details: details,
	}
}

func NewMovesGeneratedEvent(turn int, player string, count, playable int) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventMovesGenerated,
		Details: fmt.Sprintf("%d candidate moves from %d playable cards", count, playable),
	}
}

func NewRecommendEvent(turn int, player string, cardName string, move string, score float64) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventRecommend,
		Card:    cardName,
		Details: fmt.Sprintf("best: %s (score %.2f)", move, score),
	}
}

func NewAnalyzeEvent(turn int, player string, recommendation string) GameEvent {
	return GameEvent{
		Turn:    turn,
		Player:  player,
		Type:    EventAnalyze,
		Details: fmt.Sprintf("analysis for %s: %s", player, recommendation),
	}
}
