package game

// EventKind tags entries in the generation's event log.
type EventKind string

const (
	EventPlayerJoined      EventKind = "player_joined"
	EventBuildingCompleted EventKind = "building_completed"
	EventCombat            EventKind = "combat"
	EventTerritoryClaimed  EventKind = "territory_claimed"
	EventCaptainDied       EventKind = "captain_died"
	EventPlayerEliminated  EventKind = "player_eliminated"
	EventForsakenSpawned   EventKind = "forsaken_spawned"
	EventStarvation        EventKind = "starvation"
)

// Event is one entry in the append-only event log. Player is NoOwner and
// Territory is -1 where the event has no protagonist or no location.
type Event struct {
	Day       int
	Kind      EventKind
	Player    int
	Territory int
	Detail    string
}
