package unit

// EventKind names a change the core announces to presentation listeners.
type EventKind uint8

const (
	EventTargetChanged EventKind = iota + 1
	EventFactionChanged
	EventAuraApplied
	EventAuraUnapplied
	EventAuraRefreshed
	EventDeathStateChanged
	EventSpellDamageDone
)

var eventKindNames = map[EventKind]string{
	EventTargetChanged:     "target_changed",
	EventFactionChanged:    "faction_changed",
	EventAuraApplied:       "aura_applied",
	EventAuraUnapplied:     "aura_unapplied",
	EventAuraRefreshed:     "aura_refreshed",
	EventDeathStateChanged: "death_state_changed",
	EventSpellDamageDone:   "spell_damage_done",
}

func (k EventKind) String() string {
	if name, ok := eventKindNames[k]; ok {
		return name
	}
	return "unknown"
}

// Event is one announcement. Fields beyond Kind and Unit are set per kind:
// Application for aura events, Other and Amount for spell damage.
type Event struct {
	Kind        EventKind
	Unit        *Unit
	Application *AuraApplication
	Other       *Unit
	Amount      int32
	Critical    bool
}

// Listener receives events synchronously on the shard goroutine.
type Listener func(Event)

// Bus fans events out to zero or more listeners in subscription order.
type Bus struct {
	nextID    int
	listeners []subscription
}

type subscription struct {
	id int
	fn Listener
}

// NewBus creates a bus without listeners.
func NewBus() *Bus {
	return &Bus{}
}

// Subscribe registers fn and returns a function that removes it.
func (b *Bus) Subscribe(fn Listener) (unsubscribe func()) {
	b.nextID++
	id := b.nextID
	b.listeners = append(b.listeners, subscription{id: id, fn: fn})
	return func() {
		for i, s := range b.listeners {
			if s.id == id {
				b.listeners = append(b.listeners[:i:i], b.listeners[i+1:]...)
				return
			}
		}
	}
}

// Publish delivers e to every listener.
func (b *Bus) Publish(e Event) {
	for _, s := range b.listeners {
		s.fn(e)
	}
}

// Len returns the number of listeners.
func (b *Bus) Len() int { return len(b.listeners) }
