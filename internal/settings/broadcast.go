package settings

import "sync"

// Broadcaster reparte cambios de configuración a los clientes SSE conectados.
// Los suscriptores lentos pierden eventos intermedios en vez de bloquear al
// que publica.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan SettingEvent]struct{}
}

type SettingEvent struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

func NewBroadcaster() *Broadcaster {
	return &Broadcaster{subs: make(map[chan SettingEvent]struct{})}
}

func (b *Broadcaster) Subscribe() chan SettingEvent {
	ch := make(chan SettingEvent, 8)
	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()
	return ch
}

func (b *Broadcaster) Unsubscribe(ch chan SettingEvent) {
	b.mu.Lock()
	if _, ok := b.subs[ch]; ok {
		delete(b.subs, ch)
		close(ch)
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Publish(ev SettingEvent) {
	b.mu.Lock()
	for ch := range b.subs {
		select {
		case ch <- ev:
		default:
		}
	}
	b.mu.Unlock()
}

func (b *Broadcaster) Count() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
