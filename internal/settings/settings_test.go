package settings

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeHexColor(t *testing.T) {
	cases := map[string]string{
		"#2563eb":   "#2563eb",
		"#2563EB":   "#2563eb",
		"2563eb":    "#2563eb",
		"  2563EB ": "#2563eb",
		"#25e":      "#2255ee",
		"fff":       "#ffffff",
	}
	for in, want := range cases {
		got, err := NormalizeHexColor(in)
		require.NoError(t, err, "entrada %q", in)
		assert.Equal(t, want, got, "entrada %q", in)
	}

	for _, in := range []string{"", "#12", "#12345", "#gggggg", "rojo"} {
		_, err := NormalizeHexColor(in)
		assert.Error(t, err, "entrada %q", in)
	}
}

func TestBroadcasterDeliversToAllSubscribers(t *testing.T) {
	b := NewBroadcaster()
	a := b.Subscribe()
	c := b.Subscribe()
	require.Equal(t, 2, b.Count())

	ev := SettingEvent{Key: "primary_color", Value: "#2563eb"}
	b.Publish(ev)

	assert.Equal(t, ev, <-a)
	assert.Equal(t, ev, <-c)
}

func TestBroadcasterDropsEventsForSlowSubscriber(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()

	// el buffer es de 8; publicar de más no debe bloquear
	for i := 0; i < 20; i++ {
		b.Publish(SettingEvent{Key: "primary_color", Value: "#000000"})
	}
	assert.Len(t, ch, 8)
}

func TestBroadcasterUnsubscribeClosesChannel(t *testing.T) {
	b := NewBroadcaster()
	ch := b.Subscribe()
	b.Unsubscribe(ch)

	_, open := <-ch
	assert.False(t, open)
	assert.Zero(t, b.Count())

	// un doble unsubscribe no debe entrar en pánico
	b.Unsubscribe(ch)
}
