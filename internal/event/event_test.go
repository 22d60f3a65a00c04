package event

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDispatcher_OrderAndFilter(t *testing.T) {
	d := NewDispatcher()
	var got []string
	d.Subscribe(WaveStarted, ListenerFunc(func(e Event) { got = append(got, "first:"+string(e.Type)) }))
	d.Subscribe(WaveStarted, ListenerFunc(func(e Event) { got = append(got, "second:"+string(e.Type)) }))
	d.Subscribe(WaveEnded, ListenerFunc(func(e Event) { got = append(got, "ended") }))
	d.SubscribeAll(ListenerFunc(func(e Event) { got = append(got, "all:"+string(e.Type)) }))

	d.Dispatch(Event{Type: WaveStarted, Data: WaveData{Number: 1}})

	assert.Equal(t, []string{"first:WaveStarted", "second:WaveStarted", "all:WaveStarted"}, got)
}

func TestDispatcher_NilIsNoop(t *testing.T) {
	var d *Dispatcher
	assert.NotPanics(t, func() { d.Dispatch(Event{Type: GameOver}) })
}
