package input

import (
	"sync"
	"testing"

	"github.com/Carmen-Shannon/oxy-rubiks/common"
	"github.com/Carmen-Shannon/oxy-rubiks/cube"
	"github.com/Carmen-Shannon/oxy-rubiks/engine/window"
	"github.com/cogentcore/webgpu/wgpu"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestActionNames(t *testing.T) {
	for _, a := range Actions() {
		parsed, err := ParseAction(a.String())
		require.NoError(t, err)
		assert.Equal(t, a, parsed)
	}
	a, err := ParseAction("Rotate-2nd-Row-Backwards")
	require.NoError(t, err)
	assert.Equal(t, Rotate2ndRowBackwards, a)

	_, err = ParseAction("spin")
	assert.ErrorIs(t, err, ErrUnknownAction)
	_, err = ParseAction("none")
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, "Action(99)", Action(99).String())
}

func TestActionTurns(t *testing.T) {
	rotations := 0
	seen := map[cube.Turn]bool{}
	for _, a := range Actions() {
		turn, ok := a.Turn()
		if !ok {
			continue
		}
		rotations++
		assert.True(t, turn.Valid(), a.String())
		assert.False(t, seen[turn], "duplicate turn for %s", a)
		seen[turn] = true
	}
	assert.Equal(t, 12, rotations)

	turn, ok := Rotate1stColumnForward.Turn()
	require.True(t, ok)
	back, ok := Rotate1stColumnBackwards.Turn()
	require.True(t, ok)
	assert.Equal(t, turn.Inverse(), back)

	_, ok = QuitGame.Turn()
	assert.False(t, ok)
}

func TestKeyEventCompare(t *testing.T) {
	a := KeyEvent{Window: 1, Key: common.KeyA, State: common.KeyReleased}
	tests := []struct {
		name string
		b    KeyEvent
		want int
	}{
		{"equal", a, 0},
		{"window first", KeyEvent{Window: 2, Key: common.Key0, State: common.KeyReleased}, -1},
		{"then key", KeyEvent{Window: 1, Key: common.KeyB, State: common.KeyReleased}, -1},
		{"then state", KeyEvent{Window: 1, Key: common.KeyA, State: common.KeyPressed}, -1},
		{"greater", KeyEvent{Window: 0, Key: common.KeyZ, State: common.KeyPressed}, 1},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, a.Compare(tt.b))
			assert.Equal(t, -tt.want, tt.b.Compare(a))
		})
	}
}

func TestKeymapLookup(t *testing.T) {
	km := NewKeymap()
	press := KeyEvent{Window: AnyWindow, Key: common.KeyR, State: common.KeyPressed}
	require.NoError(t, km.Bind(press, Rotate3rdColumnForward))
	require.NoError(t, km.Bind(KeyEvent{Window: 7, Key: common.KeyR, State: common.KeyPressed}, Undo))

	a, ok := km.Lookup(KeyEvent{Window: 3, Key: common.KeyR, State: common.KeyPressed})
	require.True(t, ok)
	assert.Equal(t, Rotate3rdColumnForward, a)

	a, ok = km.Lookup(KeyEvent{Window: 7, Key: common.KeyR, State: common.KeyPressed})
	require.True(t, ok)
	assert.Equal(t, Undo, a, "a window binding wins over the wildcard")

	_, ok = km.Lookup(KeyEvent{Window: 3, Key: common.KeyR, State: common.KeyReleased})
	assert.False(t, ok)

	assert.ErrorIs(t, km.Bind(press, ActionNone), ErrUnknownAction)
	assert.True(t, km.Unbind(press))
	assert.False(t, km.Unbind(press))
	assert.Equal(t, 1, km.Len())
}

func TestDefaultKeymap(t *testing.T) {
	km := DefaultKeymap()
	assert.Equal(t, len(DefaultBindings()), km.Len())

	bound := map[Action]bool{}
	for _, b := range km.Bindings() {
		bound[b.Action] = true
	}
	for _, a := range Actions() {
		assert.True(t, bound[a], "%s has no default key", a)
	}

	a, ok := km.Lookup(KeyEvent{Window: 1, Key: common.KeyEsc, State: common.KeyPressed})
	require.True(t, ok)
	assert.Equal(t, QuitGame, a)
}

func TestKeymapLoad(t *testing.T) {
	km := NewKeymap()
	windowOnly := KeyEvent{Window: 4, Key: common.KeyP, State: common.KeyPressed}
	require.NoError(t, km.Bind(windowOnly, Save))
	require.NoError(t, km.Bind(KeyEvent{Key: common.KeyX, State: common.KeyPressed}, Reset))

	require.NoError(t, km.Load([]Binding{
		{Key: common.KeyM, Action: Rotate2ndColumnForward},
		{Key: common.KeyM, Action: Rotate2ndColumnBackwards, Release: true},
	}))
	assert.Equal(t, 3, km.Len())
	_, ok := km.Lookup(KeyEvent{Window: 1, Key: common.KeyX, State: common.KeyPressed})
	assert.False(t, ok, "wildcard bindings are replaced")
	a, ok := km.Lookup(windowOnly)
	require.True(t, ok)
	assert.Equal(t, Save, a)

	a, ok = km.Lookup(KeyEvent{Window: 1, Key: common.KeyM, State: common.KeyReleased})
	require.True(t, ok)
	assert.Equal(t, Rotate2ndColumnBackwards, a)

	err := km.Load([]Binding{{Key: common.KeyA, Action: Undo}, {Key: common.KeyCode(1000), Action: Undo}})
	assert.ErrorIs(t, err, common.ErrUnknownKey)
	err = km.Load([]Binding{{Key: common.KeyA}})
	assert.ErrorIs(t, err, ErrUnknownAction)
	assert.Equal(t, 3, km.Len(), "a failed load leaves the keymap unchanged")
}

func TestBindingsYAML(t *testing.T) {
	doc := `
- key: KEY_Q
  action: rotate_1st_column_forward
- key: escape
  action: quit_game
- key: f5
  action: save
  release: true
`
	var bindings []Binding
	require.NoError(t, yaml.Unmarshal([]byte(doc), &bindings))
	require.Len(t, bindings, 3)
	assert.Equal(t, Binding{Key: common.KeyQ, Action: Rotate1stColumnForward}, bindings[0])
	assert.Equal(t, Binding{Key: common.KeyEsc, Action: QuitGame}, bindings[1])
	assert.Equal(t, Binding{Key: common.KeyF5, Action: Save, Release: true}, bindings[2])

	out, err := yaml.Marshal(bindings[:1])
	require.NoError(t, err)
	assert.Contains(t, string(out), "key: KEY_Q")
	assert.Contains(t, string(out), "action: rotate_1st_column_forward")

	require.Error(t, yaml.Unmarshal([]byte("- key: KEY_Q\n  action: fly\n"), &bindings))
}

func TestActionQueue(t *testing.T) {
	q := NewActionQueue()
	_, ok := q.Pop()
	assert.False(t, ok)

	q.Push(Undo)
	q.Push(Reset)
	q.Push(Save)
	a, ok := q.Pop()
	require.True(t, ok)
	assert.Equal(t, Undo, a)
	assert.Equal(t, []Action{Reset, Save}, q.Drain())
	assert.Zero(t, q.Len())
	assert.Empty(t, q.Drain())
}

func TestActionQueueConcurrentPush(t *testing.T) {
	q := NewActionQueue()
	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				q.Push(Undo)
			}
		}()
	}
	wg.Wait()
	assert.Equal(t, 800, q.Len())
}

func TestDispatcherHandleKey(t *testing.T) {
	d := NewDispatcher()
	assert.Equal(t, Rotate1stRowForward, d.HandleKey(KeyEvent{Window: 1, Key: common.KeyU, State: common.KeyPressed}))
	assert.Equal(t, ActionNone, d.HandleKey(KeyEvent{Window: 1, Key: common.KeyU, State: common.KeyReleased}))
	assert.Equal(t, ActionNone, d.HandleKey(KeyEvent{Window: 1, Key: common.KeyF11, State: common.KeyPressed}))
	assert.Equal(t, []Action{Rotate1stRowForward}, d.Queue().Drain())
}

type headlessNative struct{ closed bool }

func (h *headlessNative) ShouldClose() bool                          { return h.closed }
func (h *headlessNative) SetShouldClose(v bool)                      { h.closed = v }
func (h *headlessNative) FramebufferSize() (int, int)                { return 0, 0 }
func (h *headlessNative) CursorPos() (float64, float64)              { return 0, 0 }
func (h *headlessNative) SetTitle(string)                            {}
func (h *headlessNative) SurfaceDescriptor() *wgpu.SurfaceDescriptor { return nil }
func (h *headlessNative) Destroy()                                   {}

type headlessBackend struct{ sink window.EventSink }

func (b *headlessBackend) Init() error { return nil }
func (b *headlessBackend) CreateWindow(_ window.Handle, _ window.Config, sink window.EventSink) (window.NativeWindow, error) {
	b.sink = sink
	return &headlessNative{}, nil
}
func (b *headlessBackend) PollEvents() {}
func (b *headlessBackend) Terminate()  {}

func TestDispatcherAttach(t *testing.T) {
	backend := &headlessBackend{}
	ws := window.NewWindowSystem(window.WithBackend(backend))
	t.Cleanup(func() { _ = ws.Close() })
	w, err := ws.NewWindow(window.WithPurpose("main"))
	require.NoError(t, err)

	q := NewActionQueue()
	d := NewDispatcher(WithQueue(q))
	d.Attach(ws)

	require.NoError(t, backend.sink.HandleKey(w.Handle(), common.KeyEsc, common.KeyPressed))
	require.NoError(t, backend.sink.HandleKey(w.Handle(), common.KeyEsc, common.KeyRepeat))
	require.NoError(t, backend.sink.HandleKey(w.Handle(), common.KeyZ, common.KeyPressed))
	assert.Equal(t, []Action{QuitGame, Undo}, q.Drain())
}
