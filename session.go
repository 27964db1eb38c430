package iohook

import "sync"

// captureMode selects which native hook(s) Run installs, mirroring
// hook_run / hook_run_keyboard / hook_run_mouse.
type captureMode uint8

const (
	modeBoth captureMode = iota
	modeKeyboard
	modeMouse
)

// captureBackend is the per-platform C4 capture pipeline. Start installs
// the native hook(s) and blocks, delivering every native event to disp,
// until Stop is called from another goroutine.
type captureBackend interface {
	Start(disp *dispatcher, mode captureMode) error
	Stop() error
}

// ScreenData describes one display, for CreateScreenInfo (C3).
type ScreenData struct {
	Number uint8
	X      int16
	Y      int16
	Width  uint16
	Height uint16
}

// session is the C8 lifecycle controller. Exactly one may run at a
// time: a second Run/RunKeyboard/RunMouse call while one is already
// active fails with ErrFailure, matching spec.md's single-active-session
// invariant.
type session struct {
	mu      sync.Mutex
	running bool
	backend captureBackend
	disp    *dispatcher
}

var globalSession session

// SetDispatchProc installs fn as the process-wide event handler,
// mirroring hook_set_dispatch_proc. It may be called before Run, or
// while a session is active to hot-swap the handler.
func SetDispatchProc(fn DispatchFunc) {
	globalSession.mu.Lock()
	defer globalSession.mu.Unlock()
	if globalSession.disp == nil {
		globalSession.disp = newDispatcher(newCodeTable(), newUnicodeResolver())
	}
	globalSession.disp.proc = fn
}

// Run starts combined keyboard and mouse capture and blocks until Stop
// is called or the native backend fails.
func Run() error {
	return runSession(modeBoth)
}

// RunKeyboard starts keyboard-only capture. The Linux RECORD backend
// does not separate the two streams: there it delivers mouse events too.
func RunKeyboard() error {
	return runSession(modeKeyboard)
}

// RunMouse starts mouse-only capture. The Linux RECORD backend does not
// separate the two streams: there it delivers keyboard events too.
func RunMouse() error {
	return runSession(modeMouse)
}

func runSession(mode captureMode) error {
	globalSession.mu.Lock()
	if globalSession.running {
		globalSession.mu.Unlock()
		return ErrFailure
	}
	if globalSession.disp == nil {
		globalSession.disp = newDispatcher(newCodeTable(), newUnicodeResolver())
	}
	backend := newCaptureBackend()
	globalSession.backend = backend
	globalSession.running = true
	disp := globalSession.disp
	globalSession.mu.Unlock()

	// C2's lifecycle (spec.md §4.2): poll the OS for every modifier
	// key, mouse button, and lock LED's held state before the first
	// event is dispatched, so a key already held when Run starts
	// isn't mis-tracked as newly pressed.
	modifierReset(nativePollInitialModifiers())

	if disp.proc != nil {
		disp.proc(&VirtualEvent{Type: EventHookEnabled})
	}

	err := backend.Start(disp, mode)

	globalSession.mu.Lock()
	globalSession.running = false
	globalSession.backend = nil
	globalSession.mu.Unlock()

	if disp.proc != nil {
		disp.proc(&VirtualEvent{Type: EventHookDisabled})
	}
	modifierReset(0)

	return err
}

// Stop terminates an active capture session. It is a no-op if no
// session is running.
func Stop() error {
	globalSession.mu.Lock()
	backend := globalSession.backend
	globalSession.mu.Unlock()

	if backend == nil {
		return nil
	}
	return backend.Stop()
}

// PostEvent synthesizes evt into the native input stream (C7). Keyboard
// and mouse events are supported; the three *_IGNORE_COORDS /
// *_RELATIVE_TO_CURSOR variants select injection-only coordinate modes.
func PostEvent(evt *VirtualEvent) error {
	if evt == nil {
		return ErrFailure
	}
	return nativePostEvent(evt)
}

// PostText types text by synthesizing native key events, mirroring
// hook_post_text. Windows posts a down/up pair per UTF-16 code unit,
// Linux a down/up pair per rune, and macOS a single down/up pair that
// carries the whole string.
func PostText(text string) error {
	if text == "" {
		return ErrPostTextNull
	}
	return nativePostText(text)
}

// GetPostTextDelayX11 returns the configured inter-event delay (in
// nanoseconds) used by PostText's X11 unused-keycode remap dance. It is
// a no-op passthrough returning 0 on non-Linux platforms.
func GetPostTextDelayX11() uint32 {
	return nativeGetPostTextDelayX11()
}

// SetPostTextDelayX11 configures the delay GetPostTextDelayX11 reports.
// It has no effect on non-Linux platforms.
func SetPostTextDelayX11(delayNanos uint32) {
	nativeSetPostTextDelayX11(delayNanos)
}

// CreateScreenInfo enumerates the attached displays (C3). On Windows
// this additionally refreshes the monitor helper's most-negative-origin
// cache used by PostEvent's coordinate normalization.
func CreateScreenInfo() []ScreenData {
	return nativeCreateScreenInfo()
}

// GetAutoRepeatRate returns the key auto-repeat rate. On Windows it is
// the OS-configured value (SPI_GETKEYBOARDSPEED), or an error if it
// could not be queried; macOS and Linux do not query the OS and return
// 0 with a nil error. No auto-repeat behavior is computed by this
// package.
func GetAutoRepeatRate() (int32, error) {
	return nativeGetAutoRepeatRate()
}

// GetAutoRepeatDelay returns the initial auto-repeat delay. On Windows
// it is the OS-configured value (SPI_GETKEYBOARDDELAY); macOS and Linux
// do not query the OS and return 0 with a nil error.
func GetAutoRepeatDelay() (int32, error) {
	return nativeGetAutoRepeatDelay()
}

// GetPointerAccelerationMultiplier returns a fixed 1.0 on every
// supported platform; the OS setting is not queried.
func GetPointerAccelerationMultiplier() (float64, error) {
	return nativeGetPointerAccelerationMultiplier()
}

// GetPointerAccelerationThreshold returns a fixed 0 on every supported
// platform; the OS setting is not queried.
func GetPointerAccelerationThreshold() (int32, error) {
	return nativeGetPointerAccelerationThreshold()
}

// GetPointerAccelerationSensitivity returns a fixed 1.0 on every
// supported platform; the OS setting is not queried.
func GetPointerAccelerationSensitivity() (float64, error) {
	return nativeGetPointerAccelerationSensitivity()
}

// GetMultiClickTime returns the dispatcher's fixed multi-click window
// (multiClickWindowMillis, 500 ms) on every supported platform, the same
// window its click tracking uses; the OS setting is not queried.
func GetMultiClickTime() (uint32, error) {
	return nativeGetMultiClickTime()
}
