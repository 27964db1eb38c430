//go:build darwin

package iohook

/*
#cgo CFLAGS: -x objective-c
#cgo LDFLAGS: -framework CoreFoundation

#include <CoreFoundation/CoreFoundation.h>
#include <dispatch/dispatch.h>
#include <pthread.h>

extern void goMainThreadTrampoline(void *ctx);

// run_on_main_thread marshals fn(ctx) onto the main thread via
// dispatch_sync_f and blocks the calling thread until it completes,
// the preferred path from darwin/input_helper.c's TIS marshaling.
// Only the Unicode resolver calls it; backend_darwin.go's Start is not
// routed through it and runs the tap on its own locked OS thread.
static void run_on_main_thread(void *ctx) {
	dispatch_sync_f(dispatch_get_main_queue(), ctx, goMainThreadTrampoline);
}
*/
import "C"

import (
	"runtime"
	"sync"
	"unsafe"
)

var (
	mainThreadMu  sync.Mutex
	mainThreadFns = map[uintptr]func(){}
	mainThreadFnID uintptr
)

//export goMainThreadTrampoline
func goMainThreadTrampoline(ctx unsafe.Pointer) {
	id := uintptr(ctx)
	mainThreadMu.Lock()
	fn := mainThreadFns[id]
	delete(mainThreadFns, id)
	mainThreadMu.Unlock()
	if fn != nil {
		fn()
	}
}

// runOnMainThread synchronously executes fn on the process main thread
// via dispatch_sync_f, used for TIS (Text Input Source) calls that
// macOS requires run on the main run loop.
func runOnMainThread(fn func()) {
	mainThreadMu.Lock()
	mainThreadFnID++
	id := mainThreadFnID
	mainThreadFns[id] = fn
	mainThreadMu.Unlock()

	C.run_on_main_thread(unsafe.Pointer(id))
}

// lockMainThreadForRunLoop and unlockMainThreadForRunLoop bracket the
// CFRunLoopRun call in backend_darwin.go's Start. The tap's run loop and
// unicode_darwin.go's dispatch_sync_f calls must agree on which OS
// thread is "the main thread", so the calling goroutine is pinned for
// the duration of the hook session, mirroring
// featherops-sparkv2__keylogger_darwin.go's startHook.
func lockMainThreadForRunLoop() {
	runtime.LockOSThread()
}

func unlockMainThreadForRunLoop() {
	runtime.UnlockOSThread()
}
