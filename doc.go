// Package iohook is a cross-platform, userland keyboard- and mouse-hooking
// library: it installs OS-level low-level input hooks, normalizes every
// platform's native keyboard/mouse representation into a single
// VirtualEvent model, dispatches those events synchronously to a
// caller-supplied handler, and can synthesize events back into the OS
// input stream.
//
// Exactly one hook session may be active per process. The caller's
// dispatch function runs on the single internal hook thread: it must
// return quickly, since a slow handler stalls OS input delivery and can
// cause Windows/macOS to disable the hook.
package iohook
