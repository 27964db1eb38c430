package cmd

import (
	"time"

	"github.com/getlantern/systray"
)

// runTray mirrors the teacher's systray.Run(onReady, onExit) shape,
// swapping its CapsLock-toggle status line for the echo-suppression
// state this demo tracks instead.
func runTray() {
	systray.Run(trayReady, trayExit)
}

func trayReady() {
	systray.SetTitle("iohook")
	systray.SetTooltip("iohookdemo - capturing input")

	status := systray.AddMenuItem("Echo: forwarding", "Current echo-suppression state")
	status.Disable()
	systray.AddSeparator()
	quit := systray.AddMenuItem("Quit", "Stop capture and exit")

	go func() {
		for range time.Tick(200 * time.Millisecond) {
			if echoSuppressed.Load() {
				status.SetTitle("Echo: suppressed")
			} else {
				status.SetTitle("Echo: forwarding")
			}
		}
	}()

	go func() {
		<-quit.ClickedCh
		iohookStop()
		systray.Quit()
	}()
}

func trayExit() {}
