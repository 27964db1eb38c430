package cmd

import (
	"fmt"
	"sync/atomic"

	"github.com/go-vgo/robotgo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/zhaoq-v/iohook"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Start capturing keyboard and mouse input",
	RunE:  runDemo,
}

// toggleKeys names the small subset of VirtualCodes iohookdemo accepts
// for its configurable toggle hotkey.
var toggleKeys = map[string]iohook.VirtualCode{
	"VC_F9":     iohook.VCF9,
	"VC_F10":    iohook.VCF10,
	"VC_F11":    iohook.VCF11,
	"VC_F12":    iohook.VCF12,
	"VC_PAUSE":  iohook.VCPause,
	"VC_SCROLL_LOCK": iohook.VCScrollLock,
}

var echoSuppressed atomic.Bool

func runDemo(cmd *cobra.Command, args []string) error {
	loaded, err := loadConfig(configFile)
	if err != nil {
		return err
	}
	cfg = loaded
	echoSuppressed.Store(cfg.EchoSuppressed)

	toggleVC, ok := toggleKeys[cfg.ToggleKey]
	if !ok {
		return fmt.Errorf("unknown toggle_key %q", cfg.ToggleKey)
	}

	log := newZapLogger(cfg.Logging.Level)
	defer log.Sync()

	iohook.SetLoggerProc(func(level iohook.LogLevel, format string, a ...any) {
		msg := fmt.Sprintf(format, a...)
		switch level {
		case iohook.LogDebug:
			log.Debug(msg)
		case iohook.LogWarn:
			log.Warn(msg)
		case iohook.LogError:
			log.Error(msg)
		default:
			log.Info(msg)
		}
	})

	iohook.SetDispatchProc(func(evt *iohook.VirtualEvent) {
		switch evt.Type {
		case iohook.EventHookEnabled:
			log.Info("hook enabled")
		case iohook.EventHookDisabled:
			log.Info("hook disabled")
		case iohook.EventKeyPressed:
			if evt.Keyboard.KeyCode == toggleVC {
				echoSuppressed.Store(!echoSuppressed.Load())
				log.Info("toggled echo suppression", zap.Bool("suppressed", echoSuppressed.Load()))
				evt.Consumed = true
				return
			}
			log.Debug("key pressed", zap.Uint16("vc", uint16(evt.Keyboard.KeyCode)))
			if echoSuppressed.Load() {
				evt.Consumed = true
			}
		case iohook.EventKeyTyped:
			log.Debug("key typed", zap.String("char", string(rune(evt.Keyboard.KeyChar))))
		case iohook.EventMouseClicked:
			log.Debug("mouse clicked", zap.Uint16("button", evt.Mouse.Button), zap.Uint16("clicks", evt.Mouse.Clicks))
		}
	})

	if cfg.Tray.Enabled {
		go runTray()
	}

	// Demonstrate the library's own synthesis path alongside robotgo's,
	// the two injection paths the teacher and this library each own.
	go demoSynthesis(log)

	return iohook.Run()
}

// demoSynthesis nudges the pointer one pixel right through robotgo
// (the teacher's injection dependency) immediately after startup, then
// the same nudge back through iohook.PostEvent, so both paths are
// exercised once per run without fighting over the cursor.
func demoSynthesis(log *zap.Logger) {
	x, y := robotgo.Location()
	robotgo.Move(x+1, y)

	err := iohook.PostEvent(&iohook.VirtualEvent{
		Type: iohook.EventMouseMovedRelativeToCursor,
		Mouse: iohook.MouseData{
			X: -1,
			Y: 0,
		},
	})
	if err != nil {
		log.Warn("iohook synthesis demo failed", zap.Error(err))
	}
}
