package cmd

import "github.com/zhaoq-v/iohook"

func iohookStop() {
	_ = iohook.Stop()
}
