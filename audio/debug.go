//go:build !js
// +build !js

package audio

import "log"

var EnableDebug = false

// Debug logs a message if debug mode is enabled.
func Debug(args ...interface{}) {
	if EnableDebug {
		log.Println(args...)
	}
}

// DebugWarn logs a warning if debug mode is enabled.
func DebugWarn(args ...interface{}) {
	if EnableDebug {
		log.Println(append([]interface{}{"warn:"}, args...)...)
	}
}
