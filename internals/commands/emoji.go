package commands

import (
	"os"
	"runtime"
)

// EmojiEnabled is turned off by --no-color, CI and NO_COLOR
var EmojiEnabled = true

var emojiSupport = terminalHasEmoji(runtime.GOOS, os.Getenv)

// terminalHasEmoji guesses if headlines and error boxes can show emoji.
// Windows Terminal sets WT_SESSION, the legacy console (cmd, powershell) sets
// SESSIONNAME only and renders emoji as boxes
func terminalHasEmoji(goos string, getenv func(string) string) bool {
	if goos != "windows" {
		return true
	}
	if getenv("WT_SESSION") != "" {
		return true
	}
	return getenv("SESSIONNAME") == ""
}

// Emoji returns e (usually an emoji with a trailing space) if the terminal
// (probably) shows it
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
