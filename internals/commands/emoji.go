package commands

import (
	"os"
	"runtime"
)

// EmojiEnabled is false when colors are turned off (--no-color)
var EmojiEnabled = true

// emojiSupport is false for the legacy windows console, which
// sets SESSIONNAME. Windows Terminal does not
var emojiSupport = runtime.GOOS != "windows" || os.Getenv("SESSIONNAME") == ""

// Emoji returns e if the terminal (probably) renders emojis and they are enabled
func Emoji(e string) string {
	if emojiSupport && EmojiEnabled {
		return e
	}
	return ""
}
