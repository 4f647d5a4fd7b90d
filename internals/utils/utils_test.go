package utils

import (
	"strings"
	"testing"

	"github.com/jwalton/gchalk"
	"github.com/minepkg/mcjar/internals/minecraft"
)

func TestPrettyVersion(t *testing.T) {
	gchalk.SetLevel(gchalk.LevelNone)

	if got := PrettyVersion("1.19.2", minecraft.TypeRelease); got != "1.19.2" {
		t.Fatalf("unexpected %q", got)
	}
	long := PrettyVersion("1.14 Pre-Release 1 with extra words", minecraft.TypeSnapshot)
	if !strings.HasSuffix(long, "…") || len(long) > 22 {
		t.Fatalf("long version was not shortened: %q", long)
	}
}
