package globals

import (
	"github.com/minepkg/mcjar/internals/cmdlog"
	"github.com/minepkg/mcjar/internals/ownhttp"
)

var (
	// CacheDir is the root of the download cache
	CacheDir   string
	HTTPClient = ownhttp.New()
	Logger     = cmdlog.New()
)
