package minecraft

import (
	"fmt"
	"strings"
)

// Env is the side of a split distribution a jar targets
type Env int

const (
	// EnvCombined is a jar containing client and server
	EnvCombined Env = iota
	// EnvClient is the client jar
	EnvClient
	// EnvServer is the dedicated server jar
	EnvServer
)

// Envs lists all environments
var Envs = []Env{EnvClient, EnvServer, EnvCombined}

func (e Env) String() string {
	switch e {
	case EnvClient:
		return "client"
	case EnvServer:
		return "server"
	default:
		return "combined"
	}
}

// Classifier is the file name suffix of this env. Empty for combined jars
func (e Env) Classifier() string {
	if e == EnvCombined {
		return ""
	}
	return e.String()
}

// ParseEnv parses "client", "server" or "combined" (empty also means combined)
func ParseEnv(s string) (Env, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "client":
		return EnvClient, nil
	case "server":
		return EnvServer, nil
	case "", "combined", "merged":
		return EnvCombined, nil
	default:
		return EnvCombined, fmt.Errorf("unknown environment %q (use client, server or combined)", s)
	}
}

// MarshalText implements encoding.TextMarshaler
func (e Env) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler
func (e *Env) UnmarshalText(text []byte) error {
	parsed, err := ParseEnv(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
