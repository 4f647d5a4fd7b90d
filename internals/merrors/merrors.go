// Package merrors contains the typed errors returned by mcjar.
// Callers discriminate with errors.As, never by message.
package merrors

import (
	"fmt"
	"strings"
)

// ConfigurationError is returned for invalid input (bad dependency coordinates,
// unsupported environment combinations and the like). It is never retried.
type ConfigurationError struct {
	Err      string
	HelpText string
}

func (e *ConfigurationError) Error() string {
	return e.Err
}

// Help returns a hint that is displayed to the user
func (e *ConfigurationError) Help() string {
	return e.HelpText
}

// NetworkError is returned when a request failed or did not return 200
type NetworkError struct {
	URL        string
	StatusCode int
	Status     string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("fetching %s: %s", e.URL, e.Err)
	}
	return fmt.Sprintf("invalid status code: %s from %s", e.Status, e.URL)
}

func (e *NetworkError) Unwrap() error {
	return e.Err
}

// NotFound reports whether the server answered with a 404
func (e *NetworkError) NotFound() bool {
	return e.StatusCode == 404
}

// Help returns a hint that is displayed to the user
func (e *NetworkError) Help() string {
	return "Check your internet connection. Cached files can be used with --offline"
}

// IntegrityError is returned when a downloaded file does not match the expected hash or size
type IntegrityError struct {
	URL          string
	Path         string
	ExpectedSha1 string
	ActualSha1   string
	ExpectedSize int64
	ActualSize   int64
}

func (e *IntegrityError) Error() string {
	if e.ExpectedSize >= 0 && e.ActualSize != e.ExpectedSize {
		return fmt.Sprintf(
			"failed to download %s: size is %d bytes, expected %d",
			e.URL, e.ActualSize, e.ExpectedSize,
		)
	}
	return fmt.Sprintf(
		"failed to download %s: sha1 is \"%s\", expected \"%s\"",
		e.URL, e.ActualSha1, e.ExpectedSha1,
	)
}

// Help returns a hint that is displayed to the user
func (e *IntegrityError) Help() string {
	return "The remote file might have changed. Try again with --refresh"
}

// OfflineError is returned when a file is missing locally and offline mode forbids fetching it
type OfflineError struct {
	What string
	URL  string
}

func (e *OfflineError) Error() string {
	if e.URL == "" {
		return fmt.Sprintf("offline mode is enabled, but %s is not available locally", e.What)
	}
	return fmt.Sprintf("offline mode is enabled, but %s is not available locally (would fetch %s)", e.What, e.URL)
}

// Help returns a hint that is displayed to the user
func (e *OfflineError) Help() string {
	return "Run once without --offline (or unset MCJAR_OFFLINE) to populate the cache"
}

// UnknownVersionError is returned when a version id is not part of the version manifest
type UnknownVersionError struct {
	Version string
}

func (e *UnknownVersionError) Error() string {
	return fmt.Sprintf("unknown minecraft version \"%s\"", e.Version)
}

// Help returns a hint that is displayed to the user
func (e *UnknownVersionError) Help() string {
	return "Run \"mcjar versions list\" to see all available versions"
}

// MissingArtifactError is returned when an artifact is not published for a version.
// Attempts lists every location that was tried.
type MissingArtifactError struct {
	Version  string
	Artifact string
	Attempts []string
	Err      error
}

func (e *MissingArtifactError) Error() string {
	msg := fmt.Sprintf("no %s available", e.Artifact)
	if e.Version != "" {
		msg += " for version " + e.Version
	}
	if len(e.Attempts) != 0 {
		msg += " (tried " + strings.Join(e.Attempts, ", ") + ")"
	}
	return msg
}

func (e *MissingArtifactError) Unwrap() error {
	return e.Err
}

// Help returns a hint that is displayed to the user
func (e *MissingArtifactError) Help() string {
	return ""
}

// IncompleteSyncError is returned when an asset could not be downloaded after all attempts
type IncompleteSyncError struct {
	Key      string
	URL      string
	Attempts int
	Err      error
}

func (e *IncompleteSyncError) Error() string {
	msg := fmt.Sprintf("failed to download asset %s : %s after %d attempts", e.Key, e.URL, e.Attempts)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *IncompleteSyncError) Unwrap() error {
	return e.Err
}

// Help returns a hint that is displayed to the user
func (e *IncompleteSyncError) Help() string {
	return "Already downloaded assets are kept. Running the command again only fetches the missing ones"
}
