// Package provider contains lyric provider implementations (Genius,
// lyrics.ovh, LRCLIB).
//
// The Provider interface is defined in internal/lyrics (lyrics.Provider),
// following the Go convention of defining interfaces where they are consumed.
// Each sub-package here implements that interface for a specific service.
package provider
