package api

import (
	"golang.org/x/text/encoding"

	"github.com/ssargent/cm3d2save/pkg/docfmt"
)

// APIResponse represents a standard API response
type APIResponse struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// BackupListResponse is returned by the backup listing endpoint
type BackupListResponse struct {
	Backups []BackupInfo `json:"backups"`
	Damaged int          `json:"damaged"`
}

// BackupInfo describes one archived snapshot
type BackupInfo struct {
	ID      string `json:"id"`
	Name    string `json:"name"`
	Version int32  `json:"version"`
	Time    string `json:"time"`
	Size    int    `json:"size"`
}

// ServerConfig holds configuration for the API server
type ServerConfig struct {
	Bind   string
	Port   int
	APIKey string // empty disables authentication

	// MaxBodyBytes caps request bodies; 0 means no limit.
	MaxBodyBytes int64

	// Format and Indent are the defaults for decoded documents when the
	// request does not ask for one.
	Format docfmt.Format
	Indent int

	// TextEncoding of strings inside save files; nil means UTF-8.
	TextEncoding encoding.Encoding
}
