// Package domain defines the types and interfaces for the content service
package domain

// Unit state strings published to the host platform
const (
	// StateWaiting is shown before the first refresh completes
	StateWaiting = "等待更新"

	// StateFailed is shown by retry-enabled units after retries run out
	StateFailed = "API请求失败"
)

// Snapshot is the published view of one per-type sensor unit
type Snapshot struct {
	UniqueID   string         `json:"unique_id"`
	Name       string         `json:"name"`
	Icon       string         `json:"icon"`
	State      string         `json:"state"`
	Available  bool           `json:"available"`
	Attributes map[string]any `json:"attributes"`
}
