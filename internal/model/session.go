package model

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// ThreadID is the join key between the checkpoint store and the long-term
// store: deviceID + "_" + sessionID. It must be derivable in both directions.

// NewSessionID generates a fresh session identifier.
func NewSessionID() string {
	return fmt.Sprintf("session_%d_%s", time.Now().UnixMilli(), uuid.NewString()[:8])
}

// BuildThreadID joins a device and session into the checkpoint thread key.
func BuildThreadID(deviceID, sessionID string) string {
	return deviceID + "_" + sessionID
}

// SessionFromThreadID strips the device prefix from a thread key, recovering
// the session identifier. Returns false if the thread does not belong to the
// given device.
func SessionFromThreadID(threadID, deviceID string) (string, bool) {
	prefix := deviceID + "_"
	if !strings.HasPrefix(threadID, prefix) {
		return "", false
	}
	return strings.TrimPrefix(threadID, prefix), true
}
