// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Workspace name generation

package workspace

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
	"sync"
	"time"
)

var (
	// nameMutex ensures thread-safe name generation
	nameMutex     sync.Mutex
	lastTimestamp string
	lastCounter   int
)

// ResetNameState resets the global name generation state (for testing)
func ResetNameState() {
	nameMutex.Lock()
	defer nameMutex.Unlock()
	lastTimestamp = ""
	lastCounter = 0
}

// GenerateName creates a unique workspace name with format
// ws-YYYYMMDD-HHMM-3hexchars, or ws-YYYYMMDD-HHMM-NNN (counter format) for
// rapid successive calls within the same minute.
// Thread-safe and guaranteed unique even with rapid consecutive calls.
func GenerateName() (string, error) {
	nameMutex.Lock()
	defer nameMutex.Unlock()

	now := time.Now()
	timestamp := now.Format("20060102-1504")

	// Handle potential collisions within the same minute
	if timestamp == lastTimestamp {
		lastCounter++
		// Use counter format to ensure uniqueness (no random component)
		return fmt.Sprintf("%s-%s-%03d", NamePrefix, timestamp, lastCounter), nil
	}

	// New minute - generate fresh random hex
	randomBytes := make([]byte, 2)
	if _, err := rand.Read(randomBytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}
	randomHex := hex.EncodeToString(randomBytes)[:3]

	lastTimestamp = timestamp
	lastCounter = 0

	return fmt.Sprintf("%s-%s-%s", NamePrefix, timestamp, randomHex), nil
}
