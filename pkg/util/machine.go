package util

import (
	"github.com/denisbrodbeck/machineid"
)

// GetMachineID returns a stable per-host identifier used to salt token
// signing keys. An empty string is returned when the platform id is
// unavailable so tokens still work, just unsalted.
func GetMachineID() string {
	id, err := machineid.ProtectedID("journal-sync-service")
	if err != nil {
		return ""
	}
	return id
}
