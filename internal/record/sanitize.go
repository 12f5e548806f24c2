package record

import "strings"

var idSanitizer = strings.NewReplacer(
	"/", "_",
	"\\", "_",
	":", "_",
	"*", "_",
	"?", "_",
	`"`, "_",
	"<", "_",
	">", "_",
	"|", "_",
)

// SanitizeID maps a raw patient identifier to a filesystem-safe storage token.
// Deterministic, total and idempotent. Two raw identifiers that sanitize to the
// same token address the same record; that collision is accepted, not masked.
// The result is a storage key only, never shown as the patient's identifier.
func SanitizeID(raw string) string {
	return idSanitizer.Replace(raw)
}
