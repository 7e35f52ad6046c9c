// Copyright © 2026 ソニーレベル <C7kali3@gmail.com>
// Recognized incompatibility signatures for tier advancement

package scaffold

import "strings"

// engineIncompatSignatures are the failure markers a primary-tool run emits
// when the scaffolding tool rejects the runtime. Only these failures allow
// degradation to the next tier; anything else is reported as-is.
var engineIncompatSignatures = []string{
	"ebadengine",
	"unsupported engine",
	`engine "node" is incompatible`,
	"err_ossl_evp_unsupported",
	"required: {\"node\"",
}

// isEngineIncompatibility reports whether the combined output and error text
// of a failed scaffold run matches a recognized incompatibility signature
func isEngineIncompatibility(output string, err error) bool {
	text := strings.ToLower(output)
	if err != nil {
		text += "\n" + strings.ToLower(err.Error())
	}

	for _, sig := range engineIncompatSignatures {
		if strings.Contains(text, sig) {
			return true
		}
	}
	return false
}
