package member

import (
	"fmt"

	"github.com/kinetix-inc/kinetix/internal/shared/constants"
)

// FormatNumber renders a sequence value as a membership number, e.g.
// MBR-00042.
func FormatNumber(seq uint64) string {
	return fmt.Sprintf("%s%05d", constants.MemberNumberPrefix, seq)
}
