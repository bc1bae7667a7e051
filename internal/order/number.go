package order

import (
	"fmt"
	"time"
)

// GenerateNumber builds the human-readable order code: the commit date as
// YYMMDD plus the last six digits of the microsecond clock, so commits even
// one millisecond apart differ in their trailing digits. Practically unique
// per till; true uniqueness is the store's identity constraint, not this
// code. Display identifier only, not a sort key.
func GenerateNumber(at time.Time) string {
	return fmt.Sprintf("%s-%06d", at.Format("060102"), at.UnixMicro()%1_000_000)
}
