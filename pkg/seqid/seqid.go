// Package seqid derives human-readable record identifiers of the form
// <PREFIX>-<YYYYMMDD>-<NNN>. The sequence is re-derived from the identifiers
// already persisted for the current day, so it survives process restarts and
// never reuses a number within a day as long as generation is serialized.
package seqid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"
)

var sequencePattern = regexp.MustCompile(`^[A-Z]+-\d{8}-(\d{3,})$`)

// DatePrefix returns "<prefix>-<YYYYMMDD>" for the given day.
func DatePrefix(prefix string, day time.Time) string {
	return fmt.Sprintf("%s-%s", prefix, day.Format("20060102"))
}

// Next computes the next identifier for the given day by scanning existing
// identifiers that share the day's prefix and taking one past the highest
// sequence found. Identifiers from other days or with a malformed sequence
// part are ignored.
func Next(prefix string, day time.Time, existing []string) string {
	datePrefix := DatePrefix(prefix, day)

	maxSeq := 0
	for _, id := range existing {
		if !strings.HasPrefix(id, datePrefix+"-") {
			continue
		}
		m := sequencePattern.FindStringSubmatch(id)
		if m == nil {
			continue
		}
		seq, err := strconv.Atoi(m[1])
		if err != nil {
			continue
		}
		if seq > maxSeq {
			maxSeq = seq
		}
	}

	return fmt.Sprintf("%s-%03d", datePrefix, maxSeq+1)
}
