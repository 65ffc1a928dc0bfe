package repository

import (
	"time"

	"github.com/cockroachdb/errors"
)

const dateLayout = "2006-01-02"

// parseDateIn parses a YYYY-MM-DD column as local midnight in loc.
func parseDateIn(s string, loc *time.Location) (time.Time, error) {
	t, err := time.ParseInLocation(dateLayout, s, loc)
	if err != nil {
		return time.Time{}, errors.Wrapf(err, "parsing date %q", s)
	}
	return t, nil
}
