// utils/dates.go
package utils

import "time"

const DateLayout = "2006-01-02"

// Today returns the current calendar date as an ISO day string
func Today() string {
	return time.Now().Format(DateLayout)
}

// IsDate reports whether s is a valid ISO calendar day (YYYY-MM-DD)
func IsDate(s string) bool {
	_, err := time.Parse(DateLayout, s)
	return err == nil
}
