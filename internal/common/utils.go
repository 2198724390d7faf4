package common

import "fmt"

// FormatElapsed renders a travel time in minutes as "<hours>hr<minutes>",
// e.g. 90 -> "1hr30".
func FormatElapsed(minutes int) string {
	return fmt.Sprintf("%dhr%d", minutes/60, minutes%60)
}
