// Formatação de valores numéricos em headers sem passar por fmt.

package ratelimit

import (
	"math"
	"strconv"
	"time"
)

func formatInt(v int) string { return strconv.Itoa(v) }

func formatFloat(v float64) string {
	// sem notação científica para valores comuns
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RetryAfterSeconds arredonda para cima: 59m59.5s vira 3600, nunca 0 enquanto
// ainda houver espera.
func RetryAfterSeconds(d time.Duration) string {
	if d <= 0 {
		return "0"
	}
	return formatInt(int(math.Ceil(d.Seconds())))
}
