// Package changepoint tracks points in time where the case-count trend
// is allowed to shift slope.
package changepoint

import "time"

type Changepoint struct {
	Name string    `json:"name"`
	T    time.Time `json:"time"`
}

func New(name string, t time.Time) Changepoint {
	return Changepoint{name, t}
}
