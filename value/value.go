// Package value defines the logical value slots stored in column blocks.
//
// A slot is a Nullable[T]: an optional instance of T where absence denotes SQL
// NULL. The concrete value types are:
//
//	bool            boolean
//	int32           32-bit integer
//	float64         64-bit float
//	decimal.Decimal decimal (github.com/shopspring/decimal)
//	Date            days since 1970-01-01
//	Interval        months and days
//	string          UTF-8 text
//	Blob            opaque bytes
package value

import (
	"bytes"
	"fmt"
	"time"
)

// Nullable is a value slot of type T. Valid is false for NULL.
type Nullable[T any] struct {
	V     T
	Valid bool
}

// Some returns a non-null slot holding v.
func Some[T any](v T) Nullable[T] {
	return Nullable[T]{V: v, Valid: true}
}

// Null returns a null slot of type T.
func Null[T any]() Nullable[T] {
	return Nullable[T]{}
}

// IsNull reports whether the slot is NULL.
func (n Nullable[T]) IsNull() bool {
	return !n.Valid
}

func (n Nullable[T]) String() string {
	if !n.Valid {
		return "NULL"
	}

	return fmt.Sprint(n.V)
}

// Repeat returns a slice holding item count times.
func Repeat[T any](item Nullable[T], count int) []Nullable[T] {
	out := make([]Nullable[T], count)
	for i := range out {
		out[i] = item
	}

	return out
}

// Date is a calendar date stored as days since 1970-01-01 (UTC).
type Date int32

const secondsPerDay = 24 * 60 * 60

// DateOf returns the date containing t, in UTC.
func DateOf(t time.Time) Date {
	secs := t.UTC().Unix()
	days := secs / secondsPerDay
	if secs%secondsPerDay < 0 {
		days--
	}

	return Date(days) //nolint:gosec
}

// Time returns midnight UTC of the date.
func (d Date) Time() time.Time {
	return time.Unix(int64(d)*secondsPerDay, 0).UTC()
}

func (d Date) String() string {
	return d.Time().Format(time.DateOnly)
}

// Interval is a duration expressed in calendar months and days.
type Interval struct {
	Months int32
	Days   int32
}

func (i Interval) String() string {
	return fmt.Sprintf("%d mons %d days", i.Months, i.Days)
}

// Blob is an opaque byte string.
type Blob []byte

// Equal reports whether b and other hold the same bytes.
func (b Blob) Equal(other Blob) bool {
	return bytes.Equal(b, other)
}
