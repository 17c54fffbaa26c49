// Package ui renders git command lifecycle events as human-readable console
// log lines, so that console-format logging shows what gemote is doing to each
// repository while structured logging keeps the raw fields.
package ui
