package logx

import "log/slog"

// discard is shared by every Nop logger; slog drops records before formatting.
var discard = NewSlogAdapter(slog.New(slog.DiscardHandler))

// Nop returns a Logger that drops everything. Handy as a default for nil loggers.
func Nop() Logger {
	return discard
}
