package http

import (
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/pkgerrors"
)

var logger *zerolog.Logger

// Tuning parameters for the header map engine. These are internal knobs, not
// part of the externally observable contract.
const (
	// Grow when distinct names exceed capacity - capacity/8 (0.875 load factor).
	loadFactorShift = 3

	// Hard ceiling on the slot table. Unreachable under legitimate header
	// load; exists only to bound deliberate overflow attempts.
	maxCapacity = 1 << 15

	// Probe displacements at or above max(minDisplacement, capacity/4)
	// escalate the danger level.
	minDisplacement = 8
)

func SetupLogger(l *zerolog.Logger) {
	zerolog.ErrorStackMarshaler = pkgerrors.MarshalStack

	logger = l
}
