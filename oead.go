package oead

import "github.com/zeldamods/oead/internal/utils"

// Sentinel errors surfaced by every codec in this package (spec §6.3).
// Callers distinguish failure kinds with errors.Is rather than by matching
// message text.
var (
	ErrBadMagic          = utils.ErrBadMagic
	ErrBadVersion        = utils.ErrBadVersion
	ErrTruncated         = utils.ErrTruncated
	ErrBadOffset         = utils.ErrBadOffset
	ErrBadType           = utils.ErrBadType
	ErrDuplicateKey      = utils.ErrDuplicateKey
	ErrTooDeep           = utils.ErrTooDeep
	ErrInvalidUTF8       = utils.ErrInvalidUTF8
	ErrBackRefOutOfRange = utils.ErrBackRefOutOfRange
	ErrOutputOverflow    = utils.ErrOutputOverflow
)
