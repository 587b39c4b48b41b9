package convert

import "errors"

// Prerequisite and enumeration conditions, checked before any file is
// touched. Per-file decode/encode failures are wrapped errors carried in
// the batch result instead.
var (
	ErrNoSource         = errors.New("no source file selected")
	ErrNoBatchFolder    = errors.New("no batch folder selected")
	ErrNoOutputDir      = errors.New("no output folder set")
	ErrCodecUnavailable = errors.New("codec unavailable")
	ErrNothingToConvert = errors.New("no convertible images in folder")
)
