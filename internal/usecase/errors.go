package usecase

import crerr "github.com/cockroachdb/errors"

var (
	ErrInvalidInput       = crerr.New("invalid input")
	ErrOutputDirExists    = crerr.New("output directory already exists")
	ErrArchiveNotFound    = crerr.New("dataset archive not found")
	ErrUnsupportedArchive = crerr.New("unsupported archive format")
	ErrUnsafeArchivePath  = crerr.New("archive entry escapes output directory")
	ErrMissingJoinKey     = crerr.New("join key missing from table")
	ErrMissingColumn      = crerr.New("required column missing")
)
