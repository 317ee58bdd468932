package errors

import "errors"

var (
	ErrEngineNotFound = errors.New("go engine was not found")
	ErrEngineFailed   = errors.New("go engine failed")
	ErrEngineTimeout  = errors.New("go engine timed out")
	ErrInvalidConfig  = errors.New("invalid configuration")
	ErrRecordWrite    = errors.New("failed to write game record")
	ErrStoreInit      = errors.New("result store init failed")
)
