package redis

import "errors"

var (
	ErrFailedToParseRedisConnString = errors.New("failed to parse redis connection string")
	ErrRedisNotReady                = errors.New("redis did not become ready within the given time period")
	ErrEmptyConnectionURL           = errors.New("empty redis connection URL")
	ErrHealthcheckFailed            = errors.New("redis healthcheck failed")
	ErrEmptyKey                     = errors.New("empty redis key")
	ErrInvalidTTL                   = errors.New("redis ttl must be positive")
	ErrGetDelUnsupported            = errors.New("redis server does not support GETDEL, version 6.2 or newer is required")
)
