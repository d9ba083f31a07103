package service

import "errors"

var (
	ErrIndexDisabled  = errors.New("read index is disabled")
	ErrAuthorRequired = errors.New("command needs an acting account, pass --as")
)
