package contract

import "errors"

var ErrNoActiveContract = errors.New("teacher has no active contract")
