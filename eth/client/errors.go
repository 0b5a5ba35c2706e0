package client

import "errors"

var errChainIDMismatch = errors.New("chain id mismatch")
