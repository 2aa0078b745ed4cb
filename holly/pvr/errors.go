package pvr

import "errors"

var (
	ErrAlreadyInUse             = errors.New("pvr: context is already in use")
	ErrInvalidContext           = errors.New("pvr: context is invalid")
	ErrInvalidPass              = errors.New("pvr: pass is invalid")
	ErrAlreadyOpenedOrSubmitted = errors.New("pvr: list was already opened or submitted")
	ErrInvalidListType          = errors.New("pvr: invalid list type")
	ErrListSubmitted            = errors.New("pvr: list was already submitted")
	ErrListOpen                 = errors.New("pvr: pass has unsubmitted lists")
	ErrFrameInProgress          = errors.New("pvr: frame already begun")
	ErrNoFrame                  = errors.New("pvr: no frame begun")
)
