package domain

import "errors"

var ErrUserNotFound = errors.New("user not found")
var ErrPresentationNotFound = errors.New("presentation not found")
var ErrParticipationNotFound = errors.New("participation not found")
var ErrVoucherNotFound = errors.New("voucher not found")
var ErrVoteNotFound = errors.New("vote not found")
var ErrDuplicateSocialID = errors.New("user with this social id already exists")
var ErrUserExists = errors.New("user already exists")
var ErrVoucherAlreadyUsed = errors.New("voucher already bound to a participant")
var ErrAlreadyRegistered = errors.New("user already registered for the conference")
var ErrInvalidRate = errors.New("vote rate out of range")
var ErrInvalidStatus = errors.New("unknown presentation status")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidCredentials = errors.New("invalid credentials")
