package votes

import "errors"

var (
	ErrVoteNotFound  = errors.New("vote not found")
	ErrVoteClosed    = errors.New("vote is closed")
	ErrInvalidChoice = errors.New("choice is not one of the vote's options")
)
