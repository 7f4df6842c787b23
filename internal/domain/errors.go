package domain

import "errors"

var (
	ErrUserNotFound        = errors.New("user not found")
	ErrTaskNotFound        = errors.New("task not found")
	ErrTaskAlreadyDone     = errors.New("task already completed")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrNoPendingAd         = errors.New("no pending ad")
	ErrEmptyAdText         = errors.New("ad text is empty")
	ErrInvalidTaskPayload  = errors.New("invalid task payload")
	ErrNotAdmin            = errors.New("not an admin")
)
