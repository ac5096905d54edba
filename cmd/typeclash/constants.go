package main

import "errors"

// User-facing messages for rejected input.
var (
	errInputFormat = errors.New("incorrect amount of data provided, please enter name(s) or id(s) of the creatures you wish to compare")
	errInvalidData = errors.New("invalid data entered, please enter valid name(s) or id(s) of the creatures you wish to compare")
)

// Global flag values.
var (
	globalRoster    string
	globalLogLevel  string
	globalConfigDir string
)
