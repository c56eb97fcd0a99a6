package service

import "errors"

var (
	ErrBoardNotFound    = errors.New("board not found")
	ErrBoardExists      = errors.New("board already exists")
	ErrConnectionExists = errors.New("connection already exists")
)
