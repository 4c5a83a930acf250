package rag

import "errors"

var (
	ErrNoIndex       = errors.New("no documents have been processed yet")
	ErrNoDocuments   = errors.New("no documents uploaded")
	ErrNoText        = errors.New("no extractable text found in the uploaded documents")
	ErrEmptyQuestion = errors.New("question is empty")
)
