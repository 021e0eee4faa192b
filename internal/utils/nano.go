package utils

import (
	"fmt"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

var (
	NanoidSize     = 32
	nanoidAlphabet = "0123456789abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ"
)

func NanoID() string {
	return NanoIDSize(NanoidSize)
}

func NanoIDSize(size int) string {
	if size == 0 {
		size = NanoidSize
	}

	return gonanoid.MustGenerate(nanoidAlphabet, size)
}

const winningCodeAlphabet = "0123456789ABCDEF"

// WinningCode generates codes for winners created through approval. The "GF-"
// prefix keeps them distinct from applicant-supplied codes, which are free text.
func WinningCode() string {
	return fmt.Sprintf("GF-%s", gonanoid.MustGenerate(winningCodeAlphabet, 6))
}
