package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// Domain prefixes for content-addressed identity.
// The version suffix allows a future change of algorithm.
const (
	DomainProgram = "sharpj/program/v1"
	DomainOutput  = "sharpj/output/v1"
)

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// ProgramHash returns the content-addressed identity of a program: two trees
// with the same structure and values hash identically regardless of how
// they were built.
func ProgramHash(p *Program) (string, error) {
	if p == nil {
		return "", fmt.Errorf("ProgramHash: nil program")
	}
	raw, err := json.Marshal(p)
	if err != nil {
		return "", fmt.Errorf("ProgramHash: failed to marshal: %w", err)
	}
	canonical, err := canonicalizeJSON(raw)
	if err != nil {
		return "", fmt.Errorf("ProgramHash: %w", err)
	}
	return hashWithDomain(DomainProgram, canonical), nil
}

// OutputHash returns the content-addressed identity of emitted text.
func OutputHash(text string) string {
	return hashWithDomain(DomainOutput, []byte(text))
}

// MustProgramHash is like ProgramHash but panics on error.
// Use only in tests or when the program is known to be well formed.
func MustProgramHash(p *Program) string {
	h, err := ProgramHash(p)
	if err != nil {
		panic(err)
	}
	return h
}
