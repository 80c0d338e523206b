// Package seed implements deterministic per-component seed derivation:
// the leading 64 bits of SHA-256(masterSeed || "|" || tag1 || "|" || tag2
// || ...), so that the same (master seed, tag tuple) always yields the
// same derived seed, and a nil master seed means "non-deterministic mode"
// everywhere a component asks for one.
//
// This is a standard domain-separated KDF built on stdlib crypto/sha256:
// a correctness-critical deterministic hash is not the place to add
// dependency risk for no behavioral benefit.
package seed

import (
	"crypto/sha256"
	"encoding/binary"
	"strconv"
	"strings"
)

// Derive returns the per-component seed for master combined with tags, or
// nil if master is nil, so non-deterministic mode propagates unchanged.
// The same (master, tags) tuple always yields the same result.
func Derive(master *uint64, tags ...string) *uint64 {
	if master == nil {
		return nil
	}

	var b strings.Builder
	b.WriteString(strconv.FormatUint(*master, 10))
	for _, t := range tags {
		b.WriteByte('|')
		b.WriteString(t)
	}

	sum := sha256.Sum256([]byte(b.String()))
	v := binary.BigEndian.Uint64(sum[:8])
	return &v
}

// DeriveIteration is the Monte-Carlo iteration seed helper:
// derive(master, analysisTag, iterationIndex).
func DeriveIteration(master *uint64, analysisTag string, iteration int) *uint64 {
	return Derive(master, analysisTag, strconv.Itoa(iteration))
}

// DerivePolicy is the failure-policy seed helper:
// derive(master, "failure_policy", policyName).
func DerivePolicy(master *uint64, policyName string) *uint64 {
	return Derive(master, "failure_policy", policyName)
}
