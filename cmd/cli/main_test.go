package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResolveOutPath(t *testing.T) {
	// Config output applies only when --out was not given.
	assert.Equal(t, "from-config.csv", resolveOutPath("results/ledger.csv", false, "from-config.csv"))

	// An explicit --out wins even when it matches the flag default.
	assert.Equal(t, "results/ledger.csv", resolveOutPath("results/ledger.csv", true, "from-config.csv"))
	assert.Equal(t, "explicit.csv", resolveOutPath("explicit.csv", true, "from-config.csv"))

	// No config output: the flag value stands.
	assert.Equal(t, "results/ledger.csv", resolveOutPath("results/ledger.csv", false, ""))
}
