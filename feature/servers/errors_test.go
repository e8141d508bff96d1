package servers

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateName(t *testing.T) {
	valid := []string{"PROD-1", "alpha", "site.eu", "a b"}
	for _, name := range valid {
		assert.NoError(t, ValidateName(name), name)
	}

	invalid := []string{"", "  ", ".", "..", "a/b", `a\b`, "x.json", "X.JSON", "old.deleted.20250101_000000"}
	for _, name := range invalid {
		assert.ErrorIs(t, ValidateName(name), ErrInvalidName, name)
	}
}
