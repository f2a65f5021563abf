package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"wtfSpaces/errs"
)

func TestParseSubject(t *testing.T) {
	t.Run("supported provider", func(t *testing.T) {
		provider, providerID, err := ParseSubject("twitter|42")
		require.NoError(t, err)
		assert.Equal(t, "twitter", provider)
		assert.Equal(t, "42", providerID)
	})

	t.Run("provider id may contain separators", func(t *testing.T) {
		provider, providerID, err := ParseSubject("twitter|a|b")
		require.NoError(t, err)
		assert.Equal(t, "twitter", provider)
		assert.Equal(t, "a|b", providerID)
	})

	invalid := map[string]string{
		"empty claim":          "",
		"no separator":         "twitter42",
		"missing provider":     "|42",
		"missing provider id":  "twitter|",
		"only separator":       "|",
		"unsupported provider": "github|42",
	}
	for name, subject := range invalid {
		t.Run(name, func(t *testing.T) {
			_, _, err := ParseSubject(subject)
			require.Error(t, err)
			assert.Equal(t, errs.EINVALID, errs.ErrorCode(err))
		})
	}
}
