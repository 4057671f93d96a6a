package cli

import (
	"testing"

	"github.com/goodwillcoding/configme/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSplitVariable(t *testing.T) {
	tests := []struct {
		name  string
		input string
		key   string
		value string
	}{
		{"colon separator", "port:8080", "port", "8080"},
		{"equal separator", "port=8080", "port", "8080"},
		{"colon first", "url:http://host/?a=b", "url", "http://host/?a=b"},
		{"equal first", "dsn=user:pass@host", "dsn", "user:pass@host"},
		{"empty value", "flag=", "flag", ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			key, value, err := SplitVariable(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.key, key)
			assert.Equal(t, tt.value, value)
		})
	}
}

func TestSplitVariableMissingSeparator(t *testing.T) {
	_, _, err := SplitVariable("port8080")
	require.Error(t, err)
	assert.True(t, errors.IsErrorCode(err, errors.ErrScriptArgument))
	assert.Equal(t, "List element 'port8080' is missing a separator, either ':' or '='", err.Error())
}

func TestParseVariables(t *testing.T) {
	vars, err := ParseVariables([]string{"a=1", "b:2", "a=3"})
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"a": "3", "b": "2"}, vars)

	_, err = ParseVariables([]string{"a=1", "broken"})
	assert.Error(t, err)
}

func TestCollectVariablesPrecedence(t *testing.T) {
	vars, err := collectVariables(
		map[string]string{"port": "80", "region": "eu"},
		[]string{"port=8080", "tier:web"},
		[]string{"tier=db"},
	)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"port": "8080", "region": "eu", "tier": "db"}, vars)
}
