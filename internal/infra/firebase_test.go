package infra

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFirebaseToken_Role(t *testing.T) {
	tok := &FirebaseToken{UID: "u1", Claims: map[string]interface{}{"role": "operator"}}
	assert.Equal(t, "operator", tok.Role())

	tok = &FirebaseToken{UID: "u2", Claims: map[string]interface{}{"role": 7}}
	assert.Empty(t, tok.Role())

	tok = &FirebaseToken{UID: "u3"}
	assert.Empty(t, tok.Role())
}
