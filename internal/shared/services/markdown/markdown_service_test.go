package markdown

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToHTMLSanitized(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("**Welcome back!** Visit [our site](https://club.example).")
	require.NoError(t, err)

	assert.Contains(t, out, "<strong>Welcome back!</strong>")
	assert.Contains(t, out, `href="https://club.example"`)
}

func TestSanitizeStripsScripts(t *testing.T) {
	svc := NewService()

	out, err := svc.ToHTMLSanitized("hello <script>alert('x')</script> world")
	require.NoError(t, err)

	assert.False(t, strings.Contains(out, "<script>"), "script tags must be stripped, got: %s", out)
	assert.Contains(t, out, "hello")
}
