package statushttp

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNormalizeBasePath(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "", want: "/"},
		{in: "  ", want: "/"},
		{in: "/", want: "/"},
		{in: "/api", want: "/api"},
		{in: "api", want: "/api"},
		{in: "/api/", want: "/api"},
	}
	for _, tc := range cases {
		require.Equal(t, tc.want, normalizeBasePath(tc.in), "input %q", tc.in)
	}
}

func TestJoinPath(t *testing.T) {
	require.Equal(t, "/claude/status", joinPath("", "/claude/status"))
	require.Equal(t, "/api/claude/status", joinPath("/api", "claude/status"))
	require.Equal(t, "/api", joinPath("/api/", ""))
}
