package github

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRepo(t *testing.T) {
	owner, name, err := ParseRepo("octocat/hello-world")
	require.NoError(t, err)
	assert.Equal(t, "octocat", owner)
	assert.Equal(t, "hello-world", name)
}

func TestParseRepo_Invalid(t *testing.T) {
	tests := []string{"", "noslash", "/repo", "owner/", "a/b/c"}
	for _, repo := range tests {
		t.Run(repo, func(t *testing.T) {
			_, _, err := ParseRepo(repo)
			assert.Error(t, err)
		})
	}
}

func TestNewClient(t *testing.T) {
	c, err := NewClient("owner/repo", "token", nil)
	require.NoError(t, err)
	assert.Equal(t, "owner", c.Owner)
	assert.Equal(t, "repo", c.Repo)
}

func TestNewClient_InvalidRepo(t *testing.T) {
	_, err := NewClient("not-a-repo", "token", nil)
	assert.Error(t, err)
}

func TestResolveToken_ExplicitWins(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	assert.Equal(t, "explicit", ResolveToken("explicit"))
}

func TestResolveToken_Env(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "from-env")
	assert.Equal(t, "from-env", ResolveToken(""))
}

func TestResolveToken_Empty(t *testing.T) {
	t.Setenv("GITHUB_TOKEN", "")
	assert.Equal(t, "", ResolveToken(""))
}
