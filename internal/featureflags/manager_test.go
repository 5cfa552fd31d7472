package featureflags

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEnabled_BooleanValues(t *testing.T) {
	m := NewManager("a=on,b=off,c=true,d=false,e=1,f=0")

	assert.True(t, m.Enabled("a", 1))
	assert.True(t, m.Enabled("c", 1))
	assert.True(t, m.Enabled("e", 1))
	assert.False(t, m.Enabled("b", 1))
	assert.False(t, m.Enabled("d", 1))
	assert.False(t, m.Enabled("f", 1))
	assert.False(t, m.Enabled("missing", 1))
}

func TestEnabled_PercentageValues(t *testing.T) {
	m := NewManager("always=100%,never=0%,canary=25%,junk=abc%")

	assert.True(t, m.Enabled("always", 1))
	assert.False(t, m.Enabled("never", 1))
	assert.False(t, m.Enabled("junk", 1))

	first := m.Enabled("canary", 42)
	for i := 0; i < 5; i++ {
		assert.Equal(t, first, m.Enabled("canary", 42), "rollout evaluation must be deterministic per user")
	}

	assert.False(t, m.Enabled("canary", 0), "percentage rollout requires non-zero userID")
}

func TestDefaults(t *testing.T) {
	assert.True(t, NewManager("").Enabled(GitHubProxy, 0))
	assert.False(t, NewManager("GitHub_Proxy=off").Enabled(GitHubProxy, 0))

	var nilManager *Manager
	assert.False(t, nilManager.Enabled(GitHubProxy, 0))
}

func TestParseAndSnapshot(t *testing.T) {
	m := NewManager(" bad ,x=on, y = 20% ,z=off ")

	raw := m.Raw()
	assert.Len(t, raw, 4)
	assert.Equal(t, "on", raw["x"])
	assert.Equal(t, "20%", raw["y"])
	assert.Equal(t, "off", raw["z"])
	assert.Equal(t, "on", raw[GitHubProxy])

	snap := m.Snapshot(123)
	assert.Len(t, snap, 4)
	assert.True(t, snap["x"])
	assert.False(t, snap["z"])
}
