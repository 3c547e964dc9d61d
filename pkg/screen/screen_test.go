package screen

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type homeScreen struct{}

type detailScreen struct {
	ID int
}

type taggedScreen struct {
	Tag string
}

func (s taggedScreen) ScreenKey() string { return "tagged:" + s.Tag }

func TestKey_TypeDerived(t *testing.T) {
	assert.Equal(t, "github.com/bft-labs/pathfinder/pkg/screen.homeScreen", Key(homeScreen{}))
	assert.Equal(t, Key(detailScreen{ID: 1}), Key(detailScreen{ID: 2}), "payload must not affect the key")
	assert.Equal(t, Key(detailScreen{}), Key(&detailScreen{}), "pointer and value share a key")
}

func TestKey_Override(t *testing.T) {
	assert.Equal(t, "tagged:a", Key(taggedScreen{Tag: "a"}))
	assert.NotEqual(t, Key(taggedScreen{Tag: "a"}), Key(taggedScreen{Tag: "b"}))
	assert.Equal(t, TypeKey(taggedScreen{}), "github.com/bft-labs/pathfinder/pkg/screen.taggedScreen")
}

func TestKey_BuiltinAndNil(t *testing.T) {
	assert.Equal(t, "string", Key("plain"))
	assert.Equal(t, "<nil>", Key(nil))
	assert.Equal(t, "[]int", TypeKey([]int{1}))
}

func TestRoute(t *testing.T) {
	r := Route{Name: "Profile", Params: map[string]string{"tab": "posts", "id": "7"}}

	assert.Equal(t, "Profile", Key(r))
	assert.Equal(t, "7", r.Param("id"))
	assert.Empty(t, r.Param("missing"))
	assert.Equal(t, "Profile?id=7&tab=posts", r.String())
	assert.Equal(t, "Home", Route{Name: "Home"}.String())
}

func TestKeys(t *testing.T) {
	got := Keys([]Screen{Route{Name: "A"}, Route{Name: "B"}})
	assert.Equal(t, []string{"A", "B"}, got)
}
