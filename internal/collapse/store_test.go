package collapse

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/oakwood-commons/jsonpane/internal/value"
)

func TestStoreDefaultsExpanded(t *testing.T) {
	s := NewStore()
	assert.False(t, s.IsCollapsed(value.Path{value.Index(0)}))
	assert.Equal(t, 0, s.Len())
}

func TestStoreSetAndToggle(t *testing.T) {
	s := NewStore()
	p := value.Path{value.Index(0), value.Key("b")}

	s.Set(p, true)
	assert.True(t, s.IsCollapsed(p))
	assert.Equal(t, 1, s.Len())

	// Expanding removes the entry so memory tracks interaction only.
	s.Set(p, false)
	assert.False(t, s.IsCollapsed(p))
	assert.Equal(t, 0, s.Len())

	assert.True(t, s.Toggle(p))
	assert.True(t, s.IsCollapsed(p))
	assert.False(t, s.Toggle(p))
	assert.False(t, s.IsCollapsed(p))
	assert.Equal(t, 0, s.Len())
}

func TestStoreDistinctPaths(t *testing.T) {
	s := NewStore()
	s.Set(value.Path{value.Index(0), value.Key("a")}, true)

	assert.False(t, s.IsCollapsed(value.Path{value.Index(1), value.Key("a")}))
	assert.False(t, s.IsCollapsed(value.Path{value.Index(0), value.Key("a"), value.Index(0)}))
}

func TestStoreClear(t *testing.T) {
	s := NewStore()
	s.Set(value.Path{value.Index(0)}, true)
	s.Set(value.Path{value.Index(1)}, true)

	s.Clear()
	assert.Equal(t, 0, s.Len())
	assert.False(t, s.IsCollapsed(value.Path{value.Index(0)}))
}

func TestStoreConcurrentReads(t *testing.T) {
	s := NewStore()
	p := value.Path{value.Index(0), value.Key("big")}
	s.Set(p, true)

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 1000; j++ {
				_ = s.IsCollapsed(p)
			}
		}()
	}
	wg.Wait()
	assert.True(t, s.IsCollapsed(p))
}
