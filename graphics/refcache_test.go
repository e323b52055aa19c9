package graphics

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type fakeResource struct {
	destroyed int
}

func (f *fakeResource) Destroy() { f.destroyed++ }

func TestRefCacheAcquireRelease(t *testing.T) {
	cache := newRefCache[*fakeResource]()
	res := &fakeResource{}
	cache.insert("crate", res)

	got, ok := cache.acquire("crate")
	assert.True(t, ok)
	assert.Same(t, res, got)

	// Two references now; first release must not destroy.
	cache.release("crate")
	assert.Equal(t, 0, res.destroyed)
	assert.Equal(t, 1, cache.len())

	cache.release("crate")
	assert.Equal(t, 1, res.destroyed)
	assert.Equal(t, 0, cache.len())
}

func TestRefCacheDestroyOnce(t *testing.T) {
	cache := newRefCache[*fakeResource]()
	res := &fakeResource{}
	cache.insert("sail", res)

	// N acquires need N+1 releases total before destruction.
	for i := 0; i < 5; i++ {
		_, ok := cache.acquire("sail")
		assert.True(t, ok)
	}
	for i := 0; i < 6; i++ {
		cache.release("sail")
	}
	assert.Equal(t, 1, res.destroyed)

	// Further releases of the now-unknown name are no-ops.
	cache.release("sail")
	assert.Equal(t, 1, res.destroyed)
}

func TestRefCacheUnknownRelease(t *testing.T) {
	cache := newRefCache[*fakeResource]()
	assert.NotPanics(t, func() { cache.release("never-registered") })
}

func TestRefCacheAcquireUnknown(t *testing.T) {
	cache := newRefCache[*fakeResource]()
	_, ok := cache.acquire("missing")
	assert.False(t, ok)
}

func TestRefCacheDestroyAll(t *testing.T) {
	cache := newRefCache[*fakeResource]()
	a := &fakeResource{}
	b := &fakeResource{}
	cache.insert("a", a)
	cache.insert("b", b)
	cache.acquire("a") // extra reference must not survive destroyAll

	cache.destroyAll()
	assert.Equal(t, 1, a.destroyed)
	assert.Equal(t, 1, b.destroyed)
	assert.Equal(t, 0, cache.len())
}
