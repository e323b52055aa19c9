package assets

import (
	"testing"

	"github.com/go-gl/mathgl/mgl32"
	"github.com/qmuntal/gltf"
	"github.com/stretchr/testify/assert"
)

func TestNodeTransformDefaultsToIdentity(t *testing.T) {
	m := nodeTransform(&gltf.Node{})
	assert.Equal(t, mgl32.Ident4(), m)
}

func TestNodeTransformTranslation(t *testing.T) {
	n := &gltf.Node{Translation: [3]float64{1, 2, 3}}
	m := nodeTransform(n)
	assert.InDelta(t, 1, float64(m[12]), 1e-6)
	assert.InDelta(t, 2, float64(m[13]), 1e-6)
	assert.InDelta(t, 3, float64(m[14]), 1e-6)
}

func TestRootNodesFromDefaultScene(t *testing.T) {
	scene := 0
	doc := &gltf.Document{
		Scene:  &scene,
		Scenes: []*gltf.Scene{{Nodes: []int{2, 0}}},
		Nodes:  []*gltf.Node{{}, {}, {}},
	}
	assert.Equal(t, []int{2, 0}, rootNodes(doc))
}

func TestRootNodesParentless(t *testing.T) {
	doc := &gltf.Document{
		Nodes: []*gltf.Node{
			{Children: []int{1}},
			{},
			{},
		},
	}
	assert.Equal(t, []int{0, 2}, rootNodes(doc))
}
