package platform

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTransform_Rotate(t *testing.T) {
	assert.Equal(t, Transform90, TransformNormal.Rotate(1))
	assert.Equal(t, TransformNormal, Transform270.Rotate(1))
	assert.Equal(t, Transform270, TransformNormal.Rotate(-1))
	assert.Equal(t, Transform180, Transform90.Rotate(5))
	assert.Equal(t, TransformFlipped270, TransformFlipped.Rotate(-1), "reflection kept")
	assert.Equal(t, TransformFlipped, TransformFlipped90.Rotate(3))
}

func TestTransform_ParseRoundTrip(t *testing.T) {
	for tr := TransformNormal; tr <= TransformFlipped270; tr++ {
		got, ok := ParseTransform(tr.String())
		assert.True(t, ok)
		assert.Equal(t, tr, got)
	}
	_, ok := ParseTransform("sideways")
	assert.False(t, ok)
}
