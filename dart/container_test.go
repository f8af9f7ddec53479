package dart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cgogn-go/cmaps/orbit"
)

func TestNewDartIsFixedPointOfEveryPhi(t *testing.T) {
	c, err := NewContainer(3)
	require.NoError(t, err)
	d := c.NewDart()
	assert.Equal(t, d, c.Phi1(d))
	assert.Equal(t, d, c.Phi1Inv(d))
	assert.Equal(t, d, c.Phi2(d))
	assert.Equal(t, d, c.Phi3(d))
}

func TestPhi1SewBuildsACycle(t *testing.T) {
	c, err := NewContainer(2)
	require.NoError(t, err)
	d0 := c.NewDart()
	d1 := c.NewDart()
	d2 := c.NewDart()
	// Phi1Sew splices cycles, so each call inserts a fixed-point dart
	// after its first argument: two calls already close the 3-cycle, and
	// a third Phi1Sew(d2, d0) would split it again.
	c.Phi1Sew(d0, d1)
	c.Phi1Sew(d1, d2)

	assert.Equal(t, d1, c.Phi1(d0))
	assert.Equal(t, d2, c.Phi1(d1))
	assert.Equal(t, d0, c.Phi1(d2))
	assert.Equal(t, d0, c.Phi1Inv(d1))
	assert.Equal(t, d2, c.Phi1Inv(d0))
}

func TestPhi1UnsewRestoresFixedPoint(t *testing.T) {
	c, err := NewContainer(1)
	require.NoError(t, err)
	d0 := c.NewDart()
	d1 := c.NewDart()
	c.Phi1Sew(d0, d1)
	c.Phi1Unsew(d0)

	assert.Equal(t, d0, c.Phi1(d0))
	assert.Equal(t, d0, c.Phi1Inv(d0))
	assert.Equal(t, d1, c.Phi1(d1))
}

func TestPhi2SewIsInvolution(t *testing.T) {
	c, err := NewContainer(2)
	require.NoError(t, err)
	d := c.NewDart()
	e := c.NewDart()
	c.Phi2Sew(d, e)
	assert.Equal(t, e, c.Phi2(d))
	assert.Equal(t, d, c.Phi2(e))

	c.Phi2Unsew(d)
	assert.Equal(t, d, c.Phi2(d))
	assert.Equal(t, e, c.Phi2(e))
}

func TestEmbeddingRoundTrip(t *testing.T) {
	c, err := NewContainer(2)
	require.NoError(t, err)
	d := c.NewDart()

	_, ok := c.EmbeddingOf(d, orbit.KindVertex)
	assert.False(t, ok)

	c.SetEmbedding(d, orbit.KindVertex, 7)
	slot, ok := c.EmbeddingOf(d, orbit.KindVertex)
	require.True(t, ok)
	assert.Equal(t, uint32(7), slot)
}

func TestDeleteDartRejectsNil(t *testing.T) {
	c, err := NewContainer(1)
	require.NoError(t, err)
	assert.Error(t, c.DeleteDart(NilDart))
}
