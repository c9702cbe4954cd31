package linalg

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/echoflaresat/earthframes/vectors"
)

func mustRows(t *testing.T, rows [][]float64) Matrix {
	t.Helper()
	m, err := FromRows(rows)
	require.NoError(t, err)
	return m
}

func assertMatrixInDelta(t *testing.T, want [][]float64, got Matrix, tol float64) {
	t.Helper()
	r, c := got.Dims()
	require.Equal(t, len(want), r)
	require.Equal(t, len(want[0]), c)
	for i := range want {
		for j := range want[i] {
			assert.InDelta(t, want[i][j], got.At(i, j), tol, "entry [%d][%d]", i, j)
		}
	}
}

func TestFromRows(t *testing.T) {
	m := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	r, c := m.Dims()
	assert.Equal(t, 2, r)
	assert.Equal(t, 3, c)
	assert.Equal(t, [][]float64{{1, 2, 3}, {4, 5, 6}}, m.Rows())

	_, err := FromRows([][]float64{{1, 2}, {3}})
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = FromRows(nil)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestIdentityAndGenerate(t *testing.T) {
	id := Identity(3)
	g, err := Generate(3, 3, func(i, j int) float64 {
		if i == j {
			return 1
		}
		return 0
	})
	require.NoError(t, err)
	assert.True(t, id.EqualApprox(g, 0))

	_, err = Generate(0, 3, func(i, j int) float64 { return 0 })
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestMul(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}})
	b := mustRows(t, [][]float64{{7, 8}, {9, 10}, {11, 12}})

	p, err := a.Mul(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{58, 64}, {139, 154}}, p.Rows())

	_, err = a.Mul(a)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestAddSub(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2}, {3, 4}})
	b := mustRows(t, [][]float64{{4, 3}, {2, 1}})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{5, 5}, {5, 5}}, sum.Rows())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, [][]float64{{-3, -1}, {1, 3}}, diff.Rows())

	c := mustRows(t, [][]float64{{1, 2, 3}})
	_, err = a.Add(c)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
	_, err = a.Sub(c)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestTransposeAndDet(t *testing.T) {
	a := mustRows(t, [][]float64{{2, 0, 1}, {1, 3, 2}, {1, 1, 2}})
	assert.Equal(t, [][]float64{{2, 1, 1}, {0, 3, 1}, {1, 2, 2}}, a.Transpose().Rows())

	det, err := a.Det()
	require.NoError(t, err)
	assert.InDelta(t, 6.0, det, 1e-12)

	_, err = mustRows(t, [][]float64{{1, 2, 3}}).Det()
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestMulVec(t *testing.T) {
	v, err := Identity(3).MulVec(vectors.Vec3{X: 1, Y: 2, Z: 3})
	require.NoError(t, err)
	assert.Equal(t, vectors.Vec3{X: 1, Y: 2, Z: 3}, v)

	_, err = Identity(2).MulVec(vectors.Vec3{})
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestRotate(t *testing.T) {
	base := [][]float64{{2, 3, 2}, {3, 2, 3}, {3, 4, 5}}
	const phi = 0.3456789

	cases := []struct {
		axis Axis
		want [][]float64
	}{
		{X, [][]float64{
			{2, 3, 2},
			{3.839043388235612460, 3.237033249594111899, 4.516714379005982719},
			{1.806030415924501684, 3.085711545336372503, 3.687721683977873065},
		}},
		{Y, [][]float64{
			{0.8651847818978158, 1.4671949205393162, 0.1875137911274456},
			{3, 2, 3},
			{3.500207892850427, 4.779889022262298, 5.3818991609037985},
		}},
		{Z, [][]float64{
			{2.898197754208926769, 3.500207892850427330, 2.898197754208926769},
			{2.144865911309686813, 0.865184781897815993, 2.144865911309686813},
			{3, 4, 5},
		}},
	}

	for _, c := range cases {
		t.Run(c.axis.String(), func(t *testing.T) {
			got, err := mustRows(t, base).Rotate(phi, c.axis)
			require.NoError(t, err)
			assertMatrixInDelta(t, c.want, got, 1e-12)
		})
	}

	_, err := mustRows(t, [][]float64{{1, 2}}).Rotate(phi, X)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestRotationMatrixIsOrthonormal(t *testing.T) {
	for _, axis := range []Axis{X, Y, Z} {
		r := RotationMatrix(1.234, axis)
		det, err := r.Det()
		require.NoError(t, err)
		assert.InDelta(t, 1.0, det, 1e-12)

		rrt, err := r.Mul(r.Transpose())
		require.NoError(t, err)
		assert.True(t, rrt.EqualApprox(Identity(3), 1e-12))
	}
}

func TestCompose(t *testing.T) {
	got, err := Compose(Identity(3),
		Rotation{Angle: math.Pi / 2, Axis: Z},
		Rotation{Angle: -math.Pi / 2, Axis: Z},
	)
	require.NoError(t, err)
	assert.True(t, got.EqualApprox(Identity(3), 1e-15))

	// frame rotation: the x axis seen from a frame turned +90° about z
	// points along -y
	r, err := Identity(3).Rotate(math.Pi/2, Z)
	require.NoError(t, err)
	v, err := r.MulVec(vectors.Vec3{X: 1})
	require.NoError(t, err)
	assert.InDelta(t, 0, v.X, 1e-15)
	assert.InDelta(t, -1, v.Y, 1e-15)
}

func TestSolve(t *testing.T) {
	a := mustRows(t, [][]float64{{2, 1, -1}, {-3, -1, 2}, {-2, 1, 2}})
	x, err := a.Solve([]float64{8, -11, -3})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{2, 3, -1}, x, 1e-12)
}

func TestSolveNeedsRowSwap(t *testing.T) {
	a := mustRows(t, [][]float64{{0, 1}, {1, 0}})
	x, err := a.Solve([]float64{3, 4})
	require.NoError(t, err)
	assert.InDeltaSlice(t, []float64{4, 3}, x, 1e-15)
}

func TestSolveSingular(t *testing.T) {
	a := mustRows(t, [][]float64{{1, 2, 3}, {2, 4, 6}, {1, 0, 1}})
	_, err := a.Solve([]float64{1, 2, 3})
	assert.ErrorIs(t, err, ErrSingularSystem)

	tiny := mustRows(t, [][]float64{{1e-7, 0}, {0, 1}})
	_, err = tiny.Solve([]float64{1, 1})
	assert.ErrorIs(t, err, ErrSingularSystem)
}

func TestSolveDimensions(t *testing.T) {
	_, err := mustRows(t, [][]float64{{1, 2, 3}, {4, 5, 6}}).Solve([]float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidDimensions)

	_, err = Identity(3).Solve([]float64{1, 2})
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestSolveVec3InvertsRotation(t *testing.T) {
	r, err := Compose(Identity(3),
		Rotation{Angle: 0.3, Axis: Z},
		Rotation{Angle: -0.2, Axis: Y},
		Rotation{Angle: 0.1, Axis: X},
	)
	require.NoError(t, err)

	v := vectors.Vec3{X: 3451956.8821, Y: 3810279.8175, Z: 3761878.593}
	w, err := r.MulVec(v)
	require.NoError(t, err)
	back, err := r.SolveVec3(w)
	require.NoError(t, err)
	assert.InDelta(t, 0, vectors.Distance(v, back), 1e-6)
}
