package linsys_test

import (
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/linsys"
)

// blockExp returns exp([[A, B], [0, 0]] delta) split into A_d and B_d.
func blockExp(a, b *mat.Dense, delta float64) (*mat.Dense, *mat.Dense) {
	n, _ := a.Dims()
	_, m := b.Dims()
	blk := mat.NewDense(n+m, n+m, nil)
	blk.Slice(0, n, 0, n).(*mat.Dense).Copy(a)
	blk.Slice(0, n, n, n+m).(*mat.Dense).Copy(b)
	blk.Scale(delta, blk)

	var e mat.Dense
	e.Exp(blk)
	return mat.DenseCopyOf(e.Slice(0, n, 0, n)), mat.DenseCopyOf(e.Slice(0, n, n, n+m))
}

var _ = Describe("Discretize", func() {
	It("matches the closed form for a scalar system", func() {
		sys, err := linsys.Scalar(-1, 1, 1, 0)
		Expect(err).NotTo(HaveOccurred())

		d, err := sys.Discretize(0.1)
		Expect(err).NotTo(HaveOccurred())
		Expect(d.A().At(0, 0)).To(BeNumerically("~", math.Exp(-0.1), 1e-12))
		Expect(d.B().At(0, 0)).To(BeNumerically("~", 1-math.Exp(-0.1), 1e-12))
	})

	It("matches the block-matrix exponential", func() {
		sys, err := linsys.FromRows(
			[][]float64{{0, 1}, {-2, -3}},
			[][]float64{{0}, {1}},
			[][]float64{{1, 0}},
			[][]float64{{0}},
		)
		Expect(err).NotTo(HaveOccurred())

		const delta = 0.5
		d, err := sys.Discretize(delta)
		Expect(err).NotTo(HaveOccurred())

		wantA, wantB := blockExp(sys.A(), sys.B(), delta)
		Expect(mat.EqualApprox(d.A(), wantA, 1e-10)).To(BeTrue())
		Expect(mat.EqualApprox(d.B(), wantB, 1e-10)).To(BeTrue())
		Expect(mat.Equal(d.C(), sys.C())).To(BeTrue())
		Expect(mat.Equal(d.D(), sys.D())).To(BeTrue())
	})

	It("tends to the identity as delta shrinks", func() {
		sys, err := linsys.FromRows(
			[][]float64{{1, 0, 0}, {0, 2, 0}, {0, 0, 3}},
			[][]float64{{1}, {1}, {1}},
			[][]float64{{1, 2, 3}},
			[][]float64{{10}},
		)
		Expect(err).NotTo(HaveOccurred())

		d, err := sys.Discretize(1e-9)
		Expect(err).NotTo(HaveOccurred())

		eye := mat.NewDiagDense(3, []float64{1, 1, 1})
		Expect(mat.EqualApprox(d.A(), eye, 1e-8)).To(BeTrue())
		Expect(mat.Norm(d.B(), math.Inf(1))).To(BeNumerically("<", 1e-8))
	})

	DescribeTable("rejects invalid intervals",
		func(delta float64) {
			sys, err := linsys.Scalar(-1, 1, 1, 0)
			Expect(err).NotTo(HaveOccurred())
			_, err = sys.Discretize(delta)
			Expect(err).To(MatchError(linsys.ErrInvalidDelta))
		},
		Entry("zero", 0.0),
		Entry("negative", -0.1),
		Entry("NaN", math.NaN()),
		Entry("infinite", math.Inf(1)),
	)
})

var _ = Describe("StabilityBoundary", func() {
	It("samples 1/G on the unit circle", func() {
		sys, err := linsys.Scalar(0.5, 3, 2, 1)
		Expect(err).NotTo(HaveOccurred())

		points, anchor, err := sys.StabilityBoundary(0)
		Expect(err).NotTo(HaveOccurred())
		Expect(points).To(HaveLen(linsys.DefaultBoundaryPoints + 1))

		// 1/G(z) = (z - 0.5)/(z + 5.5)
		Expect(real(points[0])).To(BeNumerically("~", 0.5/6.5, 1e-12))
		Expect(imag(points[0])).To(BeNumerically("~", 0, 1e-12))
		Expect(real(anchor)).To(BeNumerically("~", -0.5/5.5, 1e-12))
		Expect(real(points[linsys.DefaultBoundaryPoints])).To(BeNumerically("~", real(points[0]), 1e-9))
	})

	It("is only defined for SISO systems", func() {
		sys, err := linsys.FromRows(
			[][]float64{{1, 0, 0}, {0, 1, 0}, {0, 0, 1}},
			[][]float64{{1, 2}, {3, 4}, {5, 6}},
			[][]float64{{1, 2, 3}},
			[][]float64{{100, 1000}},
		)
		Expect(err).NotTo(HaveOccurred())
		_, _, err = sys.StabilityBoundary(10)
		Expect(err).To(MatchError(linsys.ErrNotSISO))
	})
})
