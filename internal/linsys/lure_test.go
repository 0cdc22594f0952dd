package linsys_test

import (
	"errors"
	"math"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"gonum.org/v1/gonum/mat"

	"github.com/elvijs/linear-systems/internal/linsys"
)

func halfNegativeGain(y mat.Vector) (*mat.VecDense, error) {
	out := mat.NewVecDense(y.Len(), nil)
	out.ScaleVec(-0.5, y)
	return out, nil
}

func negLog(y mat.Vector) (*mat.VecDense, error) {
	return mat.NewVecDense(1, []float64{-math.Log(1 + mat.Norm(y, 2))}), nil
}

var _ = Describe("LureSystem", func() {
	var plant *linsys.LinearSystem

	BeforeEach(func() {
		var err error
		plant, err = linsys.Scalar(2, 1, 1, 0)
		Expect(err).NotTo(HaveOccurred())
	})

	Context("with linear feedback", func() {
		It("closes the loop through f(C x)", func() {
			sys, err := linsys.NewLure(plant, halfNegativeGain, "gain(-0.5)")
			Expect(err).NotTo(HaveOccurred())

			tr, err := sys.SolnFloats([]float64{1}, [][]float64{{0}, {0}, {1}})
			Expect(err).NotTo(HaveOccurred())

			// x[k+1] = 2x - x/2 + d = 1.5x + d
			Expect(tr.Len()).To(Equal(3))
			Expect(tr.StateRows()).To(Equal([][]float64{{1}, {1.5}, {2.25}}))
			Expect(tr.InputRows()).To(Equal([][]float64{{0}, {0}, {1}}))
		})

		It("records disturbances and no outputs", func() {
			sys, err := linsys.NewLure(plant, halfNegativeGain, "gain(-0.5)")
			Expect(err).NotTo(HaveOccurred())

			tr, err := sys.SolnFloats([]float64{1}, [][]float64{{0}})
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.HasOutputs()).To(BeFalse())
			Expect(tr.OutputNorms()).To(BeNil())
			Expect(tr.InputName).To(Equal("d"))
		})
	})

	Context("with logarithmic feedback", func() {
		It("matches the hand-computed first step", func() {
			sys, err := linsys.NewLure(plant, negLog, "neglog")
			Expect(err).NotTo(HaveOccurred())

			tr, err := sys.SolnFloats([]float64{1}, [][]float64{{0}, {0.5}})
			Expect(err).NotTo(HaveOccurred())
			Expect(tr.States[1].AtVec(0)).To(BeNumerically("~", 2-math.Log(2), 1e-12))
		})
	})

	Context("with non-zero feedthrough", func() {
		It("refuses to simulate", func() {
			withD, err := linsys.Scalar(2, 1, 1, 0.25)
			Expect(err).NotTo(HaveOccurred())
			sys, err := linsys.NewLure(withD, halfNegativeGain, "gain(-0.5)")
			Expect(err).NotTo(HaveOccurred())

			tr, err := sys.SolnFloats([]float64{1}, [][]float64{{0}})
			Expect(err).To(MatchError(linsys.ErrNonzeroFeedthrough))
			Expect(tr).To(BeNil())
		})
	})

	Context("with a misbehaving nonlinearity", func() {
		It("reports the wrong output size", func() {
			wide := func(mat.Vector) (*mat.VecDense, error) {
				return mat.NewVecDense(2, nil), nil
			}
			sys, err := linsys.NewLure(plant, wide, "wide")
			Expect(err).NotTo(HaveOccurred())

			_, err = sys.SolnFloats([]float64{1}, [][]float64{{0}, {0}})
			Expect(err).To(MatchError(linsys.ErrDimensionMismatch))
			var se *linsys.SimulationError
			Expect(errors.As(err, &se)).To(BeTrue())
			Expect(se.Step).To(Equal(0))
		})

		It("propagates its error", func() {
			boom := errors.New("boom")
			failing := func(mat.Vector) (*mat.VecDense, error) { return nil, boom }
			sys, err := linsys.NewLure(plant, failing, "failing")
			Expect(err).NotTo(HaveOccurred())

			_, err = sys.SolnFloats([]float64{1}, [][]float64{{0}, {0}})
			Expect(err).To(MatchError(boom))
		})
	})

	It("keeps iterating past overflow", func() {
		huge, err := linsys.Scalar(1e200, 1, 1, 0)
		Expect(err).NotTo(HaveOccurred())
		sys, err := linsys.NewLure(huge, halfNegativeGain, "gain(-0.5)")
		Expect(err).NotTo(HaveOccurred())

		tr, err := sys.SolnFloats([]float64{1e200}, [][]float64{{0}, {0}, {0}, {0}})
		Expect(err).NotTo(HaveOccurred())
		Expect(tr.Len()).To(Equal(4))
		Expect(tr.Inputs).To(HaveLen(4))

		step, diverged := tr.Diverged()
		Expect(diverged).To(BeTrue())
		Expect(step).To(Equal(1))
		Expect(tr.CheckFinite()).To(MatchError(linsys.ErrDiverged))
	})

	It("requires a nonlinearity", func() {
		_, err := linsys.NewLure(plant, nil, "none")
		Expect(err).To(MatchError(linsys.ErrNoNonlinearity))
	})

	It("prints the nonlinearity name", func() {
		sys, err := linsys.NewLure(plant, negLog, "neglog")
		Expect(err).NotTo(HaveOccurred())
		Expect(sys.String()).To(HaveSuffix("\nneglog"))
		Expect(sys.String()).To(HavePrefix("A = \n"))
	})
})
