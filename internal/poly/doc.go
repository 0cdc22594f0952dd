// Package poly provides real polynomials and rational functions in a
// single formal variable z.
//
// It covers what the transfer-function code needs from a computer
// algebra system:
//
//   - [Poly]: arithmetic, Horner evaluation, roots via companion matrix
//   - [Rational]: evaluation, inversion, common-factor cancellation ([Rational.Reduce], [GCD])
//   - [TransferMatrix]: a p×m matrix of [Rational] entries
//
// # Example
//
//	g, _ := poly.NewRational(poly.New(5.5, 1), poly.New(-0.5, 1))
//	fmt.Println(g)               // (z + 5.5)/(z - 0.5)
//	v := g.Eval(complex(1, 0))   // 13
package poly
