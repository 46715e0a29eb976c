package psychroflow

import "math"

const (
	// iteration budget of the bracketed solver
	brentMaxIter = 100
	// absolute tolerance on the root position, degree C resp. kg/s
	brentXTol = 1e-12
	// float64 machine epsilon
	brentEps = 2.220446049250313e-16
)

/*
Find a root of fun inside the bracket [a, b] with Brent's method
(inverse quadratic interpolation guarded by bisection).

	Args:
	    fun: continuous function whose sign differs at a and b
	    a: lower bracket limit
	    b: upper bracket limit

	Returns:
	    the root position

	Notes:
	    Same method the reference implementation selects through
	    scipy.optimize.root_scalar(method="brentq").
	    Fails with ConvergenceError when the bracket contains no sign
	    change or the iteration budget is exhausted.
*/
func brentq(fun func(float64) float64, a, b float64) (float64, error) {
	fa := fun(a)
	fb := fun(b)

	if fa == 0.0 {
		return a, nil
	}
	if fb == 0.0 {
		return b, nil
	}
	if (fa > 0) == (fb > 0) {
		return 0, &ConvergenceError{
			Msg:      "root is not bracketed",
			Bracket:  [2]float64{a, b},
			Residual: fb,
		}
	}

	c, fc := a, fa
	d := b - a
	e := d

	for i := 0; i < brentMaxIter; i++ {
		if math.Abs(fc) < math.Abs(fb) {
			a, b, c = b, c, b
			fa, fb, fc = fb, fc, fb
		}

		tol := 2.0*brentEps*math.Abs(b) + 0.5*brentXTol
		xm := 0.5 * (c - b)

		if math.Abs(xm) <= tol || fb == 0.0 {
			return b, nil
		}

		if math.Abs(e) < tol || math.Abs(fa) <= math.Abs(fb) {
			// interpolation unusable, fall back to bisection
			d = xm
			e = d
		} else {
			s := fb / fa
			var p, q float64
			if a == c {
				// secant step
				p = 2.0 * xm * s
				q = 1.0 - s
			} else {
				// inverse quadratic interpolation
				q = fa / fc
				r := fb / fc
				p = s * (2.0*xm*q*(q-r) - (b-a)*(r-1.0))
				q = (q - 1.0) * (r - 1.0) * (s - 1.0)
			}
			if p > 0 {
				q = -q
			}
			p = math.Abs(p)
			if 2.0*p < math.Min(3.0*xm*q-math.Abs(tol*q), math.Abs(e*q)) {
				e = d
				d = p / q
			} else {
				d = xm
				e = d
			}
		}

		a, fa = b, fb
		if math.Abs(d) > tol {
			b += d
		} else if xm > 0 {
			b += tol
		} else {
			b -= tol
		}
		fb = fun(b)

		if (fb > 0) == (fc > 0) {
			c, fc = a, fa
			d = b - a
			e = d
		}
	}

	return 0, &ConvergenceError{
		Msg:      "root not converged within iteration budget",
		Bracket:  [2]float64{b, c},
		Residual: fb,
	}
}
