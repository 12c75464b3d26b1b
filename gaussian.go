package main

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/stat"
)

// DefaultRadius is the truncation radius used for the normalization sum when
// the caller does not pick one. It matches the reference computation; as a
// rule of thumb the radius should stay a few times larger than sigma or the
// sum silently underestimates the wrapped Gaussian.
const DefaultRadius = 1000

// ratioClampEpsilon bounds how far the normalization ratio may drift outside
// [0, 1] before arccos and still be treated as floating-point noise. Drift
// inside the band is clamped; anything larger flows through Acos as NaN and
// is rejected by the angle encoder.
const ratioClampEpsilon = 1e-12

// GaussianParams describes the discrete periodic Gaussian to prepare.
// Radius is the truncation radius of the normalization sum.
type GaussianParams struct {
	Mu     float64
	Sigma  float64
	Radius int
}

// DefaultGaussianParams mirrors the reference construction.
func DefaultGaussianParams() GaussianParams {
	return GaussianParams{Mu: 0, Sigma: 1, Radius: DefaultRadius}
}

func (p GaussianParams) validate() error {
	if p.Sigma <= 0 {
		return fmt.Errorf("gaussian params: sigma must be positive, got %g", p.Sigma)
	}
	if p.Radius <= 0 {
		return fmt.Errorf("gaussian params: truncation radius must be positive, got %d", p.Radius)
	}
	return nil
}

// NormSum evaluates f(mu, sigma, radius) = sum_{j=-radius}^{radius}
// exp(-(j-mu)^2 / sigma^2), the truncated normalizer of the periodic
// discrete Gaussian.
func NormSum(mu, sigma float64, radius int) float64 {
	sum := 0.0
	for j := -radius; j <= radius; j++ {
		d := (float64(j) - mu) / sigma
		sum += math.Exp(-d * d)
	}
	return sum
}

// MixingAngle returns the rotation parameter alpha in [0, pi] splitting one
// recursion level: cos^2(alpha) = f(mu/2, sigma/2) / f(mu, sigma). The ratio
// is clamped to [0, 1] within ratioClampEpsilon before arccos so that
// floating-point drift never produces NaN.
func MixingAngle(mu, sigma float64, radius int) float64 {
	ratio := NormSum(mu/2, sigma/2, radius) / NormSum(mu, sigma, radius)
	if ratio > 1 && ratio <= 1+ratioClampEpsilon {
		ratio = 1
	}
	if ratio < 0 && ratio >= -ratioClampEpsilon {
		ratio = 0
	}
	return math.Acos(math.Sqrt(ratio))
}

// Level is one step of the construction: the register wire it populates, the
// halved parameters it was computed from, its mixing angle and the angle's
// fixed-point approximation driving the rotation cascade.
type Level struct {
	Qubit  int
	Mu     float64
	Sigma  float64
	Angle  float64
	Approx AngleApproximation
}

// PlanLevels runs the level recursion as an explicit loop and returns one
// Level per register qubit, top level first. Pure computation: no circuit is
// touched. precision is the bit budget of each angle approximation.
func PlanLevels(p GaussianParams, precision, qubits int) ([]Level, error) {
	if err := p.validate(); err != nil {
		return nil, err
	}
	if precision <= 0 {
		return nil, fmt.Errorf("plan levels: precision must be positive, got %d", precision)
	}
	if qubits < 0 {
		return nil, fmt.Errorf("plan levels: qubit count must be non-negative, got %d", qubits)
	}

	levels := make([]Level, 0, qubits)
	mu, sigma := p.Mu, p.Sigma
	for q := 0; q < qubits; q++ {
		alpha := MixingAngle(mu, sigma, p.Radius)
		approx, err := ApproxAngle(alpha/(2*math.Pi), precision)
		if err != nil {
			return nil, fmt.Errorf("plan levels: qubit %d: %w", q, err)
		}
		levels = append(levels, Level{
			Qubit:  q,
			Mu:     mu,
			Sigma:  sigma,
			Angle:  alpha,
			Approx: approx,
		})
		mu /= 2
		sigma /= 2
	}
	return levels, nil
}

// cascadeTheta is the RY parameter carried by bit index i (0-based) of an
// angle approximation: 2*pi/2^i under the half-angle convention, so a full
// cascade rotates by twice the reconstructed angle and prepares
// cos(a)|0> + sin(a)|1>.
func cascadeTheta(i int) float64 {
	return math.Ldexp(2*math.Pi, -i)
}

// PrepareGaussianState extends c with the rotation cascades preparing the
// discrete periodic Gaussian over the given number of register qubits. The
// top-level cascade is uncontrolled; every deeper level is controlled on the
// previous level's qubit. Gates are appended sequentially after c's current
// last step. Returns c for chaining.
func PrepareGaussianState(c *Circuit, p GaussianParams, precision, qubits int) (*Circuit, error) {
	levels, err := PlanLevels(p, precision, qubits)
	if err != nil {
		return nil, err
	}
	if c.NumQubits < qubits {
		c.NumQubits = qubits
	}

	step := c.MaxSteps
	for _, lv := range levels {
		for i, bit := range lv.Approx.Bits {
			if bit == 0 {
				continue
			}
			theta := cascadeTheta(i)
			if lv.Qubit == 0 {
				c.AddParameterizedGate("RY", lv.Qubit, step, []float64{theta})
			} else {
				c.AddParameterizedGate("CRY", lv.Qubit, step, []float64{theta}, lv.Qubit-1)
			}
			step++
		}
	}
	return c, nil
}

// TargetDistribution returns the probability mass the construction aims for:
// the periodic discrete Gaussian over 2^qubits basis states, each state
// mapped to its centered representative before weighting. Normalized to sum
// to one.
func TargetDistribution(p GaussianParams, qubits int) []float64 {
	dim := 1 << qubits
	pmf := make([]float64, dim)
	for j := 0; j < dim; j++ {
		x := float64(j)
		if j > dim/2 {
			x -= float64(dim) // wrap to the nearest representative
		}
		d := (x - p.Mu) / p.Sigma
		pmf[j] = math.Exp(-d * d)
	}
	total := floats.Sum(pmf)
	if total > 0 {
		floats.Scale(1/total, pmf)
	}
	return pmf
}

// DistributionDivergence reports the Kullback-Leibler divergence from the
// simulated distribution to the target. Infinite when the simulation assigns
// zero mass to a state the target populates.
func DistributionDivergence(target, simulated []float64) float64 {
	return stat.KullbackLeibler(target, simulated)
}
