package sim

import (
	"fmt"
	"hash/fnv"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/stat/distuv"
)

// === ContinuousSampler ===

// ContinuousSampler draws real values from a probability distribution. It is
// the sole source of non-determinism in the core: a StorageDevice adds one
// sample to every seek, so reproducibility of a run is fully attributable to
// the injected sampler.
type ContinuousSampler interface {
	Sample() float64
}

// ZeroSampler is the default no-jitter sampler: every sample is 0, keeping
// seek times fully deterministic.
type ZeroSampler struct{}

func (ZeroSampler) Sample() float64 { return 0 }

// distSampler adapts any gonum distribution to ContinuousSampler.
type distSampler struct {
	dist distuv.Rander
}

func (s distSampler) Sample() float64 { return s.dist.Rand() }

// NewNormalSampler returns a sampler drawing from Normal(mu, sigma) using the
// given deterministic source.
func NewNormalSampler(mu, sigma float64, src rand.Source) ContinuousSampler {
	return distSampler{dist: distuv.Normal{Mu: mu, Sigma: sigma, Src: src}}
}

// NewExponentialSampler returns a sampler drawing from Exp(rate) using the
// given deterministic source.
func NewExponentialSampler(rate float64, src rand.Source) ContinuousSampler {
	return distSampler{dist: distuv.Exponential{Rate: rate, Src: src}}
}

// NewUniformSampler returns a sampler drawing uniformly from [min, max) using
// the given deterministic source.
func NewUniformSampler(min, max float64, src rand.Source) ContinuousSampler {
	return distSampler{dist: distuv.Uniform{Min: min, Max: max, Src: src}}
}

// === SimulationKey / PartitionedRNG ===

// SimulationKey uniquely identifies a reproducible simulation run. Two runs
// with the same SimulationKey and identical configuration MUST produce
// bit-for-bit identical results.
type SimulationKey int64

// NewSimulationKey creates a SimulationKey from a seed value.
func NewSimulationKey(seed int64) SimulationKey {
	return SimulationKey(seed)
}

// PartitionedRNG provides deterministic, isolated random sources per named
// subsystem (typically one per storage device), so that adding a device to a
// scenario never perturbs the sample streams of the others.
//
// Derivation formula: masterSeed XOR fnv1a64(subsystemName).
//
// Thread-safety: NOT thread-safe. Must be called from a single goroutine.
type PartitionedRNG struct {
	key     SimulationKey
	sources map[string]rand.Source
}

// NewPartitionedRNG creates a PartitionedRNG from a SimulationKey.
func NewPartitionedRNG(key SimulationKey) *PartitionedRNG {
	return &PartitionedRNG{
		key:     key,
		sources: make(map[string]rand.Source),
	}
}

// ForSubsystem returns a deterministically-seeded source for the named
// subsystem. The same name always returns the same source instance (cached).
// Never returns nil.
func (p *PartitionedRNG) ForSubsystem(name string) rand.Source {
	if src, ok := p.sources[name]; ok {
		return src
	}
	src := rand.NewSource(uint64(p.key) ^ fnv1a64(name))
	p.sources[name] = src
	return src
}

// fnv1a64 computes the FNV-1a 64-bit hash of s.
func fnv1a64(s string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(s))
	return h.Sum64()
}

// === JitterSpec ===

// JitterSpec selects a seek-jitter distribution in a scenario file. An empty
// Dist (or "none") means no jitter.
type JitterSpec struct {
	Dist  string  `yaml:"dist"`
	Mu    float64 `yaml:"mu"`
	Sigma float64 `yaml:"sigma"`
	Rate  float64 `yaml:"rate"`
	Min   float64 `yaml:"min"`
	Max   float64 `yaml:"max"`
}

// NewSamplerFromSpec builds a ContinuousSampler from a scenario jitter spec,
// drawing randomness from src. Valid dists: "", "none", "normal",
// "exponential", "uniform".
func NewSamplerFromSpec(spec JitterSpec, src rand.Source) (ContinuousSampler, error) {
	switch spec.Dist {
	case "", "none":
		return ZeroSampler{}, nil
	case "normal":
		if spec.Sigma <= 0 {
			return nil, fmt.Errorf("normal jitter needs sigma > 0, got %v: %w", spec.Sigma, ErrValidation)
		}
		return NewNormalSampler(spec.Mu, spec.Sigma, src), nil
	case "exponential":
		if spec.Rate <= 0 {
			return nil, fmt.Errorf("exponential jitter needs rate > 0, got %v: %w", spec.Rate, ErrValidation)
		}
		return NewExponentialSampler(spec.Rate, src), nil
	case "uniform":
		if spec.Max <= spec.Min {
			return nil, fmt.Errorf("uniform jitter needs max > min, got [%v, %v): %w", spec.Min, spec.Max, ErrValidation)
		}
		return NewUniformSampler(spec.Min, spec.Max, src), nil
	default:
		return nil, fmt.Errorf("unknown jitter dist %q; valid dists: [none, normal, exponential, uniform]: %w",
			spec.Dist, ErrValidation)
	}
}
