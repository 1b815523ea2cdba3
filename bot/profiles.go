package bot

import (
	_ "embed"
	"fmt"
	"os"
	"time"

	"mangala/game"
	"mangala/searcher"

	"gopkg.in/yaml.v3"
)

//go:embed profiles.yaml
var defaultProfiles []byte

// Profile is what a difficulty tier resolves to.
type Profile struct {
	Strategy searcher.Strategy
	Budget   time.Duration
}

type Profiles map[Difficulty]Profile

type profileSpec struct {
	Strategy     string        `yaml:"strategy"`
	Depth        int           `yaml:"depth"`
	Evaluator    string        `yaml:"evaluator"`
	RandomChance float64       `yaml:"random_chance"`
	Budget       time.Duration `yaml:"budget"`
}

// DefaultProfiles returns the built-in tier table.
func DefaultProfiles() Profiles {
	profiles, err := parseProfiles(defaultProfiles, Profiles{})
	if err != nil {
		panic(fmt.Sprintf("invalid embedded profiles: %v", err))
	}
	return profiles
}

// LoadProfiles reads a YAML tier table from path. Tiers missing from the file
// keep their built-in profile.
func LoadProfiles(path string) (Profiles, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profiles: %w", err)
	}
	return ParseProfiles(data)
}

func ParseProfiles(data []byte) (Profiles, error) {
	return parseProfiles(data, DefaultProfiles())
}

func parseProfiles(data []byte, base Profiles) (Profiles, error) {
	var specs map[string]profileSpec
	if err := yaml.Unmarshal(data, &specs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal profiles: %w", err)
	}

	profiles := make(Profiles, len(base))
	for d, p := range base {
		profiles[d] = p
	}
	for name, spec := range specs {
		d, err := ParseDifficulty(name)
		if err != nil {
			return nil, err
		}
		profile, err := spec.profile()
		if err != nil {
			return nil, fmt.Errorf("profile %s: %w", name, err)
		}
		profiles[d] = profile
	}
	return profiles, nil
}

func (s profileSpec) profile() (Profile, error) {
	if s.Budget < 0 {
		return Profile{}, fmt.Errorf("negative budget %s", s.Budget)
	}
	evaluate, err := evaluatorNamed(s.Evaluator)
	if err != nil {
		return Profile{}, err
	}

	var strategy searcher.Strategy
	switch s.Strategy {
	case "random":
		strategy = searcher.Greedy{RandomChance: 1}
	case "greedy":
		strategy = searcher.Greedy{RandomChance: s.RandomChance, StoreBias: true}
	case "minimax":
		strategy = searcher.Minimax{Depth: s.Depth, Evaluate: evaluate}
	case "alphabeta":
		strategy = searcher.AlphaBeta{Depth: s.Depth, Evaluate: evaluate}
	default:
		return Profile{}, fmt.Errorf("unknown strategy %q", s.Strategy)
	}
	if s.Depth < 0 {
		return Profile{}, fmt.Errorf("negative depth %d", s.Depth)
	}
	return Profile{Strategy: strategy, Budget: s.Budget}, nil
}

// evaluatorNamed returns nil for an empty name so the searcher picks its default.
func evaluatorNamed(name string) (game.Evaluate, error) {
	switch name {
	case "":
		return nil, nil
	case "basic":
		return game.EvaluateBasic, nil
	case "advanced":
		return game.EvaluateAdvanced, nil
	default:
		return nil, fmt.Errorf("unknown evaluator %q", name)
	}
}
