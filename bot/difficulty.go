package bot

import (
	"fmt"
	"strings"
)

// Difficulty is an ordered bot strength tier.
type Difficulty int

const (
	Beginner Difficulty = iota
	Easy
	Medium
	Hard
	Master
)

var difficultyNames = []string{"beginner", "easy", "medium", "hard", "master"}

// Difficulties lists every tier from weakest to strongest.
func Difficulties() []Difficulty {
	return []Difficulty{Beginner, Easy, Medium, Hard, Master}
}

func (d Difficulty) String() string {
	if d < Beginner || d > Master {
		return fmt.Sprintf("difficulty(%d)", int(d))
	}
	return difficultyNames[d]
}

func ParseDifficulty(name string) (Difficulty, error) {
	for i, n := range difficultyNames {
		if strings.EqualFold(strings.TrimSpace(name), n) {
			return Difficulty(i), nil
		}
	}
	return 0, fmt.Errorf("unknown difficulty %q", name)
}

func (d Difficulty) MarshalText() ([]byte, error) {
	if d < Beginner || d > Master {
		return nil, fmt.Errorf("unknown difficulty %d", int(d))
	}
	return []byte(d.String()), nil
}

func (d *Difficulty) UnmarshalText(text []byte) error {
	parsed, err := ParseDifficulty(string(text))
	if err != nil {
		return err
	}
	*d = parsed
	return nil
}
