package promptbuild

import (
	"fmt"
	"strings"
)

// Kind is the fixed category of a prompt component. It controls how list
// content is formatted and which default label the standalone renderer uses.
type Kind string

const (
	KindRole        Kind = "role"
	KindGoal        Kind = "goal"
	KindInput       Kind = "input"
	KindOutput      Kind = "output"
	KindContext     Kind = "context"
	KindPersona     Kind = "persona"
	KindTone        Kind = "tone"
	KindFewShots    Kind = "few-shots"
	KindGuardrails  Kind = "guardrails"
	KindConstraints Kind = "constraints"
	KindTasks       Kind = "tasks"
	KindSteps       Kind = "steps"
)

var allKinds = []Kind{
	KindRole, KindGoal, KindInput, KindOutput, KindContext, KindPersona,
	KindTone, KindFewShots, KindGuardrails, KindConstraints, KindTasks, KindSteps,
}

var defaultLabels = map[Kind]string{
	KindRole:        "Role",
	KindGoal:        "Goal",
	KindInput:       "Input",
	KindOutput:      "Output",
	KindContext:     "Context",
	KindPersona:     "Persona",
	KindTone:        "Tone",
	KindFewShots:    "Examples",
	KindGuardrails:  "Guardrails",
	KindConstraints: "Constraints",
	KindTasks:       "Tasks",
	KindSteps:       "Steps",
}

// Kinds returns every supported kind in declaration order.
func Kinds() []Kind {
	out := make([]Kind, len(allKinds))
	copy(out, allKinds)
	return out
}

// Valid reports whether k is one of the supported kinds.
func (k Kind) Valid() bool {
	_, ok := defaultLabels[k]
	return ok
}

func (k Kind) String() string {
	return string(k)
}

// ParseKind maps user input to a Kind. "fewshots" and "few_shots" are
// accepted as spellings of few-shots.
func ParseKind(s string) (Kind, error) {
	norm := strings.ToLower(strings.TrimSpace(s))
	switch norm {
	case "fewshots", "few_shots":
		norm = string(KindFewShots)
	}
	k := Kind(norm)
	if !k.Valid() {
		return "", fmt.Errorf("unknown component kind: %q", s)
	}
	return k, nil
}
