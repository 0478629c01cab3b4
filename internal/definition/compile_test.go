package definition

import (
	"errors"
	"reflect"
	"testing"

	"github.com/kayz/promptkit/pkg/promptbuild"
)

func mustParse(t *testing.T, src string) *Definition {
	t.Helper()
	def, err := Parse([]byte(src))
	if err != nil {
		t.Fatalf("Parse failed: %v", err)
	}
	return def
}

func TestNewBuilderRendersThenBranch(t *testing.T) {
	b, err := NewBuilder(mustParse(t, tutorDefinition))
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	out, err := b.Build(promptbuild.Params{
		"persona": "a tutor",
		"user":    "Ann",
		"age":     30,
		"topic":   "math",
	})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := "Role\nYou are a tutor\n\n- name: Ann\n- age: 30\n\nAdult goal for Ann\n\nStep 1: Read math\nStep 2: Answer"
	if out != want {
		t.Fatalf("unexpected prompt:\n%q\nwant:\n%q", out, want)
	}
}

func TestNewBuilderRendersElseBranch(t *testing.T) {
	b, err := NewBuilder(mustParse(t, tutorDefinition))
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	out, err := b.Build(promptbuild.Params{"persona": "a tutor", "user": "Bo", "age": "12"})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := "Role\nYou are a tutor\n\n- name: Bo\n- age: 30\n\nChild goal\n\nStep 1: Read ${topic}\nStep 2: Answer"
	if out != want {
		t.Fatalf("unexpected prompt:\n%q\nwant:\n%q", out, want)
	}
}

func TestBranchInheritsHostOrder(t *testing.T) {
	def := mustParse(t, `name: ordering
components:
  - kind: tone
    content: Calm
    order: 50
  - kind: role
    content: Tutor
  - kind: goal
    order: 10
    when: { param: formal }
    then:
      - kind: goal
        content: Formal goal
      - kind: constraints
        items: [No slang]
        order: 60
`)
	b, err := NewBuilder(def)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	out, err := b.Build(promptbuild.Params{"formal": true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	want := "Tutor\n\nFormal goal\n\nCalm\n\n- No slang"
	if out != want {
		t.Fatalf("unexpected prompt:\n%q\nwant:\n%q", out, want)
	}

	out, err = b.Build(nil)
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if out != "Tutor\n\nCalm" {
		t.Fatalf("expected empty else branch to drop the goal, got %q", out)
	}
}

func TestNestedConditions(t *testing.T) {
	def := mustParse(t, `name: nested
components:
  - kind: context
    when: { param: plan, op: eq, value: pro }
    then:
      - kind: context
        when: { param: seats, op: gte, value: 10 }
        then: [{ kind: context, content: Team plan }]
        else: [{ kind: context, content: Solo plan }]
    else:
      - kind: context
        content: Free plan
`)
	b, err := NewBuilder(def)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}

	tests := []struct {
		params promptbuild.Params
		want   string
	}{
		{promptbuild.Params{"plan": "pro", "seats": 12}, "Team plan"},
		{promptbuild.Params{"plan": "pro", "seats": 2}, "Solo plan"},
		{promptbuild.Params{"plan": "free"}, "Free plan"},
	}
	for _, tc := range tests {
		out, err := b.Build(tc.params)
		if err != nil {
			t.Fatalf("Build(%v) failed: %v", tc.params, err)
		}
		if out != tc.want {
			t.Fatalf("Build(%v) = %q, want %q", tc.params, out, tc.want)
		}
	}
}

func TestCompilePredicateOps(t *testing.T) {
	params := promptbuild.Params{"n": 5, "s": "x", "empty": ""}
	tests := []struct {
		when ConditionDef
		want bool
	}{
		{ConditionDef{Param: "s"}, true},
		{ConditionDef{Param: "empty", Op: "falsy"}, true},
		{ConditionDef{Param: "empty", Op: "present"}, true},
		{ConditionDef{Param: "nope", Op: "missing"}, true},
		{ConditionDef{Param: "s", Op: "eq", Value: "x"}, true},
		{ConditionDef{Param: "s", Op: "ne", Value: "x"}, false},
		{ConditionDef{Param: "n", Op: "gt", Value: 5}, false},
		{ConditionDef{Param: "n", Op: "gte", Value: 5}, true},
		{ConditionDef{Param: "n", Op: "lt", Value: "5.5"}, true},
		{ConditionDef{Param: "n", Op: "lte", Value: 4.9}, false},
		{ConditionDef{Param: "s", Op: "gt", Value: 1}, false},
	}
	for _, tc := range tests {
		pred, err := compilePredicate(&tc.when)
		if err != nil {
			t.Fatalf("compilePredicate(%+v) failed: %v", tc.when, err)
		}
		got, err := pred(params)
		if err != nil {
			t.Fatalf("predicate(%+v) failed: %v", tc.when, err)
		}
		if got != tc.want {
			t.Fatalf("predicate(%+v) = %v, want %v", tc.when, got, tc.want)
		}
	}

	if _, err := compilePredicate(&ConditionDef{Param: "n", Op: "gt", Value: "many"}); err == nil {
		t.Fatalf("expected error for non-numeric comparison value")
	}
}

func TestPlaceholdersAndCheckParams(t *testing.T) {
	def := mustParse(t, tutorDefinition)

	got := Placeholders(def)
	want := []string{"persona", "user", "topic"}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("Placeholders = %v, want %v", got, want)
	}

	missing, err := CheckParams(def, promptbuild.Params{"user": "Ann"}, false)
	if err != nil {
		t.Fatalf("non-strict CheckParams returned error: %v", err)
	}
	if !reflect.DeepEqual(missing, []string{"persona", "topic"}) {
		t.Fatalf("unexpected missing list: %v", missing)
	}

	_, err = CheckParams(def, promptbuild.Params{"user": "Ann"}, true)
	var mpe *promptbuild.MissingParametersError
	if !errors.As(err, &mpe) {
		t.Fatalf("expected MissingParametersError, got %v", err)
	}
	if !reflect.DeepEqual(mpe.Missing, []string{"persona", "topic"}) {
		t.Fatalf("unexpected missing list in error: %v", mpe.Missing)
	}

	if missing, err := CheckParams(def, promptbuild.Params{"persona": "p", "user": "u", "topic": "t"}, true); err != nil || len(missing) != 0 {
		t.Fatalf("expected no missing params, got %v / %v", missing, err)
	}
}

func TestHostBodyIsNotAParameterSource(t *testing.T) {
	def := mustParse(t, `name: hosts
components:
  - kind: goal
    content: "Never shown ${hostonly}"
    when: { param: on }
    then: [{ kind: goal, content: shown }]
`)
	b, err := NewBuilder(def)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	out, err := b.Build(promptbuild.Params{"on": true})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if out != "shown" {
		t.Fatalf("unexpected prompt %q", out)
	}

	if got := Placeholders(def); len(got) != 0 {
		t.Fatalf("expected no placeholders, got %v", got)
	}
	if missing, err := CheckParams(def, promptbuild.Params{"on": true}, true); err != nil || len(missing) != 0 {
		t.Fatalf("expected strict check to pass, got %v / %v", missing, err)
	}
}

func TestItemsAreTemplates(t *testing.T) {
	def := mustParse(t, `name: items
components:
  - kind: tasks
    items: ["Read ${topic}", "${optional}", "Answer"]
`)
	b, err := NewBuilder(def)
	if err != nil {
		t.Fatalf("NewBuilder failed: %v", err)
	}
	out, err := b.Build(promptbuild.Params{"topic": "math", "optional": ""})
	if err != nil {
		t.Fatalf("Build failed: %v", err)
	}
	if out != "1. Read math\n2. Answer" {
		t.Fatalf("unexpected prompt %q", out)
	}
	if got := Placeholders(def); !reflect.DeepEqual(got, []string{"topic", "optional"}) {
		t.Fatalf("unexpected placeholders %v", got)
	}
}
