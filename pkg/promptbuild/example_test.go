package promptbuild_test

import (
	"fmt"

	"github.com/kayz/promptkit/pkg/promptbuild"
)

func ExampleBuilder() {
	prompt, err := promptbuild.NewBuilder().
		Role(promptbuild.Text("You are a helpful assistant")).
		Goal(promptbuild.Text("Answer user questions clearly")).
		Input(promptbuild.Text("User question: ${question}")).
		Steps(promptbuild.List("Understand the question", "Provide a clear answer")).
		Constraints(promptbuild.List("Keep it short", "Use simple language")).
		Output(promptbuild.Text("A clear answer in ${sentences} sentences")).
		Build(promptbuild.Params{"question": "What is Go?", "sentences": 2})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(prompt)
	// Output:
	// You are a helpful assistant
	//
	// Answer user questions clearly
	//
	// User question: What is Go?
	//
	// Step 1: Understand the question
	// Step 2: Provide a clear answer
	//
	// - Keep it short
	// - Use simple language
	//
	// A clear answer in 2 sentences
}

func ExampleBuilder_conditions() {
	// Branch components carry the position of the component they replace.
	anchor := promptbuild.New(promptbuild.KindPersona,
		promptbuild.Text("The Steady Anchor: calm, grounding support"), promptbuild.WithOrder(1))
	simple := promptbuild.New(promptbuild.KindTone,
		promptbuild.Text("Use simple language"), promptbuild.WithOrder(2))
	warm := promptbuild.New(promptbuild.KindTone,
		promptbuild.Text("Use professional but warm language"), promptbuild.WithOrder(2))

	b := promptbuild.NewBuilder().
		Role(promptbuild.Text("You are a support assistant")).
		Persona(promptbuild.Content{}, promptbuild.WithCondition(promptbuild.NewCondition(
			promptbuild.Any(promptbuild.ParamEquals("emotion", "sad"), promptbuild.ParamEquals("emotion", "anxious")),
			anchor,
		))).
		Tone(promptbuild.Content{}, promptbuild.WithCondition(
			promptbuild.NewCondition(promptbuild.ParamLessThan("age", 18), simple).Otherwise(warm),
		)).
		Input(promptbuild.Text("User feeling: ${emotion}\nUser age: ${age}")).
		Constraints(promptbuild.ListFunc(func(p promptbuild.Params) []string {
			items := []string{fmt.Sprintf("Provide %v sentences of support", p["sentences"])}
			if n, ok := p.Number("age"); ok && n < 18 {
				items = append(items, "Include reassurance")
			}
			return items
		}))

	prompt, err := b.Build(promptbuild.Params{"emotion": "sad", "age": 25, "sentences": 3})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(prompt)
	// Output:
	// You are a support assistant
	//
	// The Steady Anchor: calm, grounding support
	//
	// Use professional but warm language
	//
	// User feeling: sad
	// User age: 25
	//
	// - Provide 3 sentences of support
}

func ExampleRenderComponents() {
	components := []*promptbuild.Component{
		promptbuild.New(promptbuild.KindRole, promptbuild.Text("You are ${name}")),
		promptbuild.New(promptbuild.KindTasks, promptbuild.List("Summarize", "Translate"), promptbuild.WithLabel("Your tasks")),
		promptbuild.New(promptbuild.KindContext, promptbuild.Text("   ")),
	}
	out, err := promptbuild.RenderComponents(components, promptbuild.Params{"name": "Ada"})
	if err != nil {
		fmt.Println("error:", err)
		return
	}
	fmt.Println(out)
	// Output:
	// Role
	// You are Ada
	//
	// Your tasks
	// 1. Summarize
	// 2. Translate
}

func ExampleSubstitute() {
	fmt.Println(promptbuild.Substitute("Hi ${ name }, you have ${count} messages from ${sender}",
		promptbuild.Params{"name": "Ann", "count": 3}))
	// Output:
	// Hi Ann, you have 3 messages from ${sender}
}
