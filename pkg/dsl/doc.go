/*
Package dsl provides a fluent Go builder for stories.

It is handy for tests and for stories generated by code, where a YAML file or a
directory of markdown files would be in the way.

	b := dsl.New()
	b.Add("start").
		Text("The cat runs.").
		Image("cat_running.png").
		Choice("Hide in a box", "box").
		Choice("Fly to space", "space")
	b.Add("box").Text("The cat sleeps.")
	b.Add("space").Text("The cat looks at the stars.")

	loader, err := b.Build() // a ports.GraphLoader for storybuilder.New
*/
package dsl
