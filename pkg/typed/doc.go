// Package typed binds a struct type to one template source and engine.
//
// A Descriptor is declared once per model type and shared by its instances:
//
//	type Greeting struct {
//		Name string `json:"name" validate:"required"`
//	}
//
//	var greetings = typed.MustDeclare[Greeting](eng, engine.FromString("Hello, {{ name }}!"))
//
//	tpl, err := greetings.New(Greeting{Name: "Todd"})
//	out, err := tpl.Render(nil) // "Hello, Todd!"
//
// Fields are validated when an instance is created and again on every
// Render, after the optional extra context has been merged in.
package typed
