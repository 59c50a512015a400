package core

// Command is a marker type embedded in a runlet struct to name its command
// method. The method is given by the `command` struct tag and defaults to
// "Run" when the tag is empty:
//
//	type Greeter struct {
//		Command `command:"Greet"`
//	}
//
// Exactly one marker may appear across a runlet and the structs it embeds.
// A runlet with no marker falls back to its Execute method.
type Command struct{}

// DefaultCommand is the method named by a Command marker with an empty tag.
const DefaultCommand = "Run"

// ConventionCommand is the method looked up when no Command marker exists.
const ConventionCommand = "Execute"
