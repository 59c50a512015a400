package main

import (
	"fmt"
	"os"

	"github.com/jextranet/runlet"
)

type Params struct {
	Name   string `param:"name" desc:"Example name"`
	Age    int    `param:"age" desc:"Example age"`
	SSN    string `param:"ssn" desc:"Optional SSN" required:"false"`
	secret string `param:"secret" desc:"Hidden secret" hidden:"true"`
}

type Greeter struct {
	runlet.Command `command:"Greet"`

	params *Params
}

func (g *Greeter) Greet() error {
	fmt.Printf("Hello %s,\n", g.params.Name)
	fmt.Printf("According to our records you are %d years old.\n", g.params.Age)
	if g.params.secret != "" {
		fmt.Println("Your secret is safe with us.")
	}
	return nil
}

func main() {
	g := &Greeter{params: &Params{}}
	runlet.Main(g, g.params, os.Args[1:])
}
