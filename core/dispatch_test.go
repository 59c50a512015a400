package core

import (
	"bytes"
	stderrs "errors"
	"log/slog"
	"testing"

	"github.com/chriso345/gore/assert"
	"github.com/chriso345/gore/vital"

	clierr "github.com/jextranet/runlet/errors"
)

type markedRunlet struct {
	Command `command:"Greet"`
	calls   int
}

func (r *markedRunlet) Greet() { r.calls++ }

type defaultMarked struct {
	Command
	ran bool
}

func (r *defaultMarked) Run() error { r.ran = true; return nil }

type failingRunlet struct {
	Command
}

var errBoom = stderrs.New("boom")

func (r *failingRunlet) Run() error { return errBoom }

type ambiguousBase struct {
	Command `command:"Start"`
}

func (b *ambiguousBase) Start() {}

type ambiguousRunlet struct {
	ambiguousBase
	Command `command:"Stop"`
}

func (r *ambiguousRunlet) Stop() {}

type conventionBase struct{ base bool }

func (b *conventionBase) Execute() { b.base = true }

type conventionRunlet struct {
	conventionBase
	own bool
}

func (r *conventionRunlet) Execute() { r.own = true }

type inheritedConvention struct {
	conventionBase
}

type greetBase struct{ greeted bool }

func (b *greetBase) Greet() { b.greeted = true }

type promotedMarker struct {
	greetBase
	Command `command:"Greet"`
}

type valueConvention struct{}

func (valueConvention) Execute() {}

type markerOverConvention struct {
	conventionBase
	Command `command:"Go"`
	went    bool
}

func (r *markerOverConvention) Go() { r.went = true }

type nothingRunlet struct{}

func (nothingRunlet) Help() {}

type badSignature struct {
	Command `command:"Greet"`
}

func (b *badSignature) Greet(name string) {}

type badReturn struct {
	Command
}

func (b *badReturn) Run() int { return 1 }

type missingMethod struct {
	Command `command:"greet"`
}

func (m *missingMethod) greet() {}

func TestFindCommand_Marker(t *testing.T) {
	r := &markedRunlet{}
	m, err := FindCommand(r)
	vital.Nil(t, err)
	assert.Equal(t, m.Name, "markedRunlet.Greet")

	vital.Nil(t, m.Call())
	assert.Equal(t, r.calls, 1)
}

func TestFindCommand_DefaultMarker(t *testing.T) {
	r := &defaultMarked{}
	vital.Nil(t, Execute(r))
	assert.True(t, r.ran)
}

func TestExecute_PropagatesError(t *testing.T) {
	err := Execute(&failingRunlet{})
	assert.True(t, stderrs.Is(err, errBoom))
}

func TestFindCommand_Ambiguous(t *testing.T) {
	_, err := FindCommand(&ambiguousRunlet{})
	var ae clierr.AmbiguousCommandError
	if !stderrs.As(err, &ae) {
		t.Fatalf("got %v, want AmbiguousCommandError", err)
	}
	assert.Equal(t, len(ae.Matches), 2)
	assert.StringContains(t, err.Error(), "ambiguousRunlet.Stop")
	assert.StringContains(t, err.Error(), "ambiguousBase.Start")
}

func TestFindCommand_ConventionMostDerivedFirst(t *testing.T) {
	r := &conventionRunlet{}
	vital.Nil(t, Execute(r))
	assert.True(t, r.own)
	assert.True(t, !r.base)
}

func TestFindCommand_ConventionEmbedded(t *testing.T) {
	r := &inheritedConvention{}
	vital.Nil(t, Execute(r))
	assert.True(t, r.base)
}

func TestFindCommand_NamesDeclaringType(t *testing.T) {
	m, err := FindCommand(&inheritedConvention{})
	vital.Nil(t, err)
	assert.Equal(t, m.Name, "conventionBase.Execute")

	m, err = FindCommand(&conventionRunlet{})
	vital.Nil(t, err)
	assert.Equal(t, m.Name, "conventionRunlet.Execute")

	m, err = FindCommand(&promotedMarker{})
	vital.Nil(t, err)
	assert.Equal(t, m.Name, "greetBase.Greet")

	m, err = FindCommand(valueConvention{})
	vital.Nil(t, err)
	assert.Equal(t, m.Name, "valueConvention.Execute")
}

func TestProcessor_DispatchLogsThroughLogger(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug}))

	r := &markedRunlet{}
	p := &Processor{Runlet: r, Params: &greeterParams{}, Out: &bytes.Buffer{}, Err: &bytes.Buffer{}, Logger: log}
	outcome, err := p.Process([]string{"--name=Ann", "--age=3"})
	vital.Nil(t, err)
	assert.Equal(t, outcome.Status, Proceed)
	vital.Nil(t, p.Dispatch())
	assert.Equal(t, r.calls, 1)

	logged := buf.String()
	assert.StringContains(t, logged, "Parameter registry built.")
	assert.StringContains(t, logged, "Parameter bound.")
	assert.StringContains(t, logged, "Command method found.")
	assert.StringContains(t, logged, "markedRunlet.Greet")
}

func TestFindCommand_MarkerBeatsConvention(t *testing.T) {
	r := &markerOverConvention{}
	vital.Nil(t, Execute(r))
	assert.True(t, r.went)
	assert.True(t, !r.base)
}

func TestFindCommand_NoneFound(t *testing.T) {
	for _, target := range []any{&nothingRunlet{}, nothingRunlet{}, nil} {
		_, err := FindCommand(target)
		var ne clierr.NoCommandFoundError
		if !stderrs.As(err, &ne) {
			t.Fatalf("FindCommand(%T): got %v, want NoCommandFoundError", target, err)
		}
	}
}

func TestFindCommand_Invalid(t *testing.T) {
	for _, target := range []any{&badSignature{}, &badReturn{}, &missingMethod{}} {
		_, err := FindCommand(target)
		var ie clierr.InvalidCommandError
		if !stderrs.As(err, &ie) {
			t.Fatalf("FindCommand(%T): got %v, want InvalidCommandError", target, err)
		}
	}
}

func TestFindCommand_ValueTarget(t *testing.T) {
	m, err := FindCommand(markedRunlet{})
	vital.Nil(t, err)
	vital.Nil(t, m.Call())
}
