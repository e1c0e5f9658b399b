package fixture

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"

	"github.com/coregx/csldisamb/automaton/dfa"
	"github.com/coregx/csldisamb/edge"
	"github.com/coregx/csldisamb/refir"
)

// TestScenarios is the fixture-driven acceptance suite: every testdata/*.yaml
// scenario builds one Dfa per reference and checks it against that
// scenario's accept/reject cases. Unlike the hand-written unit tests
// elsewhere, failures here benefit from testify's diff output since most
// cases differ only in a reference field or a locator value.
func TestScenarios(t *testing.T) {
	scenarios, err := Load("../../testdata")
	require.NoError(t, err, "loading fixture scenarios")
	require.NotEmpty(t, scenarios, "expected at least one scenario under testdata/")

	for _, sc := range scenarios {
		sc := sc
		t.Run(sc.Name, func(t *testing.T) {
			in := edge.NewInterner()

			for _, c := range sc.Cases {
				ref, ok := sc.References[c.RefID]
				require.Truef(t, ok, "case references unknown reference %q", c.RefID)

				var locatorType *string
				if c.Locator != "" {
					locatorType = &c.Locator
				}
				ctx := refir.RefContext{
					Reference:   ref,
					Position:    c.Position,
					LocatorType: locatorType,
					Format:      refir.PlainFormatter{},
					Locale:      refir.PlainLocale{Terms: map[string]string{}},
					Style:       sc.Style,
					Interner:    in,
				}

				n, err := refir.BuildNfa(ctx)
				require.NoErrorf(t, err, "BuildNfa(%s)", c.RefID)
				d := dfa.Minimize(n)

				for _, want := range c.Accepts {
					id := in.Intern(edge.Out(want))
					require.Truef(t, d.Accepts([]edge.ID{id}),
						"%s: expected Dfa for %q to accept %q", sc.Name, c.RefID, want)
				}
				for _, want := range c.Rejects {
					id := in.Intern(edge.Out(want))
					require.Falsef(t, d.Accepts([]edge.ID{id}),
						"%s: expected Dfa for %q to reject %q", sc.Name, c.RefID, want)
				}
			}
		})
	}
}

// TestLoad_RoundTripsElementShape exercises go-cmp on the parsed Style tree
// directly, rather than only through the rendered edges, so a scenario's
// element wiring can be diffed at the struct level when a case fails in a
// way that accept/reject alone don't explain.
func TestLoad_RoundTripsElementShape(t *testing.T) {
	scenarios, err := Load("../../testdata")
	require.NoError(t, err)
	require.NotEmpty(t, scenarios)

	sc := scenarios[0]
	require.NotEmpty(t, sc.Style.CitationLayout)

	// Re-parsing the same file must produce an identical tree: the loader
	// has no hidden state that would make two loads diverge.
	again, err := Load("../../testdata")
	require.NoError(t, err)

	if diff := cmp.Diff(sc.Style, again[0].Style); diff != "" {
		t.Errorf("Load is not idempotent (-first +second):\n%s", diff)
	}
}
