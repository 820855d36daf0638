package servicename

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestName_String(t *testing.T) {
	testCases := []struct {
		name     string
		svc      Name
		expected string
	}{
		{name: "simple", svc: New("a", "b"), expected: "a.b"},
		{name: "zero value", svc: Name{}, expected: ""},
		{name: "quoted segment", svc: New("deployment", "app.war", "component"), expected: `deployment."app.war".component`},
		{name: "escaped quote", svc: New(`we"ird`), expected: `"we\"ird"`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.svc.String())
		})
	}
}

func TestName_AppendDoesNotAlias(t *testing.T) {
	base := New("Foo-service")
	a := base.Append("x")
	b := base.Append("y")

	assert.Equal(t, "Foo-service", base.String())
	assert.Equal(t, "Foo-service.x", a.String())
	assert.Equal(t, "Foo-service.y", b.String())
}

func TestName_WithSuffix(t *testing.T) {
	assert.Equal(t, "a.b$X", New("a", "b").WithSuffix("$X").String())
	assert.Equal(t, "$X", Name{}.WithSuffix("$X").String())
}

func TestParse(t *testing.T) {
	testCases := []struct {
		name      string
		raw       string
		expectErr bool
		expected  Name
	}{
		{name: "simple path", raw: "a.b.c", expected: New("a", "b", "c")},
		{name: "filtered factory", raw: "Foo-service.timer-service-factory$TRANSIENT", expected: New("Foo-service", "timer-service-factory$TRANSIENT")},
		{name: "quoted segment", raw: `deployment."app.war".Foo`, expected: New("deployment", "app.war", "Foo")},
		{name: "error - empty string", raw: "", expectErr: true},
		{name: "error - empty segment", raw: "a..b", expectErr: true},
		{name: "error - invalid characters", raw: "a.b c", expectErr: true},
		{name: "error - lone hyphen", raw: "a.-.c", expectErr: true},
		{name: "error - unterminated quote", raw: `a."b`, expectErr: true},
		{name: "error - empty quoted segment", raw: `a."".b`, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := Parse(tc.raw)
			if tc.expectErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.True(t, tc.expected.Equal(got), "expected %s, got %s", tc.expected, got)
		})
	}
}

func TestParse_RoundTrip(t *testing.T) {
	for _, raw := range []string{
		"a.b.c",
		`deployment."app.war".component.Foo`,
		"Foo-service.timer-service-factory$PERSISTENT",
	} {
		t.Run(raw, func(t *testing.T) {
			n, err := Parse(raw)
			require.NoError(t, err)
			assert.Equal(t, raw, n.String())
		})
	}
}
