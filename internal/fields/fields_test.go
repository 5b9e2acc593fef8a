package fields

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/example/docgen/internal/comments"
)

func classified(kind comments.Kind, name, decl, text string) comments.Classified {
	return comments.Classified{
		Raw:         comments.Raw{Text: text, StartLine: 10, EndLine: 14},
		Kind:        kind,
		Name:        name,
		Declaration: decl,
	}
}

func TestParseProperty(t *testing.T) {
	c := classified(comments.KindProperty, "data", "this.data = data;",
		"The data of this object\n* Ohoh! Beware!\n@type {Map<string, {id: number}>}")
	rec, err := Parse(c)
	require.NoError(t, err)

	want := Property{
		Name: "data",
		Type: "Map<string, {id: number}>",
		Description: Description{
			{Text: "The data of this object"},
			{Text: "Ohoh! Beware!", Warning: true},
		},
	}
	if diff := cmp.Diff(want, rec); diff != "" {
		t.Fatalf("property mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, comments.KindProperty, rec.Kind())
	assert.True(t, rec.(Property).Description.HasWarning())
}

func TestParseGetter(t *testing.T) {
	c := classified(comments.KindGetter, "size", "static get size() {", "{!} Cached.\n@type {number}")
	rec, err := Parse(c)
	require.NoError(t, err)
	g, ok := rec.(Getter)
	require.True(t, ok)
	assert.Equal(t, "number", g.Type)
	assert.True(t, g.Static)
	assert.Equal(t, Description{{Text: "Cached.", Warning: true}}, g.Description)
}

func TestParseMissingTags(t *testing.T) {
	cases := []struct {
		name string
		c    comments.Classified
		tag  string
	}{
		{"property without type", classified(comments.KindProperty, "x", "this.x = 1;", "Just text"), "@type"},
		{"getter without type", classified(comments.KindGetter, "x", "get x() {", "@returns {number}"), "@type"},
		{"method without returns", classified(comments.KindMethod, "run", "run() {", "Runs.\n@param {string} a"), "@returns"},
		{"param without type", classified(comments.KindMethod, "run", "run(a) {", "@param a\n@returns {void}"), "@param type"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Parse(tc.c)
			var mt *MissingTagError
			require.ErrorAs(t, err, &mt)
			assert.Equal(t, tc.tag, mt.Tag)
			assert.Equal(t, 10, mt.Line)
		})
	}
}

func TestParseNone(t *testing.T) {
	_, err := Parse(classified(comments.KindNone, "", "class A {", "A class"))
	assert.True(t, errors.Is(err, ErrNotMember))
}

func TestParseMethod(t *testing.T) {
	text := "Finds a user.\n" +
		"\n" +
		"Second line with `code`.\n" +
		"@param {string} name The user name\n" +
		"@param {number} [age] - Age in years\n" +
		"@param {boolean} [strict=true] Strict mode\n" +
		"@param {Object} options.extra Nested option\n" +
		"@returns {Promise<User>}\n" +
		"@example\n" +
		"const user = await Users.find('ann');\n" +
		"  console.log(user);\n" +
		"\n"
	c := classified(comments.KindMethod, "static async find",
		"static async find(name = 'Jane', age = 48, strict) {", text)

	rec, err := Parse(c)
	require.NoError(t, err)
	m := rec.(Method)

	assert.Equal(t, "find", m.Name)
	assert.True(t, m.Static)
	assert.True(t, m.Async)
	assert.Equal(t, "Promise<User>", m.Returns)
	assert.Equal(t, Description{{Text: "Finds a user."}, {Text: "Second line with `code`."}}, m.Description)
	assert.Equal(t, "const user = await Users.find('ann');\n  console.log(user);", m.Example)

	require.Len(t, m.Params, 4)

	name := m.Params[0]
	assert.Equal(t, "name", name.Name)
	assert.Equal(t, "string", name.Type)
	assert.Equal(t, "The user name", name.Description)
	assert.True(t, name.Optional, "defaulted in the signature")
	require.NotNil(t, name.Default)
	assert.Equal(t, "'Jane'", name.Default.String())

	age := m.Params[1]
	assert.True(t, age.Optional)
	assert.Equal(t, "Age in years", age.Description)
	require.NotNil(t, age.Default)
	assert.Equal(t, LiteralNumber, age.Default.Kind)
	assert.Equal(t, "48", age.Default.String())

	strict := m.Params[2]
	assert.True(t, strict.Optional, "bracketed in the tag")
	require.NotNil(t, strict.Default)
	assert.Equal(t, LiteralBoolean, strict.Default.Kind)

	extra := m.Params[3]
	assert.Equal(t, "options.extra", extra.Name)
	assert.False(t, extra.Optional)
	assert.Nil(t, extra.Default)

	assert.True(t, HasOptional(m.Params))
}

func TestParseMethodWithoutParams(t *testing.T) {
	rec, err := Parse(classified(comments.KindMethod, "toJSON", "toJSON() {", "@returns {Object}"))
	require.NoError(t, err)
	m := rec.(Method)
	assert.Empty(t, m.Params)
	assert.Empty(t, m.Description)
	assert.Empty(t, m.Example)
	assert.False(t, HasOptional(m.Params))
}

func TestParseExampleOnTagLine(t *testing.T) {
	rec, err := Parse(classified(comments.KindMethod, "ping", "ping() {", "@returns {void}\n@example client.ping();"))
	require.NoError(t, err)
	assert.Equal(t, "client.ping();", rec.(Method).Example)
}

func TestParseExampleRunsToEndOfComment(t *testing.T) {
	text := "Does it\n@example\nconst x = a.run();\n@returns {string}\n"
	rec, err := Parse(classified(comments.KindMethod, "run", "run() {", text))
	require.NoError(t, err)
	m := rec.(Method)
	assert.Equal(t, "const x = a.run();\n@returns {string}", m.Example)
	assert.Equal(t, "string", m.Returns)
	assert.Equal(t, Description{{Text: "Does it"}}, m.Description)
}

func TestParseLoneStarIsBlank(t *testing.T) {
	text := "First line\n*\nSecond line\n@type {string}"
	rec, err := Parse(classified(comments.KindProperty, "name", "this.name = '';", text))
	require.NoError(t, err)
	p := rec.(Property)
	assert.Equal(t, Description{{Text: "First line"}, {Text: "Second line"}}, p.Description)
	assert.False(t, p.Description.HasWarning())

	rec, err = Parse(classified(comments.KindMethod, "go", "go() {", "Go.\n*\n@returns {void}"))
	require.NoError(t, err)
	assert.Equal(t, Description{{Text: "Go."}}, rec.(Method).Description)
}

func TestParseConstructor(t *testing.T) {
	text := "Creates a session.\nMore detail that is dropped.\n@param {Object} [data] Initial data"
	rec, err := Parse(classified(comments.KindConstructor, "", "constructor(data = {}) {", text))
	require.NoError(t, err)
	ctor := rec.(Constructor)
	assert.Equal(t, "constructor", ctor.MemberName())
	assert.Equal(t, Description{{Text: "Creates a session."}}, ctor.Description)
	require.Len(t, ctor.Params, 1)
	assert.Equal(t, "{}", ctor.Params[0].Default.String())
}

func TestParseLiteral(t *testing.T) {
	cases := []struct {
		in       string
		wantKind LiteralKind
		wantText string
	}{
		{"'John'", LiteralString, "'John'"},
		{`"x y"`, LiteralString, `"x y"`},
		{"48", LiteralNumber, "48"},
		{"0", LiteralNumber, "0"},
		{"-1.5", LiteralNumber, "-1.5"},
		{"1e3", LiteralNumber, "1000"},
		{"0x10", LiteralNumber, "16"},
		{"true", LiteralBoolean, "true"},
		{"false", LiteralBoolean, "false"},
		{"Jane", LiteralString, "Jane"},
		{"{}", LiteralString, "{}"},
		{"null", LiteralString, "null"},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			lit := ParseLiteral(tc.in)
			assert.Equal(t, tc.wantKind, lit.Kind)
			assert.Equal(t, tc.wantText, lit.String())
		})
	}
}

func TestDescriptionString(t *testing.T) {
	d := Description{{Text: "a"}, {Text: "b", Warning: true}}
	assert.Equal(t, "a\nb", d.String())
}
