package comments

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sessionSource = `const EventEmitter = require('events');

/**
 * Session tracks one connected client.
 */
class Session extends EventEmitter {
    /**
     * @param {Object} [options] Session options
     */
    constructor(options = {}) {
        super();
        /**
         * Cached payload.
         * * Mutated by every sync.
         * @type {Map<string, number>}
         */
        this.cache = new Map();

        /** @type {boolean} */
        this.open = true;
    }

    /**
     * Looks up a session.
     * @param {string} id Session id
     * @returns {Promise<Session>}
     */
    static async find(id) {}

    /**
     * Whether the session is idle.
     * @type {boolean}
     */
    get idle() { return !this.open; }

    // plain comment, ignored
    /**
     * Serializes the session.
     * @returns {Object}
     */
    toJSON() { return {}; }
}
`

func TestExtract(t *testing.T) {
	got := Extract(sessionSource)

	type row struct {
		Kind Kind
		Name string
	}
	var rows []row
	for _, c := range got {
		rows = append(rows, row{c.Kind, c.Name})
	}
	want := []row{
		{KindNone, ""},
		{KindConstructor, ""},
		{KindProperty, "cache"},
		{KindProperty, "open"},
		{KindMethod, "static async find"},
		{KindGetter, "idle"},
		{KindMethod, "toJSON"},
	}
	if diff := cmp.Diff(want, rows); diff != "" {
		t.Fatalf("classification mismatch (-want +got):\n%s", diff)
	}

	assert.Equal(t, "Session tracks one connected client.", got[0].Text)
	assert.Equal(t, 3, got[0].StartLine)
	assert.Equal(t, 5, got[0].EndLine)
	assert.Equal(t, "constructor(options = {}) {", got[1].Declaration)
	assert.Equal(t, "this.open = true;", got[3].Declaration)
	assert.Equal(t, []string{"Cached payload.", "* Mutated by every sync.", "@type {Map<string, number>}"}, got[2].Lines())
}

func TestExtractCRLF(t *testing.T) {
	src := "class A {\r\n  /**\r\n   * Name.\r\n   * @type {string}\r\n   */\r\n  this.name = '';\r\n}\r\n"
	got := Extract(src)
	require.Len(t, got, 1)
	assert.Equal(t, KindProperty, got[0].Kind)
	assert.Equal(t, "Name.\n@type {string}", got[0].Text)
	assert.Equal(t, 2, got[0].StartLine)
	assert.Equal(t, 5, got[0].EndLine)
}

func TestScanSkipsStringsAndLineComments(t *testing.T) {
	src := "const a = '/* not a comment */';\n" +
		"const b = `multi\nline /* nope */`;\n" +
		"// also /* not */ a comment\n" +
		"/** real */\n" +
		"/* unterminated"
	got := Scan(src)
	require.Len(t, got, 1)
	assert.Equal(t, "real", got[0].Text)
	assert.Equal(t, 5, got[0].StartLine)
}

func TestScanCleansBody(t *testing.T) {
	src := "/**\n *\n * First\n *\n *   indented\n * \n */"
	got := Scan(src)
	require.Len(t, got, 1)
	assert.Equal(t, []string{"First", "", "  indented"}, got[0].Lines())
}

func TestClassify(t *testing.T) {
	cases := []struct {
		decl     string
		wantKind Kind
		wantName string
	}{
		{"constructor(a, b) {", KindConstructor, ""},
		{"get size() {", KindGetter, "size"},
		{"static get instance() {", KindGetter, "instance"},
		{"async get(name, force = false) {", KindMethod, "async get"},
		{"get(name) {", KindMethod, "get"},
		{"static  async   load(x) {", KindMethod, "static async load"},
		{"#secret() {", KindMethod, "#secret"},
		{"this.data = data;", KindProperty, "data"},
		{"if (ready) {", KindNone, ""},
		{"class Session {", KindNone, ""},
		{"", KindNone, ""},
	}
	c := NewClassifier()
	for _, tc := range cases {
		t.Run(tc.decl, func(t *testing.T) {
			kind, name := c.Classify(tc.decl)
			assert.Equal(t, tc.wantKind, kind)
			assert.Equal(t, tc.wantName, name)
		})
	}
}

func TestClassifierCustomRules(t *testing.T) {
	onlyProps := NewClassifier(Rule{Kind: KindProperty, Match: matchProperty})
	kind, _ := onlyProps.Classify("constructor() {")
	assert.Equal(t, KindNone, kind)
}

func TestTrailingDeclaration(t *testing.T) {
	got := Extract("class A {\n  /** @type {string} */ this.name = 'a';\n}\n")
	require.Len(t, got, 1)
	assert.Equal(t, KindProperty, got[0].Kind)
	assert.Equal(t, "name", got[0].Name)
}

func TestParseHeader(t *testing.T) {
	cases := []struct {
		name string
		src  string
		want Header
		ok   bool
	}{
		{"plain", "class Pool {\n}", Header{Name: "Pool"}, true},
		{"extends", "class Session extends EventEmitter {", Header{Name: "Session", Extends: "EventEmitter"}, true},
		{"exported expression", "module.exports = class Link extends base.Node {", Header{Name: "Link", Extends: "base.Node"}, true},
		{"comment text", "/** class of things */\nfunction x() {}", Header{}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			h, ok := ParseHeader(tc.src)
			assert.Equal(t, tc.ok, ok)
			assert.Equal(t, tc.want, h)
		})
	}
}

func TestDescription(t *testing.T) {
	assert.Equal(t, "Session tracks one connected client.", Description(Extract(sessionSource)))
	assert.Empty(t, Description(nil))
}

func TestSignature(t *testing.T) {
	cases := []struct {
		decl string
		want []Argument
	}{
		{"constructor(data = {}) {", []Argument{{Name: "data", Default: "{}", HasDefault: true}}},
		{"static async method(name = 'John, Doe', age = 48) {", []Argument{
			{Name: "name", Default: "'John, Doe'", HasDefault: true},
			{Name: "age", Default: "48", HasDefault: true},
		}},
		{"find(id, cb = (a, b) => a == b) {", []Argument{
			{Name: "id"},
			{Name: "cb", Default: "(a, b) => a == b", HasDefault: true},
		}},
		{"merge(...sources) {", []Argument{{Name: "sources"}}},
		{"toJSON() {", nil},
		{"this.x = 1;", nil},
		{"open(path,", []Argument{{Name: "path"}}},
	}
	for _, tc := range cases {
		t.Run(tc.decl, func(t *testing.T) {
			if diff := cmp.Diff(tc.want, Signature(tc.decl)); diff != "" {
				t.Errorf("Signature mismatch (-want +got):\n%s", diff)
			}
		})
	}
}
