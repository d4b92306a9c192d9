package posixre

import (
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/coregx/posixre/matcher"
	"github.com/coregx/posixre/syntax"
)

func TestCompileError(t *testing.T) {
	_, err := Compile(`*abc`)
	if err == nil {
		t.Fatal("Compile(`*abc`) succeeded, want error")
	}
	var perr *syntax.ParseError
	if !errors.As(err, &perr) || perr.Kind != syntax.KindLeadingRepetition {
		t.Errorf("Compile error = %v, want leading repetition", err)
	}
}

func TestMustCompilePanics(t *testing.T) {
	defer func() {
		r := recover()
		if r == nil {
			t.Fatal("expected a panic")
		}
		msg, ok := r.(string)
		if !ok || !strings.Contains(msg, "*abc") {
			t.Errorf("panic = %v, want message naming the pattern", r)
		}
	}()
	MustCompile(`*abc`)
}

func TestMatch(t *testing.T) {
	re := MustCompile(`h\(i\)`)
	if !re.Match([]byte("hello hi lol")) {
		t.Error("Match = false, want true")
	}
	if !re.MatchString("hello hi lol") {
		t.Error("MatchString = false, want true")
	}
	if re.MatchString("nothing here") {
		t.Error("MatchString = true, want false")
	}
}

func TestMatchExact(t *testing.T) {
	re := MustCompile(`h\(i\)`)
	got := re.MatchExact([]byte("hi there"))
	want := matcher.Captures{{Start: 0, End: 2}, {Start: 1, End: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("MatchExact = %v, want %v", got, want)
	}
	if re.MatchExact([]byte("say hi")) != nil {
		t.Error("MatchExact matched away from offset 0")
	}
}

func TestFindIndex(t *testing.T) {
	re := MustCompile(`h\(i\)`)
	if got := re.FindIndex([]byte("hello hi lol")); !reflect.DeepEqual(got, []int{6, 8}) {
		t.Errorf("FindIndex = %v, want [6 8]", got)
	}
	if got := re.FindStringIndex("hello hi lol"); !reflect.DeepEqual(got, []int{6, 8}) {
		t.Errorf("FindStringIndex = %v, want [6 8]", got)
	}
	if got := re.FindIndex([]byte("nope")); got != nil {
		t.Errorf("FindIndex = %v, want nil", got)
	}
}

func TestFindSubmatchIndex(t *testing.T) {
	re := MustCompile(`h\(i\)`)
	got := re.FindSubmatchIndex([]byte("hello hi lol"))
	if !reflect.DeepEqual(got, []int{6, 8, 7, 8}) {
		t.Errorf("FindSubmatchIndex = %v, want [6 8 7 8]", got)
	}

	// A group on a losing alternative reports -1,-1.
	re = MustCompile(`\(a\)\|\(b\)`)
	got = re.FindSubmatchIndex([]byte("b"))
	if !reflect.DeepEqual(got, []int{0, 1, -1, -1, 0, 1}) {
		t.Errorf("FindSubmatchIndex = %v, want [0 1 -1 -1 0 1]", got)
	}
}

func TestFindAllIndex(t *testing.T) {
	re := MustCompile(`hi`)
	input := []byte("hi hi hi")
	want := [][]int{{0, 2}, {3, 5}, {6, 8}}
	if got := re.FindAllIndex(input, -1); !reflect.DeepEqual(got, want) {
		t.Errorf("FindAllIndex = %v, want %v", got, want)
	}
	if got := re.FindAllIndex(input, 2); len(got) != 2 {
		t.Errorf("FindAllIndex with n=2 returned %d matches", len(got))
	}
	if got := re.FindAllIndex([]byte("nope"), -1); got != nil {
		t.Errorf("FindAllIndex = %v, want nil", got)
	}
}

func TestFindAllSubmatchIndex(t *testing.T) {
	re := MustCompile(`h\(i\)`)
	got := re.FindAllSubmatchIndex([]byte("hi hi"), -1)
	want := [][]int{{0, 2, 1, 2}, {3, 5, 4, 5}}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("FindAllSubmatchIndex = %v, want %v", got, want)
	}
}

func TestCount(t *testing.T) {
	re := MustCompile(`a`)
	if got := re.Count([]byte("banana"), -1); got != 3 {
		t.Errorf("Count = %d, want 3", got)
	}
	if got := re.Count([]byte("banana"), 2); got != 2 {
		t.Errorf("Count with n=2 = %d, want 2", got)
	}
	if got := re.Count([]byte("xyz"), -1); got != 0 {
		t.Errorf("Count = %d, want 0", got)
	}
}

func TestSplit(t *testing.T) {
	re := MustCompile(`,`)
	for _, tt := range []struct {
		input string
		n     int
		want  []string
	}{
		{"a,b,c", -1, []string{"a", "b", "c"}},
		{"a,b,c", 2, []string{"a", "b,c"}},
		{"a,b,c", 0, nil},
		{",a,", -1, []string{"", "a", ""}},
		{"no commas", -1, []string{"no commas"}},
	} {
		if got := re.Split(tt.input, tt.n); !reflect.DeepEqual(got, tt.want) {
			t.Errorf("Split(%q, %d) = %q, want %q", tt.input, tt.n, got, tt.want)
		}
	}
}

func TestReplaceAllLiteral(t *testing.T) {
	re := MustCompile(`cat`)
	got := re.ReplaceAllLiteral([]byte("the cat sat"), []byte("dog"))
	if string(got) != "the dog sat" {
		t.Errorf("ReplaceAllLiteral = %q, want %q", got, "the dog sat")
	}

	src := []byte("untouched")
	if out := re.ReplaceAllLiteral(src, []byte("dog")); &out[0] == &src[0] {
		t.Error("ReplaceAllLiteral aliased its input on no match")
	}

	// Empty matches insert the replacement between every byte.
	re = MustCompile(`x*`)
	if got := re.ReplaceAllLiteralString("ab", "-"); got != "-a-b-" {
		t.Errorf("ReplaceAllLiteralString = %q, want %q", got, "-a-b-")
	}
}

func TestQuoteMeta(t *testing.T) {
	if got := QuoteMeta(`1.5*2\[x]^$`); got != `1\.5\*2\\\[x\]\^\$` {
		t.Errorf("QuoteMeta = %q", got)
	}
	if got := QuoteMeta("plain text"); got != "plain text" {
		t.Errorf("QuoteMeta = %q, want input unchanged", got)
	}

	// BRE has no unescaped (, ), {, }, | or + metacharacters.
	if got := QuoteMeta("a+b(c)|d"); got != "a+b(c)|d" {
		t.Errorf("QuoteMeta = %q, want input unchanged", got)
	}

	literal := "price: 1.5*n [draft]"
	re := MustCompile(QuoteMeta(literal))
	if !re.MatchString(literal) {
		t.Error("quoted pattern does not match its own text")
	}
	if re.MatchString("price: 1x5yn zdraftz") {
		t.Error("quoted pattern still behaves like a pattern")
	}
}

func TestNumSubexp(t *testing.T) {
	for _, tt := range []struct {
		pattern string
		want    int
	}{
		{`abc`, 1},
		{`h\(i\)`, 2},
		{`\(a\(b\)\)\(c\)`, 4},
	} {
		if got := MustCompile(tt.pattern).NumSubexp(); got != tt.want {
			t.Errorf("NumSubexp(%q) = %d, want %d", tt.pattern, got, tt.want)
		}
	}
}

func TestString(t *testing.T) {
	const pattern = `h\(i\)`
	if got := MustCompile(pattern).String(); got != pattern {
		t.Errorf("String = %q, want %q", got, pattern)
	}
}

func TestCaseInsensitive(t *testing.T) {
	re := MustCompile(`hello`).CaseInsensitive(true)
	if !re.MatchString("say HeLLo") {
		t.Error("case-insensitive literal did not match")
	}

	// Bracket literals fold; named class predicates do not.
	if !MustCompile(`[a-d]`).CaseInsensitive(true).MatchString("C") {
		t.Error("case-insensitive bracket range did not match")
	}
	if MustCompile(`[[:lower:]]`).CaseInsensitive(true).MatchString("A") {
		t.Error("class predicate folded case")
	}
}

func TestNoStartNoEnd(t *testing.T) {
	if MustCompile(`^a`).NoStart(true).MatchString("abc") {
		t.Error("^ matched offset 0 despite NoStart")
	}
	if MustCompile(`a$`).NoEnd(true).MatchString("ba") {
		t.Error("$ matched end of input despite NoEnd")
	}
	// Newline-triggered anchors override both.
	if !MustCompile(`^a`).NoStart(true).Newline(true).MatchString("b\na") {
		t.Error("^ did not match after a newline")
	}
}

func TestPrefilterStrategies(t *testing.T) {
	if MustCompile(`hello\|world`).prefilter == nil {
		t.Error("alternation of literals built no prefilter")
	}
	if MustCompile(`x`).prefilter == nil {
		t.Error("single literal built no prefilter")
	}
	if MustCompile(`.x`).prefilter != nil {
		t.Error("pattern without a mandatory prefix built a prefilter")
	}
}

// The prefilter only skips input that cannot start a match, so
// searching with and without it returns identical results.
func TestPrefilterAgreement(t *testing.T) {
	patterns := []string{
		`hello\|world`,
		`foo`,
		`x`,
		`\(foo\|bar\)baz`,
		`\<hi\>`,
		// Literals of different lengths overlap: "b" occurrences end
		// inside "abc" occurrences that start earlier.
		`abc\|b`,
		`b\|abc`,
	}
	inputs := []string{
		"",
		"abc",
		"xxabcxxbxx",
		"hello there world",
		"xxxxxx",
		"no matches in here at all",
		"foobaz barbaz foobar",
		"hi hi hi",
		"say hi to the world, hello",
	}
	for _, pattern := range patterns {
		filtered := MustCompile(pattern)
		plain := MustCompile(pattern)
		plain.prefilter = nil
		for _, input := range inputs {
			got := filtered.FindAllIndex([]byte(input), -1)
			want := plain.FindAllIndex([]byte(input), -1)
			if !reflect.DeepEqual(got, want) {
				t.Errorf("pattern %q input %q: with prefilter %v, without %v",
					pattern, input, got, want)
			}
		}
	}
}
