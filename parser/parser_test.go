package parser

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/turtlelang/ttl/token"
)

// The test grammar recognizes semicolon-terminated assignment statements:
//
//	doc  -> stmt doc | ε
//	stmt -> NAME '=' NUMBER ';'
//
// Each completed stmt records its name/number pair into a map the test
// supplies, so tests can observe which statements the parser completed and
// that terminal values reached the stmt's own data.
const (
	tName   token.Symbol = "NAME"
	tNumber token.Symbol = "NUMBER"
)

var (
	reName   = regexp.MustCompile(`[a-z]+`)
	reNumber = regexp.MustCompile(`[0-9]+`)
	reWS     = regexp.MustCompile(`[ \t\n]+`)
)

func assignmentGrammar(t *testing.T, into *map[string]string) *Grammar {
	t.Helper()

	gb := NewGrammarBuilder(reWS, nil)
	gb.Terminal(tName, reName, false, func(production, value string, data ProdData) error {
		data["name"] = value
		return nil
	})
	gb.Terminal(tNumber, reNumber, false, func(production, value string, data ProdData) error {
		data["number"] = value
		return nil
	})
	gb.Terminal("", regexp.MustCompile(`=`), false, nil)
	gb.Terminal("", regexp.MustCompile(`;`), false, nil)

	gb.Branch("doc", map[string][]Elem{
		EpsilonKey:           nil,
		token.KindRepr(tName): {NT("stmt"), NT("doc")},
	})
	gb.First("doc", token.KindRepr(tName))

	gb.Branch("stmt", map[string][]Elem{
		token.KindRepr(tName): {T(tName), Lit("="), T(tNumber), Lit(";")},
	})
	gb.First("stmt", token.KindRepr(tName))
	gb.Follow("stmt", token.KindRepr(tName))

	gb.Production("stmt", func(phase Phase, parent, current ProdData) error {
		if phase != PhaseFinish {
			return nil
		}
		name, okN := current["name"].(string)
		number, okV := current["number"].(string)
		if okN && okV {
			(*into)[name] = number
		}
		return nil
	}, nil)

	g, err := gb.Build("doc")
	require.NoError(t, err)
	return g
}

func TestParseCollectsAllStatements(t *testing.T) {
	assert := assert.New(t)
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	err := Parse(g, "a = 1; b = 2; c = 3;", Options{})
	require.NoError(t, err)
	assert.Equal(map[string]string{"a": "1", "b": "2", "c": "3"}, got)
}

func TestParseEmptyInputMatchesNullableStart(t *testing.T) {
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	require.NoError(t, Parse(g, "", Options{}))
	require.NoError(t, Parse(g, "   \n\t ", Options{}))
	require.Empty(t, got)
}

func TestParseDebugHookSeesBalancedStartFinishPairs(t *testing.T) {
	assert := assert.New(t)
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	starts, finishes := map[string]int{}, map[string]int{}
	err := Parse(g, "a = 1; b = 2;", Options{Debug: func(production, event string) {
		if event == "start" {
			starts[production]++
		} else {
			finishes[production]++
		}
	}})
	require.NoError(t, err)
	assert.Equal(starts, finishes)
	assert.Equal(2, starts["stmt"])
}

func TestParseRecoversAndContinuesPastBadStatement(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	// The second statement is malformed; panic-mode recovery should skip to
	// the start of the third statement and keep parsing.
	err := Parse(g, "a = 1; b = ; c = 3;", Options{})
	require.Error(err)
	var perrs *ParseErrors
	require.ErrorAs(err, &perrs)
	assert.NotEmpty(perrs.Errs)

	assert.Equal("1", got["a"])
	assert.Equal("3", got["c"])
}

func TestParseValidateAbortsAtFirstError(t *testing.T) {
	require := require.New(t)
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	err := Parse(g, "a = 1; b = ; c = 3;", Options{Validate: true})
	require.Error(err)
	var perrs *ParseErrors
	require.ErrorAs(err, &perrs)
	require.Len(perrs.Errs, 1)
	require.NotContains(got, "c")
}

func TestParseTrailingInputIsAnError(t *testing.T) {
	require := require.New(t)
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	err := Parse(g, "a = 1; 42", Options{})
	require.Error(err)
	var perrs *ParseErrors
	require.ErrorAs(err, &perrs)
	require.Len(perrs.Errs, 1)
	require.Equal(rootProduction, perrs.Errs[0].Production)
	require.Equal("1", got["a"])
}

func TestParseLexerFailureIsLoggedAndRecovered(t *testing.T) {
	assert := assert.New(t)
	require := require.New(t)
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	// "%" matches no terminal; the failure is logged as a parse error at its
	// source line and the parse resumes at the next statement.
	err := Parse(g, "a = 1;\n% !\nc = 3;", Options{})
	require.Error(err)
	var perrs *ParseErrors
	require.ErrorAs(err, &perrs)
	require.NotEmpty(perrs.Errs)
	assert.Equal(2, perrs.Errs[0].Line)

	assert.Equal("1", got["a"])
	assert.Equal("3", got["c"])
}

func TestParseErrorCarriesOffendingLine(t *testing.T) {
	require := require.New(t)
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	err := Parse(g, "a = 1;\nb = ;", Options{})
	require.Error(err)
	var perrs *ParseErrors
	require.ErrorAs(err, &perrs)
	require.Equal(2, perrs.Errs[0].Line)
}

func TestBuildRejectsEmptyTerminalTable(t *testing.T) {
	gb := NewGrammarBuilder(reWS, nil)
	gb.Branch("doc", map[string][]Elem{EpsilonKey: nil})
	_, err := gb.Build("doc")
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestBuildRejectsUnknownStartProduction(t *testing.T) {
	gb := NewGrammarBuilder(reWS, nil)
	gb.Terminal(tName, reName, false, nil)
	_, err := gb.Build("missing")
	require.Error(t, err)
	var cfgErr *ConfigError
	require.ErrorAs(t, err, &cfgErr)
}

func TestParseProgressReportsConsumedTokenLines(t *testing.T) {
	require := require.New(t)
	got := map[string]string{}
	g := assignmentGrammar(t, &got)

	var lines []int
	err := Parse(g, "a = 1;\nb = 2;", Options{Progress: func(line int) {
		lines = append(lines, line)
	}})
	require.NoError(err)
	require.Equal([]int{1, 1, 1, 1, 2, 2, 2, 2}, lines)
}
