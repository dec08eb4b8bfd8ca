package safety

import (
	"strings"

	"mvdan.cc/sh/v3/syntax"
)

// scanStructure parses the candidate as POSIX shell and reports the first
// structural construct that makes it more than a single plain command:
// statement lists, pipelines, redirects, substitutions, subshells and
// background jobs. It complements the substring rules, which can be evaded
// by constructs the parser still honours.
//
// A candidate that does not parse at all is reported as suspicious too; a
// safe, displayable command is always valid shell.
func scanStructure(candidate string) (string, bool) {
	parser := syntax.NewParser(syntax.Variant(syntax.LangPOSIX))
	file, err := parser.Parse(strings.NewReader(candidate), "")
	if err != nil {
		return "unparseable input", true
	}

	if len(file.Stmts) > 1 {
		return ";", true
	}

	var construct string
	syntax.Walk(file, func(node syntax.Node) bool {
		if construct != "" || node == nil {
			return false
		}
		switch n := node.(type) {
		case *syntax.BinaryCmd:
			construct = n.Op.String()
		case *syntax.Redirect:
			construct = n.Op.String()
		case *syntax.CmdSubst:
			construct = "$( )"
		case *syntax.ProcSubst:
			construct = n.Op.String()
		case *syntax.Subshell:
			construct = "( )"
		case *syntax.Block:
			construct = "{ }"
		case *syntax.FuncDecl:
			construct = "function declaration"
		case *syntax.ArithmCmd:
			construct = "$(( ))"
		case *syntax.IfClause, *syntax.WhileClause, *syntax.ForClause, *syntax.CaseClause:
			construct = "control structure"
		case *syntax.Stmt:
			if n.Background {
				construct = "&"
			}
		}
		return construct == ""
	})

	return construct, construct != ""
}
