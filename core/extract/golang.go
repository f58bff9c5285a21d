package extract

import (
	"go/ast"
	"go/parser"
	"go/token"
	"regexp"
	"strings"

	"github.com/codemindhq/codemind/schema"
)

var (
	goShortAssignRe = regexp.MustCompile(`(?m)^\s*([A-Za-z_]\w*)\s*:?=[^=]`)
	goCommentLineRe = regexp.MustCompile(`(?m)^\s*//`)
)

// Go extracts stylistic observations from Go source using the standard
// library parser. Files that fail to parse degrade to a regex pass over
// assignment targets, mirroring the Python fallback tier.
func Go(filename, content string) *schema.FileObservation {
	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, filename, content, parser.ParseComments)
	if err != nil {
		return degradeGo(content)
	}

	obs := schema.NewFileObservation(schema.LangGo, schema.ExtractionFull)
	obs.TotalLineCount = countLines(content)
	obs.HasFileDoc = file.Doc != nil

	for _, group := range file.Comments {
		obs.CommentLineCount += len(group.List)
	}

	var names []string

	for _, decl := range file.Decls {
		switch d := decl.(type) {
		case *ast.FuncDecl:
			obs.FunctionCount++
			names = append(names, d.Name.Name)
			if d.Doc != nil {
				obs.DocumentedCount++
				obs.DocstringSamples = append(obs.DocstringSamples, NewDocstringSample(d.Doc.Text()))
			}
			if fieldCount(d.Type.Params) > 0 || fieldCount(d.Type.Results) > 0 {
				obs.TypedFunctionCount++
			}
			span := fset.Position(d.End()).Line - fset.Position(d.Pos()).Line
			obs.FunctionLengths = append(obs.FunctionLengths, span)

		case *ast.GenDecl:
			for _, spec := range d.Specs {
				switch s := spec.(type) {
				case *ast.TypeSpec:
					obs.ClassCount++
					names = append(names, s.Name.Name)
					if d.Doc != nil || s.Doc != nil {
						obs.DocumentedCount++
					}
					span := fset.Position(s.End()).Line - fset.Position(s.Pos()).Line
					obs.ClassLengths = append(obs.ClassLengths, span)
				case *ast.ValueSpec:
					for _, name := range s.Names {
						names = append(names, name.Name)
					}
				}
			}
		}
	}

	ast.Inspect(file, func(n ast.Node) bool {
		switch stmt := n.(type) {
		case *ast.IfStmt:
			if isErrNilCheck(stmt.Cond) {
				obs.IfCheckCount++
			}
		case *ast.DeferStmt:
			// A deferred closure calling recover() is Go's catch-everything.
			if lit, ok := stmt.Call.Fun.(*ast.FuncLit); ok && containsRecover(lit) {
				obs.ErrorHandlingSamples = append(obs.ErrorHandlingSamples, schema.ErrorHandlingSample{
					HasBareCatch: true,
					HasFinally:   true,
				})
				if containsLogCall(lit) {
					obs.UsesLoggingInHandler = true
				}
			}
		}
		return true
	})

	if len(names) > 0 {
		obs.NamingObserved = TallyIdentifiers(obs.NamingTally, names)
	}
	return obs
}

func degradeGo(content string) *schema.FileObservation {
	obs := schema.NewFileObservation(schema.LangGo, schema.ExtractionDegraded)
	obs.TotalLineCount = countLines(content)
	obs.CommentLineCount = len(goCommentLineRe.FindAllString(content, -1))

	var names []string
	for _, m := range goShortAssignRe.FindAllStringSubmatch(content, -1) {
		names = append(names, m[1])
	}
	if len(names) > 0 {
		obs.NamingObserved = TallyIdentifiers(obs.NamingTally, names)
	}
	return obs
}

func fieldCount(fields *ast.FieldList) int {
	if fields == nil {
		return 0
	}
	return fields.NumFields()
}

// isErrNilCheck reports whether a condition is the `err != nil` idiom,
// including composite conditions that embed one.
func isErrNilCheck(cond ast.Expr) bool {
	bin, ok := cond.(*ast.BinaryExpr)
	if !ok {
		return false
	}
	if bin.Op == token.LAND || bin.Op == token.LOR {
		return isErrNilCheck(bin.X) || isErrNilCheck(bin.Y)
	}
	if bin.Op != token.NEQ && bin.Op != token.EQL {
		return false
	}
	return isErrIdent(bin.X) && isNilIdent(bin.Y) || isErrIdent(bin.Y) && isNilIdent(bin.X)
}

func isErrIdent(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && strings.HasSuffix(strings.ToLower(ident.Name), "err")
}

func isNilIdent(expr ast.Expr) bool {
	ident, ok := expr.(*ast.Ident)
	return ok && ident.Name == "nil"
}

func containsRecover(lit *ast.FuncLit) bool {
	found := false
	ast.Inspect(lit, func(n ast.Node) bool {
		if call, ok := n.(*ast.CallExpr); ok {
			if ident, ok := call.Fun.(*ast.Ident); ok && ident.Name == "recover" {
				found = true
				return false
			}
		}
		return true
	})
	return found
}

func containsLogCall(lit *ast.FuncLit) bool {
	found := false
	ast.Inspect(lit, func(n ast.Node) bool {
		if sel, ok := n.(*ast.SelectorExpr); ok {
			if strings.Contains(strings.ToLower(sel.Sel.Name), "log") {
				found = true
				return false
			}
			if ident, ok := sel.X.(*ast.Ident); ok && strings.Contains(strings.ToLower(ident.Name), "log") {
				found = true
				return false
			}
		}
		return true
	})
	return found
}
