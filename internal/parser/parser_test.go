package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/codeconcat/codeconcat/internal/model"
)

func TestPythonSimpleFunction(t *testing.T) {
	content := "def greet():\n    return \"hi\"\n"
	decls := Parse("python", "hello.py", content)
	require.Len(t, decls, 1)
	assert.Equal(t, model.KindFunction, decls[0].Kind)
	assert.Equal(t, "greet", decls[0].Name)
	assert.Equal(t, 1, decls[0].StartLine)
	assert.Equal(t, 2, decls[0].EndLine)
}

func TestPythonClassBodyEndsAtEOF(t *testing.T) {
	content := "class Thing:\n    def method(self):\n        return 1\n"
	decls := pythonParser{}.Parse("thing.py", content)
	require.Len(t, decls, 2)
	assert.Equal(t, model.KindClass, decls[0].Kind)
	assert.Equal(t, 3, decls[0].EndLine)
	assert.Equal(t, model.KindFunction, decls[1].Kind)
	assert.Equal(t, 3, decls[1].EndLine)
}

func TestPythonTripleQuotedDocstringDoesNotLeakFakeDef(t *testing.T) {
	content := `"""triple-quoted docstring with def fake(): inside"""
`
	decls := pythonParser{}.Parse("m.py", content)
	assert.Empty(t, decls)
}

func TestPythonCommentsAndBlanksYieldNothing(t *testing.T) {
	content := "# just a comment\n\n   \n# another\n"
	decls := pythonParser{}.Parse("m.py", content)
	assert.Empty(t, decls)
}

func TestCTypedefOneLiner(t *testing.T) {
	decls := cParser{}.Parse("x.h", "typedef unsigned long ulong_t;\n")
	require.Len(t, decls, 1)
	assert.Equal(t, model.KindSymbol, decls[0].Kind)
	assert.Equal(t, decls[0].StartLine, decls[0].EndLine)
}

func TestCMultiLineMacro(t *testing.T) {
	content := "#define ADD(a, b) \\\n    ((a) + (b))\n\nint x;\n"
	decls := cParser{}.Parse("x.c", content)
	require.Len(t, decls, 1)
	assert.Equal(t, "ADD", decls[0].Name)
	assert.Equal(t, 1, decls[0].StartLine)
	assert.Equal(t, 2, decls[0].EndLine)
}

func TestRustImplYieldsContainerAndQualifiedMethod(t *testing.T) {
	content := "#[derive(Debug)]\npub struct Foo;\nimpl Foo {\n    pub fn bar(&self) {}\n}\n"
	decls := rustParser{}.Parse("lib.rs", content)
	require.Len(t, decls, 3)

	assert.Equal(t, model.KindStruct, decls[0].Kind)
	assert.Equal(t, "Foo", decls[0].Name)
	assert.Equal(t, decls[0].StartLine, decls[0].EndLine)

	implDecl := decls[1]
	assert.Equal(t, model.KindClass, implDecl.Kind)
	assert.Equal(t, "Foo", implDecl.Name)

	fnDecl := decls[2]
	assert.Equal(t, model.KindFunction, fnDecl.Kind)
	assert.Equal(t, "Foo::bar", fnDecl.Name)
	assert.GreaterOrEqual(t, fnDecl.StartLine, implDecl.StartLine)
	assert.LessOrEqual(t, fnDecl.EndLine, implDecl.EndLine)
}

func TestGoReceiverMethod(t *testing.T) {
	content := "package p\n\nfunc (r *T) M() {\n\treturn\n}\n"
	decls := goParser{}.Parse("p.go", content)
	require.Len(t, decls, 2) // package symbol + method
	method := decls[len(decls)-1]
	assert.Equal(t, model.KindFunction, method.Kind)
	assert.Equal(t, "T.M", method.Name)
}

func TestJSArrowFunctionConciseBody(t *testing.T) {
	decls := jsParser{}.Parse("a.js", "const foo = (x) => x\n")
	require.Len(t, decls, 1)
	assert.Equal(t, model.KindFunction, decls[0].Kind)
	assert.Equal(t, "foo", decls[0].Name)
	assert.Equal(t, decls[0].StartLine, decls[0].EndLine)
}

func TestJSClassMethodsExtractedIndividually(t *testing.T) {
	content := "class Widget {\n    render() {\n        return 1;\n    }\n    destroy() {\n        return 0;\n    }\n}\n"
	decls := jsParser{}.Parse("w.js", content)
	require.Len(t, decls, 3)
	assert.Equal(t, model.KindClass, decls[0].Kind)
	assert.Equal(t, "Widget", decls[0].Name)
	assert.Equal(t, "render", decls[1].Name)
	assert.Equal(t, "destroy", decls[2].Name)
}

func TestDeclarationOrderMatchesSourceOrder(t *testing.T) {
	content := "def a():\n    pass\n\n\ndef b():\n    pass\n"
	decls := pythonParser{}.Parse("m.py", content)
	require.Len(t, decls, 2)
	assert.LessOrEqual(t, decls[0].StartLine, decls[1].StartLine)
}

func TestLookupUnknownLanguage(t *testing.T) {
	_, ok := Lookup("cobol")
	assert.False(t, ok)
	assert.Nil(t, Parse("cobol", "x.cob", "anything"))
}

func TestJavaQualifiedMethodName(t *testing.T) {
	content := "package com.example;\n\nclass Greeter {\n    void hello() {\n    }\n}\n"
	decls := javaParser{}.Parse("Greeter.java", content)
	var method model.Declaration
	for _, d := range decls {
		if d.Kind == model.KindFunction {
			method = d
		}
	}
	assert.Equal(t, "com.example.Greeter.hello", method.Name)
}
