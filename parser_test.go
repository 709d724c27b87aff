package brio

import (
	"strings"
	"testing"
)

func parseProg(t *testing.T, src string) Block {
	t.Helper()
	node, err := ParseString(src)
	if err != nil {
		t.Fatalf("parse error: %v\nsource:\n%s", err, src)
	}
	block, ok := node.(Block)
	if !ok {
		t.Fatalf("want a block, got %T", node)
	}
	return block
}

func parseFail(t *testing.T, src string) error {
	t.Helper()
	_, err := ParseString(src)
	if err == nil {
		t.Fatalf("want a syntax error for %q", src)
	}
	if !strings.HasPrefix(err.Error(), "Syntax Error:") {
		t.Fatalf("%q: diagnostic misses prefix: %v", src, err)
	}
	return err
}

func TestParseStatements(t *testing.T) {
	block := parseProg(t, "let x = 5\nprint(x)\nx = 6\n")
	if len(block.Nodes) != 3 {
		t.Fatalf("want 3 statements, got %d", len(block.Nodes))
	}
	let, ok := block.Nodes[0].(Let)
	if !ok || let.Ident != "x" {
		t.Fatalf("want let x, got %#v", block.Nodes[0])
	}
	if _, ok := block.Nodes[1].(Print); !ok {
		t.Fatalf("want print, got %#v", block.Nodes[1])
	}
	assign, ok := block.Nodes[2].(Assignment)
	if !ok || assign.Ident != "x" {
		t.Fatalf("want assignment to x, got %#v", block.Nodes[2])
	}
}

func TestParsePrecedence(t *testing.T) {
	tests := []struct {
		src   string
		top   string
		left  string
		right string
	}{
		{src: "1 + 2 * 3", top: "+", right: "*"},
		{src: "1 * 2 + 3", top: "+", left: "*"},
		{src: "1 - 2 - 3", top: "-", left: "-"},
		{src: "1 < 2 == true", top: "==", left: "<"},
		{src: "a == b && c != d", top: "&&", left: "==", right: "!="},
		{src: "a && b || c", top: "||", left: "&&"},
		{src: "1 + 2 < 3 * 4", top: "<", left: "+", right: "*"},
	}
	for _, c := range tests {
		block := parseProg(t, c.src)
		bin, ok := block.Nodes[0].(Binary)
		if !ok {
			t.Fatalf("%q: want binary, got %#v", c.src, block.Nodes[0])
		}
		if bin.Op != c.top {
			t.Fatalf("%q: want top operator %q, got %q", c.src, c.top, bin.Op)
		}
		if c.left != "" {
			sub, ok := bin.Left.(Binary)
			if !ok || sub.Op != c.left {
				t.Fatalf("%q: want left operand %q, got %#v", c.src, c.left, bin.Left)
			}
		}
		if c.right != "" {
			sub, ok := bin.Right.(Binary)
			if !ok || sub.Op != c.right {
				t.Fatalf("%q: want right operand %q, got %#v", c.src, c.right, bin.Right)
			}
		}
	}
}

func TestParseGrouping(t *testing.T) {
	block := parseProg(t, "(1 + 2) * 3")
	bin := block.Nodes[0].(Binary)
	if bin.Op != "*" {
		t.Fatalf("want top operator *, got %q", bin.Op)
	}
	if sub, ok := bin.Left.(Binary); !ok || sub.Op != "+" {
		t.Fatalf("want grouped + on the left, got %#v", bin.Left)
	}
}

func TestParseCallAndIndex(t *testing.T) {
	block := parseProg(t, "f(1, 2)[0]")
	ix, ok := block.Nodes[0].(Index)
	if !ok {
		t.Fatalf("want index, got %#v", block.Nodes[0])
	}
	call, ok := ix.Expr.(Call)
	if !ok || call.Ident != "f" || len(call.Args) != 2 {
		t.Fatalf("want call f/2, got %#v", ix.Expr)
	}
}

func TestParseFunction(t *testing.T) {
	block := parseProg(t, "func add(a, b) { return a + b }")
	fn, ok := block.Nodes[0].(FuncDef)
	if !ok || fn.Ident != "add" {
		t.Fatalf("want func add, got %#v", block.Nodes[0])
	}
	if len(fn.Params) != 2 || fn.Params[0] != "a" || fn.Params[1] != "b" {
		t.Fatalf("want params a, b, got %v", fn.Params)
	}
	if len(fn.Body) != 1 {
		t.Fatalf("want a single body statement, got %d", len(fn.Body))
	}
	if _, ok := fn.Body[0].(Return); !ok {
		t.Fatalf("want return, got %#v", fn.Body[0])
	}
}

func TestParseElseIf(t *testing.T) {
	block := parseProg(t, `if (1) { print(1) } else if (2) { print(2) } else { print(3) }`)
	stmt := block.Nodes[0].(If)
	if len(stmt.Alt) != 1 {
		t.Fatalf("want a single else statement, got %d", len(stmt.Alt))
	}
	inner, ok := stmt.Alt[0].(If)
	if !ok {
		t.Fatalf("want nested if in else branch, got %#v", stmt.Alt[0])
	}
	if len(inner.Alt) != 1 {
		t.Fatalf("want final else branch, got %d nodes", len(inner.Alt))
	}
}

func TestParseSwitch(t *testing.T) {
	src := `switch (x) { case 1: print("a") break
case 2: print("b")
default: print("c") }`
	block := parseProg(t, src)
	stmt, ok := block.Nodes[0].(Switch)
	if !ok {
		t.Fatalf("want switch, got %#v", block.Nodes[0])
	}
	if len(stmt.Cases) != 2 {
		t.Fatalf("want 2 cases, got %d", len(stmt.Cases))
	}
	if len(stmt.Cases[0].Body) != 2 {
		t.Fatalf("want print and break in first case, got %d statements", len(stmt.Cases[0].Body))
	}
	if stmt.Default == nil {
		t.Fatalf("want default branch")
	}
}

func TestParseInput(t *testing.T) {
	block := parseProg(t, `let a = input("? ")
let b = input()
let c = input`)
	with := block.Nodes[0].(Let).Expr.(Input)
	if with.Prompt == nil {
		t.Fatalf("want prompt expression")
	}
	for _, n := range block.Nodes[1:] {
		in := n.(Let).Expr.(Input)
		if in.Prompt != nil {
			t.Fatalf("want promptless input, got %#v", in.Prompt)
		}
	}
}

func TestParseList(t *testing.T) {
	block := parseProg(t, "let l = [1, 2.5, \"x\", [true]]")
	arr, ok := block.Nodes[0].(Let).Expr.(Array)
	if !ok || len(arr.Items) != 4 {
		t.Fatalf("want list of 4 items, got %#v", block.Nodes[0])
	}
	if _, ok := arr.Items[3].(Array); !ok {
		t.Fatalf("want nested list, got %#v", arr.Items[3])
	}
}

func TestParseLines(t *testing.T) {
	block := parseProg(t, "let x = 1\n\nlet y = 2\nprint(x + y)")
	lines := []int{1, 3, 4}
	for i, n := range block.Nodes {
		var line int
		switch n := n.(type) {
		case Let:
			line = n.Line
		case Print:
			line = n.Line
		}
		if line != lines[i] {
			t.Fatalf("statement %d: want line %d, got %d", i, lines[i], line)
		}
		if line < 1 {
			t.Fatalf("statement %d: line below 1", i)
		}
	}
}

func TestParseErrors(t *testing.T) {
	sources := []string{
		"1 = 2",
		"f() = 2",
		"3(1)",
		"let 5 = 1",
		"let x 5",
		"if (1 { }",
		"while (1) print(1)",
		"func f() { return\n}",
		"if (1) { func g() { } }",
		"switch (1) { print(1) }",
		"print(1,)",
		"let x = (1 + 2",
		"let x = @",
	}
	for _, src := range sources {
		parseFail(t, src)
	}
}

func TestSyntaxErrorDetails(t *testing.T) {
	err := parseFail(t, "let x = \nlet y = 2")
	msg := err.Error()
	if !strings.Contains(msg, "line 1") {
		t.Fatalf("want offending line in diagnostic, got %q", msg)
	}
}
