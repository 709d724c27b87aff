package brio

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/midbel/brio/environ"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'brio.interp'.
func tracer() tracing.Trace {
	return tracing.Select("brio.interp")
}

// scope pairs the two namespaces of a lexical level: variables and
// functions are disjoint, a variable may share its name with a function.
type scope struct {
	vars  environ.Environment[Value]
	funcs environ.Environment[*FuncDef]
}

func rootScope() *scope {
	return &scope{
		vars:  environ.Empty[Value](),
		funcs: environ.Empty[*FuncDef](),
	}
}

func enclosed(parent *scope) *scope {
	return &scope{
		vars:  environ.Enclosed[Value](parent.vars),
		funcs: environ.Enclosed[*FuncDef](parent.funcs),
	}
}

type Interp struct {
	in  *bufio.Reader
	out io.Writer
}

func New(in io.Reader, out io.Writer) *Interp {
	return &Interp{
		in:  bufio.NewReader(in),
		out: out,
	}
}

// Interpret runs an already parsed program against a fresh root scope,
// reading from standard input and writing to standard output.
func Interpret(node Node) error {
	return New(os.Stdin, os.Stdout).Interpret(node)
}

func Run(r io.Reader) error {
	node, err := Parse(r)
	if err != nil {
		return err
	}
	return Interpret(node)
}

func (i *Interp) Interpret(node Node) error {
	sc := rootScope()
	var err error
	if b, ok := node.(Block); ok {
		err = i.evalNodes(b.Nodes, sc)
	} else {
		_, err = i.eval(node, sc)
	}
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrBreak):
		return RuntimeError{Reason: "'break' outside loop"}
	case errors.Is(err, ErrContinue):
		return RuntimeError{Reason: "'continue' outside loop"}
	}
	var ret returnValue
	if errors.As(err, &ret) {
		return RuntimeError{Reason: "'return' outside function"}
	}
	return err
}

func (i *Interp) eval(node Node, sc *scope) (Value, error) {
	switch n := node.(type) {
	case nil:
		return CreateNull(), nil
	case Literal[int64]:
		return CreateInt(n.Value), nil
	case Literal[float64]:
		return CreateFloat(n.Value), nil
	case Literal[string]:
		return CreateString(n.Value), nil
	case Literal[bool]:
		return CreateBool(n.Value), nil
	case Variable:
		return i.evalVariable(n, sc)
	case Array:
		return i.evalArray(n, sc)
	case Binary:
		return i.evalBinary(n, sc)
	case Index:
		return i.evalIndex(n, sc)
	case Call:
		return i.evalCall(n, sc)
	case Input:
		return i.evalInput(n, sc)
	case Let:
		return i.evalLet(n, sc)
	case Assignment:
		return i.evalAssignment(n, sc)
	case Print:
		return i.evalPrint(n, sc)
	case If:
		return i.evalIf(n, sc)
	case While:
		return i.evalWhile(n, sc)
	case Switch:
		return i.evalSwitch(n, sc)
	case Block:
		return CreateNull(), i.evalNodes(n.Nodes, enclosed(sc))
	case FuncDef:
		sc.funcs.Define(n.Ident, &n)
		return CreateNull(), nil
	case Return:
		return i.evalReturn(n, sc)
	case Break:
		return nil, ErrBreak
	case Continue:
		return nil, ErrContinue
	default:
		return nil, RuntimeError{Reason: fmt.Sprintf("%T can not be evaluated", node)}
	}
}

func (i *Interp) evalNodes(nodes []Node, sc *scope) error {
	for _, n := range nodes {
		if _, err := i.eval(n, sc); err != nil {
			return err
		}
	}
	return nil
}

func (i *Interp) evalVariable(n Variable, sc *scope) (Value, error) {
	v, err := sc.vars.Resolve(n.Ident)
	if err != nil {
		return CreateNull(), nil
	}
	return v, nil
}

func (i *Interp) evalArray(n Array, sc *scope) (Value, error) {
	arr := &array{}
	for _, item := range n.Items {
		v, err := i.eval(item, sc)
		if err != nil {
			return nil, err
		}
		arr.Append(v)
	}
	return arr, nil
}

func (i *Interp) evalBinary(n Binary, sc *scope) (Value, error) {
	left, err := i.eval(n.Left, sc)
	if err != nil {
		return nil, err
	}
	right, err := i.eval(n.Right, sc)
	if err != nil {
		return nil, err
	}
	return binary(n.Op, left, right), nil
}

func (i *Interp) evalIndex(n Index, sc *scope) (Value, error) {
	target, err := i.eval(n.Expr, sc)
	if err != nil {
		return nil, err
	}
	pos, err := i.eval(n.Index, sc)
	if err != nil {
		return nil, err
	}
	x := toInt(pos)
	switch target := target.(type) {
	case *array:
		if x < 0 || x >= int64(len(target.values)) {
			return CreateNull(), nil
		}
		return target.values[x], nil
	case varchar:
		if x < 0 || x >= int64(len(target.value)) {
			return CreateNull(), nil
		}
		return CreateString(string(target.value[x])), nil
	default:
		return CreateNull(), nil
	}
}

func (i *Interp) evalCall(n Call, sc *scope) (Value, error) {
	if fn, ok := builtins[n.Ident]; ok {
		// arity is checked on the argument list itself, before any
		// argument runs
		if len(n.Args) < fn.arity {
			return nil, RuntimeError{Reason: fmt.Sprintf("%s() requires %d arguments", n.Ident, fn.arity)}
		}
		args := make([]Value, 0, len(n.Args))
		for _, a := range n.Args {
			v, err := i.eval(a, sc)
			if err != nil {
				return nil, err
			}
			args = append(args, v)
		}
		return fn.exec(args)
	}
	def, err := sc.funcs.Resolve(n.Ident)
	if err != nil {
		return nil, RuntimeError{Reason: fmt.Sprintf("undefined function '%s'", n.Ident)}
	}
	tracer().Debugf("call %s/%d", n.Ident, len(n.Args))
	sub := enclosed(sc)
	for j, param := range def.Params {
		var val Value = CreateNull()
		if j < len(n.Args) {
			val, err = i.eval(n.Args[j], sc)
			if err != nil {
				return nil, err
			}
		}
		sub.vars.Define(param, val)
	}
	if err := i.evalNodes(def.Body, sub); err != nil {
		var ret returnValue
		if errors.As(err, &ret) {
			return ret.value, nil
		}
		return nil, err
	}
	return CreateNull(), nil
}

func (i *Interp) evalInput(n Input, sc *scope) (Value, error) {
	if n.Prompt != nil {
		v, err := i.eval(n.Prompt, sc)
		if err != nil {
			return nil, err
		}
		io.WriteString(i.out, v.String())
	}
	i.flush()
	line, err := i.in.ReadString(nl)
	if err != nil && line == "" {
		return CreateString(""), nil
	}
	line = strings.TrimSuffix(line, "\n")
	line = strings.TrimSuffix(line, "\r")
	return CreateString(line), nil
}

func (i *Interp) evalLet(n Let, sc *scope) (Value, error) {
	v, err := i.eval(n.Expr, sc)
	if err != nil {
		return nil, err
	}
	sc.vars.Define(n.Ident, v)
	return CreateNull(), nil
}

func (i *Interp) evalAssignment(n Assignment, sc *scope) (Value, error) {
	v, err := i.eval(n.Expr, sc)
	if err != nil {
		return nil, err
	}
	if err := sc.vars.Assign(n.Ident, v); err != nil {
		return nil, RuntimeError{Reason: fmt.Sprintf("undefined variable '%s'", n.Ident)}
	}
	return CreateNull(), nil
}

func (i *Interp) evalPrint(n Print, sc *scope) (Value, error) {
	for _, a := range n.Args {
		v, err := i.eval(a, sc)
		if err != nil {
			return nil, err
		}
		fmt.Fprintf(i.out, "%s ", v)
	}
	fmt.Fprintln(i.out)
	return CreateNull(), nil
}

func (i *Interp) evalIf(n If, sc *scope) (Value, error) {
	v, err := i.eval(n.Cdt, sc)
	if err != nil {
		return nil, err
	}
	if v.True() {
		return CreateNull(), i.evalNodes(n.Csq, enclosed(sc))
	}
	return CreateNull(), i.evalNodes(n.Alt, enclosed(sc))
}

func (i *Interp) evalWhile(n While, sc *scope) (Value, error) {
	for {
		v, err := i.eval(n.Cdt, sc)
		if err != nil {
			return nil, err
		}
		if !v.True() {
			break
		}
		err = i.evalNodes(n.Body, enclosed(sc))
		if err != nil {
			if errors.Is(err, ErrBreak) {
				break
			}
			if errors.Is(err, ErrContinue) {
				continue
			}
			return nil, err
		}
	}
	return CreateNull(), nil
}

func (i *Interp) evalSwitch(n Switch, sc *scope) (Value, error) {
	target, err := i.eval(n.Cdt, sc)
	if err != nil {
		return nil, err
	}
	for _, c := range n.Cases {
		v, err := i.eval(c.Value, sc)
		if err != nil {
			return nil, err
		}
		if target.String() != v.String() {
			continue
		}
		err = i.evalNodes(c.Body, enclosed(sc))
		if err != nil && !errors.Is(err, ErrBreak) {
			return nil, err
		}
		return CreateNull(), nil
	}
	if n.Default != nil {
		err := i.evalNodes(n.Default, enclosed(sc))
		if err != nil && !errors.Is(err, ErrBreak) {
			return nil, err
		}
	}
	return CreateNull(), nil
}

func (i *Interp) evalReturn(n Return, sc *scope) (Value, error) {
	v, err := i.eval(n.Expr, sc)
	if err != nil {
		return nil, err
	}
	return nil, returnValue{value: v}
}

func (i *Interp) flush() {
	if f, ok := i.out.(interface{ Flush() error }); ok {
		f.Flush()
	}
}
