package brio

import (
	"math"
	"strconv"
	"strings"
)

type Value interface {
	Type() string
	True() bool
	String() string
}

type integer struct {
	value int64
}

func CreateInt(v int64) Value {
	return integer{value: v}
}

func (i integer) Type() string {
	return "int"
}

func (i integer) True() bool {
	return i.value != 0
}

func (i integer) String() string {
	return strconv.FormatInt(i.value, 10)
}

type real struct {
	value float64
}

func CreateFloat(v float64) Value {
	return real{value: v}
}

func (f real) Type() string {
	return "float"
}

func (f real) True() bool {
	return true
}

func (f real) String() string {
	if math.IsInf(f.value, 0) || math.IsNaN(f.value) {
		return strconv.FormatFloat(f.value, 'f', -1, 64)
	}
	str := strconv.FormatFloat(f.value, 'f', -1, 64)
	if !strings.Contains(str, ".") {
		str += ".0"
	}
	return str
}

type varchar struct {
	value string
}

func CreateString(v string) Value {
	return varchar{value: v}
}

func (s varchar) Type() string {
	return "string"
}

func (s varchar) True() bool {
	return true
}

func (s varchar) String() string {
	return s.value
}

type boolean struct {
	value bool
}

func CreateBool(v bool) Value {
	return boolean{value: v}
}

func (b boolean) Type() string {
	return "bool"
}

func (b boolean) True() bool {
	return b.value
}

func (b boolean) String() string {
	return strconv.FormatBool(b.value)
}

type array struct {
	values []Value
}

func CreateArray() Value {
	return &array{}
}

func (a *array) Type() string {
	return "list"
}

func (a *array) True() bool {
	return true
}

func (a *array) String() string {
	list := make([]string, len(a.values))
	for i := range a.values {
		list[i] = a.values[i].String()
	}
	return "[" + strings.Join(list, ", ") + "]"
}

func (a *array) Append(v Value) {
	a.values = append(a.values, v)
}

func (a *array) Len() int {
	return len(a.values)
}

type null struct{}

func CreateNull() Value {
	return null{}
}

func (null) Type() string {
	return "null"
}

func (null) True() bool {
	return false
}

func (null) String() string {
	return "null"
}

func isNumber(v Value) bool {
	switch v.(type) {
	case integer, real:
		return true
	default:
		return false
	}
}

func toInt(v Value) int64 {
	switch v := v.(type) {
	case integer:
		return v.value
	case real:
		return int64(v.value)
	case boolean:
		if v.value {
			return 1
		}
		return 0
	case varchar:
		f, err := strconv.ParseFloat(v.value, 64)
		if err != nil {
			return 0
		}
		return int64(f)
	default:
		return 0
	}
}

func toFloat(v Value) float64 {
	switch v := v.(type) {
	case real:
		return v.value
	case integer:
		return float64(v.value)
	case boolean:
		if v.value {
			return 1
		}
		return 0
	case varchar:
		f, err := strconv.ParseFloat(v.value, 64)
		if err != nil {
			return 0
		}
		return f
	default:
		return 0
	}
}

// copyValue deep-copies lists and passes every other variant through,
// primitives being immutable.
func copyValue(v Value) Value {
	arr, ok := v.(*array)
	if !ok {
		return v
	}
	cp := &array{}
	for i := range arr.values {
		cp.Append(copyValue(arr.values[i]))
	}
	return cp
}

func binary(op string, left, right Value) Value {
	switch op {
	case "&&":
		return CreateBool(left.True() && right.True())
	case "||":
		return CreateBool(left.True() || right.True())
	case "==":
		return CreateBool(left.String() == right.String())
	case "!=":
		return CreateBool(left.String() != right.String())
	}
	if isNumber(left) && isNumber(right) {
		var (
			x = toFloat(left)
			y = toFloat(right)
			f = left.Type() == "float" || right.Type() == "float"
		)
		switch op {
		case "+":
			return numeric(x+y, f)
		case "-":
			return numeric(x-y, f)
		case "*":
			return numeric(x*y, f)
		case "/":
			if y == 0 {
				return CreateFloat(0)
			}
			return CreateFloat(x / y)
		case "<":
			return CreateBool(x < y)
		case ">":
			return CreateBool(x > y)
		case "<=":
			return CreateBool(x <= y)
		case ">=":
			return CreateBool(x >= y)
		}
	}
	if op == "+" && (left.Type() == "string" || right.Type() == "string") {
		return CreateString(left.String() + right.String())
	}
	return CreateNull()
}

func numeric(v float64, isFloat bool) Value {
	if isFloat {
		return CreateFloat(v)
	}
	return CreateInt(int64(v))
}
