package brio

type builtin struct {
	arity int
	exec  func([]Value) (Value, error)
}

var builtins = map[string]builtin{
	"int":    {exec: execInt},
	"float":  {exec: execFloat},
	"string": {exec: execString},
	"typeof": {exec: execTypeof},
	"len":    {exec: execLen},
	"append": {arity: 2, exec: execAppend},
}

func first(args []Value) Value {
	if len(args) == 0 {
		return CreateNull()
	}
	return args[0]
}

func execInt(args []Value) (Value, error) {
	return CreateInt(toInt(first(args))), nil
}

func execFloat(args []Value) (Value, error) {
	return CreateFloat(toFloat(first(args))), nil
}

func execString(args []Value) (Value, error) {
	return CreateString(first(args).String()), nil
}

func execTypeof(args []Value) (Value, error) {
	return CreateString(first(args).Type()), nil
}

func execLen(args []Value) (Value, error) {
	switch v := first(args).(type) {
	case varchar:
		return CreateInt(int64(len(v.value))), nil
	case *array:
		return CreateInt(int64(v.Len())), nil
	default:
		return CreateInt(0), nil
	}
}

func execAppend(args []Value) (Value, error) {
	arr, ok := args[0].(*array)
	if !ok {
		return nil, RuntimeError{Reason: "first argument to append() must be a list"}
	}
	arr.Append(copyValue(args[1]))
	return CreateNull(), nil
}
