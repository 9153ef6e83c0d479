package types

// Type is the kind of value an expression can hold.
type Type int

const (
	Nil Type = iota
	Boolean
	Number
	String
	List
	Object
	Function
	// Any is the inference placeholder for values whose kind is unknown
	// statically (member access, calls, parameters).
	Any

	typeCount
)

// IsScalar returns true for value kinds that can't hold members.
func (t Type) IsScalar() bool {
	switch t {
	case Nil, Boolean, Number, String:
		return true
	}
	return false
}

func (t Type) String() string {
	switch t {
	case Nil:
		return "nil"
	case Boolean:
		return "boolean"
	case Number:
		return "number"
	case String:
		return "string"
	case List:
		return "list"
	case Object:
		return "object"
	case Function:
		return "function"
	case Any:
		return "any"
	default:
		panic("??")
	}
}

func (t Type) GoString() string {
	switch t {
	case Nil:
		return "types.Nil"
	case Boolean:
		return "types.Boolean"
	case Number:
		return "types.Number"
	case String:
		return "types.String"
	case List:
		return "types.List"
	case Object:
		return "types.Object"
	case Function:
		return "types.Function"
	case Any:
		return "types.Any"
	default:
		panic("??")
	}
}
