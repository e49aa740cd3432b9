package term

// Op names a primitive operator.
type Op string

// Primitive operators of the language.
const (
	Add Op = "add"
	Sub Op = "sub"
	Mul Op = "mul"
	Div Op = "div"
	Pow Op = "pow"
	Neg Op = "neg"

	Exp Op = "exp"
	Log Op = "log"
	Sin Op = "sin"
	Cos Op = "cos"
	Tan Op = "tan"

	LT Op = "lt"
	GT Op = "gt"
	EQ Op = "eq"

	And Op = "and"
	Or  Op = "or"
	Not Op = "not"
	If  Op = "if"

	Build  Op = "build"
	IFold  Op = "ifold"
	Get    Op = "get"
	Length Op = "length"

	Pair Op = "pair"
	Fst  Op = "fst"
	Snd  Op = "snd"

	// D marks a term awaiting forward-mode differentiation. It has no
	// evaluation semantics and is never extracted from the engine.
	D Op = "deriv"
)
