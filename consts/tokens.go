package consts

const (
	RuneLeftBracket  = '['
	RuneRightBracket = ']'
	RuneFwdSlash     = '/'
	RuneQuestion     = '?'
)

const (
	StrSlash    = "/"
	StrQuestion = "?"
	StrEllipsis = "..."
)
